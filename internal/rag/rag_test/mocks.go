package rag_test

import (
	"context"
	"sync"

	"github.com/avashisht/paperbase/internal/domain/commonModels"
	"github.com/avashisht/paperbase/internal/domain/jobModel"
	"github.com/avashisht/paperbase/internal/rag/ingest"
)

// MockVectorDB implements vectorDB.DataProcessor
type MockVectorDB struct {
	OnSearch           func(ctx context.Context, vectorVal []float32, limit uint64) ([]commonModels.Match, error)
	OnGetCachedAnswer  func(ctx context.Context, queryVector []float32) (string, bool, error)
	OnSaveToCache      func(ctx context.Context, id string, vector []float32, answer string) error
	OnCreateCollection func(ctx context.Context, name string) error
	OnUpsertBatch      func(ctx context.Context, name string, records []commonModels.ChunkRecord, vectors [][]float32) error
}

func (m *MockVectorDB) Search(ctx context.Context, v []float32, limit uint64) ([]commonModels.Match, error) {
	if m.OnSearch != nil {
		return m.OnSearch(ctx, v, limit)
	}
	return []commonModels.Match{
		{Text: "default context", Metadata: commonModels.ChunkMetadata{Source: "default.pdf"}, Distance: 0.1},
	}, nil
}

func (m *MockVectorDB) GetCachedAnswer(ctx context.Context, v []float32) (string, bool, error) {
	if m.OnGetCachedAnswer != nil {
		return m.OnGetCachedAnswer(ctx, v)
	}
	return "", false, nil
}

func (m *MockVectorDB) SaveToCache(ctx context.Context, id string, v []float32, a string) error {
	if m.OnSaveToCache != nil {
		return m.OnSaveToCache(ctx, id, v, a)
	}
	return nil
}

func (m *MockVectorDB) CreateCollection(ctx context.Context, name string) error {
	if m.OnCreateCollection != nil {
		return m.OnCreateCollection(ctx, name)
	}
	return nil
}

func (m *MockVectorDB) UpsertBatch(ctx context.Context, name string, records []commonModels.ChunkRecord, vectors [][]float32) error {
	if m.OnUpsertBatch != nil {
		return m.OnUpsertBatch(ctx, name, records, vectors)
	}
	return nil
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error)
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks, isHuge)
	}
	return make([][]float32, len(chunks)), nil
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{0.1}, nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

func (m *MockLLM) Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, systemPrompt, userPrompt)
	}
	return "mocked llm response", nil
}

// MockFetcher implements ingest.Fetcher
type MockFetcher struct {
	OnFetch func(ctx context.Context, pageURL string) (ingest.WebPage, error)
}

func (m *MockFetcher) Fetch(ctx context.Context, pageURL string) (ingest.WebPage, error) {
	if m.OnFetch != nil {
		return m.OnFetch(ctx, pageURL)
	}
	return ingest.WebPage{URL: pageURL, Title: "page", Text: "Some page content to chunk."}, nil
}

// MockReportStore records appended reports for assertions.
type MockReportStore struct {
	mu      sync.Mutex
	Reports map[string][]jobModel.SourceReport
}

func NewMockReportStore() *MockReportStore {
	return &MockReportStore{Reports: make(map[string][]jobModel.SourceReport)}
}

func (m *MockReportStore) AppendReport(ctx context.Context, jobId string, report jobModel.SourceReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reports[jobId] = append(m.Reports[jobId], report)
	return nil
}

func (m *MockReportStore) GetReports(ctx context.Context, jobId string) ([]jobModel.SourceReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Reports[jobId], nil
}
