package ingest

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/avashisht/paperbase/internal/config"
	"github.com/avashisht/paperbase/internal/domain/commonModels"
	"github.com/avashisht/paperbase/internal/rag/embedding"
	"github.com/avashisht/paperbase/internal/rag/vectorDB"
	"github.com/avashisht/paperbase/pkg/logger_i"
)

var logger *logger_i.Logger

// IngestDocumentFile extracts a local document, chunks it, and persists the
// embedded chunks. PDFs go through section extraction first so each chunk
// carries the section it came from; a PDF yielding no sections produces zero
// chunks rather than noise chunks from running headers and references.
// Returns the number of chunks written.
func IngestDocumentFile(ctx context.Context, path string, displayName string, e embedding.Embedder, vectorDatabase vectorDB.DataProcessor) (int, error) {
	logger = logger_i.NewLogger("Document Ingestion ")
	if traceId, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		logger = logger.With("traceId", traceId)
	}

	logger.Debug("Processing document", "filename", displayName, "path", path)

	if err := vectorDatabase.CreateCollection(ctx, config.PapersCollection); err != nil {
		return 0, fmt.Errorf("creating collection: %w", err)
	}

	doc, err := ExtractDocument(path, displayName)
	if err != nil {
		return 0, fmt.Errorf("extracting document: %w", err)
	}

	// Uploads land on disk under throwaway names; the display name is the
	// stable identity, so ids and metadata key on it.
	source := displayName
	if source == "" {
		source = filepath.Base(path)
	}

	var records []commonModels.ChunkRecord
	switch doc.ContentType {
	case commonModels.PDF:
		result := ExtractSections(doc.Text)
		logger.Debug("Section extraction", "method", result.Method, "found", result.SectionsFound)
		if result.Method == "failed" {
			logger.Warn("No sections recognized, nothing ingested", "filename", displayName)
			return 0, nil
		}
		records = prepareSectionChunks(source, doc, result.Sections)
	case commonModels.DOCX:
		records = prepareBodyChunks(source, doc)
	default:
		return 0, fmt.Errorf("unsupported content type: %s", doc.ContentType)
	}

	logger.Debug("Processing document", "chunks", len(records))
	if err := BatchIngest(ctx, records, vectorDatabase, e); err != nil {
		return 0, err
	}
	return len(records), nil
}

// IngestWebSource fetches one page and persists its paragraph text as chunks
// keyed by URL. Chunk ids are a pure function of the URL and chunk position,
// so re-ingesting a page overwrites its previous chunks in place.
func IngestWebSource(ctx context.Context, pageURL string, fetcher Fetcher, e embedding.Embedder, vectorDatabase vectorDB.DataProcessor) (int, error) {
	logger = logger_i.NewLogger("Web Ingestion ")
	if traceId, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		logger = logger.With("traceId", traceId)
	}

	logger.Debug("Processing web source", "url", pageURL)

	if err := vectorDatabase.CreateCollection(ctx, config.PapersCollection); err != nil {
		return 0, fmt.Errorf("creating collection: %w", err)
	}

	page, err := fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return 0, err
	}

	body := Normalize(page.Text)
	if body == "" {
		return 0, fmt.Errorf("no extractable text at %s", pageURL)
	}

	var records []commonModels.ChunkRecord
	for i, chunk := range SplitIntoChunks(body, config.WebChunkChars) {
		records = append(records, commonModels.ChunkRecord{
			ChunkId: MakeChunkID(pageURL, i),
			Text:    chunk,
			Metadata: commonModels.ChunkMetadata{
				Source:     pageURL,
				Title:      page.Title,
				SourceType: "web",
				ChunkIndex: i,
			},
		})
	}

	logger.Debug("Processing web source", "chunks", len(records))
	if err := BatchIngest(ctx, records, vectorDatabase, e); err != nil {
		return 0, err
	}
	return len(records), nil
}

// prepareSectionChunks chunks each extracted section independently so no
// chunk straddles a section boundary. The id key is the source name qualified
// with the section name, keeping ids stable per section across re-ingests.
func prepareSectionChunks(source string, doc commonModels.Document, sections SectionSet) []commonModels.ChunkRecord {
	var records []commonModels.ChunkRecord
	for _, name := range SectionNames {
		body := sections[name]
		if body == "" {
			continue
		}
		sourceKey := source + "::" + name
		for i, chunk := range SplitIntoChunks(Normalize(body), config.PDFChunkChars) {
			records = append(records, commonModels.ChunkRecord{
				ChunkId: MakeChunkID(sourceKey, i),
				Text:    chunk,
				Metadata: commonModels.ChunkMetadata{
					Source:     source,
					Title:      doc.Title,
					Section:    name,
					SourceType: "pdf",
					ChunkIndex: i,
				},
			})
		}
	}
	return records
}

func prepareBodyChunks(source string, doc commonModels.Document) []commonModels.ChunkRecord {
	var records []commonModels.ChunkRecord
	for i, chunk := range SplitIntoChunks(Normalize(doc.Text), config.PDFChunkChars) {
		records = append(records, commonModels.ChunkRecord{
			ChunkId: MakeChunkID(source, i),
			Text:    chunk,
			Metadata: commonModels.ChunkMetadata{
				Source:     source,
				Title:      doc.Title,
				SourceType: "document",
				ChunkIndex: i,
			},
		})
	}
	return records
}

// BatchIngest embeds and upserts records in fixed-size batches. Batching
// bounds both the embedding request size and the upsert payload.
func BatchIngest(ctx context.Context, records []commonModels.ChunkRecord, vectorDatabase vectorDB.DataProcessor, embedder embedding.Embedder) error {
	if logger == nil {
		logger = logger_i.NewLogger("Batch Ingestion ")
	}

	batchSize := config.EmbeddingBatchSize
	isHugeDataSet := len(records) > 1000000

	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}
		currentBatch := records[i:end]

		texts := make([]string, 0, len(currentBatch))
		for _, r := range currentBatch {
			texts = append(texts, r.Text)
		}

		logger.Debug("Starting embedding call", "batch size", len(currentBatch))
		vectors, err := embedder.BatchEmbedding(ctx, texts, isHugeDataSet)
		if err != nil {
			return fmt.Errorf("embedding batch failed: %w", err)
		}

		if err := vectorDatabase.UpsertBatch(ctx, config.PapersCollection, currentBatch, vectors); err != nil {
			return fmt.Errorf("upserting batch failed: %w", err)
		}
	}
	return nil
}
