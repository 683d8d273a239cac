package rag

import (
	"context"
	"os"
	"time"

	"github.com/avashisht/paperbase/internal/adapter/utils"
	"github.com/avashisht/paperbase/internal/domain/jobModel"
	"github.com/avashisht/paperbase/internal/metrics"
	"github.com/avashisht/paperbase/internal/rag/embedding"
	"github.com/avashisht/paperbase/internal/rag/ingest"
	"github.com/avashisht/paperbase/internal/rag/llm"
	"github.com/avashisht/paperbase/internal/rag/vectorDB"
	"github.com/avashisht/paperbase/pkg/logger_i"
)

// Service is the only surface the worker sees. It hides the vector store,
// the embedder, the LLM and the web fetcher behind job-in job-out methods.
type Service interface {
	ProcessRequest(ctx context.Context, job jobModel.Job) jobModel.Job
	IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job
	IngestWebSources(ctx context.Context, job jobModel.Job) jobModel.Job
}

type service struct {
	vectorDB    vectorDB.DataProcessor
	llmProvider llm.Provider
	embedder    embedding.Embedder
	fetcher     ingest.Fetcher
	reports     jobModel.ReportStore
	logger      *logger_i.Logger
}

func NewService(vector vectorDB.DataProcessor, llm llm.Provider, em embedding.Embedder, fetcher ingest.Fetcher, reports jobModel.ReportStore) Service {
	return &service{
		vectorDB:    vector,
		llmProvider: llm,
		embedder:    em,
		fetcher:     fetcher,
		reports:     reports,
		logger:      logger_i.NewLogger("RAG Service :"),
	}
}

func (s *service) ProcessRequest(ctx context.Context, jobt jobModel.Job) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", jobt.TraceId, "JobId", jobt.Id)

	processContext, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	jobt.CurrentStep = jobModel.RAGCall

	// Embedding
	queryVector, err := s.executeEmbeddingStep(processContext, inMethodLogger, &jobt)
	if err != nil {
		return s.jobError(jobt, err, "EMBEDDING_FAILURE", true)
	}

	// Cache Check
	cachedAnswer, found := s.executeCacheCheckStep(ctx, inMethodLogger, &jobt, queryVector)
	if found {
		return returnOutput(jobt, cachedAnswer)
	}

	// Vector DB Search
	matches, err := s.executeVectorSearchStep(processContext, inMethodLogger, &jobt, queryVector)
	if err != nil {
		return s.jobError(jobt, err, "VECTOR_DB_FAILURE", true)
	}

	// LLM Generation
	answerText, err := s.executeLLMStep(processContext, inMethodLogger, &jobt, matches)
	if err != nil {
		return s.jobError(jobt, err, "LLM_GENERATION_FAILURE", true)
	}

	// Background Cache Save
	go func() {
		if err := s.vectorDB.SaveToCache(context.WithoutCancel(ctx), utils.GetNewUUID(), queryVector, answerText); err != nil {
			s.logger.Error("Failed to save to cache", "error", err)
		}
	}()

	return returnOutput(jobt, answerText)
}

func (s *service) IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_ingestion", time.Since(start)) }()

	job.CurrentStep = jobModel.IngestProcessing
	count, err := ingest.IngestDocumentFile(ctx, job.JobPayload.IngestURL, job.JobPayload.IngestFileName, s.embedder, s.vectorDB)
	if removeErr := os.Remove(job.JobPayload.IngestURL); removeErr != nil {
		s.logger.Error("Error removing uploaded file", "error", removeErr)
	}
	if err != nil {
		return s.jobError(job, err, "INGESTION_FAILURE", true)
	}

	metrics.CountChunksIngested("document", count)
	job.JobPayload.ChunkCount = count
	job.Status = jobModel.JobStatusComplete
	job.CurrentStep = jobModel.Complete
	return job
}

// IngestWebSources runs every URL in the batch; one bad URL records a failure
// report and the rest of the batch keeps going. The job itself only errors
// when no URL produced any chunks.
func (s *service) IngestWebSources(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("web_ingestion", time.Since(start)) }()

	job.CurrentStep = jobModel.IngestProcessing
	total := 0
	failures := 0

	for _, pageURL := range job.JobPayload.IngestWebURLs {
		count, err := ingest.IngestWebSource(ctx, pageURL, s.fetcher, s.embedder, s.vectorDB)
		report := jobModel.SourceReport{Source: pageURL, Chunks: count, Ok: err == nil}
		if err != nil {
			failures++
			report.Reason = err.Error()
			s.logger.Warn("Web source failed", "url", pageURL, "error", err)
		}
		total += count
		if saveErr := s.reports.AppendReport(ctx, job.Id, report); saveErr != nil {
			s.logger.Error("Failed to save source report", "error", saveErr)
		}
	}

	metrics.CountChunksIngested("web", total)
	job.JobPayload.ChunkCount = total
	if total == 0 && failures == len(job.JobPayload.IngestWebURLs) && failures > 0 {
		return s.jobError(job, errNoSourcesIngested, "WEB_INGESTION_FAILURE", true)
	}
	job.Status = jobModel.JobStatusComplete
	job.CurrentStep = jobModel.Complete
	return job
}
