package jobModel

import (
	"context"
	"time"

	"github.com/avashisht/paperbase/internal/domain/commonModels"
)

type JobStatus string
type InternalStatus string

type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	UserQueryInit    InternalStatus = "Init"
	CacheCall        InternalStatus = "CacheCall"
	RAGCall          InternalStatus = "RAG"
	LLMCall          InternalStatus = "LLM"
	VectorDBCall     InternalStatus = "VectorDB"
	EmbeddingAPICall InternalStatus = "EmbeddingAPI"
	RedisCall        InternalStatus = "Redis"

	IngestInit       InternalStatus = "IngestInit"
	IngestProcessing InternalStatus = "IngestProcessing"
	Error            InternalStatus = "Error"

	Complete InternalStatus = "Complete"

	JobTypeQuery     JobType = "Query"
	JobTypeIngestDoc JobType = "IngestDocument"
	JobTypeIngestWeb JobType = "IngestWeb"
)

type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobType     JobType        `json:"job_type"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	Question  string                           `json:"question,omitempty"`
	Answer    string                           `json:"answer,omitempty"`
	Context   string                           `json:"context,omitempty"`
	Retrieved []commonModels.RetrievedDocument `json:"retrieved,omitempty"`

	IngestFileName string   `json:"ingest_file_name,omitempty"`
	IngestURL      string   `json:"ingest_url,omitempty"`
	IngestWebURLs  []string `json:"ingest_web_urls,omitempty"`
	ChunkCount     int      `json:"chunk_count,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}

// SourceReport records the outcome of one source inside a batch ingestion
// job. Failures carry a reason; they never abort the rest of the batch.
type SourceReport struct {
	Source string `json:"source"`
	Chunks int    `json:"chunks"`
	Ok     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

type ReportStore interface {
	AppendReport(ctx context.Context, jobId string, report SourceReport) error
	GetReports(ctx context.Context, jobId string) ([]SourceReport, error)
}
