package api

import (
	"time"

	"github.com/avashisht/paperbase/internal/domain/commonModels"
	"github.com/avashisht/paperbase/internal/domain/jobModel"
)

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type RAGResponse struct {
	Question  string                           `json:"question"`
	Answer    string                           `json:"answer"`
	Retrieved []commonModels.RetrievedDocument `json:"retrieved,omitempty"`
}

type IngestResponse struct {
	ChunkCount int                     `json:"chunk_count"`
	Sources    []jobModel.SourceReport `json:"sources,omitempty"`
}

type Result struct {
	Status              string          `json:"status"`
	RAGExternalResponse *RAGResponse    `json:"rag_response,omitempty"`
	IngestReport        *IngestResponse `json:"ingest_report,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

// requests---------------------

type QueryRequest struct {
	Question string `json:"question" validate:"required"`
}

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}

type IngestDocumentRequest struct {
	DocumentName string `json:"document_name" validate:"required"`
}

type IngestWebRequest struct {
	URLs []string `json:"urls" validate:"required"`
}
