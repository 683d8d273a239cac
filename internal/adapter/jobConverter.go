package adapter

import (
	"fmt"
	"time"

	"github.com/avashisht/paperbase/internal/api"
	"github.com/avashisht/paperbase/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job, reports []jobModel.SourceReport) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:              string(job.Status),
		RAGExternalResponse: ToRAGExternalStatus(job.JobPayload),
		IngestReport:        ToIngestReport(job, reports),
	}

	return api.JobResponse{
		Id:        job.Id,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func ToRAGExternalStatus(ragData jobModel.JobPayload) *api.RAGResponse {
	if ragData.Answer == "" && len(ragData.Retrieved) == 0 {
		return nil
	}

	return &api.RAGResponse{
		Question:  ragData.Question,
		Answer:    ragData.Answer,
		Retrieved: ragData.Retrieved,
	}
}

// ToIngestReport is nil for query jobs so the field marshals away entirely.
func ToIngestReport(job jobModel.Job, reports []jobModel.SourceReport) *api.IngestResponse {
	if job.JobType != jobModel.JobTypeIngestDoc && job.JobType != jobModel.JobTypeIngestWeb {
		return nil
	}

	return &api.IngestResponse{
		ChunkCount: job.JobPayload.ChunkCount,
		Sources:    reports,
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
