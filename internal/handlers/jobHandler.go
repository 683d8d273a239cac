package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/avashisht/paperbase/internal/config"
	"github.com/avashisht/paperbase/internal/domain/jobModel"
	"github.com/avashisht/paperbase/internal/job"
	"github.com/avashisht/paperbase/internal/metrics"
	"github.com/avashisht/paperbase/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	service *job.Service
}

func InitJobHandler(jobService *job.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})
}

func CreateNewJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "job id", newJob.id)
	logJH.Info("To create new job")
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

// GetJobReports fetches the per-source outcomes of a batch ingestion job.
// Query jobs have none and get an empty slice.
func GetJobReports(id string, traceId string) []jobModel.SourceReport {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance == nil {
		return nil
	}
	reports, err := handlerInstance.service.ReportStore.GetReports(ctxC, id)
	if err != nil {
		logJH.Error("Error fetching source reports", "jobId", id, "error", err)
		return nil
	}
	return reports
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued
	_job.JobType = newJob.jobType

	switch newJob.jobType {
	case jobModel.JobTypeIngestDoc:
		_job.CurrentStep = jobModel.IngestInit
		_job.JobPayload.IngestFileName = newJob.documentName
		_job.JobPayload.IngestURL = newJob.documentSource
	case jobModel.JobTypeIngestWeb:
		_job.CurrentStep = jobModel.IngestInit
		_job.JobPayload.IngestWebURLs = newJob.webURLs
	default:
		_job.CurrentStep = jobModel.UserQueryInit
		_job.JobPayload.Question = newJob.question
	}

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //blocking send so the system is never overwhelmed
	logJH.Info("Created new job")

	//ingestion jobs always get a worker since batch embedding takes a while;
	//query jobs add one every few requests and idle workers retire on their own
	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1)
	isIngest := newJob.jobType == jobModel.JobTypeIngestDoc || newJob.jobType == jobModel.JobTypeIngestWeb
	if accurateCount%config.RequestsPerNewWorkerCount == 0 || isIngest {
		metrics.StartDispatcherSignalCount() //metrics
		logJH.Debug("Worker count ", accurateCount)
		h.service.DispatcherChannel <- true
	}
}
