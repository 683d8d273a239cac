package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/avashisht/paperbase/internal/config"
	jobmodel "github.com/avashisht/paperbase/internal/domain/jobModel"
	"github.com/avashisht/paperbase/internal/metrics"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.JobExecutionTimeout)
	defer cancel()
	jobLogger := logger.With("traceId", job.TraceId)
	jobLogger.Debug("Processing job:", "job Id:", job.Id)

	job.Status = jobmodel.JobStatusRunning
	saveJobState(ctx, job)

	switch job.JobType {
	case jobmodel.JobTypeIngestDoc:
		job = _ragService.IngestDocument(ctx, job)
	case jobmodel.JobTypeIngestWeb:
		job = _ragService.IngestWebSources(ctx, job)
	default:
		job = _ragService.ProcessRequest(ctx, job)
	}

	job.EndTime = time.Now()
	saveJobState(ctx, job)
}

func removeWorker(reason string) {
	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()
}

// saveJobState persists whatever status the pipeline left on the job, so an
// errored job is never overwritten as complete.
func saveJobState(ctx context.Context, job jobmodel.Job) {
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update job status", "err", err)
	}
}
