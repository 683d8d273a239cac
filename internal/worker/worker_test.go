package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avashisht/paperbase/internal/config"
	"github.com/avashisht/paperbase/internal/domain/jobModel"
	"github.com/avashisht/paperbase/internal/job"
	"github.com/avashisht/paperbase/pkg/logger_i"
)

// MockRagService to track if jobs are executed
type MockRagService struct {
	QueryCount int32
	DocCount   int32
	WebCount   int32
}

func (m *MockRagService) ProcessRequest(ctx context.Context, j jobModel.Job) jobModel.Job {
	atomic.AddInt32(&m.QueryCount, 1)
	return j
}

func (m *MockRagService) IngestDocument(ctx context.Context, j jobModel.Job) jobModel.Job {
	atomic.AddInt32(&m.DocCount, 1)
	return j
}

func (m *MockRagService) IngestWebSources(ctx context.Context, j jobModel.Job) jobModel.Job {
	atomic.AddInt32(&m.WebCount, 1)
	return j
}

type MockJobStore struct {
	OnSaveJob func(ctx context.Context, job jobModel.Job) error
}

func (m *MockJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	return jobModel.Job{}, false
}

func (m *MockJobStore) DeleteJob(ctx context.Context, jobID string) {}

func (m *MockJobStore) SaveJob(ctx context.Context, j jobModel.Job) error {
	if m.OnSaveJob != nil {
		return m.OnSaveJob(ctx, j)
	}
	return nil
}

type MockReportStore struct{}

func (m *MockReportStore) AppendReport(ctx context.Context, jobId string, report jobModel.SourceReport) error {
	return nil
}

func (m *MockReportStore) GetReports(ctx context.Context, jobId string) ([]jobModel.SourceReport, error) {
	return nil, nil
}

func TestWorkerPool_Flow(t *testing.T) {
	// 1. Setup
	jobSvc := &job.Service{
		JobChannel:        make(chan jobModel.Job, 10),
		DispatcherChannel: make(chan bool, 10),
		JobStore:          &MockJobStore{},
		ReportStore:       &MockReportStore{},
	}
	mockRag := &MockRagService{}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	InitServices(jobSvc, mockRag)
	InitWorkerPool(stopChan, wg)

	// Reset global state for test
	atomic.StoreInt64(&currentWorkerCount, 0)

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		// Signal dispatcher to create a worker
		jobSvc.DispatcherChannel <- true

		// Give it a millisecond to spawn
		time.Sleep(50 * time.Millisecond)

		count := atomic.LoadInt64(&currentWorkerCount)
		if count < 1 {
			t.Errorf("Expected at least 1 worker, got %d", count)
		}
	})

	t.Run("Worker routes jobs by type", func(t *testing.T) {
		jobSvc.JobChannel <- jobModel.Job{Id: "q-1", JobType: jobModel.JobTypeQuery}
		jobSvc.JobChannel <- jobModel.Job{Id: "d-1", JobType: jobModel.JobTypeIngestDoc}
		jobSvc.JobChannel <- jobModel.Job{Id: "w-1", JobType: jobModel.JobTypeIngestWeb}

		// Wait for workers to pick up and process
		time.Sleep(100 * time.Millisecond)

		if n := atomic.LoadInt32(&mockRag.QueryCount); n != 1 {
			t.Errorf("Expected 1 query processed, got %d", n)
		}
		if n := atomic.LoadInt32(&mockRag.DocCount); n != 1 {
			t.Errorf("Expected 1 document ingestion, got %d", n)
		}
		if n := atomic.LoadInt32(&mockRag.WebCount); n != 1 {
			t.Errorf("Expected 1 web ingestion, got %d", n)
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		// Send stop signal
		close(stopChan)

		// Wait for workers to exit
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			// Success
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}

func TestWorker_SavesFinalStatus(t *testing.T) {
	var saved []jobModel.JobStatus
	var mu sync.Mutex

	jobSvc := &job.Service{
		JobChannel: make(chan jobModel.Job),
		JobStore: &MockJobStore{
			OnSaveJob: func(ctx context.Context, j jobModel.Job) error {
				mu.Lock()
				saved = append(saved, j.Status)
				mu.Unlock()
				return nil
			},
		},
		ReportStore: &MockReportStore{},
	}
	InitServices(jobSvc, &MockRagService{})
	logger = logger_i.NewLogger("TestWorkerPool")

	executeJob(jobModel.Job{Id: "q-2", JobType: jobModel.JobTypeQuery})

	mu.Lock()
	defer mu.Unlock()
	if len(saved) != 2 {
		t.Fatalf("Expected 2 state saves, got %d", len(saved))
	}
	if saved[0] != jobModel.JobStatusRunning {
		t.Errorf("First save should mark the job running, got %v", saved[0])
	}
}

func TestWorker_IdleTimeout(t *testing.T) {
	// Temporarily override config/globals for test
	atomic.StoreInt64(&currentWorkerCount, 0)
	atomic.StoreInt64(&minWorkerCount, 2) // idle retirement only triggers above the floor
	logger = logger_i.NewLogger("TestWorkerPool")
	jobSvc := &job.Service{
		JobChannel: make(chan jobModel.Job),
	}
	InitServices(jobSvc, &MockRagService{})

	wg := &sync.WaitGroup{}
	stopChan := make(chan bool)
	workerWaitGroup = wg
	stopWorkerChannel = stopChan

	// Spawn 1 worker manually
	createWorker()
	time.Sleep(config.IdleWorkerTimeout)

	time.Sleep(100 * time.Millisecond)
	count := atomic.LoadInt64(&currentWorkerCount)
	if count != 0 {
		t.Errorf("Assertion Failed: Worker should have timed out and retired, but count is %d", count)
	}
}
