package store

import (
	"context"
	"sync"

	"github.com/avashisht/paperbase/internal/domain/jobModel"
)

type InMemoryReportStore struct {
	reportLock *sync.RWMutex
	reportMap  map[string][]jobModel.SourceReport
}

func InitInMemoryReportStore() *InMemoryReportStore {
	return &InMemoryReportStore{
		reportLock: new(sync.RWMutex),
		reportMap:  make(map[string][]jobModel.SourceReport),
	}
}

func (store *InMemoryReportStore) AppendReport(ctx context.Context, jobId string, report jobModel.SourceReport) error {
	store.reportLock.Lock()
	defer store.reportLock.Unlock()
	store.reportMap[jobId] = append(store.reportMap[jobId], report)
	return nil
}

func (store *InMemoryReportStore) GetReports(ctx context.Context, jobId string) ([]jobModel.SourceReport, error) {
	store.reportLock.RLock()
	defer store.reportLock.RUnlock()
	reports := make([]jobModel.SourceReport, len(store.reportMap[jobId]))
	copy(reports, store.reportMap[jobId])
	return reports, nil
}
