package store

import (
	"context"
	"encoding/json"

	"github.com/avashisht/paperbase/internal/config"
	"github.com/avashisht/paperbase/internal/data/redisStore"
	"github.com/avashisht/paperbase/internal/domain/jobModel"
	"github.com/avashisht/paperbase/pkg/logger_i"
)

// RedisReportStore keeps one Redis list per batch job, appending a report
// entry as each source finishes.
type RedisReportStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisReportStore(ctx context.Context) *RedisReportStore {
	backing := redisStore.GetRedisStore(ctx, config.RedisReportStore)
	if backing == nil {
		return nil
	}
	return &RedisReportStore{
		store:  backing,
		logger: logger_i.NewLogger("ReportStore"),
	}
}

func reportKey(jobId string) string {
	return "reports:" + jobId
}

func (s *RedisReportStore) AppendReport(ctx context.Context, jobId string, report jobModel.SourceReport) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "job Id", jobId)
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}

	err = s.store.ListPush(ctx, reportKey(jobId), data, config.RedisReportStoreTTL)
	if err == nil {
		log.Debug("Saved source report", "source", report.Source)
	}
	return err
}

func (s *RedisReportStore) GetReports(ctx context.Context, jobId string) ([]jobModel.SourceReport, error) {
	entries, err := s.store.ListGetAll(ctx, reportKey(jobId))
	if err != nil {
		return nil, err
	}

	reports := make([]jobModel.SourceReport, 0, len(entries))
	for _, entry := range entries {
		var report jobModel.SourceReport
		if err := json.Unmarshal([]byte(entry), &report); err != nil {
			s.logger.Error("Skipping malformed report entry", "jobId", jobId, "error", err)
			continue
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func TestReportStore(store *redisStore.Store) *RedisReportStore {
	return &RedisReportStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
