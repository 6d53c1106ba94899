package store

import (
	"context"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/config"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/data/redisStore"
	"github.com/2CentsCapitalHR/adgm-review-api/pkg/logger_i"
)

const runIndexKey = "review-runs"

// RedisRunIndex records recent review run ids so operators can see what
// the service has been asked to do lately. Bounded list, oldest trimmed.
type RedisRunIndex struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisRunIndex(ctx context.Context) *RedisRunIndex {
	inner := redisStore.GetRedisStore(ctx, config.RedisRunIndex)
	if inner == nil {
		return nil
	}
	return &RedisRunIndex{
		store:  inner,
		logger: logger_i.NewLogger("RunIndex"),
	}
}

func (s *RedisRunIndex) LogRun(ctx context.Context, jobId string) error {
	if err := s.store.ListPush(ctx, runIndexKey, jobId); err != nil {
		return err
	}
	return s.store.ListTrimTail(ctx, runIndexKey, config.RedisRunIndexMaxLength)
}

func (s *RedisRunIndex) RecentRuns(ctx context.Context, limit int64) ([]string, error) {
	return s.store.ListGetLast(ctx, runIndexKey, limit)
}

func TestRunIndex(store *redisStore.Store) *RedisRunIndex {
	return &RedisRunIndex{
		store:  store,
		logger: logger_i.NewLogger("test runindex"),
	}
}
