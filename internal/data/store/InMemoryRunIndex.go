package store

import (
	"context"
	"sync"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/config"
)

type InMemoryRunIndex struct {
	mu   sync.Mutex
	runs []string
}

func InitInMemoryRunIndex() *InMemoryRunIndex {
	return &InMemoryRunIndex{}
}

func (s *InMemoryRunIndex) LogRun(ctx context.Context, jobId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, jobId)
	if len(s.runs) > config.RedisRunIndexMaxLength {
		s.runs = s.runs[len(s.runs)-config.RedisRunIndexMaxLength:]
	}
	return nil
}

func (s *InMemoryRunIndex) RecentRuns(ctx context.Context, limit int64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := 0
	if int64(len(s.runs)) > limit {
		start = len(s.runs) - int(limit)
	}
	out := make([]string, len(s.runs)-start)
	copy(out, s.runs[start:])
	return out, nil
}
