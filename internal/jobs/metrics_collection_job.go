package job

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sufia0/social-dashboard/internal/repository"
	"github.com/sufia0/social-dashboard/internal/service"
)

type MetricsCollectionJob struct {
	sr repository.SocialAccountRepository
	cs service.CollectorService
}

func NewMetricsCollectionJob(sr repository.SocialAccountRepository, cs service.CollectorService) *MetricsCollectionJob {
	return &MetricsCollectionJob{
		sr: sr,
		cs: cs,
	}
}

// CollectAll runs one collection sweep over every user with at least one
// linked account. Per-account dedup inside the collector keeps the sweep
// idempotent within a capture window.
func (c *MetricsCollectionJob) CollectAll() {
	ctx := context.Background()

	userIDs, err := c.sr.ListUserIDsWithAccounts(ctx)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup

	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, userID := range userIDs {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(userID int64) {
			defer wg.Done()
			defer func() { <-semaphore }()

			result, err := c.cs.Collect(ctx, userID)
			if err != nil {
				slog.Info(err.Error())
				return
			}
			if len(result.Failures) > 0 {
				slog.Info("metrics collection finished with per-account failures",
					"user_id", userID,
					"collected", result.Collected,
					"failures", len(result.Failures))
			}
		}(userID)
	}

	wg.Wait()
}
