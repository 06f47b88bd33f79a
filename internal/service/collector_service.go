package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sufia0/social-dashboard/internal/apperrors"
	"github.com/sufia0/social-dashboard/internal/models"
	"github.com/sufia0/social-dashboard/internal/repository"
	"github.com/sufia0/social-dashboard/internal/transfer"
)

// CaptureWindow bounds how often a post accumulates a new metric record:
// repeated collection inside one window is deduplicated at the storage
// layer.
const CaptureWindow = 15 * time.Minute

const collectConcurrencyLimit = 10

type CollectorService interface {
	Collect(ctx context.Context, userID int64) (*transfer.CollectionResult, error)
}

type collectorService struct {
	sa      repository.SocialAccountRepository
	pr      repository.PostRepository
	mr      repository.MetricRepository
	clients ClientRegistry
}

func NewCollectorService(
	sa repository.SocialAccountRepository,
	pr repository.PostRepository,
	mr repository.MetricRepository,
	clients ClientRegistry) CollectorService {
	return &collectorService{
		sa:      sa,
		pr:      pr,
		mr:      mr,
		clients: clients,
	}
}

type branchOutcome struct {
	collected *transfer.CollectedSample
	deduped   bool
	skipped   *transfer.SkippedAccount
	failure   *transfer.AccountFailure
}

// Collect fetches one metrics sample per linked account and records it
// against that account's most recently published post. Accounts fan out
// concurrently with independent failure domains; the result is reported
// only after every branch has finished, success or not.
func (s *collectorService) Collect(ctx context.Context, userID int64) (*transfer.CollectionResult, error) {
	accounts, err := s.sa.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	outcomes := make([]branchOutcome, len(accounts))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, collectConcurrencyLimit)

	for i, acc := range accounts {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(i int, acc *models.SocialAccount) {
			defer wg.Done()
			defer func() { <-semaphore }()

			outcomes[i] = s.collectForAccount(ctx, acc)
		}(i, acc)
	}

	wg.Wait()

	result := &transfer.CollectionResult{}
	for _, o := range outcomes {
		switch {
		case o.failure != nil:
			result.Failures = append(result.Failures, *o.failure)
		case o.skipped != nil:
			result.Skipped = append(result.Skipped, *o.skipped)
		case o.deduped:
			result.Deduped++
		case o.collected != nil:
			result.Collected++
			result.Samples = append(result.Samples, *o.collected)
		}
	}
	return result, nil
}

func (s *collectorService) collectForAccount(ctx context.Context, acc *models.SocialAccount) branchOutcome {
	client, ok := s.clients.For(acc.Platform)
	if !ok {
		return branchOutcome{skipped: &transfer.SkippedAccount{
			AccountID: acc.ID,
			Platform:  acc.Platform,
			Reason:    "no client for platform",
		}}
	}

	// Samples attach to a real, user-authored post. If the user never
	// published to this platform there is nothing to attach to, so the
	// account is skipped and reported, never force-created.
	post, err := s.pr.GetLatestPublishedForPlatform(ctx, acc.UserID, acc.Platform)
	if err != nil {
		return s.failureOutcome(acc, err)
	}
	if post == nil {
		return branchOutcome{skipped: &transfer.SkippedAccount{
			AccountID: acc.ID,
			Platform:  acc.Platform,
			Reason:    "no published post for platform",
		}}
	}

	sample, err := client.FetchMetrics(ctx, acc, post)
	if err != nil {
		return s.failureOutcome(acc, err)
	}

	inserted, err := s.mr.Insert(ctx, &models.MetricRecord{
		PostID:        post.ID,
		Likes:         sample.Likes,
		Shares:        sample.Shares,
		Comments:      sample.Comments,
		Impressions:   sample.Impressions,
		CapturedAt:    sample.CapturedAt,
		CaptureWindow: sample.CapturedAt.Truncate(CaptureWindow),
		Source:        sample.Source,
	})
	if err != nil {
		return s.failureOutcome(acc, err)
	}
	if !inserted {
		return branchOutcome{deduped: true}
	}
	return branchOutcome{collected: &transfer.CollectedSample{
		AccountID: acc.ID,
		Platform:  acc.Platform,
		PostID:    post.ID,
		Source:    sample.Source,
	}}
}

func (s *collectorService) failureOutcome(acc *models.SocialAccount, err error) branchOutcome {
	slog.Info(fmt.Sprintf("metrics collection failed for account %d (%s): %v", acc.ID, acc.Platform, err))

	msg := err.Error()
	if apperrors.Is(err, apperrors.KindCredential) {
		msg = "stored credentials rejected by platform"
	}
	return branchOutcome{failure: &transfer.AccountFailure{
		AccountID: acc.ID,
		Platform:  acc.Platform,
		Error:     msg,
	}}
}
