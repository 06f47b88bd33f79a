package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/sufia0/social-dashboard/internal/models"
	"github.com/sufia0/social-dashboard/internal/transfer"
)

// demoClient synthesizes engagement numbers for demo and test deployments.
// It is only ever selected through the DEMO_MODE flag, and every sample it
// produces is labeled as demo data so it can never pass for a live reading.
type demoClient struct{}

func NewDemoClient() PlatformClient {
	return &demoClient{}
}

func (d *demoClient) FetchMetrics(ctx context.Context, acc *models.SocialAccount, post *models.Post) (*transfer.MetricsSample, error) {
	return &transfer.MetricsSample{
		Likes:       rand.Int63n(500),
		Shares:      rand.Int63n(100),
		Comments:    rand.Int63n(50),
		Impressions: rand.Int63n(5000),
		CapturedAt:  time.Now(),
		Source:      SampleSourceDemo,
	}, nil
}

func (d *demoClient) PublishPost(ctx context.Context, acc *models.SocialAccount, post *models.Post) error {
	return nil
}
