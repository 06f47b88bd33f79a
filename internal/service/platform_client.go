package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-resty/resty/v2"
	config "github.com/sufia0/social-dashboard/configs"
	"github.com/sufia0/social-dashboard/internal/apperrors"
	"github.com/sufia0/social-dashboard/internal/models"
	"github.com/sufia0/social-dashboard/internal/transfer"
)

const (
	SampleSourceLive = "live"
	SampleSourceDemo = "demo"
)

// PlatformClient is the outbound capability for one social platform:
// fetching engagement metrics and publishing a post. Real clients carry a
// timeout and a bounded retry budget; the demo variant sits behind the same
// interface and is selected only by configuration.
type PlatformClient interface {
	FetchMetrics(ctx context.Context, acc *models.SocialAccount, post *models.Post) (*transfer.MetricsSample, error)
	PublishPost(ctx context.Context, acc *models.SocialAccount, post *models.Post) error
}

type ClientRegistry map[string]PlatformClient

// NewClientRegistry wires one client per known platform. With DemoMode set,
// every platform resolves to the synthetic client instead.
func NewClientRegistry(cfg config.Config) ClientRegistry {
	if cfg.DemoMode {
		demo := NewDemoClient()
		return ClientRegistry{
			models.PlatformTwitter:  demo,
			models.PlatformLinkedIn: demo,
		}
	}

	return ClientRegistry{
		models.PlatformTwitter:  NewTwitterClient(cfg),
		models.PlatformLinkedIn: NewLinkedInClient(cfg),
	}
}

func (r ClientRegistry) For(platform string) (PlatformClient, bool) {
	client, ok := r[platform]
	return client, ok
}

// newRestyClient applies the shared outbound policy: 10s per attempt,
// three retries with exponential backoff capped at 5s. Auth rejections are
// not retried.
func newRestyClient() *resty.Client {
	return resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp.StatusCode() >= 500
		})
}

// classifyResponse maps a platform API outcome onto the error taxonomy.
// Only genuine timeouts become upstream-timeout errors; other transport
// failures (DNS, TLS, refused connections) stay internal.
func classifyResponse(platform string, resp *resty.Response, err error) error {
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return apperrors.UpstreamTimeout(fmt.Sprintf("%s api timed out", platform), err)
		}
		return apperrors.Internal(fmt.Sprintf("%s api request failed after retries", platform), err)
	}

	switch {
	case resp.StatusCode() == 401 || resp.StatusCode() == 403:
		return apperrors.Credential(fmt.Sprintf("%s rejected stored credentials", platform), nil)
	case resp.StatusCode() >= 400:
		return apperrors.Internal(fmt.Sprintf("%s api returned status %d", platform, resp.StatusCode()), nil)
	}
	return nil
}
