package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	config "github.com/sufia0/social-dashboard/configs"
	"github.com/sufia0/social-dashboard/internal/apperrors"
	"github.com/sufia0/social-dashboard/internal/models"
	"github.com/sufia0/social-dashboard/internal/transfer"
	"github.com/sufia0/social-dashboard/pkg/utils"
)

const twitterAPIBase = "https://api.twitter.com/2"

type twitterClient struct {
	cfg    config.Config
	client *resty.Client
}

func NewTwitterClient(cfg config.Config) PlatformClient {
	return &twitterClient{
		cfg:    cfg,
		client: newRestyClient().SetBaseURL(twitterAPIBase),
	}
}

type tweetMetricsResponse struct {
	Data []struct {
		ID            string `json:"id"`
		PublicMetrics struct {
			LikeCount       int64 `json:"like_count"`
			RetweetCount    int64 `json:"retweet_count"`
			ReplyCount      int64 `json:"reply_count"`
			ImpressionCount int64 `json:"impression_count"`
		} `json:"public_metrics"`
	} `json:"data"`
}

func (t *twitterClient) FetchMetrics(ctx context.Context, acc *models.SocialAccount, post *models.Post) (*transfer.MetricsSample, error) {
	accessToken, err := utils.Decrypt(acc.AccessToken, []byte(t.cfg.EncryptionKey))
	if err != nil {
		return nil, apperrors.Credential("unable to decrypt stored twitter token", err)
	}

	var body tweetMetricsResponse
	resp, err := t.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetQueryParam("tweet.fields", "public_metrics").
		SetQueryParam("max_results", "5").
		SetResult(&body).
		Get(fmt.Sprintf("/users/%s/tweets", acc.Handle))

	if cerr := classifyResponse(models.PlatformTwitter, resp, err); cerr != nil {
		slog.Info(cerr.Error())
		return nil, cerr
	}

	if len(body.Data) == 0 {
		return nil, apperrors.NotFound("no recent tweets with metrics")
	}

	m := body.Data[0].PublicMetrics
	return &transfer.MetricsSample{
		Likes:       m.LikeCount,
		Shares:      m.RetweetCount,
		Comments:    m.ReplyCount,
		Impressions: m.ImpressionCount,
		CapturedAt:  time.Now(),
		Source:      SampleSourceLive,
	}, nil
}

func (t *twitterClient) PublishPost(ctx context.Context, acc *models.SocialAccount, post *models.Post) error {
	accessToken, err := utils.Decrypt(acc.AccessToken, []byte(t.cfg.EncryptionKey))
	if err != nil {
		return apperrors.Credential("unable to decrypt stored twitter token", err)
	}

	resp, err := t.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetBody(map[string]string{"text": post.Content}).
		Post("/tweets")

	if cerr := classifyResponse(models.PlatformTwitter, resp, err); cerr != nil {
		slog.Info(cerr.Error())
		return cerr
	}
	return nil
}
