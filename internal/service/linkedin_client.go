package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	config "github.com/sufia0/social-dashboard/configs"
	"github.com/sufia0/social-dashboard/internal/apperrors"
	"github.com/sufia0/social-dashboard/internal/models"
	"github.com/sufia0/social-dashboard/internal/transfer"
	"github.com/sufia0/social-dashboard/pkg/utils"
)

const linkedinAPIBase = "https://api.linkedin.com/v2"

type linkedinClient struct {
	cfg    config.Config
	client *resty.Client
}

func NewLinkedInClient(cfg config.Config) PlatformClient {
	return &linkedinClient{
		cfg:    cfg,
		client: newRestyClient().SetBaseURL(linkedinAPIBase),
	}
}

type shareStatisticsResponse struct {
	Elements []struct {
		TotalShareStatistics struct {
			LikeCount       int64 `json:"likeCount"`
			ShareCount      int64 `json:"shareCount"`
			CommentCount    int64 `json:"commentCount"`
			ImpressionCount int64 `json:"impressionCount"`
		} `json:"totalShareStatistics"`
	} `json:"elements"`
}

func (l *linkedinClient) FetchMetrics(ctx context.Context, acc *models.SocialAccount, post *models.Post) (*transfer.MetricsSample, error) {
	accessToken, err := utils.Decrypt(acc.AccessToken, []byte(l.cfg.EncryptionKey))
	if err != nil {
		return nil, apperrors.Credential("unable to decrypt stored linkedin token", err)
	}

	var body shareStatisticsResponse
	resp, err := l.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetQueryParam("q", "organizationalEntity").
		SetQueryParam("organizationalEntity", acc.Handle).
		SetResult(&body).
		Get("/organizationalEntityShareStatistics")

	if cerr := classifyResponse(models.PlatformLinkedIn, resp, err); cerr != nil {
		slog.Info(cerr.Error())
		return nil, cerr
	}

	if len(body.Elements) == 0 {
		return nil, apperrors.NotFound("no share statistics available")
	}

	m := body.Elements[0].TotalShareStatistics
	return &transfer.MetricsSample{
		Likes:       m.LikeCount,
		Shares:      m.ShareCount,
		Comments:    m.CommentCount,
		Impressions: m.ImpressionCount,
		CapturedAt:  time.Now(),
		Source:      SampleSourceLive,
	}, nil
}

func (l *linkedinClient) PublishPost(ctx context.Context, acc *models.SocialAccount, post *models.Post) error {
	accessToken, err := utils.Decrypt(acc.AccessToken, []byte(l.cfg.EncryptionKey))
	if err != nil {
		return apperrors.Credential("unable to decrypt stored linkedin token", err)
	}

	payload := map[string]interface{}{
		"author":         acc.Handle,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]interface{}{
			"com.linkedin.ugc.ShareContent": map[string]interface{}{
				"shareCommentary": map[string]string{
					"text": post.Content,
				},
				"shareMediaCategory": "NONE",
			},
		},
		"visibility": map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	resp, err := l.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetBody(payload).
		Post("/ugcPosts")

	if cerr := classifyResponse(models.PlatformLinkedIn, resp, err); cerr != nil {
		slog.Info(cerr.Error())
		return cerr
	}
	return nil
}
