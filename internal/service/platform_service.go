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
	"github.com/sufia0/social-dashboard/internal/repository"
	"github.com/sufia0/social-dashboard/internal/transfer"
	"github.com/sufia0/social-dashboard/pkg/utils"
	"golang.org/x/oauth2"
)

const (
	TwitterAuthURL   = "https://twitter.com/i/oauth2/authorize"
	TwitterTokenURL  = "https://api.twitter.com/2/oauth2/token"
	LinkedInAuthURL  = "https://www.linkedin.com/oauth/v2/authorization"
	LinkedInTokenURL = "https://www.linkedin.com/oauth/v2/accessToken"

	pendingAuthTTL = 10 * time.Minute
)

type PlatformService interface {
	BeginAuth(ctx context.Context, userID int64, platform string) (string, error)
	CompleteAuth(ctx context.Context, platform, code, state string) (*models.SocialAccount, error)
	List(ctx context.Context, userID int64) ([]*transfer.AccountInfo, error)
	Disconnect(ctx context.Context, userID, accountID int64) error
}

type platformService struct {
	cfg    config.Config
	sa     repository.SocialAccountRepository
	states repository.OAuthStateRepository
	client *resty.Client
}

func NewPlatformService(cfg config.Config, sa repository.SocialAccountRepository, states repository.OAuthStateRepository) PlatformService {
	return &platformService{
		cfg:    cfg,
		sa:     sa,
		states: states,
		client: newRestyClient(),
	}
}

func (s *platformService) oauthConfig(platform string) (*oauth2.Config, bool) {
	switch platform {
	case models.PlatformTwitter:
		return &oauth2.Config{
			ClientID:     s.cfg.Twitter.ClientID,
			ClientSecret: s.cfg.Twitter.ClientSecret,
			RedirectURL:  s.cfg.Twitter.RedirectURI,
			Scopes:       []string{"tweet.read", "tweet.write", "users.read", "offline.access"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  TwitterAuthURL,
				TokenURL: TwitterTokenURL,
			},
		}, true
	case models.PlatformLinkedIn:
		return &oauth2.Config{
			ClientID:     s.cfg.LinkedIn.ClientID,
			ClientSecret: s.cfg.LinkedIn.ClientSecret,
			RedirectURL:  s.cfg.LinkedIn.RedirectURI,
			Scopes:       []string{"openid", "profile", "w_member_social", "r_organization_social"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  LinkedInAuthURL,
				TokenURL: LinkedInTokenURL,
			},
		}, true
	}
	return nil, false
}

// BeginAuth generates a fresh state and PKCE verifier for this request,
// persists them keyed by state with a short TTL, and returns the platform
// authorization URL. State and verifier are never reused across requests.
func (s *platformService) BeginAuth(ctx context.Context, userID int64, platform string) (string, error) {
	conf, ok := s.oauthConfig(platform)
	if !ok {
		return "", apperrors.Validation(fmt.Sprintf("unknown platform %q", platform))
	}
	if conf.ClientID == "" || conf.ClientSecret == "" || conf.RedirectURL == "" {
		return "", apperrors.Internal(fmt.Sprintf("oauth configuration for %s is incomplete", platform), nil)
	}

	state, err := utils.GenerateState()
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	verifier := oauth2.GenerateVerifier()

	err = s.states.Save(ctx, state, &repository.PendingAuth{
		UserID:   userID,
		Platform: platform,
		Verifier: verifier,
	}, pendingAuthTTL)
	if err != nil {
		return "", err
	}

	return conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
	), nil
}

// CompleteAuth redeems the state (single use), exchanges code+verifier at
// the platform's token endpoint, and upserts the linked account. There is
// no fallback path that fabricates a connected account on failure.
func (s *platformService) CompleteAuth(ctx context.Context, platform, code, state string) (*models.SocialAccount, error) {
	if code == "" || state == "" {
		return nil, apperrors.Validation("code or state is empty")
	}

	conf, ok := s.oauthConfig(platform)
	if !ok {
		return nil, apperrors.Validation(fmt.Sprintf("unknown platform %q", platform))
	}

	pending, found, err := s.states.Consume(ctx, state)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.Auth("unknown or expired oauth state")
	}
	if pending.Platform != platform {
		return nil, apperrors.Auth("oauth state does not match this platform")
	}

	exchangeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	token, err := conf.Exchange(exchangeCtx, code, oauth2.VerifierOption(pending.Verifier))
	if err != nil {
		slog.Info(err.Error())
		return nil, apperrors.Credential("token exchange rejected by platform", err)
	}

	handle, err := s.fetchHandle(ctx, platform, token.AccessToken)
	if err != nil {
		// Non-fatal: the account still links, the handle backfills later.
		slog.Info(err.Error())
	}

	encryptedAccess, err := utils.Encrypt([]byte(token.AccessToken), []byte(s.cfg.EncryptionKey))
	if err != nil {
		return nil, err
	}
	encryptedRefresh, err := utils.Encrypt([]byte(token.RefreshToken), []byte(s.cfg.EncryptionKey))
	if err != nil {
		return nil, err
	}

	account := &models.SocialAccount{
		UserID:         pending.UserID,
		Platform:       platform,
		Handle:         handle,
		AccessToken:    encryptedAccess,
		RefreshToken:   encryptedRefresh,
		TokenExpiresAt: token.Expiry,
	}

	id, err := s.sa.Upsert(ctx, nil, account)
	if err != nil {
		return nil, err
	}
	account.ID = id

	return account, nil
}

func (s *platformService) fetchHandle(ctx context.Context, platform, accessToken string) (string, error) {
	switch platform {
	case models.PlatformTwitter:
		var body struct {
			Data struct {
				Username string `json:"username"`
			} `json:"data"`
		}
		resp, err := s.client.R().
			SetContext(ctx).
			SetAuthToken(accessToken).
			SetResult(&body).
			Get(twitterAPIBase + "/users/me")
		if cerr := classifyResponse(platform, resp, err); cerr != nil {
			return "", cerr
		}
		return body.Data.Username, nil

	case models.PlatformLinkedIn:
		var body struct {
			Sub  string `json:"sub"`
			Name string `json:"name"`
		}
		resp, err := s.client.R().
			SetContext(ctx).
			SetAuthToken(accessToken).
			SetResult(&body).
			Get("https://api.linkedin.com/v2/userinfo")
		if cerr := classifyResponse(platform, resp, err); cerr != nil {
			return "", cerr
		}
		return body.Sub, nil
	}
	return "", nil
}

func (s *platformService) List(ctx context.Context, userID int64) ([]*transfer.AccountInfo, error) {
	accounts, err := s.sa.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	infos := make([]*transfer.AccountInfo, 0, len(accounts))
	for _, acc := range accounts {
		infos = append(infos, &transfer.AccountInfo{
			ID:       acc.ID,
			Platform: acc.Platform,
			Handle:   acc.Handle,
		})
	}
	return infos, nil
}

func (s *platformService) Disconnect(ctx context.Context, userID, accountID int64) error {
	owned, err := s.sa.CheckByUserID(ctx, accountID, userID)
	if err != nil {
		return err
	}
	if !owned {
		return apperrors.NotFound("social account not found")
	}

	return s.sa.Remove(ctx, accountID)
}
