package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// PendingAuth binds an OAuth state value to the user who started the flow
// and the PKCE verifier generated for that single request.
type PendingAuth struct {
	UserID   int64  `json:"user_id"`
	Platform string `json:"platform"`
	Verifier string `json:"verifier"`
}

type OAuthStateRepository interface {
	Save(ctx context.Context, state string, pending *PendingAuth, ttl time.Duration) error
	Consume(ctx context.Context, state string) (*PendingAuth, bool, error)
}

type oauthStateRepository struct {
	rdb *redis.Client
}

func NewOAuthStateRepository(rdb *redis.Client) OAuthStateRepository {
	return &oauthStateRepository{rdb: rdb}
}

const stateKeyPrefix = "oauth_state:"

func (r *oauthStateRepository) Save(ctx context.Context, state string, pending *PendingAuth, ttl time.Duration) error {
	data, err := json.Marshal(pending)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	if err := r.rdb.Set(ctx, stateKeyPrefix+state, data, ttl).Err(); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// Consume fetches and deletes in one round trip, so a state value can be
// redeemed at most once.
func (r *oauthStateRepository) Consume(ctx context.Context, state string) (*PendingAuth, bool, error) {
	data, err := r.rdb.GetDel(ctx, stateKeyPrefix+state).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	var pending PendingAuth
	if err := json.Unmarshal(data, &pending); err != nil {
		slog.Info(err.Error())
		return nil, false, err
	}
	return &pending, true, nil
}
