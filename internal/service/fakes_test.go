package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sufia0/social-dashboard/internal/models"
	"github.com/sufia0/social-dashboard/internal/repository"
	"github.com/sufia0/social-dashboard/internal/transfer"
)

// In-memory repository fakes. The fakes mirror the SQL contracts the pq
// implementations rely on (ordering, join ownership, conflict dedup) so the
// services can be exercised without a database.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, false, nil
	}
	return user, true, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return user, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *sql.Tx, user *models.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	u := *user
	u.ID = f.nextID
	f.users[u.ID] = &u
	return u.ID, nil
}

func (f *fakeUserRepo) Remove(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

type fakePostRepo struct {
	mu     sync.Mutex
	nextID int64
	posts  map[int64]*models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[int64]*models.Post)}
}

func (f *fakePostRepo) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p := *post
	p.ID = f.nextID
	f.posts[p.ID] = &p
	return p.ID, nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	p := *post
	return &p, nil
}

func (f *fakePostRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var posts []*models.Post
	for _, post := range f.posts {
		if post.UserID == userID {
			p := *post
			posts = append(posts, &p)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].ScheduledTime.Equal(posts[j].ScheduledTime) {
			return posts[i].ID < posts[j].ID
		}
		return posts[i].ScheduledTime.Before(posts[j].ScheduledTime)
	})
	return posts, nil
}

func (f *fakePostRepo) GetLatestPublishedForPlatform(ctx context.Context, userID int64, platform string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *models.Post
	for _, post := range f.posts {
		if post.UserID != userID || post.Status != models.PostStatusPublished {
			continue
		}
		targets := false
		for _, p := range post.Platforms {
			if p == platform {
				targets = true
				break
			}
		}
		if !targets {
			continue
		}
		if latest == nil || post.ScheduledTime.After(latest.ScheduledTime) {
			latest = post
		}
	}
	if latest == nil {
		return nil, nil
	}
	p := *latest
	return &p, nil
}

func (f *fakePostRepo) MarkPublished(ctx context.Context, postID int64) (bool, error) {
	return f.updateStatus(postID, models.PostStatusPublished)
}

func (f *fakePostRepo) MarkFailed(ctx context.Context, postID int64) (bool, error) {
	return f.updateStatus(postID, models.PostStatusFailed)
}

func (f *fakePostRepo) updateStatus(postID int64, status string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[postID]
	if !ok || post.Status != models.PostStatusScheduled {
		return false, nil
	}
	post.Status = status
	return true, nil
}

func (f *fakePostRepo) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[postID]
	return ok && post.UserID == userID, nil
}

func (f *fakePostRepo) Remove(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.posts, id)
	return nil
}

type fakeAccountRepo struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]*models.SocialAccount
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[int64]*models.SocialAccount)}
}

func (f *fakeAccountRepo) Upsert(ctx context.Context, tx *sql.Tx, sa *models.SocialAccount) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, acc := range f.accounts {
		if acc.UserID == sa.UserID && acc.Platform == sa.Platform {
			acc.Handle = sa.Handle
			acc.AccessToken = sa.AccessToken
			acc.RefreshToken = sa.RefreshToken
			acc.TokenExpiresAt = sa.TokenExpiresAt
			return acc.ID, nil
		}
	}
	f.nextID++
	a := *sa
	a.ID = f.nextID
	f.accounts[a.ID] = &a
	return a.ID, nil
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id int64) (*models.SocialAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[id]
	if !ok {
		return nil, nil
	}
	a := *acc
	return &a, nil
}

func (f *fakeAccountRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.SocialAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var accounts []*models.SocialAccount
	for _, acc := range f.accounts {
		if acc.UserID == userID {
			a := *acc
			accounts = append(accounts, &a)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (f *fakeAccountRepo) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, acc := range f.accounts {
		if acc.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeAccountRepo) ListUserIDsWithAccounts(ctx context.Context) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[int64]bool)
	var userIDs []int64
	for _, acc := range f.accounts {
		if !seen[acc.UserID] {
			seen[acc.UserID] = true
			userIDs = append(userIDs, acc.UserID)
		}
	}
	return userIDs, nil
}

func (f *fakeAccountRepo) CheckByUserID(ctx context.Context, accountID, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[accountID]
	return ok && acc.UserID == userID, nil
}

func (f *fakeAccountRepo) Remove(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.accounts, id)
	return nil
}

type fakeMetricRepo struct {
	mu      sync.Mutex
	nextID  int64
	posts   *fakePostRepo
	records []*models.MetricRecord
	windows map[string]bool
}

func newFakeMetricRepo(posts *fakePostRepo) *fakeMetricRepo {
	return &fakeMetricRepo{posts: posts, windows: make(map[string]bool)}
}

func windowKey(postID int64, window time.Time) string {
	return fmt.Sprintf("%d/%s", postID, window.UTC())
}

func (f *fakeMetricRepo) Insert(ctx context.Context, record *models.MetricRecord) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := windowKey(record.PostID, record.CaptureWindow)
	if f.windows[key] {
		return false, nil
	}
	f.windows[key] = true
	f.nextID++
	m := *record
	m.ID = f.nextID
	f.records = append(f.records, &m)
	return true, nil
}

func (f *fakeMetricRepo) SumByUserID(ctx context.Context, userID int64) (*transfer.MetricTotals, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	totals := &transfer.MetricTotals{}
	for _, m := range f.records {
		post, ok := f.posts.posts[m.PostID]
		if !ok || post.UserID != userID {
			continue
		}
		totals.Likes += m.Likes
		totals.Shares += m.Shares
		totals.Comments += m.Comments
		totals.Impressions += m.Impressions
	}
	return totals, nil
}

func (f *fakeMetricRepo) ListByPostID(ctx context.Context, postID int64) ([]*models.MetricRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var records []*models.MetricRecord
	for _, m := range f.records {
		if m.PostID == postID {
			r := *m
			records = append(records, &r)
		}
	}
	return records, nil
}

type fakeStateRepo struct {
	mu      sync.Mutex
	pending map[string]*repository.PendingAuth
}

func newFakeStateRepo() *fakeStateRepo {
	return &fakeStateRepo{pending: make(map[string]*repository.PendingAuth)}
}

func (f *fakeStateRepo) Save(ctx context.Context, state string, pending *repository.PendingAuth, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := *pending
	f.pending[state] = &p
	return nil
}

func (f *fakeStateRepo) Consume(ctx context.Context, state string) (*repository.PendingAuth, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pending, ok := f.pending[state]
	if !ok {
		return nil, false, nil
	}
	delete(f.pending, state)
	return pending, true, nil
}

// fakeClient serves a fixed sample (or error) per call.
type fakeClient struct {
	mu         sync.Mutex
	sample     transfer.MetricsSample
	fetchErr   error
	publishErr error
	fetches    int
	publishes  int
}

func (f *fakeClient) FetchMetrics(ctx context.Context, acc *models.SocialAccount, post *models.Post) (*transfer.MetricsSample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	s := f.sample
	return &s, nil
}

func (f *fakeClient) PublishPost(ctx context.Context, acc *models.SocialAccount, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.publishes++
	return f.publishErr
}

var errUpstream = errors.New("upstream exploded")
