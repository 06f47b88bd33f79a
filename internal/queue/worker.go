package queue

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/sufia0/social-dashboard/internal/models"
)

func (j *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	return j.PublishPost(ctx, payload.PostID)
}

// PublishPost pushes the post to every target platform the owner has
// linked. Platforms fan out concurrently; each attempt lands in publish
// history, and the status transition stays monotonic: only a still
// scheduled post flips to published or failed.
func (j *Queue) PublishPost(ctx context.Context, postID int64) error {
	post, err := j.pr.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		log.Printf("Post %d no longer exists, dropping publication task", postID)
		return nil
	}
	if post.Status != models.PostStatusScheduled {
		log.Printf("Post %d is %s, not scheduled; skipping", postID, post.Status)
		return nil
	}

	accounts, err := j.ac.ListByUserID(ctx, post.UserID)
	if err != nil {
		return err
	}

	accountByPlatform := make(map[string]*models.SocialAccount, len(accounts))
	for _, acc := range accounts {
		accountByPlatform[acc.Platform] = acc
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 10)

	failures := make([]bool, len(post.Platforms))

	for i, platform := range post.Platforms {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(i int, platform string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			failures[i] = !j.publishToPlatform(ctx, post, platform, accountByPlatform[platform])
		}(i, platform)
	}

	wg.Wait()

	failed := false
	for _, f := range failures {
		if f {
			failed = true
			break
		}
	}

	var updated bool
	if failed {
		updated, err = j.pr.MarkFailed(ctx, post.ID)
	} else {
		updated, err = j.pr.MarkPublished(ctx, post.ID)
	}
	if err != nil {
		return err
	}
	if !updated {
		log.Printf("Post %d status changed concurrently, leaving as-is", post.ID)
	}
	return nil
}

func (j *Queue) publishToPlatform(ctx context.Context, post *models.Post, platform string, acc *models.SocialAccount) bool {
	history := models.PublishHistory{
		UserID:   post.UserID,
		PostID:   post.ID,
		Platform: platform,
	}

	var err error
	switch {
	case acc == nil:
		history.ErrorMessage = "no linked account for platform"
	default:
		client, ok := j.cl.For(platform)
		if !ok {
			history.ErrorMessage = "no client for platform"
			break
		}
		if err = client.PublishPost(ctx, acc, post); err != nil {
			history.ErrorMessage = err.Error()
			log.Printf("Error publishing post %d to %s: %v", post.ID, platform, err)
		}
	}

	if _, herr := j.ph.Create(ctx, &history); herr != nil {
		log.Printf("Error saving publish history for post %d: %v", post.ID, herr)
	}

	return history.ErrorMessage == ""
}
