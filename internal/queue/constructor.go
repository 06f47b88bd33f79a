package queue

import (
	"github.com/sufia0/social-dashboard/internal/repository"
	"github.com/sufia0/social-dashboard/internal/service"
)

type Queue struct {
	pr repository.PostRepository
	ac repository.SocialAccountRepository
	ph repository.PublishHistoryRepository
	cl service.ClientRegistry
}

func NewQueue(
	pr repository.PostRepository,
	ac repository.SocialAccountRepository,
	ph repository.PublishHistoryRepository,
	cl service.ClientRegistry) *Queue {
	return &Queue{
		pr: pr,
		ac: ac,
		ph: ph,
		cl: cl,
	}
}

const TaskTypePublishPost = "publish:post"

type PublishPostPayload struct {
	PostID int64 `json:"post_id"`
}
