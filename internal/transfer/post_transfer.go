package transfer

type PostCreation struct {
	Content      string   `json:"content" validate:"required"`
	Platforms    []string `json:"platforms" validate:"required,min=1"`
	ScheduledFor string   `json:"scheduledFor" validate:"required"`
}
