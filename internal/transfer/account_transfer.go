package transfer

// AccountInfo is the token-free view of a linked account.
type AccountInfo struct {
	ID       int64  `json:"id"`
	Platform string `json:"platform"`
	Handle   string `json:"handle"`
}
