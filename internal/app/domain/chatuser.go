package domain

// ChatUser is the per-message snapshot of the sender's chat presence.
// It is built fresh from the message tags and never persisted.
type ChatUser struct {
	Username    string
	DisplayName string
	Color       string

	IsBroadcaster bool
	IsMod         bool
	IsVip         bool
	IsSub         bool
	SubTier       int // 1-3, 0 when not subscribed
}
