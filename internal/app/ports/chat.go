package ports

import "github.com/adam-gdovin/keysight-local-bot/internal/app/domain"

type ChatPort interface {
	Connect() error
	Disconnect() error
	Say(text string)
}

// MessagePort handles one parsed chat message. The reply callback delivers
// text back to the channel the message came from.
type MessagePort interface {
	Handle(user domain.ChatUser, text string, reply func(text string))
}
