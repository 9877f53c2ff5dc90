package domain

import "strings"

// ChatInvocation is a single parsed "!trigger rest of message" chat line.
type ChatInvocation struct {
	Trigger  string // lower-cased, leading "!" stripped
	Args     string
	Response string // automation client reply, set once the relay resolves
}

func ParseInvocation(text string) ChatInvocation {
	first, rest, _ := strings.Cut(text, " ")
	return ChatInvocation{
		Trigger: strings.ToLower(strings.TrimPrefix(first, "!")),
		Args:    strings.TrimSpace(rest),
	}
}
