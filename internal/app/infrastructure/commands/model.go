package commands

import (
	"strings"

	"github.com/adam-gdovin/keysight-local-bot/internal/app/domain"
)

type Permissions struct {
	Everyone bool `json:"everyone"`
	VIP      bool `json:"vip"`
	Mod      bool `json:"mod"`
	Tier1    bool `json:"tier1"`
	Tier2    bool `json:"tier2"`
	Tier3    bool `json:"tier3"`
}

// commandData is the raw commands.json shape, keyed by command name.
type commandData struct {
	Permissions                  Permissions `json:"permissions"`
	Triggers                     []string    `json:"triggers"`
	Message                      string      `json:"message"`
	SuccessReply                 string      `json:"success_reply"`
	InsufficientPermissionsReply string      `json:"insufficient_permissions_reply"`
	InsufficientArgumentsReply   string      `json:"insufficient_arguments_reply"`
}

// Command is one loaded command definition. Commands are immutable; a
// reload replaces the whole set.
type Command struct {
	Name        string
	Triggers    []string // lower-cased, leading "!" stripped
	Permissions Permissions
	Message     string

	// Optional reply templates; empty means stay silent for that outcome.
	SuccessReply                 string
	InsufficientPermissionsReply string
	InsufficientArgumentsReply   string
}

func newCommand(name string, data commandData) *Command {
	triggers := make([]string, 0, len(data.Triggers))
	for _, t := range data.Triggers {
		triggers = append(triggers, strings.TrimPrefix(strings.ToLower(t), "!"))
	}

	return &Command{
		Name:                         name,
		Triggers:                     triggers,
		Permissions:                  data.Permissions,
		Message:                      data.Message,
		SuccessReply:                 data.SuccessReply,
		InsufficientPermissionsReply: data.InsufficientPermissionsReply,
		InsufficientArgumentsReply:   data.InsufficientArgumentsReply,
	}
}

// Authorized reports whether user may run the command. The broadcaster is
// always allowed; subscriber tiers match exactly, a tier3 subscriber is
// not covered by a tier2 flag.
func (c *Command) Authorized(user domain.ChatUser) bool {
	switch {
	case user.IsBroadcaster:
		return true
	case c.Permissions.Everyone:
		return true
	case c.Permissions.VIP && user.IsVip:
		return true
	case c.Permissions.Mod && user.IsMod:
		return true
	case c.Permissions.Tier1 && user.SubTier == 1:
		return true
	case c.Permissions.Tier2 && user.SubTier == 2:
		return true
	case c.Permissions.Tier3 && user.SubTier == 3:
		return true
	}
	return false
}

// WantsArguments reports whether the command message references the
// argument placeholder. A command whose template omits $msg never hits
// the insufficient-arguments path, matching the file format's behavior.
func (c *Command) WantsArguments() bool {
	return strings.Contains(c.Message, "$msg")
}
