package template

import (
	"strings"

	"github.com/adam-gdovin/keysight-local-bot/internal/app/domain"
)

// Render substitutes the command placeholders in text:
//
//	$cmd  command name
//	$msg  invocation argument text
//	$usr  "@" + sender display name
//	$res  automation client reply (empty until the relay resolves)
//
// $usr is substituted before the final "@@" collapse, so templates may
// write either "$usr" or "@$usr" without doubling the mention prefix.
func Render(text, commandName string, user domain.ChatUser, inv domain.ChatInvocation) string {
	out := strings.ReplaceAll(text, "$cmd", commandName)
	out = strings.ReplaceAll(out, "$msg", inv.Args)
	out = strings.ReplaceAll(out, "$usr", "@"+user.DisplayName)
	out = strings.ReplaceAll(out, "$res", inv.Response)
	return strings.ReplaceAll(out, "@@", "@")
}
