package message

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/cpu"

	"github.com/adam-gdovin/keysight-local-bot/internal/app/domain"
	"github.com/adam-gdovin/keysight-local-bot/internal/app/infrastructure/config"
)

var startApp = time.Now()

// handleReserved intercepts the built-in triggers that are owned by the
// bot itself and never relayed. Reserved triggers shadow any command
// from the commands file.
func (m *Message) handleReserved(user domain.ChatUser, inv domain.ChatInvocation, reply func(string)) bool {
	switch inv.Trigger {
	case "responses":
		if !user.IsBroadcaster && !user.IsMod {
			return true
		}
		m.handleResponses(user, inv, reply)
		return true
	case "ping":
		if !user.IsBroadcaster && !user.IsMod {
			return true
		}
		// Confirmation bypasses the responses toggle, like !responses.
		reply(m.handlePing())
		return true
	}

	return false
}

func (m *Message) handleResponses(user domain.ChatUser, inv domain.ChatInvocation, reply func(string)) {
	var enabled bool
	switch strings.ToLower(inv.Args) {
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		reply(fmt.Sprintf("@%s usage: !responses on|off", user.DisplayName))
		return
	}

	if err := m.manager.Update(func(cfg *config.Config) {
		cfg.Responses = enabled
	}); err != nil {
		m.log.Error("Failed to persist responses toggle", err)
		return
	}

	m.log.Info("Responses toggle changed", slog.Bool("enabled", enabled), slog.String("username", user.Username))
	if enabled {
		reply("chat responses enabled")
	} else {
		reply("chat responses disabled")
	}
}

func (m *Message) handlePing() string {
	uptime := time.Since(startApp)

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	percent, _ := cpu.Percent(0, false)
	if len(percent) == 0 {
		percent = append(percent, 0)
	}

	return fmt.Sprintf("bot up %v • CPU %.2f%% • RAM %v MB", uptime.Truncate(time.Second), percent[0], mem.Sys/1024/1024)
}
