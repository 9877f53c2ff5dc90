package message

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/adam-gdovin/keysight-local-bot/internal/app/adapters/metrics"
	"github.com/adam-gdovin/keysight-local-bot/internal/app/domain"
	"github.com/adam-gdovin/keysight-local-bot/internal/app/domain/relay"
	"github.com/adam-gdovin/keysight-local-bot/internal/app/domain/template"
	"github.com/adam-gdovin/keysight-local-bot/internal/app/infrastructure/config"
	"github.com/adam-gdovin/keysight-local-bot/internal/app/ports"
	"github.com/adam-gdovin/keysight-local-bot/pkg/logger"
)

// Message routes chat invocations to the relay: trigger resolution,
// permission and argument checks, rendering and the reply templates.
type Message struct {
	log      logger.Logger
	manager  *config.Manager
	commands ports.CommandsPort
	relay    ports.RelayPort
	session  ports.SessionPort
	stats    ports.StatsPort
}

func New(log logger.Logger, manager *config.Manager, commands ports.CommandsPort, rel ports.RelayPort, session ports.SessionPort, stats ports.StatsPort) *Message {
	return &Message{
		log:      log,
		manager:  manager,
		commands: commands,
		relay:    rel,
		session:  session,
		stats:    stats,
	}
}

// Handle processes one chat message starting with the trigger marker.
func (m *Message) Handle(user domain.ChatUser, text string, reply func(string)) {
	if !strings.HasPrefix(text, "!") {
		return
	}

	inv := domain.ParseInvocation(text)
	if inv.Trigger == "" {
		return
	}

	if m.handleReserved(user, inv, reply) {
		return
	}

	if !m.session.IsAvailable() {
		m.log.Info("No automation client connected, ignoring chat command", slog.String("trigger", inv.Trigger))
		return
	}

	cmd, ok := m.commands.Resolve(inv.Trigger)
	if !ok {
		return
	}

	if !cmd.Authorized(user) {
		m.log.Debug("Insufficient permissions", slog.String("command", cmd.Name), slog.String("username", user.Username))
		metrics.ChatCommands.With(prometheus.Labels{"command": cmd.Name, "outcome": "unauthorized"}).Inc()

		if cmd.InsufficientPermissionsReply != "" {
			m.reply(reply, template.Render(cmd.InsufficientPermissionsReply, cmd.Name, user, inv))
		}
		return
	}

	if cmd.WantsArguments() && inv.Args == "" {
		m.log.Debug("Insufficient arguments", slog.String("command", cmd.Name), slog.String("username", user.Username))
		metrics.ChatCommands.With(prometheus.Labels{"command": cmd.Name, "outcome": "insufficient_args"}).Inc()

		if cmd.InsufficientArgumentsReply != "" {
			m.reply(reply, template.Render(cmd.InsufficientArgumentsReply, cmd.Name, user, inv))
		}
		return
	}

	rendered := template.Render(cmd.Message, cmd.Name, user, inv)

	start := time.Now()
	res, err := m.relay.Send(rendered)
	if err != nil {
		metrics.ChatCommands.With(prometheus.Labels{"command": cmd.Name, "outcome": outcomeLabel(err)}).Inc()

		// Failures never produce chat noise; a warning is only worth
		// logging when the author asked for feedback on some outcome.
		if cmd.SuccessReply != "" || cmd.InsufficientPermissionsReply != "" || cmd.InsufficientArgumentsReply != "" {
			m.log.Warn("Command relay failed", slog.String("command", cmd.Name), slog.String("error", err.Error()))
		} else {
			m.log.Debug("Command relay failed", slog.String("command", cmd.Name), slog.String("error", err.Error()))
		}
		return
	}
	metrics.RelayDuration.Observe(time.Since(start).Seconds())
	metrics.ChatCommands.With(prometheus.Labels{"command": cmd.Name, "outcome": "success"}).Inc()
	m.stats.Inc(cmd.Name)

	inv.Response = res
	if cmd.SuccessReply != "" {
		m.reply(reply, template.Render(cmd.SuccessReply, cmd.Name, user, inv))
	}
}

// reply sends text to chat unless the global responses toggle is off.
// The relay itself is never suppressed, only its chat feedback.
func (m *Message) reply(send func(string), text string) {
	if !m.manager.Get().Responses {
		m.log.Debug("Responses disabled, suppressing chat reply", slog.String("text", text))
		return
	}
	send(text)
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, relay.ErrTimeout):
		return "timeout"
	case errors.Is(err, relay.ErrNoClient):
		return "no_client"
	case errors.Is(err, relay.ErrDuplicateRequest):
		return "duplicate"
	}
	return "error"
}
