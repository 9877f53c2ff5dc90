package twitch

import (
	"log/slog"
	"strings"
	"time"

	twitchirc "github.com/gempir/go-twitch-irc/v4"
	"golang.org/x/time/rate"

	"github.com/adam-gdovin/keysight-local-bot/internal/app/ports"
	"github.com/adam-gdovin/keysight-local-bot/pkg/logger"
)

// Chat is the Twitch IRC transport. It hands every "!" message to the
// dispatcher together with a reply callback bound to the channel.
type Chat struct {
	log     logger.Logger
	channel string
	client  *twitchirc.Client

	// Twitch allows 20 messages per 30 seconds for regular accounts.
	limiter *rate.Limiter
}

func New(log logger.Logger, username, accessToken, channel string, dispatcher ports.MessagePort) *Chat {
	c := &Chat{
		log:     log,
		channel: channel,
		client:  twitchirc.NewClient(username, "oauth:"+accessToken),
		limiter: rate.NewLimiter(rate.Every(1500*time.Millisecond), 20),
	}

	c.client.OnConnect(func() {
		c.log.Info("Connected to Twitch chat", slog.String("channel", channel))
	})

	c.client.OnPrivateMessage(func(msg twitchirc.PrivateMessage) {
		if !strings.HasPrefix(msg.Message, "!") {
			return
		}

		user := chatUserFromMessage(msg)
		c.log.Debug("New chat command", slog.String("username", user.Username), slog.String("text", msg.Message))

		// A pending relay must not hold up the next chat message.
		go dispatcher.Handle(user, msg.Message, c.Say)
	})

	c.client.Join(channel)
	return c
}

// Connect blocks until the connection fails; gempir reconnects on
// transient errors internally.
func (c *Chat) Connect() error {
	return c.client.Connect()
}

func (c *Chat) Disconnect() error {
	return c.client.Disconnect()
}

func (c *Chat) Say(text string) {
	if !c.limiter.Allow() {
		c.log.Warn("Chat send budget exhausted, dropping reply", slog.String("text", text))
		return
	}

	c.client.Say(c.channel, text)
}
