package app

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	router "github.com/adam-gdovin/keysight-local-bot/internal/app/adapters/http"
	"github.com/adam-gdovin/keysight-local-bot/internal/app/adapters/message"
	"github.com/adam-gdovin/keysight-local-bot/internal/app/adapters/platform/twitch"
	"github.com/adam-gdovin/keysight-local-bot/internal/app/adapters/platform/twitch/auth"
	"github.com/adam-gdovin/keysight-local-bot/internal/app/adapters/stats"
	"github.com/adam-gdovin/keysight-local-bot/internal/app/adapters/ws"
	"github.com/adam-gdovin/keysight-local-bot/internal/app/domain/relay"
	"github.com/adam-gdovin/keysight-local-bot/internal/app/infrastructure/commands"
	"github.com/adam-gdovin/keysight-local-bot/internal/app/infrastructure/config"
	"github.com/adam-gdovin/keysight-local-bot/pkg/logger"
)

const (
	configPath = "config.json"

	commandsPollInterval = 2 * time.Second
)

func New() error {
	_ = godotenv.Load()
	log := logger.New()

	manager, err := config.New(configPath)
	if err != nil {
		log.Fatal("Error loading config", err)
	}

	cfg := manager.Get()
	log.SetLogLevel(cfg.App.LogLevel)
	gin.SetMode(cfg.App.GinMode)

	clientID := cfg.App.ClientID
	if env := os.Getenv("TWITCH_CLIENT_ID"); env != "" {
		clientID = env
	}

	identity, err := auth.EnsureToken(logger.NewPrefixedLogger(log, "auth"), clientID, cfg.App.TokenFile)
	if err != nil {
		log.Error("Error obtaining access token", err)
		return err
	}

	channel := cfg.App.Channel
	if channel == "" {
		channel = identity.Login
	}

	cmds, err := commands.New(logger.NewPrefixedLogger(log, "commands"), cfg.App.CommandsFile)
	if err != nil {
		log.Error("Error loading commands", err)
		return err
	}
	cmds.Watch(commandsPollInterval)

	if _, err := os.Stat("cache"); os.IsNotExist(err) {
		if err := os.Mkdir("cache", 0700); err != nil {
			log.Error("Error creating cache directory", err)
			return err
		}
	} else if err != nil {
		log.Error("Error stat cache directory", err)
		return err
	}
	usage := stats.New("cache/usage.json")

	gatekeeper := relay.NewGatekeeper()
	correlator := relay.NewCorrelator(logger.NewPrefixedLogger(log, "relay"), gatekeeper, relay.DefaultTimeout)

	dispatcher := message.New(log, manager, cmds, correlator, gatekeeper, usage)

	chat := twitch.New(logger.NewPrefixedLogger(log, "chat"), identity.Login, identity.AccessToken, channel, dispatcher)
	go func() {
		if err := chat.Connect(); err != nil {
			log.Fatal("Twitch chat connection failed", err)
		}
	}()

	server := ws.New(logger.NewPrefixedLogger(log, "ws"), gatekeeper, correlator)
	r := router.NewRouter(log, manager, cmds, gatekeeper, usage, server)
	go func() {
		if err := r.Run(cfg.App.Port); err != nil {
			log.Fatal("HTTP server failed", err)
		}
	}()

	log.Info("Bot started",
		slog.String("channel", channel),
		slog.Int("port", cfg.App.Port),
	)
	return nil
}
