package http

import (
	"fmt"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adam-gdovin/keysight-local-bot/internal/app/adapters/ws"
	"github.com/adam-gdovin/keysight-local-bot/internal/app/domain/relay"
	"github.com/adam-gdovin/keysight-local-bot/internal/app/infrastructure/config"
	"github.com/adam-gdovin/keysight-local-bot/internal/app/ports"
	"github.com/adam-gdovin/keysight-local-bot/pkg/logger"
)

// Router exposes the websocket endpoint for the automation client plus
// the operational surface: status index, metrics and pprof.
type Router struct {
	router *gin.Engine

	log        logger.Logger
	manager    *config.Manager
	commands   ports.CommandsPort
	gatekeeper *relay.Gatekeeper
	stats      ports.StatsPort
}

func NewRouter(log logger.Logger, manager *config.Manager, commands ports.CommandsPort, gatekeeper *relay.Gatekeeper, stats ports.StatsPort, server *ws.Server) *Router {
	r := &Router{
		router:     gin.Default(),
		log:        log,
		manager:    manager,
		commands:   commands,
		gatekeeper: gatekeeper,
		stats:      stats,
	}
	cfg := manager.Get()

	pprofGroup := r.router.Group("/", gin.BasicAuth(gin.Accounts{
		"admin": cfg.App.AuthToken,
	}))
	pprof.Register(pprofGroup)

	r.router.GET("/metrics", gin.BasicAuth(gin.Accounts{
		"admin": cfg.App.AuthToken,
	}), gin.WrapH(promhttp.Handler()))

	r.router.GET("/ws", server.Handle)
	r.router.GET("/", r.indexHandler)
	return r
}

func (r *Router) Run(port int) error {
	return r.router.Run(fmt.Sprintf(":%d", port))
}
