package ws

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/adam-gdovin/keysight-local-bot/internal/app/adapters/metrics"
	"github.com/adam-gdovin/keysight-local-bot/internal/app/domain/relay"
	"github.com/adam-gdovin/keysight-local-bot/pkg/logger"
)

// Keepalive numbers of the original wire protocol.
const (
	pingInterval = 15 * time.Second
	pongWait     = pingInterval + 5*time.Second
)

const rejectNotice = "Only one client allowed at a time."

// Server accepts automation client connections on a websocket endpoint,
// admits at most one of them through the gatekeeper and feeds reply
// events into the correlator.
type Server struct {
	log        logger.Logger
	gatekeeper *relay.Gatekeeper
	correlator *relay.Correlator
	upgrader   websocket.Upgrader
}

func New(log logger.Logger, gatekeeper *relay.Gatekeeper, correlator *relay.Correlator) *Server {
	return &Server{
		log:        log,
		gatekeeper: gatekeeper,
		correlator: correlator,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: 10 * time.Second,
			// The endpoint only listens on localhost; the automation
			// client is not a browser.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (s *Server) Handle(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Error("Failed to upgrade websocket connection", err, slog.String("remote", c.Request.RemoteAddr))
		return
	}

	cl := newClient(conn)
	if err := s.gatekeeper.Admit(cl); err != nil {
		s.log.Warn("Rejecting client, another one is connected", slog.String("id", cl.ID()), slog.String("remote", c.Request.RemoteAddr))
		metrics.ClientsRejected.Inc()

		_ = cl.Emit(relay.EventError, rejectNotice)
		cl.close()
		return
	}

	s.log.Info("Client connected", slog.String("id", cl.ID()), slog.String("remote", c.Request.RemoteAddr))
	metrics.ClientConnected.Set(1)

	stopPing := make(chan struct{})
	go s.pingLoop(cl, stopPing)
	s.readLoop(cl)
	close(stopPing)

	if s.gatekeeper.Release(cl) {
		s.log.Info("Client disconnected", slog.String("id", cl.ID()))
		metrics.ClientConnected.Set(0)

		// Requests still waiting for this client can never resolve.
		s.correlator.FailAll()
	}
	cl.close()
}

func (s *Server) readLoop(cl *client) {
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var env Envelope
		if err := cl.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("Client read failed", slog.String("id", cl.ID()), slog.String("error", err.Error()))
			}
			return
		}

		if s.correlator.Resolve(env.Event, env.Data) {
			s.log.Debug("Reply matched to pending command", slog.String("key", env.Event))
		} else {
			s.log.Debug("Dropping unmatched client event", slog.String("event", env.Event))
		}
	}
}

func (s *Server) pingLoop(cl *client, stop <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := cl.ping(); err != nil {
				return
			}
		case <-stop:
			return
		}
	}
}
