package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ClientConnected - whether an automation client is admitted.
	ClientConnected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bot_client_connected",
		Help: "Whether an automation client is currently connected (1) or not (0)",
	})

	// ClientsRejected - connections refused while the slot was taken.
	ClientsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_clients_rejected_total",
		Help: "Number of automation client connections rejected because one was already active",
	})

	// ChatCommands - chat command dispatches by command name and outcome.
	ChatCommands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_chat_commands_total",
			Help: "Number of dispatched chat commands by outcome",
		}, []string{"command", "outcome"},
	)

	// RelayDuration - round trip time of a relayed command.
	RelayDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bot_relay_duration_seconds",
		Help:    "Time between relaying a command and receiving the keyed reply",
		Buckets: prometheus.DefBuckets,
	})
)
