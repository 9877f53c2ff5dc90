package relay

import (
	"log/slog"
	"sync"
	"time"

	"github.com/adam-gdovin/keysight-local-bot/pkg/logger"
)

const (
	// DefaultTimeout is how long Send waits for the keyed reply.
	DefaultTimeout = 5 * time.Second

	// keyLength is the correlation key size. The wire contract with the
	// automation client is "reply on an event named by the first 20
	// characters of the command message", so the prefix is truncated,
	// never hashed. Command authors must keep message prefixes distinct
	// within the timeout window or replies may be misattributed.
	keyLength = 20
)

// Correlator matches each relayed command message to the eventual reply
// event carrying the same correlation key. Every in-flight send owns one
// entry in the pending table; settlement removes the entry under the
// mutex, which makes resolution exactly-once on every exit path.
type Correlator struct {
	log     logger.Logger
	session *Gatekeeper
	timeout time.Duration

	mu      sync.Mutex
	pending map[string]chan string
}

func NewCorrelator(log logger.Logger, session *Gatekeeper, timeout time.Duration) *Correlator {
	return &Correlator{
		log:     log,
		session: session,
		timeout: timeout,
		pending: make(map[string]chan string),
	}
}

// Key derives the correlation key for a rendered command message.
func Key(message string) string {
	runes := []rune(message)
	if len(runes) <= keyLength {
		return message
	}
	return string(runes[:keyLength])
}

// Send emits message to the admitted client as a "command" event and
// waits for the reply event named by the correlation key. It fails fast
// with ErrNoClient when no client is admitted, without registering a
// listener or a timer.
func (c *Correlator) Send(message string) (string, error) {
	client := c.session.Active()
	if client == nil {
		return "", ErrNoClient
	}

	key := Key(message)
	ch := make(chan string, 1)

	c.mu.Lock()
	if _, exists := c.pending[key]; exists {
		c.mu.Unlock()
		return "", ErrDuplicateRequest
	}
	c.pending[key] = ch
	c.mu.Unlock()

	if err := client.Emit(EventCommand, message); err != nil {
		c.log.Warn("Failed to emit command to client", slog.String("key", key), slog.String("error", err.Error()))
		c.forget(key)
		return "", ErrNoClient
	}

	c.log.Debug("Command relayed, waiting for reply", slog.String("key", key))

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case reply, ok := <-ch:
		if !ok {
			return "", ErrNoClient
		}
		return reply, nil
	case <-timer.C:
	}

	// Deadline hit: deregister the listener. When the entry is already
	// gone, Resolve or FailAll settled it between the timer firing and
	// the lock above, and the outcome is sitting in the channel.
	c.mu.Lock()
	_, present := c.pending[key]
	delete(c.pending, key)
	c.mu.Unlock()

	if !present {
		select {
		case reply, ok := <-ch:
			if !ok {
				return "", ErrNoClient
			}
			return reply, nil
		default:
		}
	}

	c.log.Warn("Command timed out", slog.String("key", key))
	return "", ErrTimeout
}

// Resolve delivers a reply event to the pending send with the matching
// key. Replies arriving after the send settled are dropped.
func (c *Correlator) Resolve(key, reply string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch, ok := c.pending[key]
	if !ok {
		return false
	}

	delete(c.pending, key)
	ch <- reply
	return true
}

// FailAll cancels every pending send with ErrNoClient. Called when the
// active client disconnects.
func (c *Correlator) FailAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, ch := range c.pending {
		delete(c.pending, key)
		close(ch)
	}
}

// Pending reports how many sends are in flight.
func (c *Correlator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.pending)
}

func (c *Correlator) forget(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.pending, key)
}
