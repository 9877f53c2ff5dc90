package relay

import "sync"

// Events of the websocket envelope protocol.
const (
	EventCommand = "command"
	EventError   = "error"
)

// Client is one downstream automation connection as seen by the relay.
type Client interface {
	ID() string
	Emit(event, data string) error
}

// Gatekeeper owns the single active client slot. A second connection is
// rejected while the slot is taken; there is no queue of waiting clients.
type Gatekeeper struct {
	mu     sync.Mutex
	active Client
}

func NewGatekeeper() *Gatekeeper {
	return &Gatekeeper{}
}

// Admit binds c as the active client. Fails with ErrSessionBusy when the
// slot is already taken; the current session is untouched.
func (g *Gatekeeper) Admit(c Client) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active != nil {
		return ErrSessionBusy
	}

	g.active = c
	return nil
}

// Release clears the slot when c is the bound client and reports whether
// it did. A release for a stale or rejected connection is a no-op.
func (g *Gatekeeper) Release(c Client) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active == nil || g.active.ID() != c.ID() {
		return false
	}

	g.active = nil
	return true
}

func (g *Gatekeeper) Active() Client {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.active
}

func (g *Gatekeeper) IsAvailable() bool {
	return g.Active() != nil
}
