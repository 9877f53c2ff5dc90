package ws

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// client wraps one websocket connection behind the relay.Client
// interface. The mutex serializes writes; gorilla allows only one
// concurrent writer per connection.
type client struct {
	id   string
	conn *websocket.Conn

	mu sync.Mutex
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		id:   uuid.NewString(),
		conn: conn,
	}
}

func (c *client) ID() string {
	return c.id
}

func (c *client) Emit(event, data string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(Envelope{Event: event, Data: data})
}

func (c *client) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (c *client) close() {
	_ = c.conn.Close()
}
