package relay

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adam-gdovin/keysight-local-bot/pkg/logger"
)

func newTestCorrelator(t *testing.T, timeout time.Duration) (*Correlator, *Gatekeeper, *fakeClient) {
	t.Helper()

	g := NewGatekeeper()
	c := NewCorrelator(logger.NewNop(), g, timeout)

	client := &fakeClient{id: "client"}
	require.NoError(t, g.Admit(client))
	return c, g, client
}

func waitPending(t *testing.T, c *Correlator, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return c.Pending() == n
	}, time.Second, time.Millisecond)
}

func TestKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", Key("short"))
	assert.Equal(t, strings.Repeat("x", 20), Key(strings.Repeat("x", 25)))
	assert.Equal(t, strings.Repeat("ф", 20), Key(strings.Repeat("ф", 30)), "truncation must not split runes")
}

func TestCorrelator_NoClientFailsFast(t *testing.T) {
	t.Parallel()

	g := NewGatekeeper()
	c := NewCorrelator(logger.NewNop(), g, DefaultTimeout)

	start := time.Now()
	_, err := c.Send("lights on")
	assert.ErrorIs(t, err, ErrNoClient)
	assert.Less(t, time.Since(start), time.Second, "must fail without waiting for the deadline")
	assert.Zero(t, c.Pending(), "no listener may be registered")
}

func TestCorrelator_ResolvesWithKeyedReply(t *testing.T) {
	t.Parallel()

	c, _, client := newTestCorrelator(t, DefaultTimeout)

	msg := "@Bob requests north"
	done := make(chan struct{})
	var reply string
	var err error
	go func() {
		defer close(done)
		reply, err = c.Send(msg)
	}()

	waitPending(t, c, 1)
	require.Equal(t, 1, client.emitted())
	event, data := client.last()
	assert.Equal(t, EventCommand, event)
	assert.Equal(t, msg, data)

	require.True(t, c.Resolve(Key(msg), "ok"))
	<-done

	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.Zero(t, c.Pending())
}

func TestCorrelator_SettlesExactlyOnce(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestCorrelator(t, 50*time.Millisecond)

	var settled atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := c.Send("lights on")
		if errors.Is(err, ErrTimeout) {
			settled.Add(1)
		}
	}()
	<-done

	// The listener is deregistered on timeout; a late reply is ignored.
	assert.False(t, c.Resolve(Key("lights on"), "too late"))
	assert.Equal(t, int32(1), settled.Load())
	assert.Zero(t, c.Pending())
}

func TestCorrelator_DuplicateKeyRejected(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestCorrelator(t, DefaultTimeout)

	msg := "lights on"
	go func() {
		_, _ = c.Send(msg)
	}()
	waitPending(t, c, 1)

	_, err := c.Send(msg)
	assert.ErrorIs(t, err, ErrDuplicateRequest)

	// The first request is still pending and still resolvable.
	assert.Equal(t, 1, c.Pending())
	assert.True(t, c.Resolve(Key(msg), "ok"))
}

func TestCorrelator_DisconnectCancelsPending(t *testing.T) {
	t.Parallel()

	c, g, client := newTestCorrelator(t, DefaultTimeout)

	errCh := make(chan error, 2)
	go func() {
		_, err := c.Send("lights on")
		errCh <- err
	}()
	go func() {
		_, err := c.Send("sound off")
		errCh <- err
	}()
	waitPending(t, c, 2)

	require.True(t, g.Release(client))
	c.FailAll()

	for range 2 {
		assert.ErrorIs(t, <-errCh, ErrNoClient)
	}
	assert.Zero(t, c.Pending())
}

func TestCorrelator_EmitFailureCleansUp(t *testing.T) {
	t.Parallel()

	c, _, client := newTestCorrelator(t, DefaultTimeout)
	client.fail = true

	_, err := c.Send("lights on")
	assert.ErrorIs(t, err, ErrNoClient)
	assert.Zero(t, c.Pending())
}

func TestCorrelator_ConcurrentSendsResolveIndependently(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestCorrelator(t, DefaultTimeout)

	first := make(chan string, 1)
	second := make(chan string, 1)
	go func() {
		reply, _ := c.Send("lights on")
		first <- reply
	}()
	go func() {
		reply, _ := c.Send("sound off")
		second <- reply
	}()
	waitPending(t, c, 2)

	// Replies arrive out of request order and are attributed by key.
	require.True(t, c.Resolve(Key("sound off"), "muted"))
	require.True(t, c.Resolve(Key("lights on"), "lit"))

	assert.Equal(t, "muted", <-second)
	assert.Equal(t, "lit", <-first)
}
