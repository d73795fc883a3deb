// Package stream owns the live connection to the backend's score-spike
// channel and feeds accepted alerts into the queue.
package stream

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lighthouse-ops/riskwatch/internal/alerts"
	"github.com/lighthouse-ops/riskwatch/internal/models"
	"github.com/sirupsen/logrus"
)

// State of the stream connection
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Observer is notified of each accepted alert. Notifications run on
// their own goroutines so a slow observer never blocks the read loop.
type Observer interface {
	AlertAccepted(ev models.AlertEvent)
}

// Stream reads the websocket channel, drops malformed or non-alert
// messages, and pushes the rest into the queue. The channel is
// receive-only; nothing is ever sent on it.
type Stream struct {
	url       string
	queue     *alerts.Queue
	observers []Observer
	reconnect bool
	dialer    *websocket.Dialer
	log       *logrus.Logger

	mu    sync.RWMutex
	state State
}

// New creates a stream feeding the given queue. When reconnect is
// false the stream gives up after the first disconnect and only
// surfaces the status; backoff reconnection is opt-in.
func New(url string, queue *alerts.Queue, reconnect bool, log *logrus.Logger, observers ...Observer) *Stream {
	return &Stream{
		url:       url,
		queue:     queue,
		observers: observers,
		reconnect: reconnect,
		dialer:    websocket.DefaultDialer,
		log:       log,
	}
}

// Connected reports whether the stream currently holds a live connection
func (s *Stream) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == Connected
}

func (s *Stream) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	s.log.Debugf("Stream %s", state)
}

// Run connects and consumes the channel until ctx is cancelled. With
// reconnect enabled it redials with capped exponential backoff after
// every disconnect; otherwise it returns on the first one. The
// connection is released on every exit path.
func (s *Stream) Run(ctx context.Context) {
	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		err := s.consume(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			s.log.Errorf("Stream disconnected: %v", err)
		}
		if !s.reconnect {
			return
		}

		s.log.Infof("Reconnecting to %s in %s", s.url, backoff)
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < maxBackoff {
			backoff *= 2
		}
	}
}

// consume opens one connection and reads it until error or cancellation
func (s *Stream) consume(ctx context.Context) error {
	s.setState(Connecting)

	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		s.setState(Disconnected)
		return err
	}
	defer func() {
		conn.Close()
		s.setState(Disconnected)
	}()

	// Unblock ReadMessage when the session is torn down.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	s.setState(Connected)
	s.log.Infof("Stream connected to %s", s.url)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		s.handleMessage(data)
	}
}

// handleMessage decodes one inbound payload. Malformed payloads are
// dropped; a single bad message never closes the connection.
func (s *Stream) handleMessage(data []byte) {
	var ev models.AlertEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		s.log.Debugf("Dropping malformed stream message: %v", err)
		return
	}
	if !bool(ev.Alert) {
		return
	}

	entry := s.queue.Push(ev)
	s.log.Infof("Alert queued: customer %d score %.1f (seq %d)", ev.CustomerID, ev.NewScore, entry.Seq)

	for _, obs := range s.observers {
		go obs.AlertAccepted(ev)
	}
}
