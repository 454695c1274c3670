// Package push maintains the case-scoped subscription to the platform's
// message broker: at most one connection per case, decoded frames delivered
// over a channel, and automatic reconnection with a single pending retry.
package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/legalconnect/consult-client/internal/config"
	"github.com/legalconnect/consult-client/internal/model"
)

// SendDestination is the application destination outbound chat frames are
// published to.
const SendDestination = "/app/chat.send"

var (
	ErrNotConnected = errors.New("push channel is not connected")
	ErrClosed       = errors.New("push channel manager is closed")
)

type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateReconnecting
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	default:
		return "disconnected"
	}
}

// Manager owns the connection for the currently displayed case. It is bound
// to one case on first Connect and retries forever after a drop; only
// Disconnect stops it.
type Manager struct {
	endpoint  string
	delay     time.Duration
	heartbeat time.Duration
	dial      dialFunc
	logger    *slog.Logger

	frames chan model.Frame
	states chan State
	done   chan struct{}

	mu               sync.Mutex
	state            State
	caseID           int64
	credential       string
	tr               transport
	gen              int
	reconnectTimer   *time.Timer
	reconnectPending bool
	closed           bool
}

func New(cfg *config.Config, logger *slog.Logger) (*Manager, error) {
	endpoint, err := cfg.PushEndpoint()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve push endpoint: %w", err)
	}

	return &Manager{
		endpoint:  endpoint,
		delay:     cfg.Push.ReconnectDelay,
		heartbeat: cfg.Push.Heartbeat,
		dial:      dialSTOMP,
		logger:    logger.With("component", "push"),
		frames:    make(chan model.Frame, 64),
		states:    make(chan State, 16),
		done:      make(chan struct{}),
	}, nil
}

// Frames delivers decoded inbound frames. The channel is stable across
// reconnects.
func (m *Manager) Frames() <-chan model.Frame {
	return m.frames
}

// States reports every connection-state transition, in order.
func (m *Manager) States() <-chan State {
	return m.states
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Connect dials the broker and subscribes to the case topic. It is a no-op
// when a connection attempt for the same case is already active, and refuses
// a different case: switching cases means tearing this manager down and
// building a new one.
func (m *Manager) Connect(ctx context.Context, caseID int64, credential string) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.caseID != 0 && m.caseID != caseID {
		m.mu.Unlock()
		return fmt.Errorf("manager is bound to case %d", m.caseID)
	}
	if m.state == StateConnected || m.state == StateConnecting {
		m.mu.Unlock()
		return nil
	}
	m.caseID = caseID
	m.credential = credential
	m.setStateLocked(StateConnecting)
	m.mu.Unlock()

	tr, err := m.dial(ctx, m.endpoint, credential, m.heartbeat)
	if err != nil {
		m.logger.Error("connect failed", "case_id", caseID, "error", err)
		m.retryLater()
		return fmt.Errorf("failed to connect push channel: %w", err)
	}

	raw, err := tr.Subscribe(fmt.Sprintf("/topic/case/%d", caseID), uuid.NewString())
	if err != nil {
		_ = tr.Close()
		m.logger.Error("subscribe failed", "case_id", caseID, "error", err)
		m.retryLater()
		return fmt.Errorf("failed to subscribe to case topic: %w", err)
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		_ = tr.Close()
		return ErrClosed
	}
	m.tr = tr
	m.gen++
	gen := m.gen
	m.setStateLocked(StateConnected)
	m.mu.Unlock()

	m.logger.Info("push channel connected", "case_id", caseID)
	go m.readLoop(gen, raw)
	return nil
}

// Publish sends one outbound frame. Callers must treat ErrNotConnected (and
// any other error) as a signal to take their fallback path; nothing is queued
// here.
func (m *Manager) Publish(destination string, payload interface{}) error {
	m.mu.Lock()
	tr := m.tr
	connected := m.state == StateConnected
	m.mu.Unlock()

	if !connected || tr == nil {
		return ErrNotConnected
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal outbound frame: %w", err)
	}
	if err := tr.Send(destination, "application/json", body); err != nil {
		return fmt.Errorf("failed to publish frame: %w", err)
	}
	return nil
}

// Disconnect tears the channel down for good: idempotent, cancels any pending
// reconnection attempt, releases the socket.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	if m.reconnectTimer != nil {
		m.reconnectTimer.Stop()
		m.reconnectTimer = nil
	}
	m.reconnectPending = false
	tr := m.tr
	m.tr = nil
	m.setStateLocked(StateDisconnected)
	m.mu.Unlock()

	close(m.done)
	if tr != nil {
		_ = tr.Close()
	}
	m.logger.Info("push channel disconnected")
}

func (m *Manager) readLoop(gen int, raw <-chan []byte) {
	for payload := range raw {
		frame, err := model.DecodeFrame(payload)
		if err != nil {
			m.logger.Warn("dropping malformed frame", "error", err)
			continue
		}

		select {
		case m.frames <- frame:
		case <-m.done:
			return
		}
	}

	m.connectionDropped(gen)
}

// connectionDropped routes every failure mode (transport error, protocol
// error, abnormal close) onto the same reconnect path.
func (m *Manager) connectionDropped(gen int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || gen != m.gen {
		return
	}
	if m.tr != nil {
		_ = m.tr.Close()
		m.tr = nil
	}

	m.logger.Warn("push channel dropped, scheduling reconnect", "case_id", m.caseID, "delay", m.delay)
	m.setStateLocked(StateReconnecting)
	m.scheduleReconnectLocked()
}

func (m *Manager) retryLater() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.setStateLocked(StateReconnecting)
	m.scheduleReconnectLocked()
}

// scheduleReconnectLocked arms the retry timer. The pending guard keeps the
// invariant of at most one scheduled attempt at any time.
func (m *Manager) scheduleReconnectLocked() {
	if m.reconnectPending {
		return
	}
	m.reconnectPending = true
	m.reconnectTimer = time.AfterFunc(m.delay, m.retry)
}

func (m *Manager) retry() {
	m.mu.Lock()
	m.reconnectPending = false
	if m.closed {
		m.mu.Unlock()
		return
	}
	caseID, credential := m.caseID, m.credential
	m.mu.Unlock()

	// Connect re-arms the timer itself when the attempt fails.
	if err := m.Connect(context.Background(), caseID, credential); err != nil {
		m.logger.Warn("reconnect attempt failed", "case_id", caseID, "error", err)
	}
}

// setStateLocked records the transition and publishes it. When the channel is
// full the oldest buffered transition is discarded, never the newest: a
// lagging consumer always observes the latest edge, which the reload-on-
// reconnect logic depends on.
func (m *Manager) setStateLocked(s State) {
	if m.state == s {
		return
	}
	m.state = s

	for {
		select {
		case m.states <- s:
			return
		default:
		}

		select {
		case stale := <-m.states:
			m.logger.Debug("state channel full, dropping oldest transition", "state", stale.String())
		default:
		}
	}
}
