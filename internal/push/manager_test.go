package push

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalconnect/consult-client/internal/model"
)

type sentFrame struct {
	destination string
	contentType string
	body        []byte
}

type fakeTransport struct {
	mu          sync.Mutex
	raw         chan []byte
	sent        []sentFrame
	destination string
	closed      bool
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{raw: make(chan []byte, 16)}
}

func (f *fakeTransport) Subscribe(destination, id string) (<-chan []byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destination = destination
	return f.raw, nil
}

func (f *fakeTransport) Send(destination, contentType string, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentFrame{destination, contentType, body})
	return nil
}

func (f *fakeTransport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.raw)
	}
	return nil
}

func (f *fakeTransport) push(payload string) {
	f.raw <- []byte(payload)
}

func (f *fakeTransport) sentFrames() []sentFrame {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentFrame, len(f.sent))
	copy(out, f.sent)
	return out
}

func newTestManager(dial dialFunc) *Manager {
	return &Manager{
		endpoint:  "ws://test/ws",
		delay:     20 * time.Millisecond,
		heartbeat: time.Second,
		dial:      dial,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		frames:    make(chan model.Frame, 64),
		states:    make(chan State, 16),
		done:      make(chan struct{}),
	}
}

func waitState(t *testing.T, m *Manager, want State) {
	t.Helper()
	select {
	case s := <-m.States():
		assert.Equal(t, want.String(), s.String())
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for state %s", want)
	}
}

func waitFrame(t *testing.T, m *Manager) model.Frame {
	t.Helper()
	select {
	case f := <-m.Frames():
		return f
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
		return model.Frame{}
	}
}

func TestManager_ConnectAndDeliver(t *testing.T) {
	t.Parallel()

	tr := newFakeTransport()
	m := newTestManager(func(ctx context.Context, endpoint, credential string, heartbeat time.Duration) (transport, error) {
		assert.Equal(t, "ws://test/ws", endpoint)
		assert.Equal(t, "test-token", credential)
		return tr, nil
	})
	defer m.Disconnect()

	require.NoError(t, m.Connect(context.Background(), 7, "test-token"))
	waitState(t, m, StateConnecting)
	waitState(t, m, StateConnected)
	assert.Equal(t, "/topic/case/7", tr.destination)

	tr.push(`{"id": 1, "caseId": 7, "senderId": 42, "senderType": "lawyer", "messageText": "hello"}`)
	frame := waitFrame(t, m)
	assert.Equal(t, model.FrameMessage, frame.Kind)
	assert.Equal(t, int64(1), frame.Message.ID)
}

func TestManager_MalformedFramesAreDropped(t *testing.T) {
	t.Parallel()

	tr := newFakeTransport()
	m := newTestManager(func(context.Context, string, string, time.Duration) (transport, error) {
		return tr, nil
	})
	defer m.Disconnect()

	require.NoError(t, m.Connect(context.Background(), 7, "t"))

	tr.push(`{not json`)
	tr.push(`{"id": 1, "unknown": "shape"}`)
	tr.push(`{"id": 2, "caseId": 7, "messageText": "survives"}`)

	frame := waitFrame(t, m)
	assert.Equal(t, int64(2), frame.Message.ID)

	select {
	case f := <-m.Frames():
		t.Fatalf("unexpected extra frame: %+v", f)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestManager_ConnectIsCaseBound(t *testing.T) {
	t.Parallel()

	dials := 0
	m := newTestManager(func(context.Context, string, string, time.Duration) (transport, error) {
		dials++
		return newFakeTransport(), nil
	})
	defer m.Disconnect()

	require.NoError(t, m.Connect(context.Background(), 7, "t"))

	// Same case while connected is a no-op.
	require.NoError(t, m.Connect(context.Background(), 7, "t"))
	assert.Equal(t, 1, dials)

	// A different case is a programming error.
	err := m.Connect(context.Background(), 8, "t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bound to case 7")
}

func TestManager_PublishRequiresConnection(t *testing.T) {
	t.Parallel()

	tr := newFakeTransport()
	m := newTestManager(func(context.Context, string, string, time.Duration) (transport, error) {
		return tr, nil
	})
	defer m.Disconnect()

	err := m.Publish(SendDestination, model.SendMessageRequest{CaseID: 7})
	assert.ErrorIs(t, err, ErrNotConnected)

	require.NoError(t, m.Connect(context.Background(), 7, "t"))
	require.NoError(t, m.Publish(SendDestination, model.SendMessageRequest{CaseID: 7, MessageText: "hello"}))

	sent := tr.sentFrames()
	require.Len(t, sent, 1)
	assert.Equal(t, SendDestination, sent[0].destination)
	assert.Equal(t, "application/json", sent[0].contentType)
	assert.Contains(t, string(sent[0].body), `"messageText":"hello"`)
}

func TestManager_ReconnectsAfterDrop(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var transports []*fakeTransport
	m := newTestManager(func(context.Context, string, string, time.Duration) (transport, error) {
		mu.Lock()
		defer mu.Unlock()
		tr := newFakeTransport()
		transports = append(transports, tr)
		return tr, nil
	})
	defer m.Disconnect()

	require.NoError(t, m.Connect(context.Background(), 7, "t"))
	waitState(t, m, StateConnecting)
	waitState(t, m, StateConnected)

	mu.Lock()
	first := transports[0]
	mu.Unlock()
	first.Close()

	waitState(t, m, StateReconnecting)
	waitState(t, m, StateConnecting)
	waitState(t, m, StateConnected)

	mu.Lock()
	assert.Len(t, transports, 2)
	second := transports[1]
	mu.Unlock()

	// The frame channel survives the reconnect.
	second.push(`{"id": 3, "caseId": 7, "messageText": "after reconnect"}`)
	frame := waitFrame(t, m)
	assert.Equal(t, int64(3), frame.Message.ID)
}

func TestManager_StateOverflowKeepsNewestEdge(t *testing.T) {
	t.Parallel()

	m := newTestManager(func(context.Context, string, string, time.Duration) (transport, error) {
		return newFakeTransport(), nil
	})

	// Nobody is consuming; overflow the buffer with alternating transitions.
	// The newest edge must survive, or a slow consumer would miss the
	// connected edge it resyncs on.
	for i := 0; i < 3*cap(m.states); i++ {
		if i%2 == 0 {
			m.setStateLocked(StateReconnecting)
		} else {
			m.setStateLocked(StateConnected)
		}
	}

	var last State
	drained := false
	for !drained {
		select {
		case s := <-m.states:
			last = s
		default:
			drained = true
		}
	}

	assert.Equal(t, StateConnected, last)
	assert.Equal(t, StateConnected, m.State())
}

func TestManager_RetriesFailedConnect(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	attempts := 0
	m := newTestManager(func(context.Context, string, string, time.Duration) (transport, error) {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts == 1 {
			return nil, fmt.Errorf("broker down")
		}
		return newFakeTransport(), nil
	})
	defer m.Disconnect()

	err := m.Connect(context.Background(), 7, "t")
	require.Error(t, err)

	waitState(t, m, StateConnecting)
	waitState(t, m, StateReconnecting)
	waitState(t, m, StateConnecting)
	waitState(t, m, StateConnected)

	mu.Lock()
	assert.Equal(t, 2, attempts)
	mu.Unlock()
}

func TestManager_Disconnect(t *testing.T) {
	t.Parallel()

	t.Run("idempotent and final", func(t *testing.T) {
		m := newTestManager(func(context.Context, string, string, time.Duration) (transport, error) {
			return newFakeTransport(), nil
		})

		require.NoError(t, m.Connect(context.Background(), 7, "t"))
		m.Disconnect()
		m.Disconnect()

		assert.Equal(t, StateDisconnected, m.State())
		assert.ErrorIs(t, m.Publish(SendDestination, nil), ErrNotConnected)
		assert.ErrorIs(t, m.Connect(context.Background(), 7, "t"), ErrClosed)
	})

	t.Run("cancels a pending reconnect", func(t *testing.T) {
		var mu sync.Mutex
		attempts := 0
		m := newTestManager(func(context.Context, string, string, time.Duration) (transport, error) {
			mu.Lock()
			defer mu.Unlock()
			attempts++
			return nil, fmt.Errorf("broker down")
		})

		require.Error(t, m.Connect(context.Background(), 7, "t"))
		m.Disconnect()

		time.Sleep(60 * time.Millisecond)
		mu.Lock()
		assert.Equal(t, 1, attempts)
		mu.Unlock()
	})
}
