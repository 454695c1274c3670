package push

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-stomp/stomp/v3"
	"github.com/gorilla/websocket"
)

const subscriptionBuffer = 32

// transport is one live broker connection. The state machine in Manager only
// ever talks to this interface, so tests can swap the wire out.
type transport interface {
	Subscribe(destination, id string) (<-chan []byte, error)
	Send(destination, contentType string, body []byte) error
	Close() error
}

type dialFunc func(ctx context.Context, endpoint, credential string, heartbeat time.Duration) (transport, error)

// dialSTOMP opens the websocket to the broker's control path and runs the
// STOMP handshake over it. The credential rides in the CONNECT frame header,
// matching what the broker's channel interceptor expects.
func dialSTOMP(ctx context.Context, endpoint, credential string, heartbeat time.Duration) (transport, error) {
	wsConn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", endpoint, err)
	}

	opts := []func(*stomp.Conn) error{
		stomp.ConnOpt.HeartBeat(heartbeat, heartbeat),
	}
	if credential != "" {
		opts = append(opts, stomp.ConnOpt.Header("Authorization", "Bearer "+credential))
	}

	st, err := stomp.Connect(newWSStream(wsConn), opts...)
	if err != nil {
		_ = wsConn.Close()
		return nil, fmt.Errorf("stomp handshake failed: %w", err)
	}

	return &stompTransport{ws: wsConn, st: st}, nil
}

type stompTransport struct {
	ws         *websocket.Conn
	st         *stomp.Conn
	subscribed bool
}

func (t *stompTransport) Subscribe(destination, id string) (<-chan []byte, error) {
	if t.subscribed {
		return nil, fmt.Errorf("transport already holds a subscription")
	}

	sub, err := t.st.Subscribe(destination, stomp.AckAuto, stomp.SubscribeOpt.Id(id))
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", destination, err)
	}
	t.subscribed = true

	out := make(chan []byte, subscriptionBuffer)
	go func() {
		defer close(out)
		for msg := range sub.C {
			if msg.Err != nil {
				return
			}
			out <- msg.Body
		}
	}()

	return out, nil
}

func (t *stompTransport) Send(destination, contentType string, body []byte) error {
	return t.st.Send(destination, contentType, body)
}

func (t *stompTransport) Close() error {
	err := t.st.Disconnect()
	if wsErr := t.ws.Close(); err == nil {
		err = wsErr
	}
	return err
}

// wsStream adapts the websocket connection to the io.ReadWriteCloser the
// STOMP codec reads and writes. Each Write becomes one websocket text
// message; Reads drain messages in order. stomp.Conn serializes writes
// through a single goroutine, which is what gorilla requires.
type wsStream struct {
	ws     *websocket.Conn
	reader io.Reader
}

func newWSStream(ws *websocket.Conn) *wsStream {
	return &wsStream{ws: ws}
}

func (s *wsStream) Read(p []byte) (int, error) {
	for {
		if s.reader == nil {
			_, r, err := s.ws.NextReader()
			if err != nil {
				return 0, err
			}
			s.reader = r
		}

		n, err := s.reader.Read(p)
		if errors.Is(err, io.EOF) {
			s.reader = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (s *wsStream) Write(p []byte) (int, error) {
	if err := s.ws.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *wsStream) Close() error {
	return s.ws.Close()
}
