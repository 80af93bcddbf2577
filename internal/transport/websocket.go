package transport

import (
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/divelog/divelink/internal/logging"
)

// WebSocket is a Transport over a WebSocket endpoint. Newer bridge firmware
// exposes the raw serial stream as binary WebSocket messages; message
// boundaries carry no meaning, so incoming frames are flattened back into a
// byte stream.
type WebSocket struct {
	conn    *websocket.Conn
	pending []byte
	timeout time.Duration
}

// DialWebSocket connects to a bridge WebSocket endpoint, e.g.
// "ws://192.168.4.16:81/serial". Pass 0 for DefaultTimeout.
func DialWebSocket(url string, timeout time.Duration) (*WebSocket, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	logging.Debug("WebSocket transport connected",
		zap.String("url", url),
		zap.Duration("timeout", timeout),
	)

	return &WebSocket{conn: conn, timeout: timeout}, nil
}

// Write sends p as one binary message.
func (t *WebSocket) Write(p []byte) (int, error) {
	if err := t.conn.SetWriteDeadline(time.Now().Add(t.timeout)); err != nil {
		return 0, err
	}
	if err := t.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Read drains buffered message bytes first, then blocks for the next
// binary message. Text and control messages are skipped.
func (t *WebSocket) Read(p []byte) (int, error) {
	for len(t.pending) == 0 {
		if err := t.conn.SetReadDeadline(time.Now().Add(t.timeout)); err != nil {
			return 0, err
		}
		kind, data, err := t.conn.ReadMessage()
		if err != nil {
			return 0, err
		}
		if kind != websocket.BinaryMessage {
			logging.Debug("Ignoring non-binary WebSocket message",
				zap.Int("type", kind),
				zap.Int("length", len(data)),
			)
			continue
		}
		t.pending = data
	}

	n := copy(p, t.pending)
	t.pending = t.pending[n:]
	return n, nil
}

// Available reports the bytes left over from the last message.
func (t *WebSocket) Available() int {
	return len(t.pending)
}

// Close sends a close message and drops the connection.
func (t *WebSocket) Close() error {
	deadline := time.Now().Add(time.Second)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = t.conn.WriteControl(websocket.CloseMessage, msg, deadline)
	return t.conn.Close()
}
