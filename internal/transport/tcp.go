package transport

import (
	"bufio"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/divelog/divelink/internal/logging"
)

// DefaultTimeout is the per-operation deadline applied when the caller does
// not configure one. Dive computers are slow: the IrDA side of a bridge can
// stall for a couple of seconds between dump chunks.
const DefaultTimeout = 5 * time.Second

// TCP is a Transport over a plain TCP connection to a serial bridge.
type TCP struct {
	conn    net.Conn
	reader  *bufio.Reader
	timeout time.Duration
}

// DialTCP connects to a bridge at addr ("host:port") and returns the
// transport. The timeout applies to the dial and to every subsequent read
// and write; pass 0 for DefaultTimeout.
func DialTCP(addr string, timeout time.Duration) (*TCP, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	logging.Debug("TCP transport connected",
		zap.String("address", addr),
		zap.Duration("timeout", timeout),
	)

	return &TCP{
		conn:    conn,
		reader:  bufio.NewReader(conn),
		timeout: timeout,
	}, nil
}

// Write sends p with the configured deadline.
func (t *TCP) Write(p []byte) (int, error) {
	if err := t.conn.SetWriteDeadline(time.Now().Add(t.timeout)); err != nil {
		return 0, err
	}
	return t.conn.Write(p)
}

// Read reads into p with the configured deadline.
func (t *TCP) Read(p []byte) (int, error) {
	if err := t.conn.SetReadDeadline(time.Now().Add(t.timeout)); err != nil {
		return 0, err
	}
	return t.reader.Read(p)
}

// Available reports the bytes already buffered from the connection.
func (t *TCP) Available() int {
	return t.reader.Buffered()
}

// Close closes the underlying connection.
func (t *TCP) Close() error {
	return t.conn.Close()
}
