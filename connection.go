package irc

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strings"
	"sync"

	"github.com/sony/gobreaker/v2"
)

var ErrConnectionClosed = errors.New("irc: connection closed")

// Conn is a line-framed transport over one TCP connection. It implements
// LineWriter for the engine's outbound boundary and feeds inbound lines to
// a handler through Run. Reconnection and TLS are the caller's concern.
type Conn struct {
	addr    string
	conn    net.Conn
	reader  *bufio.Reader
	breaker *gobreaker.CircuitBreaker[struct{}]

	mu     sync.Mutex
	closed bool
}

// DialConfig holds the transport tunables.
type DialConfig struct {
	// Dialer is used to establish the connection. Nil means a default
	// net.Dialer.
	Dialer *net.Dialer

	// NewCircuitBreaker builds an optional circuit breaker guarding line
	// writes, so a dead link fails fast instead of stalling every issued
	// command. Nil disables the breaker.
	NewCircuitBreaker func(addr string) *gobreaker.CircuitBreaker[struct{}]
}

// Dial connects to addr ("host:port").
func Dial(ctx context.Context, addr string, config DialConfig) (*Conn, error) {
	dialer := config.Dialer
	if dialer == nil {
		dialer = &net.Dialer{}
	}

	netConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	conn := &Conn{
		addr:   addr,
		conn:   netConn,
		reader: bufio.NewReader(netConn),
	}
	if config.NewCircuitBreaker != nil {
		conn.breaker = config.NewCircuitBreaker(addr)
	}
	return conn, nil
}

// Addr returns the remote address.
func (c *Conn) Addr() string {
	return c.addr
}

// WriteLine sends one complete line, appending the protocol terminator.
func (c *Conn) WriteLine(line string) error {
	if c.breaker == nil {
		return c.writeLine(line)
	}
	_, err := c.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, c.writeLine(line)
	})
	return err
}

func (c *Conn) writeLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrConnectionClosed
	}

	if _, err := c.conn.Write([]byte(line + "\r\n")); err != nil {
		c.closed = true
		return err
	}
	return nil
}

// Run reads lines until the connection closes or ctx is cancelled, handing
// each complete line (without terminator) to handle. It returns nil on a
// clean shutdown.
func (c *Conn) Run(ctx context.Context, handle func(line string)) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			c.Close()
		case <-done:
		}
	}()

	for {
		line, err := c.reader.ReadString('\n')
		if err != nil {
			if ctx.Err() != nil || c.IsClosed() {
				return nil
			}
			return err
		}
		handle(strings.TrimRight(line, "\r\n"))
	}
}

// IsClosed reports whether the connection was closed, by Close or a write
// failure.
func (c *Conn) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Close closes the underlying connection. Closing twice is a no-op.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}

var _ LineWriter = (*Conn)(nil)
