// Package rfconn implements a single pooled HTTP/1.1 connection: the
// resolve/connect/[tls-handshake]/idle/send/receive/close state machine
// described for the connection pool's member connections, grounded on
// original_source/src/http_client.hpp's ConnectionInfo class. Framing
// itself (request serialization, status-line and header parsing) rides on
// net/http's documented wire-format helpers (http.Request.Write,
// http.ReadResponse) over a raw net.Conn/tls.Conn — the closest stdlib
// equivalent of the original's Boost.Beast parser — rather than
// reimplementing RFC 7230 chunked-transfer parsing by hand; see DESIGN.md.
package rfconn

import (
	"bufio"
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	liberr "github.com/sabouaram/redpath/errors"
	"github.com/sabouaram/redpath/internal/rflog"
)

const (
	defaultOperationTimeout = 30 * time.Second
	minTLSHandshakeTimeout  = 10 * time.Second
	maxTLSHandshakeTimeout  = 30 * time.Second
)

// Connection is a single socket to one destination (scheme, host, port).
// It is not safe for concurrent use by more than one goroutine at a time:
// the pool serves each connection from a single goroutine of its own (see
// rfpool's runConnection), the same way the original single-threaded event
// loop did; Do additionally holds the connection's own mutex.
type Connection struct {
	ID string

	scheme string
	host   string
	port   string
	policy ConnectPolicy

	mu    sync.Mutex
	state atomic.Int32

	conn net.Conn
	buf  *bufio.Reader

	dialer net.Dialer

	readBuf [staticBufferSize]byte
}

// New creates a connection in StateNew. It does not dial until Dial is
// called, matching the pool's lazy-connect-on-demand behavior.
func New(scheme, host, port string, policy ConnectPolicy) *Connection {
	c := &Connection{
		ID:     uuid.NewString(),
		scheme: scheme,
		host:   host,
		port:   port,
		policy: policy,
	}
	c.state.Store(int32(StateNew))
	return c
}

// State returns the connection's current lifecycle state.
func (c *Connection) State() State {
	return State(c.state.Load())
}

func (c *Connection) setState(s State) {
	c.state.Store(int32(s))
}

// operationTimeout returns the policy's configured timeout, falling back to
// defaultOperationTimeout when the policy leaves it unset.
func (c *Connection) operationTimeout() time.Duration {
	if c.policy.OperationTimeout > 0 {
		return c.policy.OperationTimeout
	}
	return defaultOperationTimeout
}

// Dial resolves and connects the socket, performing a TLS handshake if the
// policy requires it, and leaves the connection in StateIdle on success.
func (c *Connection) Dial(ctx context.Context) liberr.Error {
	log := rflog.WithConn(c.ID, c.scheme+"://"+c.host+":"+c.port)

	c.setState(StateResolving)

	dialCtx, cancel := context.WithTimeout(ctx, c.operationTimeout())
	defer cancel()

	c.setState(StateConnecting)

	raw, err := c.dialer.DialContext(dialCtx, "tcp", net.JoinHostPort(c.host, c.port))
	if err != nil {
		log.WithError(err).Debug("connect failed")
		c.setState(StateNew)
		return ErrorConnect.Error(err)
	}

	if c.scheme == "https" || c.policy.UseTLS {
		c.setState(StateTLSHandshaking)

		tlsCfg := buildTLSConfig(c.policy, c.host)
		tlsConn := tls.Client(raw, tlsCfg)

		// the handshake gets the longer end of the connection's
		// [minTLSHandshakeTimeout, maxTLSHandshakeTimeout] allowance since it
		// is typically the slowest phase of establishing a new connection.
		hsCtx, hsCancel := context.WithTimeout(ctx, maxTLSHandshakeTimeout)
		defer hsCancel()

		if err = tlsConn.HandshakeContext(hsCtx); err != nil {
			log.WithError(err).Debug("tls handshake failed")
			_ = raw.Close()
			c.setState(StateNew)
			return ErrorTLSHandshake.Error(err)
		}

		c.conn = tlsConn
	} else {
		c.conn = raw
	}

	c.buf = bufio.NewReaderSize(c.conn, staticBufferSize)
	c.setState(StateIdle)

	return nil
}

// Do sends one request and reads its response, cycling the connection
// through Sending and Receiving and back to Idle. A response read that ends
// with bytes still pending is treated as success with a truncated body
// (stream-truncated is not a connection failure); the net package's
// "operation was aborted" family of errors on write are likewise treated
// as non-fatal retries-from-caller rather than hard connection failures,
// matching the original policy of tolerating a peer that closes the
// keep-alive socket right as a new request is queued.
func (c *Connection) Do(ctx context.Context, req *http.Request) (Response, liberr.Error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.State() != StateIdle {
		return Response{}, ErrorClosed.Error(nil)
	}

	c.setState(StateSending)

	deadline := time.Now().Add(c.operationTimeout())
	_ = c.conn.SetDeadline(deadline)

	req.Host = c.host
	req.Header.Set("Connection", "keep-alive")

	if err := req.Write(c.conn); err != nil {
		if !isAbortedError(err) {
			c.setState(StateClosing)
			_ = c.Close()
			return Response{}, ErrorWrite.Error(err)
		}
	}

	c.setState(StateReceiving)

	resp, err := http.ReadResponse(c.buf, req)
	if err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			c.setState(StateClosing)
			_ = c.Close()
			return Response{}, nil
		}
		c.setState(StateClosing)
		_ = c.Close()
		return Response{}, ErrorRead.Error(err)
	}

	body, readErr := readLimited(resp.Body, bodyReadLimit)
	_ = resp.Body.Close()

	out := Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
		KeepAlive:  !resp.Close,
	}

	if readErr != nil && readErr != io.ErrUnexpectedEOF {
		c.setState(StateClosing)
		_ = c.Close()
		return out, ErrorRead.Error(readErr)
	}

	if !out.KeepAlive {
		c.setState(StateClosing)
		_ = c.Close()
		return out, nil
	}

	c.setState(StateIdle)
	return out, nil
}

// Close tears the socket down. It passes through StateClosing and settles in
// StateNew, the pool's signal that the connection needs a fresh Dial before
// its next use — the Go rendering of "Closing → Resolving (restart)" for a
// pool whose slots redial lazily on next use rather than eagerly in the
// background.
func (c *Connection) Close() liberr.Error {
	c.setState(StateClosing)

	if c.conn == nil {
		c.setState(StateNew)
		return nil
	}

	err := c.conn.Close()
	c.conn = nil

	c.setState(StateNew)

	if err != nil {
		return ErrorClosed.Error(err)
	}

	return nil
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	lr := &io.LimitedReader{R: r, N: limit}
	body, err := io.ReadAll(lr)
	if err != nil {
		return body, err
	}

	if lr.N == 0 {
		// there may be more data than the limit allows; drain and discard
		// a single probe byte to decide, without growing the buffer.
		var probe [1]byte
		if n, _ := r.Read(probe[:]); n > 0 {
			return body, ErrorBodyTooLarge.Error(nil)
		}
	}

	return body, nil
}

func isAbortedError(err error) bool {
	if err == nil {
		return false
	}
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return false
	}
	return err == io.ErrClosedPipe
}
