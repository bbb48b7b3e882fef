// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jabber

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"mellium.im/jabber/internal/discover"
)

const readChunk = 4096

// Transport is a bidirectional byte stream to the server.
type Transport interface {
	io.Writer

	// ReadAvailable returns whatever bytes arrive within timeout.
	// A timeout is not an error: it returns the bytes read so far, possibly
	// none.
	// Once the peer has closed the connection it returns io.EOF.
	ReadAvailable(timeout time.Duration) ([]byte, error)

	// StartTLS upgrades the connection in place.
	StartTLS(cfg *tls.Config) error

	Close() error
}

// DialFunc opens a Transport to the given host and port.
// If ssl is set the connection must use implicit TLS configured by cfg.
type DialFunc func(ctx context.Context, host string, port int, ssl bool, cfg *tls.Config) (Transport, error)

// Dial is the default DialFunc.
//
// It looks up the _xmpp-client._tcp (or _xmpps-client._tcp when ssl is set)
// SRV records for host and connects to the target of the first record if there
// is one, otherwise to host itself.
// The port is always the one given.
func Dial(ctx context.Context, host string, port int, ssl bool, cfg *tls.Config) (Transport, error) {
	service := "xmpp-client"
	if ssl {
		service = "xmpps-client"
	}
	target := host
	addrs, err := discover.LookupServiceByDomain(ctx, nil, service, host)
	if err == nil && len(addrs) > 0 {
		target = strings.TrimSuffix(addrs[0].Target, ".")
	}
	addr := net.JoinHostPort(target, strconv.Itoa(port))

	var conn net.Conn
	if ssl {
		if cfg == nil {
			cfg = &tls.Config{
				ServerName: host,
				MinVersion: tls.VersionTLS12,
			}
		}
		d := tls.Dialer{Config: cfg}
		conn, err = d.DialContext(ctx, "tcp", addr)
	} else {
		var d net.Dialer
		conn, err = d.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, err
	}
	return NewTransport(conn), nil
}

// NewTransport returns a Transport that reads from and writes to conn.
func NewTransport(conn net.Conn) Transport {
	return &netTransport{conn: conn}
}

type netTransport struct {
	conn net.Conn
	buf  []byte
}

func (t *netTransport) Write(p []byte) (int, error) {
	return t.conn.Write(p)
}

func (t *netTransport) ReadAvailable(timeout time.Duration) ([]byte, error) {
	if err := t.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}
	if t.buf == nil {
		t.buf = make([]byte, readChunk)
	}
	n, err := t.conn.Read(t.buf)
	out := append([]byte(nil), t.buf[:n]...)
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return out, nil
	}
	return out, err
}

func (t *netTransport) StartTLS(cfg *tls.Config) error {
	if err := t.conn.SetDeadline(time.Time{}); err != nil {
		return err
	}
	tc := tls.Client(t.conn, cfg)
	if err := tc.Handshake(); err != nil {
		return err
	}
	t.conn = tc
	return nil
}

// ConnectionState returns the state of the TLS connection, if any.
func (t *netTransport) ConnectionState() (tls.ConnectionState, bool) {
	if tc, ok := t.conn.(*tls.Conn); ok {
		return tc.ConnectionState(), true
	}
	return tls.ConnectionState{}, false
}

func (t *netTransport) Close() error {
	return t.conn.Close()
}
