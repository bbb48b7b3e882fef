// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jabber

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"mellium.im/sasl"

	"mellium.im/jabber/internal/decl"
	"mellium.im/jabber/jid"
	"mellium.im/jabber/stanza"
	"mellium.im/jabber/xmltree"
)

const (
	// DefaultPort is the standard port for client connections.
	DefaultPort = 5222

	// DefaultSSLPort is the standard port for client connections using implicit
	// TLS.
	DefaultSSLPort = 5223

	defaultTimeout = 10 * time.Second
	pollInterval   = 100 * time.Millisecond
	defaultLang    = "en"
)

// Client is a connection to an XMPP server.
//
// Methods on a Client are safe to call from multiple goroutines but run one at
// a time: a call that waits for the server blocks the others until it returns.
type Client struct {
	mu sync.Mutex

	session   Session
	secret    string
	conn      Transport
	dial      DialFunc
	tlsConfig *tls.Config
	notifier  Notifier
	logger    logrus.FieldLogger
	timeout   time.Duration
	lang      string

	// Set by a handler that sent a request and expects the reply to be read
	// before control returns to the caller.
	await bool
	// Set when a restarted stream arrived without its features.
	awaitFeatures bool
	streamSeen    bool
	closing       bool

	queries queryTable
	sasl    *sasl.Negotiator
	events  []Event
}

// New creates a client for the account user@host.
//
// If user contains a domain (eg. "juliet@example.com") that domain is used for
// the account instead of host, and a resource in user is used as the resource
// to bind.
// If SSL is enabled and port is DefaultPort, DefaultSSLPort is used instead.
// No connection is made until Connect is called.
func New(host string, port int, user, secret string, opts ...Option) (*Client, error) {
	c := &Client{
		session: Session{
			Host:   host,
			Port:   port,
			User:   user,
			Domain: host,
			TLS:    true,
		},
		secret:  secret,
		dial:    Dial,
		timeout: defaultTimeout,
		lang:    defaultLang,
	}

	if strings.ContainsAny(user, "@/") {
		local, domain, resource, err := jid.SplitString(user)
		if err != nil {
			return nil, err
		}
		c.session.User = local
		if domain != "" {
			c.session.Domain = domain
		}
		c.session.Resource = resource
	}

	for _, o := range opts {
		o(c)
	}

	if c.session.SSL && c.session.Port == DefaultPort {
		c.session.Port = DefaultSSLPort
	}
	if c.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.logger = l
	}
	c.logger = c.logger.WithField("host", c.session.Host)
	return c, nil
}

// Session returns a snapshot of the connection state.
func (c *Client) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Connected reports whether the client has an open connection.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Connect opens the connection, opens the stream, and runs stream negotiation
// until the client is logged in, negotiation fails, or the server stops
// answering.
// Calling Connect on a connected client does nothing.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	err := c.connect(ctx)
	c.mu.Unlock()
	c.flush()
	return err
}

func (c *Client) connect(ctx context.Context) error {
	if c.conn != nil {
		return nil
	}

	conn, err := c.dial(ctx, c.session.Host, c.session.Port, c.session.SSL, c.tlsCfg())
	if err != nil {
		c.logger.WithError(err).Error("connection failed")
		return &ConnectError{Host: c.session.Host, Port: c.session.Port, Err: err}
	}
	c.conn = conn
	c.reset()

	var header strings.Builder
	if err := decl.StreamHeader(&header, c.session.Domain, c.lang, true); err != nil {
		return err
	}
	if err := c.send(header.String()); err != nil {
		c.disconnect()
		return err
	}
	c.emit(Event{Name: EventConnected})

	c.await = true
	return c.pump(ctx)
}

func (c *Client) reset() {
	c.session.Negotiation = NegotiationNoop
	c.session.JID = ""
	c.session.StreamID = ""
	c.session.SessionRequired = false
	c.session.Presence = ""
	c.await = false
	c.awaitFeatures = false
	c.streamSeen = false
	c.closing = false
	c.sasl = nil
	c.queries.reset()
}

func (c *Client) tlsCfg() *tls.Config {
	if c.tlsConfig != nil {
		return c.tlsConfig
	}
	return &tls.Config{
		ServerName: c.session.Domain,
		MinVersion: tls.VersionTLS12,
	}
}

// Disconnect closes the stream and the connection.
// If a presence has been announced an unavailable presence is sent first.
// Calling Disconnect on a client that is not connected does nothing.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	err := c.disconnect()
	c.mu.Unlock()
	c.flush()
	return err
}

func (c *Client) disconnect() error {
	if c.conn == nil {
		return nil
	}

	if c.session.Presence != "" {
		err := c.sendStanza(stanza.Presence{
			From: c.boundJID(),
			Type: stanza.UnavailablePresence,
		}.TokenReader())
		if err != nil {
			c.logger.WithError(err).Debug("sending unavailable presence failed")
		}
	}
	if err := c.send(decl.StreamEnd); err != nil {
		c.logger.WithError(err).Debug("closing stream failed")
	}

	err := c.conn.Close()
	c.conn = nil
	c.await = false
	c.awaitFeatures = false
	c.sasl = nil
	c.emit(Event{Name: EventDisconnected})
	c.logger.Debug("disconnected")
	return err
}

// Send writes raw XML to the server.
// Leading and trailing whitespace is removed.
func (c *Client) Send(s string) error {
	c.mu.Lock()
	err := c.send(s)
	c.mu.Unlock()
	c.flush()
	return err
}

func (c *Client) send(s string) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	s = strings.TrimSpace(s)
	c.emit(Event{Name: EventSent, XML: s})
	c.logger.WithField("xml", s).Debug("sent")
	_, err := io.WriteString(c.conn, s)
	return err
}

func (c *Client) sendStanza(r xml.TokenReader) error {
	b, err := stanza.Marshal(r)
	if err != nil {
		return err
	}
	return c.send(string(b))
}

// Wait reads from the server until a complete batch of stanzas has arrived or
// the timeout set with the Timeout option expires, and returns the parsed
// batch without acting on it.
// A timeout returns an empty result and no error.
// If the server closed the stream the client is disconnected after the last
// data has been read.
func (c *Client) Wait(ctx context.Context) (*xmltree.Children, error) {
	c.mu.Lock()
	top, err := c.wait(ctx)
	if err == nil && c.closing {
		c.closing = false
		c.disconnect()
	}
	c.mu.Unlock()
	c.flush()
	return top, err
}

// Serve reads and handles stanzas until the connection is closed or ctx is
// canceled.
// A closed connection is not an error.
func (c *Client) Serve(ctx context.Context) error {
	for {
		c.mu.Lock()
		if c.conn == nil {
			c.mu.Unlock()
			c.flush()
			return nil
		}
		err := c.step(ctx)
		c.mu.Unlock()
		c.flush()
		if err != nil {
			return err
		}
	}
}

func (c *Client) step(ctx context.Context) error {
	top, err := c.wait(ctx)
	if err != nil {
		return err
	}
	c.await = false
	if err := c.handle(ctx, top); err != nil {
		return err
	}
	return c.pump(ctx)
}

// pump reads and handles stanzas for as long as a handler is waiting for a
// reply.
func (c *Client) pump(ctx context.Context) error {
	for c.await && c.conn != nil {
		c.await = false
		top, err := c.wait(ctx)
		if err != nil {
			return err
		}
		if top.Len() == 0 && !c.closing {
			if c.awaitFeatures {
				c.awaitFeatures = false
				c.logger.Error("no stream features received")
				c.disconnect()
				return ErrNoFeatures
			}
			c.logger.WithField("state", c.session.Negotiation).Warn("timed out waiting for the server")
			return nil
		}
		c.awaitFeatures = false
		if err := c.handle(ctx, top); err != nil {
			return err
		}
	}
	return nil
}

// handle dispatches a batch and closes the connection if the server closed the
// stream.
func (c *Client) handle(ctx context.Context, top *xmltree.Children) error {
	err := c.dispatch(ctx, top)
	if c.closing {
		c.closing = false
		c.disconnect()
	}
	return err
}

func (c *Client) wait(ctx context.Context) (*xmltree.Children, error) {
	if c.conn == nil {
		return nil, ErrNotConnected
	}

	raw, err := c.read(ctx)
	switch {
	case errors.Is(err, io.EOF):
		c.closing = true
	case err != nil:
		return nil, err
	}

	raw = bytes.TrimSpace(raw)
	if bytes.HasSuffix(raw, []byte(decl.StreamEnd)) {
		c.closing = true
		raw = bytes.TrimSpace(bytes.TrimSuffix(raw, []byte(decl.StreamEnd)))
	}
	if len(raw) == 0 {
		return &xmltree.Children{}, nil
	}

	c.emit(Event{Name: EventReceived, XML: string(raw)})
	c.logger.WithField("xml", string(raw)).Debug("received")

	top, err := xmltree.Parse(raw)
	if err != nil {
		c.logger.WithError(err).Warn("dropping unparsable input")
		return &xmltree.Children{}, nil
	}
	return top, nil
}

// read collects bytes until they form complete elements, the deadline passes,
// or the connection is closed.
func (c *Client) read(ctx context.Context) ([]byte, error) {
	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	var buf []byte
	for {
		if err := ctx.Err(); err != nil {
			return buf, err
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return buf, nil
		}
		if remaining > pollInterval {
			remaining = pollInterval
		}
		p, err := c.conn.ReadAvailable(remaining)
		buf = append(buf, p...)
		if err != nil {
			return buf, err
		}
		if len(p) > 0 && xmltree.IsComplete(buf) {
			return buf, nil
		}
	}
}

func (c *Client) emit(e Event) {
	if c.notifier == nil {
		return
	}
	c.events = append(c.events, e)
}

// flush delivers queued events.
// It must be called without holding the lock.
func (c *Client) flush() {
	c.mu.Lock()
	events := c.events
	c.events = nil
	c.mu.Unlock()
	for _, e := range events {
		c.notifier.Notify(e)
	}
}

// boundJID returns the bound address or the zero JID if none has been bound.
func (c *Client) boundJID() jid.JID {
	j, err := jid.Parse(c.session.JID)
	if err != nil {
		return jid.JID{}
	}
	return j
}
