// Copyright 2017 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package xmpptest provides utilities for XMPP testing.
package xmpptest // import "mellium.im/jabber/internal/xmpptest"

import (
	"crypto/tls"
	"errors"
	"io"
	"strings"
	"sync"
	"time"
)

// ErrClosed is returned when writing to a closed Transport.
var ErrClosed = errors.New("xmpptest: transport closed")

// Exchange is one step of a scripted server.
// Once a write containing Expect is seen, Reply becomes readable.
// An empty Expect matches immediately: at construction for leading exchanges,
// or right after the previous exchange was triggered.
type Exchange struct {
	Expect string
	Reply  string
}

// Transport is a fake connection that answers writes from a script.
// It is safe for concurrent use.
type Transport struct {
	mu       sync.Mutex
	script   []Exchange
	readable []string
	written  []string
	closed   bool
	eof      bool
	upgraded bool
	tlsErr   error
}

// Option configures a Transport.
type Option func(*Transport)

// EOF makes reads fail with io.EOF once the script and all replies are used up.
func EOF() Option {
	return func(t *Transport) {
		t.eof = true
	}
}

// TLSError makes StartTLS fail with err.
func TLSError(err error) Option {
	return func(t *Transport) {
		t.tlsErr = err
	}
}

// NewTransport returns a Transport that plays script.
func NewTransport(script []Exchange, opts ...Option) *Transport {
	t := &Transport{
		script: append([]Exchange(nil), script...),
	}
	for _, o := range opts {
		o(t)
	}
	t.advance()
	return t
}

// advance queues the replies of leading exchanges with no expectation.
func (t *Transport) advance() {
	for len(t.script) > 0 && t.script[0].Expect == "" {
		t.queue(t.script[0].Reply)
		t.script = t.script[1:]
	}
}

func (t *Transport) queue(s string) {
	if s != "" {
		t.readable = append(t.readable, s)
	}
}

// Push makes s readable immediately.
func (t *Transport) Push(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queue(s)
}

// Write records p and triggers the next exchange if p matches it.
func (t *Transport) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, ErrClosed
	}
	s := string(p)
	t.written = append(t.written, s)
	if len(t.script) > 0 && strings.Contains(s, t.script[0].Expect) {
		t.queue(t.script[0].Reply)
		t.script = t.script[1:]
		t.advance()
	}
	return len(p), nil
}

// ReadAvailable returns the next queued reply.
// If nothing is queued it waits for up to a millisecond and returns nothing.
func (t *Transport) ReadAvailable(timeout time.Duration) ([]byte, error) {
	t.mu.Lock()
	if len(t.readable) > 0 {
		s := t.readable[0]
		t.readable = t.readable[1:]
		t.mu.Unlock()
		return []byte(s), nil
	}
	done := t.closed || (t.eof && len(t.script) == 0)
	t.mu.Unlock()

	if done {
		return nil, io.EOF
	}
	if timeout > time.Millisecond {
		timeout = time.Millisecond
	}
	time.Sleep(timeout)
	return nil, nil
}

// StartTLS records the upgrade.
func (t *Transport) StartTLS(*tls.Config) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tlsErr != nil {
		return t.tlsErr
	}
	t.upgraded = true
	return nil
}

// Close marks the transport closed.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

// Written returns everything written so far, one entry per write.
func (t *Transport) Written() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.written...)
}

// Closed reports whether Close has been called.
func (t *Transport) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// Upgraded reports whether StartTLS succeeded.
func (t *Transport) Upgraded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.upgraded
}

// Remaining returns the number of exchanges that have not been triggered.
func (t *Transport) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.script)
}
