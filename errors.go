// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jabber

import (
	"errors"
	"net"
	"strconv"
)

// Errors returned by the client.
// Protocol errors close the connection before they are returned.
var (
	ErrConnectionFailed = errors.New("jabber: connection failed")
	ErrNotConnected     = errors.New("jabber: not connected")
	ErrNoJID            = errors.New("jabber: no JID has been bound")
	ErrNoFeatures       = errors.New("jabber: server did not send stream features")
	ErrNoAuthMethod     = errors.New("jabber: no supported authentication mechanism")
	ErrNoSASL           = errors.New("jabber: server does not offer SASL")
	ErrServerFailure    = errors.New("jabber: server reported a failure")
	ErrTLSChangeFailed  = errors.New("jabber: could not upgrade the connection to TLS")
)

// ConnectError is returned when the connection to the server cannot be opened.
// It matches ErrConnectionFailed.
type ConnectError struct {
	Host string
	Port int
	Err  error
}

func (e *ConnectError) Error() string {
	s := "jabber: connection to " + net.JoinHostPort(e.Host, strconv.Itoa(e.Port)) + " failed"
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the underlying dial error.
func (e *ConnectError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrConnectionFailed.
func (e *ConnectError) Is(target error) bool {
	return target == ErrConnectionFailed
}

// AuthError is a SASL failure reported by the server.
// It matches ErrServerFailure.
type AuthError struct {
	// Condition is the name of the defined condition, eg. "not-authorized".
	Condition string

	// Text is the optional human readable description sent by the server.
	Text string
}

func (e *AuthError) Error() string {
	s := "jabber: authentication failed"
	if e.Condition != "" {
		s += ": " + e.Condition
	}
	if e.Text != "" {
		s += " (" + e.Text + ")"
	}
	return s
}

// Is reports whether target is ErrServerFailure.
func (e *AuthError) Is(target error) bool {
	return target == ErrServerFailure
}
