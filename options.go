// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jabber

import (
	"crypto/tls"
	"time"

	"github.com/sirupsen/logrus"
)

// Option configures a Client.
type Option func(*Client)

// SSL connects using implicit TLS.
// If the port given to New is the standard client port it is changed to 5223.
func SSL(enabled bool) Option {
	return func(c *Client) {
		c.session.SSL = enabled
	}
}

// TLS controls whether the connection is upgraded with STARTTLS when the
// server offers it.
// It is enabled by default.
func TLS(enabled bool) Option {
	return func(c *Client) {
		c.session.TLS = enabled
	}
}

// TLSConfig sets the configuration used for implicit TLS and STARTTLS.
// By default the server name is the domain of the account and at least TLS 1.2
// is required.
func TLSConfig(cfg *tls.Config) Option {
	return func(c *Client) {
		c.tlsConfig = cfg
	}
}

// Resource sets the resource to request when binding.
// If no resource is set the server generates one.
func Resource(name string) Option {
	return func(c *Client) {
		c.session.Resource = name
	}
}

// Logger sets the logger used by the client.
// By default nothing is logged.
func Logger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// Notify sets the Notifier that receives the client's events.
func Notify(n Notifier) Option {
	return func(c *Client) {
		c.notifier = n
	}
}

// Dialer replaces the function used to open connections.
func Dialer(d DialFunc) Option {
	return func(c *Client) {
		c.dial = d
	}
}

// Timeout sets how long the client waits for the server when it expects a
// reply.
// It defaults to 10 seconds.
func Timeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// Lang sets the xml:lang of the stream and is used to pick the description of
// authentication failures.
// It defaults to "en".
func Lang(tag string) Option {
	return func(c *Client) {
		c.lang = tag
	}
}
