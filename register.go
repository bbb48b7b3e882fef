// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jabber

import (
	"context"

	"mellium.im/jabber/stanza"
)

// Register creates the account on the server using in-band registration.
// It asks for the registration form, submits the client's username and
// password, and waits for the server's answer.
// EventRegistered is emitted if the account was created.
func (c *Client) Register(ctx context.Context) error {
	c.mu.Lock()
	err := c.register(ctx)
	c.mu.Unlock()
	c.flush()
	return err
}

func (c *Client) register(ctx context.Context) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	err := c.sendStanza(stanza.IQ{
		ID:   c.queries.add(QueryRegister),
		Type: stanza.GetIQ,
	}.Wrap(stanza.RegisterForm()))
	if err != nil {
		return err
	}
	c.await = true
	return c.pump(ctx)
}

// Unregister asks the server to remove the account.
// EventUnregistered is emitted once the server confirms it.
func (c *Client) Unregister(ctx context.Context) error {
	c.mu.Lock()
	err := c.unregister(ctx)
	c.mu.Unlock()
	c.flush()
	return err
}

func (c *Client) unregister(ctx context.Context) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	err := c.sendStanza(stanza.IQ{
		ID:   c.queries.add(QueryUnregister),
		Type: stanza.SetIQ,
	}.Wrap(stanza.RegisterRemove()))
	if err != nil {
		return err
	}
	c.await = true
	return c.pump(ctx)
}
