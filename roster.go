// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jabber

import (
	"mellium.im/jabber/jid"
	"mellium.im/jabber/stanza"
)

// Roster requests the contact list.
// The reply is delivered as an EventRoster event once it has been read by Wait
// or Serve.
func (c *Client) Roster() error {
	c.mu.Lock()
	err := c.roster()
	c.mu.Unlock()
	c.flush()
	return err
}

func (c *Client) roster() error {
	if c.conn == nil {
		return ErrNotConnected
	}
	return c.sendStanza(stanza.IQ{
		ID:   c.queries.add(QueryRoster),
		From: c.boundJID(),
		Type: stanza.GetIQ,
	}.Wrap(stanza.RosterQuery()))
}

// Subscribe adds a contact to the roster and asks for a subscription to its
// presence.
func (c *Client) Subscribe(to, status string) error {
	j, err := jid.Parse(to)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.conn == nil {
		c.mu.Unlock()
		return ErrNotConnected
	}
	err = c.sendStanza(stanza.IQ{
		ID:   c.queries.ids.Next("set"),
		Type: stanza.SetIQ,
	}.Wrap(stanza.RosterQuery(stanza.RosterItem{JID: j})))
	if err == nil {
		err = c.setPresence(stanza.ShowOnline, stanza.SubscribePresence, status, j.String())
	}
	c.mu.Unlock()
	c.flush()
	return err
}
