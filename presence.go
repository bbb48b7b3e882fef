// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jabber

import (
	"mellium.im/jabber/jid"
	"mellium.im/jabber/stanza"
	"mellium.im/jabber/xmltree"
)

func (c *Client) handlePresence(n *xmltree.Node) {
	c.emit(Event{
		Name: EventPresence,
		Presence: &Presence{
			From:   n.AttrValue("from"),
			To:     n.AttrValue("to"),
			Type:   n.AttrValue("type"),
			Show:   n.Child("show").Text(),
			Status: n.Child("status").Text(),
		},
	})
}

// SetPresence broadcasts a presence, or sends it to each address in to.
// Unknown show values and types are omitted from the stanza.
// A JID must have been bound first.
func (c *Client) SetPresence(show stanza.Show, typ stanza.PresenceType, status string, to ...string) error {
	c.mu.Lock()
	err := c.setPresence(show, typ, status, to...)
	c.mu.Unlock()
	c.flush()
	return err
}

func (c *Client) setPresence(show stanza.Show, typ stanza.PresenceType, status string, to ...string) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	if c.session.JID == "" {
		return ErrNoJID
	}

	p := stanza.Presence{
		From:   c.boundJID(),
		Type:   typ,
		Show:   show,
		Status: status,
	}
	if len(to) == 0 {
		to = []string{""}
	}
	for _, addr := range to {
		p.To = jid.JID{}
		if addr != "" {
			j, err := jid.Parse(addr)
			if err != nil {
				return err
			}
			p.To = j
		}
		if err := c.sendStanza(p.TokenReader()); err != nil {
			return err
		}
	}

	// Only broadcasts change our own availability.
	if to[0] == "" && len(to) == 1 {
		switch typ {
		case stanza.AvailablePresence:
			c.session.Presence = string(show)
			if show == stanza.ShowOnline {
				c.session.Presence = "online"
			}
		case stanza.UnavailablePresence:
			c.session.Presence = ""
		}
	}
	return nil
}

// Online announces that the client is available.
func (c *Client) Online(status string, to ...string) error {
	return c.SetPresence(stanza.ShowOnline, stanza.AvailablePresence, status, to...)
}

// Away announces that the client is temporarily away.
func (c *Client) Away(status string, to ...string) error {
	return c.SetPresence(stanza.ShowAway, stanza.AvailablePresence, status, to...)
}

// DND announces that the client does not want to be disturbed.
func (c *Client) DND(status string, to ...string) error {
	return c.SetPresence(stanza.ShowDND, stanza.AvailablePresence, status, to...)
}

// XA announces that the client is away for an extended period.
func (c *Client) XA(status string, to ...string) error {
	return c.SetPresence(stanza.ShowXA, stanza.AvailablePresence, status, to...)
}

// Offline announces that the client is no longer available.
// A broadcast offline presence is not repeated when disconnecting.
func (c *Client) Offline(status string, to ...string) error {
	return c.SetPresence(stanza.ShowOnline, stanza.UnavailablePresence, status, to...)
}

// Probe asks for the current presence of a contact.
func (c *Client) Probe(to string) error {
	return c.SetPresence(stanza.ShowOnline, stanza.ProbePresence, "", to)
}
