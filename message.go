// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jabber

import (
	"github.com/google/uuid"

	"mellium.im/jabber/jid"
	"mellium.im/jabber/stanza"
	"mellium.im/jabber/xmltree"
)

func (c *Client) handleMessage(n *xmltree.Node) {
	body := n.Child("body")
	if body == nil {
		return
	}
	to := n.AttrValue("to")
	c.emit(Event{
		Name: EventMessage,
		Message: &Message{
			From:    n.AttrValue("from"),
			To:      to,
			Body:    body.Text(),
			Subject: n.Child("subject").Text(),
			Thread:  n.Child("thread").Text(),
			Fishing: to != c.session.JID,
		},
	})
}

// SendMessage sends a message to the given address.
// If thread is empty a normal message is sent, otherwise a chat message that
// is part of the thread.
// A JID must have been bound first.
func (c *Client) SendMessage(to, body, subject, thread string) error {
	c.mu.Lock()
	err := c.sendMessage(to, body, subject, thread)
	c.mu.Unlock()
	c.flush()
	return err
}

func (c *Client) sendMessage(to, body, subject, thread string) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	if c.session.JID == "" {
		return ErrNoJID
	}
	j, err := jid.Parse(to)
	if err != nil {
		return err
	}
	return c.sendStanza(stanza.Message{
		ID:      "msg" + uuid.NewString(),
		From:    c.boundJID(),
		To:      j,
		Subject: subject,
		Body:    body,
		Thread:  thread,
	}.TokenReader())
}
