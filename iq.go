// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jabber

import (
	"mellium.im/jabber/internal/ns"
	"mellium.im/jabber/jid"
	"mellium.im/jabber/stanza"
	"mellium.im/jabber/xmltree"
)

func (c *Client) handleIQ(n *xmltree.Node) error {
	id := n.AttrValue("id")
	if id == "" {
		return nil
	}
	kind := c.queries.classify(n)
	logger := c.logger.WithField("id", id).WithField("kind", kind)
	logger.Debug("handling iq")

	switch kind {
	case QueryBind:
		return c.handleBind(n)
	case QuerySession:
		c.emit(Event{Name: EventSession})
	case QueryRegister:
		err := c.sendStanza(stanza.IQ{
			ID:   c.queries.add(QueryRegistered),
			Type: stanza.SetIQ,
		}.Wrap(stanza.RegisterQuery(c.session.User, c.secret)))
		if err != nil {
			return err
		}
		c.await = true
	case QueryRegistered:
		if n.Child("error") != nil {
			logger.Warn("registration failed")
			return nil
		}
		c.emit(Event{Name: EventRegistered})
	case QueryUnregister:
		c.emit(Event{Name: EventUnregistered})
	case QueryRoster:
		c.handleRoster(n)
	case QueryPush:
		return c.handlePush(n)
	default:
		if stanza.IQType(n.AttrValue("type")) == stanza.ErrorIQ {
			logger.Warn("error reply to unknown request")
		}
	}
	return nil
}

func (c *Client) handleBind(n *xmltree.Node) error {
	c.session.JID = n.Path("bind", "jid").Text()
	c.emit(Event{Name: EventLoggedIn, JID: c.session.JID})
	if !c.session.SessionRequired {
		return nil
	}

	to, err := jid.Parse(c.session.Domain)
	if err != nil {
		return err
	}
	err = c.sendStanza(stanza.IQ{
		ID:   c.queries.add(QuerySession),
		To:   to,
		Type: stanza.SetIQ,
	}.Wrap(stanza.Session()))
	if err != nil {
		return err
	}
	c.await = true
	return nil
}

func (c *Client) handleRoster(n *xmltree.Node) {
	roster := make(map[string]string)
	for _, item := range n.Child("query").Children().Get("item") {
		roster[item.AttrValue("jid")] = item.AttrValue("subscription")
	}
	c.emit(Event{Name: EventRoster, Roster: roster})
}

func (c *Client) handlePush(n *xmltree.Node) error {
	if stanza.IQType(n.AttrValue("type")) == stanza.SetIQ {
		from, _ := jid.Parse(n.AttrValue("from"))
		err := c.sendStanza(stanza.IQ{
			ID:   n.AttrValue("id"),
			From: from,
			To:   c.boundJID(),
			Type: stanza.SetIQ,
		}.Result().Wrap(nil))
		if err != nil {
			return err
		}
	}

	query := n.Child("query")
	if query.AttrValue("xmlns") != "" && query.AttrValue("xmlns") != ns.Roster {
		return nil
	}
	item := query.Child("item")
	if item == nil {
		return nil
	}
	ask, ok := item.Attr["ask"]
	if !ok {
		c.logger.WithField("id", n.AttrValue("id")).Debug("roster push without subscription request")
		return nil
	}
	contact := item.AttrValue("jid")

	if ask == "subscribe" && !c.isSelf(contact) {
		to, err := jid.Parse(contact)
		if err != nil {
			c.logger.WithError(err).Warn("invalid address in roster push")
		} else {
			err = c.sendStanza(stanza.Presence{
				From: c.boundJID(),
				To:   to,
				Type: stanza.SubscribedPresence,
				Show: stanza.ShowChat,
			}.TokenReader())
			if err != nil {
				return err
			}
			err = c.sendStanza(stanza.Presence{
				From: c.boundJID(),
				To:   to,
				Show: stanza.ShowChat,
			}.TokenReader())
			if err != nil {
				return err
			}
		}
	}

	c.emit(Event{Name: EventSubscribe, Action: ask, JID: contact})
	return nil
}

// isSelf reports whether addr is the account's own bare address.
func (c *Client) isSelf(addr string) bool {
	j, err := jid.Parse(addr)
	if err != nil {
		return false
	}
	self, err := jid.New(c.session.User, c.session.Domain, "")
	if err != nil {
		return false
	}
	return j.Bare().Equal(self)
}
