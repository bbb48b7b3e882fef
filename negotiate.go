// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jabber

import (
	"context"
	"fmt"
	"strings"

	"mellium.im/jabber/internal/decl"
	"mellium.im/jabber/internal/ns"
	"mellium.im/jabber/stanza"
	"mellium.im/jabber/xmltree"
)

const startTLS = `<starttls xmlns='` + ns.StartTLS + `'/>`

func (c *Client) setState(s NegotiationState) {
	c.session.Negotiation = s
	c.logger.WithField("state", s).Debug("negotiation state changed")
}

// restartStream sends a new stream header after TLS or SASL negotiation.
func (c *Client) restartStream(withDecl bool) error {
	var header strings.Builder
	if err := decl.StreamHeader(&header, c.session.Domain, c.lang, withDecl); err != nil {
		return err
	}
	return c.send(header.String())
}

func (c *Client) handleStream(ctx context.Context, n *xmltree.Node) error {
	features := n.Child("stream:features")
	c.session.StreamID = n.AttrValue("id")

	if !c.streamSeen {
		c.streamSeen = true
		c.setState(NegotiationStarted)
		if features != nil {
			return c.handleFeatures(ctx, features)
		}
		c.await = true
		return nil
	}

	if features != nil {
		return c.handleFeatures(ctx, features)
	}
	c.await = true
	c.awaitFeatures = true
	return nil
}

func (c *Client) handleFeatures(ctx context.Context, n *xmltree.Node) error {
	kids := n.Children()

	if c.session.Negotiation == NegotiationSuccess {
		c.session.SessionRequired = kids.Has("session")
		err := c.sendStanza(stanza.IQ{
			ID:   c.queries.add(QueryBind),
			Type: stanza.SetIQ,
		}.Wrap(stanza.Bind(c.session.Resource)))
		if err != nil {
			return err
		}
		c.await = true
		return nil
	}

	tls := n.Child("starttls")
	if c.session.TLS && !c.session.SSL && c.session.Negotiation != NegotiationProceed &&
		tls != nil && tls.AttrValue("xmlns") == ns.StartTLS {
		if err := c.send(startTLS); err != nil {
			return err
		}
		c.await = true
		return nil
	}

	if mechs := n.Child("mechanisms"); mechs != nil && mechs.AttrValue("xmlns") == ns.SASL {
		return c.authenticate(ctx, mechs)
	}

	c.logger.Error("server does not offer SASL")
	c.disconnect()
	return ErrNoSASL
}

func (c *Client) handleProceed() error {
	if err := c.conn.StartTLS(c.tlsCfg()); err != nil {
		c.logger.WithError(err).Error("TLS upgrade failed")
		c.disconnect()
		return fmt.Errorf("%w: %v", ErrTLSChangeFailed, err)
	}
	c.setState(NegotiationProceed)
	if err := c.restartStream(true); err != nil {
		c.disconnect()
		return err
	}
	c.await = true
	return nil
}

func (c *Client) handleSuccess(n *xmltree.Node) error {
	if c.sasl != nil {
		c.verifySuccess(n)
	}
	if err := c.restartStream(false); err != nil {
		c.disconnect()
		return err
	}
	c.setState(NegotiationSuccess)
	c.sasl = nil
	c.await = true
	return nil
}
