// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jabber

import (
	"context"

	"mellium.im/jabber/xmltree"
)

// dispatch handles each element of a parsed batch in the order it was read.
// Handling stops early if a handler closes the connection.
func (c *Client) dispatch(ctx context.Context, top *xmltree.Children) error {
	for _, name := range top.Names() {
		for _, n := range top.Get(name) {
			if c.conn == nil {
				return nil
			}
			if err := c.dispatchNode(ctx, n); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Client) dispatchNode(ctx context.Context, n *xmltree.Node) error {
	switch n.Name {
	case "stream:stream":
		return c.handleStream(ctx, n)
	case "stream:features":
		return c.handleFeatures(ctx, n)
	case "challenge":
		return c.handleChallenge(n)
	case "failure":
		return c.handleFailure(n)
	case "proceed":
		return c.handleProceed()
	case "success":
		return c.handleSuccess(n)
	case "iq":
		return c.handleIQ(n)
	case "message":
		c.handleMessage(n)
		return nil
	case "presence":
		c.handlePresence(n)
		return nil
	}
	c.logger.WithField("name", n.Name).Debug("ignoring unexpected element")
	return nil
}
