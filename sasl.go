// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jabber

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"

	"golang.org/x/text/language"
	"mellium.im/sasl"

	"mellium.im/jabber/digestmd5"
	"mellium.im/jabber/internal/ns"
	"mellium.im/jabber/internal/saslerr"
	"mellium.im/jabber/xmltree"
)

// Anonymous is the ANONYMOUS SASL mechanism.
// It sends an empty initial response.
var Anonymous = sasl.Mechanism{
	Name: "ANONYMOUS",
	Start: func(*sasl.Negotiator) (bool, []byte, interface{}, error) {
		return false, nil, nil, nil
	},
	Next: func(*sasl.Negotiator, []byte, interface{}) (bool, []byte, interface{}, error) {
		return false, nil, nil, sasl.ErrTooManySteps
	},
}

// selectMechanism picks the mechanism to use from those offered by the server.
// PLAIN is only used over an encrypted connection.
func selectMechanism(host string, offered []string, encrypted bool) (sasl.Mechanism, bool) {
	has := func(name string) bool {
		for _, o := range offered {
			if o == name {
				return true
			}
		}
		return false
	}
	switch {
	case has(digestmd5.Name):
		return digestmd5.Mechanism(host), true
	case has(sasl.Plain.Name) && encrypted:
		return sasl.Plain, true
	case has(Anonymous.Name):
		return Anonymous, true
	}
	return sasl.Mechanism{}, false
}

type tlsStater interface {
	ConnectionState() (tls.ConnectionState, bool)
}

func (c *Client) authenticate(ctx context.Context, mechs *xmltree.Node) error {
	var offered []string
	for _, m := range mechs.Children().Get("mechanism") {
		offered = append(offered, m.Text())
	}

	encrypted := c.session.SSL || c.session.Negotiation == NegotiationProceed
	mech, ok := selectMechanism(c.session.Domain, offered, encrypted)
	if !ok {
		c.logger.WithField("offered", offered).Error("no supported authentication mechanism")
		c.disconnect()
		return ErrNoAuthMethod
	}
	logger := c.logger.WithField("mechanism", mech.Name)

	username := c.session.User
	if mech.Name == sasl.Plain.Name {
		username += "@" + c.session.Domain
	}
	secret := c.secret
	opts := []sasl.Option{
		sasl.Credentials(func() ([]byte, []byte, []byte) {
			return []byte(username), []byte(secret), nil
		}),
		sasl.RemoteMechanisms(offered...),
	}
	if ts, ok := c.conn.(tlsStater); ok {
		if state, ok := ts.ConnectionState(); ok {
			opts = append(opts, sasl.TLSState(state))
		}
	}
	c.sasl = sasl.NewClient(mech, opts...)

	_, resp, err := c.sasl.Step(nil)
	if err != nil {
		logger.WithError(err).Error("starting authentication failed")
		c.disconnect()
		return err
	}

	logger.Debug("authenticating")
	auth := `<auth xmlns='` + ns.SASL + `' mechanism='` + mech.Name + `'`
	if len(resp) == 0 {
		auth += `/>`
	} else {
		auth += `>` + base64.StdEncoding.EncodeToString(resp) + `</auth>`
	}
	if err := c.send(auth); err != nil {
		return err
	}
	c.await = true
	return nil
}

func (c *Client) handleChallenge(n *xmltree.Node) error {
	c.setState(NegotiationChallenge)
	if c.sasl == nil {
		c.logger.Warn("challenge received outside of authentication")
		return nil
	}

	challenge, err := base64.StdEncoding.DecodeString(n.Text())
	if err != nil {
		c.logger.WithError(err).Error("malformed challenge")
		c.disconnect()
		return fmt.Errorf("%w: malformed challenge: %v", ErrServerFailure, err)
	}
	_, resp, err := c.sasl.Step(challenge)
	if err != nil {
		c.logger.WithError(err).Error("answering challenge failed")
		c.disconnect()
		return fmt.Errorf("%w: %v", ErrServerFailure, err)
	}

	response := `<response xmlns='` + ns.SASL + `'`
	if len(resp) == 0 {
		response += `/>`
	} else {
		response += `>` + base64.StdEncoding.EncodeToString(resp) + `</response>`
	}
	if err := c.send(response); err != nil {
		return err
	}
	c.await = true
	return nil
}

// verifySuccess passes additional data sent with <success/> to the mechanism.
// A server may confirm DIGEST-MD5 mutual authentication this way instead of
// in a final challenge.
func (c *Client) verifySuccess(n *xmltree.Node) {
	data := n.Text()
	if data == "" || data == "=" {
		return
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		c.logger.WithError(err).Warn("malformed success data")
		return
	}
	if _, _, err := c.sasl.Step(decoded); err != nil {
		c.logger.WithError(err).Warn("unexpected success data")
	}
}

func (c *Client) handleFailure(n *xmltree.Node) error {
	c.setState(NegotiationFailure)
	f := saslerr.FromNode(n, language.Make(c.lang))
	err := &AuthError{
		Condition: string(f.Condition),
		Text:      f.Text,
	}
	c.logger.WithField("condition", f.Condition).Error("authentication failed")
	c.emit(Event{Name: EventFailure, Err: err})
	c.disconnect()
	return err
}
