// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jabber

import (
	"context"
	"strconv"
	"testing"

	"mellium.im/jabber/xmltree"
)

var selectTests = [...]struct {
	offered   []string
	encrypted bool
	want      string
}{
	0: {offered: []string{"PLAIN", "DIGEST-MD5", "ANONYMOUS"}, want: "DIGEST-MD5"},
	1: {offered: []string{"PLAIN", "ANONYMOUS"}, want: "ANONYMOUS"},
	2: {offered: []string{"PLAIN", "ANONYMOUS"}, encrypted: true, want: "PLAIN"},
	3: {offered: []string{"PLAIN"}},
	4: {offered: []string{"SCRAM-SHA-1", "X-OAUTH2"}, encrypted: true},
	5: {},
	6: {offered: []string{"digest-md5"}},
}

func TestSelectMechanism(t *testing.T) {
	for i, tc := range selectTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			m, ok := selectMechanism("example.com", tc.offered, tc.encrypted)
			if ok != (tc.want != "") {
				t.Fatalf("wrong result: want=%q, got ok=%t", tc.want, ok)
			}
			if m.Name != tc.want {
				t.Errorf("wrong mechanism: want=%q, got=%q", tc.want, m.Name)
			}
		})
	}
}

func TestAnonymous(t *testing.T) {
	c, tr, _ := loggedIn(t)
	c.session.Negotiation = NegotiationStarted
	top, err := xmltree.Parse([]byte(mechanisms("ANONYMOUS")))
	if err != nil {
		t.Fatalf("error parsing mechanisms: %v", err)
	}
	if err := c.authenticate(context.Background(), top.Get("mechanisms")[0]); err != nil {
		t.Fatalf("error authenticating: %v", err)
	}
	want := `<auth xmlns='urn:ietf:params:xml:ns:xmpp-sasl' mechanism='ANONYMOUS'/>`
	if w := tr.Written(); len(w) != 1 || w[0] != want {
		t.Errorf("wrong output:\nwant=%s,\n got=%q", want, w)
	}
	if !c.await {
		t.Error("expected the client to wait for the server's answer")
	}
}

func TestChallengeOutsideAuth(t *testing.T) {
	c, tr, _ := loggedIn(t)
	top, err := xmltree.Parse([]byte(`<challenge xmlns='urn:ietf:params:xml:ns:xmpp-sasl'>AAAA</challenge>`))
	if err != nil {
		t.Fatalf("error parsing challenge: %v", err)
	}
	if err := c.handleChallenge(top.Get("challenge")[0]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tr.Written()) != 0 {
		t.Errorf("nothing should be sent, got %q", tr.Written())
	}
}

func TestSuccessRestartsStream(t *testing.T) {
	c, tr, _ := loggedIn(t)
	c.session.Negotiation = NegotiationStarted
	top, err := xmltree.Parse([]byte(`<success xmlns='urn:ietf:params:xml:ns:xmpp-sasl'>` + b64("rspauth=abc") + `</success>`))
	if err != nil {
		t.Fatalf("error parsing success: %v", err)
	}
	if err := c.handleSuccess(top.Get("success")[0]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.session.Negotiation != NegotiationSuccess {
		t.Errorf("wrong state: %v", c.session.Negotiation)
	}
	w := tr.Written()
	if len(w) != 1 || w[0] != `<stream:stream to='example.com' xmlns='jabber:client' xmlns:stream='http://etherx.jabber.org/streams' xml:lang='en' version='1.0'>` {
		t.Errorf("wrong stream restart: %q", w)
	}
}
