// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jabber

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

var presenceTests = [...]struct {
	send     func(*Client) error
	out      []string
	presence string
}{
	0: {
		send:     func(c *Client) error { return c.Online("") },
		out:      []string{`<presence from="user@example.com/res"></presence>`},
		presence: "online",
	},
	1: {
		send:     func(c *Client) error { return c.Away("brb") },
		out:      []string{`<presence from="user@example.com/res"><show>away</show><status>brb</status></presence>`},
		presence: "away",
	},
	2: {
		send: func(c *Client) error { return c.DND("busy", "a@example.net", "b@example.net") },
		out: []string{
			`<presence from="user@example.com/res" to="a@example.net"><show>dnd</show><status>busy</status></presence>`,
			`<presence from="user@example.com/res" to="b@example.net"><show>dnd</show><status>busy</status></presence>`,
		},
		presence: "dnd",
	},
	3: {
		send:     func(c *Client) error { return c.XA("<gone> & back") },
		out:      []string{`<presence from="user@example.com/res"><show>xa</show><status>&lt;gone&gt; &amp; back</status></presence>`},
		presence: "xa",
	},
	4: {
		send:     func(c *Client) error { return c.Offline("") },
		out:      []string{`<presence from="user@example.com/res" type="unavailable"></presence>`},
		presence: "",
	},
	5: {
		send:     func(c *Client) error { return c.Probe("juliet@example.net") },
		out:      []string{`<presence from="user@example.com/res" to="juliet@example.net" type="probe"></presence>`},
		presence: "dnd",
	},
	6: {
		send:     func(c *Client) error { return c.SetPresence("sleeping", "online", "") },
		out:      []string{`<presence from="user@example.com/res"></presence>`},
		presence: "dnd",
	},
	7: {
		send: func(c *Client) error { return c.Subscribe("juliet@example.net", "hi") },
		out: []string{
			`<iq type="set" id="set_1"><query xmlns="jabber:iq:roster"><item jid="juliet@example.net"></item></query></iq>`,
			`<presence from="user@example.com/res" to="juliet@example.net" type="subscribe"><status>hi</status></presence>`,
		},
		presence: "dnd",
	},
}

func TestPresence(t *testing.T) {
	for i, tc := range presenceTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			c, tr, _ := loggedIn(t)
			c.session.Presence = "dnd"
			if err := tc.send(c); err != nil {
				t.Fatalf("error sending presence: %v", err)
			}
			if w := tr.Written(); !reflect.DeepEqual(w, tc.out) {
				t.Errorf("wrong output:\nwant=%q,\n got=%q", tc.out, w)
			}
			if p := c.Session().Presence; p != tc.presence {
				t.Errorf("wrong presence recorded: want=%q, got=%q", tc.presence, p)
			}
		})
	}
}

func TestPresenceErrors(t *testing.T) {
	c, _, _ := loggedIn(t)
	c.session.JID = ""
	if err := c.Online(""); !errors.Is(err, ErrNoJID) {
		t.Errorf("wrong error without a JID: %v", err)
	}
	if err := c.SendMessage("juliet@example.net", "hi", "", ""); !errors.Is(err, ErrNoJID) {
		t.Errorf("wrong error sending a message without a JID: %v", err)
	}
	c.conn = nil
	if err := c.Online(""); !errors.Is(err, ErrNotConnected) {
		t.Errorf("wrong error without a connection: %v", err)
	}
	if err := c.Roster(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("wrong error requesting the roster without a connection: %v", err)
	}
}

func TestSendMessage(t *testing.T) {
	c, tr, _ := loggedIn(t)
	if err := c.SendMessage("juliet@example.net", "hi & bye", "greeting", ""); err != nil {
		t.Fatalf("error sending message: %v", err)
	}
	if err := c.SendMessage("juliet@example.net", "more", "", "t1"); err != nil {
		t.Fatalf("error sending message: %v", err)
	}
	w := tr.Written()
	if len(w) != 2 {
		t.Fatalf("expected two messages, got %q", w)
	}

	const prefix = `<message from="user@example.com/res" to="juliet@example.net" type="normal" id="msg`
	if !strings.HasPrefix(w[0], prefix) || !strings.HasSuffix(w[0], `"><subject>greeting</subject><body>hi &amp; bye</body></message>`) {
		t.Errorf("wrong normal message: %s", w[0])
	}
	if !strings.Contains(w[1], `type="chat"`) ||
		!strings.HasSuffix(w[1], `<body>more</body><thread>t1</thread><active xmlns="http://jabber.org/protocol/chatstates"></active></message>`) {
		t.Errorf("wrong chat message: %s", w[1])
	}
	id := func(s string) string {
		s = s[strings.Index(s, `id="`)+4:]
		return s[:strings.IndexByte(s, '"')]
	}
	if id(w[0]) == id(w[1]) {
		t.Errorf("message ids should be unique, got %q twice", id(w[0]))
	}
}
