// Copyright 2016 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package stanza

import (
	"encoding/xml"

	"mellium.im/xmlstream"

	"mellium.im/jabber/jid"
)

// Presence is an XMPP stanza that is used as an indication that an entity is
// available for communication. It is used to set a status message, broadcast
// availability, and manage subscriptions. It can be directed
// (one-to-one), or used as a broadcast mechanism (one-to-many).
type Presence struct {
	ID     string
	To     jid.JID
	From   jid.JID
	Type   PresenceType
	Show   Show
	Status string
}

// StartElement converts the Presence into an XML token.
// Types other than the ones defined in this package are not written.
func (p Presence) StartElement() xml.StartElement {
	attr := make([]xml.Attr, 0, 4)
	attr = addrAttr(attr, "from", p.From)
	attr = addrAttr(attr, "to", p.To)
	if p.Type.Valid() {
		attr = strAttr(attr, "type", string(p.Type))
	}
	attr = strAttr(attr, "id", p.ID)
	return xml.StartElement{
		Name: xml.Name{Local: "presence"},
		Attr: attr,
	}
}

// Wrap wraps the payload in a stanza.
func (p Presence) Wrap(payload xml.TokenReader) xml.TokenReader {
	return xmlstream.Wrap(payload, p.StartElement())
}

// TokenReader returns the presence including its show and status children.
func (p Presence) TokenReader() xml.TokenReader {
	var inner []xml.TokenReader
	if p.Show.Valid() {
		inner = append(inner, textElement("show", string(p.Show)))
	}
	if p.Status != "" {
		inner = append(inner, textElement("status", p.Status))
	}
	return p.Wrap(xmlstream.MultiReader(inner...))
}

// PresenceType is the type of a presence stanza.
// It should normally be one of the constants defined in this package.
type PresenceType string

const (
	// AvailablePresence is a special case that signals that the entity is
	// available for communication.
	AvailablePresence PresenceType = ""

	// ErrorPresence indicates that an error has occurred regarding processing of
	// a previously sent presence stanza.
	ErrorPresence PresenceType = "error"

	// ProbePresence is a request for an entity's current presence.
	ProbePresence PresenceType = "probe"

	// SubscribePresence is sent when the sender wishes to subscribe to the
	// recipient's presence.
	SubscribePresence PresenceType = "subscribe"

	// SubscribedPresence indicates that the sender has allowed the recipient to
	// receive future presence broadcasts.
	SubscribedPresence PresenceType = "subscribed"

	// UnavailablePresence indicates that the sender is no longer available for
	// communication.
	UnavailablePresence PresenceType = "unavailable"

	// UnsubscribePresence indicates that the sender is unsubscribing from the
	// receiver's presence.
	UnsubscribePresence PresenceType = "unsubscribe"

	// UnsubscribedPresence indicates that the subscription request has been
	// denied, or a previously granted subscription has been revoked.
	UnsubscribedPresence PresenceType = "unsubscribed"
)

// Valid reports whether t is one of the non-empty presence types.
func (t PresenceType) Valid() bool {
	switch t {
	case ErrorPresence, ProbePresence, SubscribePresence, SubscribedPresence,
		UnavailablePresence, UnsubscribePresence, UnsubscribedPresence:
		return true
	}
	return false
}

// Show is the availability sub-state of an available entity.
type Show string

// Values of Show.
// The empty Show means the entity is simply online.
const (
	ShowOnline Show = ""
	ShowAway   Show = "away"
	ShowChat   Show = "chat"
	ShowDND    Show = "dnd"
	ShowXA     Show = "xa"
)

// Valid reports whether s is written as a show element.
func (s Show) Valid() bool {
	switch s {
	case ShowAway, ShowChat, ShowDND, ShowXA:
		return true
	}
	return false
}
