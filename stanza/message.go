// Copyright 2016 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package stanza

import (
	"encoding/xml"

	"mellium.im/xmlstream"

	"mellium.im/jabber/internal/ns"
	"mellium.im/jabber/jid"
)

// MessageType is the type of a message stanza.
// It should normally be one of the constants defined in this package.
type MessageType string

const (
	// NormalMessage is a standalone message that is sent outside the context of a
	// one-to-one conversation or groupchat, and to which it is expected that the
	// recipient will reply.
	NormalMessage MessageType = "normal"

	// ChatMessage represents a message sent in the context of a one-to-one chat
	// session.
	ChatMessage MessageType = "chat"

	// ErrorMessage is generated by an entity that experiences an error when
	// processing a message received from another entity.
	ErrorMessage MessageType = "error"

	// GroupChatMessage is sent in the context of a multi-user chat environment.
	GroupChatMessage MessageType = "groupchat"

	// HeadlineMessage is used to provide alerts, notifications, or other
	// transient information to which no reply is expected.
	HeadlineMessage MessageType = "headline"
)

// Message is an XMPP stanza that contains a payload for direct one-to-one
// communication with another network entity.
//
// A message with a thread is part of a chat: if Type is empty it is sent as a
// chat message and it carries an active chat state notification.
// Without a thread an empty Type is sent as a normal message.
type Message struct {
	ID      string
	To      jid.JID
	From    jid.JID
	Type    MessageType
	Subject string
	Body    string
	Thread  string
}

func (m Message) typ() MessageType {
	switch {
	case m.Type != "":
		return m.Type
	case m.Thread != "":
		return ChatMessage
	}
	return NormalMessage
}

// StartElement converts the Message into an XML token.
func (m Message) StartElement() xml.StartElement {
	attr := make([]xml.Attr, 0, 4)
	attr = addrAttr(attr, "from", m.From)
	attr = addrAttr(attr, "to", m.To)
	attr = strAttr(attr, "type", string(m.typ()))
	attr = strAttr(attr, "id", m.ID)
	return xml.StartElement{
		Name: xml.Name{Local: "message"},
		Attr: attr,
	}
}

// Wrap wraps the payload in a stanza.
func (m Message) Wrap(payload xml.TokenReader) xml.TokenReader {
	return xmlstream.Wrap(payload, m.StartElement())
}

// TokenReader returns the message including its subject, body, and thread.
func (m Message) TokenReader() xml.TokenReader {
	var inner []xml.TokenReader
	if m.Subject != "" {
		inner = append(inner, textElement("subject", m.Subject))
	}
	inner = append(inner, textElement("body", m.Body))
	if m.Thread != "" {
		inner = append(inner,
			textElement("thread", m.Thread),
			xmlstream.Wrap(nil, xml.StartElement{Name: xml.Name{Space: ns.ChatStates, Local: "active"}}),
		)
	}
	return m.Wrap(xmlstream.MultiReader(inner...))
}
