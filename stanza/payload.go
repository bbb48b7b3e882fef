// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package stanza

import (
	"encoding/xml"

	"mellium.im/xmlstream"

	"mellium.im/jabber/internal/ns"
	"mellium.im/jabber/jid"
)

func query(space, local string, inner ...xml.TokenReader) xml.TokenReader {
	return xmlstream.Wrap(
		xmlstream.MultiReader(inner...),
		xml.StartElement{Name: xml.Name{Space: space, Local: local}},
	)
}

// Bind is a resource binding request.
// If resource is empty the server picks one.
func Bind(resource string) xml.TokenReader {
	if resource == "" {
		return query(ns.Bind, "bind")
	}
	return query(ns.Bind, "bind", textElement("resource", resource))
}

// Session is a session establishment request.
func Session() xml.TokenReader {
	return query(ns.Session, "session")
}

// RosterItem is a single contact in a roster query.
type RosterItem struct {
	JID          jid.JID
	Name         string
	Subscription string
}

func (i RosterItem) tokenReader() xml.TokenReader {
	attr := addrAttr(nil, "jid", i.JID)
	attr = strAttr(attr, "name", i.Name)
	attr = strAttr(attr, "subscription", i.Subscription)
	return xmlstream.Wrap(nil, xml.StartElement{Name: xml.Name{Local: "item"}, Attr: attr})
}

// RosterQuery is a roster query holding the given items.
// Without items it requests the roster.
func RosterQuery(items ...RosterItem) xml.TokenReader {
	inner := make([]xml.TokenReader, 0, len(items))
	for _, item := range items {
		inner = append(inner, item.tokenReader())
	}
	return query(ns.Roster, "query", inner...)
}

// RegisterForm is a request for the in-band registration form.
func RegisterForm() xml.TokenReader {
	return query(ns.Register, "query")
}

// RegisterQuery is a filled in in-band registration form.
func RegisterQuery(username, password string) xml.TokenReader {
	return query(ns.Register, "query",
		textElement("username", username),
		textElement("password", password),
	)
}

// RegisterRemove is a request to remove the account registration.
func RegisterRemove() xml.TokenReader {
	return query(ns.Register, "query",
		xmlstream.Wrap(nil, xml.StartElement{Name: xml.Name{Local: "remove"}}),
	)
}
