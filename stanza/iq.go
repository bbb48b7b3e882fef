// Copyright 2016 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package stanza

import (
	"encoding/xml"

	"mellium.im/xmlstream"

	"mellium.im/jabber/jid"
)

// IQType is the type of an IQ stanza.
// It should normally be one of the constants defined in this package.
type IQType string

const (
	// GetIQ is used to query another entity for information.
	GetIQ IQType = "get"

	// SetIQ is used to provide data to another entity, set new values, and
	// replace existing values.
	SetIQ IQType = "set"

	// ResultIQ is sent in response to a successful get or set IQ.
	ResultIQ IQType = "result"

	// ErrorIQ is sent to report that an error occurred during the delivery or
	// processing of a get or set IQ.
	ErrorIQ IQType = "error"
)

// IQ ("Information Query") is used as a general request response mechanism.
// IQ's are one-to-one, provide get and set semantics, and always require a
// response in the form of a result or an error.
type IQ struct {
	ID   string
	To   jid.JID
	From jid.JID
	Type IQType
}

// StartElement converts the IQ into an XML token.
func (iq IQ) StartElement() xml.StartElement {
	attr := make([]xml.Attr, 0, 4)
	attr = addrAttr(attr, "from", iq.From)
	attr = addrAttr(attr, "to", iq.To)
	attr = strAttr(attr, "type", string(iq.Type))
	attr = strAttr(attr, "id", iq.ID)
	return xml.StartElement{
		Name: xml.Name{Local: "iq"},
		Attr: attr,
	}
}

// Wrap wraps the payload in a stanza.
func (iq IQ) Wrap(payload xml.TokenReader) xml.TokenReader {
	return xmlstream.Wrap(payload, iq.StartElement())
}

// Result returns a result IQ that answers iq.
func (iq IQ) Result() IQ {
	return IQ{
		ID:   iq.ID,
		To:   iq.From,
		From: iq.To,
		Type: ResultIQ,
	}
}
