// Copyright 2016 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package stanza

import (
	"bytes"
	"encoding/xml"
	"io"

	"mellium.im/xmlstream"

	"mellium.im/jabber/jid"
)

// Encode writes the tokens from r to w.
func Encode(w io.Writer, r xml.TokenReader) error {
	e := xml.NewEncoder(w)
	if _, err := xmlstream.Copy(e, r); err != nil {
		return err
	}
	return e.Flush()
}

// Marshal is like Encode but returns the encoded stanza.
func Marshal(r xml.TokenReader) ([]byte, error) {
	var buf bytes.Buffer
	err := Encode(&buf, r)
	return buf.Bytes(), err
}

func addrAttr(attr []xml.Attr, local string, j jid.JID) []xml.Attr {
	if j.Equal(jid.JID{}) {
		return attr
	}
	return append(attr, xml.Attr{Name: xml.Name{Local: local}, Value: j.String()})
}

func strAttr(attr []xml.Attr, local, v string) []xml.Attr {
	if v == "" {
		return attr
	}
	return append(attr, xml.Attr{Name: xml.Name{Local: local}, Value: v})
}

// textElement returns an element with the given local name and character data.
func textElement(local, text string) xml.TokenReader {
	return xmlstream.Wrap(
		xmlstream.Token(xml.CharData(text)),
		xml.StartElement{Name: xml.Name{Local: local}},
	)
}
