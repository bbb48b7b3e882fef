// Copyright 2019 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package decl writes the fixed strings that frame an XMPP stream.
package decl // import "mellium.im/jabber/internal/decl"

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"

	"mellium.im/jabber/internal/ns"
)

const (
	// XMLHeader is an XML header like the one in encoding/xml but without a
	// newline at the end.
	XMLHeader = `<?xml version="1.0" encoding="UTF-8"?>`

	// StreamEnd closes a stream.
	StreamEnd = `</stream:stream>`
)

// StreamHeader writes the start of a client stream addressed to the given
// domain.
// If withDecl is set the stream is preceded by an XML declaration, as it is
// when a new connection is opened or a connection has just been upgraded to
// TLS.
func StreamHeader(w io.Writer, to, lang string, withDecl bool) error {
	b := bufio.NewWriter(w)
	if withDecl {
		if _, err := b.WriteString(XMLHeader); err != nil {
			return err
		}
	}
	if _, err := b.WriteString(`<stream:stream to='`); err != nil {
		return err
	}
	if err := xml.EscapeText(b, []byte(to)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(b, `' xmlns='%s' xmlns:stream='%s' `, ns.Client, ns.Stream); err != nil {
		return err
	}
	if lang != "" {
		if _, err := b.WriteString(`xml:lang='`); err != nil {
			return err
		}
		if err := xml.EscapeText(b, []byte(lang)); err != nil {
			return err
		}
		if _, err := b.WriteString(`' `); err != nil {
			return err
		}
	}
	if _, err := b.WriteString(`version='1.0'>`); err != nil {
		return err
	}
	return b.Flush()
}
