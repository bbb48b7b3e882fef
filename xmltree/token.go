// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package xmltree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// streamRoot is the one element that a peer never closes while a session is
// active.
const streamRoot = "stream:stream"

// Kind is the type of a Token.
type Kind uint8

// A list of token kinds produced by Tokenize.
const (
	// Open starts an element whose children follow until the matching Close.
	Open Kind = iota

	// Complete is an element with no child elements.
	// Its text, if any, is carried in the token's Value and no Close follows.
	Complete

	// CData is bare text between elements.
	CData

	// Close ends the element started by the most recent unclosed Open.
	Close
)

func (k Kind) String() string {
	switch k {
	case Open:
		return "open"
	case Complete:
		return "complete"
	case CData:
		return "cdata"
	case Close:
		return "close"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Token is a single event in the flattened form of an XML buffer.
// Names keep any namespace prefix they were written with (eg.
// "stream:features" or "xml:lang").
type Token struct {
	Kind  Kind
	Name  string
	Attr  map[string]string
	Value string
}

// ParseError is returned when the input is not well formed XML or contains
// bytes that are invalid in its declared encoding.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "xmltree: " + e.Err.Error()
}

// Unwrap returns the underlying decoder error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

func newDecoder(raw []byte) *xml.Decoder {
	d := xml.NewDecoder(bytes.NewReader(raw))
	d.CharsetReader = charset.NewReaderLabel
	return d
}

func rawName(n xml.Name) string {
	if n.Space != "" {
		return n.Space + ":" + n.Local
	}
	return n.Local
}

func rawAttr(attr []xml.Attr) map[string]string {
	if len(attr) == 0 {
		return nil
	}
	m := make(map[string]string, len(attr))
	for _, a := range attr {
		m[rawName(a.Name)] = a.Value
	}
	return m
}

// Tokenize flattens raw into a sequence of tokens.
//
// The input does not need to be a complete document: elements that are still
// open when the input ends are closed implicitly.
// An end tag that skips over an unclosed stream root closes the stream root as
// well.
// If stripWhitespace is set, text that consists only of whitespace is dropped.
func Tokenize(raw []byte, stripWhitespace bool) ([]Token, error) {
	d := newDecoder(raw)

	var (
		toks  []Token
		stack []string
		// Index of the last Open token, as long as nothing but its own text has
		// followed it (so that it can still become a Complete token).
		pending = -1
	)
	closeTop := func() {
		stack = stack[:len(stack)-1]
		if pending >= 0 && pending == len(toks)-1 {
			toks[pending].Kind = Complete
		} else {
			toks = append(toks, Token{Kind: Close})
		}
		pending = -1
	}

	for {
		t, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}

		switch tok := t.(type) {
		case xml.StartElement:
			name := rawName(tok.Name)
			stack = append(stack, name)
			pending = len(toks)
			toks = append(toks, Token{
				Kind: Open,
				Name: name,
				Attr: rawAttr(tok.Attr),
			})
		case xml.CharData:
			if stripWhitespace && len(bytes.TrimSpace(tok)) == 0 {
				continue
			}
			switch n := len(toks); {
			case pending >= 0 && pending == n-1:
				toks[pending].Value += string(tok)
			case n > 0 && toks[n-1].Kind == CData:
				toks[n-1].Value += string(tok)
			default:
				toks = append(toks, Token{Kind: CData, Value: string(tok)})
			}
		case xml.EndElement:
			name := rawName(tok.Name)
			for len(stack) > 1 && stack[len(stack)-1] == streamRoot && name != streamRoot {
				closeTop()
			}
			switch {
			case len(stack) == 0:
				return nil, &ParseError{Err: fmt.Errorf("unexpected end element </%s>", name)}
			case stack[len(stack)-1] != name:
				return nil, &ParseError{Err: fmt.Errorf("element <%s> closed by </%s>", stack[len(stack)-1], name)}
			}
			closeTop()
		}
	}

	for len(stack) > 0 {
		closeTop()
	}
	return toks, nil
}
