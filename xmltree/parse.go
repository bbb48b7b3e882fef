// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package xmltree

import (
	"bytes"
)

const (
	wrapName   = "root"
	declPrefix = "<?xml"
)

// Parse is like ParseOptions with whitespace stripping enabled.
func Parse(raw []byte) (*Children, error) {
	return ParseOptions(raw, true)
}

// ParseOptions parses a buffer read from the stream into a tree.
//
// A buffer that does not start with an XML declaration may hold any number of
// sibling elements (or the unclosed start of a stream followed by its first
// children); all of them are returned.
// A buffer that starts with a declaration is treated as a document and the
// result holds only its first element.
func ParseOptions(raw []byte, stripWhitespace bool) (*Children, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return &Children{}, nil
	}

	if bytes.HasPrefix(raw, []byte(declPrefix)) {
		toks, err := Tokenize(raw, stripWhitespace)
		if err != nil {
			return nil, err
		}
		top := Build(toks)
		names := top.Names()
		if len(names) == 0 {
			return &Children{}, nil
		}
		return NewChildren(top.Get(names[0])[0]), nil
	}

	wrapped := make([]byte, 0, len(raw)+2*len(wrapName)+5)
	wrapped = append(wrapped, '<')
	wrapped = append(wrapped, wrapName...)
	wrapped = append(wrapped, '>')
	wrapped = append(wrapped, raw...)
	wrapped = append(wrapped, "</"...)
	wrapped = append(wrapped, wrapName...)
	wrapped = append(wrapped, '>')

	toks, err := Tokenize(wrapped, stripWhitespace)
	if err != nil {
		return nil, err
	}
	top := Build(toks)
	root := top.Get(wrapName)
	if len(root) == 0 {
		return &Children{}, nil
	}
	return root[0].Children(), nil
}
