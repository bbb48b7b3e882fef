// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package xmltree

import (
	"bytes"
	"encoding/xml"
	"io"
)

// IsComplete reports whether buf holds only whole elements.
//
// A stream start tag at the beginning of buf is not expected to be closed; it
// and anything that follows it count as complete once every element opened
// after it has been closed.
// Truncated input (a partial tag or entity) is never complete, and neither is
// input that has not yet started an element, such as a lone XML declaration.
func IsComplete(buf []byte) bool {
	buf = bytes.TrimSpace(buf)
	if len(buf) == 0 || buf[len(buf)-1] != '>' {
		return false
	}

	d := newDecoder(buf)
	depth := 0
	sawStream := false
	sawElement := false
	for {
		t, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return false
		}
		switch tok := t.(type) {
		case xml.StartElement:
			sawElement = true
			if depth == 0 && !sawStream && rawName(tok.Name) == streamRoot {
				sawStream = true
				continue
			}
			depth++
		case xml.EndElement:
			sawElement = true
			if rawName(tok.Name) == streamRoot && depth == 0 {
				continue
			}
			depth--
		}
	}
	return sawElement && depth <= 0
}
