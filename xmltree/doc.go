// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package xmltree turns the raw bytes read from an XMPP stream into a small,
// navigable tree of elements.
//
// Reads from a stream rarely line up with document boundaries: a single read
// may contain the unclosed stream start tag together with its first few
// children, or several sibling stanzas at once.
// The functions in this package accept such fragments, closing any elements
// that are still open when the input ends, and group sibling elements by name
// so that repeated elements (eg. several roster items or mechanisms) are kept
// together in document order.
//
// Names keep the prefix they were written with, so the features element of a
// stream is found under "stream:features" regardless of the namespace the
// prefix is bound to.
package xmltree // import "mellium.im/jabber/xmltree"
