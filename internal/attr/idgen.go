// Copyright 2016 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package attr generates values for stanza and SASL attributes.
package attr // import "mellium.im/jabber/internal/attr"

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"strconv"
)

// IDLen is the length of identifiers returned by RandomID.
const IDLen = 16

// RandomID returns a random hex string of length IDLen.
// It panics if the system's source of randomness fails.
func RandomID() string {
	return randomID(IDLen, rand.Reader)
}

func randomID(n int, r io.Reader) string {
	b := make([]byte, (n/2)+(n&1))
	if _, err := io.ReadFull(r, b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)[:n]
}

// Sequence hands out identifiers of the form "<prefix>_<n>" where n counts up
// from 1 separately for each prefix.
// The zero value is ready to use.
// A Sequence is not safe for concurrent use.
type Sequence struct {
	next map[string]int
}

// Next returns the next identifier for prefix.
func (s *Sequence) Next(prefix string) string {
	if s.next == nil {
		s.next = make(map[string]int)
	}
	s.next[prefix]++
	return prefix + "_" + strconv.Itoa(s.next[prefix])
}

// Reset starts every prefix over at 1.
func (s *Sequence) Reset() {
	s.next = nil
}
