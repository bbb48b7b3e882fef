// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jabber

import (
	"strconv"
)

// NegotiationState is the progress of stream negotiation.
type NegotiationState uint8

// A list of possible negotiation states.
const (
	// NegotiationNoop is the state before the server opened its stream.
	NegotiationNoop NegotiationState = iota

	// NegotiationStarted is entered when the first stream header is received.
	NegotiationStarted

	// NegotiationChallenge is entered when a SASL challenge has been answered.
	NegotiationChallenge

	// NegotiationFailure is entered when the server rejects authentication.
	NegotiationFailure

	// NegotiationProceed is entered when the server agrees to upgrade to TLS.
	NegotiationProceed

	// NegotiationSuccess is entered when authentication succeeds.
	NegotiationSuccess
)

func (s NegotiationState) String() string {
	switch s {
	case NegotiationNoop:
		return "noop"
	case NegotiationStarted:
		return "started"
	case NegotiationChallenge:
		return "challenge"
	case NegotiationFailure:
		return "failure"
	case NegotiationProceed:
		return "proceed"
	case NegotiationSuccess:
		return "success"
	}
	return "NegotiationState(" + strconv.Itoa(int(s)) + ")"
}

// Session is a snapshot of the state of a client connection.
type Session struct {
	// Host is the server to connect to and Port the port on that server.
	Host string
	Port int

	// User and Domain are the localpart and domainpart of the account.
	User   string
	Domain string

	// SSL is set if the connection uses implicit TLS.
	// TLS is set if the client upgrades the connection with STARTTLS when the
	// server offers it.
	SSL bool
	TLS bool

	// Resource is the resource requested when binding.
	Resource string

	Negotiation NegotiationState

	// SessionRequired is set if the server asked for a session to be
	// established after binding.
	SessionRequired bool

	// JID is the full address bound by the server.
	JID string

	// StreamID is the id of the stream opened by the server.
	StreamID string

	// Presence is the last presence announced.
	// If set an unavailable presence is sent when disconnecting.
	Presence string
}
