// Copyright 2016 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package ns provides namespace constants that are used by the jabber package
// and other internal packages.
package ns // import "mellium.im/jabber/internal/ns"

// List of commonly used namespaces.
const (
	Bind       = "urn:ietf:params:xml:ns:xmpp-bind"
	ChatStates = "http://jabber.org/protocol/chatstates"
	Client     = "jabber:client"
	Register   = "jabber:iq:register"
	Roster     = "jabber:iq:roster"
	SASL       = "urn:ietf:params:xml:ns:xmpp-sasl"
	Session    = "urn:ietf:params:xml:ns:xmpp-session"
	StartTLS   = "urn:ietf:params:xml:ns:xmpp-tls"
	Stream     = "http://etherx.jabber.org/streams"
	XML        = "http://www.w3.org/XML/1998/namespace"
)
