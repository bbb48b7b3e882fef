// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package jabber is a client for the Extensible Messaging and Presence
// Protocol (XMPP), historically called Jabber.
//
// A Client opens a stream to a server, negotiates TLS and authentication, binds
// a resource, and then exchanges presence, message, and IQ stanzas.
//
//	c, err := jabber.New("example.net", 5222, "juliet", "secret",
//		jabber.Resource("balcony"),
//		jabber.Notify(mux),
//	)
//	…
//	err = c.Connect(ctx)
//	…
//	err = c.Serve(ctx)
//
// Everything the client learns from the server is reported as an Event to the
// Notifier configured with the Notify option.
// A Mux can be used to route events to handlers by name.
//
// The client does not reconnect: once the stream has been closed (by either
// side or because of a protocol error) Connect must be called again.
//
// Be advised: This API is still unstable and is subject to change.
package jabber // import "mellium.im/jabber"
