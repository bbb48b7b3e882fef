// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package digestmd5 implements the client side of the DIGEST-MD5 SASL
// mechanism as defined in RFC 2831.
//
// DIGEST-MD5 is obsolete (RFC 6331) but it is still the strongest mechanism
// offered by many deployed XMPP servers when the stream is not encrypted.
// Only the "auth" quality of protection is supported.
package digestmd5 // import "mellium.im/jabber/digestmd5"
