// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package digestmd5

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"mellium.im/jabber/internal/attr"
)

const (
	service      = "xmpp"
	firstNC      = "00000001"
	authenticate = "AUTHENTICATE"
)

// DefaultURI returns the digest-uri used when a challenge does not name one.
func DefaultURI(host string) string {
	return service + "/" + host
}

// Cnonce returns a new client nonce.
func Cnonce() string {
	seed := attr.RandomID() + strconv.FormatInt(time.Now().UnixNano(), 10)
	sum := md5.Sum([]byte(seed))
	return base64.StdEncoding.EncodeToString([]byte(hex.EncodeToString(sum[:])))
}

func md5hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Response computes the response directive for the given identity and secret.
// Missing realm, cnonce and digest-uri directives are treated as empty.
//
// If f contains an authzid it is mixed into A1 as described in RFC 2831.
func Response(identity, secret string, f Fields) string {
	realm := f[KeyRealm]
	nonce := f[KeyNonce]
	cnonce := f[KeyCnonce]
	uri := f[KeyDigestURI]

	x := md5.Sum([]byte(identity + ":" + realm + ":" + secret))
	a1 := string(x[:]) + ":" + nonce + ":" + cnonce
	if authzid := f[KeyAuthzid]; authzid != "" {
		a1 += ":" + authzid
	}
	a2 := authenticate + ":" + uri

	return md5hex(strings.Join([]string{
		md5hex(a1),
		nonce,
		f[KeyNC],
		cnonce,
		f[KeyQOP],
		md5hex(a2),
	}, ":"))
}

// Reply returns the full client response to a challenge, ready to be base64
// encoded.
// The challenge fields are completed in place: a missing digest-uri becomes
// DefaultURI(host), a new cnonce is generated, and nc and qop are set.
//
// If the challenge carries rspauth the server is confirming a successful
// authentication and the reply is empty.
func Reply(identity, secret, host string, f Fields) []byte {
	return reply(identity, secret, host, f, Cnonce())
}

func reply(identity, secret, host string, f Fields, cnonce string) []byte {
	if _, ok := f[KeyRSPAuth]; ok {
		return nil
	}
	if f[KeyDigestURI] == "" {
		f[KeyDigestURI] = DefaultURI(host)
	}
	f[KeyCnonce] = cnonce
	f[KeyNC] = firstNC
	if qop, ok := f[KeyQOP]; ok {
		f[KeyQOP] = CanonicalQOP(qop)
	} else {
		f[KeyQOP] = "auth"
	}

	out := []string{
		KeyUsername, identity,
		KeyResponse, Response(identity, secret, f),
		KeyCharset, "utf-8",
		KeyNC, firstNC,
		KeyQOP, f[KeyQOP],
	}
	for _, k := range [...]string{KeyNonce, KeyDigestURI, KeyRealm, KeyCnonce, KeyAuthzid} {
		if v, ok := f[k]; ok {
			out = append(out, k, v)
		}
	}

	var b strings.Builder
	for i := 0; i < len(out); i += 2 {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(out[i])
		b.WriteString(`="`)
		b.WriteString(out[i+1])
		b.WriteByte('"')
	}
	return []byte(b.String())
}
