// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package digestmd5

import (
	"strings"
)

// Keys used in challenges and responses.
const (
	KeyNonce     = "nonce"
	KeyRealm     = "realm"
	KeyQOP       = "qop"
	KeyDigestURI = "digest-uri"
	KeyCnonce    = "cnonce"
	KeyNC        = "nc"
	KeyAuthzid   = "authzid"
	KeyRSPAuth   = "rspauth"
	KeyCharset   = "charset"
	KeyUsername  = "username"
	KeyResponse  = "response"
)

// Fields holds the directives of a challenge or response.
type Fields map[string]string

// ParseChallenge splits a decoded challenge into its directives.
//
// Directives are separated by commas and values may be quoted.
// A quoted value that itself contains commas (eg. qop="auth,auth-int") is kept
// whole and surrounding quotes are removed from every value.
// Segments that have no key are skipped.
func ParseChallenge(decoded string) Fields {
	f := make(Fields)
	var (
		last  string
		inQuo bool
	)
	for _, seg := range strings.Split(decoded, ",") {
		if inQuo {
			f[last] += "," + seg
			if strings.HasSuffix(seg, `"`) {
				inQuo = false
				f[last] = strings.Trim(f[last], `"`)
			}
			continue
		}
		idx := strings.IndexByte(seg, '=')
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(seg[:idx])
		val := seg[idx+1:]
		last = key
		if strings.HasPrefix(val, `"`) && (len(val) == 1 || !strings.HasSuffix(val, `"`)) {
			inQuo = true
			f[key] = val
			continue
		}
		f[key] = strings.Trim(val, `"`)
	}
	if inQuo {
		f[last] = strings.Trim(f[last], `"`)
	}
	return f
}

// CanonicalQOP returns the quality of protection to use for a challenge that
// offered qop.
// Any value other than exactly "auth" that mentions "auth" is reduced to
// "auth", the only protection this package implements.
// Values that do not mention auth are returned unchanged.
func CanonicalQOP(qop string) string {
	if qop != "auth" && strings.Contains(qop, "auth") {
		return "auth"
	}
	return qop
}
