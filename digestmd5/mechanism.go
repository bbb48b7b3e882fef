// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package digestmd5

import (
	"mellium.im/sasl"
)

// Name is the SASL name of the mechanism.
const Name = "DIGEST-MD5"

// Mechanism returns a client side DIGEST-MD5 mechanism for authenticating to
// host.
// The username and password are taken from the negotiator's credentials and a
// non-empty identity is sent as the authorization identity.
//
// The initial response is empty, challenges are answered with Reply, and the
// negotiation ends when the server sends rspauth.
func Mechanism(host string) sasl.Mechanism {
	return sasl.Mechanism{
		Name: Name,
		Start: func(*sasl.Negotiator) (bool, []byte, interface{}, error) {
			return true, nil, nil, nil
		},
		Next: func(n *sasl.Negotiator, challenge []byte, _ interface{}) (bool, []byte, interface{}, error) {
			if n.State()&sasl.Receiving == sasl.Receiving {
				return false, nil, nil, sasl.ErrTooManySteps
			}
			f := ParseChallenge(string(challenge))
			if _, ok := f[KeyRSPAuth]; ok {
				return false, nil, nil, nil
			}
			if _, ok := f[KeyNonce]; !ok {
				return false, nil, nil, sasl.ErrInvalidChallenge
			}
			username, password, identity := n.Credentials()
			if len(identity) > 0 && f[KeyAuthzid] == "" {
				f[KeyAuthzid] = string(identity)
			}
			return true, Reply(string(username), string(password), host, f), nil, nil
		},
	}
}
