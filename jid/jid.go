// Copyright 2014 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jid

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
	"golang.org/x/text/secure/precis"
)

// Errors returned when parsing or constructing a JID.
var (
	ErrInvalidUTF8      = errors.New("jid: JID contains invalid UTF-8")
	ErrEmptyLocalpart   = errors.New("jid: the localpart must be larger than 0 bytes")
	ErrEmptyResource    = errors.New("jid: the resourcepart must be larger than 0 bytes")
	ErrLongLocalpart    = errors.New("jid: the localpart must be smaller than 1024 bytes")
	ErrLongResourcepart = errors.New("jid: the resourcepart must be smaller than 1024 bytes")
	ErrDomainLength     = errors.New("jid: the domainpart must be between 1 and 1023 bytes")
	ErrForbiddenChars   = errors.New("jid: localpart contains forbidden characters")
	ErrInvalidIP6       = errors.New("jid: domainpart is not a valid IPv6 address")
)

// JID is an XMPP address comprising a localpart, domainpart, and resourcepart.
// All parts of a JID constructed with New or Parse are valid UTF-8 and in their
// canonical form.
// The zero value is the empty address.
type JID struct {
	localpart    string
	domainpart   string
	resourcepart string
}

// Parse constructs a new JID from the given string representation.
func Parse(s string) (JID, error) {
	localpart, domainpart, resourcepart, err := SplitString(s)
	if err != nil {
		return JID{}, err
	}
	return New(localpart, domainpart, resourcepart)
}

// MustParse is like Parse but panics if the JID cannot be parsed.
// It simplifies safe initialization of JIDs from known-good constant strings.
func MustParse(s string) JID {
	j, err := Parse(s)
	if err != nil {
		if strconv.CanBackquote(s) {
			s = "`" + s + "`"
		} else {
			s = strconv.Quote(s)
		}
		panic(`jid: Parse(` + s + `): ` + err.Error())
	}
	return j
}

// New constructs a new JID from the given localpart, domainpart, and
// resourcepart.
func New(localpart, domainpart, resourcepart string) (JID, error) {
	if !utf8.ValidString(localpart) || !utf8.ValidString(resourcepart) {
		return JID{}, ErrInvalidUTF8
	}

	// RFC 7622 §3.2.1.  Preparation
	//
	//    An entity that prepares a string for inclusion in an XMPP domainpart
	//    slot MUST ensure that the string consists only of Unicode code points
	//    that are allowed in NR-LDH labels or U-labels as defined in
	//    [RFC5890].  This implies that the string MUST NOT include A-labels as
	//    defined in [RFC5890]; each A-label MUST be converted to a U-label
	//    during preparation of a string for inclusion in a domainpart slot.
	if !isIP6Literal(domainpart) {
		var err error
		domainpart, err = idna.ToUnicode(domainpart)
		if err != nil {
			return JID{}, err
		}
		if !utf8.ValidString(domainpart) {
			return JID{}, ErrInvalidUTF8
		}
	}

	if localpart != "" {
		var err error
		localpart, err = precis.UsernameCaseMapped.String(localpart)
		if err != nil {
			return JID{}, err
		}
	}
	if resourcepart != "" {
		var err error
		resourcepart, err = precis.OpaqueString.String(resourcepart)
		if err != nil {
			return JID{}, err
		}
	}

	if err := commonChecks(localpart, domainpart, resourcepart); err != nil {
		return JID{}, err
	}
	return JID{
		localpart:    localpart,
		domainpart:   domainpart,
		resourcepart: resourcepart,
	}, nil
}

// Bare returns a copy of the JID without a resourcepart. This is sometimes
// called a "bare" JID.
func (j JID) Bare() JID {
	j.resourcepart = ""
	return j
}

// Localpart gets the localpart of a JID (eg "username").
func (j JID) Localpart() string {
	return j.localpart
}

// Domainpart gets the domainpart of a JID (eg. "example.net").
func (j JID) Domainpart() string {
	return j.domainpart
}

// Resourcepart gets the resourcepart of a JID.
func (j JID) Resourcepart() string {
	return j.resourcepart
}

// String converts a JID to its string representation.
func (j JID) String() string {
	s := j.domainpart
	if j.localpart != "" {
		s = j.localpart + "@" + s
	}
	if j.resourcepart != "" {
		s = s + "/" + j.resourcepart
	}
	return s
}

// Equal performs an octet-for-octet comparison with the given JID.
func (j JID) Equal(j2 JID) bool {
	return j == j2
}

// SplitString splits out the localpart, domainpart, and resourcepart from a
// string representation of a JID. The parts are not guaranteed to be valid, and
// each part must be 1023 bytes or less.
func SplitString(s string) (localpart, domainpart, resourcepart string, err error) {
	// RFC 7622 §3.1.  Fundamentals:
	//
	//    Implementation Note: When dividing a JID into its component parts,
	//    an implementation needs to match the separator characters '@' and
	//    '/' before applying any transformation algorithms, which might
	//    decompose certain Unicode code points to the separator characters.
	if sep := strings.IndexByte(s, '/'); sep != -1 {
		if sep == len(s)-1 {
			return "", "", "", ErrEmptyResource
		}
		resourcepart = s[sep+1:]
		s = s[:sep]
	}

	switch sep := strings.IndexByte(s, '@'); sep {
	case -1:
		domainpart = s
	case 0:
		return "", "", "", ErrEmptyLocalpart
	default:
		localpart = s[:sep]
		domainpart = s[sep+1:]
	}

	// A final label separator is stripped before any other canonicalization.
	domainpart = strings.TrimSuffix(domainpart, ".")
	return localpart, domainpart, resourcepart, nil
}

func isIP6Literal(domainpart string) bool {
	l := len(domainpart)
	return l > 2 && domainpart[0] == '[' && domainpart[l-1] == ']'
}

func commonChecks(localpart, domainpart, resourcepart string) error {
	if len(localpart) > 1023 {
		return ErrLongLocalpart
	}

	// RFC 7622 §3.3.1 provides a small table of characters which are still not
	// allowed in localpart's even though the IdentifierClass base class and the
	// UsernameCaseMapped profile don't forbid them; disallow them here.
	if strings.ContainsAny(localpart, `"&'/:<>@`) {
		return ErrForbiddenChars
	}

	if len(resourcepart) > 1023 {
		return ErrLongResourcepart
	}

	if l := len(domainpart); l < 1 || l > 1023 {
		return ErrDomainLength
	}

	if isIP6Literal(domainpart) {
		ip := net.ParseIP(domainpart[1 : len(domainpart)-1])
		if ip == nil || ip.To4() != nil {
			return ErrInvalidIP6
		}
	}
	return nil
}
