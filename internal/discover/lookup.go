// Copyright 2016 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package discover is used to look up the hosts serving an XMPP domain.
package discover // import "mellium.im/jabber/internal/discover"

import (
	"context"
	"errors"
	"net"
)

// Errors returned by this package.
var (
	ErrInvalidService = errors.New("service must be one of xmpp[s]-client or xmpp[s]-server")
)

func isNotFound(err error) bool {
	var dnsErr *net.DNSError
	ok := errors.As(err, &dnsErr)
	return ok && dnsErr.IsNotFound
}

// Resolver is the subset of *net.Resolver used to find SRV records.
type Resolver interface {
	LookupSRV(ctx context.Context, service, proto, name string) (string, []*net.SRV, error)
}

// FallbackRecords returns fake SRV records based on the service that can be
// used if no actual SRV records can be found but we believe that an XMPP
// service exists at the given domain.
func FallbackRecords(service, domain string) []*net.SRV {
	switch service {
	case "xmpp-client":
		return []*net.SRV{{
			Target: domain,
			Port:   5222,
		}}
	case "xmpps-client":
		return []*net.SRV{{
			Target: domain,
			Port:   5223,
		}}
	case "xmpp-server":
		return []*net.SRV{{
			Target: domain,
			Port:   5269,
		}}
	case "xmpps-server":
		return []*net.SRV{{
			Target: domain,
			Port:   5270,
		}}
	}
	return nil
}

// LookupServiceByDomain looks for an XMPP service hosted by the given domain.
// It returns addresses from SRV records and if none are found returns
// FallbackRecords for the domain.
// If the target of the only record is "." the service is explicitly not
// available and an empty list is returned.
// Service should be one of "xmpp[s]-client" or "xmpp[s]-server".
// A nil resolver uses net.DefaultResolver.
func LookupServiceByDomain(ctx context.Context, resolver Resolver, service, domain string) (addrs []*net.SRV, err error) {
	switch service {
	case "xmpp-client", "xmpp-server", "xmpps-client", "xmpps-server":
	default:
		return nil, ErrInvalidService
	}
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	_, addrs, err = resolver.LookupSRV(ctx, service, "tcp", domain)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		return FallbackRecords(service, domain), nil
	}

	// RFC 6120 §3.2.1
	//    3.  If a response is received, it will contain one or more
	//        combinations of a port and FDQN, each of which is weighted and
	//        prioritized as described in [DNS-SRV].  (However, if the result
	//        of the SRV lookup is a single resource record with a Target of
	//        ".", i.e., the root domain, then the initiating entity MUST abort
	//        SRV processing at this point because according to [DNS-SRV] such
	//        a Target "means that the service is decidedly not available at
	//        this domain".)
	if len(addrs) == 1 && addrs[0].Target == "." {
		return nil, nil
	}
	return addrs, nil
}
