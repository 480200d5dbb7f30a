package parse

import (
	"github.com/setctl/setctl/pkg/session"
)

// addrKind restricts which address shapes an entry point accepts.
type addrKind int

const (
	addrAny   addrKind = iota // address, network or range
	addrPlain                 // single address only
	addrNet                   // address/cidr only
	addrRange                 // address-address only
)

func familyNet(family session.Family) string {
	if family == session.FamilyIPv6 {
		return "ip6"
	}
	return "ip4"
}

func familyAddrName(family session.Family) string {
	if family == session.FamilyIPv6 {
		return "IPv6"
	}
	return "IPv4"
}

// resolveAddr resolves host to a single address of the given family and
// stores it under opt. Extra addresses from the resolver are dropped
// with a warning.
func resolveAddr(s *session.Session, opt session.Opt, host string, family session.Family) error {
	addrs, err := s.Resolver().LookupIP(s.Context(), familyNet(family), host)
	if err != nil {
		return session.Syntaxf("cannot resolve '%s' to an %s address: %v",
			host, familyAddrName(family), err)
	}
	if len(addrs) == 0 {
		return session.Syntaxf("cannot parse %s: %s address could not be resolved",
			host, familyAddrName(family))
	}
	if len(addrs) > 1 {
		s.Warnf("%s resolves to multiple addresses: using only the first one returned by the resolver",
			host)
	}
	return s.Data().Set(opt, addrs[0].Unmap())
}

// parseIPAddr splits text into host[/cidr] or host-host, stores the
// prefix length when present, and resolves the host parts. For OptIP
// the prefix goes to OptCIDR, for any other target to OptCIDR2; the
// second half of a range always goes to OptIPTo.
func parseIPAddr(s *session.Session, opt session.Opt, text string, family session.Family) error {
	max := uint8(32)
	if family == session.FamilyIPv6 {
		max = 128
	}
	copt := session.OptCIDR2
	if opt == session.OptIP {
		copt = session.OptCIDR
	}

	host := text
	var to string
	var ranged bool
	if before, after, ok := cut(text, cidrSeparator); ok {
		host = before
		cidr, err := parseCIDR(after, 0, max)
		if err != nil {
			return err
		}
		if err := s.Data().Set(copt, cidr); err != nil {
			return err
		}
	} else if before, after, ok := cut(text, rangeSeparator); ok {
		host, to, ranged = before, after, true
	}

	if err := resolveAddr(s, opt, host, family); err != nil {
		return err
	}
	if !ranged {
		return nil
	}
	return resolveAddr(s, session.OptIPTo, to, family)
}

// cidrHostAddr reports whether text carries the host prefix length of
// its family, "/32" or "/128", which a plain-address parser tolerates.
func cidrHostAddr(text string, family session.Family) bool {
	_, after, ok := cut(text, cidrSeparator)
	if !ok {
		return false
	}
	if family == session.FamilyIPv6 {
		return after == "128"
	}
	return after == "32"
}

func parseIP(s *session.Session, opt session.Opt, text string, kind addrKind) error {
	family := s.DefaultFamily()

	switch kind {
	case addrPlain:
		if hasSep(text, rangeSeparator) ||
			(hasSep(text, cidrSeparator) && !cidrHostAddr(text, family)) {
			return session.Syntaxf("plain IP address must be supplied: %s", text)
		}
	case addrNet:
		if !hasSep(text, cidrSeparator) || hasSep(text, rangeSeparator) {
			return session.Syntaxf("IP/netblock must be supplied: %s", text)
		}
	case addrRange:
		if !hasSep(text, rangeSeparator) || hasSep(text, cidrSeparator) {
			return session.Syntaxf("IP-IP range must be supplied: %s", text)
		}
	}
	return parseIPAddr(s, opt, text, family)
}

// ParseIP parses text as an address, an address/cidr block or an
// address-address range and stores the pieces under opt. Hostnames are
// resolved. If no family is set yet, IPv4 is assumed.
func ParseIP(s *session.Session, opt session.Opt, text string) error {
	return parseIP(s, opt, text, addrAny)
}

// ParseSingleIP parses text as a single address or hostname. The host
// prefix length of the family is tolerated and stored.
func ParseSingleIP(s *session.Session, opt session.Opt, text string) error {
	return parseIP(s, opt, text, addrPlain)
}

// ParseNet parses text as an address/cidr block.
func ParseNet(s *session.Session, opt session.Opt, text string) error {
	return parseIP(s, opt, text, addrNet)
}

// ParseRange parses text as an address-address range, stored under
// OptIP and OptIPTo regardless of the requested option.
func ParseRange(s *session.Session, _ session.Opt, text string) error {
	return parseIP(s, session.OptIP, text, addrRange)
}

// ParseNetRange parses text as an address/cidr block or an
// address-address range.
func ParseNetRange(s *session.Session, opt session.Opt, text string) error {
	if !hasSep(text, rangeSeparator) && !hasSep(text, cidrSeparator) {
		return session.Syntaxf("IP/cidr or IP-IP range must be specified: %s", text)
	}
	return parseIP(s, opt, text, addrAny)
}

// ParseIPRange parses text as a single address or an address-address
// range.
func ParseIPRange(s *session.Session, opt session.Opt, text string) error {
	if hasSep(text, cidrSeparator) {
		return session.Syntaxf("IP address or IP-IP range must be specified: %s", text)
	}
	return parseIP(s, opt, text, addrAny)
}

// ParseIPNet parses text as a single address or an address/cidr block.
func ParseIPNet(s *session.Session, opt session.Opt, text string) error {
	if hasSep(text, rangeSeparator) {
		return session.Syntaxf("IP address or IP/cidr must be specified: %s", text)
	}
	return parseIP(s, opt, text, addrAny)
}

// ParseIP4Single6 parses text as an address, block or range when the
// family is IPv4 but as a single address when it is IPv6.
func ParseIP4Single6(s *session.Session, opt session.Opt, text string) error {
	if s.DefaultFamily() == session.FamilyIPv6 {
		return ParseSingleIP(s, opt, text)
	}
	return ParseIP(s, opt, text)
}

// ParseIPTimeout parses the old "address,timeout" element form.
func ParseIPTimeout(s *session.Session, opt session.Opt, text string) error {
	if s.Data().Test(session.OptTimeout) {
		return session.Syntaxf("mixed syntax, timeout already specified")
	}
	elem, timeout, ok := cut(text, elemSeparator)
	if !ok {
		return session.Syntaxf("Missing separator from %s", text)
	}
	if err := parseIP(s, opt, elem, addrAny); err != nil {
		return err
	}
	return ParseUint32(s, session.OptTimeout, timeout)
}
