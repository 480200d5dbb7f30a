package parse

import (
	"github.com/setctl/setctl/pkg/session"
)

// ParseFamily parses an address family name. Accepted spellings are
// inet, ipv4 and -4, their inet6, ipv6 and -6 counterparts, and any or
// unspec. A family may be given only once per session.
func ParseFamily(s *session.Session, opt session.Opt, text string) error {
	data := s.Data()
	if data.Test(session.OptFamily) {
		return session.Syntaxf("protocol family may not be specified multiple times")
	}

	var family session.Family
	switch text {
	case "inet", "ipv4", "-4":
		family = session.FamilyIPv4
	case "inet6", "ipv6", "-6":
		family = session.FamilyIPv6
	case "any", "unspec":
		family = session.FamilyUnspec
	default:
		return session.Syntaxf("unknown INET family %s", text)
	}
	return data.Set(opt, family)
}

// ParseNetmask parses a CIDR netmask value bounded by the family,
// 1-31 for IPv4 and 4-124 for IPv6. If no family is set yet, IPv4 is
// assumed.
func ParseNetmask(s *session.Session, opt session.Opt, text string) error {
	min, max := uint8(1), uint8(31)
	if s.DefaultFamily() == session.FamilyIPv6 {
		min, max = 4, 124
	}
	cidr, err := parseCIDR(text, min, max)
	if err != nil {
		return session.Syntaxf("netmask is out of the inclusive range of %d-%d", min, max)
	}
	return s.Data().Set(opt, cidr)
}

// ParseFlag records a presence-only option.
func ParseFlag(s *session.Session, opt session.Opt, _ string) error {
	s.Data().SetFlag(opt)
	return nil
}

// ParseIgnored accepts and drops a deprecated option. A single warning
// is generated per option; text carries the option name.
func ParseIgnored(s *session.Session, opt session.Opt, text string) error {
	if !s.Data().Ignored(opt) {
		s.Warnf("Option %s is ignored. Please upgrade your syntax.", text)
	}
	return nil
}

// ParseOutput selects the listing format: plain, save, xml or json.
func ParseOutput(s *session.Session, _ session.Opt, text string) error {
	switch text {
	case "plain":
		s.SetOutput(session.OutputPlain)
	case "save":
		s.SetOutput(session.OutputSave)
	case "xml":
		s.SetOutput(session.OutputXML)
	case "json":
		s.SetOutput(session.OutputJSON)
	default:
		return session.Syntaxf("unknown output mode '%s'", text)
	}
	return nil
}
