package parse

import (
	"github.com/setctl/setctl/pkg/resolver"
	"github.com/setctl/setctl/pkg/session"
)

// parseICMPTypeCode parses a "type/code" pair of 8-bit numbers into
// the packed 16-bit form, type in the high byte.
func parseICMPTypeCode(s *session.Session, opt session.Opt, text, family string) error {
	t, c, ok := cut(text, cidrSeparator)
	if !ok {
		return session.Syntaxf("Cannot parse %s as an %s type/code.", text, family)
	}
	typ, err := parseUint8(t)
	if err != nil {
		return err
	}
	code, err := parseUint8(c)
	if err != nil {
		return err
	}
	return s.Data().Set(opt, uint16(typ)<<8|uint16(code))
}

// ParseICMP parses an ICMP name or type/code pair and stores the
// packed value under opt.
func ParseICMP(s *session.Session, opt session.Opt, text string) error {
	if typecode, ok := resolver.ICMPTypeCode(text); ok {
		return s.Data().Set(opt, typecode)
	}
	return parseICMPTypeCode(s, opt, text, "ICMP")
}

// ParseICMPv6 parses an ICMPv6 name or type/code pair and stores the
// packed value under opt.
func ParseICMPv6(s *session.Session, opt session.Opt, text string) error {
	if typecode, ok := resolver.ICMPv6TypeCode(text); ok {
		return s.Data().Set(opt, typecode)
	}
	return parseICMPTypeCode(s, opt, text, "ICMPv6")
}
