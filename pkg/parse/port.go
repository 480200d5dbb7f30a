package parse

import (
	"strings"

	"golang.org/x/sys/unix"

	"github.com/setctl/setctl/pkg/session"
)

// parsePortName resolves a service name within the namespace of proto.
func parsePortName(s *session.Session, text, proto string) (uint16, error) {
	port, err := s.Resolver().LookupPort(s.Context(), strings.ToLower(proto), text)
	if err != nil {
		return 0, session.Syntaxf("cannot parse '%s' as a %s port", text, proto)
	}
	return uint16(port), nil
}

// ParsePort parses a single port number or service name scoped to
// proto and stores it under opt. The numeric form is tried first; a
// failed numeric parse falls through to the service lookup and only
// the lookup error survives.
func ParsePort(s *session.Session, opt session.Opt, text, proto string) error {
	port, err := parseUint16(text)
	if err != nil {
		port, err = parsePortName(s, text, proto)
	}
	if err != nil {
		return err
	}
	return s.Data().Set(opt, port)
}

// ParseTCPUDPPort parses a port or a port-port range in the service
// namespace of proto. The upper end of a range is parsed into
// OptPortTo before the lower end is parsed into opt.
func ParseTCPUDPPort(s *session.Session, opt session.Opt, text, proto string) error {
	if from, to, ok := cut(text, rangeSeparator); ok {
		if err := ParsePort(s, session.OptPortTo, to, proto); err != nil {
			return err
		}
		text = from
	}
	return ParsePort(s, opt, text, proto)
}

// ParseTCPPort parses a TCP port or port range.
func ParseTCPPort(s *session.Session, opt session.Opt, text string) error {
	return ParseTCPUDPPort(s, opt, text, "TCP")
}

// ParseSingleTCPPort parses a single TCP port.
func ParseSingleTCPPort(s *session.Session, opt session.Opt, text string) error {
	return ParsePort(s, opt, text, "TCP")
}

// ParseProto resolves a protocol name and stores its number under opt.
// The name icmpv6 is accepted as an alias of ipv6-icmp.
func ParseProto(s *session.Session, opt session.Opt, text string) error {
	name := text
	if strings.EqualFold(name, "icmpv6") {
		name = "ipv6-icmp"
	}
	proto, ok := s.Resolver().LookupProto(name)
	if !ok {
		return session.Syntaxf("cannot parse '%s' as a protocol name", text)
	}
	if proto == 0 {
		return session.Syntaxf("Unsupported protocol '%s'", text)
	}
	return s.Data().Set(opt, uint8(proto))
}

// ParseProtoPort parses the "proto:port" element form. Without a
// protocol part the whole token is a TCP port or port range. TCP and
// UDP take a port or range in their service namespace. ICMP and
// ICMPv6 take a name or type/code and require the matching address
// family to be set already. Any other protocol takes only the pseudo
// port value 0, recorded as a flag without a value.
func ParseProtoPort(s *session.Session, opt session.Opt, text string) error {
	data := s.Data()

	proto, port, ok := cut(text, protoSeparator)
	if !ok {
		if err := data.Set(session.OptProto, uint8(unix.IPPROTO_TCP)); err != nil {
			return err
		}
		return ParseTCPUDPPort(s, opt, text, "TCP")
	}

	family := data.Family()
	if err := ParseProto(s, session.OptProto, proto); err != nil {
		return err
	}

	switch data.Proto() {
	case unix.IPPROTO_TCP, unix.IPPROTO_UDP:
		return ParseTCPUDPPort(s, opt, port, proto)
	case unix.IPPROTO_ICMP:
		if family != session.FamilyIPv4 {
			return session.Syntaxf("Protocol ICMP can be used with family INET only")
		}
		return ParseICMP(s, opt, port)
	case unix.IPPROTO_ICMPV6:
		if family != session.FamilyIPv6 {
			return session.Syntaxf("Protocol ICMPv6 can be used with family INET6 only")
		}
		return ParseICMPv6(s, opt, port)
	default:
		if port != "0" {
			return session.Syntaxf("Protocol %s can be used with pseudo port value 0 only.", proto)
		}
		data.SetFlag(opt)
		return nil
	}
}
