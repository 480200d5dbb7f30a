package parse

import (
	"testing"

	"golang.org/x/sys/unix"

	"github.com/setctl/setctl/pkg/session"
)

func TestParsePort(t *testing.T) {
	tests := []struct {
		text  string
		proto string
		want  uint16
		err   string
	}{
		{text: "80", proto: "TCP", want: 80},
		{text: "0", proto: "TCP", want: 0},
		{text: "65535", proto: "TCP", want: 65535},
		{text: "ssh", proto: "TCP", want: 22},
		{text: "http", proto: "tcp", want: 80},
		{text: "domain", proto: "UDP", want: 53},
		{text: "bogus", proto: "TCP", err: "cannot parse 'bogus' as a TCP port"},
		// An out-of-range number falls through to the service lookup
		// and only the lookup error survives.
		{text: "70000", proto: "TCP", err: "cannot parse '70000' as a TCP port"},
		{text: "ssh", proto: "UDP", err: "cannot parse 'ssh' as a UDP port"},
	}
	for _, tt := range tests {
		s, _ := newTestSession(t)
		err := ParsePort(s, session.OptPort, tt.text, tt.proto)
		if tt.err != "" {
			if err == nil || err.Error() != "Syntax error: "+tt.err {
				t.Errorf("ParsePort(%q, %s): got %v, want %q", tt.text, tt.proto, err, tt.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePort(%q, %s): %v", tt.text, tt.proto, err)
			continue
		}
		if got := s.Data().Port(); got != tt.want {
			t.Errorf("ParsePort(%q, %s) = %d, want %d", tt.text, tt.proto, got, tt.want)
		}
	}
}

func TestParseTCPUDPPortRange(t *testing.T) {
	tests := []struct {
		text     string
		from, to uint16
		ranged   bool
	}{
		{text: "80", from: 80},
		{text: "80-90", from: 80, to: 90, ranged: true},
		// Inverted bounds are stored as given.
		{text: "90-80", from: 90, to: 80, ranged: true},
		{text: "ssh-http", from: 22, to: 80, ranged: true},
	}
	for _, tt := range tests {
		s, _ := newTestSession(t)
		if err := ParseTCPUDPPort(s, session.OptPort, tt.text, "TCP"); err != nil {
			t.Errorf("ParseTCPUDPPort(%q): %v", tt.text, err)
			continue
		}
		d := s.Data()
		if d.Port() != tt.from {
			t.Errorf("ParseTCPUDPPort(%q): port = %d, want %d", tt.text, d.Port(), tt.from)
		}
		if d.Test(session.OptPortTo) != tt.ranged {
			t.Errorf("ParseTCPUDPPort(%q): port-to set = %v, want %v",
				tt.text, d.Test(session.OptPortTo), tt.ranged)
		}
		if tt.ranged && d.PortTo() != tt.to {
			t.Errorf("ParseTCPUDPPort(%q): port-to = %d, want %d", tt.text, d.PortTo(), tt.to)
		}
	}
}

func TestParseSingleTCPPort(t *testing.T) {
	s, _ := newTestSession(t)
	if err := ParseSingleTCPPort(s, session.OptPort, "443"); err != nil {
		t.Fatalf("ParseSingleTCPPort: %v", err)
	}
	if s.Data().Port() != 443 {
		t.Errorf("port = %d, want 443", s.Data().Port())
	}

	s2, _ := newTestSession(t)
	err := ParseSingleTCPPort(s2, session.OptPort, "80-90")
	if err == nil || err.Error() != "Syntax error: cannot parse '80-90' as a TCP port" {
		t.Errorf("got %v, want the single-port error", err)
	}
}

func TestParseProto(t *testing.T) {
	tests := []struct {
		text string
		want uint8
		err  string
	}{
		{text: "tcp", want: 6},
		{text: "UDP", want: 17},
		{text: "icmp", want: 1},
		{text: "ipv6-icmp", want: 58},
		// icmpv6 is an accepted alias, in any case.
		{text: "icmpv6", want: 58},
		{text: "ICMPv6", want: 58},
		{text: "gre", want: 47},
		{text: "bogus", err: "cannot parse 'bogus' as a protocol name"},
		{text: "hopopt", err: "Unsupported protocol 'hopopt'"},
	}
	for _, tt := range tests {
		s, _ := newTestSession(t)
		err := ParseProto(s, session.OptProto, tt.text)
		if tt.err != "" {
			if err == nil || err.Error() != "Syntax error: "+tt.err {
				t.Errorf("ParseProto(%q): got %v, want %q", tt.text, err, tt.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseProto(%q): %v", tt.text, err)
			continue
		}
		if got := s.Data().Proto(); got != tt.want {
			t.Errorf("ParseProto(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestParseProtoPortDefaultTCP(t *testing.T) {
	s, _ := newTestSession(t)
	if err := ParseProtoPort(s, session.OptPort, "8080"); err != nil {
		t.Fatalf("ParseProtoPort: %v", err)
	}
	d := s.Data()
	if d.Proto() != unix.IPPROTO_TCP || !d.Test(session.OptProto) {
		t.Errorf("proto = %d, want TCP", d.Proto())
	}
	if d.Port() != 8080 {
		t.Errorf("port = %d, want 8080", d.Port())
	}
}

func TestParseProtoPortRangeWithoutProto(t *testing.T) {
	s, _ := newTestSession(t)
	if err := ParseProtoPort(s, session.OptPort, "80-443"); err != nil {
		t.Fatalf("ParseProtoPort: %v", err)
	}
	d := s.Data()
	if d.Port() != 80 || d.PortTo() != 443 {
		t.Errorf("range = %d-%d, want 80-443", d.Port(), d.PortTo())
	}
}

func TestParseProtoPortTCPUDP(t *testing.T) {
	tests := []struct {
		text  string
		proto uint8
		port  uint16
	}{
		{"tcp:80", 6, 80},
		{"TCP:ssh", 6, 22},
		{"udp:domain", 17, 53},
		{"udp:1234", 17, 1234},
	}
	for _, tt := range tests {
		s, _ := newTestSession(t)
		if err := ParseProtoPort(s, session.OptPort, tt.text); err != nil {
			t.Errorf("ParseProtoPort(%q): %v", tt.text, err)
			continue
		}
		d := s.Data()
		if d.Proto() != tt.proto || d.Port() != tt.port {
			t.Errorf("ParseProtoPort(%q) = proto %d port %d, want %d/%d",
				tt.text, d.Proto(), d.Port(), tt.proto, tt.port)
		}
	}
}

func TestParseProtoPortICMP(t *testing.T) {
	s, _ := newTestSession(t)
	s.Data().Set(session.OptFamily, session.FamilyIPv4)
	if err := ParseProtoPort(s, session.OptPort, "icmp:8/0"); err != nil {
		t.Fatalf("ParseProtoPort: %v", err)
	}
	d := s.Data()
	if d.Proto() != unix.IPPROTO_ICMP {
		t.Errorf("proto = %d, want ICMP", d.Proto())
	}
	if d.Port() != 0x0800 {
		t.Errorf("typecode = %#04x, want 0x0800", d.Port())
	}

	s2, _ := newTestSession(t)
	s2.Data().Set(session.OptFamily, session.FamilyIPv4)
	if err := ParseProtoPort(s2, session.OptPort, "icmp:echo-request"); err != nil {
		t.Fatalf("ParseProtoPort: %v", err)
	}
	if s2.Data().Port() != 0x0800 {
		t.Errorf("typecode = %#04x, want 0x0800", s2.Data().Port())
	}
}

func TestParseProtoPortICMPFamilyGate(t *testing.T) {
	want := "Syntax error: Protocol ICMP can be used with family INET only"

	s, _ := newTestSession(t)
	s.Data().Set(session.OptFamily, session.FamilyIPv6)
	if err := ParseProtoPort(s, session.OptPort, "icmp:8/0"); err == nil || err.Error() != want {
		t.Errorf("under inet6: got %v, want %q", err, want)
	}

	// The family must have been set explicitly; it is not defaulted here.
	s2, _ := newTestSession(t)
	if err := ParseProtoPort(s2, session.OptPort, "icmp:8/0"); err == nil || err.Error() != want {
		t.Errorf("without family: got %v, want %q", err, want)
	}
}

func TestParseProtoPortICMPv6(t *testing.T) {
	s, _ := newTestSession(t)
	s.Data().Set(session.OptFamily, session.FamilyIPv6)
	if err := ParseProtoPort(s, session.OptPort, "icmpv6:echo-request"); err != nil {
		t.Fatalf("ParseProtoPort: %v", err)
	}
	d := s.Data()
	if d.Proto() != unix.IPPROTO_ICMPV6 {
		t.Errorf("proto = %d, want ICMPv6", d.Proto())
	}
	if d.Port() != 0x8000 {
		t.Errorf("typecode = %#04x, want 0x8000", d.Port())
	}

	s2, _ := newTestSession(t)
	s2.Data().Set(session.OptFamily, session.FamilyIPv4)
	err := ParseProtoPort(s2, session.OptPort, "icmpv6:128/0")
	want := "Syntax error: Protocol ICMPv6 can be used with family INET6 only"
	if err == nil || err.Error() != want {
		t.Errorf("got %v, want %q", err, want)
	}
}

func TestParseProtoPortPseudoZero(t *testing.T) {
	s, _ := newTestSession(t)
	if err := ParseProtoPort(s, session.OptPort, "gre:0"); err != nil {
		t.Fatalf("ParseProtoPort: %v", err)
	}
	d := s.Data()
	if d.Proto() != 47 {
		t.Errorf("proto = %d, want 47", d.Proto())
	}
	if !d.Test(session.OptPort) {
		t.Error("the port option should be flagged")
	}
	if d.Port() != 0 {
		t.Errorf("no port value should be stored, got %d", d.Port())
	}

	s2, _ := newTestSession(t)
	err := ParseProtoPort(s2, session.OptPort, "gre:1")
	want := "Syntax error: Protocol gre can be used with pseudo port value 0 only."
	if err == nil || err.Error() != want {
		t.Errorf("got %v, want %q", err, want)
	}
}

func TestParseProtoPortUnknownProto(t *testing.T) {
	s, _ := newTestSession(t)
	err := ParseProtoPort(s, session.OptPort, "bogus:80")
	if err == nil || err.Error() != "Syntax error: cannot parse 'bogus' as a protocol name" {
		t.Errorf("got %v, want the protocol-name error", err)
	}
}
