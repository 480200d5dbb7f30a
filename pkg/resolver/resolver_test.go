package resolver

import (
	"context"
	"net"
	"net/netip"
	"testing"
)

func staticFixture() Static {
	return Static{
		Hosts: map[string][]netip.Addr{
			"dual.example.com": {
				netip.MustParseAddr("192.0.2.1"),
				netip.MustParseAddr("2001:db8::1"),
			},
		},
		Ports:  map[string]int{"ssh/tcp": 22, "domain/udp": 53},
		Protos: map[string]int{"fancy": 200},
	}
}

func TestStaticLookupIPFamilies(t *testing.T) {
	res := staticFixture()
	ctx := context.Background()

	v4, err := res.LookupIP(ctx, "ip4", "dual.example.com")
	if err != nil {
		t.Fatalf("LookupIP(ip4) = %v", err)
	}
	if len(v4) != 1 || v4[0] != netip.MustParseAddr("192.0.2.1") {
		t.Errorf("ip4 addresses = %v, want [192.0.2.1]", v4)
	}

	v6, err := res.LookupIP(ctx, "ip6", "dual.example.com")
	if err != nil {
		t.Fatalf("LookupIP(ip6) = %v", err)
	}
	if len(v6) != 1 || v6[0] != netip.MustParseAddr("2001:db8::1") {
		t.Errorf("ip6 addresses = %v, want [2001:db8::1]", v6)
	}
}

func TestStaticLookupIPLiteral(t *testing.T) {
	res := staticFixture()
	ctx := context.Background()

	addrs, err := res.LookupIP(ctx, "ip4", "198.51.100.9")
	if err != nil {
		t.Fatalf("LookupIP(literal) = %v", err)
	}
	if len(addrs) != 1 || addrs[0] != netip.MustParseAddr("198.51.100.9") {
		t.Errorf("literal addresses = %v", addrs)
	}

	// 4-in-6 literals come back unmapped under ip4.
	addrs, err = res.LookupIP(ctx, "ip4", "::ffff:1.2.3.4")
	if err != nil {
		t.Fatalf("LookupIP(mapped literal) = %v", err)
	}
	if len(addrs) != 1 || addrs[0] != netip.MustParseAddr("1.2.3.4") {
		t.Errorf("mapped literal addresses = %v, want [1.2.3.4]", addrs)
	}

	if _, err := res.LookupIP(ctx, "ip4", "2001:db8::2"); err == nil {
		t.Error("LookupIP(ip4, v6 literal) succeeded, want error")
	}
}

func TestStaticLookupIPNotFound(t *testing.T) {
	res := staticFixture()
	_, err := res.LookupIP(context.Background(), "ip4", "nosuch.example.com")
	dnsErr, ok := err.(*net.DNSError)
	if !ok {
		t.Fatalf("LookupIP(nosuch) = %v, want *net.DNSError", err)
	}
	if !dnsErr.IsNotFound {
		t.Error("IsNotFound = false, want true")
	}
}

func TestStaticLookupPort(t *testing.T) {
	res := staticFixture()
	ctx := context.Background()

	port, err := res.LookupPort(ctx, "tcp", "ssh")
	if err != nil || port != 22 {
		t.Errorf("LookupPort(tcp, ssh) = %d, %v, want 22, nil", port, err)
	}
	if _, err := res.LookupPort(ctx, "udp", "ssh"); err == nil {
		t.Error("LookupPort(udp, ssh) succeeded, want error")
	}
}

func TestStaticLookupProto(t *testing.T) {
	res := staticFixture()

	if p, ok := res.LookupProto("fancy"); !ok || p != 200 {
		t.Errorf("LookupProto(fancy) = %d, %v, want 200, true", p, ok)
	}
	// Falls back to the built-in table.
	if p, ok := res.LookupProto("gre"); !ok || p != 47 {
		t.Errorf("LookupProto(gre) = %d, %v, want 47, true", p, ok)
	}
	if _, ok := res.LookupProto("bogus"); ok {
		t.Error("LookupProto(bogus) = true, want false")
	}
}

func TestProtocol(t *testing.T) {
	tests := []struct {
		name string
		num  int
		ok   bool
	}{
		{"tcp", 6, true},
		{"TCP", 6, true},
		{"udp", 17, true},
		{"icmp", 1, true},
		{"ipv6-icmp", 58, true},
		{"hopopt", 0, true},
		{"bogus", 0, false},
	}
	for _, tt := range tests {
		num, ok := Protocol(tt.name)
		if num != tt.num || ok != tt.ok {
			t.Errorf("Protocol(%q) = %d, %v, want %d, %v", tt.name, num, ok, tt.num, tt.ok)
		}
	}
}

func TestProtocolName(t *testing.T) {
	tests := []struct {
		num  int
		name string
		ok   bool
	}{
		{6, "tcp", true},
		{17, "udp", true},
		{1, "icmp", true},
		{58, "ipv6-icmp", true},
		{255, "", false},
	}
	for _, tt := range tests {
		name, ok := ProtocolName(tt.num)
		if name != tt.name || ok != tt.ok {
			t.Errorf("ProtocolName(%d) = %q, %v, want %q, %v", tt.num, name, ok, tt.name, tt.ok)
		}
	}
}

func TestICMPTypeCode(t *testing.T) {
	tests := []struct {
		name     string
		typecode uint16
		ok       bool
	}{
		{"echo-request", 0x0800, true},
		{"ping", 0x0800, true},
		{"PING", 0x0800, true},
		{"communication-prohibited", 0x030d, true},
		{"bogus", 0, false},
	}
	for _, tt := range tests {
		tc, ok := ICMPTypeCode(tt.name)
		if tc != tt.typecode || ok != tt.ok {
			t.Errorf("ICMPTypeCode(%q) = %#04x, %v, want %#04x, %v",
				tt.name, tc, ok, tt.typecode, tt.ok)
		}
	}
}

func TestICMPName(t *testing.T) {
	// Aliases resolve forward but the primary name renders back.
	if name, ok := ICMPName(0x0800); !ok || name != "echo-request" {
		t.Errorf("ICMPName(0x0800) = %q, %v, want echo-request, true", name, ok)
	}
	if name, ok := ICMPName(0x0000); !ok || name != "echo-reply" {
		t.Errorf("ICMPName(0x0000) = %q, %v, want echo-reply, true", name, ok)
	}
	if _, ok := ICMPName(0x0801); ok {
		t.Error("ICMPName(0x0801) = true, want false")
	}
}

func TestICMPv6(t *testing.T) {
	us, ok := ICMPv6TypeCode("neighbour-solicitation")
	if !ok || us != 0x8700 {
		t.Errorf("ICMPv6TypeCode(neighbour-solicitation) = %#04x, %v", us, ok)
	}
	them, ok := ICMPv6TypeCode("neighbor-solicitation")
	if !ok || them != 0x8700 {
		t.Errorf("ICMPv6TypeCode(neighbor-solicitation) = %#04x, %v", them, ok)
	}
	if name, ok := ICMPv6Name(0x8700); !ok || name != "neighbour-solicitation" {
		t.Errorf("ICMPv6Name(0x8700) = %q, %v, want neighbour-solicitation, true", name, ok)
	}
	if name, ok := ICMPv6Name(0x8000); !ok || name != "echo-request" {
		t.Errorf("ICMPv6Name(0x8000) = %q, %v, want echo-request, true", name, ok)
	}
}
