// Package resolver abstracts host, service, and protocol name lookup so
// the value parsers can run against the system resolver in production
// and a fixed table in tests.
package resolver

import (
	"context"
	"net"
	"net/netip"
)

// Resolver is the lookup surface the parsers need. Host and service
// lookups may block on the network; protocol lookup is a table match.
type Resolver interface {
	// LookupIP resolves host to addresses of the given network,
	// "ip4" or "ip6".
	LookupIP(ctx context.Context, network, host string) ([]netip.Addr, error)
	// LookupPort resolves a service name within network ("tcp", "udp").
	LookupPort(ctx context.Context, network, service string) (int, error)
	// LookupProto resolves a protocol name to its IP protocol number.
	LookupProto(name string) (int, bool)
}

// System resolves hosts and services through the standard library
// resolver and protocols through the built-in table.
type System struct {
	R *net.Resolver // nil means net.DefaultResolver
}

func (s System) resolver() *net.Resolver {
	if s.R != nil {
		return s.R
	}
	return net.DefaultResolver
}

func (s System) LookupIP(ctx context.Context, network, host string) ([]netip.Addr, error) {
	return s.resolver().LookupNetIP(ctx, network, host)
}

func (s System) LookupPort(ctx context.Context, network, service string) (int, error) {
	return s.resolver().LookupPort(ctx, network, service)
}

func (s System) LookupProto(name string) (int, bool) {
	return Protocol(name)
}

// Static is a fixed-table resolver for tests. Hosts map a name to its
// addresses in resolver order; address literals resolve to themselves.
// Ports map "service/network" to a port.
type Static struct {
	Hosts  map[string][]netip.Addr
	Ports  map[string]int
	Protos map[string]int
}

func (s Static) LookupIP(_ context.Context, network, host string) ([]netip.Addr, error) {
	addrs := s.Hosts[host]
	if len(addrs) == 0 {
		if a, err := netip.ParseAddr(host); err == nil {
			addrs = []netip.Addr{a}
		}
	}
	var out []netip.Addr
	for _, a := range addrs {
		switch network {
		case "ip4":
			if a.Unmap().Is4() {
				out = append(out, a.Unmap())
			}
		case "ip6":
			if a.Is6() && !a.Is4In6() {
				out = append(out, a)
			}
		}
	}
	if len(out) == 0 {
		return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	}
	return out, nil
}

func (s Static) LookupPort(_ context.Context, network, service string) (int, error) {
	if p, ok := s.Ports[service+"/"+network]; ok {
		return p, nil
	}
	return 0, &net.AddrError{Err: "unknown port", Addr: network + "/" + service}
}

func (s Static) LookupProto(name string) (int, bool) {
	if p, ok := s.Protos[name]; ok {
		return p, true
	}
	return Protocol(name)
}
