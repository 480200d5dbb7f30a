package session

import (
	"net"
	"net/netip"

	"golang.org/x/sys/unix"
)

// MaxNameLen is the buffer size reserved for a set or type name; usable
// names are one byte shorter.
const MaxNameLen = 32

// Opt identifies a slot in the option store. Every parser writes its
// result under the option it was invoked with.
type Opt int

const (
	OptNone Opt = iota
	OptSetname
	OptSetname2
	OptTypename
	OptType
	OptFamily
	OptIP
	OptIPTo
	OptCIDR
	OptIP2
	OptCIDR2
	OptPort
	OptPortTo
	OptProto
	OptEther
	OptName
	OptNameRef
	OptBefore
	OptTimeout
	OptNetmask
	OptHashSize
	OptMaxElem
	OptSize
	// Options of the previous syntax generation, accepted but ignored.
	OptProbes
	OptResize
	OptGC
	optMax
)

var optNames = map[Opt]string{
	OptSetname:  "setname",
	OptSetname2: "setname",
	OptTypename: "typename",
	OptType:     "type",
	OptFamily:   "family",
	OptIP:       "ip",
	OptIPTo:     "ip-to",
	OptCIDR:     "cidr",
	OptIP2:      "ip2",
	OptCIDR2:    "cidr2",
	OptPort:     "port",
	OptPortTo:   "port-to",
	OptProto:    "proto",
	OptEther:    "ether",
	OptName:     "name",
	OptNameRef:  "nameref",
	OptBefore:   "before",
	OptTimeout:  "timeout",
	OptNetmask:  "netmask",
	OptHashSize: "hashsize",
	OptMaxElem:  "maxelem",
	OptSize:     "size",
	OptProbes:   "probes",
	OptResize:   "resize",
	OptGC:       "gc",
}

func (o Opt) String() string {
	if n, ok := optNames[o]; ok {
		return n
	}
	return "unknown"
}

// Family selects the address family shared by the parsers of one
// invocation. The values are the socket-layer AF constants.
type Family uint8

const (
	FamilyUnspec = Family(unix.AF_UNSPEC)
	FamilyIPv4   = Family(unix.AF_INET)
	FamilyIPv6   = Family(unix.AF_INET6)
)

func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "inet"
	case FamilyIPv6:
		return "inet6"
	default:
		return "any"
	}
}

// Data is the option store populated by the parsers and consumed by the
// execution layer. Each option holds a typed value plus an "already
// specified" flag; values are overwritten freely, single-use rules are
// enforced by the callers that want them.
type Data struct {
	flags   uint64
	ignored uint64

	setname  string
	setname2 string
	typename string
	typ      *SetType
	family   Family
	ip       netip.Addr
	ipTo     netip.Addr
	ip2      netip.Addr
	cidr     uint8
	cidr2    uint8
	port     uint16
	portTo   uint16
	proto    uint8
	ether    net.HardwareAddr
	name     string
	nameRef  string
	before   bool
	timeout  uint32
	netmask  uint8
	hashsize uint32
	maxelem  uint32
	size     uint32
}

// Set records value under opt and marks the option as specified. The
// dynamic type of value must match the option; a mismatch is a
// programming error, not bad user input.
func (d *Data) Set(opt Opt, value any) error {
	var ok bool
	switch opt {
	case OptSetname:
		d.setname, ok = value.(string)
	case OptSetname2:
		d.setname2, ok = value.(string)
	case OptTypename:
		d.typename, ok = value.(string)
	case OptType:
		d.typ, ok = value.(*SetType)
	case OptFamily:
		d.family, ok = value.(Family)
	case OptIP:
		d.ip, ok = value.(netip.Addr)
	case OptIPTo:
		d.ipTo, ok = value.(netip.Addr)
	case OptIP2:
		d.ip2, ok = value.(netip.Addr)
	case OptCIDR:
		d.cidr, ok = value.(uint8)
	case OptCIDR2:
		d.cidr2, ok = value.(uint8)
	case OptPort:
		d.port, ok = value.(uint16)
	case OptPortTo:
		d.portTo, ok = value.(uint16)
	case OptProto:
		d.proto, ok = value.(uint8)
	case OptEther:
		d.ether, ok = value.(net.HardwareAddr)
	case OptName:
		d.name, ok = value.(string)
	case OptNameRef:
		d.nameRef, ok = value.(string)
	case OptBefore:
		d.before, ok = value.(bool)
	case OptTimeout:
		d.timeout, ok = value.(uint32)
	case OptNetmask:
		d.netmask, ok = value.(uint8)
	case OptHashSize:
		d.hashsize, ok = value.(uint32)
	case OptMaxElem:
		d.maxelem, ok = value.(uint32)
	case OptSize:
		d.size, ok = value.(uint32)
	default:
		return Internalf("cannot store option %d", int(opt))
	}
	if !ok {
		return Internalf("option %s: unexpected value type %T", opt, value)
	}
	d.SetFlag(opt)
	return nil
}

// Get returns the value stored under opt, if any.
func (d *Data) Get(opt Opt) (any, bool) {
	if !d.Test(opt) {
		return nil, false
	}
	switch opt {
	case OptSetname:
		return d.setname, true
	case OptSetname2:
		return d.setname2, true
	case OptTypename:
		return d.typename, true
	case OptType:
		return d.typ, true
	case OptFamily:
		return d.family, true
	case OptIP:
		return d.ip, true
	case OptIPTo:
		return d.ipTo, true
	case OptIP2:
		return d.ip2, true
	case OptCIDR:
		return d.cidr, true
	case OptCIDR2:
		return d.cidr2, true
	case OptPort:
		return d.port, true
	case OptPortTo:
		return d.portTo, true
	case OptProto:
		return d.proto, true
	case OptEther:
		return d.ether, true
	case OptName:
		return d.name, true
	case OptNameRef:
		return d.nameRef, true
	case OptBefore:
		return d.before, true
	case OptTimeout:
		return d.timeout, true
	case OptNetmask:
		return d.netmask, true
	case OptHashSize:
		return d.hashsize, true
	case OptMaxElem:
		return d.maxelem, true
	case OptSize:
		return d.size, true
	default:
		return nil, false
	}
}

// Test reports whether opt has been specified.
func (d *Data) Test(opt Opt) bool {
	return d.flags&(1<<uint(opt)) != 0
}

// SetFlag marks opt as specified without storing a value. Used for
// presence-only options.
func (d *Data) SetFlag(opt Opt) {
	d.flags |= 1 << uint(opt)
}

// Ignored records that opt was ignored and reports whether it had been
// ignored before, so the caller can warn exactly once per option.
func (d *Data) Ignored(opt Opt) bool {
	was := d.ignored&(1<<uint(opt)) != 0
	d.ignored |= 1 << uint(opt)
	return was
}

// Reset clears every option and flag, keeping the Data reusable between
// elements of a batch.
func (d *Data) Reset() {
	*d = Data{}
}

// Typed accessors for the execution layer. Each returns the zero value
// when the option is unset; pair with Test when the distinction matters.

func (d *Data) Setname() string         { return d.setname }
func (d *Data) Setname2() string        { return d.setname2 }
func (d *Data) Typename() string        { return d.typename }
func (d *Data) Type() *SetType          { return d.typ }
func (d *Data) Family() Family          { return d.family }
func (d *Data) IP() netip.Addr          { return d.ip }
func (d *Data) IPTo() netip.Addr        { return d.ipTo }
func (d *Data) IP2() netip.Addr         { return d.ip2 }
func (d *Data) CIDR() uint8             { return d.cidr }
func (d *Data) CIDR2() uint8            { return d.cidr2 }
func (d *Data) Port() uint16            { return d.port }
func (d *Data) PortTo() uint16          { return d.portTo }
func (d *Data) Proto() uint8            { return d.proto }
func (d *Data) Ether() net.HardwareAddr { return d.ether }
func (d *Data) Name() string            { return d.name }
func (d *Data) NameRef() string         { return d.nameRef }
func (d *Data) Before() bool            { return d.before }
func (d *Data) Timeout() uint32         { return d.timeout }
func (d *Data) Netmask() uint8          { return d.netmask }
func (d *Data) HashSize() uint32        { return d.hashsize }
func (d *Data) MaxElem() uint32         { return d.maxelem }
func (d *Data) Size() uint32            { return d.size }
