package settype

import (
	"github.com/setctl/setctl/pkg/parse"
	"github.com/setctl/setctl/pkg/session"
)

func elem(opt session.Opt, fn session.ParseFunc) session.ElemSpec {
	return session.ElemSpec{Opt: opt, Parser: fn}
}

var (
	argTimeout  = Arg{Name: "timeout", Opt: session.OptTimeout, Parser: session.ParseFunc(parse.ParseTimeout)}
	argFamily   = Arg{Name: "family", Opt: session.OptFamily, Parser: session.ParseFunc(parse.ParseFamily)}
	argNetmask  = Arg{Name: "netmask", Opt: session.OptNetmask, Parser: session.ParseFunc(parse.ParseNetmask)}
	argHashSize = Arg{Name: "hashsize", Opt: session.OptHashSize, Parser: session.ParseFunc(parse.ParseUint32)}
	argMaxElem  = Arg{Name: "maxelem", Opt: session.OptMaxElem, Parser: session.ParseFunc(parse.ParseUint32)}

	// Options of the previous generation of hash types, accepted and
	// dropped.
	argProbes = Arg{Name: "probes", Opt: session.OptProbes, Ignored: true}
	argResize = Arg{Name: "resize", Opt: session.OptResize, Ignored: true}
	argGC     = Arg{Name: "gc", Opt: session.OptGC, Ignored: true}
)

func hashCreateArgs(extra ...Arg) []Arg {
	args := []Arg{argFamily, argHashSize, argMaxElem, argTimeout}
	args = append(args, extra...)
	return append(args, argProbes, argResize, argGC)
}

var catalog = map[string]*Type{
	"bitmap:ip": {
		Elem: &session.SetType{
			Name:      "bitmap:ip",
			Dimension: 1,
			Elem: [3]session.ElemSpec{
				elem(session.OptIP, parse.ParseIP4Single6),
			},
			Compat: session.ParseFunc(parse.ParseIPTimeout),
		},
		Create: []Arg{
			{Name: "range", Opt: session.OptIP, Parser: session.ParseFunc(parse.ParseNetRange)},
			argNetmask,
			argTimeout,
		},
		ADT: []Arg{argTimeout},
	},
	"bitmap:ip,mac": {
		Elem: &session.SetType{
			Name:      "bitmap:ip,mac",
			Dimension: 2,
			Elem: [3]session.ElemSpec{
				elem(session.OptIP, parse.ParseSingleIP),
				elem(session.OptEther, parse.ParseEther),
			},
		},
		Create: []Arg{
			{Name: "range", Opt: session.OptIP, Parser: session.ParseFunc(parse.ParseNetRange)},
			argTimeout,
		},
		ADT: []Arg{argTimeout},
	},
	"bitmap:port": {
		Elem: &session.SetType{
			Name:      "bitmap:port",
			Dimension: 1,
			Elem: [3]session.ElemSpec{
				elem(session.OptPort, parse.ParseTCPPort),
			},
		},
		Create: []Arg{
			{Name: "range", Opt: session.OptPort, Parser: session.ParseFunc(parse.ParseTCPPort)},
			argTimeout,
		},
		ADT: []Arg{argTimeout},
	},
	"hash:ip": {
		Elem: &session.SetType{
			Name:      "hash:ip",
			Dimension: 1,
			Elem: [3]session.ElemSpec{
				elem(session.OptIP, parse.ParseIP),
			},
			Compat: session.ParseFunc(parse.ParseIPTimeout),
		},
		Create: hashCreateArgs(argNetmask),
		ADT:    []Arg{argTimeout},
	},
	"hash:net": {
		Elem: &session.SetType{
			Name:      "hash:net",
			Dimension: 1,
			Elem: [3]session.ElemSpec{
				elem(session.OptIP, parse.ParseIPNet),
			},
		},
		Create: hashCreateArgs(),
		ADT:    []Arg{argTimeout},
	},
	"hash:ip,port": {
		Elem: &session.SetType{
			Name:      "hash:ip,port",
			Dimension: 2,
			Elem: [3]session.ElemSpec{
				elem(session.OptIP, parse.ParseIP),
				elem(session.OptPort, parse.ParseProtoPort),
			},
		},
		Create: hashCreateArgs(),
		ADT:    []Arg{argTimeout},
	},
	"hash:net,port": {
		Elem: &session.SetType{
			Name:      "hash:net,port",
			Dimension: 2,
			Elem: [3]session.ElemSpec{
				elem(session.OptIP, parse.ParseIPNet),
				elem(session.OptPort, parse.ParseProtoPort),
			},
		},
		Create: hashCreateArgs(),
		ADT:    []Arg{argTimeout},
	},
	"hash:ip,port,ip": {
		Elem: &session.SetType{
			Name:      "hash:ip,port,ip",
			Dimension: 3,
			Elem: [3]session.ElemSpec{
				elem(session.OptIP, parse.ParseIP),
				elem(session.OptPort, parse.ParseProtoPort),
				elem(session.OptIP2, parse.ParseIP),
			},
		},
		Create: hashCreateArgs(),
		ADT:    []Arg{argTimeout},
	},
	"hash:ip,port,net": {
		Elem: &session.SetType{
			Name:      "hash:ip,port,net",
			Dimension: 3,
			Elem: [3]session.ElemSpec{
				elem(session.OptIP, parse.ParseIP),
				elem(session.OptPort, parse.ParseProtoPort),
				elem(session.OptIP2, parse.ParseIPNet),
			},
		},
		Create: hashCreateArgs(),
		ADT:    []Arg{argTimeout},
	},
	"list:set": {
		Elem: &session.SetType{
			Name:      "list:set",
			Dimension: 1,
			Elem: [3]session.ElemSpec{
				elem(session.OptName, parse.ParseSetname),
			},
			Compat: session.ParseFunc(parse.ParseNameCompat),
		},
		Create: []Arg{
			{Name: "size", Opt: session.OptSize, Parser: session.ParseFunc(parse.ParseUint32)},
			argTimeout,
		},
		ADT: []Arg{
			argTimeout,
			{Name: "before", Opt: session.OptNameRef, Parser: session.ParseFunc(parse.ParseBefore)},
			{Name: "after", Opt: session.OptNameRef, Parser: session.ParseFunc(parse.ParseAfter)},
		},
	},
}

// aliases maps the standalone type names of the previous syntax to
// their current counterparts.
var aliases = map[string]string{
	"ipmap":         "bitmap:ip",
	"macipmap":      "bitmap:ip,mac",
	"portmap":       "bitmap:port",
	"iphash":        "hash:ip",
	"nethash":       "hash:net",
	"ipporthash":    "hash:ip,port",
	"ipportiphash":  "hash:ip,port,ip",
	"ipportnethash": "hash:ip,port,net",
	"setlist":       "list:set",
	"iptree":        "hash:ip",
	"iptreemap":     "hash:ip",
}
