// Package render turns parsed option data and registered sets back into
// text: the canonical element strings stored as members, the create-time
// header line, and the plain, save, xml, and json listing formats.
package render

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/netip"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/setctl/setctl/pkg/resolver"
	"github.com/setctl/setctl/pkg/session"
	"github.com/setctl/setctl/pkg/setstore"
)

// Elem renders the canonical text of the element held in d, as parsed
// for typ. Parts are joined with commas; trailing positions left unset
// by partial parsing are omitted.
func Elem(d *session.Data, typ *session.SetType) (string, error) {
	var parts []string
	for i := 0; i < typ.Dimension; i++ {
		opt := typ.Elem[i].Opt
		if !d.Test(opt) {
			break
		}
		part, err := elemPart(d, opt)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return "", session.Internalf("no element data to render for %s", typ.Name)
	}
	return strings.Join(parts, ","), nil
}

func elemPart(d *session.Data, opt session.Opt) (string, error) {
	switch opt {
	case session.OptIP:
		return addrPart(d.IP(), d.CIDR(), d.Test(session.OptCIDR),
			d.IPTo(), d.Test(session.OptIPTo)), nil
	case session.OptIP2:
		return addrPart(d.IP2(), d.CIDR2(), d.Test(session.OptCIDR2),
			netip.Addr{}, false), nil
	case session.OptPort:
		return portPart(d), nil
	case session.OptEther:
		return d.Ether().String(), nil
	case session.OptName:
		return d.Name(), nil
	}
	return "", session.Internalf("cannot render option %s", opt)
}

// addrPart prints an address, suppressing a prefix length that covers
// the whole address.
func addrPart(ip netip.Addr, cidr uint8, hasCIDR bool, to netip.Addr, hasTo bool) string {
	s := ip.String()
	if hasCIDR && int(cidr) != ip.BitLen() {
		s += "/" + strconv.Itoa(int(cidr))
	}
	if hasTo {
		s += "-" + to.String()
	}
	return s
}

func portPart(d *session.Data) string {
	if !d.Test(session.OptProto) {
		return portRange(d)
	}
	proto := int(d.Proto())
	name, ok := resolver.ProtocolName(proto)
	if !ok {
		name = strconv.Itoa(proto)
	}
	switch proto {
	case unix.IPPROTO_TCP, unix.IPPROTO_UDP:
		return name + ":" + portRange(d)
	case unix.IPPROTO_ICMP:
		return name + ":" + icmpPart(d.Port(), resolver.ICMPName)
	case unix.IPPROTO_ICMPV6:
		return name + ":" + icmpPart(d.Port(), resolver.ICMPv6Name)
	default:
		return name + ":0"
	}
}

func portRange(d *session.Data) string {
	s := strconv.Itoa(int(d.Port()))
	if d.Test(session.OptPortTo) {
		s += "-" + strconv.Itoa(int(d.PortTo()))
	}
	return s
}

func icmpPart(typecode uint16, name func(uint16) (string, bool)) string {
	if n, ok := name(typecode); ok {
		return n
	}
	return fmt.Sprintf("%d/%d", typecode>>8, typecode&0xff)
}

// Header renders the create-time options of a set in listing order.
// Bitmap types lead with their range, hash types with family and table
// sizing, list:set with its size; a timeout closes every form.
func Header(typeName string, d *session.Data) string {
	var b strings.Builder
	switch {
	case strings.HasPrefix(typeName, "bitmap:"):
		b.WriteString("range ")
		if d.Test(session.OptIP) {
			b.WriteString(addrPart(d.IP(), d.CIDR(), d.Test(session.OptCIDR),
				d.IPTo(), d.Test(session.OptIPTo)))
		} else {
			b.WriteString(portRange(d))
		}
		if d.Test(session.OptNetmask) {
			fmt.Fprintf(&b, " netmask %d", d.Netmask())
		}
	case strings.HasPrefix(typeName, "hash:"):
		fmt.Fprintf(&b, "family %s hashsize %d maxelem %d",
			d.Family(), d.HashSize(), d.MaxElem())
		if d.Test(session.OptNetmask) {
			fmt.Fprintf(&b, " netmask %d", d.Netmask())
		}
	default:
		fmt.Fprintf(&b, "size %d", d.Size())
	}
	if d.Test(session.OptTimeout) {
		fmt.Fprintf(&b, " timeout %d", d.Timeout())
	}
	return b.String()
}

// List writes the named set, or every registered set when name is
// empty, to w in the given output format.
func List(w io.Writer, mode session.Output, store *setstore.Store, name string) error {
	var sets []*setstore.Set
	if name == "" {
		sets = store.Sets()
	} else {
		set, ok := store.Lookup(name)
		if !ok {
			return setstore.ErrNotFound
		}
		sets = []*setstore.Set{set}
	}
	switch mode {
	case session.OutputSave:
		return writeSave(w, sets)
	case session.OutputXML:
		return writeXML(w, docs(store, sets))
	case session.OutputJSON:
		return writeJSON(w, docs(store, sets))
	default:
		return writePlain(w, store, sets)
	}
}

func memberLine(set *setstore.Set, m setstore.Member) string {
	if set.HasTimeout {
		return fmt.Sprintf("%s timeout %d", m.Elem, m.Timeout)
	}
	return m.Elem
}

func writePlain(w io.Writer, store *setstore.Store, sets []*setstore.Set) error {
	for i, set := range sets {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "Name: %s\nType: %s\nHeader: %s\nReferences: %d\nMembers:\n",
			set.Name, set.Type.Name(), set.Header, store.References(set.Name))
		if err != nil {
			return err
		}
		for _, m := range set.Members {
			if _, err := fmt.Fprintln(w, memberLine(set, m)); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSave(w io.Writer, sets []*setstore.Set) error {
	// Restoring "add <list> <set>" needs <set> registered first, so
	// list:set sets dump after everything else.
	ordered := make([]*setstore.Set, 0, len(sets))
	var lists []*setstore.Set
	for _, set := range sets {
		if set.Type.Name() == "list:set" {
			lists = append(lists, set)
			continue
		}
		ordered = append(ordered, set)
	}
	ordered = append(ordered, lists...)

	for _, set := range ordered {
		_, err := fmt.Fprintf(w, "create %s %s %s\n", set.Name, set.Type.Name(), set.Header)
		if err != nil {
			return err
		}
		for _, m := range set.Members {
			if _, err := fmt.Fprintf(w, "add %s %s\n", set.Name, memberLine(set, m)); err != nil {
				return err
			}
		}
	}
	return nil
}

// setDoc is the document shape shared by the xml and json formats.
type setDoc struct {
	Name       string      `xml:"name,attr" json:"name"`
	Type       string      `xml:"type" json:"type"`
	Header     string      `xml:"header" json:"header"`
	References int         `xml:"references" json:"references"`
	Members    []memberDoc `xml:"members>member" json:"members"`
}

type memberDoc struct {
	Elem    string  `xml:"elem" json:"elem"`
	Timeout *uint32 `xml:"timeout,omitempty" json:"timeout,omitempty"`
}

type setsDoc struct {
	XMLName xml.Name `xml:"sets"`
	Sets    []setDoc `xml:"set"`
}

func docs(store *setstore.Store, sets []*setstore.Set) []setDoc {
	ds := make([]setDoc, len(sets))
	for i, set := range sets {
		doc := setDoc{
			Name:       set.Name,
			Type:       set.Type.Name(),
			Header:     set.Header,
			References: store.References(set.Name),
		}
		for _, m := range set.Members {
			md := memberDoc{Elem: m.Elem}
			if set.HasTimeout {
				t := m.Timeout
				md.Timeout = &t
			}
			doc.Members = append(doc.Members, md)
		}
		ds[i] = doc
	}
	return ds
}

func writeXML(w io.Writer, ds []setDoc) error {
	out, err := xml.MarshalIndent(setsDoc{Sets: ds}, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}

func writeJSON(w io.Writer, ds []setDoc) error {
	out, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}
