// Package settype is the catalog of set types: for each type the
// element descriptor consumed by the composite-element dispatcher and
// the argument grammars of the create and add/del/test commands, plus
// resolution of the old standalone type names.
package settype

import (
	"sort"

	"github.com/setctl/setctl/pkg/session"
)

// Arg binds a textual option name to its option slot and parser.
// Ignored args are accepted for backward compatibility and dropped
// with a warning.
type Arg struct {
	Name    string
	Opt     session.Opt
	Parser  session.Parser
	Ignored bool
}

// Type describes one set type.
type Type struct {
	Elem   *session.SetType // element descriptor for the dispatcher
	Create []Arg            // create-time options
	ADT    []Arg            // add/del/test options
}

// Name returns the canonical type name.
func (t *Type) Name() string { return t.Elem.Name }

// CreateArg looks up a create-time option by name.
func (t *Type) CreateArg(name string) (Arg, bool) { return findArg(t.Create, name) }

// ADTArg looks up an add/del/test option by name.
func (t *Type) ADTArg(name string) (Arg, bool) { return findArg(t.ADT, name) }

func findArg(args []Arg, name string) (Arg, bool) {
	for _, a := range args {
		if a.Name == name {
			return a, true
		}
	}
	return Arg{}, false
}

// Resolve maps a type name or one of the old standalone names to the
// canonical type name. Unknown names resolve to themselves.
func Resolve(name string) string {
	if canonical, ok := aliases[name]; ok {
		return canonical
	}
	return name
}

// Lookup returns the type descriptor for a canonical name, or nil.
func Lookup(name string) *Type {
	return catalog[name]
}

// Names returns the canonical type names, sorted.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTypename parses a set type name, resolving old standalone
// names, and stores the canonical name and the type descriptor in the
// session.
func ParseTypename(s *session.Session, _ session.Opt, text string) error {
	if len(text) > session.MaxNameLen-1 {
		return session.Syntaxf("typename '%s' is longer than %d characters",
			text, session.MaxNameLen-1)
	}
	typ := Lookup(Resolve(text))
	if typ == nil {
		return session.Syntaxf("typename '%s' is unknown", text)
	}
	if err := s.Data().Set(session.OptTypename, typ.Name()); err != nil {
		return err
	}
	return s.Data().Set(session.OptType, typ.Elem)
}
