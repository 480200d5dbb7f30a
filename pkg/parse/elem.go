package parse

import (
	"github.com/setctl/setctl/pkg/session"
)

// Call invokes parser for opt, rejecting options that were already
// specified in this session. name is the user-facing option name for
// the error message.
func Call(s *session.Session, parser session.Parser, name string, opt session.Opt, text string) error {
	if s.Data().Test(opt) {
		return session.Syntaxf("%s already specified", name)
	}
	return parser.Parse(s, opt, text)
}

// ParseElem parses a composite element according to the dimension of
// the session's set type, routing each comma-separated part to the
// per-dimension parser of the type. With optional set, missing
// trailing parts are allowed. A one-dimensional type with a compat
// parser hands the whole token over to it when a separator shows up.
func ParseElem(s *session.Session, optional bool, text string) error {
	typ := s.Data().Type()
	if typ == nil {
		return session.Internalf("set type is unknown!")
	}

	one := text
	var two, three string
	var hasTwo, hasThree bool

	before, after, found := cut(text, elemSeparator)
	if typ.Dimension > 1 {
		if found {
			one, two, hasTwo = before, after, true
		} else if !optional {
			return session.Syntaxf("Second element is missing from %s.", text)
		}
	} else if found {
		if typ.Compat != nil {
			return typ.Compat.Parse(s, typ.Elem[0].Opt, text)
		}
		return session.Syntaxf("Elem separator in %s, but settype %s supports none.",
			text, typ.Name)
	}

	found = false
	if hasTwo {
		before, after, found = cut(two, elemSeparator)
	}
	if typ.Dimension > 2 {
		if found {
			two, three, hasThree = before, after, true
		} else if !optional {
			return session.Syntaxf("Third element is missing from %s.", text)
		}
	} else if found {
		return session.Syntaxf("Two elem separators in %s, but settype %s supports one.",
			text, typ.Name)
	}
	if hasThree && hasSep(three, elemSeparator) {
		return session.Syntaxf("Three elem separators in %s, but settype %s supports two.",
			text, typ.Name)
	}

	if err := parsePart(s, typ, 0, one); err != nil {
		return err
	}
	if typ.Dimension > 1 && hasTwo {
		if err := parsePart(s, typ, 1, two); err != nil {
			return err
		}
	}
	if typ.Dimension > 2 && hasThree {
		if err := parsePart(s, typ, 2, three); err != nil {
			return err
		}
	}
	return nil
}

func parsePart(s *session.Session, typ *session.SetType, dim int, text string) error {
	spec := typ.Elem[dim]
	if spec.Parser == nil {
		return session.Internalf("missing parser function for %s", typ.Name)
	}
	return spec.Parser.Parse(s, spec.Opt, text)
}
