package parse

import (
	"github.com/setctl/setctl/pkg/session"
)

func checkSetname(text string) error {
	if len(text) > session.MaxNameLen-1 {
		return session.Syntaxf("setname '%s' is longer than %d characters",
			text, session.MaxNameLen-1)
	}
	return nil
}

// ParseSetname parses a bounded-length set name and stores it under
// opt.
func ParseSetname(s *session.Session, opt session.Opt, text string) error {
	if err := checkSetname(text); err != nil {
		return err
	}
	return s.Data().Set(opt, text)
}

// ParseNameCompat parses a set name element, recognizing the old
// "setname,before|after,setname" form. The reference name may itself
// contain commas; the direction keyword may be given once per session.
func ParseNameCompat(s *session.Session, opt session.Opt, text string) error {
	data := s.Data()
	if data.Test(session.OptNameRef) {
		return session.Syntaxf("mixed syntax, before|after option already used")
	}

	name := text
	var ref string
	var before, compound bool
	if n, rest, ok := cut(text, elemSeparator); ok {
		keyword, r, ok := cut(rest, elemSeparator)
		if !ok || (keyword != "before" && keyword != "after") {
			return session.Syntaxf("you must specify elements as setname,[before|after],setname")
		}
		name, ref, compound = n, r, true
		before = keyword == "before"
	}

	if err := checkSetname(name); err != nil {
		return err
	}
	if err := data.Set(opt, name); err != nil {
		return err
	}
	if !compound {
		return nil
	}
	if err := checkSetname(ref); err != nil {
		return err
	}
	if err := data.Set(session.OptNameRef, ref); err != nil {
		return err
	}
	if before {
		return data.Set(session.OptBefore, true)
	}
	return nil
}

// ParseBefore parses a reference set name and records that the new
// element goes in front of it.
func ParseBefore(s *session.Session, opt session.Opt, text string) error {
	data := s.Data()
	if data.Test(session.OptNameRef) {
		return session.Syntaxf("mixed syntax, before|after option already used")
	}
	if err := checkSetname(text); err != nil {
		return err
	}
	if err := data.Set(session.OptBefore, true); err != nil {
		return err
	}
	return data.Set(opt, text)
}

// ParseAfter parses a reference set name for insertion behind it.
func ParseAfter(s *session.Session, opt session.Opt, text string) error {
	data := s.Data()
	if data.Test(session.OptNameRef) {
		return session.Syntaxf("mixed syntax, before|after option already used")
	}
	if err := checkSetname(text); err != nil {
		return err
	}
	return data.Set(opt, text)
}
