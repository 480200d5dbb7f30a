// Package parse converts the textual values of the set-management
// syntax (addresses, networks, ranges, ports, protocols, ICMP
// type/codes, ethernet addresses, set names, and composite set
// elements) into typed, range-checked entries in a session's option
// store.
//
// Every parser has the same shape: it receives the session, the option
// to fill, and the raw token, and returns nil or a classified error
// from the session package. Parsers never mutate their input; splitting
// is done by slicing.
package parse

import "strings"

// Separator characters of the element syntax.
const (
	cidrSeparator  = "/"
	rangeSeparator = "-"
	elemSeparator  = ","
	protoSeparator = ":"
)

// cut splits text at the first usable occurrence of any candidate
// separator character. A candidate is usable only when the string
// neither begins nor ends with it, so a leading "-4" or a dangling
// trailing separator never splits; a string that merely starts or ends
// with a candidate disqualifies that candidate everywhere. Candidates
// are tried in the order given and the first one with a match wins.
func cut(text, seps string) (before, after string, found bool) {
	if text == "" {
		return text, "", false
	}
	for i := 0; i < len(seps); i++ {
		sep := seps[i]
		idx := strings.IndexByte(text, sep)
		if idx < 0 {
			continue
		}
		if text[0] == sep || text[len(text)-1] == sep {
			continue
		}
		return text[:idx], text[idx+1:], true
	}
	return text, "", false
}

// hasSep reports whether cut would split text on any of seps.
func hasSep(text, seps string) bool {
	_, _, ok := cut(text, seps)
	return ok
}
