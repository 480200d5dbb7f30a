package parse

import (
	"errors"
	"math"
	"strconv"

	"github.com/setctl/setctl/pkg/session"
)

// ParseNumber parses text as an unsigned integer in [min, max],
// accepting decimal, hexadecimal, and octal literals. A max of zero
// means the full 64-bit range; width-specific callers always narrow it.
// The whole token must be consumed.
func ParseNumber(text string, min, max uint64) (uint64, error) {
	bound := max
	if bound == 0 {
		bound = math.MaxUint64
	}
	n, err := strconv.ParseUint(text, 0, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, session.Syntaxf("'%s' is out of range %d-%d", text, min, bound)
		}
		return 0, session.Syntaxf("'%s' is invalid as number", text)
	}
	if n < min || n > bound {
		return 0, session.Syntaxf("'%s' is out of range %d-%d", text, min, bound)
	}
	return n, nil
}

func parseUint8(text string) (uint8, error) {
	n, err := ParseNumber(text, 0, math.MaxUint8)
	return uint8(n), err
}

func parseUint16(text string) (uint16, error) {
	n, err := ParseNumber(text, 0, math.MaxUint16)
	return uint16(n), err
}

func parseUint32(text string) (uint32, error) {
	n, err := ParseNumber(text, 0, math.MaxUint32)
	return uint32(n), err
}

// parseCIDR parses an 8-bit prefix length and checks it against the
// inclusive [min, max] bounds with a dedicated message.
func parseCIDR(text string, min, max uint8) (uint8, error) {
	n, err := parseUint8(text)
	if err != nil {
		return 0, err
	}
	if n < min || n > max {
		return 0, session.Syntaxf("'%s' is out of range %d-%d", text, min, max)
	}
	return n, nil
}

// ParseUint8 parses an 8-bit number and stores it under opt.
func ParseUint8(s *session.Session, opt session.Opt, text string) error {
	v, err := parseUint8(text)
	if err != nil {
		return err
	}
	return s.Data().Set(opt, v)
}

// ParseUint16 parses a 16-bit number and stores it under opt.
func ParseUint16(s *session.Session, opt session.Opt, text string) error {
	v, err := parseUint16(text)
	if err != nil {
		return err
	}
	return s.Data().Set(opt, v)
}

// ParseUint32 parses a 32-bit number and stores it under opt.
func ParseUint32(s *session.Session, opt session.Opt, text string) error {
	v, err := parseUint32(text)
	if err != nil {
		return err
	}
	return s.Data().Set(opt, v)
}

// ParseTimeout parses a timeout in seconds.
func ParseTimeout(s *session.Session, opt session.Opt, text string) error {
	return ParseUint32(s, opt, text)
}
