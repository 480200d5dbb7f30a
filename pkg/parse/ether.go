package parse

import (
	"net"

	"github.com/setctl/setctl/pkg/session"
)

const etherLen = 6

// ParseEther parses a colon-separated ethernet address of exactly six
// two-hex-digit groups and stores it under opt. One-digit groups and
// any other length or boundary mismatch are rejected.
func ParseEther(s *session.Session, opt session.Opt, text string) error {
	if len(text) != etherLen*3-1 {
		return etherErr(text)
	}
	hw := make(net.HardwareAddr, etherLen)
	for i := 0; i < etherLen; i++ {
		hi, ok := hexDigit(text[i*3])
		if !ok {
			return etherErr(text)
		}
		lo, ok := hexDigit(text[i*3+1])
		if !ok {
			return etherErr(text)
		}
		if i < etherLen-1 && text[i*3+2] != ':' {
			return etherErr(text)
		}
		hw[i] = hi<<4 | lo
	}
	return s.Data().Set(opt, hw)
}

func etherErr(text string) error {
	return session.Syntaxf("cannot parse '%s' as ethernet address", text)
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
