package session

import (
	"errors"
	"fmt"
)

// Sentinels for error classification with errors.Is.
var (
	ErrSyntax   = errors.New("syntax error")
	ErrInternal = errors.New("internal error")
)

type errorKind int

const (
	kindSyntax errorKind = iota
	kindInternal
)

// Error is a classified parse error. Syntax errors are caused by user
// input; internal errors signal a misconfigured type descriptor or a
// similar programming bug.
type Error struct {
	kind errorKind
	msg  string
}

func (e *Error) Error() string {
	if e.kind == kindInternal {
		return "Internal error: " + e.msg
	}
	return "Syntax error: " + e.msg
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrSyntax:
		return e.kind == kindSyntax
	case ErrInternal:
		return e.kind == kindInternal
	}
	return false
}

// Syntaxf builds a user-caused parse error.
func Syntaxf(format string, args ...any) error {
	return &Error{kind: kindSyntax, msg: fmt.Sprintf(format, args...)}
}

// Internalf builds an internal configuration error.
func Internalf(format string, args ...any) error {
	return &Error{kind: kindInternal, msg: fmt.Sprintf(format, args...)}
}

// IsSyntax reports whether err is a user-caused syntax error.
func IsSyntax(err error) bool { return errors.Is(err, ErrSyntax) }

// IsInternal reports whether err signals a configuration bug.
func IsInternal(err error) bool { return errors.Is(err, ErrInternal) }
