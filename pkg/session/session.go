// Package session holds the per-invocation state shared by the value
// parsers: the option store with its "already specified" flags, the
// ambient address family, the warning sink, and the collaborators a
// parser may reach for (name resolution, output mode).
//
// A Session is not safe for concurrent use; concurrent invocations must
// use independent sessions.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/setctl/setctl/pkg/resolver"
)

// Options configures a new Session. Zero values select the system
// resolver, a slog-backed warning sink, and a background context.
type Options struct {
	Resolver resolver.Resolver
	Warn     func(msg string)
	Context  context.Context
}

// Session carries the state of one command invocation.
type Session struct {
	data Data
	res  resolver.Resolver
	ctx  context.Context
	warn func(string)
	out  Output

	// Exist makes the execution layer tolerate creating existing sets,
	// adding existing entries, and deleting missing ones.
	Exist bool
	// Quiet suppresses warnings and informational output.
	Quiet bool
}

// New builds a session ready for one invocation.
func New(opts Options) *Session {
	s := &Session{
		res:  opts.Resolver,
		ctx:  opts.Context,
		warn: opts.Warn,
	}
	if s.res == nil {
		s.res = resolver.System{}
	}
	if s.ctx == nil {
		s.ctx = context.Background()
	}
	if s.warn == nil {
		s.warn = func(msg string) { slog.Warn(msg) }
	}
	return s
}

// Data returns the option store of the session.
func (s *Session) Data() *Data { return &s.data }

// Resolver returns the name-resolution collaborator.
func (s *Session) Resolver() resolver.Resolver { return s.res }

// Context returns the context used for blocking resolution calls.
func (s *Session) Context() context.Context { return s.ctx }

// Output returns the listing format of the session.
func (s *Session) Output() Output { return s.out }

// SetOutput selects the listing format.
func (s *Session) SetOutput(o Output) { s.out = o }

// Warnf records a non-fatal warning through the session sink.
func (s *Session) Warnf(format string, args ...any) {
	if s.Quiet {
		return
	}
	s.warn(fmt.Sprintf(format, args...))
}

// DefaultFamily returns the ambient family, first setting it to IPv4 if
// it is still unspecified. The default persists in the option store for
// later options of the same invocation.
func (s *Session) DefaultFamily() Family {
	if s.data.Family() == FamilyUnspec {
		s.data.Set(OptFamily, FamilyIPv4)
	}
	return s.data.Family()
}
