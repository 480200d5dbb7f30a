// Package command executes the textual set-management commands against
// the registry: create, add, del, test, destroy, list, save, restore,
// flush, rename, and swap. One Runner serves both the one-shot CLI and
// the interactive loop; restore replays a saved command stream.
package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/setctl/setctl/pkg/parse"
	"github.com/setctl/setctl/pkg/render"
	"github.com/setctl/setctl/pkg/resolver"
	"github.com/setctl/setctl/pkg/session"
	"github.com/setctl/setctl/pkg/setstore"
	"github.com/setctl/setctl/pkg/settype"
)

// Version is the tool version reported by the version command.
const Version = "1.0.0"

// ErrNotInSet is returned by the test command for a missing element,
// after the result line has been printed. The CLI maps it to exit
// status 1.
var ErrNotInSet = errors.New("element is not in the set")

// Runner executes commands against a registry. The zero value is not
// usable; Store must be set.
type Runner struct {
	Store    *setstore.Store
	Resolver resolver.Resolver // nil means the system resolver
	Out      io.Writer         // nil means os.Stdout
	Warn     func(msg string)  // nil means slog
	Output   session.Output
	Exist    bool
	Quiet    bool
}

func (r *Runner) out() io.Writer {
	if r.Out != nil {
		return r.Out
	}
	return os.Stdout
}

func (r *Runner) newSession(ctx context.Context) *session.Session {
	s := session.New(session.Options{
		Resolver: r.Resolver,
		Warn:     r.Warn,
		Context:  ctx,
	})
	s.Exist = r.Exist
	s.Quiet = r.Quiet
	s.SetOutput(r.Output)
	return s
}

// Canonical maps a command spelling, including the single-letter flag
// aliases of the previous syntax, to its canonical name. Unknown
// spellings map to the empty string.
func Canonical(cmd string) string {
	switch cmd {
	case "create", "new", "-N":
		return "create"
	case "add", "-A":
		return "add"
	case "del", "-D":
		return "del"
	case "test", "-T":
		return "test"
	case "destroy", "-X":
		return "destroy"
	case "list", "-L":
		return "list"
	case "save", "-S":
		return "save"
	case "restore", "-R":
		return "restore"
	case "flush", "-F":
		return "flush"
	case "rename", "-E":
		return "rename"
	case "swap", "-W":
		return "swap"
	case "version", "-V":
		return "version"
	}
	return ""
}

// Run dispatches one command given as its argument vector. Errors come
// back prefixed with the canonical command name.
func (r *Runner) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return nil
	}
	name := Canonical(argv[0])
	args := argv[1:]

	var err error
	switch name {
	case "create":
		err = r.Create(ctx, args)
	case "add":
		err = r.Add(ctx, args)
	case "del":
		err = r.Del(ctx, args)
	case "test":
		err = r.Test(ctx, args)
	case "destroy":
		err = r.Destroy(ctx, args)
	case "list":
		err = r.List(ctx, args)
	case "save":
		err = r.Save(ctx, args)
	case "restore":
		err = r.restoreFile(ctx, args)
	case "flush":
		err = r.Flush(ctx, args)
	case "rename":
		err = r.Rename(ctx, args)
	case "swap":
		err = r.Swap(ctx, args)
	case "version":
		r.PrintVersion()
	default:
		return fmt.Errorf("unknown command '%s'", argv[0])
	}
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// parseArgs consumes name/value argument pairs, routing each value to
// the parser its grammar binds. Arguments of the previous syntax
// generation are dropped with a warning, value included.
func (r *Runner) parseArgs(s *session.Session, lookup func(string) (settype.Arg, bool), args []string) error {
	for i := 0; i < len(args); i++ {
		arg, ok := lookup(args[i])
		if !ok {
			return session.Syntaxf("unknown argument '%s'", args[i])
		}
		if arg.Ignored {
			if err := parse.ParseIgnored(s, arg.Opt, arg.Name); err != nil {
				return err
			}
			if i+1 < len(args) {
				i++
			}
			continue
		}
		if i+1 >= len(args) {
			return session.Syntaxf("missing value for argument '%s'", arg.Name)
		}
		i++
		if err := parse.Call(s, arg.Parser, arg.Name, arg.Opt, args[i]); err != nil {
			return err
		}
	}
	return nil
}

// createDefaults fills the header options create leaves unspecified
// and checks the ones it cannot.
func createDefaults(s *session.Session, typ *settype.Type) error {
	d := s.Data()
	switch {
	case strings.HasPrefix(typ.Name(), "hash:"):
		s.DefaultFamily()
		if !d.Test(session.OptHashSize) {
			if err := d.Set(session.OptHashSize, uint32(1024)); err != nil {
				return err
			}
		}
		if !d.Test(session.OptMaxElem) {
			if err := d.Set(session.OptMaxElem, uint32(65536)); err != nil {
				return err
			}
		}
	case strings.HasPrefix(typ.Name(), "bitmap:"):
		if !d.Test(session.OptIP) && !d.Test(session.OptPort) {
			return session.Syntaxf("mandatory argument 'range' is missing")
		}
	default:
		if !d.Test(session.OptSize) {
			if err := d.Set(session.OptSize, uint32(8)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Create registers a new set: "create <setname> <typename> [args]".
func (r *Runner) Create(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("set name and type name are required")
	}
	s := r.newSession(ctx)
	d := s.Data()
	if err := parse.ParseSetname(s, session.OptSetname, args[0]); err != nil {
		return err
	}
	if err := settype.ParseTypename(s, session.OptTypename, args[1]); err != nil {
		return err
	}
	typ := settype.Lookup(d.Typename())
	if err := r.parseArgs(s, typ.CreateArg, args[2:]); err != nil {
		return err
	}
	if err := createDefaults(s, typ); err != nil {
		return err
	}
	set := &setstore.Set{
		Name:       d.Setname(),
		Type:       typ,
		Family:     d.Family(),
		Header:     render.Header(typ.Name(), d),
		Timeout:    d.Timeout(),
		HasTimeout: d.Test(session.OptTimeout),
	}
	if err := r.Store.Create(set, s.Exist); err != nil {
		return err
	}
	slog.Debug("created set", "name", set.Name, "type", typ.Name())
	return nil
}

// elemSession looks up the target set and seeds a session with its type
// descriptor and family so the element parsers see the right context.
func (r *Runner) elemSession(ctx context.Context, name string) (*session.Session, *setstore.Set, error) {
	set, ok := r.Store.Lookup(name)
	if !ok {
		return nil, nil, setstore.ErrNotFound
	}
	s := r.newSession(ctx)
	d := s.Data()
	if err := d.Set(session.OptType, set.Type.Elem); err != nil {
		return nil, nil, err
	}
	if set.Family != session.FamilyUnspec {
		if err := d.Set(session.OptFamily, set.Family); err != nil {
			return nil, nil, err
		}
	}
	return s, set, nil
}

// member renders the parsed element into its canonical member form and
// applies the timeout and placement options.
func (r *Runner) member(s *session.Session, set *setstore.Set) (setstore.Member, setstore.Position, error) {
	d := s.Data()
	elem, err := render.Elem(d, set.Type.Elem)
	if err != nil {
		return setstore.Member{}, setstore.Position{}, err
	}
	m := setstore.Member{Elem: elem}
	if d.Test(session.OptTimeout) {
		if !set.HasTimeout {
			return setstore.Member{}, setstore.Position{},
				session.Syntaxf("set %s was created without timeout support", set.Name)
		}
		m.Timeout = d.Timeout()
	} else if set.HasTimeout {
		m.Timeout = set.Timeout
	}
	var pos setstore.Position
	if d.Test(session.OptNameRef) {
		pos = setstore.Position{Before: d.Before(), Ref: d.NameRef()}
	}
	return m, pos, nil
}

// Add inserts an element: "add <setname> <elem> [args]".
func (r *Runner) Add(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("set name and element are required")
	}
	s, set, err := r.elemSession(ctx, args[0])
	if err != nil {
		return err
	}
	if err := parse.ParseElem(s, false, args[1]); err != nil {
		return err
	}
	if err := r.parseArgs(s, set.Type.ADTArg, args[2:]); err != nil {
		return err
	}
	m, pos, err := r.member(s, set)
	if err != nil {
		return err
	}
	return r.Store.Add(set.Name, m, pos, s.Exist)
}

// Del removes an element: "del <setname> <elem>".
func (r *Runner) Del(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("set name and element are required")
	}
	s, set, err := r.elemSession(ctx, args[0])
	if err != nil {
		return err
	}
	if err := parse.ParseElem(s, false, args[1]); err != nil {
		return err
	}
	if err := r.parseArgs(s, set.Type.ADTArg, args[2:]); err != nil {
		return err
	}
	elem, err := render.Elem(s.Data(), set.Type.Elem)
	if err != nil {
		return err
	}
	return r.Store.Del(set.Name, elem, s.Exist)
}

// Test reports element membership: "test <setname> <elem>". Trailing
// element parts may be left off. A missing element yields ErrNotInSet
// after the result line is printed.
func (r *Runner) Test(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("set name and element are required")
	}
	s, set, err := r.elemSession(ctx, args[0])
	if err != nil {
		return err
	}
	if err := parse.ParseElem(s, true, args[1]); err != nil {
		return err
	}
	elem, err := render.Elem(s.Data(), set.Type.Elem)
	if err != nil {
		return err
	}
	in, err := r.Store.Test(set.Name, elem)
	if err != nil {
		return err
	}
	if !in {
		fmt.Fprintf(r.out(), "%s is NOT in set %s.\n", elem, set.Name)
		return ErrNotInSet
	}
	fmt.Fprintf(r.out(), "%s is in set %s.\n", elem, set.Name)
	return nil
}

// Destroy removes the named set, or every set when no name is given.
func (r *Runner) Destroy(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
		r.Store.DestroyAll()
		return nil
	case 1:
		return r.Store.Destroy(args[0])
	}
	return errors.New("too many arguments")
}

// Flush empties the named set, or every set when no name is given.
func (r *Runner) Flush(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
		r.Store.FlushAll()
		return nil
	case 1:
		return r.Store.Flush(args[0])
	}
	return errors.New("too many arguments")
}

// List prints the named set, or all sets, in the configured output
// format.
func (r *Runner) List(ctx context.Context, args []string) error {
	name, err := optionalName(args)
	if err != nil {
		return err
	}
	return render.List(r.out(), r.Output, r.Store, name)
}

// Save prints the named set, or all sets, as a restorable command
// stream regardless of the configured output format.
func (r *Runner) Save(ctx context.Context, args []string) error {
	name, err := optionalName(args)
	if err != nil {
		return err
	}
	return render.List(r.out(), session.OutputSave, r.Store, name)
}

func optionalName(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		return args[0], nil
	}
	return "", errors.New("too many arguments")
}

// Rename gives a set a new name: "rename <from> <to>".
func (r *Runner) Rename(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("current and new set names are required")
	}
	s := r.newSession(ctx)
	if err := parse.ParseSetname(s, session.OptSetname, args[0]); err != nil {
		return err
	}
	if err := parse.ParseSetname(s, session.OptSetname2, args[1]); err != nil {
		return err
	}
	return r.Store.Rename(args[0], args[1])
}

// Swap exchanges the contents of two sets: "swap <a> <b>".
func (r *Runner) Swap(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("two set names are required")
	}
	s := r.newSession(ctx)
	if err := parse.ParseSetname(s, session.OptSetname, args[0]); err != nil {
		return err
	}
	if err := parse.ParseSetname(s, session.OptSetname2, args[1]); err != nil {
		return err
	}
	return r.Store.Swap(args[0], args[1])
}

// PrintVersion writes the version line.
func (r *Runner) PrintVersion() {
	fmt.Fprintf(r.out(), "setctl v%s\n", Version)
}

func (r *Runner) restoreFile(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("file name is required")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	return r.Restore(ctx, f)
}

// Restore replays a saved command stream. Blank lines and # comments
// are skipped, COMMIT lines are accepted and ignored, and a line of
// "-!" toggles exist tolerance for the rest of the stream.
func (r *Runner) Restore(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	exist := r.Exist
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "COMMIT" {
			continue
		}
		if line == "-!" {
			exist = !exist
			continue
		}
		sub := *r
		sub.Exist = exist
		if err := sub.Run(ctx, strings.Fields(line)); err != nil {
			return fmt.Errorf("line %d: %w", lineno, err)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	slog.Debug("restored command stream", "lines", lineno)
	return nil
}
