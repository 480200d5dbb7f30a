// Package setstore is the in-memory registry of named sets: creation,
// destruction, renaming, swapping, and element membership with the
// list:set ordering rules. Membership is by canonical element string.
package setstore

import (
	"errors"
	"sort"
	"sync"

	"github.com/setctl/setctl/pkg/session"
	"github.com/setctl/setctl/pkg/settype"
)

// Registry errors, matched with errors.Is by the command layer.
var (
	ErrExists       = errors.New("set with the same name already exists")
	ErrNotFound     = errors.New("the set with the given name does not exist")
	ErrElemExists   = errors.New("element is already added to the set")
	ErrElemMissing  = errors.New("element is missing from the set")
	ErrInUse        = errors.New("the set is in use, operation not permitted")
	ErrIncompatible = errors.New("the sets cannot be swapped, their type or family differs")
	ErrNoMemberSet  = errors.New("set to be added as element does not exist")
	ErrSelfRef      = errors.New("a set cannot be added to itself")
	ErrRefMissing   = errors.New("the before|after reference element is missing from the set")
)

// Member is one element of a set: the canonical element string and an
// optional timeout in seconds, zero meaning permanent.
type Member struct {
	Elem    string
	Timeout uint32
}

// Set is a named set with its type, create-time header, and members in
// insertion order.
type Set struct {
	Name       string
	Type       *settype.Type
	Family     session.Family
	Header     string // rendered create options, shown by list and save
	Timeout    uint32 // default member timeout
	HasTimeout bool   // created with timeout support
	Members    []Member
}

func (s *Set) isListSet() bool {
	return s.Type != nil && s.Type.Name() == "list:set"
}

func (s *Set) memberIndex(elem string) int {
	for i, m := range s.Members {
		if m.Elem == elem {
			return i
		}
	}
	return -1
}

// Position selects where a list:set member lands. An empty Ref appends.
type Position struct {
	Before bool
	Ref    string
}

// Store is the registry. All methods are safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	sets map[string]*Set
}

// New creates an empty registry.
func New() *Store {
	return &Store{sets: make(map[string]*Set)}
}

// Create registers a new set. An existing set under the same name is an
// error unless exist is set and the old set has the same type and
// family.
func (s *Store) Create(set *Set, exist bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.sets[set.Name]; ok {
		if exist && old.Type.Name() == set.Type.Name() && old.Family == set.Family {
			return nil
		}
		return ErrExists
	}
	cp := *set
	cp.Members = append([]Member(nil), set.Members...)
	s.sets[cp.Name] = &cp
	return nil
}

// Destroy removes a set. Sets referenced by a list:set cannot be
// destroyed.
func (s *Store) Destroy(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sets[name]; !ok {
		return ErrNotFound
	}
	if s.refCount(name) > 0 {
		return ErrInUse
	}
	delete(s.sets, name)
	return nil
}

// DestroyAll removes every set.
func (s *Store) DestroyAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets = make(map[string]*Set)
}

// Flush removes all members of a set.
func (s *Store) Flush(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sets[name]
	if !ok {
		return ErrNotFound
	}
	set.Members = nil
	return nil
}

// FlushAll removes the members of every set.
func (s *Store) FlushAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, set := range s.sets {
		set.Members = nil
	}
}

// Rename gives a set a new, unused name. Sets referenced by a list:set
// keep their name.
func (s *Store) Rename(from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sets[from]
	if !ok {
		return ErrNotFound
	}
	if _, taken := s.sets[to]; taken {
		return ErrExists
	}
	if s.refCount(from) > 0 {
		return ErrInUse
	}
	delete(s.sets, from)
	set.Name = to
	s.sets[to] = set
	return nil
}

// Swap exchanges the contents of two sets of the same type and family.
func (s *Store) Swap(a, b string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sa, ok := s.sets[a]
	if !ok {
		return ErrNotFound
	}
	sb, ok := s.sets[b]
	if !ok {
		return ErrNotFound
	}
	if sa.Type.Name() != sb.Type.Name() || sa.Family != sb.Family {
		return ErrIncompatible
	}
	sa.Name, sb.Name = b, a
	s.sets[a], s.sets[b] = sb, sa
	return nil
}

// Add inserts a member. A duplicate is an error unless exist is set, in
// which case the stored timeout is refreshed. For list:set the member
// must name a registered set and pos may order it relative to an
// existing member.
func (s *Store) Add(name string, m Member, pos Position, exist bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sets[name]
	if !ok {
		return ErrNotFound
	}
	if set.isListSet() {
		if m.Elem == name {
			return ErrSelfRef
		}
		if _, ok := s.sets[m.Elem]; !ok {
			return ErrNoMemberSet
		}
	}
	if i := set.memberIndex(m.Elem); i >= 0 {
		if !exist {
			return ErrElemExists
		}
		set.Members[i].Timeout = m.Timeout
		return nil
	}
	if pos.Ref == "" {
		set.Members = append(set.Members, m)
		return nil
	}
	ri := set.memberIndex(pos.Ref)
	if ri < 0 {
		return ErrRefMissing
	}
	if !pos.Before {
		ri++
	}
	set.Members = append(set.Members, Member{})
	copy(set.Members[ri+1:], set.Members[ri:])
	set.Members[ri] = m
	return nil
}

// Del removes a member. A missing member is an error unless exist is
// set.
func (s *Store) Del(name, elem string, exist bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sets[name]
	if !ok {
		return ErrNotFound
	}
	i := set.memberIndex(elem)
	if i < 0 {
		if exist {
			return nil
		}
		return ErrElemMissing
	}
	set.Members = append(set.Members[:i], set.Members[i+1:]...)
	return nil
}

// Test reports whether elem is a member of the named set.
func (s *Store) Test(name, elem string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.sets[name]
	if !ok {
		return false, ErrNotFound
	}
	return set.memberIndex(elem) >= 0, nil
}

// Lookup returns a snapshot of the named set.
func (s *Store) Lookup(name string) (*Set, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.sets[name]
	if !ok {
		return nil, false
	}
	return set.snapshot(), true
}

// Names returns the registered set names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.sets))
	for name := range s.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sets returns snapshots of every set, ordered by name.
func (s *Store) Sets() []*Set {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sets := make([]*Set, 0, len(s.sets))
	for _, set := range s.sets {
		sets = append(sets, set.snapshot())
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i].Name < sets[j].Name })
	return sets
}

// References counts the list:set sets holding name as a member.
func (s *Store) References(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refCount(name)
}

func (s *Store) refCount(name string) int {
	n := 0
	for _, set := range s.sets {
		if set.isListSet() && set.memberIndex(name) >= 0 {
			n++
		}
	}
	return n
}

func (set *Set) snapshot() *Set {
	cp := *set
	cp.Members = append([]Member(nil), set.Members...)
	return &cp
}
