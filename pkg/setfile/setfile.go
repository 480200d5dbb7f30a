// Package setfile applies a YAML description of sets through the
// command layer: every set is created and its members added exactly as
// the equivalent create and add commands would be.
package setfile

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/setctl/setctl/pkg/command"
)

// File is the top-level YAML document.
type File struct {
	Sets []Set `yaml:"sets"`
}

// Set describes one set: its type, create-time options, and members.
// A member is an element string, optionally followed by add arguments,
// e.g. "10.0.0.1,tcp:80" or "10.0.0.1 timeout 60".
type Set struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	Family   string   `yaml:"family,omitempty"`
	Range    string   `yaml:"range,omitempty"`
	Netmask  uint8    `yaml:"netmask,omitempty"`
	HashSize uint32   `yaml:"hashsize,omitempty"`
	MaxElem  uint32   `yaml:"maxelem,omitempty"`
	Size     uint32   `yaml:"size,omitempty"`
	Timeout  uint32   `yaml:"timeout,omitempty"`
	Members  []string `yaml:"members,omitempty"`
}

// Load reads and parses a set file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read set file: %w", err)
	}
	return Parse(data)
}

// Parse parses a set file document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse set file: %w", err)
	}
	for i, set := range f.Sets {
		if set.Name == "" {
			return nil, fmt.Errorf("set %d: name is required", i)
		}
		if set.Type == "" {
			return nil, fmt.Errorf("set %s: type is required", set.Name)
		}
	}
	return &f, nil
}

// Apply creates every set of f and adds its members through runner, in
// document order. Re-applying a file is idempotent when the runner
// tolerates existing sets and elements.
func Apply(ctx context.Context, runner *command.Runner, f *File) error {
	for _, set := range f.Sets {
		if err := runner.Run(ctx, set.createArgv()); err != nil {
			return err
		}
		for _, m := range set.Members {
			argv := append([]string{"add", set.Name}, strings.Fields(m)...)
			if err := runner.Run(ctx, argv); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Set) createArgv() []string {
	argv := []string{"create", s.Name, s.Type}
	if s.Range != "" {
		argv = append(argv, "range", s.Range)
	}
	if s.Family != "" {
		argv = append(argv, "family", s.Family)
	}
	if s.HashSize != 0 {
		argv = append(argv, "hashsize", strconv.FormatUint(uint64(s.HashSize), 10))
	}
	if s.MaxElem != 0 {
		argv = append(argv, "maxelem", strconv.FormatUint(uint64(s.MaxElem), 10))
	}
	if s.Netmask != 0 {
		argv = append(argv, "netmask", strconv.FormatUint(uint64(s.Netmask), 10))
	}
	if s.Size != 0 {
		argv = append(argv, "size", strconv.FormatUint(uint64(s.Size), 10))
	}
	if s.Timeout != 0 {
		argv = append(argv, "timeout", strconv.FormatUint(uint64(s.Timeout), 10))
	}
	return argv
}
