package parse

import (
	"strings"
	"testing"

	"github.com/setctl/setctl/pkg/session"
)

func TestParseFamily(t *testing.T) {
	tests := []struct {
		text string
		want session.Family
		err  string
	}{
		{text: "inet", want: session.FamilyIPv4},
		{text: "ipv4", want: session.FamilyIPv4},
		{text: "-4", want: session.FamilyIPv4},
		{text: "inet6", want: session.FamilyIPv6},
		{text: "ipv6", want: session.FamilyIPv6},
		{text: "-6", want: session.FamilyIPv6},
		{text: "any", want: session.FamilyUnspec},
		{text: "unspec", want: session.FamilyUnspec},
		// Spellings are case-sensitive.
		{text: "INET", err: "unknown INET family INET"},
		{text: "ip", err: "unknown INET family ip"},
	}
	for _, tt := range tests {
		s := session.New(session.Options{})
		err := ParseFamily(s, session.OptFamily, tt.text)
		if tt.err != "" {
			if err == nil || err.Error() != "Syntax error: "+tt.err {
				t.Errorf("ParseFamily(%q): got %v, want %q", tt.text, err, tt.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFamily(%q): %v", tt.text, err)
			continue
		}
		if got := s.Data().Family(); got != tt.want {
			t.Errorf("ParseFamily(%q) = %v, want %v", tt.text, got, tt.want)
		}
		if !s.Data().Test(session.OptFamily) {
			t.Errorf("ParseFamily(%q): flag not recorded", tt.text)
		}
	}
}

func TestParseFamilyTwice(t *testing.T) {
	s := session.New(session.Options{})
	if err := ParseFamily(s, session.OptFamily, "inet"); err != nil {
		t.Fatalf("ParseFamily: %v", err)
	}
	err := ParseFamily(s, session.OptFamily, "inet6")
	want := "Syntax error: protocol family may not be specified multiple times"
	if err == nil || err.Error() != want {
		t.Errorf("got %v, want %q", err, want)
	}
	if s.Data().Family() != session.FamilyIPv4 {
		t.Error("the first family must survive")
	}
}

func TestParseNetmask(t *testing.T) {
	tests := []struct {
		family session.Family
		text   string
		want   uint8
		err    string
	}{
		{family: session.FamilyUnspec, text: "24", want: 24},
		{family: session.FamilyIPv4, text: "1", want: 1},
		{family: session.FamilyIPv4, text: "31", want: 31},
		{family: session.FamilyIPv4, text: "32", err: "netmask is out of the inclusive range of 1-31"},
		{family: session.FamilyIPv4, text: "0", err: "netmask is out of the inclusive range of 1-31"},
		{family: session.FamilyIPv4, text: "abc", err: "netmask is out of the inclusive range of 1-31"},
		{family: session.FamilyIPv6, text: "64", want: 64},
		{family: session.FamilyIPv6, text: "4", want: 4},
		{family: session.FamilyIPv6, text: "124", want: 124},
		{family: session.FamilyIPv6, text: "3", err: "netmask is out of the inclusive range of 4-124"},
		{family: session.FamilyIPv6, text: "125", err: "netmask is out of the inclusive range of 4-124"},
	}
	for _, tt := range tests {
		s := session.New(session.Options{})
		if tt.family != session.FamilyUnspec {
			s.Data().Set(session.OptFamily, tt.family)
		}
		err := ParseNetmask(s, session.OptNetmask, tt.text)
		if tt.err != "" {
			if err == nil || err.Error() != "Syntax error: "+tt.err {
				t.Errorf("ParseNetmask(%q, %v): got %v, want %q", tt.text, tt.family, err, tt.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseNetmask(%q, %v): %v", tt.text, tt.family, err)
			continue
		}
		if got := s.Data().Netmask(); got != tt.want {
			t.Errorf("ParseNetmask(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestParseFlag(t *testing.T) {
	s := session.New(session.Options{})
	if err := ParseFlag(s, session.OptSize, ""); err != nil {
		t.Fatalf("ParseFlag: %v", err)
	}
	if !s.Data().Test(session.OptSize) {
		t.Error("flag not recorded")
	}
}

func TestParseIgnoredWarnsOnce(t *testing.T) {
	var warnings []string
	s := session.New(session.Options{
		Warn: func(msg string) { warnings = append(warnings, msg) },
	})

	for i := 0; i < 3; i++ {
		if err := ParseIgnored(s, session.OptSize, "--resize"); err != nil {
			t.Fatalf("ParseIgnored: %v", err)
		}
	}
	if len(warnings) != 1 {
		t.Fatalf("expected exactly one warning, got %d: %v", len(warnings), warnings)
	}
	want := "Option --resize is ignored. Please upgrade your syntax."
	if warnings[0] != want {
		t.Errorf("warning = %q, want %q", warnings[0], want)
	}
	if s.Data().Test(session.OptSize) {
		t.Error("ignored options must not mark the option as specified")
	}
}

func TestParseOutput(t *testing.T) {
	tests := []struct {
		text string
		want session.Output
	}{
		{"plain", session.OutputPlain},
		{"save", session.OutputSave},
		{"xml", session.OutputXML},
		{"json", session.OutputJSON},
	}
	for _, tt := range tests {
		s := session.New(session.Options{})
		if err := ParseOutput(s, session.OptNone, tt.text); err != nil {
			t.Errorf("ParseOutput(%q): %v", tt.text, err)
			continue
		}
		if got := s.Output(); got != tt.want {
			t.Errorf("ParseOutput(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}

	s := session.New(session.Options{})
	err := ParseOutput(s, session.OptNone, "yaml")
	if err == nil || !strings.Contains(err.Error(), "unknown output mode 'yaml'") {
		t.Errorf("got %v, want the unknown-mode error", err)
	}
}
