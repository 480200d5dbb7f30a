package setfile

import (
	"context"
	"strings"
	"testing"

	"github.com/setctl/setctl/pkg/command"
	"github.com/setctl/setctl/pkg/setstore"
)

const sampleFile = `
sets:
  - name: allowed
    type: hash:ip,port
    family: inet
    timeout: 600
    members:
      - 10.0.0.1,tcp:80
      - 10.0.0.2,udp:53
      - 10.0.0.3,tcp:22 timeout 30
  - name: blocked
    type: hash:net
    members:
      - 192.168.0.0/16
  - name: groups
    type: list:set
    size: 4
    members:
      - allowed
      - blocked
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sampleFile))
	if err != nil {
		t.Fatalf("Parse = %v", err)
	}
	if len(f.Sets) != 3 {
		t.Fatalf("sets = %d, want 3", len(f.Sets))
	}
	first := f.Sets[0]
	if first.Name != "allowed" || first.Type != "hash:ip,port" {
		t.Errorf("first set = %s/%s", first.Name, first.Type)
	}
	if first.Timeout != 600 || first.Family != "inet" {
		t.Errorf("first set options = timeout %d, family %s", first.Timeout, first.Family)
	}
	if len(first.Members) != 3 {
		t.Errorf("first set members = %d, want 3", len(first.Members))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		doc  string
		want string
	}{
		{"sets:\n  - type: hash:ip\n", "set 0: name is required"},
		{"sets:\n  - name: foo\n", "set foo: type is required"},
		{"sets: {broken", "parse set file:"},
	}
	for _, tt := range tests {
		_, err := Parse([]byte(tt.doc))
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want error", tt.doc)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("Parse(%q) = %q, want %q", tt.doc, err, tt.want)
		}
	}
}

func TestApply(t *testing.T) {
	f, err := Parse([]byte(sampleFile))
	if err != nil {
		t.Fatalf("Parse = %v", err)
	}
	runner := &command.Runner{Store: setstore.New(), Warn: func(string) {}}
	if err := Apply(context.Background(), runner, f); err != nil {
		t.Fatalf("Apply = %v", err)
	}

	set, ok := runner.Store.Lookup("allowed")
	if !ok {
		t.Fatal("allowed not registered")
	}
	if set.Header != "family inet hashsize 1024 maxelem 65536 timeout 600" {
		t.Errorf("allowed header = %q", set.Header)
	}
	wantMembers := []string{"10.0.0.1,tcp:80", "10.0.0.2,udp:53", "10.0.0.3,tcp:22"}
	if len(set.Members) != len(wantMembers) {
		t.Fatalf("allowed members = %v", set.Members)
	}
	for i, want := range wantMembers {
		if set.Members[i].Elem != want {
			t.Errorf("member[%d] = %q, want %q", i, set.Members[i].Elem, want)
		}
	}
	if set.Members[0].Timeout != 600 {
		t.Errorf("member[0] timeout = %d, want set default 600", set.Members[0].Timeout)
	}
	if set.Members[2].Timeout != 30 {
		t.Errorf("member[2] timeout = %d, want 30", set.Members[2].Timeout)
	}

	groups, ok := runner.Store.Lookup("groups")
	if !ok {
		t.Fatal("groups not registered")
	}
	if groups.Header != "size 4" {
		t.Errorf("groups header = %q", groups.Header)
	}
	if len(groups.Members) != 2 || groups.Members[0].Elem != "allowed" {
		t.Errorf("groups members = %v", groups.Members)
	}

	// A second apply fails without exist tolerance and succeeds with it.
	if err := Apply(context.Background(), runner, f); err == nil {
		t.Error("second Apply succeeded, want error")
	}
	runner.Exist = true
	if err := Apply(context.Background(), runner, f); err != nil {
		t.Errorf("second Apply with exist = %v", err)
	}
}
