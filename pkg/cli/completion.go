package cli

import (
	"strings"

	"github.com/setctl/setctl/pkg/command"
	"github.com/setctl/setctl/pkg/settype"
)

// commandWords are the completable first words, sorted.
var commandWords = []string{
	"add", "create", "del", "destroy", "exit", "flush", "help", "list",
	"quit", "rename", "restore", "save", "swap", "test", "version",
}

// completer completes the command word first, set names after it, and
// type names in the third position of create.
type completer struct {
	runner *command.Runner
}

func (cp *completer) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	words := strings.Fields(text)
	trailingSpace := len(text) > 0 && text[len(text)-1] == ' '

	var partial string
	if !trailingSpace && len(words) > 0 {
		partial = words[len(words)-1]
	}
	word := len(words)
	if !trailingSpace && word > 0 {
		word--
	}

	var candidates []string
	switch {
	case word == 0:
		candidates = commandWords
	case word == 1:
		candidates = cp.runner.Store.Names()
	case word == 2 && command.Canonical(words[0]) == "create":
		candidates = settype.Names()
	}

	var result [][]rune
	for _, cand := range candidates {
		if strings.HasPrefix(cand, partial) {
			result = append(result, []rune(cand[len(partial):]+" "))
		}
	}
	return result, len(partial)
}
