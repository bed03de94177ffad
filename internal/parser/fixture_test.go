package parser

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/alicelang/go-alice/internal/interp"
	"github.com/alicelang/go-alice/internal/lexer"
	"github.com/gkampitakis/go-snaps/snaps"
)

// TestProgramFixtures runs every program under testdata/programs
// through the full pipeline and snapshots the transcript: stdout, any
// stage error, and the exit code.
func TestProgramFixtures(t *testing.T) {
	dir := filepath.Join("..", "..", "testdata", "programs")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading fixture dir: %v", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".alice") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		t.Fatal("no fixture programs found")
	}

	for _, name := range names {
		t.Run(strings.TrimSuffix(name, ".alice"), func(t *testing.T) {
			source, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				t.Fatalf("reading fixture: %v", err)
			}
			snaps.MatchSnapshot(t, runTranscript(string(source)))
		})
	}
}

// runTranscript executes a source string and renders what a user would
// observe.
func runTranscript(source string) string {
	var sb strings.Builder

	tokens, err := lexer.New(source, "fixture.alice").Tokenize()
	if err != nil {
		fmt.Fprintf(&sb, "lex error: %v\n", err)
		return sb.String()
	}

	statements, err := New(tokens).Parse()
	if err != nil {
		fmt.Fprintf(&sb, "check error: %v\n", err)
		return sb.String()
	}

	var out bytes.Buffer
	ip := interp.NewWithInput(&out, strings.NewReader(""))
	runErr := ip.Run(statements)

	sb.WriteString("-- stdout --\n")
	sb.WriteString(out.String())
	exitCode := 0
	if runErr != nil {
		if exitErr, ok := runErr.(*interp.ExitError); ok {
			exitCode = exitErr.Code
		} else {
			fmt.Fprintf(&sb, "-- runtime error --\n%v\n", runErr)
			exitCode = 1
		}
	}
	fmt.Fprintf(&sb, "-- exit %d --\n", exitCode)
	return sb.String()
}

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}
