package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/alicelang/go-alice/internal/errors"
	"github.com/alicelang/go-alice/internal/interp"
	"github.com/alicelang/go-alice/internal/lexer"
	"github.com/alicelang/go-alice/internal/parser"
)

// runFile executes an alice source file: read, tokenize, parse and type
// check, then run. With --bench each stage's elapsed time is printed to
// stdout the way the reference implementation does.
func runFile(path string) error {
	if emit != "" {
		fmt.Fprintf(os.Stderr, "emitter '%s' is not implemented\n", emit)
	}

	var total time.Duration

	t0 := time.Now()
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	source := string(content)

	tokens, lexErr := lexer.New(source, path).Tokenize()
	if bench {
		elapsed := time.Since(t0)
		total += elapsed
		fmt.Printf("[bench] reading, tokenizing:\t%s\n", formatDuration(elapsed))
	}
	if lexErr != nil {
		if le, ok := lexErr.(*lexer.Error); ok {
			fmt.Fprintln(os.Stderr, errors.FromLexerError(le, source).Format(true))
		} else {
			fmt.Fprintln(os.Stderr, lexErr)
		}
		return fmt.Errorf("tokenizing %s failed", path)
	}

	t0 = time.Now()
	statements, err := parser.New(tokens).Parse()
	if bench {
		elapsed := time.Since(t0)
		total += elapsed
		fmt.Printf("[bench] parsing, type checking:\t%s\n", formatDuration(elapsed))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", path, err)
		return fmt.Errorf("parsing %s failed", path)
	}

	ip := interp.New(os.Stdout)
	t0 = time.Now()
	err = ip.Run(statements)
	if bench {
		elapsed := time.Since(t0)
		total += elapsed
		fmt.Printf("[bench] executing program:\t%s\n", formatDuration(elapsed))
		fmt.Printf("[bench] total elapsed:\t\t%s\n", formatDuration(total))
	}
	if err != nil {
		if _, isExit := err.(*interp.ExitError); isExit {
			return err
		}
		fmt.Fprintf(os.Stderr, "Error executing %s: %v\n", path, err)
		return fmt.Errorf("executing %s failed", path)
	}
	return nil
}

// formatDuration renders an elapsed time in fractional milliseconds.
func formatDuration(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000.0
	return fmt.Sprintf("%g ms", ms)
}
