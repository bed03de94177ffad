package interp

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/alicelang/go-alice/internal/types"
)

// Interp bundles the runtime state a statement executes against: the
// operand stack, the variable table, and the program's I/O streams.
type Interp struct {
	Stack *Stack
	Table *Table
	Out   io.Writer
	In    *bufio.Reader
}

// New returns a fresh interpreter writing to out and reading from
// standard input.
func New(out io.Writer) *Interp {
	return NewWithInput(out, os.Stdin)
}

// NewWithInput returns a fresh interpreter with an explicit input
// stream, used by readln.
func NewWithInput(out io.Writer, in io.Reader) *Interp {
	return &Interp{
		Stack: NewStack(64),
		Table: NewTable(32),
		Out:   out,
		In:    bufio.NewReader(in),
	}
}

// Run executes a checked statement list to completion.
func (ip *Interp) Run(statements []Statement) error {
	for _, s := range statements {
		if err := s.Execute(ip); err != nil {
			return err
		}
	}
	return nil
}

// ExitError is the sentinel the exit words raise. It travels up through
// Run so embedders (the REPL, tests) decide whether to terminate the
// process.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit with code %d", e.Code)
}

// Check type-checks a full program. A program is well-typed iff the
// abstract stack is empty after the final statement.
func Check(statements []Statement) error {
	ts := types.NewTypeStack()
	if err := CheckAll(ts, statements); err != nil {
		return err
	}
	if n := len(ts.Vals); n > 0 {
		return types.Errorf("%d excess values on the stack!", n)
	}
	return nil
}

// CheckAll runs every statement's effect against the given checker
// state. Interactive mode calls this directly with its persistent state:
// surplus slots are allowed to survive across lines there.
func CheckAll(ts *types.TypeStack, statements []Statement) error {
	for _, s := range statements {
		if err := s.InPattern().Check(ts); err != nil {
			return err
		}
		if err := s.TypeCheck(ts); err != nil {
			return err
		}
		s.OutPattern().Produce(ts)
	}
	return nil
}
