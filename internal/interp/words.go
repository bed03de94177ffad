package interp

import (
	"fmt"
	"strings"

	"github.com/alicelang/go-alice/internal/types"
)

// PushStatement pushes a literal onto the stack.
type PushStatement struct {
	noPatterns
	Val Value
}

// OutPattern produces the literal's type.
func (s *PushStatement) OutPattern() types.StackPattern {
	return types.Single(s.Val.Type())
}

// Execute pushes the literal.
func (s *PushStatement) Execute(ip *Interp) error {
	ip.Stack.Push(s.Val)
	return nil
}

// PrintlnStatement pops a value and prints it with a trailing newline.
type PrintlnStatement struct {
	noPatterns
}

// InPattern consumes one value of any type.
func (PrintlnStatement) InPattern() types.StackPattern { return types.AnyN(1) }

// Execute prints the popped value.
func (PrintlnStatement) Execute(ip *Interp) error {
	v, err := ip.Stack.Pop()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ip.Out, v.String())
	return err
}

// PrintStatement pops a value and prints it without a newline.
type PrintStatement struct {
	noPatterns
}

// InPattern consumes one value of any type.
func (PrintStatement) InPattern() types.StackPattern { return types.AnyN(1) }

// Execute prints the popped value.
func (PrintStatement) Execute(ip *Interp) error {
	v, err := ip.Stack.Pop()
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(ip.Out, v.String())
	return err
}

// PrintStackStatement prints the full stack bottom-up, one value per
// line, without consuming anything.
type PrintStackStatement struct {
	noPatterns
}

// Execute prints the stack.
func (PrintStackStatement) Execute(ip *Interp) error {
	for _, v := range ip.Stack.Values() {
		if _, err := fmt.Fprintln(ip.Out, v.String()); err != nil {
			return err
		}
	}
	return nil
}

// ReadlnStatement reads one line from the input stream, strips the
// trailing newline, and pushes it as a string.
type ReadlnStatement struct {
	noPatterns
}

// OutPattern produces a string.
func (ReadlnStatement) OutPattern() types.StackPattern { return types.Single(types.String) }

// Execute reads the line.
func (ReadlnStatement) Execute(ip *Interp) error {
	line, err := ip.In.ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("reading stdin failed: %w", err)
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	ip.Stack.Push(&StringValue{Value: line})
	return nil
}

// ExitStatement pops an int and terminates the program with that exit
// code.
type ExitStatement struct {
	noPatterns
}

// InPattern consumes the exit code.
func (ExitStatement) InPattern() types.StackPattern { return types.Single(types.Int) }

// Execute raises the exit sentinel.
func (ExitStatement) Execute(ip *Interp) error {
	v, err := ip.Stack.Pop()
	if err != nil {
		return err
	}
	code, ok := v.(*IntValue)
	if !ok {
		panic("exit popped a non-int; fix your type checker")
	}
	return &ExitError{Code: int(code.Value)}
}

// OkExitStatement terminates the program with exit code 0.
type OkExitStatement struct {
	noPatterns
}

// Execute raises the exit sentinel with code 0.
func (OkExitStatement) Execute(ip *Interp) error {
	return &ExitError{Code: 0}
}

// DropStatement discards the top of the stack.
type DropStatement struct {
	noPatterns
}

// InPattern consumes one value of any type.
func (DropStatement) InPattern() types.StackPattern { return types.AnyN(1) }

// Execute pops and discards.
func (DropStatement) Execute(ip *Interp) error {
	_, err := ip.Stack.Pop()
	return err
}

// SwapStatement exchanges the two topmost values.
type SwapStatement struct {
	noPatterns
}

// TypeCheck moves the second slot on top. No type constraint.
func (SwapStatement) TypeCheck(ts *types.TypeStack) error {
	if err := ts.RequireSize(2); err != nil {
		return err
	}
	ts.Push(ts.Remove(1))
	return nil
}

// Execute swaps the top two values.
func (SwapStatement) Execute(ip *Interp) error {
	ip.Stack.Push(ip.Stack.Remove(1))
	return nil
}

// DupStatement duplicates the top of the stack.
type DupStatement struct {
	noPatterns
}

// TypeCheck duplicates the top slot.
func (DupStatement) TypeCheck(ts *types.TypeStack) error {
	if err := ts.RequireSize(1); err != nil {
		return err
	}
	t, _ := ts.Peek(0)
	ts.Push(t)
	return nil
}

// Execute duplicates the top value.
func (DupStatement) Execute(ip *Interp) error {
	v, _ := ip.Stack.Get(0)
	ip.Stack.Push(v)
	return nil
}

// OverStatement copies the second value on top: a b over -> a b a.
type OverStatement struct {
	noPatterns
}

// TypeCheck copies the slot at depth 1 on top.
func (OverStatement) TypeCheck(ts *types.TypeStack) error {
	if err := ts.RequireSize(2); err != nil {
		return err
	}
	t, _ := ts.Peek(1)
	ts.Push(t)
	return nil
}

// Execute copies the second value on top.
func (OverStatement) Execute(ip *Interp) error {
	v, _ := ip.Stack.Get(1)
	ip.Stack.Push(v)
	return nil
}

// RotStatement rotates the third value on top: a b c rot -> b c a.
type RotStatement struct {
	noPatterns
}

// TypeCheck moves the slot at depth 2 on top.
func (RotStatement) TypeCheck(ts *types.TypeStack) error {
	if err := ts.RequireSize(3); err != nil {
		return err
	}
	ts.Push(ts.Remove(2))
	return nil
}

// Execute rotates the third value on top.
func (RotStatement) Execute(ip *Interp) error {
	ip.Stack.Push(ip.Stack.Remove(2))
	return nil
}

// ClearStatement empties the stack.
type ClearStatement struct {
	noPatterns
}

// TypeCheck empties the abstract stack.
func (ClearStatement) TypeCheck(ts *types.TypeStack) error {
	ts.Vals = ts.Vals[:0]
	return nil
}

// Execute empties the operand stack.
func (ClearStatement) Execute(ip *Interp) error {
	ip.Stack.Clear()
	return nil
}
