package interp

import "github.com/alicelang/go-alice/internal/types"

// IfStatement executes its body when the popped bool is true. The body
// must have net stack effect zero so the program's stack shape is the
// same whether or not it runs.
type IfStatement struct {
	noPatterns
	Body []Statement
}

// InPattern consumes the condition.
func (s *IfStatement) InPattern() types.StackPattern { return types.Single(types.Bool) }

// TypeCheck verifies the body leaves the abstract stack exactly as it
// found it.
func (s *IfStatement) TypeCheck(ts *types.TypeStack) error {
	before := append([]types.Type(nil), ts.Vals...)
	if err := CheckAll(ts, s.Body); err != nil {
		if ce, ok := err.(*types.CheckError); ok {
			return ce.Prefix("in if body: ")
		}
		return err
	}
	if !sameVals(before, ts.Vals) {
		return types.NewError("if body must not change the stack")
	}
	return nil
}

// Execute pops the condition and runs the body when it is true.
func (s *IfStatement) Execute(ip *Interp) error {
	cond, err := ip.Stack.Pop()
	if err != nil {
		return err
	}
	if cond.(*BoolValue).Value {
		return ip.Run(s.Body)
	}
	return nil
}

// IfElseStatement executes one of its two bodies depending on the
// popped bool. Both arms must leave identical abstract stacks, so the
// program's stack shape is independent of which arm ran.
type IfElseStatement struct {
	noPatterns
	Then []Statement
	Else []Statement
}

// InPattern consumes the condition.
func (s *IfElseStatement) InPattern() types.StackPattern { return types.Single(types.Bool) }

// TypeCheck checks the then-arm against the live state and the else-arm
// against a deep clone, then requires the two results to agree.
func (s *IfElseStatement) TypeCheck(ts *types.TypeStack) error {
	clone := ts.Clone()
	if err := CheckAll(ts, s.Then); err != nil {
		if ce, ok := err.(*types.CheckError); ok {
			return ce.Prefix("in if body: ")
		}
		return err
	}
	if err := CheckAll(clone, s.Else); err != nil {
		if ce, ok := err.(*types.CheckError); ok {
			return ce.Prefix("in else body: ")
		}
		return err
	}
	if !ts.EqualVals(clone) {
		return types.NewError("if and else bodies must leave the same stack")
	}
	return nil
}

// Execute pops the condition and runs the matching arm.
func (s *IfElseStatement) Execute(ip *Interp) error {
	cond, err := ip.Stack.Pop()
	if err != nil {
		return err
	}
	if cond.(*BoolValue).Value {
		return ip.Run(s.Then)
	}
	return ip.Run(s.Else)
}

func sameVals(a, b []types.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
