package interp

import "github.com/alicelang/go-alice/internal/types"

// Statement is one executable unit of an alice program. Every statement
// declares its stack effect three ways:
//
//   - InPattern is the shape it consumes off the stack, bottom-to-top.
//   - OutPattern is the shape it produces.
//   - TypeCheck covers effects a fixed pattern cannot express (stack
//     shufflers, numeric coercion, bindings, control flow). It runs
//     between the two patterns and may rewrite the abstract stack.
//
// A statement whose effect fits (in, out) must express it through the
// patterns alone and leave TypeCheck a no-op. Execute runs the concrete
// effect and may assume every precondition the checker verified.
type Statement interface {
	InPattern() types.StackPattern
	OutPattern() types.StackPattern
	TypeCheck(ts *types.TypeStack) error
	Execute(ip *Interp) error
}

// noPatterns provides the empty default for the three check hooks.
// Statements embed it and override what they need.
type noPatterns struct{}

func (noPatterns) InPattern() types.StackPattern    { return nil }
func (noPatterns) OutPattern() types.StackPattern   { return nil }
func (noPatterns) TypeCheck(*types.TypeStack) error { return nil }
