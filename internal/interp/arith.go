package interp

import (
	"fmt"
	"math"

	"github.com/alicelang/go-alice/internal/types"
)

// ArithOp enumerates the arithmetic words.
type ArithOp int

// Arithmetic operators.
const (
	OpAdd ArithOp = iota // +
	OpSub                // -
	OpMul                // *
	OpDiv                // /
	OpPow                // **
	OpMod                // %
)

var arithNames = map[ArithOp]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpPow: "**",
	OpMod: "%",
}

// ArithStatement pops two operands and pushes the result of an
// arithmetic operator. The operand types decide the result type: two
// ints stay int, a float with a float or an int widens to float (except
// that ** rejects an int base with a float exponent), and + also
// concatenates two strings.
type ArithStatement struct {
	noPatterns
	Op ArithOp
}

// TypeCheck applies the numeric coercion table. The operands are popped
// here rather than via InPattern because the result type depends on
// both of them.
func (s *ArithStatement) TypeCheck(ts *types.TypeStack) error {
	if err := ts.RequireSize(2); err != nil {
		return err
	}
	b, _ := ts.Pop()
	a, _ := ts.Pop()

	if s.Op == OpAdd && a == types.String && b == types.String {
		ts.Push(types.String)
		return nil
	}

	switch {
	case a == types.Int && b == types.Int:
		ts.Push(types.Int)
	case a == types.Float && b == types.Float:
		ts.Push(types.Float)
	case a == types.Float && b == types.Int:
		ts.Push(types.Float)
	case a == types.Int && b == types.Float:
		// int base with float exponent has no sound result type
		if s.Op == OpPow {
			return types.Errorf("cannot raise %s to a %s power", a, b)
		}
		ts.Push(types.Float)
	default:
		return types.Errorf("cannot apply %s to %s and %s", arithNames[s.Op], a, b)
	}
	return nil
}

// Execute computes the operation on the two popped operands.
func (s *ArithStatement) Execute(ip *Interp) error {
	b, err := ip.Stack.Pop()
	if err != nil {
		return err
	}
	a, err := ip.Stack.Pop()
	if err != nil {
		return err
	}

	if as, ok := a.(*StringValue); ok {
		bs, ok := b.(*StringValue)
		if !ok || s.Op != OpAdd {
			panic("string arithmetic slipped past the type checker")
		}
		ip.Stack.Push(&StringValue{Value: as.Value + bs.Value})
		return nil
	}

	ai, aIsInt := a.(*IntValue)
	bi, bIsInt := b.(*IntValue)
	if aIsInt && bIsInt {
		r, err := s.applyInt(ai.Value, bi.Value)
		if err != nil {
			return err
		}
		ip.Stack.Push(&IntValue{Value: r})
		return nil
	}

	r, err := s.applyFloat(floatOf(a), floatOf(b))
	if err != nil {
		return err
	}
	ip.Stack.Push(&FloatValue{Value: r})
	return nil
}

func (s *ArithStatement) applyInt(a, b int64) (int64, error) {
	switch s.Op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		if b == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return a / b, nil
	case OpMod:
		if b == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return a % b, nil
	case OpPow:
		return intPow(a, b)
	}
	panic("unknown arithmetic operator")
}

func (s *ArithStatement) applyFloat(a, b float64) (float64, error) {
	switch s.Op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		return a / b, nil
	case OpMod:
		return math.Mod(a, b), nil
	case OpPow:
		return math.Pow(a, b), nil
	}
	panic("unknown arithmetic operator")
}

// intPow raises a to the b-th power by binary exponentiation. Negative
// exponents have no integer result and are a runtime error.
func intPow(a, b int64) (int64, error) {
	if b < 0 {
		return 0, fmt.Errorf("negative exponent %d in integer power", b)
	}
	result := int64(1)
	for b > 0 {
		if b&1 == 1 {
			result *= a
		}
		a *= a
		b >>= 1
	}
	return result, nil
}

// floatOf widens a numeric value to float64.
func floatOf(v Value) float64 {
	switch n := v.(type) {
	case *IntValue:
		return float64(n.Value)
	case *FloatValue:
		return n.Value
	}
	panic("non-numeric operand slipped past the type checker")
}

// CompareOp enumerates the comparison words.
type CompareOp int

// Comparison operators.
const (
	OpEq CompareOp = iota // ==
	OpNe                  // !=
	OpLt                  // <
	OpLe                  // <=
	OpGt                  // >
	OpGe                  // >=
)

var compareNames = map[CompareOp]string{
	OpEq: "==",
	OpNe: "!=",
	OpLt: "<",
	OpLe: "<=",
	OpGt: ">",
	OpGe: ">=",
}

// CompareStatement pops two operands and pushes a bool. Equality wants
// the operand types equal; the ordering operators want two ints or two
// floats.
type CompareStatement struct {
	noPatterns
	Op CompareOp
}

// TypeCheck verifies the operand types and produces a bool.
func (s *CompareStatement) TypeCheck(ts *types.TypeStack) error {
	if err := ts.RequireSize(2); err != nil {
		return err
	}
	b, _ := ts.Pop()
	a, _ := ts.Pop()

	switch s.Op {
	case OpEq, OpNe:
		if a != b {
			return types.Errorf("cannot compare %s and %s for equality", a, b)
		}
	default:
		bothInt := a == types.Int && b == types.Int
		bothFloat := a == types.Float && b == types.Float
		if !bothInt && !bothFloat {
			return types.Errorf("cannot apply %s to %s and %s", compareNames[s.Op], a, b)
		}
	}
	ts.Push(types.Bool)
	return nil
}

// Execute compares the two popped operands.
func (s *CompareStatement) Execute(ip *Interp) error {
	b, err := ip.Stack.Pop()
	if err != nil {
		return err
	}
	a, err := ip.Stack.Pop()
	if err != nil {
		return err
	}

	var result bool
	switch s.Op {
	case OpEq:
		result = equalValues(a, b)
	case OpNe:
		result = !equalValues(a, b)
	default:
		if ai, ok := a.(*IntValue); ok {
			result = compareOrdered(s.Op, ai.Value, b.(*IntValue).Value)
		} else {
			result = compareOrdered(s.Op, floatOf(a), floatOf(b))
		}
	}
	ip.Stack.Push(&BoolValue{Value: result})
	return nil
}

// compareOrdered applies an ordering operator to two numbers of the
// same kind.
func compareOrdered[T int64 | float64](op CompareOp, a, b T) bool {
	switch op {
	case OpLt:
		return a < b
	case OpLe:
		return a <= b
	case OpGt:
		return a > b
	case OpGe:
		return a >= b
	}
	panic("unknown comparison operator")
}

// equalValues compares two values of the same type. Object instances
// compare by type hash.
func equalValues(a, b Value) bool {
	switch av := a.(type) {
	case *StringValue:
		return av.Value == b.(*StringValue).Value
	case *BoolValue:
		return av.Value == b.(*BoolValue).Value
	case *IntValue:
		return av.Value == b.(*IntValue).Value
	case *FloatValue:
		return av.Value == b.(*FloatValue).Value
	case *ObjectValue:
		return av.Mask == b.(*ObjectValue).Mask
	}
	panic("unexpected value kind in equality")
}
