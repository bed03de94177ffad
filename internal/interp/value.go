// Package interp provides the runtime and the statement set for alice.
//
// A parsed program is a flat list of Statements. Each statement carries
// its own stack effect: the patterns it consumes and produces, a custom
// transformation of the abstract type stack where a fixed pattern is not
// enough, and its concrete execution. The type checker in this package
// abstract-interprets those effects to completion before the executor
// touches the operand stack.
package interp

import (
	"strconv"

	"github.com/alicelang/go-alice/internal/types"
)

// Value represents a runtime value on the operand stack or in the
// variable table.
type Value interface {
	// Type returns the value's type bitmask.
	Type() types.Type
	// TypeName returns the source-level name of the value's type.
	TypeName() string
	// String returns the printed form of the value.
	String() string
}

// StringValue is a string value.
type StringValue struct {
	Value string
}

// Type returns the string type bit.
func (s *StringValue) Type() types.Type { return types.String }

// TypeName returns "string".
func (s *StringValue) TypeName() string { return types.NameString }

// String returns the string itself.
func (s *StringValue) String() string { return s.Value }

// BoolValue is a boolean value.
type BoolValue struct {
	Value bool
}

// Type returns the bool type bit.
func (b *BoolValue) Type() types.Type { return types.Bool }

// TypeName returns "bool".
func (b *BoolValue) TypeName() string { return types.NameBool }

// String returns "true" or "false".
func (b *BoolValue) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// IntValue is a 64-bit integer value.
type IntValue struct {
	Value int64
}

// Type returns the int type bit.
func (i *IntValue) Type() types.Type { return types.Int }

// TypeName returns "int".
func (i *IntValue) TypeName() string { return types.NameInt }

// String returns the base-10 form of the integer.
func (i *IntValue) String() string { return strconv.FormatInt(i.Value, 10) }

// FloatValue is a 64-bit floating point value.
type FloatValue struct {
	Value float64
}

// Type returns the float type bit.
func (f *FloatValue) Type() types.Type { return types.Float }

// TypeName returns "float".
func (f *FloatValue) TypeName() string { return types.NameFloat }

// String returns the shortest form that round-trips the float.
func (f *FloatValue) String() string { return strconv.FormatFloat(f.Value, 'g', -1, 64) }

// ObjectValue is an instance of a nominal object type. The type hash is
// baked into the bitmask so the checker compares object types without a
// symbol table.
type ObjectValue struct {
	Name    string
	Mask    types.Type
	Members map[string]Value
}

// Type returns the object bit with the instance's type hash.
func (o *ObjectValue) Type() types.Type { return o.Mask }

// TypeName returns the declared type name of the object.
func (o *ObjectValue) TypeName() string { return o.Name }

// String returns the object's type name and hash.
func (o *ObjectValue) String() string {
	return o.Name + "#" + strconv.FormatUint(uint64(o.Mask.Hash()), 16)
}

// FunctionValue is a named function: its checkable signature plus the
// statement list of its body. Function values live in the variable table
// only; they are never pushed on the operand stack, which the checker
// guarantees. The body is immutable after definition, so a call may
// safely re-enter it.
type FunctionValue struct {
	Name   string
	Args   types.StackPattern
	Return types.Type
	Body   []Statement
}

// Type panics: function values have no stack type. The type checker
// rejects every program that could reach this.
func (f *FunctionValue) Type() types.Type {
	panic("function value has no stack type; fix your type checker")
}

// TypeName returns "fun".
func (f *FunctionValue) TypeName() string { return "fun" }

// String returns a short description of the function.
func (f *FunctionValue) String() string { return "fun " + f.Name }
