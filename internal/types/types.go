// Package types defines the type lattice used by the alice type checker.
//
// A type is a 32-bit bitmask. The five low bits stand for the primitive
// types; a set bit means "a value of that primitive is admissible here".
// Unions are therefore ordinary masks: Any accepts every primitive, and a
// slot holding String|Int accepts either. The remaining 27 bits carry an
// object's type hash, so nominal object types compare without a symbol
// table.
package types

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
)

// Type is a bitmask over the primitive types, possibly carrying an object
// type hash in its high bits.
type Type uint32

const (
	String Type = 1 << iota // "string"
	Bool                    // "bool"
	Int                     // "int"
	Float                   // "float"
	Object                  // "object"

	// Any admits every primitive. Used by words like println and drop.
	Any = String | Bool | Int | Float | Object

	// ObjectSigMask selects the 27 bits holding an object's type hash.
	ObjectSigMask Type = 0xFFFFFFE0

	// None marks the absence of a type, e.g. a function without a
	// return value. It is never a valid stack slot.
	None Type = 0
)

// Type name words as they appear in source.
const (
	NameString = "string"
	NameBool   = "bool"
	NameInt    = "int"
	NameFloat  = "float"
	NameObject = "object"
	NameAny    = "any"
)

// IsObject reports whether t admits an object, with or without a
// concrete type hash.
func (t Type) IsObject() bool {
	return t&Object != 0
}

// Hash returns the object type hash carried by t, zero for non-objects.
func (t Type) Hash() uint32 {
	return uint32(t&ObjectSigMask) >> 5
}

// Admits reports whether every primitive that actual may be is accepted
// by t. This is the lattice check the whole type checker rests on.
func (t Type) Admits(actual Type) bool {
	return actual&t == actual
}

// String renders t the way diagnostics spell types: primitive names,
// "any" for the full union, and "|"-joined names otherwise. Object types
// with a hash render as object#HASH.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Any:
		return NameAny
	}
	if t.IsObject() && t.Hash() != 0 {
		return fmt.Sprintf("%s#%07x", NameObject, t.Hash())
	}
	var parts []string
	for _, p := range []struct {
		bit  Type
		name string
	}{
		{String, NameString},
		{Bool, NameBool},
		{Int, NameInt},
		{Float, NameFloat},
		{Object, NameObject},
	} {
		if t&p.bit != 0 {
			parts = append(parts, p.name)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("type(%#x)", uint32(t))
	}
	return strings.Join(parts, "|")
}

// ParseName maps a source-level type name to its bitmask. Only concrete
// primitive names are accepted; see ParseNameAny for pattern positions.
func ParseName(name string) (Type, error) {
	switch name {
	case NameString:
		return String, nil
	case NameBool:
		return Bool, nil
	case NameInt:
		return Int, nil
	case NameFloat:
		return Float, nil
	case NameObject:
		return Object, nil
	}
	return None, fmt.Errorf("unknown type name %s", name)
}

// ParseNameAny is ParseName plus the "any" union, which is legal in
// function argument patterns but nowhere a concrete value is needed.
func ParseNameAny(name string) (Type, error) {
	if name == NameAny {
		return Any, nil
	}
	return ParseName(name)
}

// ObjectType builds the bitmask for a named object type. The hash covers
// the type name and the canonicalised field list, truncated to the 27
// available bits, so two declarations collide only if both name and
// shape agree.
func ObjectType(name string, fields []string) Type {
	sorted := append([]string(nil), fields...)
	sort.Strings(sorted)
	h := fnv.New64a()
	h.Write([]byte(name))
	for _, f := range sorted {
		h.Write([]byte{0})
		h.Write([]byte(f))
	}
	hash := uint32(h.Sum64()) & (uint32(ObjectSigMask) >> 5)
	return Object | Type(hash<<5)
}
