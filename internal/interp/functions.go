package interp

import "github.com/alicelang/go-alice/internal/types"

// LetStatement declares a named binding. Without a default literal it
// pops the stack head into the table; with one it stores the literal
// and leaves the stack alone.
type LetStatement struct {
	noPatterns
	Name     string
	DeclType types.Type
	Default  Value
}

// TypeCheck pops one slot matching the declared type (unless a default
// literal is given) and records the binding.
func (s *LetStatement) TypeCheck(ts *types.TypeStack) error {
	if s.Default == nil {
		if err := ts.RequireSize(1); err != nil {
			return err
		}
		actual, _ := ts.Pop()
		if !s.DeclType.Admits(actual) {
			return types.Errorf("cannot bind %s value to %s variable '%s'",
				actual, s.DeclType, s.Name)
		}
	}
	ts.Vars[s.Name] = s.DeclType
	return nil
}

// Execute stores the binding.
func (s *LetStatement) Execute(ip *Interp) error {
	if s.Default != nil {
		ip.Table.Put(s.Name, s.Default)
		return nil
	}
	v, err := ip.Stack.Pop()
	if err != nil {
		return err
	}
	ip.Table.Put(s.Name, v)
	return nil
}

// PushVarStatement pushes a variable's value from the table onto the
// stack.
type PushVarStatement struct {
	noPatterns
	Name string
}

// TypeCheck pushes the binding's type. Referencing an unknown name or a
// function is an error; function values never reach the stack.
func (s *PushVarStatement) TypeCheck(ts *types.TypeStack) error {
	if _, isFun := ts.Funs[s.Name]; isFun {
		return types.Errorf("cannot push function '%s' onto the stack", s.Name)
	}
	bits, ok := ts.Vars[s.Name]
	if !ok {
		return types.Errorf("unknown variable binding '%s'", s.Name)
	}
	ts.Push(bits)
	return nil
}

// Execute pushes the table entry.
func (s *PushVarStatement) Execute(ip *Interp) error {
	v, ok := ip.Table.Get(s.Name)
	if !ok {
		panic("unknown binding at runtime; fix your type checker")
	}
	ip.Stack.Push(v)
	return nil
}

// FunDefStatement defines a named function. The body is type-checked at
// definition time against a fresh abstract stack seeded with the
// argument pattern; the signature is registered before the body check,
// so the body may call itself.
type FunDefStatement struct {
	noPatterns
	Name   string
	Args   types.StackPattern
	Return types.Type
	Body   []Statement
}

// TypeCheck registers the signature and verifies the body keeps it.
func (s *FunDefStatement) TypeCheck(ts *types.TypeStack) error {
	ts.Funs[s.Name] = types.FuncSig{Args: s.Args, Return: s.Return}

	body := types.NewTypeStack()
	for k, v := range ts.Vars {
		body.Vars[k] = v
	}
	for k, v := range ts.Funs {
		body.Funs[k] = v
	}
	s.Args.Produce(body)

	if err := CheckAll(body, s.Body); err != nil {
		if ce, ok := err.(*types.CheckError); ok {
			return ce.Prefix("in function '" + s.Name + "': ")
		}
		return err
	}

	if s.Return == types.None {
		if len(body.Vals) != 0 {
			return types.Errorf(
				"function signature promise not correct: '%s' returns nothing but leaves %d value(s)",
				s.Name, len(body.Vals))
		}
		return nil
	}
	if len(body.Vals) != 1 {
		return types.Errorf(
			"function signature promise not correct: '%s' must leave exactly one %s, leaves %d value(s)",
			s.Name, s.Return, len(body.Vals))
	}
	if got := body.Vals[0]; got != s.Return {
		return types.Errorf(
			"function signature promise not correct: '%s' promises %s but leaves %s",
			s.Name, s.Return, got)
	}
	return nil
}

// Execute stores the function value in the table.
func (s *FunDefStatement) Execute(ip *Interp) error {
	ip.Table.Put(s.Name, &FunctionValue{
		Name:   s.Name,
		Args:   s.Args,
		Return: s.Return,
		Body:   s.Body,
	})
	return nil
}

// CallStatement invokes a function by name. The body was verified at
// definition time, so the call only consumes the argument pattern and
// produces the return type.
type CallStatement struct {
	noPatterns
	Name string
}

// TypeCheck consumes the signature's arguments and produces its return
// type.
func (s *CallStatement) TypeCheck(ts *types.TypeStack) error {
	sig, ok := ts.Funs[s.Name]
	if !ok {
		return types.Errorf("unknown function '%s'", s.Name)
	}
	if err := sig.Args.Check(ts); err != nil {
		if ce, ok := err.(*types.CheckError); ok {
			return ce.Prefix("calling '" + s.Name + "': ")
		}
		return err
	}
	if sig.Return != types.None {
		ts.Push(sig.Return)
	}
	return nil
}

// Execute runs the function body against the shared stack and table.
// The body handle is immutable, so recursive calls are safe.
func (s *CallStatement) Execute(ip *Interp) error {
	v, ok := ip.Table.Get(s.Name)
	if !ok {
		panic("unknown function at runtime; fix your type checker")
	}
	fn, ok := v.(*FunctionValue)
	if !ok {
		panic("call target is not a function; fix your type checker")
	}
	return ip.Run(fn.Body)
}
