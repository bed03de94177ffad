package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alicelang/go-alice/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exec checks and runs a statement list, returning the interpreter and
// everything written to its output.
func exec(t *testing.T, statements ...Statement) (*Interp, string, error) {
	t.Helper()
	require.NoError(t, CheckAll(types.NewTypeStack(), statements),
		"test program must type check")
	var out bytes.Buffer
	ip := NewWithInput(&out, strings.NewReader(""))
	err := ip.Run(statements)
	return ip, out.String(), err
}

func top(t *testing.T, ip *Interp) Value {
	t.Helper()
	v, ok := ip.Stack.Get(0)
	require.True(t, ok, "stack is empty")
	return v
}

func TestExecArithmetic(t *testing.T) {
	tests := []struct {
		name string
		prog []Statement
		want Value
	}{
		{"int add", []Statement{pushInt(1), pushInt(2), &ArithStatement{Op: OpAdd}}, &IntValue{Value: 3}},
		{"int sub", []Statement{pushInt(1), pushInt(2), &ArithStatement{Op: OpSub}}, &IntValue{Value: -1}},
		{"int mul", []Statement{pushInt(3), pushInt(4), &ArithStatement{Op: OpMul}}, &IntValue{Value: 12}},
		{"int div truncates", []Statement{pushInt(7), pushInt(2), &ArithStatement{Op: OpDiv}}, &IntValue{Value: 3}},
		{"int div negative truncates toward zero", []Statement{pushInt(-7), pushInt(2), &ArithStatement{Op: OpDiv}}, &IntValue{Value: -3}},
		{"int mod", []Statement{pushInt(7), pushInt(3), &ArithStatement{Op: OpMod}}, &IntValue{Value: 1}},
		{"int pow", []Statement{pushInt(2), pushInt(10), &ArithStatement{Op: OpPow}}, &IntValue{Value: 1024}},
		{"pow zero exponent", []Statement{pushInt(9), pushInt(0), &ArithStatement{Op: OpPow}}, &IntValue{Value: 1}},
		{"mixed widens", []Statement{pushInt(1), pushFloat(2.5), &ArithStatement{Op: OpAdd}}, &FloatValue{Value: 3.5}},
		{"float div", []Statement{pushFloat(3), pushFloat(2), &ArithStatement{Op: OpDiv}}, &FloatValue{Value: 1.5}},
		{"float int pow", []Statement{pushFloat(2), pushInt(3), &ArithStatement{Op: OpPow}}, &FloatValue{Value: 8}},
		{"string concat", []Statement{pushString("foo"), pushString("bar"), &ArithStatement{Op: OpAdd}}, &StringValue{Value: "foobar"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ip, _, err := exec(t, tt.prog...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, top(t, ip))
		})
	}
}

func TestExecArithmeticErrors(t *testing.T) {
	_, _, err := exec(t, pushInt(1), pushInt(0), &ArithStatement{Op: OpDiv})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "division by zero")

	_, _, err = exec(t, pushInt(1), pushInt(0), &ArithStatement{Op: OpMod})
	assert.Error(t, err)

	_, _, err = exec(t, pushInt(2), pushInt(-1), &ArithStatement{Op: OpPow})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative exponent")
}

func TestExecComparisons(t *testing.T) {
	tests := []struct {
		name string
		prog []Statement
		want bool
	}{
		{"lt", []Statement{pushInt(1), pushInt(2), &CompareStatement{Op: OpLt}}, true},
		{"le equal", []Statement{pushInt(2), pushInt(2), &CompareStatement{Op: OpLe}}, true},
		{"gt", []Statement{pushFloat(1), pushFloat(2), &CompareStatement{Op: OpGt}}, false},
		{"ge", []Statement{pushFloat(2), pushFloat(2), &CompareStatement{Op: OpGe}}, true},
		{"eq bools", []Statement{pushBool(true), pushBool(false), &CompareStatement{Op: OpEq}}, false},
		{"eq strings", []Statement{pushString("a"), pushString("a"), &CompareStatement{Op: OpEq}}, true},
		{"ne ints", []Statement{pushInt(1), pushInt(1), &CompareStatement{Op: OpNe}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ip, _, err := exec(t, tt.prog...)
			require.NoError(t, err)
			assert.Equal(t, &BoolValue{Value: tt.want}, top(t, ip))
		})
	}
}

func TestExecShuffles(t *testing.T) {
	// 1 2 3 rot -> 2 3 1
	ip, _, err := exec(t, pushInt(1), pushInt(2), pushInt(3), RotStatement{})
	require.NoError(t, err)
	assert.Equal(t, []Value{&IntValue{Value: 2}, &IntValue{Value: 3}, &IntValue{Value: 1}},
		ip.Stack.Values())

	// 1 2 swap -> 2 1
	ip, _, err = exec(t, pushInt(1), pushInt(2), SwapStatement{})
	require.NoError(t, err)
	assert.Equal(t, []Value{&IntValue{Value: 2}, &IntValue{Value: 1}}, ip.Stack.Values())

	// 1 2 over -> 1 2 1
	ip, _, err = exec(t, pushInt(1), pushInt(2), OverStatement{})
	require.NoError(t, err)
	assert.Equal(t, []Value{&IntValue{Value: 1}, &IntValue{Value: 2}, &IntValue{Value: 1}},
		ip.Stack.Values())

	// dup, drop, clear
	ip, _, err = exec(t, pushInt(1), DupStatement{}, DropStatement{})
	require.NoError(t, err)
	assert.Equal(t, 1, ip.Stack.Size())

	ip, _, err = exec(t, pushInt(1), pushInt(2), ClearStatement{})
	require.NoError(t, err)
	assert.Zero(t, ip.Stack.Size())
}

func TestExecPrinting(t *testing.T) {
	_, out, err := exec(t,
		pushInt(1), PrintlnStatement{},
		pushString("x"), PrintStatement{},
		pushFloat(1.5), PrintlnStatement{},
		pushBool(true), PrintlnStatement{})
	require.NoError(t, err)
	assert.Equal(t, "1\nx1.5\ntrue\n", out)
}

func TestExecPrintStack(t *testing.T) {
	ip, out, err := exec(t, pushInt(1), pushFloat(2.5), pushString("s"),
		PrintStackStatement{}, ClearStatement{})
	require.NoError(t, err)
	assert.Equal(t, "1\n2.5\ns\n", out)
	assert.Zero(t, ip.Stack.Size())
}

func TestExecLetAndPushVar(t *testing.T) {
	ip, out, err := exec(t,
		pushInt(7),
		&LetStatement{Name: "x", DeclType: types.Int},
		&PushVarStatement{Name: "x"},
		&PushVarStatement{Name: "x"},
		&ArithStatement{Op: OpMul},
		PrintlnStatement{})
	require.NoError(t, err)
	assert.Equal(t, "49\n", out)
	assert.Zero(t, ip.Stack.Size())

	// default literal form
	_, out, err = exec(t,
		&LetStatement{Name: "greet", DeclType: types.String, Default: &StringValue{Value: "hi"}},
		&PushVarStatement{Name: "greet"},
		PrintlnStatement{})
	require.NoError(t, err)
	assert.Equal(t, "hi\n", out)
}

func TestExecLetRebind(t *testing.T) {
	_, out, err := exec(t,
		pushInt(1), &LetStatement{Name: "x", DeclType: types.Int},
		pushInt(2), &LetStatement{Name: "x", DeclType: types.Int},
		&PushVarStatement{Name: "x"}, PrintlnStatement{})
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestExecIf(t *testing.T) {
	_, out, err := exec(t,
		pushBool(true), &IfStatement{Body: []Statement{pushString("yes"), PrintlnStatement{}}},
		pushBool(false), &IfStatement{Body: []Statement{pushString("no"), PrintlnStatement{}}})
	require.NoError(t, err)
	assert.Equal(t, "yes\n", out)
}

func TestExecIfElse(t *testing.T) {
	branch := func(cond bool) []Statement {
		return []Statement{
			pushBool(cond),
			&IfElseStatement{
				Then: []Statement{pushString("then")},
				Else: []Statement{pushString("else")},
			},
			PrintlnStatement{},
		}
	}
	_, out, err := exec(t, branch(true)...)
	require.NoError(t, err)
	assert.Equal(t, "then\n", out)

	_, out, err = exec(t, branch(false)...)
	require.NoError(t, err)
	assert.Equal(t, "else\n", out)
}

func TestExecFunctionCall(t *testing.T) {
	sq := &FunDefStatement{
		Name: "sq", Args: types.Single(types.Int), Return: types.Int,
		Body: []Statement{DupStatement{}, &ArithStatement{Op: OpMul}},
	}
	_, out, err := exec(t, sq, pushInt(5), &CallStatement{Name: "sq"}, PrintlnStatement{})
	require.NoError(t, err)
	assert.Equal(t, "25\n", out)
}

func TestExecRecursion(t *testing.T) {
	countdown := &FunDefStatement{
		Name: "count", Args: types.Single(types.Int),
		Body: []Statement{
			DupStatement{}, pushInt(0), &CompareStatement{Op: OpGt},
			&IfElseStatement{
				Then: []Statement{
					DupStatement{}, PrintlnStatement{},
					pushInt(1), &ArithStatement{Op: OpSub},
					&CallStatement{Name: "count"},
				},
				Else: []Statement{DropStatement{}},
			},
		},
	}
	_, out, err := exec(t, countdown, pushInt(3), &CallStatement{Name: "count"})
	require.NoError(t, err)
	assert.Equal(t, "3\n2\n1\n", out)
}

func TestExecExit(t *testing.T) {
	_, _, err := exec(t, pushInt(7), ExitStatement{})
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 7, exitErr.Code)

	_, _, err = exec(t, OkExitStatement{})
	require.ErrorAs(t, err, &exitErr)
	assert.Zero(t, exitErr.Code)
}

func TestExecExitStopsProgram(t *testing.T) {
	_, out, err := exec(t,
		pushString("before"), PrintlnStatement{},
		OkExitStatement{},
		pushString("after"), PrintlnStatement{})
	require.Error(t, err)
	assert.Equal(t, "before\n", out)
}

func TestExecReadln(t *testing.T) {
	statements := []Statement{ReadlnStatement{}, PrintlnStatement{}}
	require.NoError(t, CheckAll(types.NewTypeStack(), statements))

	var out bytes.Buffer
	ip := NewWithInput(&out, strings.NewReader("hello world\nrest"))
	require.NoError(t, ip.Run(statements))
	assert.Equal(t, "hello world\n", out.String())

	// a final line without a newline still reads
	require.NoError(t, ip.Run(statements))
	assert.Equal(t, "hello world\nrest\n", out.String())
}
