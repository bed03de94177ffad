// Package parser turns the token stream into a flat statement list and
// runs the type checker over it. Keywords and built-in words are
// recognised here, not in the lexer.
package parser

import (
	"fmt"
	"strconv"

	"github.com/alicelang/go-alice/internal/interp"
	"github.com/alicelang/go-alice/internal/lexer"
	"github.com/alicelang/go-alice/internal/types"
)

// Keywords of the language. A keyword may not be bound as a variable or
// function name.
const (
	KwLet   = "let"
	KwFun   = "fun"
	KwIf    = "if"
	KwElse  = "else"
	KwTrue  = "true"
	KwFalse = "false"
)

// Built-in word identifiers.
const (
	WordPrintln    = "println"
	WordPrint      = "print"
	WordPrintStack = "pstack"
	WordExit       = "exit"
	WordOkExit     = "okexit"
	WordDrop       = "drop"
	WordSwap       = "swap"
	WordDup        = "dup"
	WordOver       = "over"
	WordRot        = "rot"
	WordClear      = "clear"
	WordReadln     = "readln"
)

var keywords = map[string]bool{
	KwLet:   true,
	KwFun:   true,
	KwIf:    true,
	KwElse:  true,
	KwTrue:  true,
	KwFalse: true,
}

var builtinWords = map[string]func() interp.Statement{
	WordPrintln:    func() interp.Statement { return interp.PrintlnStatement{} },
	WordPrint:      func() interp.Statement { return interp.PrintStatement{} },
	WordPrintStack: func() interp.Statement { return interp.PrintStackStatement{} },
	WordExit:       func() interp.Statement { return interp.ExitStatement{} },
	WordOkExit:     func() interp.Statement { return interp.OkExitStatement{} },
	WordDrop:       func() interp.Statement { return interp.DropStatement{} },
	WordSwap:       func() interp.Statement { return interp.SwapStatement{} },
	WordDup:        func() interp.Statement { return interp.DupStatement{} },
	WordOver:       func() interp.Statement { return interp.OverStatement{} },
	WordRot:        func() interp.Statement { return interp.RotStatement{} },
	WordClear:      func() interp.Statement { return interp.ClearStatement{} },
	WordReadln:     func() interp.Statement { return interp.ReadlnStatement{} },
}

// Parser walks a token slice and produces statements.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New creates a parser over the given tokens.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses and type-checks a whole program (batch mode). The
// program is well-typed only if it leaves the stack empty.
func (p *Parser) Parse() ([]interp.Statement, error) {
	statements, err := p.parseUntil(lexer.EOF)
	if err != nil {
		return nil, err
	}
	if err := interp.Check(statements); err != nil {
		return nil, err
	}
	return statements, nil
}

// ParseInteractive parses one line against a persistent checker state.
// Surplus stack slots survive across lines so the shell can keep values
// around.
func (p *Parser) ParseInteractive(ts *types.TypeStack) ([]interp.Statement, error) {
	statements, err := p.parseUntil(lexer.EOF)
	if err != nil {
		return nil, err
	}
	if err := interp.CheckAll(ts, statements); err != nil {
		return nil, err
	}
	return statements, nil
}

func (p *Parser) peek() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) next() lexer.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// parseUntil parses statements until the given token type shows up. The
// terminator is not consumed. Hitting EOF while looking for a closing
// brace is an error.
func (p *Parser) parseUntil(stop lexer.TokenType) ([]interp.Statement, error) {
	var statements []interp.Statement
	for {
		tok := p.peek()
		if tok.Type == stop {
			return statements, nil
		}
		if tok.Type == lexer.EOF {
			return nil, fmt.Errorf("hit EOF while looking for '%s'", stop)
		}
		s, err := p.parseStatement(p.next())
		if err != nil {
			return nil, err
		}
		statements = append(statements, s)
	}
}

func (p *Parser) parseStatement(tok lexer.Token) (interp.Statement, error) {
	switch tok.Type {
	case lexer.IDENT:
		return p.parseIdentOrKeyword(tok)
	case lexer.STRING:
		return p.parseStringLiteral(tok)
	case lexer.NUMBER:
		return p.parseNumberLiteral(tok)
	case lexer.PLUS:
		return &interp.ArithStatement{Op: interp.OpAdd}, nil
	case lexer.MINUS:
		return &interp.ArithStatement{Op: interp.OpSub}, nil
	case lexer.ASTERISK:
		return &interp.ArithStatement{Op: interp.OpMul}, nil
	case lexer.SLASH:
		return &interp.ArithStatement{Op: interp.OpDiv}, nil
	case lexer.POW:
		return &interp.ArithStatement{Op: interp.OpPow}, nil
	case lexer.PERCENT:
		return &interp.ArithStatement{Op: interp.OpMod}, nil
	case lexer.GREATER:
		if p.peek().Type == lexer.ASSIGN {
			p.next()
			return &interp.CompareStatement{Op: interp.OpGe}, nil
		}
		return &interp.CompareStatement{Op: interp.OpGt}, nil
	case lexer.LESS:
		if p.peek().Type == lexer.ASSIGN {
			p.next()
			return &interp.CompareStatement{Op: interp.OpLe}, nil
		}
		return &interp.CompareStatement{Op: interp.OpLt}, nil
	case lexer.ASSIGN:
		if p.peek().Type == lexer.ASSIGN {
			p.next()
			return &interp.CompareStatement{Op: interp.OpEq}, nil
		}
		return nil, fmt.Errorf("unexpected equal sign")
	default:
		return nil, fmt.Errorf("unexpected separator '%s'", tok.Type)
	}
}

func (p *Parser) parseIdentOrKeyword(tok lexer.Token) (interp.Statement, error) {
	name := tok.Literal
	switch name {
	case KwLet:
		return p.parseLet()
	case KwFun:
		return p.parseFun()
	case KwIf:
		return p.parseIf()
	case KwElse:
		return nil, fmt.Errorf("unexpected 'else' without a preceding if body")
	case KwTrue:
		return &interp.PushStatement{Val: &interp.BoolValue{Value: true}}, nil
	case KwFalse:
		return &interp.PushStatement{Val: &interp.BoolValue{Value: false}}, nil
	}
	if name == "!" && p.peek().Type == lexer.ASSIGN {
		p.next()
		return &interp.CompareStatement{Op: interp.OpNe}, nil
	}
	if mk, ok := builtinWords[name]; ok {
		return mk(), nil
	}
	// IDENT ( ) is a call, a bare IDENT pushes from the table.
	if p.peek().Type == lexer.LPAREN {
		p.next()
		if closing := p.next(); closing.Type != lexer.RPAREN {
			return nil, fmt.Errorf("expected ')' after '%s(', got '%s'", name, closing.Type)
		}
		return &interp.CallStatement{Name: name}, nil
	}
	return &interp.PushVarStatement{Name: name}, nil
}

// parseBindingName reads the identifier a let or fun statement binds,
// rejecting keywords and built-in words.
func (p *Parser) parseBindingName(what string) (string, error) {
	tok := p.next()
	if tok.Type != lexer.IDENT {
		return "", fmt.Errorf("expected %s name, got '%s'", what, tok.Type)
	}
	if keywords[tok.Literal] {
		return "", fmt.Errorf("cannot bind keyword '%s'", tok.Literal)
	}
	if _, ok := builtinWords[tok.Literal]; ok {
		return "", fmt.Errorf("cannot bind built-in word '%s'", tok.Literal)
	}
	return tok.Literal, nil
}

// parseLet handles: let IDENT : TYPE [= LITERAL]
func (p *Parser) parseLet() (interp.Statement, error) {
	name, err := p.parseBindingName("variable")
	if err != nil {
		return nil, err
	}
	if tok := p.next(); tok.Type != lexer.COLON {
		return nil, fmt.Errorf("expected ':' after variable name '%s', got '%s'", name, tok.Type)
	}
	typeTok := p.next()
	if typeTok.Type != lexer.IDENT {
		return nil, fmt.Errorf("expected type name after ':', got '%s'", typeTok.Type)
	}
	declType, err := types.ParseName(typeTok.Literal)
	if err != nil {
		return nil, err
	}

	stmt := &interp.LetStatement{Name: name, DeclType: declType}
	if p.peek().Type != lexer.ASSIGN {
		return stmt, nil
	}
	p.next()
	def, err := p.parseDefaultLiteral(declType)
	if err != nil {
		return nil, err
	}
	stmt.Default = def
	return stmt, nil
}

// parseDefaultLiteral reads the literal after '=' in a let statement
// and coerces it to the declared type.
func (p *Parser) parseDefaultLiteral(declType types.Type) (interp.Value, error) {
	tok := p.next()
	switch tok.Type {
	case lexer.STRING:
		if declType != types.String {
			return nil, fmt.Errorf("cannot use string literal as default for %s variable", declType)
		}
		return &interp.StringValue{Value: tok.Literal}, nil
	case lexer.NUMBER:
		return numberAs(tok, declType)
	case lexer.IDENT:
		switch tok.Literal {
		case KwTrue, KwFalse:
			if declType != types.Bool {
				return nil, fmt.Errorf("cannot use bool literal as default for %s variable", declType)
			}
			return &interp.BoolValue{Value: tok.Literal == KwTrue}, nil
		}
	}
	return nil, fmt.Errorf("expected literal after '=', got '%s'", tok.Literal)
}

// parseFun handles the three signature shapes:
//
//	fun f { ... }
//	fun f -> T { ... }
//	fun f : T, T -> T { ... }
func (p *Parser) parseFun() (interp.Statement, error) {
	name, err := p.parseBindingName("function")
	if err != nil {
		return nil, err
	}

	var args types.StackPattern
	if p.peek().Type == lexer.COLON {
		p.next()
		for {
			typeTok := p.next()
			if typeTok.Type != lexer.IDENT {
				return nil, fmt.Errorf("expected argument type in signature of '%s', got '%s'",
					name, typeTok.Type)
			}
			t, err := types.ParseNameAny(typeTok.Literal)
			if err != nil {
				return nil, err
			}
			args = append(args, t)
			if p.peek().Type != lexer.COMMA {
				break
			}
			p.next()
		}
	}

	ret := types.None
	if p.peek().Type == lexer.MINUS {
		p.next()
		if tok := p.next(); tok.Type != lexer.GREATER {
			return nil, fmt.Errorf("expected '->' in signature of '%s', got '-%s'", name, tok.Type)
		}
		typeTok := p.next()
		if typeTok.Type != lexer.IDENT {
			return nil, fmt.Errorf("expected return type in signature of '%s', got '%s'",
				name, typeTok.Type)
		}
		ret, err = types.ParseName(typeTok.Literal)
		if err != nil {
			return nil, err
		}
	}

	if tok := p.next(); tok.Type != lexer.LBRACE {
		return nil, fmt.Errorf("expected '{' to open body of '%s', got '%s'", name, tok.Type)
	}
	body, err := p.parseUntil(lexer.RBRACE)
	if err != nil {
		return nil, err
	}
	p.next() // closing brace

	return &interp.FunDefStatement{Name: name, Args: args, Return: ret, Body: body}, nil
}

// parseIf handles if { ... } and if { ... } else { ... }.
func (p *Parser) parseIf() (interp.Statement, error) {
	if tok := p.next(); tok.Type != lexer.LBRACE {
		return nil, fmt.Errorf("expected '{' after if, got '%s'", tok.Type)
	}
	body, err := p.parseUntil(lexer.RBRACE)
	if err != nil {
		return nil, err
	}
	p.next() // closing brace

	if tok := p.peek(); tok.Type != lexer.IDENT || tok.Literal != KwElse {
		return &interp.IfStatement{Body: body}, nil
	}
	p.next() // else
	if tok := p.next(); tok.Type != lexer.LBRACE {
		return nil, fmt.Errorf("expected '{' after else, got '%s'", tok.Type)
	}
	elseBody, err := p.parseUntil(lexer.RBRACE)
	if err != nil {
		return nil, err
	}
	p.next() // closing brace

	return &interp.IfElseStatement{Then: body, Else: elseBody}, nil
}

func (p *Parser) parseStringLiteral(tok lexer.Token) (interp.Statement, error) {
	target, err := p.maybeAtCoercion()
	if err != nil {
		return nil, err
	}
	if target != types.None && target != types.String {
		return nil, fmt.Errorf("cannot convert string literal to %s", target)
	}
	return &interp.PushStatement{Val: &interp.StringValue{Value: tok.Literal}}, nil
}

func (p *Parser) parseNumberLiteral(tok lexer.Token) (interp.Statement, error) {
	target, err := p.maybeAtCoercion()
	if err != nil {
		return nil, err
	}
	if target == types.None {
		if tok.IsDecimal {
			target = types.Float
		} else {
			target = types.Int
		}
	}
	val, err := numberAs(tok, target)
	if err != nil {
		return nil, err
	}
	return &interp.PushStatement{Val: val}, nil
}

// numberAs coerces a number token into a value of the target type.
func numberAs(tok lexer.Token, target types.Type) (interp.Value, error) {
	switch target {
	case types.Int:
		return &interp.IntValue{Value: int64(tok.Value)}, nil
	case types.Float:
		return &interp.FloatValue{Value: tok.Value}, nil
	case types.String:
		if tok.IsDecimal {
			return &interp.StringValue{Value: strconv.FormatFloat(tok.Value, 'g', -1, 64)}, nil
		}
		return &interp.StringValue{Value: strconv.FormatInt(int64(tok.Value), 10)}, nil
	}
	return nil, fmt.Errorf("cannot convert number literal to %s", target)
}

// maybeAtCoercion returns the target type of an @ conversion, None when
// the next token is not an @ separator at all.
func (p *Parser) maybeAtCoercion() (types.Type, error) {
	if p.peek().Type != lexer.AT {
		return types.None, nil
	}
	p.next()
	tok := p.next()
	if tok.Type == lexer.EOF {
		return types.None, fmt.Errorf("missing target type for @ conversion")
	}
	if tok.Type != lexer.IDENT {
		return types.None, fmt.Errorf("unexpected token '%s'; @ conversion expects target type", tok.Type)
	}
	t, err := types.ParseName(tok.Literal)
	if err != nil {
		return types.None, fmt.Errorf(
			"unexpected token '%s' that is not a type; @ conversion expects target type", tok.Literal)
	}
	return t, nil
}
