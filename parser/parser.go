package parser

import (
	"slices"
	"strconv"

	"github.com/pontaoski/remygo/ast"
	"github.com/pontaoski/remygo/errors"
	"github.com/pontaoski/remygo/lexer"
	"github.com/pontaoski/remygo/types"
)

// Parser walks a fully lexed token slice. Alternatives are tried in order and
// a failed alternative rewinds the cursor, so every production may look
// arbitrarily far ahead. Only the mismatches recorded at the furthest cursor
// position are kept; they become the ParseFailed error.
type Parser struct {
	tokens []types.Token
	pos    int
	rules  []string

	furthest int
	failures []errors.Mismatch
}

// Parse lexes and parses src. A lexing failure is returned as is and the
// parser never runs.
func Parse(filename, src string) (ast.File, error) {
	tokens, err := lexer.Lex(filename, src)
	if err != nil {
		return ast.File{}, err
	}
	return ParseTokens(tokens)
}

func ParseTokens(tokens []types.Token) (ast.File, error) {
	return NewParser(tokens).Parse()
}

// NewParser makes sure the token slice ends in EOF.
func NewParser(tokens []types.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != types.EOF {
		var at types.Position
		if len(tokens) > 0 {
			at = tokens[len(tokens)-1].Location.To
		} else {
			at = types.Position{Line: 1, Column: 1}
		}
		tokens = append(tokens[:len(tokens):len(tokens)], types.Token{
			Kind:     types.EOF,
			Location: types.SingleCharSpan(at),
		})
	}
	return &Parser{tokens: tokens}
}

func (p *Parser) Parse() (ast.File, error) {
	file, ok := p.parseFile()
	if !ok {
		return ast.File{}, errors.ParseFailed{Mismatches: p.failures}
	}
	return file, nil
}

func (p *Parser) peek() types.Token {
	return p.tokens[p.pos]
}

func (p *Parser) advance() types.Token {
	tok := p.tokens[p.pos]
	if tok.Kind != types.EOF {
		p.pos++
	}
	return tok
}

// enter pushes rule as the production being parsed; call the result to pop it.
func (p *Parser) enter(rule string) func() {
	p.rules = append(p.rules, rule)
	return func() { p.rules = p.rules[:len(p.rules)-1] }
}

func (p *Parser) fail(kinds ...types.TokenKind) {
	if p.pos < p.furthest {
		return
	}
	if p.pos > p.furthest {
		p.furthest = p.pos
		p.failures = nil
	}

	rule := "file"
	if len(p.rules) > 0 {
		rule = p.rules[len(p.rules)-1]
	}
	for _, f := range p.failures {
		if f.Rule == rule && slices.Equal(f.Expected, kinds) {
			return
		}
	}
	p.failures = append(p.failures, errors.Mismatch{
		Expected: kinds,
		Got:      p.peek(),
		Rule:     rule,
	})
}

func (p *Parser) expect(kinds ...types.TokenKind) (types.Token, bool) {
	tok := p.peek()
	for _, kind := range kinds {
		if tok.Kind == kind {
			return p.advance(), true
		}
	}

	p.fail(kinds...)
	return tok, false
}

func (p *Parser) accept(kind types.TokenKind) bool {
	_, ok := p.expect(kind)
	return ok
}

// attempt runs f and rewinds the cursor if it fails.
func attempt[T any](p *Parser, f func() (T, bool)) (T, bool) {
	save := p.pos
	v, ok := f()
	if !ok {
		p.pos = save
	}
	return v, ok
}

// separated parses `item (sep item)*`. A separator not followed by an item is
// left unconsumed.
func separated[T any](p *Parser, sep types.TokenKind, item func() (T, bool)) ([]T, bool) {
	first, ok := item()
	if !ok {
		return nil, false
	}

	items := []T{first}
	for {
		save := p.pos
		if !p.accept(sep) {
			return items, true
		}
		next, ok := item()
		if !ok {
			p.pos = save
			return items, true
		}
		items = append(items, next)
	}
}

// delimited parses `open (item ("," item)*)? close`.
func delimited[T any](p *Parser, open, close types.TokenKind, item func() (T, bool)) ([]T, bool) {
	if _, ok := p.expect(open); !ok {
		return nil, false
	}
	items, _ := attempt(p, func() ([]T, bool) {
		return separated(p, types.COMMA, item)
	})
	if _, ok := p.expect(close); !ok {
		return nil, false
	}
	return items, true
}

func (p *Parser) parseFile() (ast.File, bool) {
	var file ast.File
	for {
		def, ok := attempt(p, p.parseTopLevel)
		if !ok {
			break
		}
		file.Definitions = append(file.Definitions, def)
	}

	if _, ok := p.expect(types.EOF); !ok {
		return ast.File{}, false
	}
	return file, true
}

func (p *Parser) parseTopLevel() (ast.TopLevel, bool) {
	defer p.enter("top level definition")()

	switch p.peek().Kind {
	case types.EXTERN:
		return p.parseExtern()
	case types.IDENT:
		return p.parseBinding()
	}

	p.fail(types.EXTERN, types.IDENT)
	return nil, false
}

func (p *Parser) parseExtern() (ast.TopLevel, bool) {
	defer p.enter("extern declaration")()

	if _, ok := p.expect(types.EXTERN); !ok {
		return nil, false
	}
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(types.DOUBLECOLON); !ok {
		return nil, false
	}
	kind, ok := p.parseTypeName()
	if !ok {
		return nil, false
	}

	return ast.Extern{Name: name, RHS: kind}, true
}

func (p *Parser) parseBinding() (ast.TopLevel, bool) {
	defer p.enter("binding")()

	lhs, ok := p.parseBindingLeftHand()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(types.DOUBLECOLON); !ok {
		return nil, false
	}
	rhs, ok := p.parseLiteral()
	if !ok {
		return nil, false
	}

	return ast.Binding{LHS: lhs, RHS: rhs}, true
}

func (p *Parser) parseBindingLeftHand() (ast.BindingLeftHand, bool) {
	name, ok := p.parseIdent()
	if !ok {
		return ast.BindingLeftHand{}, false
	}

	lhs := ast.BindingLeftHand{Name: name}
	lhs.TypeArgs, _ = attempt(p, p.parseTypeArgs)
	return lhs, true
}

func (p *Parser) parseTypeArgs() ([]ast.ConstrainedType, bool) {
	defer p.enter("type parameters")()

	if _, ok := p.expect(types.LANGLE); !ok {
		return nil, false
	}
	args, ok := separated(p, types.COMMA, p.parseConstrainedType)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(types.RANGLE); !ok {
		return nil, false
	}
	return args, true
}

func (p *Parser) parseConstrainedType() (ast.ConstrainedType, bool) {
	name, ok := p.parseIdent()
	if !ok {
		return ast.ConstrainedType{}, false
	}

	ct := ast.ConstrainedType{Name: name}
	ct.Constraints, _ = attempt(p, func() ([]ast.Ident, bool) {
		if !p.accept(types.COLON) {
			return nil, false
		}
		return separated(p, types.AMPERSAND, p.parseIdent)
	})
	return ct, true
}

func (p *Parser) parseIdent() (ast.Ident, bool) {
	tok, ok := p.expect(types.IDENT)
	return ast.Ident(tok.Value), ok
}

func (p *Parser) parseLiteral() (ast.Literal, bool) {
	defer p.enter("literal")()

	tok := p.peek()
	switch tok.Kind {
	case types.STRING:
		p.advance()
		return ast.StringLiteral(lexer.Unquote(tok.Value)), true
	case types.NUMBER:
		p.advance()
		return number(tok.Value), true
	case types.IDENT:
		switch tok.Value {
		case "true":
			p.advance()
			return ast.Boolean(true), true
		case "false":
			p.advance()
			return ast.Boolean(false), true
		}
	case types.LPAREN:
		return p.parseFunction()
	}

	p.fail(types.STRING, types.NUMBER, types.IDENT, types.LPAREN)
	return nil, false
}

// number is an Integer when the text fits in an int64, a Float otherwise.
func number(text string) ast.Literal {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return ast.Integer(i)
	}
	// the lexer only produces valid decimals; out of range values are ±Inf
	f, _ := strconv.ParseFloat(text, 64)
	return ast.Float(f)
}

func (p *Parser) parseFunction() (ast.Literal, bool) {
	defer p.enter("function literal")()

	args, ok := delimited(p, types.LPAREN, types.RPAREN, p.parseAnnotatedIdent)
	if !ok {
		return nil, false
	}

	fn := ast.Function{Arguments: args, Returns: ast.Unit}
	if ret, ok := attempt(p, p.parseTypeName); ok {
		fn.Returns = ret
	}

	fn.Body, ok = p.parseBlock()
	if !ok {
		return nil, false
	}
	return fn, true
}

func (p *Parser) parseAnnotatedIdent() (ast.AnnotatedIdent, bool) {
	defer p.enter("argument")()

	name, ok := p.parseIdent()
	if !ok {
		return ast.AnnotatedIdent{}, false
	}
	if _, ok := p.expect(types.COLON); !ok {
		return ast.AnnotatedIdent{}, false
	}
	kind, ok := p.parseTypeName()
	if !ok {
		return ast.AnnotatedIdent{}, false
	}
	return ast.AnnotatedIdent{Name: name, Kind: kind}, true
}

func (p *Parser) parseBlock() ([]ast.Expression, bool) {
	defer p.enter("block")()

	if _, ok := p.expect(types.LBRACE); !ok {
		return nil, false
	}
	body, _ := attempt(p, func() ([]ast.Expression, bool) {
		return separated(p, types.SEMICOLON, p.parseExpression)
	})
	if _, ok := p.expect(types.RBRACE); !ok {
		return nil, false
	}
	return body, true
}

// parseTypeName needs no rewinding between alternatives: each starts with a
// different token. The function pointer form requires its return type.
func (p *Parser) parseTypeName() (ast.TypeName, bool) {
	defer p.enter("type name")()

	switch p.peek().Kind {
	case types.IDENT:
		return ast.Named(p.advance().Value), true
	case types.LBRACKET:
		p.advance()
		of, ok := p.parseTypeName()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(types.RBRACKET); !ok {
			return nil, false
		}
		return ast.Slice{Of: of}, true
	case types.LPAREN:
		args, ok := delimited(p, types.LPAREN, types.RPAREN, p.parseTypeName)
		if !ok {
			return nil, false
		}
		ret, ok := p.parseTypeName()
		if !ok {
			return nil, false
		}
		return ast.FunctionPointer{Arguments: args, Returns: ret}, true
	}

	p.fail(types.IDENT, types.LBRACKET, types.LPAREN)
	return nil, false
}
