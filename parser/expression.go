package parser

import (
	"github.com/pontaoski/remygo/ast"
	"github.com/pontaoski/remygo/types"
)

type operator struct {
	kind types.TokenKind
	op   ast.BinaryOperator
}

var (
	sumOperators = []operator{
		{types.PLUS, ast.Add},
		{types.MINUS, ast.Subtract},
	}
	productOperators = []operator{
		{types.STAR, ast.Multiply},
		{types.SLASH, ast.Divide},
	}
)

func (p *Parser) parseExpression() (ast.Expression, bool) {
	defer p.enter("expression")()

	return p.fold(sumOperators, p.parseProduct)
}

func (p *Parser) parseProduct() (ast.Expression, bool) {
	return p.fold(productOperators, p.parseAtom)
}

// fold parses `operand (op operand)*` and nests to the left, so a - b - c is
// (a - b) - c.
func (p *Parser) fold(ops []operator, operand func() (ast.Expression, bool)) (ast.Expression, bool) {
	lhs, ok := operand()
	if !ok {
		return nil, false
	}

	for {
		save := p.pos
		op, ok := p.operator(ops)
		if !ok {
			return lhs, true
		}
		rhs, ok := operand()
		if !ok {
			p.pos = save
			return lhs, true
		}
		lhs = ast.BinaryOp{Op: op, LHS: lhs, RHS: rhs}
	}
}

func (p *Parser) operator(ops []operator) (ast.BinaryOperator, bool) {
	kinds := make([]types.TokenKind, len(ops))
	for i, o := range ops {
		kinds[i] = o.kind
	}

	tok, ok := p.expect(kinds...)
	if !ok {
		return 0, false
	}
	for _, o := range ops {
		if o.kind == tok.Kind {
			return o.op, true
		}
	}
	return 0, false
}

// parseAtom tries, in order: literal, local binding, match, call, identifier.
func (p *Parser) parseAtom() (ast.Expression, bool) {
	defer p.enter("atom")()

	if lit, ok := attempt(p, p.parseLiteral); ok {
		return ast.Lit{Literal: lit}, true
	}
	if decl, ok := attempt(p, p.parseDeclaration); ok {
		return decl, true
	}
	if m, ok := attempt(p, p.parseMatch); ok {
		return m, true
	}
	if call, ok := attempt(p, p.parseCall); ok {
		return call, true
	}
	if name, ok := p.parseIdent(); ok {
		return ast.Var(name), true
	}
	return nil, false
}

func (p *Parser) parseDeclaration() (ast.Expression, bool) {
	defer p.enter("local binding")()

	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(types.DOUBLECOLON); !ok {
		return nil, false
	}
	value, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	return ast.Declaration{To: name, Value: value}, true
}

func (p *Parser) parseMatch() (ast.Expression, bool) {
	defer p.enter("match")()

	if _, ok := p.expect(types.MATCH); !ok {
		return nil, false
	}
	target, ok := p.parseExpression()
	if !ok {
		return nil, false
	}

	first, ok := p.parseCondition()
	if !ok {
		return nil, false
	}
	m := ast.Match{Target: target, Conditions: []ast.Condition{first}}
	for {
		cond, ok := attempt(p, p.parseCondition)
		if !ok {
			return m, true
		}
		m.Conditions = append(m.Conditions, cond)
	}
}

func (p *Parser) parseCondition() (ast.Condition, bool) {
	defer p.enter("match arm")()

	if _, ok := p.expect(types.BAR); !ok {
		return ast.Condition{}, false
	}
	pattern, ok := p.parseLiteral()
	if !ok {
		return ast.Condition{}, false
	}
	if _, ok := p.expect(types.FATARROW); !ok {
		return ast.Condition{}, false
	}
	body, ok := p.parseExpression()
	if !ok {
		return ast.Condition{}, false
	}
	return ast.Condition{Pattern: pattern, Body: body}, true
}

func (p *Parser) parseCall() (ast.Expression, bool) {
	defer p.enter("function call")()

	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	args, ok := delimited(p, types.LPAREN, types.RPAREN, p.parseExpression)
	if !ok {
		return nil, false
	}
	return ast.Call{Function: ast.Var(name), Arguments: args}, true
}
