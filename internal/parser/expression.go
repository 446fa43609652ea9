package parser

import (
	"cqasm/internal/ast"
	"cqasm/internal/token"
)

// parseExpr — вход в разбор выражения. follow — токены, которые может
// встретить вызывающий сразу после выражения.
func (p *Parser) parseExpr(follow tokenSet) ast.ExprID {
	return p.parseTernary(follow)
}

// parseExprList := expression (',' expression)*
func (p *Parser) parseExprList(follow tokenSet) []ast.ExprID {
	inner := follow.with(token.Comma)
	list := []ast.ExprID{p.parseExpr(inner)}
	for p.at(token.Comma) {
		p.advance()
		list = append(list, p.parseExpr(inner))
	}
	return list
}

// parseTernary := binary ('?' expression ':' expression)?
func (p *Parser) parseTernary(follow tokenSet) ast.ExprID {
	cond := p.parseBinary(precLogicalOr, follow)
	if !p.at(token.Question) {
		return cond
	}
	q := p.advance()
	ifTrue := p.parseExpr(setOf(token.Colon))
	p.expect(token.Colon, exprStart)
	ifFalse := p.parseExpr(follow)
	return p.arenas.Exprs.NewTernary(q.Span, cond, ifTrue, ifFalse)
}

// parseBinary — precedence climbing; '**' правоассоциативен.
func (p *Parser) parseBinary(minPrec int, follow tokenSet) ast.ExprID {
	left := p.parseUnary(follow)
	for {
		tok := p.peek()
		entry, ok := binaryOperator(tok.Kind)
		if !ok || entry.prec < minPrec {
			return left
		}
		p.advance()
		next := entry.prec + 1
		if entry.right {
			next = entry.prec
		}
		right := p.parseBinary(next, follow)
		left = p.arenas.Exprs.NewBinary(tok.Span, entry.op, left, right)
	}
}

// parseUnary: '+' не создаёт узла, '-', '~', '!' создают.
func (p *Parser) parseUnary(follow tokenSet) ast.ExprID {
	tok := p.peek()
	if tok.Kind == token.Plus {
		p.advance()
		return p.parseUnary(follow)
	}
	if op, ok := unaryOperator(tok.Kind); ok {
		p.advance()
		operand := p.parseUnary(follow)
		return p.arenas.Exprs.NewUnary(tok.Span, op, operand)
	}
	return p.parsePrimary(follow)
}

// primary := '(' expression ')' | IDENTIFIER '(' expressionList? ')' | IDENTIFIER '[' indexList ']'
//
//	| IDENTIFIER | BOOLEAN_LITERAL | INTEGER_LITERAL | FLOAT_LITERAL
func (p *Parser) parsePrimary(follow tokenSet) ast.ExprID {
	after := follow | exprCont
	tok := p.peek()
	switch tok.Kind {
	case token.LParen:
		p.advance()
		inner := p.parseExpr(setOf(token.RParen))
		p.expect(token.RParen, after)
		return inner
	case token.IntLit:
		p.advance()
		return p.intLiteral(tok)
	case token.FloatLit:
		p.advance()
		return p.floatLiteral(tok)
	case token.BoolLit:
		p.advance()
		return p.boolLiteral(tok)
	case token.Ident:
		p.advance()
		name := ast.Ident{Name: tok.Text, Span: tok.Span}
		switch {
		case p.at(token.LParen):
			return p.parseCall(name, after)
		case p.at(token.LBracket):
			return p.parseIndex(name, after)
		}
		return p.arenas.Exprs.NewIdent(name)
	default:
		p.unexpected(exprStart)
		return ast.NoExprID
	}
}

func (p *Parser) parseCall(name ast.Ident, after tokenSet) ast.ExprID {
	p.advance() // (
	var args []ast.ExprID
	if !p.at(token.RParen) {
		args = p.parseExprList(setOf(token.RParen))
	}
	p.expect(token.RParen, after)
	return p.arenas.Exprs.NewCall(name, args)
}

// indexList := indexEntry (',' indexEntry)*, indexEntry := expression (':' expression)?
func (p *Parser) parseIndex(name ast.Ident, after tokenSet) ast.ExprID {
	p.advance() // [
	var entries []ast.IndexEntry
	for {
		start := p.peek().Span
		entry := ast.IndexEntry{
			First: p.parseExpr(setOf(token.Colon, token.Comma, token.RBracket)),
			Last:  ast.NoExprID,
		}
		if p.at(token.Colon) {
			p.advance()
			entry.Last = p.parseExpr(setOf(token.Comma, token.RBracket))
		}
		entry.Span = start.Cover(p.lastSpan)
		entries = append(entries, entry)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	expected := setOf(token.Comma, token.RBracket)
	if !entries[len(entries)-1].IsRange() {
		expected = expected.with(token.Colon)
	}
	p.expectWith(token.RBracket, after, expected)
	return p.arenas.Exprs.NewIndex(name, entries)
}
