package parser

import (
	"cqasm/internal/ast"
	"cqasm/internal/token"
)

// parseStatement разбирает инструкцию вместе с хвостовыми аннотациями.
func (p *Parser) parseStatement() ast.StmtID {
	id := p.parseBareStatement()
	if anns := p.parseAnnotations(); len(anns) > 0 {
		p.arenas.Stmts.Annotate(id, anns)
	}
	return id
}

// parseBareStatement выбирает форму инструкции по первым двум токенам:
// тип → объявление; модификатор → gate; IDENT '=' / IDENT '[' или не-идентификатор → measure; иначе gate.
func (p *Parser) parseBareStatement() ast.StmtID {
	switch tok := p.peek(); {
	case typeKeywords.has(tok.Kind):
		return p.parseDeclaration()
	case modifiers.has(tok.Kind):
		return p.parseGate()
	case tok.Kind == token.Ident:
		switch p.peekAt(1).Kind {
		case token.Assign, token.LBracket:
			return p.parseMeasure()
		}
		return p.parseGate()
	case exprStart.has(tok.Kind):
		return p.parseMeasure()
	default:
		p.unexpected(stmtStart.with(token.EOF, token.Newline, token.Semicolon))
		return ast.NoStmtID
	}
}

// declaration := type ('[' INTEGER_LITERAL ']')? IDENTIFIER
// type := 'qubit' | 'bit' | 'bool' | 'int' | 'float' | 'axis'; axis не бывает массивом.
func (p *Parser) parseDeclaration() ast.StmtID {
	kw := p.advance()
	typ := ast.TypeSpec{
		Keyword: identOf(kw),
		Size:    ast.NoExprID,
		Span:    kw.Span,
	}
	switch {
	case p.at(token.LBracket) && kw.Kind != token.KwAxis:
		p.advance()
		size := p.expect(token.IntLit, setOf(token.RBracket))
		typ.Size = p.intLiteral(size)
		rb := p.expect(token.RBracket, setOf(token.Ident))
		typ.Span = typ.Span.Cover(rb.Span)
	case kw.Kind == token.KwAxis:
		if !p.at(token.Ident) {
			p.unexpected(setOf(token.Ident))
		}
	case !p.at(token.Ident):
		p.unexpected(setOf(token.LBracket, token.Ident))
	}
	name := p.expect(token.Ident, stmtFollow)
	return p.arenas.Stmts.NewVariable(identOf(name), typ)
}

// measure := expression '=' 'measure' expression
func (p *Parser) parseMeasure() ast.StmtID {
	lhs := p.parseExpr(setOf(token.Assign))
	p.expect(token.Assign, setOf(token.KwMeasure))
	kw := p.expect(token.KwMeasure, exprStart)
	rhs := p.parseExpr(stmtFollow)
	return p.arenas.Stmts.NewMeasure(identOf(kw), lhs, rhs)
}

// gate := modifier* IDENTIFIER ('(' expression ')')? expressionList?
// modifier := 'inv' '.' | 'pow' '(' expression ')' '.' | 'ctrl' '.'
func (p *Parser) parseGate() ast.StmtID {
	var mods []ast.GateModifier
	for modifiers.has(p.peek().Kind) {
		kw := p.advance()
		mod := ast.GateModifier{Name: identOf(kw), Param: ast.NoExprID}
		if kw.Kind == token.KwPow {
			p.expect(token.LParen, exprStart)
			mod.Param = p.parseExpr(setOf(token.RParen))
			p.expect(token.RParen, setOf(token.Dot))
		}
		p.expect(token.Dot, gateStart)
		mods = append(mods, mod)
	}
	name := p.expectWith(token.Ident, 0, gateStart)

	param := ast.NoExprID
	if p.at(token.LParen) {
		p.advance()
		param = p.parseExpr(setOf(token.RParen))
		p.expect(token.RParen, exprStart|stmtFollow)
	}
	var operands []ast.ExprID
	switch tok := p.peek(); {
	case exprStart.has(tok.Kind):
		operands = p.parseExprList(stmtFollow)
	case !stmtFollow.has(tok.Kind):
		p.unexpected(exprStart | stmtEnd)
	}
	return p.arenas.Stmts.NewModifiedGate(mods, identOf(name), param, operands)
}

// annotations := ('@' IDENTIFIER '.' IDENTIFIER ('(' expressionList? ')')?)*
func (p *Parser) parseAnnotations() []ast.Annotation {
	var out []ast.Annotation
	for p.at(token.At) {
		at := p.advance()
		iface := p.expect(token.Ident, setOf(token.Dot))
		p.expect(token.Dot, setOf(token.Ident))
		op := p.expectWith(token.Ident, 0, setOf(token.Ident))
		ann := ast.Annotation{Interface: identOf(iface), Operation: identOf(op)}
		if p.at(token.LParen) {
			p.advance()
			if !p.at(token.RParen) {
				ann.Operands = p.parseExprList(setOf(token.RParen))
			}
			p.expect(token.RParen, stmtFollow)
		}
		ann.Span = at.Span.Cover(p.lastSpan)
		out = append(out, ann)
	}
	return out
}

func identOf(tok token.Token) ast.Ident {
	return ast.Ident{Name: tok.Text, Span: tok.Span}
}
