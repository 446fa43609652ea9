package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cqasm/internal/ast"
	"cqasm/internal/diag"
	"cqasm/internal/source"
	"cqasm/internal/token"
)

// parseVersion разбирает VERSION_NUMBER после 'version' на компоненты.
func (p *Parser) parseVersion() ast.Version {
	tok := p.expect(token.VersionNumber, stmtEnd)
	v := ast.Version{Span: tok.Span}
	offset := uint32(0)
	for _, part := range strings.Split(tok.Text, ".") {
		sp := source.Span{File: tok.Span.File, Start: tok.Span.Start + offset, End: tok.Span.Start + offset + uint32(len(part))}
		v.Items = append(v.Items, p.parseInt(part, sp))
		offset += uint32(len(part)) + 1
	}
	return v
}

// parseInt переводит десятичную запись в int64; переполнение — синтаксическая ошибка.
func (p *Parser) parseInt(text string, sp source.Span) int64 {
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		p.fail(diag.SynIntOutOfRange, sp, fmt.Sprintf("value '%s' is out of the INTEGER_LITERAL range", text))
	}
	return n
}

func (p *Parser) intLiteral(tok token.Token) ast.ExprID {
	n := p.parseInt(tok.Text, tok.Span)
	return p.arenas.Exprs.NewLiteral(ast.ExprIntLit, tok.Span, ast.ExprLiteralData{Text: tok.Text, Int: n})
}

func (p *Parser) floatLiteral(tok token.Token) ast.ExprID {
	f, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			p.fail(diag.SynFloatOutOfRange, tok.Span, fmt.Sprintf("value '%s' is out of the FLOAT_LITERAL range", tok.Text))
		}
		p.fail(diag.SynUnexpectedToken, tok.Span, fmt.Sprintf("mismatched input '%s' expecting FLOAT_LITERAL", tok.Display()))
	}
	return p.arenas.Exprs.NewLiteral(ast.ExprFloatLit, tok.Span, ast.ExprLiteralData{Text: tok.Text, Float: f})
}

func (p *Parser) boolLiteral(tok token.Token) ast.ExprID {
	return p.arenas.Exprs.NewLiteral(ast.ExprBoolLit, tok.Span, ast.ExprLiteralData{Text: tok.Text, Bool: tok.Text == "true"})
}
