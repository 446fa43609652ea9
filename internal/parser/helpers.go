package parser

import (
	"fmt"

	"cqasm/internal/diag"
	"cqasm/internal/source"
	"cqasm/internal/token"
)

func (p *Parser) peek() token.Token {
	return p.peekAt(0)
}

// peekAt смотрит на n токенов вперёд; за концом всегда EOF.
func (p *Parser) peekAt(n int) token.Token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// expect ожидает токен k. follow — токены, которые допустимы сразу после k:
// если текущий токен из follow, то k просто пропущен.
func (p *Parser) expect(k token.Kind, follow tokenSet) token.Token {
	return p.expectWith(k, follow, setOf(k))
}

// expectWith как expect, но в "mismatched input" перечисляет expected.
func (p *Parser) expectWith(k token.Kind, follow, expected tokenSet) token.Token {
	tok := p.peek()
	if tok.Kind == k {
		return p.advance()
	}
	switch {
	case follow.has(tok.Kind):
		p.fail(diag.SynMissingToken, tok.Span, fmt.Sprintf("missing %s at '%s'", k, tok.Display()))
	case tok.Kind != token.EOF && p.peekAt(1).Kind == k:
		p.fail(diag.SynExtraneousToken, tok.Span, fmt.Sprintf("extraneous input '%s' expecting %s", tok.Display(), expected))
	default:
		p.fail(diag.SynUnexpectedToken, tok.Span, fmt.Sprintf("mismatched input '%s' expecting %s", tok.Display(), expected))
	}
	panic("unreachable")
}

// unexpected репортит текущий токен, когда ни одна альтернатива из expected не подходит.
func (p *Parser) unexpected(expected tokenSet) {
	tok := p.peek()
	if tok.Kind != token.EOF && expected.has(p.peekAt(1).Kind) {
		p.fail(diag.SynExtraneousToken, tok.Span, fmt.Sprintf("extraneous input '%s' expecting %s", tok.Display(), expected))
	}
	p.fail(diag.SynUnexpectedToken, tok.Span, fmt.Sprintf("mismatched input '%s' expecting %s", tok.Display(), expected))
}

// fail репортит ошибку и прерывает текущую инструкцию.
func (p *Parser) fail(code diag.Code, sp source.Span, msg string) {
	p.report(code, diag.SevError, sp, msg)
	panic(bailout{})
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev == diag.SevError {
		if p.opts.Enough() {
			return false // достигли максимального количества ошибок
		}
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, sev, sp, msg, nil)
		return true
	}
	return false
}
