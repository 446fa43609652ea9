package parser

import (
	"cqasm/internal/ast"
	"cqasm/internal/diag"
	"cqasm/internal/lexer"
	"cqasm/internal/source"
	"cqasm/internal/token"
)

// DefaultMaxErrors — по умолчанию сообщаем только о первой синтаксической ошибке.
const DefaultMaxErrors = 1

type Options struct {
	// MaxErrors ограничивает число синтаксических ошибок; 0 — без ограничения.
	// При значении больше 1 парсер восстанавливается до следующего разделителя.
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// DefaultOptions returns options reporting the first syntax error only.
func DefaultOptions(r diag.Reporter) Options {
	return Options{MaxErrors: DefaultMaxErrors, Reporter: r}
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	// Tree is nil when at least one lexical or syntax error was reported.
	Tree   *ast.Tree
	Errors uint
}

// bailout прерывает разбор текущей инструкции после синтаксической ошибки.
type bailout struct{}

// Parser — состояние парсера на один файл
type Parser struct {
	toks     []token.Token
	pos      int
	arenas   *ast.Builder
	file     *source.File
	opts     Options
	lastSpan source.Span // span последнего съеденного токена
}

// ParseFile tokenizes file and parses it into a CST allocated in arenas.
// Lexical diagnostics go to the same reporter and count towards MaxErrors.
func ParseFile(file *source.File, arenas *ast.Builder, opts Options) Result {
	p := &Parser{
		arenas: arenas,
		file:   file,
		opts:   opts,
	}
	p.toks = foldTrailingSeparators(lexer.All(file, lexer.Options{Reporter: lexReporter{p}}))
	p.lastSpan = p.toks[0].Span.ZeroAt()

	prog, ok := p.parseProgram()
	res := Result{Errors: p.opts.CurrentErrors}
	if ok && p.opts.CurrentErrors == 0 {
		res.Tree = arenas.Finish(prog)
	}
	return res
}

// foldTrailingSeparators сливает хвостовые разделители с EOF:
// конец ввода начинается сразу после последней значимой лексемы.
func foldTrailingSeparators(toks []token.Token) []token.Token {
	end := len(toks) - 1
	i := end
	for i > 0 && toks[i-1].IsSeparator() {
		i--
	}
	if i == end {
		return toks
	}
	eof := toks[end]
	eof.Span.Start = toks[i].Span.Start
	eof.Span.End = eof.Span.Start
	return append(toks[:i], eof)
}

// lexReporter пропускает диагностики лексера через лимит парсера.
type lexReporter struct{ p *Parser }

func (r lexReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.p.report(code, sev, primary, msg)
}

// parseProgram := sep* 'version' VERSION_NUMBER (sep+ statement)* sep* EOF
func (p *Parser) parseProgram() (prog ast.Program, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isBail := r.(bailout); !isBail {
				panic(r)
			}
			ok = false
		}
	}()

	if p.opts.Enough() {
		return prog, false
	}

	start := p.peek().Span
	p.skipSeparators()
	if !p.at(token.KwVersion) {
		p.unexpected(separators.with(token.KwVersion))
	}
	p.advance()
	prog.Version = p.parseVersion()

	for !p.at(token.EOF) {
		if id := p.guardStatement(); id.IsValid() {
			prog.Block = append(prog.Block, id)
		}
	}
	prog.Span = start.Cover(p.peek().Span)
	return prog, true
}

// guardStatement разбирает "sep+ statement". При ошибке либо пробрасывает bailout
// (лимит исчерпан), либо проматывает до следующего разделителя.
func (p *Parser) guardStatement() (id ast.StmtID) {
	defer func() {
		if r := recover(); r != nil {
			if _, isBail := r.(bailout); !isBail || p.opts.Enough() {
				panic(r)
			}
			p.resync()
			id = ast.NoStmtID
		}
	}()

	if !p.peek().IsSeparator() {
		p.unexpected(stmtEnd)
	}
	p.skipSeparators()
	if p.at(token.EOF) {
		return ast.NoStmtID
	}
	return p.parseStatement()
}

func (p *Parser) skipSeparators() {
	for p.peek().IsSeparator() {
		p.advance()
	}
}

// resync — прокручиваем до разделителя или EOF, не съедая его.
func (p *Parser) resync() {
	for !p.at(token.EOF) && !p.peek().IsSeparator() {
		p.advance()
	}
}
