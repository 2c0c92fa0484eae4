// Package parser builds the DivinePL syntax tree from the token
// stream. Recursive descent, one token of lookahead everywhere except
// the guarded-block/throw split after confess. Malformed input is
// reported and skipped to the next statement boundary so one pass
// checks the whole file.
package parser

import (
	"slices"

	"github.com/tristanpoland/DivinePL/internal/ast"
	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/lexer"
	"github.com/tristanpoland/DivinePL/internal/source"
	"github.com/tristanpoland/DivinePL/internal/token"
)

// Options configures a parser run.
type Options struct {
	Reporter  diag.Reporter
	MaxErrors uint

	currentErrors uint
}

func (o *Options) enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.currentErrors >= o.MaxErrors
}

// Parser holds the state for a single file.
type Parser struct {
	lx       *lexer.Lexer
	file     source.FileID
	opts     Options
	lastSpan source.Span // span of the last consumed token
}

// ParseFile parses one scripture file into a Program. Diagnostics go
// to the options reporter; the returned tree is always non-nil.
func ParseFile(file *source.File, lx *lexer.Lexer, opts Options) *ast.Program {
	p := Parser{
		lx:       lx,
		file:     file.ID,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}
	return p.parseProgram()
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) advance() token.Token {
	t := p.lx.Next()
	p.lastSpan = t.Span
	return t
}

// eat consumes the next token if it has the given kind.
func (p *Parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect consumes a token of kind k or reports and returns false.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.report(code, p.lx.Peek().Span, msg)
	return token.Token{}, false
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	if p.opts.enough() {
		return
	}
	p.opts.currentErrors++
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

// warn reports a non-blocking diagnostic. Warnings never count
// toward MaxErrors.
func (p *Parser) warn(code diag.Code, sp source.Span, msg string) {
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevWarning, sp, msg, nil)
	}
}

// skipSemis consumes any run of semicolons.
func (p *Parser) skipSemis() {
	for p.at(token.Semicolon) {
		p.advance()
	}
}

// resync skips tokens until one of the stop kinds or EOF, balancing
// nothing: it is a coarse statement-level recovery.
func (p *Parser) resync(stop ...token.Kind) {
	for !p.at(token.EOF) && !p.atAny(stop...) {
		p.advance()
	}
}

// resyncStmt recovers to the next plausible statement start.
func (p *Parser) resyncStmt() {
	p.resync(
		token.Semicolon, token.RBrace,
		token.KwBless, token.KwMiracle, token.KwFunction,
		token.KwLet, token.KwCovenant, token.KwImport,
		token.KwConfess, token.KwRevelation,
		token.KwIf, token.KwWhile, token.KwFor, token.KwReturn,
	)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

func (p *Parser) parseProgram() *ast.Program {
	startSpan := p.lx.Peek().Span
	prog := &ast.Program{File: p.file, Sp: startSpan}

	for !p.at(token.EOF) {
		item, ok := p.parseTopLevel()
		if !ok {
			p.resyncStmt()
			continue
		}
		if item != nil {
			prog.Items = append(prog.Items, item)
		}
	}
	prog.Sp = startSpan.Cover(p.lastSpan)
	return prog
}

// parseTopLevel parses one top-level item: an import, a declaration,
// or a plain statement.
func (p *Parser) parseTopLevel() (ast.Node, bool) {
	p.skipSemis()
	if p.at(token.EOF) {
		return nil, true
	}

	var prophecy *ast.Annotation
	if p.at(token.Annotation) {
		prophecy = p.parseAnnotation()
		if !p.atAny(token.KwBless, token.KwMiracle, token.KwFunction, token.KwLet, token.KwCovenant) {
			p.report(diag.SynStrayAnnotation, prophecy.Sp, "annotation must precede a declaration")
			return nil, true
		}
	}

	switch p.lx.Peek().Kind {
	case token.KwImport:
		return p.parseImport()
	case token.KwLet, token.KwCovenant:
		d, ok := p.parseLet()
		if ok {
			d.Prophecy = prophecy
		}
		return d, ok
	case token.KwBless, token.KwMiracle, token.KwFunction:
		return p.parseFnOrContainer(prophecy)
	case token.Invalid:
		bad := p.advance()
		p.report(diag.SynUnexpectedToken, bad.Span, "cannot make sense of this token")
		return nil, true
	default:
		s, ok := p.parseStmt()
		if !ok {
			return nil, false
		}
		return s, true
	}
}

func (p *Parser) parseAnnotation() *ast.Annotation {
	tok := p.advance()
	name, note := lexer.SplitAnnotation(tok.Text)
	return &ast.Annotation{Name: name, Note: note, Sp: tok.Span}
}

// parseImport parses `import verse "topic"`.
func (p *Parser) parseImport() (ast.Node, bool) {
	kw := p.advance() // import
	if _, ok := p.expect(token.KwVerse, diag.SynUnexpectedToken, "expected 'verse' after import"); !ok {
		return nil, false
	}
	str, ok := p.expect(token.StringLit, diag.SynExpectVerseString, "import verse takes exactly one string topic")
	if !ok {
		return nil, false
	}
	p.skipSemis()
	return &ast.ImportDecl{
		Topic:     lexer.Unescape(str.Text, true),
		TopicSpan: str.Span,
		Sp:        kw.Span.Cover(str.Span),
	}, true
}

// parseLet parses `let name = init` or `covenant name = init`.
func (p *Parser) parseLet() (*ast.LetDecl, bool) {
	kw := p.advance()
	mutable := kw.Kind == token.KwLet

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a name after "+kw.Text)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in binding"); !ok {
		return nil, false
	}
	init, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	p.skipSemis()
	return &ast.LetDecl{
		Name:     name.Text,
		NameSpan: name.Span,
		Init:     init,
		Mutable:  mutable,
		Sp:       kw.Span.Cover(init.Span()),
	}, true
}
