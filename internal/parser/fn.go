package parser

import (
	"github.com/tristanpoland/DivinePL/internal/ast"
	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/source"
	"github.com/tristanpoland/DivinePL/internal/token"
)

func fnKindOf(marker token.Token) ast.FnKind {
	switch marker.Kind {
	case token.KwBless:
		return ast.FnBlessed
	case token.KwMiracle:
		return ast.FnMiracle
	default:
		// The secular `function` declarator parses but stays unmarked;
		// the linter rejects it.
		return ast.FnUnmarked
	}
}

// parseFnOrContainer parses a marker-prefixed declaration. The token
// after the name decides: '(' starts a function, '{' a container.
func (p *Parser) parseFnOrContainer(prophecy *ast.Annotation) (ast.Node, bool) {
	marker := p.advance()
	kind := fnKindOf(marker)

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a name after "+marker.Text)
	if !ok {
		return nil, false
	}

	switch p.lx.Peek().Kind {
	case token.LBrace:
		return p.parseContainerBody(marker, kind, name, prophecy)
	case token.LParen:
		fn, ok := p.parseFnRest(marker.Span, kind, name)
		if ok {
			fn.Prophecy = prophecy
		}
		return fn, ok
	default:
		p.report(diag.SynUnexpectedToken, p.lx.Peek().Span, "expected '(' or '{' after declaration name")
		return nil, false
	}
}

// parseFnRest parses params and body after the name.
func (p *Parser) parseFnRest(markerSpan source.Span, kind ast.FnKind, name token.Token) (*ast.FnDecl, bool) {
	params, ok := p.parseParams()
	if !ok {
		return nil, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	if markerSpan.Empty() {
		markerSpan = name.Span
	}
	return &ast.FnDecl{
		Name:       name.Text,
		NameSpan:   name.Span,
		MarkerSpan: markerSpan,
		Kind:       kind,
		Params:     params,
		Body:       body,
		Sp:         markerSpan.Cover(body.Sp),
	}, true
}

func (p *Parser) parseParams() ([]ast.Param, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('"); !ok {
		return nil, false
	}
	var params []ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		id, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
		if !ok {
			return nil, false
		}
		params = append(params, ast.Param{Name: id.Text, Sp: id.Span})
		if !p.at(token.RParen) {
			if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken, "expected ',' between parameters"); !ok {
				return nil, false
			}
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "parameter list is missing ')'"); !ok {
		return nil, false
	}
	return params, true
}

// parseContainerBody parses the braced method list of a container
// declaration. Inside the reserved Program container, a zero-argument
// genesis method becomes the entry point.
func (p *Parser) parseContainerBody(marker token.Token, kind ast.FnKind, name token.Token, prophecy *ast.Annotation) (ast.Node, bool) {
	lbrace, _ := p.eat(token.LBrace)
	cont := &ast.ContainerDecl{
		Name:     name.Text,
		NameSpan: name.Span,
		Kind:     kind,
		Prophecy: prophecy,
		Sp:       marker.Span.Cover(lbrace.Span),
	}
	isProgram := name.Text == token.IdentProgram

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		p.skipSemis()
		if p.at(token.RBrace) || p.at(token.EOF) {
			break
		}
		member, ok := p.parseMethod(isProgram)
		if !ok {
			p.resync(token.RBrace, token.KwBless, token.KwMiracle, token.Ident, token.Annotation)
			continue
		}
		cont.Members = append(cont.Members, member)
	}
	rbrace, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "container is missing its closing '}'")
	if !ok {
		return cont, true
	}
	cont.Sp = marker.Span.Cover(rbrace.Span)
	return cont, true
}

// parseMethod parses one container member:
// [annotation] [bless|miracle] name(params) { ... }.
func (p *Parser) parseMethod(isProgram bool) (ast.Decl, bool) {
	var prophecy *ast.Annotation
	if p.at(token.Annotation) {
		prophecy = p.parseAnnotation()
	}

	var marker token.Token
	hasMarker := false
	if p.atAny(token.KwBless, token.KwMiracle, token.KwFunction) {
		marker = p.advance()
		hasMarker = true
	}

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected method name")
	if !ok {
		return nil, false
	}

	kind := ast.FnUnmarked
	markerSpan := name.Span
	if hasMarker {
		kind = fnKindOf(marker)
		markerSpan = marker.Span
	}

	fn, ok := p.parseFnRest(markerSpan, kind, name)
	if !ok {
		return nil, false
	}
	fn.Prophecy = prophecy

	if isProgram && name.Text == token.IdentGenesis && len(fn.Params) == 0 {
		return &ast.EntryPointDecl{
			Body:     fn.Body,
			Prophecy: prophecy,
			Sp:       fn.Sp,
		}, true
	}
	return fn, true
}
