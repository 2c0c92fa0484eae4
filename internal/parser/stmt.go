package parser

import (
	"github.com/tristanpoland/DivinePL/internal/ast"
	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/token"
)

func (p *Parser) parseBlock() (*ast.Block, bool) {
	lbrace, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{'")
	if !ok {
		return nil, false
	}
	block := &ast.Block{Sp: lbrace.Span}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		p.skipSemis()
		if p.at(token.RBrace) || p.at(token.EOF) {
			break
		}
		s, ok := p.parseStmt()
		if !ok {
			p.resyncStmt()
			continue
		}
		block.Stmts = append(block.Stmts, s)
	}
	rbrace, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "block is missing its closing '}'")
	if ok {
		block.Sp = lbrace.Span.Cover(rbrace.Span)
	} else {
		block.Sp = lbrace.Span.Cover(p.lastSpan)
	}
	return block, true
}

func (p *Parser) parseStmt() (ast.Stmt, bool) {
	switch p.lx.Peek().Kind {
	case token.KwLet, token.KwCovenant:
		return p.parseLet()
	case token.KwBless, token.KwMiracle, token.KwFunction:
		return p.parseFnStmt()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwConfess:
		return p.parseConfess()
	case token.KwRevelation:
		return p.parseRevelation()
	case token.LBrace:
		return p.parseBlock()
	case token.Annotation:
		prophecy := p.parseAnnotation()
		if p.atAny(token.KwBless, token.KwMiracle, token.KwFunction) {
			fn, ok := p.parseFnStmt()
			if ok {
				fn.Prophecy = prophecy
			}
			return fn, ok
		}
		if p.atAny(token.KwLet, token.KwCovenant) {
			d, ok := p.parseLet()
			if ok {
				d.Prophecy = prophecy
			}
			return d, ok
		}
		p.report(diag.SynStrayAnnotation, prophecy.Sp, "annotation must precede a declaration")
		return nil, false
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseFnStmt() (*ast.FnDecl, bool) {
	marker := p.advance()
	kind := fnKindOf(marker)
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a name after "+marker.Text)
	if !ok {
		return nil, false
	}
	return p.parseFnRest(marker.Span, kind, name)
}

func (p *Parser) parseIf() (ast.Stmt, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after if"); !ok {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "if condition is missing ')'"); !ok {
		return nil, false
	}
	then, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	stmt := &ast.IfStmt{Cond: cond, Then: then, Sp: kw.Span.Cover(then.Sp)}
	if _, ok := p.eat(token.KwElse); ok {
		if p.at(token.KwIf) {
			alt, ok := p.parseIf()
			if !ok {
				return nil, false
			}
			stmt.Else = alt
		} else {
			alt, ok := p.parseBlock()
			if !ok {
				return nil, false
			}
			stmt.Else = alt
		}
		stmt.Sp = kw.Span.Cover(stmt.Else.Span())
	}
	return stmt, true
}

func (p *Parser) parseWhile() (ast.Stmt, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after while"); !ok {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "while condition is missing ')'"); !ok {
		return nil, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	return &ast.WhileStmt{Cond: cond, Body: body, Sp: kw.Span.Cover(body.Sp)}, true
}

// parseFor parses for (init; cond; post) { ... }; each clause may be
// empty.
func (p *Parser) parseFor() (ast.Stmt, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after for"); !ok {
		return nil, false
	}
	stmt := &ast.ForStmt{Sp: kw.Span}

	if !p.at(token.Semicolon) {
		if p.atAny(token.KwLet, token.KwCovenant) {
			init, ok := p.parseLet()
			if !ok {
				return nil, false
			}
			stmt.Init = init
		} else {
			x, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			stmt.Init = &ast.ExprStmt{X: x, Sp: x.Span()}
			p.skipSemis()
		}
	} else {
		p.advance()
	}

	if !p.at(token.Semicolon) {
		cond, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		stmt.Cond = cond
	}
	if _, ok := p.expect(token.Semicolon, diag.SynUnexpectedToken, "expected ';' in for header"); !ok {
		return nil, false
	}

	if !p.at(token.RParen) {
		post, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		stmt.Post = post
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "for header is missing ')'"); !ok {
		return nil, false
	}

	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	stmt.Body = body
	stmt.Sp = kw.Span.Cover(body.Sp)
	return stmt, true
}

func (p *Parser) parseReturn() (ast.Stmt, bool) {
	kw := p.advance()
	stmt := &ast.ReturnStmt{Sp: kw.Span}
	if !p.atAny(token.Semicolon, token.RBrace, token.EOF) {
		val, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		stmt.Value = val
		stmt.Sp = kw.Span.Cover(val.Span())
	}
	p.skipSemis()
	return stmt, true
}

// parseConfess disambiguates the two confess forms with one extra
// glance: a '{' next means a guarded block, anything else is a throw.
func (p *Parser) parseConfess() (ast.Stmt, bool) {
	kw := p.advance()

	if p.at(token.LBrace) {
		body, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.KwForgive, diag.SynExpectHandler, "confess block requires a forgive handler"); !ok {
			return nil, false
		}
		if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after forgive"); !ok {
			return nil, false
		}
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "forgive binds exactly one name")
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "forgive clause is missing ')'"); !ok {
			return nil, false
		}
		handler, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		return &ast.GuardStmt{
			Body:        body,
			HandlerName: name.Text,
			HandlerSpan: name.Span,
			Handler:     handler,
			Sp:          kw.Span.Cover(handler.Sp),
		}, true
	}

	val, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	stmt := &ast.ThrowStmt{Value: val, Sp: kw.Span.Cover(val.Span())}
	if n, ok := val.(*ast.NewExpr); ok {
		stmt.TypeName = n.TypeName
	} else {
		p.warn(diag.SynThrowOperand, val.Span(),
			"confessed value is not a new expression; it will be wrapped in a plain Sin")
	}
	p.skipSemis()
	return stmt, true
}

func (p *Parser) parseRevelation() (ast.Stmt, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after revelation"); !ok {
		return nil, false
	}
	val, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	rparen, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "revelation is missing ')'")
	if !ok {
		return nil, false
	}
	p.skipSemis()
	return &ast.LogStmt{Value: val, Sp: kw.Span.Cover(rparen.Span)}, true
}

func (p *Parser) parseExprStmt() (ast.Stmt, bool) {
	x, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	p.skipSemis()
	return &ast.ExprStmt{X: x, Sp: x.Span()}, true
}
