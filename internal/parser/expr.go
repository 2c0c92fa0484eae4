package parser

import (
	"strconv"

	"github.com/tristanpoland/DivinePL/internal/ast"
	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/lexer"
	"github.com/tristanpoland/DivinePL/internal/source"
	"github.com/tristanpoland/DivinePL/internal/token"
)

// Precedence climbs through a fixed cascade:
// assignment < || < && < equality < relational < additive <
// multiplicative < unary < postfix < primary.
func (p *Parser) parseExpr() (ast.Expr, bool) {
	return p.parseAssign()
}

func (p *Parser) parseAssign() (ast.Expr, bool) {
	left, ok := p.parseOr()
	if !ok {
		return nil, false
	}
	if !p.at(token.Assign) {
		return left, true
	}
	p.advance() // =
	switch left.(type) {
	case *ast.Ident, *ast.MemberExpr, *ast.IndexExpr:
	default:
		p.report(diag.SynBadAssignTarget, left.Span(), "cannot assign to this expression")
	}
	// right-associative: a = b = c
	value, ok := p.parseAssign()
	if !ok {
		return nil, false
	}
	return &ast.AssignExpr{
		Target: left,
		Value:  value,
		Sp:     left.Span().Cover(value.Span()),
	}, true
}

func (p *Parser) parseOr() (ast.Expr, bool) {
	return p.parseBinaryLevel(p.parseAnd, token.OrOr)
}

func (p *Parser) parseAnd() (ast.Expr, bool) {
	return p.parseBinaryLevel(p.parseEquality, token.AndAnd)
}

func (p *Parser) parseEquality() (ast.Expr, bool) {
	return p.parseBinaryLevel(p.parseRelational, token.EqEq, token.BangEq)
}

func (p *Parser) parseRelational() (ast.Expr, bool) {
	return p.parseBinaryLevel(p.parseAdditive, token.Lt, token.LtEq, token.Gt, token.GtEq)
}

func (p *Parser) parseAdditive() (ast.Expr, bool) {
	return p.parseBinaryLevel(p.parseMultiplicative, token.Plus, token.Minus)
}

func (p *Parser) parseMultiplicative() (ast.Expr, bool) {
	return p.parseBinaryLevel(p.parseUnary, token.Star, token.Slash, token.Percent)
}

// parseBinaryLevel parses one left-associative precedence tier.
func (p *Parser) parseBinaryLevel(next func() (ast.Expr, bool), ops ...token.Kind) (ast.Expr, bool) {
	left, ok := next()
	if !ok {
		return nil, false
	}
	for p.atAny(ops...) {
		op := p.advance()
		right, ok := next()
		if !ok {
			return nil, false
		}
		left = &ast.BinaryExpr{
			Op: ast.BinaryOp(op.Kind.String()),
			L:  left,
			R:  right,
			Sp: left.Span().Cover(right.Span()),
		}
	}
	return left, true
}

func (p *Parser) parseUnary() (ast.Expr, bool) {
	if p.atAny(token.Minus, token.Bang) {
		op := p.advance()
		x, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return &ast.UnaryExpr{
			Op: ast.UnaryOp(op.Kind.String()),
			X:  x,
			Sp: op.Span.Cover(x.Span()),
		}, true
	}
	return p.parsePostfix()
}

// parsePostfix parses call, member, and index suffixes.
func (p *Parser) parsePostfix() (ast.Expr, bool) {
	x, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	for {
		switch p.lx.Peek().Kind {
		case token.LParen:
			args, closing, ok := p.parseArgs()
			if !ok {
				return nil, false
			}
			x = &ast.CallExpr{Callee: x, Args: args, Sp: x.Span().Cover(closing)}
		case token.Dot:
			p.advance()
			name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected member name after '.'")
			if !ok {
				return nil, false
			}
			x = &ast.MemberExpr{Obj: x, Name: name.Text, Sp: x.Span().Cover(name.Span)}
		case token.LBracket:
			p.advance()
			idx, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			rb, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "index is missing ']'")
			if !ok {
				return nil, false
			}
			x = &ast.IndexExpr{Obj: x, Index: idx, Sp: x.Span().Cover(rb.Span)}
		default:
			return x, true
		}
	}
}

// parseArgs parses a parenthesized argument list and returns the
// closing paren span.
func (p *Parser) parseArgs() ([]ast.Expr, source.Span, bool) {
	lp := p.advance() // (
	var args []ast.Expr
	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg, ok := p.parseExpr()
		if !ok {
			return nil, lp.Span, false
		}
		args = append(args, arg)
		if !p.at(token.RParen) {
			if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken, "expected ',' between arguments"); !ok {
				return nil, lp.Span, false
			}
		}
	}
	rp, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "argument list is missing ')'")
	if !ok {
		return nil, lp.Span, false
	}
	return args, rp.Span, true
}

func (p *Parser) parsePrimary() (ast.Expr, bool) {
	switch p.lx.Peek().Kind {
	case token.NumberLit:
		t := p.advance()
		v, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			p.report(diag.SynUnexpectedToken, t.Span, "malformed number literal")
			v = 0
		}
		return &ast.NumberLit{Value: v, Sp: t.Span}, true
	case token.StringLit:
		t := p.advance()
		return &ast.StringLit{Value: lexer.Unescape(t.Text, true), Sp: t.Span}, true
	case token.KwTrue:
		t := p.advance()
		return &ast.BoolLit{Value: true, Sp: t.Span}, true
	case token.KwFalse:
		t := p.advance()
		return &ast.BoolLit{Value: false, Sp: t.Span}, true
	case token.KwNull:
		t := p.advance()
		return &ast.NullLit{Sp: t.Span}, true
	case token.KwUndefined:
		t := p.advance()
		return &ast.UndefinedLit{Sp: t.Span}, true
	case token.Ident:
		t := p.advance()
		return &ast.Ident{Name: t.Text, Sp: t.Span}, true
	case token.KwNew:
		return p.parseNew()
	case token.TemplateStart:
		return p.parseTemplate()
	case token.LBracket:
		return p.parseArrayLit()
	case token.LBrace:
		return p.parseObjectLit()
	case token.LParen:
		return p.parseParenOrArrow()
	default:
		p.report(diag.SynExpectExpression, p.lx.Peek().Span, "expected an expression, found "+p.lx.Peek().Kind.String())
		return nil, false
	}
}

// parseNew parses `new TypeName(args)`.
func (p *Parser) parseNew() (ast.Expr, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a type name after new")
	if !ok {
		return nil, false
	}
	if !p.at(token.LParen) {
		p.report(diag.SynUnexpectedToken, p.lx.Peek().Span, "expected '(' after constructed type")
		return nil, false
	}
	args, closing, ok := p.parseArgs()
	if !ok {
		return nil, false
	}
	return &ast.NewExpr{TypeName: name.Text, Args: args, Sp: kw.Span.Cover(closing)}, true
}

// parseTemplate assembles a backtick string from its segment tokens.
// The lexer guarantees the shape: chunks and ${expr} groups between a
// start and end marker.
func (p *Parser) parseTemplate() (ast.Expr, bool) {
	start := p.advance() // `
	tmpl := &ast.TemplateString{Sp: start.Span}
	for {
		switch p.lx.Peek().Kind {
		case token.TemplateChunk:
			t := p.advance()
			tmpl.Parts = append(tmpl.Parts, ast.TemplatePart{
				Chunk: lexer.Unescape(t.Text, false),
				Sp:    t.Span,
			})
		case token.TemplateExprStart:
			open := p.advance()
			x, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			closing, ok := p.expect(token.TemplateExprEnd, diag.SynUnclosedDelimiter, "interpolation is missing '}'")
			if !ok {
				return nil, false
			}
			tmpl.Parts = append(tmpl.Parts, ast.TemplatePart{
				Expr: x,
				Sp:   open.Span.Cover(closing.Span),
			})
		case token.TemplateEnd:
			end := p.advance()
			tmpl.Sp = start.Span.Cover(end.Span)
			return tmpl, true
		default:
			p.report(diag.SynUnclosedDelimiter, p.lx.Peek().Span, "template string is missing its closing backtick")
			return nil, false
		}
	}
}

func (p *Parser) parseArrayLit() (ast.Expr, bool) {
	lb := p.advance() // [
	arr := &ast.ArrayLit{Sp: lb.Span}
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		el, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		arr.Elems = append(arr.Elems, el)
		if !p.at(token.RBracket) {
			if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken, "expected ',' between elements"); !ok {
				return nil, false
			}
		}
	}
	rb, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "array literal is missing ']'")
	if !ok {
		return nil, false
	}
	arr.Sp = lb.Span.Cover(rb.Span)
	return arr, true
}

// parseObjectLit parses {key: value, ...}. Keys are identifiers or
// string literals.
func (p *Parser) parseObjectLit() (ast.Expr, bool) {
	lb := p.advance() // {
	obj := &ast.ObjectLit{Sp: lb.Span}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		var key string
		keyTok := p.lx.Peek()
		switch keyTok.Kind {
		case token.Ident:
			p.advance()
			key = keyTok.Text
		case token.StringLit:
			p.advance()
			key = lexer.Unescape(keyTok.Text, true)
		default:
			p.report(diag.SynExpectIdentifier, keyTok.Span, "expected a key name")
			return nil, false
		}
		if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after key"); !ok {
			return nil, false
		}
		val, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		obj.Entries = append(obj.Entries, ast.ObjectEntry{
			Key:   key,
			Value: val,
			Sp:    keyTok.Span.Cover(val.Span()),
		})
		if !p.at(token.RBrace) {
			if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken, "expected ',' between entries"); !ok {
				return nil, false
			}
		}
	}
	rb, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "object literal is missing '}'")
	if !ok {
		return nil, false
	}
	obj.Sp = lb.Span.Cover(rb.Span)
	return obj, true
}

// parseParenOrArrow handles the one genuinely ambiguous opener. A '('
// in expression position is either a grouped expression or an arrow
// function head; we parse as an expression first and reinterpret when
// '=>' or a parameter comma shows up.
func (p *Parser) parseParenOrArrow() (ast.Expr, bool) {
	lp := p.advance() // (

	// () => ...
	if p.at(token.RParen) {
		p.advance()
		if _, ok := p.expect(token.Arrow, diag.SynUnexpectedToken, "expected '=>' after empty parameter list"); !ok {
			return nil, false
		}
		return p.parseArrowBody(nil, lp.Span)
	}

	first, ok := p.parseExpr()
	if !ok {
		return nil, false
	}

	// (a, b) => ...
	if p.at(token.Comma) {
		params, ok := p.arrowParams(first)
		if !ok {
			return nil, false
		}
		for {
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
			id, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
			if !ok {
				return nil, false
			}
			params = append(params, ast.Param{Name: id.Text, Sp: id.Span})
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "parameter list is missing ')'"); !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Arrow, diag.SynUnexpectedToken, "expected '=>' after parameter list"); !ok {
			return nil, false
		}
		return p.parseArrowBody(params, lp.Span)
	}

	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "grouped expression is missing ')'"); !ok {
		return nil, false
	}

	// (x) => ...
	if p.at(token.Arrow) {
		p.advance()
		params, ok := p.arrowParams(first)
		if !ok {
			return nil, false
		}
		return p.parseArrowBody(params, lp.Span)
	}

	return first, true
}

// arrowParams reinterprets an already-parsed expression as the first
// arrow parameter.
func (p *Parser) arrowParams(first ast.Expr) ([]ast.Param, bool) {
	id, ok := first.(*ast.Ident)
	if !ok {
		p.report(diag.SynExpectIdentifier, first.Span(), "arrow parameters must be plain names")
		return nil, false
	}
	return []ast.Param{{Name: id.Name, Sp: id.Sp}}, true
}

// parseArrowBody parses either `=> expr` or `=> { ... }` after the
// arrow token has been consumed.
func (p *Parser) parseArrowBody(params []ast.Param, start source.Span) (ast.Expr, bool) {
	if p.at(token.LBrace) {
		body, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		return &ast.ArrowFn{Params: params, BlockBody: body, Sp: start.Cover(body.Sp)}, true
	}
	body, ok := p.parseAssign()
	if !ok {
		return nil, false
	}
	return &ast.ArrowFn{Params: params, ExprBody: body, Sp: start.Cover(body.Span())}, true
}
