package expr

import "bigcalc/bignum"

// Parse parses a single statement: an assignment "name = expr" or an expression.
// src must already be normalized.
//
// Precedence, lowest first: + -, * / %, prefix sign, ^ (right-assoc), postfix !.
func Parse(src string) (Node, error) {
	p := &parser{toks: NewLexer(src).All()}
	node, err := p.statement()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != EOF {
		return nil, errorf(tok.Pos, ErrSyntax, "unexpected %s", describe(tok))
	}
	return node, nil
}

type parser struct {
	toks []Token
	pos  int
}

func (p *parser) peek() Token { return p.toks[p.pos] }

func (p *parser) peekAt(n int) Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) advance() Token {
	tok := p.toks[p.pos]
	if tok.Kind != EOF {
		p.pos++
	}
	return tok
}

func (p *parser) statement() (Node, error) {
	if tok := p.peek(); tok.Kind == Name && p.peekAt(1).Kind == Assign {
		p.advance()
		p.advance()
		value, err := p.additive()
		if err != nil {
			return nil, err
		}
		return &AssignStmt{At: tok.Pos, Name: tok.Text, Value: value}, nil
	}
	return p.additive()
}

func (p *parser) additive() (Node, error) {
	left, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		switch tok.Kind {
		case Plus, Minus:
			p.advance()
			right, err := p.multiplicative()
			if err != nil {
				return nil, err
			}
			left = &Binary{At: tok.Pos, Op: tok.Kind, X: left, Y: right}
		case PlusPlus, MinusMinus:
			// "5--3" is 5 - (-3): the doubled operator splits into a binary
			// operator followed by a prefix sign.
			p.advance()
			op := Plus
			if tok.Kind == MinusMinus {
				op = Minus
			}
			operand, err := p.unary()
			if err != nil {
				return nil, err
			}
			right := &Unary{At: tok.Pos + 1, Op: op, X: operand}
			left = &Binary{At: tok.Pos, Op: op, X: left, Y: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) multiplicative() (Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		switch tok.Kind {
		case Star, Slash, Percent:
			p.advance()
			right, err := p.unary()
			if err != nil {
				return nil, err
			}
			left = &Binary{At: tok.Pos, Op: tok.Kind, X: left, Y: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) unary() (Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case Plus, Minus:
		p.advance()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{At: tok.Pos, Op: tok.Kind, X: x}, nil
	case PlusPlus, MinusMinus:
		p.advance()
		if next := p.peek(); next.Kind == Name {
			p.advance()
			return p.postfixBang(&IncDec{At: tok.Pos, Op: tok.Kind, Name: next.Text, Prefix: true})
		}
		// Not followed by a variable: two prefix signs.
		op := Plus
		if tok.Kind == MinusMinus {
			op = Minus
		}
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{At: tok.Pos, Op: op, X: &Unary{At: tok.Pos + 1, Op: op, X: x}}, nil
	}
	return p.power()
}

func (p *parser) power() (Node, error) {
	base, err := p.postfix()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind == Caret {
		p.advance()
		exp, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Binary{At: tok.Pos, Op: Caret, X: base, Y: exp}, nil
	}
	return base, nil
}

func (p *parser) postfix() (Node, error) {
	tok := p.peek()
	if tok.Kind == Name {
		switch p.peekAt(1).Kind {
		case PlusPlus, MinusMinus:
			p.advance()
			op := p.advance()
			return p.postfixBang(&IncDec{At: tok.Pos, Op: op.Kind, Name: tok.Text})
		}
	}
	x, err := p.primary()
	if err != nil {
		return nil, err
	}
	return p.postfixBang(x)
}

func (p *parser) postfixBang(x Node) (Node, error) {
	for p.peek().Kind == Bang {
		tok := p.advance()
		x = &Factorial{At: tok.Pos, X: x}
	}
	return x, nil
}

func (p *parser) primary() (Node, error) {
	tok := p.advance()
	switch tok.Kind {
	case Int:
		v, err := bignum.Parse(tok.Text)
		if err != nil {
			return nil, &Error{Pos: tok.Pos, Err: ErrSyntax, Msg: err.Error()}
		}
		return &IntLit{At: tok.Pos, Value: v}, nil
	case Name:
		return &Ident{At: tok.Pos, Name: tok.Text}, nil
	case LParen:
		inner, err := p.additive()
		if err != nil {
			return nil, err
		}
		if closing := p.advance(); closing.Kind != RParen {
			return nil, errorf(closing.Pos, ErrSyntax, "expected ) to close ( at %d, found %s", tok.Pos, describe(closing))
		}
		return inner, nil
	default:
		return nil, errorf(tok.Pos, ErrSyntax, "expected operand, found %s", describe(tok))
	}
}

func describe(tok Token) string {
	switch tok.Kind {
	case EOF:
		return "end of input"
	case Invalid:
		return "invalid token " + quote(tok.Text)
	case Int, Name:
		return tok.Kind.String() + " " + quote(tok.Text)
	default:
		return quote(tok.Kind.String())
	}
}

func quote(s string) string { return "\"" + s + "\"" }
