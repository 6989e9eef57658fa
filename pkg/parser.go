package kaleido

// Parser builds AST nodes from a token stream using recursive descent for
// primaries and precedence climbing for binary operator chains.
//
// The parser owns the single "current token" slot. Every parse method starts
// on the first token of its construct and leaves the parser on the first
// token after it. On failure the parser stops where the error was found and
// the caller decides how to resynchronize.
type Parser struct {
	tokenizer Tokenizer
	cur       Token
}

func NewParser(tokenizer Tokenizer) *Parser {
	return &Parser{
		tokenizer: tokenizer,
	}
}

// Current returns the current token without consuming it.
func (p *Parser) Current() Token {
	return p.cur
}

// Advance reads the next token from the tokenizer and makes it current.
func (p *Parser) Advance() Token {
	p.cur = p.tokenizer.Next()
	return p.cur
}

func (p *Parser) check(r rune) bool {
	return p.cur.Is(r)
}

func (p *Parser) consume(r rune) bool {
	if !p.check(r) {
		return false
	}

	p.Advance()
	return true
}

func (p *Parser) errorf(msg string) error {
	return &ParseError{Msg: msg, Tok: p.cur}
}

// ParseExpression parses `primary (binary_op primary)*`.
func (p *Parser) ParseExpression() (Expr, error) {
	lhs, err := p.ParsePrimary()
	if err != nil {
		return nil, err
	}

	return p.binOpRHS(0, lhs)
}

// binOpRHS folds operators of precedence at least minPrec into lhs. An
// operator only binds the following operand first when its precedence is
// strictly greater, so equal precedence associates to the left.
func (p *Parser) binOpRHS(minPrec int, lhs Expr) (Expr, error) {
	for {
		op := p.cur.Char()
		prec := BinaryPrecedence(op)
		if prec == NoPrecedence || prec < minPrec {
			return lhs, nil
		}

		p.Advance() // Skip the operator

		rhs, err := p.ParsePrimary()
		if err != nil {
			return nil, err
		}

		if next := BinaryPrecedence(p.cur.Char()); prec < next {
			rhs, err = p.binOpRHS(prec+1, rhs)
			if err != nil {
				return nil, err
			}
		}

		lhs = &BinaryExpr{
			Op:  op,
			LHS: lhs,
			RHS: rhs,
		}
	}
}

func (p *Parser) ParsePrimary() (Expr, error) {
	switch tok := p.cur; {
	case tok.Typ == TokenIdentifier:
		return p.identifierExpr()
	case tok.Typ == TokenNumber:
		return p.numberExpr(), nil
	case tok.Is('('):
		return p.parenthesisedExpr()
	default:
		return nil, p.errorf("unknown token when expecting an expression")
	}
}

func (p *Parser) numberExpr() Expr {
	expr := &NumberExpr{Value: p.cur.Num}
	p.Advance()

	return expr
}

func (p *Parser) parenthesisedExpr() (Expr, error) {
	p.Advance() // Skip '('

	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	if !p.consume(')') {
		return nil, p.errorf("expected ')'")
	}

	return expr, nil
}

func (p *Parser) identifierExpr() (Expr, error) {
	name := p.cur.Value
	p.Advance()

	if !p.consume('(') {
		return &VariableExpr{Name: name}, nil
	}

	args, err := p.callArgs()
	if err != nil {
		return nil, err
	}

	return &CallExpr{
		Callee: name,
		Args:   args,
	}, nil
}

func (p *Parser) callArgs() ([]Expr, error) {
	var args []Expr
	if p.consume(')') {
		return args, nil
	}

	for {
		arg, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if p.consume(')') {
			return args, nil
		}

		if !p.consume(',') {
			return nil, p.errorf("expected ')' or ',' in argument list")
		}
	}
}

// ParsePrototype parses `identifier '(' identifier* ')'`. Parameter names are
// not separated by commas.
func (p *Parser) ParsePrototype() (*Prototype, error) {
	if p.cur.Typ != TokenIdentifier {
		return nil, p.errorf("expected function name in prototype")
	}

	name := p.cur.Value
	p.Advance()

	if !p.consume('(') {
		return nil, p.errorf("expected '(' in prototype")
	}

	var params []string
	for p.cur.Typ == TokenIdentifier {
		params = append(params, p.cur.Value)
		p.Advance()
	}

	if !p.consume(')') {
		return nil, p.errorf("expected ')' in prototype")
	}

	return &Prototype{
		Name:   name,
		Params: params,
	}, nil
}

// ParseDefinition parses `'def' prototype expression`.
func (p *Parser) ParseDefinition() (*Function, error) {
	p.Advance() // Skip 'def'

	proto, err := p.ParsePrototype()
	if err != nil {
		return nil, err
	}

	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	return &Function{
		Proto: proto,
		Body:  body,
	}, nil
}

// ParseExtern parses `'extern' prototype`.
func (p *Parser) ParseExtern() (*Prototype, error) {
	p.Advance() // Skip 'extern'

	return p.ParsePrototype()
}

// ParseTopLevelExpr wraps a bare expression in an anonymous function with no
// parameters.
func (p *Parser) ParseTopLevelExpr() (*Function, error) {
	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	return &Function{
		Proto: &Prototype{Name: AnonymousName},
		Body:  body,
	}, nil
}
