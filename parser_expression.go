package jinja2tt

import (
	"fmt"
	"strings"
)

// stringUnescapeReplacer decodes the escape sequences of a string literal.
// Decoding happens at parse time so the lexer can keep the original lexeme
// (quotes included) for diagnostics.
var stringUnescapeReplacer = strings.NewReplacer(
	`\\`, `\`,
	`\"`, `"`,
	`\'`, `'`,
	`\n`, "\n",
	`\t`, "\t",
)

// ParseExpression parses a full expression, binding from weakest to
// strongest: ternary, or, and, not, comparison, additive, multiplicative,
// unary sign, filter chain, postfix, primary.
func (p *Parser) ParseExpression() (Expr, error) {
	expr, err := p.parseOrExpression()
	if err != nil {
		return nil, err
	}

	// Inline conditional: "a if cond else b". The else arm is optional;
	// its absence is recorded as a nil FalseVal.
	if p.Match(TokenName, "if") != nil {
		condition, err := p.parseOrExpression()
		if err != nil {
			return nil, err
		}
		ternary := &TernaryExpr{
			TrueVal:   expr,
			Condition: condition,
		}
		if p.Match(TokenName, "else") != nil {
			falseVal, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			ternary.FalseVal = falseVal
		}
		return ternary, nil
	}

	return expr, nil
}

func (p *Parser) parseOrExpression() (Expr, error) {
	expr, err := p.parseAndExpression()
	if err != nil {
		return nil, err
	}
	for p.Match(TokenOperator, "or") != nil {
		right, err := p.parseAndExpression()
		if err != nil {
			return nil, err
		}
		expr = &BinopExpr{Op: "or", Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseAndExpression() (Expr, error) {
	expr, err := p.parseNotExpression()
	if err != nil {
		return nil, err
	}
	for p.Match(TokenOperator, "and") != nil {
		right, err := p.parseNotExpression()
		if err != nil {
			return nil, err
		}
		expr = &BinopExpr{Op: "and", Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseNotExpression() (Expr, error) {
	// A "not" here is prefix negation; "not in" belongs to the
	// comparison level and is handled there with lookahead.
	if p.Peek(TokenOperator, "not") != nil && p.PeekN(1, TokenOperator, "in") == nil {
		p.Consume()
		operand, err := p.parseNotExpression()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: "not", Operand: operand}, nil
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() (Expr, error) {
	expr, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	for {
		var op string
		switch {
		case p.PeekOne(TokenOperator, "==", "!=", "<", ">", "<=", ">=") != nil:
			op = p.Current().Val
			p.Consume()
		case p.Peek(TokenOperator, "in") != nil:
			op = "in"
			p.Consume()
		case p.Peek(TokenOperator, "is") != nil:
			p.Consume()
			op = "is"
			if p.Match(TokenOperator, "not") != nil {
				op = "is not"
			}
		case p.Peek(TokenOperator, "not") != nil && p.PeekN(1, TokenOperator, "in") != nil:
			p.ConsumeN(2)
			op = "not in"
		default:
			return expr, nil
		}

		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		expr = &BinopExpr{Op: op, Left: expr, Right: right}
	}
}

func (p *Parser) parseAdditive() (Expr, error) {
	expr, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		if t := p.MatchOne(TokenOperator, "+", "-"); t != nil {
			op = t.Val
		} else if p.MatchType(TokenTilde) != nil {
			op = "~"
		} else {
			return expr, nil
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		expr = &BinopExpr{Op: op, Left: expr, Right: right}
	}
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	expr, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.MatchOne(TokenOperator, "*", "/", "%", "//", "**")
		if t == nil {
			return expr, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		expr = &BinopExpr{Op: t.Val, Left: expr, Right: right}
	}
}

func (p *Parser) parseUnary() (Expr, error) {
	if t := p.MatchOne(TokenOperator, "+", "-"); t != nil {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: t.Val, Operand: operand}, nil
	}
	return p.parseFilterExpression()
}

// parseFilterExpression parses a postfix expression followed by a chain of
// pipe applications. Chains nest right-onto-left so that a|f|g becomes
// FILTER(g, FILTER(f, a)) and emits in source order.
func (p *Parser) parseFilterExpression() (Expr, error) {
	expr, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	for p.MatchType(TokenPipe) != nil {
		apply, err := p.parseFilterApplication(expr)
		if err != nil {
			return nil, err
		}
		expr = apply
	}
	return expr, nil
}

// parseFilterApplication parses one "name" or "name(args...)" filter
// application over the given base expression.
func (p *Parser) parseFilterApplication(base Expr) (*FilterApplyExpr, error) {
	nameToken := p.MatchType(TokenName)
	if nameToken == nil {
		return nil, p.Error(ErrUnexpectedToken, "Filter name must be an identifier.", nil)
	}
	apply := &FilterApplyExpr{Name: nameToken.Val, Expr: base}

	if p.MatchType(TokenLparen) != nil {
		for p.PeekType(TokenRparen) == nil {
			arg, err := p.parseFilterArgument()
			if err != nil {
				return nil, err
			}
			apply.Args = append(apply.Args, arg)
			if p.MatchType(TokenComma) == nil {
				break
			}
		}
		if p.MatchType(TokenRparen) == nil {
			return nil, p.Error(ErrUnexpectedToken, "Closing bracket expected after filter arguments.", nil)
		}
	}

	return apply, nil
}

// parseFilterArgument parses one filter argument, which may be named
// (NAME '=' value).
func (p *Parser) parseFilterArgument() (Expr, error) {
	if p.PeekType(TokenName) != nil && p.PeekTypeN(1, TokenAssign) != nil {
		nameToken := p.MatchType(TokenName)
		p.Consume() // '='
		value, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return &NamedArgExpr{Name: nameToken.Val, Value: value}, nil
	}
	return p.ParseExpression()
}

// parsePostfix parses a primary followed by any number of attribute
// accesses, subscripts and calls.
func (p *Parser) parsePostfix() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.MatchType(TokenDot) != nil:
			attr := p.MatchType(TokenName)
			if attr == nil {
				// Numeric attribute access (a.0) comes through as a
				// number token.
				if num := p.MatchType(TokenNumber); num != nil {
					expr = &GetAttrExpr{Expr: expr, Attr: num.Val}
					continue
				}
				return nil, p.Error(ErrUnexpectedToken, "Attribute name expected after '.'.", nil)
			}
			expr = &GetAttrExpr{Expr: expr, Attr: attr.Val}

		case p.MatchType(TokenLbracket) != nil:
			index, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			if p.MatchType(TokenRbracket) == nil {
				return nil, p.Error(ErrUnexpectedToken, "Closing bracket expected after subscript.", nil)
			}
			expr = &GetItemExpr{Expr: expr, Index: index}

		case p.MatchType(TokenLparen) != nil:
			call := &CallExpr{Expr: expr}
			for p.PeekType(TokenRparen) == nil {
				if p.PeekType(TokenName) != nil && p.PeekTypeN(1, TokenAssign) != nil {
					nameToken := p.MatchType(TokenName)
					p.Consume() // '='
					value, err := p.ParseExpression()
					if err != nil {
						return nil, err
					}
					call.Kwargs = append(call.Kwargs, &KwArg{Name: nameToken.Val, Value: value})
				} else {
					arg, err := p.ParseExpression()
					if err != nil {
						return nil, err
					}
					call.Args = append(call.Args, arg)
				}
				if p.MatchType(TokenComma) == nil {
					break
				}
			}
			if p.MatchType(TokenRparen) == nil {
				return nil, p.Error(ErrUnexpectedToken, "Closing bracket expected after call arguments.", nil)
			}
			expr = call

		default:
			return expr, nil
		}
	}
}

// parsePrimary parses a literal, name, parenthesized expression or tuple,
// list, or dict.
func (p *Parser) parsePrimary() (Expr, error) {
	t := p.Current()
	if t == nil {
		return nil, p.Error(ErrMalformedExpression, "Unexpected end of expression.", nil)
	}

	switch t.Typ {
	case TokenName:
		p.Consume()
		switch t.Val {
		case "true", "True":
			return &LiteralExpr{Subtype: LiteralBool, Bool: true}, nil
		case "false", "False":
			return &LiteralExpr{Subtype: LiteralBool, Bool: false}, nil
		case "none", "None":
			return &LiteralExpr{Subtype: LiteralNone}, nil
		}
		return &NameExpr{Value: t.Val}, nil

	case TokenNumber:
		p.Consume()
		return &LiteralExpr{Subtype: LiteralNumber, Value: t.Val}, nil

	case TokenString:
		p.Consume()
		return &LiteralExpr{Subtype: LiteralString, Value: decodeStringLexeme(t.Val)}, nil

	case TokenLparen:
		p.Consume()
		var elements []Expr
		for {
			expr, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			elements = append(elements, expr)
			if p.MatchType(TokenComma) == nil {
				break
			}
			if p.PeekType(TokenRparen) != nil {
				break
			}
		}
		if p.MatchType(TokenRparen) == nil {
			return nil, p.Error(ErrUnexpectedToken, "Closing bracket expected after expression.", nil)
		}
		if len(elements) == 1 {
			return elements[0], nil
		}
		return &TupleExpr{Elements: elements}, nil

	case TokenLbracket:
		p.Consume()
		list := &ListExpr{}
		for p.PeekType(TokenRbracket) == nil {
			element, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			list.Elements = append(list.Elements, element)
			if p.MatchType(TokenComma) == nil {
				break
			}
		}
		if p.MatchType(TokenRbracket) == nil {
			return nil, p.Error(ErrUnexpectedToken, "Closing bracket expected after list.", nil)
		}
		return list, nil

	case TokenLbrace:
		p.Consume()
		dict := &DictExpr{}
		for p.PeekType(TokenRbrace) == nil {
			key, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			if p.MatchType(TokenColon) == nil {
				return nil, p.Error(ErrUnexpectedToken, "Colon expected after dict key.", nil)
			}
			value, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			dict.Pairs = append(dict.Pairs, &DictPair{Key: key, Value: value})
			if p.MatchType(TokenComma) == nil {
				break
			}
		}
		if p.MatchType(TokenRbrace) == nil {
			return nil, p.Error(ErrUnexpectedToken, "Closing brace expected after dict.", nil)
		}
		return dict, nil
	}

	return nil, p.Error(ErrMalformedExpression,
		fmt.Sprintf("Unexpected token in expression: %s.", t.String()), t)
}

// decodeStringLexeme strips the surrounding quotes and resolves escape
// sequences of a string token lexeme.
func decodeStringLexeme(lexeme string) string {
	if len(lexeme) >= 2 {
		lexeme = lexeme[1 : len(lexeme)-1]
	}
	return stringUnescapeReplacer.Replace(lexeme)
}
