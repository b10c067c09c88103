package jinja2tt

// statementSetParser parses both forms of {% set %}:
//
//	{% set name = expr %}
//	{% set a, b = expr1, expr2 %}
//	{% set name %}captured body{% endset %}
//
// The inline form carries a value, the block form a body; never both.
func statementSetParser(doc *Parser, start *Token, args *Parser) (Node, error) {
	node := &NodeSet{}

	nameToken := args.MatchType(TokenName)
	if nameToken == nil {
		return nil, args.Error(ErrUnexpectedToken, "Set target must be an identifier.", nil)
	}
	node.Names = append(node.Names, nameToken.Val)
	for args.MatchType(TokenComma) != nil {
		nameToken = args.MatchType(TokenName)
		if nameToken == nil {
			return nil, args.Error(ErrUnexpectedToken, "Set target must be an identifier.", nil)
		}
		node.Names = append(node.Names, nameToken.Val)
	}

	if args.MatchType(TokenAssign) != nil {
		value, err := args.ParseExpression()
		if err != nil {
			return nil, err
		}
		// A comma after the first value makes the right-hand side a
		// tuple, mirroring destructured targets.
		if args.PeekType(TokenComma) != nil {
			tuple := &TupleExpr{Elements: []Expr{value}}
			for args.MatchType(TokenComma) != nil {
				element, err := args.ParseExpression()
				if err != nil {
					return nil, err
				}
				tuple.Elements = append(tuple.Elements, element)
			}
			value = tuple
		}
		if args.Remaining() > 0 {
			return nil, args.Error(ErrUnexpectedToken, "Malformed set value.", nil)
		}
		node.Value = value
		return node, nil
	}

	if args.Remaining() > 0 {
		return nil, args.Error(ErrUnexpectedToken, "Expected '=' or end of statement.", nil)
	}

	body, _, endArgs, err := doc.wrapUntilStatement("endset")
	if err != nil {
		return nil, err
	}
	if endArgs.Count() > 0 {
		return nil, endArgs.Error(ErrUnexpectedToken, "Arguments not allowed here.", nil)
	}
	node.Body = body
	if node.Body == nil {
		node.Body = []Node{}
	}
	return node, nil
}

func init() {
	mustRegisterStatement("set", statementSetParser)
}
