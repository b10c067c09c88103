package jinja2tt

// statementWithParser parses {% with a = 1, b = x.y %}...{% endwith %}.
func statementWithParser(doc *Parser, start *Token, args *Parser) (Node, error) {
	node := &NodeWith{}

	for args.Remaining() > 0 {
		nameToken := args.MatchType(TokenName)
		if nameToken == nil {
			return nil, args.Error(ErrUnexpectedToken, "With target must be an identifier.", nil)
		}
		if args.MatchType(TokenAssign) == nil {
			return nil, args.Error(ErrUnexpectedToken, "Expected '=' after with target.", nil)
		}
		value, err := args.ParseExpression()
		if err != nil {
			return nil, err
		}
		node.Assignments = append(node.Assignments, &WithAssignment{
			Name:  nameToken.Val,
			Value: value,
		})
		if args.MatchType(TokenComma) == nil {
			break
		}
	}
	if args.Remaining() > 0 {
		return nil, args.Error(ErrUnexpectedToken, "Malformed with arguments.", nil)
	}

	body, _, endArgs, err := doc.wrapUntilStatement("endwith")
	if err != nil {
		return nil, err
	}
	if endArgs.Count() > 0 {
		return nil, endArgs.Error(ErrUnexpectedToken, "Arguments not allowed here.", nil)
	}
	node.Body = body
	return node, nil
}

func init() {
	mustRegisterStatement("with", statementWithParser)
}
