package jinja2tt

// statementForParser parses {% for %}:
//
//	{% for x in items %}...{% endfor %}
//	{% for k, v in mapping %}...{% endfor %}
//	{% for x in items if x.visible %}...{% else %}none{% endfor %}
//	{% for node in tree recursive %}...{% endfor %}
//
// More than one loop variable indicates destructuring. The optional "if"
// clause filters the iterable; the optional else arm renders when the
// iterable is empty.
func statementForParser(doc *Parser, start *Token, args *Parser) (Node, error) {
	node := &NodeFor{StripBefore: start.StripBefore}

	nameToken := args.MatchType(TokenName)
	if nameToken == nil {
		return nil, args.Error(ErrUnexpectedToken, "Expected an identifier as first argument for 'for'-statement.", nil)
	}
	node.LoopVars = append(node.LoopVars, nameToken.Val)
	for args.MatchType(TokenComma) != nil {
		nameToken = args.MatchType(TokenName)
		if nameToken == nil {
			return nil, args.Error(ErrUnexpectedToken, "Loop variable name must be an identifier.", nil)
		}
		node.LoopVars = append(node.LoopVars, nameToken.Val)
	}

	if args.Match(TokenOperator, "in") == nil {
		return nil, args.Error(ErrUnexpectedToken, "Expected keyword 'in'.", nil)
	}

	// The iterable is parsed below the ternary level so that a trailing
	// "if" clause is read as the loop filter, not an inline conditional.
	iterable, err := args.parseOrExpression()
	if err != nil {
		return nil, err
	}
	node.Iterable = iterable

	if args.Match(TokenName, "if") != nil {
		filter, err := args.ParseExpression()
		if err != nil {
			return nil, err
		}
		node.Filter = filter
	}

	if args.Match(TokenName, "recursive") != nil {
		node.Recursive = true
	}

	if args.Remaining() > 0 {
		return nil, args.Error(ErrUnexpectedToken, "Malformed for-loop arguments.", nil)
	}

	body, endName, endArgs, err := doc.wrapUntilStatement("else", "endfor")
	if err != nil {
		return nil, err
	}
	node.Body = body
	if endArgs.Count() > 0 {
		return nil, endArgs.Error(ErrUnexpectedToken, "Arguments not allowed here.", nil)
	}

	if endName == "else" {
		elseBody, _, endArgs, err := doc.wrapUntilStatement("endfor")
		if err != nil {
			return nil, err
		}
		if endArgs.Count() > 0 {
			return nil, endArgs.Error(ErrUnexpectedToken, "Arguments not allowed here.", nil)
		}
		node.ElseBody = elseBody
		if node.ElseBody == nil {
			// An empty else arm still changes emission.
			node.ElseBody = []Node{}
		}
	}

	return node, nil
}

func init() {
	mustRegisterStatement("for", statementForParser)
}
