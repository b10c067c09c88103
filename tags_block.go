package jinja2tt

// statementBlockParser parses {% block name %}...{% endblock %}. The
// optional "scoped" modifier and an optional repeated name on the endblock
// are accepted.
func statementBlockParser(doc *Parser, start *Token, args *Parser) (Node, error) {
	node := &NodeBlock{StripBefore: start.StripBefore}

	nameToken := args.MatchType(TokenName)
	if nameToken == nil {
		return nil, args.Error(ErrUnexpectedToken, "Block name must be an identifier.", nil)
	}
	node.Name = nameToken.Val

	if args.Match(TokenName, "scoped") != nil {
		node.Scoped = true
	}

	if args.Remaining() > 0 {
		return nil, args.Error(ErrUnexpectedToken, "Malformed block arguments.", nil)
	}

	body, _, endArgs, err := doc.wrapUntilStatement("endblock")
	if err != nil {
		return nil, err
	}
	node.Body = body

	// endblock may repeat the block name.
	if endArgs.Count() > 0 {
		trailing := endArgs.MatchType(TokenName)
		if trailing == nil || endArgs.Remaining() > 0 {
			return nil, endArgs.Error(ErrUnexpectedToken, "Only the block name is allowed after 'endblock'.", nil)
		}
	}

	return node, nil
}

func init() {
	mustRegisterStatement("block", statementBlockParser)
}
