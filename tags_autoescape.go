package jinja2tt

// statementAutoescapeParser parses {% autoescape true %}...{% endautoescape %}.
func statementAutoescapeParser(doc *Parser, start *Token, args *Parser) (Node, error) {
	mode := args.MatchType(TokenName)
	if mode == nil || (mode.Val != "true" && mode.Val != "false") {
		return nil, args.Error(ErrUnexpectedToken, "Autoescape mode must be 'true' or 'false'.", mode)
	}
	if args.Remaining() > 0 {
		return nil, args.Error(ErrUnexpectedToken, "Malformed autoescape arguments.", nil)
	}

	body, _, endArgs, err := doc.wrapUntilStatement("endautoescape")
	if err != nil {
		return nil, err
	}
	if endArgs.Count() > 0 {
		return nil, endArgs.Error(ErrUnexpectedToken, "Arguments not allowed here.", nil)
	}

	return &NodeAutoescape{Enabled: mode.Val == "true", Body: body}, nil
}

func init() {
	mustRegisterStatement("autoescape", statementAutoescapeParser)
}
