package jinja2tt

func statementExtendsParser(doc *Parser, start *Token, args *Parser) (Node, error) {
	template, err := args.ParseExpression()
	if err != nil {
		return nil, err
	}
	if args.Remaining() > 0 {
		return nil, args.Error(ErrUnexpectedToken, "Malformed extends arguments.", nil)
	}
	return &NodeExtends{Template: template}, nil
}

func init() {
	mustRegisterStatement("extends", statementExtendsParser)
}
