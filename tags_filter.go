package jinja2tt

// statementFilterParser parses {% filter upper %} or a chained form like
// {% filter lower|replace('a', 'b') %}. The chain is stored as nested
// filter applications over a nil base; the body stands in for the base at
// emission time.
func statementFilterParser(doc *Parser, start *Token, args *Parser) (Node, error) {
	var chain Expr
	for {
		apply, err := args.parseFilterApplication(chain)
		if err != nil {
			return nil, err
		}
		chain = apply
		if args.MatchType(TokenPipe) == nil {
			break
		}
	}

	if args.Remaining() > 0 {
		return nil, args.Error(ErrUnexpectedToken, "Malformed filter arguments.", nil)
	}

	body, _, endArgs, err := doc.wrapUntilStatement("endfilter")
	if err != nil {
		return nil, err
	}
	if endArgs.Count() > 0 {
		return nil, endArgs.Error(ErrUnexpectedToken, "Arguments not allowed here.", nil)
	}

	return &NodeFilterBlock{Filter: chain, Body: body}, nil
}

func init() {
	mustRegisterStatement("filter", statementFilterParser)
}
