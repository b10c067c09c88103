package jinja2tt

// statementIncludeParser parses {% include %} with its optional clauses:
//
//	{% include 'header.html' %}
//	{% include 'sidebar.html' ignore missing %}
//	{% include 'footer.html' without context %}
//
// Includes run with context unless "without context" is given.
func statementIncludeParser(doc *Parser, start *Token, args *Parser) (Node, error) {
	template, err := args.ParseExpression()
	if err != nil {
		return nil, err
	}
	node := &NodeInclude{Template: template, WithContext: true}

	if args.Match(TokenName, "ignore") != nil {
		if args.Match(TokenName, "missing") == nil {
			return nil, args.Error(ErrUnexpectedToken, "Expected keyword 'missing' after 'ignore'.", nil)
		}
		node.IgnoreMissing = true
	}

	withContext, err := parseContextClause(args, true)
	if err != nil {
		return nil, err
	}
	node.WithContext = withContext

	if args.Remaining() > 0 {
		return nil, args.Error(ErrUnexpectedToken, "Malformed include arguments.", nil)
	}
	return node, nil
}

// parseContextClause consumes an optional "with context" or "without
// context" and returns the resulting context mode.
func parseContextClause(args *Parser, dflt bool) (bool, error) {
	if args.Match(TokenName, "with") != nil {
		if args.Match(TokenName, "context") == nil {
			return false, args.Error(ErrUnexpectedToken, "Expected keyword 'context' after 'with'.", nil)
		}
		return true, nil
	}
	if args.Match(TokenName, "without") != nil {
		if args.Match(TokenName, "context") == nil {
			return false, args.Error(ErrUnexpectedToken, "Expected keyword 'context' after 'without'.", nil)
		}
		return false, nil
	}
	return dflt, nil
}

func init() {
	mustRegisterStatement("include", statementIncludeParser)
}
