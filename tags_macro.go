package jinja2tt

// statementMacroParser parses {% macro name(arg, arg=default) %} up to its
// {% endmacro %}. The parser records argument defaults wherever they
// appear; it does not enforce that defaults are trailing.
func statementMacroParser(doc *Parser, start *Token, args *Parser) (Node, error) {
	node := &NodeMacro{}

	nameToken := args.MatchType(TokenName)
	if nameToken == nil {
		return nil, args.Error(ErrUnexpectedToken, "Macro name must be an identifier.", nil)
	}
	node.Name = nameToken.Val

	if args.MatchType(TokenLparen) == nil {
		return nil, args.Error(ErrUnexpectedToken, "Expected '(' after macro name.", nil)
	}
	for args.PeekType(TokenRparen) == nil {
		argToken := args.MatchType(TokenName)
		if argToken == nil {
			return nil, args.Error(ErrUnexpectedToken, "Macro argument name must be an identifier.", nil)
		}
		arg := &MacroArg{Name: argToken.Val}
		if args.MatchType(TokenAssign) != nil {
			dflt, err := args.ParseExpression()
			if err != nil {
				return nil, err
			}
			arg.Default = dflt
		}
		node.Args = append(node.Args, arg)
		if args.MatchType(TokenComma) == nil {
			break
		}
	}
	if args.MatchType(TokenRparen) == nil {
		return nil, args.Error(ErrUnexpectedToken, "Closing bracket expected after macro arguments.", nil)
	}

	if args.Remaining() > 0 {
		return nil, args.Error(ErrUnexpectedToken, "Malformed macro arguments.", nil)
	}

	body, _, endArgs, err := doc.wrapUntilStatement("endmacro")
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
	mustRegisterStatement("macro", statementMacroParser)
}
