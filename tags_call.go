package jinja2tt

// statementCallParser parses the block form of a macro invocation:
//
//	{% call render_dialog('Hello') %}body{% endcall %}
//	{% call(user) dump_users(users) %}{{ user.name }}{% endcall %}
func statementCallParser(doc *Parser, start *Token, args *Parser) (Node, error) {
	node := &NodeCallBlock{}

	if args.MatchType(TokenLparen) != nil {
		for args.PeekType(TokenRparen) == nil {
			nameToken := args.MatchType(TokenName)
			if nameToken == nil {
				return nil, args.Error(ErrUnexpectedToken, "Call argument name must be an identifier.", nil)
			}
			node.Args = append(node.Args, nameToken.Val)
			if args.MatchType(TokenComma) == nil {
				break
			}
		}
		if args.MatchType(TokenRparen) == nil {
			return nil, args.Error(ErrUnexpectedToken, "Closing bracket expected after call arguments.", nil)
		}
	}

	call, err := args.ParseExpression()
	if err != nil {
		return nil, err
	}
	node.Call = call

	if args.Remaining() > 0 {
		return nil, args.Error(ErrUnexpectedToken, "Malformed call arguments.", nil)
	}

	body, _, endArgs, err := doc.wrapUntilStatement("endcall")
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
	mustRegisterStatement("call", statementCallParser)
}
