package jinja2tt

// statementRawParser parses {% raw %}...{% endraw %}. The region's value is
// sliced verbatim from the original input between the raw statement's
// closing delimiter and the endraw statement's opening delimiter, so the
// interior survives byte-exactly no matter what the tokenizer made of it.
func statementRawParser(doc *Parser, start *Token, args *Parser) (Node, error) {
	if args.Count() > 0 {
		return nil, args.Error(ErrUnexpectedToken, "No arguments allowed for 'raw'.", nil)
	}

	open := doc.lastStmtEnd
	if open == nil {
		return nil, doc.Error(ErrUnexpectedToken, "Malformed raw statement.", nil)
	}
	rawStart := open.Pos + len(open.Val)

	for {
		if doc.PeekType(TokenStmtStart) != nil && doc.PeekN(1, TokenName, "endraw") != nil {
			endToken := doc.MatchType(TokenStmtStart)
			doc.Consume() // 'endraw'
			if doc.MatchType(TokenStmtEnd) == nil {
				return nil, doc.Error(ErrUnexpectedToken, "No arguments allowed for 'endraw'.", nil)
			}
			return &NodeRaw{Value: doc.src[rawStart:endToken.Pos]}, nil
		}
		if doc.Current() == nil || doc.PeekType(TokenEOF) != nil {
			return nil, doc.Error(ErrUnexpectedToken, "Unexpected EOF, 'raw' statement not closed.", nil)
		}
		doc.Consume()
	}
}

func init() {
	mustRegisterStatement("raw", statementRawParser)
}
