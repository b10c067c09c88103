package jinja2tt

// statementImportParser parses {% import 'helpers.html' as helpers %}.
// Imports run without context unless "with context" is given.
func statementImportParser(doc *Parser, start *Token, args *Parser) (Node, error) {
	template, err := args.ParseExpression()
	if err != nil {
		return nil, err
	}

	if args.Match(TokenName, "as") == nil {
		return nil, args.Error(ErrUnexpectedToken, "Expected keyword 'as'.", nil)
	}
	alias := args.MatchType(TokenName)
	if alias == nil {
		return nil, args.Error(ErrUnexpectedToken, "Import alias must be an identifier.", nil)
	}

	withContext, err := parseContextClause(args, false)
	if err != nil {
		return nil, err
	}

	if args.Remaining() > 0 {
		return nil, args.Error(ErrUnexpectedToken, "Malformed import arguments.", nil)
	}

	return &NodeImport{
		Template:    template,
		Alias:       alias.Val,
		WithContext: withContext,
	}, nil
}

// statementFromParser parses {% from 'helpers.html' import input, label as lbl %}.
func statementFromParser(doc *Parser, start *Token, args *Parser) (Node, error) {
	template, err := args.ParseExpression()
	if err != nil {
		return nil, err
	}

	if args.Match(TokenName, "import") == nil {
		return nil, args.Error(ErrUnexpectedToken, "Expected keyword 'import'.", nil)
	}

	node := &NodeFrom{Template: template}
	for {
		nameToken := args.MatchType(TokenName)
		if nameToken == nil {
			return nil, args.Error(ErrUnexpectedToken, "Imported name must be an identifier.", nil)
		}
		imported := &ImportedName{Name: nameToken.Val}
		if args.Match(TokenName, "as") != nil {
			aliasToken := args.MatchType(TokenName)
			if aliasToken == nil {
				return nil, args.Error(ErrUnexpectedToken, "Import alias must be an identifier.", nil)
			}
			imported.Alias = aliasToken.Val
		}
		node.Imports = append(node.Imports, imported)
		if args.MatchType(TokenComma) == nil {
			break
		}
	}

	withContext, err := parseContextClause(args, false)
	if err != nil {
		return nil, err
	}
	node.WithContext = withContext

	if args.Remaining() > 0 {
		return nil, args.Error(ErrUnexpectedToken, "Malformed from-import arguments.", nil)
	}
	return node, nil
}

func init() {
	mustRegisterStatement("import", statementImportParser)
	mustRegisterStatement("from", statementFromParser)
}
