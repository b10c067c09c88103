package jinja2tt

import (
	"fmt"
)

// statementParser turns one statement and its argument tokens into an AST
// node. doc is the document-level parser (used to wrap the statement body),
// start is the statement's opening delimiter token, and args holds exactly
// the tokens between the keyword and the closing delimiter.
type statementParser func(doc *Parser, start *Token, args *Parser) (Node, error)

type statement struct {
	name   string
	parser statementParser
}

var statements map[string]*statement

func init() {
	statements = make(map[string]*statement)
}

// RegisterStatement adds a statement parser to the registry. Registering a
// name twice is an error.
func RegisterStatement(name string, parserFn statementParser) error {
	if _, existing := statements[name]; existing {
		return fmt.Errorf("statement with name '%s' is already registered", name)
	}
	statements[name] = &statement{
		name:   name,
		parser: parserFn,
	}
	return nil
}

func mustRegisterStatement(name string, parserFn statementParser) {
	if err := RegisterStatement(name, parserFn); err != nil {
		panic(err)
	}
}
