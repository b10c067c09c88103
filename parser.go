package jinja2tt

import (
	"errors"
	"fmt"
	"strings"
)

// Parser holds a cursor into a token sequence. The document parser owns the
// full stream; statement arguments are split off into sub-parsers so each
// statement handler works on exactly the tokens between its keyword and the
// closing delimiter.
type Parser struct {
	name   string
	src    string
	idx    int
	tokens []*Token

	// Closing delimiter token of the most recently opened statement,
	// kept for strip flags and for raw-region slicing.
	lastStmtEnd *Token
}

// parse consumes the token sequence and builds the document tree.
func parse(name, src string, tokens []*Token) (*NodeRoot, error) {
	p := &Parser{
		name:   name,
		src:    src,
		tokens: tokens,
	}
	root := &NodeRoot{}
	for p.PeekType(TokenEOF) == nil {
		node, err := p.parseDocElement()
		if err != nil {
			return nil, err
		}
		root.Nodes = append(root.Nodes, node)
	}
	return root, nil
}

func newParser(name, src string, tokens []*Token) *Parser {
	return &Parser{
		name:   name,
		src:    src,
		tokens: tokens,
	}
}

func (p *Parser) Consume() {
	p.ConsumeN(1)
}

func (p *Parser) ConsumeN(count int) {
	p.idx += count
}

func (p *Parser) Current() *Token {
	return p.Get(p.idx)
}

func (p *Parser) MatchType(typ TokenType) *Token {
	if t := p.PeekType(typ); t != nil {
		p.Consume()
		return t
	}
	return nil
}

func (p *Parser) PeekType(typ TokenType) *Token {
	return p.PeekTypeN(0, typ)
}

func (p *Parser) PeekTypeN(shift int, typ TokenType) *Token {
	t := p.Get(p.idx + shift)
	if t != nil && t.Typ == typ {
		return t
	}
	return nil
}

func (p *Parser) Match(typ TokenType, val string) *Token {
	if t := p.Peek(typ, val); t != nil {
		p.Consume()
		return t
	}
	return nil
}

func (p *Parser) MatchOne(typ TokenType, vals ...string) *Token {
	for _, val := range vals {
		if t := p.Peek(typ, val); t != nil {
			p.Consume()
			return t
		}
	}
	return nil
}

func (p *Parser) Peek(typ TokenType, val string) *Token {
	return p.PeekN(0, typ, val)
}

func (p *Parser) PeekOne(typ TokenType, vals ...string) *Token {
	for _, v := range vals {
		if t := p.PeekN(0, typ, v); t != nil {
			return t
		}
	}
	return nil
}

func (p *Parser) PeekN(shift int, typ TokenType, val string) *Token {
	t := p.Get(p.idx + shift)
	if t != nil && t.Typ == typ && t.Val == val {
		return t
	}
	return nil
}

func (p *Parser) Remaining() int {
	return len(p.tokens) - p.idx
}

func (p *Parser) Count() int {
	return len(p.tokens)
}

func (p *Parser) Get(i int) *Token {
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	return nil
}

// Error builds a parse error of the given kind. When token is nil the
// current token (or the last one) is used for position information.
func (p *Parser) Error(kind ErrorKind, msg string, token *Token) error {
	if token == nil {
		token = p.Current()
		if token == nil && len(p.tokens) > 0 {
			token = p.tokens[len(p.tokens)-1]
		}
	}
	err := &Error{
		Kind:      kind,
		Filename:  p.name,
		Sender:    "parser",
		OrigError: errors.New(msg),
	}
	if token != nil {
		err.Pos = token.Pos
		err.Line = token.Line
		err.Column = token.Col
		err.Token = token
	}
	return err
}

// parseDocElement produces one statement node from the current position.
func (p *Parser) parseDocElement() (Node, error) {
	t := p.Current()
	if t == nil {
		return nil, p.Error(ErrUnexpectedToken, "Unexpected end of token stream.", nil)
	}

	switch t.Typ {
	case TokenText:
		p.Consume()
		return &NodeText{Value: t.Val}, nil
	case TokenComment:
		p.Consume()
		return &NodeComment{Value: t.Val}, nil
	case TokenVarStart:
		return p.parseOutputElement()
	case TokenStmtStart:
		return p.parseStatementElement()
	}
	return nil, p.Error(ErrUnexpectedToken, fmt.Sprintf("Unexpected token %s.", t.String()), t)
}

// Output = VAR_START Expression VAR_END
func (p *Parser) parseOutputElement() (Node, error) {
	start := p.MatchType(TokenVarStart)
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	end := p.MatchType(TokenVarEnd)
	if end == nil {
		return nil, p.Error(ErrUnexpectedToken, "Expected closing variable delimiter.", nil)
	}
	return &NodeOutput{
		Expr:        expr,
		StripBefore: start.StripBefore,
		StripAfter:  end.StripAfter,
	}, nil
}

// Statement = STMT_START NAME ARGS STMT_END
//
// The leading keyword selects a registered statement parser; the argument
// tokens between the keyword and the closing delimiter are handed to it as
// a sub-parser.
func (p *Parser) parseStatementElement() (Node, error) {
	start := p.MatchType(TokenStmtStart)

	keyword := p.MatchType(TokenName)
	if keyword == nil {
		return nil, p.Error(ErrUnexpectedToken, "Statement name must be an identifier.", nil)
	}

	if isClosingKeyword(keyword.Val) {
		return nil, p.Error(ErrUnmatchedClosure,
			fmt.Sprintf("Unexpected statement '%s' (no matching opener).", keyword.Val), keyword)
	}

	stmt, exists := statements[keyword.Val]
	if !exists {
		return nil, p.Error(ErrUnknownStatement,
			fmt.Sprintf("Statement '%s' not found.", keyword.Val), keyword)
	}

	args, end, err := p.consumeStatementArgs()
	if err != nil {
		return nil, err
	}
	p.lastStmtEnd = end

	return stmt.parser(p, start, args)
}

// consumeStatementArgs collects all tokens up to the statement's closing
// delimiter into a sub-parser and consumes the delimiter.
func (p *Parser) consumeStatementArgs() (*Parser, *Token, error) {
	argTokens := make([]*Token, 0, 8)
	for p.PeekType(TokenStmtEnd) == nil {
		t := p.Current()
		if t == nil || t.Typ == TokenEOF {
			return nil, nil, p.Error(ErrUnexpectedToken, "Unexpectedly reached EOF, no statement end found.", nil)
		}
		argTokens = append(argTokens, t)
		p.Consume()
	}
	end := p.MatchType(TokenStmtEnd)
	return newParser(p.name, p.src, argTokens), end, nil
}

// isClosingKeyword reports whether the keyword can only close a block.
func isClosingKeyword(kw string) bool {
	return kw == "elif" || kw == "else" || strings.HasPrefix(kw, "end")
}

// wrapUntilStatement parses document elements until one of the named
// closing statements is found. It returns the wrapped body, the name that
// ended it, and a sub-parser over that statement's own arguments.
func (p *Parser) wrapUntilStatement(names ...string) ([]Node, string, *Parser, error) {
	var body []Node

	for p.Remaining() > 0 {
		if p.PeekType(TokenStmtStart) != nil {
			ident := p.PeekTypeN(1, TokenName)
			if ident != nil {
				found := false
				for _, n := range names {
					if ident.Val == n {
						found = true
						break
					}
				}
				if found {
					p.Consume() // the opening delimiter
					p.Consume() // the keyword
					args, end, err := p.consumeStatementArgs()
					if err != nil {
						return nil, "", nil, err
					}
					p.lastStmtEnd = end
					return body, ident.Val, args, nil
				}
			}
		}

		if p.PeekType(TokenEOF) != nil {
			break
		}

		node, err := p.parseDocElement()
		if err != nil {
			return nil, "", nil, err
		}
		body = append(body, node)
	}

	return nil, "", nil, p.Error(ErrUnexpectedToken,
		fmt.Sprintf("Unexpected EOF, expected one of: %s.", strings.Join(names, ", ")), nil)
}
