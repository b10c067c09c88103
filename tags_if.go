package jinja2tt

// statementIfParser parses {% if %} with any number of {% elif %} arms and
// at most one terminal {% else %}:
//
//	{% if score >= 90 %}A{% elif score >= 80 %}B{% else %}F{% endif %}
//
// The branches are recorded in order; once an else arm appears only
// {% endif %} may follow.
func statementIfParser(doc *Parser, start *Token, args *Parser) (Node, error) {
	node := &NodeIf{StripBefore: start.StripBefore}
	if doc.lastStmtEnd != nil {
		node.StripAfter = doc.lastStmtEnd.StripAfter
	}

	condition, err := args.ParseExpression()
	if err != nil {
		return nil, err
	}
	if args.Remaining() > 0 {
		return nil, args.Error(ErrUnexpectedToken, "If-condition is malformed.", nil)
	}
	node.Condition = condition

	var current *IfBranch
	for {
		body, endName, endArgs, err := doc.wrapUntilStatement("elif", "else", "endif")
		if err != nil {
			return nil, err
		}
		if current == nil {
			node.Body = body
		} else {
			current.Body = body
		}

		switch endName {
		case "elif":
			condition, err := endArgs.ParseExpression()
			if err != nil {
				return nil, err
			}
			if endArgs.Remaining() > 0 {
				return nil, endArgs.Error(ErrUnexpectedToken, "Elif-condition is malformed.", nil)
			}
			current = &IfBranch{Condition: condition}
			node.Branches = append(node.Branches, current)

		case "else":
			if endArgs.Count() > 0 {
				return nil, endArgs.Error(ErrUnexpectedToken, "Arguments not allowed here.", nil)
			}
			current = &IfBranch{}
			node.Branches = append(node.Branches, current)

			// else is terminal: only endif may close it.
			body, _, endArgs, err := doc.wrapUntilStatement("endif")
			if err != nil {
				return nil, err
			}
			if endArgs.Count() > 0 {
				return nil, endArgs.Error(ErrUnexpectedToken, "Arguments not allowed here.", nil)
			}
			current.Body = body
			return node, nil

		case "endif":
			if endArgs.Count() > 0 {
				return nil, endArgs.Error(ErrUnexpectedToken, "Arguments not allowed here.", nil)
			}
			return node, nil
		}
	}
}

func init() {
	mustRegisterStatement("if", statementIfParser)
}
