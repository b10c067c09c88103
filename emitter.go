package jinja2tt

import (
	"fmt"
	"strings"
)

// Emitter walks a parsed document depth-first and renders Target syntax.
// It is a total function on parser output; an unknown node kind signals a
// broken internal invariant and raises ErrEmit.
type Emitter struct {
	filters map[string]FilterMapping
	buf     strings.Builder
}

func newEmitter(filters map[string]FilterMapping) *Emitter {
	return &Emitter{filters: filters}
}

// emit renders the whole document.
func (e *Emitter) emit(root *NodeRoot) (string, error) {
	for _, n := range root.Nodes {
		if err := e.emitNode(n); err != nil {
			return "", err
		}
	}
	return e.buf.String(), nil
}

// tagOpen and tagClose render a directive delimiter with an optional
// whitespace-strip marker.
func tagOpen(strip bool) string {
	if strip {
		return "[%-"
	}
	return "[%"
}

func tagClose(strip bool) string {
	if strip {
		return "-%]"
	}
	return "%]"
}

func (e *Emitter) directive(body string) {
	e.buf.WriteString("[% " + body + " %]")
}

func (e *Emitter) annotation(text string) {
	e.buf.WriteString("[%# " + text + " %]")
}

func (e *Emitter) emitBody(body []Node) error {
	for _, n := range body {
		if err := e.emitNode(n); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) emitNode(n Node) error {
	switch node := n.(type) {
	case *NodeText:
		e.buf.WriteString(node.Value)
		return nil

	case *NodeComment:
		e.annotation(node.Value)
		return nil

	case *NodeOutput:
		return e.emitOutput(node)

	case *NodeIf:
		return e.emitIf(node)

	case *NodeFor:
		return e.emitFor(node)

	case *NodeBlock:
		e.buf.WriteString(tagOpen(node.StripBefore) + " BLOCK " + node.Name + " %]")
		if err := e.emitBody(node.Body); err != nil {
			return err
		}
		e.directive("END")
		return nil

	case *NodeExtends:
		template, err := e.emitBareTemplate(node.Template)
		if err != nil {
			return err
		}
		e.annotation("extends " + template + " (approximated with PROCESS)")
		e.directive("PROCESS " + template)
		return nil

	case *NodeInclude:
		template, err := e.emitBareTemplate(node.Template)
		if err != nil {
			return err
		}
		if node.IgnoreMissing {
			e.annotation("include " + template + ": ignore missing")
		}
		e.directive("INCLUDE " + template)
		return nil

	case *NodeImport:
		template, err := e.emitBareTemplate(node.Template)
		if err != nil {
			return err
		}
		e.annotation("import " + template + " as " + node.Alias)
		e.directive("USE " + node.Alias + " = " + template)
		return nil

	case *NodeFrom:
		return e.emitFrom(node)

	case *NodeSet:
		return e.emitSet(node)

	case *NodeMacro:
		return e.emitMacro(node)

	case *NodeCallBlock:
		return e.emitCallBlock(node)

	case *NodeFilterBlock:
		chain, err := e.emitFilterChainNames(node.Filter)
		if err != nil {
			return err
		}
		e.directive("FILTER " + chain)
		if err := e.emitBody(node.Body); err != nil {
			return err
		}
		e.directive("END")
		return nil

	case *NodeRaw:
		e.buf.WriteString(node.Value)
		return nil

	case *NodeWith:
		for _, a := range node.Assignments {
			value, err := e.emitExpr(a.Value)
			if err != nil {
				return err
			}
			e.directive("SET " + a.Name + " = " + value)
		}
		// The Target has no with-scope; the bindings simply leak.
		return e.emitBody(node.Body)

	case *NodeAutoescape:
		mode := "false"
		if node.Enabled {
			mode = "true"
		}
		e.annotation("autoescape " + mode + " (no Target equivalent)")
		if err := e.emitBody(node.Body); err != nil {
			return err
		}
		e.annotation("end autoescape")
		return nil
	}

	return &Error{
		Kind:      ErrEmit,
		Sender:    "emitter",
		OrigError: fmt.Errorf("unknown statement node type %T", n),
	}
}

func (e *Emitter) emitOutput(node *NodeOutput) error {
	// A stepped range has no Target form at all; the whole tag becomes
	// an annotation.
	if call, ok := node.Expr.(*CallExpr); ok {
		if name, ok := call.Expr.(*NameExpr); ok && name.Value == "range" && len(call.Args) == 3 {
			rendered := make([]string, 0, 3)
			for _, arg := range call.Args {
				s, err := e.emitExpr(arg)
				if err != nil {
					return err
				}
				rendered = append(rendered, s)
			}
			e.annotation("range(" + strings.Join(rendered, ", ") + ") has no Target equivalent")
			return nil
		}
	}

	expr, err := e.emitExpr(node.Expr)
	if err != nil {
		return err
	}
	e.buf.WriteString(tagOpen(node.StripBefore) + " " + expr + " " + tagClose(node.StripAfter))
	return nil
}

func (e *Emitter) emitIf(node *NodeIf) error {
	condition, err := e.emitExpr(node.Condition)
	if err != nil {
		return err
	}
	e.buf.WriteString(tagOpen(node.StripBefore) + " IF " + condition + " " + tagClose(node.StripAfter))
	if err := e.emitBody(node.Body); err != nil {
		return err
	}

	for _, branch := range node.Branches {
		if branch.Condition != nil {
			condition, err := e.emitExpr(branch.Condition)
			if err != nil {
				return err
			}
			e.directive("ELSIF " + condition)
		} else {
			e.directive("ELSE")
		}
		if err := e.emitBody(branch.Body); err != nil {
			return err
		}
	}

	e.directive("END")
	return nil
}

func (e *Emitter) emitFor(node *NodeFor) error {
	iterable, err := e.emitExpr(node.Iterable)
	if err != nil {
		return err
	}
	vars := strings.Join(node.LoopVars, ", ")

	if node.Recursive {
		e.annotation("recursive loop has no Target equivalent")
	}

	// An else arm needs an emptiness check around the whole loop.
	hasElse := node.ElseBody != nil
	if hasElse {
		e.directive("IF " + iterable + ".size")
	}

	e.buf.WriteString(tagOpen(node.StripBefore) + " FOREACH " + vars + " IN " + iterable + " %]")
	if node.Filter != nil {
		filter, err := e.emitExpr(node.Filter)
		if err != nil {
			return err
		}
		e.directive("NEXT UNLESS " + filter)
	}
	if err := e.emitBody(node.Body); err != nil {
		return err
	}
	e.directive("END")

	if hasElse {
		e.directive("ELSE")
		if err := e.emitBody(node.ElseBody); err != nil {
			return err
		}
		e.directive("END")
	}
	return nil
}

func (e *Emitter) emitFrom(node *NodeFrom) error {
	template, err := e.emitBareTemplate(node.Template)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(node.Imports))
	for _, imp := range node.Imports {
		if imp.Alias != "" {
			names = append(names, imp.Name+" as "+imp.Alias)
		} else {
			names = append(names, imp.Name)
		}
	}
	e.annotation("from " + template + " import " + strings.Join(names, ", "))
	return nil
}

func (e *Emitter) emitSet(node *NodeSet) error {
	if node.Value != nil {
		value, err := e.emitExpr(node.Value)
		if err != nil {
			return err
		}
		e.directive(strings.Join(node.Names, ", ") + " = " + value)
		return nil
	}

	// Block form: capture the body through a FILTER wrapper, then assign.
	capture := "set_" + node.Names[0]
	e.directive("FILTER " + capture)
	if err := e.emitBody(node.Body); err != nil {
		return err
	}
	e.directive("END")
	e.directive(node.Names[0] + " = " + capture)
	return nil
}

func (e *Emitter) emitMacro(node *NodeMacro) error {
	args := make([]string, 0, len(node.Args))
	var defaults []string
	for _, arg := range node.Args {
		args = append(args, arg.Name)
		if arg.Default != nil {
			dflt, err := e.emitExpr(arg.Default)
			if err != nil {
				return err
			}
			defaults = append(defaults, arg.Name+" = "+dflt)
		}
	}
	if len(defaults) > 0 {
		e.annotation("macro '" + node.Name + "' defaults: " + strings.Join(defaults, ", "))
	}
	e.directive("MACRO " + node.Name + "(" + strings.Join(args, ", ") + ") BLOCK")
	if err := e.emitBody(node.Body); err != nil {
		return err
	}
	e.directive("END")
	return nil
}

func (e *Emitter) emitCallBlock(node *NodeCallBlock) error {
	call, err := e.emitExpr(node.Call)
	if err != nil {
		return err
	}
	note := "call block approximated with WRAPPER"
	if len(node.Args) > 0 {
		note += " (caller arguments: " + strings.Join(node.Args, ", ") + ")"
	}
	e.annotation(note)
	e.directive("WRAPPER " + call)
	if err := e.emitBody(node.Body); err != nil {
		return err
	}
	e.directive("END")
	return nil
}

// emitFilterChainNames renders a filter-block chain ("upper" or
// "lower | replace('a', 'b')") in application order. The chain was parsed
// over a nil base.
func (e *Emitter) emitFilterChainNames(chain Expr) (string, error) {
	var steps []string
	for chain != nil {
		apply, ok := chain.(*FilterApplyExpr)
		if !ok {
			return "", &Error{
				Kind:      ErrEmit,
				Sender:    "emitter",
				OrigError: fmt.Errorf("unknown filter chain node type %T", chain),
			}
		}
		step := apply.Name
		if len(apply.Args) > 0 {
			args, err := e.emitExprList(apply.Args)
			if err != nil {
				return "", err
			}
			step += "(" + strings.Join(args, ", ") + ")"
		}
		steps = append([]string{step}, steps...)
		chain = apply.Expr
	}
	return strings.Join(steps, " | "), nil
}

// emitBareTemplate renders a template reference with any quoting removed,
// since Target directives take bare template names.
func (e *Emitter) emitBareTemplate(template Expr) (string, error) {
	if lit, ok := template.(*LiteralExpr); ok && lit.Subtype == LiteralString {
		return lit.Value, nil
	}
	return e.emitExpr(template)
}
