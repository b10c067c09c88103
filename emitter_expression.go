package jinja2tt

import (
	"fmt"
	"strings"
)

// binopTargetOps maps Source operator spellings onto Target keywords.
// Everything absent passes through unchanged.
var binopTargetOps = map[string]string{
	"and":    "AND",
	"or":     "OR",
	"~":      "_",
	"in":     "IN",
	"not in": "NOT IN",
	"//":     "div",
}

// loopAttrTargetNames maps the loop pseudo-variable's members onto the
// Target's loop object.
var loopAttrTargetNames = map[string]string{
	"index":  "count",
	"index0": "index",
	"length": "size",
}

// emitExpr renders one expression subtree as Target text.
func (e *Emitter) emitExpr(x Expr) (string, error) {
	switch expr := x.(type) {
	case *NameExpr:
		return expr.Value, nil

	case *LiteralExpr:
		return e.emitLiteral(expr), nil

	case *BinopExpr:
		left, err := e.emitExpr(expr.Left)
		if err != nil {
			return "", err
		}
		right, err := e.emitExpr(expr.Right)
		if err != nil {
			return "", err
		}
		op := expr.Op
		if mapped, ok := binopTargetOps[op]; ok {
			op = mapped
		}
		return "(" + left + " " + op + " " + right + ")", nil

	case *UnaryExpr:
		operand, err := e.emitExpr(expr.Operand)
		if err != nil {
			return "", err
		}
		if expr.Op == "not" {
			return "NOT " + operand, nil
		}
		return expr.Op + operand, nil

	case *TernaryExpr:
		return e.emitTernary(expr)

	case *GetAttrExpr:
		return e.emitGetAttr(expr)

	case *GetItemExpr:
		return e.emitGetItem(expr)

	case *CallExpr:
		return e.emitCall(expr)

	case *FilterApplyExpr:
		return e.emitFilterApply(expr)

	case *ListExpr:
		elements, err := e.emitExprList(expr.Elements)
		if err != nil {
			return "", err
		}
		return "[" + strings.Join(elements, ", ") + "]", nil

	case *TupleExpr:
		elements, err := e.emitExprList(expr.Elements)
		if err != nil {
			return "", err
		}
		return "[" + strings.Join(elements, ", ") + "]", nil

	case *DictExpr:
		return e.emitDict(expr)

	case *NamedArgExpr:
		value, err := e.emitExpr(expr.Value)
		if err != nil {
			return "", err
		}
		return expr.Name + " = " + value, nil
	}

	return "", &Error{
		Kind:      ErrEmit,
		Sender:    "emitter",
		OrigError: fmt.Errorf("unknown expression node type %T", x),
	}
}

func (e *Emitter) emitExprList(exprs []Expr) ([]string, error) {
	rendered := make([]string, 0, len(exprs))
	for _, x := range exprs {
		s, err := e.emitExpr(x)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, s)
	}
	return rendered, nil
}

func (e *Emitter) emitLiteral(lit *LiteralExpr) string {
	switch lit.Subtype {
	case LiteralString:
		return "'" + strings.ReplaceAll(lit.Value, "'", `\'`) + "'"
	case LiteralNumber:
		return strings.ReplaceAll(lit.Value, "_", "")
	case LiteralBool:
		if lit.Bool {
			return "1"
		}
		return "0"
	case LiteralNone:
		return "undef"
	}
	return lit.Value
}

func (e *Emitter) emitTernary(expr *TernaryExpr) (string, error) {
	condition, err := e.emitExpr(expr.Condition)
	if err != nil {
		return "", err
	}
	trueVal, err := e.emitExpr(expr.TrueVal)
	if err != nil {
		return "", err
	}
	falseVal := "''"
	if expr.FalseVal != nil {
		falseVal, err = e.emitExpr(expr.FalseVal)
		if err != nil {
			return "", err
		}
	}
	return "(" + condition + " ? " + trueVal + " : " + falseVal + ")", nil
}

func (e *Emitter) emitGetAttr(expr *GetAttrExpr) (string, error) {
	base, err := e.emitExpr(expr.Expr)
	if err != nil {
		return "", err
	}

	// The loop pseudo-variable's members differ between the dialects.
	if name, ok := expr.Expr.(*NameExpr); ok && name.Value == "loop" {
		switch expr.Attr {
		case "revindex":
			return "loop.max - loop.index + 1", nil
		case "revindex0":
			return "loop.max - loop.index", nil
		}
		if mapped, ok := loopAttrTargetNames[expr.Attr]; ok {
			return "loop." + mapped, nil
		}
	}

	return base + "." + expr.Attr, nil
}

func (e *Emitter) emitGetItem(expr *GetItemExpr) (string, error) {
	base, err := e.emitExpr(expr.Expr)
	if err != nil {
		return "", err
	}

	switch index := expr.Index.(type) {
	case *LiteralExpr:
		switch index.Subtype {
		case LiteralNumber:
			return base + "." + strings.ReplaceAll(index.Value, "_", ""), nil
		case LiteralString:
			if isIdentifier(index.Value) {
				return base + "." + index.Value, nil
			}
		}
	case *NameExpr:
		// Variable index: dereference through the Target's $ syntax.
		return base + ".$" + index.Value, nil
	}

	// Anything else goes through the item vmethod, which accepts an
	// arbitrary key expression.
	rendered, err := e.emitExpr(expr.Index)
	if err != nil {
		return "", err
	}
	return base + ".item(" + rendered + ")", nil
}

func (e *Emitter) emitCall(expr *CallExpr) (string, error) {
	if name, ok := expr.Expr.(*NameExpr); ok {
		switch name.Value {
		case "range":
			return e.emitRange(expr)
		case "super":
			if len(expr.Args) == 0 && len(expr.Kwargs) == 0 {
				return "content", nil
			}
		}
	}

	base, err := e.emitExpr(expr.Expr)
	if err != nil {
		return "", err
	}
	args, err := e.emitExprList(expr.Args)
	if err != nil {
		return "", err
	}
	for _, kw := range expr.Kwargs {
		value, err := e.emitExpr(kw.Value)
		if err != nil {
			return "", err
		}
		args = append(args, kw.Name+" = "+value)
	}
	return base + "(" + strings.Join(args, ", ") + ")", nil
}

// emitRange renders range() as a Target range constructor. The stepped
// three-argument form has no Target equivalent; inside a larger expression
// the step is dropped and the degradation is logged in debug mode (the
// sole-expression case is annotated at the output level instead).
func (e *Emitter) emitRange(expr *CallExpr) (string, error) {
	args, err := e.emitExprList(expr.Args)
	if err != nil {
		return "", err
	}
	switch len(args) {
	case 1:
		return "[0 .. " + args[0] + " - 1]", nil
	case 2:
		return "[" + args[0] + " .. " + args[1] + " - 1]", nil
	case 3:
		logf("range(%s) step dropped: no stepped range in target syntax", strings.Join(args, ", "))
		return "[" + args[0] + " .. " + args[1] + " - 1]", nil
	}
	return "[]", nil
}

func (e *Emitter) emitFilterApply(expr *FilterApplyExpr) (string, error) {
	base, err := e.emitExpr(expr.Expr)
	if err != nil {
		return "", err
	}
	args, err := e.emitExprList(expr.Args)
	if err != nil {
		return "", err
	}

	argSuffix := ""
	if len(args) > 0 {
		argSuffix = "(" + strings.Join(args, ", ") + ")"
	}

	mapping, known := e.filters[expr.Name]
	if !known {
		// No mapping: keep the source filter name behind the pipe.
		return base + " | " + expr.Name + argSuffix, nil
	}

	switch m := mapping.(type) {
	case *MapVmethod:
		return base + "." + m.Name + argSuffix, nil
	case *MapTTFilter:
		return base + " | " + m.Name + argSuffix, nil
	case *MapCustom:
		return m.Format(base, args), nil
	case *MapDrop:
		return base, nil
	}

	return "", &Error{
		Kind:      ErrEmit,
		Sender:    "emitter",
		OrigError: fmt.Errorf("unknown filter mapping type %T for '%s'", mapping, expr.Name),
	}
}

func (e *Emitter) emitDict(expr *DictExpr) (string, error) {
	if len(expr.Pairs) == 0 {
		return "{}", nil
	}
	pairs := make([]string, 0, len(expr.Pairs))
	for _, pair := range expr.Pairs {
		key, err := e.emitExpr(pair.Key)
		if err != nil {
			return "", err
		}
		value, err := e.emitExpr(pair.Value)
		if err != nil {
			return "", err
		}
		pairs = append(pairs, key+" => "+value)
	}
	return "{ " + strings.Join(pairs, ", ") + " }", nil
}

// isIdentifier reports whether s is a plain identifier, usable directly in
// dotted access.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
