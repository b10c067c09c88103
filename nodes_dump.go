package jinja2tt

import (
	"fmt"
	"strings"
)

// DumpTokens renders a token sequence one token per line, for debugging.
func DumpTokens(tokens []*Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.String())
		b.WriteString("\n")
	}
	return b.String()
}

// DumpAST renders the document tree in an indented one-node-per-line form,
// for debugging.
func DumpAST(root *NodeRoot) string {
	var b strings.Builder
	for _, n := range root.Nodes {
		dumpNode(&b, n, 0)
	}
	return b.String()
}

func dumpLine(b *strings.Builder, depth int, format string, args ...interface{}) {
	b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(b, format, args...)
	b.WriteString("\n")
}

func dumpBody(b *strings.Builder, body []Node, depth int) {
	for _, n := range body {
		dumpNode(b, n, depth)
	}
}

func dumpNode(b *strings.Builder, n Node, depth int) {
	switch node := n.(type) {
	case *NodeText:
		dumpLine(b, depth, "Text %q", node.Value)
	case *NodeComment:
		dumpLine(b, depth, "Comment %q", node.Value)
	case *NodeOutput:
		dumpLine(b, depth, "Output sb=%t sa=%t", node.StripBefore, node.StripAfter)
		dumpExpr(b, node.Expr, depth+1)
	case *NodeIf:
		dumpLine(b, depth, "If")
		dumpExpr(b, node.Condition, depth+1)
		dumpBody(b, node.Body, depth+1)
		for _, branch := range node.Branches {
			if branch.Condition != nil {
				dumpLine(b, depth, "Elif")
				dumpExpr(b, branch.Condition, depth+1)
			} else {
				dumpLine(b, depth, "Else")
			}
			dumpBody(b, branch.Body, depth+1)
		}
	case *NodeFor:
		dumpLine(b, depth, "For vars=%v recursive=%t", node.LoopVars, node.Recursive)
		dumpExpr(b, node.Iterable, depth+1)
		if node.Filter != nil {
			dumpLine(b, depth+1, "Filter")
			dumpExpr(b, node.Filter, depth+2)
		}
		dumpBody(b, node.Body, depth+1)
		if node.ElseBody != nil {
			dumpLine(b, depth, "ForElse")
			dumpBody(b, node.ElseBody, depth+1)
		}
	case *NodeBlock:
		dumpLine(b, depth, "Block %s scoped=%t", node.Name, node.Scoped)
		dumpBody(b, node.Body, depth+1)
	case *NodeExtends:
		dumpLine(b, depth, "Extends")
		dumpExpr(b, node.Template, depth+1)
	case *NodeInclude:
		dumpLine(b, depth, "Include ignoreMissing=%t withContext=%t", node.IgnoreMissing, node.WithContext)
		dumpExpr(b, node.Template, depth+1)
	case *NodeImport:
		dumpLine(b, depth, "Import as=%s withContext=%t", node.Alias, node.WithContext)
		dumpExpr(b, node.Template, depth+1)
	case *NodeFrom:
		names := make([]string, 0, len(node.Imports))
		for _, imp := range node.Imports {
			if imp.Alias != "" {
				names = append(names, imp.Name+" as "+imp.Alias)
			} else {
				names = append(names, imp.Name)
			}
		}
		dumpLine(b, depth, "From import=[%s] withContext=%t", strings.Join(names, ", "), node.WithContext)
		dumpExpr(b, node.Template, depth+1)
	case *NodeSet:
		dumpLine(b, depth, "Set names=%v", node.Names)
		if node.Value != nil {
			dumpExpr(b, node.Value, depth+1)
		} else {
			dumpBody(b, node.Body, depth+1)
		}
	case *NodeMacro:
		dumpLine(b, depth, "Macro %s", node.Name)
		for _, arg := range node.Args {
			dumpLine(b, depth+1, "Arg %s", arg.Name)
			if arg.Default != nil {
				dumpExpr(b, arg.Default, depth+2)
			}
		}
		dumpBody(b, node.Body, depth+1)
	case *NodeCallBlock:
		dumpLine(b, depth, "Call args=%v", node.Args)
		dumpExpr(b, node.Call, depth+1)
		dumpBody(b, node.Body, depth+1)
	case *NodeFilterBlock:
		dumpLine(b, depth, "FilterBlock")
		dumpExpr(b, node.Filter, depth+1)
		dumpBody(b, node.Body, depth+1)
	case *NodeRaw:
		dumpLine(b, depth, "Raw %q", node.Value)
	case *NodeWith:
		dumpLine(b, depth, "With")
		for _, a := range node.Assignments {
			dumpLine(b, depth+1, "Assign %s", a.Name)
			dumpExpr(b, a.Value, depth+2)
		}
		dumpBody(b, node.Body, depth+1)
	case *NodeAutoescape:
		dumpLine(b, depth, "Autoescape enabled=%t", node.Enabled)
		dumpBody(b, node.Body, depth+1)
	default:
		dumpLine(b, depth, "Unknown %T", n)
	}
}

func dumpExpr(b *strings.Builder, x Expr, depth int) {
	switch expr := x.(type) {
	case *NameExpr:
		dumpLine(b, depth, "Name %s", expr.Value)
	case *LiteralExpr:
		switch expr.Subtype {
		case LiteralString:
			dumpLine(b, depth, "String %q", expr.Value)
		case LiteralNumber:
			dumpLine(b, depth, "Number %s", expr.Value)
		case LiteralBool:
			dumpLine(b, depth, "Bool %t", expr.Bool)
		case LiteralNone:
			dumpLine(b, depth, "None")
		}
	case *BinopExpr:
		dumpLine(b, depth, "Binop %s", expr.Op)
		dumpExpr(b, expr.Left, depth+1)
		dumpExpr(b, expr.Right, depth+1)
	case *UnaryExpr:
		dumpLine(b, depth, "Unary %s", expr.Op)
		dumpExpr(b, expr.Operand, depth+1)
	case *TernaryExpr:
		dumpLine(b, depth, "Ternary")
		dumpExpr(b, expr.Condition, depth+1)
		dumpExpr(b, expr.TrueVal, depth+1)
		if expr.FalseVal != nil {
			dumpExpr(b, expr.FalseVal, depth+1)
		}
	case *GetAttrExpr:
		dumpLine(b, depth, "GetAttr %s", expr.Attr)
		dumpExpr(b, expr.Expr, depth+1)
	case *GetItemExpr:
		dumpLine(b, depth, "GetItem")
		dumpExpr(b, expr.Expr, depth+1)
		dumpExpr(b, expr.Index, depth+1)
	case *CallExpr:
		dumpLine(b, depth, "Call")
		dumpExpr(b, expr.Expr, depth+1)
		for _, arg := range expr.Args {
			dumpExpr(b, arg, depth+1)
		}
		for _, kw := range expr.Kwargs {
			dumpLine(b, depth+1, "Kwarg %s", kw.Name)
			dumpExpr(b, kw.Value, depth+2)
		}
	case *FilterApplyExpr:
		dumpLine(b, depth, "Filter %s", expr.Name)
		if expr.Expr != nil {
			dumpExpr(b, expr.Expr, depth+1)
		}
		for _, arg := range expr.Args {
			dumpExpr(b, arg, depth+1)
		}
	case *ListExpr:
		dumpLine(b, depth, "List")
		for _, element := range expr.Elements {
			dumpExpr(b, element, depth+1)
		}
	case *TupleExpr:
		dumpLine(b, depth, "Tuple")
		for _, element := range expr.Elements {
			dumpExpr(b, element, depth+1)
		}
	case *DictExpr:
		dumpLine(b, depth, "Dict")
		for _, pair := range expr.Pairs {
			dumpExpr(b, pair.Key, depth+1)
			dumpExpr(b, pair.Value, depth+1)
		}
	case *NamedArgExpr:
		dumpLine(b, depth, "NamedArg %s", expr.Name)
		dumpExpr(b, expr.Value, depth+1)
	default:
		dumpLine(b, depth, "Unknown %T", x)
	}
}
