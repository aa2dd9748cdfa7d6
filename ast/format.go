package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TypeString renders a type name the way it is written in source.
func TypeString(t TypeName) string {
	if t == nil {
		return ""
	}

	switch v := t.(type) {
	case Named:
		return string(v)
	case Slice:
		return "[" + TypeString(v.Of) + "]"
	case FunctionPointer:
		args := make([]string, len(v.Arguments))
		for i, arg := range v.Arguments {
			args[i] = TypeString(arg)
		}
		return fmt.Sprintf("(%s) %s", strings.Join(args, ", "), TypeString(v.Returns))
	}

	panic(fmt.Sprintf("unhandled type name %T", t))
}

func (v Named) String() string           { return TypeString(v) }
func (v Slice) String() string           { return TypeString(v) }
func (v FunctionPointer) String() string { return TypeString(v) }

// Signature is the type of a function literal, as a function pointer.
func (f Function) Signature() FunctionPointer {
	fp := FunctionPointer{Returns: f.Returns}
	for _, arg := range f.Arguments {
		fp.Arguments = append(fp.Arguments, arg.Kind)
	}
	return fp
}

func (h BindingLeftHand) String() string {
	if len(h.TypeArgs) == 0 {
		return string(h.Name)
	}

	params := make([]string, len(h.TypeArgs))
	for i, ct := range h.TypeArgs {
		params[i] = ct.String()
	}
	return fmt.Sprintf("%s<%s>", h.Name, strings.Join(params, ", "))
}

func (c ConstrainedType) String() string {
	if len(c.Constraints) == 0 {
		return string(c.Name)
	}

	names := make([]string, len(c.Constraints))
	for i, n := range c.Constraints {
		names[i] = string(n)
	}
	return fmt.Sprintf("%s: %s", c.Name, strings.Join(names, " & "))
}

// overflow is a number literal too large for a float64, which the parser
// reads as +Inf.
var overflow = "1" + strings.Repeat("0", 309) + ".0"

// Format prints f back as Remy source. Parsing the output yields f again for
// every tree the parser produces; negative infinities and NaN have no literal
// form.
func Format(f File) string {
	var sb strings.Builder
	for i, def := range f.Definitions {
		if i > 0 {
			sb.WriteString("\n")
		}
		formatTopLevel(&sb, def)
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatTopLevel(sb *strings.Builder, def TopLevel) {
	switch v := def.(type) {
	case Binding:
		fmt.Fprintf(sb, "%s :: ", v.LHS)
		formatLiteral(sb, v.RHS, 0)
	case Extern:
		fmt.Fprintf(sb, "extern %s :: %s", v.Name, TypeString(v.RHS))
	default:
		panic(fmt.Sprintf("unhandled top level %T", def))
	}
}

func formatLiteral(sb *strings.Builder, lit Literal, depth int) {
	switch v := lit.(type) {
	case StringLiteral:
		sb.WriteString(quote(string(v)))
	case Integer:
		sb.WriteString(strconv.FormatInt(int64(v), 10))
	case Float:
		f := float64(v)
		if math.IsInf(f, 1) {
			sb.WriteString(overflow)
			return
		}
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		sb.WriteString(s)
	case Boolean:
		sb.WriteString(strconv.FormatBool(bool(v)))
	case Function:
		args := make([]string, len(v.Arguments))
		for i, arg := range v.Arguments {
			args[i] = fmt.Sprintf("%s: %s", arg.Name, TypeString(arg.Kind))
		}
		fmt.Fprintf(sb, "(%s) %s {", strings.Join(args, ", "), TypeString(v.Returns))
		if len(v.Body) == 0 {
			sb.WriteString("}")
			return
		}
		indent := strings.Repeat("\t", depth+1)
		for i, expr := range v.Body {
			sb.WriteString("\n")
			sb.WriteString(indent)
			formatExpression(sb, expr, depth+1)
			if i < len(v.Body)-1 {
				sb.WriteString(";")
			}
		}
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("\t", depth))
		sb.WriteString("}")
	default:
		panic(fmt.Sprintf("unhandled literal %T", lit))
	}
}

func formatExpression(sb *strings.Builder, expr Expression, depth int) {
	switch v := expr.(type) {
	case Lit:
		formatLiteral(sb, v.Literal, depth)
	case Var:
		sb.WriteString(string(v))
	case Call:
		formatExpression(sb, v.Function, depth)
		sb.WriteString("(")
		for i, arg := range v.Arguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			formatExpression(sb, arg, depth)
		}
		sb.WriteString(")")
	case BinaryOp:
		formatExpression(sb, v.LHS, depth)
		fmt.Fprintf(sb, " %s ", v.Op)
		formatExpression(sb, v.RHS, depth)
	case Match:
		sb.WriteString("match ")
		formatExpression(sb, v.Target, depth)
		for _, cond := range v.Conditions {
			sb.WriteString(" | ")
			formatLiteral(sb, cond.Pattern, depth)
			sb.WriteString(" => ")
			formatExpression(sb, cond.Body, depth)
		}
	case Declaration:
		fmt.Fprintf(sb, "%s :: ", v.To)
		formatExpression(sb, v.Value, depth)
	default:
		panic(fmt.Sprintf("unhandled expression %T", expr))
	}
}

// quote is the inverse of lexer.Unquote for the escapes it understands.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\', '$':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
