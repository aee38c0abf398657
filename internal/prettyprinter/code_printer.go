package prettyprinter

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/Happy-Ferret/futhark/internal/ast"
	"github.com/Happy-Ferret/futhark/internal/symbols"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3,
	"!=": 3,
	"<":  4,
	">":  4,
	"<=": 4,
	">=": 4,
	"+":  5,
	"-":  5,
	"*":  6,
	"/":  6,
	"%":  6,
	"**": 7, // Power (right-assoc)
}

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 8
}

var rightAssoc = map[string]bool{
	"**": true,
}

// CodePrinter renders a (typically monomorphized) program back into a
// source-like form, mostly for diagnostics and test output.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

func (p *CodePrinter) Print(prog *ast.Program) string {
	p.buf.Reset()
	for i, dec := range prog.Decs {
		if i > 0 {
			p.buf.WriteString("\n")
		}
		p.printDec(dec)
		p.buf.WriteString("\n")
	}
	return p.buf.String()
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("  ")
	}
}

func (p *CodePrinter) printDec(dec ast.Dec) {
	switch d := dec.(type) {
	case *ast.ValBind:
		if d.Entry {
			p.buf.WriteString("entry ")
		} else {
			p.buf.WriteString("let ")
		}
		p.buf.WriteString(d.Name.String())
		for _, tp := range d.TypeParams {
			p.buf.WriteString(" '" + tp)
		}
		p.printParams(d.Params)
		if d.RetType != nil {
			p.buf.WriteString(": " + d.RetType.String())
		}
		p.buf.WriteString(" =\n")
		p.indent++
		p.writeIndent()
		p.printExpr(d.Body, 0)
		p.indent--
	case *ast.TypeBind:
		p.buf.WriteString("type " + d.Name.String())
		for _, tp := range d.TypeParams {
			p.buf.WriteString(" '" + tp)
		}
		p.buf.WriteString(" = " + d.Def.String())
	case *ast.ModBind:
		p.buf.WriteString("module " + d.Name.String())
	}
}

func (p *CodePrinter) printParams(params []*ast.Param) {
	for _, prm := range params {
		p.buf.WriteString(" (" + prm.Name.String() + ": " + prm.Typ.String() + ")")
	}
}

// printExpr renders an expression, parenthesizing when its precedence is
// below the context's.
func (p *CodePrinter) printExpr(expr ast.Expression, prec int) {
	switch e := expr.(type) {
	case *ast.IntLit:
		p.buf.WriteString(strconv.FormatInt(e.Value, 10))
	case *ast.FloatLit:
		p.buf.WriteString(strconv.FormatFloat(e.Value, 'g', -1, 64))
	case *ast.BoolLit:
		p.buf.WriteString(strconv.FormatBool(e.Value))
	case *ast.Var:
		p.buf.WriteString(e.Name.String())
	case *ast.Negate:
		p.buf.WriteString("-")
		p.printExpr(e.Value, 9)
	case *ast.Apply:
		p.printApply(e, prec)
	case *ast.Lambda:
		p.parenIf(prec > 0, func() {
			p.buf.WriteString("\\")
			for i, prm := range e.Params {
				if i > 0 {
					p.buf.WriteString(" ")
				}
				p.buf.WriteString("(" + prm.Name.String() + ": " + prm.Typ.String() + ")")
			}
			p.buf.WriteString(" -> ")
			p.printExpr(e.Body, 0)
		})
	case *ast.LetPat:
		p.parenIf(prec > 0, func() {
			p.buf.WriteString("let " + e.Name.String() + " = ")
			p.printExpr(e.Value, 0)
			p.newlineIndent()
			p.buf.WriteString("in ")
			p.printExpr(e.Body, 0)
		})
	case *ast.LetFun:
		p.parenIf(prec > 0, func() {
			p.buf.WriteString("let " + e.Name.String())
			for _, tp := range e.TypeParams {
				p.buf.WriteString(" '" + tp)
			}
			p.printParams(e.Params)
			p.buf.WriteString(" = ")
			p.printExpr(e.FunBody, 0)
			p.newlineIndent()
			p.buf.WriteString("in ")
			p.printExpr(e.Body, 0)
		})
	case *ast.If:
		p.parenIf(prec > 0, func() {
			p.buf.WriteString("if ")
			p.printExpr(e.Cond, 0)
			p.buf.WriteString(" then ")
			p.printExpr(e.Then, 0)
			p.buf.WriteString(" else ")
			p.printExpr(e.Else, 0)
		})
	case *ast.RecordLit:
		p.buf.WriteString("{")
		fields := append([]*ast.FieldExpr(nil), e.Fields...)
		sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
		for i, f := range fields {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.buf.WriteString(f.Name + " = ")
			p.printExpr(f.Value, 0)
		}
		p.buf.WriteString("}")
	case *ast.Project:
		p.printExpr(e.Value, 9)
		p.buf.WriteString("." + e.Field)
	case *ast.ArrayLit:
		p.buf.WriteString("[")
		for i, el := range e.Elems {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.printExpr(el, 0)
		}
		p.buf.WriteString("]")
	case *ast.Index:
		p.printExpr(e.Array, 9)
		p.buf.WriteString("[")
		for i, ix := range e.Indices {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.printExpr(ix, 0)
		}
		p.buf.WriteString("]")
	case *ast.Map:
		p.printCombinator(prec, "map", e.Fun, e.Arr)
	case *ast.Filter:
		p.printCombinator(prec, "filter", e.Fun, e.Arr)
	case *ast.Reduce:
		name := "reduce"
		if e.Comm {
			name = "reduce_comm"
		}
		p.printCombinator(prec, name, e.Fun, e.Neutral, e.Arr)
	case *ast.Scan:
		p.printCombinator(prec, "scan", e.Fun, e.Neutral, e.Arr)
	case *ast.Partition:
		p.printCombinator(prec, "partition", e.Fun, e.Arr)
	case *ast.StreamMap:
		p.printCombinator(prec, "stream_map", e.Fun, e.Arr)
	case *ast.StreamRed:
		p.printCombinator(prec, "stream_red", e.Op, e.Fun, e.Arr)
	default:
		p.buf.WriteString("<" + expr.TokenLiteral() + ">")
	}
}

// printApply renders binary intrinsic spines infix and everything else as
// juxtaposition.
func (p *CodePrinter) printApply(e *ast.Apply, prec int) {
	if inner, ok := e.Fun.(*ast.Apply); ok {
		if v, ok := inner.Fun.(*ast.Var); ok && symbols.IsIntrinsic(v.Name.Name) {
			op := v.Name.Name.Base
			if _, known := operatorPrecedence[op]; known {
				opPrec := getPrecedence(op)
				lp, rp := opPrec, opPrec+1
				if rightAssoc[op] {
					lp, rp = opPrec+1, opPrec
				}
				p.parenIf(prec > opPrec, func() {
					p.printExpr(inner.Arg, lp)
					p.buf.WriteString(" " + op + " ")
					p.printExpr(e.Arg, rp)
				})
				return
			}
		}
	}
	p.parenIf(prec > 8, func() {
		p.printExpr(e.Fun, 8)
		p.buf.WriteString(" ")
		p.printExpr(e.Arg, 9)
	})
}

func (p *CodePrinter) printCombinator(prec int, name string, args ...ast.Expression) {
	p.parenIf(prec > 8, func() {
		p.buf.WriteString(name)
		for _, a := range args {
			p.buf.WriteString(" ")
			p.printExpr(a, 9)
		}
	})
}

func (p *CodePrinter) parenIf(cond bool, body func()) {
	if cond {
		p.buf.WriteString("(")
	}
	body()
	if cond {
		p.buf.WriteString(")")
	}
}

func (p *CodePrinter) newlineIndent() {
	p.buf.WriteString("\n")
	p.writeIndent()
	p.buf.WriteString("  ")
}
