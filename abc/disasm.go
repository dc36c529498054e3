package abc

import (
	"fmt"
	"strings"
)

// FormatExpr renders a single expression on one line: mnemonic, reference,
// literal, operand summaries and jump targets.
func FormatExpr(e *Expr) string {
	var sb strings.Builder
	sb.WriteString(e.Op.String())

	if e.Ref != nil {
		sb.WriteByte(' ')
		sb.WriteString(e.Ref.Format())
	}
	if e.Value != nil {
		sb.WriteString(fmt.Sprintf(" %s", formatLiteral(e.Value)))
	}
	if e.Class != nil {
		sb.WriteString(" class=")
		sb.WriteString(e.Class.Name.Qualified())
	}
	if len(e.Args) > 0 {
		sb.WriteString(" (")
		for i, arg := range e.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(summarize(arg))
		}
		sb.WriteByte(')')
	}
	for _, target := range e.Succ {
		sb.WriteString(fmt.Sprintf(" -> B%d", target.ID))
	}
	return sb.String()
}

// summarize renders an operand compactly: references print their name,
// literals their value, anything else its mnemonic.
func summarize(e *Expr) string {
	switch {
	case e.Op == OpRef && e.Ref != nil:
		return e.Ref.String()
	case e.Value != nil:
		return formatLiteral(e.Value)
	case e.Ref != nil:
		return e.Op.String() + " " + e.Ref.String()
	}
	return e.Op.String()
}

func formatLiteral(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}

// Blocks returns the blocks reachable from entry in discovery order.
// Both block successors and jump targets are followed.
func Blocks(entry *Block) []*Block {
	if entry == nil {
		return nil
	}
	seen := map[*Block]bool{entry: true}
	order := []*Block{entry}
	for i := 0; i < len(order); i++ {
		b := order[i]
		visit := func(next *Block) {
			if next != nil && !seen[next] {
				seen[next] = true
				order = append(order, next)
			}
		}
		for _, e := range b.Exprs {
			for _, t := range e.Succ {
				visit(t)
			}
		}
		for _, s := range b.Succ {
			visit(s)
		}
	}
	return order
}

// DisassembleMethod returns a listing of every block reachable from the
// method's entry.
func DisassembleMethod(m *Method) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("; method %s\n", m.Name))
	for _, b := range Blocks(m.Entry) {
		writeBlock(&sb, b)
	}
	return sb.String()
}

func writeBlock(sb *strings.Builder, b *Block) {
	sb.WriteString(fmt.Sprintf("B%d:", b.ID))
	if len(b.Succ) > 0 {
		sb.WriteString(" ; succ")
		for _, s := range b.Succ {
			sb.WriteString(fmt.Sprintf(" B%d", s.ID))
		}
	}
	sb.WriteByte('\n')
	for i, e := range b.Exprs {
		sb.WriteString(fmt.Sprintf("  %04d  %s\n", i, FormatExpr(e)))
	}
}

// Disassemble returns a listing of the whole program: classes with their
// traits and initializers, then every method.
func Disassemble(p *Program) string {
	var sb strings.Builder

	for _, c := range p.Classes {
		sb.WriteString(fmt.Sprintf("; class %s extends %s\n", c.Name.Qualified(), c.Super.Qualified()))
		for _, t := range c.Traits {
			target := "<none>"
			if t.Method != nil {
				target = t.Method.Name
			}
			sb.WriteString(fmt.Sprintf(";   trait %s = %s\n", t.Name, target))
		}
		if c.StaticInit != nil {
			sb.WriteString(fmt.Sprintf(";   cinit %s\n", c.StaticInit.Name))
		}
		if c.InstanceInit != nil {
			sb.WriteString(fmt.Sprintf(";   iinit %s\n", c.InstanceInit.Name))
		}
	}
	if init := p.Initializer(); init != "" {
		sb.WriteString(fmt.Sprintf("; initializer %s\n", init))
	}
	if len(p.Classes) > 0 || len(p.Scripts) > 0 {
		sb.WriteByte('\n')
	}

	for i, m := range p.Methods {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(DisassembleMethod(m))
	}
	return sb.String()
}
