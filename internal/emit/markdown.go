// Package emit turns parsed grammar files into rendered documents.
// Emitters are pure tree-to-text transforms: no I/O, no diagnostics,
// deterministic output for a given tree.
package emit

import (
	"fmt"
	"strings"

	"gram/internal/ast"
	"gram/internal/token"
)

// oneOfColumns ограничивает ширину таблицы терминалов.
const oneOfColumns = 8

// Markdown renders sf as a Markdown document: each production becomes a
// definition block, one-of lists become tables of terminals, prose is kept
// verbatim, and HTML markup trivia passes through unchanged.
func Markdown(sf *ast.SourceFile) string {
	var w mdWriter
	w.openTags(sf.LeadingTrivia())
	for _, el := range sf.Elements {
		w.element(el)
	}
	w.closeTags(sf.TrailingTrivia())
	return w.buf.String()
}

type mdWriter struct {
	buf strings.Builder
}

func (w *mdWriter) line(format string, args ...any) {
	fmt.Fprintf(&w.buf, format, args...)
	w.buf.WriteByte('\n')
}

func (w *mdWriter) blank() {
	w.buf.WriteByte('\n')
}

func (w *mdWriter) openTags(trivia []token.Trivia) {
	for _, tr := range trivia {
		if tr.Kind == token.HtmlOpenTagTrivia {
			w.line("<%s>", tr.TagName)
		} else {
			w.line("</%s>", tr.TagName)
		}
	}
	if len(trivia) > 0 {
		w.blank()
	}
}

func (w *mdWriter) closeTags(trivia []token.Trivia) {
	if len(trivia) > 0 {
		w.blank()
	}
	for _, tr := range trivia {
		if tr.Kind == token.HtmlCloseTagTrivia {
			w.line("</%s>", tr.TagName)
		} else {
			w.line("<%s>", tr.TagName)
		}
	}
}

func (w *mdWriter) element(el ast.Node) {
	switch v := el.(type) {
	case *ast.Production:
		w.production(v)
	case *ast.Import:
		w.openTags(v.LeadingTrivia())
		if v.Path != nil {
			w.line("*imports `%s`*", v.Path.Text)
			w.blank()
		}
		w.closeTags(v.TrailingTrivia())
	case *ast.Define:
		// директивы не попадают в документ
	}
}

func (w *mdWriter) production(prod *ast.Production) {
	if prod.Name == nil || prod.Name.Text == "" {
		return
	}
	w.openTags(prod.LeadingTrivia())

	head := "**" + prod.Name.Text + "**"
	if prod.Params != nil && len(prod.Params.Elements) > 0 {
		names := make([]string, 0, len(prod.Params.Elements))
		for _, p := range prod.Params.Elements {
			if p.Name != nil {
				names = append(names, p.Name.Text)
			}
		}
		head += "<sub>[" + strings.Join(names, ", ") + "]</sub>"
	}
	head += " **" + colonText(prod.ColonToken) + "**"

	switch body := prod.Body.(type) {
	case *ast.OneOfList:
		w.line("%s **one of**", head)
		w.blank()
		w.oneOfTable(body.Terminals)
	case *ast.RightHandSideList:
		w.line("%s", head)
		for _, rhs := range body.Elements {
			w.line("%s", "&emsp;"+w.rightHandSide(rhs))
		}
	case *ast.RightHandSide:
		w.line("%s %s", head, w.rightHandSide(body))
	default:
		w.line("%s", head)
	}
	w.blank()

	w.closeTags(prod.TrailingTrivia())
}

// oneOfTable lays the terminals out as a table, at most oneOfColumns per
// row. The first row doubles as the table header; shorter rows are padded
// so every row has the same cell count.
func (w *mdWriter) oneOfTable(terminals []ast.Node) {
	cells := make([]string, 0, len(terminals))
	for _, t := range terminals {
		cells = append(cells, w.symbol(t))
	}
	if len(cells) == 0 {
		return
	}

	width := len(cells)
	if width > oneOfColumns {
		width = oneOfColumns
	}
	rows := make([][]string, 0, (len(cells)+width-1)/width)
	for start := 0; start < len(cells); start += width {
		end := start + width
		if end > len(cells) {
			end = len(cells)
		}
		row := append([]string(nil), cells[start:end]...)
		for len(row) < width {
			row = append(row, "")
		}
		rows = append(rows, row)
	}

	w.line("| %s |", strings.Join(rows[0], " | "))
	sep := make([]string, width)
	for i := range sep {
		sep[i] = "---"
	}
	w.line("| %s |", strings.Join(sep, " | "))
	for _, row := range rows[1:] {
		w.line("| %s |", strings.Join(row, " | "))
	}
	w.blank()
}

func (w *mdWriter) rightHandSide(rhs *ast.RightHandSide) string {
	var parts []string
	if rhs.Symbols != nil {
		for _, sym := range rhs.Symbols.Symbols {
			if text := w.symbol(sym); text != "" {
				parts = append(parts, text)
			}
		}
	}
	out := strings.Join(parts, " ")
	if rhs.Reference != nil && rhs.Reference.Text != "" {
		out += fmt.Sprintf(` <a id="%s"></a>`, rhs.Reference.Text)
	}
	return out
}

func (w *mdWriter) symbol(n ast.Node) string {
	switch v := n.(type) {
	case *ast.Terminal:
		out := "`" + v.Text + "`"
		if v.Optional {
			out += "<sub>opt</sub>"
		}
		return out
	case *ast.Nonterminal:
		return nonterminalText(v)
	case *ast.UnicodeCharacterLiteral:
		return escapeAngles(v.Text)
	case *ast.UnicodeCharacterRange:
		if v.Right == nil {
			return w.symbol(v.Left)
		}
		return w.symbol(v.Left) + " **through** " + w.symbol(v.Right)
	case *ast.ButNotSymbol:
		if v.Left == nil || v.Right == nil {
			return ""
		}
		return w.symbol(v.Left) + " **but not** " + w.symbol(v.Right)
	case *ast.OneOfSymbol:
		parts := make([]string, 0, len(v.Symbols))
		for _, s := range v.Symbols {
			parts = append(parts, w.symbol(s))
		}
		return "**one of** " + strings.Join(parts, " **or** ")
	case *ast.PlaceholderSymbol:
		return "@"
	case *ast.Prose:
		return proseText(v.Fragments)
	case *ast.EmptyAssertion:
		return assertion("empty")
	case *ast.LookaheadAssertion:
		return assertion("lookahead " + operatorText(v.Operator) + " " + w.lookaheadOperand(v.Lookahead))
	case *ast.NoSymbolHereAssertion:
		parts := make([]string, 0, len(v.Symbols))
		for _, s := range v.Symbols {
			parts = append(parts, w.symbol(s))
		}
		return assertion("no " + strings.Join(parts, " or ") + " here")
	case *ast.LexicalGoalAssertion:
		if v.Symbol == nil {
			return assertion("lexical goal")
		}
		return assertion("lexical goal " + nonterminalText(v.Symbol))
	case *ast.ParameterValueAssertion:
		name := ""
		if v.Name != nil {
			name = v.Name.Text
		}
		return assertion(operatorText(v.Operator) + name)
	case *ast.ProseAssertion:
		return assertion("> " + proseText(v.Fragments))
	case *ast.InvalidSymbol, *ast.InvalidAssertion:
		return ""
	}
	return ""
}

func (w *mdWriter) lookaheadOperand(n ast.Node) string {
	set, ok := n.(*ast.SymbolSet)
	if !ok {
		return w.symbol(n)
	}
	parts := make([]string, 0, len(set.Elements))
	for _, span := range set.Elements {
		var syms []string
		for _, s := range span.Symbols {
			syms = append(syms, w.symbol(s))
		}
		parts = append(parts, strings.Join(syms, " "))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func nonterminalText(nt *ast.Nonterminal) string {
	if nt.Name == nil || nt.Name.Text == "" {
		return ""
	}
	out := "*" + nt.Name.Text + "*"
	if nt.Args != nil && len(nt.Args.Elements) > 0 {
		parts := make([]string, 0, len(nt.Args.Elements))
		for _, arg := range nt.Args.Elements {
			name := ""
			if arg.Name != nil {
				name = arg.Name.Text
			}
			parts = append(parts, operatorText(arg.Operator)+name)
		}
		out += "<sub>[" + strings.Join(parts, ", ") + "]</sub>"
	}
	if nt.Optional {
		out += "<sub>opt</sub>"
	}
	return out
}

func proseText(fragments []ast.Node) string {
	var out strings.Builder
	for _, f := range fragments {
		switch v := f.(type) {
		case *ast.ProseFragment:
			out.WriteString(v.Text)
		case *ast.Nonterminal:
			out.WriteString(nonterminalText(v))
		case *ast.Terminal:
			out.WriteString("`" + v.Text + "`")
		}
	}
	return out.String()
}

func assertion(text string) string {
	return `*\[` + text + `\]*`
}

func escapeAngles(text string) string {
	text = strings.ReplaceAll(text, "<", "&lt;")
	return strings.ReplaceAll(text, ">", "&gt;")
}

func colonText(k token.Kind) string {
	switch k {
	case token.ColonColon:
		return "::"
	case token.ColonColonColon:
		return ":::"
	default:
		return ":"
	}
}

func operatorText(k token.Kind) string {
	switch k {
	case token.Plus:
		return "+"
	case token.Tilde:
		return "~"
	case token.Question:
		return "?"
	case token.EqualsEquals:
		return "=="
	case token.ExclamationEquals:
		return "!="
	case token.ElementOf:
		return "∈"
	case token.NotAnElementOf:
		return "∉"
	}
	return ""
}
