// Package diagfmt renders diagnostic bags for terminals and tooling.
// The core packages never print; everything user-visible goes through here.
package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"gram/internal/diag"
	"gram/internal/source"
)

var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleMessage = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	stylePath    = lipgloss.NewStyle().Bold(true)
	styleCaret   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleNote    = lipgloss.NewStyle().Faint(true)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <severity> <CODE>: <message>
// затем строку-контекст с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)

	head := fmt.Sprintf("%s:%d:%d:", displayPath(f, opts.PathMode), start.Line, start.Col)
	sev := d.Severity.String()
	if opts.Color {
		head = stylePath.Render(head)
		sev = severityStyle(d.Severity).Render(sev)
	}
	fmt.Fprintf(w, "%s %s %s: %s\n", head, sev, d.Code.ID(), d.Message)

	writeContext(w, f, fs, d.Primary, opts)

	if !opts.ShowNotes {
		return
	}
	for _, note := range d.Notes {
		nstart, _ := fs.Resolve(note.Span)
		line := fmt.Sprintf("  note: %s:%d:%d: %s",
			displayPath(fs.Get(note.Span.File), opts.PathMode), nstart.Line, nstart.Col, note.Msg)
		if opts.Color {
			line = styleNote.Render(line)
		}
		fmt.Fprintln(w, line)
	}
}

// writeContext prints the source line under the span with a caret run.
// Column alignment accounts for display width, so wide runes in the line
// do not shift the carets.
func writeContext(w io.Writer, f *source.File, fs *source.FileSet, sp source.Span, opts PrettyOpts) {
	start, end := fs.Resolve(sp)
	line := f.GetLine(start.Line)
	if line == "" && sp.Empty() {
		return
	}

	prefix := line
	if int(start.Col-1) <= len(line) {
		prefix = line[:start.Col-1]
	}
	pad := runewidth.StringWidth(expandTabs(prefix))

	marked := sp.Len()
	if end.Line != start.Line {
		// многострочный span подчёркиваем до конца первой строки
		marked = uint32(len(line)) - (start.Col - 1)
	}
	width := 1
	if int(start.Col-1) < len(line) {
		upto := int(start.Col-1) + int(marked)
		if upto > len(line) {
			upto = len(line)
		}
		width = runewidth.StringWidth(expandTabs(line[start.Col-1 : upto]))
	}
	if width < 1 {
		width = 1
	}

	caret := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		caret = styleCaret.Render(caret)
	}
	fmt.Fprintf(w, "  %s\n", expandTabs(line))
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), caret)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func severityStyle(s diag.Severity) lipgloss.Style {
	switch s {
	case diag.SevError:
		return styleError
	case diag.SevWarning:
		return styleWarning
	default:
		return styleMessage
	}
}

func displayPath(f *source.File, mode PathMode) string {
	if mode == PathModeBasename {
		return filepath.Base(f.Path)
	}
	return f.Path
}
