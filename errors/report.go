package errors

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/pontaoski/remygo/types"
)

// Reporter renders lexer and parser errors against the source they came
// from, in the usual "header, location, source line, caret" layout.
type Reporter struct {
	w      io.Writer
	header lipgloss.Style
	gutter lipgloss.Style
	caret  lipgloss.Style
	note   lipgloss.Style
}

func NewReporter(w io.Writer) *Reporter {
	r := lipgloss.NewRenderer(w)
	return &Reporter{
		w:      w,
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		gutter: r.NewStyle().Foreground(lipgloss.Color("12")),
		caret:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		note:   r.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

// Report writes err. Errors other than UnrecognizedToken and ParseFailed are
// written as a plain header line.
func (r *Reporter) Report(src string, err error) {
	switch e := err.(type) {
	case UnrecognizedToken:
		r.emit(src, fmt.Sprintf("unrecognized token %q", e.Text), e.Location, nil)
	case ParseFailed:
		got := e.Got()
		var notes []string
		for _, m := range e.Mismatches {
			notes = append(notes, fmt.Sprintf("%s expected one of %s", m.Rule, kindList(m.Expected)))
		}
		r.emit(src, fmt.Sprintf("unexpected %s", describe(got)), got.Location, notes)
	default:
		fmt.Fprintf(r.w, "%s %s\n", r.header.Render("error:"), err)
	}
}

func (r *Reporter) emit(src, msg string, at types.Span, notes []string) {
	fmt.Fprintf(r.w, "%s %s\n", r.header.Render("error:"), msg)

	line := at.From.Line
	width := len(fmt.Sprint(line))
	pad := strings.Repeat(" ", width)
	fmt.Fprintf(r.w, "%s%s %s\n", pad, r.gutter.Render("-->"), at.From)

	text, ok := sourceLine(src, line)
	if !ok {
		return
	}
	fmt.Fprintf(r.w, "%s %s\n", pad, r.gutter.Render("|"))
	fmt.Fprintf(r.w, "%s %s %s\n", r.gutter.Render(fmt.Sprint(line)), r.gutter.Render("|"), text)

	col := at.From.Column
	if col < 1 {
		col = 1
	}
	n := caretWidth(src, at, text, col)
	marker := strings.Repeat(" ", col-1) + strings.Repeat("^", n)
	fmt.Fprintf(r.w, "%s %s %s\n", pad, r.gutter.Render("|"), r.caret.Render(marker))

	for _, note := range notes {
		fmt.Fprintf(r.w, "%s %s %s\n", pad, r.gutter.Render("="), r.note.Render("note: "+note))
	}
}

func sourceLine(src string, line int) (string, bool) {
	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[line-1], "\r"), true
}

// caretWidth is the number of runes of the span that fall on its first line,
// at least one.
func caretWidth(src string, at types.Span, text string, col int) int {
	if at.To.Offset <= at.From.Offset || at.From.Offset >= len(src) {
		return 1
	}
	covered := src[at.From.Offset:at.To.Offset]
	if i := strings.IndexByte(covered, '\n'); i >= 0 {
		covered = covered[:i]
	}
	n := utf8.RuneCountInString(covered)
	if rest := utf8.RuneCountInString(text) - (col - 1); n > rest {
		n = rest
	}
	if n < 1 {
		n = 1
	}
	return n
}

func describe(t types.Token) string {
	switch t.Kind {
	case types.EOF:
		return "end of input"
	case types.IDENT:
		return fmt.Sprintf("identifier %q", t.Value)
	case types.NUMBER:
		return fmt.Sprintf("number %s", t.Value)
	case types.STRING:
		return fmt.Sprintf("string %s", t.Value)
	}
	return fmt.Sprintf("%q", t.Value)
}

func kindList(kinds []types.TokenKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}
