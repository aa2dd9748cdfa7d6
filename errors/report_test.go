package errors

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/pontaoski/remygo/types"
)

func span(src string, from, to int) types.Span {
	return types.Span{
		From: types.PositionAt("main.remy", src, from),
		To:   types.PositionAt("main.remy", src, to),
	}
}

func TestReportUnrecognized(t *testing.T) {
	src := "main :: () {\n  x @ y\n}"
	var buf bytes.Buffer
	NewReporter(&buf).Report(src, UnrecognizedToken{Text: "@", Location: span(src, 17, 18)})

	out := buf.String()
	for _, want := range []string{
		`unrecognized token "@"`,
		"main.remy:2:5",
		"2 |   x @ y",
		"    ^",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report is missing %q:\n%s", want, out)
		}
	}
}

func TestReportParseFailed(t *testing.T) {
	src := "main :: () { 1 + }"
	got := types.Token{Kind: types.RBRACE, Value: "}", Location: span(src, 17, 18)}
	err := ParseFailed{Mismatches: []Mismatch{
		{Expected: []types.TokenKind{types.STRING, types.NUMBER}, Got: got, Rule: "literal"},
		{Expected: []types.TokenKind{types.MATCH}, Got: got, Rule: "match"},
	}}

	var buf bytes.Buffer
	NewReporter(&buf).Report(src, err)

	out := buf.String()
	for _, want := range []string{
		`unexpected "}"`,
		"main.remy:1:18",
		"literal expected one of STRING, NUMBER",
		"match expected one of MATCH",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report is missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(err.Error(), "2 parse errors") {
		t.Errorf("Error() = %q", err.Error())
	}
	if kinds := err.Expected(); len(kinds) != 3 {
		t.Errorf("Expected() = %v, want 3 kinds", kinds)
	}
}

func TestReportEndOfInput(t *testing.T) {
	src := "main ::"
	eof := types.Token{Kind: types.EOF, Location: types.SingleCharSpan(types.PositionAt("main.remy", src, 7))}
	var buf bytes.Buffer
	NewReporter(&buf).Report(src, ParseFailed{Mismatches: []Mismatch{{Expected: []types.TokenKind{types.LPAREN}, Got: eof, Rule: "literal"}}})

	if out := buf.String(); !strings.Contains(out, "unexpected end of input") || !strings.Contains(out, "^") {
		t.Errorf("unexpected report:\n%s", out)
	}
}

func TestReportOtherError(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf).Report("", fmt.Errorf("disk on fire"))
	if !strings.Contains(buf.String(), "disk on fire") {
		t.Errorf("unexpected report: %q", buf.String())
	}
}
