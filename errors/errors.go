package errors

import (
	"fmt"
	"strings"

	"github.com/pontaoski/remygo/types"
)

// UnrecognizedToken is returned by the lexer for the first byte range that
// matches neither a token nor a skip pattern.
type UnrecognizedToken struct {
	Text     string
	Location types.Span
}

func (e UnrecognizedToken) Error() string {
	return fmt.Sprintf("unrecognized token %q. %s", e.Text, e.Location)
}

// Mismatch records one place where the grammar wanted one of Expected and
// found Got instead. Rule names the production being parsed.
type Mismatch struct {
	Expected []types.TokenKind
	Got      types.Token
	Rule     string
}

func (e Mismatch) Error() string {
	return fmt.Sprintf("got a %s, expected one of %s while parsing %s. %s", e.Got, e.Expected, e.Rule, e.Got.Location)
}

// ParseFailed holds every mismatch recorded at the furthest position the
// parser reached. It is never empty.
type ParseFailed struct {
	Mismatches []Mismatch
}

func (e ParseFailed) Error() string {
	if len(e.Mismatches) == 1 {
		return e.Mismatches[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d parse errors:", len(e.Mismatches))
	for _, m := range e.Mismatches {
		sb.WriteString("\n\t")
		sb.WriteString(m.Error())
	}
	return sb.String()
}

// Got is the token every mismatch was recorded at.
func (e ParseFailed) Got() types.Token {
	return e.Mismatches[0].Got
}

// Expected merges the expected kinds of all mismatches, in recording order.
func (e ParseFailed) Expected() []types.TokenKind {
	seen := map[types.TokenKind]bool{}
	var kinds []types.TokenKind
	for _, m := range e.Mismatches {
		for _, k := range m.Expected {
			if !seen[k] {
				seen[k] = true
				kinds = append(kinds, k)
			}
		}
	}
	return kinds
}
