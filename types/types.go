package types

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Position is a location in a source file. Offset is a 0-based byte offset;
// Line and Column are 1-based.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// Span is a half-open byte range [From.Offset, To.Offset).
type Span struct {
	From Position
	To   Position
}

type TokenKind int

const (
	EOF TokenKind = iota

	COMMA
	COLON
	DOUBLECOLON
	SEMICOLON
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	LBRACE
	RBRACE
	LANGLE
	RANGLE
	AMPERSAND
	EXCLAMATION
	FATARROW
	BAR
	PLUS
	MINUS
	STAR
	SLASH

	MATCH
	EXTERN

	IDENT
	NUMBER
	STRING
)

var kindNames = map[TokenKind]string{
	EOF:         "EOF",
	COMMA:       "COMMA",
	COLON:       "COLON",
	DOUBLECOLON: "DOUBLECOLON",
	SEMICOLON:   "SEMICOLON",
	LPAREN:      "LPAREN",
	RPAREN:      "RPAREN",
	LBRACKET:    "LBRACKET",
	RBRACKET:    "RBRACKET",
	LBRACE:      "LBRACE",
	RBRACE:      "RBRACE",
	LANGLE:      "LANGLE",
	RANGLE:      "RANGLE",
	AMPERSAND:   "AMPERSAND",
	EXCLAMATION: "EXCLAMATION",
	FATARROW:    "FATARROW",
	BAR:         "BAR",
	PLUS:        "PLUS",
	MINUS:       "MINUS",
	STAR:        "STAR",
	SLASH:       "SLASH",
	MATCH:       "MATCH",
	EXTERN:      "EXTERN",
	IDENT:       "IDENT",
	NUMBER:      "NUMBER",
	STRING:      "STRING",
}

func (t TokenKind) String() string {
	if name, ok := kindNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(t))
}

// Punctuation maps the fixed spelling of every punctuation token to its kind.
var Punctuation = map[string]TokenKind{
	",":  COMMA,
	":":  COLON,
	"::": DOUBLECOLON,
	";":  SEMICOLON,
	"(":  LPAREN,
	")":  RPAREN,
	"[":  LBRACKET,
	"]":  RBRACKET,
	"{":  LBRACE,
	"}":  RBRACE,
	"<":  LANGLE,
	">":  RANGLE,
	"&":  AMPERSAND,
	"!":  EXCLAMATION,
	"=>": FATARROW,
	"|":  BAR,
	"+":  PLUS,
	"-":  MINUS,
	"*":  STAR,
	"/":  SLASH,
}

// Keywords take priority over IDENT for these exact spellings.
var Keywords = map[string]TokenKind{
	"match":  MATCH,
	"extern": EXTERN,
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.From, s.To.Line, s.To.Column)
}

// Len is the number of bytes covered by the span.
func (s Span) Len() int {
	return s.To.Offset - s.From.Offset
}

func SingleCharSpan(p Position) Span {
	return Span{p, p}
}

// PositionAt computes the line and column of a byte offset in src.
func PositionAt(filename, src string, offset int) Position {
	if offset > len(src) {
		offset = len(src)
	}
	before := src[:offset]
	line := strings.Count(before, "\n") + 1
	col := utf8.RuneCountInString(before[strings.LastIndexByte(before, '\n')+1:]) + 1
	return Position{
		Filename: filename,
		Offset:   offset,
		Line:     line,
		Column:   col,
	}
}

// Advance returns the position reached after consuming text starting at p.
func (p Position) Advance(text string) Position {
	for _, r := range text {
		if r == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
	}
	p.Offset += len(text)
	return p
}

type Token struct {
	Kind     TokenKind
	Value    string
	Location Span
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "EOF"
	case IDENT, NUMBER, STRING:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Value)
	default:
		return fmt.Sprintf("%q", t.Value)
	}
}
