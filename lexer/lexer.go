package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/pontaoski/remygo/errors"
	"github.com/pontaoski/remygo/types"
)

// Rules are tried in order and the first match wins, so every spelling that
// is a prefix of another (":" of "::") comes after the longer one.
var definition = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "LineComment", Pattern: `//[^\n]*`},
	{Name: "BlockComment", Pattern: `/\*(?s:.*?)\*/`},
	{Name: "UnclosedComment", Pattern: `/\*`},
	{Name: "RBrace", Pattern: `\}`},
	{Name: "DoubleColon", Pattern: `::`},
	{Name: "FatArrow", Pattern: `=>`},
	{Name: "String", Pattern: `"(?:[^"\\$]|\\.|\$+(?:[^"\\${]|\\.))*\$*"`},
	{Name: "Number", Pattern: `[0-9]+(?:\.[0-9]+)?`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[,:;()\[\]{}<>&!|+\-*/]`},
})

var (
	symbols = definition.Symbols()

	skipped = map[lexer.TokenType]bool{
		symbols["Whitespace"]:   true,
		symbols["LineComment"]:  true,
		symbols["BlockComment"]: true,
	}
	unclosedComment = symbols["UnclosedComment"]
	identType       = symbols["Ident"]
	numberType      = symbols["Number"]
	stringType      = symbols["String"]
)

// Lex tokenizes the whole of src. The returned slice always ends with an EOF
// token positioned at the end of input. Lexing stops at the first byte range
// that is not a token.
func Lex(filename, src string) ([]types.Token, error) {
	lex, err := definition.LexString(filename, src)
	if err != nil {
		return nil, err
	}

	var tokens []types.Token
	pos := types.Position{Filename: filename, Line: 1, Column: 1}

	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, unrecognized(src, pos)
		}
		if tok.EOF() {
			break
		}

		from := pos
		pos = pos.Advance(tok.Value)

		if skipped[tok.Type] {
			continue
		}
		if tok.Type == unclosedComment {
			return nil, errors.UnrecognizedToken{
				Text:     src[from.Offset:],
				Location: types.Span{From: from, To: from.Advance(src[from.Offset:])},
			}
		}

		tokens = append(tokens, types.Token{
			Kind:     classify(tok),
			Value:    tok.Value,
			Location: types.Span{From: from, To: pos},
		})
	}

	return append(tokens, types.Token{
		Kind:     types.EOF,
		Location: types.SingleCharSpan(pos),
	}), nil
}

func classify(tok lexer.Token) types.TokenKind {
	switch tok.Type {
	case identType:
		if kind, ok := types.Keywords[tok.Value]; ok {
			return kind
		}
		return types.IDENT
	case numberType:
		return types.NUMBER
	case stringType:
		return types.STRING
	}
	return types.Punctuation[tok.Value]
}

// unrecognized covers exactly one rune at pos.
func unrecognized(src string, pos types.Position) errors.UnrecognizedToken {
	_, size := utf8.DecodeRuneInString(src[pos.Offset:])
	if size == 0 {
		size = 1
	}
	text := src[pos.Offset : pos.Offset+size]
	return errors.UnrecognizedToken{
		Text:     text,
		Location: types.Span{From: pos, To: pos.Advance(text)},
	}
}

// Unquote strips the quotes of a STRING token and resolves backslash
// escapes. Unknown escapes are kept as written.
func Unquote(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	if !strings.Contains(s, `\`) {
		return s
	}

	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			sb.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '"', '\\', '$':
			sb.WriteByte(s[i])
		default:
			sb.WriteByte('\\')
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}
