package lexer

import (
	"reflect"
	"testing"

	"github.com/alecthomas/repr"

	"github.com/pontaoski/remygo/errors"
	"github.com/pontaoski/remygo/types"
)

const fullExample = `
// hi
/*
 this too
*/
main :: (args: [string]) => {
    println("Hello to:");
    5+5* 6 / 90 - 20;
    x :: true;
    match x
    | true => println("this will always happen")
    | false => println("this will never happen")
    ;
}
`

type kv struct {
	Kind  types.TokenKind
	Value string
}

func lexKinds(t *testing.T, src string) []kv {
	t.Helper()
	toks, err := Lex("test.remy", src)
	if err != nil {
		t.Fatalf("lexing %q: %s", src, err)
	}
	if last := toks[len(toks)-1]; last.Kind != types.EOF {
		t.Fatalf("token stream does not end in EOF: %s", last)
	}
	var ret []kv
	for _, tok := range toks[:len(toks)-1] {
		ret = append(ret, kv{tok.Kind, tok.Value})
	}
	return ret
}

func TestLexer(t *testing.T) {
	got := lexKinds(t, fullExample)
	want := []kv{
		{types.IDENT, "main"},
		{types.DOUBLECOLON, "::"},
		{types.LPAREN, "("},
		{types.IDENT, "args"},
		{types.COLON, ":"},
		{types.LBRACKET, "["},
		{types.IDENT, "string"},
		{types.RBRACKET, "]"},
		{types.RPAREN, ")"},
		{types.FATARROW, "=>"},
		{types.LBRACE, "{"},
		{types.IDENT, "println"},
		{types.LPAREN, "("},
		{types.STRING, `"Hello to:"`},
		{types.RPAREN, ")"},
		{types.SEMICOLON, ";"},
		{types.NUMBER, "5"},
		{types.PLUS, "+"},
		{types.NUMBER, "5"},
		{types.STAR, "*"},
		{types.NUMBER, "6"},
		{types.SLASH, "/"},
		{types.NUMBER, "90"},
		{types.MINUS, "-"},
		{types.NUMBER, "20"},
		{types.SEMICOLON, ";"},
		{types.IDENT, "x"},
		{types.DOUBLECOLON, "::"},
		{types.IDENT, "true"},
		{types.SEMICOLON, ";"},
		{types.MATCH, "match"},
		{types.IDENT, "x"},
		{types.BAR, "|"},
		{types.IDENT, "true"},
		{types.FATARROW, "=>"},
		{types.IDENT, "println"},
		{types.LPAREN, "("},
		{types.STRING, `"this will always happen"`},
		{types.RPAREN, ")"},
		{types.BAR, "|"},
		{types.IDENT, "false"},
		{types.FATARROW, "=>"},
		{types.IDENT, "println"},
		{types.LPAREN, "("},
		{types.STRING, `"this will never happen"`},
		{types.RPAREN, ")"},
		{types.SEMICOLON, ";"},
		{types.RBRACE, "}"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tokens:\n%s", repr.String(got, repr.Indent("  ")))
	}
}

func TestLexerTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []kv
	}{
		{"double colon", "::", []kv{{types.DOUBLECOLON, "::"}}},
		{"colon", ":", []kv{{types.COLON, ":"}}},
		{"colon then double colon", ":::", []kv{{types.DOUBLECOLON, "::"}, {types.COLON, ":"}}},
		{"separated colons", ": :", []kv{{types.COLON, ":"}, {types.COLON, ":"}}},
		{"keywords", "match extern", []kv{{types.MATCH, "match"}, {types.EXTERN, "extern"}}},
		{"keyword prefix is ident", "matches externs", []kv{{types.IDENT, "matches"}, {types.IDENT, "externs"}}},
		{"booleans are idents", "true false", []kv{{types.IDENT, "true"}, {types.IDENT, "false"}}},
		{"underscore ident", "_a1 b_2", []kv{{types.IDENT, "_a1"}, {types.IDENT, "b_2"}}},
		{"float", "3.14", []kv{{types.NUMBER, "3.14"}}},
		{"number then ident", "12ab", []kv{{types.NUMBER, "12"}, {types.IDENT, "ab"}}},
		{"escaped quote", `"a\"b"`, []kv{{types.STRING, `"a\"b"`}}},
		{"dollar without brace", `"$5"`, []kv{{types.STRING, `"$5"`}}},
		{"dollar before escape", `"$\n"`, []kv{{types.STRING, `"$\n"`}}},
		{"dollar before escaped quote", `"a$\"b"`, []kv{{types.STRING, `"a$\"b"`}}},
		{"dollars only", `"$$"`, []kv{{types.STRING, `"$$"`}}},
		{"escaped dollar before brace", `"\${x}"`, []kv{{types.STRING, `"\${x}"`}}},
		{"generic punctuation", "<t: a & b>", []kv{
			{types.LANGLE, "<"},
			{types.IDENT, "t"},
			{types.COLON, ":"},
			{types.IDENT, "a"},
			{types.AMPERSAND, "&"},
			{types.IDENT, "b"},
			{types.RANGLE, ">"},
		}},
		{"operators", "+-*/!|", []kv{
			{types.PLUS, "+"},
			{types.MINUS, "-"},
			{types.STAR, "*"},
			{types.SLASH, "/"},
			{types.EXCLAMATION, "!"},
			{types.BAR, "|"},
		}},
		{"comments only", "// a\n/* b\n c */\t\r\n", nil},
		{"block comment with stars", "/* a * b / c **/x", []kv{{types.IDENT, "x"}}},
		{"division not comment", "a/b", []kv{{types.IDENT, "a"}, {types.SLASH, "/"}, {types.IDENT, "b"}}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lexKinds(t, tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lex(%q) = %s, want %s", tt.input, repr.String(got), repr.String(tt.want))
			}
		})
	}
}

func TestLexerUnrecognized(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		start, end int
	}{
		{"at sign", "main :: @", 8, 9},
		{"at sign first", "@", 0, 1},
		{"equals alone", "a = b", 2, 3},
		{"multibyte rune", "x é", 2, 4},
		{"unterminated string", `x "abc`, 2, 3},
		{"interpolation", `"a${b}"`, 0, 1},
		{"interpolation after dollar", `"$${x}"`, 0, 1},
		{"interpolation after escape", `"$\n${x}"`, 0, 1},
		{"unclosed block comment", "a /* b", 2, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Lex("test.remy", tt.input)
			if err == nil {
				t.Fatalf("expected an error, got %s", repr.String(toks))
			}
			ut, ok := err.(errors.UnrecognizedToken)
			if !ok {
				t.Fatalf("expected UnrecognizedToken, got %T: %s", err, err)
			}
			if ut.Location.From.Offset != tt.start || ut.Location.To.Offset != tt.end {
				t.Errorf("range = [%d, %d), want [%d, %d)",
					ut.Location.From.Offset, ut.Location.To.Offset, tt.start, tt.end)
			}
			if ut.Text != tt.input[tt.start:tt.end] {
				t.Errorf("text = %q, want %q", ut.Text, tt.input[tt.start:tt.end])
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	toks, err := Lex("pos.remy", "a ::\n  bc")
	if err != nil {
		t.Fatal(err)
	}
	want := []types.Span{
		{From: types.Position{Filename: "pos.remy", Offset: 0, Line: 1, Column: 1}, To: types.Position{Filename: "pos.remy", Offset: 1, Line: 1, Column: 2}},
		{From: types.Position{Filename: "pos.remy", Offset: 2, Line: 1, Column: 3}, To: types.Position{Filename: "pos.remy", Offset: 4, Line: 1, Column: 5}},
		{From: types.Position{Filename: "pos.remy", Offset: 7, Line: 2, Column: 3}, To: types.Position{Filename: "pos.remy", Offset: 9, Line: 2, Column: 5}},
		{From: types.Position{Filename: "pos.remy", Offset: 9, Line: 2, Column: 5}, To: types.Position{Filename: "pos.remy", Offset: 9, Line: 2, Column: 5}},
	}
	for i, tok := range toks {
		if tok.Location != want[i] {
			t.Errorf("token %d (%s) at %s, want %s", i, tok, tok.Location, want[i])
		}
	}
	if p := types.PositionAt("pos.remy", "a ::\n  bc", 7); p != want[2].From {
		t.Errorf("PositionAt = %s, want %s", p, want[2].From)
	}
}

func TestLexerDeterministic(t *testing.T) {
	first, err := Lex("a.remy", fullExample)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		again, err := Lex("a.remy", fullExample)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("lexing is not deterministic")
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`"Hello world"`, "Hello world"},
		{`""`, ""},
		{`"a\"b"`, `a"b`},
		{`"tab\there"`, "tab\there"},
		{`"back\\slash"`, `back\slash`},
		{`"\$x"`, "$x"},
		{`"keep\q"`, `keep\q`},
		{`"cost $\"5\""`, `cost $"5"`},
	}
	for _, tt := range tests {
		if got := Unquote(tt.in); got != tt.want {
			t.Errorf("Unquote(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
