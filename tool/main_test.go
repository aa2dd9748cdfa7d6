package main

import (
	"os"
	"strings"
	"testing"
)

const sample = `
type Ident = string;

type Shape =
	| Circle of float64
	| Named of Ident
	| Square;

type Wrapper =
	| Inner of Shape;
`

func TestGenerateDecls(t *testing.T) {
	decls, err := parser.ParseString("sample.adt", sample)
	if err != nil {
		t.Fatal(err)
	}
	if len(decls.Declarations) != 3 {
		t.Fatalf("got %d declarations, want 3", len(decls.Declarations))
	}

	out := GenerateDecls("sample.adt", "shapes", decls)
	for _, want := range []string{
		"// Code generated by adtGen from sample.adt. DO NOT EDIT.",
		"package shapes",
		"type Ident string",
		"type Shape interface {\n\tis_Shape()\n}",
		"type Circle float64",
		"type Named Ident",
		"func (v Square) is_Shape() {}",
		"type Inner struct {\n\tShape\n}",
		"func (v Inner) is_Wrapper() {}",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated code is missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "type Square") {
		t.Errorf("a case without a payload should not declare a type:\n%s", out)
	}
}

// The checked-in sum types must be exactly what go:generate would write.
func TestGeneratedASTUpToDate(t *testing.T) {
	in, err := os.ReadFile("../ast/ast.adt")
	if err != nil {
		t.Fatal(err)
	}
	checkedIn, err := os.ReadFile("../ast/sum_gen.go")
	if err != nil {
		t.Fatal(err)
	}

	decls, err := parser.ParseBytes("ast.adt", in)
	if err != nil {
		t.Fatal(err)
	}
	if got := GenerateDecls("ast.adt", "ast", decls); got != string(checkedIn) {
		t.Errorf("ast/sum_gen.go is stale, run go generate ./ast\ngot:\n%s", got)
	}
}
