package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pontaoski/remygo/ast"
)

// typeInfo is the JSON summary of what a file exposes: every top-level
// binding and extern, keyed by name, with its type written as source.
type typeInfo struct {
	Package  string            `json:"package"`
	Bindings map[string]string `json:"bindings"`
	Externs  map[string]string `json:"externs"`
}

func collectTypeInfo(pkg string, f ast.File) typeInfo {
	t := typeInfo{
		Package:  pkg,
		Bindings: map[string]string{},
		Externs:  map[string]string{},
	}

	for _, def := range f.Definitions {
		switch v := def.(type) {
		case ast.Binding:
			sig := literalType(v.RHS)
			if len(v.LHS.TypeArgs) > 0 {
				params := v.LHS.String()
				sig = params[len(v.LHS.Name):] + " " + sig
			}
			t.Bindings[string(v.LHS.Name)] = sig
		case ast.Extern:
			t.Externs[string(v.Name)] = ast.TypeString(v.RHS)
		}
	}

	return t
}

func literalType(lit ast.Literal) string {
	switch v := lit.(type) {
	case ast.StringLiteral:
		return "string"
	case ast.Integer:
		return "int"
	case ast.Float:
		return "float"
	case ast.Boolean:
		return "bool"
	case ast.Function:
		return ast.TypeString(v.Signature())
	}
	panic(fmt.Sprintf("unhandled literal %T", lit))
}

func writeTypeInfo(w io.Writer, t typeInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}
