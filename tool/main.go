package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/participle/v2"

	. "github.com/dave/jennifer/jen"
)

type TypeDecls struct {
	Declarations []*Declaration `@@*`
}

// TCase is one arm of a sum type. Without an `of` clause the arm names a
// type declared by hand and only the marker method is generated.
type TCase struct {
	Name string  `@Ident`
	Kind *string `("of" (@Ident | @String | @RawString))?`
}

type Declaration struct {
	Name  string   `"type" @Ident "="`
	Plain *string  `(  (@Ident | @String | @RawString)`
	Many  *[]TCase ` | ("|" (@@))*)`
	I     struct{} `";"`
}

func (t *TypeDecls) IsSumType(name string) bool {
	for _, decls := range t.Declarations {
		if decls.Name == name && decls.Many != nil {
			return true
		}
	}
	return false
}

func GenerateDecls(source, pkgname string, t *TypeDecls) string {
	f := NewFile(pkgname)
	f.HeaderComment(fmt.Sprintf("Code generated by adtGen from %s. DO NOT EDIT.", source))

	for _, decl := range t.Declarations {

		if decl.Plain != nil {
			f.Type().Id(decl.Name).Id(*decl.Plain)
		} else if decl.Many != nil {
			f.Type().Id(decl.Name).Interface(
				Id("is_" + decl.Name).Params(),
			)

			for _, it := range *decl.Many {
				switch {
				case it.Kind == nil:
				case t.IsSumType(*it.Kind):
					f.Type().Id(it.Name).Struct(Id(*it.Kind))
				default:
					f.Type().Id(it.Name).Id(*it.Kind)
				}

				f.Func().Params(Id("v").Id(it.Name)).Id("is_" + decl.Name).Params().Block()
			}
		}
	}

	return fmt.Sprintf("%#v", f)
}

var parser = participle.MustBuild[TypeDecls]()

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: adtGen <input.adt> <output.go> <package>")
		os.Exit(2)
	}
	in := os.Args[1]
	out := os.Args[2]
	pkgname := os.Args[3]

	inData, err := os.ReadFile(in)
	if err != nil {
		panic(err)
	}

	ast, err := parser.ParseBytes(in, inData)
	if err != nil {
		panic(err)
	}

	err = os.WriteFile(out, []byte(GenerateDecls(filepath.Base(in), pkgname, ast)), 0o644)
	if err != nil {
		panic(err)
	}
}
