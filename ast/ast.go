// Package ast holds the syntax tree of a Remy source file. Nodes are plain
// values: the parser builds each one once and nothing mutates it afterwards.
//
// The sum types (TopLevel, Literal, TypeName, Expression) and their marker
// methods are generated from ast.adt; the product types live here.
package ast

//go:generate sh -c "cd ../tool && go run . ../ast/ast.adt ../ast/sum_gen.go ast"

// File is one source file; definition order is preserved.
type File struct {
	Definitions []TopLevel
}

// Binding is a top-level `name :: literal`, optionally generic.
type Binding struct {
	LHS BindingLeftHand
	RHS Literal
}

// Extern declares a foreign name by its type alone.
type Extern struct {
	Name Ident
	RHS  TypeName
}

type BindingLeftHand struct {
	Name     Ident
	TypeArgs []ConstrainedType
}

// ConstrainedType is a type parameter and the names it must satisfy, all of
// them at once.
type ConstrainedType struct {
	Name        Ident
	Constraints []Ident
}

type AnnotatedIdent struct {
	Name Ident
	Kind TypeName
}

type Function struct {
	Arguments []AnnotatedIdent
	Returns   TypeName
	Body      []Expression
}

// Unit is the return type of a function literal written without one.
const Unit = Named("unit")

type Slice struct {
	Of TypeName
}

type FunctionPointer struct {
	Arguments []TypeName
	Returns   TypeName
}

type Call struct {
	Function  Expression
	Arguments []Expression
}

type BinaryOperator int

const (
	Add BinaryOperator = iota
	Subtract
	Multiply
	Divide
)

func (o BinaryOperator) String() string {
	switch o {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	}
	return "?"
}

type BinaryOp struct {
	Op  BinaryOperator
	LHS Expression
	RHS Expression
}

// Condition is one `| pattern => body` arm of a match.
type Condition struct {
	Pattern Literal
	Body    Expression
}

type Match struct {
	Target     Expression
	Conditions []Condition
}

// Declaration is a local `name :: value` inside a block.
type Declaration struct {
	To    Ident
	Value Expression
}
