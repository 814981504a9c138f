// Package il defines the intermediate-language AST consumed by the
// transformer. The IL AST is produced upstream (JS parser + IL producer,
// both out of scope for this module) and is immutable once built.
package il

// Kind identifies the concrete shape of a Node. It is the tag of the
// closed sum type described by the Node interface: every switch over a
// Kind is expected to be exhaustive, falling through to an explicit
// "unhandled node" diagnostic rather than a silent default.
type Kind string

const (
	KindProgram     Kind = "Program"
	KindClass       Kind = "Class"
	KindMethod      Kind = "Method"
	KindConstructor Kind = "Constructor"
	KindField       Kind = "Field"
	KindProperty    Kind = "Property"
	KindBlock       Kind = "Block"
	KindVarDecl     Kind = "VarDecl"
	KindParam       Kind = "Param"

	KindLiteral               Kind = "Literal"
	KindIdentifier            Kind = "Identifier"
	KindThis                  Kind = "This"
	KindSuper                 Kind = "Super"
	KindMember                Kind = "Member"
	KindThisPropertyAccess    Kind = "ThisPropertyAccess"
	KindThisMethodCall        Kind = "ThisMethodCall"
	KindParentConstructorCall Kind = "ParentConstructorCall"
	KindParentMethodCall      Kind = "ParentMethodCall"
	KindCall                  Kind = "Call"
	KindNew                   Kind = "New"
	KindBinary                Kind = "Binary"
	KindLogical               Kind = "Logical"
	KindUnary                 Kind = "Unary"
	KindUpdate                Kind = "Update"
	KindAssignment            Kind = "Assignment"
	KindConditional           Kind = "Conditional"
	KindSequence              Kind = "Sequence"
	KindTemplate              Kind = "Template"
	KindSpread                Kind = "Spread"
	KindArrayLiteral          Kind = "ArrayLiteral"
	KindObjectLiteral         Kind = "ObjectLiteral"
	KindArrowFunction         Kind = "ArrowFunction"

	KindIf       Kind = "If"
	KindFor      Kind = "For"
	KindForOf    Kind = "ForOf"
	KindForIn    Kind = "ForIn"
	KindWhile    Kind = "While"
	KindDoWhile  Kind = "DoWhile"
	KindSwitch   Kind = "Switch"
	KindBreak    Kind = "Break"
	KindContinue Kind = "Continue"
	KindThrow    Kind = "Throw"
	KindTry      Kind = "Try"
	KindReturn   Kind = "Return"
	KindEmpty    Kind = "Empty"
	KindExprStmt Kind = "ExprStmt"

	// KindIntrinsic is the shared kind for every IL-lowered primitive
	// (rotations, byte packing, collection ops, string ops, math ops, ...).
	// See Intrinsic and Op for the closed enum of operations it carries.
	KindIntrinsic Kind = "Intrinsic"

	KindDestructuringDecl Kind = "DestructuringDecl"
)

// Node is the marker interface implemented by every IL AST node.
type Node interface {
	Kind() Kind
}

// Expr is an IL node that appears in expression position.
type Expr interface {
	Node
	isExpr()
}

// Stmt is an IL node that appears in statement position.
type Stmt interface {
	Node
	isStmt()
}

type exprBase struct{}

func (exprBase) isExpr() {}

type stmtBase struct{}

func (stmtBase) isStmt() {}

// Program is the root of an IL AST: a flat list of top-level classes.
type Program struct {
	Classes []*Class
}

func (*Program) Kind() Kind { return KindProgram }

// Class describes a single IL class, interface, or enum declaration.
type Class struct {
	Name         string
	Extends      string
	Implements   []string
	IsInterface  bool
	IsEnum       bool
	IsAbstract   bool
	TypeParams   []string
	Fields       []*Field
	Properties   []*Property
	Constructors []*Constructor
	Methods      []*Method
	Nested       []*Class
	EnumConstants []EnumConstant
}

func (*Class) Kind() Kind { return KindClass }

// EnumConstant is a single named value of an IL enum class.
type EnumConstant struct {
	Name string
	Args []Expr
}

// Field is an instance or static field declaration.
type Field struct {
	Name       string
	TypeHint   string
	IsStatic   bool
	Init       Expr
	Annotation []string
}

func (*Field) Kind() Kind { return KindField }

// Property models a getter/setter pair lowered from JS accessor syntax.
type Property struct {
	Name     string
	TypeHint string
	Getter   *Block
	Setter   *Block
	SetParam string
}

func (*Property) Kind() Kind { return KindProperty }

// Param is a single method or constructor formal parameter.
type Param struct {
	Name     string
	TypeHint string
	IsRest   bool
}

func (*Param) Kind() Kind { return KindParam }

// Method is an instance or static method declaration.
type Method struct {
	Name       string
	Params     []*Param
	ReturnHint string
	Body       *Block
	IsStatic   bool
	IsOverride bool
	TypeParams []string
}

func (*Method) Kind() Kind { return KindMethod }

// Constructor is a class constructor declaration.
type Constructor struct {
	Params []*Param
	Body   *Block
}

func (*Constructor) Kind() Kind { return KindConstructor }

// Block is an ordered list of statements forming a lexical body.
type Block struct {
	Stmts []Stmt
}

func (*Block) Kind() Kind { return KindBlock }
func (*Block) isStmt()    {}

// VarDecl declares one local variable, optionally with an initializer.
type VarDecl struct {
	stmtBase
	Name     string
	TypeHint string
	Init     Expr
	// DeclKind records the JS declaration form ("const", "let", "var") for
	// diagnostics; it carries no semantic weight once typed.
	DeclKind string
}

func (*VarDecl) Kind() Kind { return KindVarDecl }
