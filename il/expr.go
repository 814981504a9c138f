package il

// LiteralKind distinguishes the primitive form of a Literal so the Type
// Inferer can apply §4.5's literal rules without re-parsing Raw.
type LiteralKind string

const (
	LiteralBool   LiteralKind = "bool"
	LiteralString LiteralKind = "string"
	LiteralNull   LiteralKind = "null"
	LiteralInt    LiteralKind = "int"
	LiteralFloat  LiteralKind = "float"
	LiteralBigInt LiteralKind = "bigint"
)

// Literal is a constant value appearing directly in source.
type Literal struct {
	exprBase
	LitKind LiteralKind
	Raw     string // source text, e.g. "0x80000000", "3.14", "\"hi\""
}

func (*Literal) Kind() Kind { return KindLiteral }

// Identifier is a bare name reference resolved via the scope stack.
type Identifier struct {
	exprBase
	Name string
}

func (*Identifier) Kind() Kind { return KindIdentifier }

// This is the receiver reference inside an instance method or constructor.
type This struct{ exprBase }

func (*This) Kind() Kind { return KindThis }

// Super is a reference to the base class, used in parent calls.
type Super struct{ exprBase }

func (*Super) Kind() Kind { return KindSuper }

// Member is a property or element access: dotted (Object.Property) when
// Computed is false, or bracketed (Object[Property]) when true.
type Member struct {
	exprBase
	Object   Expr
	Property Expr
	Computed bool
}

func (*Member) Kind() Kind { return KindMember }

// ThisPropertyAccess reads a field of the enclosing class's instance.
type ThisPropertyAccess struct {
	exprBase
	Property string
}

func (*ThisPropertyAccess) Kind() Kind { return KindThisPropertyAccess }

// ThisMethodCall invokes a method of the enclosing class's instance.
type ThisMethodCall struct {
	exprBase
	Method string
	Args   []Expr
}

func (*ThisMethodCall) Kind() Kind { return KindThisMethodCall }

// ParentConstructorCall invokes the superclass constructor (super(...)).
type ParentConstructorCall struct {
	exprBase
	Args []Expr
}

func (*ParentConstructorCall) Kind() Kind { return KindParentConstructorCall }

// ParentMethodCall invokes a superclass method (super.method(...)).
type ParentMethodCall struct {
	exprBase
	Method string
	Args   []Expr
}

func (*ParentMethodCall) Kind() Kind { return KindParentMethodCall }

// Call is a free or selector function invocation.
type Call struct {
	exprBase
	Callee Expr
	Args   []Expr
}

func (*Call) Kind() Kind { return KindCall }

// New constructs an instance of Type with the given arguments.
type New struct {
	exprBase
	Type     string
	TypeArgs []string
	Args     []Expr
}

func (*New) Kind() Kind { return KindNew }

// Binary is a two-operand arithmetic, bitwise, shift, or comparison
// expression. Op is the JS-idiom operator text (e.g. "+", ">>>", "==").
type Binary struct {
	exprBase
	Op    string
	Left  Expr
	Right Expr
}

func (*Binary) Kind() Kind { return KindBinary }

// Logical is a short-circuiting "&&" or "||" expression.
type Logical struct {
	exprBase
	Op    string
	Left  Expr
	Right Expr
}

func (*Logical) Kind() Kind { return KindLogical }

// Unary is a single-operand prefix operator ("-", "!", "~", "typeof").
type Unary struct {
	exprBase
	Op      string
	Operand Expr
}

func (*Unary) Kind() Kind { return KindUnary }

// Update is a "++"/"--" expression; Prefix distinguishes ++x from x++.
type Update struct {
	exprBase
	Op      string
	Operand Expr
	Prefix  bool
}

func (*Update) Kind() Kind { return KindUpdate }

// Assignment is "=" or a compound assignment ("+=", "&=", ...).
type Assignment struct {
	exprBase
	Op     string
	Target Expr
	Value  Expr
}

func (*Assignment) Kind() Kind { return KindAssignment }

// Conditional is the ternary "Test ? Consequent : Alternate".
type Conditional struct {
	exprBase
	Test       Expr
	Consequent Expr
	Alternate  Expr
}

func (*Conditional) Kind() Kind { return KindConditional }

// Sequence is a comma expression; only the last value is significant.
type Sequence struct {
	exprBase
	Exprs []Expr
}

func (*Sequence) Kind() Kind { return KindSequence }

// Template is a template literal: alternating literal Parts and
// interpolated Exprs (len(Parts) == len(Exprs)+1).
type Template struct {
	exprBase
	Parts []string
	Exprs []Expr
}

func (*Template) Kind() Kind { return KindTemplate }

// Spread expands an iterable in an argument or array-literal position.
type Spread struct {
	exprBase
	Arg Expr
}

func (*Spread) Kind() Kind { return KindSpread }

// ArrayLiteral is a literal array value, e.g. "[1, 2, 3]".
type ArrayLiteral struct {
	exprBase
	Elements []Expr
}

func (*ArrayLiteral) Kind() Kind { return KindArrayLiteral }

// ObjectProperty is a single key/value pair of an ObjectLiteral.
type ObjectProperty struct {
	Key      string
	Value    Expr
	Computed bool
}

// ObjectLiteral is a literal object value, e.g. "{a: 1, b: 2}". When the
// object is used as an element of an array typed as one of the
// framework's crypto record types (TestCase, KeySize, LinkItem,
// Vulnerability), the Node Transformers rewrite it to a constructor call
// (§4.7, "Crypto framework objects").
type ObjectLiteral struct {
	exprBase
	Properties []ObjectProperty
}

func (*ObjectLiteral) Kind() Kind { return KindObjectLiteral }

// ArrowFunction is a lambda. Body holds either a *Block (braced body) or
// an Expr (single-expression body); ExprBody distinguishes the two.
type ArrowFunction struct {
	exprBase
	Params   []*Param
	Body     Node
	ExprBody bool
}

func (*ArrowFunction) Kind() Kind { return KindArrowFunction }
