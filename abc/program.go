// Package abc holds the decoded form of an ActionScript byte code program:
// classes, methods and a control-flow graph of basic blocks whose
// expressions are already folded into trees.
//
// The package never parses a SWF or ABC container. A decoder produces these
// values (or the CBOR bundle in wire.go) and the vm package executes them.
package abc

import "strings"

// PublicNamespace is the namespace of unqualified public names.
const PublicNamespace = "public"

// Name is a possibly namespace-qualified reference.
type Name struct {
	Namespace string
	Local     string
}

// N creates a name in the public namespace.
func N(local string) Name {
	return Name{Local: local}
}

// QN creates a namespace-qualified name.
func QN(namespace, local string) Name {
	return Name{Namespace: namespace, Local: local}
}

// ParseName splits a dotted class name ("flash.display.Sprite") into
// namespace and local part.
func ParseName(s string) Name {
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return Name{Namespace: s[:i], Local: s[i+1:]}
	}
	return Name{Local: s}
}

// String returns the local part.
func (n Name) String() string {
	return n.Local
}

// Format renders the name as "ns::local", using "public" for the empty namespace.
func (n Name) Format() string {
	ns := n.Namespace
	if ns == "" {
		ns = PublicNamespace
	}
	return ns + "::" + n.Local
}

// IsQualified reports whether the name lives in a namespace other than public.
func (n Name) IsQualified() bool {
	return n.Namespace != "" && n.Namespace != PublicNamespace
}

// Qualified returns "ns.local" for qualified names and the local part otherwise.
// Class registration and fully qualified lookups use this form.
func (n Name) Qualified() string {
	if !n.IsQualified() {
		return n.Local
	}
	return n.Namespace + "." + n.Local
}

// IsThis reports whether the name denotes the receiver.
func (n Name) IsThis() bool {
	return n.Local == "this" && !n.IsQualified()
}

// ---------------------------------------------------------------------------
// Program structure
// ---------------------------------------------------------------------------

// Program is one decoded ABC unit.
type Program struct {
	Classes []*Class
	Methods []*Method
	Scripts []*Script
}

// Class describes a class defined by the program.
type Class struct {
	Name  Name
	Super Name

	// Traits are the member bindings declared on the instance type.
	Traits []Binding

	StaticInit   *Method // cinit, runs with no receiver
	InstanceInit *Method // iinit, runs with the new instance as receiver
}

// Binding maps a member name to its method body.
type Binding struct {
	Name   string
	Method *Method
}

// Method is a method body: a name and its entry block.
type Method struct {
	Name  string
	Entry *Block
}

// Script is a script entry; Ref names the type its initializer creates.
type Script struct {
	Ref  Name
	Init *Method
}

// Block is a basic block: an ordered run of expressions and its successors.
type Block struct {
	ID    int
	Exprs []*Expr
	Succ  []*Block
}

// Expr is one instruction with its operands folded in.
type Expr struct {
	Op    Opcode
	Args  []*Expr
	Ref   *Name
	Value any

	// Scopes is the scope chain active at this expression, outermost first.
	Scopes []*Expr
	// Succ holds jump targets.
	Succ []*Block
	// Class is the class created by newclass.
	Class *Class
}

// Initializer returns the name of the designated initializer method: the
// type referenced by the last script. Empty when the program has no scripts.
func (p *Program) Initializer() string {
	if len(p.Scripts) == 0 {
		return ""
	}
	return p.Scripts[len(p.Scripts)-1].Ref.String()
}

// MethodsNamed returns the methods whose name equals name, in program order.
func (p *Program) MethodsNamed(name string) []*Method {
	var result []*Method
	for _, m := range p.Methods {
		if m.Name == name {
			result = append(result, m)
		}
	}
	return result
}

// ClassNamed returns the class whose qualified name equals name, or nil.
func (p *Program) ClassNamed(name string) *Class {
	for _, c := range p.Classes {
		if c.Name.Qualified() == name {
			return c
		}
	}
	return nil
}

// NewMethod creates a method with an empty entry block.
func NewMethod(name string) *Method {
	return &Method{Name: name, Entry: &Block{}}
}

// Add appends expressions to the block and returns it.
func (b *Block) Add(exprs ...*Expr) *Block {
	b.Exprs = append(b.Exprs, exprs...)
	return b
}

// Then appends a successor block with the given ID and returns it.
func (b *Block) Then(id int) *Block {
	next := &Block{ID: id}
	b.Succ = append(b.Succ, next)
	return next
}

// ---------------------------------------------------------------------------
// Expression constructors
// ---------------------------------------------------------------------------

func ref(n Name) *Name {
	return &n
}

// RefTo creates an identifier reference.
func RefTo(n Name) *Expr {
	return &Expr{Op: OpRef, Ref: ref(n)}
}

// This creates a reference to the receiver.
func This() *Expr {
	return RefTo(N("this"))
}

// PushScope pushes operand onto the scope chain.
func PushScope(operand *Expr) *Expr {
	return &Expr{Op: OpPushScope, Args: []*Expr{operand}}
}

// PopScope pops the scope chain.
func PopScope() *Expr {
	return &Expr{Op: OpPopScope}
}

// GetProperty reads property name of base.
func GetProperty(base *Expr, name Name) *Expr {
	return &Expr{Op: OpGetProperty, Args: []*Expr{base}, Ref: ref(name)}
}

// CallPropVoid calls property name. The operands are the callee followed by
// its arguments.
func CallPropVoid(name Name, operands ...*Expr) *Expr {
	return &Expr{Op: OpCallPropVoid, Args: operands, Ref: ref(name)}
}

// FindPropStrict finds the owner of name through the given scope chain.
func FindPropStrict(name Name, scopes ...*Expr) *Expr {
	return &Expr{Op: OpFindPropStrict, Ref: ref(name), Scopes: scopes}
}

// Jump transfers control to target.
func Jump(target *Block) *Expr {
	return &Expr{Op: OpJump, Succ: []*Block{target}}
}

// NewClassOf creates class c; base is the superclass operand.
func NewClassOf(c *Class, base *Expr) *Expr {
	return &Expr{Op: OpNewClass, Args: []*Expr{base}, Class: c, Ref: ref(c.Name)}
}

// ConstructSuper calls the superclass constructor on receiver.
func ConstructSuper(receiver *Expr) *Expr {
	return &Expr{Op: OpConstructSuper, Args: []*Expr{receiver}}
}

// PushByte pushes a byte literal.
func PushByte(v int) *Expr {
	return &Expr{Op: OpPushByte, Value: v}
}

// ReturnVoid returns from the method.
func ReturnVoid() *Expr {
	return &Expr{Op: OpReturnVoid}
}
