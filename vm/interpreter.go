package vm

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/chazu/flashvm/abc"
)

// DefaultMaxDepth bounds nested evaluation (expression nesting, jumps and
// method calls) per interpreter.
const DefaultMaxDepth = 512

// ---------------------------------------------------------------------------
// Interpreter: recursive evaluator over abc expression graphs
// ---------------------------------------------------------------------------

// Interpreter walks a program's control-flow graph. Evaluation is
// synchronous and recursive; the only state is the current receiver and
// block, both held on the Go call stack.
type Interpreter struct {
	Domain *Domain
	Stage  Stage

	// MaxDepth bounds recursion; past it evaluation fails with ErrDepthExceeded.
	MaxDepth int
	// Trace logs every evaluated expression at debug level.
	Trace bool

	log   commonlog.Logger
	depth int
}

// NewInterpreter creates an interpreter over domain. stage may be nil, in
// which case constructed display objects are not attached anywhere.
func NewInterpreter(domain *Domain, stage Stage) *Interpreter {
	return &Interpreter{
		Domain:   domain,
		Stage:    stage,
		MaxDepth: DefaultMaxDepth,
		log:      commonlog.GetLogger("flashvm.interpreter"),
	}
}

// RunProgram defines every class of p, then runs the designated initializer
// (the methods named after the last script's type) with no receiver.
// Each class gets its prototype registered before any initializer runs.
func (in *Interpreter) RunProgram(p *abc.Program) error {
	for _, c := range p.Classes {
		name := c.Name.Qualified()
		proto := NewScriptedPrototype(in.Domain, in, name, c.Super.Qualified())
		if old := in.Domain.Classes.Register(name, proto); old != nil {
			in.log.Debugf("redefined class %s", name)
		}
		for _, b := range c.Traits {
			proto.Define(b.Name, b.Method)
		}
	}

	init := p.Initializer()
	if init == "" {
		return nil
	}
	for _, m := range p.MethodsNamed(init) {
		if err := in.ExecuteMethod(m, nil); err != nil {
			return fmt.Errorf("initializer %s: %w", init, err)
		}
	}
	return nil
}

// ExecuteMethod evaluates the method's entry block.
func (in *Interpreter) ExecuteMethod(m *abc.Method, this ScriptObject) error {
	if m == nil || m.Entry == nil {
		return nil
	}
	return in.ExecuteBlock(m.Entry, this)
}

// ExecuteBlock evaluates each expression in order. Results are discarded;
// control transfer happens inside jump expressions.
func (in *Interpreter) ExecuteBlock(b *abc.Block, this ScriptObject) error {
	for _, e := range b.Exprs {
		if _, err := in.Execute(e, this); err != nil {
			return err
		}
	}
	return nil
}

// Execute evaluates one expression with this as receiver. The returned
// error is ErrMalformedProgram or ErrDepthExceeded; every other failure is
// recorded as a Fault on the domain and yields a nil value.
func (in *Interpreter) Execute(e *abc.Expr, this ScriptObject) (Value, error) {
	in.depth++
	defer func() { in.depth-- }()
	if in.depth > in.maxDepth() {
		return nil, fmt.Errorf("%w: %d at %s", ErrDepthExceeded, in.maxDepth(), e.Op)
	}
	if in.Trace {
		in.log.Debugf("%*s%s", 2*(in.depth-1), "", abc.FormatExpr(e))
	}

	switch e.Op {
	case abc.OpRef:
		if e.Ref != nil && e.Ref.IsThis() && this != nil {
			return this, nil
		}
		return nil, nil

	case abc.OpPushScope:
		return nil, expectOperands(e, 1)

	case abc.OpGetProperty:
		return in.getProperty(e, this)

	case abc.OpCallPropVoid:
		return nil, in.callPropVoid(e, this)

	case abc.OpFindPropStrict:
		return in.findPropStrict(e, this)

	case abc.OpJump:
		if len(e.Succ) != 1 {
			return nil, malformed(e.Op, "expects 1 successor, got %d", len(e.Succ))
		}
		return nil, in.ExecuteBlock(e.Succ[0], this)

	case abc.OpNewClass:
		return in.newClass(e)

	case abc.OpConstructSuper:
		// Superclass construction is carried by the initializers newclass runs.
		return nil, expectOperands(e, 1)

	case abc.OpPushByte:
		return e.Value, nil

	case abc.OpPopScope, abc.OpReturnVoid:
		return nil, nil
	}

	// Everything else is a no-op.
	return nil, nil
}

func (in *Interpreter) maxDepth() int {
	if in.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return in.MaxDepth
}

func expectOperands(e *abc.Expr, n int) error {
	if len(e.Args) != n {
		return malformed(e.Op, "expects %d operands, got %d", n, len(e.Args))
	}
	return nil
}

func expectRef(e *abc.Expr) error {
	if e.Ref == nil {
		return malformed(e.Op, "missing name reference")
	}
	return nil
}

func (in *Interpreter) getProperty(e *abc.Expr, this ScriptObject) (Value, error) {
	if err := expectOperands(e, 1); err != nil {
		return nil, err
	}
	if err := expectRef(e); err != nil {
		return nil, err
	}
	base, err := in.Execute(e.Args[0], this)
	if err != nil {
		return nil, err
	}

	switch b := base.(type) {
	case ScriptObject:
		return b.GetProperty(lenientNative(b), e.Ref.Local), nil
	case *HostMember:
		native, _ := in.nativeOf(this, e)
		v, err := b.Invoke(native, nil)
		if err != nil {
			in.Domain.Report(Fault{Kind: FaultNativeInvocation, Site: e.Op.String(), Name: b.Name, Err: err})
			return nil, nil
		}
		return v, nil
	}
	return base, nil
}

func (in *Interpreter) callPropVoid(e *abc.Expr, this ScriptObject) error {
	switch len(e.Args) {
	case 2:
		// Recognized but not evaluated: argument-less dispatch has no
		// defined semantics yet.
		in.log.Debugf("%s %s: two-operand call skipped", e.Op, refName(e))
		return nil
	case 3:
	default:
		return malformed(e.Op, "expects 2 or 3 operands, got %d", len(e.Args))
	}

	callee, err := in.Execute(e.Args[0], this)
	if err != nil {
		return err
	}
	args := make([]Value, 0, len(e.Args)-1)
	for _, a := range e.Args[1:] {
		v, err := in.Execute(a, this)
		if err != nil {
			return err
		}
		args = append(args, v)
	}

	switch fn := callee.(type) {
	case *HostMember:
		native, _ := in.nativeOf(this, e)
		if _, err := fn.Invoke(native, args); err != nil {
			in.Domain.Report(Fault{Kind: FaultNativeInvocation, Site: e.Op.String(), Name: fn.Name, Err: err})
		}
	case *Function:
		if _, err := fn.Call(args); err != nil {
			if errors.Is(err, ErrMalformedProgram) || errors.Is(err, ErrDepthExceeded) {
				return err
			}
			in.Domain.Report(Fault{Kind: FaultNativeInvocation, Site: e.Op.String(), Name: fn.Name(), Err: err})
		}
	case nil:
		// The miss was reported where the lookup failed.
	default:
		in.Domain.Report(Fault{Kind: FaultLookupMiss, Site: e.Op.String(), Name: refName(e),
			Err: fmt.Errorf("%w: %s", ErrNotCallable, KindOf(callee))})
	}
	return nil
}

// findPropStrict resolves a name through the captured scope chain. Only a
// pushed receiver is searched: a namespace-qualified name resolves as a
// fully qualified class, anything else as a property of the receiver.
func (in *Interpreter) findPropStrict(e *abc.Expr, this ScriptObject) (Value, error) {
	if err := expectOperands(e, 0); err != nil {
		return nil, err
	}
	if err := expectRef(e); err != nil {
		return nil, err
	}

	for _, scope := range e.Scopes {
		if scope.Op != abc.OpPushScope || len(scope.Args) != 1 {
			return nil, malformed(e.Op, "scope entry is %s, not pushscope", scope.Op)
		}
		target := scope.Args[0]
		if target.Op != abc.OpRef || target.Ref == nil || !target.Ref.IsThis() {
			if in.Trace {
				in.log.Debugf("findpropstrict %s: skipping scope %s", e.Ref.Format(), abc.FormatExpr(target))
			}
			continue
		}
		if this == nil {
			continue
		}

		if e.Ref.IsQualified() {
			className := e.Ref.Qualified()
			proto := in.Domain.Classes.Lookup(className)
			if proto == nil {
				in.Domain.Report(Fault{Kind: FaultLookupMiss, Site: e.Op.String(), Name: className, Err: ErrNotFound})
				return nil, nil
			}
			return proto, nil
		}
		return this.GetProperty(lenientNative(this), e.Ref.Local), nil
	}
	return nil, nil
}

// newClass runs the static initializer, constructs a live instance of the
// class's registered prototype, attaches its native object to the stage
// when it takes part in the scene graph, then runs the instance initializer.
func (in *Interpreter) newClass(e *abc.Expr) (Value, error) {
	if err := expectOperands(e, 1); err != nil {
		return nil, err
	}
	c := e.Class
	if c == nil {
		return nil, malformed(e.Op, "missing class")
	}

	if err := in.ExecuteMethod(c.StaticInit, nil); err != nil {
		return nil, err
	}

	name := c.Name.Qualified()
	var live ScriptObject
	switch proto := in.Domain.Classes.Lookup(name).(type) {
	case *ScriptedObject:
		live = NewScriptedInstance(proto, in)
	case *HostObject:
		live = NewHostInstance(proto)
	default:
		in.Domain.Report(Fault{Kind: FaultLookupMiss, Site: e.Op.String(), Name: name, Err: ErrNotFound})
		return nil, nil
	}

	if attachable, isDisplay := lenientNative(live).(StageAttachable); isDisplay && in.Stage != nil {
		in.Stage.Attach(attachable)
	}

	if err := in.ExecuteMethod(c.InstanceInit, live); err != nil {
		return nil, err
	}
	return live, nil
}

// nativeOf returns obj's native object; failures are reported as lookup
// misses (the chain has no host-bridged root).
func (in *Interpreter) nativeOf(obj ScriptObject, e *abc.Expr) (any, bool) {
	if obj == nil {
		return nil, true
	}
	native, err := obj.NativeObject()
	if err != nil {
		in.Domain.Report(Fault{Kind: FaultLookupMiss, Site: e.Op.String(), Name: obj.ClassName(), Err: err})
		return nil, false
	}
	return native, true
}

// lenientNative returns obj's native object, or nil when it has none. Host
// getters reached without one retry on the receiver and report the failure.
func lenientNative(obj ScriptObject) any {
	native, err := obj.NativeObject()
	if err != nil {
		return nil
	}
	return native
}

func refName(e *abc.Expr) string {
	if e.Ref == nil {
		return ""
	}
	return e.Ref.Local
}
