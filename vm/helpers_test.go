package vm

import (
	"fmt"

	"github.com/chazu/flashvm/abc"
)

// ---------------------------------------------------------------------------
// Test host types
// ---------------------------------------------------------------------------

// recorder is a stage-attachable native that logs what happens to it.
type recorder struct {
	label  string
	events *[]string
	stage  Stage
	calls  [][]Value
	x      float64
}

func (r *recorder) SetStage(s Stage) {
	r.stage = s
	*r.events = append(*r.events, "attach:"+r.label)
}

func (r *recorder) Mark(args []Value) (Value, error) {
	r.calls = append(r.calls, args)
	*r.events = append(*r.events, fmt.Sprintf("mark:%s:%v", r.label, args))
	return nil, nil
}

func (r *recorder) X() float64 { return r.x }

func (r *recorder) SetX(v Value) error {
	n, ok := ToNumber(v)
	if !ok {
		return fmt.Errorf("x: not a number: %v", v)
	}
	r.x = n
	return nil
}

// recorderType builds a host type whose natives share events.
func recorderType(name, super string, events *[]string) *HostType {
	return NewHostType(name, super, func() any {
		return &recorder{label: simpleName(name), events: events}
	}).
		Getter("x", BindGetter(func(r interface{ X() float64 }) Value {
			return r.X()
		})).
		Setter("x", BindSetter(func(r interface{ SetX(Value) error }, v Value) error {
			return r.SetX(v)
		})).
		Function("mark", BindFunction(func(r interface {
			Mark([]Value) (Value, error)
		}, args []Value) (Value, error) {
			return r.Mark(args)
		}))
}

// objectType is a bare root.
func objectType() *HostType {
	return NewHostType("Object", "", func() any { return &struct{}{} }).
		Constant("MAX", 10)
}

// testStage records attachments.
type testStage struct {
	attached []StageAttachable
}

func (s *testStage) Attach(obj StageAttachable) {
	s.attached = append(s.attached, obj)
	obj.SetStage(s)
}

// ---------------------------------------------------------------------------
// Program helpers
// ---------------------------------------------------------------------------

// callOnThis builds "pushscope this; callpropvoid name(a, b)" where the
// callee is found through the receiver.
func callOnThis(name string, a, b int) (*abc.Expr, *abc.Expr) {
	scope := abc.PushScope(abc.This())
	call := abc.CallPropVoid(abc.N(name),
		abc.FindPropStrict(abc.N(name), scope),
		abc.PushByte(a),
		abc.PushByte(b),
	)
	return scope, call
}

// program wraps classes and an initializer body into a program whose last
// script designates "Main".
func program(main *abc.Method, classes ...*abc.Class) *abc.Program {
	p := &abc.Program{Classes: classes, Methods: []*abc.Method{main}}
	for _, c := range classes {
		if c.StaticInit != nil {
			p.Methods = append(p.Methods, c.StaticInit)
		}
		if c.InstanceInit != nil {
			p.Methods = append(p.Methods, c.InstanceInit)
		}
	}
	p.Scripts = []*abc.Script{{Ref: abc.N(main.Name), Init: main}}
	return p
}

func faultsOfKind(d *Domain, kind FaultKind) []Fault {
	var result []Fault
	for _, f := range d.Faults() {
		if f.Kind == kind {
			result = append(result, f)
		}
	}
	return result
}
