package vm

import (
	"fmt"
	"sync"

	"github.com/chazu/flashvm/abc"
)

// ---------------------------------------------------------------------------
// ScriptedObject: class or instance defined by the program
// ---------------------------------------------------------------------------

// ScriptedObject is a class prototype or live instance defined entirely by
// the interpreted program. Prototypes hold the properties set while the
// class definition executes; live instances point at their prototype.
type ScriptedObject struct {
	domain *Domain
	interp *Interpreter

	className string
	superName string
	props     map[string]Value
	order     []string

	// prototype is set on live instances; all lookups delegate to it.
	prototype *ScriptedObject

	mu     sync.Mutex
	bridge *HostObject // live host instance of the nearest native ancestor
}

// NewScriptedPrototype creates the canonical prototype of a scripted class.
// The caller registers it.
func NewScriptedPrototype(d *Domain, interp *Interpreter, className, superName string) *ScriptedObject {
	return &ScriptedObject{
		domain:    d,
		interp:    interp,
		className: className,
		superName: superName,
		props:     make(map[string]Value),
	}
}

// NewScriptedInstance creates a live instance of proto bound to interp.
func NewScriptedInstance(proto *ScriptedObject, interp *Interpreter) *ScriptedObject {
	if proto.prototype != nil {
		proto = proto.prototype
	}
	return &ScriptedObject{
		domain:    proto.domain,
		interp:    interp,
		className: proto.className,
		prototype: proto,
	}
}

// ClassName returns the fully qualified class name.
func (s *ScriptedObject) ClassName() string {
	return s.className
}

// SuperClassName returns the superclass name.
func (s *ScriptedObject) SuperClassName() string {
	if s.prototype != nil {
		return s.prototype.SuperClassName()
	}
	return s.superName
}

// IsPrototype reports whether s is the canonical prototype.
func (s *ScriptedObject) IsPrototype() bool {
	return s.prototype == nil
}

// Prototype returns the canonical prototype (s itself for prototypes).
func (s *ScriptedObject) Prototype() *ScriptedObject {
	if s.prototype != nil {
		return s.prototype
	}
	return s
}

func (s *ScriptedObject) domainOf() *Domain {
	return s.domain
}

// Define sets a property on the prototype.
func (s *ScriptedObject) Define(name string, v Value) {
	p := s.Prototype()
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.props[name]; !ok {
		p.order = append(p.order, name)
	}
	p.props[name] = v
}

// Property returns the raw value stored under name on the prototype's own
// map, without binding or delegation.
func (s *ScriptedObject) Property(name string) (Value, bool) {
	p := s.Prototype()
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.props[name]
	return v, ok
}

// PropertyNames returns the prototype's own property names in definition order.
func (s *ScriptedObject) PropertyNames() []string {
	p := s.Prototype()
	p.mu.Lock()
	defer p.mu.Unlock()
	result := make([]string, len(p.order))
	copy(result, p.order)
	return result
}

// GetProperty resolves name: own map first, binding methods to s; then the
// superclass prototype.
func (s *ScriptedObject) GetProperty(native any, name string) Value {
	return s.resolve(native, name, s, 0)
}

func (s *ScriptedObject) resolve(native any, name string, receiver ScriptObject, depth int) Value {
	if tooDeep(s.domain, "getproperty", name, depth) {
		return nil
	}
	if s.prototype != nil {
		return s.prototype.resolve(native, name, receiver, depth+1)
	}

	if v, ok := s.Property(name); ok {
		if m, isMethod := v.(*abc.Method); isMethod {
			return NewFunction(m, receiver, interpreterFor(receiver, s.interp))
		}
		return v
	}

	super := s.domain.superPrototype("get "+s.className, s.superName, name)
	if super == nil {
		return nil
	}
	return super.resolve(native, name, receiver, depth+1)
}

// interpreterFor prefers the interpreter a live receiver is bound to.
func interpreterFor(receiver ScriptObject, fallback *Interpreter) *Interpreter {
	if so, ok := receiver.(*ScriptedObject); ok && so.interp != nil {
		return so.interp
	}
	return fallback
}

// NativeObject returns the Go object this scripted object rests on. A
// prototype answers with its nearest host-bridged ancestor's native object.
// A live instance creates, once, its own live instance of that ancestor.
func (s *ScriptedObject) NativeObject() (any, error) {
	if s.prototype == nil {
		host, err := s.nearestHost()
		if err != nil {
			return nil, err
		}
		return host.NativeObject()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bridge != nil {
		return s.bridge.NativeObject()
	}
	host, err := s.prototype.nearestHost()
	if err != nil {
		return nil, err
	}
	s.bridge = NewHostInstance(host)
	native, err := s.bridge.NativeObject()
	if err != nil {
		return nil, err
	}
	if n, ok := native.(ClassNamer); ok {
		n.SetClassName(simpleName(s.className))
	}
	return native, nil
}

// ClassNamer is implemented by natives that report the name of the class
// they back. A scripted instance renames its bridge native after itself.
type ClassNamer interface {
	SetClassName(name string)
}

// nearestHost walks the superclass chain to the first host-bridged prototype.
func (s *ScriptedObject) nearestHost() (*HostObject, error) {
	name := s.superName
	for steps := 0; steps < s.domain.maxHierarchy(); steps++ {
		if name == "" {
			break
		}
		switch p := s.domain.Classes.Lookup(name).(type) {
		case *HostObject:
			return p.Prototype(), nil
		case *ScriptedObject:
			name = p.SuperClassName()
		default:
			return nil, fmt.Errorf("%w: %s: superclass %s not registered", ErrNoHostAncestor, s.className, name)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoHostAncestor, s.className)
}

func (s *ScriptedObject) String() string {
	if s.prototype != nil {
		return "[object " + simpleName(s.className) + "]"
	}
	return "[class " + simpleName(s.className) + "]"
}
