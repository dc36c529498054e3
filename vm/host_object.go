package vm

import (
	"fmt"
	"sync"
)

// ---------------------------------------------------------------------------
// HostObject: script object backed by a Go value
// ---------------------------------------------------------------------------

// HostObject bridges a host-native Go type into the object model. The
// canonical prototype carries the member maps built from its HostType; a
// live instance only points at its prototype and owns its native object.
type HostObject struct {
	domain *Domain

	// Prototype state; zero on live instances.
	htype      *HostType
	className  string
	simpleName string
	superName  string
	getters    map[string]*HostMember
	setters    map[string]*HostMember
	functions  map[string]*HostMember
	constants  map[string]Value

	// prototype is set on live instances; all lookups delegate to it.
	prototype *HostObject

	mu     sync.Mutex
	native any
}

// newHostPrototype builds the canonical prototype for t, turning its member
// table into member references once.
func newHostPrototype(d *Domain, t *HostType) *HostObject {
	h := &HostObject{
		domain:     d,
		htype:      t,
		className:  t.Name,
		simpleName: simpleName(t.Name),
		superName:  t.Super,
		getters:    make(map[string]*HostMember, len(t.Getters)),
		setters:    make(map[string]*HostMember, len(t.Setters)),
		functions:  make(map[string]*HostMember, len(t.Functions)),
		constants:  make(map[string]Value, len(t.Constants)),
	}
	for name, fn := range t.Getters {
		h.getters[name] = &HostMember{Kind: MemberGetter, Name: name, Owner: t.Name, get: fn}
	}
	for name, fn := range t.Setters {
		h.setters[name] = &HostMember{Kind: MemberSetter, Name: name, Owner: t.Name, set: fn}
	}
	for name, fn := range t.Functions {
		h.functions[name] = &HostMember{Kind: MemberFunction, Name: name, Owner: t.Name, call: fn}
	}
	for name, v := range t.Constants {
		h.constants[name] = v
	}
	return h
}

// NewHostInstance creates a live instance of a host-bridged prototype.
func NewHostInstance(proto *HostObject) *HostObject {
	if proto.prototype != nil {
		proto = proto.prototype
	}
	return &HostObject{domain: proto.domain, prototype: proto}
}

// ClassName returns the fully qualified class name.
func (h *HostObject) ClassName() string {
	if h.prototype != nil {
		return h.prototype.ClassName()
	}
	return h.className
}

// SuperClassName returns the superclass name.
func (h *HostObject) SuperClassName() string {
	if h.prototype != nil {
		return h.prototype.SuperClassName()
	}
	return h.superName
}

// IsPrototype reports whether h is the canonical prototype.
func (h *HostObject) IsPrototype() bool {
	return h.prototype == nil
}

// Prototype returns the canonical prototype (h itself for prototypes).
func (h *HostObject) Prototype() *HostObject {
	if h.prototype != nil {
		return h.prototype
	}
	return h
}

// HostType returns the member table behind h.
func (h *HostObject) HostType() *HostType {
	return h.Prototype().htype
}

func (h *HostObject) domainOf() *Domain {
	return h.domain
}

// GetProperty resolves name in order: getter, own simple class name (the
// class used as a value), constant, setter reference, function reference,
// then the superclass prototype. The simple class name always yields h; a
// getter of that name still runs first.
func (h *HostObject) GetProperty(native any, name string) Value {
	return h.resolve(native, name, h, 0)
}

func (h *HostObject) resolve(native any, name string, receiver ScriptObject, depth int) Value {
	if tooDeep(h.domain, "getproperty", name, depth) {
		return nil
	}
	if h.prototype != nil {
		return h.prototype.resolve(native, name, receiver, depth+1)
	}

	if getter, ok := h.getters[name]; ok {
		v := h.runGetter(getter, native, name, receiver)
		if name == h.simpleName {
			return h
		}
		return v
	}
	if name == h.simpleName {
		return h
	}
	if v, ok := h.constants[name]; ok {
		return v
	}
	if m, ok := h.setters[name]; ok {
		return m
	}
	if m, ok := h.functions[name]; ok {
		return m
	}

	super := h.domain.superPrototype("get "+h.className, h.superName, name)
	if super == nil {
		return nil
	}
	return super.resolve(native, name, receiver, depth+1)
}

// runGetter invokes getter against native, or the receiver's own native
// when none is given. Failures are reported and yield nil.
func (h *HostObject) runGetter(getter *HostMember, native any, name string, receiver ScriptObject) Value {
	if native == nil && receiver != nil {
		n, err := receiver.NativeObject()
		if err != nil {
			h.domain.Report(Fault{Kind: FaultNativeInvocation, Site: "get " + h.className, Name: name, Err: err})
			return nil
		}
		native = n
	}
	v, err := getter.Invoke(native, nil)
	if err != nil {
		h.domain.Report(Fault{Kind: FaultNativeInvocation, Site: "get " + h.className, Name: name, Err: err})
		return nil
	}
	return v
}

// NativeObject returns the native object, constructing it with the host
// type's constructor on first use. Live instances construct their own.
func (h *HostObject) NativeObject() (native any, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.native != nil {
		return h.native, nil
	}
	t := h.HostType()
	if t.New == nil {
		return nil, fmt.Errorf("%w: %s has no constructor", ErrNotFound, t.Name)
	}
	defer func() {
		if r := recover(); r != nil {
			native = nil
			err = fmt.Errorf("%w: constructing %s: %v", ErrNativePanic, t.Name, r)
		}
	}()
	h.native = t.New()
	return h.native, nil
}

func (h *HostObject) String() string {
	if h.prototype != nil {
		return "[object " + h.prototype.simpleName + "]"
	}
	return "[class " + h.simpleName + "]"
}
