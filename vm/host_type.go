package vm

import (
	"fmt"
	"sort"
)

// GetterFunc reads a property of a native object.
type GetterFunc func(native any) (Value, error)

// SetterFunc writes a property of a native object.
type SetterFunc func(native any, v Value) error

// FunctionFunc calls a method of a native object.
type FunctionFunc func(native any, args []Value) (Value, error)

// HostType is the static member table of a host-bridged class: the Go
// constructor of its native objects and the getters, setters, functions and
// constants scripts can reach. Tables are built once, either by hand with
// the chaining methods below or by hostgen from //as: directives.
type HostType struct {
	Name  string // fully qualified class name, e.g. "flash.display.Sprite"
	Super string // superclass name; empty for the root
	New   func() any

	Getters   map[string]GetterFunc
	Setters   map[string]SetterFunc
	Functions map[string]FunctionFunc
	Constants map[string]Value
}

// NewHostType creates an empty member table.
func NewHostType(name, super string, ctor func() any) *HostType {
	return &HostType{
		Name:      name,
		Super:     super,
		New:       ctor,
		Getters:   make(map[string]GetterFunc),
		Setters:   make(map[string]SetterFunc),
		Functions: make(map[string]FunctionFunc),
		Constants: make(map[string]Value),
	}
}

// Getter adds a getter.
func (t *HostType) Getter(name string, fn GetterFunc) *HostType {
	t.Getters[name] = fn
	return t
}

// Setter adds a setter.
func (t *HostType) Setter(name string, fn SetterFunc) *HostType {
	t.Setters[name] = fn
	return t
}

// Function adds a callable member.
func (t *HostType) Function(name string, fn FunctionFunc) *HostType {
	t.Functions[name] = fn
	return t
}

// Constant adds a constant.
func (t *HostType) Constant(name string, v Value) *HostType {
	t.Constants[name] = v
	return t
}

// MemberNames returns every member name, sorted.
func (t *HostType) MemberNames() []string {
	seen := make(map[string]bool)
	for n := range t.Getters {
		seen[n] = true
	}
	for n := range t.Setters {
		seen[n] = true
	}
	for n := range t.Functions {
		seen[n] = true
	}
	for n := range t.Constants {
		seen[n] = true
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ---------------------------------------------------------------------------
// Typed adapters
// ---------------------------------------------------------------------------

// BindGetter adapts a typed getter. R is usually an interface naming the
// Go method, so embedded (promoted) methods of derived natives match too.
func BindGetter[R any](get func(R) Value) GetterFunc {
	return func(native any) (Value, error) {
		recv, ok := native.(R)
		if !ok {
			return nil, receiverError[R](native)
		}
		return get(recv), nil
	}
}

// BindSetter adapts a typed setter.
func BindSetter[R any](set func(R, Value) error) SetterFunc {
	return func(native any, v Value) error {
		recv, ok := native.(R)
		if !ok {
			return receiverError[R](native)
		}
		return set(recv, v)
	}
}

// BindFunction adapts a typed callable member.
func BindFunction[R any](call func(R, []Value) (Value, error)) FunctionFunc {
	return func(native any, args []Value) (Value, error) {
		recv, ok := native.(R)
		if !ok {
			return nil, receiverError[R](native)
		}
		return call(recv, args)
	}
}

func receiverError[R any](native any) error {
	var zero R
	return fmt.Errorf("%w: %T is not %T", ErrReceiverType, native, &zero)
}

// ---------------------------------------------------------------------------
// HostMember: unbound callable member reference
// ---------------------------------------------------------------------------

// MemberKind identifies what a HostMember refers to.
type MemberKind int

const (
	MemberGetter MemberKind = iota + 1
	MemberSetter
	MemberFunction
)

func (k MemberKind) String() string {
	switch k {
	case MemberGetter:
		return "getter"
	case MemberSetter:
		return "setter"
	case MemberFunction:
		return "function"
	}
	return fmt.Sprintf("MemberKind(%d)", int(k))
}

// HostMember is a reference to a host member not yet bound to a native
// object. Host property lookup returns these for setters and functions.
type HostMember struct {
	Kind  MemberKind
	Name  string
	Owner string // class declaring the member

	get  GetterFunc
	set  SetterFunc
	call FunctionFunc
}

func (m *HostMember) String() string {
	return fmt.Sprintf("%s %s.%s", m.Kind, m.Owner, m.Name)
}

// Invoke runs the member against native. Getters ignore args, setters take
// the first argument. A panic in host code is returned as ErrNativePanic.
func (m *HostMember) Invoke(native any, args []Value) (result Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %s: %v", ErrNativePanic, m.Name, r)
		}
	}()

	switch m.Kind {
	case MemberGetter:
		result, err = m.get(native)
	case MemberSetter:
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: setter %s needs a value", ErrMissingArgument, m.Name)
		}
		err = m.set(native, args[0])
	case MemberFunction:
		result, err = m.call(native, args)
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotCallable, m.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", m.Owner, m.Name, err)
	}
	return result, nil
}
