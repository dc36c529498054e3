package natives

import (
	"errors"
	"fmt"

	"github.com/chazu/flashvm/vm"
)

// Event types dispatched by the library.
const (
	//as:constant Event ENTER_FRAME
	EventEnterFrame = "enterFrame"
	//as:constant Event ADDED_TO_STAGE
	EventAddedToStage = "addedToStage"
)

// Object is the root of every native. It only knows the name of the class
// it was constructed for.
//
//as:class Object
type Object struct {
	class string
}

func NewObject() *Object {
	return &Object{class: "Object"}
}

//as:function
func (o *Object) ToString(args []vm.Value) (vm.Value, error) {
	return "[object " + o.ClassName() + "]", nil
}

// ClassName returns the simple name of the class the native was made for.
func (o *Object) ClassName() string {
	if o.class == "" {
		return "Object"
	}
	return o.class
}

// SetClassName renames the native after the scripted class it backs.
func (o *Object) SetClassName(name string) {
	o.class = name
}

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

//as:class flash.events.Event extends Object
type Event struct {
	Object
	kind   string
	target any
}

func NewEvent() *Event {
	return &Event{Object: Object{class: "Event"}}
}

func newEvent(kind string, target any) *Event {
	ev := NewEvent()
	ev.kind = kind
	ev.target = target
	return ev
}

//as:getter
func (e *Event) Type() string {
	return e.kind
}

//as:getter
func (e *Event) Target() vm.Value {
	return e.target
}

// listener pairs an event type with its callback.
type listener struct {
	kind string
	fn   vm.Callable
}

// EventDispatcher keeps listeners per event type and calls them in
// registration order.
//
//as:class flash.events.EventDispatcher extends Object
type EventDispatcher struct {
	Object
	listeners []listener
}

func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{Object: Object{class: "EventDispatcher"}}
}

// addEventListener(type, listener). Registering the same listener twice for
// one type has no effect.
//
//as:function
func (d *EventDispatcher) AddEventListener(args []vm.Value) (vm.Value, error) {
	kind, fn, err := listenerArgs("addEventListener", args)
	if err != nil {
		return nil, err
	}
	for _, l := range d.listeners {
		if l.kind == kind && l.fn == fn {
			return nil, nil
		}
	}
	d.listeners = append(d.listeners, listener{kind: kind, fn: fn})
	return nil, nil
}

//as:function
func (d *EventDispatcher) RemoveEventListener(args []vm.Value) (vm.Value, error) {
	kind, fn, err := listenerArgs("removeEventListener", args)
	if err != nil {
		return nil, err
	}
	for i, l := range d.listeners {
		if l.kind == kind && l.fn == fn {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			break
		}
	}
	return nil, nil
}

//as:function
func (d *EventDispatcher) HasEventListener(args []vm.Value) (vm.Value, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("%w: hasEventListener(type)", vm.ErrMissingArgument)
	}
	kind := vm.ToString(args[0])
	for _, l := range d.listeners {
		if l.kind == kind {
			return true, nil
		}
	}
	return false, nil
}

// dispatchEvent(event) accepts an Event instance or an event type string.
//
//as:function
func (d *EventDispatcher) DispatchEvent(args []vm.Value) (vm.Value, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("%w: dispatchEvent(event)", vm.ErrMissingArgument)
	}
	var ev *Event
	switch a := args[0].(type) {
	case vm.ScriptObject:
		native, err := a.NativeObject()
		if err != nil {
			return nil, err
		}
		e, ok := native.(*Event)
		if !ok {
			return nil, fmt.Errorf("dispatchEvent: %s is not an Event", a.ClassName())
		}
		ev = e
	case *Event:
		ev = a
	default:
		ev = newEvent(vm.ToString(a), nil)
	}
	if ev.target == nil {
		ev.target = d
	}
	if err := d.Dispatch(ev); err != nil {
		return false, err
	}
	return true, nil
}

// Dispatch calls every listener registered for ev's type. Listener errors
// are joined; every listener runs.
func (d *EventDispatcher) Dispatch(ev *Event) error {
	var matching []vm.Callable
	for _, l := range d.listeners {
		if l.kind == ev.kind {
			matching = append(matching, l.fn)
		}
	}
	var errs []error
	for _, fn := range matching {
		if _, err := fn.Call([]vm.Value{ev}); err != nil {
			errs = append(errs, fmt.Errorf("%s listener: %w", ev.kind, err))
		}
	}
	return errors.Join(errs...)
}

func listenerArgs(op string, args []vm.Value) (string, vm.Callable, error) {
	if len(args) < 2 {
		return "", nil, fmt.Errorf("%w: %s(type, listener)", vm.ErrMissingArgument, op)
	}
	fn, ok := args[1].(vm.Callable)
	if !ok {
		return "", nil, fmt.Errorf("%w: %s listener is %s", vm.ErrNotCallable, op, vm.KindOf(args[1]))
	}
	return vm.ToString(args[0]), fn, nil
}
