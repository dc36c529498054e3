package vm

import (
	"errors"
	"testing"
)

func TestHostObject_SimpleNameIsSelf(t *testing.T) {
	var events []string
	d := NewDomain(objectType(), recorderType("flash.display.Recorder", "Object", &events))
	proto, _ := d.Prototype("flash.display.Recorder")

	if got := proto.GetProperty(nil, "Recorder"); got != proto {
		t.Errorf("GetProperty(Recorder) = %v, want the prototype itself", got)
	}
	if len(d.Faults()) != 0 {
		t.Errorf("unexpected faults: %v", d.Faults())
	}
}

func TestHostObject_SimpleNameBeatsSameNamedGetter(t *testing.T) {
	calls := 0
	widget := NewHostType("flash.display.Widget", "Object", func() any { return &struct{}{} }).
		Getter("Widget", func(native any) (Value, error) {
			calls++
			return "getter-result", nil
		})
	d := NewDomain(objectType(), widget)
	proto, _ := d.Prototype("flash.display.Widget")

	if got := proto.GetProperty(nil, "Widget"); got != proto {
		t.Errorf("GetProperty(Widget) = %v, want the prototype itself", got)
	}
	if calls != 1 {
		t.Errorf("expected the getter to run once, ran %d times", calls)
	}
	if len(d.Faults()) != 0 {
		t.Errorf("unexpected faults: %v", d.Faults())
	}
}

func TestHostObject_GetterRunsAgainstNative(t *testing.T) {
	var events []string
	d := NewDomain(objectType(), recorderType("Recorder", "Object", &events))
	proto := d.Classes.Lookup("Recorder").(*HostObject)

	live := NewHostInstance(proto)
	native, err := live.NativeObject()
	if err != nil {
		t.Fatalf("NativeObject: %v", err)
	}
	native.(*recorder).x = 42

	if got := live.GetProperty(native, "x"); got != 42.0 {
		t.Errorf("expected 42, got %v", got)
	}
	// Without an explicit native the receiver's own native is used.
	if got := live.GetProperty(nil, "x"); got != 42.0 {
		t.Errorf("expected 42 with nil native, got %v", got)
	}
}

func TestHostObject_ConstantsSettersFunctions(t *testing.T) {
	var events []string
	d := NewDomain(objectType(), recorderType("Recorder", "Object", &events))
	proto := d.Classes.Lookup("Recorder")
	native, _ := proto.NativeObject()

	// Constant inherited from Object.
	if got := proto.GetProperty(native, "MAX"); got != 10 {
		t.Errorf("MAX = %v, want 10", got)
	}

	mark, ok := proto.GetProperty(native, "mark").(*HostMember)
	if !ok || mark.Kind != MemberFunction {
		t.Fatalf("expected function member, got %v", proto.GetProperty(native, "mark"))
	}
	if _, err := mark.Invoke(native, []Value{1, 2}); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if len(events) != 1 || events[0] != "mark:Recorder:[1 2]" {
		t.Errorf("events = %v", events)
	}
}

func TestHostObject_GetterWinsOverSetter(t *testing.T) {
	var events []string
	d := NewDomain(objectType(), recorderType("Recorder", "Object", &events))
	proto := d.Classes.Lookup("Recorder").(*HostObject)
	native, _ := proto.NativeObject()

	// "x" has both; the getter result comes back, not the setter reference.
	if _, isMember := proto.GetProperty(native, "x").(*HostMember); isMember {
		t.Error("getter should take precedence over the setter reference")
	}

	setter := proto.setters["x"]
	if _, err := setter.Invoke(native, []Value{7}); err != nil {
		t.Fatalf("setter: %v", err)
	}
	if native.(*recorder).x != 7 {
		t.Errorf("expected x=7, got %v", native.(*recorder).x)
	}
	_, err := setter.Invoke(native, nil)
	if !errors.Is(err, ErrMissingArgument) {
		t.Errorf("expected ErrMissingArgument, got %v", err)
	}
}

func TestHostObject_LookupMissReportsFault(t *testing.T) {
	d := NewDomain(objectType())
	proto := d.Classes.Lookup("Object")

	if got := proto.GetProperty(nil, "nothing"); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
	misses := faultsOfKind(d, FaultLookupMiss)
	if len(misses) != 1 {
		t.Fatalf("expected 1 lookup miss, got %d", len(misses))
	}
	if misses[0].Name != "nothing" || !errors.Is(misses[0], ErrNotFound) {
		t.Errorf("unexpected fault %v", misses[0])
	}
}

func TestHostObject_LiveInstanceDelegates(t *testing.T) {
	var events []string
	d := NewDomain(objectType(), recorderType("Recorder", "Object", &events))
	proto := d.Classes.Lookup("Recorder").(*HostObject)
	live := NewHostInstance(proto)

	if live.IsPrototype() {
		t.Error("live instance reported as prototype")
	}
	if live.ClassName() != "Recorder" || live.SuperClassName() != "Object" {
		t.Errorf("got %s extends %s", live.ClassName(), live.SuperClassName())
	}
	if live.Prototype() != proto {
		t.Error("Prototype() should be the canonical prototype")
	}
	if live.GetProperty(nil, "mark") != proto.GetProperty(nil, "mark") {
		t.Error("live instance and prototype should share member references")
	}
	if NewHostInstance(live).Prototype() != proto {
		t.Error("instance of an instance should point at the canonical prototype")
	}
}

func TestHostObject_NativeObjectMemoized(t *testing.T) {
	constructed := 0
	typ := NewHostType("Counter", "", func() any {
		constructed++
		return &struct{ n int }{constructed}
	})
	d := NewDomain(typ)
	proto := d.Classes.Lookup("Counter").(*HostObject)
	live := NewHostInstance(proto)

	a, _ := live.NativeObject()
	b, _ := live.NativeObject()
	if a != b {
		t.Error("NativeObject should return the same object on every call")
	}
	p, _ := proto.NativeObject()
	if p == a {
		t.Error("live instance should not share the prototype's native")
	}
	if constructed != 2 {
		t.Errorf("expected 2 constructions, got %d", constructed)
	}
}

func TestHostObject_GetterFailureIsFault(t *testing.T) {
	typ := NewHostType("Broken", "", func() any { return &struct{}{} }).
		Getter("boom", func(native any) (Value, error) {
			panic("getter exploded")
		}).
		Getter("wrong", BindGetter(func(r interface{ X() float64 }) Value {
			return r.X()
		}))
	d := NewDomain(typ)
	proto := d.Classes.Lookup("Broken")

	if got := proto.GetProperty(nil, "boom"); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
	if got := proto.GetProperty(nil, "wrong"); got != nil {
		t.Errorf("expected nil, got %v", got)
	}

	faults := faultsOfKind(d, FaultNativeInvocation)
	if len(faults) != 2 {
		t.Fatalf("expected 2 native faults, got %d: %v", len(faults), d.Faults())
	}
	if !errors.Is(faults[0], ErrNativePanic) {
		t.Errorf("expected ErrNativePanic, got %v", faults[0].Err)
	}
	if !errors.Is(faults[1], ErrReceiverType) {
		t.Errorf("expected ErrReceiverType, got %v", faults[1].Err)
	}
}

func TestHostObject_ConstructorPanic(t *testing.T) {
	typ := NewHostType("Fragile", "", func() any { panic("no") })
	d := NewDomain(typ)

	_, err := d.Classes.Lookup("Fragile").NativeObject()
	if !errors.Is(err, ErrNativePanic) {
		t.Errorf("expected ErrNativePanic, got %v", err)
	}
}

func TestHostType_MemberNames(t *testing.T) {
	var events []string
	names := recorderType("Recorder", "", &events).Constant("K", 1).MemberNames()
	want := []string{"K", "mark", "x"}
	if len(names) != len(want) {
		t.Fatalf("MemberNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}
