package vm

import "testing"

func TestClassTable_RegisterAndLookup(t *testing.T) {
	d := NewDomain(objectType())
	ct := NewClassTable()

	proto := NewScriptedPrototype(d, nil, "Greeter", "Object")
	if old := ct.Register("Greeter", proto); old != nil {
		t.Errorf("expected no previous prototype, got %v", old)
	}

	if got := ct.Lookup("Greeter"); got != proto {
		t.Errorf("Lookup(Greeter) = %v, want %v", got, proto)
	}
	if !ct.Has("Greeter") {
		t.Error("Has(Greeter) should be true")
	}
	if ct.Lookup("Missing") != nil {
		t.Error("Lookup(Missing) should be nil")
	}
	if ct.Lookup("") != nil {
		t.Error("Lookup(\"\") should be nil")
	}
}

func TestClassTable_RedefinitionReplaces(t *testing.T) {
	d := NewDomain()
	ct := NewClassTable()

	first := NewScriptedPrototype(d, nil, "A", "")
	second := NewScriptedPrototype(d, nil, "A", "")
	ct.Register("A", first)

	if old := ct.Register("A", second); old != first {
		t.Errorf("Register should return the replaced prototype")
	}
	if ct.Lookup("A") != second {
		t.Error("Lookup should return the new prototype")
	}
	if ct.Len() != 1 {
		t.Errorf("expected 1 class, got %d", ct.Len())
	}
	if names := ct.Names(); len(names) != 1 || names[0] != "A" {
		t.Errorf("Names() = %v, want [A]", names)
	}
}

func TestClassTable_SuffixLookup(t *testing.T) {
	d := NewDomain()
	ct := NewClassTable()

	sprite := NewScriptedPrototype(d, nil, "flash.display.Sprite", "")
	mySprite := NewScriptedPrototype(d, nil, "game.MySprite", "")
	colon := NewScriptedPrototype(d, nil, "flash.events:Event", "")
	ct.Register("game.MySprite", mySprite)
	ct.Register("flash.display.Sprite", sprite)
	ct.Register("flash.events:Event", colon)

	tests := []struct {
		name string
		want ScriptObject
	}{
		{"flash.display.Sprite", sprite},
		{"Sprite", sprite},
		{"display.Sprite", sprite},
		{"MySprite", mySprite},
		{"Event", colon},
		{"prite", nil},
		{"Display", nil},
	}
	for _, tt := range tests {
		got := ct.Lookup(tt.name)
		if got != tt.want {
			t.Errorf("Lookup(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestClassTable_SuffixLookupPrefersFirstRegistered(t *testing.T) {
	d := NewDomain()
	ct := NewClassTable()

	a := NewScriptedPrototype(d, nil, "a.Shape", "")
	b := NewScriptedPrototype(d, nil, "b.Shape", "")
	ct.Register("a.Shape", a)
	ct.Register("b.Shape", b)

	if ct.Lookup("Shape") != a {
		t.Error("suffix lookup should return the first registered match")
	}
}

func TestDomain_SuperclassesTerminateAtHostRoot(t *testing.T) {
	var events []string
	d := NewDomain(objectType(), recorderType("flash.display.Recorder", "Object", &events))
	d.Classes.Register("A", NewScriptedPrototype(d, nil, "A", "Recorder"))
	d.Classes.Register("B", NewScriptedPrototype(d, nil, "B", "A"))

	chain, ok := d.Superclasses("B")
	if !ok {
		t.Fatalf("expected chain to reach a host root, got %v", chain)
	}
	want := []string{"B", "A", "flash.display.Recorder", "Object"}
	if len(chain) != len(want) {
		t.Fatalf("chain length = %d, want %d", len(chain), len(want))
	}
	for i, proto := range chain {
		if proto.ClassName() != want[i] {
			t.Errorf("chain[%d] = %s, want %s", i, proto.ClassName(), want[i])
		}
	}
	if _, isHost := chain[len(chain)-1].(*HostObject); !isHost {
		t.Error("root should be host-bridged")
	}
}

func TestDomain_SuperclassesCycleIsNotFound(t *testing.T) {
	d := NewDomain()
	d.MaxHierarchy = 8
	d.Classes.Register("A", NewScriptedPrototype(d, nil, "A", "B"))
	d.Classes.Register("B", NewScriptedPrototype(d, nil, "B", "A"))

	chain, ok := d.Superclasses("A")
	if ok {
		t.Fatal("cyclic chain must not resolve")
	}
	if len(chain) != 8 {
		t.Errorf("expected walk to stop at the bound (8), got %d", len(chain))
	}
}

func TestDomain_SuperclassesMissingLink(t *testing.T) {
	d := NewDomain()
	d.Classes.Register("A", NewScriptedPrototype(d, nil, "A", "Nowhere"))

	chain, ok := d.Superclasses("A")
	if ok {
		t.Error("missing superclass must not resolve")
	}
	if len(chain) != 1 {
		t.Errorf("expected 1 prototype before the gap, got %d", len(chain))
	}
}
