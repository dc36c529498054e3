package abc

import (
	"strings"
	"testing"
)

func sampleProgram() *Program {
	iinit := NewMethod("Greeter")
	scope := PushScope(This())
	iinit.Entry.Add(
		scope,
		ConstructSuper(This()),
		CallPropVoid(N("sayHello"), FindPropStrict(N("sayHello"), scope), PushByte(1), PushByte(2)),
		ReturnVoid(),
	)
	greet := NewMethod("greet")
	greeter := &Class{
		Name:         QN("game", "Greeter"),
		Super:        QN("flash.display", "Sprite"),
		Traits:       []Binding{{Name: "greet", Method: greet}},
		StaticInit:   NewMethod("Greeter$cinit"),
		InstanceInit: iinit,
	}

	main := NewMethod("Main")
	next := main.Entry.Then(1)
	main.Entry.Add(Jump(next))
	next.Add(NewClassOf(greeter, RefTo(QN("flash.display", "Sprite"))), ReturnVoid())

	return &Program{
		Classes: []*Class{greeter},
		Methods: []*Method{main, greeter.StaticInit, iinit, greet},
		Scripts: []*Script{{Ref: N("Main"), Init: main}},
	}
}

func TestFormatExpr(t *testing.T) {
	scope := PushScope(This())
	tests := []struct {
		expr *Expr
		want string
	}{
		{PushByte(7), "pushbyte 7"},
		{This(), "ref public::this"},
		{scope, "pushscope (this)"},
		{GetProperty(This(), N("x")), "getproperty public::x (this)"},
		{
			CallPropVoid(N("f"), FindPropStrict(N("f"), scope), PushByte(1), PushByte(2)),
			"callpropvoid public::f (findpropstrict f, 1, 2)",
		},
		{Jump(&Block{ID: 4}), "jump -> B4"},
		{&Expr{Op: OpPushString, Value: "hi"}, `pushstring "hi"`},
		{&Expr{Op: Opcode(0xFE)}, "UNKNOWN(0xFE)"},
		{
			NewClassOf(&Class{Name: QN("game", "Hero")}, RefTo(N("Object"))),
			"newclass game::Hero class=game.Hero (Object)",
		},
	}
	for _, tt := range tests {
		if got := FormatExpr(tt.expr); got != tt.want {
			t.Errorf("FormatExpr = %q, want %q", got, tt.want)
		}
	}
}

func TestBlocksFollowsJumpsAndSuccessors(t *testing.T) {
	entry := &Block{ID: 0}
	a := entry.Then(1)
	b := &Block{ID: 2}
	entry.Add(Jump(b))
	b.Add(Jump(entry)) // back edge
	a.Then(3)

	blocks := Blocks(entry)
	ids := make([]int, len(blocks))
	for i, blk := range blocks {
		ids[i] = blk.ID
	}
	want := []int{0, 2, 1, 3}
	if len(ids) != len(want) {
		t.Fatalf("Blocks() ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("Blocks() ids = %v, want %v", ids, want)
			break
		}
	}

	if Blocks(nil) != nil {
		t.Error("Blocks(nil) should be nil")
	}
}

func TestDisassembleMethod(t *testing.T) {
	m := NewMethod("Main")
	next := m.Entry.Then(1)
	m.Entry.Add(PushByte(3), Jump(next))
	next.Add(ReturnVoid())

	got := DisassembleMethod(m)
	want := "; method Main\n" +
		"B0: ; succ B1\n" +
		"  0000  pushbyte 3\n" +
		"  0001  jump -> B1\n" +
		"B1:\n" +
		"  0000  returnvoid\n"
	if got != want {
		t.Errorf("DisassembleMethod:\n%s\nwant:\n%s", got, want)
	}
}

func TestDisassembleProgram(t *testing.T) {
	out := Disassemble(sampleProgram())

	for _, line := range []string{
		"; class game.Greeter extends flash.display.Sprite",
		";   trait greet = greet",
		";   cinit Greeter$cinit",
		";   iinit Greeter",
		"; initializer Main",
		"; method Main",
		"; method Greeter",
		"  0002  callpropvoid public::sayHello (findpropstrict sayHello, 1, 2)",
		"newclass game::Greeter class=game.Greeter (Sprite)",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("listing missing %q:\n%s", line, out)
		}
	}
	if strings.Index(out, "; class") > strings.Index(out, "; method") {
		t.Error("class headers should come before methods")
	}
}
