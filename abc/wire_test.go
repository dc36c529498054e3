package abc

import (
	"errors"
	"testing"
)

func TestBundleRoundTrip(t *testing.T) {
	original := sampleProgram()
	data, err := MarshalBundle(original)
	if err != nil {
		t.Fatalf("MarshalBundle: %v", err)
	}

	programs, err := UnmarshalBundle(data)
	if err != nil {
		t.Fatalf("UnmarshalBundle: %v", err)
	}
	if len(programs) != 1 {
		t.Fatalf("expected 1 program, got %d", len(programs))
	}
	decoded := programs[0]

	if got, want := Disassemble(decoded), Disassemble(original); got != want {
		t.Errorf("listing changed across the wire:\n%s\nwant:\n%s", got, want)
	}

	if len(decoded.Methods) != 4 || len(decoded.Classes) != 1 || len(decoded.Scripts) != 1 {
		t.Fatalf("unexpected shape: %d methods, %d classes, %d scripts",
			len(decoded.Methods), len(decoded.Classes), len(decoded.Scripts))
	}

	// Shared nodes stay shared.
	c := decoded.Classes[0]
	if c.InstanceInit != decoded.Methods[2] || c.StaticInit != decoded.Methods[1] {
		t.Error("class initializers should be the program's methods")
	}
	if c.Traits[0].Method != decoded.Methods[3] {
		t.Error("trait should point at the program's method")
	}
	if decoded.Scripts[0].Init != decoded.Methods[0] {
		t.Error("script initializer should be the program's method")
	}
	iinit := c.InstanceInit.Entry.Exprs
	if iinit[2].Args[0].Scopes[0] != iinit[0] {
		t.Error("scope chain entry should be the pushscope expression itself")
	}

	// newclass points back at the class.
	main := decoded.Methods[0]
	newclass := main.Entry.Succ[0].Exprs[0]
	if newclass.Class != c {
		t.Error("newclass should reference the decoded class")
	}
	if main.Entry.Exprs[0].Succ[0] != main.Entry.Succ[0] {
		t.Error("jump target should be the successor block")
	}
}

func TestBundleLiterals(t *testing.T) {
	m := NewMethod("Main")
	m.Entry.Add(PushByte(0), PushByte(-3), PushByte(200), &Expr{Op: OpPushString, Value: "s"}, ReturnVoid())
	p := &Program{Methods: []*Method{m}, Scripts: []*Script{{Ref: N("Main"), Init: m}}}

	data, err := MarshalBundle(p)
	if err != nil {
		t.Fatal(err)
	}
	programs, err := UnmarshalBundle(data)
	if err != nil {
		t.Fatal(err)
	}
	exprs := programs[0].Methods[0].Entry.Exprs
	want := []any{0, -3, 200, "s", nil}
	for i, w := range want {
		if exprs[i].Value != w {
			t.Errorf("expr %d value = %#v, want %#v", i, exprs[i].Value, w)
		}
	}
}

func TestBundleMultiplePrograms(t *testing.T) {
	a, b := sampleProgram(), &Program{}
	data, err := MarshalBundle(a, b)
	if err != nil {
		t.Fatal(err)
	}
	programs, err := WireDecoder{}.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(programs) != 2 {
		t.Fatalf("expected 2 programs, got %d", len(programs))
	}
	if programs[1].Initializer() != "" {
		t.Error("empty program should stay empty")
	}
}

func TestBundleErrors(t *testing.T) {
	encode := func(b wireBundle) []byte {
		data, err := cborEncMode.Marshal(&b)
		if err != nil {
			t.Fatal(err)
		}
		return data
	}

	tests := []struct {
		name   string
		bundle wireBundle
		want   error
	}{
		{
			"version",
			wireBundle{Version: WireVersion + 1},
			ErrVersionMismatch,
		},
		{
			"method entry",
			wireBundle{Version: WireVersion, Programs: []wireProgram{{
				Methods: []wireMethod{{Name: "m", Entry: 5}},
			}}},
			ErrInvalidBlockIndex,
		},
		{
			"expression operand",
			wireBundle{Version: WireVersion, Programs: []wireProgram{{
				Exprs: []wireExpr{{Op: uint8(OpPushScope), Args: []int{9}}},
			}}},
			ErrInvalidExprIndex,
		},
		{
			"class order",
			wireBundle{Version: WireVersion, Programs: []wireProgram{{
				ClassOrder: []int{3},
			}}},
			ErrInvalidClassIndex,
		},
		{
			"class initializer",
			wireBundle{Version: WireVersion, Programs: []wireProgram{{
				Classes: []wireClass{{Name: wireName{Local: "C"}, StaticInit: 2}},
			}}},
			ErrInvalidMethodIndex,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalBundle(encode(tt.bundle))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := UnmarshalBundle([]byte{0xFF, 0x00}); err == nil {
		t.Error("expected error for garbage input")
	}
}
