package hostgen

import (
	"errors"
	"strings"
	"testing"
)

func TestParseDirective(t *testing.T) {
	tests := []struct {
		line string
		ok   bool
		kind string
		args int
	}{
		{"//as:class flash.display.Sprite extends Object", true, KindClass, 3},
		{"//as:getter", true, KindGetter, 0},
		{"//as:getter label", true, KindGetter, 1},
		{"//as:constant StageAlign TOP", true, KindConstant, 2},
		{"// as:getter", false, "", 0},
		{"//as:", false, "", 0},
		{"// plain comment", false, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			d, ok := ParseDirective(tt.line)
			if ok != tt.ok {
				t.Fatalf("ParseDirective(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if !ok {
				return
			}
			if d.Kind != tt.kind || len(d.Args) != tt.args {
				t.Errorf("got %+v, want kind %s with %d args", d, tt.kind, tt.args)
			}
		})
	}
}

func TestIntrospectPackage_Natives(t *testing.T) {
	model, err := IntrospectPackage("github.com/chazu/flashvm/natives")
	if err != nil {
		t.Fatalf("IntrospectPackage(natives): %v", err)
	}

	if model.Name != "natives" {
		t.Errorf("expected package name 'natives', got %q", model.Name)
	}
	if len(model.Classes) != 9 {
		t.Errorf("expected 9 classes, got %d", len(model.Classes))
	}

	clip := model.Class("MovieClip")
	if clip == nil {
		t.Fatal("expected MovieClip class")
	}
	if clip.Name != "flash.display.MovieClip" || clip.Super != "flash.display.Sprite" {
		t.Errorf("MovieClip declared as %s extends %s", clip.Name, clip.Super)
	}
	if clip.Constructor != "NewMovieClip" {
		t.Errorf("expected NewMovieClip constructor, got %q", clip.Constructor)
	}
	if !hasMember(clip.Functions, "addFrameScript") || !hasMember(clip.Functions, "gotoAndStop") {
		t.Errorf("missing MovieClip functions: %+v", clip.Functions)
	}
	if !hasMember(clip.Getters, "currentFrame") {
		t.Error("expected currentFrame getter")
	}

	display := model.Class("DisplayObject")
	if display == nil {
		t.Fatal("expected DisplayObject class")
	}
	if !hasMember(display.Setters, "x") || !hasMember(display.Getters, "visible") {
		t.Errorf("DisplayObject members: getters=%+v setters=%+v", display.Getters, display.Setters)
	}

	align := model.Class("StageAlign")
	if align == nil || len(align.Constants) != 8 {
		t.Fatalf("expected 8 StageAlign constants, got %+v", align)
	}
	event := model.Class("Event")
	if event == nil || len(event.Constants) != 2 {
		t.Fatalf("expected 2 Event constants, got %+v", event)
	}

	ordered := model.Ordered()
	if ordered[0].Name != "Object" {
		t.Errorf("expected Object first, got %s", ordered[0].Name)
	}
	if last := ordered[len(ordered)-1]; last.Name != "flash.display.MovieClip" {
		t.Errorf("expected MovieClip last, got %s", last.Name)
	}
}

func TestIntrospectPackage_BadDirectives(t *testing.T) {
	_, err := IntrospectPackage("./testdata/bad")
	if err == nil {
		t.Fatal("expected directive errors")
	}
	if !errors.Is(err, ErrDirective) {
		t.Errorf("expected ErrDirective, got %v", err)
	}

	msg := err.Error()
	for _, want := range []string{"SetLabel", "Run", "frobnicate", "Size", "Broken", "Missing"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected error mentioning %s, got:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "getter Label") {
		t.Errorf("valid getter should not be reported:\n%s", msg)
	}
}

func TestIntrospectPackage_NotFound(t *testing.T) {
	if _, err := IntrospectPackage("github.com/chazu/flashvm/nonexistent"); err == nil {
		t.Error("expected error for missing package")
	}
}

func hasMember(ms []MemberModel, name string) bool {
	for _, m := range ms {
		if m.Name == name {
			return true
		}
	}
	return false
}
