package hostgen

import "testing"

func TestGetterName(t *testing.T) {
	tests := []struct {
		method   string
		expected string
	}{
		{"NumChildren", "numChildren"},
		{"X", "x"},
		{"GetLabel", "label"},
		{"Get", "get"},
		{"Getaway", "getaway"},
		{"StageWidth", "stageWidth"},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			got := GetterName(tt.method)
			if got != tt.expected {
				t.Errorf("GetterName(%q) = %q, want %q", tt.method, got, tt.expected)
			}
		})
	}
}

func TestSetterName(t *testing.T) {
	tests := []struct {
		method   string
		expected string
	}{
		{"SetFrameRate", "frameRate"},
		{"SetX", "x"},
		{"Set", "set"},
		{"Settle", "settle"},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			got := SetterName(tt.method)
			if got != tt.expected {
				t.Errorf("SetterName(%q) = %q, want %q", tt.method, got, tt.expected)
			}
		})
	}
}

func TestFunctionAndBuilderNames(t *testing.T) {
	if got := FunctionName("AddEventListener"); got != "addEventListener" {
		t.Errorf("FunctionName = %q", got)
	}
	if got := BuilderName("DisplayObject"); got != "displayObjectType" {
		t.Errorf("BuilderName = %q", got)
	}
	if got := FunctionName(""); got != "" {
		t.Errorf("FunctionName(\"\") = %q", got)
	}
}

func TestSimpleName(t *testing.T) {
	tests := []struct {
		class    string
		expected string
	}{
		{"flash.display.Sprite", "Sprite"},
		{"Object", "Object"},
		{"a.", ""},
	}
	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			if got := SimpleName(tt.class); got != tt.expected {
				t.Errorf("SimpleName(%q) = %q, want %q", tt.class, got, tt.expected)
			}
		})
	}
}
