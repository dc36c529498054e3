// Package hostgen reads //as: directives from a Go package and generates the
// static vm.HostType member tables that bridge its types into scripts.
package hostgen

import (
	"go/types"
	"sort"
)

// PackageModel is the in-memory representation of a package's host classes.
type PackageModel struct {
	ImportPath string
	Name       string // short package name (e.g., "natives")
	Classes    []ClassModel
}

// ClassModel is one Go type annotated with //as:class.
type ClassModel struct {
	GoType      string // Go type name (e.g., "Sprite")
	Name        string // script class name (e.g., "flash.display.Sprite")
	Super       string // script superclass name; empty for a root
	Constructor string // New<GoType> when the package declares one

	Getters   []MemberModel
	Setters   []MemberModel
	Functions []MemberModel
	Constants []ConstantModel
}

// MemberModel is a method exposed to scripts.
type MemberModel struct {
	Name     string     // script member name (e.g., "numChildren")
	GoMethod string     // Go method name (e.g., "NumChildren")
	Result   types.Type // getter result type; nil for setters and functions
}

// ConstantModel is a package constant exposed on a class.
type ConstantModel struct {
	Name    string // script constant name (e.g., "TOP_LEFT")
	GoConst string // Go identifier (e.g., "AlignTopLeft")
}

// Class returns the class declared on the Go type, or nil.
func (m *PackageModel) Class(goType string) *ClassModel {
	for i := range m.Classes {
		if m.Classes[i].GoType == goType {
			return &m.Classes[i]
		}
	}
	return nil
}

// Ordered returns the classes sorted so that every superclass declared in
// the package precedes its subclasses; classes at the same depth are sorted
// by script name. Members within each class are sorted by name.
func (m *PackageModel) Ordered() []ClassModel {
	depth := make(map[string]int, len(m.Classes))
	byName := make(map[string]*ClassModel, len(m.Classes))
	for i := range m.Classes {
		byName[m.Classes[i].Name] = &m.Classes[i]
	}
	var depthOf func(c *ClassModel, seen int) int
	depthOf = func(c *ClassModel, seen int) int {
		if d, ok := depth[c.Name]; ok {
			return d
		}
		d := 0
		if c.Super != "" {
			d = 1
			if super, ok := byName[c.Super]; ok && seen < len(m.Classes) {
				d = depthOf(super, seen+1) + 1
			}
		}
		depth[c.Name] = d
		return d
	}

	result := make([]ClassModel, len(m.Classes))
	copy(result, m.Classes)
	for i := range result {
		depthOf(&result[i], 0)
		sortMembers(result[i].Getters)
		sortMembers(result[i].Setters)
		sortMembers(result[i].Functions)
		sort.Slice(result[i].Constants, func(a, b int) bool {
			return result[i].Constants[a].Name < result[i].Constants[b].Name
		})
	}
	sort.SliceStable(result, func(a, b int) bool {
		da, db := depth[result[a].Name], depth[result[b].Name]
		if da != db {
			return da < db
		}
		return result[a].Name < result[b].Name
	})
	return result
}

func sortMembers(ms []MemberModel) {
	sort.Slice(ms, func(a, b int) bool { return ms[a].Name < ms[b].Name })
}
