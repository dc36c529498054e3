package vm

import (
	"strings"
	"sync"
)

// ---------------------------------------------------------------------------
// ClassTable: class name -> prototype registry
// ---------------------------------------------------------------------------

// ClassTable maps class names to their canonical prototype objects.
// It's safe for concurrent access; several interpreters may share one.
type ClassTable struct {
	mu      sync.RWMutex
	classes map[string]ScriptObject
	order   []string // registration order, for deterministic suffix lookup
}

// NewClassTable creates a new empty class table.
func NewClassTable() *ClassTable {
	return &ClassTable{
		classes: make(map[string]ScriptObject),
	}
}

// Register inserts or replaces the prototype for name.
// Returns the previous prototype with this name, or nil.
// Redefinition is expected when class code runs again.
func (ct *ClassTable) Register(name string, proto ScriptObject) ScriptObject {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	old, ok := ct.classes[name]
	if !ok {
		ct.order = append(ct.order, name)
	}
	ct.classes[name] = proto
	return old
}

// Lookup finds the prototype registered under name. When no key matches
// exactly, the first registered key whose last segment (after '.' or ':')
// equals name is used, so "Sprite" finds "flash.display.Sprite".
// Returns nil when nothing matches.
func (ct *ClassTable) Lookup(name string) ScriptObject {
	if name == "" {
		return nil
	}

	ct.mu.RLock()
	defer ct.mu.RUnlock()

	if proto, ok := ct.classes[name]; ok {
		return proto
	}
	for _, key := range ct.order {
		if hasSegmentSuffix(key, name) {
			return ct.classes[key]
		}
	}
	return nil
}

// hasSegmentSuffix reports whether key ends with a separator followed by name.
func hasSegmentSuffix(key, name string) bool {
	if len(key) <= len(name) || !strings.HasSuffix(key, name) {
		return false
	}
	switch key[len(key)-len(name)-1] {
	case '.', ':':
		return true
	}
	return false
}

// Has returns true if a prototype is registered under exactly this name.
func (ct *ClassTable) Has(name string) bool {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	_, ok := ct.classes[name]
	return ok
}

// Names returns the registered names in registration order.
func (ct *ClassTable) Names() []string {
	ct.mu.RLock()
	defer ct.mu.RUnlock()

	result := make([]string, len(ct.order))
	copy(result, ct.order)
	return result
}

// Len returns the number of registered classes.
func (ct *ClassTable) Len() int {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	return len(ct.classes)
}
