package vm

// ScriptObject is a live or prototype script object. It has exactly two
// variants, *HostObject and *ScriptedObject; the unexported methods keep the
// set closed. Delegation (live instance -> prototype, class -> superclass
// prototype) is held in explicit fields of each variant.
type ScriptObject interface {
	// ClassName returns the fully qualified class name.
	ClassName() string
	// SuperClassName returns the superclass name, taken from the canonical
	// prototype when this is a live instance.
	SuperClassName() string
	// GetProperty resolves name. native is the native object host getters
	// run against; it usually comes from NativeObject of the same object.
	// A name found nowhere on the chain yields nil and a lookup-miss fault.
	GetProperty(native any, name string) Value
	// NativeObject returns the Go object backing this script object,
	// constructing it on first use.
	NativeObject() (any, error)
	// IsPrototype reports whether this is a canonical class prototype
	// rather than a live instance.
	IsPrototype() bool

	resolve(native any, name string, receiver ScriptObject, depth int) Value
	domainOf() *Domain
}

// tooDeep reports a lookup miss once a resolution walk passes the domain's
// hierarchy bound. Cyclic superclass names end here.
func tooDeep(d *Domain, site, name string, depth int) bool {
	if depth <= d.maxHierarchy() {
		return false
	}
	d.Report(Fault{Kind: FaultLookupMiss, Site: site, Name: name, Err: ErrDepthExceeded})
	return true
}

// simpleName returns the part of a class name after the last '.' or ':'.
func simpleName(className string) string {
	for i := len(className) - 1; i >= 0; i-- {
		if className[i] == '.' || className[i] == ':' {
			return className[i+1:]
		}
	}
	return className
}
