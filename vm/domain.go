package vm

import (
	"fmt"
	"sync"

	"github.com/tliron/commonlog"
)

// DefaultMaxHierarchy bounds superclass chain walks.
const DefaultMaxHierarchy = 64

// Domain is the class-definition scope of an engine: it owns the class table
// that scripted class definitions mutate, and collects faults. Interpreters
// sharing a domain see each other's classes.
type Domain struct {
	Classes *ClassTable

	// MaxHierarchy bounds superclass walks; past it a lookup is a miss.
	MaxHierarchy int

	// OnFault, when set, is called for every recorded fault.
	OnFault func(Fault)

	log commonlog.Logger

	mu     sync.Mutex
	faults []Fault
}

// NewDomain creates a domain and registers a prototype for every host type.
func NewDomain(types ...*HostType) *Domain {
	d := &Domain{
		Classes:      NewClassTable(),
		MaxHierarchy: DefaultMaxHierarchy,
		log:          commonlog.GetLogger("flashvm.vm"),
	}
	for _, t := range types {
		d.DefineHostType(t)
	}
	return d
}

// DefineHostType registers the canonical host-bridged prototype for t.
func (d *Domain) DefineHostType(t *HostType) *HostObject {
	proto := newHostPrototype(d, t)
	d.Classes.Register(t.Name, proto)
	d.log.Debugf("registered host class %s extends %s", t.Name, t.Super)
	return proto
}

// Prototype looks up the prototype for name.
func (d *Domain) Prototype(name string) (ScriptObject, bool) {
	proto := d.Classes.Lookup(name)
	return proto, proto != nil
}

// Superclasses returns the prototypes from name's own prototype up to the
// root. ok is false when a link is missing, the chain exceeds MaxHierarchy
// (cycles included), or the root is not host-bridged.
func (d *Domain) Superclasses(name string) (chain []ScriptObject, ok bool) {
	proto := d.Classes.Lookup(name)
	for steps := 0; proto != nil; steps++ {
		if steps >= d.maxHierarchy() {
			return chain, false
		}
		chain = append(chain, proto)
		super := proto.SuperClassName()
		if super == "" {
			_, isHost := proto.(*HostObject)
			return chain, isHost
		}
		proto = d.Classes.Lookup(super)
	}
	return chain, false
}

func (d *Domain) maxHierarchy() int {
	if d.MaxHierarchy <= 0 {
		return DefaultMaxHierarchy
	}
	return d.MaxHierarchy
}

// Report records a fault, logs it, and notifies OnFault.
func (d *Domain) Report(f Fault) {
	d.mu.Lock()
	d.faults = append(d.faults, f)
	hook := d.OnFault
	d.mu.Unlock()

	d.log.Warningf("%s", f.Error())
	if hook != nil {
		hook(f)
	}
}

// Faults returns a copy of the recorded faults.
func (d *Domain) Faults() []Fault {
	d.mu.Lock()
	defer d.mu.Unlock()
	result := make([]Fault, len(d.faults))
	copy(result, d.faults)
	return result
}

// ResetFaults clears the recorded faults.
func (d *Domain) ResetFaults() {
	d.mu.Lock()
	d.faults = nil
	d.mu.Unlock()
}

// superPrototype resolves the prototype of a superclass name for delegation.
// A missing name is reported as a lookup miss.
func (d *Domain) superPrototype(site, super, property string) ScriptObject {
	if super == "" {
		d.Report(Fault{Kind: FaultLookupMiss, Site: site, Name: property, Err: ErrNotFound})
		return nil
	}
	proto := d.Classes.Lookup(super)
	if proto == nil {
		d.Report(Fault{Kind: FaultLookupMiss, Site: site, Name: property,
			Err: fmt.Errorf("%w: superclass %s", ErrNotFound, super)})
	}
	return proto
}
