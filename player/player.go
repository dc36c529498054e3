// Package player is the host entry point: it owns the stage and the class
// domain, decodes program units and runs them, and advances frames.
package player

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/chazu/flashvm/abc"
	"github.com/chazu/flashvm/manifest"
	"github.com/chazu/flashvm/natives"
	"github.com/chazu/flashvm/vm"
)

// Decoder turns raw bytes into program units.
type Decoder interface {
	Decode(data []byte) ([]*abc.Program, error)
}

// Player runs program units against one stage. Units share the domain, so
// classes defined by one are visible to the next.
type Player struct {
	Name    string
	Domain  *vm.Domain
	Stage   *natives.Stage
	Decoder Decoder

	MaxDepth int
	Trace    bool

	log commonlog.Logger
}

// New creates a player configured by m. A nil manifest means defaults.
func New(m *manifest.Manifest) *Player {
	if m == nil {
		m = manifest.Default()
	}
	p := &Player{
		Name:     m.Player.Name,
		Domain:   vm.NewDomain(),
		Stage:    natives.NewStage(),
		Decoder:  abc.WireDecoder{},
		MaxDepth: m.Engine.MaxDepth,
		Trace:    m.Engine.Trace,
		log:      commonlog.GetLogger("flashvm.player"),
	}
	p.Domain.MaxHierarchy = m.Engine.MaxHierarchy

	for _, t := range natives.Types() {
		if m.Excluded(t.Name) {
			p.log.Infof("excluded host class %s", t.Name)
			continue
		}
		p.Domain.DefineHostType(t)
	}
	for _, name := range p.Domain.Classes.Names() {
		if _, ok := p.Domain.Superclasses(name); !ok {
			p.log.Warningf("host class %s has an incomplete superclass chain", name)
		}
	}

	p.Stage.Resize(m.Player.Width, m.Player.Height)
	if err := p.Stage.SetFrameRate(m.Player.FrameRate); err != nil {
		p.log.Warningf("%s", err)
	}
	return p
}

// Load decodes data and runs every unit it holds.
func (p *Player) Load(data []byte) error {
	programs, err := p.Decoder.Decode(data)
	if err != nil {
		return fmt.Errorf("decoding program: %w", err)
	}
	return p.Run(programs...)
}

// Run runs each unit with a fresh interpreter. A unit that fails is reported
// and the remaining units still run; the failures are joined.
func (p *Player) Run(programs ...*abc.Program) error {
	var errs []error
	for i, prog := range programs {
		in := vm.NewInterpreter(p.Domain, p.Stage)
		in.MaxDepth = p.MaxDepth
		in.Trace = p.Trace

		if err := in.RunProgram(prog); err != nil {
			p.log.Errorf("unit %d: %s", i, err)
			errs = append(errs, fmt.Errorf("unit %d: %w", i, err))
			continue
		}
		p.log.Debugf("unit %d: ran %s", i, prog.Initializer())
	}
	return errors.Join(errs...)
}

// Advance steps the stage n frames.
func (p *Player) Advance(n int) error {
	return p.Stage.Advance(n)
}

// Faults returns the faults recorded while running.
func (p *Player) Faults() []vm.Fault {
	return p.Domain.Faults()
}
