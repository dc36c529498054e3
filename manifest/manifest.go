// Package manifest handles flashvm.toml player configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/chazu/flashvm/natives"
	"github.com/chazu/flashvm/vm"
)

// FileName is the manifest file looked up by Load and FindAndLoad.
const FileName = "flashvm.toml"

// Manifest represents a flashvm.toml configuration.
type Manifest struct {
	Player  Player  `toml:"player"`
	Program Program `toml:"program"`
	Engine  Engine  `toml:"engine"`
	Log     Log     `toml:"log"`
	Natives Natives `toml:"natives"`

	// Dir is the directory containing the flashvm.toml file (set at load time).
	Dir string `toml:"-"`
}

// Player configures the stage.
type Player struct {
	Name      string  `toml:"name"`
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	FrameRate float64 `toml:"frame-rate"`
	Frames    int     `toml:"frames"` // frames to advance after loading
}

// Program lists the program bundles to load, in order.
type Program struct {
	Bundles []string `toml:"bundles"`
}

// Engine configures interpreter limits.
type Engine struct {
	MaxDepth     int  `toml:"max-depth"`
	MaxHierarchy int  `toml:"max-hierarchy"`
	Trace        bool `toml:"trace"`
}

// Log configures logging.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Natives selects the host classes registered on the domain.
type Natives struct {
	Exclude []string `toml:"exclude"`
}

// Default returns a manifest with every default applied.
func Default() *Manifest {
	m := &Manifest{}
	m.applyDefaults()
	return m
}

// Parse decodes manifest data and applies defaults. Dir is left empty.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	meta, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %s", undecoded[0])
	}
	m.applyDefaults()
	return &m, nil
}

// Load parses a flashvm.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	return m, nil
}

// FindAndLoad walks up from startDir to find a flashvm.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

func (m *Manifest) applyDefaults() {
	if m.Player.Name == "" {
		m.Player.Name = "flashvm"
	}
	if m.Player.Width <= 0 {
		m.Player.Width = natives.DefaultStageWidth
	}
	if m.Player.Height <= 0 {
		m.Player.Height = natives.DefaultStageHeight
	}
	if m.Player.FrameRate <= 0 {
		m.Player.FrameRate = natives.DefaultFrameRate
	}
	if m.Engine.MaxDepth <= 0 {
		m.Engine.MaxDepth = vm.DefaultMaxDepth
	}
	if m.Engine.MaxHierarchy <= 0 {
		m.Engine.MaxHierarchy = vm.DefaultMaxHierarchy
	}
}

// BundlePaths returns absolute paths for the configured program bundles.
func (m *Manifest) BundlePaths() []string {
	var paths []string
	for _, b := range m.Program.Bundles {
		if filepath.IsAbs(b) {
			paths = append(paths, b)
			continue
		}
		paths = append(paths, filepath.Join(m.Dir, b))
	}
	return paths
}

// LogPath returns the log file path, or nil to log to stderr.
func (m *Manifest) LogPath() *string {
	if m.Log.File == "" {
		return nil
	}
	path := m.Log.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.Dir, path)
	}
	return &path
}

// Excluded reports whether the host class name is excluded. Names match
// either the full class name or its last segment.
func (m *Manifest) Excluded(className string) bool {
	for _, ex := range m.Natives.Exclude {
		if ex == className {
			return true
		}
		if i := len(className) - len(ex) - 1; i >= 0 && className[i] == '.' && className[i+1:] == ex {
			return true
		}
	}
	return false
}
