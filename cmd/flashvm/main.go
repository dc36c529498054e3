// flashvm runs or disassembles ActionScript program bundles.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/flashvm/abc"
	"github.com/chazu/flashvm/manifest"
	"github.com/chazu/flashvm/player"
)

func main() {
	configDir := flag.String("config", ".", "Directory to search upward for "+manifest.FileName)
	verbose := flag.Int("v", -1, "Log verbosity (overrides the manifest)")
	disasm := flag.Bool("disasm", false, "Print the disassembly instead of running")
	frames := flag.Int("frames", -1, "Frames to advance after loading (overrides the manifest)")
	trace := flag.Bool("trace", false, "Log every evaluated expression")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: flashvm [options] [bundles...]\n\n")
		fmt.Fprintf(os.Stderr, "Runs program bundles on a stage. Without arguments the bundles listed in\n")
		fmt.Fprintf(os.Stderr, "%s are used.\n\n", manifest.FileName)
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  flashvm main.abc.cbor              # Run one bundle\n")
		fmt.Fprintf(os.Stderr, "  flashvm -frames 24 main.abc.cbor   # Run, then advance 24 frames\n")
		fmt.Fprintf(os.Stderr, "  flashvm -disasm main.abc.cbor      # Print the disassembly\n")
	}
	flag.Parse()

	m, err := manifest.FindAndLoad(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading manifest: %v\n", err)
		os.Exit(1)
	}
	if m == nil {
		m = manifest.Default()
	}
	if *verbose >= 0 {
		m.Log.Verbosity = *verbose
	}
	if *frames >= 0 {
		m.Player.Frames = *frames
	}
	if *trace {
		m.Engine.Trace = true
	}
	commonlog.Configure(m.Log.Verbosity, m.LogPath())
	log := commonlog.GetLogger("flashvm")

	paths := flag.Args()
	if len(paths) == 0 {
		paths = m.BundlePaths()
	}
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	p := player.New(m)
	failed := false
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if *disasm {
			programs, err := p.Decoder.Decode(data)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error decoding %s: %v\n", path, err)
				os.Exit(1)
			}
			for _, prog := range programs {
				fmt.Print(abc.Disassemble(prog))
			}
			continue
		}

		log.Infof("loading %s", path)
		if err := p.Load(data); err != nil {
			fmt.Fprintf(os.Stderr, "Error running %s: %v\n", path, err)
			failed = true
		}
	}
	if *disasm {
		return
	}

	if m.Player.Frames > 0 {
		if err := p.Advance(m.Player.Frames); err != nil {
			fmt.Fprintf(os.Stderr, "Error advancing frames: %v\n", err)
			failed = true
		}
	}

	faults := p.Faults()
	for _, f := range faults {
		fmt.Fprintf(os.Stderr, "fault: %s\n", f)
	}
	fmt.Printf("%s: %d objects on stage, %d frames, %d faults\n",
		m.Player.Name, len(p.Stage.Attached()), p.Stage.Frame(), len(faults))
	if failed {
		os.Exit(1)
	}
}
