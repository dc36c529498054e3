// hostgen generates the vm.HostType member tables of a Go package from its
// //as: directives.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/flashvm/hostgen"
)

func main() {
	output := flag.String("out", "members_gen.go", "Output file, relative to the package directory")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: hostgen [options] [package]\n\n")
		fmt.Fprintf(os.Stderr, "Reads //as: directives from a package (default \".\") and writes its host type tables.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  //go:generate go run github.com/chazu/flashvm/cmd/hostgen -out members_gen.go .\n")
		fmt.Fprintf(os.Stderr, "  hostgen -v ./natives\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)
	log := commonlog.GetLogger("flashvm.hostgen")

	pattern := "."
	if flag.NArg() > 0 {
		pattern = flag.Arg(0)
	}

	model, err := hostgen.IntrospectPackage(pattern)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Infof("found %d classes in %s", len(model.Classes), model.ImportPath)

	code, err := hostgen.Generate(model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	path := *output
	if !filepath.IsAbs(path) && pattern != "." && isDir(pattern) {
		path = filepath.Join(pattern, path)
	}
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
		os.Exit(1)
	}
	log.Infof("wrote %s", path)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
