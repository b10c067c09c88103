package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"

	"github.com/lucianofp/jinja2tt"
)

var (
	outputPath = flag.String("o", "", "write output to `path` instead of stdout")
	inPlace    = flag.Bool("i", false, "write output to a .tt sibling of the source file")
	debug      = flag.Bool("debug", false, "dump the token stream and AST to stderr")
	configPath = flag.String("config", "", "YAML configuration `file` (delimiters, filter mappings)")
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: jinja2tt [flags] <template> ('-' reads stdin)")
	flag.PrintDefaults()
}

func run() error {
	if flag.NArg() != 1 {
		usage()
		return fmt.Errorf("exactly one template path required")
	}
	path := flag.Arg(0)

	opts := &jinja2tt.Options{Debug: *debug}
	if *configPath != "" {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			return err
		}
		if err := cfg.apply(opts); err != nil {
			return err
		}
	}
	if *debug {
		jinja2tt.SetDebug(true)
	}
	transpiler := jinja2tt.NewTranspiler(opts)

	var out string
	var err error
	if path == "-" {
		input, readErr := io.ReadAll(os.Stdin)
		if readErr != nil {
			return fmt.Errorf("reading stdin: %w", readErr)
		}
		out, err = transpiler.Transpile(string(input))
	} else {
		out, err = transpiler.TranspileFile(path)
	}
	if err != nil {
		return err
	}

	switch {
	case *outputPath != "":
		return os.WriteFile(*outputPath, []byte(out), 0o644)
	case *inPlace:
		if path == "-" {
			return fmt.Errorf("-i cannot be combined with stdin input")
		}
		sibling := strings.TrimSuffix(path, filepath.Ext(path)) + ".tt"
		return os.WriteFile(sibling, []byte(out), 0o644)
	default:
		_, err := os.Stdout.WriteString(out)
		return err
	}
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if err := run(); err != nil {
		stderr := colorable.NewColorableStderr()
		errFmt := color.New(color.Bold, color.FgHiRed).SprintFunc()
		fmt.Fprintf(stderr, "%s %v\n", errFmt("jinja2tt:"), err)
		os.Exit(1)
	}
}
