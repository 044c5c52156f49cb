// Package main is the entry point for the autopair tool: it validates
// pairing rule configurations, prints their trigger keys, replays
// keystroke scripts, and runs an interactive demo editor.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dshills/autopair/internal/logging"
	"github.com/dshills/autopair/internal/ruleconfig"
	"github.com/dshills/autopair/internal/rules"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath string
	language   string
	indent     string
	verbosity  int

	check    bool
	keys     bool
	simPath  string
	demo     bool
	showVers bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if opts.showVers {
		fmt.Printf("autopair %s (%s)\n", version, commit)
		return 0
	}

	logging.Setup(opts.verbosity)

	switch {
	case opts.check:
		return runCheck(opts)
	case opts.keys:
		return runKeys(opts)
	case opts.simPath != "":
		return runSim(opts)
	case opts.demo:
		return runDemo(opts)
	default:
		flag.Usage()
		return 2
	}
}

func parseFlags() options {
	var opts options

	flag.StringVar(&opts.configPath, "config", "", "path to a TOML rules file (optional; defaults are built in)")
	flag.StringVar(&opts.language, "lang", "go", "buffer language for span parsing and language-gated rules")
	flag.StringVar(&opts.indent, "indent", "\t", "indent text used when splitting a pair across lines")
	flag.IntVar(&opts.verbosity, "verbosity", 0, "log verbosity (0=warn, 1=info, 2=debug)")

	flag.BoolVar(&opts.check, "check", false, "validate the rules file and exit")
	flag.BoolVar(&opts.keys, "keys", false, "print the trigger keys of the compiled rules and exit")
	flag.StringVar(&opts.simPath, "sim", "", `keystroke script to replay ("-" for stdin)`)
	flag.BoolVar(&opts.demo, "demo", false, "run the interactive demo editor")
	flag.BoolVar(&opts.showVers, "version", false, "print version information and exit")

	flag.Parse()
	return opts
}

// loadIndex compiles the built-in defaults merged with the optional
// configuration file.
func loadIndex(opts options) (*rules.Index, error) {
	defs := rules.Defaults()

	if opts.configPath != "" {
		loader := ruleconfig.NewLoader()
		// The loader's Lua environment must outlive compiled
		// predicates; it is intentionally not closed here.
		loaded, err := loader.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		for key, list := range loaded {
			defs[key] = list
		}
	}

	return rules.Compile(defs)
}

func runCheck(opts options) int {
	if opts.configPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -check requires -config")
		return 2
	}
	idx, err := loadIndex(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("%s: ok (%d rules)\n", opts.configPath, idx.Len())
	return 0
}

func runKeys(opts options) int {
	idx, err := loadIndex(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	for _, key := range idx.TriggerKeys() {
		fmt.Println(key)
	}
	return 0
}
