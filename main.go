// Command eelic compiles a single EELI source file into an intermediate
// quad listing and MIPS-like assembly: one positional source path in,
// two sibling text artifacts out.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eelic-lang/eelic/config"
	"github.com/eelic-lang/eelic/parser"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		configPath  = flag.String("config", "", "Path to a .eelic.toml configuration file (default: look next to the source file)")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("eelic %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		os.Exit(0)
	}

	if *showHelp || flag.NArg() == 0 {
		printHelp()
		if flag.NArg() == 0 && !*showHelp {
			os.Exit(1)
		}
		os.Exit(0)
	}

	sourcePath := flag.Arg(0)
	if err := compile(sourcePath, *configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// compile reads sourcePath, compiles it, and writes the intermediate
// listing and assembly text to sibling files named after the source's
// first dot-delimited basename segment. A *parser.CompileError already
// formats itself as "<source_file>:(<row>,<col>):\n\t<message>"; every
// other error returned here is plain Go wrapping of an I/O or config
// failure.
func compile(sourcePath, configPath string) error {
	src, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("%s: could not read source file: %w", sourcePath, err)
	}

	cfg, err := loadConfig(sourcePath, configPath)
	if err != nil {
		return fmt.Errorf("%s: %w", sourcePath, err)
	}

	basename := filepath.Base(sourcePath)
	stem := strings.SplitN(basename, ".", 2)[0]
	intermediatePath := stem + ".eeli"
	finalPath := stem + ".s"

	p, err := parser.New(sourcePath, string(src), cfg)
	if err != nil {
		return err
	}

	result, err := p.Parse()
	if err != nil {
		return err
	}

	fmt.Printf("Putting intermediate code in [%s]...\n", intermediatePath)
	if err := os.WriteFile(intermediatePath, []byte(result.Quads), 0o644); err != nil {
		return fmt.Errorf("%s: could not write intermediate listing: %w", sourcePath, err)
	}

	fmt.Printf("Putting final code in [%s]...\n", finalPath)
	if err := os.WriteFile(finalPath, []byte(result.Assembly), 0o644); err != nil {
		return fmt.Errorf("%s: could not write assembly: %w", sourcePath, err)
	}

	return nil
}

func loadConfig(sourcePath, configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load(filepath.Dir(sourcePath))
}

func printHelp() {
	fmt.Printf(`eelic %s - a single-pass compiler for the EELI language

Usage: eelic [options] <source-file>

Compiles <source-file> into two sibling artifacts named after its
first dot-delimited basename segment: an intermediate three-address
quad listing (<name>.eeli) and MIPS-like target assembly (<name>.s).

Options:
  -help         Show this help message
  -version      Show version information
  -config FILE  Path to a .eelic.toml configuration file
                (default: look for one next to the source file)
`, Version)
}
