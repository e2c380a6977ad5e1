package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/typeweaver/typeweaver/internal/config"
	"github.com/typeweaver/typeweaver/internal/errors"
	"github.com/typeweaver/typeweaver/internal/inference"
	"github.com/typeweaver/typeweaver/internal/models"
	"github.com/typeweaver/typeweaver/internal/parser"
	"github.com/typeweaver/typeweaver/internal/render"
	"github.com/typeweaver/typeweaver/internal/schemacheck"
)

// CLI defines the command-line interface
var CLI struct {
	File     string `arg:"" optional:"" type:"path" help:"Path to the input JSON document. Reads from stdin when omitted or '-'."`
	Target   string `arg:"" optional:"" help:"Output target: go, typescript or jsonschema. When omitted, every target is written to a file next to the input."`
	Output   string `help:"Path to the output file. Defaults to stdout when a target is given." short:"o" type:"path"`
	Package  string `help:"Package name for generated Go code." short:"p"`
	RootName string `help:"Name for the root type." short:"r"`
	Config   string `help:"Path to a config file. Defaults to the nearest .typeweaver.yml." short:"c" type:"path"`
	Check    bool   `help:"Validate the document against its own inferred schema after rendering."`
	Version  bool   `help:"Show version information." short:"v"`
}

// Version information
const Version = "0.1.0"

func main() {
	cliParser := kong.Must(&CLI,
		kong.Name("typeweaver"),
		kong.Description("Infer type declarations from a JSON document"),
		kong.UsageOnError(),
	)

	if _, err := cliParser.Parse(os.Args[1:]); err != nil {
		// Usage is already shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("typeweaver version %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// run executes the main program logic: read, parse, infer, render, write.
func run() error {
	normalizeArgs()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	raw, err := readInput()
	if err != nil {
		return err
	}

	value, err := parser.ParseBytes(raw)
	if err != nil {
		return err
	}

	graph, err := inference.Infer(value, cfg.RootName)
	if err != nil {
		return err
	}

	opts := render.Options{Package: cfg.Package, Format: cfg.Format}

	if CLI.Check {
		if err := verifyRoundTrip(graph, raw); err != nil {
			return err
		}
	}

	if CLI.Target != "" {
		target, err := render.ParseTarget(CLI.Target)
		if err != nil {
			return err
		}
		renderer, err := render.For(target, opts)
		if err != nil {
			return err
		}
		text, err := renderer.Render(graph)
		if err != nil {
			return err
		}
		return writeOutput(text)
	}

	// No target: one output file per target, next to the input.
	if CLI.File == "" {
		return errors.NewInputError("a target is required when reading from stdin", errors.ErrNoInput)
	}
	targets, err := selectedTargets(cfg)
	if err != nil {
		return err
	}
	for _, target := range targets {
		renderer, err := render.For(target, opts)
		if err != nil {
			return err
		}
		text, err := renderer.Render(graph)
		if err != nil {
			return err
		}
		path := outputPath(CLI.File, renderer)
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	}
	return nil
}

// normalizeArgs resolves the positional ambiguity of stdin invocations.
// 'typeweaver go' with piped input means "read stdin, render go": a lone
// positional that names a target, with no file of that name present, binds
// to the target slot. '-' selects stdin explicitly, so 'typeweaver - go'
// also works.
func normalizeArgs() {
	if filepath.Base(CLI.File) == "-" {
		CLI.File = ""
		return
	}
	if CLI.Target != "" || CLI.File == "" {
		return
	}
	if _, err := render.ParseTarget(filepath.Base(CLI.File)); err != nil {
		return
	}
	if _, err := os.Stat(CLI.File); os.IsNotExist(err) {
		CLI.Target = filepath.Base(CLI.File)
		CLI.File = ""
	}
}

// loadConfig resolves file configuration and applies CLI overrides.
func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	cfg := config.NewConfig()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, errors.NewInputError(fmt.Sprintf("failed to load config '%s'", path), err)
		}
		cfg = loaded
	}
	if CLI.Package != "" {
		cfg.Package = CLI.Package
	}
	if CLI.RootName != "" {
		cfg.RootName = CLI.RootName
	}
	return cfg, nil
}

// selectedTargets returns the configured target list, defaulting to all.
func selectedTargets(cfg *config.Config) ([]render.Target, error) {
	if len(cfg.Targets) == 0 {
		return render.Targets(), nil
	}
	targets := make([]render.Target, 0, len(cfg.Targets))
	for _, name := range cfg.Targets {
		target, err := render.ParseTarget(name)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return targets, nil
}

// outputPath appends the target's extension to the input filename, e.g.
// data.json -> data.json.jsonschema.
func outputPath(file string, renderer render.Renderer) string {
	return file + "." + renderer.Ext()
}

// verifyRoundTrip renders the schema target and validates the original
// document against it.
func verifyRoundTrip(graph *models.TypeGraph, raw []byte) error {
	renderer, err := render.For(render.TargetJSONSchema, render.Options{})
	if err != nil {
		return err
	}
	schemaText, err := renderer.Render(graph)
	if err != nil {
		return err
	}
	return schemacheck.Check(schemaText, raw)
}

// readInput reads the raw document from the input file or stdin. Raw bytes
// are kept around because --check validates the original document.
func readInput() ([]byte, error) {
	if CLI.File != "" {
		data, err := os.ReadFile(CLI.File)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.NewInputError(
					fmt.Sprintf("file '%s' not found", CLI.File),
					errors.ErrFileNotFound,
				)
			}
			return nil, errors.NewInputError(
				fmt.Sprintf("failed to read file '%s'", CLI.File),
				err,
			)
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, errors.NewInputError(
				fmt.Sprintf("input file '%s' is empty", CLI.File),
				errors.ErrFileEmpty,
			)
		}
		return data, nil
	}

	if isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Fprintln(os.Stderr, "typeweaver interactive mode")
		fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return data, nil
}

// writeOutput writes rendered text to the output file or stdout.
func writeOutput(text string) error {
	if CLI.Output != "" {
		if err := os.WriteFile(CLI.Output, []byte(text), 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", CLI.Output)
		return nil
	}
	if _, err := fmt.Println(strings.TrimRight(text, "\n")); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
