package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsonstrip/internal/config"
	"github.com/mcncl/jsonstrip/internal/division"
	"github.com/mcncl/jsonstrip/internal/errors"
	"github.com/mcncl/jsonstrip/internal/formatter"
	"github.com/mcncl/jsonstrip/internal/logging"
	"github.com/mcncl/jsonstrip/internal/models"
	"github.com/mcncl/jsonstrip/internal/parser"
	"github.com/mcncl/jsonstrip/internal/stripper"
)

// CLI defines the command-line interface
var CLI struct {
	Config  string           `help:"Path to a YAML config file. Defaults to the nearest .jsonstrip.yml." short:"c" type:"path"`
	Debug   bool             `help:"Enable debug logging." short:"d"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`

	Strip StripCmd `cmd:"" default:"withargs" help:"Remove fields from every object of a JSON document (default)."`
	Build BuildCmd `cmd:"" help:"Build the division tree JSON from a code list."`
}

// StripCmd removes the configured fields from a JSON document
type StripCmd struct {
	Input  string   `help:"Path to input JSON file, - for stdin. Defaults to 2023/fullData.json." short:"i"`
	Output string   `help:"Path to output JSON file, - for stdout. Defaults to 2023/data.json." short:"o"`
	Field  []string `help:"Field to remove from every object. Repeat to remove several; replaces the configured set." short:"f"`
	Indent int      `help:"Indentation width, 0 for compact output. Defaults to 2." default:"-1"`
}

// BuildCmd builds the full division tree from a code list
type BuildCmd struct {
	Input    string `help:"Path to the code list, one 'name code' pair per line." short:"i"`
	Output   string `help:"Path to output JSON file, - for stdout. Defaults to 2023/fullData.json." short:"o"`
	KeyStyle string `help:"Member name style: camel, snake or kebab."`
	Indent   int    `help:"Indentation width, 0 for compact output. Defaults to 2." default:"-1"`
}

// Context holds the runtime context
type Context struct {
	ConfigPath string
	Debug      bool
	// Logger is used as is when set, otherwise built from the configuration
	Logger logging.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	cli := kong.Must(&CLI,
		kong.Name("jsonstrip"),
		kong.Description("Strip ancestry fields from nested JSON documents"),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("jsonstrip version %s", Version)},
	)

	ctx, err := cli.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	err = ctx.Run(&Context{ConfigPath: CLI.Config, Debug: CLI.Debug})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonstrip --help\n")
		os.Exit(1)
	}
}

// setup resolves the configuration and logger for a command
func (ctx *Context) setup(overrides config.Overrides) (*config.Config, logging.Logger, error) {
	overrides.Debug = ctx.Debug
	cfg, err := config.Load(ctx.ConfigPath, overrides)
	if err != nil {
		return nil, nil, err
	}
	if ctx.Logger != nil {
		return cfg, ctx.Logger, nil
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, errors.NewConfigError("failed to create logger", err)
	}
	return cfg, logger, nil
}

func indentOverride(indent int) *int {
	if indent < 0 {
		return nil
	}
	return &indent
}

// Run executes the strip command
func (c *StripCmd) Run(ctx *Context) error {
	cfg, logger, err := ctx.setup(config.Overrides{
		Input:  c.Input,
		Output: c.Output,
		Indent: indentOverride(c.Indent),
		Fields: c.Field,
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return runStrip(cfg, logger)
}

// runStrip reads the input document, strips it and writes the result
func runStrip(cfg *config.Config, logger logging.Logger) error {
	logger.Debug("reading input", logging.String("input", cfg.Input))
	root, err := parser.ParseFile(cfg.Input)
	if err != nil {
		return err
	}

	s := stripper.New(cfg.Fields...)
	stripped, stats := s.StripWithStats(root)
	logger.Debug("stripped document",
		logging.Strings("fields", s.Fields()),
		logging.Int("objects", stats.Objects),
		logging.Int("arrays", stats.Arrays),
		logging.Int("removed", stats.Removed),
	)

	if err := writeOutput(cfg.Output, cfg.Indent, stripped); err != nil {
		return err
	}
	logger.Info("fields removed, result saved", logging.String("output", cfg.Output))
	return nil
}

// Run executes the build command
func (c *BuildCmd) Run(ctx *Context) error {
	cfg, logger, err := ctx.setup(config.Overrides{
		BuildInput:  c.Input,
		BuildOutput: c.Output,
		Indent:      indentOverride(c.Indent),
		KeyStyle:    c.KeyStyle,
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return runBuild(cfg, logger)
}

// runBuild parses the code list, enriches the tree and writes it as JSON
func runBuild(cfg *config.Config, logger logging.Logger) error {
	if cfg.Build.Input == "" {
		return errors.NewInputError("no code list given, use --input or build.input", errors.ErrInvalidFilePath)
	}

	tree, err := division.ParseFile(cfg.Build.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewInputError(fmt.Sprintf("file '%s' not found", cfg.Build.Input), errors.ErrFileNotFound)
		}
		return errors.NewInputError(fmt.Sprintf("failed to read code list '%s'", cfg.Build.Input), err)
	}
	if len(tree.Provinces) == 0 {
		return errors.NewBuildError(fmt.Sprintf("no province level areas in '%s'", cfg.Build.Input), errors.ErrNoAreas)
	}
	for _, line := range tree.Unmatched {
		logger.Warn("could not place line", logging.String("line", line))
	}

	index := tree.Enrich()
	style, err := division.ParseKeyStyle(cfg.Build.KeyStyle)
	if err != nil {
		return errors.NewConfigError(err.Error(), errors.ErrInvalidConfig)
	}

	if err := writeOutput(cfg.Build.Output, cfg.Indent, division.ToValue(tree.Provinces, style)); err != nil {
		return err
	}
	logger.Info("division tree written",
		logging.String("output", cfg.Build.Output),
		logging.Int("provinces", len(tree.Provinces)),
		logging.Int("areas", len(index)),
		logging.Int("unmatched", len(tree.Unmatched)),
	)
	return nil
}

// writeOutput serializes v and stores it at path
func writeOutput(path string, indent int, v models.Value) error {
	data, err := formatter.NewFormatter(indent).Format(v)
	if err != nil {
		return errors.NewFormatError("failed to serialize JSON", err)
	}
	if err := formatter.WriteFile(path, data); err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
	}
	return nil
}
