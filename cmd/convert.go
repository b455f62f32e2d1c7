// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// fetch → extract → build tree → render Markdown → normalize → render output → write.
//
// It merges the optional config file with flags, selects the engine and
// the output renderer, and logs render warnings.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/pagemark/config"
	"github.com/gaurav-prasanna/pagemark/core"
	"github.com/gaurav-prasanna/pagemark/core/convert"
	"github.com/gaurav-prasanna/pagemark/core/extract"
	"github.com/gaurav-prasanna/pagemark/core/fetch"
	"github.com/gaurav-prasanna/pagemark/core/markdown"
	"github.com/gaurav-prasanna/pagemark/core/output"
	"github.com/gaurav-prasanna/pagemark/core/render"
)

// convertFlags holds the raw flag values of one convert invocation.
type convertFlags struct {
	input         string
	output        string
	outputDir     string
	configPath    string
	engine        string
	logLevel      string
	inlineCodeMax int
	markdown      bool
	json          bool
	pdf           bool
	tree          bool
}

func newConvertCmd() *cobra.Command {
	var f convertFlags

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an HTML page to Markdown (or JSON/PDF)",
		Long: `Convert reads an HTML page from a file or URL, extracts its main content
into a document tree, and renders the tree as normalized Markdown.

Examples:
  pagemark convert
  pagemark convert --input page.html --output page.md
  pagemark convert --input https://example.com/post --json
  pagemark convert --input tree.xml --tree
  pagemark convert --engine direct --pdf --output_dir ./out`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			return runConvert(cmd, cfg, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.input, "input", config.DefaultInput, "Input HTML file path or http(s) URL")
	flags.StringVar(&f.output, "output", config.DefaultOutput, "Output file path")
	flags.StringVar(&f.outputDir, "output_dir", "", "Directory for relative output paths (default: current directory)")
	flags.StringVar(&f.configPath, "config", "", "YAML config file with default settings")

	// Output format flags (mutually exclusive, Markdown when none is set).
	flags.BoolVar(&f.markdown, "markdown", false, "Output Markdown")
	flags.BoolVar(&f.json, "json", false, "Output structured JSON")
	flags.BoolVar(&f.pdf, "pdf", false, "Output PDF")

	flags.StringVar(&f.engine, "engine", convert.EngineTree, "Conversion engine: tree or direct")
	flags.BoolVar(&f.tree, "tree", false, "Input is an already extracted document tree (XML)")
	flags.IntVar(&f.inlineCodeMax, "inline-code-max", markdown.DefaultInlineCodeMaxLen, "Longest code text rendered inline outside paragraphs")
	flags.StringVar(&f.logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	return cmd
}

// resolveConfig layers explicitly set flags over the config file over the
// built-in defaults.
func resolveConfig(cmd *cobra.Command, f convertFlags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = f.input
	}
	if flags.Changed("output") {
		cfg.Output = f.output
		cfg.OutputSet = true
	}
	if flags.Changed("engine") {
		cfg.Engine = f.engine
	}
	if flags.Changed("inline-code-max") {
		cfg.InlineCodeMax = f.inlineCodeMax
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}

	formatCount := 0
	for format, set := range map[string]bool{
		render.FormatMarkdown: f.markdown,
		render.FormatJSON:     f.json,
		render.FormatPDF:      f.pdf,
	} {
		if set {
			cfg.Format = format
			formatCount++
		}
	}
	if formatCount > 1 {
		return cfg, fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	if cfg.InlineCodeMax < 0 {
		return cfg, fmt.Errorf("--inline-code-max must not be negative")
	}
	if f.tree && cfg.Engine != convert.EngineTree {
		return cfg, fmt.Errorf("--tree requires the %q engine", convert.EngineTree)
	}
	return cfg, nil
}

func runConvert(cmd *cobra.Command, cfg config.Config, f convertFlags) error {
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	renderer, err := render.New(cfg.Format)
	if err != nil {
		return err
	}
	converter, err := convert.New(cfg.Engine, extract.New(), convert.Options{
		InlineCodeMaxLen: cfg.InlineCodeMax,
		Logger:           logger,
	})
	if err != nil {
		return err
	}
	writer, err := output.New(f.outputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	// 1. Fetch
	page, err := fetch.New().Fetch(cmd.Context(), cfg.Input)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	logger.Debug("input loaded", "source", cfg.Input, "bytes", len(page.HTML))

	// 2. Convert to normalized Markdown
	var conv *core.Conversion
	if f.tree {
		tc, ok := converter.(*convert.TreeConverter)
		if !ok {
			return fmt.Errorf("--tree requires the %q engine", convert.EngineTree)
		}
		conv, err = tc.ConvertTree(page.HTML)
	} else {
		conv, err = converter.Convert(page.HTML)
	}
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	conv.Meta.Source = cfg.Input
	if len(conv.Warnings) > 0 {
		logger.Info("conversion finished with warnings", "count", len(conv.Warnings))
	}

	// 3. Render to output format
	data, err := renderer.Render(conv.Markdown, conv.Meta)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	// 4. Write
	path, err := writer.Write(output.ResolvePath(cfg.Input, cfg.Output, cfg.OutputSet, renderer.Extension()), data)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	return nil
}
