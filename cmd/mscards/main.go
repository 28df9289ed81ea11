package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wahlandcase/attuned.contextfinder/internal/cards"
	"github.com/wahlandcase/attuned.contextfinder/internal/config"
	"github.com/wahlandcase/attuned.contextfinder/internal/docx"
	"github.com/wahlandcase/attuned.contextfinder/internal/logger"

	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	docsDir    string
	outputDir  string
	listOnly   bool
	noParser   bool
	logLevel   string
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "mscards",
		Short:         "Extract MS cards from Word documents",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, stdout, stderr)
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: user config dir)")
	flags.StringVar(&opts.docsDir, "docs-dir", "", "Directory containing .docx files")
	flags.StringVar(&opts.outputDir, "output-dir", "", "Output directory for extracted cards")
	flags.BoolVar(&opts.listOnly, "list-only", false, "Only list found card IDs")
	flags.BoolVar(&opts.noParser, "no-parser", false, "Skip document parsing (every document reads as empty)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	return rootCmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func run(opts *options, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Log.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	log := logger.NewConsoleLogger(stderr, level)

	docsDir := cfg.DocsPath()
	if opts.docsDir != "" {
		docsDir = config.ExpandTilde(opts.docsDir)
	}
	outputDir := cfg.OutputPath()
	if opts.outputDir != "" {
		outputDir = config.ExpandTilde(opts.outputDir)
	}

	var reader docx.Reader = docx.OOXMLReader{}
	if opts.noParser || cfg.Documents.Parser == config.ParserNone {
		log.Warnf("Document parsing is disabled; documents will read as empty")
		reader = docx.Unavailable{}
	}

	col, err := cards.NewExtractor(reader, log).Scan(docsDir)
	if err != nil {
		if errors.Is(err, cards.ErrNoDocuments) {
			log.Warnf("No .docx files found in %s", docsDir)
			return nil
		}
		return err
	}

	if opts.listOnly {
		for _, id := range col.IDs() {
			fmt.Fprintf(stdout, "  %s\n", id)
		}
		return nil
	}

	col.Fill()
	if err := cards.Write(outputDir, col, cfg.Documents.SourceLabel); err != nil {
		return err
	}

	log.Infof("Extracted %d cards to %s", len(col.Cards), outputDir)
	log.Infof("Index file: %s", filepath.Join(outputDir, cards.IndexFile))
	return nil
}
