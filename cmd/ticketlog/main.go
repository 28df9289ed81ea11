package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/wahlandcase/attuned.contextfinder/internal/config"
	"github.com/wahlandcase/attuned.contextfinder/internal/git"
	"github.com/wahlandcase/attuned.contextfinder/internal/logger"
	"github.com/wahlandcase/attuned.contextfinder/internal/ticket"
	"github.com/wahlandcase/attuned.contextfinder/internal/ui"

	"github.com/spf13/cobra"
)

const examples = `  ticketlog MD-17329
  ticketlog MD-17329 --files
  ticketlog MD-17329 --json
  ticketlog MD-17329 --repo ~/CT-Project --backend gogit`

type options struct {
	configPath string
	repo       string
	files      bool
	json       bool
	yaml       bool
	backend    string
	logLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "ticketlog TICKET",
		Short:         "Search git history for Jira ticket references",
		Example:       examples,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return run(cmd.Context(), opts, args[0], stdout, stderr)
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: user config dir)")
	flags.StringVar(&opts.repo, "repo", "", "Repository path (default from config)")
	flags.BoolVar(&opts.files, "files", false, "Include changed files for each commit")
	flags.BoolVar(&opts.json, "json", false, "Output as JSON")
	flags.BoolVar(&opts.yaml, "yaml", false, "Output as YAML")
	flags.StringVar(&opts.backend, "backend", "", "Git backend: cli or gogit (default from config)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.MarkFlagsMutuallyExclusive("json", "yaml")

	return rootCmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func newSearcher(backend string, log logger.Logger) (git.Searcher, error) {
	if err := config.ValidateBackend(backend); err != nil {
		return nil, err
	}
	if backend == config.BackendGoGit {
		return git.NewGoGitSearcher(log), nil
	}
	return git.NewCLISearcher(log), nil
}

func run(ctx context.Context, opts *options, ticketID string, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Log.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	log := logger.NewConsoleLogger(stderr, level)

	backend := cfg.Git.Backend
	if opts.backend != "" {
		backend = opts.backend
	}
	searcher, err := newSearcher(backend, log)
	if err != nil {
		return err
	}

	repo := cfg.RepoPath()
	if opts.repo != "" {
		repo = config.ExpandTilde(opts.repo)
	}

	svc := ticket.NewService(searcher, log)
	svc.TicketRegex = cfg.TicketRegex()
	svc.MaxCommits = cfg.Limits.MaxCommits
	svc.MaxFiles = cfg.Limits.MaxFiles
	svc.Timeout = cfg.GitTimeout()

	result, err := svc.Search(ctx, ticketID, repo, opts.files)
	if err != nil {
		return err
	}

	switch {
	case opts.json:
		return ticket.WriteJSON(stdout, result)
	case opts.yaml:
		return ticket.WriteYAML(stdout, result)
	default:
		return ui.RenderReport(stdout, result)
	}
}
