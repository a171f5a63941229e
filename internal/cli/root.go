// Package cli implements the flashcards command-line tool.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/heartmarshall/flashcard-tutor/internal/adapter/llm"
	"github.com/heartmarshall/flashcard-tutor/internal/app"
	"github.com/heartmarshall/flashcard-tutor/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Format     string // "text" | "json" | "yaml"

	open envOpener
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// Env is what a command needs at run time.
type Env struct {
	Services *app.Services
	Logger   *slog.Logger
	Config   *config.Config
	close    func()
}

// Close releases the storage backend.
func (e *Env) Close() {
	if e.close != nil {
		e.close()
	}
}

func (e *Env) requireLLM() error {
	if e.Config.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is not configured (set LLM_API_KEY)")
	}
	return nil
}

type envOpener func(ctx context.Context, opts *RootOptions) (*Env, error)

// NewRootCommand creates the root command for the flashcards CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(openEnv)
}

func newRootCommand(open envOpener) *cobra.Command {
	opts := &RootOptions{open: open}

	cmd := &cobra.Command{
		Use:   "flashcards",
		Short: "Generate, study and manage flashcard decks",
		Long: `Flashcard tutor on the command line.

Generates question/answer decks with a language model, explains and grades
answers, and manages the saved deck collection. Settings come from the same
config file and environment variables as the HTTP server; the CLI defaults
to the sqlite storage backend.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", os.Getenv("CONFIG_PATH"), "path to the YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "output-format" {
			name = "format"
		}
		return pflag.NormalizedName(name)
	})

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewExplainCommand(opts))
	cmd.AddCommand(NewGradeCommand(opts))
	cmd.AddCommand(NewDecksCommand(opts))
	cmd.AddCommand(NewMCPCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// openEnv loads configuration and wires the services. Logs go to stderr so
// stdout carries only command output.
func openEnv(ctx context.Context, opts *RootOptions) (*Env, error) {
	if opts.ConfigPath != "" {
		if err := os.Setenv("CONFIG_PATH", opts.ConfigPath); err != nil {
			return nil, fmt.Errorf("set CONFIG_PATH: %w", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := app.NewLoggerTo(os.Stderr, cfg.Log)

	store, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	return &Env{
		Services: app.NewServices(logger, llm.NewClient(cfg.LLM, logger), store),
		Logger:   logger,
		Config:   cfg,
		close:    store.Close,
	}, nil
}

// withEnv opens the environment, runs fn and closes it again.
func withEnv(cmd *cobra.Command, opts *RootOptions, fn func(env *Env) error) error {
	env, err := opts.open(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer env.Close()
	return fn(env)
}
