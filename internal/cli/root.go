// Package cli implements workbenchctl, the operator command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/workbench-backend/internal/app"
	"github.com/heartmarshall/workbench-backend/internal/config"
)

// ValidFormats are the accepted values of --format.
var ValidFormats = []string{"text", "json"}

// Opener connects the backends a command needs.
type Opener func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app.Infra, error)

// RootOptions holds global flags and the hooks commands use to reach the
// backends.
type RootOptions struct {
	Format  string
	Verbose bool

	LoadConfig func() (*config.Config, error)
	Open       Opener
}

// NewRootCommand creates the workbenchctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{
		LoadConfig: config.Load,
		Open:       app.Open,
	}

	cmd := &cobra.Command{
		Use:   "workbenchctl",
		Short: "Operate a workbench backend",
		Long:  "Maintenance commands for the workbench backend: schema migrations, session cleanup and search reindexing.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log debug output to stderr")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewCleanupTokensCommand(opts))
	cmd.AddCommand(NewReindexCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// connect loads config and opens the backends. Callers must Close the result.
func (o *RootOptions) connect(cmd *cobra.Command) (*app.Infra, error) {
	cfg, err := o.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: levelFor(o.Verbose)}))

	return o.Open(cmd.Context(), cfg, logger)
}

func levelFor(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

func (o *RootOptions) output(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}
