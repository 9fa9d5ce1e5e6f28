package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	postgres "github.com/heartmarshall/workbench-backend/internal/adapter/postgres"
	"github.com/heartmarshall/workbench-backend/migrations"
)

type migrator interface {
	Up(ctx context.Context) ([]*goose.MigrationResult, error)
	Down(ctx context.Context) (*goose.MigrationResult, error)
	Status(ctx context.Context) ([]*goose.MigrationStatus, error)
}

// MigrationRow is one line of migrate output.
type MigrationRow struct {
	Version   int64      `json:"version"`
	File      string     `json:"file"`
	State     string     `json:"state"`
	AppliedAt *time.Time `json:"appliedAt,omitempty"`
	Duration  string     `json:"duration,omitempty"`
}

// NewMigrateCommand creates the migrate command group.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	withMigrator := func(run func(ctx context.Context, m migrator, out *OutputFormatter) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			in, err := rootOpts.connect(cmd)
			if err != nil {
				return err
			}
			defer in.Close()

			provider, closeDB, err := postgres.NewMigrator(in.Pool, migrations.FS)
			if err != nil {
				return err
			}
			defer func() { _ = closeDB() }()

			return run(cmd.Context(), provider, rootOpts.output(cmd))
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE:  withMigrator(runMigrateUp),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE:  withMigrator(runMigrateDown),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE:  withMigrator(runMigrateStatus),
	})

	return cmd
}

func runMigrateUp(ctx context.Context, m migrator, out *OutputFormatter) error {
	results, err := m.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	rows := make([]MigrationRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, resultRow(r))
	}
	return out.Emit(rows, func(w io.Writer) {
		if len(rows) == 0 {
			fmt.Fprintln(w, "schema is up to date")
			return
		}
		for _, r := range rows {
			fmt.Fprintf(w, "applied %d %s (%s)\n", r.Version, r.File, r.Duration)
		}
	})
}

func runMigrateDown(ctx context.Context, m migrator, out *OutputFormatter) error {
	result, err := m.Down(ctx)
	if err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	row := resultRow(result)
	return out.Emit(row, func(w io.Writer) {
		fmt.Fprintf(w, "rolled back %d %s (%s)\n", row.Version, row.File, row.Duration)
	})
}

func runMigrateStatus(ctx context.Context, m migrator, out *OutputFormatter) error {
	statuses, err := m.Status(ctx)
	if err != nil {
		return fmt.Errorf("migrate status: %w", err)
	}
	rows := make([]MigrationRow, 0, len(statuses))
	for _, s := range statuses {
		row := MigrationRow{State: string(s.State)}
		if s.Source != nil {
			row.Version, row.File = s.Source.Version, s.Source.Path
		}
		if !s.AppliedAt.IsZero() {
			at := s.AppliedAt
			row.AppliedAt = &at
		}
		rows = append(rows, row)
	}
	return out.Emit(rows, func(w io.Writer) {
		for _, r := range rows {
			applied := "-"
			if r.AppliedAt != nil {
				applied = r.AppliedAt.Format(time.RFC3339)
			}
			fmt.Fprintf(w, "%-6d %-10s %-25s %s\n", r.Version, r.State, applied, r.File)
		}
	})
}

func resultRow(r *goose.MigrationResult) MigrationRow {
	row := MigrationRow{State: r.Direction, Duration: r.Duration.Round(time.Millisecond).String()}
	if r.Source != nil {
		row.Version, row.File = r.Source.Version, r.Source.Path
	}
	return row
}
