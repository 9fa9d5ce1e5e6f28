package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// ErrSearchDisabled is returned by reindex when no Meilisearch URL is set.
var ErrSearchDisabled = errors.New("search engine not configured (set SEARCH_MEILI_URL)")

type reindexer interface {
	Healthy() bool
	Reindex(ctx context.Context) (int, error)
}

// NewReindexCommand creates the reindex command.
func NewReindexCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the search index from PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := rootOpts.connect(cmd)
			if err != nil {
				return err
			}
			defer in.Close()
			if in.Meili == nil {
				return ErrSearchDisabled
			}
			return runReindex(cmd.Context(), in.Search, rootOpts.output(cmd))
		},
	}
}

func runReindex(ctx context.Context, idx reindexer, out *OutputFormatter) error {
	if !idx.Healthy() {
		return errors.New("search engine is unreachable")
	}
	n, err := idx.Reindex(ctx)
	if err != nil {
		return fmt.Errorf("reindex after %d documents: %w", n, err)
	}
	return out.Emit(map[string]int{"indexed": n}, func(w io.Writer) {
		fmt.Fprintf(w, "indexed %d documents\n", n)
	})
}
