package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type expiredTokenDeleter interface {
	DeleteExpired(ctx context.Context) (int, error)
}

// NewCleanupTokensCommand creates the cleanup-tokens command.
func NewCleanupTokensCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup-tokens",
		Short: "Delete expired and long-revoked refresh sessions",
		Long: `Delete expired refresh sessions from the configured session store
(Redis when REDIS_URL is set, otherwise PostgreSQL). Recently revoked
sessions are kept so token reuse can still be detected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := rootOpts.connect(cmd)
			if err != nil {
				return err
			}
			defer in.Close()
			return runCleanupTokens(cmd.Context(), in.Tokens, rootOpts.output(cmd))
		},
	}
}

func runCleanupTokens(ctx context.Context, store expiredTokenDeleter, out *OutputFormatter) error {
	n, err := store.DeleteExpired(ctx)
	if err != nil {
		return fmt.Errorf("cleanup tokens: %w", err)
	}
	return out.Emit(map[string]int{"deleted": n}, func(w io.Writer) {
		fmt.Fprintf(w, "deleted %d expired refresh sessions\n", n)
	})
}
