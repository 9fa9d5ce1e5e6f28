package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/workbench-backend/internal/app"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := map[string]string{"version": app.Version, "commit": app.Commit, "buildTime": app.BuildTime}
			return rootOpts.output(cmd).Emit(info, func(w io.Writer) {
				fmt.Fprintln(w, app.BuildVersion())
			})
		},
	}
}
