package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/flashcard-tutor/internal/app"
)

// NewVersionCommand creates the version command. It needs no configuration.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return out.Print(app.Info(), func(w io.Writer) error {
				_, err := fmt.Fprintln(w, app.BuildVersion())
				return err
			})
		},
	}
}
