package cli

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/flashcard-tutor/internal/app"
	"github.com/heartmarshall/flashcard-tutor/internal/transport/mcp"
)

// NewMCPCommand creates the mcp command.
func NewMCPCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the flashcard tools over MCP on stdin/stdout",
		Long: `Serve the flashcard tools to an MCP client over stdin/stdout.

Logs go to stderr. The server stops when the client closes stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, rootOpts, func(env *Env) error {
				server := mcp.NewServer(mcp.Config{
					Services: env.Services.MCP(),
					Version:  app.Version,
					Logger:   env.Logger,
				})
				env.Logger.Info("mcp server starting", "transport", "stdio")
				return mcp.Serve(cmd.Context(), server)
			})
		},
	}
}
