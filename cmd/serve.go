package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vojtapolasek/todo-mcp-server/internal/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve <todo-file>",
	Short: "Run the MCP server on stdio",
	Long: `Expose the todo.txt query operations as MCP tools over stdio.

By default six named tools are registered (overview, suggestions, project,
waiting, inbox, and context views). With --simple a single generic
get_all_tasks tool is registered instead, leaving filtering decisions to the
calling model.

Logs go to stderr; stdout carries the MCP transport.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		simple, _ := cmd.Flags().GetBool("simple")
		return runServe(cmd, args[0], simple)
	},
}

func init() {
	serveCmd.Flags().Bool("simple", false, "Register a single generic get_all_tasks tool instead of the named tool set")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, path string, simple bool) error {
	engine, log, err := setup(cmd, path)
	if err != nil {
		return err
	}

	if simple {
		s, err := mcpserver.NewSimple(engine, log)
		if err != nil {
			return err
		}
		log.Info().Str("file", path).Msg("starting simple MCP server on stdio")
		return mcpserver.Serve(s)
	}

	s := mcpserver.New(engine, log)
	log.Info().Str("file", path).Msg("starting MCP server on stdio")
	return mcpserver.Serve(s)
}
