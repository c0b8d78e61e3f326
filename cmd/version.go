package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vojtapolasek/todo-mcp-server/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of todo-mcp-server",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
