// Package cmd implements the todo-mcp-server CLI commands using the cobra
// framework. Every query command takes the todo.txt file path as its single
// positional argument and fails fast when the file is unreadable.
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vojtapolasek/todo-mcp-server/internal/logging"
	"github.com/vojtapolasek/todo-mcp-server/internal/query"
	"github.com/vojtapolasek/todo-mcp-server/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "todo-mcp-server",
	Short: "Read-only todo.txt query and suggestion tools for language models",
	Long: `todo-mcp-server parses a todo.txt task list and answers queries over it:
overviews, next-task suggestions, and project/context/waiting/inbox views.
The serve command exposes the same operations as MCP tools over stdio; the
other commands print them directly for human inspection.

The file is re-read on every query, so results always reflect its current
contents. Nothing ever writes to the file.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().String("config", "", "Path to an optional YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "Write JSON logs to this file (rotated)")
}

// setup loads config, builds the logger, and creates an engine over the todo
// file at path. The file must exist and be readable — a missing file is a
// startup error, not something to discover on the first query.
func setup(cmd *cobra.Command, path string) (*query.Engine, zerolog.Logger, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.FilePath = cfg.Logging.File
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		logCfg.Level = lvl
	}
	if file, _ := cmd.Flags().GetString("log-file"); file != "" {
		logCfg.FilePath = file
	}
	log := logging.New(logCfg)

	f, err := os.Open(path)
	if err != nil {
		return nil, log, fmt.Errorf("todo file %s is not readable: %w", path, err)
	}
	f.Close()

	engine := query.NewEngine(path, cfg.TaskConventions(), query.Options{
		MaxSuggestions: cfg.Suggestions.MaxResults,
		DueSoonDays:    cfg.Overview.DueSoonDays,
		Logger:         &log,
	})
	return engine, log, nil
}
