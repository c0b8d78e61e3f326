package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vojtapolasek/todo-mcp-server/internal/query"
	"github.com/vojtapolasek/todo-mcp-server/internal/todotxt"
)

var nextCmd = &cobra.Command{
	Use:   "next <todo-file>",
	Short: "Suggest the next tasks to work on",
	Long: `Suggest the best next tasks given your current constraints. Completed
and waiting tasks are never suggested. With no filters, the top tasks in
priority/due-date order are shown.

  todo-mcp-server next todo.txt --energy low --minutes 15 --offline`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		energy, _ := cmd.Flags().GetString("energy")
		timeEstimate, _ := cmd.Flags().GetString("time")
		minutes, _ := cmd.Flags().GetInt("minutes")
		context, _ := cmd.Flags().GetString("context")
		project, _ := cmd.Flags().GetString("project")
		offline, _ := cmd.Flags().GetBool("offline")
		asJSON, _ := cmd.Flags().GetBool("json")
		return runNext(cmd, args[0], query.SuggestParams{
			Energy:               todotxt.EnergyLevel(energy),
			Time:                 todotxt.TimeEstimate(timeEstimate),
			TimeAvailableMinutes: minutes,
			Context:              context,
			Project:              project,
			Offline:              offline,
		}, asJSON)
	},
}

func init() {
	nextCmd.Flags().String("energy", "", "Current energy level (high, low)")
	nextCmd.Flags().String("time", "", "Preferred duration bucket (quick, medium, deep)")
	nextCmd.Flags().Int("minutes", 0, "Minutes available; maps to a duration bucket when --time is not given")
	nextCmd.Flags().String("context", "", "Only suggest tasks carrying this @context")
	nextCmd.Flags().String("project", "", "Only suggest tasks carrying this +project")
	nextCmd.Flags().Bool("offline", false, "Exclude tasks that require connectivity")
	nextCmd.Flags().Bool("json", false, "Output structured JSON")
	rootCmd.AddCommand(nextCmd)
}

func runNext(cmd *cobra.Command, path string, params query.SuggestParams, asJSON bool) error {
	engine, _, err := setup(cmd, path)
	if err != nil {
		return err
	}

	suggestion, err := engine.SuggestNext(params)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(suggestion)
	}

	if len(suggestion.Tasks) == 0 {
		fmt.Println("No tasks to suggest.")
		return nil
	}
	fmt.Printf("→ %s\n", suggestion.Tasks[0].Raw)
	fmt.Printf("  (%s)\n", suggestion.Reasoning)
	if len(suggestion.Tasks) > 1 {
		fmt.Println("\nAlternatives:")
		for _, t := range suggestion.Tasks[1:] {
			fmt.Printf("  %s\n", t.Raw)
		}
	}
	return nil
}
