package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vojtapolasek/todo-mcp-server/internal/query"
	"github.com/vojtapolasek/todo-mcp-server/internal/todotxt"
)

var lsCmd = &cobra.Command{
	Use:   "ls <todo-file>",
	Short: "List and filter tasks",
	Long: `Display a table of tasks in suggestion order (priority, then due date,
then file order). All supplied filters compose conjunctively. Use --json for
structured output suitable for agent consumption.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, _ := cmd.Flags().GetString("project")
		context, _ := cmd.Flags().GetString("context")
		energy, _ := cmd.Flags().GetString("energy")
		timeEstimate, _ := cmd.Flags().GetString("time")
		keyword, _ := cmd.Flags().GetString("query")
		completed, _ := cmd.Flags().GetBool("completed")
		offline, _ := cmd.Flags().GetBool("offline")
		max, _ := cmd.Flags().GetInt("max")
		asJSON, _ := cmd.Flags().GetBool("json")
		return runLS(cmd, args[0], query.Filter{
			IncludeCompleted: completed,
			Project:          project,
			Context:          context,
			Energy:           todotxt.EnergyLevel(energy),
			Time:             todotxt.TimeEstimate(timeEstimate),
			Offline:          offline,
			Keyword:          keyword,
			MaxResults:       max,
		}, asJSON)
	},
}

func init() {
	lsCmd.Flags().String("project", "", "Filter by project (exact match, without the + prefix)")
	lsCmd.Flags().String("context", "", "Filter by context (exact match, without the @ prefix)")
	lsCmd.Flags().String("energy", "", "Filter by derived energy level (high, low)")
	lsCmd.Flags().String("time", "", "Filter by derived time estimate (quick, medium, deep)")
	lsCmd.Flags().String("query", "", "Case-insensitive text search")
	lsCmd.Flags().Bool("completed", false, "Include completed tasks")
	lsCmd.Flags().Bool("offline", false, "Exclude tasks that require connectivity")
	lsCmd.Flags().Int("max", 0, "Maximum number of tasks to show (0 = all)")
	lsCmd.Flags().Bool("json", false, "Output structured JSON (for agent consumption)")
	rootCmd.AddCommand(lsCmd)
}

func runLS(cmd *cobra.Command, path string, f query.Filter, asJSON bool) error {
	engine, _, err := setup(cmd, path)
	if err != nil {
		return err
	}

	result, err := engine.AllTasks(f)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(result)
	}

	if len(result.Tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}
	return printTaskTable(result.Tasks)
}

// printTaskTable writes a human-readable tab-aligned task table to stdout.
func printTaskTable(tasks []todotxt.TaskJSON) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRI\tDUE\tDESCRIPTION\tPROJECTS\tCONTEXTS")
	fmt.Fprintln(w, "---\t---\t-----------\t--------\t--------")
	for _, t := range tasks {
		pri := t.Priority
		if pri == "" {
			pri = "-"
		}
		due := t.DueDate
		if due == "" {
			due = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			pri, due, t.Description,
			joinOrDash(t.Projects), joinOrDash(t.Contexts))
	}
	return w.Flush()
}

func joinOrDash(list []string) string {
	if len(list) == 0 {
		return "-"
	}
	return strings.Join(list, ",")
}
