package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vojtapolasek/todo-mcp-server/internal/query"
)

var overviewCmd = &cobra.Command{
	Use:   "overview <todo-file>",
	Short: "Print aggregate task counts",
	Long: `Print totals, the priority distribution, top projects, and due-date
pressure for the given todo.txt file. Use --json for structured output.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return runOverview(cmd, args[0], asJSON)
	},
}

func init() {
	overviewCmd.Flags().Bool("json", false, "Output structured JSON")
	rootCmd.AddCommand(overviewCmd)
}

func runOverview(cmd *cobra.Command, path string, asJSON bool) error {
	engine, _, err := setup(cmd, path)
	if err != nil {
		return err
	}

	ov, err := engine.Overview()
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(ov)
	}
	return printOverviewTable(ov)
}

// printOverviewTable writes a human-readable overview to stdout.
func printOverviewTable(ov query.Overview) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "total\t%d\n", ov.Total)
	fmt.Fprintf(w, "active\t%d\n", ov.Active)
	fmt.Fprintf(w, "completed\t%d\n", ov.Completed)
	fmt.Fprintf(w, "waiting\t%d\n", ov.Waiting)
	fmt.Fprintf(w, "inbox\t%d\n", ov.Inbox)
	fmt.Fprintf(w, "overdue\t%d\n", ov.Overdue)
	fmt.Fprintf(w, "due today\t%d\n", ov.DueToday)
	fmt.Fprintf(w, "due soon\t%d\n", ov.DueSoon)

	if len(ov.ByPriority) > 0 {
		fmt.Fprintln(w, "\nPRIORITY\tCOUNT")
		keys := make([]string, 0, len(ov.ByPriority))
		for k := range ov.ByPriority {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "%s\t%d\n", k, ov.ByPriority[k])
		}
	}

	if len(ov.TopProjects) > 0 {
		fmt.Fprintln(w, "\nPROJECT\tCOUNT")
		for _, p := range ov.TopProjects {
			fmt.Fprintf(w, "%s\t%d\n", p.Project, p.Count)
		}
	}
	return w.Flush()
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
