package main

import (
	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/observability"
	"github.com/spf13/cobra"
)

var (
	listMinSalary int
	listHasEquity bool
	listTitle     string
)

var listSQLCmd = &cobra.Command{
	Use:   "list-sql",
	Short: "Print the job listing query for a set of filters",
	Long: `Render the SELECT statement and positional arguments GET /jobs would run
for the given filters, without touching the database.`,
	RunE: runListSQL,
}

func init() {
	listSQLCmd.Flags().IntVar(&listMinSalary, "min-salary", 0, "Minimum salary")
	listSQLCmd.Flags().BoolVar(&listHasEquity, "has-equity", false, "Only jobs with non-zero equity")
	listSQLCmd.Flags().StringVar(&listTitle, "title", "", "Case-insensitive title substring")
	rootCmd.AddCommand(listSQLCmd)
}

func runListSQL(cmd *cobra.Command, _ []string) error {
	var filter db.JobFilter
	flags := cmd.Flags()
	if flags.Changed("min-salary") {
		filter.MinSalary = &listMinSalary
	}
	if flags.Changed("has-equity") {
		filter.HasEquity = &listHasEquity
	}
	if flags.Changed("title") {
		filter.Title = &listTitle
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintQuery(db.BuildListQuery(filter))
	return nil
}
