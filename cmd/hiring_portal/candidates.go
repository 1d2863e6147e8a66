package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/jonathan/hiring-portal/internal/catalog"
	"github.com/jonathan/hiring-portal/internal/table"
	"github.com/jonathan/hiring-portal/internal/types"
	"github.com/spf13/cobra"
)

var (
	candidatesJob    string
	candidatesSearch string
	candidatesSort   string
	candidatesDir    string
	candidatesPage   int
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Show the candidate table of a job (admin only)",
	RunE:  runCandidates,
}

func init() {
	candidatesCmd.Flags().StringVar(&candidatesJob, "job", "", "Job ID")
	candidatesCmd.Flags().StringVarP(&candidatesSearch, "q", "q", "", "Search every column")
	candidatesCmd.Flags().StringVar(&candidatesSort, "sort", "", "Column to sort by")
	candidatesCmd.Flags().StringVar(&candidatesDir, "dir", "asc", "Sort direction (asc or desc)")
	candidatesCmd.Flags().IntVar(&candidatesPage, "page", 1, "Page number")

	if err := candidatesCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}
	rootCmd.AddCommand(candidatesCmd)
}

func runCandidates(cmd *cobra.Command, _ []string) error {
	term, err := openTerminal(commandContext(cmd))
	if err != nil {
		return err
	}
	defer term.close()

	if _, err := term.sessions.Require(types.RoleAdmin); err != nil {
		return err
	}
	dir := table.Direction(candidatesDir)
	if dir != table.Asc && dir != table.Desc {
		return fmt.Errorf("invalid direction %q: must be asc or desc", candidatesDir)
	}

	cat := catalog.New(term.repo)
	job, ok := cat.FindJobByID(candidatesJob)
	if !ok {
		return fmt.Errorf("%w: %s", catalog.ErrNotFound, candidatesJob)
	}

	ctl := table.NewController(cat.ListCandidatesByJob(job.ID), table.CandidateColumns, term.cfg.CandidatePageSize)
	ctl.SetSearch(candidatesSearch)
	if candidatesSort != "" {
		ctl.ToggleSort(candidatesSort)
		if dir == table.Desc {
			ctl.ToggleSort(candidatesSort)
		}
	}
	ctl.SetPage(candidatesPage)
	page := ctl.View()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s (%s)\n", job.Title, job.ID)
	if page.Empty {
		_, _ = fmt.Fprintln(out, "No candidates found")
		return nil
	}

	cols := job.ApplicationForm.Fields
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	header := []string{"ID", "APPLIED"}
	for _, f := range cols {
		header = append(header, strings.ToUpper(f.Label))
	}
	_, _ = fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, c := range page.Items {
		row := []string{c.ID, c.AppliedDate}
		for _, f := range cols {
			row = append(row, cellText(f.Key, c.Text(f.Key)))
		}
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Page %d of %d (%d candidates)\n", page.Page, page.TotalPages, page.TotalCount)
	return nil
}

// cellText keeps photo payloads out of the terminal.
func cellText(key, value string) string {
	switch {
	case value == "":
		return "-"
	case strings.HasPrefix(value, "data:"):
		return "[" + key + "]"
	}
	return value
}
