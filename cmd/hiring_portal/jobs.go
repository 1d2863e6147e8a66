package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/jonathan/hiring-portal/internal/catalog"
	"github.com/jonathan/hiring-portal/internal/fields"
	"github.com/jonathan/hiring-portal/internal/observability"
	"github.com/jonathan/hiring-portal/internal/table"
	"github.com/jonathan/hiring-portal/internal/types"
	"github.com/spf13/cobra"
)

var (
	jobsSearch string
	jobsStatus string
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List job postings",
	Long: `List job postings. Applicants see active jobs only; admins see every
job with its candidate count and may filter by status.`,
	RunE: runJobs,
}

func init() {
	jobsCmd.Flags().StringVarP(&jobsSearch, "q", "q", "", "Search title and department")
	jobsCmd.Flags().StringVar(&jobsStatus, "status", "all", "Status filter for admins (all, active, inactive, draft)")
	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, _ []string) error {
	term, err := openTerminal(commandContext(cmd))
	if err != nil {
		return err
	}
	defer term.close()

	sess, err := term.sessions.Require("")
	if err != nil {
		return err
	}
	cat := catalog.New(term.repo)

	q := table.Query{Search: jobsSearch, SearchIn: table.JobSearchColumns}
	jobs := cat.ListActiveJobs()
	admin := sess.IsAdmin()
	if admin {
		jobs = cat.ListJobs()
		if jobsStatus != "" && jobsStatus != "all" {
			if !types.JobStatus(jobsStatus).Valid() {
				return fmt.Errorf("unknown status %q", jobsStatus)
			}
			q.Filters = map[string]string{"status": jobsStatus}
		}
	}
	q.PageSize = max(len(jobs), 1)
	page := table.View(jobs, table.JobListingColumns, q)

	out := cmd.OutOrStdout()
	if page.Empty {
		_, _ = fmt.Fprintln(out, "No jobs found")
		return nil
	}

	counts := cat.CandidateCounts()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if admin {
		_, _ = fmt.Fprintln(tw, "ID\tTITLE\tDEPARTMENT\tSTATUS\tSALARY\tCANDIDATES")
	} else {
		_, _ = fmt.Fprintln(tw, "ID\tTITLE\tDEPARTMENT\tSALARY")
	}
	for _, j := range page.Items {
		if admin {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n", j.ID, j.Title, j.Department, j.Status, j.SalaryRange.DisplayText, counts[j.ID])
		} else {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", j.ID, j.Title, j.Department, j.SalaryRange.DisplayText)
		}
	}
	return tw.Flush()
}

var jobCmd = &cobra.Command{
	Use:   "job <id>",
	Short: "Show a job posting and its application form",
	Args:  cobra.ExactArgs(1),
	RunE:  runJob,
}

func init() {
	rootCmd.AddCommand(jobCmd)
}

func runJob(cmd *cobra.Command, args []string) error {
	term, err := openTerminal(commandContext(cmd))
	if err != nil {
		return err
	}
	defer term.close()

	sess, err := term.sessions.Require("")
	if err != nil {
		return err
	}
	cat := catalog.New(term.repo)
	job, ok := cat.FindJobByID(args[0])
	if !ok || (!sess.IsAdmin() && !job.IsActive()) {
		return fmt.Errorf("%w: %s", catalog.ErrNotFound, args[0])
	}

	p := observability.NewPrinter(cmd.OutOrStdout())
	p.PrintJob(&job)
	p.PrintForm(fields.Describe(job.ApplicationForm.Fields))
	return nil
}
