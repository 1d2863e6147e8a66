package main

import (
	"errors"
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/jonathan/hiring-portal/internal/types"
	"github.com/spf13/cobra"
)

var archiveJob string

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect applications archived in PostgreSQL (admin only)",
	Long: `Inspect applications archived in PostgreSQL. Without --job, prints the
number of archived applications per job. Requires DATABASE_URL.`,
	RunE: runArchive,
}

func init() {
	archiveCmd.Flags().StringVar(&archiveJob, "job", "", "List the applications of this job")
	rootCmd.AddCommand(archiveCmd)
}

func runArchive(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	term, err := openTerminal(ctx)
	if err != nil {
		return err
	}
	defer term.close()

	if _, err := term.sessions.Require(types.RoleAdmin); err != nil {
		return err
	}
	if term.cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required for the archive")
	}
	database, closeArchive, err := openArchive(ctx, term.cfg)
	if err != nil {
		return err
	}
	defer closeArchive()

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if archiveJob == "" {
		counts, err := database.CountApplicationsByJob(ctx)
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(counts))
		for id := range counts {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		_, _ = fmt.Fprintln(tw, "JOB\tAPPLICATIONS")
		for _, id := range ids {
			_, _ = fmt.Fprintf(tw, "%s\t%d\n", id, counts[id])
		}
		return tw.Flush()
	}

	apps, err := database.ListApplicationsByJob(ctx, archiveJob)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tAPPLIED\tARCHIVED")
	for _, app := range apps {
		c := app.Candidate()
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			c.ID, cellText("full_name", c.Text("full_name")), cellText("email", c.Text("email")),
			c.AppliedDate, app.CreatedAt.Format(time.RFC3339))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "%d archived applications\n", len(apps))
	return nil
}
