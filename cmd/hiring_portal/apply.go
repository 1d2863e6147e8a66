package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/hiring-portal/internal/capture"
	"github.com/jonathan/hiring-portal/internal/catalog"
	"github.com/jonathan/hiring-portal/internal/fields"
	"github.com/jonathan/hiring-portal/internal/form"
	"github.com/jonathan/hiring-portal/internal/observability"
	"github.com/jonathan/hiring-portal/internal/types"
	"github.com/spf13/cobra"
)

var (
	applyJob    string
	applyFields []string
	applyPhoto  string
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Submit an application to an active job",
	Long: `Submit an application to an active job.

Field values are given as key=value pairs. The photo field is read from an
image file, standing in for a camera capture.`,
	Example: `  hiring_portal apply --job job_20251001_0001 \
    --field full_name="Budi Santoso" --field email=budi@example.com \
    --field phone=08123456789 --photo ./me.jpg`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVar(&applyJob, "job", "", "Job ID")
	applyCmd.Flags().StringArrayVar(&applyFields, "field", nil, "Field value as key=value (repeatable)")
	applyCmd.Flags().StringVar(&applyPhoto, "photo", "", "Image file used as the photo field")

	if err := applyCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}
	rootCmd.AddCommand(applyCmd)
}

// activeOnly hides jobs applicants may not apply to.
type activeOnly struct {
	*catalog.Catalog
}

func (a activeOnly) FindJobByID(id string) (types.Job, bool) {
	job, ok := a.Catalog.FindJobByID(id)
	if !ok || !job.IsActive() {
		return types.Job{}, false
	}
	return job, true
}

func runApply(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	term, err := openTerminal(ctx)
	if err != nil {
		return err
	}
	defer term.close()

	sess, err := term.sessions.Require("")
	if err != nil {
		return err
	}

	archive, closeArchive, err := openArchive(ctx, term.cfg)
	if err != nil {
		return err
	}
	defer closeArchive()
	cat := newCatalog(term.repo, archive)

	engine := form.New(form.Options{Latency: time.Duration(term.cfg.SubmitLatency)})
	if err := engine.Load(ctx, activeOnly{cat}, applyJob); err != nil {
		return err
	}

	for _, kv := range applyFields {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid field %q: expected key=value", kv)
		}
		if err := engine.Set(strings.TrimSpace(key), value); err != nil {
			return err
		}
	}
	if applyPhoto != "" {
		frame, err := capture.Snapshot(ctx, capture.FileDevice{Path: applyPhoto})
		if err != nil {
			return errors.New(capture.Message(err))
		}
		if err := engine.Set(fields.KeyPhoto, frame.DataURL()); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Submitting application to %s...\n", engine.Job().Title)
	sub, err := engine.Submit(ctx)
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		_, _ = fmt.Fprintln(out, form.SummaryMessage)
		for _, f := range verr.Fields {
			_, _ = fmt.Fprintf(out, "  %s: %s\n", f.Key, f.Message)
		}
		return err
	}
	if err != nil {
		return err
	}

	if err := cat.RecordApplication(ctx, sub.Candidate); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, "Lamaran Berhasil Dikirim!")
	_, _ = fmt.Fprintf(out, "Submitted by %s\n", sess.Email)
	observability.NewPrinter(out).PrintCandidate(&sub.Candidate)
	if archive == nil {
		_, _ = fmt.Fprintln(out, "No DATABASE_URL set; the application was not archived")
	}
	return nil
}
