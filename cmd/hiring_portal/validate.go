package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jonathan/hiring-portal/internal/fixtures"
	"github.com/jonathan/hiring-portal/internal/schemas"
	"github.com/spf13/cobra"
)

var validateDir string

var validateCmd = &cobra.Command{
	Use:   "validate-fixtures",
	Short: "Validate a fixture directory against the JSON schemas",
	Long: `Validate jobs.json, candidates.json and users.json against their JSON
schemas, then check cross references such as candidate job ids and field keys.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateDir, "dir", "", "Fixture directory")

	if err := validateCmd.MarkFlagRequired("dir"); err != nil {
		panic(fmt.Sprintf("failed to mark dir flag as required: %v", err))
	}
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	var errs []error
	for _, name := range []string{"jobs.json", "candidates.json", "users.json"} {
		path := filepath.Join(validateDir, name)
		if err := schemas.ValidateFile(path); err != nil {
			_, _ = fmt.Fprintf(out, "FAIL %s\n%v\n", name, err)
			errs = append(errs, err)
			continue
		}
		_, _ = fmt.Fprintf(out, "ok   %s\n", name)
	}
	if len(errs) > 0 {
		return fmt.Errorf("fixture validation failed: %w", errors.Join(errs...))
	}

	repo, err := fixtures.LoadDir(commandContext(cmd), validateDir)
	if err != nil {
		return fmt.Errorf("fixture validation failed: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Fixtures valid: %d jobs, %d candidates\n", len(repo.ListJobs()), len(repo.ListCandidates()))
	return nil
}
