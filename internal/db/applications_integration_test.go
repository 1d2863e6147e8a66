//go:build integration

package db

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/hiring-portal/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	require.NoError(t, db.EnsureSchema(ctx))
	_, _ = db.pool.Exec(ctx, "DELETE FROM applications WHERE job_id LIKE 'job_test_%'")
	return db
}

func TestIntegration_Applications(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	jobID := "job_test_" + uuid.NewString()
	first := types.Candidate{
		ID:          uuid.NewString(),
		JobID:       jobID,
		Fields:      map[string]any{"full_name": "Asep", "photo": nil},
		AppliedDate: "2025-10-16",
	}
	second := types.Candidate{
		ID:          uuid.NewString(),
		JobID:       jobID,
		Fields:      map[string]any{"full_name": "Budi"},
		AppliedDate: "2025-10-17",
	}
	require.NoError(t, db.SaveApplication(ctx, first))
	require.NoError(t, db.SaveApplication(ctx, second))

	// duplicate ids keep the first submission
	dup := first
	dup.Fields = map[string]any{"full_name": "Changed"}
	require.NoError(t, db.SaveApplication(ctx, dup))

	got, err := db.GetApplication(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first, got.Candidate())

	apps, err := db.ListApplicationsByJob(ctx, jobID)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, first.ID, apps[0].ID)

	counts, err := db.CountApplicationsByJob(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[jobID])

	missing, err := db.GetApplication(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIntegration_SaveApplication_BadDate(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()

	err := db.SaveApplication(context.Background(), types.Candidate{ID: "x", JobID: "job_test_x", AppliedDate: "yesterday"})
	assert.Error(t, err)
}
