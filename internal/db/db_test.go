package db

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchemaIsIdempotent(t *testing.T) {
	for _, stmt := range schema {
		assert.Contains(t, stmt, "IF NOT EXISTS", "every schema statement must be safe to re-run")
	}
}

func TestApplicationCandidate(t *testing.T) {
	app := Application{
		ID:          "cand_1",
		JobID:       "job_1",
		Fields:      map[string]any{"full_name": "Asep", "photo": nil},
		AppliedDate: time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
	}

	c := app.Candidate()
	assert.Equal(t, "2025-10-16", c.AppliedDate)
	assert.Equal(t, "job_1", c.JobID)
	assert.Nil(t, c.Fields["photo"])
}

func TestConnect_InvalidURL(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := Connect(ctx, "not a url://")
	if assert.Error(t, err) {
		assert.True(t, strings.HasPrefix(err.Error(), "failed to"))
	}
}
