package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prepBolt(t *testing.T) *Bolt {
	t.Helper()

	b, err := NewBolt(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, b.Close()) })

	return b
}

func TestBolt_Users(t *testing.T) {
	ctx := context.Background()
	b := prepBolt(t)

	_, err := b.GetUser(ctx, "42")
	assert.ErrorIs(t, err, ErrNotFound)

	u := User{ID: "42", Username: "gopher", Role: RoleJobseeker}
	require.NoError(t, b.PutUser(ctx, u))

	got, err := b.GetUser(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, u, got)

	u.Location = "Berlin, Germany"
	require.NoError(t, b.PutUser(ctx, u))

	users, err := b.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []User{u}, users)
}

func TestBolt_Jobs(t *testing.T) {
	ctx := context.Background()
	b := prepBolt(t)

	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return ts }

	require.NoError(t, b.PutJob(ctx, Job{ID: "old", Title: "Go developer", CreatedAt: ts.Add(-time.Hour)}))
	require.NoError(t, b.PutJob(ctx, Job{ID: "new", Title: "SRE"}))
	require.NoError(t, b.PutJob(ctx, Job{ID: "closed", Title: "QA", Status: JobClosed, CreatedAt: ts.Add(-2 * time.Hour)}))

	j, err := b.GetJob(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, Job{ID: "new", Title: "SRE", Status: JobOpen, CreatedAt: ts}, j)

	jobs, err := b.ListJobs(ctx, ListJobsRequest{})
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "new", jobs[0].ID)
	assert.Equal(t, "old", jobs[1].ID)
	assert.Equal(t, "closed", jobs[2].ID)

	jobs, err = b.ListJobs(ctx, ListJobsRequest{OnlyOpen: true})
	require.NoError(t, err)
	assert.Len(t, jobs, 2)

	_, err = b.GetJob(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBolt_Apply(t *testing.T) {
	ctx := context.Background()
	b := prepBolt(t)

	require.NoError(t, b.PutJob(ctx, Job{ID: "go", Title: "Go developer"}))
	require.NoError(t, b.PutJob(ctx, Job{ID: "qa", Title: "QA", Status: JobClosed}))

	app, err := b.Apply(ctx, "go", "42")
	require.NoError(t, err)
	assert.Equal(t, "go", app.JobID)
	assert.Equal(t, "42", app.UserID)
	assert.NotEmpty(t, app.ID)

	_, err = b.Apply(ctx, "go", "42")
	assert.ErrorIs(t, err, ErrAlreadyApplied)

	_, err = b.Apply(ctx, "qa", "42")
	assert.ErrorIs(t, err, ErrJobClosed)

	_, err = b.Apply(ctx, "unknown", "42")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = b.Apply(ctx, "go", "420")
	require.NoError(t, err)

	apps, err := b.ListApplications(ctx, "42")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, app, apps[0])
}

func TestBolt_StoredTimesMatchReturned(t *testing.T) {
	ctx := context.Background()
	b := prepBolt(t)

	loc := time.FixedZone("UTC+5", 5*60*60)
	b.now = func() time.Time { return time.Now().In(loc) }

	require.NoError(t, b.PutJob(ctx, Job{ID: "go", Title: "Go developer"}))
	j, err := b.GetJob(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, j.CreatedAt.Location())

	app, err := b.Apply(ctx, "go", "42")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, app.CreatedAt.Location())

	apps, err := b.ListApplications(ctx, "42")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, app, apps[0])
	assert.True(t, app.CreatedAt.Equal(apps[0].CreatedAt))
}

func TestJob_Card(t *testing.T) {
	j := Job{Experience: 0, Description: "short"}
	assert.Equal(t, "Fresher", j.ExperienceLabel())
	assert.Equal(t, "short...", j.Preview())

	j = Job{Experience: 3, Description: "We are looking for a backend engineer to build our job board and its pipelines."}
	assert.Equal(t, "3 Years", j.ExperienceLabel())
	assert.Equal(t, "We are looking for a backend engineer to build our job board a...", j.Preview())
}
