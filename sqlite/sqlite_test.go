package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/sqlite"
	"github.com/stretchr/testify/require"
)

// mustOpenDB opens an in-memory database for tests.
func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

// mustCreateProject inserts a project for tests that need one.
func mustCreateProject(t *testing.T, db *sqlite.DB, name string) {
	t.Helper()
	err := sqlite.NewProjectService(db).CreateProject(context.Background(), docdex.Project{
		Name:      name,
		RootURL:   "https://docs.acme.dev/",
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
}
