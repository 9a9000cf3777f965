package testutil

import (
	"database/sql"
	"testing"

	"github.com/capacinator/capacinator/internal/cache"
)

// NewTestDB creates an in-memory cache database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := cache.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}
