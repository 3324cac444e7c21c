package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/codr1/nyxxdocs/internal/db"
)

// NewTestDB opens a migrated preferences database in a temp dir. Each pair
// in prefs ("key", "value", ...) is stored before it is returned.
func NewTestDB(t *testing.T, prefs ...string) *db.DB {
	t.Helper()

	if len(prefs)%2 != 0 {
		t.Fatalf("NewTestDB: odd number of preference arguments")
	}

	database, err := db.New(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	for i := 0; i < len(prefs); i += 2 {
		arg := db.UpsertPreferenceParams{Key: prefs[i], Value: prefs[i+1]}
		if err := database.Queries.UpsertPreference(context.Background(), arg); err != nil {
			t.Fatalf("seed preference %q: %v", prefs[i], err)
		}
	}
	return database
}
