package sqlite

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func countPaintings(t *testing.T, storage *Storage) int {
	t.Helper()
	var count int
	if err := storage.Connection.QueryRow("SELECT COUNT(*) FROM paintings").Scan(&count); err != nil {
		t.Fatalf("counting paintings: %v", err)
	}
	return count
}

func TestNewSeedsEmptyCatalog(t *testing.T) {
	storage, err := New(discardLogger(), filepath.Join(t.TempDir(), "artist.db"))
	if err != nil {
		t.Fatalf("initialising storage: %v", err)
	}
	defer storage.Close()

	if count := countPaintings(t, storage); count != len(samplePaintings) {
		t.Errorf("seeded %d paintings, wanted %d", count, len(samplePaintings))
	}
}

func TestSeedingIsIdempotent(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "artist.db")

	first, err := New(discardLogger(), path)
	if err != nil {
		t.Fatalf("initialising storage: %v", err)
	}
	first.Close()

	second, err := New(discardLogger(), path)
	if err != nil {
		t.Fatalf("re-initialising storage: %v", err)
	}
	defer second.Close()

	if count := countPaintings(t, second); count != len(samplePaintings) {
		t.Errorf("found %d paintings after a second initialisation, wanted %d", count, len(samplePaintings))
	}
}

func TestNoReseedingAfterDeletions(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "artist.db")

	first, err := New(discardLogger(), path)
	if err != nil {
		t.Fatalf("initialising storage: %v", err)
	}
	if _, err = first.Connection.Exec("DELETE FROM paintings WHERE id = 1"); err != nil {
		t.Fatalf("deleting painting: %v", err)
	}
	first.Close()

	second, err := New(discardLogger(), path)
	if err != nil {
		t.Fatalf("re-initialising storage: %v", err)
	}
	defer second.Close()

	// a catalog touched by the admin must never receive sample rows again
	if count := countPaintings(t, second); count != len(samplePaintings)-1 {
		t.Errorf("found %d paintings, wanted %d", count, len(samplePaintings)-1)
	}
}

// TestSeedTimestampsMatchApplicationFormat inspects the stored text: sample rows
// must carry the same RFC3339 strings application inserts write, so date ordering
// never compares two different formats.
func TestSeedTimestampsMatchApplicationFormat(t *testing.T) {
	storage, err := New(discardLogger(), filepath.Join(t.TempDir(), "artist.db"))
	if err != nil {
		t.Fatalf("initialising storage: %v", err)
	}
	defer storage.Close()

	rows, err := storage.Connection.Query("SELECT CAST(created_at AS TEXT), CAST(updated_at AS TEXT) FROM paintings")
	if err != nil {
		t.Fatalf("querying timestamps: %v", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var created, updated string
		if err = rows.Scan(&created, &updated); err != nil {
			t.Fatalf("scanning timestamps: %v", err)
		}
		for _, stamp := range []string{created, updated} {
			if !strings.Contains(stamp, "T") || !strings.HasSuffix(stamp, "Z") {
				t.Errorf("timestamp stored as %q, wanted an RFC3339 string", stamp)
			}
		}
	}
	if err = rows.Err(); err != nil {
		t.Fatalf("iterating timestamps: %v", err)
	}
}

func TestUsersTableExists(t *testing.T) {
	storage, err := New(discardLogger(), filepath.Join(t.TempDir(), "artist.db"))
	if err != nil {
		t.Fatalf("initialising storage: %v", err)
	}
	defer storage.Close()

	if _, err = storage.Connection.Exec(
		"INSERT INTO users (username, password) VALUES ('admin', 'hash')"); err != nil {
		t.Errorf("inserting user: %v", err)
	}
}
