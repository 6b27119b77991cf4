package artworks

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/mvanetti/atelier/pkg/storage/sqlite"
)

// newRepository opens a fresh database in a temporary directory and clears the
// seeded samples, so each test starts from an empty catalog.
func newRepository(t *testing.T) (ArtworkRepository, *sqlite.Storage) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	storage, err := sqlite.New(logger, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("initialising storage: %v", err)
	}
	t.Cleanup(storage.Close)

	if _, err = storage.Connection.Exec("DELETE FROM paintings"); err != nil {
		t.Fatalf("clearing seeded paintings: %v", err)
	}

	return NewRepository(storage.Connection), storage
}

func TestAddAssignsIdentifiersAndDefaults(t *testing.T) {
	repository, _ := newRepository(t)

	first, err := repository.Add(ArtworkData{Title: "Test Piece", Category: "paintings", Price: 100.00})
	if err != nil {
		t.Fatalf("adding artwork: %v", err)
	}
	second, err := repository.Add(ArtworkData{Title: "Another Piece"})
	if err != nil {
		t.Fatalf("adding artwork: %v", err)
	}

	if first.Id <= 0 {
		t.Errorf("assigned id = %d, wanted a positive integer", first.Id)
	}
	if first.Id == second.Id {
		t.Errorf("both artworks received id %d", first.Id)
	}
	if first.Created.IsZero() || first.Updated.IsZero() {
		t.Error("timestamps weren't stamped on insert")
	}

	// omitted fields receive their defaults
	if second.Category != "paintings" {
		t.Errorf("default category = %q, wanted %q", second.Category, "paintings")
	}
	if second.Availability != "available" {
		t.Errorf("default availability = %q, wanted %q", second.Availability, "available")
	}
	if second.Featured {
		t.Error("featured should default to false")
	}

	// the record is retrievable right after the insert
	fetched, err := repository.GetById(first.Id)
	if err != nil {
		t.Fatalf("fetching artwork: %v", err)
	}
	if fetched.Title != "Test Piece" || fetched.Category != "paintings" || fetched.Price != 100.00 {
		t.Errorf("fetched %+v, fields don't match the insert", fetched)
	}
}

func TestCategoryFiltering(t *testing.T) {
	repository, _ := newRepository(t)

	for index, category := range []string{"paintings", "paintings", "digital", "sculptures"} {
		if _, err := repository.Add(ArtworkData{Title: fmt.Sprintf("Piece %d", index), Category: category}); err != nil {
			t.Fatalf("adding artwork: %v", err)
		}
	}

	all, err := repository.GetByCategory(CategoryAll)
	if err != nil {
		t.Fatalf("fetching all: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("the %q sentinel returned %d artworks, wanted 4", CategoryAll, len(all))
	}

	digital, err := repository.GetByCategory("digital")
	if err != nil {
		t.Fatalf("fetching digital: %v", err)
	}
	if len(digital) != 1 || digital[0].Category != "digital" {
		t.Errorf("digital filter returned %+v, wanted exactly one digital artwork", digital)
	}

	// matches are case sensitive and exact
	capitalised, err := repository.GetByCategory("Digital")
	if err != nil {
		t.Fatalf("fetching capitalised category: %v", err)
	}
	if len(capitalised) != 0 {
		t.Errorf("case sensitive filter returned %d artworks, wanted none", len(capitalised))
	}
}

func TestFeaturedLimitAndOrder(t *testing.T) {
	repository, storage := newRepository(t)

	// backdated inserts give each artwork a distinct, known creation time
	for day := 1; day <= 6; day++ {
		var stamp = fmt.Sprintf("2024-03-0%dT10:00:00Z", day)
		if _, err := storage.Connection.Exec(`
			INSERT INTO paintings (title, category, featured, created_at, updated_at)
			VALUES (?, 'paintings', 1, ?, ?)`,
			fmt.Sprintf("Day %d", day), stamp, stamp); err != nil {
			t.Fatalf("inserting backdated artwork: %v", err)
		}
	}

	featured, err := repository.GetFeatured()
	if err != nil {
		t.Fatalf("fetching featured: %v", err)
	}
	if len(featured) != 4 {
		t.Fatalf("featured list holds %d artworks, wanted 4", len(featured))
	}
	for index, title := range []string{"Day 6", "Day 5", "Day 4", "Day 3"} {
		if featured[index].Title != title {
			t.Errorf("featured[%d] = %q, wanted %q", index, featured[index].Title, title)
		}
	}
}

func TestUpdateReplacesRowAndStampsTime(t *testing.T) {
	repository, _ := newRepository(t)

	added, err := repository.Add(ArtworkData{Title: "Test Piece", Category: "paintings", Price: 100.00})
	if err != nil {
		t.Fatalf("adding artwork: %v", err)
	}

	// timestamps carry second precision; cross the boundary to observe the new stamp
	time.Sleep(1100 * time.Millisecond)

	if err = repository.Update(added.Id, ArtworkData{Title: "Test Piece", Category: "digital", Price: 100.00}); err != nil {
		t.Fatalf("updating artwork: %v", err)
	}

	updated, err := repository.GetById(added.Id)
	if err != nil {
		t.Fatalf("fetching artwork: %v", err)
	}
	if updated.Category != "digital" {
		t.Errorf("category = %q after update, wanted %q", updated.Category, "digital")
	}
	if !updated.Updated.After(updated.Created) {
		t.Error("updated timestamp should be strictly later than the creation one")
	}
	if updated.Created.IsZero() {
		t.Error("creation timestamp was lost by the update")
	}
}

func TestUpdateMissingArtwork(t *testing.T) {
	repository, _ := newRepository(t)

	if err := repository.Update(12345, ArtworkData{Title: "Ghost"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("updating a missing id yielded %v, wanted ErrNotFound", err)
	}
}

func TestDeleteReportsOutcome(t *testing.T) {
	repository, _ := newRepository(t)

	added, err := repository.Add(ArtworkData{Title: "Short Lived"})
	if err != nil {
		t.Fatalf("adding artwork: %v", err)
	}

	deleted, err := repository.Delete(added.Id)
	if err != nil {
		t.Fatalf("deleting artwork: %v", err)
	}
	if !deleted {
		t.Error("deleting an existing artwork reported no deletion")
	}
	if _, err = repository.GetById(added.Id); !errors.Is(err, ErrNotFound) {
		t.Errorf("fetching a deleted artwork yielded %v, wanted ErrNotFound", err)
	}

	// missing identifiers aren't errors, just a negative report
	deleted, err = repository.Delete(added.Id)
	if err != nil {
		t.Fatalf("repeating deletion: %v", err)
	}
	if deleted {
		t.Error("deleting a missing artwork reported a deletion")
	}
}

func TestDeleteSurfacesStorageErrors(t *testing.T) {
	repository, storage := newRepository(t)
	storage.Close()

	if _, err := repository.Delete(1); err == nil {
		t.Error("deleting over a closed connection reported no error")
	}
}
