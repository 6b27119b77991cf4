package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mvanetti/atelier/pkg/ntime"
)

type Storage struct {
	Connection *sql.DB
	logger     logrus.FieldLogger
}

// New opens the SQLite database at the given path, creating the file and any parent
// directories when missing, then builds the schema and seeds an empty catalog.
// Schema and seeding errors are fatal; the caller should abort startup.
func New(logger logrus.FieldLogger, path string) (*Storage, error) {

	logger.Println("initialising SQLite DB")

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	// mind the explicit need for foreign keys constraints
	connection, err := sql.Open("sqlite3", getConnectionString(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// opening the DB will fail silently when the package is compiled without CGO_ENABLED
	if err = connection.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// tables are created with IF NOT EXISTS clauses, making repeated runs harmless
	if _, err = connection.Exec(schema); err != nil {
		logger.WithError(err).Error("error while building database schema")
		return nil, fmt.Errorf("building schema: %w", err)
	}

	var storage = Storage{Connection: connection, logger: logger}
	if err = storage.seed(); err != nil {
		logger.WithError(err).Error("error while seeding sample data")
		return nil, fmt.Errorf("seeding sample data: %w", err)
	}

	return &storage, nil
}

// seed populates the paintings table with sample rows, only when no row exists.
// Admin deletions are respected: a catalog that was ever touched is never re-seeded.
func (s *Storage) seed() error {

	var count int
	if err := s.Connection.QueryRow("SELECT COUNT(*) FROM paintings").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	statement, err := s.Connection.Prepare(`
		INSERT INTO paintings (title, description, medium, year, category, price, image_url, dimensions, availability, featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = statement.Close() }()

	// timestamps are bound explicitly, keeping the column in the single format
	// application inserts use; distinct ascending stamps make the ordering stable
	var base = time.Now().UTC().Add(-time.Duration(len(samplePaintings)) * time.Second)
	for index, painting := range samplePaintings {
		var stamp = ntime.FromTime(base.Add(time.Duration(index) * time.Second))
		if _, err = statement.Exec(
			painting.title,
			painting.description,
			painting.medium,
			painting.year,
			painting.category,
			painting.price,
			painting.imageURL,
			painting.dimensions,
			painting.availability,
			painting.featured,
			stamp,
			stamp,
		); err != nil {
			return err
		}
	}

	s.logger.Printf("seeded %d sample paintings", len(samplePaintings))
	return nil
}

func (s *Storage) Close() {
	s.logger.Debug("database stopping")
	if err := s.Connection.Close(); err != nil {
		s.logger.WithError(err).Warning("error while closing database connection")
	}
}

// getConnectionString provides a configuration string that enables foreign keys constraints.
func getConnectionString(path string) string {
	return path + "?_fk=on"
}
