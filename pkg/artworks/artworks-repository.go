package artworks

import (
	"database/sql"
	"errors"

	"github.com/mvanetti/atelier/pkg/ntime"
)

// ArtworkRepository exposes typed catalog operations; each one maps to a single SQL
// statement, so no cross statement transactions are ever required.
type ArtworkRepository interface {
	GetAll() ([]Artwork, error)
	GetByCategory(category string) ([]Artwork, error)
	GetById(id int64) (Artwork, error)
	GetFeatured() ([]Artwork, error)
	Add(data ArtworkData) (Artwork, error)
	Update(id int64, data ArtworkData) error
	Delete(id int64) (bool, error)
}

// ErrNotFound signals the absence of an artwork, as opposed to a lookup failure.
var ErrNotFound = errors.New("artwork not found")

type artworkRepository struct {
	Connection *sql.DB
}

func NewRepository(connection *sql.DB) ArtworkRepository {
	return &artworkRepository{connection}
}

// artworkColumns guards against NULLs left over by out of band inserts; the
// application itself always binds concrete values.
const artworkColumns = `
	id, title,
	COALESCE(description, ''),
	COALESCE(medium, ''),
	COALESCE(year, 0),
	COALESCE(category, 'paintings'),
	COALESCE(price, 0),
	COALESCE(image_url, ''),
	COALESCE(dimensions, ''),
	COALESCE(availability, 'available'),
	COALESCE(featured, 0),
	created_at, updated_at`

func scanArtwork(rows *sql.Rows) (artwork Artwork, err error) {
	err = rows.Scan(
		&artwork.Id,
		&artwork.Title,
		&artwork.Description,
		&artwork.Medium,
		&artwork.Year,
		&artwork.Category,
		&artwork.Price,
		&artwork.ImageURL,
		&artwork.Dimensions,
		&artwork.Availability,
		&artwork.Featured,
		&artwork.Created,
		&artwork.Updated,
	)
	return artwork, err
}

func (ar *artworkRepository) collectArtworks(query string, args ...any) ([]Artwork, error) {

	// initialise an empty slice to avoid null JSON serialisation
	var artworks = make([]Artwork, 0)

	rows, err := ar.Connection.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		artwork, err := scanArtwork(rows)
		if err != nil {
			return artworks, err
		}
		artworks = append(artworks, artwork)
	}

	return artworks, rows.Err()
}

func (ar *artworkRepository) GetAll() ([]Artwork, error) {
	return ar.collectArtworks(`SELECT ` + artworkColumns + ` FROM paintings ORDER BY created_at DESC`)
}

// GetByCategory filters artworks by an exact, case sensitive category match;
// the "all" sentinel returns the unfiltered catalog.
func (ar *artworkRepository) GetByCategory(category string) ([]Artwork, error) {
	if category == CategoryAll {
		return ar.GetAll()
	}
	return ar.collectArtworks(
		`SELECT `+artworkColumns+` FROM paintings WHERE category = ? ORDER BY created_at DESC`,
		category)
}

// GetFeatured returns the four most recently created featured artworks at most.
func (ar *artworkRepository) GetFeatured() ([]Artwork, error) {
	return ar.collectArtworks(`SELECT ` + artworkColumns + ` FROM paintings WHERE featured = 1 ORDER BY created_at DESC LIMIT 4`)
}

func (ar *artworkRepository) GetById(id int64) (artwork Artwork, err error) {
	rows, err := ar.Connection.Query(`SELECT `+artworkColumns+` FROM paintings WHERE id = ?`, id)
	if err != nil {
		return artwork, err
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return artwork, err
		}
		return artwork, ErrNotFound
	}
	return scanArtwork(rows)
}

// Add inserts a new artwork and returns it along with its assigned identifier and
// stamped timestamps. Blank category and availability receive their defaults.
func (ar *artworkRepository) Add(data ArtworkData) (Artwork, error) {

	var now = ntime.Now()
	if data.Category == "" {
		data.Category = "paintings"
	}
	if data.Availability == "" {
		data.Availability = "available"
	}

	result, err := ar.Connection.Exec(`
		INSERT INTO paintings (title, description, medium, year, category, price, image_url, dimensions, availability, featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.Title, data.Description, data.Medium, data.Year, data.Category, data.Price,
		data.ImageURL, data.Dimensions, data.Availability, data.Featured, now, now)
	if err != nil {
		return Artwork{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return Artwork{}, err
	}

	return Artwork{
		Id:           id,
		Title:        data.Title,
		Description:  data.Description,
		Medium:       data.Medium,
		Year:         data.Year,
		Category:     data.Category,
		Price:        data.Price,
		ImageURL:     data.ImageURL,
		Dimensions:   data.Dimensions,
		Availability: data.Availability,
		Featured:     data.Featured,
		Created:      now,
		Updated:      now,
	}, nil
}

// Update replaces every mutable field of the identified artwork and stamps the
// update time; the creation time never changes. Updating a missing identifier
// yields ErrNotFound rather than silently succeeding.
func (ar *artworkRepository) Update(id int64, data ArtworkData) error {

	result, err := ar.Connection.Exec(`
		UPDATE paintings
		SET title = ?, description = ?, medium = ?, year = ?, category = ?,
			price = ?, image_url = ?, dimensions = ?, availability = ?, featured = ?,
			updated_at = ?
		WHERE id = ?`,
		data.Title, data.Description, data.Medium, data.Year, data.Category, data.Price,
		data.ImageURL, data.Dimensions, data.Availability, data.Featured, ntime.Now(), id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an artwork and reports whether a row was actually deleted;
// missing identifiers aren't errors, storage failures are.
func (ar *artworkRepository) Delete(id int64) (bool, error) {
	result, err := ar.Connection.Exec(`DELETE FROM paintings WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
