package artworks

import (
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mvanetti/atelier/pkg/ntime"
)

// CategoryAll is the sentinel filter value matching every category.
const CategoryAll = "all"

// Artwork is a single catalog entry; identifiers are assigned by the database and immutable.
type Artwork struct {
	Id           int64
	Title        string
	Description  string
	Medium       string
	Year         int
	Category     string
	Price        float64
	ImageURL     string
	Dimensions   string
	Availability string
	Featured     bool
	Created      ntime.NTime
	Updated      ntime.NTime
}

// ArtworkData carries the mutable fields of an artwork, for both inserts and
// full row replacements. Categories form an open set of tags, so membership
// isn't validated; blank ones default to "paintings" on insert.
type ArtworkData struct {
	Title        string
	Description  string
	Medium       string
	Year         int
	Category     string
	Price        float64
	ImageURL     string
	Dimensions   string
	Availability string
	Featured     bool
}

func (data ArtworkData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&data.Year, validation.Min(0), validation.Max(3000)),
		validation.Field(&data.Price, validation.Min(0.0)),
		validation.Field(&data.Category, validation.Length(0, 50)),
	)
}

// ParseForm extracts artwork data from an admin form submission; numeric fields
// tolerate blanks but reject garbage. The image URL field is deliberately ignored
// here, as upload handling decides its final value.
func ParseForm(request *http.Request) (data ArtworkData, err error) {
	data.Title = request.FormValue("title")
	data.Description = request.FormValue("description")
	data.Medium = request.FormValue("medium")
	data.Category = request.FormValue("category")
	data.Dimensions = request.FormValue("dimensions")
	data.Availability = request.FormValue("availability")
	data.Featured = request.FormValue("featured") == "on" || request.FormValue("featured") == "true"

	if year := request.FormValue("year"); year != "" {
		if data.Year, err = strconv.Atoi(year); err != nil {
			return data, err
		}
	}
	if price := request.FormValue("price"); price != "" {
		if data.Price, err = strconv.ParseFloat(price, 64); err != nil {
			return data, err
		}
	}

	return data, nil
}
