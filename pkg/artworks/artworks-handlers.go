package artworks

import (
	"net/http"

	JSON "github.com/mvanetti/atelier/pkg/json-utilities"
	"github.com/mvanetti/atelier/pkg/rest"
)

// RegisterHandlers wires the JSON API mirroring the public catalog views.
func RegisterHandlers(engine *rest.Engine, ar ArtworkRepository) {
	engine.Get("/api/artworks", getArtworks(ar))
}

// getArtworks lists artworks, optionally filtered by the category query parameter;
// a missing parameter behaves like the "all" sentinel.
func getArtworks(ar ArtworkRepository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		var category = request.URL.Query().Get("category")
		if category == "" {
			category = CategoryAll
		}

		artworks, err := ar.GetByCategory(category)
		if err != nil {
			rest.Logger(request).WithError(err).Error("error while fetching artworks")
			JSON.InternalServerError(writer, err)
			return
		}

		JSON.Ok(writer, artworks)
	}
}
