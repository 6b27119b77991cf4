package artworks

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/mvanetti/atelier/pkg/rest"
)

func newAPIServer(t *testing.T) (*httptest.Server, ArtworkRepository) {
	t.Helper()

	repository, _ := newRepository(t)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	engine, err := rest.New(rest.Config{Logger: logger})
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}
	RegisterHandlers(engine, repository)

	server := httptest.NewServer(engine.Handler())
	t.Cleanup(server.Close)
	return server, repository
}

func fetchArtworks(t *testing.T, url string) []Artwork {
	t.Helper()

	response, err := http.Get(url)
	if err != nil {
		t.Fatalf("requesting %s: %v", url, err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("GET %s returned %d, wanted 200", url, response.StatusCode)
	}

	var artworks []Artwork
	if err = json.NewDecoder(response.Body).Decode(&artworks); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return artworks
}

func TestArtworksAPIFiltering(t *testing.T) {
	server, repository := newAPIServer(t)

	for _, data := range []ArtworkData{
		{Title: "Oil Study", Category: "paintings"},
		{Title: "Pixel Field", Category: "digital"},
		{Title: "Second Oil", Category: "paintings"},
	} {
		if _, err := repository.Add(data); err != nil {
			t.Fatalf("adding artwork: %v", err)
		}
	}

	if all := fetchArtworks(t, server.URL+"/api/artworks"); len(all) != 3 {
		t.Errorf("unfiltered API returned %d artworks, wanted 3", len(all))
	}
	if all := fetchArtworks(t, server.URL+"/api/artworks?category=all"); len(all) != 3 {
		t.Errorf("the all sentinel returned %d artworks, wanted 3", len(all))
	}

	digital := fetchArtworks(t, server.URL+"/api/artworks?category=digital")
	if len(digital) != 1 || digital[0].Title != "Pixel Field" {
		t.Errorf("digital filter returned %+v", digital)
	}

	if none := fetchArtworks(t, server.URL+"/api/artworks?category=prints"); len(none) != 0 {
		t.Errorf("unknown category returned %d artworks, wanted an empty list", len(none))
	}
}
