package site

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/mvanetti/atelier/pkg/artworks"
	JSON "github.com/mvanetti/atelier/pkg/json-utilities"
	"github.com/mvanetti/atelier/pkg/rest"
)

// Config provides the public site's dependencies.
type Config struct {
	Renderer *Renderer
	Logger   logrus.FieldLogger
	Artworks artworks.ArtworkRepository
	Services []Service

	// DegradeOnError trades correctness for availability: when set, catalog
	// failures render pages with empty listings instead of the error page,
	// while the underlying error is still logged for operators.
	DegradeOnError bool
}

type siteHandler struct {
	Config
}

// RegisterHandlers wires the public pages, the contact API and the fallback
// handlers for unmatched routes and panicking handlers.
func RegisterHandlers(engine *rest.Engine, cfg Config) {
	var h = &siteHandler{cfg}

	engine.Get("/", h.home)
	engine.Get("/portfolio", h.portfolio)
	engine.Get("/artwork/:id", h.artwork)
	engine.Get("/about", h.about)
	engine.Get("/services", h.services)
	engine.Get("/contact", h.contact)

	engine.Post("/api/contact", h.contactSubmission)

	engine.NotFound(h.notFound)
	engine.Recover(h.recovered)
}

// home shows the featured artworks alongside the leading services.
func (h *siteHandler) home(writer http.ResponseWriter, request *http.Request) {
	featured, err := h.Artworks.GetFeatured()
	if err != nil {
		if !h.degrade(writer, request, err) {
			return
		}
		featured = nil
	}

	var topServices = h.Services
	if len(topServices) > 3 {
		topServices = topServices[:3]
	}

	h.Renderer.Render(writer, http.StatusOK, "home.html", map[string]interface{}{
		"Title":    "Home",
		"Artworks": featured,
		"Services": topServices,
	})
}

func (h *siteHandler) portfolio(writer http.ResponseWriter, request *http.Request) {
	var category = request.URL.Query().Get("category")
	if category == "" {
		category = artworks.CategoryAll
	}

	catalog, err := h.Artworks.GetByCategory(category)
	if err != nil {
		if !h.degrade(writer, request, err) {
			return
		}
		catalog = nil
	}

	h.Renderer.Render(writer, http.StatusOK, "portfolio.html", map[string]interface{}{
		"Title":           "Portfolio",
		"Artworks":        catalog,
		"CurrentCategory": category,
	})
}

func (h *siteHandler) artwork(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.ParseInt(httprouter.ParamsFromContext(request.Context()).ByName("id"), 10, 64)
	if err != nil {
		h.notFound(writer, request)
		return
	}

	artwork, err := h.Artworks.GetById(id)
	switch {
	case err == nil:
		h.Renderer.Render(writer, http.StatusOK, "artwork.html", map[string]interface{}{
			"Title":   artwork.Title,
			"Artwork": artwork,
		})
	case errors.Is(err, artworks.ErrNotFound):
		h.notFound(writer, request)
	default:
		rest.Logger(request).WithError(err).Error("error while fetching artwork")
		h.serverError(writer)
	}
}

func (h *siteHandler) about(writer http.ResponseWriter, _ *http.Request) {
	h.Renderer.Render(writer, http.StatusOK, "about.html", map[string]interface{}{"Title": "About"})
}

func (h *siteHandler) services(writer http.ResponseWriter, _ *http.Request) {
	h.Renderer.Render(writer, http.StatusOK, "services.html", map[string]interface{}{
		"Title":    "Services",
		"Services": h.Services,
	})
}

func (h *siteHandler) contact(writer http.ResponseWriter, _ *http.Request) {
	h.Renderer.Render(writer, http.StatusOK, "contact.html", map[string]interface{}{"Title": "Contact"})
}

// contactSubmission acknowledges a contact request; submissions are logged for the
// operator to follow up on, never persisted.
func (h *siteHandler) contactSubmission(writer http.ResponseWriter, request *http.Request) {
	data, err := parseContact(request)
	if err != nil {
		// decoder internals stay out of the response
		JSON.BadRequestWithMessage(writer, "Couldn't read the submission")
		return
	}
	if err = data.Validate(); err != nil {
		JSON.ValidationError(writer, err)
		return
	}

	rest.Logger(request).WithFields(logrus.Fields{
		"name":    data.Name,
		"email":   data.Email,
		"service": data.Service,
	}).Info("contact form submission")

	JSON.Ok(writer, struct {
		Success bool
		Message string
	}{
		Success: true,
		Message: fmt.Sprintf("Thank you, %s! Your message has been received. I'll get back to you soon.", data.Name),
	})
}

func (h *siteHandler) notFound(writer http.ResponseWriter, _ *http.Request) {
	h.Renderer.Render(writer, http.StatusNotFound, "not-found.html", map[string]interface{}{"Title": "Page Not Found"})
}

// recovered turns a panicking handler into a generic error page; the panic value
// is logged and never reaches the client.
func (h *siteHandler) recovered(writer http.ResponseWriter, request *http.Request, value interface{}) {
	h.Logger.Errorf("recovered from panic while serving %s: %v", request.URL.Path, value)
	h.serverError(writer)
}

func (h *siteHandler) serverError(writer http.ResponseWriter) {
	h.Renderer.Render(writer, http.StatusInternalServerError, "server-error.html", map[string]interface{}{"Title": "Something Went Wrong"})
}

// degrade logs a catalog error and reports whether the page should still render,
// with empty results, according to the availability over correctness setting.
func (h *siteHandler) degrade(writer http.ResponseWriter, request *http.Request, err error) bool {
	rest.Logger(request).WithError(err).Error("error while fetching catalog data")
	if h.DegradeOnError {
		return true
	}
	h.serverError(writer)
	return false
}
