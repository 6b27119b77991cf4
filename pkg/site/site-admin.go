package site

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/mvanetti/atelier/pkg/artworks"
	"github.com/mvanetti/atelier/pkg/auth"
	JSON "github.com/mvanetti/atelier/pkg/json-utilities"
	"github.com/mvanetti/atelier/pkg/rest"
	"github.com/mvanetti/atelier/pkg/storage/images"
)

// imageField is the fixed multipart field carrying an uploaded image, while the
// image_url form value supplies an external or previously stored location.
const imageField = "image"

// multipartMemory bounds the in-memory portion of multipart parsing; larger
// uploads spill to temporary files and are still size capped by the images store.
const multipartMemory = 8 << 20

// AdminConfig provides the admin area's dependencies.
type AdminConfig struct {
	Renderer *Renderer
	Artworks artworks.ArtworkRepository
	Users    auth.UserRepository
	Sessions *auth.SessionManager
	Images   *images.Store
}

type adminHandler struct {
	AdminConfig
}

// RegisterAdminHandlers wires the login pair and the guarded catalog management routes.
func RegisterAdminHandlers(engine *rest.Engine, cfg AdminConfig) {
	var h = &adminHandler{cfg}
	var guard = auth.Require(cfg.Sessions)

	engine.Get("/admin/login", h.loginForm)
	engine.Post("/admin/login", h.login)

	engine.Get("/admin/logout", h.logout, guard)
	engine.Get("/admin/dashboard", h.dashboard, guard)
	engine.Get("/admin/paintings/create", h.createForm, guard)
	engine.Post("/admin/paintings/create", h.create, guard)
	engine.Get("/admin/paintings/edit/:id", h.editForm, guard)
	engine.Post("/admin/paintings/edit/:id", h.edit, guard)
	engine.Delete("/admin/paintings/:id", h.delete, guard)
}

func (h *adminHandler) loginForm(writer http.ResponseWriter, request *http.Request) {
	if h.Sessions.IsAuthenticated(request) {
		http.Redirect(writer, request, "/admin/dashboard", http.StatusSeeOther)
		return
	}
	h.Renderer.Render(writer, http.StatusOK, "admin-login.html", map[string]interface{}{"Title": "Admin Login"})
}

// login validates the submitted credentials against the users table; failures
// re-render the form with an inline error, indistinguishable between unknown
// usernames and wrong passwords.
func (h *adminHandler) login(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		h.renderLoginError(writer, "Invalid form submission")
		return
	}

	var credentials = auth.Credentials{
		Username: request.FormValue("username"),
		Password: request.FormValue("password"),
	}
	if err := credentials.Validate(); err != nil {
		h.renderLoginError(writer, "Username and password are required")
		return
	}

	user, err := h.Users.Authenticate(credentials.Username, credentials.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			rest.Logger(request).WithError(err).Error("error while authenticating")
		}
		h.renderLoginError(writer, "Invalid username or password")
		return
	}

	if err = h.Sessions.SetAuthenticated(writer, request, user.Username); err != nil {
		rest.Logger(request).WithError(err).Error("error while saving session")
		h.renderLoginError(writer, "Couldn't create a session")
		return
	}

	http.Redirect(writer, request, "/admin/dashboard", http.StatusSeeOther)
}

func (h *adminHandler) renderLoginError(writer http.ResponseWriter, message string) {
	h.Renderer.Render(writer, http.StatusUnauthorized, "admin-login.html", map[string]interface{}{
		"Title": "Admin Login",
		"Error": message,
	})
}

func (h *adminHandler) logout(writer http.ResponseWriter, request *http.Request) {
	if err := h.Sessions.Clear(writer, request); err != nil {
		rest.Logger(request).WithError(err).Warning("error while clearing session")
	}
	http.Redirect(writer, request, "/admin/login", http.StatusSeeOther)
}

func (h *adminHandler) dashboard(writer http.ResponseWriter, request *http.Request) {
	catalog, err := h.Artworks.GetAll()
	if err != nil {
		// the admin area favours correctness; no degraded rendering here
		rest.Logger(request).WithError(err).Error("error while fetching catalog")
		h.Renderer.Render(writer, http.StatusInternalServerError, "server-error.html", map[string]interface{}{"Title": "Something Went Wrong"})
		return
	}

	h.Renderer.Render(writer, http.StatusOK, "admin-dashboard.html", map[string]interface{}{
		"Title":    "Dashboard",
		"Artworks": catalog,
		"Username": h.Sessions.Username(request),
	})
}

func (h *adminHandler) createForm(writer http.ResponseWriter, _ *http.Request) {
	h.Renderer.Render(writer, http.StatusOK, "admin-form.html", map[string]interface{}{
		"Title":   "New Artwork",
		"Action":  "/admin/paintings/create",
		"Artwork": artworks.Artwork{Category: "paintings", Availability: "available"},
	})
}

func (h *adminHandler) create(writer http.ResponseWriter, request *http.Request) {
	data, message := h.parseSubmission(request)
	if message != "" {
		h.renderFormError(writer, "New Artwork", "/admin/paintings/create", data, message)
		return
	}

	if _, err := h.Artworks.Add(data); err != nil {
		rest.Logger(request).WithError(err).Error("error while adding artwork")
		h.renderFormError(writer, "New Artwork", "/admin/paintings/create", data, "Couldn't save the artwork")
		return
	}

	http.Redirect(writer, request, "/admin/dashboard", http.StatusSeeOther)
}

func (h *adminHandler) editForm(writer http.ResponseWriter, request *http.Request) {
	id, err := parseId(request)
	if err != nil {
		h.notFoundPage(writer)
		return
	}

	artwork, err := h.Artworks.GetById(id)
	switch {
	case err == nil:
		h.Renderer.Render(writer, http.StatusOK, "admin-form.html", map[string]interface{}{
			"Title":   "Edit Artwork",
			"Action":  "/admin/paintings/edit/" + strconv.FormatInt(id, 10),
			"Artwork": artwork,
		})
	case errors.Is(err, artworks.ErrNotFound):
		h.notFoundPage(writer)
	default:
		rest.Logger(request).WithError(err).Error("error while fetching artwork")
		h.Renderer.Render(writer, http.StatusInternalServerError, "server-error.html", map[string]interface{}{"Title": "Something Went Wrong"})
	}
}

// edit performs a full row replacement; when no new image is uploaded the
// submitted image_url field, pre-filled with the current location, is kept.
func (h *adminHandler) edit(writer http.ResponseWriter, request *http.Request) {
	id, err := parseId(request)
	if err != nil {
		h.notFoundPage(writer)
		return
	}
	var action = "/admin/paintings/edit/" + strconv.FormatInt(id, 10)

	data, message := h.parseSubmission(request)
	if message != "" {
		h.renderFormError(writer, "Edit Artwork", action, data, message)
		return
	}

	switch err = h.Artworks.Update(id, data); {
	case err == nil:
		http.Redirect(writer, request, "/admin/dashboard", http.StatusSeeOther)
	case errors.Is(err, artworks.ErrNotFound):
		h.notFoundPage(writer)
	default:
		rest.Logger(request).WithError(err).Error("error while updating artwork")
		h.renderFormError(writer, "Edit Artwork", action, data, "Couldn't save the artwork")
	}
}

func (h *adminHandler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := parseId(request)
	if err != nil {
		JSON.BadRequest(writer)
		return
	}

	deleted, err := h.Artworks.Delete(id)
	if err != nil {
		rest.Logger(request).WithError(err).Error("error while deleting artwork")
		JSON.InternalServerError(writer, err)
		return
	}
	if deleted {
		JSON.Ok(writer, struct{ Success bool }{true})
	} else {
		JSON.NotFound(writer, "artwork not found")
	}
}

// parseSubmission extracts and validates artwork data from a create or edit form,
// storing an uploaded image when one was attached. A non empty message describes
// the failure in end user terms.
func (h *adminHandler) parseSubmission(request *http.Request) (data artworks.ArtworkData, message string) {

	if err := request.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return data, "Invalid form submission"
	}

	data, err := artworks.ParseForm(request)
	if err != nil {
		return data, "Year and price must be numeric"
	}
	if err = data.Validate(); err != nil {
		return data, err.Error()
	}

	// fall back to the caller supplied URL, preserving the prior image on edits
	data.ImageURL = request.FormValue("image_url")

	file, header, err := request.FormFile(imageField)
	switch {
	case err == nil:
		defer func() { _ = file.Close() }()
		url, err := h.Images.Save(file, header)
		if err != nil {
			if errors.Is(err, images.ErrTooLarge) || errors.Is(err, images.ErrUnsupportedType) {
				return data, err.Error()
			}
			rest.Logger(request).WithError(err).Error("error while storing image")
			return data, "Couldn't store the uploaded image"
		}
		data.ImageURL = url
	case errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart):
		// no upload; keep the URL field as is
	default:
		return data, "Invalid image upload"
	}

	return data, ""
}

func (h *adminHandler) renderFormError(writer http.ResponseWriter, title, action string, data artworks.ArtworkData, message string) {
	h.Renderer.Render(writer, http.StatusBadRequest, "admin-form.html", map[string]interface{}{
		"Title":  title,
		"Action": action,
		"Error":  message,
		"Artwork": artworks.Artwork{
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
		},
	})
}

func (h *adminHandler) notFoundPage(writer http.ResponseWriter) {
	h.Renderer.Render(writer, http.StatusNotFound, "not-found.html", map[string]interface{}{"Title": "Page Not Found"})
}

func parseId(request *http.Request) (int64, error) {
	return strconv.ParseInt(httprouter.ParamsFromContext(request.Context()).ByName("id"), 10, 64)
}
