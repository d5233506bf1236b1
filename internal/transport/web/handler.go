// Package web serves the product catalog views: the session-gated list, add,
// edit, and delete flows, plus the login page.
package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/npodsekin/gocatalog/internal/auth"
	"github.com/npodsekin/gocatalog/internal/catalog"
	caterrors "github.com/npodsekin/gocatalog/internal/errors"
	pkgweb "github.com/npodsekin/gocatalog/pkg/web"
)

const loginPath = "/login"

type Handler struct {
	service  catalog.ProductService
	gate     *auth.Gate
	validate *validator.Validate
	renderer *renderer
	logger   *slog.Logger
}

// NewHandler creates the web handler for the catalog views.
func NewHandler(service catalog.ProductService, gate *auth.Gate, logger *slog.Logger) (*Handler, error) {
	re, err := newRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to build renderer: %w", err)
	}
	return &Handler{
		service:  service,
		gate:     gate,
		validate: validator.New(),
		renderer: re,
		logger:   logger.With("component", "web"),
	}, nil
}

// RegisterRoutes registers the view routes. Everything except the login page
// and the health check sits behind the session gate.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get(loginPath, h.Login)
	r.Get("/healthz", h.HealthCheck)

	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(loginPath))

		r.Get("/", h.List)
		r.Get("/add", h.AddForm)
		r.Post("/add", h.Add)
		r.Get("/edit/{id}", h.EditForm)
		r.Post("/edit/{id}", h.Edit)
		r.Get("/delete/{id}", h.DeleteConfirm)
		r.Post("/delete/{id}", h.Delete)
	})
}

// List renders the product list view: one unfiltered full-collection fetch,
// projected through the local filter. The search and category inputs never
// reach the store.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	flashes := popFlashes(w, r)

	products, err := h.service.FindAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		flashes = append(flashes, Flash{Level: flashError, Message: "Failed to fetch products"})
	}

	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")

	h.renderer.render(w, mLogger, http.StatusOK, "list", viewData{
		Title:          "Product List",
		Flashes:        flashes,
		Categories:     catalog.Categories(),
		Products:       catalog.Filter(products, search, category),
		Search:         search,
		CategoryFilter: category,
	})
}

// AddForm renders an empty add-product form draft.
func (h *Handler) AddForm(w http.ResponseWriter, r *http.Request) {
	h.renderAdd(w, r, popFlashes(w, r), productForm{})
}

// Add handles the add-form submission. Validation runs synchronously before
// any store call; a failed draft is re-rendered intact so the user can
// correct it.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	flashes := popFlashes(w, r)
	form := formFromRequest(r)

	price, priceOK := parsePrice(form)
	if !checkRequired(h.validate, form) || !priceOK {
		mLogger.DebugContext(r.Context(), "Add form failed validation")
		flashes = append(flashes, Flash{Level: flashError, Message: "All fields required & price must be greater than 0"})
		h.renderAdd(w, r, flashes, form)
		return
	}

	created, err := h.service.Create(r.Context(), form.draft(price))
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
		flashes = append(flashes, Flash{Level: flashError, Message: storeDetail(err, "Error adding product")})
		h.renderAdd(w, r, flashes, form)
		return
	}

	mLogger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID, "Name", created.Name)
	pushFlash(w, r, flashSuccess, "Product added successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// EditForm loads one product by the id captured from the route and populates
// the form draft verbatim. A missing product redirects to the list view
// before any form is shown.
func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id := chi.URLParam(r, "id")

	product, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, caterrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
			pushFlash(w, r, flashError, "Product not found")
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		flashes := append(popFlashes(w, r), Flash{Level: flashError, Message: "Error fetching product"})
		h.renderEdit(w, r, flashes, id, productForm{})
		return
	}

	h.renderEdit(w, r, popFlashes(w, r), id, formFromProduct(product))
}

// Edit handles the edit-form submission: a two-stage synchronous validation
// (missing fields first, then price positivity), then a full overwrite of the
// three fields for the captured id.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id := chi.URLParam(r, "id")
	flashes := popFlashes(w, r)
	form := formFromRequest(r)

	if !checkRequired(h.validate, form) {
		flashes = append(flashes, Flash{Level: flashError, Message: "All fields are required"})
		h.renderEdit(w, r, flashes, id, form)
		return
	}
	price, ok := parsePrice(form)
	if !ok {
		flashes = append(flashes, Flash{Level: flashError, Message: "Price must be greater than 0"})
		h.renderEdit(w, r, flashes, id, form)
		return
	}

	if err := h.service.Update(r.Context(), id, form.draft(price)); err != nil {
		mLogger.ErrorContext(r.Context(), "Error updating product", "ID", id, "error", err)
		flashes = append(flashes, Flash{Level: flashError, Message: "Error updating product"})
		h.renderEdit(w, r, flashes, id, form)
		return
	}

	mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", id)
	pushFlash(w, r, flashSuccess, "Product updated successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteConfirm renders the interactive confirmation prompt. It makes no
// store calls; cancelling is a plain navigation back with no side effect.
func (h *Handler) DeleteConfirm(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	h.renderer.render(w, mLogger, http.StatusOK, "confirm_delete", viewData{
		Title:   "Delete Product",
		Flashes: popFlashes(w, r),
		EditID:  chi.URLParam(r, "id"),
	})
}

// Delete performs the confirmed deletion. There is no optimistic removal:
// the list only changes after the store reports success.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		mLogger.ErrorContext(r.Context(), "Error deleting product", "ID", id, "error", err)
		pushFlash(w, r, flashError, "Error deleting product")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	mLogger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	pushFlash(w, r, flashSuccess, "Product deleted successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Login renders the unauthenticated landing page. Sign-in itself is owned by
// the external identity provider.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	h.renderer.render(w, h.loggerWithReqID(r), http.StatusOK, "login", viewData{
		Title:   "Sign In",
		Flashes: popFlashes(w, r),
	})
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	pkgweb.RespondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) renderAdd(w http.ResponseWriter, r *http.Request, flashes []Flash, form productForm) {
	h.renderer.render(w, h.loggerWithReqID(r), http.StatusOK, "add", viewData{
		Title:      "Add Product",
		Flashes:    flashes,
		Categories: catalog.Categories(),
		Form:       form,
	})
}

func (h *Handler) renderEdit(w http.ResponseWriter, r *http.Request, flashes []Flash, id string, form productForm) {
	h.renderer.render(w, h.loggerWithReqID(r), http.StatusOK, "edit", viewData{
		Title:      "Edit Product",
		Flashes:    flashes,
		Categories: catalog.Categories(),
		Form:       form,
		EditID:     id,
	})
}

// storeDetail surfaces the store's error detail when present, otherwise the
// fallback message.
func storeDetail(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
