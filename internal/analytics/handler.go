package analytics

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ferrumtrans/ferrumtrans/internal/access"
	"github.com/ferrumtrans/ferrumtrans/internal/platform/httpx"
)

var resource = access.Resource{Category: access.CategoryContent}

// categoryResource inherits the diagram's decision for every
// operation: a child never grants what its parent denies.
var categoryResource = resource.ForChild()

type Handler struct {
	logger  *slog.Logger
	service *Service
	guard   access.Middleware
}

func NewHandler(logger *slog.Logger, service *Service, guard access.Middleware) *Handler {
	return &Handler{logger: logger, service: service, guard: guard}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(resource, access.OpView))
		r.Get("/", h.ListDiagrams)
		r.Get("/{id}", h.ShowDiagram)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(resource, access.OpAdd))
		r.Post("/", h.CreateDiagram)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(resource, access.OpChange))
		r.Put("/{id}", h.UpdateDiagram)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(resource, access.OpDelete))
		r.Delete("/{id}", h.DeleteDiagram)
	})

	r.Route("/{diagramID}/categories", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(categoryResource, access.OpView))
			r.Get("/", h.ListCategories)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(categoryResource, access.OpAdd))
			r.Post("/", h.CreateCategory)
		})
	})
	r.Route("/categories/{id}", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(categoryResource, access.OpChange))
			r.Put("/", h.UpdateCategory)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(categoryResource, access.OpDelete))
			r.Delete("/", h.DeleteCategory)
		})
	})
}

func (h *Handler) ListDiagrams(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListDiagrams(r.Context(), r.URL.Query().Get("active") == "true")
	if err != nil {
		h.logger.Error("list diagrams", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"diagrams": list})
}

func (h *Handler) ShowDiagram(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid diagram id")
		return
	}
	d, err := h.service.GetDiagram(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}

func (h *Handler) CreateDiagram(w http.ResponseWriter, r *http.Request) {
	var req DiagramRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	d, err := h.service.CreateDiagram(r.Context(), req)
	if err != nil {
		h.logger.Warn("create diagram", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, d)
}

func (h *Handler) UpdateDiagram(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid diagram id")
		return
	}
	var req DiagramRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	d, err := h.service.UpdateDiagram(r.Context(), id, req)
	if err != nil {
		h.logger.Warn("update diagram", slog.Int64("id", id), slog.Any("error", err))
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}

func (h *Handler) DeleteDiagram(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid diagram id")
		return
	}
	if err := h.service.DeleteDiagram(r.Context(), id); err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	diagramID, err := strconv.ParseInt(chi.URLParam(r, "diagramID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid diagram id")
		return
	}
	list, err := h.service.ListCategories(r.Context(), diagramID)
	if err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"categories": list})
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	diagramID, err := strconv.ParseInt(chi.URLParam(r, "diagramID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid diagram id")
		return
	}
	var req CategoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	c, err := h.service.CreateCategory(r.Context(), diagramID, req)
	if err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid category id")
		return
	}
	var req CategoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	c, err := h.service.UpdateCategory(r.Context(), id, req)
	if err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid category id")
		return
	}
	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func mapNotFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return httpx.ErrNotFound
	}
	return err
}
