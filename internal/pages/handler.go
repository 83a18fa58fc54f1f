package pages

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ferrumtrans/ferrumtrans/internal/access"
	"github.com/ferrumtrans/ferrumtrans/internal/platform/httpx"
)

var (
	pageResource    = access.Resource{Category: access.CategoryContent, Singleton: true}
	sectionResource = access.Resource{Category: access.CategoryContent}

	// Attachments inherit the section's decision.
	attachmentResource = sectionResource.ForChild()
)

type Handler struct {
	logger  *slog.Logger
	service *Service
	guard   access.Middleware
}

func NewHandler(logger *slog.Logger, service *Service, guard access.Middleware) *Handler {
	return &Handler{logger: logger, service: service, guard: guard}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/{kind}", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(pageResource, access.OpView))
			r.Get("/", h.ShowPage)
		})
		// Bootstrap is a one-time admin action, not a user operation;
		// the service refuses a second instance. No delete route: a
		// live singleton cannot be removed.
		r.Group(func(r chi.Router) {
			r.Use(h.guard.RequireRole(access.RoleAdmin))
			r.Post("/", h.BootstrapPage)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(pageResource, access.OpChange))
			r.Put("/", h.UpdatePage)
		})

		r.Route("/sections", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(h.guard.Require(sectionResource, access.OpView))
				r.Get("/", h.ListSections)
			})
			r.Group(func(r chi.Router) {
				r.Use(h.guard.Require(sectionResource, access.OpAdd))
				r.Post("/", h.CreateSection)
			})
		})
	})

	r.Route("/sections/{id}", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(sectionResource, access.OpView))
			r.Get("/", h.ShowSection)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(sectionResource, access.OpChange))
			r.Put("/", h.UpdateSection)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(sectionResource, access.OpDelete))
			r.Delete("/", h.DeleteSection)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(attachmentResource, access.OpAdd))
		r.Post("/section-images", h.AttachImage)
		r.Post("/section-files", h.AttachFile)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(attachmentResource, access.OpDelete))
		r.Delete("/section-images/{id}", h.DetachImage)
		r.Delete("/section-files/{id}", h.DetachFile)
	})
}

func pageKind(r *http.Request) (PageKind, bool) {
	kind := PageKind(chi.URLParam(r, "kind"))
	return kind, kind.Valid()
}

func (h *Handler) ShowPage(w http.ResponseWriter, r *http.Request) {
	kind, ok := pageKind(r)
	if !ok {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	p, err := h.service.GetPage(r.Context(), kind)
	if err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) BootstrapPage(w http.ResponseWriter, r *http.Request) {
	kind, ok := pageKind(r)
	if !ok {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	var req PageRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	p, err := h.service.BootstrapPage(r.Context(), kind, req)
	if err != nil {
		h.logger.Warn("bootstrap page", slog.String("kind", string(kind)), slog.Any("error", err))
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	kind, ok := pageKind(r)
	if !ok {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	var req PageRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	p, err := h.service.UpdatePage(r.Context(), kind, req)
	if err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) ListSections(w http.ResponseWriter, r *http.Request) {
	kind, ok := pageKind(r)
	if !ok {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	list, err := h.service.ListSections(r.Context(), kind, r.URL.Query().Get("active") == "true")
	if err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"sections": list})
}

func (h *Handler) CreateSection(w http.ResponseWriter, r *http.Request) {
	kind, ok := pageKind(r)
	if !ok {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	var req SectionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	sec, err := h.service.CreateSection(r.Context(), kind, req)
	if err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusCreated, sec)
}

func (h *Handler) ShowSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid section id")
		return
	}
	sec, err := h.service.GetSection(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, sec)
}

func (h *Handler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid section id")
		return
	}
	var req SectionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	sec, err := h.service.UpdateSection(r.Context(), id, req)
	if err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, sec)
}

func (h *Handler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid section id")
		return
	}
	if err := h.service.DeleteSection(r.Context(), id); err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AttachImage(w http.ResponseWriter, r *http.Request) {
	var req SectionAttachmentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	img, err := h.service.AttachImage(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusCreated, img)
}

func (h *Handler) DetachImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid attachment id")
		return
	}
	if err := h.service.DetachImage(r.Context(), id); err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AttachFile(w http.ResponseWriter, r *http.Request) {
	var req SectionAttachmentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	f, err := h.service.AttachFile(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusCreated, f)
}

func (h *Handler) DetachFile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid attachment id")
		return
	}
	if err := h.service.DetachFile(r.Context(), id); err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func mapServiceErr(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return httpx.ErrNotFound
	case errors.Is(err, ErrSingleton):
		return httpx.ErrForbidden
	}
	return err
}
