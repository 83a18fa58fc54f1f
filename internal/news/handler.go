package news

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

var attachmentResource = resource.ForChild()

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
		r.Get("/", h.List)
		r.Get("/{id}", h.Show)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(resource, access.OpAdd))
		r.Post("/", h.Create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(resource, access.OpChange))
		r.Put("/{id}", h.Update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(resource, access.OpDelete))
		r.Delete("/{id}", h.Delete)
	})

	r.Route("/{newsID}/images", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(attachmentResource, access.OpView))
			r.Get("/", h.ListImages)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(attachmentResource, access.OpAdd))
			r.Post("/", h.AddImage)
		})
	})
	r.Route("/{newsID}/files", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(attachmentResource, access.OpView))
			r.Get("/", h.ListFiles)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(attachmentResource, access.OpAdd))
			r.Post("/", h.AddFile)
		})
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(attachmentResource, access.OpDelete))
		r.Delete("/images/{id}", h.RemoveImage)
		r.Delete("/files/{id}", h.RemoveFile)
	})
}

// MountPublicRoutes exposes the published-articles surface without
// authentication.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Get("/", h.ListPublished)
	r.Get("/{slug}", h.ShowPublished)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListNewsRequest{Limit: 50}
	q := r.URL.Query()
	if raw := q.Get("is_active"); raw != "" {
		val := raw == "true"
		req.IsActive = &val
	}
	if raw := q.Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			req.Limit = parsed
		}
	}
	if raw := q.Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			req.Offset = parsed
		}
	}

	list, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list news", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"news": list, "total": total})
}

func (h *Handler) ListPublished(w http.ResponseWriter, r *http.Request) {
	limit, offset := 20, 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	list, total, err := h.service.ListPublished(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("list published news", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"news": list, "total": total})
}

func (h *Handler) ShowPublished(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.GetPublished(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	httpx.JSON(w, http.StatusOK, n)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid news id")
		return
	}
	n, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	httpx.JSON(w, http.StatusOK, n)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req NewsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	n, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Warn("create news", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, n)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid news id")
		return
	}
	var req NewsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	n, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.logger.Warn("update news", slog.Int64("id", id), slog.Any("error", err))
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	httpx.JSON(w, http.StatusOK, n)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid news id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	newsID, ok := pathID(r, "newsID")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid news id")
		return
	}
	list, err := h.service.ListImages(r.Context(), newsID)
	if err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"images": list})
}

func (h *Handler) AddImage(w http.ResponseWriter, r *http.Request) {
	newsID, ok := pathID(r, "newsID")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid news id")
		return
	}
	var req AttachmentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	img, err := h.service.AddImage(r.Context(), newsID, req)
	if err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	httpx.JSON(w, http.StatusCreated, img)
}

func (h *Handler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid attachment id")
		return
	}
	if err := h.service.RemoveImage(r.Context(), id); err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	newsID, ok := pathID(r, "newsID")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid news id")
		return
	}
	list, err := h.service.ListFiles(r.Context(), newsID)
	if err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"files": list})
}

func (h *Handler) AddFile(w http.ResponseWriter, r *http.Request) {
	newsID, ok := pathID(r, "newsID")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid news id")
		return
	}
	var req AttachmentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	f, err := h.service.AddFile(r.Context(), newsID, req)
	if err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	httpx.JSON(w, http.StatusCreated, f)
}

func (h *Handler) RemoveFile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid attachment id")
		return
	}
	if err := h.service.RemoveFile(r.Context(), id); err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}

func mapNotFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return httpx.ErrNotFound
	}
	return err
}
