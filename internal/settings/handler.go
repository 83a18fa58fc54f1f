package settings

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ferrumtrans/ferrumtrans/internal/access"
	"github.com/ferrumtrans/ferrumtrans/internal/platform/httpx"
)

var resource = access.Resource{Category: access.CategorySettings, Singleton: true}

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
		r.Get("/", h.Show)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(resource, access.OpChange))
		r.Put("/", h.Update)
	})
	// Bootstrap is a one-time admin action; the singleton flag denies
	// OpAdd at the resource level, so the route is gated on role and
	// the service refuses a second record.
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireRole(access.RoleAdmin))
		r.Post("/", h.Bootstrap)
	})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Get(r.Context())
	if err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

func (h *Handler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	var req BootstrapRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	rec, err := h.service.Bootstrap(r.Context(), req)
	if err != nil {
		h.logger.Warn("bootstrap settings", slog.Any("error", err))
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusCreated, rec)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := access.PrincipalFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "operation not permitted")
		return
	}
	role, ok := access.ResolveRole(p)
	if !ok {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "operation not permitted")
		return
	}

	var req UpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	rec, err := h.service.Update(r.Context(), role, req)
	if err != nil {
		h.logger.Warn("update settings", slog.String("role", string(role)), slog.Any("error", err))
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
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
