package mainpage

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
	blockResource = access.Resource{Category: access.CategoryContent, Singleton: true}

	// Advantages and partners take the block surface's decision.
	itemResource = blockResource.ForChild()
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
	// The migration seeds one block per kind, so the block surface is
	// read-and-update only: no create and no delete routes.
	r.Route("/blocks", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(blockResource, access.OpView))
			r.Get("/", h.ListBlocks)
			r.Get("/{kind}", h.ShowBlock)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(blockResource, access.OpChange))
			r.Put("/{kind}", h.UpdateBlock)
		})
	})

	r.Route("/advantages", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(itemResource, access.OpView))
			r.Get("/", h.ListAdvantages)
			r.Get("/{id}", h.ShowAdvantage)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(itemResource, access.OpAdd))
			r.Post("/", h.CreateAdvantage)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(itemResource, access.OpChange))
			r.Put("/{id}", h.UpdateAdvantage)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(itemResource, access.OpDelete))
			r.Delete("/{id}", h.DeleteAdvantage)
		})
	})

	r.Route("/partners", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(itemResource, access.OpView))
			r.Get("/", h.ListPartners)
			r.Get("/{id}", h.ShowPartner)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(itemResource, access.OpAdd))
			r.Post("/", h.CreatePartner)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(itemResource, access.OpChange))
			r.Put("/{id}", h.UpdatePartner)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(itemResource, access.OpDelete))
			r.Delete("/{id}", h.DeletePartner)
		})
	})
}

// MountPublicRoutes exposes the landing-page composite without
// authentication.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Get("/", h.PublicView)
}

func blockKind(r *http.Request) (BlockKind, bool) {
	kind := BlockKind(chi.URLParam(r, "kind"))
	return kind, kind.Valid()
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func (h *Handler) ListBlocks(w http.ResponseWriter, r *http.Request) {
	blocks, err := h.service.ListBlocks(r.Context())
	if err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"blocks": blocks})
}

func (h *Handler) ShowBlock(w http.ResponseWriter, r *http.Request) {
	kind, ok := blockKind(r)
	if !ok {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	b, err := h.service.GetBlock(r.Context(), kind)
	if err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *Handler) UpdateBlock(w http.ResponseWriter, r *http.Request) {
	kind, ok := blockKind(r)
	if !ok {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	var req BlockRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	b, err := h.service.UpdateBlock(r.Context(), kind, req)
	if err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *Handler) ListAdvantages(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListAdvantages(r.Context(), r.URL.Query().Get("active") == "true")
	if err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"advantages": list})
}

func (h *Handler) ShowAdvantage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid advantage id")
		return
	}
	a, err := h.service.GetAdvantage(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

func (h *Handler) CreateAdvantage(w http.ResponseWriter, r *http.Request) {
	var req AdvantageRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	a, err := h.service.CreateAdvantage(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusCreated, a)
}

func (h *Handler) UpdateAdvantage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid advantage id")
		return
	}
	var req AdvantageRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	a, err := h.service.UpdateAdvantage(r.Context(), id, req)
	if err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

func (h *Handler) DeleteAdvantage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid advantage id")
		return
	}
	if err := h.service.DeleteAdvantage(r.Context(), id); err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListPartners(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListPartners(r.Context(), r.URL.Query().Get("active") == "true")
	if err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"partners": list})
}

func (h *Handler) ShowPartner(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid partner id")
		return
	}
	p, err := h.service.GetPartner(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) CreatePartner(w http.ResponseWriter, r *http.Request) {
	var req PartnerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	p, err := h.service.CreatePartner(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdatePartner(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid partner id")
		return
	}
	var req PartnerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	p, err := h.service.UpdatePartner(r.Context(), id, req)
	if err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) DeletePartner(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid partner id")
		return
	}
	if err := h.service.DeletePartner(r.Context(), id); err != nil {
		httpx.RespondError(w, mapServiceErr(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) PublicView(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.PublicView(r.Context())
	if err != nil {
		h.logger.Error("main page view", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func mapServiceErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return httpx.ErrNotFound
	}
	return err
}
