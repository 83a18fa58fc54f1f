package contacts

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

type Handler struct {
	logger  *slog.Logger
	service *Service
	guard   access.Middleware
}

func NewHandler(logger *slog.Logger, service *Service, guard access.Middleware) *Handler {
	return &Handler{logger: logger, service: service, guard: guard}
}

func (h *Handler) MountRoutes(r chi.Router) {
	h.mountKind(r, "/phones", kindRoutes{
		list:   h.listPhones,
		show:   h.showPhone,
		create: h.createPhone,
		update: h.updatePhone,
		remove: h.deletePhone,
	})
	h.mountKind(r, "/emails", kindRoutes{
		list:   h.listEmails,
		show:   h.showEmail,
		create: h.createEmail,
		update: h.updateEmail,
		remove: h.deleteEmail,
	})
	h.mountKind(r, "/addresses", kindRoutes{
		list:   h.listAddresses,
		show:   h.showAddress,
		create: h.createAddress,
		update: h.updateAddress,
		remove: h.deleteAddress,
	})
	h.mountKind(r, "/social-media", kindRoutes{
		list:   h.listSocialMedia,
		show:   h.showSocialMedia,
		create: h.createSocialMedia,
		update: h.updateSocialMedia,
		remove: h.deleteSocialMedia,
	})
}

type kindRoutes struct {
	list, show, create, update, remove http.HandlerFunc
}

func (h *Handler) mountKind(r chi.Router, prefix string, routes kindRoutes) {
	r.Route(prefix, func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(resource, access.OpView))
			r.Get("/", routes.list)
			r.Get("/{id}", routes.show)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(resource, access.OpAdd))
			r.Post("/", routes.create)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(resource, access.OpChange))
			r.Put("/{id}", routes.update)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.guard.Require(resource, access.OpDelete))
			r.Delete("/{id}", routes.remove)
		})
	})
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func activeOnly(r *http.Request) bool {
	return r.URL.Query().Get("active") == "true"
}

func (h *Handler) respond(w http.ResponseWriter, result any, err error) {
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			err = httpx.ErrNotFound
		}
		httpx.RespondError(w, err)
		return
	}
	if result == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) listPhones(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListPhones(r.Context(), activeOnly(r))
	h.respond(w, map[string]any{"phones": list}, err)
}

func (h *Handler) showPhone(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	p, err := h.service.GetPhone(r.Context(), id)
	h.respond(w, p, err)
}

func (h *Handler) createPhone(w http.ResponseWriter, r *http.Request) {
	var req PhoneRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	p, err := h.service.CreatePhone(r.Context(), req)
	if err == nil {
		httpx.JSON(w, http.StatusCreated, p)
		return
	}
	h.respond(w, nil, err)
}

func (h *Handler) updatePhone(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	var req PhoneRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	p, err := h.service.UpdatePhone(r.Context(), id, req)
	h.respond(w, p, err)
}

func (h *Handler) deletePhone(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	h.respond(w, nil, h.service.DeletePhone(r.Context(), id))
}

func (h *Handler) listEmails(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListEmails(r.Context(), activeOnly(r))
	h.respond(w, map[string]any{"emails": list}, err)
}

func (h *Handler) showEmail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	e, err := h.service.GetEmail(r.Context(), id)
	h.respond(w, e, err)
}

func (h *Handler) createEmail(w http.ResponseWriter, r *http.Request) {
	var req EmailRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	e, err := h.service.CreateEmail(r.Context(), req)
	if err == nil {
		httpx.JSON(w, http.StatusCreated, e)
		return
	}
	h.respond(w, nil, err)
}

func (h *Handler) updateEmail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	var req EmailRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	e, err := h.service.UpdateEmail(r.Context(), id, req)
	h.respond(w, e, err)
}

func (h *Handler) deleteEmail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	h.respond(w, nil, h.service.DeleteEmail(r.Context(), id))
}

func (h *Handler) listAddresses(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListAddresses(r.Context(), activeOnly(r))
	h.respond(w, map[string]any{"addresses": list}, err)
}

func (h *Handler) showAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	a, err := h.service.GetAddress(r.Context(), id)
	h.respond(w, a, err)
}

func (h *Handler) createAddress(w http.ResponseWriter, r *http.Request) {
	var req AddressRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	a, err := h.service.CreateAddress(r.Context(), req)
	if err == nil {
		httpx.JSON(w, http.StatusCreated, a)
		return
	}
	h.respond(w, nil, err)
}

func (h *Handler) updateAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	var req AddressRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	a, err := h.service.UpdateAddress(r.Context(), id, req)
	h.respond(w, a, err)
}

func (h *Handler) deleteAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	h.respond(w, nil, h.service.DeleteAddress(r.Context(), id))
}

func (h *Handler) listSocialMedia(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListSocialMedia(r.Context(), activeOnly(r))
	h.respond(w, map[string]any{"social_media": list}, err)
}

func (h *Handler) showSocialMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	s, err := h.service.GetSocialMedia(r.Context(), id)
	h.respond(w, s, err)
}

func (h *Handler) createSocialMedia(w http.ResponseWriter, r *http.Request) {
	var req SocialMediaRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	s, err := h.service.CreateSocialMedia(r.Context(), req)
	if err == nil {
		httpx.JSON(w, http.StatusCreated, s)
		return
	}
	h.respond(w, nil, err)
}

func (h *Handler) updateSocialMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	var req SocialMediaRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	s, err := h.service.UpdateSocialMedia(r.Context(), id, req)
	h.respond(w, s, err)
}

func (h *Handler) deleteSocialMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	h.respond(w, nil, h.service.DeleteSocialMedia(r.Context(), id))
}
