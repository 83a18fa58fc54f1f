package media

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ferrumtrans/ferrumtrans/internal/access"
	"github.com/ferrumtrans/ferrumtrans/internal/platform/httpx"
)

// maxUploadBytes bounds a single multipart upload.
const maxUploadBytes = 50 << 20

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
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(resource, access.OpView))
		r.Get("/images", h.ListImages)
		r.Get("/images/{id}", h.ShowImage)
		r.Get("/images/{id}/content", h.ImageContent)
		r.Get("/files", h.ListFiles)
		r.Get("/files/{id}", h.ShowFile)
		r.Get("/files/{id}/content", h.FileContent)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(resource, access.OpAdd))
		r.Post("/images", h.UploadImage)
		r.Post("/files", h.UploadFile)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(resource, access.OpChange))
		r.Put("/images/{id}", h.UpdateImage)
		r.Put("/images/{id}/content", h.ReplaceImage)
		r.Put("/files/{id}", h.UpdateFile)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(resource, access.OpDelete))
		r.Delete("/images/{id}", h.DeleteImage)
		r.Delete("/files/{id}", h.DeleteFile)
	})
}

func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("is_active") == "true"
	list, err := h.service.ListImages(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("list images", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"images": list})
}

func (h *Handler) ShowImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid image id")
		return
	}
	img, err := h.service.GetImage(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	httpx.JSON(w, http.StatusOK, img)
}

func (h *Handler) ImageContent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid image id")
		return
	}
	img, rc, err := h.service.OpenImage(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	defer rc.Close()
	serveBinary(w, img.Key, rc)
}

func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	file, header, ok := h.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	img, err := h.service.UploadImage(r.Context(), header.Filename, r.FormValue("alt_text"), file)
	if err != nil {
		h.logger.Warn("upload image", slog.String("filename", header.Filename), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, img)
}

func (h *Handler) ReplaceImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid image id")
		return
	}
	file, header, ok := h.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	img, err := h.service.ReplaceImage(r.Context(), id, header.Filename, file)
	if err != nil {
		h.logger.Warn("replace image", slog.Int64("id", id), slog.Any("error", err))
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	httpx.JSON(w, http.StatusOK, img)
}

func (h *Handler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid image id")
		return
	}
	var req struct {
		AltText  *string `json:"alt_text"`
		IsActive *bool   `json:"is_active"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	img, err := h.service.UpdateImage(r.Context(), id, req.AltText, req.IsActive)
	if err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	httpx.JSON(w, http.StatusOK, img)
}

func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid image id")
		return
	}
	if err := h.service.DeleteImage(r.Context(), id); err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("is_active") == "true"
	list, err := h.service.ListFiles(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("list files", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"files": list})
}

func (h *Handler) ShowFile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid file id")
		return
	}
	f, err := h.service.GetFile(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	httpx.JSON(w, http.StatusOK, f)
}

func (h *Handler) FileContent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid file id")
		return
	}
	f, rc, err := h.service.OpenFile(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	defer rc.Close()
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}))
	serveBinary(w, f.Key, rc)
}

func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	file, header, ok := h.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	f, err := h.service.UploadFile(r.Context(), header.Filename, r.FormValue("name"), file)
	if err != nil {
		h.logger.Warn("upload file", slog.String("filename", header.Filename), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, f)
}

func (h *Handler) UpdateFile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid file id")
		return
	}
	var req struct {
		Name     *string `json:"name"`
		IsActive *bool   `json:"is_active"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	f, err := h.service.UpdateFile(r.Context(), id, req.Name, req.IsActive)
	if err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	httpx.JSON(w, http.StatusOK, f)
}

func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid file id")
		return
	}
	if err := h.service.DeleteFile(r.Context(), id); err != nil {
		httpx.RespondError(w, mapNotFound(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// formFile extracts the "file" part of a multipart upload, writing the
// problem response itself on failure.
func (h *Handler) formFile(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid multipart body")
		return nil, nil, false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "missing file part")
		return nil, nil, false
	}
	return file, header, true
}

func serveBinary(w http.ResponseWriter, key string, rc io.Reader) {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		w.Header().Set("Content-Type", ct)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	// response already started by now; a copy error has nowhere to go
	_, _ = io.Copy(w, rc)
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
