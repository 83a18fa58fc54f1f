package media

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"

	"github.com/ferrumtrans/ferrumtrans/internal/platform/storage"
	"github.com/ferrumtrans/ferrumtrans/internal/validate"
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

var fileExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".ppt": true, ".pptx": true, ".zip": true, ".rar": true, ".txt": true,
}

// Service manages uploaded binaries and their metadata records. The
// binary goes to storage first; dimensions and byte size are cached on
// the record afterwards, and stay null when the binary cannot be
// decoded (webp, truncated uploads).
type Service struct {
	repo   Repository
	store  *storage.FS
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, store *storage.FS, logger *slog.Logger) *Service {
	return &Service{repo: repo, store: store, logger: logger, now: time.Now}
}

// UploadImage stores the binary under a dated key and records its
// metadata.
func (s *Service) UploadImage(ctx context.Context, filename, altText string, src io.Reader) (*Image, error) {
	key, err := s.storeUpload("images", filename, imageExtensions, src)
	if err != nil {
		return nil, err
	}

	img := &Image{Key: key, AltText: altText, IsActive: true}
	s.cacheImageMeta(img)
	if err := s.repo.CreateImage(ctx, img); err != nil {
		if rmErr := s.store.Remove(key); rmErr != nil {
			s.logger.Warn("orphaned image binary", slog.String("key", key), slog.Any("error", rmErr))
		}
		return nil, err
	}
	return img, nil
}

// ReplaceImage swaps the binary of an existing record; metadata fields
// not tied to the binary are left alone. The old binary is removed only
// after the record points at the new one.
func (s *Service) ReplaceImage(ctx context.Context, id int64, filename string, src io.Reader) (*Image, error) {
	img, err := s.repo.GetImage(ctx, id)
	if err != nil {
		return nil, err
	}

	oldKey := img.Key
	key, err := s.storeUpload("images", filename, imageExtensions, src)
	if err != nil {
		return nil, err
	}

	img.Key = key
	img.Width, img.Height, img.FileSize = nil, nil, nil
	s.cacheImageMeta(img)
	if err := s.repo.UpdateImage(ctx, img); err != nil {
		if rmErr := s.store.Remove(key); rmErr != nil {
			s.logger.Warn("orphaned image binary", slog.String("key", key), slog.Any("error", rmErr))
		}
		return nil, err
	}
	if err := s.store.Remove(oldKey); err != nil {
		s.logger.Warn("stale image binary", slog.String("key", oldKey), slog.Any("error", err))
	}
	return img, nil
}

// UpdateImage changes record-level fields without touching the binary.
func (s *Service) UpdateImage(ctx context.Context, id int64, altText *string, isActive *bool) (*Image, error) {
	img, err := s.repo.GetImage(ctx, id)
	if err != nil {
		return nil, err
	}
	if altText != nil {
		img.AltText = *altText
	}
	if isActive != nil {
		img.IsActive = *isActive
	}
	if err := s.repo.UpdateImage(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *Service) GetImage(ctx context.Context, id int64) (*Image, error) {
	return s.repo.GetImage(ctx, id)
}

func (s *Service) ListImages(ctx context.Context, activeOnly bool) ([]Image, error) {
	return s.repo.ListImages(ctx, activeOnly)
}

// DeleteImage removes the record and its binary. Directory pruning is
// the store's concern.
func (s *Service) DeleteImage(ctx context.Context, id int64) error {
	img, err := s.repo.GetImage(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteImage(ctx, id); err != nil {
		return err
	}
	if err := s.store.Remove(img.Key); err != nil {
		s.logger.Warn("stale image binary", slog.String("key", img.Key), slog.Any("error", err))
	}
	return nil
}

// OpenImage streams the binary of an image record.
func (s *Service) OpenImage(ctx context.Context, id int64) (*Image, io.ReadCloser, error) {
	img, err := s.repo.GetImage(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Open(img.Key)
	if err != nil {
		return nil, nil, fmt.Errorf("media: open image %d: %w", id, err)
	}
	return img, rc, nil
}

// ImageSize reports the byte size of an image and whether the record
// exists. The cached size is preferred; a null cache falls back to the
// store.
func (s *Service) ImageSize(ctx context.Context, id int64) (int64, bool, error) {
	img, err := s.repo.GetImage(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	if img.FileSize != nil {
		return *img.FileSize, true, nil
	}
	size, err := s.store.Size(img.Key)
	if err != nil {
		return 0, true, fmt.Errorf("media: size of image %d: %w", id, err)
	}
	return size, true, nil
}

// UploadFile stores a document binary and records its metadata. The
// display name defaults to the upload's base name.
func (s *Service) UploadFile(ctx context.Context, filename, name string, src io.Reader) (*File, error) {
	key, err := s.storeUpload("files", filename, fileExtensions, src)
	if err != nil {
		return nil, err
	}

	if !validate.NotBlank(name) {
		name = path.Base(filename)
	}
	f := &File{Key: key, Name: name, IsActive: true}
	if size, err := s.store.Size(key); err == nil {
		f.FileSize = &size
	} else {
		s.logger.Warn("file size unavailable", slog.String("key", key), slog.Any("error", err))
	}
	if err := s.repo.CreateFile(ctx, f); err != nil {
		if rmErr := s.store.Remove(key); rmErr != nil {
			s.logger.Warn("orphaned file binary", slog.String("key", key), slog.Any("error", rmErr))
		}
		return nil, err
	}
	return f, nil
}

func (s *Service) UpdateFile(ctx context.Context, id int64, name *string, isActive *bool) (*File, error) {
	f, err := s.repo.GetFile(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		if !validate.NotBlank(*name) {
			fe := make(validate.FieldErrors)
			fe.Add("name", "must not be blank")
			return nil, fe
		}
		f.Name = *name
	}
	if isActive != nil {
		f.IsActive = *isActive
	}
	if err := s.repo.UpdateFile(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) GetFile(ctx context.Context, id int64) (*File, error) {
	return s.repo.GetFile(ctx, id)
}

func (s *Service) ListFiles(ctx context.Context, activeOnly bool) ([]File, error) {
	return s.repo.ListFiles(ctx, activeOnly)
}

func (s *Service) DeleteFile(ctx context.Context, id int64) error {
	f, err := s.repo.GetFile(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteFile(ctx, id); err != nil {
		return err
	}
	if err := s.store.Remove(f.Key); err != nil {
		s.logger.Warn("stale file binary", slog.String("key", f.Key), slog.Any("error", err))
	}
	return nil
}

// OpenFile streams the binary of a document record.
func (s *Service) OpenFile(ctx context.Context, id int64) (*File, io.ReadCloser, error) {
	f, err := s.repo.GetFile(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Open(f.Key)
	if err != nil {
		return nil, nil, fmt.Errorf("media: open file %d: %w", id, err)
	}
	return f, rc, nil
}

// storeUpload validates the extension and saves the binary under a
// dated, collision-free key.
func (s *Service) storeUpload(prefix, filename string, allowed map[string]bool, src io.Reader) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if !allowed[ext] {
		fe := make(validate.FieldErrors)
		fe.Add("file", fmt.Sprintf("extension %q is not allowed", ext))
		return "", fe
	}

	now := s.now().UTC()
	key := fmt.Sprintf("%s/%04d/%02d/%02d/%s%s",
		prefix, now.Year(), now.Month(), now.Day(), uuid.NewString(), ext)
	if err := s.store.Save(key, src); err != nil {
		return "", fmt.Errorf("media: store upload: %w", err)
	}
	return key, nil
}

// cacheImageMeta fills width, height and byte size from the stored
// binary. Undecodable formats leave the dimensions null; the record is
// still saved.
func (s *Service) cacheImageMeta(img *Image) {
	if size, err := s.store.Size(img.Key); err == nil {
		img.FileSize = &size
	} else {
		s.logger.Warn("image size unavailable", slog.String("key", img.Key), slog.Any("error", err))
	}

	rc, err := s.store.Open(img.Key)
	if err != nil {
		s.logger.Warn("image unreadable", slog.String("key", img.Key), slog.Any("error", err))
		return
	}
	defer rc.Close()

	cfg, _, err := image.DecodeConfig(rc)
	if err != nil {
		s.logger.Warn("image dimensions unavailable",
			slog.String("key", img.Key), slog.Any("error", err))
		return
	}
	img.Width, img.Height = &cfg.Width, &cfg.Height
}
