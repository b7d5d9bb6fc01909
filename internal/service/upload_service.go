package service

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/spec-kit/lawfirm-api/internal/config"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

// imageExtensions covers every image type http.DetectContentType reports.
var imageExtensions = map[string]string{
	"image/png":                ".png",
	"image/jpeg":               ".jpg",
	"image/gif":                ".gif",
	"image/webp":               ".webp",
	"image/bmp":                ".bmp",
	"image/x-icon":             ".ico",
	"image/avif":               ".avif",
	"image/vnd.microsoft.icon": ".ico",
}

func imageExtension(sniffed string) string {
	mediaType, _, err := mime.ParseMediaType(sniffed)
	if err != nil {
		return ""
	}
	if ext, ok := imageExtensions[mediaType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// UploadService stores images on local disk under generated names.
type UploadService struct {
	dir      string
	maxBytes int64
}

// NewUploadService constructs the service; the directory is created lazily.
func NewUploadService(cfg config.UploadConfig) *UploadService {
	return &UploadService{dir: cfg.Dir, maxBytes: cfg.MaxBytes}
}

// SaveImage validates the part and stores it as <uuid><ext>, returning the
// generated file name.
func (s *UploadService) SaveImage(file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", apperrors.NewValidationError("no image uploaded", map[string]any{"image": "is required"})
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return "", apperrors.NewValidationError("only image uploads are allowed", map[string]any{"content_type": contentType})
	}
	if s.maxBytes > 0 && file.Size > s.maxBytes {
		return "", apperrors.NewValidationError("image is too large", map[string]any{"max_bytes": s.maxBytes})
	}

	src, err := file.Open()
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	defer src.Close()

	// Sniff the content rather than trusting the declared type alone.
	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", apperrors.NewInternalError(err)
	}
	sniffed := http.DetectContentType(head[:n])
	if !strings.HasPrefix(sniffed, "image/") {
		return "", apperrors.NewValidationError("only image uploads are allowed", map[string]any{"content_type": contentType})
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", apperrors.NewInternalError(err)
	}
	// The client's file name never decides the stored extension.
	name := uuid.NewString() + imageExtension(sniffed)
	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	_, err = dst.Write(head[:n])
	if err == nil {
		_, err = io.Copy(dst, src)
	}
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(filepath.Join(s.dir, name))
		return "", apperrors.NewInternalError(fmt.Errorf("store upload: %w", err))
	}
	return name, nil
}
