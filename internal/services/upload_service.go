package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/moizhassan7/crisp-cms/internal/objectstore"
	"github.com/moizhassan7/crisp-cms/pkg/metrics"
)

// Folders the admin panel may upload into, one per image-bearing content
// area.
var uploadFolders = map[string]bool{
	"about":        true,
	"projects":     true,
	"team_members": true,
	"gallery":      true,
}

// UploadService turns an admin's local image file into the absolute URL a
// content document references. Object names are prefixed with a millisecond
// timestamp so re-uploads never collide; the old object is left behind when
// an image is replaced.
type UploadService struct {
	objects objectstore.ObjectStore
	logger  *zap.Logger
	metrics *metrics.Collector
	now     func() time.Time
}

func NewUploadService(objects objectstore.ObjectStore, logger *zap.Logger, mc *metrics.Collector) *UploadService {
	return &UploadService{
		objects: objects,
		logger:  logger.With(zap.String("service", "upload")),
		metrics: mc,
		now:     time.Now,
	}
}

// UploadImage stores one image and returns its URL. Only image content
// types are accepted, and only into the known upload folders.
func (s *UploadService) UploadImage(ctx context.Context, folder, filename, contentType string, r io.Reader, size int64) (string, error) {
	if !uploadFolders[folder] {
		return "", fmt.Errorf("unknown upload folder: %s", folder)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("only image uploads are allowed, got %s", contentType)
	}

	name := fmt.Sprintf("%d_%s", s.now().UnixMilli(), sanitizeFilename(filename))
	objectPath := folder + "/" + name

	url, err := s.objects.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		s.logger.Error("Image upload failed",
			zap.String("path", objectPath), zap.Error(err))
		return "", fmt.Errorf("image upload failed: %w", err)
	}

	s.metrics.IncrementCounter("uploads", folder)
	s.metrics.ObserveSize("upload_bytes", float64(size))
	s.logger.Info("Image uploaded",
		zap.String("path", objectPath),
		zap.Int64("size", size),
		zap.String("url", url))
	return url, nil
}

func sanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	if base == "" || base == "." || base == "/" {
		return "upload"
	}
	return base
}
