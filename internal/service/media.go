package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/yuna/nekotalk/internal/logger"
	"github.com/yuna/nekotalk/internal/storage"

	_ "golang.org/x/image/webp"
)

// MaxUploadBytes bounds the accepted upload size.
const MaxUploadBytes = 50 << 20 // 50 MiB

// ErrUnsupportedMedia indicates the upload is neither a supported image
// nor a supported video.
var ErrUnsupportedMedia = errors.New("unsupported media type")

// ErrUploadTooLarge indicates the upload exceeds MaxUploadBytes.
var ErrUploadTooLarge = errors.New("upload exceeds size limit")

// MediaService stores uploaded images and videos in object storage.
type MediaService struct {
	storage storage.ObjectStorage
	logger  *logger.Logger
}

// NewMediaService creates a new media service.
func NewMediaService(objectStorage storage.ObjectStorage, log *logger.Logger) *MediaService {
	return &MediaService{storage: objectStorage, logger: log}
}

// UploadResult describes a stored media object.
type UploadResult struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Size        int64  `json:"size"`
}

// Upload validates and stores one media object.
// Images are decoded to verify the payload matches the declared type and
// to record dimensions; videos are stored as-is after a content-type check.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - reader: media payload.
//   - contentType: declared MIME type, e.g. image/jpeg or video/mp4.
// Returns:
//   - *UploadResult: public URL and media metadata.
//   - error: ErrUnsupportedMedia, ErrUploadTooLarge, or a storage error.
func (s *MediaService) Upload(ctx context.Context, reader io.Reader, contentType string) (*UploadResult, error) {
	data, err := io.ReadAll(io.LimitReader(reader, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, ErrUploadTooLarge
	}

	start := time.Now()
	result := &UploadResult{Size: int64(len(data))}

	switch {
	case strings.HasPrefix(contentType, "image/"):
		config, format, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, ErrUnsupportedMedia
		}
		result.ContentType = imageContentType(format)
		result.Width = config.Width
		result.Height = config.Height
		result.Key = fmt.Sprintf("images/%s.%s", uuid.New().String(), imageExtension(format))

	case isSupportedVideo(contentType):
		result.ContentType = contentType
		result.Key = fmt.Sprintf("videos/%s.%s", uuid.New().String(), videoExtension(contentType))

	default:
		return nil, ErrUnsupportedMedia
	}

	if err := s.storage.Upload(ctx, result.Key, bytes.NewReader(data), result.Size, result.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store media: %w", err)
	}
	result.URL = s.storage.GetURL(result.Key)

	s.logger.WithFields(logger.Fields{
		logger.FieldSize:       result.Size,
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
	}).Debug("media stored")

	return result, nil
}

// Delete removes a stored media object by key.
func (s *MediaService) Delete(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

func imageContentType(format string) string {
	switch format {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

func imageExtension(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	return format
}

func isSupportedVideo(contentType string) bool {
	switch contentType {
	case "video/mp4", "video/quicktime", "video/webm":
		return true
	}
	return false
}

func videoExtension(contentType string) string {
	switch contentType {
	case "video/mp4":
		return "mp4"
	case "video/quicktime":
		return "mov"
	case "video/webm":
		return "webm"
	default:
		return "bin"
	}
}
