package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/yuna/nekotalk/internal/logger"
)

// memStorage keeps uploaded objects in a map.
type memStorage struct {
	objects map[string][]byte
	types   map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *memStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[key] = data
	s.types[key] = contentType
	return nil
}

func (s *memStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.objects[key])), nil
}

func (s *memStorage) GetURL(key string) string {
	return "https://media.example.com/" + key
}

func (s *memStorage) Delete(ctx context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *memStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := s.objects[key]
	return ok, nil
}

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestMediaService_UploadImage(t *testing.T) {
	store := newMemStorage()
	svc := NewMediaService(store, logger.NewDefault())

	data := encodePNG(t, 320, 240)
	result, err := svc.Upload(context.Background(), bytes.NewReader(data), "image/png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Width != 320 || result.Height != 240 {
		t.Errorf("expected 320x240, got %dx%d", result.Width, result.Height)
	}
	if result.ContentType != "image/png" {
		t.Errorf("expected image/png, got %q", result.ContentType)
	}
	if !strings.HasPrefix(result.Key, "images/") || !strings.HasSuffix(result.Key, ".png") {
		t.Errorf("unexpected key %q", result.Key)
	}
	if !strings.HasPrefix(result.URL, "https://media.example.com/images/") {
		t.Errorf("unexpected URL %q", result.URL)
	}
	if _, ok := store.objects[result.Key]; !ok {
		t.Error("object not stored")
	}
}

// The decoded format wins over the declared content type.
func TestMediaService_UploadImage_FormatFromPayload(t *testing.T) {
	svc := NewMediaService(newMemStorage(), logger.NewDefault())

	data := encodePNG(t, 8, 8)
	result, err := svc.Upload(context.Background(), bytes.NewReader(data), "image/jpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ContentType != "image/png" {
		t.Errorf("expected detected image/png, got %q", result.ContentType)
	}
}

func TestMediaService_UploadRejectsGarbageImage(t *testing.T) {
	svc := NewMediaService(newMemStorage(), logger.NewDefault())

	_, err := svc.Upload(context.Background(), strings.NewReader("not an image"), "image/png")
	if err != ErrUnsupportedMedia {
		t.Fatalf("expected ErrUnsupportedMedia, got %v", err)
	}
}

func TestMediaService_UploadVideo(t *testing.T) {
	store := newMemStorage()
	svc := NewMediaService(store, logger.NewDefault())

	result, err := svc.Upload(context.Background(), strings.NewReader("fake mp4 bytes"), "video/mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(result.Key, "videos/") || !strings.HasSuffix(result.Key, ".mp4") {
		t.Errorf("unexpected key %q", result.Key)
	}
	if result.Width != 0 || result.Height != 0 {
		t.Error("videos must not report dimensions")
	}
}

func TestMediaService_UploadRejectsUnknownType(t *testing.T) {
	svc := NewMediaService(newMemStorage(), logger.NewDefault())

	_, err := svc.Upload(context.Background(), strings.NewReader("data"), "application/pdf")
	if err != ErrUnsupportedMedia {
		t.Fatalf("expected ErrUnsupportedMedia, got %v", err)
	}
}
