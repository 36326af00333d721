package media

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/posdenous/kinza-backend/internal/domain/enums"
	"github.com/posdenous/kinza-backend/internal/domain/model"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrForbidden         = errors.New("forbidden")
	ErrImageLimitReached = errors.New("image limit reached")
)

const (
	signedURLTTL      = 5 * time.Minute
	maxImagesPerEvent = 6
)

type Store interface {
	CreateImage(ctx context.Context, eventID, objectKey string) (ImageRecord, error)
	ListImages(ctx context.Context, eventID string) ([]ImageRecord, error)
}

type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	PutImage(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// Service stores event images in object storage and hands out
// short-lived signed URLs. Only organisers and admins may upload.
type Service struct {
	store   Store
	storage ObjectStorage
	now     func() time.Time
}

type ImageRecord struct {
	ID        int64
	Position  int
	ObjectKey string
	CreatedAt time.Time
}

type Image struct {
	ID        int64
	Position  int
	URL       string
	CreatedAt time.Time
}

func NewService(store Store, storage ObjectStorage) *Service {
	return &Service{
		store:   store,
		storage: storage,
		now:     time.Now,
	}
}

func (s *Service) UploadImage(ctx context.Context, actor model.User, eventID, fileName, contentType string, body io.Reader, size int64) (Image, error) {
	if strings.TrimSpace(eventID) == "" || body == nil || size <= 0 {
		return Image{}, ErrValidation
	}
	if actor.Role != enums.RoleOrganiser && actor.Role != enums.RoleAdmin {
		return Image{}, ErrForbidden
	}
	if s.store == nil || s.storage == nil {
		return Image{}, fmt.Errorf("media dependencies are not configured")
	}

	if err := s.storage.EnsureBucket(ctx); err != nil {
		return Image{}, fmt.Errorf("ensure bucket: %w", err)
	}

	objectKey, err := buildImageObjectKey(eventID, fileName)
	if err != nil {
		return Image{}, fmt.Errorf("build object key: %w", err)
	}

	if strings.TrimSpace(contentType) == "" {
		contentType = "application/octet-stream"
	}

	if err := s.storage.PutImage(ctx, objectKey, body, size, contentType); err != nil {
		return Image{}, fmt.Errorf("put object: %w", err)
	}

	record, err := s.store.CreateImage(ctx, eventID, objectKey)
	if err != nil {
		_ = s.storage.Delete(ctx, objectKey)
		if errors.Is(err, ErrImageLimitReached) {
			return Image{}, ErrImageLimitReached
		}
		return Image{}, fmt.Errorf("create image record: %w", err)
	}

	url, err := s.storage.PresignGet(ctx, record.ObjectKey, signedURLTTL)
	if err != nil {
		return Image{}, fmt.Errorf("presign image url: %w", err)
	}

	return Image{
		ID:        record.ID,
		Position:  record.Position,
		URL:       url,
		CreatedAt: record.CreatedAt,
	}, nil
}

func (s *Service) ListImages(ctx context.Context, eventID string) ([]Image, error) {
	if strings.TrimSpace(eventID) == "" {
		return nil, ErrValidation
	}
	if s.store == nil || s.storage == nil {
		return nil, fmt.Errorf("media dependencies are not configured")
	}

	records, err := s.store.ListImages(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list image records: %w", err)
	}

	images := make([]Image, 0, len(records))
	for _, rec := range records {
		url, err := s.storage.PresignGet(ctx, rec.ObjectKey, signedURLTTL)
		if err != nil {
			return nil, fmt.Errorf("presign image url: %w", err)
		}
		images = append(images, Image{
			ID:        rec.ID,
			Position:  rec.Position,
			URL:       url,
			CreatedAt: rec.CreatedAt,
		})
	}

	return images, nil
}

func buildImageObjectKey(eventID, fileName string) (string, error) {
	rnd := make([]byte, 8)
	if _, err := rand.Read(rnd); err != nil {
		return "", err
	}

	ext := strings.ToLower(path.Ext(strings.TrimSpace(fileName)))
	if ext == "" {
		ext = ".bin"
	}

	stamp := time.Now().UTC().Format("20060102T150405")
	return fmt.Sprintf("events/%s/images/%s_%s%s", eventID, stamp, hex.EncodeToString(rnd), ext), nil
}

func MaxImagesPerEvent() int {
	return maxImagesPerEvent
}
