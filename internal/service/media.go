package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"microblog/internal/config"
	"microblog/internal/model"
	"microblog/internal/repository"
	"microblog/internal/storage"
)

// MediaService handles image uploads. Files are written to the blob store
// before the attachment row is inserted: a crash between the two leaves an
// unreferenced file, never a row pointing at a missing file.
type MediaService struct {
	attachmentRepo repository.AttachmentRepository
	store          storage.Store
	cfg            config.MediaConfig
}

func NewMediaService(attachmentRepo repository.AttachmentRepository, store storage.Store, cfg config.MediaConfig) *MediaService {
	return &MediaService{
		attachmentRepo: attachmentRepo,
		store:          store,
		cfg:            cfg,
	}
}

// Upload validates, normalizes and stores one image for the given user,
// returning the unclaimed attachment row. apiKey names the per-user
// directory the file lands in.
func (s *MediaService) Upload(ctx context.Context, apiKey string, file multipart.File, header *multipart.FileHeader) (*model.Attachment, error) {
	data, contentType, err := s.readAndValidate(file, header)
	if err != nil {
		return nil, err
	}

	data, err = s.normalize(data, contentType)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%s%s", apiKey, uuid.NewString(), model.ExtensionForContentType(contentType))
	if err := s.store.Save(ctx, path, data); err != nil {
		return nil, fmt.Errorf("save media file: %w", err)
	}

	attachment, err := s.attachmentRepo.Create(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("insert attachment: %w", err)
	}

	log.Infof("[MediaService] Stored attachment %d at %s", attachment.ID, path)
	return attachment, nil
}

// readAndValidate loads the upload into memory with size and type checks.
func (s *MediaService) readAndValidate(file multipart.File, header *multipart.FileHeader) ([]byte, string, error) {
	maxSize := s.cfg.MaxUploadSize
	if header.Size > maxSize {
		return nil, "", model.ErrFileTooLarge
	}

	limitedReader := io.LimitReader(file, maxSize+1)
	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, "", model.ErrFileTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" && len(data) > 0 {
		contentType = http.DetectContentType(data[:min(len(data), 512)])
	}
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	if !s.cfg.ImageTypeAllowed(contentType) {
		return nil, "", model.ErrInvalidImageType
	}

	return data, contentType, nil
}

// normalize downscales jpeg/png images whose longest side exceeds the
// configured bound. GIFs pass through untouched to preserve animation.
func (s *MediaService) normalize(data []byte, contentType string) ([]byte, error) {
	if contentType == model.ContentTypeGIF || s.cfg.MaxImageDimension <= 0 {
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, model.ErrNotAnImage
	}

	bounds := img.Bounds()
	maxDim := s.cfg.MaxImageDimension
	if bounds.Dx() <= maxDim && bounds.Dy() <= maxDim {
		return data, nil
	}

	resized := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)

	format := imaging.JPEG
	if contentType == model.ContentTypePNG {
		format = imaging.PNG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
