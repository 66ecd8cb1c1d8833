package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"microblog/internal/config"
	"microblog/internal/model"
)

// mockStore implements storage.Store in memory and records the order of
// operations, which lets tests assert the write-file-then-insert-row
// contract.
type mockStore struct {
	saved   map[string][]byte
	deleted []string
	saveErr error
}

func (m *mockStore) Save(_ context.Context, path string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.saved == nil {
		m.saved = make(map[string][]byte)
	}
	m.saved[path] = data
	return nil
}

func (m *mockStore) Read(_ context.Context, path string) ([]byte, error) {
	data, ok := m.saved[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func (m *mockStore) Delete(_ context.Context, path string) error {
	m.deleted = append(m.deleted, path)
	return nil
}

// mockAttachmentRepository implements repository.AttachmentRepository.
type mockAttachmentRepository struct {
	createFn func(ctx context.Context, imagePath string) (*model.Attachment, error)

	createdPaths []string
}

func (m *mockAttachmentRepository) Create(ctx context.Context, imagePath string) (*model.Attachment, error) {
	m.createdPaths = append(m.createdPaths, imagePath)
	if m.createFn != nil {
		return m.createFn(ctx, imagePath)
	}
	return &model.Attachment{ID: 1, ImagePath: imagePath}, nil
}

func (m *mockAttachmentRepository) GetByID(ctx context.Context, id int64) (*model.Attachment, error) {
	return nil, model.ErrAttachmentNotFound
}

// memFile adapts a bytes.Reader to multipart.File.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func uploadParts(t *testing.T, data []byte, contentType string) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	header := &multipart.FileHeader{
		Filename: "upload",
		Size:     int64(len(data)),
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
	return memFile{bytes.NewReader(data)}, header
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func mediaCfg() config.MediaConfig {
	return config.MediaConfig{
		MaxUploadSize:     5 * 1024 * 1024,
		AllowedImageTypes: []string{"image/jpeg", "image/png", "image/gif"},
		MaxImageDimension: 64,
	}
}

func TestMediaService_Upload_WritesFileBeforeRow(t *testing.T) {
	store := &mockStore{}
	repo := &mockAttachmentRepository{
		createFn: func(ctx context.Context, imagePath string) (*model.Attachment, error) {
			// The file must already be in the store when the row is inserted.
			if _, ok := store.saved[imagePath]; !ok {
				t.Error("attachment row inserted before the file was saved")
			}
			return &model.Attachment{ID: 7, ImagePath: imagePath}, nil
		},
	}
	svc := NewMediaService(repo, store, mediaCfg())

	file, header := uploadParts(t, pngBytes(t, 8, 8), "image/png")
	attachment, err := svc.Upload(context.Background(), "alice-key", file, header)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if attachment.ID != 7 {
		t.Errorf("attachment id = %d, want 7", attachment.ID)
	}
	if !strings.HasPrefix(attachment.ImagePath, "alice-key/") {
		t.Errorf("path = %q, want per-user directory prefix", attachment.ImagePath)
	}
	if !strings.HasSuffix(attachment.ImagePath, ".png") {
		t.Errorf("path = %q, want .png extension", attachment.ImagePath)
	}
}

func TestMediaService_Upload_UniquePaths(t *testing.T) {
	store := &mockStore{}
	repo := &mockAttachmentRepository{}
	svc := NewMediaService(repo, store, mediaCfg())

	for i := 0; i < 2; i++ {
		file, header := uploadParts(t, pngBytes(t, 8, 8), "image/png")
		if _, err := svc.Upload(context.Background(), "k", file, header); err != nil {
			t.Fatalf("upload %d: %v", i, err)
		}
	}
	if repo.createdPaths[0] == repo.createdPaths[1] {
		t.Errorf("two uploads produced the same path %q", repo.createdPaths[0])
	}
}

func TestMediaService_Upload_RejectsOversize(t *testing.T) {
	cfg := mediaCfg()
	cfg.MaxUploadSize = 16
	store := &mockStore{}
	repo := &mockAttachmentRepository{}
	svc := NewMediaService(repo, store, cfg)

	file, header := uploadParts(t, pngBytes(t, 8, 8), "image/png")
	_, err := svc.Upload(context.Background(), "k", file, header)
	if !errors.Is(err, model.ErrFileTooLarge) {
		t.Errorf("error = %v, want %v", err, model.ErrFileTooLarge)
	}
	if len(store.saved) != 0 || len(repo.createdPaths) != 0 {
		t.Error("rejected upload must not reach store or repository")
	}
}

func TestMediaService_Upload_RejectsDisallowedType(t *testing.T) {
	store := &mockStore{}
	repo := &mockAttachmentRepository{}
	svc := NewMediaService(repo, store, mediaCfg())

	file, header := uploadParts(t, []byte("plain text"), "text/plain")
	_, err := svc.Upload(context.Background(), "k", file, header)
	if !errors.Is(err, model.ErrInvalidImageType) {
		t.Errorf("error = %v, want %v", err, model.ErrInvalidImageType)
	}
}

func TestMediaService_Upload_RejectsUndecodableImage(t *testing.T) {
	store := &mockStore{}
	repo := &mockAttachmentRepository{}
	svc := NewMediaService(repo, store, mediaCfg())

	// Declared as png but not decodable.
	file, header := uploadParts(t, []byte("not an image"), "image/png")
	_, err := svc.Upload(context.Background(), "k", file, header)
	if !errors.Is(err, model.ErrNotAnImage) {
		t.Errorf("error = %v, want %v", err, model.ErrNotAnImage)
	}
}

func TestMediaService_Upload_DownscalesLargeImages(t *testing.T) {
	cfg := mediaCfg()
	cfg.MaxImageDimension = 16
	store := &mockStore{}
	repo := &mockAttachmentRepository{}
	svc := NewMediaService(repo, store, cfg)

	file, header := uploadParts(t, pngBytes(t, 64, 32), "image/png")
	attachment, err := svc.Upload(context.Background(), "k", file, header)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	stored, err := store.Read(context.Background(), attachment.ImagePath)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	img, err := imaging.Decode(bytes.NewReader(stored))
	if err != nil {
		t.Fatalf("decode stored file: %v", err)
	}
	if img.Bounds().Dx() > 16 || img.Bounds().Dy() > 16 {
		t.Errorf("stored image is %dx%d, want both sides <= 16",
			img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestMediaService_Upload_GIFPassesThrough(t *testing.T) {
	store := &mockStore{}
	repo := &mockAttachmentRepository{}
	svc := NewMediaService(repo, store, mediaCfg())

	// GIFs are stored untouched so animation survives; the decode check is
	// skipped for them.
	data := []byte("GIF89a fake payload")
	file, header := uploadParts(t, data, "image/gif")
	attachment, err := svc.Upload(context.Background(), "k", file, header)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	stored := store.saved[attachment.ImagePath]
	if !bytes.Equal(stored, data) {
		t.Error("gif bytes were modified on upload")
	}
}

func TestMediaService_Upload_StoreFailureSkipsRow(t *testing.T) {
	store := &mockStore{saveErr: errors.New("disk full")}
	repo := &mockAttachmentRepository{}
	svc := NewMediaService(repo, store, mediaCfg())

	file, header := uploadParts(t, pngBytes(t, 8, 8), "image/png")
	_, err := svc.Upload(context.Background(), "k", file, header)
	if err == nil {
		t.Fatal("expected an error when the store fails")
	}
	// A failed write must never leave a row pointing at a missing file.
	if len(repo.createdPaths) != 0 {
		t.Error("attachment row inserted despite storage failure")
	}
}
