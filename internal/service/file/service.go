package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/clinicore/attendance-backend-go/internal/pkg/storage"
	"github.com/clinicore/attendance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type FileService interface {
	// Evidence image attached to a permission request
	UploadEvidenceImage(ctx context.Context, staffID string, date time.Time, file io.Reader, filename string) (string, error)

	// Organization logo uploads
	UploadOrganizationLogo(ctx context.Context, orgID string, file io.Reader, filename string) (string, error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadEvidenceImage stores the image a staff member attaches to a
// permission request. The stored path is keyed by submission date so
// evidence for one day stays together.
func (s *fileServiceImpl) UploadEvidenceImage(ctx context.Context, staffID string, date time.Time, file io.Reader, filename string) (string, error) {
	if !validator.IsAllowedImageExt(filename) {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}
	ext := strings.ToLower(filepath.Ext(filename))

	uniqueID := uuid.New().String()
	newFilename := fmt.Sprintf("%s-%s%s", staffID, uniqueID, ext)
	path := filepath.Join("evidence", date.Format("2006-01-02"), newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentTypeFor(ext))
	if err != nil {
		return "", fmt.Errorf("failed to upload evidence image: %w", err)
	}

	return uploadedPath, nil
}

// UploadOrganizationLogo uploads an organization logo.
func (s *fileServiceImpl) UploadOrganizationLogo(ctx context.Context, orgID string, file io.Reader, filename string) (string, error) {
	if !validator.IsAllowedImageExt(filename) {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}
	ext := strings.ToLower(filepath.Ext(filename))

	uniqueID := uuid.New().String()
	newFilename := fmt.Sprintf("%s-%s%s", orgID, uniqueID, ext)
	path := filepath.Join("logos", orgID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentTypeFor(ext))
	if err != nil {
		return "", fmt.Errorf("failed to upload organization logo: %w", err)
	}

	return uploadedPath, nil
}

// DeleteFile removes a file from storage.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	if err := s.storage.Delete(ctx, path); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetFileURL generates a URL for accessing a stored file.
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	url, err := s.storage.GetURL(ctx, path, expiry)
	if err != nil {
		return "", fmt.Errorf("failed to get file URL: %w", err)
	}
	return url, nil
}

func contentTypeFor(ext string) string {
	if ext == ".png" {
		return "image/png"
	}
	return "image/jpeg"
}
