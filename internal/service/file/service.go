package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/staffhub-id/leave-backend-go/internal/pkg/storage"
)

// ErrInvalidAttachmentType rejects uploads outside the accepted document
// formats.
var ErrInvalidAttachmentType = fmt.Errorf("invalid file type: only pdf, jpg, jpeg, png allowed")

type FileService interface {
	// UploadLeaveAttachment stores a supporting document and returns its
	// storage path, used as the attachment id on a request.
	UploadLeaveAttachment(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

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

var attachmentContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// UploadLeaveAttachment uploads a sick note or similar supporting document
func (s *fileServiceImpl) UploadLeaveAttachment(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := attachmentContentTypes[ext]
	if !ok {
		return "", ErrInvalidAttachmentType
	}

	uniqueID := uuid.New().String()
	newFilename := fmt.Sprintf("%s-%s%s", employeeID, uniqueID, ext)
	path := filepath.Join("leave-attachments", employeeID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload leave attachment: %w", err)
	}

	return uploadedPath, nil
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	if err := s.storage.Delete(ctx, path); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	url, err := s.storage.GetURL(ctx, path, expiry)
	if err != nil {
		return "", fmt.Errorf("failed to get file url: %w", err)
	}
	return url, nil
}
