package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

const profilePhotoFolder = "sevahub/workers"

// StorageService stores media for accounts.
type StorageService interface {
	// UploadProfilePhoto stores the image under the account id and returns its public URL.
	UploadProfilePhoto(ctx context.Context, accountID string, file io.Reader) (string, error)
	// DeleteFile removes an uploaded asset by public id.
	DeleteFile(ctx context.Context, publicID string) error
}

// CloudinaryStorage implements StorageService on Cloudinary.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	logger *zap.Logger
}

// NewStorageService creates a Cloudinary-backed StorageService.
func NewStorageService(cld *cloudinary.Cloudinary, logger *zap.Logger) *CloudinaryStorage {
	return &CloudinaryStorage{cld: cld, logger: logger}
}

// UploadProfilePhoto replaces the account's photo; one asset per account.
func (s *CloudinaryStorage) UploadProfilePhoto(ctx context.Context, accountID string, file io.Reader) (string, error) {
	params := uploader.UploadParams{
		Folder:       profilePhotoFolder,
		PublicID:     accountID,
		Overwrite:    api.Bool(true),
		ResourceType: "image",
	}
	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return "", fmt.Errorf("storage: failed to upload profile photo: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("storage: upload rejected: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("storage: no URL returned for %s", accountID)
	}
	s.logger.Info("Profile photo uploaded", zap.String("accountId", accountID), zap.String("publicId", result.PublicID))
	return result.SecureURL, nil
}

// DeleteFile deletes a file from Cloudinary given its public ID.
func (s *CloudinaryStorage) DeleteFile(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("storage: failed to delete file: %w", err)
	}
	return nil
}
