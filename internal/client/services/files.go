package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/client"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/models"
)

// FileService uploads local files so they can be attached to posts or the
// profile.
type FileService interface {
	Upload(ctx context.Context, path string) (*models.ImageRef, error)
}

type fileService struct {
	client client.Client
}

func NewFileService(client client.Client) FileService {
	return &fileService{client: client}
}

func (s *fileService) Upload(ctx context.Context, path string) (*models.ImageRef, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	ref, err := s.client.UploadFile(ctx, filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", path, err)
	}
	return ref, nil
}
