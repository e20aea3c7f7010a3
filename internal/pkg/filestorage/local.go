package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/arjun/srms/internal/pkg/logger"
)

// LocalStorage archives uploaded CSV files and materializes generated sample
// files on the local filesystem.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// BasePath returns the storage root, used for static serving.
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// SaveUpload archives an uploaded file under basePath/subPath with a
// uuid-based name (original names can collide across uploads). Returns the
// stored path.
func (ls *LocalStorage) SaveUpload(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	dir := ls.basePath
	if subPath != "" {
		dir = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", dir).Msg("Failed to create subdirectory")
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	dstPath := filepath.Join(dir, uuid.New().String()+filepath.Ext(fileHeader.Filename))
	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write uploaded file")
		return "", fmt.Errorf("failed to write uploaded file: %w", err)
	}

	logger.Debug().Str("filename", fileHeader.Filename).Str("path", dstPath).Msg("Upload archived")
	return dstPath, nil
}

// EnsureFile returns the path of name under the storage root, generating it
// with build on first use. Used for the downloadable per-year sample CSVs.
func (ls *LocalStorage) EnsureFile(name string, build func(w io.Writer) error) (string, error) {
	path := filepath.Join(ls.basePath, name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", path, err)
	}
	if err := build(f); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to generate file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close file %s: %w", path, err)
	}
	return path, nil
}
