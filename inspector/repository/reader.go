package repository

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/viant/afs"
)

// Reader loads schema files for an extraction run; results must be stable for a path during one run
type Reader interface {
	Exists(ctx context.Context, path string) bool
	Read(ctx context.Context, path string) ([]byte, error)
}

// Service reads files through any afs supported scheme (file://, mem://, s3://, ...)
type Service struct {
	fs     afs.Service
	logger *slog.Logger
}

// Exists reports whether path can be read, absent paths are logged at debug level
func (s *Service) Exists(ctx context.Context, path string) bool {
	ok, err := s.fs.Exists(ctx, path)
	if err != nil {
		s.logger.Debug("failed to check file", "path", path, "error", err)
		return false
	}
	if !ok {
		s.logger.Debug("file not found", "path", path)
	}
	return ok
}

// Read downloads the whole file
func (s *Service) Read(ctx context.Context, path string) ([]byte, error) {
	data, err := s.fs.DownloadWithURL(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// NewReader creates an afs backed reader, nil arguments fall back to afs.New() and a discarding logger
func NewReader(fs afs.Service, logger *slog.Logger) *Service {
	if fs == nil {
		fs = afs.New()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{fs: fs, logger: logger}
}
