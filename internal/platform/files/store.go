package files

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"

	"github.com/imamik/colonyctl/internal/platform/s3"
)

// ErrObjectStoreUnavailable is returned for s3:// paths when no object
// storage credentials are configured.
var ErrObjectStoreUnavailable = errors.New("object storage is not configured")

// ObjectStore is the subset of the S3 client used by Store.
type ObjectStore interface {
	Upload(ctx context.Context, loc s3.Location, data []byte) error
	Download(ctx context.Context, loc s3.Location) ([]byte, error)
}

// Store writes to and reads from local files and object storage.
type Store struct {
	objects ObjectStore
	log     logr.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithObjectStore enables s3:// paths.
func WithObjectStore(objects ObjectStore) Option {
	return func(s *Store) {
		s.objects = objects
	}
}

// WithLogger sets the logger.
func WithLogger(log logr.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore creates a Store.
func NewStore(opts ...Option) *Store {
	s := &Store{log: logr.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WriteFile writes content to path. Local files are created with 0600
// permissions and missing parent directories are created.
func (s *Store) WriteFile(ctx context.Context, path string, content []byte) error {
	if s3.IsURL(path) {
		loc, err := s.location(path)
		if err != nil {
			return err
		}
		if err := s.objects.Upload(ctx, loc, content); err != nil {
			return fmt.Errorf("failed to upload %s: %w", path, err)
		}
		s.log.V(1).Info("uploaded object", "location", loc.String(), "bytes", len(content))
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	s.log.V(1).Info("wrote file", "path", path, "bytes", len(content))
	return nil
}

// ReadFile reads the file or object at path. Missing files and objects
// match fs.ErrNotExist.
func (s *Store) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if s3.IsURL(path) {
		loc, err := s.location(path)
		if err != nil {
			return nil, err
		}
		data, err := s.objects.Download(ctx, loc)
		if err != nil {
			if s3.IsNotFound(err) {
				return nil, fmt.Errorf("%s: %w", path, fs.ErrNotExist)
			}
			return nil, fmt.Errorf("failed to download %s: %w", path, err)
		}
		return data, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}

func (s *Store) location(path string) (s3.Location, error) {
	if s.objects == nil {
		return s3.Location{}, fmt.Errorf("cannot access %s: %w", path, ErrObjectStoreUnavailable)
	}
	return s3.ParseURL(path)
}
