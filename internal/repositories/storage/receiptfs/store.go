// Package receiptfs stores receipt blobs on an afero filesystem, one
// directory per bucket.
package receiptfs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/Omniportal2025/omniportal-sub001/internal/apperrors"
	portsrepo "github.com/Omniportal2025/omniportal-sub001/internal/core/ports/repositories"
	"github.com/spf13/afero"
)

// Store implements portsrepo.ReceiptStore.
type Store struct {
	fs afero.Fs
}

var _ portsrepo.ReceiptStore = (*Store)(nil)

// New returns a store rooted at fsys. Use NewOS for a directory on disk.
func New(fsys afero.Fs) *Store {
	return &Store{fs: fsys}
}

// NewOS returns a store rooted at dir on the local disk, creating it if needed.
func NewOS(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.NewStoreError("failed to create receipt storage root "+dir, err)
	}
	return New(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

// objectName validates bucket and blob path and joins them. Neither may
// escape the storage root.
func objectName(bucket, blobPath string) (string, error) {
	if bucket == "" || strings.ContainsAny(bucket, `/\`) || strings.Trim(bucket, ".") == "" {
		return "", apperrors.NewValidationFailedError("invalid receipt bucket " + bucket)
	}
	if blobPath == "" || strings.HasPrefix(blobPath, "/") || strings.Contains(blobPath, `\`) {
		return "", apperrors.NewValidationFailedError("invalid receipt path " + blobPath)
	}
	cleaned := path.Clean(blobPath)
	if cleaned != blobPath || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", apperrors.NewValidationFailedError("invalid receipt path " + blobPath)
	}
	return path.Join("/", bucket, cleaned), nil
}

func (s *Store) Upload(ctx context.Context, bucket, blobPath string, data []byte, opts portsrepo.UploadOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", apperrors.NewStoreError("receipt upload cancelled", err)
	}
	name, err := objectName(bucket, blobPath)
	if err != nil {
		return "", err
	}
	if err := s.fs.MkdirAll(path.Dir(name), 0o755); err != nil {
		return "", apperrors.NewStoreError("failed to create receipt directory", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !opts.Overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := s.fs.OpenFile(name, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", apperrors.NewConflictError("receipt " + bucket + "/" + blobPath + " already exists")
		}
		return "", apperrors.NewStoreError("failed to open receipt "+bucket+"/"+blobPath, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(name)
		return "", apperrors.NewStoreError("failed to write receipt "+bucket+"/"+blobPath, err)
	}
	if err := f.Close(); err != nil {
		return "", apperrors.NewStoreError("failed to close receipt "+bucket+"/"+blobPath, err)
	}
	return blobPath, nil
}

func (s *Store) Download(ctx context.Context, bucket, blobPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewStoreError("receipt download cancelled", err)
	}
	name, err := objectName(bucket, blobPath)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewNotFoundError("receipt " + bucket + "/" + blobPath + " not found")
		}
		return nil, apperrors.NewStoreError("failed to read receipt "+bucket+"/"+blobPath, err)
	}
	return data, nil
}

func (s *Store) Delete(ctx context.Context, bucket, blobPath string) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewStoreError("receipt delete cancelled", err)
	}
	name, err := objectName(bucket, blobPath)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperrors.NewStoreError("failed to delete receipt "+bucket+"/"+blobPath, err)
	}
	return nil
}
