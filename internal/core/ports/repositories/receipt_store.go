package repositories

import "context"

// UploadOptions controls how a receipt blob is written.
type UploadOptions struct {
	Overwrite bool
}

// ReceiptStore is blob storage addressed by bucket and path.
type ReceiptStore interface {
	// Upload writes data at path inside bucket and returns the stored path.
	// Without Overwrite an existing blob yields apperrors.ErrConflict.
	Upload(ctx context.Context, bucket, path string, data []byte, opts UploadOptions) (string, error)

	// Download reads the blob at path; a missing blob yields apperrors.ErrNotFound.
	Download(ctx context.Context, bucket, path string) ([]byte, error)

	// Delete removes the blob at path. Deleting a missing blob is not an error.
	Delete(ctx context.Context, bucket, path string) error
}
