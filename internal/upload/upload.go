// Package upload wraps the three-step attachment flow: request a
// presigned URL, PUT the bytes directly to object storage, report the
// resulting key. Validation happens client-side before any network
// call.
package upload

import (
	"context"
	"fmt"
	"sync"

	"github.com/danialarif/gigdesk/internal/api"
	"github.com/danialarif/gigdesk/internal/domain"
)

// Size ceilings per file category, in bytes.
const (
	MaxImageBytes    = 10 << 20
	MaxDocumentBytes = 50 << 20
	MaxVideoBytes    = 100 << 20
	MaxDefaultBytes  = 50 << 20
)

// File is one upload candidate, fully buffered. Uploads are not
// resumable; a failed PUT is terminal for that file.
type File struct {
	Name     string
	MimeType string
	Data     []byte
}

// Options scope an upload batch.
type Options struct {
	Prefix     string
	Visibility domain.Visibility
	Category   domain.FileCategory

	// Progress, when set, is called with 100 after a successful
	// upload. There is no mid-transfer granularity.
	Progress func(name string, pct int)
}

// Result is the outcome for one file. URL is set only for public
// uploads; private files yield a key that needs the signed-download
// exchange.
type Result struct {
	Name string
	Key  string
	URL  string
	Err  error
}

// Success reports whether this file made it to storage.
func (r Result) Success() bool { return r.Err == nil }

// Backend is the slice of the API client the uploader needs.
type Backend interface {
	PresignUpload(ctx context.Context, req api.PresignRequest) (*api.PresignResponse, error)
	PutObject(ctx context.Context, uploadURL, contentType string, data []byte) error
}

// Uploader runs the presign-then-PUT flow.
type Uploader struct {
	backend Backend
}

// New creates an Uploader over the given backend.
func New(backend Backend) *Uploader {
	return &Uploader{backend: backend}
}

// MaxBytes returns the size ceiling for a category.
func MaxBytes(category domain.FileCategory) int64 {
	switch category {
	case domain.CategoryImage:
		return MaxImageBytes
	case domain.CategoryDocument:
		return MaxDocumentBytes
	case domain.CategoryVideo:
		return MaxVideoBytes
	default:
		return MaxDefaultBytes
	}
}

// Validate checks a file against the category ceiling. It runs before
// any network call so oversized files fail fast with a specific error.
func Validate(f File, category domain.FileCategory) error {
	if f.Name == "" {
		return fmt.Errorf("file name is required")
	}
	if len(f.Data) == 0 {
		return fmt.Errorf("%s: file is empty", f.Name)
	}
	if limit := MaxBytes(category); int64(len(f.Data)) > limit {
		return fmt.Errorf("%s: file size %d exceeds the %d MB limit", f.Name, len(f.Data), limit>>20)
	}
	return nil
}

// Upload validates and uploads one file.
func (u *Uploader) Upload(ctx context.Context, f File, opts Options) Result {
	res := Result{Name: f.Name}

	if err := Validate(f, opts.Category); err != nil {
		res.Err = err
		return res
	}

	grant, err := u.backend.PresignUpload(ctx, api.PresignRequest{
		FileName:   f.Name,
		MimeType:   f.MimeType,
		FileSize:   int64(len(f.Data)),
		Prefix:     opts.Prefix,
		Visibility: opts.Visibility,
		Category:   opts.Category,
	})
	if err != nil {
		res.Err = fmt.Errorf("%s: requesting upload URL: %w", f.Name, err)
		return res
	}

	if err := u.backend.PutObject(ctx, grant.UploadURL, f.MimeType, f.Data); err != nil {
		res.Err = fmt.Errorf("%s: %w", f.Name, err)
		return res
	}

	res.Key = grant.Key
	if opts.Visibility == domain.VisibilityPublic {
		res.URL = grant.AccessURL
	}
	if opts.Progress != nil {
		opts.Progress(f.Name, 100)
	}
	return res
}

// UploadAll uploads every file concurrently and returns one result per
// input, preserving input order. Partial failure is allowed; callers
// filter on Success.
func (u *Uploader) UploadAll(ctx context.Context, files []File, opts Options) []Result {
	results := make([]Result, len(files))
	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f File) {
			defer wg.Done()
			results[i] = u.Upload(ctx, f, opts)
		}(i, f)
	}
	wg.Wait()
	return results
}
