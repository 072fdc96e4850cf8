package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/SainteOfficial/autohaus-service/internal/inventory/domain"
	"github.com/SainteOfficial/autohaus-service/internal/platform/logger"
	"github.com/SainteOfficial/autohaus-service/internal/watermark"
)

var (
	ErrTooManyFiles    = errors.New("too many files in one batch")
	ErrFileTooLarge    = errors.New("file exceeds the size limit")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrNoFiles         = errors.New("no files to upload")
)

// allowedTypes maps the accepted MIME types to a canonical extension used
// when the original filename has none.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadFile is one pending file handed in by the HTTP layer.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadedFile is one successfully stored file.
type UploadedFile struct {
	Name        string
	Key         string
	URL         string
	Watermarked bool
	// Warning is set when the watermark step failed and the original
	// bytes were uploaded instead.
	Warning string
}

// UploadError is a per-file failure inside a batch.
type UploadError struct {
	Name string
	Err  error
}

// BatchResult is the settled outcome of a batch: every file ends up either
// in Uploaded or in Failures.
type BatchResult struct {
	Uploaded []UploadedFile
	Failures []UploadError
}

// URLs returns the public URLs of the successful uploads, in input order.
func (r *BatchResult) URLs() []string {
	urls := make([]string, 0, len(r.Uploaded))
	for _, f := range r.Uploaded {
		urls = append(urls, f.URL)
	}
	return urls
}

// ProgressFunc receives (completed, total) after every settled file,
// successful or not.
type ProgressFunc func(completed, total int)

// Watermarker composites the dealer logo onto an image. Implemented by the
// watermark package.
type Watermarker interface {
	Apply(data []byte, contentType string) ([]byte, error)
}

// UploadUsecase validates pending files at the drop boundary and runs the
// per-file pipeline: optional watermark, upload under a randomized key,
// public URL resolution. Files in a batch upload concurrently; one file's
// failure never aborts its siblings.
type UploadUsecase struct {
	storage     domain.Storage
	watermarker Watermarker
	maxCount    int
	maxBytes    int64
	logger      *logger.Logger

	uploading atomic.Bool
}

func NewUploadUsecase(storage domain.Storage, wm Watermarker, maxCount int, maxBytes int64, log *logger.Logger) *UploadUsecase {
	return &UploadUsecase{
		storage:     storage,
		watermarker: wm,
		maxCount:    maxCount,
		maxBytes:    maxBytes,
		logger:      log,
	}
}

// Uploading reports whether a batch is currently in flight. The HTTP layer
// uses it to refuse overlapping admin uploads.
func (uc *UploadUsecase) Uploading() bool {
	return uc.uploading.Load()
}

// Validate enforces the drop-boundary constraints: batch size, per-file
// byte limit and accepted MIME types. Nothing is uploaded before it passes.
func (uc *UploadUsecase) Validate(files []UploadFile) error {
	if len(files) == 0 {
		return ErrNoFiles
	}
	if uc.maxCount > 0 && len(files) > uc.maxCount {
		return fmt.Errorf("%w: %d > %d", ErrTooManyFiles, len(files), uc.maxCount)
	}
	for _, f := range files {
		if _, ok := allowedTypes[f.ContentType]; !ok {
			return fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, f.Name, f.ContentType)
		}
		if uc.maxBytes > 0 && int64(len(f.Data)) > uc.maxBytes {
			return fmt.Errorf("%w: %s (%d bytes)", ErrFileTooLarge, f.Name, len(f.Data))
		}
	}
	return nil
}

// UploadBatch uploads the files concurrently and settles when every file
// has either a URL or a recorded failure. Each successful file went through
// the fixed sequence: watermark (optional, fail-soft), upload, URL.
func (uc *UploadUsecase) UploadBatch(ctx context.Context, files []UploadFile, applyWatermark bool, progress ProgressFunc) (*BatchResult, error) {
	if err := uc.Validate(files); err != nil {
		return nil, err
	}

	uc.uploading.Store(true)
	defer uc.uploading.Store(false)

	type slot struct {
		uploaded *UploadedFile
		failure  *UploadError
	}

	slots := make([]slot, len(files))
	total := len(files)
	var completed atomic.Int64

	var mu sync.Mutex
	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f UploadFile) {
			defer wg.Done()
			defer func() {
				done := int(completed.Add(1))
				if progress != nil {
					mu.Lock()
					progress(done, total)
					mu.Unlock()
				}
			}()

			uploaded, err := uc.uploadOne(ctx, f, applyWatermark)
			if err != nil {
				uc.logger.Error("file upload failed", "file", f.Name, "error", err)
				slots[i] = slot{failure: &UploadError{Name: f.Name, Err: err}}
				return
			}
			slots[i] = slot{uploaded: uploaded}
		}(i, f)
	}
	wg.Wait()

	result := &BatchResult{}
	for _, s := range slots {
		if s.uploaded != nil {
			result.Uploaded = append(result.Uploaded, *s.uploaded)
		} else if s.failure != nil {
			result.Failures = append(result.Failures, *s.failure)
		}
	}
	return result, nil
}

func (uc *UploadUsecase) uploadOne(ctx context.Context, f UploadFile, applyWatermark bool) (*UploadedFile, error) {
	data := f.Data
	uploaded := &UploadedFile{Name: f.Name}

	if applyWatermark && uc.watermarker != nil {
		marked, err := uc.watermarker.Apply(f.Data, f.ContentType)
		switch {
		case err == nil:
			data = marked
			uploaded.Watermarked = true
		case errors.Is(err, watermark.ErrUnsupportedFormat), errors.Is(err, watermark.ErrLogoUnavailable):
			// Fail soft: the original file is uploaded unmarked.
			uploaded.Warning = fmt.Sprintf("watermark skipped: %v", err)
			uc.logger.Warn("watermark skipped, uploading original", "file", f.Name, "error", err)
		default:
			uploaded.Warning = fmt.Sprintf("watermark failed: %v", err)
			uc.logger.Warn("watermark failed, uploading original", "file", f.Name, "error", err)
		}
	}

	key := storageKey(f.Name, f.ContentType)
	url, err := uc.storage.Upload(ctx, key, data, f.ContentType)
	if err != nil {
		return nil, err
	}
	uploaded.Key = key
	uploaded.URL = url
	return uploaded, nil
}

// storageKey builds a randomized object key preserving the original file
// extension, so uploading the same file twice yields two distinct objects.
func storageKey(name, contentType string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		ext = allowedTypes[contentType]
	}
	return fmt.Sprintf("vehicles/%s%s", uuid.New().String(), ext)
}
