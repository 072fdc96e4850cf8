package usecase

import (
	"context"

	"github.com/SainteOfficial/autohaus-service/internal/inventory/domain"
	"github.com/SainteOfficial/autohaus-service/internal/platform/logger"
)

// GalleryUsecase manages the stand-alone site gallery: watermarked uploads
// into object storage plus a database row per image, and row-first deletion.
type GalleryUsecase struct {
	repo     domain.GalleryRepository
	vehicles domain.VehicleRepository
	storage  domain.Storage
	uploads  *UploadUsecase
	logger   *logger.Logger
}

func NewGalleryUsecase(repo domain.GalleryRepository, vehicles domain.VehicleRepository, storage domain.Storage, uploads *UploadUsecase, log *logger.Logger) *GalleryUsecase {
	return &GalleryUsecase{
		repo:     repo,
		vehicles: vehicles,
		storage:  storage,
		uploads:  uploads,
		logger:   log,
	}
}

// AddImages uploads a batch into the gallery. For every file the order is
// fixed: upload object, resolve URL, insert the row referencing it. A file
// whose row insert fails is reported as a failure like an upload error.
// When the images belong to a vehicle, its brand and model are denormalized
// onto each row.
func (uc *GalleryUsecase) AddImages(ctx context.Context, files []UploadFile, category domain.GalleryCategory, vehicleID string, applyWatermark bool, progress ProgressFunc) ([]*domain.GalleryImage, *BatchResult, error) {
	if !category.Valid() {
		return nil, nil, domain.ErrInvalidCategory
	}

	var brand, model string
	if vehicleID != "" {
		vehicle, err := uc.vehicles.FindByID(ctx, vehicleID)
		if err != nil {
			return nil, nil, err
		}
		brand, model = vehicle.Brand, vehicle.Model
	}

	result, err := uc.uploads.UploadBatch(ctx, files, applyWatermark, progress)
	if err != nil {
		return nil, nil, err
	}

	images := make([]*domain.GalleryImage, 0, len(result.Uploaded))
	kept := result.Uploaded[:0]
	for _, f := range result.Uploaded {
		image := &domain.GalleryImage{
			URL:          f.URL,
			StorageKey:   f.Key,
			Category:     category,
			VehicleID:    vehicleID,
			VehicleBrand: brand,
			VehicleModel: model,
		}
		if err := uc.repo.Create(ctx, image); err != nil {
			uc.logger.Error("failed to insert gallery row, object kept in storage",
				"key", f.Key, "error", err)
			result.Failures = append(result.Failures, UploadError{Name: f.Name, Err: err})
			continue
		}
		kept = append(kept, f)
		images = append(images, image)
	}
	result.Uploaded = kept
	return images, result, nil
}

// ListImages returns the gallery, optionally restricted to one category.
func (uc *GalleryUsecase) ListImages(ctx context.Context, category domain.GalleryCategory) ([]*domain.GalleryImage, error) {
	if !category.Valid() {
		return nil, domain.ErrInvalidCategory
	}
	return uc.repo.FindAll(ctx, category)
}

// CategoryOptions derives the categories present in the loaded gallery.
func (uc *GalleryUsecase) CategoryOptions(ctx context.Context) ([]string, error) {
	images, err := uc.repo.FindAll(ctx, domain.CategoryUncategorized)
	if err != nil {
		return nil, err
	}
	return domain.DistinctCategories(images), nil
}

// DeleteImages removes gallery rows and then, best effort, their stored
// objects. A failed object removal leaves an orphan in storage; it is
// logged with the keys involved and not rolled back.
func (uc *GalleryUsecase) DeleteImages(ctx context.Context, ids []string) error {
	deleted, err := uc.repo.Delete(ctx, ids)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(deleted))
	for _, img := range deleted {
		if img.StorageKey != "" {
			keys = append(keys, img.StorageKey)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	if err := uc.storage.Remove(ctx, keys); err != nil {
		uc.logger.Warn("gallery rows deleted but object removal failed, orphaned objects remain",
			"keys", keys, "error", err)
	}
	return nil
}
