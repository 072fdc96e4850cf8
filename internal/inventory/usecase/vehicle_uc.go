package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/SainteOfficial/autohaus-service/internal/inventory/domain"
	"github.com/SainteOfficial/autohaus-service/internal/inventory/draft"
	"github.com/SainteOfficial/autohaus-service/internal/platform/logger"
)

// VehicleCache is the read-through cache in front of the vehicle repository.
// A (nil, nil) return is a miss. Implemented by the Redis adapter.
type VehicleCache interface {
	GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error)
	SetVehicle(ctx context.Context, vehicle *domain.Vehicle) error
	GetAll(ctx context.Context) ([]*domain.Vehicle, error)
	SetAll(ctx context.Context, vehicles []*domain.Vehicle) error
	Invalidate(ctx context.Context, id string) error
}

// EventPublisher broadcasts lifecycle events. Implemented by the NATS adapter.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
}

// Event subjects published by the inventory usecases.
const (
	SubjectVehicleCreated = "vehicle.created"
	SubjectVehicleUpdated = "vehicle.updated"
	SubjectVehicleDeleted = "vehicle.deleted"
	SubjectVehicleSold    = "vehicle.sold"
	SubjectInquiryCreated = "inquiry.created"
)

// VehicleUsecase owns the vehicle catalog: public listing with the in-memory
// filter engine, and the admin draft save/patch/delete flow.
type VehicleUsecase struct {
	repo    domain.VehicleRepository
	cache   VehicleCache
	events  EventPublisher
	uploads *UploadUsecase
	logger  *logger.Logger
}

func NewVehicleUsecase(repo domain.VehicleRepository, cache VehicleCache, events EventPublisher, uploads *UploadUsecase, log *logger.Logger) *VehicleUsecase {
	return &VehicleUsecase{
		repo:    repo,
		cache:   cache,
		events:  events,
		uploads: uploads,
		logger:  log,
	}
}

// publish sends a lifecycle event; failures are logged and swallowed so the
// write that triggered them still succeeds.
func (uc *VehicleUsecase) publish(ctx context.Context, subject string, payload interface{}) {
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(ctx, subject, payload); err != nil {
		uc.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

func (uc *VehicleUsecase) invalidate(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, id); err != nil {
		uc.logger.Warn("cache invalidation failed", "vehicle_id", id, "error", err)
	}
}

// loadAll fetches the full catalog, going through the cache when possible.
func (uc *VehicleUsecase) loadAll(ctx context.Context) ([]*domain.Vehicle, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetAll(ctx)
		if err != nil {
			uc.logger.Warn("catalog cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	vehicles, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.SetAll(ctx, vehicles); err != nil {
			uc.logger.Warn("catalog cache write failed", "error", err)
		}
	}
	return vehicles, nil
}

// ListVehicles materializes the catalog and runs the filter/sort engine
// over it.
func (uc *VehicleUsecase) ListVehicles(ctx context.Context, f domain.Filter) ([]*domain.Vehicle, error) {
	vehicles, err := uc.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.ApplyFilter(vehicles, f), nil
}

// FilterOptions derives the distinct brand and fuel-type options from the
// currently loaded catalog, not from the database.
func (uc *VehicleUsecase) FilterOptions(ctx context.Context) (brands, fuelTypes []string, err error) {
	vehicles, err := uc.loadAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return domain.DistinctBrands(vehicles), domain.DistinctFuelTypes(vehicles), nil
}

func (uc *VehicleUsecase) GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetVehicle(ctx, id)
		if err != nil {
			uc.logger.Warn("vehicle cache read failed", "vehicle_id", id, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	vehicle, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.SetVehicle(ctx, vehicle); err != nil {
			uc.logger.Warn("vehicle cache write failed", "vehicle_id", id, "error", err)
		}
	}
	return vehicle, nil
}

// SaveDraft validates and persists an editor draft. An empty draft ID
// creates a new vehicle (the repository assigns the id); a present ID
// updates the existing record, last write wins. Validation failures abort
// before any repository call.
func (uc *VehicleUsecase) SaveDraft(ctx context.Context, d draft.Draft) (*domain.Vehicle, error) {
	if err := draft.Validate(d); err != nil {
		return nil, err
	}

	vehicle := draft.ToVehicle(d)

	if vehicle.ID == "" {
		if err := uc.repo.Create(ctx, vehicle); err != nil {
			uc.logger.Error("failed to create vehicle", "error", err)
			return nil, err
		}
		uc.invalidate(ctx, vehicle.ID)
		uc.publish(ctx, SubjectVehicleCreated, vehicle)
		uc.logger.Info("vehicle created", "vehicle_id", vehicle.ID, "title", vehicle.Title())
		return vehicle, nil
	}

	previous, err := uc.repo.FindByID(ctx, vehicle.ID)
	if err != nil {
		return nil, err
	}
	vehicle.CreatedAt = previous.CreatedAt
	if err := uc.repo.Update(ctx, vehicle); err != nil {
		uc.logger.Error("failed to update vehicle", "vehicle_id", vehicle.ID, "error", err)
		return nil, err
	}
	uc.invalidate(ctx, vehicle.ID)
	uc.publish(ctx, SubjectVehicleUpdated, vehicle)
	if previous.Status != domain.StatusSold && vehicle.Status == domain.StatusSold {
		uc.publish(ctx, SubjectVehicleSold, vehicle)
	}
	return vehicle, nil
}

// PatchVehicle applies a partial update through the draft merge functions
// and persists the result.
func (uc *VehicleUsecase) PatchVehicle(ctx context.Context, id string, p draft.Patch) (*domain.Vehicle, error) {
	current, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := draft.Apply(draft.FromVehicle(current), p)
	d.ID = id
	return uc.SaveDraft(ctx, d)
}

// UpdateStatus flips a vehicle between available and sold.
func (uc *VehicleUsecase) UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) (*domain.Vehicle, error) {
	if status != domain.StatusAvailable && status != domain.StatusSold {
		return nil, domain.ErrInvalidVehicleData
	}
	return uc.PatchVehicle(ctx, id, draft.Patch{Status: &status})
}

// DeleteVehicle removes the vehicle row. Stored images referenced by the
// vehicle stay in the object store; the gallery owns image lifecycle.
func (uc *VehicleUsecase) DeleteVehicle(ctx context.Context, id string) error {
	vehicle, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("failed to delete vehicle", "vehicle_id", id, "error", err)
		return err
	}
	uc.invalidate(ctx, id)
	uc.publish(ctx, SubjectVehicleDeleted, vehicle)
	uc.logger.Info("vehicle deleted", "vehicle_id", id)
	return nil
}

// AddImages uploads photos for a vehicle and appends the resulting URLs to
// its image list. Per-file failures are reported in the result without
// failing the batch; the vehicle is updated with whatever succeeded.
func (uc *VehicleUsecase) AddImages(ctx context.Context, id string, files []UploadFile, applyWatermark bool, progress ProgressFunc) (*BatchResult, error) {
	vehicle, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := uc.uploads.UploadBatch(ctx, files, applyWatermark, progress)
	if err != nil {
		return nil, err
	}
	if len(result.Uploaded) == 0 {
		return result, nil
	}

	vehicle.Images = append(vehicle.Images, result.URLs()...)
	vehicle.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, id)
	uc.publish(ctx, SubjectVehicleUpdated, vehicle)
	return result, nil
}

// IsNotFound reports whether err is any of the domain not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrVehicleNotFound) ||
		errors.Is(err, domain.ErrImageNotFound) ||
		errors.Is(err, domain.ErrInquiryNotFound) ||
		errors.Is(err, domain.ErrUserNotFound)
}
