package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SainteOfficial/autohaus-service/internal/inventory/domain"
	"github.com/SainteOfficial/autohaus-service/internal/inventory/draft"
	"github.com/SainteOfficial/autohaus-service/internal/platform/logger"
)

func validDraft() draft.Draft {
	return draft.Draft{
		Brand:   "Audi",
		Model:   "A6",
		Year:    2021,
		Price:   42000,
		Mileage: 31000,
		Status:  domain.StatusAvailable,
	}
}

func newVehicleUC(repo *fakeVehicleRepo, cache VehicleCache, events EventPublisher) *VehicleUsecase {
	uploads := NewUploadUsecase(newFakeStorage(), nil, 10, 1024, logger.NewNop())
	return NewVehicleUsecase(repo, cache, events, uploads, logger.NewNop())
}

func TestSaveDraft_CreateAssignsID(t *testing.T) {
	repo := newFakeVehicleRepo()
	events := &fakePublisher{}
	uc := newVehicleUC(repo, nil, events)

	vehicle, err := uc.SaveDraft(context.Background(), validDraft())
	require.NoError(t, err)
	assert.NotEmpty(t, vehicle.ID)
	assert.Equal(t, []string{SubjectVehicleCreated}, events.published())
}

func TestSaveDraft_InvalidDraftNeverTouchesRepo(t *testing.T) {
	repo := newFakeVehicleRepo()
	uc := newVehicleUC(repo, nil, nil)

	d := validDraft()
	d.Model = ""
	_, err := uc.SaveDraft(context.Background(), d)

	var verr *draft.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, repo.callCount(), "validation must fail before any repository call")
}

func TestSaveDraft_UpdateKeepsCreatedAtAndPublishesSold(t *testing.T) {
	ctx := context.Background()
	repo := newFakeVehicleRepo()
	events := &fakePublisher{}
	uc := newVehicleUC(repo, nil, events)

	created, err := uc.SaveDraft(ctx, validDraft())
	require.NoError(t, err)

	d := draft.FromVehicle(created)
	d.Status = domain.StatusSold
	d.Price = 39900
	updated, err := uc.SaveDraft(ctx, d)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, 39900.0, updated.Price)
	assert.Contains(t, events.published(), SubjectVehicleUpdated)
	assert.Contains(t, events.published(), SubjectVehicleSold)
}

func TestPatchVehicle_MergesIntoExisting(t *testing.T) {
	ctx := context.Background()
	repo := newFakeVehicleRepo()
	uc := newVehicleUC(repo, nil, nil)

	created, err := uc.SaveDraft(ctx, validDraft())
	require.NoError(t, err)

	price := 39000.0
	patched, err := uc.PatchVehicle(ctx, created.ID, draft.Patch{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, 39000.0, patched.Price)
	assert.Equal(t, "Audi", patched.Brand, "untouched fields survive the patch")
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	repo := newFakeVehicleRepo()
	uc := newVehicleUC(repo, nil, nil)
	_, err := uc.UpdateStatus(context.Background(), "veh-1", "scrapped")
	assert.ErrorIs(t, err, domain.ErrInvalidVehicleData)
}

func TestListVehicles_FilterAndCache(t *testing.T) {
	ctx := context.Background()
	repo := newFakeVehicleRepo()
	cache := newFakeCache()
	uc := newVehicleUC(repo, cache, nil)

	d := validDraft()
	_, err := uc.SaveDraft(ctx, d)
	require.NoError(t, err)
	d2 := validDraft()
	d2.Brand = "BMW"
	d2.Price = 25000
	_, err = uc.SaveDraft(ctx, d2)
	require.NoError(t, err)

	got, err := uc.ListVehicles(ctx, domain.Filter{Brand: "BMW"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "BMW", got[0].Brand)

	// Second read is served from the cache.
	before := repo.callCount()
	_, err = uc.ListVehicles(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Equal(t, before, repo.callCount())
}

func TestListVehicles_CacheFailureFallsBackToRepo(t *testing.T) {
	ctx := context.Background()
	repo := newFakeVehicleRepo()
	cache := newFakeCache()
	cache.fail = true
	uc := newVehicleUC(repo, cache, nil)

	_, err := uc.SaveDraft(ctx, validDraft())
	require.NoError(t, err)

	got, err := uc.ListVehicles(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFilterOptions(t *testing.T) {
	ctx := context.Background()
	repo := newFakeVehicleRepo()
	uc := newVehicleUC(repo, nil, nil)

	d := validDraft()
	d.Specs = domain.Specs{FuelType: "Petrol"}
	_, err := uc.SaveDraft(ctx, d)
	require.NoError(t, err)

	d2 := validDraft()
	d2.Brand = "BMW"
	d2.Specs = domain.Specs{FuelType: "Diesel"}
	_, err = uc.SaveDraft(ctx, d2)
	require.NoError(t, err)

	brands, fuels, err := uc.FilterOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Audi", "BMW"}, brands)
	assert.Equal(t, []string{"Diesel", "Petrol"}, fuels)
}

func TestDeleteVehicle(t *testing.T) {
	ctx := context.Background()
	repo := newFakeVehicleRepo()
	events := &fakePublisher{}
	uc := newVehicleUC(repo, nil, events)

	created, err := uc.SaveDraft(ctx, validDraft())
	require.NoError(t, err)

	require.NoError(t, uc.DeleteVehicle(ctx, created.ID))
	_, err = uc.GetVehicle(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
	assert.Contains(t, events.published(), SubjectVehicleDeleted)

	assert.ErrorIs(t, uc.DeleteVehicle(ctx, "missing"), domain.ErrVehicleNotFound)
}

func TestAddImages_AppendsURLs(t *testing.T) {
	ctx := context.Background()
	repo := newFakeVehicleRepo()
	storage := newFakeStorage()
	uploads := NewUploadUsecase(storage, nil, 10, 1024, logger.NewNop())
	uc := NewVehicleUsecase(repo, nil, nil, uploads, logger.NewNop())

	created, err := uc.SaveDraft(ctx, validDraft())
	require.NoError(t, err)

	result, err := uc.AddImages(ctx, created.ID, uploadFiles("a.jpg", "b.jpg"), false, nil)
	require.NoError(t, err)
	assert.Len(t, result.Uploaded, 2)

	reloaded, err := uc.GetVehicle(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, result.URLs(), reloaded.Images)
}
