package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SainteOfficial/autohaus-service/internal/inventory/domain"
)

// fakeStorage records uploads and can be told to fail specific file keys
// or every call.
type fakeStorage struct {
	mu       sync.Mutex
	objects  map[string][]byte // key -> data
	failFor  map[string]bool   // original file name -> fail
	removeErr error
	removed  [][]string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		objects: make(map[string][]byte),
		failFor: make(map[string]bool),
	}
}

func (s *fakeStorage) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range s.failFor {
		// keys embed a uuid, so match failures by the data sentinel the
		// tests plant: data equal to the file name.
		if string(data) == name {
			return "", fmt.Errorf("upload refused for %s", name)
		}
	}
	s.objects[key] = append([]byte(nil), data...)
	return "https://cdn.example/" + key, nil
}

func (s *fakeStorage) Remove(_ context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, keys)
	return s.removeErr
}

func (s *fakeStorage) objectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// fakeWatermarker either prefixes the data or fails with a fixed error.
type fakeWatermarker struct {
	err error
}

func (w *fakeWatermarker) Apply(data []byte, _ string) ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return append([]byte("wm:"), data...), nil
}

// fakeVehicleRepo is an in-memory VehicleRepository counting its calls.
type fakeVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[string]*domain.Vehicle
	nextID   int
	calls    int
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: make(map[string]*domain.Vehicle)}
}

func (r *fakeVehicleRepo) Create(_ context.Context, v *domain.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.nextID++
	v.ID = fmt.Sprintf("veh-%d", r.nextID)
	v.CreatedAt = time.Now()
	v.UpdatedAt = v.CreatedAt
	clone := *v
	r.vehicles[v.ID] = &clone
	return nil
}

func (r *fakeVehicleRepo) Update(_ context.Context, v *domain.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if _, ok := r.vehicles[v.ID]; !ok {
		return domain.ErrVehicleNotFound
	}
	v.UpdatedAt = time.Now()
	clone := *v
	r.vehicles[v.ID] = &clone
	return nil
}

func (r *fakeVehicleRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if _, ok := r.vehicles[id]; !ok {
		return domain.ErrVehicleNotFound
	}
	delete(r.vehicles, id)
	return nil
}

func (r *fakeVehicleRepo) FindByID(_ context.Context, id string) (*domain.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	v, ok := r.vehicles[id]
	if !ok {
		return nil, domain.ErrVehicleNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *fakeVehicleRepo) FindAll(_ context.Context) ([]*domain.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	result := make([]*domain.Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		clone := *v
		result = append(result, &clone)
	}
	return result, nil
}

func (r *fakeVehicleRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// fakeGalleryRepo is an in-memory GalleryRepository.
type fakeGalleryRepo struct {
	mu        sync.Mutex
	images    map[string]*domain.GalleryImage
	nextID    int
	createErr error
}

func newFakeGalleryRepo() *fakeGalleryRepo {
	return &fakeGalleryRepo{images: make(map[string]*domain.GalleryImage)}
}

func (r *fakeGalleryRepo) Create(_ context.Context, img *domain.GalleryImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	img.ID = fmt.Sprintf("img-%d", r.nextID)
	img.CreatedAt = time.Now()
	clone := *img
	r.images[img.ID] = &clone
	return nil
}

func (r *fakeGalleryRepo) Delete(_ context.Context, ids []string) ([]*domain.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted []*domain.GalleryImage
	for _, id := range ids {
		if img, ok := r.images[id]; ok {
			deleted = append(deleted, img)
			delete(r.images, id)
		}
	}
	if len(deleted) == 0 {
		return nil, domain.ErrImageNotFound
	}
	return deleted, nil
}

func (r *fakeGalleryRepo) FindByID(_ context.Context, id string) (*domain.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	img, ok := r.images[id]
	if !ok {
		return nil, domain.ErrImageNotFound
	}
	clone := *img
	return &clone, nil
}

func (r *fakeGalleryRepo) FindAll(_ context.Context, category domain.GalleryCategory) ([]*domain.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.GalleryImage
	for _, img := range r.images {
		if category != domain.CategoryUncategorized && img.Category != category {
			continue
		}
		clone := *img
		result = append(result, &clone)
	}
	return result, nil
}

// fakeInquiryRepo is an in-memory InquiryRepository.
type fakeInquiryRepo struct {
	mu        sync.Mutex
	inquiries map[string]*domain.Inquiry
	nextID    int
}

func newFakeInquiryRepo() *fakeInquiryRepo {
	return &fakeInquiryRepo{inquiries: make(map[string]*domain.Inquiry)}
}

func (r *fakeInquiryRepo) Create(_ context.Context, inq *domain.Inquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	inq.ID = fmt.Sprintf("inq-%d", r.nextID)
	inq.CreatedAt = time.Now()
	clone := *inq
	r.inquiries[inq.ID] = &clone
	return nil
}

func (r *fakeInquiryRepo) UpdateStatus(_ context.Context, id string, status domain.InquiryStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inq, ok := r.inquiries[id]
	if !ok {
		return domain.ErrInquiryNotFound
	}
	inq.Status = status
	return nil
}

func (r *fakeInquiryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.inquiries[id]; !ok {
		return domain.ErrInquiryNotFound
	}
	delete(r.inquiries, id)
	return nil
}

func (r *fakeInquiryRepo) FindByID(_ context.Context, id string) (*domain.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inq, ok := r.inquiries[id]
	if !ok {
		return nil, domain.ErrInquiryNotFound
	}
	clone := *inq
	return &clone, nil
}

func (r *fakeInquiryRepo) FindAll(_ context.Context) ([]*domain.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*domain.Inquiry, 0, len(r.inquiries))
	for _, inq := range r.inquiries {
		clone := *inq
		result = append(result, &clone)
	}
	return result, nil
}

// fakeMailer records sends and can be told to fail.
type fakeMailer struct {
	mu            sync.Mutex
	notifications []string // inquiry ids
	replies       []string
	err           error
}

func (m *fakeMailer) SendInquiryNotification(inq *domain.Inquiry, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.notifications = append(m.notifications, inq.ID)
	return nil
}

func (m *fakeMailer) SendInquiryReply(inq *domain.Inquiry, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.replies = append(m.replies, inq.ID)
	return nil
}

// fakePublisher records published subjects.
type fakePublisher struct {
	mu       sync.Mutex
	subjects []string
}

func (p *fakePublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	return nil
}

func (p *fakePublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.subjects...)
}

var errCacheDown = errors.New("cache down")

// fakeCache is a VehicleCache that can be absent, healthy or failing.
type fakeCache struct {
	mu       sync.Mutex
	vehicles map[string]*domain.Vehicle
	all      []*domain.Vehicle
	fail     bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{vehicles: make(map[string]*domain.Vehicle)}
}

func (c *fakeCache) GetVehicle(_ context.Context, id string) (*domain.Vehicle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return nil, errCacheDown
	}
	return c.vehicles[id], nil
}

func (c *fakeCache) SetVehicle(_ context.Context, v *domain.Vehicle) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errCacheDown
	}
	c.vehicles[v.ID] = v
	return nil
}

func (c *fakeCache) GetAll(_ context.Context) ([]*domain.Vehicle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return nil, errCacheDown
	}
	return c.all, nil
}

func (c *fakeCache) SetAll(_ context.Context, vehicles []*domain.Vehicle) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errCacheDown
	}
	c.all = vehicles
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.vehicles, id)
	c.all = nil
	return nil
}
