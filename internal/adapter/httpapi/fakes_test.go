package httpapi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SainteOfficial/autohaus-service/internal/auth"
	"github.com/SainteOfficial/autohaus-service/internal/favorites"
	"github.com/SainteOfficial/autohaus-service/internal/inventory/domain"
	"github.com/SainteOfficial/autohaus-service/internal/inventory/usecase"
	"github.com/SainteOfficial/autohaus-service/internal/platform/logger"
)

type memVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[string]*domain.Vehicle
	seq      int
}

func newMemVehicleRepo() *memVehicleRepo {
	return &memVehicleRepo{vehicles: make(map[string]*domain.Vehicle)}
}

func (r *memVehicleRepo) Create(_ context.Context, v *domain.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	v.ID = fmt.Sprintf("veh-%d", r.seq)
	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now
	clone := *v
	r.vehicles[v.ID] = &clone
	return nil
}

func (r *memVehicleRepo) Update(_ context.Context, v *domain.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vehicles[v.ID]; !ok {
		return domain.ErrVehicleNotFound
	}
	clone := *v
	r.vehicles[v.ID] = &clone
	return nil
}

func (r *memVehicleRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vehicles[id]; !ok {
		return domain.ErrVehicleNotFound
	}
	delete(r.vehicles, id)
	return nil
}

func (r *memVehicleRepo) FindByID(_ context.Context, id string) (*domain.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return nil, domain.ErrVehicleNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *memVehicleRepo) FindAll(_ context.Context) ([]*domain.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		clone := *v
		out = append(out, &clone)
	}
	return out, nil
}

type memGalleryRepo struct {
	mu     sync.Mutex
	images map[string]*domain.GalleryImage
	seq    int
}

func newMemGalleryRepo() *memGalleryRepo {
	return &memGalleryRepo{images: make(map[string]*domain.GalleryImage)}
}

func (r *memGalleryRepo) Create(_ context.Context, img *domain.GalleryImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	img.ID = fmt.Sprintf("img-%d", r.seq)
	img.CreatedAt = time.Now()
	clone := *img
	r.images[img.ID] = &clone
	return nil
}

func (r *memGalleryRepo) Delete(_ context.Context, ids []string) ([]*domain.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deleted := make([]*domain.GalleryImage, 0, len(ids))
	for _, id := range ids {
		if img, ok := r.images[id]; ok {
			clone := *img
			deleted = append(deleted, &clone)
			delete(r.images, id)
		}
	}
	return deleted, nil
}

func (r *memGalleryRepo) FindByID(_ context.Context, id string) (*domain.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	img, ok := r.images[id]
	if !ok {
		return nil, domain.ErrImageNotFound
	}
	clone := *img
	return &clone, nil
}

func (r *memGalleryRepo) FindAll(_ context.Context, category domain.GalleryCategory) ([]*domain.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.GalleryImage, 0, len(r.images))
	for _, img := range r.images {
		if category != domain.CategoryUncategorized && img.Category != category {
			continue
		}
		clone := *img
		out = append(out, &clone)
	}
	return out, nil
}

type memInquiryRepo struct {
	mu        sync.Mutex
	inquiries map[string]*domain.Inquiry
	seq       int
}

func newMemInquiryRepo() *memInquiryRepo {
	return &memInquiryRepo{inquiries: make(map[string]*domain.Inquiry)}
}

func (r *memInquiryRepo) Create(_ context.Context, inq *domain.Inquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	inq.ID = fmt.Sprintf("inq-%d", r.seq)
	inq.CreatedAt = time.Now()
	clone := *inq
	r.inquiries[inq.ID] = &clone
	return nil
}

func (r *memInquiryRepo) UpdateStatus(_ context.Context, id string, status domain.InquiryStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inq, ok := r.inquiries[id]
	if !ok {
		return domain.ErrInquiryNotFound
	}
	inq.Status = status
	return nil
}

func (r *memInquiryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.inquiries[id]; !ok {
		return domain.ErrInquiryNotFound
	}
	delete(r.inquiries, id)
	return nil
}

func (r *memInquiryRepo) FindByID(_ context.Context, id string) (*domain.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inq, ok := r.inquiries[id]
	if !ok {
		return nil, domain.ErrInquiryNotFound
	}
	clone := *inq
	return &clone, nil
}

func (r *memInquiryRepo) FindAll(_ context.Context) ([]*domain.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Inquiry, 0, len(r.inquiries))
	for _, inq := range r.inquiries {
		clone := *inq
		out = append(out, &clone)
	}
	return out, nil
}

type memAdminRepo struct {
	mu    sync.Mutex
	users map[string]*domain.AdminUser
	seq   int
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{users: make(map[string]*domain.AdminUser)}
}

func (r *memAdminRepo) Create(_ context.Context, u *domain.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	u.ID = fmt.Sprintf("adm-%d", r.seq)
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *memAdminRepo) FindByEmail(_ context.Context, email string) (*domain.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memAdminRepo) FindByID(_ context.Context, id string) (*domain.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{objects: make(map[string][]byte)}
}

func (s *memStorage) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return "http://storage.local/" + key, nil
}

func (s *memStorage) Remove(_ context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.objects, key)
	}
	return nil
}

type memKV struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemKV() *memKV {
	return &memKV{values: make(map[string]string)}
}

func (kv *memKV) Get(_ context.Context, key string) (string, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.values[key]
	return v, ok, nil
}

func (kv *memKV) Set(_ context.Context, key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.values[key] = value
	return nil
}

type memBlacklist struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func newMemBlacklist() *memBlacklist {
	return &memBlacklist{revoked: make(map[string]bool)}
}

func (b *memBlacklist) Revoke(_ context.Context, token string, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[token] = true
	return nil
}

func (b *memBlacklist) Revoked(_ context.Context, token string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revoked[token], nil
}

type memMailer struct {
	mu            sync.Mutex
	notifications []string
	replies       []string
}

func (m *memMailer) SendInquiryNotification(inq *domain.Inquiry, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, inq.ID)
	return nil
}

func (m *memMailer) SendInquiryReply(inq *domain.Inquiry, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, inq.ID)
	return nil
}

// testEnv bundles the server with the fakes behind it, so tests can seed
// and inspect state directly.
type testEnv struct {
	server    *Server
	vehicles  *memVehicleRepo
	gallery   *memGalleryRepo
	inquiries *memInquiryRepo
	admins    *memAdminRepo
	storage   *memStorage
	mailer    *memMailer
	auth      *auth.Service
}

func newTestEnv() *testEnv {
	log := logger.NewNop()

	vehicles := newMemVehicleRepo()
	gallery := newMemGalleryRepo()
	inquiries := newMemInquiryRepo()
	admins := newMemAdminRepo()
	storage := newMemStorage()
	mail := &memMailer{}

	uploads := usecase.NewUploadUsecase(storage, nil, 10, 1<<20, log)
	vehicleUC := usecase.NewVehicleUsecase(vehicles, nil, nil, uploads, log)
	galleryUC := usecase.NewGalleryUsecase(gallery, vehicles, storage, uploads, log)
	inquiryUC := usecase.NewInquiryUsecase(inquiries, vehicles, mail, nil, log)

	authService := auth.NewService(admins, newMemBlacklist(), "test-secret", time.Hour, log)
	favStore := favorites.NewStore(newMemKV())

	server := NewServer(vehicleUC, galleryUC, inquiryUC, uploads, favStore, authService, 1<<20, log)
	return &testEnv{
		server:    server,
		vehicles:  vehicles,
		gallery:   gallery,
		inquiries: inquiries,
		admins:    admins,
		storage:   storage,
		mailer:    mail,
		auth:      authService,
	}
}
