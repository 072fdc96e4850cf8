package domain

import "context"

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *Vehicle) error
	Update(ctx context.Context, vehicle *Vehicle) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Vehicle, error)
	FindAll(ctx context.Context) ([]*Vehicle, error)
}

type GalleryRepository interface {
	Create(ctx context.Context, image *GalleryImage) error
	Delete(ctx context.Context, ids []string) ([]*GalleryImage, error)
	FindByID(ctx context.Context, id string) (*GalleryImage, error)
	FindAll(ctx context.Context, category GalleryCategory) ([]*GalleryImage, error)
}

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *Inquiry) error
	UpdateStatus(ctx context.Context, id string, status InquiryStatus) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Inquiry, error)
	FindAll(ctx context.Context) ([]*Inquiry, error)
}

type AdminUserRepository interface {
	Create(ctx context.Context, user *AdminUser) error
	FindByEmail(ctx context.Context, email string) (*AdminUser, error)
	FindByID(ctx context.Context, id string) (*AdminUser, error)
}

// Storage is the object-store contract the upload pipeline depends on.
// Implemented by the MinIO adapter.
type Storage interface {
	// Upload stores data under key and returns the public URL.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Remove deletes the given object keys. Missing keys are not an error.
	Remove(ctx context.Context, keys []string) error
}
