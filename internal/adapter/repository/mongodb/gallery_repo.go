package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SainteOfficial/autohaus-service/internal/inventory/domain"
)

const galleryCollection = "gallery_images"

type GalleryRepository struct {
	collection *mongo.Collection
}

func NewGalleryRepository(db *mongo.Database) *GalleryRepository {
	return &GalleryRepository{collection: db.Collection(galleryCollection)}
}

func (r *GalleryRepository) Create(ctx context.Context, image *domain.GalleryImage) error {
	doc := &galleryImageDocument{
		ID:           primitive.NewObjectID(),
		URL:          image.URL,
		StorageKey:   image.StorageKey,
		Category:     image.Category,
		VehicleID:    image.VehicleID,
		VehicleBrand: image.VehicleBrand,
		VehicleModel: image.VehicleModel,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert gallery image: %w", err)
	}
	image.ID = doc.ID.Hex()
	image.CreatedAt = doc.CreatedAt
	return nil
}

// Delete removes the rows for the given ids and returns the images that
// were actually deleted, so the caller can clean up their stored objects.
// Unknown ids are skipped silently.
func (r *GalleryRepository) Delete(ctx context.Context, ids []string) ([]*domain.GalleryImage, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []*domain.GalleryImage{}, nil
	}

	filter := bson.M{"_id": bson.M{"$in": oids}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find gallery images: %w", err)
	}
	deleted := make([]*domain.GalleryImage, 0, len(oids))
	for cursor.Next(ctx) {
		var doc galleryImageDocument
		if err := cursor.Decode(&doc); err != nil {
			cursor.Close(ctx)
			return nil, fmt.Errorf("decode gallery image: %w", err)
		}
		deleted = append(deleted, toDomainGalleryImage(&doc))
	}
	cursor.Close(ctx)
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("find gallery images: %w", err)
	}

	if _, err := r.collection.DeleteMany(ctx, filter); err != nil {
		return nil, fmt.Errorf("delete gallery images: %w", err)
	}
	return deleted, nil
}

func (r *GalleryRepository) FindByID(ctx context.Context, id string) (*domain.GalleryImage, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrImageNotFound
	}

	var doc galleryImageDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrImageNotFound
		}
		return nil, fmt.Errorf("find gallery image: %w", err)
	}
	return toDomainGalleryImage(&doc), nil
}

// FindAll lists gallery images newest first, optionally narrowed to one
// category. The empty category means no narrowing.
func (r *GalleryRepository) FindAll(ctx context.Context, category domain.GalleryCategory) ([]*domain.GalleryImage, error) {
	filter := bson.M{}
	if category != domain.CategoryUncategorized {
		filter["category"] = category
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		if isNamespaceNotFound(err) {
			return []*domain.GalleryImage{}, nil
		}
		return nil, fmt.Errorf("list gallery images: %w", err)
	}
	defer cursor.Close(ctx)

	images := make([]*domain.GalleryImage, 0)
	for cursor.Next(ctx) {
		var doc galleryImageDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode gallery image: %w", err)
		}
		images = append(images, toDomainGalleryImage(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list gallery images: %w", err)
	}
	return images, nil
}
