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

const inquiriesCollection = "inquiries"

type InquiryRepository struct {
	collection *mongo.Collection
}

func NewInquiryRepository(db *mongo.Database) *InquiryRepository {
	return &InquiryRepository{collection: db.Collection(inquiriesCollection)}
}

func (r *InquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	doc := &inquiryDocument{
		ID:        primitive.NewObjectID(),
		Name:      inquiry.Name,
		Email:     inquiry.Email,
		Phone:     inquiry.Phone,
		Subject:   inquiry.Subject,
		VehicleID: inquiry.VehicleID,
		Message:   inquiry.Message,
		Status:    inquiry.Status,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert inquiry: %w", err)
	}
	inquiry.ID = doc.ID.Hex()
	inquiry.CreatedAt = doc.CreatedAt
	return nil
}

func (r *InquiryRepository) UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInquiryNotFound
	}

	res, err := r.collection.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("update inquiry status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInquiryNotFound
	}
	return nil
}

func (r *InquiryRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInquiryNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete inquiry: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrInquiryNotFound
	}
	return nil
}

func (r *InquiryRepository) FindByID(ctx context.Context, id string) (*domain.Inquiry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInquiryNotFound
	}

	var doc inquiryDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInquiryNotFound
		}
		return nil, fmt.Errorf("find inquiry: %w", err)
	}
	return toDomainInquiry(&doc), nil
}

// FindAll lists inquiries newest first. A fresh deployment without the
// collection reads as an empty inbox.
func (r *InquiryRepository) FindAll(ctx context.Context) ([]*domain.Inquiry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		if isNamespaceNotFound(err) {
			return []*domain.Inquiry{}, nil
		}
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer cursor.Close(ctx)

	inquiries := make([]*domain.Inquiry, 0)
	for cursor.Next(ctx) {
		var doc inquiryDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode inquiry: %w", err)
		}
		inquiries = append(inquiries, toDomainInquiry(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	return inquiries, nil
}
