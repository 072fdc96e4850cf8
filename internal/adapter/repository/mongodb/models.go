// Package mongodb implements the domain repositories on MongoDB. Each
// entity has a document struct plus converter pair; the converters are the
// single place where persisted shapes are normalized into domain values.
package mongodb

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SainteOfficial/autohaus-service/internal/inventory/domain"
)

// vehicleDocument is the persisted shape of a vehicle. Specs and condition
// are stored as serialized JSON text; older rows may carry them as embedded
// documents instead, which the converters tolerate. The additional-features
// list is persisted under the flattened key "additionalfeatures".
type vehicleDocument struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty"`
	Brand              string               `bson:"brand"`
	Model              string               `bson:"model"`
	Year               int                  `bson:"year"`
	Price              float64              `bson:"price"`
	Mileage            int                  `bson:"mileage"`
	Images             []string             `bson:"images,omitempty"`
	Description        string               `bson:"description,omitempty"`
	Specs              interface{}          `bson:"specs,omitempty"`
	Condition          interface{}          `bson:"condition,omitempty"`
	Features           []string             `bson:"features,omitempty"`
	AdditionalFeatures []string             `bson:"additionalfeatures,omitempty"`
	Status             domain.VehicleStatus `bson:"status"`
	CreatedAt          time.Time            `bson:"created_at"`
	UpdatedAt          time.Time            `bson:"updated_at"`
}

type galleryImageDocument struct {
	ID           primitive.ObjectID     `bson:"_id,omitempty"`
	URL          string                 `bson:"url"`
	StorageKey   string                 `bson:"storage_key,omitempty"`
	Category     domain.GalleryCategory `bson:"category,omitempty"`
	VehicleID    string                 `bson:"vehicle_id,omitempty"`
	VehicleBrand string                 `bson:"vehicle_brand,omitempty"`
	VehicleModel string                 `bson:"vehicle_model,omitempty"`
	CreatedAt    time.Time              `bson:"created_at"`
}

type inquiryDocument struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Name      string               `bson:"name"`
	Email     string               `bson:"email"`
	Phone     string               `bson:"phone,omitempty"`
	Subject   string               `bson:"subject"`
	VehicleID string               `bson:"vehicle_id,omitempty"`
	Message   string               `bson:"message"`
	Status    domain.InquiryStatus `bson:"status"`
	CreatedAt time.Time            `bson:"created_at"`
}

type adminUserDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Name         string             `bson:"name,omitempty"`
	Active       bool               `bson:"active"`
	CreatedAt    time.Time          `bson:"created_at"`
}

// marshalJSONText serializes a nested record to the JSON text form all new
// writes use.
func marshalJSONText(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// normalizeSpecs accepts whatever shape the database hands back: JSON text
// (the persisted contract) or an embedded document from hand-edited rows.
// Anything unreadable degrades to the zero value. This runs once here at
// the data-access boundary; downstream code only ever sees domain.Specs.
func normalizeSpecs(v interface{}) domain.Specs {
	var specs domain.Specs
	decodeNested(v, &specs)
	return specs
}

func normalizeCondition(v interface{}) domain.Condition {
	var condition domain.Condition
	decodeNested(v, &condition)
	return condition
}

func decodeNested(v interface{}, out interface{}) {
	switch val := v.(type) {
	case nil:
	case string:
		_ = json.Unmarshal([]byte(val), out)
	case primitive.D:
		if data, err := bson.Marshal(val); err == nil {
			_ = bson.Unmarshal(data, out)
		}
	case primitive.M:
		if data, err := bson.Marshal(val); err == nil {
			_ = bson.Unmarshal(data, out)
		}
	}
}

func toVehicleDocument(v *domain.Vehicle) (*vehicleDocument, error) {
	doc := &vehicleDocument{
		Brand:              v.Brand,
		Model:              v.Model,
		Year:               v.Year,
		Price:              v.Price,
		Mileage:            v.Mileage,
		Images:             v.Images,
		Description:        v.Description,
		Specs:              marshalJSONText(v.Specs),
		Condition:          marshalJSONText(v.Condition),
		Features:           v.Features,
		AdditionalFeatures: v.AdditionalFeatures,
		Status:             v.Status,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
	if v.ID != "" {
		id, err := primitive.ObjectIDFromHex(v.ID)
		if err != nil {
			return nil, domain.ErrVehicleNotFound
		}
		doc.ID = id
	}
	return doc, nil
}

func toDomainVehicle(doc *vehicleDocument) *domain.Vehicle {
	return &domain.Vehicle{
		ID:                 doc.ID.Hex(),
		Brand:              doc.Brand,
		Model:              doc.Model,
		Year:               doc.Year,
		Price:              doc.Price,
		Mileage:            doc.Mileage,
		Images:             doc.Images,
		Description:        doc.Description,
		Specs:              normalizeSpecs(doc.Specs),
		Condition:          normalizeCondition(doc.Condition),
		Features:           doc.Features,
		AdditionalFeatures: doc.AdditionalFeatures,
		Status:             doc.Status,
		CreatedAt:          doc.CreatedAt,
		UpdatedAt:          doc.UpdatedAt,
	}
}

func toDomainGalleryImage(doc *galleryImageDocument) *domain.GalleryImage {
	return &domain.GalleryImage{
		ID:           doc.ID.Hex(),
		URL:          doc.URL,
		StorageKey:   doc.StorageKey,
		Category:     doc.Category,
		VehicleID:    doc.VehicleID,
		VehicleBrand: doc.VehicleBrand,
		VehicleModel: doc.VehicleModel,
		CreatedAt:    doc.CreatedAt,
	}
}

func toDomainInquiry(doc *inquiryDocument) *domain.Inquiry {
	return &domain.Inquiry{
		ID:        doc.ID.Hex(),
		Name:      doc.Name,
		Email:     doc.Email,
		Phone:     doc.Phone,
		Subject:   doc.Subject,
		VehicleID: doc.VehicleID,
		Message:   doc.Message,
		Status:    doc.Status,
		CreatedAt: doc.CreatedAt,
	}
}

func toDomainAdminUser(doc *adminUserDocument) *domain.AdminUser {
	return &domain.AdminUser{
		ID:           doc.ID.Hex(),
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Name:         doc.Name,
		Active:       doc.Active,
		CreatedAt:    doc.CreatedAt,
	}
}
