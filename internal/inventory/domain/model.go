// Package domain holds the dealership's core entities and the pure
// catalog logic that operates on them. Nothing in this package touches
// the network or the database.
package domain

import "time"

type VehicleStatus string

const (
	StatusAvailable VehicleStatus = "available"
	StatusSold      VehicleStatus = "sold"
)

type ConditionType string

const (
	ConditionNew       ConditionType = "new"
	ConditionUsed      ConditionType = "used"
	ConditionAnnualCar ConditionType = "annual-car"
)

// Specs describes the technical data sheet of a vehicle. All fields are
// optional free text, filled in as far as the dealer knows them.
type Specs struct {
	Engine        string `json:"engine,omitempty"`
	Power         string `json:"power,omitempty"`
	Transmission  string `json:"transmission,omitempty"`
	FuelType      string `json:"fuelType,omitempty"`
	Displacement  string `json:"displacement,omitempty"`
	Acceleration  string `json:"acceleration,omitempty"`
	TopSpeed      string `json:"topSpeed,omitempty"`
	Consumption   string `json:"consumption,omitempty"`
	Emissions     string `json:"emissions,omitempty"`
	EmissionClass string `json:"emissionClass,omitempty"`
}

// Condition captures the history and state of a vehicle.
type Condition struct {
	Type           ConditionType `json:"type,omitempty"`
	Accident       bool          `json:"accident"`
	PreviousOwners int           `json:"previousOwners"`
	Warranty       bool          `json:"warranty"`
	ServiceHistory bool          `json:"serviceHistory"`
}

type Vehicle struct {
	ID          string
	Brand       string
	Model       string
	Year        int
	Price       float64
	Mileage     int
	Images      []string // first entry is the primary image
	Description string
	Specs       Specs
	Condition   Condition
	Features    []string
	// AdditionalFeatures is persisted under the key "additionalfeatures";
	// the repository layer owns that mapping.
	AdditionalFeatures []string
	Status             VehicleStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Title is the display name used in search matching and mail subjects.
func (v *Vehicle) Title() string {
	if v.Brand == "" {
		return v.Model
	}
	if v.Model == "" {
		return v.Brand
	}
	return v.Brand + " " + v.Model
}

type GalleryCategory string

const (
	CategoryShowroom      GalleryCategory = "showroom"
	CategoryExterior      GalleryCategory = "exterior"
	CategoryInterior      GalleryCategory = "interior"
	CategoryDetail        GalleryCategory = "detail"
	CategoryEvent         GalleryCategory = "event"
	CategoryUncategorized GalleryCategory = ""
)

// GalleryCategories lists the categories an image may be filed under.
var GalleryCategories = []GalleryCategory{
	CategoryShowroom, CategoryExterior, CategoryInterior, CategoryDetail, CategoryEvent,
}

func (c GalleryCategory) Valid() bool {
	if c == CategoryUncategorized {
		return true
	}
	for _, known := range GalleryCategories {
		if c == known {
			return true
		}
	}
	return false
}

// GalleryImage is a stand-alone image in the site gallery. It may reference
// a vehicle, in which case brand and model are denormalized onto the image
// so the gallery can be rendered without a second lookup.
type GalleryImage struct {
	ID           string
	URL          string
	StorageKey   string
	Category     GalleryCategory
	VehicleID    string
	VehicleBrand string
	VehicleModel string
	CreatedAt    time.Time
}

type InquiryStatus string

const (
	InquiryNew     InquiryStatus = "new"
	InquiryRead    InquiryStatus = "read"
	InquiryReplied InquiryStatus = "replied"
)

// Inquiry is a customer message sent through the contact form.
type Inquiry struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Subject   string
	VehicleID string // optional vehicle of interest
	Message   string
	Status    InquiryStatus
	CreatedAt time.Time
}

// AdminUser is a back-office account. Password is stored as a bcrypt hash.
type AdminUser struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Active       bool
	CreatedAt    time.Time
}
