// Package draft implements the admin vehicle editor: an in-memory draft of
// a vehicle edited across form sections, with explicit merge functions,
// required-field validation and a completion indicator. Each Apply* function
// returns a new draft and only touches the fields the patch carries, so the
// merge semantics are testable in isolation.
package draft

import (
	"fmt"
	"strings"

	"github.com/SainteOfficial/autohaus-service/internal/inventory/domain"
)

// Draft is an editable copy of a vehicle. The zero Draft is a valid
// starting point for a new record.
type Draft struct {
	ID                 string           `json:"id,omitempty"`
	Brand              string           `json:"brand"`
	Model              string           `json:"model"`
	Year               int              `json:"year"`
	Price              float64          `json:"price"`
	Mileage            int              `json:"mileage"`
	Images             []string         `json:"images"`
	Description        string           `json:"description"`
	Specs              domain.Specs     `json:"specs"`
	Condition          domain.Condition `json:"condition"`
	Features           []string         `json:"features"`
	AdditionalFeatures []string         `json:"additionalFeatures"`
	Status             domain.VehicleStatus `json:"status"`
}

// Patch carries top-level field updates. Nil pointers leave the field as is.
type Patch struct {
	Brand              *string               `json:"brand,omitempty"`
	Model              *string               `json:"model,omitempty"`
	Year               *int                  `json:"year,omitempty"`
	Price              *float64              `json:"price,omitempty"`
	Mileage            *int                  `json:"mileage,omitempty"`
	Images             *[]string             `json:"images,omitempty"`
	Description        *string               `json:"description,omitempty"`
	Features           *[]string             `json:"features,omitempty"`
	AdditionalFeatures *[]string             `json:"additionalFeatures,omitempty"`
	Status             *domain.VehicleStatus `json:"status,omitempty"`
	Specs              *SpecsPatch           `json:"specs,omitempty"`
	Condition          *ConditionPatch       `json:"condition,omitempty"`
}

// SpecsPatch updates individual spec fields, preserving siblings.
type SpecsPatch struct {
	Engine        *string `json:"engine,omitempty"`
	Power         *string `json:"power,omitempty"`
	Transmission  *string `json:"transmission,omitempty"`
	FuelType      *string `json:"fuelType,omitempty"`
	Displacement  *string `json:"displacement,omitempty"`
	Acceleration  *string `json:"acceleration,omitempty"`
	TopSpeed      *string `json:"topSpeed,omitempty"`
	Consumption   *string `json:"consumption,omitempty"`
	Emissions     *string `json:"emissions,omitempty"`
	EmissionClass *string `json:"emissionClass,omitempty"`
}

// ConditionPatch updates individual condition fields, preserving siblings.
type ConditionPatch struct {
	Type           *domain.ConditionType `json:"type,omitempty"`
	Accident       *bool                 `json:"accident,omitempty"`
	PreviousOwners *int                  `json:"previousOwners,omitempty"`
	Warranty       *bool                 `json:"warranty,omitempty"`
	ServiceHistory *bool                 `json:"serviceHistory,omitempty"`
}

// Apply merges p into d and returns the result. d itself is not modified.
func Apply(d Draft, p Patch) Draft {
	if p.Brand != nil {
		d.Brand = *p.Brand
	}
	if p.Model != nil {
		d.Model = *p.Model
	}
	if p.Year != nil {
		d.Year = *p.Year
	}
	if p.Price != nil {
		d.Price = *p.Price
	}
	if p.Mileage != nil {
		d.Mileage = *p.Mileage
	}
	if p.Images != nil {
		d.Images = append([]string(nil), (*p.Images)...)
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Features != nil {
		d.Features = append([]string(nil), (*p.Features)...)
	}
	if p.AdditionalFeatures != nil {
		d.AdditionalFeatures = append([]string(nil), (*p.AdditionalFeatures)...)
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.Specs != nil {
		d.Specs = ApplySpecs(d.Specs, *p.Specs)
	}
	if p.Condition != nil {
		d.Condition = ApplyCondition(d.Condition, *p.Condition)
	}
	return d
}

// ApplySpecs merges p into s at the specs level.
func ApplySpecs(s domain.Specs, p SpecsPatch) domain.Specs {
	if p.Engine != nil {
		s.Engine = *p.Engine
	}
	if p.Power != nil {
		s.Power = *p.Power
	}
	if p.Transmission != nil {
		s.Transmission = *p.Transmission
	}
	if p.FuelType != nil {
		s.FuelType = *p.FuelType
	}
	if p.Displacement != nil {
		s.Displacement = *p.Displacement
	}
	if p.Acceleration != nil {
		s.Acceleration = *p.Acceleration
	}
	if p.TopSpeed != nil {
		s.TopSpeed = *p.TopSpeed
	}
	if p.Consumption != nil {
		s.Consumption = *p.Consumption
	}
	if p.Emissions != nil {
		s.Emissions = *p.Emissions
	}
	if p.EmissionClass != nil {
		s.EmissionClass = *p.EmissionClass
	}
	return s
}

// ApplyCondition merges p into c at the condition level.
func ApplyCondition(c domain.Condition, p ConditionPatch) domain.Condition {
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Accident != nil {
		c.Accident = *p.Accident
	}
	if p.PreviousOwners != nil {
		c.PreviousOwners = *p.PreviousOwners
	}
	if p.Warranty != nil {
		c.Warranty = *p.Warranty
	}
	if p.ServiceHistory != nil {
		c.ServiceHistory = *p.ServiceHistory
	}
	return c
}

// requiredFields lists what must be filled before a draft may be previewed
// or saved, in display order.
var requiredFields = []string{"brand", "model", "year", "price", "mileage", "status"}

func fieldFilled(d Draft, name string) bool {
	switch name {
	case "brand":
		return strings.TrimSpace(d.Brand) != ""
	case "model":
		return strings.TrimSpace(d.Model) != ""
	case "year":
		return d.Year > 0
	case "price":
		return d.Price > 0
	case "mileage":
		return d.Mileage >= 0
	case "status":
		return d.Status == domain.StatusAvailable || d.Status == domain.StatusSold
	}
	return false
}

// ValidationError reports which required fields are missing or invalid.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Validate checks the required fields. It returns a *ValidationError listing
// every missing field, or nil when the draft is saveable.
func Validate(d Draft) error {
	var missing []string
	for _, name := range requiredFields {
		if !fieldFilled(d, name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Completion returns the fraction of required fields currently filled,
// as a percentage in [0, 100].
func Completion(d Draft) int {
	filled := 0
	for _, name := range requiredFields {
		if fieldFilled(d, name) {
			filled++
		}
	}
	return filled * 100 / len(requiredFields)
}

// SplitLines turns newline-delimited form text into a feature list,
// discarding blank lines and trimming whitespace.
func SplitLines(text string) []string {
	var result []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return result
}

// JoinLines is the inverse of SplitLines for rendering the edit form.
func JoinLines(items []string) string {
	return strings.Join(items, "\n")
}

// ToVehicle converts a validated draft into the domain entity handed to the
// repository. Timestamps and, for new records, the ID are assigned there.
func ToVehicle(d Draft) *domain.Vehicle {
	return &domain.Vehicle{
		ID:                 d.ID,
		Brand:              d.Brand,
		Model:              d.Model,
		Year:               d.Year,
		Price:              d.Price,
		Mileage:            d.Mileage,
		Images:             append([]string(nil), d.Images...),
		Description:        d.Description,
		Specs:              d.Specs,
		Condition:          d.Condition,
		Features:           append([]string(nil), d.Features...),
		AdditionalFeatures: append([]string(nil), d.AdditionalFeatures...),
		Status:             d.Status,
	}
}

// FromVehicle loads an existing vehicle into the editor.
func FromVehicle(v *domain.Vehicle) Draft {
	return Draft{
		ID:                 v.ID,
		Brand:              v.Brand,
		Model:              v.Model,
		Year:               v.Year,
		Price:              v.Price,
		Mileage:            v.Mileage,
		Images:             append([]string(nil), v.Images...),
		Description:        v.Description,
		Specs:              v.Specs,
		Condition:          v.Condition,
		Features:           append([]string(nil), v.Features...),
		AdditionalFeatures: append([]string(nil), v.AdditionalFeatures...),
		Status:             v.Status,
	}
}
