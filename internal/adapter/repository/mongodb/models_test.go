package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SainteOfficial/autohaus-service/internal/inventory/domain"
)

func TestNormalizeSpecs_JSONText(t *testing.T) {
	specs := normalizeSpecs(`{"fuelType":"Diesel","power":"190 PS"}`)
	assert.Equal(t, "Diesel", specs.FuelType)
	assert.Equal(t, "190 PS", specs.Power)
}

func TestNormalizeSpecs_EmbeddedDocument(t *testing.T) {
	// Hand-edited rows may carry a structured document instead of text.
	doc := primitive.D{
		{Key: "fueltype", Value: "Petrol"},
		{Key: "transmission", Value: "Automatic"},
	}
	specs := normalizeSpecs(doc)
	assert.Equal(t, "Petrol", specs.FuelType)
	assert.Equal(t, "Automatic", specs.Transmission)

	m := primitive.M{"fueltype": "Hybrid"}
	assert.Equal(t, "Hybrid", normalizeSpecs(m).FuelType)
}

func TestNormalizeSpecs_Degrades(t *testing.T) {
	assert.Equal(t, domain.Specs{}, normalizeSpecs(nil))
	assert.Equal(t, domain.Specs{}, normalizeSpecs("not json"))
	assert.Equal(t, domain.Specs{}, normalizeSpecs(42))
}

func TestNormalizeCondition(t *testing.T) {
	cond := normalizeCondition(`{"type":"used","accident":false,"previousOwners":2,"warranty":true}`)
	assert.Equal(t, domain.ConditionUsed, cond.Type)
	assert.Equal(t, 2, cond.PreviousOwners)
	assert.True(t, cond.Warranty)
}

func TestVehicleDocument_RoundTrip(t *testing.T) {
	vehicle := &domain.Vehicle{
		ID:                 primitive.NewObjectID().Hex(),
		Brand:              "Mercedes-Benz",
		Model:              "C 220 d",
		Year:               2022,
		Price:              38900,
		Mileage:            21000,
		Specs:              domain.Specs{FuelType: "Diesel", Power: "200 PS"},
		Condition:          domain.Condition{Type: domain.ConditionUsed, PreviousOwners: 1},
		Features:           []string{"LED", "Navi"},
		AdditionalFeatures: []string{"AHK abnehmbar"},
		Status:             domain.StatusAvailable,
	}

	doc, err := toVehicleDocument(vehicle)
	require.NoError(t, err)

	// Nested records persist as JSON text.
	_, isText := doc.Specs.(string)
	assert.True(t, isText)

	got := toDomainVehicle(doc)
	assert.Equal(t, vehicle.Brand, got.Brand)
	assert.Equal(t, vehicle.Specs, got.Specs)
	assert.Equal(t, vehicle.Condition, got.Condition)
	assert.Equal(t, vehicle.AdditionalFeatures, got.AdditionalFeatures)
}

func TestVehicleDocument_FeaturesKeyIsFlattened(t *testing.T) {
	doc, err := toVehicleDocument(&domain.Vehicle{
		Brand:              "Audi",
		AdditionalFeatures: []string{"Panoramadach"},
	})
	require.NoError(t, err)

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Contains(t, m, "additionalfeatures")
	assert.NotContains(t, m, "additionalFeatures")
}

func TestToVehicleDocument_RejectsMalformedID(t *testing.T) {
	_, err := toVehicleDocument(&domain.Vehicle{ID: "not-an-object-id"})
	assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
}
