package domain

import (
	"sort"
	"strings"
)

type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
)

// Filter selects a subset of an in-memory vehicle list. Zero values mean
// "unset": an unset field matches every vehicle, so the zero Filter is the
// identity. All set fields must match (conjunction).
type Filter struct {
	Query    string
	Brand    string
	FuelType string
	Status   VehicleStatus
	MinPrice float64
	MaxPrice float64
	Sort     SortOrder
}

// ApplyFilter returns the vehicles matching f, ordered by f.Sort. The input
// slice is never mutated; the result is a fresh slice. The catalog is small
// enough (tens to low hundreds of vehicles) that this runs over the fully
// materialized list on every request.
func ApplyFilter(vehicles []*Vehicle, f Filter) []*Vehicle {
	result := make([]*Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if v == nil {
			continue
		}
		if matches(v, f) {
			result = append(result, v)
		}
	}
	sortVehicles(result, f.Sort)
	return result
}

func matches(v *Vehicle, f Filter) bool {
	if f.Query != "" {
		haystack := strings.ToLower(v.Title())
		if !strings.Contains(haystack, strings.ToLower(f.Query)) {
			return false
		}
	}
	if f.Brand != "" && v.Brand != f.Brand {
		return false
	}
	if f.FuelType != "" && v.Specs.FuelType != f.FuelType {
		return false
	}
	if f.Status != "" && v.Status != f.Status {
		return false
	}
	if f.MinPrice > 0 && v.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && v.Price > f.MaxPrice {
		return false
	}
	return true
}

// sortVehicles orders in place. Sorting is stable so equal keys keep their
// insertion order.
func sortVehicles(vehicles []*Vehicle, order SortOrder) {
	switch order {
	case SortPriceAsc:
		sort.SliceStable(vehicles, func(i, j int) bool {
			return vehicles[i].Price < vehicles[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(vehicles, func(i, j int) bool {
			return vehicles[i].Price > vehicles[j].Price
		})
	default: // SortNewest
		sort.SliceStable(vehicles, func(i, j int) bool {
			return vehicles[i].CreatedAt.After(vehicles[j].CreatedAt)
		})
	}
}

// FilterGallery returns the images in the given category, or all images when
// the category is unset.
func FilterGallery(images []*GalleryImage, category GalleryCategory) []*GalleryImage {
	if category == CategoryUncategorized {
		return append([]*GalleryImage(nil), images...)
	}
	result := make([]*GalleryImage, 0, len(images))
	for _, img := range images {
		if img != nil && img.Category == category {
			result = append(result, img)
		}
	}
	return result
}

// DistinctBrands derives the brand filter options from the loaded list:
// deduplicated, lexicographically sorted, blanks skipped.
func DistinctBrands(vehicles []*Vehicle) []string {
	values := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		if v != nil {
			values = append(values, v.Brand)
		}
	}
	return distinct(values)
}

// DistinctFuelTypes derives the fuel-type filter options from the loaded list.
func DistinctFuelTypes(vehicles []*Vehicle) []string {
	values := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		if v != nil {
			values = append(values, v.Specs.FuelType)
		}
	}
	return distinct(values)
}

// DistinctCategories derives the category filter options present in the
// loaded gallery.
func DistinctCategories(images []*GalleryImage) []string {
	values := make([]string, 0, len(images))
	for _, img := range images {
		if img != nil {
			values = append(values, string(img.Category))
		}
	}
	return distinct(values)
}

func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	sort.Strings(result)
	return result
}
