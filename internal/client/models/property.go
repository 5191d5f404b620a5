package models

import (
	"strings"
	"time"
)

// PropertyType is the normalized listing category.
type PropertyType string

const (
	PropertyTypeHouse     PropertyType = "house"
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeLand      PropertyType = "land"
	PropertyTypeOther     PropertyType = "other"
)

// ParsePropertyType parses a wire-level type string case-insensitively.
// Unknown or empty input yields PropertyTypeOther.
func ParsePropertyType(s string) PropertyType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(PropertyTypeHouse):
		return PropertyTypeHouse
	case string(PropertyTypeApartment):
		return PropertyTypeApartment
	case string(PropertyTypeLand):
		return PropertyTypeLand
	default:
		return PropertyTypeOther
	}
}

// PropertyStatus is the normalized availability state of a listing.
type PropertyStatus string

const (
	PropertyStatusAvailable   PropertyStatus = "available"
	PropertyStatusUnavailable PropertyStatus = "unavailable"
)

// ParsePropertyStatus parses a wire-level status string case-insensitively.
// Unknown or empty input yields PropertyStatusAvailable.
func ParsePropertyStatus(s string) PropertyStatus {
	if strings.EqualFold(strings.TrimSpace(s), string(PropertyStatusUnavailable)) {
		return PropertyStatusUnavailable
	}
	return PropertyStatusAvailable
}

// Property is a normalized listing. Instances are produced by the catalog
// mapper and immutable thereafter. Id, Title, Description, Location and
// OwnerID are never empty-for-null ambiguous: a null wire value maps to "".
type Property struct {
	ID           string
	Title        string
	Description  string
	PropertyType PropertyType
	Price        float64
	Currency     string
	Location     string
	Address      *string
	Area         *float64
	Bedrooms     *int
	Bathrooms    *int
	ImageURL     *string
	ImageURLs    []string
	Status       PropertyStatus
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	OwnerID      string

	// Features lists the feature names whose wire value was truthy.
	// nil means the wire record carried no feature mapping at all;
	// an empty slice means a mapping was present with no enabled feature.
	Features []string
}
