// Package catalog translates wire-level listing rows into validated domain
// properties and exposes the fetch operations the listing screens consume.
package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/wintakam/wintakam/internal/client/gateway"
	"github.com/wintakam/wintakam/internal/client/models"
)

// DefaultCurrency is used when a wire record carries no currency at all.
const DefaultCurrency = "XAF"

// MapRecord normalizes one loosely-typed wire record into a Property.
//
// The function is pure and total: it never fails. Enum and feature values
// degrade to deterministic defaults, null strings become empty strings, and
// malformed numerics or timestamps fall back to zero values (their
// well-formedness is the backend's contract).
func MapRecord(rec gateway.RawRecord) models.Property {
	p := models.Property{
		ID:           stringField(rec, "id"),
		Title:        stringField(rec, "title"),
		Description:  stringField(rec, "description"),
		PropertyType: models.ParsePropertyType(stringField(rec, "property_type")),
		Price:        numberField(rec, "price"),
		Currency:     stringField(rec, "currency"),
		Location:     stringField(rec, "location"),
		Address:      optionalString(rec, "address"),
		Area:         optionalNumber(rec, "area"),
		Bedrooms:     optionalInt(rec, "bedrooms"),
		Bathrooms:    optionalInt(rec, "bathrooms"),
		Status:       models.ParsePropertyStatus(stringField(rec, "status")),
		CreatedAt:    timeField(rec, "created_at"),
		UpdatedAt:    optionalTime(rec, "updated_at"),
		OwnerID:      stringField(rec, "owner_id"),
	}

	if _, present := rec["currency"]; !present || rec["currency"] == nil {
		p.Currency = DefaultCurrency
	}

	// A non-empty image list wins over the single-image column.
	p.ImageURLs = stringListField(rec, "image_urls")
	if len(p.ImageURLs) > 0 {
		first := p.ImageURLs[0]
		p.ImageURL = &first
	} else {
		p.ImageURL = optionalString(rec, "image_url")
	}

	p.Features = featureNames(rec, "features")

	return p
}

func stringField(rec gateway.RawRecord, key string) string {
	if s, ok := rec[key].(string); ok {
		return s
	}
	return ""
}

func optionalString(rec gateway.RawRecord, key string) *string {
	if s, ok := rec[key].(string); ok {
		return &s
	}
	return nil
}

func numberField(rec gateway.RawRecord, key string) float64 {
	switch v := rec[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func optionalNumber(rec gateway.RawRecord, key string) *float64 {
	if _, ok := rec[key]; !ok || rec[key] == nil {
		return nil
	}
	switch rec[key].(type) {
	case float64, int, int64:
		n := numberField(rec, key)
		return &n
	default:
		return nil
	}
}

func optionalInt(rec gateway.RawRecord, key string) *int {
	n := optionalNumber(rec, key)
	if n == nil {
		return nil
	}
	i := int(*n)
	return &i
}

func timeField(rec gateway.RawRecord, key string) time.Time {
	s, ok := rec[key].(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func optionalTime(rec gateway.RawRecord, key string) *time.Time {
	t := timeField(rec, key)
	if t.IsZero() {
		return nil
	}
	return &t
}

func stringListField(rec gateway.RawRecord, key string) []string {
	list, ok := rec[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// featureNames extracts the names of enabled features. A feature is enabled
// iff its value is boolean true or the string "true" (case-insensitive).
// An absent mapping yields nil; a present mapping with no enabled feature
// yields an empty, non-nil slice. Names are sorted for determinism.
func featureNames(rec gateway.RawRecord, key string) []string {
	raw, present := rec[key]
	if !present || raw == nil {
		return nil
	}
	mapping, ok := raw.(map[string]any)
	if !ok {
		return nil
	}

	names := make([]string, 0, len(mapping))
	for name, value := range mapping {
		switch v := value.(type) {
		case bool:
			if v {
				names = append(names, name)
			}
		case string:
			if strings.EqualFold(v, "true") {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
