package models

import (
	"encoding/json"
	"time"
)

// Property is a listing row. Features and ImageURLs are stored as JSONB and
// passed through unparsed; clients own their interpretation. The json tags
// define the row shape served by the REST endpoints.
type Property struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	PropertyType string          `json:"property_type"`
	Price        float64         `json:"price"`
	Currency     string          `json:"currency"`
	Location     string          `json:"location"`
	Address      *string         `json:"address,omitempty"`
	Area         *float64        `json:"area,omitempty"`
	Bedrooms     *int            `json:"bedrooms,omitempty"`
	Bathrooms    *int            `json:"bathrooms,omitempty"`
	ImageURL     *string         `json:"image_url,omitempty"`
	ImageURLs    json.RawMessage `json:"image_urls,omitempty"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
	OwnerID      string          `json:"owner_id"`
	Features     json.RawMessage `json:"features,omitempty"`
}
