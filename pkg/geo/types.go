// Package geo defines the provider-neutral data model for place search and
// geofence management, together with its error taxonomy and local input
// validation.
//
// Every type here carries camelCase JSON tags. Provider payloads are converted
// into these types by pkg/casemap, so nothing outside that package deals in
// provider (PascalCase) field names.
package geo

import "time"

// Coordinates is a (longitude, latitude) pair. Values are passed through to
// the provider unchecked.
type Coordinates [2]float64

// Longitude returns the first component.
func (c Coordinates) Longitude() float64 { return c[0] }

// Latitude returns the second component.
func (c Coordinates) Latitude() float64 { return c[1] }

// BoundingBox is (south-west longitude, south-west latitude, north-east
// longitude, north-east latitude). SW <= NE is the caller's responsibility.
type BoundingBox [4]float64

// PlaceGeometry is the geometry of a place: a single point.
type PlaceGeometry struct {
	Point Coordinates `json:"point"`
}

// TimeZone is the time zone a place is located in.
type TimeZone struct {
	Name   string `json:"name"`
	Offset *int32 `json:"offset,omitempty"`
}

// Place is a search result. All descriptive fields are optional.
type Place struct {
	AddressNumber   string         `json:"addressNumber,omitempty"`
	Country         string         `json:"country,omitempty"`
	Geometry        *PlaceGeometry `json:"geometry,omitempty"`
	Label           string         `json:"label,omitempty"`
	Municipality    string         `json:"municipality,omitempty"`
	Neighborhood    string         `json:"neighborhood,omitempty"`
	PostalCode      string         `json:"postalCode,omitempty"`
	Region          string         `json:"region,omitempty"`
	Street          string         `json:"street,omitempty"`
	SubRegion       string         `json:"subRegion,omitempty"`
	SubMunicipality string         `json:"subMunicipality,omitempty"`
	UnitNumber      string         `json:"unitNumber,omitempty"`
	UnitType        string         `json:"unitType,omitempty"`
	Categories      []string       `json:"categories,omitempty"`
	Interpolated    *bool          `json:"interpolated,omitempty"`
	TimeZone        *TimeZone      `json:"timeZone,omitempty"`
}

// SuggestionResult is a single autocomplete suggestion.
type SuggestionResult struct {
	Text    string `json:"text"`
	PlaceID string `json:"placeId,omitempty"`
}

// LinearRing is a closed sequence of at least four coordinates.
type LinearRing []Coordinates

// GeofencePolygon is an ordered sequence of linear rings.
type GeofencePolygon []LinearRing

// PolygonGeometry wraps a polygon.
type PolygonGeometry struct {
	Polygon GeofencePolygon `json:"polygon"`
}

// GeofenceInput is a geofence to be created or replaced.
type GeofenceInput struct {
	GeofenceID string          `json:"geofenceId"`
	Geometry   PolygonGeometry `json:"geometry"`
}

// GeofenceStatus is the provider lifecycle status of a geofence.
type GeofenceStatus string

const (
	GeofenceStatusActive   GeofenceStatus = "ACTIVE"
	GeofenceStatusPending  GeofenceStatus = "PENDING"
	GeofenceStatusFailed   GeofenceStatus = "FAILED"
	GeofenceStatusDeleted  GeofenceStatus = "DELETED"
	GeofenceStatusDeleting GeofenceStatus = "DELETING"
)

// GeofenceBase identifies a stored geofence and its timestamps.
type GeofenceBase struct {
	GeofenceID string     `json:"geofenceId"`
	CreateTime *time.Time `json:"createTime,omitempty"`
	UpdateTime *time.Time `json:"updateTime,omitempty"`
}

// Geofence is a stored geofence.
type Geofence struct {
	GeofenceID string          `json:"geofenceId"`
	Geometry   PolygonGeometry `json:"geometry"`
	Status     GeofenceStatus  `json:"status,omitempty"`
	CreateTime *time.Time      `json:"createTime,omitempty"`
	UpdateTime *time.Time      `json:"updateTime,omitempty"`
}

// ErrorDetail is the code and message of a per-item failure.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GeofenceError reports a failure for a single geofence of a batch.
type GeofenceError struct {
	GeofenceID string      `json:"geofenceId"`
	Error      ErrorDetail `json:"error"`
}

// BatchResult aggregates the outcome of a batched mutation. Every submitted
// item appears in exactly one of Successes or Errors.
type BatchResult[T any] struct {
	Successes []T             `json:"successes"`
	Errors    []GeofenceError `json:"errors"`
}

// SaveGeofencesResult is the outcome of a batched geofence save.
type SaveGeofencesResult = BatchResult[GeofenceBase]

// DeleteGeofencesResult is the outcome of a batched geofence delete. Successes
// holds the deleted geofence IDs.
type DeleteGeofencesResult = BatchResult[string]

// ListGeofencesResult is one page of geofences.
type ListGeofencesResult struct {
	Entries   []Geofence `json:"entries"`
	NextToken string     `json:"nextToken,omitempty"`
}

// MapStyle describes a configured map resource.
type MapStyle struct {
	MapName string `json:"mapName"`
	Style   string `json:"style"`
	Region  string `json:"region"`
}
