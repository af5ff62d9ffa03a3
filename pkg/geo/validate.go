package geo

import (
	"regexp"
	"strings"
)

const (
	// MinRingVertices is the minimum number of coordinates of a closed ring.
	MinRingVertices = 4

	// MaxPolygonVertices is the provider limit on vertices per polygon.
	MaxPolygonVertices = 1000
)

var geofenceIDPattern = regexp.MustCompile(`^[-._\p{L}\p{N}]+$`)

// ValidateGeofenceID checks that id is non-empty and only contains letters,
// digits, hyphens, periods and underscores.
func ValidateGeofenceID(id string) error {
	if id == "" {
		return &Error{
			Kind:    KindInvalidGeofenceID,
			Message: "geofenceId cannot be empty",
		}
	}
	if !geofenceIDPattern.MatchString(id) {
		return &Error{
			Kind:    KindInvalidGeofenceID,
			Message: "geofenceId can only contain alphanumeric characters, hyphens, underscores and periods",
			ID:      id,
		}
	}
	return nil
}

// ValidateGeofenceIDs validates every id and reports all invalid ones in a
// single error.
func ValidateGeofenceIDs(ids []string) error {
	var bad []string
	for _, id := range ids {
		if ValidateGeofenceID(id) != nil {
			bad = append(bad, id)
		}
	}
	if len(bad) > 0 {
		return &Error{
			Kind:    KindInvalidGeofenceID,
			Message: "invalid geofence ids: " + strings.Join(bad, ", "),
			ID:      strings.Join(bad, ","),
		}
	}
	return nil
}

// ValidateLinearRing checks vertex count and closure of a ring. Coordinates
// themselves are not range-checked.
func ValidateLinearRing(ring LinearRing, geofenceID string) error {
	if len(ring) < MinRingVertices {
		return &Error{
			Kind:    KindInvalidPolygon,
			Message: "linear ring must contain 4 or more coordinates",
			ID:      geofenceID,
		}
	}
	if ring[0] != ring[len(ring)-1] {
		return &Error{
			Kind:    KindInvalidPolygon,
			Message: "linear ring's first and last coordinates are not the same",
			ID:      geofenceID,
		}
	}
	return nil
}

// ValidatePolygon checks that polygon has at least one ring, stays within the
// vertex limit and that every ring is valid.
func ValidatePolygon(polygon GeofencePolygon, geofenceID string) error {
	if len(polygon) == 0 {
		return &Error{
			Kind:    KindInvalidPolygon,
			Message: "polygon must contain at least one linear ring",
			ID:      geofenceID,
		}
	}

	vertices := 0
	for _, ring := range polygon {
		vertices += len(ring)
	}
	if vertices > MaxPolygonVertices {
		return &Error{
			Kind:    KindInvalidPolygon,
			Message: "polygon has more than the maximum 1000 vertices",
			ID:      geofenceID,
		}
	}

	for _, ring := range polygon {
		if err := ValidateLinearRing(ring, geofenceID); err != nil {
			return err
		}
	}
	return nil
}

// ValidateGeofenceInputs validates IDs and polygons of every input. It stops
// at the first invalid geofence. Duplicate IDs are not rejected here; see
// DuplicateGeofenceIDs.
func ValidateGeofenceInputs(inputs []GeofenceInput) error {
	for _, in := range inputs {
		if err := ValidateGeofenceID(in.GeofenceID); err != nil {
			return err
		}
		if err := ValidatePolygon(in.Geometry.Polygon, in.GeofenceID); err != nil {
			return err
		}
	}
	return nil
}

// DuplicateGeofenceIDs returns every ID that occurs more than once, in order
// of second occurrence.
func DuplicateGeofenceIDs(ids []string) []string {
	seen := make(map[string]int, len(ids))
	var dups []string
	for _, id := range ids {
		seen[id]++
		if seen[id] == 2 {
			dups = append(dups, id)
		}
	}
	return dups
}
