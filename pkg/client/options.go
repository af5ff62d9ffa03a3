package client

import (
	"github.com/Sternrassler/geo-location-client/pkg/geo"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/location"
)

// SearchByTextOptions are the options of SearchByText and
// SearchForSuggestions. BiasPosition and SearchAreaConstraints are mutually
// exclusive.
type SearchByTextOptions struct {
	Countries             []string
	MaxResults            int32
	SearchIndexName       string
	ProviderName          string
	Language              string
	Categories            []string
	BiasPosition          *geo.Coordinates
	SearchAreaConstraints *geo.BoundingBox
}

// SearchByCoordinatesOptions are the options of SearchByCoordinates.
type SearchByCoordinatesOptions struct {
	MaxResults      int32
	SearchIndexName string
	ProviderName    string
	Language        string
}

// SearchByPlaceIDOptions are the options of SearchByPlaceID.
type SearchByPlaceIDOptions struct {
	SearchIndexName string
	Language        string
}

// GeofenceOptions select the geofence collection of a geofence call.
type GeofenceOptions struct {
	CollectionName string
}

// ListGeofencesOptions are the options of ListGeofences.
type ListGeofencesOptions struct {
	CollectionName string
	NextToken      string
	MaxResults     int32
}

func (o *SearchByTextOptions) validate() error {
	if o.BiasPosition != nil && o.SearchAreaConstraints != nil {
		return geo.NewError(geo.KindInvalidOptions,
			"biasPosition and searchAreaConstraints are mutually exclusive, please remove one or the other from the options object")
	}
	return validateProvider(o.ProviderName)
}

func (o *SearchByCoordinatesOptions) validate() error {
	return validateProvider(o.ProviderName)
}

// validateProvider rejects options addressed to another provider.
func validateProvider(name string) error {
	if name != "" && name != ProviderName {
		return geo.NewError(geo.KindInvalidOptions, "provider %q is not supported by this client", name)
	}
	return nil
}

// searchFilter is the provider filter shared by text and suggestion search.
type searchFilter struct {
	countries    []string
	maxResults   *int32
	language     *string
	categories   []string
	biasPosition []float64
	bbox         []float64
}

func (o *SearchByTextOptions) filter() searchFilter {
	var f searchFilter
	if len(o.Countries) > 0 {
		f.countries = o.Countries
	}
	if o.MaxResults > 0 {
		f.maxResults = aws.Int32(o.MaxResults)
	}
	if o.Language != "" {
		f.language = aws.String(o.Language)
	}
	if len(o.Categories) > 0 {
		f.categories = o.Categories
	}
	if o.BiasPosition != nil {
		f.biasPosition = o.BiasPosition[:]
	}
	if o.SearchAreaConstraints != nil {
		f.bbox = o.SearchAreaConstraints[:]
	}
	return f
}

// applyText copies the options onto a text search input.
func (o *SearchByTextOptions) applyText(in *location.SearchPlaceIndexForTextInput) {
	f := o.filter()
	in.FilterCountries = f.countries
	in.MaxResults = f.maxResults
	in.Language = f.language
	in.FilterCategories = f.categories
	in.BiasPosition = f.biasPosition
	in.FilterBBox = f.bbox
}

// applySuggestions copies the options onto a suggestions input.
func (o *SearchByTextOptions) applySuggestions(in *location.SearchPlaceIndexForSuggestionsInput) {
	f := o.filter()
	in.FilterCountries = f.countries
	in.MaxResults = f.maxResults
	in.Language = f.language
	in.FilterCategories = f.categories
	in.BiasPosition = f.biasPosition
	in.FilterBBox = f.bbox
}

// applyPosition copies the options onto a position search input.
func (o *SearchByCoordinatesOptions) applyPosition(in *location.SearchPlaceIndexForPositionInput) {
	if o.MaxResults > 0 {
		in.MaxResults = aws.Int32(o.MaxResults)
	}
	if o.Language != "" {
		in.Language = aws.String(o.Language)
	}
}
