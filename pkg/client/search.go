package client

import (
	"context"
	"errors"
	"time"

	"github.com/Sternrassler/geo-location-client/pkg/cache"
	"github.com/Sternrassler/geo-location-client/pkg/casemap"
	"github.com/Sternrassler/geo-location-client/pkg/geo"
	"github.com/Sternrassler/geo-location-client/pkg/transport"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/location"
)

// placeResult is the camelized form of a text or position search result.
type placeResult struct {
	Place   *geo.Place `json:"place"`
	PlaceID string     `json:"placeId"`
}

// SearchByText searches the place index for places matching text.
func (c *Client) SearchByText(ctx context.Context, text string, opts *SearchByTextOptions) (places []geo.Place, err error) {
	const op = transport.OpSearchPlaceIndexForText
	start := time.Now()
	defer func() { c.observe(op, start, err) }()

	if text == "" {
		return nil, geo.NewError(geo.KindInvalidInput, "search text must not be empty")
	}
	if opts == nil {
		opts = &SearchByTextOptions{}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	index, err := c.resolver.SearchIndex(ctx, opts.SearchIndexName)
	if err != nil {
		return nil, err
	}
	creds, err := c.gate.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	input := &location.SearchPlaceIndexForTextInput{
		IndexName: aws.String(index.Name),
		Text:      aws.String(text),
	}
	opts.applyText(input)

	c.logger.Debug().Str("operation", op).Str("index", index.Name).Msg("Searching by text")

	out, err := c.api.SearchPlaceIndexForText(ctx, input, c.callOptions(op, creds, index.Region))
	if err != nil {
		return nil, transport.WrapError(op, err)
	}

	var results []placeResult
	if err := casemap.Decode(out.Results, &results); err != nil {
		return nil, err
	}

	places = make([]geo.Place, 0, len(results))
	for _, r := range results {
		if r.Place != nil {
			places = append(places, *r.Place)
		}
	}
	return places, nil
}

// SearchForSuggestions returns autocomplete suggestions for partial text.
func (c *Client) SearchForSuggestions(ctx context.Context, text string, opts *SearchByTextOptions) (suggestions []geo.SuggestionResult, err error) {
	const op = transport.OpSearchPlaceIndexForSuggestions
	start := time.Now()
	defer func() { c.observe(op, start, err) }()

	if text == "" {
		return nil, geo.NewError(geo.KindInvalidInput, "search text must not be empty")
	}
	if opts == nil {
		opts = &SearchByTextOptions{}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	index, err := c.resolver.SearchIndex(ctx, opts.SearchIndexName)
	if err != nil {
		return nil, err
	}
	creds, err := c.gate.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	input := &location.SearchPlaceIndexForSuggestionsInput{
		IndexName: aws.String(index.Name),
		Text:      aws.String(text),
	}
	opts.applySuggestions(input)

	out, err := c.api.SearchPlaceIndexForSuggestions(ctx, input, c.callOptions(op, creds, index.Region))
	if err != nil {
		return nil, transport.WrapError(op, err)
	}

	suggestions = make([]geo.SuggestionResult, 0, len(out.Results))
	if err := casemap.Decode(out.Results, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// SearchByPlaceID looks up a place by its provider ID. It returns nil when
// the provider has no place. With a place cache configured, cached places are
// served without a provider call.
func (c *Client) SearchByPlaceID(ctx context.Context, placeID string, opts *SearchByPlaceIDOptions) (place *geo.Place, err error) {
	const op = transport.OpGetPlace
	start := time.Now()
	defer func() { c.observe(op, start, err) }()

	if placeID == "" {
		return nil, geo.NewError(geo.KindInvalidInput, "place id must not be empty")
	}
	if opts == nil {
		opts = &SearchByPlaceIDOptions{}
	}

	index, err := c.resolver.SearchIndex(ctx, opts.SearchIndexName)
	if err != nil {
		return nil, err
	}
	creds, err := c.gate.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	key := cache.CacheKey{Index: index.Name, PlaceID: placeID, Language: opts.Language}
	if cached := c.cachedPlace(ctx, key); cached != nil {
		return cached, nil
	}

	input := &location.GetPlaceInput{
		IndexName: aws.String(index.Name),
		PlaceId:   aws.String(placeID),
	}
	if opts.Language != "" {
		input.Language = aws.String(opts.Language)
	}

	out, err := c.api.GetPlace(ctx, input, c.callOptions(op, creds, index.Region))
	if err != nil {
		return nil, transport.WrapError(op, err)
	}
	if out.Place == nil {
		return nil, nil
	}

	place = &geo.Place{}
	if err := casemap.Decode(out.Place, place); err != nil {
		return nil, err
	}

	c.storePlace(ctx, key, *place)
	return place, nil
}

// SearchByCoordinates reverse-geocodes a position. The provider returns at
// most one meaningful place for a position, so only the first result is
// returned; nil when there is none.
func (c *Client) SearchByCoordinates(ctx context.Context, coordinates geo.Coordinates, opts *SearchByCoordinatesOptions) (place *geo.Place, err error) {
	const op = transport.OpSearchPlaceIndexForPosition
	start := time.Now()
	defer func() { c.observe(op, start, err) }()

	if opts == nil {
		opts = &SearchByCoordinatesOptions{}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	index, err := c.resolver.SearchIndex(ctx, opts.SearchIndexName)
	if err != nil {
		return nil, err
	}
	creds, err := c.gate.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	input := &location.SearchPlaceIndexForPositionInput{
		IndexName: aws.String(index.Name),
		Position:  []float64{coordinates.Longitude(), coordinates.Latitude()},
	}
	opts.applyPosition(input)

	out, err := c.api.SearchPlaceIndexForPosition(ctx, input, c.callOptions(op, creds, index.Region))
	if err != nil {
		return nil, transport.WrapError(op, err)
	}
	if len(out.Results) == 0 {
		return nil, nil
	}

	var first placeResult
	if err := casemap.Decode(out.Results[0], &first); err != nil {
		return nil, err
	}
	return first.Place, nil
}

// cachedPlace returns the cached place for key, or nil on a miss, a cache
// error or when no cache is configured.
func (c *Client) cachedPlace(ctx context.Context, key cache.CacheKey) *geo.Place {
	if c.cache == nil {
		return nil
	}
	entry, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			c.logger.Warn().Err(err).Str("key", key.String()).Msg("Place cache get error")
		}
		return nil
	}
	c.logger.Debug().Str("key", key.String()).Dur("ttl", entry.TTL()).Msg("Place cache hit")
	place := entry.Place
	return &place
}

// storePlace caches place under key. Failures are logged only.
func (c *Client) storePlace(ctx context.Context, key cache.CacheKey, place geo.Place) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, key, cache.NewEntry(place, c.config.PlaceCacheTTL)); err != nil {
		c.logger.Warn().Err(err).Str("key", key.String()).Msg("Failed to cache place")
		return
	}
	c.logger.Debug().Str("key", key.String()).Dur("ttl", c.config.PlaceCacheTTL).Msg("Cached place")
}
