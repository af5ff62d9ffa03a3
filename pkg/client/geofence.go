package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Sternrassler/geo-location-client/pkg/batch"
	"github.com/Sternrassler/geo-location-client/pkg/casemap"
	"github.com/Sternrassler/geo-location-client/pkg/geo"
	"github.com/Sternrassler/geo-location-client/pkg/transport"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/location"
	"github.com/aws/aws-sdk-go-v2/service/location/types"
)

// SaveGeofences creates or replaces geofences. Inputs are sent in chunks of
// batch.MaxChunkSize concurrent calls; a chunk whose call fails reports all
// of its geofences as APIConnectionError entries. Every input appears in
// exactly one of the result's Successes or Errors.
func (c *Client) SaveGeofences(ctx context.Context, geofences []geo.GeofenceInput, opts *GeofenceOptions) (result geo.SaveGeofencesResult, err error) {
	const op = transport.OpBatchPutGeofence
	start := time.Now()
	defer func() { c.observe(op, start, err) }()

	if len(geofences) == 0 {
		return result, geo.NewError(geo.KindEmptyInput, "geofence input array is empty")
	}
	if err := geo.ValidateGeofenceInputs(geofences); err != nil {
		return result, err
	}
	c.warnDuplicates(op, geofenceIDs(geofences))
	if opts == nil {
		opts = &GeofenceOptions{}
	}

	collection, err := c.resolver.GeofenceCollection(ctx, opts.CollectionName)
	if err != nil {
		return result, err
	}
	creds, err := c.gate.Ensure(ctx)
	if err != nil {
		return result, err
	}
	callOpts := c.callOptions(op, creds, collection.Region)

	dispatch := func(ctx context.Context, chunk []geo.GeofenceInput) (geo.SaveGeofencesResult, error) {
		var partial geo.SaveGeofencesResult

		entries := make([]types.BatchPutGeofenceRequestEntry, 0, len(chunk))
		if err := casemap.Encode(chunk, &entries); err != nil {
			return partial, batch.LocalError(fmt.Errorf("encode geofences: %w", err))
		}

		out, err := c.api.BatchPutGeofence(ctx, &location.BatchPutGeofenceInput{
			CollectionName: aws.String(collection.Name),
			Entries:        entries,
		}, callOpts)
		if err != nil {
			return partial, err
		}

		if err := casemap.Decode(out, &partial); err != nil {
			return geo.SaveGeofencesResult{}, batch.LocalError(fmt.Errorf("decode saved geofences: %w", err))
		}
		return partial, nil
	}

	return batch.Execute(ctx, batch.Config{Operation: op}, geofences,
		func(g geo.GeofenceInput) string { return g.GeofenceID }, dispatch)
}

// GetGeofence returns a single geofence.
func (c *Client) GetGeofence(ctx context.Context, geofenceID string, opts *GeofenceOptions) (geofence *geo.Geofence, err error) {
	const op = transport.OpGetGeofence
	start := time.Now()
	defer func() { c.observe(op, start, err) }()

	if err := geo.ValidateGeofenceID(geofenceID); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &GeofenceOptions{}
	}

	collection, err := c.resolver.GeofenceCollection(ctx, opts.CollectionName)
	if err != nil {
		return nil, err
	}
	creds, err := c.gate.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	out, err := c.api.GetGeofence(ctx, &location.GetGeofenceInput{
		CollectionName: aws.String(collection.Name),
		GeofenceId:     aws.String(geofenceID),
	}, c.callOptions(op, creds, collection.Region))
	if err != nil {
		return nil, transport.WrapError(op, err)
	}

	geofence = &geo.Geofence{}
	if err := casemap.Decode(out, geofence); err != nil {
		return nil, err
	}
	return geofence, nil
}

// ListGeofences returns one page of geofences. Pass the returned NextToken
// in the options to fetch the next page.
func (c *Client) ListGeofences(ctx context.Context, opts *ListGeofencesOptions) (result geo.ListGeofencesResult, err error) {
	const op = transport.OpListGeofences
	start := time.Now()
	defer func() { c.observe(op, start, err) }()

	if opts == nil {
		opts = &ListGeofencesOptions{}
	}

	collection, err := c.resolver.GeofenceCollection(ctx, opts.CollectionName)
	if err != nil {
		return result, err
	}
	creds, err := c.gate.Ensure(ctx)
	if err != nil {
		return result, err
	}

	input := &location.ListGeofencesInput{
		CollectionName: aws.String(collection.Name),
	}
	if opts.NextToken != "" {
		input.NextToken = aws.String(opts.NextToken)
	}
	if opts.MaxResults > 0 {
		input.MaxResults = aws.Int32(opts.MaxResults)
	}

	out, err := c.api.ListGeofences(ctx, input, c.callOptions(op, creds, collection.Region))
	if err != nil {
		return result, transport.WrapError(op, err)
	}

	if err := casemap.Decode(out, &result); err != nil {
		return geo.ListGeofencesResult{}, err
	}
	if result.Entries == nil {
		result.Entries = []geo.Geofence{}
	}
	return result, nil
}

// ListAllGeofences follows NextToken until the collection is exhausted. Pages
// are fetched sequentially; the first error stops the walk.
func (c *Client) ListAllGeofences(ctx context.Context, opts *ListGeofencesOptions) ([]geo.Geofence, error) {
	page := ListGeofencesOptions{}
	if opts != nil {
		page = *opts
	}

	all := []geo.Geofence{}
	for pages := 1; ; pages++ {
		result, err := c.ListGeofences(ctx, &page)
		if err != nil {
			return nil, err
		}
		all = append(all, result.Entries...)

		if result.NextToken == "" {
			c.logger.Debug().Int("pages", pages).Int("geofences", len(all)).Msg("Listed all geofences")
			return all, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page.NextToken = result.NextToken
	}
}

// DeleteGeofences deletes geofences by ID in chunks of batch.MaxChunkSize
// concurrent calls. The provider only reports failures, so the successes of a
// chunk are its IDs minus those reported as failed.
func (c *Client) DeleteGeofences(ctx context.Context, geofenceIDs []string, opts *GeofenceOptions) (result geo.DeleteGeofencesResult, err error) {
	const op = transport.OpBatchDeleteGeofence
	start := time.Now()
	defer func() { c.observe(op, start, err) }()

	if len(geofenceIDs) == 0 {
		return result, geo.NewError(geo.KindEmptyInput, "geofence id array is empty")
	}
	if err := geo.ValidateGeofenceIDs(geofenceIDs); err != nil {
		return result, err
	}
	c.warnDuplicates(op, geofenceIDs)
	if opts == nil {
		opts = &GeofenceOptions{}
	}

	collection, err := c.resolver.GeofenceCollection(ctx, opts.CollectionName)
	if err != nil {
		return result, err
	}
	creds, err := c.gate.Ensure(ctx)
	if err != nil {
		return result, err
	}
	callOpts := c.callOptions(op, creds, collection.Region)

	dispatch := func(ctx context.Context, chunk []string) (geo.DeleteGeofencesResult, error) {
		out, err := c.api.BatchDeleteGeofence(ctx, &location.BatchDeleteGeofenceInput{
			CollectionName: aws.String(collection.Name),
			GeofenceIds:    chunk,
		}, callOpts)
		if err != nil {
			return geo.DeleteGeofencesResult{}, err
		}

		var reported []geo.GeofenceError
		if err := casemap.Decode(out.Errors, &reported); err != nil {
			return geo.DeleteGeofencesResult{}, batch.LocalError(fmt.Errorf("decode delete errors: %w", err))
		}
		return inferDeleteResult(chunk, reported), nil
	}

	return batch.Execute(ctx, batch.Config{Operation: op}, geofenceIDs,
		func(id string) string { return id }, dispatch)
}

// inferDeleteResult splits a chunk into deleted IDs and the provider errors.
// Every submitted ID yields exactly one entry: an ID submitted more than once
// is reported once per submission, all sharing the provider's outcome for it.
func inferDeleteResult(chunk []string, reported []geo.GeofenceError) geo.DeleteGeofencesResult {
	failed := make(map[string]geo.ErrorDetail, len(reported))
	for _, e := range reported {
		if _, seen := failed[e.GeofenceID]; !seen {
			failed[e.GeofenceID] = e.Error
		}
	}

	var result geo.DeleteGeofencesResult
	for _, id := range chunk {
		if detail, ok := failed[id]; ok {
			result.Errors = append(result.Errors, geo.GeofenceError{GeofenceID: id, Error: detail})
			continue
		}
		result.Successes = append(result.Successes, id)
	}
	return result
}

// warnDuplicates logs IDs submitted more than once. They are sent as given.
func (c *Client) warnDuplicates(op string, ids []string) {
	dups := geo.DuplicateGeofenceIDs(ids)
	if len(dups) == 0 {
		return
	}
	c.logger.Warn().
		Str("operation", op).
		Str("geofence_ids", strings.Join(dups, ", ")).
		Msg("Duplicate geofence IDs in request")
}

func geofenceIDs(geofences []geo.GeofenceInput) []string {
	ids := make([]string, len(geofences))
	for i, g := range geofences {
		ids[i] = g.GeofenceID
	}
	return ids
}
