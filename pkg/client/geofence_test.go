package client

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Sternrassler/geo-location-client/internal/testutil"
	"github.com/Sternrassler/geo-location-client/pkg/geo"
	"github.com/Sternrassler/geo-location-client/pkg/transport"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/location"
	"github.com/aws/aws-sdk-go-v2/service/location/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareRing() geo.LinearRing {
	return geo.LinearRing{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}
}

func geofenceInputs(n int) []geo.GeofenceInput {
	inputs := make([]geo.GeofenceInput, n)
	for i := range inputs {
		inputs[i] = geo.GeofenceInput{
			GeofenceID: fmt.Sprintf("gf-%02d", i),
			Geometry:   geo.PolygonGeometry{Polygon: geo.GeofencePolygon{squareRing()}},
		}
	}
	return inputs
}

// putSucceeds reports every entry of the request as saved.
func putSucceeds(in *location.BatchPutGeofenceInput) *location.BatchPutGeofenceOutput {
	now := time.Now().UTC().Truncate(time.Second)
	out := &location.BatchPutGeofenceOutput{}
	for _, e := range in.Entries {
		out.Successes = append(out.Successes, types.BatchPutGeofenceSuccess{
			GeofenceId: e.GeofenceId,
			CreateTime: aws.Time(now),
			UpdateTime: aws.Time(now),
		})
	}
	return out
}

// assertPartition checks that every id appears exactly once across
// successes and errors.
func assertPartition(t *testing.T, want []string, successes []string, errs []geo.GeofenceError) {
	t.Helper()

	got := append([]string{}, successes...)
	for _, e := range errs {
		got = append(got, e.GeofenceID)
	}
	sort.Strings(got)

	expected := append([]string{}, want...)
	sort.Strings(expected)
	assert.Equal(t, expected, got)
}

func TestSaveGeofences_ChunkFailureIsolated(t *testing.T) {
	fake := testutil.NewFakeLocation()

	var mu sync.Mutex
	var chunkSizes []int
	fake.BatchPutGeofenceFunc = func(_ context.Context, in *location.BatchPutGeofenceInput) (*location.BatchPutGeofenceOutput, error) {
		mu.Lock()
		chunkSizes = append(chunkSizes, len(in.Entries))
		mu.Unlock()

		if aws.ToString(in.Entries[0].GeofenceId) == "gf-10" {
			return nil, fmt.Errorf("connection reset by peer")
		}
		return putSucceeds(in), nil
	}
	c, _ := newTestClient(t, fake, testutil.StaticSessions())

	inputs := geofenceInputs(25)
	result, err := c.SaveGeofences(context.Background(), inputs, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, fake.CallCount(transport.OpBatchPutGeofence))
	sort.Ints(chunkSizes)
	assert.Equal(t, []int{5, 10, 10}, chunkSizes)

	require.Len(t, result.Successes, 15)
	require.Len(t, result.Errors, 10)
	for i, e := range result.Errors {
		assert.Equal(t, fmt.Sprintf("gf-%02d", 10+i), e.GeofenceID)
		assert.Equal(t, geo.CodeAPIConnectionError, e.Error.Code)
		assert.Contains(t, e.Error.Message, "connection reset by peer")
	}
	for _, s := range result.Successes {
		assert.NotNil(t, s.CreateTime)
	}

	successIDs := make([]string, len(result.Successes))
	for i, s := range result.Successes {
		successIDs[i] = s.GeofenceID
	}
	assertPartition(t, geofenceIDs(inputs), successIDs, result.Errors)
}

func TestSaveGeofences_EncodesEntries(t *testing.T) {
	fake := testutil.NewFakeLocation()
	var got *location.BatchPutGeofenceInput
	fake.BatchPutGeofenceFunc = func(_ context.Context, in *location.BatchPutGeofenceInput) (*location.BatchPutGeofenceOutput, error) {
		got = in
		return putSucceeds(in), nil
	}
	c, _ := newTestClient(t, fake, testutil.StaticSessions())

	_, err := c.SaveGeofences(context.Background(), geofenceInputs(1), &GeofenceOptions{CollectionName: "zones"})
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "zones", aws.ToString(got.CollectionName))
	require.Len(t, got.Entries, 1)
	assert.Equal(t, "gf-00", aws.ToString(got.Entries[0].GeofenceId))
	require.NotNil(t, got.Entries[0].Geometry)
	assert.Equal(t, [][][]float64{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}, got.Entries[0].Geometry.Polygon)
}

func TestSaveGeofences_ProviderItemErrors(t *testing.T) {
	fake := testutil.NewFakeLocation()
	fake.BatchPutGeofenceFunc = func(_ context.Context, in *location.BatchPutGeofenceInput) (*location.BatchPutGeofenceOutput, error) {
		out := putSucceeds(&location.BatchPutGeofenceInput{Entries: in.Entries[1:]})
		out.Errors = []types.BatchPutGeofenceError{{
			GeofenceId: in.Entries[0].GeofenceId,
			Error: &types.BatchItemError{
				Code:    types.BatchItemErrorCode("ValidationError"),
				Message: aws.String("polygon self-intersects"),
			},
		}}
		return out, nil
	}
	c, _ := newTestClient(t, fake, testutil.StaticSessions())

	result, err := c.SaveGeofences(context.Background(), geofenceInputs(3), nil)
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, geo.GeofenceError{
		GeofenceID: "gf-00",
		Error:      geo.ErrorDetail{Code: "ValidationError", Message: "polygon self-intersects"},
	}, result.Errors[0])
	require.Len(t, result.Successes, 2)
	assert.Equal(t, "gf-01", result.Successes[0].GeofenceID)
}

func TestSaveGeofences_LocalValidation(t *testing.T) {
	open := geofenceInputs(1)
	open[0].Geometry.Polygon[0] = geo.LinearRing{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	badID := geofenceInputs(2)
	badID[1].GeofenceID = "has space"

	tests := []struct {
		name    string
		inputs  []geo.GeofenceInput
		wantErr error
	}{
		{name: "empty", inputs: nil, wantErr: geo.ErrEmptyInput},
		{name: "invalid id", inputs: badID, wantErr: geo.ErrInvalidGeofenceID},
		{name: "open ring", inputs: open, wantErr: geo.ErrInvalidPolygon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := testutil.NewFakeLocation()
			c, _ := newTestClient(t, fake, testutil.StaticSessions())

			_, err := c.SaveGeofences(context.Background(), tt.inputs, nil)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, fake.TotalCalls())
		})
	}
}

func TestSaveGeofences_DuplicatesSubmitted(t *testing.T) {
	fake := testutil.NewFakeLocation()
	fake.BatchPutGeofenceFunc = func(_ context.Context, in *location.BatchPutGeofenceInput) (*location.BatchPutGeofenceOutput, error) {
		return putSucceeds(in), nil
	}
	c, _ := newTestClient(t, fake, testutil.StaticSessions())

	inputs := geofenceInputs(2)
	inputs[1].GeofenceID = inputs[0].GeofenceID

	result, err := c.SaveGeofences(context.Background(), inputs, nil)
	require.NoError(t, err)
	assert.Len(t, result.Successes, 2)
}

func TestSaveGeofences_NoCredentials(t *testing.T) {
	fake := testutil.NewFakeLocation()
	c, _ := newTestClient(t, fake, testutil.NoSessions())

	_, err := c.SaveGeofences(context.Background(), geofenceInputs(3), nil)
	assert.ErrorIs(t, err, geo.ErrNoCredentials)
	assert.Zero(t, fake.TotalCalls())
}

func TestDeleteGeofences_InfersSuccesses(t *testing.T) {
	fake := testutil.NewFakeLocation()
	failing := map[string]bool{"gf-03": true, "gf-11": true}
	fake.BatchDeleteGeofenceFunc = func(_ context.Context, in *location.BatchDeleteGeofenceInput) (*location.BatchDeleteGeofenceOutput, error) {
		out := &location.BatchDeleteGeofenceOutput{}
		for _, id := range in.GeofenceIds {
			if failing[id] {
				out.Errors = append(out.Errors, types.BatchDeleteGeofenceError{
					GeofenceId: aws.String(id),
					Error: &types.BatchItemError{
						Code:    types.BatchItemErrorCode("ResourceNotFoundError"),
						Message: aws.String("geofence not found"),
					},
				})
			}
		}
		return out, nil
	}
	c, _ := newTestClient(t, fake, testutil.StaticSessions())

	ids := geofenceIDs(geofenceInputs(12))
	result, err := c.DeleteGeofences(context.Background(), ids, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, fake.CallCount(transport.OpBatchDeleteGeofence))
	assert.Len(t, result.Successes, 10)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "gf-03", result.Errors[0].GeofenceID)
	assert.Equal(t, "ResourceNotFoundError", result.Errors[0].Error.Code)
	assert.Equal(t, "gf-11", result.Errors[1].GeofenceID)
	assert.NotContains(t, result.Successes, "gf-03")
	assert.NotContains(t, result.Successes, "gf-11")
	assertPartition(t, ids, result.Successes, result.Errors)
}

func TestDeleteGeofences_DuplicateIDsEachReported(t *testing.T) {
	fake := testutil.NewFakeLocation()
	fake.BatchDeleteGeofenceFunc = func(_ context.Context, in *location.BatchDeleteGeofenceInput) (*location.BatchDeleteGeofenceOutput, error) {
		assert.Equal(t, []string{"a", "a", "b"}, in.GeofenceIds)
		return &location.BatchDeleteGeofenceOutput{
			Errors: []types.BatchDeleteGeofenceError{{
				GeofenceId: aws.String("a"),
				Error: &types.BatchItemError{
					Code:    types.BatchItemErrorCode("ResourceNotFoundError"),
					Message: aws.String("geofence not found"),
				},
			}},
		}, nil
	}
	c, _ := newTestClient(t, fake, testutil.StaticSessions())

	ids := []string{"a", "a", "b"}
	result, err := c.DeleteGeofences(context.Background(), ids, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"b"}, result.Successes)
	require.Len(t, result.Errors, 2)
	for _, e := range result.Errors {
		assert.Equal(t, "a", e.GeofenceID)
		assert.Equal(t, "ResourceNotFoundError", e.Error.Code)
	}
	assertPartition(t, ids, result.Successes, result.Errors)
}

func TestDeleteGeofences_ChunkFailure(t *testing.T) {
	fake := testutil.NewFakeLocation()
	fake.BatchDeleteGeofenceFunc = func(_ context.Context, in *location.BatchDeleteGeofenceInput) (*location.BatchDeleteGeofenceOutput, error) {
		if in.GeofenceIds[0] == "gf-00" {
			return nil, testutil.NewAPIError("ThrottlingException", "rate exceeded")
		}
		return &location.BatchDeleteGeofenceOutput{}, nil
	}
	c, _ := newTestClient(t, fake, testutil.StaticSessions())

	ids := geofenceIDs(geofenceInputs(15))
	result, err := c.DeleteGeofences(context.Background(), ids, nil)
	require.NoError(t, err)

	assert.Equal(t, ids[10:], result.Successes)
	require.Len(t, result.Errors, 10)
	for _, e := range result.Errors {
		assert.Equal(t, geo.CodeAPIConnectionError, e.Error.Code)
		assert.Contains(t, e.Error.Message, "rate exceeded")
	}
}

func TestDeleteGeofences_InvalidIDs(t *testing.T) {
	fake := testutil.NewFakeLocation()
	c, _ := newTestClient(t, fake, testutil.StaticSessions())

	_, err := c.DeleteGeofences(context.Background(), []string{"ok-1", "bad id", "", "also/bad"}, nil)
	require.ErrorIs(t, err, geo.ErrInvalidGeofenceID)
	assert.Contains(t, err.Error(), "bad id")
	assert.Contains(t, err.Error(), "also/bad")
	assert.Zero(t, fake.TotalCalls())

	_, err = c.DeleteGeofences(context.Background(), nil, nil)
	assert.ErrorIs(t, err, geo.ErrEmptyInput)
}

func TestInferDeleteResult(t *testing.T) {
	notFound := geo.ErrorDetail{Code: "ResourceNotFoundError", Message: "geofence not found"}

	tests := []struct {
		name          string
		chunk         []string
		reported      []geo.GeofenceError
		wantSuccesses []string
		wantErrors    []geo.GeofenceError
	}{
		{
			name:          "one failure",
			chunk:         []string{"a", "b", "c"},
			reported:      []geo.GeofenceError{{GeofenceID: "b", Error: notFound}},
			wantSuccesses: []string{"a", "c"},
			wantErrors:    []geo.GeofenceError{{GeofenceID: "b", Error: notFound}},
		},
		{
			name:          "no failures",
			chunk:         []string{"a", "b"},
			wantSuccesses: []string{"a", "b"},
		},
		{
			name:          "duplicate id with one reported error",
			chunk:         []string{"a", "a", "b"},
			reported:      []geo.GeofenceError{{GeofenceID: "a", Error: notFound}},
			wantSuccesses: []string{"b"},
			wantErrors: []geo.GeofenceError{
				{GeofenceID: "a", Error: notFound},
				{GeofenceID: "a", Error: notFound},
			},
		},
		{
			name:          "duplicate id without errors",
			chunk:         []string{"a", "a"},
			wantSuccesses: []string{"a", "a"},
		},
		{
			name:  "error for an id not in the chunk",
			chunk: []string{"a"},
			reported: []geo.GeofenceError{
				{GeofenceID: "zz", Error: notFound},
			},
			wantSuccesses: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := inferDeleteResult(tt.chunk, tt.reported)

			assert.Equal(t, tt.wantSuccesses, result.Successes)
			assert.Equal(t, tt.wantErrors, result.Errors)
			assert.Equal(t, len(tt.chunk), len(result.Successes)+len(result.Errors))
		})
	}
}

func TestGetGeofence(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	fake := testutil.NewFakeLocation()
	fake.GetGeofenceFunc = func(_ context.Context, in *location.GetGeofenceInput) (*location.GetGeofenceOutput, error) {
		assert.Equal(t, "fences", aws.ToString(in.CollectionName))
		return &location.GetGeofenceOutput{
			GeofenceId: in.GeofenceId,
			Geometry:   &types.GeofenceGeometry{Polygon: [][][]float64{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}},
			Status:     aws.String("ACTIVE"),
			CreateTime: aws.Time(created),
			UpdateTime: aws.Time(created),
		}, nil
	}
	c, _ := newTestClient(t, fake, testutil.StaticSessions())

	gf, err := c.GetGeofence(context.Background(), "gf-00", nil)
	require.NoError(t, err)
	require.NotNil(t, gf)

	assert.Equal(t, "gf-00", gf.GeofenceID)
	assert.Equal(t, geo.GeofenceStatusActive, gf.Status)
	assert.Equal(t, geo.GeofencePolygon{squareRing()}, gf.Geometry.Polygon)
	require.NotNil(t, gf.CreateTime)
	assert.True(t, created.Equal(*gf.CreateTime))
}

func TestGetGeofence_InvalidID(t *testing.T) {
	fake := testutil.NewFakeLocation()
	c, _ := newTestClient(t, fake, testutil.StaticSessions())

	_, err := c.GetGeofence(context.Background(), "bad id", nil)
	assert.ErrorIs(t, err, geo.ErrInvalidGeofenceID)
	assert.Zero(t, fake.TotalCalls())
}

func TestGetGeofence_MissingCollection(t *testing.T) {
	fake := testutil.NewFakeLocation()
	c, source := newTestClient(t, fake, testutil.StaticSessions())

	cfg := sampleConfig()
	cfg.GeofenceCollections.Default = ""
	source.Set(cfg)

	_, err := c.GetGeofence(context.Background(), "gf-00", nil)
	assert.ErrorIs(t, err, geo.ErrMissingConfiguration)
	assert.Zero(t, fake.TotalCalls())
}

func listPages(pages map[string]*location.ListGeofencesOutput) func(context.Context, *location.ListGeofencesInput) (*location.ListGeofencesOutput, error) {
	return func(_ context.Context, in *location.ListGeofencesInput) (*location.ListGeofencesOutput, error) {
		return pages[aws.ToString(in.NextToken)], nil
	}
}

func TestListGeofences(t *testing.T) {
	fake := testutil.NewFakeLocation()
	fake.ListGeofencesFunc = listPages(map[string]*location.ListGeofencesOutput{
		"": {
			Entries: []types.ListGeofenceResponseEntry{
				{GeofenceId: aws.String("gf-00"), Status: aws.String("ACTIVE")},
			},
			NextToken: aws.String("page-2"),
		},
	})
	c, _ := newTestClient(t, fake, testutil.StaticSessions())

	result, err := c.ListGeofences(context.Background(), &ListGeofencesOptions{MaxResults: 1})
	require.NoError(t, err)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "gf-00", result.Entries[0].GeofenceID)
	assert.Equal(t, "page-2", result.NextToken)
}

func TestListGeofences_Empty(t *testing.T) {
	fake := testutil.NewFakeLocation()
	c, _ := newTestClient(t, fake, testutil.StaticSessions())

	result, err := c.ListGeofences(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, result.Entries)
	assert.Empty(t, result.Entries)
	assert.Empty(t, result.NextToken)
}

func TestListAllGeofences(t *testing.T) {
	fake := testutil.NewFakeLocation()
	fake.ListGeofencesFunc = listPages(map[string]*location.ListGeofencesOutput{
		"": {
			Entries:   []types.ListGeofenceResponseEntry{{GeofenceId: aws.String("gf-00")}},
			NextToken: aws.String("page-2"),
		},
		"page-2": {
			Entries:   []types.ListGeofenceResponseEntry{{GeofenceId: aws.String("gf-01")}},
			NextToken: aws.String("page-3"),
		},
		"page-3": {
			Entries: []types.ListGeofenceResponseEntry{{GeofenceId: aws.String("gf-02")}},
		},
	})
	c, _ := newTestClient(t, fake, testutil.StaticSessions())

	all, err := c.ListAllGeofences(context.Background(), nil)
	require.NoError(t, err)

	ids := make([]string, len(all))
	for i, g := range all {
		ids[i] = g.GeofenceID
	}
	assert.Equal(t, []string{"gf-00", "gf-01", "gf-02"}, ids)
	assert.Equal(t, 3, fake.CallCount(transport.OpListGeofences))
}

func TestListAllGeofences_StopsOnError(t *testing.T) {
	fake := testutil.NewFakeLocation()
	fake.ListGeofencesFunc = func(_ context.Context, in *location.ListGeofencesInput) (*location.ListGeofencesOutput, error) {
		if in.NextToken == nil {
			return &location.ListGeofencesOutput{NextToken: aws.String("next")}, nil
		}
		return nil, testutil.NewAPIError("InternalServerException", "boom")
	}
	c, _ := newTestClient(t, fake, testutil.StaticSessions())

	all, err := c.ListAllGeofences(context.Background(), nil)
	assert.Nil(t, all)
	assert.True(t, IsTransportError(err))
	assert.Equal(t, 2, fake.CallCount(transport.OpListGeofences))
}
