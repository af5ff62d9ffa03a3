// Package testutil provides testing utilities for the geo client.
package testutil

import (
	"context"
	"sync"

	"github.com/Sternrassler/geo-location-client/pkg/auth"
	"github.com/Sternrassler/geo-location-client/pkg/transport"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/location"
	"github.com/aws/smithy-go"
)

// FakeLocation is an in-memory transport.LocationAPI. Each call is counted
// and its per-call options are applied to a fresh location.Options, which
// can be inspected with LastOptions. Unset handlers return an empty output.
type FakeLocation struct {
	mu          sync.Mutex
	calls       map[string]int
	lastOptions map[string]location.Options

	SearchPlaceIndexForTextFunc        func(ctx context.Context, in *location.SearchPlaceIndexForTextInput) (*location.SearchPlaceIndexForTextOutput, error)
	SearchPlaceIndexForSuggestionsFunc func(ctx context.Context, in *location.SearchPlaceIndexForSuggestionsInput) (*location.SearchPlaceIndexForSuggestionsOutput, error)
	GetPlaceFunc                       func(ctx context.Context, in *location.GetPlaceInput) (*location.GetPlaceOutput, error)
	SearchPlaceIndexForPositionFunc    func(ctx context.Context, in *location.SearchPlaceIndexForPositionInput) (*location.SearchPlaceIndexForPositionOutput, error)
	GetGeofenceFunc                    func(ctx context.Context, in *location.GetGeofenceInput) (*location.GetGeofenceOutput, error)
	ListGeofencesFunc                  func(ctx context.Context, in *location.ListGeofencesInput) (*location.ListGeofencesOutput, error)
	BatchPutGeofenceFunc               func(ctx context.Context, in *location.BatchPutGeofenceInput) (*location.BatchPutGeofenceOutput, error)
	BatchDeleteGeofenceFunc            func(ctx context.Context, in *location.BatchDeleteGeofenceInput) (*location.BatchDeleteGeofenceOutput, error)
}

var _ transport.LocationAPI = (*FakeLocation)(nil)

// NewFakeLocation creates a fake with no handlers.
func NewFakeLocation() *FakeLocation {
	return &FakeLocation{
		calls:       make(map[string]int),
		lastOptions: make(map[string]location.Options),
	}
}

func (f *FakeLocation) record(op string, optFns []func(*location.Options)) {
	var o location.Options
	for _, fn := range optFns {
		fn(&o)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	f.lastOptions[op] = o
}

// CallCount returns the number of calls made to op.
func (f *FakeLocation) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// TotalCalls returns the number of calls made to any operation.
func (f *FakeLocation) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

// LastOptions returns the options the last call to op was made with.
func (f *FakeLocation) LastOptions(op string) location.Options {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastOptions[op]
}

// Reset clears all call tracking.
func (f *FakeLocation) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = make(map[string]int)
	f.lastOptions = make(map[string]location.Options)
}

// SearchPlaceIndexForText implements transport.LocationAPI.
func (f *FakeLocation) SearchPlaceIndexForText(ctx context.Context, in *location.SearchPlaceIndexForTextInput, optFns ...func(*location.Options)) (*location.SearchPlaceIndexForTextOutput, error) {
	f.record(transport.OpSearchPlaceIndexForText, optFns)
	if f.SearchPlaceIndexForTextFunc == nil {
		return &location.SearchPlaceIndexForTextOutput{}, nil
	}
	return f.SearchPlaceIndexForTextFunc(ctx, in)
}

// SearchPlaceIndexForSuggestions implements transport.LocationAPI.
func (f *FakeLocation) SearchPlaceIndexForSuggestions(ctx context.Context, in *location.SearchPlaceIndexForSuggestionsInput, optFns ...func(*location.Options)) (*location.SearchPlaceIndexForSuggestionsOutput, error) {
	f.record(transport.OpSearchPlaceIndexForSuggestions, optFns)
	if f.SearchPlaceIndexForSuggestionsFunc == nil {
		return &location.SearchPlaceIndexForSuggestionsOutput{}, nil
	}
	return f.SearchPlaceIndexForSuggestionsFunc(ctx, in)
}

// GetPlace implements transport.LocationAPI.
func (f *FakeLocation) GetPlace(ctx context.Context, in *location.GetPlaceInput, optFns ...func(*location.Options)) (*location.GetPlaceOutput, error) {
	f.record(transport.OpGetPlace, optFns)
	if f.GetPlaceFunc == nil {
		return &location.GetPlaceOutput{}, nil
	}
	return f.GetPlaceFunc(ctx, in)
}

// SearchPlaceIndexForPosition implements transport.LocationAPI.
func (f *FakeLocation) SearchPlaceIndexForPosition(ctx context.Context, in *location.SearchPlaceIndexForPositionInput, optFns ...func(*location.Options)) (*location.SearchPlaceIndexForPositionOutput, error) {
	f.record(transport.OpSearchPlaceIndexForPosition, optFns)
	if f.SearchPlaceIndexForPositionFunc == nil {
		return &location.SearchPlaceIndexForPositionOutput{}, nil
	}
	return f.SearchPlaceIndexForPositionFunc(ctx, in)
}

// GetGeofence implements transport.LocationAPI.
func (f *FakeLocation) GetGeofence(ctx context.Context, in *location.GetGeofenceInput, optFns ...func(*location.Options)) (*location.GetGeofenceOutput, error) {
	f.record(transport.OpGetGeofence, optFns)
	if f.GetGeofenceFunc == nil {
		return &location.GetGeofenceOutput{}, nil
	}
	return f.GetGeofenceFunc(ctx, in)
}

// ListGeofences implements transport.LocationAPI.
func (f *FakeLocation) ListGeofences(ctx context.Context, in *location.ListGeofencesInput, optFns ...func(*location.Options)) (*location.ListGeofencesOutput, error) {
	f.record(transport.OpListGeofences, optFns)
	if f.ListGeofencesFunc == nil {
		return &location.ListGeofencesOutput{}, nil
	}
	return f.ListGeofencesFunc(ctx, in)
}

// BatchPutGeofence implements transport.LocationAPI.
func (f *FakeLocation) BatchPutGeofence(ctx context.Context, in *location.BatchPutGeofenceInput, optFns ...func(*location.Options)) (*location.BatchPutGeofenceOutput, error) {
	f.record(transport.OpBatchPutGeofence, optFns)
	if f.BatchPutGeofenceFunc == nil {
		return &location.BatchPutGeofenceOutput{}, nil
	}
	return f.BatchPutGeofenceFunc(ctx, in)
}

// BatchDeleteGeofence implements transport.LocationAPI.
func (f *FakeLocation) BatchDeleteGeofence(ctx context.Context, in *location.BatchDeleteGeofenceInput, optFns ...func(*location.Options)) (*location.BatchDeleteGeofenceOutput, error) {
	f.record(transport.OpBatchDeleteGeofence, optFns)
	if f.BatchDeleteGeofenceFunc == nil {
		return &location.BatchDeleteGeofenceOutput{}, nil
	}
	return f.BatchDeleteGeofenceFunc(ctx, in)
}

// NewAPIError creates a provider error with the given code, as the SDK
// returns for a service-side failure.
func NewAPIError(code, message string) error {
	return &smithy.GenericAPIError{Code: code, Message: message}
}

// TestCredentials are the credentials served by StaticSessions.
var TestCredentials = aws.Credentials{
	AccessKeyID:     "AKIDTEST",
	SecretAccessKey: "secret",
	SessionToken:    "token",
	Source:          "testutil",
}

// StaticSessions returns a session provider that always yields TestCredentials.
func StaticSessions() auth.SessionProvider {
	return auth.SessionProviderFunc(func(context.Context) (auth.Session, error) {
		creds := TestCredentials
		return auth.Session{Credentials: &creds}, nil
	})
}

// NoSessions returns a session provider whose sessions carry no credentials.
func NoSessions() auth.SessionProvider {
	return auth.SessionProviderFunc(func(context.Context) (auth.Session, error) {
		return auth.Session{}, nil
	})
}
