// Package transport defines the Amazon Location calls used by the client and
// builds the SDK client that serves them.
//
// The SDK client is created once and reused. Credentials, region and the
// client tag are applied per call through CallOptions.
package transport

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/location"
)

// Operation names, as used in logs, metrics and the user agent.
const (
	OpSearchPlaceIndexForText        = "SearchPlaceIndexForText"
	OpSearchPlaceIndexForSuggestions = "SearchPlaceIndexForSuggestions"
	OpGetPlace                       = "GetPlace"
	OpSearchPlaceIndexForPosition    = "SearchPlaceIndexForPosition"
	OpGetGeofence                    = "GetGeofence"
	OpListGeofences                  = "ListGeofences"
	OpBatchPutGeofence               = "BatchPutGeofence"
	OpBatchDeleteGeofence            = "BatchDeleteGeofence"
)

// UserAgentKey is the user agent key carrying the operation name.
const UserAgentKey = "geo-action"

// LocationAPI is the subset of the Amazon Location API used by the client.
// *location.Client satisfies it; tests substitute a fake.
type LocationAPI interface {
	SearchPlaceIndexForText(ctx context.Context, params *location.SearchPlaceIndexForTextInput, optFns ...func(*location.Options)) (*location.SearchPlaceIndexForTextOutput, error)
	SearchPlaceIndexForSuggestions(ctx context.Context, params *location.SearchPlaceIndexForSuggestionsInput, optFns ...func(*location.Options)) (*location.SearchPlaceIndexForSuggestionsOutput, error)
	GetPlace(ctx context.Context, params *location.GetPlaceInput, optFns ...func(*location.Options)) (*location.GetPlaceOutput, error)
	SearchPlaceIndexForPosition(ctx context.Context, params *location.SearchPlaceIndexForPositionInput, optFns ...func(*location.Options)) (*location.SearchPlaceIndexForPositionOutput, error)
	GetGeofence(ctx context.Context, params *location.GetGeofenceInput, optFns ...func(*location.Options)) (*location.GetGeofenceOutput, error)
	ListGeofences(ctx context.Context, params *location.ListGeofencesInput, optFns ...func(*location.Options)) (*location.ListGeofencesOutput, error)
	BatchPutGeofence(ctx context.Context, params *location.BatchPutGeofenceInput, optFns ...func(*location.Options)) (*location.BatchPutGeofenceOutput, error)
	BatchDeleteGeofence(ctx context.Context, params *location.BatchDeleteGeofenceInput, optFns ...func(*location.Options)) (*location.BatchDeleteGeofenceOutput, error)
}

var _ LocationAPI = (*location.Client)(nil)

// New loads the default AWS configuration and returns a reusable Amazon
// Location client. The SDK's own retryer stays in effect.
func New(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (*location.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return location.NewFromConfig(cfg), nil
}

// CallInfo is what a single call needs beyond its input.
type CallInfo struct {
	Credentials aws.Credentials
	Region      string
	AppID       string
	Operation   string
}

// CallOptions returns the per-call option applying info to the client.
func CallOptions(info CallInfo) func(*location.Options) {
	return func(o *location.Options) {
		o.Credentials = credentials.StaticCredentialsProvider{Value: info.Credentials}
		if info.Region != "" {
			o.Region = info.Region
		}
		if info.AppID != "" {
			o.AppID = info.AppID
		}
		if info.Operation != "" {
			o.APIOptions = append(o.APIOptions, awsmiddleware.AddUserAgentKeyValue(UserAgentKey, info.Operation))
		}
	}
}
