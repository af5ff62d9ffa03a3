package transport

import (
	"errors"

	"github.com/Sternrassler/geo-location-client/pkg/geo"
	"github.com/aws/smithy-go"
)

// WrapError tags err as a transport failure of op. The original error stays
// reachable through errors.Is/As; the provider error code is copied into
// Code when err carries one.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	wrapped := &geo.Error{
		Kind:    geo.KindTransport,
		Message: op + " failed",
		Err:     err,
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		wrapped.Code = apiErr.ErrorCode()
	}
	return wrapped
}
