package client

import (
	"errors"

	"github.com/Sternrassler/geo-location-client/pkg/geo"
)

// Status labels of geo_requests_total that are not an error kind.
const (
	statusOK    = "ok"
	statusOther = "error"
)

// requestStatus classifies err for metrics and logs: "ok" on success, the
// error kind for a *geo.Error, "error" otherwise.
func requestStatus(err error) string {
	if err == nil {
		return statusOK
	}
	var geoErr *geo.Error
	if errors.As(err, &geoErr) {
		return string(geoErr.Kind)
	}
	return statusOther
}

// IsAuthFailure reports whether err is a missing-credentials failure.
func IsAuthFailure(err error) bool {
	return errors.Is(err, geo.ErrNoCredentials)
}

// IsTransportError reports whether err came from the provider call. The
// provider error stays reachable through errors.As.
func IsTransportError(err error) bool {
	return errors.Is(err, geo.ErrTransport)
}
