package report

import "errors"

var (
	// ErrNoAPIURL is returned when a non-development client is built without an endpoint
	ErrNoAPIURL = errors.New("report api url not configured")

	// ErrNoService is returned when the service name is missing
	ErrNoService = errors.New("report service name not configured")

	// ErrUnexpectedStatus is returned when the endpoint answers outside the 2xx range
	ErrUnexpectedStatus = errors.New("unexpected report response status")
)
