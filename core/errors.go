package core

import (
	"errors"
	"fmt"
)

// UpstreamError carries the status code and body text of a failed call to an
// external collaborator (conversational backend or dispatch API) so the HTTP
// boundary can propagate both to the caller.
type UpstreamError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s call failed with status %d: %s", e.Service, e.StatusCode, e.Body)
}

func NewUpstreamError(service string, statusCode int, body string) *UpstreamError {
	return &UpstreamError{Service: service, StatusCode: statusCode, Body: body}
}

// AsUpstreamError checks if an error carries upstream call details
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr, true
	}
	return nil, false
}
