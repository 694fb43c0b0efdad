// Package server provides the HTTP REST API for the job agent.
package server

import (
	"fmt"
	"net/http"
)

// ErrProfileNotFound indicates the profile ID does not resolve to a stored profile
type ErrProfileNotFound struct {
	ProfileID string
}

func (e *ErrProfileNotFound) Error() string {
	return fmt.Sprintf("profile not found: %s", e.ProfileID)
}

// ErrMalformedInput indicates the request could not be interpreted
type ErrMalformedInput struct {
	Message string
}

func (e *ErrMalformedInput) Error() string {
	return e.Message
}

// ErrUpstreamUnavailable indicates an external call failed with nothing to degrade to
type ErrUpstreamUnavailable struct {
	Upstream string
	Cause    error
}

func (e *ErrUpstreamUnavailable) Error() string {
	return fmt.Sprintf("upstream %s unavailable: %v", e.Upstream, e.Cause)
}

func (e *ErrUpstreamUnavailable) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrProfileNotFound:
		return http.StatusNotFound
	case *ErrMalformedInput:
		return http.StatusBadRequest
	case *ErrUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
