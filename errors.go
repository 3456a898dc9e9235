package agentrun

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common error conditions.
var (
	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument = errors.New("agentrun: invalid argument")
)

// HTTPError is the common shape shared by ClientError and ServerError.
// It carries the HTTP status code, a human-readable message and, when the
// service reported one, a request id for support correlation.
type HTTPError struct {
	// StatusCode is the HTTP status code, or 0 for local failures.
	StatusCode int

	// Message is the error message.
	Message string

	// RequestID is the request id reported by the service, if any.
	RequestID string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("agentrun: status %d: %s (request id %s)", e.StatusCode, e.Message, e.RequestID)
	}
	return fmt.Sprintf("agentrun: status %d: %s", e.StatusCode, e.Message)
}

// ClientError reports a 4xx response or a local failure (status 0).
type ClientError struct {
	HTTPError
}

// ServerError reports a 5xx response.
type ServerError struct {
	HTTPError
}

// NewClientError creates a new ClientError.
func NewClientError(statusCode int, message string) *ClientError {
	return &ClientError{HTTPError{StatusCode: statusCode, Message: message}}
}

// NewServerError creates a new ServerError.
func NewServerError(statusCode int, message string) *ServerError {
	return &ServerError{HTTPError{StatusCode: statusCode, Message: message}}
}

// newStatusError converts a response status plus body details into the
// matching error kind: 5xx is a ServerError, everything else a ClientError.
func newStatusError(statusCode int, message, requestID string) error {
	he := HTTPError{StatusCode: statusCode, Message: message, RequestID: requestID}
	if statusCode >= 500 {
		return &ServerError{he}
	}
	return &ClientError{he}
}

// ResourceNotExistError reports an operation against a resource that does
// not exist.
type ResourceNotExistError struct {
	// ResourceType is the kind of resource that was addressed.
	ResourceType ResourceType

	// ResourceID is the id or name that was addressed.
	ResourceID string

	cause error
}

// Error implements the error interface.
func (e *ResourceNotExistError) Error() string {
	return fmt.Sprintf("agentrun: %s %q does not exist: %v", e.ResourceType, e.ResourceID, e.cause)
}

// Unwrap returns the underlying transport error.
func (e *ResourceNotExistError) Unwrap() error { return e.cause }

// ResourceAlreadyExistError reports an attempt to create a resource that
// already exists.
type ResourceAlreadyExistError struct {
	// ResourceType is the kind of resource that was addressed.
	ResourceType ResourceType

	// ResourceID is the id or name that was addressed.
	ResourceID string

	cause error
}

// Error implements the error interface.
func (e *ResourceAlreadyExistError) Error() string {
	return fmt.Sprintf("agentrun: %s %q already exists: %v", e.ResourceType, e.ResourceID, e.cause)
}

// Unwrap returns the underlying transport error.
func (e *ResourceAlreadyExistError) Unwrap() error { return e.cause }

// httpErrorOf extracts the HTTPError payload from a ClientError or
// ServerError, or returns nil for any other error.
func httpErrorOf(err error) *HTTPError {
	var ce *ClientError
	if errors.As(err, &ce) {
		return &ce.HTTPError
	}
	var se *ServerError
	if errors.As(err, &se) {
		return &se.HTTPError
	}
	return nil
}

// toResourceError reclassifies a transport error for a specific resource.
// A 404 becomes ResourceNotExistError and a 409 ResourceAlreadyExistError.
// A message containing an "already exist" phrase becomes
// ResourceAlreadyExistError regardless of the numeric status; some
// control-plane failure codes do not map status codes consistently, and a
// raw 400 or 500 can still mean a duplicate resource. Anything else is
// returned unchanged.
func toResourceError(err error, resourceType ResourceType, resourceID string) error {
	if err == nil {
		return nil
	}
	he := httpErrorOf(err)
	if he == nil {
		return err
	}
	switch {
	case he.StatusCode == 404:
		return &ResourceNotExistError{ResourceType: resourceType, ResourceID: resourceID, cause: err}
	case he.StatusCode == 409:
		return &ResourceAlreadyExistError{ResourceType: resourceType, ResourceID: resourceID, cause: err}
	case strings.Contains(strings.ToLower(he.Message), "already exist"):
		return &ResourceAlreadyExistError{ResourceType: resourceType, ResourceID: resourceID, cause: err}
	}
	return err
}
