package transport

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNoDispatcher = errors.New("mock data is enabled but no mock dispatcher is configured")

// ConnectivityError means the endpoint could not be reached at all.
type ConnectivityError struct {
	Endpoint string
	Err      error
}

func (e *ConnectivityError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cannot reach the API server at %s\n", e.Endpoint)
	b.WriteString("Please check:\n")
	b.WriteString("- your network connection\n")
	b.WriteString("- that the API server is running and available\n")
	b.WriteString("- that no firewall or proxy is blocking the request")
	return b.String()
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// UpstreamError carries the errors array of a GraphQL response.
type UpstreamError struct {
	Messages []string
	Codes    []string
}

func (e *UpstreamError) Error() string {
	return strings.Join(e.Messages, ", ")
}

// StatusError is a non-2xx response that carried no GraphQL errors.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d from API server", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d from API server: %s", e.StatusCode, e.Body)
}
