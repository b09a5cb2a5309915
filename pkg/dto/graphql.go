package dto

import (
	"encoding/json"

	"github.com/dimitrije/carshare/internal/operations"
)

type GraphQLRequest struct {
	Query         string               `json:"query"`
	OperationName string               `json:"operationName,omitempty"`
	Variables     operations.Variables `json:"variables,omitempty"`
}

type GraphQLResponse struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

type GraphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Code returns extensions.code, or "" when the error carries none.
func (e GraphQLError) Code() string {
	code, _ := e.Extensions["code"].(string)
	return code
}

type HealthResponse struct {
	Status     string `json:"status"`
	Mode       string `json:"mode"`
	Operations int    `json:"operations"`
}
