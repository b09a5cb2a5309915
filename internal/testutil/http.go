package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dimitrije/carshare/internal/models"
	"github.com/dimitrije/carshare/internal/operations"
	"github.com/dimitrije/carshare/internal/services"
	"github.com/dimitrije/carshare/pkg/dto"
)

// TestJWTService creates a JWTService with test configuration
func TestJWTService() *services.JWTService {
	return services.NewJWTService("test-secret-key-for-testing-only", 15*time.Minute)
}

// GenerateTestToken signs a token for userID with the TestJWTService secret
func GenerateTestToken(t *testing.T, userID, email string) string {
	t.Helper()
	token, err := TestJWTService().IssueToken(&models.User{ID: userID, Email: email})
	require.NoError(t, err)
	return token
}

// AuthHeader returns an Authorization header value with a Bearer token
func AuthHeader(token string) string {
	return "Bearer " + token
}

// HTTPTestClient drives an http.Handler in-process.
type HTTPTestClient struct {
	t       *testing.T
	handler http.Handler
}

func NewHTTPTestClient(t *testing.T, handler http.Handler) *HTTPTestClient {
	return &HTTPTestClient{t: t, handler: handler}
}

// Request sends body as JSON when it is not nil and records the response.
func (c *HTTPTestClient) Request(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	c.t.Helper()

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err, "marshal request body")
		payload = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, payload)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

func (c *HTTPTestClient) GET(path string, headers map[string]string) *httptest.ResponseRecorder {
	return c.Request(http.MethodGet, path, nil, headers)
}

func (c *HTTPTestClient) POST(path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	return c.Request(http.MethodPost, path, body, headers)
}

// Query posts the GraphQL envelope for kind to /query and decodes the reply.
func (c *HTTPTestClient) Query(kind operations.Kind, vars operations.Variables, headers map[string]string) dto.GraphQLResponse {
	c.t.Helper()

	rec := c.POST("/query", dto.GraphQLRequest{
		Query:         kind.Document(),
		OperationName: kind.String(),
		Variables:     vars,
	}, headers)
	RequireStatus(c.t, rec, http.StatusOK)

	var resp dto.GraphQLResponse
	ParseJSON(c.t, rec, &resp)
	return resp
}

func ParseJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v), "decode response: %s", rec.Body.String())
}

func RequireStatus(t *testing.T, rec *httptest.ResponseRecorder, expected int) {
	t.Helper()
	require.Equal(t, expected, rec.Code, "body: %s", rec.Body.String())
}
