package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/dimitrije/carshare/internal/middleware"
	"github.com/dimitrije/carshare/internal/mockapi"
	"github.com/dimitrije/carshare/internal/operations"
	"github.com/dimitrije/carshare/pkg/dto"
)

// ModeServer labels operations answered by this process for a remote client.
const ModeServer = "server"

const (
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeNotFound        = "NOT_FOUND"
	CodeForbidden       = "FORBIDDEN"
	CodeConflict        = "CONFLICT"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

type QueryHandler struct {
	dispatcher DispatcherInterface
	observer   ObserverInterface
	logger     *slog.Logger
}

func NewQueryHandler(dispatcher DispatcherInterface, observer ObserverInterface, logger *slog.Logger) *QueryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryHandler{
		dispatcher: dispatcher,
		observer:   observer,
		logger:     logger,
	}
}

// Query answers a GraphQL-over-HTTP request. Operation failures are reported in
// the errors envelope with status 200, as GraphQL servers do.
func (h *QueryHandler) Query(c *drift.Context) {
	var req dto.GraphQLRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	kind := resolveKind(req)

	h.logger.Debug("query", "operation", kind.String(), "user_id", middleware.GetUserID(c))

	start := time.Now()
	resp, err := h.dispatcher.Execute(c.Request.Context(), kind, req.Variables)
	if h.observer != nil {
		h.observer.ObserveOperation(kind.String(), ModeServer, err, time.Since(start))
	}

	if err != nil {
		h.writeError(c, kind, err)
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error("failed to encode response", "operation", kind.String(), "error", err)
		h.writeError(c, kind, err)
		return
	}

	c.JSON(http.StatusOK, dto.GraphQLResponse{Data: data})
}

func (h *QueryHandler) writeError(c *drift.Context, kind operations.Kind, err error) {
	gqlErr := toGraphQLError(err)
	if gqlErr.Code() == CodeInternal {
		h.logger.Error("operation failed", "operation", kind.String(), "error", err)
	}
	c.JSON(http.StatusOK, dto.GraphQLResponse{Errors: []dto.GraphQLError{gqlErr}})
}

// resolveKind prefers operationName and falls back to the document header.
// Anything unrecognised resolves to operations.Unknown, which the dispatcher
// answers with an empty result.
func resolveKind(req dto.GraphQLRequest) operations.Kind {
	if kind, ok := operations.ParseKind(req.OperationName); ok {
		return kind
	}
	if kind, ok := operations.KindFromDocument(req.Query); ok {
		return kind
	}
	return operations.Unknown
}

func toGraphQLError(err error) dto.GraphQLError {
	ext := map[string]any{}

	var fieldErr *mockapi.FieldError
	switch {
	case errors.As(err, &fieldErr):
		ext["code"] = CodeBadUserInput
		ext["field"] = fieldErr.Field
	case errors.Is(err, mockapi.ErrValidation):
		ext["code"] = CodeBadUserInput
	case errors.Is(err, mockapi.ErrNotFound):
		ext["code"] = CodeNotFound
	case errors.Is(err, mockapi.ErrForbidden):
		ext["code"] = CodeForbidden
	case errors.Is(err, mockapi.ErrConflict):
		ext["code"] = CodeConflict
	case errors.Is(err, mockapi.ErrUnauthenticated):
		ext["code"] = CodeUnauthenticated
	default:
		return dto.GraphQLError{
			Message:    "internal server error",
			Extensions: map[string]any{"code": CodeInternal},
		}
	}

	return dto.GraphQLError{Message: err.Error(), Extensions: ext}
}
