package handlers

import (
	"net/http"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/dimitrije/carshare/internal/operations"
	"github.com/dimitrije/carshare/pkg/dto"
)

type HealthHandler struct {
	dispatcher DispatcherInterface
}

func NewHealthHandler(dispatcher DispatcherInterface) *HealthHandler {
	return &HealthHandler{dispatcher: dispatcher}
}

func (h *HealthHandler) Health(c *drift.Context) {
	handled := 0
	for _, kind := range operations.All() {
		if h.dispatcher.Handles(kind) {
			handled++
		}
	}

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:     "ok",
		Mode:       "mock",
		Operations: handled,
	})
}
