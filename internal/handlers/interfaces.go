package handlers

import (
	"context"
	"time"

	"github.com/dimitrije/carshare/internal/operations"
)

// DispatcherInterface defines the methods used by handlers from mockapi.Dispatcher
type DispatcherInterface interface {
	Execute(ctx context.Context, kind operations.Kind, vars operations.Variables) (operations.Response, error)
	Handles(kind operations.Kind) bool
}

// ObserverInterface defines the methods used by handlers from metrics.Metrics
type ObserverInterface interface {
	ObserveOperation(operation, mode string, err error, elapsed time.Duration)
}
