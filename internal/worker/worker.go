package worker

import (
	"context"
)

// Worker is the contract all background workers implement.
type Worker interface {
	// Start runs the worker until the context is cancelled.
	Start(ctx context.Context) error

	// Stop asks the worker to finish.
	Stop() error

	// Name identifies the worker in logs.
	Name() string
}
