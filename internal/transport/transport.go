// Package transport defines the interface for the daemon's serving surfaces.
//
// Each listener (HTTP API, gRPC health) implements this interface and is
// started by main. The converter doesn't care how submissions arrive — it
// only works with the Handler contract.
package transport

import (
	"context"

	"github.com/whis-19/Kodo-Koe/internal/message"
)

// Handler processes an incoming submission and returns the conversion result.
// The converter provides this handler to each transport.
type Handler func(ctx context.Context, sub *message.CodeSubmission) (*message.ConversionResponse, error)

// Transport is the interface every serving surface must implement.
type Transport interface {
	// Name returns the transport identifier (e.g., "http", "grpc").
	Name() string

	// Listen starts accepting requests and dispatches them to the handler.
	// It blocks until the context is cancelled.
	Listen(ctx context.Context, handler Handler) error

	// Close gracefully shuts down the transport, draining in-flight work.
	Close() error
}
