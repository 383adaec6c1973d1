// Package delivery holds the transports that expose the user usecases.
package delivery

import "context"

// Delivery is a long-running transport started by the server binary.
// Serve blocks until the transport is shut down through its fx stop hook.
type Delivery interface {
	Serve(ctx context.Context) error
}
