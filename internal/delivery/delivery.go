// Package delivery defines the contract every inbound adapter satisfies.
package delivery

import "context"

// Delivery is a long-running inbound adapter (HTTP server, background
// worker). Each implementation blocks inside Serve until shutdown.
type Delivery interface {
	Serve(ctx context.Context) error
}
