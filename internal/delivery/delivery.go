// Package delivery defines the contract every transport front end satisfies.
package delivery

import "context"

// Delivery is a serving surface (HTTP server, worker loop) managed by the
// application lifecycle. Serve blocks until the surface stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
