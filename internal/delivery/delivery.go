// Package delivery defines the contract every transport must satisfy.
package delivery

import "context"

// Delivery is a serving transport. Serve blocks until the listener fails or
// the application shuts it down through its lifecycle hook.
type Delivery interface {
	Serve(ctx context.Context) error
}
