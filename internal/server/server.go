// Package server declares the lifecycle contract fx drives for entrypoints.
package server

import "context"

// Server is started once the dependency graph is built and stopped on shutdown.
// Start must not block.
type Server interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Addr() string
}
