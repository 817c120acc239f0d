// Package api provides interfaces for dependency injection
package api

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ssargent/transmit/pkg/catalog"
)

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves the API until ctx is cancelled
	StartServer(ctx context.Context,
		store IValueStore,
		types *catalog.Catalog,
		config ServerConfig,
		logger zerolog.Logger,
	) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
