// Package api provides factory implementations for dependency injection
package api

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/ssargent/transmit/pkg/catalog"
)

// DefaultServerFactory is the default implementation of ServerFactory
type DefaultServerFactory struct {
	registerer prometheus.Registerer
}

// NewServerFactory creates a new server factory. Metrics are registered with
// reg, or with the default registry when reg is nil. When reg is also a
// Gatherer, /metrics serves it.
func NewServerFactory(reg prometheus.Registerer) ServerFactory {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &DefaultServerFactory{registerer: reg}
}

// CreateServerStarter creates a server starter
func (f *DefaultServerFactory) CreateServerStarter() ServerStarter {
	starter := &DefaultServerStarter{registerer: f.registerer}
	if g, ok := f.registerer.(prometheus.Gatherer); ok {
		starter.gatherer = g
	}
	return starter
}

// DefaultServerStarter is the default implementation of ServerStarter
type DefaultServerStarter struct {
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
}

// Handler builds the router StartServer serves
func (s *DefaultServerStarter) Handler(
	store IValueStore,
	types *catalog.Catalog,
	config ServerConfig,
	logger zerolog.Logger,
) http.Handler {
	server := NewServer(store, types, config, NewMetrics(s.registerer), logger)
	if s.gatherer != nil {
		server.WithGatherer(s.gatherer)
	}
	return NewRouter(server)
}

// StartServer builds the router and serves it until ctx is cancelled
func (s *DefaultServerStarter) StartServer(
	ctx context.Context,
	store IValueStore,
	types *catalog.Catalog,
	config ServerConfig,
	logger zerolog.Logger,
) error {
	return Run(ctx, config, s.Handler(store, types, config, logger), logger)
}
