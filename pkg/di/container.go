// Package di provides dependency injection container
package di

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ssargent/transmit/pkg/api"     //nolint:depguard
	"github.com/ssargent/transmit/pkg/catalog" //nolint:depguard
)

// Container holds all the dependencies for the application
type Container struct {
	catalog       *catalog.Catalog
	registerer    prometheus.Registerer
	serverFactory api.ServerFactory
}

// NewContainer creates a new dependency injection container. The server and
// the value store share the default Prometheus registry.
func NewContainer() *Container {
	return &Container{
		catalog:       catalog.Default(),
		registerer:    prometheus.DefaultRegisterer,
		serverFactory: api.NewServerFactory(prometheus.DefaultRegisterer),
	}
}

// GetCatalog returns the type catalog
func (c *Container) GetCatalog() *catalog.Catalog {
	return c.catalog
}

// GetRegisterer returns the registerer for store and server metrics
func (c *Container) GetRegisterer() prometheus.Registerer {
	return c.registerer
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetCatalog allows overriding the type catalog (for testing)
func (c *Container) SetCatalog(cat *catalog.Catalog) {
	c.catalog = cat
}

// SetRegistry replaces the metrics registry and rebuilds the server factory
// around it (for testing)
func (c *Container) SetRegistry(reg *prometheus.Registry) {
	c.registerer = reg
	c.serverFactory = api.NewServerFactory(reg)
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}
