package search

import (
	"fmt"
	"sync"
)

// AdapterFactory creates an adapter from an engine-specific connection.
type AdapterFactory func(conn any) (Adapter, error)

var (
	factoryMu        sync.RWMutex
	adapterFactories = make(map[Engine]AdapterFactory)
)

// RegisterAdapterFactory registers a factory for an engine. Adapter
// packages call this from init.
func RegisterAdapterFactory(engine Engine, factory AdapterFactory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	adapterFactories[engine] = factory
}

// GetAdapterFactory returns the registered factory for an engine.
func GetAdapterFactory(engine Engine) (AdapterFactory, bool) {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	factory, ok := adapterFactories[engine]
	return factory, ok
}

// GetRegisteredEngines returns the engines with a registered factory.
func GetRegisteredEngines() []Engine {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	engines := make([]Engine, 0, len(adapterFactories))
	for engine := range adapterFactories {
		engines = append(engines, engine)
	}
	return engines
}

// NewAdapter creates an adapter for the engine from its connection.
func NewAdapter(engine Engine, conn any) (Adapter, error) {
	factory, ok := GetAdapterFactory(engine)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEngineNotFound, engine)
	}
	return factory(conn)
}
