// Copyright (c) 2025-present deep.rent GmbH (https://deep.rent)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package manager keeps a registry of namespaces keyed by name.
//
// A Manager is meant to be constructed once during application start and
// passed to every place that needs dependencies:
//
//	mgr := manager.New()
//	db := mgr.NS("db")
//	c, _ := db.Container()
//	_ = c.Add("dsn", "postgres://localhost/app")
//
// Removing a namespace only makes the registry forget its name. Anyone
// holding the *namespace.Namespace, including functions wrapped by it, keeps
// resolving against its last provider.
package manager

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"github.com/deep-rent/sidein/container"
	"github.com/deep-rent/sidein/log"
	"github.com/deep-rent/sidein/namespace"
	"github.com/deep-rent/sidein/provider"
)

var (
	// ErrNamespaceNotFound is returned when a namespace name is unknown.
	ErrNamespaceNotFound = errors.New("namespace not found")
	// ErrNamespaceExists is returned when adding a name that is taken.
	ErrNamespaceExists = errors.New("namespace already exists")
)

// Factory creates the initial provider of a new namespace.
type Factory func(name string) provider.Provider

// DefaultFactory hands every namespace its own empty container.
func DefaultFactory(string) provider.Provider { return container.New() }

type config struct {
	logger  *slog.Logger
	factory Factory
}

// Option configures a Manager.
type Option func(*config)

// WithLogger sets the logger for the manager and all namespaces it
// creates. A nil value is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFactory sets the provider factory for new namespaces. A nil value is
// ignored.
func WithFactory(f Factory) Option {
	return func(c *config) {
		if f != nil {
			c.factory = f
		}
	}
}

// Manager maps names to namespaces. All operations are serialized by a
// single lock, which is independent of the namespaces' own locks. A Manager
// is safe for concurrent use.
type Manager struct {
	base    *slog.Logger
	logger  *slog.Logger
	factory Factory
	mu      sync.RWMutex
	spaces  map[string]*namespace.Namespace
}

// New creates an empty Manager.
func New(opts ...Option) *Manager {
	cfg := config{
		logger:  log.Discard(),
		factory: DefaultFactory,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Manager{
		base:    cfg.logger,
		logger:  log.Component(cfg.logger, "manager"),
		factory: cfg.factory,
		spaces:  make(map[string]*namespace.Namespace),
	}
}

// NS returns the namespace with the given name, creating it first if
// necessary. It never fails.
func (m *Manager) NS(name string) *namespace.Namespace {
	m.mu.RLock()
	ns, ok := m.spaces[name]
	m.mu.RUnlock()
	if ok {
		return ns
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if ns, ok := m.spaces[name]; ok {
		return ns
	}
	return m.create(name)
}

// Get returns the namespace with the given name or an error wrapping
// ErrNamespaceNotFound.
func (m *Manager) Get(name string) (*namespace.Namespace, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ns, ok := m.spaces[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNamespaceNotFound, name)
	}
	return ns, nil
}

// All returns a snapshot of the registry. Mutating the result does not
// affect the manager.
func (m *Manager) All() map[string]*namespace.Namespace {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return maps.Clone(m.spaces)
}

// Add creates a namespace with a fresh provider. It fails with
// ErrNamespaceExists if the name is taken.
func (m *Manager) Add(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.spaces[name]; ok {
		return fmt.Errorf("%w: %q", ErrNamespaceExists, name)
	}
	m.create(name)
	return nil
}

// Remove deletes the namespace from the registry. It fails with
// ErrNamespaceNotFound if the name is unknown.
func (m *Manager) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.spaces[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNamespaceNotFound, name)
	}
	delete(m.spaces, name)
	m.logger.Debug("Namespace removed", slog.String("namespace", name))
	return nil
}

// RemoveAll empties the registry.
func (m *Manager) RemoveAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.spaces)
	clear(m.spaces)
	m.logger.Debug("Namespaces cleared", slog.Int("count", n))
}

// create must be called with m.mu held for writing.
func (m *Manager) create(name string) *namespace.Namespace {
	ns := namespace.New(name,
		namespace.WithProvider(m.factory(name)),
		namespace.WithLogger(m.base),
	)
	m.spaces[name] = ns
	m.logger.Debug("Namespace added", slog.String("namespace", name))
	return ns
}
