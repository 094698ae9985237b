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

// Package container implements the default dependency provider: a mutable
// mapping from names to arbitrary values.
//
// There is intentionally no way to ask whether a dependency exists. Such a
// query invites check-then-act races under concurrent use. Attempt the
// mutation instead and inspect the returned error:
//
//	if err := c.Remove("db"); errors.Is(err, provider.ErrNotFound) {
//		// Nothing to remove.
//	}
package container

import (
	"maps"
	"sync"

	"github.com/deep-rent/sidein/provider"
)

// Container stores dependencies in a map. It is safe for concurrent use.
type Container struct {
	mu   sync.Mutex
	deps map[string]any
}

// New creates an empty Container.
func New() *Container {
	return &Container{deps: make(map[string]any)}
}

// GetDependency implements the provider.Provider interface.
func (c *Container) GetDependency(name string) (any, error) {
	return c.Get(name)
}

// Get returns the dependency stored under name, or an error wrapping
// provider.ErrNotFound.
func (c *Container) Get(name string) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.deps[name]
	if !ok {
		return nil, provider.NotFound(name)
	}
	return v, nil
}

// All returns a snapshot of every stored dependency. Mutating the result
// does not affect the container.
func (c *Container) All() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()

	return maps.Clone(c.deps)
}

// Add stores v under name. It fails with provider.ErrExists if the name is
// taken.
func (c *Container) Add(name string, v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.deps[name]; ok {
		return provider.Exists(name)
	}
	c.deps[name] = v
	return nil
}

// Replace overwrites the dependency stored under name. It fails with
// provider.ErrNotFound if there is nothing to replace.
func (c *Container) Replace(name string, v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.deps[name]; !ok {
		return provider.NotFound(name)
	}
	c.deps[name] = v
	return nil
}

// AddOrReplace stores v under name regardless of prior state. It returns
// true if an existing dependency was replaced and false if a new one was
// added.
func (c *Container) AddOrReplace(name string, v any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, replaced := c.deps[name]
	c.deps[name] = v
	return replaced
}

// Remove deletes the dependency stored under name. It fails with
// provider.ErrNotFound if the name is absent.
func (c *Container) Remove(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.deps[name]; !ok {
		return provider.NotFound(name)
	}
	delete(c.deps, name)
	return nil
}

// RemoveAll deletes every stored dependency.
func (c *Container) RemoveAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.deps)
}
