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

// Package provider defines the abstraction every dependency source must
// satisfy, along with the error family that providers use to signal that a
// dependency could not be resolved.
//
// A Provider is consulted each time a dependency is requested. Nothing in
// this module caches resolved values, so a provider is free to compute
// values on demand or read them from external sources.
//
// # Errors
//
// Failures declared by a provider must wrap ErrProvider. Errors outside
// this family are treated as bugs in the provider by the consuming
// namespace and reported separately:
//
//	func (p *myProvider) GetDependency(name string) (any, error) {
//		v, ok := p.lookup(name)
//		if !ok {
//			return nil, provider.NotFound(name)
//		}
//		return v, nil
//	}
package provider

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrProvider is the root of all provider-declared failures.
	ErrProvider = errors.New("provider failure")
	// ErrNotFound indicates that the requested dependency does not exist.
	ErrNotFound = fmt.Errorf("%w: dependency not found", ErrProvider)
	// ErrExists indicates that a dependency is already present.
	ErrExists = fmt.Errorf("%w: dependency already exists", ErrProvider)
)

// NotFound returns an error wrapping ErrNotFound for the given name.
func NotFound(name string) error {
	return fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Exists returns an error wrapping ErrExists for the given name.
func Exists(name string) error {
	return fmt.Errorf("%w: %q", ErrExists, name)
}

// Failed wraps an arbitrary cause into the provider error family. Custom
// providers use it to declare failures of their backing store.
func Failed(name string, cause error) error {
	return fmt.Errorf("%w: resolving %q: %w", ErrProvider, name, cause)
}

// Provider resolves dependencies by name.
type Provider interface {
	// GetDependency returns the dependency registered under name. It returns
	// an error wrapping ErrProvider if the name cannot be resolved.
	GetDependency(name string) (any, error)
}

// ContextProvider is implemented by providers whose answer depends on the
// caller, such as container.Local. Namespaces prefer GetDependencyContext
// over GetDependency whenever a context is at hand.
type ContextProvider interface {
	Provider
	// GetDependencyContext is like GetDependency but resolves name on
	// behalf of the caller identified by ctx.
	GetDependencyContext(ctx context.Context, name string) (any, error)
}

// Func adapts an ordinary function to the Provider interface.
type Func func(name string) (any, error)

// GetDependency implements the Provider interface.
func (f Func) GetDependency(name string) (any, error) { return f(name) }

// Map is a static, read-only Provider. It must not be mutated while in use.
type Map map[string]any

// GetDependency implements the Provider interface.
func (m Map) GetDependency(name string) (any, error) {
	if v, ok := m[name]; ok {
		return v, nil
	}
	return nil, NotFound(name)
}

// Resolve asks p for the named dependency. A panic inside the provider is
// recovered and returned as an error that does not belong to the provider
// error family.
func Resolve(p Provider, name string) (any, error) {
	return ResolveContext(context.Background(), p, name)
}

// ResolveContext is like Resolve but hands ctx to providers implementing
// ContextProvider.
func ResolveContext(ctx context.Context, p Provider, name string) (v any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			v = nil
			err = fmt.Errorf("panic during provider call for %q: %v", name, rec)
		}
	}()
	if cp, ok := p.(ContextProvider); ok {
		return cp.GetDependencyContext(ctx, name)
	}
	return p.GetDependency(name)
}

// Declared reports whether err belongs to the provider error family.
func Declared(err error) bool {
	return errors.Is(err, ErrProvider)
}
