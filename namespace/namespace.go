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

// Package namespace implements named scopes that bind exactly one dependency
// provider at a time and resolve dependencies through it.
//
// Besides plain lookups, a Namespace can wrap functions so that every call
// re-reads its dependencies (see Inject) or so that every call is routed
// through a decorator that is itself a dependency (see Decorate). Nothing is
// memoized: the provider is consulted on each call, which makes provider
// swaps and value replacements visible immediately.
//
// # Usage
//
//	ns := namespace.New("app")
//	c, _ := ns.Container()
//	_ = c.Add("greeting", "hello")
//
//	greet, _ := ns.Inject(func(call namespace.Call) (any, error) {
//		return call.Kwargs["greeting"], nil
//	}, []string{"greeting"})
//
//	v, _ := greet(namespace.Call{}) // "hello"
package namespace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/deep-rent/sidein/container"
	"github.com/deep-rent/sidein/log"
	"github.com/deep-rent/sidein/provider"
)

var (
	// ErrDuplicateRequest is returned when a batch lookup names the same
	// dependency more than once.
	ErrDuplicateRequest = errors.New("dependency requested more than once")
	// ErrUnexpectedProvider is returned when a provider fails with an error
	// outside the provider error family, or panics.
	ErrUnexpectedProvider = errors.New("provider failed unexpectedly")
	// ErrNotContainer is returned by Container when the bound provider is
	// not a *container.Container.
	ErrNotContainer = errors.New("provider is not a container")
	// ErrDetached is returned by an Obtainer that is not bound to a
	// namespace, such as the zero value.
	ErrDetached = errors.New("obtainer is not bound to a namespace")
)

type config struct {
	provider provider.Provider
	logger   *slog.Logger
}

// Option configures a Namespace.
type Option func(*config)

// WithProvider sets the initial provider. A nil value is ignored and a
// fresh container is used instead.
func WithProvider(p provider.Provider) Option {
	return func(c *config) {
		if p != nil {
			c.provider = p
		}
	}
}

// WithLogger sets the logger used to report provider swaps and unexpected
// provider failures. A nil value is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Namespace binds a single, swappable dependency provider. Reads and swaps
// of the provider are serialized, so a batch lookup never observes two
// different providers. A Namespace is safe for concurrent use.
type Namespace struct {
	name   string
	logger *slog.Logger
	mu     sync.RWMutex
	p      provider.Provider
}

// New creates a Namespace. Unless configured otherwise, it starts out with
// an empty container.Container and does not log.
func New(name string, opts ...Option) *Namespace {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.provider == nil {
		cfg.provider = container.New()
	}

	logger := log.Component(cfg.logger, "namespace").With(
		slog.String("namespace", name),
	)
	return &Namespace{
		name:   name,
		logger: logger,
		p:      cfg.provider,
	}
}

// Name returns the name the namespace was created with.
func (ns *Namespace) Name() string {
	return ns.name
}

// Provider returns the currently bound provider.
func (ns *Namespace) Provider() provider.Provider {
	ns.mu.RLock()
	defer ns.mu.RUnlock()

	return ns.p
}

// SetProvider replaces the bound provider. Passing nil binds a fresh, empty
// container.
func (ns *Namespace) SetProvider(p provider.Provider) {
	if p == nil {
		p = container.New()
	}

	ns.mu.Lock()
	ns.p = p
	ns.mu.Unlock()

	ns.logger.Debug("Provider replaced", slog.String("provider", fmt.Sprintf("%T", p)))
}

// Container returns the bound provider if it is a *container.Container.
func (ns *Namespace) Container() (*container.Container, error) {
	p := ns.Provider()
	c, ok := p.(*container.Container)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotContainer, p)
	}
	return c, nil
}

// Get resolves the named dependency through the current provider. Errors
// declared by the provider are returned as they are; anything else wraps
// ErrUnexpectedProvider.
func (ns *Namespace) Get(name string) (any, error) {
	return ns.GetContext(context.Background(), name)
}

// GetContext is like Get but passes ctx to providers that implement
// provider.ContextProvider, such as container.Local.
func (ns *Namespace) GetContext(ctx context.Context, name string) (any, error) {
	ns.mu.RLock()
	defer ns.mu.RUnlock()

	return ns.resolve(ctx, name)
}

// Obtainer returns a handle that resolves the named dependency on every
// call to Obtain. The provider is not consulted until then.
func (ns *Namespace) Obtainer(name string) *Obtainer {
	return &Obtainer{ns: ns, name: name}
}

// GetMany resolves all given names against the same provider. It fails
// with ErrDuplicateRequest if a name occurs more than once.
func (ns *Namespace) GetMany(names ...string) (map[string]any, error) {
	return ns.many(context.Background(), names, false)
}

// GetManyContext is like GetMany but resolves on behalf of ctx.
func (ns *Namespace) GetManyContext(ctx context.Context, names ...string) (map[string]any, error) {
	return ns.many(ctx, names, false)
}

// GetManyObtainers returns one Obtainer per name. It fails with
// ErrDuplicateRequest if a name occurs more than once.
func (ns *Namespace) GetManyObtainers(names ...string) (map[string]*Obtainer, error) {
	if err := unique(names); err != nil {
		return nil, err
	}
	out := make(map[string]*Obtainer, len(names))
	for _, name := range names {
		out[name] = ns.Obtainer(name)
	}
	return out, nil
}

// many resolves names under a single read lock. With obtainers set, the
// values are *Obtainer handles instead.
func (ns *Namespace) many(ctx context.Context, names []string, obtainers bool) (map[string]any, error) {
	if err := unique(names); err != nil {
		return nil, err
	}
	out := make(map[string]any, len(names))
	if obtainers {
		for _, name := range names {
			out[name] = ns.Obtainer(name)
		}
		return out, nil
	}

	ns.mu.RLock()
	defer ns.mu.RUnlock()

	for _, name := range names {
		v, err := ns.resolve(ctx, name)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

// resolve must be called with ns.mu held.
func (ns *Namespace) resolve(ctx context.Context, name string) (any, error) {
	v, err := provider.ResolveContext(ctx, ns.p, name)
	if err == nil {
		return v, nil
	}
	if provider.Declared(err) {
		return nil, err
	}
	ns.logger.Warn(
		"Provider failed unexpectedly",
		slog.String("dependency", name),
		slog.Any("error", err),
	)
	return nil, fmt.Errorf("%w: resolving %q: %w", ErrUnexpectedProvider, name, err)
}

func unique(names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateRequest, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
