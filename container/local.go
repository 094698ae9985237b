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

package container

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// scopeKey is the context key under which a Local stores its scope.
type scopeKey struct{ local *Local }

// Local partitions dependencies by scope. Each scope sees only the entries
// it inserted itself. A scope is opened explicitly with Scope and travels
// in a context.Context, which is how a goroutine claims its own partition:
//
//	ctx = local.Scope(ctx)
//	_ = local.For(ctx).Add("requestID", id)
//
// Contexts that carry no scope share a single unscoped partition, which is
// never visible to any scope. Opening a scope on top of an already scoped
// context yields a fresh, empty partition; nothing is inherited.
//
// The unscoped partition is one container for the whole process: every
// goroutine that calls For without a scope, or GetDependency, reads and
// writes the same entries. Open a scope when isolation is needed.
//
// A Local implements provider.ContextProvider, so it can back a namespace;
// the namespace then resolves against the partition of the caller's context.
//
// A Local is safe for concurrent use.
type Local struct {
	mu       sync.Mutex
	parts    map[uuid.UUID]*Container
	unscoped *Container
}

// NewLocal creates a Local without any scopes.
func NewLocal() *Local {
	return &Local{
		parts:    make(map[uuid.UUID]*Container),
		unscoped: New(),
	}
}

// Scope returns a child of ctx bound to a newly created, empty partition.
func (l *Local) Scope(ctx context.Context) context.Context {
	id := uuid.New()

	l.mu.Lock()
	l.parts[id] = New()
	l.mu.Unlock()

	return context.WithValue(ctx, scopeKey{l}, id)
}

// ID returns the identifier of the scope carried by ctx, if any.
func (l *Local) ID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(scopeKey{l}).(uuid.UUID)
	return id, ok
}

// For returns the partition belonging to the scope carried by ctx. If ctx
// carries no scope, the unscoped partition is returned instead.
//
// A scope that has been released is not brought back to life: For hands
// out a fresh container that is not registered with l, so writes to it are
// dropped together with the container. Open a new scope to
// regain a persistent partition.
func (l *Local) For(ctx context.Context) *Container {
	id, ok := l.ID(ctx)
	if !ok {
		return l.unscoped
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if c, found := l.parts[id]; found {
		return c
	}
	return New()
}

// GetDependency resolves name from the unscoped partition.
func (l *Local) GetDependency(name string) (any, error) {
	return l.unscoped.Get(name)
}

// GetDependencyContext resolves name from the partition of the scope
// carried by ctx.
func (l *Local) GetDependencyContext(ctx context.Context, name string) (any, error) {
	return l.For(ctx).Get(name)
}

// Release discards the partition of the scope carried by ctx. Go offers no
// hook for goroutine exit, so callers release scopes when they are done.
func (l *Local) Release(ctx context.Context) {
	id, ok := l.ID(ctx)
	if !ok {
		return
	}

	l.mu.Lock()
	delete(l.parts, id)
	l.mu.Unlock()
}

// Len returns the number of open scopes.
func (l *Local) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.parts)
}
