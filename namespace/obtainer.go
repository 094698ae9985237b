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

package namespace

import (
	"context"
	"fmt"
)

// Obtainer is a deferred handle to a dependency. It holds no value of its
// own; every call to Obtain resolves the dependency anew through the
// namespace's current provider.
type Obtainer struct {
	ns   *Namespace
	name string
}

// Name returns the name of the dependency without resolving it.
func (o *Obtainer) Name() string {
	if o == nil {
		return ""
	}
	return o.name
}

// Obtain resolves the dependency. It fails exactly like Namespace.Get, or
// with ErrDetached if o was not created by a Namespace.
func (o *Obtainer) Obtain() (any, error) {
	return o.ObtainContext(context.Background())
}

// ObtainContext is like Obtain but resolves on behalf of ctx.
func (o *Obtainer) ObtainContext(ctx context.Context) (any, error) {
	if o == nil {
		return nil, ErrDetached
	}
	if o.ns == nil {
		return nil, fmt.Errorf("%w: %q", ErrDetached, o.name)
	}
	return o.ns.GetContext(ctx, o.name)
}
