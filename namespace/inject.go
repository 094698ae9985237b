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
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrNotCallable is returned when a nil target is handed to Inject,
// InjectAsync, Decorate or DecorateAsync.
var ErrNotCallable = errors.New("target is not callable")

type injectConfig struct {
	obtainers  bool
	positional bool
}

// InjectOption configures Inject and InjectAsync.
type InjectOption func(*injectConfig)

// AsObtainers injects an *Obtainer per dependency instead of its value.
func AsObtainers() InjectOption {
	return func(c *injectConfig) {
		c.obtainers = true
	}
}

// AsTrailingPositional appends the dependencies to Call.Args, in the order
// in which they were requested, instead of merging them into Call.Kwargs.
func AsTrailingPositional() InjectOption {
	return func(c *injectConfig) {
		c.positional = true
	}
}

// Inject wraps target so that each call resolves the named dependencies
// and passes them along. Injected dependencies override keyword arguments
// of the same name. Resolution failures, including ErrDuplicateRequest,
// surface from the wrapper on every call; only a nil target is rejected
// up front. Dependencies are resolved on behalf of Call.Context.
func (ns *Namespace) Inject(
	target Func,
	names []string,
	opts ...InjectOption,
) (Func, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: cannot inject into %T", ErrNotCallable, target)
	}
	cfg := injectOptions(opts)
	names = slices.Clone(names)

	return func(call Call) (any, error) {
		call, err := ns.inject(call.Context(), call, names, cfg)
		if err != nil {
			return nil, err
		}
		return target(call)
	}, nil
}

// InjectAsync is the asynchronous counterpart of Inject. Dependencies are
// resolved synchronously, on behalf of ctx, before target is started; a
// resolution failure is delivered through the returned channel.
func (ns *Namespace) InjectAsync(
	target AsyncFunc,
	names []string,
	opts ...InjectOption,
) (AsyncFunc, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: cannot inject into %T", ErrNotCallable, target)
	}
	cfg := injectOptions(opts)
	names = slices.Clone(names)

	return func(ctx context.Context, call Call) <-chan Result {
		call, err := ns.inject(ctx, call, names, cfg)
		if err != nil {
			return fail(err)
		}
		return target(ctx, call)
	}, nil
}

func injectOptions(opts []InjectOption) injectConfig {
	cfg := injectConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// inject returns a copy of call extended by the resolved dependencies. The
// caller's slices and maps are left untouched.
func (ns *Namespace) inject(
	ctx context.Context,
	call Call,
	names []string,
	cfg injectConfig,
) (Call, error) {
	deps, err := ns.many(ctx, names, cfg.obtainers)
	if err != nil {
		return Call{}, err
	}

	if cfg.positional {
		args := make([]any, 0, len(call.Args)+len(names))
		args = append(args, call.Args...)
		for _, name := range names {
			args = append(args, deps[name])
		}
		call.Args = args
		return call, nil
	}

	kwargs := make(map[string]any, len(call.Kwargs)+len(deps))
	maps.Copy(kwargs, call.Kwargs)
	maps.Copy(kwargs, deps)
	call.Kwargs = kwargs
	return call, nil
}
