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
)

// ErrNoResult is returned by Await if the result channel is closed without
// delivering a value.
var ErrNoResult = errors.New("async call delivered no result")

// Call holds the arguments of a single invocation. Kwargs carries named
// arguments; injected dependencies land there under their own names.
type Call struct {
	Args   []any
	Kwargs map[string]any

	ctx context.Context
}

// Context returns the context the call was made in. It defaults to
// context.Background. Synchronous wrappers resolve dependencies on behalf
// of this context.
func (c Call) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// WithContext returns a shallow copy of c bound to ctx. A nil ctx is
// ignored.
func (c Call) WithContext(ctx context.Context) Call {
	if ctx != nil {
		c.ctx = ctx
	}
	return c
}

// Arg returns the positional argument at index i.
func (c Call) Arg(i int) (any, bool) {
	if i < 0 || i >= len(c.Args) {
		return nil, false
	}
	return c.Args[i], true
}

// Kwarg returns the named argument.
func (c Call) Kwarg(name string) (any, bool) {
	v, ok := c.Kwargs[name]
	return v, ok
}

// Func is a synchronous call target.
type Func func(call Call) (any, error)

// Result is the outcome of an asynchronous call.
type Result struct {
	Value any
	Err   error
}

// AsyncFunc is an asynchronous call target. It returns immediately; the
// outcome is delivered on the returned channel.
type AsyncFunc func(ctx context.Context, call Call) <-chan Result

// Go turns fn into an AsyncFunc that runs fn on its own goroutine. It
// returns nil if fn is nil.
func Go(fn Func) AsyncFunc {
	if fn == nil {
		return nil
	}
	return func(ctx context.Context, call Call) <-chan Result {
		call = call.WithContext(ctx)
		ch := make(chan Result, 1)
		go func() {
			defer close(ch)
			v, err := fn(call)
			ch <- Result{Value: v, Err: err}
		}()
		return ch
	}
}

// Await blocks until ch delivers a result or ctx is done.
func Await(ctx context.Context, ch <-chan Result) (any, error) {
	select {
	case r, ok := <-ch:
		if !ok {
			return nil, ErrNoResult
		}
		return r.Value, r.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// fail returns a channel that holds only err.
func fail(err error) <-chan Result {
	ch := make(chan Result, 1)
	ch <- Result{Err: err}
	close(ch)
	return ch
}
