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
)

var (
	// ErrInvalidExtractor is returned when the extractor is nil.
	ErrInvalidExtractor = errors.New("invalid decorator extractor")
	// ErrExtractorFailed wraps an error or panic raised by the extractor.
	ErrExtractorFailed = errors.New("decorator extractor failed")
	// ErrInvalidDecorator is returned when the extracted value is not a
	// decorator.
	ErrInvalidDecorator = errors.New("invalid decorator")
	// ErrDecoratorFailed wraps an error or panic raised by the decorator.
	ErrDecoratorFailed = errors.New("decorator failed")
	// ErrInvalidReplacement is returned when the decorator produced nothing
	// callable, or a replacement of the wrong kind (sync versus async).
	ErrInvalidReplacement = errors.New("invalid replacement function")
)

// Extractor derives a decorator from a resolved dependency. This allows
// storing decorator factories as dependencies:
//
//	namespace.WithExtractor(func(dep any) (any, error) {
//		return dep.(func(string) func(namespace.Func) namespace.Func)("prefix"), nil
//	})
type Extractor func(dep any) (any, error)

// Identity is the default Extractor. It uses the dependency as the
// decorator.
func Identity(dep any) (any, error) { return dep, nil }

// Decorator is the generic decorator form. It receives the original target
// (a Func or an AsyncFunc) and returns its replacement, which must be of
// the same kind. Besides Decorator, the typed forms func(Func) Func and
// func(AsyncFunc) AsyncFunc are accepted as well.
type Decorator func(target any) (any, error)

type decorateConfig struct {
	extractor Extractor
}

// DecorateOption configures Decorate and DecorateAsync.
type DecorateOption func(*decorateConfig)

// WithExtractor sets the Extractor. Passing nil makes every call of the
// wrapper fail with ErrInvalidExtractor.
func WithExtractor(extractor Extractor) DecorateOption {
	return func(c *decorateConfig) {
		c.extractor = extractor
	}
}

// Decorate wraps target so that each call resolves the named dependency,
// turns it into a decorator via the extractor, applies the decorator to
// target and finally calls the resulting replacement. All of these steps
// are repeated on every call. The dependency is resolved on behalf of
// Call.Context.
func (ns *Namespace) Decorate(
	target Func,
	name string,
	opts ...DecorateOption,
) (Func, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: cannot decorate %T", ErrNotCallable, target)
	}
	cfg := decorateOptions(opts)

	return func(call Call) (any, error) {
		v, err := ns.replacement(call.Context(), target, name, cfg.extractor)
		if err != nil {
			return nil, err
		}
		var fn Func
		switch r := v.(type) {
		case Func:
			fn = r
		case func(Call) (any, error):
			fn = r
		}
		if fn == nil {
			return nil, fmt.Errorf(
				"%w: synchronous target needs a Func, got %T",
				ErrInvalidReplacement, v,
			)
		}
		return fn(call)
	}, nil
}

// DecorateAsync is the asynchronous counterpart of Decorate. The
// replacement must be an AsyncFunc. Failures before the replacement is
// started are delivered through the returned channel.
func (ns *Namespace) DecorateAsync(
	target AsyncFunc,
	name string,
	opts ...DecorateOption,
) (AsyncFunc, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: cannot decorate %T", ErrNotCallable, target)
	}
	cfg := decorateOptions(opts)

	return func(ctx context.Context, call Call) <-chan Result {
		v, err := ns.replacement(ctx, target, name, cfg.extractor)
		if err != nil {
			return fail(err)
		}
		var fn AsyncFunc
		switch r := v.(type) {
		case AsyncFunc:
			fn = r
		case func(context.Context, Call) <-chan Result:
			fn = r
		}
		if fn == nil {
			return fail(fmt.Errorf(
				"%w: asynchronous target needs an AsyncFunc, got %T",
				ErrInvalidReplacement, v,
			))
		}
		return fn(ctx, call)
	}, nil
}

func decorateOptions(opts []DecorateOption) decorateConfig {
	cfg := decorateConfig{extractor: Identity}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// replacement runs the resolve, extract and apply steps for a single call.
func (ns *Namespace) replacement(
	ctx context.Context,
	target any,
	name string,
	extractor Extractor,
) (any, error) {
	dep, err := ns.GetContext(ctx, name)
	if err != nil {
		return nil, err
	}

	if extractor == nil {
		return nil, fmt.Errorf("%w: extractor is nil", ErrInvalidExtractor)
	}
	v, err := guard(func() (any, error) { return extractor(dep) })
	if err != nil {
		return nil, fmt.Errorf("%w: dependency %q: %w", ErrExtractorFailed, name, err)
	}

	apply, ok := decorator(v)
	if !ok {
		return nil, fmt.Errorf("%w: dependency %q yielded %T", ErrInvalidDecorator, name, v)
	}
	r, err := guard(func() (any, error) { return apply(target) })
	if err != nil {
		return nil, fmt.Errorf("%w: dependency %q: %w", ErrDecoratorFailed, name, err)
	}
	return r, nil
}

// decorator normalizes the accepted decorator forms. A typed decorator
// applied to a target of the other kind yields a nil replacement.
func decorator(v any) (func(target any) (any, error), bool) {
	switch d := v.(type) {
	case Decorator:
		return d, d != nil
	case func(any) (any, error):
		return d, d != nil
	case func(Func) Func:
		if d == nil {
			return nil, false
		}
		return func(target any) (any, error) {
			if fn, ok := target.(Func); ok {
				return d(fn), nil
			}
			return nil, nil
		}, true
	case func(AsyncFunc) AsyncFunc:
		if d == nil {
			return nil, false
		}
		return func(target any) (any, error) {
			if fn, ok := target.(AsyncFunc); ok {
				return d(fn), nil
			}
			return nil, nil
		}, true
	default:
		return nil, false
	}
}

// guard calls f and converts a panic into an error.
func guard(f func() (any, error)) (v any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			v = nil
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return f()
}
