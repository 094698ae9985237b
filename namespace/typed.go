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
	"errors"
	"fmt"
	"reflect"
)

// ErrTypeMismatch is returned by the typed accessors when a dependency does
// not hold a value of the requested type.
var ErrTypeMismatch = errors.New("dependency has unexpected type")

// Value resolves the named dependency and asserts it to T. A nil
// dependency yields the zero value of T without error.
func Value[T any](ns *Namespace, name string) (T, error) {
	v, err := ns.Get(name)
	if err != nil {
		var zero T
		return zero, err
	}
	return assert[T](name, v)
}

// MustValue is like Value but panics if an error occurs. It is meant for
// wiring code where a missing dependency is a programming error.
func MustValue[T any](ns *Namespace, name string) T {
	v, err := Value[T](ns, name)
	if err != nil {
		panic(err)
	}
	return v
}

// Obtain resolves the dependency behind o and asserts it to T.
func Obtain[T any](o *Obtainer) (T, error) {
	v, err := o.Obtain()
	if err != nil {
		var zero T
		return zero, err
	}
	return assert[T](o.Name(), v)
}

func assert[T any](name string, v any) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf(
			"%w: %q holds %T, want %v",
			ErrTypeMismatch, name, v, reflect.TypeFor[T](),
		)
	}
	return t, nil
}
