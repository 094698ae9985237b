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

package env_test

import (
	"testing"

	"github.com/deep-rent/sidein/namespace"
	"github.com/deep-rent/sidein/provider"
	"github.com/deep-rent/sidein/provider/env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) env.Lookup {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestProvider_Key(t *testing.T) {
	p := env.New(env.WithPrefix("APP_"))
	assert.Equal(t, "APP_DB_URL", p.Key("db.url"))
	assert.Equal(t, "APP_HTTP_PORT", p.Key("httpPort"))
	assert.Equal(t, "HTTP_PORT", env.New().Key("httpPort"))
}

func TestProvider_GetDependency(t *testing.T) {
	p := env.New(
		env.WithPrefix("APP_"),
		env.WithLookup(mapLookup(map[string]string{
			"APP_DB_URL": "postgres://localhost/app",
			"APP_EMPTY":  "",
		})),
	)

	v, err := p.GetDependency("db.url")
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/app", v)

	v, err = p.GetDependency("empty")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	_, err = p.GetDependency("missing")
	assert.ErrorIs(t, err, provider.ErrNotFound)
}

func TestProvider_RealEnvironment(t *testing.T) {
	t.Setenv("SIDEIN_TEST_GREETING", "hello")
	ns := namespace.New("env", namespace.WithProvider(
		env.New(env.WithPrefix("SIDEIN_TEST_")),
	))

	fn, err := ns.Inject(func(call namespace.Call) (any, error) {
		return call.Kwargs["greeting"], nil
	}, []string{"greeting"})
	require.NoError(t, err)

	v, err := fn(namespace.Call{})
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	t.Setenv("SIDEIN_TEST_GREETING", "bye")
	v, err = fn(namespace.Call{})
	require.NoError(t, err)
	assert.Equal(t, "bye", v)
}

func TestProvider_NilLookup(t *testing.T) {
	t.Setenv("SIDEIN_NIL_LOOKUP", "ok")
	v, err := env.New(env.WithLookup(nil)).GetDependency("sideinNilLookup")
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}
