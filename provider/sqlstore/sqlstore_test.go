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

package sqlstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/deep-rent/sidein/namespace"
	"github.com/deep-rent/sidein/provider"
	"github.com/deep-rent/sidein/provider/sqlstore"
)

// open starts a disposable PostgreSQL container and returns a migrated
// store connected to it.
func open(t *testing.T, opts ...sqlstore.Option) *sqlstore.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := t.Context()
	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("sidein"),
		postgres.WithUsername("sidein"),
		postgres.WithPassword("sidein"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := sqlstore.Open(dsn, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Migrate(ctx))
	return s
}

func TestStore(t *testing.T) {
	s := open(t, sqlstore.WithTable("Deps"), sqlstore.WithTimeout(10*time.Second))
	ctx := t.Context()

	t.Run("Resolves rows", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "dsn", "postgres://db"))

		v, err := s.GetDependency("dsn")
		require.NoError(t, err)
		assert.Equal(t, "postgres://db", v)
	})

	t.Run("Put overwrites", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "level", "info"))
		require.NoError(t, s.Put(ctx, "level", "debug"))

		v, err := s.GetDependency("level")
		require.NoError(t, err)
		assert.Equal(t, "debug", v)
	})

	t.Run("Unusual names", func(t *testing.T) {
		for _, name := range []string{"", " ", "ünïcödé", "a'b"} {
			require.NoError(t, s.Put(ctx, name, "v:"+name))
			v, err := s.GetDependency(name)
			require.NoError(t, err)
			assert.Equal(t, "v:"+name, v)
		}
	})

	t.Run("Missing row", func(t *testing.T) {
		_, err := s.GetDependency("missing")
		assert.ErrorIs(t, err, provider.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "tmp", "x"))
		require.NoError(t, s.Delete(ctx, "tmp"))
		assert.ErrorIs(t, s.Delete(ctx, "tmp"), provider.ErrNotFound)
	})

	t.Run("Namespace sees updates", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "greeting", "hello"))
		ns := namespace.New("db", namespace.WithProvider(s))

		fn, err := ns.Inject(func(call namespace.Call) (any, error) {
			return call.Args[0], nil
		}, []string{"greeting"}, namespace.AsTrailingPositional())
		require.NoError(t, err)

		v, err := fn(namespace.Call{})
		require.NoError(t, err)
		assert.Equal(t, "hello", v)

		require.NoError(t, s.Put(ctx, "greeting", "bye"))
		v, err = fn(namespace.Call{})
		require.NoError(t, err)
		assert.Equal(t, "bye", v)
	})
}

func TestStore_ClosedDatabase(t *testing.T) {
	s, err := sqlstore.Open("postgres://invalid.invalid/none?sslmode=disable",
		sqlstore.WithTimeout(time.Second),
	)
	require.NoError(t, err, "sql.Open does not connect")
	require.NoError(t, s.Close())

	_, err = s.GetDependency("a")
	require.ErrorIs(t, err, provider.ErrProvider)
	assert.NotErrorIs(t, err, provider.ErrNotFound)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.Error(t, s.Migrate(ctx))
}
