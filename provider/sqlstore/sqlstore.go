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

// Package sqlstore provides a dependency provider backed by a key/value
// table in PostgreSQL.
//
// The table holds one row per dependency, with the dependency name as
// primary key and its value as text:
//
//	CREATE TABLE IF NOT EXISTS dependencies (
//		name  TEXT PRIMARY KEY,
//		value TEXT NOT NULL
//	)
//
// Every resolution issues a query; nothing is cached.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/deep-rent/sidein/provider"
)

// Default configuration values for a new Store.
const (
	DefaultTable   = "dependencies"
	DefaultTimeout = 5 * time.Second
)

type config struct {
	table   string
	timeout time.Duration
}

// Option configures a Store.
type Option func(*config)

// WithTable sets the name of the backing table. An empty value is ignored.
func WithTable(table string) Option {
	return func(c *config) {
		if table != "" {
			c.table = table
		}
	}
}

// WithTimeout bounds the duration of a single lookup. A non-positive value
// is ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Store resolves dependencies from a database table.
type Store struct {
	db      *sql.DB
	table   string
	timeout time.Duration
}

// Open connects to PostgreSQL using the lib/pq driver.
func Open(dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: %w", err)
	}
	return New(db, opts...), nil
}

// New wraps an existing database handle.
func New(db *sql.DB, opts ...Option) *Store {
	cfg := config{
		table:   DefaultTable,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Store{
		db:      db,
		table:   pq.QuoteIdentifier(cfg.table),
		timeout: cfg.timeout,
	}
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the backing table if it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	q := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (name TEXT PRIMARY KEY, value TEXT NOT NULL)",
		s.table,
	)
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("sqlstore: migrate: %w", err)
	}
	return nil
}

// Put inserts or overwrites a dependency.
func (s *Store) Put(ctx context.Context, name, value string) error {
	q := fmt.Sprintf(
		"INSERT INTO %s (name, value) VALUES ($1, $2) "+
			"ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value",
		s.table,
	)
	if _, err := s.db.ExecContext(ctx, q, name, value); err != nil {
		return fmt.Errorf("sqlstore: put %q: %w", name, err)
	}
	return nil
}

// Delete removes a dependency. It fails with provider.ErrNotFound if there
// is no such row.
func (s *Store) Delete(ctx context.Context, name string) error {
	q := fmt.Sprintf("DELETE FROM %s WHERE name = $1", s.table)
	res, err := s.db.ExecContext(ctx, q, name)
	if err != nil {
		return fmt.Errorf("sqlstore: delete %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlstore: delete %q: %w", name, err)
	}
	if n == 0 {
		return provider.NotFound(name)
	}
	return nil
}

// GetDependency implements the provider.Provider interface. Database
// errors are reported within the provider error family.
func (s *Store) GetDependency(name string) (any, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	q := fmt.Sprintf("SELECT value FROM %s WHERE name = $1", s.table)
	var value string
	err := s.db.QueryRowContext(ctx, q, name).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, provider.NotFound(name)
	case err != nil:
		return nil, provider.Failed(name, err)
	default:
		return value, nil
	}
}
