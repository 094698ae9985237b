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

// Package env provides a dependency provider backed by environment
// variables.
//
// A dependency name is mapped to a variable by converting it to uppercase
// SNAKE_CASE and prepending an optional prefix. With the prefix "APP_", the
// dependency "db.url" resolves to APP_DB_URL and "httpPort" to
// APP_HTTP_PORT. Values are returned as strings. The environment is read on
// every resolution.
//
//	ns.SetProvider(env.New(env.WithPrefix("APP_")))
package env

import (
	"os"

	"github.com/deep-rent/sidein/internal/snake"
	"github.com/deep-rent/sidein/provider"
)

// Lookup retrieves the value of an environment variable. It follows the
// signature of os.LookupEnv, which is the default.
type Lookup func(key string) (string, bool)

type config struct {
	prefix string
	lookup Lookup
}

// Option configures a Provider.
type Option func(*config)

// WithPrefix sets a prefix that is prepended to every derived key.
func WithPrefix(prefix string) Option {
	return func(c *config) {
		c.prefix = prefix
	}
}

// WithLookup replaces os.LookupEnv. A nil value is ignored.
func WithLookup(lookup Lookup) Option {
	return func(c *config) {
		if lookup != nil {
			c.lookup = lookup
		}
	}
}

// Provider resolves dependencies from the environment.
type Provider struct {
	prefix string
	lookup Lookup
}

// New creates a Provider.
func New(opts ...Option) *Provider {
	cfg := config{lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Provider{
		prefix: cfg.prefix,
		lookup: cfg.lookup,
	}
}

// Key returns the environment variable consulted for name.
func (p *Provider) Key(name string) string {
	return p.prefix + snake.ToUpper(name)
}

// GetDependency implements the provider.Provider interface. An unset
// variable yields an error wrapping provider.ErrNotFound.
func (p *Provider) GetDependency(name string) (any, error) {
	v, ok := p.lookup(p.Key(name))
	if !ok {
		return nil, provider.NotFound(name)
	}
	return v, nil
}
