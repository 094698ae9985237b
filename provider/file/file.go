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

// Package file provides a dependency provider backed by a JSON or YAML
// document whose top level is an object. Each top-level key is a
// dependency.
//
// The document is read and decoded on every resolution, so edits to the
// file take effect on the next call without any reload step.
package file

import (
	"github.com/deep-rent/sidein/config"
	"github.com/deep-rent/sidein/provider"
)

// Provider resolves dependencies from a configuration file.
type Provider struct {
	path string
}

// New creates a Provider reading the file at path. The format is inferred
// from the extension; see codec.Infer.
func New(path string) *Provider {
	return &Provider{path: path}
}

// Path returns the file the provider reads.
func (p *Provider) Path() string {
	return p.path
}

// Load decodes the whole document.
func (p *Provider) Load() (map[string]any, error) {
	var doc map[string]any
	if err := config.Load(p.path, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetDependency implements the provider.Provider interface. A failure to
// read or decode the file is reported within the provider error family.
func (p *Provider) GetDependency(name string) (any, error) {
	doc, err := p.Load()
	if err != nil {
		return nil, provider.Failed(name, err)
	}
	v, ok := doc[name]
	if !ok {
		return nil, provider.NotFound(name)
	}
	return v, nil
}
