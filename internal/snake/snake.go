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

// Package snake converts dependency names into SNAKE_CASE keys.
package snake

import (
	"strings"
	"unicode"
)

// ToUpper converts s to an uppercase SNAKE_CASE key.
//
// Word boundaries are inserted at camelCase transitions ("httpPort" becomes
// "HTTP_PORT", "APIKey" becomes "API_KEY"). Every run of characters that are
// neither letters nor digits collapses into a single underscore, and leading
// or trailing separators are dropped, so "db.url" becomes "DB_URL".
func ToUpper(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)

	runes := []rune(s)
	pending := false
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			pending = b.Len() > 0
			continue
		}
		if i > 0 && b.Len() > 0 && !pending && boundary(runes, i) {
			pending = true
		}
		if pending {
			b.WriteByte('_')
			pending = false
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// boundary reports whether a camelCase word starts at runes[i].
func boundary(runes []rune, i int) bool {
	prev, r := runes[i-1], runes[i]
	switch {
	case unicode.IsLower(prev) && (unicode.IsUpper(r) || unicode.IsDigit(r)):
		return true
	case unicode.IsUpper(prev) && unicode.IsUpper(r):
		return i+1 < len(runes) && unicode.IsLower(runes[i+1])
	default:
		return false
	}
}
