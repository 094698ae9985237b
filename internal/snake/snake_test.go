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

package snake_test

import (
	"testing"

	"github.com/deep-rent/sidein/internal/snake"
	"github.com/stretchr/testify/assert"
)

func TestToUpper(t *testing.T) {
	type test struct {
		name string
		in   string
		want string
	}

	tests := []test{
		{"simple", "myVariable", "MY_VARIABLE"},
		{"acronym start", "APIKey", "API_KEY"},
		{"acronym middle", "myAPIService", "MY_API_SERVICE"},
		{"acronym end", "serviceAPI", "SERVICE_API"},
		{"all caps", "ID", "ID"},
		{"single word", "test", "TEST"},
		{"empty string", "", ""},
		{"already snake", "MY_VARIABLE", "MY_VARIABLE"},
		{"dotted", "db.url", "DB_URL"},
		{"dashed", "cache-ttl", "CACHE_TTL"},
		{"separator run", "a..-b", "A_B"},
		{"surrounding separators", " .name. ", "NAME"},
		{"only separators", " \t", ""},
		{"digit transition", "port2", "PORT_2"},
		{"unicode", "ünïQuë", "ÜNÏ_QUË"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, snake.ToUpper(tc.in))
		})
	}
}
