// Copyright 2025 walteh LLC
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

package swap

import (
	"reflect"
	"strings"

	"github.com/walteh/swaprc/pkg/config"
)

// 📄 Document is one parsed JSON file, mutated in place
type Document map[string]any

// 🔄 Apply applies every rule in order and reports how many changed a value.
// Rules share the document: a later rule sees the state left by earlier ones.
func (doc Document) Apply(rules []config.KeyRule, direction Direction) int {
	replaced := 0
	for _, rule := range rules {
		if doc.applyRule(rule, direction) {
			replaced++
		}
	}
	return replaced
}

// 🔑 applyRule walks one dot-path and swaps the value if it matches.
// The walk consumes nested objects only: a missing segment or a
// non-object intermediate value makes the rule a no-op, never an error.
func (doc Document) applyRule(rule config.KeyRule, direction Direction) bool {
	segments := strings.Split(rule.Key, ".")

	current := map[string]any(doc)
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment]
		if !ok {
			return false
		}
		child, ok := next.(map[string]any)
		if !ok {
			// Arrays and scalars are not traversed
			return false
		}
		current = child
	}

	last := segments[len(segments)-1]
	existing, ok := current[last]
	if !ok {
		return false
	}

	source, target := rule.Working, rule.Committed
	if direction == DirectionToWorking {
		source, target = rule.Committed, rule.Working
	}

	// Only an exact match of the source value is swapped. Any other
	// value stays put, which makes repeat runs in the same direction
	// idempotent.
	if !reflect.DeepEqual(existing, source) {
		return false
	}

	current[last] = target
	return true
}
