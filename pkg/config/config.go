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

package config

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for ruleset parsers
type Parser interface {
	// 📝 Parse parses the ruleset from bytes
	Parse(ctx context.Context, data []byte) (*Ruleset, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔑 KeyRule binds one dot-separated key path to its working/committed pair
type KeyRule struct {
	Key       string `json:"key" yaml:"key"`             // Dot-separated path, e.g. "api.debug"
	Working   any    `json:"working" yaml:"working"`     // Value held locally during development
	Committed any    `json:"committed" yaml:"committed"` // Value stored in version control
}

// 📦 PatternGroup binds a file glob to the key rules applied to its matches
type PatternGroup struct {
	Path   string    `json:"path" yaml:"path"`                         // Glob pattern, may contain a ** segment
	Keys   []KeyRule `json:"keys" yaml:"keys"`                         // Rules applied in declaration order
	Indent int       `json:"indent,omitempty" yaml:"indent,omitempty"` // Indent width for rewritten files
}

// 📚 Ruleset is the complete substitution configuration
type Ruleset struct {
	Patterns []PatternGroup `json:"patterns" yaml:"patterns"`
}

// DefaultIndent is used when a pattern group does not set one.
const DefaultIndent = 2

// 🔍 Validate checks the ruleset shape and applies defaults
func (rs *Ruleset) Validate() error {
	if len(rs.Patterns) == 0 {
		return errors.Errorf("patterns is required")
	}

	for i := range rs.Patterns {
		group := &rs.Patterns[i]
		if group.Path == "" {
			return errors.Errorf("patterns[%d]: path is required", i)
		}
		if len(group.Keys) == 0 {
			return errors.Errorf("patterns[%d]: keys is required", i)
		}
		if group.Indent < 0 {
			return errors.Errorf("patterns[%d]: indent must not be negative", i)
		}
		if group.Indent == 0 {
			group.Indent = DefaultIndent
		}

		for j := range group.Keys {
			rule := &group.Keys[j]
			if rule.Key == "" {
				return errors.Errorf("patterns[%d].keys[%d]: key is required", i, j)
			}
			for _, segment := range strings.Split(rule.Key, ".") {
				if segment == "" {
					return errors.Errorf("patterns[%d].keys[%d]: key %q has an empty segment", i, j, rule.Key)
				}
			}

			// Rule values are compared against documents decoded by
			// encoding/json, which represents every number as float64.
			// YAML and HCL decode integers differently, so both values
			// go through a JSON round-trip here; without it a YAML
			// `working: 1` would never match the 1 in a JSON document.
			working, err := normalizeValue(rule.Working)
			if err != nil {
				return errors.Errorf("patterns[%d].keys[%d]: working value is not a JSON value: %w", i, j, err)
			}
			committed, err := normalizeValue(rule.Committed)
			if err != nil {
				return errors.Errorf("patterns[%d].keys[%d]: committed value is not a JSON value: %w", i, j, err)
			}
			rule.Working = working
			rule.Committed = committed
		}
	}

	return nil
}

// 🔄 normalizeValue round-trips a value through encoding/json
func normalizeValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Errorf("marshaling value: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Errorf("unmarshaling value: %w", err)
	}
	return out, nil
}

// 🎯 Load loads the ruleset from a file
func Load(ctx context.Context, path string) (*Ruleset, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading ruleset")

	// Read ruleset file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading ruleset file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse ruleset
	rs, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing ruleset: %w", err)
	}

	// Validate
	if err := rs.Validate(); err != nil {
		return nil, errors.Errorf("validating ruleset: %w", err)
	}

	logger.Debug().Int("patterns", len(rs.Patterns)).Msg("ruleset loaded")
	return rs, nil
}
