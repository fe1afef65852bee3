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
	"context"
	"encoding/json"
	"io/fs"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/swaprc/pkg/config"
)

// 📊 Outcome classifies what happened to one matched file
type Outcome int

const (
	OutcomeUnchanged   Outcome = iota
	OutcomeModified            // File rewritten with at least one swapped value
	OutcomeWouldModify         // Dry run: file would have been rewritten
	OutcomeMissing             // File disappeared between matching and reading
	OutcomeInvalidJSON         // File content is not valid JSON
	OutcomeWriteFailed         // Swap succeeded in memory but rewrite failed
	OutcomeBadPattern          // Glob pattern could not be expanded
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeModified:
		return "modified"
	case OutcomeWouldModify:
		return "would-modify"
	case OutcomeMissing:
		return "missing"
	case OutcomeInvalidJSON:
		return "invalid-json"
	case OutcomeWriteFailed:
		return "write-failed"
	case OutcomeBadPattern:
		return "bad-pattern"
	default:
		return "unchanged"
	}
}

// 📄 FileResult reports the outcome for one matched file
type FileResult struct {
	Path         string  // Path as returned by the pattern expander
	Outcome      Outcome // What happened
	Replacements int     // Number of key rules that swapped a value
	Err          error   // Underlying error for the failure outcomes
}

// 🔧 FileSwapper applies a group's key rules to single files
type FileSwapper struct {
	fs     afero.Fs
	dryRun bool
}

// 🏭 NewFileSwapper creates a FileSwapper on the given filesystem
func NewFileSwapper(fsys afero.Fs, dryRun bool) *FileSwapper {
	return &FileSwapper{
		fs:     fsys,
		dryRun: dryRun,
	}
}

// 🔄 SwapFile loads one JSON file, applies the rules, and rewrites it only
// when a rule changed a value. Unchanged files are left byte-for-byte
// untouched. All failures are reported in the result, never returned.
func (s *FileSwapper) SwapFile(ctx context.Context, path string, rules []config.KeyRule, direction Direction, indent int) FileResult {
	logger := zerolog.Ctx(ctx)

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return FileResult{Path: path, Outcome: OutcomeMissing, Err: err}
		}
		return FileResult{Path: path, Outcome: OutcomeMissing, Err: errors.Errorf("reading file: %w", err)}
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return FileResult{Path: path, Outcome: OutcomeInvalidJSON, Err: err}
	}

	root, ok := raw.(map[string]any)
	if !ok {
		// Key paths resolve through nested objects only, so a document
		// whose root is an array or scalar can never match a rule.
		logger.Debug().Str("file", path).Msg("root is not a JSON object, nothing to swap")
		return FileResult{Path: path, Outcome: OutcomeUnchanged}
	}

	doc := Document(root)
	replaced := doc.Apply(rules, direction)
	if replaced == 0 {
		return FileResult{Path: path, Outcome: OutcomeUnchanged}
	}

	if s.dryRun {
		logger.Debug().Str("file", path).Int("replacements", replaced).Msg("dry run, skipping rewrite")
		return FileResult{Path: path, Outcome: OutcomeWouldModify, Replacements: replaced}
	}

	out, err := json.MarshalIndent(doc, "", strings.Repeat(" ", indent))
	if err != nil {
		return FileResult{Path: path, Outcome: OutcomeWriteFailed, Replacements: replaced, Err: errors.Errorf("encoding document: %w", err)}
	}

	mode := fs.FileMode(0644)
	if info, err := s.fs.Stat(path); err == nil {
		mode = info.Mode()
	}

	if err := afero.WriteFile(s.fs, path, out, mode); err != nil {
		return FileResult{Path: path, Outcome: OutcomeWriteFailed, Replacements: replaced, Err: errors.Errorf("writing file: %w", err)}
	}

	logger.Debug().Str("file", path).Int("replacements", replaced).Msg("file rewritten")
	return FileResult{Path: path, Outcome: OutcomeModified, Replacements: replaced}
}
