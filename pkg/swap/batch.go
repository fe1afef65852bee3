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

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/swaprc/pkg/config"
)

// 📢 Reporter receives each file result as it is produced
type Reporter interface {
	FileProcessed(ctx context.Context, result FileResult)
}

// 📈 Summary aggregates the results of one batch run
type Summary struct {
	Results       []FileResult // Every per-file result, in processing order
	Modified      int          // Files successfully rewritten
	WouldModify   int          // Dry run: files that would have been rewritten
	WriteFailures int          // Files that changed in memory but failed to persist
	Errors        int          // Missing files, invalid JSON, bad patterns
}

// 🔧 Batcher applies a ruleset to every file its patterns match
type Batcher struct {
	fs       afero.Fs
	swapper  *FileSwapper
	reporter Reporter
}

// ⚙️ Options configures a Batcher
type Options struct {
	Fs       afero.Fs // Filesystem to match and mutate files on
	DryRun   bool     // Report would-be modifications without writing
	Reporter Reporter // Optional per-file result sink
}

// 🏭 NewBatcher creates a Batcher
func NewBatcher(opts Options) *Batcher {
	return &Batcher{
		fs:       opts.Fs,
		swapper:  NewFileSwapper(opts.Fs, opts.DryRun),
		reporter: opts.Reporter,
	}
}

// 🔍 ExpandPattern returns the concrete paths matching a glob pattern.
// A pattern with no matches is an empty, valid result.
func (b *Batcher) ExpandPattern(ctx context.Context, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(afero.NewIOFS(b.fs), pattern)
	if err != nil {
		return nil, errors.Errorf("expanding pattern %q: %w", pattern, err)
	}
	return matches, nil
}

// 🏃 Run processes every pattern group in declaration order and returns the
// aggregated summary. Per-file failures never abort the batch: a file that
// cannot be read or parsed is reported and the run moves on. A file matched
// by two groups is processed once per group.
func (b *Batcher) Run(ctx context.Context, ruleset *config.Ruleset, direction Direction) *Summary {
	logger := zerolog.Ctx(ctx)
	summary := &Summary{}

	for _, group := range ruleset.Patterns {
		matches, err := b.ExpandPattern(ctx, group.Path)
		if err != nil {
			logger.Warn().Str("pattern", group.Path).Err(err).Msg("skipping unexpandable pattern")
			b.record(ctx, summary, FileResult{Path: group.Path, Outcome: OutcomeBadPattern, Err: err})
			continue
		}

		logger.Debug().
			Str("pattern", group.Path).
			Int("matches", len(matches)).
			Int("rules", len(group.Keys)).
			Msg("processing pattern group")

		for _, path := range matches {
			result := b.swapper.SwapFile(ctx, path, group.Keys, direction, group.Indent)
			b.record(ctx, summary, result)
		}
	}

	return summary
}

// 📝 record tallies one result and forwards it to the reporter
func (b *Batcher) record(ctx context.Context, summary *Summary, result FileResult) {
	summary.Results = append(summary.Results, result)

	switch result.Outcome {
	case OutcomeModified:
		summary.Modified++
	case OutcomeWouldModify:
		summary.WouldModify++
	case OutcomeWriteFailed:
		// Deliberately not folded into Modified: the file on disk still
		// holds its old content, and not into Unchanged either, so the
		// data loss stays visible in the summary.
		summary.WriteFailures++
	case OutcomeMissing, OutcomeInvalidJSON, OutcomeBadPattern:
		summary.Errors++
	}

	if b.reporter != nil {
		b.reporter.FileProcessed(ctx, result)
	}
}
