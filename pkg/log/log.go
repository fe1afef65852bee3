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

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/walteh/swaprc/pkg/swap"
)

// 🎯 Logger prints per-file results and the final summary to the console,
// mirroring every event into zerolog for debugging
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	results []swap.FileResult
}

// 🏭 New creates a new logger. The console writer carries the lines users
// read; structured events go to stderr so stdout stays parseable.
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 📝 FileProcessed implements swap.Reporter
func (l *Logger) FileProcessed(ctx context.Context, result swap.FileResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.results = append(l.results, result)

	switch result.Outcome {
	case swap.OutcomeModified:
		fmt.Fprintf(l.console, "%s %s\n", color.GreenString("Modified:"), result.Path)
	case swap.OutcomeWouldModify:
		fmt.Fprintf(l.console, "%s %s\n", color.CyanString("Would modify:"), result.Path)
	case swap.OutcomeMissing:
		fmt.Fprintf(l.console, "%s %s not found\n", color.RedString("Error:"), result.Path)
	case swap.OutcomeInvalidJSON:
		fmt.Fprintf(l.console, "%s %s is not a valid JSON file\n", color.RedString("Error:"), result.Path)
	case swap.OutcomeWriteFailed:
		fmt.Fprintf(l.console, "%s %s could not be written: %v\n", color.RedString("Error:"), result.Path, result.Err)
	case swap.OutcomeBadPattern:
		fmt.Fprintf(l.console, "%s pattern %q is invalid: %v\n", color.RedString("Error:"), result.Path, result.Err)
	}

	l.zlog.Debug().
		Str("file", result.Path).
		Str("outcome", result.Outcome.String()).
		Int("replacements", result.Replacements).
		Err(result.Err).
		Msg("file processed")
}

// 📊 Summarize prints the closing summary lines for a batch run
func (l *Logger) Summarize(ctx context.Context, summary *swap.Summary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "Modified %d files\n", summary.Modified)
	if summary.WouldModify > 0 {
		fmt.Fprintf(l.console, "Would modify %d files\n", summary.WouldModify)
	}
	if summary.WriteFailures > 0 {
		fmt.Fprintf(l.console, "Failed to write %d files\n", summary.WriteFailures)
	}

	l.zlog.Debug().
		Int("modified", summary.Modified).
		Int("would_modify", summary.WouldModify).
		Int("write_failures", summary.WriteFailures).
		Int("errors", summary.Errors).
		Msg("batch complete")
}

// 📄 Results returns a copy of every result seen so far
func (l *Logger) Results() []swap.FileResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]swap.FileResult, len(l.results))
	copy(out, l.results)
	return out
}
