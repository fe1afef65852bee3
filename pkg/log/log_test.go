package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/swaprc/pkg/swap"
)

func TestLogger_FileProcessed(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name   string
		result swap.FileResult
		want   string
	}{
		{
			name:   "modified_file",
			result: swap.FileResult{Path: "config.json", Outcome: swap.OutcomeModified, Replacements: 1},
			want:   "Modified: config.json\n",
		},
		{
			name:   "would_modify_file",
			result: swap.FileResult{Path: "config.json", Outcome: swap.OutcomeWouldModify, Replacements: 1},
			want:   "Would modify: config.json\n",
		},
		{
			name:   "missing_file",
			result: swap.FileResult{Path: "gone.json", Outcome: swap.OutcomeMissing},
			want:   "Error: gone.json not found\n",
		},
		{
			name:   "invalid_json",
			result: swap.FileResult{Path: "broken.json", Outcome: swap.OutcomeInvalidJSON},
			want:   "Error: broken.json is not a valid JSON file\n",
		},
		{
			name:   "write_failure",
			result: swap.FileResult{Path: "ro.json", Outcome: swap.OutcomeWriteFailed, Err: errors.New("permission denied")},
			want:   "Error: ro.json could not be written: permission denied\n",
		},
		{
			name:   "bad_pattern",
			result: swap.FileResult{Path: "[oops", Outcome: swap.OutcomeBadPattern, Err: errors.New("syntax error in pattern")},
			want:   "Error: pattern \"[oops\" is invalid: syntax error in pattern\n",
		},
		{
			name:   "unchanged_file_prints_nothing",
			result: swap.FileResult{Path: "config.json", Outcome: swap.OutcomeUnchanged},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(&buf, zerolog.Disabled)

			logger.FileProcessed(context.Background(), tt.result)

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLogger_Summarize(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name    string
		summary swap.Summary
		want    string
	}{
		{
			name:    "modified_count_only",
			summary: swap.Summary{Modified: 3},
			want:    "Modified 3 files\n",
		},
		{
			name:    "zero_modified",
			summary: swap.Summary{},
			want:    "Modified 0 files\n",
		},
		{
			name:    "dry_run_counts",
			summary: swap.Summary{WouldModify: 2},
			want:    "Modified 0 files\nWould modify 2 files\n",
		},
		{
			name:    "write_failures_are_surfaced",
			summary: swap.Summary{Modified: 1, WriteFailures: 1},
			want:    "Modified 1 files\nFailed to write 1 files\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(&buf, zerolog.Disabled)

			logger.Summarize(context.Background(), &tt.summary)

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLogger_Results(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.Disabled)

	logger.FileProcessed(context.Background(), swap.FileResult{Path: "a.json", Outcome: swap.OutcomeModified})
	logger.FileProcessed(context.Background(), swap.FileResult{Path: "b.json", Outcome: swap.OutcomeUnchanged})

	results := logger.Results()
	assert.Len(t, results, 2)
	assert.Equal(t, "a.json", results[0].Path)
	assert.Equal(t, "b.json", results[1].Path)
}
