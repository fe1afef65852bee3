package swap

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/swaprc/pkg/config"
)

func TestFileSwapper_SwapFile(t *testing.T) {
	rules := []config.KeyRule{
		{Key: "api.debug", Working: true, Committed: false},
	}

	tests := []struct {
		name        string
		content     *string // nil means the file does not exist
		direction   Direction
		dryRun      bool
		wantOutcome Outcome
		wantContent string // expected file content after the call
	}{
		{
			name:        "rewrites_modified_file",
			content:     strPtr(`{"api": {"debug": true}}`),
			direction:   DirectionToCommitted,
			wantOutcome: OutcomeModified,
			wantContent: "{\n  \"api\": {\n    \"debug\": false\n  }\n}",
		},
		{
			name:        "leaves_unchanged_file_untouched",
			content:     strPtr(`{"api":{"debug":false}}`),
			direction:   DirectionToCommitted,
			wantOutcome: OutcomeUnchanged,
			wantContent: `{"api":{"debug":false}}`,
		},
		{
			name:        "missing_file_is_reported",
			content:     nil,
			direction:   DirectionToCommitted,
			wantOutcome: OutcomeMissing,
		},
		{
			name:        "invalid_json_is_reported",
			content:     strPtr(`{"api": {`),
			direction:   DirectionToCommitted,
			wantOutcome: OutcomeInvalidJSON,
			wantContent: `{"api": {`,
		},
		{
			name:        "non_object_root_is_unchanged",
			content:     strPtr(`[{"api": {"debug": true}}]`),
			direction:   DirectionToCommitted,
			wantOutcome: OutcomeUnchanged,
			wantContent: `[{"api": {"debug": true}}]`,
		},
		{
			name:        "dry_run_reports_without_writing",
			content:     strPtr(`{"api": {"debug": true}}`),
			direction:   DirectionToCommitted,
			dryRun:      true,
			wantOutcome: OutcomeWouldModify,
			wantContent: `{"api": {"debug": true}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			if tt.content != nil {
				require.NoError(t, afero.WriteFile(fsys, "config.json", []byte(*tt.content), 0644))
			}

			swapper := NewFileSwapper(fsys, tt.dryRun)
			result := swapper.SwapFile(context.Background(), "config.json", rules, tt.direction, config.DefaultIndent)

			assert.Equal(t, tt.wantOutcome, result.Outcome)
			assert.Equal(t, "config.json", result.Path)

			if tt.content != nil {
				data, err := afero.ReadFile(fsys, "config.json")
				require.NoError(t, err)
				assert.Equal(t, tt.wantContent, string(data))
			}
		})
	}
}

func TestFileSwapper_SwapFile_WriteFailure(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "config.json", []byte(`{"api": {"debug": true}}`), 0644))

	swapper := NewFileSwapper(afero.NewReadOnlyFs(base), false)
	result := swapper.SwapFile(context.Background(), "config.json", []config.KeyRule{
		{Key: "api.debug", Working: true, Committed: false},
	}, DirectionToCommitted, config.DefaultIndent)

	assert.Equal(t, OutcomeWriteFailed, result.Outcome)
	assert.Error(t, result.Err)
	assert.Equal(t, 1, result.Replacements)

	// File on disk keeps its old content
	data, err := afero.ReadFile(base, "config.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"api": {"debug": true}}`, string(data))
}

func TestFileSwapper_SwapFile_CustomIndent(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "config.json", []byte(`{"debug": true}`), 0644))

	swapper := NewFileSwapper(fsys, false)
	result := swapper.SwapFile(context.Background(), "config.json", []config.KeyRule{
		{Key: "debug", Working: true, Committed: false},
	}, DirectionToCommitted, 4)

	require.Equal(t, OutcomeModified, result.Outcome)

	data, err := afero.ReadFile(fsys, "config.json")
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"debug\": false\n}", string(data))
}

func strPtr(s string) *string {
	return &s
}
