package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acalliger/edspdf/format"
	"github.com/acalliger/edspdf/layout"
)

func TestParse_Minimal(t *testing.T) {
	cfg, err := Parse(`
[aggregator]
nl_threshold = 0.005
np_threshold = 0.02
`)
	require.NoError(t, err)

	agg := cfg.AggregationConfig()
	assert.Equal(t, 0.005, agg.Newline.NLThreshold)
	assert.Equal(t, 0.02, agg.Newline.NPThreshold)
	assert.Equal(t, 0.01, agg.Newline.MarginTolerance)
	assert.Nil(t, agg.Newline.LeftMargin)
	assert.False(t, agg.Strict)
	assert.Equal(t, layout.LeftToRight, agg.ReadingOrder.Direction)
	assert.Equal(t, 0.5, agg.ReadingOrder.RowTolerance)
	assert.Equal(t, format.JSON, cfg.OutputFormat(format.JSON))
}

func TestParse_Full(t *testing.T) {
	cfg, err := Parse(`
[aggregator]
nl_threshold = 0.01
np_threshold = 0.03
indent_threshold = 0.02
left_margin = 0.1
margin_tolerance = 0.005
strict = true
sort_reading_order = true

[reading_order]
direction = "rtl"
row_tolerance = 0.25

[output]
format = "markdown"
labels = ["body", "header"]
jobs = 4
`)
	require.NoError(t, err)

	agg := cfg.AggregationConfig()
	assert.Equal(t, 0.02, agg.Newline.IndentThreshold)
	require.NotNil(t, agg.Newline.LeftMargin)
	assert.Equal(t, 0.1, *agg.Newline.LeftMargin)
	assert.Equal(t, 0.005, agg.Newline.MarginTolerance)
	assert.True(t, agg.Strict)
	assert.True(t, agg.SortReadingOrder)
	assert.Equal(t, layout.RightToLeft, agg.ReadingOrder.Direction)
	assert.Equal(t, 0.25, agg.ReadingOrder.RowTolerance)

	assert.Equal(t, format.Markdown, cfg.OutputFormat(format.JSON))
	assert.Equal(t, []string{"body", "header"}, cfg.Output.Labels)
	assert.Equal(t, 4, cfg.Output.Jobs)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"no section", `[output]` + "\n" + `format = "json"`, ErrAggregatorSectionMissing},
		{"no np", "[aggregator]\nnl_threshold = 0.01", ErrThresholdMissing},
		{"no nl", "[aggregator]\nnp_threshold = 0.01", ErrThresholdMissing},
		{"np below nl", "[aggregator]\nnl_threshold = 0.1\nnp_threshold = 0.01", layout.ErrInvalidConfig},
		{"direction", "[aggregator]\nnl_threshold = 0.01\nnp_threshold = 0.02\n[reading_order]\ndirection = \"ttb\"", ErrInvalidValue},
		{"format", "[aggregator]\nnl_threshold = 0.01\nnp_threshold = 0.02\n[output]\nformat = \"pdf\"", ErrInvalidValue},
		{"jobs", "[aggregator]\nnl_threshold = 0.01\nnp_threshold = 0.02\n[output]\njobs = -1", ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParse_Syntax(t *testing.T) {
	_, err := Parse("[aggregator\nnl_threshold = ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edspdf.toml")
	require.NoError(t, os.WriteFile(path, []byte("[aggregator]\nnl_threshold = 0.005\nnp_threshold = 0.02\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.005, cfg.Aggregator.NLThreshold)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[aggregator]\nnl_threshold = 0.1\n"), 0o600))
	_, err = Load(bad)
	assert.True(t, errors.Is(err, ErrThresholdMissing))
	assert.Contains(t, err.Error(), bad)
}
