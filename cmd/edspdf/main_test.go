package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acalliger/edspdf/format"
	"github.com/acalliger/edspdf/model"
	"github.com/acalliger/edspdf/recordio"
)

const testConfig = `
[aggregator]
nl_threshold = 0.05
np_threshold = 0.1
`

// setupFiles writes a configuration and a records file into a temp dir
func setupFiles(t *testing.T) (cfgPath, recordsPath string) {
	t.Helper()
	dir := t.TempDir()

	cfgPath = filepath.Join(dir, "edspdf.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfig), 0o600))

	lines := []model.LineRecord{
		{Text: "Paris, le 02/06/2021", BBox: model.NewBBox(0.1, 0.02, 0.9, 0.04), Label: "header"},
		{
			Text:   "Hello",
			BBox:   model.NewBBox(0.1, 0.10, 0.9, 0.12),
			Label:  "body",
			Styles: []model.StyleSpan{{Start: 0, End: 5, Attributes: model.Attributes{"bold": model.BoolValue(true)}}},
		},
		{Text: "world", BBox: model.NewBBox(0.1, 0.121, 0.9, 0.141), Label: "body"},
	}
	recordsPath = filepath.Join(dir, "lines.jsonl")
	var buf bytes.Buffer
	require.NoError(t, recordio.WriteLines(&buf, format.JSONLines, lines))
	require.NoError(t, os.WriteFile(recordsPath, buf.Bytes(), 0o600))
	return cfgPath, recordsPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--color", "off"))
	err := cmd.Execute()
	return out.String(), err
}

func TestAggregateCommand_JSON(t *testing.T) {
	cfgPath, records := setupFiles(t)

	out, err := execute(t, "aggregate", "--config", cfgPath, records)
	require.NoError(t, err)

	var doc struct {
		Text map[string]string `json:"text"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Hello world", doc.Text["body"])
	assert.Equal(t, "Paris, le 02/06/2021", doc.Text["header"])
}

func TestAggregateCommand_LabelAndTable(t *testing.T) {
	cfgPath, records := setupFiles(t)

	out, err := execute(t, "aggregate", "--config", cfgPath, "--format", "table", "--label", "body", records)
	require.NoError(t, err)
	assert.Contains(t, out, "[body]\nHello world\n")
	assert.Contains(t, out, "start  end  bold")
	assert.NotContains(t, out, "[header]")
}

func TestAggregateCommand_Markdown(t *testing.T) {
	cfgPath, records := setupFiles(t)

	out, err := execute(t, "aggregate", "--config", cfgPath, "--format", "md", records)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "## body\n\nHello world\n\n| start | end | bold |"))
}

func TestAggregateCommand_OutDir(t *testing.T) {
	cfgPath, records := setupFiles(t)
	outDir := t.TempDir()

	_, err := execute(t, "aggregate", "--config", cfgPath, "--format", "csv", "--out-dir", outDir, "--jobs", "2", records)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "lines.csv"))
	require.NoError(t, err)
	assert.Equal(t, "label,start,end,bold\nbody,0,5,true\n", string(data))
}

func TestAggregateCommand_RefusesToOverwriteInputs(t *testing.T) {
	cfgPath, records := setupFiles(t)
	dir := filepath.Dir(records)
	other := filepath.Join(dir, "other.jsonl")
	original, err := os.ReadFile(records)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(other, original, 0o600))

	// Outputs default to the working directory, where the inputs live
	chdir(t, dir)
	_, err = execute(t, "aggregate", "--config", cfgPath, "--format", "jsonl", "lines.jsonl", "other.jsonl")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errOutputClash))

	after, err := os.ReadFile(records)
	require.NoError(t, err)
	assert.Equal(t, original, after)

	// Same files, spelled as absolute output directory and relative inputs
	_, err = execute(t, "aggregate", "--config", cfgPath, "--format", "jsonl", "--out-dir", dir, "lines.jsonl", "other.jsonl")
	assert.True(t, errors.Is(err, errOutputClash))
}

func TestAggregateCommand_RefusesDuplicateTargets(t *testing.T) {
	cfgPath, records := setupFiles(t)
	data, err := os.ReadFile(records)
	require.NoError(t, err)
	twin := filepath.Join(t.TempDir(), "lines.jsonl")
	require.NoError(t, os.WriteFile(twin, data, 0o600))
	outDir := t.TempDir()

	_, err = execute(t, "aggregate", "--config", cfgPath, "--format", "csv", "--out-dir", outDir, records, twin)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errOutputClash))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAggregateCommand_SeveralFiles(t *testing.T) {
	cfgPath, records := setupFiles(t)
	dir := filepath.Dir(records)
	other := filepath.Join(dir, "other.jsonl")
	data, err := os.ReadFile(records)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(other, data, 0o600))

	chdir(t, dir)
	_, err = execute(t, "aggregate", "--config", cfgPath, "--format", "csv", "lines.jsonl", "other.jsonl")
	require.NoError(t, err)

	for _, name := range []string{"lines.csv", "other.csv"} {
		out, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, "label,start,end,bold\nbody,0,5,true\n", string(out))
	}
}

func TestAggregateCommand_Errors(t *testing.T) {
	cfgPath, records := setupFiles(t)

	_, err := execute(t, "aggregate", "--config", cfgPath, "--format", "pdf", records)
	assert.Error(t, err)

	_, err = execute(t, "aggregate", "--config", filepath.Join(t.TempDir(), "missing.toml"), records)
	assert.Error(t, err)

	_, err = execute(t, "aggregate", "--config", cfgPath)
	assert.Error(t, err)
}

func TestDatesCommand(t *testing.T) {
	cfgPath, records := setupFiles(t)

	out, err := execute(t, "dates", "--config", cfgPath, records)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "zone"))
	assert.Contains(t, lines[1], "2021-06-02")
	assert.Contains(t, lines[1], "Paris, le")

	out, err = execute(t, "dates", "--config", cfgPath, "--format", "json", records)
	require.NoError(t, err)
	assert.Contains(t, out, `"context": "Paris, le"`)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "edspdf "+Version+"\n", out)
}

func TestColorFlag(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"version", "--color", "sometimes"})
	cmd.SetOut(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
