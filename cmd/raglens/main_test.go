package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pointsJSON = `[
  {"runId": "r1", "questionId": "q1", "llmScore": 0.72, "avgSimilarity": 0.2, "humanFlags": 1,
   "retrievedDocs": [{"title": "Lab3", "score": 0.7, "index": 2}]},
  {"runId": "r2", "questionId": "q2", "llmScore": 0.1, "avgSimilarity": 0.8,
   "retrievedDocs": [{"title": "Lab3", "score": 0.7, "index": 2}, {"title": "Lab3", "score": 0.6, "index": 0}]},
  {"runId": "r3", "questionId": "q3", "llmScore": 0.9, "avgSimilarity": 0.9,
   "retrievedDocs": [{"title": "Syllabus", "score": 0.9, "index": 0}]}
]`

func writePoints(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "points.json")
	require.NoError(t, os.WriteFile(path, []byte(pointsJSON), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--no-color"))
	err := cmd.Execute()
	return out.String(), err
}

func TestFingerprintsCmd(t *testing.T) {
	file := writePoints(t)

	out, err := run(t, "fingerprints", "-f", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Document fingerprints (sort: severity, weight: 10)")
	assert.Less(t, strings.Index(out, "Lab3"), strings.Index(out, "Syllabus"))
}

func TestFingerprintsCmd_JSON(t *testing.T) {
	file := writePoints(t)

	out, err := run(t, "fp", "-f", file, "-o", "json", "--weight", "2", "--sort", "retrieved")
	require.NoError(t, err)

	var result struct {
		SeverityWeight float64 `json:"severityWeight"`
		SortBy         string  `json:"sortBy"`
		Documents      []struct {
			Title string `json:"title"`
		} `json:"documents"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2.0, result.SeverityWeight)
	assert.Equal(t, "retrieved", result.SortBy)
	require.Len(t, result.Documents, 2)
	assert.Equal(t, "Lab3", result.Documents[0].Title)
}

func TestHistogramCmd(t *testing.T) {
	file := writePoints(t)

	tests := []struct {
		name     string
		args     []string
		contains []string
		missing  []string
		wantErr  bool
	}{
		{
			name:     "both metrics",
			args:     []string{"histogram", "-f", file},
			contains: []string{"LLM score (n=3", "Avg. retrieval similarity (n=3"},
		},
		{
			name:     "single metric",
			args:     []string{"histogram", "similarity", "-f", file},
			contains: []string{"Avg. retrieval similarity"},
			missing:  []string{"LLM score"},
		},
		{
			name:    "unknown metric",
			args:    []string{"histogram", "latency", "-f", file},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.missing {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestExportCmd(t *testing.T) {
	file := writePoints(t)
	dir := filepath.Join(t.TempDir(), "out")

	out, err := run(t, "export", "-f", file, "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 5 files")

	for _, name := range []string{"correlation.svg", "distribution-llm.svg", "distribution-similarity.svg", "fingerprints.json", "scene.json"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestExportCmd_EmptyPointsSkipsCharts(t *testing.T) {
	file := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(file, []byte("[]"), 0o600))
	dir := filepath.Join(t.TempDir(), "out")

	out, err := run(t, "export", "-f", file, "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 2 files")
	assert.NoFileExists(t, filepath.Join(dir, "correlation.svg"))
}

func TestRootCmd_InvalidFormat(t *testing.T) {
	_, err := run(t, "fingerprints", "-f", writePoints(t), "-o", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "raglens dev\n", out)
}
