package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFileReader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "points.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"runId": "r1", "llmScore": 0.9, "retrievedDocs": [{"title": "Syllabus", "index": 0}]},
		"garbage",
		{"runId": "r2", "humanFlags": 2}
	]`), 0o644))

	points, err := NewJSONFileReader(path).LoadPoints(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "r1", points[0].RunID)
	assert.Equal(t, 2, points[1].HumanFlags)
	assert.Empty(t, points[1].RetrievedDocs)

	_, err = NewJSONFileReader(filepath.Join(dir, "missing.json")).LoadPoints(context.Background())
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"runId": "r1"}`), 0o644))
	_, err = NewJSONFileReader(bad).LoadPoints(context.Background())
	assert.Error(t, err)
}

func TestType_Valid(t *testing.T) {
	for _, typ := range Types {
		assert.True(t, typ.Valid())
	}
	assert.False(t, Type("sqlite").Valid())
}
