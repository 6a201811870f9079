package pg

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
	pkgtesting "github.com/DjordjeVuckovic/raglens/pkg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

var (
	testCtx    context.Context
	testPool   *ConnectionPool
	testReader *Reader
)

func TestMain(m *testing.M) {
	testCtx = context.Background()

	pg, err := pkgtesting.NewPGContainer(testCtx, pkgtesting.PGConfig{
		Database: "raglens_test_db",
		Username: "test",
		Password: "test",
	})
	if err != nil {
		panic(err)
	}

	testPool, err = NewConnectionPool(testCtx, PoolConfig{ConnStr: pg.ConnString})
	if err != nil {
		panic(err)
	}

	testReader, err = NewReader(testPool)
	if err != nil {
		panic(err)
	}

	code := m.Run()

	testPool.Close()
	_ = testcontainers.TerminateContainer(pg.Container)
	os.Exit(code)
}

func truncateTables(t *testing.T) {
	t.Helper()
	_, err := testPool.GetConn().Exec(testCtx, "TRUNCATE TABLE feedback, retrievals, runs, questions CASCADE")
	require.NoError(t, err)
}

func exec(t *testing.T, sql string, args ...any) {
	t.Helper()
	_, err := testPool.GetConn().Exec(testCtx, sql, args...)
	require.NoError(t, err)
}

func TestReader_LoadPoints(t *testing.T) {
	truncateTables(t)
	defer truncateTables(t)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	exec(t, `INSERT INTO questions (id, text) VALUES ('q1', 'When is lab 3 due?')`)
	exec(t, `INSERT INTO runs (id, question_id, created_at, llm_score, model, top_k) VALUES ('r1', 'q1', $1, 0.8, 'gpt-4o', 3)`, base)
	exec(t, `INSERT INTO runs (id, question_id, created_at, llm_score, model, top_k) VALUES ('r2', 'q1', $1, NULL, 'llama3', 5)`, base.Add(time.Minute))
	exec(t, `INSERT INTO runs (id, question_id, created_at) VALUES ('r3', 'q1', $1)`, base.Add(2*time.Minute))
	exec(t, `INSERT INTO retrievals (run_id, rank, doc_title, chunk_index, chunk_text, score) VALUES
		('r1', 1, 'Syllabus', 4, 'Office hours', 0.5),
		('r1', 0, 'Lab3', 2, 'Due Friday', 0.9),
		('r2', 0, 'Lab3', NULL, NULL, 0.6)`)
	exec(t, `INSERT INTO feedback (run_id, rating, flagged) VALUES ('r2', 2, true), ('r2', 4, false)`)

	points, err := testReader.LoadPoints(testCtx)
	require.NoError(t, err)
	require.Len(t, points, 3)

	r1 := points[0]
	assert.Equal(t, "r1", r1.RunID)
	assert.Equal(t, "When is lab 3 due?", r1.QuestionText)
	assert.Equal(t, 0.8, r1.LLMScore)
	assert.InDelta(t, 0.7, r1.AvgSimilarity, 1e-9)
	assert.Equal(t, "gpt-4o", r1.ConfigModel)
	assert.Equal(t, 3, r1.ConfigTopK)
	require.Len(t, r1.RetrievedDocs, 2)
	assert.Equal(t, "Lab3", r1.RetrievedDocs[0].Title, "retrievals come back in rank order")
	assert.Equal(t, 2, r1.RetrievedDocs[0].ChunkIndex())
	assert.Equal(t, "Due Friday", r1.RetrievedDocs[0].TextValue())

	r2 := points[1]
	assert.InDelta(t, 0.5, r2.LLMScore, 1e-9, "mean rating 3 rescales to 0.5")
	assert.Equal(t, 1, r2.HumanFlags)
	require.Len(t, r2.RetrievedDocs, 1)
	assert.Nil(t, r2.RetrievedDocs[0].Index)
	assert.Nil(t, r2.RetrievedDocs[0].Text)

	r3 := points[2]
	assert.Zero(t, r3.LLMScore)
	assert.Zero(t, r3.AvgSimilarity)
	assert.Empty(t, r3.RetrievedDocs)
}

func TestReader_AppendPoint(t *testing.T) {
	truncateTables(t)
	defer truncateTables(t)

	idx := 1
	text := "Late policy"
	err := testReader.AppendPoint(testCtx, domain.MetricPoint{
		QuestionText:  "What is the late policy?",
		LLMScore:      0.35,
		ConfigModel:   "llama3",
		ConfigTopK:    2,
		RetrievedDocs: []domain.RetrievedDoc{{Title: "Syllabus", Score: 0.4, Index: &idx, Text: &text}},
	})
	require.NoError(t, err)

	points, err := testReader.LoadPoints(testCtx)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.NotEmpty(t, points[0].RunID)
	assert.Equal(t, 0.35, points[0].LLMScore)
	assert.Equal(t, "What is the late policy?", points[0].QuestionText)
	require.Len(t, points[0].RetrievedDocs, 1)
	assert.Equal(t, 1, points[0].RetrievedDocs[0].ChunkIndex())
}

func TestConnectionPool_Healthy(t *testing.T) {
	assert.True(t, testPool.Healthy(testCtx))

	var nilPool *ConnectionPool
	assert.False(t, nilPool.Healthy(testCtx))
}
