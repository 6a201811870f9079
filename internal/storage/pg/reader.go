package pg

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/DjordjeVuckovic/raglens/internal/ingest"
	"github.com/DjordjeVuckovic/raglens/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// loadPointsSQL joins every run with its question, its retrievals in rank
// order and its feedback. Runs without an automated judge score fall back to
// the mean human rating rescaled from 1..5 onto 0..1.
const loadPointsSQL = `
	SELECT
		r.id,
		r.question_id,
		COALESCE(q.text, ''),
		r.created_at,
		COALESCE(r.llm_score, (fb.avg_rating - 1) / 4, 0),
		COALESCE(rt.avg_score, 0),
		COALESCE(fb.flags, 0),
		COALESCE(r.model, ''),
		COALESCE(r.top_k, 0),
		COALESCE(rt.docs, '[]'::json)
	FROM runs r
	LEFT JOIN questions q ON q.id = r.question_id
	LEFT JOIN LATERAL (
		SELECT
			AVG(score)::float8 AS avg_score,
			json_agg(json_build_object(
				'title', doc_title,
				'score', score,
				'index', chunk_index,
				'chunkId', chunk_id,
				'text', chunk_text
			) ORDER BY rank) AS docs
		FROM retrievals
		WHERE run_id = r.id
	) rt ON true
	LEFT JOIN LATERAL (
		SELECT
			AVG(rating)::float8 AS avg_rating,
			COUNT(*) FILTER (WHERE flagged) AS flags
		FROM feedback
		WHERE run_id = r.id
	) fb ON true
	ORDER BY r.created_at, r.id
`

type Reader struct {
	db *pgxpool.Pool
}

func NewReader(pool *ConnectionPool) (*Reader, error) {
	return &Reader{db: pool.conn}, nil
}

func (r *Reader) LoadPoints(ctx context.Context) ([]domain.MetricPoint, error) {
	start := time.Now()

	rows, err := r.db.Query(ctx, loadPointsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to execute points query: %w", err)
	}
	defer rows.Close()

	points := make([]domain.MetricPoint, 0)
	for rows.Next() {
		var (
			p       domain.MetricPoint
			flags   int64
			docsRaw []byte
		)
		if err := rows.Scan(
			&p.RunID,
			&p.QuestionID,
			&p.QuestionText,
			&p.Timestamp,
			&p.LLMScore,
			&p.AvgSimilarity,
			&flags,
			&p.ConfigModel,
			&p.ConfigTopK,
			&docsRaw,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		p.HumanFlags = int(flags)
		p.RetrievedDocs = ingest.ParseDocs(docsRaw)
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	slog.Info("Loaded points from postgres", "count", len(points), "took", time.Since(start))
	return points, nil
}

// AppendPoint stores a run, its question and its retrievals in one transaction.
func (r *Reader) AppendPoint(ctx context.Context, p domain.MetricPoint) error {
	if p.RunID == "" {
		p.RunID = uuid.NewString()
	}
	if p.QuestionID == "" {
		p.QuestionID = uuid.NewString()
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now().UTC()
	}

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		batch.Queue(`
			INSERT INTO questions (id, text) VALUES ($1, $2)
			ON CONFLICT (id) DO NOTHING`,
			p.QuestionID, p.QuestionText)
		batch.Queue(`
			INSERT INTO runs (id, question_id, created_at, llm_score, model, top_k)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			p.RunID, p.QuestionID, p.Timestamp, p.LLMScore, p.ConfigModel, p.ConfigTopK)
		for rank, d := range p.RetrievedDocs {
			batch.Queue(`
				INSERT INTO retrievals (run_id, rank, doc_title, chunk_index, chunk_id, chunk_text, score)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				p.RunID, rank, d.Title, d.Index, d.ChunkID, d.Text, d.Score)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert run %s: %w", p.RunID, err)
		}
		return nil
	})
}

var (
	_ storage.PointReader   = (*Reader)(nil)
	_ storage.PointAppender = (*Reader)(nil)
)
