package generation

import (
	"time"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/google/uuid"
)

// ToPoint normalises a live answer into a metric point. Similarity is the mean
// source score; without a judge score the LLM score is 0 until someone rates it.
func ToPoint(req Request, resp *Response, now time.Time) domain.MetricPoint {
	p := domain.MetricPoint{
		RunID:         resp.RunID,
		QuestionID:    resp.QuestionID,
		QuestionText:  req.Question,
		Timestamp:     now.UTC(),
		ConfigModel:   req.Model,
		ConfigTopK:    req.TopK,
		RetrievedDocs: make([]domain.RetrievedDoc, 0, len(resp.Sources)),
	}
	if p.RunID == "" {
		p.RunID = uuid.NewString()
	}
	if p.QuestionID == "" {
		p.QuestionID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(req.Question)).String()
	}
	if resp.Model != "" {
		p.ConfigModel = resp.Model
	}
	if p.ConfigTopK == 0 {
		p.ConfigTopK = len(resp.Sources)
	}
	if resp.JudgeScore != nil {
		p.LLMScore = domain.ClampUnit(*resp.JudgeScore)
	}

	sum := 0.0
	for _, s := range resp.Sources {
		sum += s.Score
		p.RetrievedDocs = append(p.RetrievedDocs, domain.RetrievedDoc{
			Title:   s.Title,
			Score:   s.Score,
			Index:   s.Index,
			Text:    s.Text,
			ChunkID: s.ChunkID,
		})
	}
	if len(resp.Sources) > 0 {
		p.AvgSimilarity = sum / float64(len(resp.Sources))
	}

	return p
}
