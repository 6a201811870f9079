package ingest

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/raglens/internal/apperr"
	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/tidwall/gjson"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParsePoints converts a JSON array of run rows into metric points.
// Rows that are not JSON objects are skipped; absent fields are coerced to zero values.
func ParsePoints(data []byte) ([]domain.MetricPoint, error) {
	if !gjson.ValidBytes(data) {
		return nil, apperr.NewValidation("points payload is not valid JSON")
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, apperr.NewValidation(fmt.Sprintf("points payload must be a JSON array, got %s", root.Type))
	}

	rows := root.Array()
	points := make([]domain.MetricPoint, 0, len(rows))
	skipped := 0
	for i, row := range rows {
		p, ok := pointFromResult(row, i)
		if !ok {
			skipped++
			continue
		}
		points = append(points, p)
	}

	if skipped > 0 {
		slog.Warn("Skipped malformed point rows", "skipped", skipped, "total", len(rows))
	}

	return points, nil
}

// ParsePoint coerces a single raw JSON object into a metric point.
func ParsePoint(raw []byte) (domain.MetricPoint, bool) {
	if !gjson.ValidBytes(raw) {
		return domain.MetricPoint{}, false
	}
	return pointFromResult(gjson.ParseBytes(raw), 0)
}

func pointFromResult(row gjson.Result, position int) (domain.MetricPoint, bool) {
	if !row.IsObject() {
		return domain.MetricPoint{}, false
	}

	p := domain.MetricPoint{
		RunID:         stringField(row.Get("runId")),
		QuestionID:    stringField(row.Get("questionId")),
		QuestionText:  stringField(row.Get("questionText")),
		Timestamp:     timeField(row.Get("timestamp")),
		LLMScore:      floatField(row.Get("llmScore")),
		AvgSimilarity: floatField(row.Get("avgSimilarity")),
		HumanFlags:    nonNegativeInt(row.Get("humanFlags")),
		ConfigModel:   stringField(row.Get("configModel")),
		ConfigTopK:    nonNegativeInt(row.Get("configTopK")),
		RetrievedDocs: docsField(row.Get("retrievedDocs")),
	}

	if p.RunID == "" {
		p.RunID = "row-" + strconv.Itoa(position)
	}

	return p, true
}

func docsField(v gjson.Result) []domain.RetrievedDoc {
	if !v.IsArray() {
		return []domain.RetrievedDoc{}
	}

	items := v.Array()
	docs := make([]domain.RetrievedDoc, 0, len(items))
	for _, item := range items {
		if !item.IsObject() {
			continue
		}

		doc := domain.RetrievedDoc{
			Title: strings.TrimSpace(stringField(item.Get("title"))),
			Score: floatField(item.Get("score")),
		}

		if idx := item.Get("index"); present(idx) {
			n := boundedInt(floatField(idx), domain.MaxChunkIndex)
			doc.Index = &n
		}
		if text := item.Get("text"); present(text) {
			s := text.String()
			doc.Text = &s
		}
		if id := item.Get("chunkId"); present(id) {
			s := id.String()
			doc.ChunkID = &s
		}

		docs = append(docs, doc)
	}

	return docs
}

func present(v gjson.Result) bool {
	return v.Exists() && v.Type != gjson.Null
}

func stringField(v gjson.Result) string {
	switch v.Type {
	case gjson.String, gjson.Number:
		return v.String()
	default:
		return ""
	}
}

func floatField(v gjson.Result) float64 {
	var f float64
	switch v.Type {
	case gjson.Number, gjson.String:
		f = v.Float()
	case gjson.True:
		f = 1
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func nonNegativeInt(v gjson.Result) int {
	return max(boundedInt(floatField(v), maxCount), 0)
}

// maxCount caps counters such as humanFlags before they are converted to int.
const maxCount = math.MaxInt32

// boundedInt floors f and saturates it to [-limit, limit]; NaN becomes 0.
func boundedInt(f float64, limit int) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= float64(limit):
		return limit
	case f <= -float64(limit):
		return -limit
	}
	return int(math.Floor(f))
}

func timeField(v gjson.Result) time.Time {
	if v.Type == gjson.Number {
		return time.UnixMilli(v.Int()).UTC()
	}
	s := strings.TrimSpace(stringField(v))
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// ParseDocs coerces a JSON array of retrieved chunks, as stored alongside a run.
func ParseDocs(raw []byte) []domain.RetrievedDoc {
	return docsField(gjson.ParseBytes(raw))
}
