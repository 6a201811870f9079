package domain

import "time"

// MetricPoint is one generation run as seen by every dashboard view.
// It is produced once at the ingestion boundary and never re-validated downstream.
type MetricPoint struct {
	RunID         string         `json:"runId"`
	QuestionID    string         `json:"questionId"`
	QuestionText  string         `json:"questionText"`
	Timestamp     time.Time      `json:"timestamp"`
	LLMScore      float64        `json:"llmScore"`
	AvgSimilarity float64        `json:"avgSimilarity"`
	HumanFlags    int            `json:"humanFlags"`
	ConfigModel   string         `json:"configModel"`
	ConfigTopK    int            `json:"configTopK"`
	RetrievedDocs []RetrievedDoc `json:"retrievedDocs"`
}

// RetrievedDoc is a single chunk retrieved for a run.
type RetrievedDoc struct {
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
	Index   *int    `json:"index,omitempty"`
	Text    *string `json:"text,omitempty"`
	ChunkID *string `json:"chunkId,omitempty"`
}

const (
	UntitledDocument = "Untitled"

	// MaxChunkIndex bounds chunk positions; larger indices saturate to it.
	MaxChunkIndex = 1<<20 - 1
)

// DocTitle returns the document bucket title, defaulting to UntitledDocument.
func (d RetrievedDoc) DocTitle() string {
	if d.Title == "" {
		return UntitledDocument
	}
	return d.Title
}

// ChunkIndex returns the position of the chunk within its document. Missing or
// negative indices resolve to 0 and indices past MaxChunkIndex to MaxChunkIndex.
func (d RetrievedDoc) ChunkIndex() int {
	if d.Index == nil || *d.Index < 0 {
		return 0
	}
	return min(*d.Index, MaxChunkIndex)
}

func (d RetrievedDoc) ChunkIDValue() string {
	if d.ChunkID == nil {
		return ""
	}
	return *d.ChunkID
}

func (d RetrievedDoc) TextValue() string {
	if d.Text == nil {
		return ""
	}
	return *d.Text
}

// Metric reads the requested continuous metric from the point.
func (p MetricPoint) Metric(m Metric) float64 {
	switch m {
	case MetricSimilarity:
		return p.AvgSimilarity
	default:
		return p.LLMScore
	}
}

// Flagged reports whether a reviewer raised at least one concern on the run.
func (p MetricPoint) Flagged() bool {
	return p.HumanFlags > 0
}
