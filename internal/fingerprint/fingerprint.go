package fingerprint

import "github.com/DjordjeVuckovic/raglens/internal/domain"

const (
	// PoorScoreThreshold marks a run as poor when its LLM score falls below it.
	PoorScoreThreshold = 0.4
	// DefaultSeverityWeight makes one human flag worth ten automated poor signals.
	DefaultSeverityWeight = 10.0
)

// ChunkAggregate summarises every retrieval of one chunk across all runs.
type ChunkAggregate struct {
	Key         string   `json:"key"`
	DocTitle    string   `json:"docTitle"`
	Index       int      `json:"index"`
	ChunkID     string   `json:"chunkId,omitempty"`
	Text        string   `json:"text,omitempty"`
	Occurrences int      `json:"occurrences"`
	Flags       int      `json:"flags"`
	Poor        int      `json:"poor"`
	Questions   int      `json:"questions"`
	Runs        int      `json:"runs"`
	RunIDs      []string `json:"runIds"`
	QuestionIDs []string `json:"questionIds"`
	Severity    float64  `json:"severity"`
}

// DocumentFingerprint is the per-document row of the fingerprint view.
type DocumentFingerprint struct {
	Title           string           `json:"title"`
	ChunkCount      int              `json:"chunkCount"`
	HumanFlags      int              `json:"humanFlags"`
	PoorLLM         int              `json:"poorLLM"`
	TotalRetrievals int              `json:"totalRetrievals"`
	Questions       int              `json:"questions"`
	Severity        float64          `json:"severity"`
	RunIDs          []string         `json:"runIds"`
	Chunks          []ChunkAggregate `json:"chunks"`
}

// Result is an immutable snapshot of the aggregation for one input.
type Result struct {
	Documents        []DocumentFingerprint `json:"documents"`
	MaxChunkSeverity float64               `json:"maxChunkSeverity"`
	SeverityWeight   float64               `json:"severityWeight"`
	SortBy           domain.SortKey        `json:"sortBy"`
}

// Document looks up a fingerprint by title.
func (r Result) Document(title string) (DocumentFingerprint, bool) {
	for _, d := range r.Documents {
		if d.Title == title {
			return d, true
		}
	}
	return DocumentFingerprint{}, false
}

// Chunk resolves a chunk key. A key that no longer exists after a data refresh
// simply resolves to nothing.
func (r Result) Chunk(key string) (ChunkAggregate, bool) {
	for _, d := range r.Documents {
		for _, c := range d.Chunks {
			if c.Key == key {
				return c, true
			}
		}
	}
	return ChunkAggregate{}, false
}

// Color returns the continuous heat colour for a chunk severity in this snapshot.
func (r Result) Color(severity float64) string {
	return NewColorScale(r.MaxChunkSeverity).Color(severity)
}
