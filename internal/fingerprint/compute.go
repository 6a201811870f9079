package fingerprint

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
)

type chunkAcc struct {
	key         string
	docTitle    string
	index       int
	chunkID     string
	text        string
	occurrences int
	runs        map[string]struct{}
	questions   map[string]struct{}
	flaggedRuns map[string]struct{}
	poorRuns    map[string]struct{}
}

type docAcc struct {
	title            string
	maxIndex         int
	retrievals       int
	chunks           map[string]*chunkAcc
	chunkOrder       []string
	questions        map[string]struct{}
	flaggedQuestions map[string]struct{}
	poorQuestions    map[string]struct{}
}

// ChunkKey builds the bucket key of a chunk within its document.
func ChunkKey(title string, index int, chunkID string) string {
	return title + "#" + strconv.Itoa(index) + "#" + chunkID
}

// Classify derives the two per-run signals. A flagged run is never also counted
// as poor so severity does not double-penalise the same incident.
func Classify(p domain.MetricPoint) (flagged, poor bool) {
	flagged = p.HumanFlags > 0
	poor = p.LLMScore < PoorScoreThreshold && !flagged
	return flagged, poor
}

// Compute folds the points into per-document chunk fingerprints.
// It is a pure function of its inputs; repeated calls yield identical results.
func Compute(points []domain.MetricPoint, severityWeight float64, sortBy domain.SortKey) Result {
	docs := make(map[string]*docAcc)
	var docOrder []string

	for _, p := range points {
		flagged, poor := Classify(p)

		for _, rd := range p.RetrievedDocs {
			title := rd.DocTitle()
			d, ok := docs[title]
			if !ok {
				d = &docAcc{
					title:            title,
					chunks:           make(map[string]*chunkAcc),
					questions:        make(map[string]struct{}),
					flaggedQuestions: make(map[string]struct{}),
					poorQuestions:    make(map[string]struct{}),
				}
				docs[title] = d
				docOrder = append(docOrder, title)
			}

			idx := rd.ChunkIndex()
			chunkID := rd.ChunkIDValue()
			key := ChunkKey(title, idx, chunkID)

			c, ok := d.chunks[key]
			if !ok {
				c = &chunkAcc{
					key:         key,
					docTitle:    title,
					index:       idx,
					chunkID:     chunkID,
					runs:        make(map[string]struct{}),
					questions:   make(map[string]struct{}),
					flaggedRuns: make(map[string]struct{}),
					poorRuns:    make(map[string]struct{}),
				}
				d.chunks[key] = c
				d.chunkOrder = append(d.chunkOrder, key)
			}

			c.occurrences++
			c.runs[p.RunID] = struct{}{}
			c.questions[p.QuestionID] = struct{}{}
			if c.text == "" {
				c.text = rd.TextValue()
			}
			if flagged {
				c.flaggedRuns[p.RunID] = struct{}{}
				d.flaggedQuestions[p.QuestionID] = struct{}{}
			}
			if poor {
				c.poorRuns[p.RunID] = struct{}{}
				d.poorQuestions[p.QuestionID] = struct{}{}
			}

			d.retrievals++
			d.questions[p.QuestionID] = struct{}{}
			if idx > d.maxIndex {
				d.maxIndex = idx
			}
		}
	}

	result := Result{
		Documents:        make([]DocumentFingerprint, 0, len(docOrder)),
		MaxChunkSeverity: 1,
		SeverityWeight:   severityWeight,
		SortBy:           sortBy,
	}

	for _, title := range docOrder {
		d := docs[title]
		fp := DocumentFingerprint{
			Title:           d.title,
			ChunkCount:      max(d.maxIndex+1, 1),
			HumanFlags:      len(d.flaggedQuestions),
			PoorLLM:         len(d.poorQuestions),
			TotalRetrievals: d.retrievals,
			Questions:       len(d.questions),
			Chunks:          make([]ChunkAggregate, 0, len(d.chunkOrder)),
		}
		fp.Severity = Severity(fp.HumanFlags, fp.PoorLLM, severityWeight)

		docRuns := make(map[string]struct{})
		for _, key := range d.chunkOrder {
			c := d.chunks[key]
			agg := ChunkAggregate{
				Key:         c.key,
				DocTitle:    c.docTitle,
				Index:       c.index,
				ChunkID:     c.chunkID,
				Text:        c.text,
				Occurrences: c.occurrences,
				Flags:       len(c.flaggedRuns),
				Poor:        len(c.poorRuns),
				Questions:   len(c.questions),
				Runs:        len(c.runs),
				RunIDs:      sortedKeys(c.runs),
				QuestionIDs: sortedKeys(c.questions),
			}
			agg.Severity = Severity(agg.Flags, agg.Poor, severityWeight)
			if agg.Severity > result.MaxChunkSeverity {
				result.MaxChunkSeverity = agg.Severity
			}
			for id := range c.runs {
				docRuns[id] = struct{}{}
			}
			fp.Chunks = append(fp.Chunks, agg)
		}
		fp.RunIDs = sortedKeys(docRuns)

		slices.SortFunc(fp.Chunks, func(a, b ChunkAggregate) int {
			return cmp.Or(cmp.Compare(a.Index, b.Index), cmp.Compare(a.ChunkID, b.ChunkID))
		})

		result.Documents = append(result.Documents, fp)
	}

	SortDocuments(result.Documents, sortBy)

	return result
}

// Severity weighs human flags against automated poor-score signals.
func Severity(flags, poor int, weight float64) float64 {
	return float64(flags)*weight + float64(poor)
}

// SortDocuments orders rows in place; the title is the final tie-break so the
// order never depends on input iteration.
func SortDocuments(docs []DocumentFingerprint, sortBy domain.SortKey) {
	slices.SortStableFunc(docs, func(a, b DocumentFingerprint) int {
		var c int
		switch sortBy {
		case domain.SortByFlags:
			c = cmp.Or(
				cmp.Compare(b.HumanFlags, a.HumanFlags),
				cmp.Compare(b.TotalRetrievals, a.TotalRetrievals),
			)
		case domain.SortByPoor:
			c = cmp.Or(
				cmp.Compare(b.PoorLLM, a.PoorLLM),
				cmp.Compare(b.TotalRetrievals, a.TotalRetrievals),
			)
		case domain.SortByRetrieved:
			c = cmp.Or(
				cmp.Compare(b.TotalRetrievals, a.TotalRetrievals),
				cmp.Compare(b.Severity, a.Severity),
			)
		default:
			c = cmp.Or(
				cmp.Compare(b.Severity, a.Severity),
				cmp.Compare(b.HumanFlags, a.HumanFlags),
				cmp.Compare(b.TotalRetrievals, a.TotalRetrievals),
			)
		}
		return cmp.Or(c, cmp.Compare(a.Title, b.Title))
	})
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
