package fpview

import (
	"math"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/DjordjeVuckovic/raglens/internal/fingerprint"
	"github.com/DjordjeVuckovic/raglens/internal/ingest"
	"github.com/DjordjeVuckovic/raglens/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func retrieved(title string, index int, text string) domain.RetrievedDoc {
	d := domain.RetrievedDoc{Title: title, Score: 0.6, Index: intPtr(index)}
	if text != "" {
		d.Text = strPtr(text)
	}
	return d
}

// fixture: Lab3 chunks 0 and 2 (1 never retrieved), Syllabus chunk 0.
func fixture() fingerprint.Result {
	points := []domain.MetricPoint{
		{RunID: "r1", QuestionID: "q1", LLMScore: 0.9, HumanFlags: 1, RetrievedDocs: []domain.RetrievedDoc{retrieved("Lab3", 2, "late policy"), retrieved("Syllabus", 0, "")}},
		{RunID: "r2", QuestionID: "q2", LLMScore: 0.1, RetrievedDocs: []domain.RetrievedDoc{retrieved("Lab3", 2, ""), retrieved("Lab3", 0, "")}},
		{RunID: "r3", QuestionID: "q3", LLMScore: 0.8, RetrievedDocs: []domain.RetrievedDoc{retrieved("Syllabus", 0, "")}},
	}
	return fingerprint.Compute(points, fingerprint.DefaultSeverityWeight, domain.SortBySeverity)
}

func TestSegments(t *testing.T) {
	tests := []struct {
		name       string
		track      float64
		min        float64
		count      int
		wantLen    int
		wantWidths []float64
	}{
		{name: "even division", track: 100, min: 4, count: 4, wantLen: 4, wantWidths: []float64{25, 25, 25, 25}},
		{name: "single chunk fills track", track: 100, min: 4, count: 1, wantLen: 1, wantWidths: []float64{100}},
		{name: "floored at minimum and clipped", track: 10, min: 4, count: 5, wantLen: 3, wantWidths: []float64{4, 4, 2}},
		{name: "no chunks", track: 100, min: 4, count: 0, wantLen: 0},
		{name: "no track", track: 0, min: 4, count: 3, wantLen: 0},
		{name: "huge chunk count stops at track end", track: 100, min: 4, count: math.MaxInt, wantLen: 25},
		{name: "zero minimum still bounded", track: 100, min: 0, count: 1 << 40, wantLen: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := Segments(tt.track, tt.min, tt.count)
			require.Len(t, segs, tt.wantLen)
			for i, w := range tt.wantWidths {
				assert.InDelta(t, w, segs[i].Width, 1e-9)
			}
			for _, s := range segs {
				assert.LessOrEqual(t, s.X+s.Width, tt.track+1e-9)
			}
		})
	}
}

func TestSegments_WidthMonotonicInChunkCount(t *testing.T) {
	prev := Segments(300, 3, 1)[0].Width
	for n := 2; n <= 200; n++ {
		w := Segments(300, 3, n)[0].Width
		assert.LessOrEqual(t, w, prev, "chunkCount %d", n)
		prev = w
	}
}

func TestBuild_RowsBadgesAndGaps(t *testing.T) {
	r := fixture()
	s := Build(Input{Result: r, Mode: domain.ModeHighlight, Layout: DefaultLayout()})

	assert.Equal(t, SceneName, s.Name)
	assert.Len(t, s.ByRole(scene.RoleRow), 2)
	assert.Len(t, s.ByRole(scene.RoleDocLabel), 2)
	assert.Len(t, s.ByRole(scene.RoleBadge), 6)

	// Lab3 has chunkCount 3 with slot 1 never retrieved.
	assert.Len(t, s.ByRole(scene.RoleSegment), 3)
	gaps := s.ByRole(scene.RoleGap)
	require.Len(t, gaps, 1)
	assert.Equal(t, "Lab3", gaps[0].Target)

	lab3 := r.Documents[0]
	require.Equal(t, "Lab3", lab3.Title)
	seg, ok := s.Find(scene.RoleSegment, fingerprint.ChunkKey("Lab3", 2, ""))
	require.True(t, ok)
	assert.Equal(t, r.Color(11), seg.Fill)
	assert.Equal(t, opacityFull, seg.Opacity)
}

func TestBuild_DocumentWithoutChunks(t *testing.T) {
	r := fingerprint.Result{
		Documents:        []fingerprint.DocumentFingerprint{{Title: "Empty", ChunkCount: 1}},
		MaxChunkSeverity: 1,
	}

	var s *scene.Scene
	require.NotPanics(t, func() { s = Build(Input{Result: r, Layout: DefaultLayout()}) })

	assert.Empty(t, s.ByRole(scene.RoleSegment))
	assert.Empty(t, s.ByRole(scene.RoleGap))
	assert.Len(t, s.ByRole(scene.RoleTrack), 1)
	for _, b := range s.ByRole(scene.RoleBadge) {
		assert.Equal(t, "0", b.Text)
	}
}

func TestBuild_EmptyResult(t *testing.T) {
	s := Build(Input{Layout: DefaultLayout()})

	assert.Empty(t, s.Primitives)
	assert.Positive(t, s.Height)
}

func TestBuild_ChunkSelectionDimsEverySegment(t *testing.T) {
	r := fixture()
	key := fingerprint.ChunkKey("Lab3", 2, "")
	sel, ok := ChunkClick(r, key)
	require.True(t, ok)

	// The controller highlights exactly the selection's runs after a chunk click.
	s := Build(Input{
		Result:      r,
		Selection:   &sel,
		Highlighted: domain.NewRunSet(sel.RunIDs...),
		Mode:        domain.ModeHighlight,
		Layout:      DefaultLayout(),
	})

	for _, seg := range s.ByRole(scene.RoleSegment) {
		if seg.Target == key {
			assert.Equal(t, opacityFull, seg.Opacity)
			assert.Equal(t, scene.ColorSelection, seg.Stroke)
			continue
		}
		assert.Equal(t, opacitySelectDim, seg.Opacity, seg.Target)
		assert.Empty(t, seg.Stroke)
	}
}

func TestBuild_DocumentSelectionTintsRow(t *testing.T) {
	r := fixture()
	sel, ok := DocumentClick(r, "Syllabus")
	require.True(t, ok)

	s := Build(Input{Result: r, Selection: &sel, Highlighted: domain.NewRunSet(sel.RunIDs...), Mode: domain.ModeHighlight, Layout: DefaultLayout()})

	row, ok := s.Find(scene.RoleRow, "Syllabus")
	require.True(t, ok)
	assert.Equal(t, scene.ColorRowTint, row.Fill)
	assert.Equal(t, scene.ColorRowBorder, row.Stroke)

	other, ok := s.Find(scene.RoleRow, "Lab3")
	require.True(t, ok)
	assert.Equal(t, "none", other.Fill)

	for _, seg := range s.ByRole(scene.RoleSegment) {
		assert.Empty(t, seg.Stroke)
	}
}

func TestBuild_ExternalHighlightDims(t *testing.T) {
	r := fixture()

	tests := []struct {
		name     string
		mode     domain.InteractionMode
		wantLab3 float64
	}{
		{name: "highlight mode dims unrelated", mode: domain.ModeHighlight, wantLab3: opacityUnrelated},
		{name: "filter mode never dims", mode: domain.ModeFilter, wantLab3: opacityFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Build(Input{Result: r, Highlighted: domain.NewRunSet("r3"), Mode: tt.mode, Layout: DefaultLayout()})

			lab3, _ := s.Find(scene.RoleRow, "Lab3")
			syllabus, _ := s.Find(scene.RoleRow, "Syllabus")
			assert.Equal(t, tt.wantLab3, lab3.Opacity)
			assert.Equal(t, opacityFull, syllabus.Opacity)

			seg, _ := s.Find(scene.RoleSegment, fingerprint.ChunkKey("Lab3", 0, ""))
			assert.Equal(t, tt.wantLab3, seg.Opacity)
		})
	}
}

func TestBuild_IndependentHighlightOverridesChunkDim(t *testing.T) {
	r := fixture()
	sel, _ := ChunkClick(r, fingerprint.ChunkKey("Lab3", 0, ""))

	s := Build(Input{Result: r, Selection: &sel, Highlighted: domain.NewRunSet("r1"), Mode: domain.ModeHighlight, Layout: DefaultLayout()})

	seg, _ := s.Find(scene.RoleSegment, fingerprint.ChunkKey("Syllabus", 0, ""))
	assert.Equal(t, opacityFull, seg.Opacity)
}

func TestBuild_SharedIndexShowsMostSevere(t *testing.T) {
	a := domain.RetrievedDoc{Title: "Doc", Index: intPtr(0), ChunkID: strPtr("a")}
	b := domain.RetrievedDoc{Title: "Doc", Index: intPtr(0), ChunkID: strPtr("b")}
	r := fingerprint.Compute([]domain.MetricPoint{
		{RunID: "r1", QuestionID: "q1", LLMScore: 0.9, RetrievedDocs: []domain.RetrievedDoc{a}},
		{RunID: "r2", QuestionID: "q2", LLMScore: 0.9, HumanFlags: 2, RetrievedDocs: []domain.RetrievedDoc{b}},
	}, 10, domain.SortBySeverity)

	s := Build(Input{Result: r, Layout: DefaultLayout()})

	segs := s.ByRole(scene.RoleSegment)
	require.Len(t, segs, 1)
	assert.Equal(t, fingerprint.ChunkKey("Doc", 0, "b"), segs[0].Target)
}

func TestBuild_AbsurdChunkIndexKeepsSceneBounded(t *testing.T) {
	points, err := ingest.ParsePoints([]byte(`[
		{"runId": "r1", "questionId": "q1", "llmScore": 0.2, "humanFlags": 1,
		 "retrievedDocs": [{"title": "Broken", "index": 5e15}, {"title": "Broken", "index": 0}]},
		{"runId": "r2", "questionId": "q2", "llmScore": 0.9,
		 "retrievedDocs": [{"title": "Syllabus", "index": 1}]}
	]`))
	require.NoError(t, err)
	r := fingerprint.Compute(points, fingerprint.DefaultSeverityWeight, domain.SortBySeverity)

	l := DefaultLayout()
	var s *scene.Scene
	require.NotPanics(t, func() { s = Build(Input{Result: r, Mode: domain.ModeHighlight, Layout: l}) })

	assert.Len(t, s.ByRole(scene.RoleRow), 2)
	maxSlots := int(math.Ceil(l.TrackWidth() / l.MinSegmentWidth))
	slots := 0
	for _, p := range s.ByRole(scene.RoleGap) {
		if p.Target == "Broken" {
			slots++
		}
	}
	for _, p := range s.ByRole(scene.RoleSegment) {
		if strings.HasPrefix(p.Target, "Broken#") {
			slots++
		}
	}
	assert.Positive(t, slots)
	assert.LessOrEqual(t, slots, maxSlots)

	_, ok := s.Find(scene.RoleSegment, fingerprint.ChunkKey("Broken", 0, ""))
	assert.True(t, ok)
	_, ok = s.Find(scene.RoleSegment, fingerprint.ChunkKey("Syllabus", 1, ""))
	assert.True(t, ok)
}

func TestChunkClick_EmitsChunkRunsOnly(t *testing.T) {
	r := fixture()

	sel, ok := ChunkClick(r, fingerprint.ChunkKey("Lab3", 0, ""))
	require.True(t, ok)
	assert.Equal(t, []string{"r2"}, sel.RunIDs)
	assert.False(t, sel.IsDocument())
	require.NotNil(t, sel.ChunkIndex)
	assert.Equal(t, 0, *sel.ChunkIndex)

	doc, ok := DocumentClick(r, "Lab3")
	require.True(t, ok)
	assert.Equal(t, []string{"r1", "r2"}, doc.RunIDs)
	assert.True(t, doc.IsDocument())
	assert.Nil(t, doc.ChunkIndex)

	_, ok = ChunkClick(r, "missing#0#")
	assert.False(t, ok)
	_, ok = DocumentClick(r, "missing")
	assert.False(t, ok)
}

func TestTooltip(t *testing.T) {
	r := fixture()
	key := fingerprint.ChunkKey("Lab3", 2, "")

	tip := Tooltip(r, &HoverState{DocTitle: "Lab3", ChunkKey: key, X: 100, Y: 40}, DefaultPreviewLength)
	require.NotNil(t, tip)
	assert.Equal(t, "Lab3", tip.DocTitle)
	assert.Equal(t, 3, tip.Ordinal)
	assert.Equal(t, "late policy", tip.Preview)
	assert.Equal(t, 1, tip.Flags)
	assert.Equal(t, 1, tip.Poor)
	assert.Equal(t, 2, tip.Runs)
	assert.Greater(t, tip.X, 100.0)

	noText := Tooltip(r, &HoverState{ChunkKey: fingerprint.ChunkKey("Syllabus", 0, "")}, DefaultPreviewLength)
	require.NotNil(t, noText)
	assert.Equal(t, NoTextPlaceholder, noText.Preview)
}

func TestTooltip_GoneAfterMouseLeave(t *testing.T) {
	r := fixture()

	assert.Nil(t, Tooltip(r, nil, DefaultPreviewLength))
	assert.Nil(t, Tooltip(r, &HoverState{ChunkKey: "stale#9#"}, DefaultPreviewLength))
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("é", 130)

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "short", text: "hello", want: "hello"},
		{name: "collapses whitespace", text: "  a \n\t b ", want: "a b"},
		{name: "empty", text: "   ", want: NoTextPlaceholder},
		{name: "exact limit", text: strings.Repeat("x", 120), want: strings.Repeat("x", 120)},
		{name: "truncated by rune", text: long, want: strings.Repeat("é", 120) + "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Preview(tt.text, DefaultPreviewLength))
		})
	}
}
