package dashboard

import (
	"sync"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/raglens/internal/apperr"
	"github.com/DjordjeVuckovic/raglens/internal/config"
	"github.com/DjordjeVuckovic/raglens/internal/domain"
	"github.com/DjordjeVuckovic/raglens/internal/fingerprint"
	"github.com/DjordjeVuckovic/raglens/internal/scene"
	"github.com/DjordjeVuckovic/raglens/internal/view/correlation"
	"github.com/DjordjeVuckovic/raglens/internal/view/fpview"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }

func strPtr(s string) *string { return &s }

func testPoints() []domain.MetricPoint {
	lab3 := func(i int) domain.RetrievedDoc {
		return domain.RetrievedDoc{Title: "Lab3", Score: 0.7, Index: intPtr(i)}
	}
	return []domain.MetricPoint{
		{RunID: "r1", QuestionID: "q1", LLMScore: 0.72, AvgSimilarity: 0.2, HumanFlags: 1, RetrievedDocs: []domain.RetrievedDoc{lab3(2)}},
		{RunID: "r2", QuestionID: "q2", LLMScore: 0.1, AvgSimilarity: 0.8, RetrievedDocs: []domain.RetrievedDoc{lab3(2), lab3(0)}},
		{RunID: "r3", QuestionID: "q3", LLMScore: 0.9, AvgSimilarity: 0.9, RetrievedDocs: []domain.RetrievedDoc{{Title: "Syllabus", Index: intPtr(0)}}},
	}
}

func newTestStore(now func() time.Time) *Store {
	return NewStore(*config.Default(), WithClock(now))
}

func TestSession_BinThenDocumentClick(t *testing.T) {
	sess := newTestStore(time.Now).Create(testPoints())

	out, err := sess.Dispatch(EventRequest{Type: EventBin, Metric: "llm", Bin: intPtr(7)})
	require.NoError(t, err)
	require.NotNil(t, out.State.ScoreFilter)
	assert.Equal(t, domain.ScoreRange{0.7, 0.8}, out.State.ScoreFilter.Range)

	out, err = sess.Dispatch(EventRequest{Type: EventDocument, DocTitle: "Lab3"})
	require.NoError(t, err)
	assert.Nil(t, out.State.ScoreFilter)
	require.NotNil(t, out.State.ChunkSelection)
	assert.Equal(t, "Lab3", out.State.ChunkSelection.DocTitle)
	assert.Equal(t, []string{"r1", "r2"}, out.State.SelectedRunIDs)
}

func TestSession_ChunkClickEmitsChunkRuns(t *testing.T) {
	sess := newTestStore(time.Now).Create(testPoints())

	out, err := sess.Dispatch(EventRequest{Type: EventChunk, ChunkKey: fingerprint.ChunkKey("Lab3", 0, "")})
	require.NoError(t, err)
	assert.Equal(t, []string{"r2"}, out.State.SelectedRunIDs)

	_, err = sess.Dispatch(EventRequest{Type: EventChunk, ChunkKey: "nope#0#"})
	var nf *apperr.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestSession_RegionSelect(t *testing.T) {
	sess := newTestStore(time.Now).Create(testPoints())
	l := correlation.DefaultLayout()
	x, y := l.Position(testPoints()[0])

	out, err := sess.Dispatch(EventRequest{Type: EventRegion, Region: &correlation.Rect{X0: x - 2, Y0: y - 2, X1: x + 2, Y1: y + 2}})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, out.State.SelectedRunIDs)

	out, err = sess.Dispatch(EventRequest{Type: EventRegion, Region: &correlation.Rect{X0: x, Y0: y, X1: x, Y1: y}})
	require.NoError(t, err)
	assert.Empty(t, out.State.SelectedRunIDs)
}

func TestSession_PointClickNavigates(t *testing.T) {
	sess := newTestStore(time.Now).Create(testPoints())

	out, err := sess.Dispatch(EventRequest{Type: EventPoint, RunID: "r3"})
	require.NoError(t, err)
	assert.Equal(t, "r3", out.NavigateTo)
	assert.Equal(t, "r3", sess.Snapshot().DetailRunID)
}

func TestSession_InvalidEvents(t *testing.T) {
	sess := newTestStore(time.Now).Create(testPoints())

	tests := []struct {
		name string
		req  EventRequest
	}{
		{name: "unknown type", req: EventRequest{Type: "explode"}},
		{name: "point without id", req: EventRequest{Type: EventPoint}},
		{name: "bin out of range", req: EventRequest{Type: EventBin, Metric: "llm", Bin: intPtr(10)}},
		{name: "bin without index", req: EventRequest{Type: EventBin, Metric: "llm"}},
		{name: "bad metric", req: EventRequest{Type: EventBin, Metric: "latency", Bin: intPtr(1)}},
		{name: "bad mode", req: EventRequest{Type: EventMode, Mode: "hide"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sess.Dispatch(tt.req)
			var ve *apperr.ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
	assert.True(t, sess.Snapshot().State.Empty())
}

func TestSession_FilterModeShrinksEveryView(t *testing.T) {
	sess := newTestStore(time.Now).Create(testPoints())

	_, err := sess.Dispatch(EventRequest{Type: EventBin, Metric: "similarity", Bin: intPtr(9)})
	require.NoError(t, err)
	_, err = sess.Dispatch(EventRequest{Type: EventMode, Mode: "filter"})
	require.NoError(t, err)

	d := sess.Dashboard()
	assert.Len(t, d.Correlation.ByRole(scene.RolePoint), 1)
	assert.Len(t, d.Fingerprints.ByRole(scene.RoleRow), 1)
	assert.Equal(t, "r3", d.DetailRunID)

	sess.Clear()
	d = sess.Dashboard()
	assert.Len(t, d.Correlation.ByRole(scene.RolePoint), 3)
	assert.Equal(t, domain.ModeFilter, d.State.Mode)
}

func TestSession_HighlightModeKeepsEveryPoint(t *testing.T) {
	sess := newTestStore(time.Now).Create(testPoints())

	_, err := sess.Dispatch(EventRequest{Type: EventBin, Metric: "llm", Bin: intPtr(7)})
	require.NoError(t, err)

	d := sess.Dashboard()
	assert.Len(t, d.Correlation.ByRole(scene.RolePoint), 3)
	assert.Equal(t, []string{"r1"}, d.Highlighted)
	assert.Len(t, d.Distributions, 2)
}

func TestSession_HoverAndLeave(t *testing.T) {
	sess := newTestStore(time.Now).Create(testPoints())
	key := fingerprint.ChunkKey("Lab3", 2, "")

	tip := sess.SetHover(&fpview.HoverState{DocTitle: "Lab3", ChunkKey: key, X: 10, Y: 10})
	require.NotNil(t, tip)
	assert.Equal(t, 3, tip.Ordinal)
	assert.Equal(t, fpview.NoTextPlaceholder, tip.Preview)
	assert.NotNil(t, sess.Dashboard().Tooltip)

	assert.Nil(t, sess.SetHover(nil))
	assert.Nil(t, sess.Dashboard().Tooltip)
}

func TestSession_UpdateSettings(t *testing.T) {
	sess := newTestStore(time.Now).Create(testPoints())

	snap, err := sess.UpdateSettings(SettingsRequest{
		SeverityWeight: floatPtr(-4),
		SortBy:         strPtr("bogus"),
		Mode:           strPtr("filter"),
	})
	require.NoError(t, err)
	assert.Equal(t, fingerprint.DefaultSeverityWeight, snap.SeverityWeight)
	assert.Equal(t, domain.SortBySeverity, snap.SortBy)
	assert.Equal(t, domain.ModeFilter, snap.State.Mode)

	snap, err = sess.UpdateSettings(SettingsRequest{SeverityWeight: floatPtr(3), SortBy: strPtr("retrieved")})
	require.NoError(t, err)
	assert.Equal(t, 3.0, snap.SeverityWeight)
	assert.Equal(t, domain.SortByRetrieved, snap.SortBy)
	assert.Equal(t, 3.0, sess.Fingerprints().SeverityWeight)

	_, err = sess.UpdateSettings(SettingsRequest{Mode: strPtr("nope")})
	assert.Error(t, err)
}

func TestStore_Lifecycle(t *testing.T) {
	store := newTestStore(time.Now)
	sess := store.Create(testPoints())

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)
	assert.Equal(t, 1, store.Len())

	require.NoError(t, store.Delete(sess.ID))
	_, err = store.Get(sess.ID)
	var nf *apperr.NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.ErrorAs(t, store.Delete(uuid.New()), &nf)
}

func TestStore_SweepExpiresIdleSessions(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := newTestStore(clock)

	idle := store.Create(testPoints())
	now = now.Add(config.DefaultSessionTTL / 2)
	active := store.Create(testPoints())

	now = now.Add(config.DefaultSessionTTL/2 + time.Second)
	assert.Equal(t, 1, store.Sweep())

	_, err := store.Get(idle.ID)
	assert.Error(t, err)
	_, err = store.Get(active.ID)
	assert.NoError(t, err)
}

func TestSession_ConcurrentEvents(t *testing.T) {
	sess := newTestStore(time.Now).Create(testPoints())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = sess.Dispatch(EventRequest{Type: EventBin, Metric: "llm", Bin: intPtr(i % 10)})
			} else {
				_ = sess.Dashboard()
			}
		}(i)
	}
	wg.Wait()

	state := sess.Snapshot().State
	require.NotNil(t, state.ScoreFilter)
	assert.Nil(t, state.ChunkSelection)
}
