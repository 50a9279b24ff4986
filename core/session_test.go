package core

import (
	"context"
	"errors"
	"testing"

	"github.com/huangsam/benchboard/internal/iostore"
	"github.com/huangsam/benchboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sessionRecords(names ...string) []schema.BenchmarkRecord {
	out := make([]schema.BenchmarkRecord, len(names))
	for i, n := range names {
		score := float64(10 * (i + 1))
		out[i] = schema.BenchmarkRecord{
			ID:     n,
			Name:   n,
			Scores: map[string]float64{"ifeval": score, "bbh": score, "math": score, "gpqa": score, "musr": score, "mmlu": score},
		}
	}
	return out
}

func TestSession_StaleCommitIsDiscarded(t *testing.T) {
	s := NewSession(newTestConfig(schema.Models))
	defer s.Close()

	firstCtx, first := s.Begin(context.Background())
	_, second := s.Begin(context.Background())

	// The first fetch is canceled when the second begins.
	assert.ErrorIs(t, firstCtx.Err(), context.Canceled)

	// The later response arrives first.
	assert.True(t, s.Commit(second, sessionRecords("new-a", "new-b"), nil))
	// The earlier response arrives last and must not overwrite.
	assert.False(t, s.Commit(first, sessionRecords("old"), nil))

	state := s.State()
	assert.False(t, state.Loading)
	assert.Equal(t, uint64(2), state.Generation)
	require.Len(t, state.Rows, 2)
	assert.Equal(t, "new-b", state.Rows[0].Name)
}

func TestSession_StaleErrorIsDiscarded(t *testing.T) {
	s := NewSession(newTestConfig(schema.Models))
	defer s.Close()

	_, first := s.Begin(context.Background())
	_, second := s.Begin(context.Background())
	assert.False(t, s.Commit(first, nil, errors.New("timeout")))
	assert.True(t, s.State().Loading)
	assert.True(t, s.Commit(second, sessionRecords("a"), nil))
	assert.NoError(t, s.State().Err)
}

func TestSession_ErrorKeepsRecords(t *testing.T) {
	s := NewSession(newTestConfig(schema.Models))
	defer s.Close()

	_, t1 := s.Begin(context.Background())
	s.Commit(t1, sessionRecords("a", "b"), nil)

	_, t2 := s.Begin(context.Background())
	fetchErr := &schema.FetchError{Variant: schema.Models, Err: errors.New("boom")}
	assert.True(t, s.Commit(t2, nil, fetchErr))

	state := s.State()
	assert.ErrorIs(t, state.Err, fetchErr)
	assert.Len(t, state.Rows, 2)

	// Retry clears the error.
	_, t3 := s.Begin(context.Background())
	s.Commit(t3, sessionRecords("a", "b", "c"), nil)
	assert.NoError(t, s.State().Err)
	assert.Len(t, s.Rows(), 3)
}

func TestSession_ToggleSortAndQuery(t *testing.T) {
	s := NewSession(newTestConfig(schema.Models))
	defer s.Close()
	_, ticket := s.Begin(context.Background())
	s.Commit(ticket, sessionRecords("b", "a", "c"), nil)

	names := func() []string {
		var out []string
		for _, r := range s.Rows() {
			out = append(out, r.Name)
		}
		return out
	}
	assert.Equal(t, []string{"c", "a", "b"}, names())

	needsFetch, err := s.ToggleSort("model")
	require.NoError(t, err)
	assert.False(t, needsFetch)
	assert.Equal(t, []string{"a", "b", "c"}, names())

	_, err = s.ToggleSort("model")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, names())

	_, err = s.ToggleSort("nope")
	assert.Error(t, err)

	require.NoError(t, s.SetQuery(schema.Query{Search: "A"}))
	assert.Equal(t, []string{"a"}, names())
	assert.Equal(t, "2", s.Rows()[0].RankLabel)

	assert.Error(t, NewSession(newTestConfig(schema.RAG)).SetQuery(schema.Query{FilterType: "llama"}))
}

func TestSession_RemoteOrderNeedsFetch(t *testing.T) {
	cfg := newTestConfig(schema.RAG)
	cfg.RemoteOrder = true
	s := NewSession(cfg)
	defer s.Close()

	needsFetch, err := s.ToggleSort("total")
	require.NoError(t, err)
	assert.True(t, needsFetch)

	store := &iostore.MockRecordStore{}
	store.On("FetchRecords", mock.Anything, schema.RAG, &schema.SortSpec{Field: "total", Direction: schema.Desc}).
		Return([]schema.BenchmarkRecord{{ID: "1", Name: "x", Aggregate: 12}}, nil)
	require.NoError(t, s.Refresh(context.Background(), store))
	assert.Len(t, s.Rows(), 1)
	store.AssertExpectations(t)
}

func TestSession_Refresh(t *testing.T) {
	store := iostore.NewMemoryStore()
	for _, e := range []map[string]string{modelEntry("Model-A", "90"), modelEntry("Model-B", "95")} {
		_, err := SubmitRecord(context.Background(), store, schema.Models, e)
		require.NoError(t, err)
	}

	s := NewSession(newTestConfig(schema.Models))
	defer s.Close()
	require.NoError(t, s.Refresh(context.Background(), store))
	rows := s.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Model-B", rows[0].Name)
	assert.Equal(t, schema.TrophyBadge, rows[0].Badge)

	failing := &iostore.MockRecordStore{}
	failing.On("FetchRecords", mock.Anything, schema.Models, (*schema.SortSpec)(nil)).
		Return([]schema.BenchmarkRecord(nil), errors.New("offline"))
	err := s.Refresh(context.Background(), failing)
	var fetchErr *schema.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Len(t, s.Rows(), 2)
}

func TestSession_ConcurrentRefreshKeepsLatest(t *testing.T) {
	s := NewSession(newTestConfig(schema.Models))
	defer s.Close()

	slowCtx, slow := s.Begin(context.Background())
	release := make(chan struct{})
	done := make(chan bool)
	go func() {
		<-release
		// Simulates a response that ignores cancellation and lands late.
		done <- s.Commit(slow, sessionRecords("stale"), slowCtx.Err())
	}()

	_, fast := s.Begin(context.Background())
	require.True(t, s.Commit(fast, sessionRecords("fresh"), nil))
	close(release)
	assert.False(t, <-done)
	assert.Equal(t, "fresh", s.Rows()[0].Name)
}
