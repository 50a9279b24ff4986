package core

import (
	"context"
	"sync"

	"github.com/huangsam/benchboard/core/algo"
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
)

// Ticket identifies one fetch issued by a Session.
type Ticket struct {
	generation uint64
}

// SessionState is a snapshot of an interactive leaderboard view.
type SessionState struct {
	Variant    schema.Variant
	Query      schema.Query
	Sort       schema.SortSpec
	Records    []schema.BenchmarkRecord // ranked, unfiltered
	Visible    []schema.BenchmarkRecord
	Rows       []schema.DisplayRow
	Loading    bool
	Err        error
	Generation uint64
}

// Session holds the state of one interactive leaderboard view.
// Fetches are tagged with a generation; only the latest fetch may update the records,
// so a slow earlier response never overwrites a newer one.
type Session struct {
	mu          sync.Mutex
	variant     schema.Variant
	pipeline    *algo.Pipeline
	precision   int
	remoteOrder bool

	query   schema.Query
	sort    schema.SortSpec
	records []schema.BenchmarkRecord
	visible []schema.BenchmarkRecord
	rows    []schema.DisplayRow
	loading bool
	err     error

	generation uint64
	cancel     context.CancelFunc
}

// NewSession creates a session for the configured variant, query and sort.
func NewSession(cfg *contract.Config) *Session {
	return &Session{
		variant:     cfg.Variant,
		pipeline:    algo.NewPipeline(cfg.Variant, cfg.Locale),
		precision:   cfg.Precision,
		remoteOrder: cfg.RemoteOrder,
		query:       cfg.Query,
		sort:        cfg.Sort,
	}
}

// Begin starts a new fetch. The previous in-flight fetch is canceled and its ticket
// becomes stale. The returned context is canceled by the next Begin or by Close.
func (s *Session) Begin(parent context.Context) (context.Context, Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.generation++
	s.loading = true
	return ctx, Ticket{generation: s.generation}
}

// Commit applies a fetch result. It returns false and changes nothing when the ticket is stale.
// On error the previous records stay visible and the error is kept for display.
func (s *Session) Commit(t Ticket, records []schema.BenchmarkRecord, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.generation != s.generation {
		return false
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.loading = false
	if err != nil {
		s.err = err
		return true
	}
	s.err = nil
	s.records = algo.RankAggregates(s.variant, records)
	s.recompute()
	return true
}

// Refresh fetches the variant from the store and commits the result.
// Read failures are returned as FetchError.
func (s *Session) Refresh(ctx context.Context, store contract.RecordStore) error {
	fetchCtx, ticket := s.Begin(ctx)
	records, err := FetchRecords(fetchCtx, store, s.variant, s.order())
	s.Commit(ticket, records, err)
	return err
}

// Fetch runs a fetch for an already issued ticket without committing it.
// Callers that deliver results asynchronously pair it with Commit.
func (s *Session) Fetch(ctx context.Context, store contract.RecordStore) ([]schema.BenchmarkRecord, error) {
	return FetchRecords(ctx, store, s.variant, s.order())
}

// ToggleSort applies a column header click. With remote ordering it reports that
// the records must be fetched again; otherwise the view is reordered in place.
func (s *Session) ToggleSort(key string) (needsFetch bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := algo.ToggleSort(s.variant, s.sort, key)
	if err != nil {
		return false, err
	}
	s.sort = next
	s.recompute()
	return s.remoteOrder, nil
}

// SetQuery replaces the search text and filter type.
func (s *Session) SetQuery(q schema.Query) error {
	if err := algo.ValidateFilterType(s.variant, q.FilterType); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
	s.recompute()
	return nil
}

// Rows returns the display rows of the current view.
func (s *Session) Rows() []schema.DisplayRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows
}

// State returns a snapshot of the session.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionState{
		Variant:    s.variant,
		Query:      s.query,
		Sort:       s.sort,
		Records:    s.records,
		Visible:    s.visible,
		Rows:       s.rows,
		Loading:    s.loading,
		Err:        s.err,
		Generation: s.generation,
	}
}

// Close cancels any in-flight fetch.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) order() *schema.SortSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.remoteOrder {
		return nil
	}
	order := s.sort
	return &order
}

// recompute rebuilds the visible records and rows. Callers hold the lock.
func (s *Session) recompute() {
	s.visible = s.pipeline.Apply(s.records, s.query, s.sort)
	s.rows = algo.ToDisplayRows(s.variant, s.visible, s.precision)
}
