// Package dashboard holds the state of one ledger view: the local mirror of the
// user's transactions and goals, the active filter and the derived figures.
// Writes go to the backend first or optimistically, as each screen did.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/planejamais/planeja_mais/internal/client"
	"github.com/planejamais/planeja_mais/internal/ledger"
	"github.com/planejamais/planeja_mais/internal/storage"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrInvalidAmount rejects a value that does not parse to more than zero.
	ErrInvalidAmount = errors.New("valor deve ser maior que zero")
	// ErrMissingID refuses edits and deletes of records the backend never identified.
	ErrMissingID = errors.New("transação sem id")
	// ErrIndexOutOfRange is returned for a row index outside the list.
	ErrIndexOutOfRange = errors.New("índice fora da lista")
)

// API is the part of the backend client a session needs.
type API interface {
	ListAllExpenses(ctx context.Context, q client.ExpenseQuery) ([]ledger.RawRecord, error)
	CreateExpense(ctx context.Context, p client.ExpensePayload) (string, error)
	UpdateExpense(ctx context.Context, id string, p client.ExpensePayload) error
	DeleteExpense(ctx context.Context, id string) error
	ListGoals(ctx context.Context) ([]ledger.Goal, error)
	CreateGoal(ctx context.Context, g ledger.Goal) (ledger.Goal, error)
	UpdateGoal(ctx context.Context, id string, g ledger.Goal) (ledger.Goal, error)
	DeleteGoal(ctx context.Context, id string) error
}

// Row is a filtered transaction together with its position in the full list.
type Row struct {
	Index int
	ledger.Transaction
}

// Session is safe for concurrent use. Network calls run without the lock held.
type Session struct {
	api    API
	titles *storage.GoalTitles
	cache  *storage.GoalCache
	now    func() time.Time
	logger *slog.Logger

	mu       sync.Mutex
	all      []ledger.Transaction
	goals    []ledger.Goal
	filter   ledger.FilterState
	filtered []ledger.Transaction
	loaded   bool
}

// Option customizes a Session.
type Option func(*Session)

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithGoalStorage enables persisted goal titles and the offline goal cache.
func WithGoalStorage(titles *storage.GoalTitles, cache *storage.GoalCache) Option {
	return func(s *Session) {
		s.titles = titles
		s.cache = cache
	}
}

// New creates an empty session filtered to the current month.
func New(api API, opts ...Option) *Session {
	s := &Session{
		api:    api,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.filter = ledger.DefaultFilter(s.now())
	return s
}

// Load fetches transactions and goals concurrently and replaces the mirror. A
// goal failure falls back to the cached goals; a transaction failure keeps the
// current list and is returned.
func (s *Session) Load(ctx context.Context) error {
	var (
		records []ledger.RawRecord
		goals   []ledger.Goal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.api.ListAllExpenses(gctx, client.ExpenseQuery{})
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		goals, err = s.api.ListGoals(gctx)
		if err != nil {
			s.logger.Warn("Failed to load goals, using cache", "error", err)
			goals = s.cachedGoals()
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to load ledger", "error", err)
		return err
	}

	now := s.now()
	txs := ledger.NormalizeAll(records, now)
	goals = s.withTitles(goals)
	s.cacheGoals(goals)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = txs
	s.goals = goals
	if !s.loaded {
		s.filter = ledger.DefaultFilter(now)
		s.loaded = true
	}
	s.refilterLocked()
	s.logger.Info("Ledger loaded", "transactions", len(txs), "goals", len(goals))
	return nil
}

func (s *Session) cachedGoals() []ledger.Goal {
	if s.cache == nil {
		return nil
	}
	return s.cache.Load()
}

func (s *Session) withTitles(goals []ledger.Goal) []ledger.Goal {
	if s.titles == nil {
		return goals
	}
	return s.titles.Apply(goals)
}

func (s *Session) refilterLocked() {
	s.filtered = ledger.Filter(s.all, s.filter)
}

// ApplyPatch mutates the filter and re-derives the visible list.
func (s *Session) ApplyPatch(p ledger.FilterPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = ledger.Apply(s.filter, p, s.now())
	s.refilterLocked()
}

// PatchSource delivers filter patches. bus.FilterBus satisfies it.
type PatchSource interface {
	Subscribe() (<-chan ledger.FilterPatch, func())
}

// Watch applies patches from src until ctx is done or the source closes.
// onChange, if set, runs after every applied patch.
func (s *Session) Watch(ctx context.Context, src PatchSource, onChange func()) {
	ch, unsubscribe := src.Subscribe()
	defer unsubscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case p, ok := <-ch:
			if !ok {
				return
			}
			s.ApplyPatch(p)
			if onChange != nil {
				onChange()
			}
		}
	}
}

// Filter returns a copy of the active filter.
func (s *Session) Filter() ledger.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter.Clone()
}

// All returns a copy of the full mirror list.
func (s *Session) All() []ledger.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ledger.Transaction(nil), s.all...)
}

// Visible returns the filtered rows with their index in the full list.
func (s *Session) Visible() []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]Row, 0, len(s.filtered))
	for i, t := range s.all {
		if s.filter.Matches(t) {
			rows = append(rows, Row{Index: i, Transaction: t})
		}
	}
	return rows
}

// Page slices the full list the way the paginated table does.
func (s *Session) Page(pageIndex, pageSize int) []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pageIndex < 0 || pageSize <= 0 {
		return nil
	}
	start := pageIndex * pageSize
	if start >= len(s.all) {
		return nil
	}
	end := min(start+pageSize, len(s.all))
	rows := make([]Row, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, Row{Index: i, Transaction: s.all[i]})
	}
	return rows
}

// GlobalIndex converts a row of page pageIndex into a full list index.
func GlobalIndex(pageIndex, pageSize, indexInPage int) int {
	return pageIndex*pageSize + indexInPage
}

// Summary computes the header figures.
func (s *Session) Summary() ledger.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ledger.Summarize(s.all, s.filtered, s.now())
}

// Goals returns the loaded goals with their titles.
func (s *Session) Goals() []ledger.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ledger.Goal(nil), s.goals...)
}

// GoalProgress computes progress for every loaded goal over the full history.
func (s *Session) GoalProgress() []ledger.GoalProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ledger.ProgressFor(s.all, s.goals)
}
