package storage

import (
	"github.com/planejamais/planeja_mais/internal/ledger"
	"github.com/shopspring/decimal"
)

const (
	GoalTitlesKey    = "planeja_goal_titles_v1"
	GoalCacheKey     = "planeja_goals_v1"
	MonthlyTargetKey = "planejaMais_metaMensal"
)

// DefaultMonthlyTarget is the home screen target before the user edits it.
var DefaultMonthlyTarget = decimal.NewFromInt(4000)

// GoalTitles maps a goal period key ("2026-3") to the title typed by the user.
// The backend has no title column, so titles only live here.
type GoalTitles struct {
	store Store
}

func NewGoalTitles(s Store) *GoalTitles {
	return &GoalTitles{store: s}
}

// All returns every stored title. A corrupt entry reads as empty.
func (g *GoalTitles) All() map[string]string {
	titles := map[string]string{}
	if !getJSON(g.store, GoalTitlesKey, &titles) || titles == nil {
		return map[string]string{}
	}
	return titles
}

func (g *GoalTitles) Get(year, month int) (string, bool) {
	t, ok := g.All()[ledger.PeriodKey(year, month)]
	return t, ok && t != ""
}

func (g *GoalTitles) Set(year, month int, title string) error {
	titles := g.All()
	titles[ledger.PeriodKey(year, month)] = title
	return setJSON(g.store, GoalTitlesKey, titles)
}

func (g *GoalTitles) Remove(year, month int) error {
	titles := g.All()
	delete(titles, ledger.PeriodKey(year, month))
	return setJSON(g.store, GoalTitlesKey, titles)
}

// Apply fills the Title of every goal that has a stored one.
func (g *GoalTitles) Apply(goals []ledger.Goal) []ledger.Goal {
	titles := g.All()
	out := make([]ledger.Goal, len(goals))
	for i, goal := range goals {
		if t := titles[goal.PeriodKey()]; t != "" {
			goal.Title = t
		}
		out[i] = goal
	}
	return out
}

// GoalCache keeps the last goal list fetched so the view can render offline.
type GoalCache struct {
	store Store
}

func NewGoalCache(s Store) *GoalCache {
	return &GoalCache{store: s}
}

func (c *GoalCache) Load() []ledger.Goal {
	var goals []ledger.Goal
	if !getJSON(c.store, GoalCacheKey, &goals) {
		return nil
	}
	return goals
}

func (c *GoalCache) Save(goals []ledger.Goal) error {
	return setJSON(c.store, GoalCacheKey, goals)
}

// MonthlyTarget is the editable savings target shown on the home screen.
type MonthlyTarget struct {
	store Store
}

func NewMonthlyTarget(s Store) *MonthlyTarget {
	return &MonthlyTarget{store: s}
}

// Get parses the stored display string, falling back to DefaultMonthlyTarget.
func (m *MonthlyTarget) Get() decimal.Decimal {
	raw, ok := m.store.Get(MonthlyTargetKey)
	if !ok || raw == "" {
		return DefaultMonthlyTarget
	}
	return ledger.ParseAmount(raw)
}

// Set stores the amount as the home screen renders it, e.g. "R$ 4.000".
func (m *MonthlyTarget) Set(amount decimal.Decimal) error {
	return m.store.Set(MonthlyTargetKey, ledger.FormatUnsigned(amount))
}
