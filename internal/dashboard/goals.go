package dashboard

import (
	"context"
	"errors"

	"github.com/planejamais/planeja_mais/internal/client"
	"github.com/planejamais/planeja_mais/internal/ledger"
)

// ErrGoalMissingID refuses updates and deletes of goals the backend never identified.
var ErrGoalMissingID = errors.New("meta sem id")

const (
	msgSessionDuplicate = "Já existe uma meta para esse mês/ano nesta sessão. A API não aceita duplicidade."
	msgGoalFailed       = "Erro ao criar meta. Verifique token e payload."
	msgGoalUpdateFailed = "Erro ao atualizar meta."
	msgGoalDeleteFailed = "Erro ao excluir meta."
)

// ConflictMessage explains a 409 from the goal endpoint for the given period.
func ConflictMessage(month, year int) string {
	return "Já existe uma meta cadastrada para " + ledger.PeriodDescription(month, year) + ". " +
		"A API bloqueia duplicidade (409). Se quiser mudar o valor, precisa de endpoint de UPDATE."
}

// HasGoal reports whether a goal for the period is already loaded.
func (s *Session) HasGoal(month, year int) bool {
	return s.goalIndex(month, year, -1) >= 0
}

// goalIndex finds the loaded goal for the period, ignoring position skip.
func (s *Session) goalIndex(month, year, skip int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.goals {
		if i != skip && g.Month == month && g.Year == year {
			return i
		}
	}
	return -1
}

func goalFailure(err error, fallback string) *client.UserError {
	msg := fallback
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status != 0 && apiErr.Message != "" {
		msg = apiErr.Message
	}
	return &client.UserError{Message: msg, Err: err}
}

// CreateGoal validates the form, refuses periods already present in the
// session, submits the goal and stores its title locally. Failures come back as
// *ledger.ValidationError or *client.UserError.
func (s *Session) CreateGoal(ctx context.Context, in ledger.GoalInput) (ledger.Goal, error) {
	goal, err := ledger.ValidateGoalInput(in, s.now())
	if err != nil {
		return ledger.Goal{}, err
	}
	if s.HasGoal(goal.Month, goal.Year) {
		return ledger.Goal{}, &client.UserError{Message: msgSessionDuplicate}
	}

	created, err := s.api.CreateGoal(ctx, goal)
	if err != nil {
		s.logger.Error("Failed to create goal", "period", goal.PeriodKey(), "error", err)
		if client.IsConflict(err) {
			return ledger.Goal{}, &client.UserError{Message: ConflictMessage(goal.Month, goal.Year), Err: err}
		}
		return ledger.Goal{}, goalFailure(err, msgGoalFailed)
	}
	created.Title = goal.Title

	if s.titles != nil {
		if err := s.titles.Set(created.Year, created.Month, goal.Title); err != nil {
			s.logger.Warn("Failed to store goal title", "period", created.PeriodKey(), "error", err)
		}
	}

	s.mu.Lock()
	s.goals = append([]ledger.Goal{created}, s.goals...)
	snapshot := append([]ledger.Goal(nil), s.goals...)
	s.mu.Unlock()

	s.cacheGoals(snapshot)
	return created, nil
}

func (s *Session) cacheGoals(goals []ledger.Goal) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Save(goals); err != nil {
		s.logger.Warn("Failed to cache goals", "error", err)
	}
}

func (s *Session) goalAt(index int) (ledger.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.goals) {
		return ledger.Goal{}, ErrIndexOutOfRange
	}
	g := s.goals[index]
	if g.ID == "" {
		return ledger.Goal{}, ErrGoalMissingID
	}
	return g, nil
}

// replaceGoal swaps the goal with the given id, or drops it when next is nil,
// and returns a copy of the resulting list.
func (s *Session) replaceGoal(id string, next *ledger.Goal) []ledger.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ledger.Goal, 0, len(s.goals))
	for _, g := range s.goals {
		if g.ID != id {
			out = append(out, g)
			continue
		}
		if next != nil {
			out = append(out, *next)
		}
	}
	s.goals = out
	return append([]ledger.Goal(nil), out...)
}

// GoalForm pre-fills the goal form with the goal at index.
func (s *Session) GoalForm(index int) (ledger.GoalInput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.goals) {
		return ledger.GoalInput{}, ErrIndexOutOfRange
	}
	g := s.goals[index]
	return ledger.GoalInput{
		Title:  g.DisplayTitle(),
		Annual: g.IsAnnual(),
		Month:  g.Month,
		Year:   g.Year,
		Target: g.Target.InexactFloat64(),
	}, nil
}

// UpdateGoal rewrites the goal at index with the validated form. Moving it to
// a period another loaded goal already uses is refused before the request; a
// 409 from the backend gets the same period-specific message as CreateGoal.
func (s *Session) UpdateGoal(ctx context.Context, index int, in ledger.GoalInput) (ledger.Goal, error) {
	current, err := s.goalAt(index)
	if err != nil {
		return ledger.Goal{}, err
	}
	goal, err := ledger.ValidateGoalInput(in, s.now())
	if err != nil {
		return ledger.Goal{}, err
	}
	if s.goalIndex(goal.Month, goal.Year, index) >= 0 {
		return ledger.Goal{}, &client.UserError{Message: msgSessionDuplicate}
	}

	updated, err := s.api.UpdateGoal(ctx, current.ID, goal)
	if err != nil {
		s.logger.Error("Failed to update goal", "goal_id", current.ID, "error", err)
		if client.IsConflict(err) {
			return ledger.Goal{}, &client.UserError{Message: ConflictMessage(goal.Month, goal.Year), Err: err}
		}
		return ledger.Goal{}, goalFailure(err, msgGoalUpdateFailed)
	}
	updated.ID = current.ID
	updated.Title = goal.Title

	if s.titles != nil {
		if updated.PeriodKey() != current.PeriodKey() {
			if err := s.titles.Remove(current.Year, current.Month); err != nil {
				s.logger.Warn("Failed to remove goal title", "period", current.PeriodKey(), "error", err)
			}
		}
		if err := s.titles.Set(updated.Year, updated.Month, goal.Title); err != nil {
			s.logger.Warn("Failed to store goal title", "period", updated.PeriodKey(), "error", err)
		}
	}

	s.cacheGoals(s.replaceGoal(current.ID, &updated))
	return updated, nil
}

// DeleteGoal removes the goal at index once the backend confirms, together
// with its local title.
func (s *Session) DeleteGoal(ctx context.Context, index int) error {
	current, err := s.goalAt(index)
	if err != nil {
		return err
	}
	if err := s.api.DeleteGoal(ctx, current.ID); err != nil {
		s.logger.Error("Failed to delete goal", "goal_id", current.ID, "error", err)
		return goalFailure(err, msgGoalDeleteFailed)
	}

	if s.titles != nil {
		if err := s.titles.Remove(current.Year, current.Month); err != nil {
			s.logger.Warn("Failed to remove goal title", "period", current.PeriodKey(), "error", err)
		}
	}
	s.cacheGoals(s.replaceGoal(current.ID, nil))
	return nil
}

// GoalCounts returns the total, annual and monthly goal counts.
func (s *Session) GoalCounts() (total, annual, monthly int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.goals {
		if g.IsAnnual() {
			annual++
		} else {
			monthly++
		}
	}
	return len(s.goals), annual, monthly
}
