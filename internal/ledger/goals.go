package ledger

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// GoalTokenPrefix marks a category written when a contribution is logged
// explicitly against a goal: "@goal:2026-3".
const GoalTokenPrefix = "@goal:"

// Goal is a savings target for one month (1-12) or a whole year (Month == 0).
// Title only lives on the client.
type Goal struct {
	ID        string          `json:"_id,omitempty"`
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	Target    decimal.Decimal `json:"goal"`
	Title     string          `json:"title,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// IsAnnual reports whether g covers a whole year.
func (g Goal) IsAnnual() bool {
	return g.Month == 0
}

// PeriodKey is the "<year>-<month>" identity of the goal period.
func (g Goal) PeriodKey() string {
	return PeriodKey(g.Year, g.Month)
}

// PeriodKey formats a goal period identity without zero padding.
func PeriodKey(year, month int) string {
	return strconv.Itoa(year) + "-" + strconv.Itoa(month)
}

// DefaultTitle is shown when no local title was stored for the period.
func (g Goal) DefaultTitle() string {
	if g.IsAnnual() {
		return "Meta anual " + strconv.Itoa(g.Year)
	}
	return "Meta " + g.PeriodKey()
}

// DisplayTitle returns the local title or the default one.
func (g Goal) DisplayTitle() string {
	if strings.TrimSpace(g.Title) != "" {
		return g.Title
	}
	return g.DefaultTitle()
}

// GoalToken is the reserved category that binds a transaction to g.
func GoalToken(g Goal) string {
	return GoalTokenPrefix + g.PeriodKey()
}

// PeriodDescription renders "ano 2026 (anual)" or "mês 3/2026".
func PeriodDescription(month, year int) string {
	if month == 0 {
		return "ano " + strconv.Itoa(year) + " (anual)"
	}
	return "mês " + strconv.Itoa(month) + "/" + strconv.Itoa(year)
}

// MatchGoal returns the index of the first goal the category belongs to.
// Rules, in order: exact display title, period key contained in the category,
// exact reserved token.
func MatchGoal(category string, goals []Goal) (int, bool) {
	c := Fold(category)
	if c == "" {
		return -1, false
	}
	for i, g := range goals {
		key := g.PeriodKey()
		switch {
		case c == Fold(g.DisplayTitle()):
			return i, true
		case containsPeriodKey(c, key):
			return i, true
		case c == Fold(GoalTokenPrefix+key):
			return i, true
		}
	}
	return -1, false
}

// containsPeriodKey finds key in c with no digit touching either end, so
// "2026-1" does not match inside "2026-12".
func containsPeriodKey(c, key string) bool {
	for from := 0; from <= len(c)-len(key); {
		i := strings.Index(c[from:], key)
		if i < 0 {
			return false
		}
		start, end := from+i, from+i+len(key)
		if (start == 0 || !isDigit(c[start-1])) && (end == len(c) || !isDigit(c[end])) {
			return true
		}
		from = start + 1
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// SavedByGoal sums, per period key, the signed amounts of the transactions that
// match each goal. A transaction counts towards at most one goal.
func SavedByGoal(list []Transaction, goals []Goal) map[string]decimal.Decimal {
	saved := make(map[string]decimal.Decimal, len(goals))
	for _, g := range goals {
		saved[g.PeriodKey()] = decimal.Zero
	}
	for _, t := range list {
		i, ok := MatchGoal(t.Category, goals)
		if !ok {
			continue
		}
		key := goals[i].PeriodKey()
		saved[key] = saved[key].Add(t.Amount)
	}
	return saved
}

// GoalProgress is the derived state of one goal.
type GoalProgress struct {
	Goal      Goal            `json:"goal"`
	Title     string          `json:"title"`
	Saved     decimal.Decimal `json:"saved"`
	Percent   int             `json:"percent"`
	Remaining decimal.Decimal `json:"remaining"`
}

// ProgressFor computes progress for every goal from transaction history.
func ProgressFor(list []Transaction, goals []Goal) []GoalProgress {
	saved := SavedByGoal(list, goals)
	out := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		s := saved[g.PeriodKey()]
		out = append(out, GoalProgress{
			Goal:      g,
			Title:     g.DisplayTitle(),
			Saved:     s,
			Percent:   Progress(s, g.Target),
			Remaining: Remaining(s, g.Target),
		})
	}
	return out
}

// ValidationError is a form error caught before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// GoalInput is the goal form as typed by the user.
type GoalInput struct {
	Title  string  `validate:"min=3"`
	Year   int     `validate:"min=2000,max=2100"`
	Target float64 `validate:"finite"`
	Annual bool
	Month  int
}

var goalMessages = map[string]string{
	"Title":  "Título obrigatório (mín. 3 caracteres).",
	"Year":   "Ano inválido.",
	"Target": "Informe um valor de meta válido.",
}

var goalValidate = newGoalValidator()

func newGoalValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.Float64 && fl.Field().Kind() != reflect.Float32 {
			return false
		}
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return v
}

// ValidateGoalInput checks the form and builds the goal to submit. Title, year,
// target and month are checked in that order and the first failure is reported.
func ValidateGoalInput(in GoalInput, now time.Time) (Goal, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := goalValidate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0].Field()
			return Goal{}, &ValidationError{Field: field, Message: goalMessages[field]}
		}
		return Goal{}, err
	}

	month := in.Month
	if in.Annual {
		month = 0
	} else if month < 1 || month > 12 {
		return Goal{}, &ValidationError{Field: "Month", Message: "Mês inválido (1 a 12)."}
	}

	return Goal{
		Month:     month,
		Year:      in.Year,
		Target:    decimal.NewFromFloat(in.Target),
		Title:     in.Title,
		UpdatedAt: now,
	}, nil
}
