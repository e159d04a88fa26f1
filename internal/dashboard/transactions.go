package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/planejamais/planeja_mais/internal/client"
	"github.com/planejamais/planeja_mais/internal/ledger"
	"github.com/shopspring/decimal"
)

// TxInput is the transaction form. Value is typed by the user, e.g. "1.234,50".
type TxInput struct {
	Description string
	Category    string
	Value       string
	Type        ledger.TxType
}

// signed validates the form and returns description, category and signed amount.
// Zero and negative values are rejected whatever the type.
func (in TxInput) signed() (string, string, decimal.Decimal, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		desc = ledger.DefaultDescription
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = desc
	}
	amount := ledger.ParseAmount(in.Value)
	if !amount.IsPositive() {
		return "", "", decimal.Zero, ErrInvalidAmount
	}
	if in.Type == ledger.Saida {
		amount = amount.Neg()
	}
	return desc, category, amount, nil
}

// EditForm pre-fills the form for the row at index.
func (s *Session) EditForm(index int) (TxInput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.all) {
		return TxInput{}, ErrIndexOutOfRange
	}
	t := s.all[index]
	return TxInput{
		Description: t.Description,
		Category:    t.Category,
		Value:       ledger.EditValue(ledger.FormatSigned(t.Amount)),
		Type:        t.Type(),
	}, nil
}

// Create submits a new transaction and prepends it to the mirror once the
// backend accepts it. A response without id is kept, with a warning, and the
// record cannot be edited or deleted until the next Load.
func (s *Session) Create(ctx context.Context, in TxInput) (ledger.Transaction, error) {
	desc, category, amount, err := in.signed()
	if err != nil {
		return ledger.Transaction{}, err
	}
	now := s.now()

	id, err := s.api.CreateExpense(ctx, client.NewExpensePayload(desc, category, amount, now))
	if err != nil {
		s.logger.Error("Failed to create transaction", "error", err)
		return ledger.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}
	if id == "" {
		s.logger.Warn("Transaction created without id; edit and delete unavailable until reload")
	}

	t := ledger.Transaction{
		ID:          id,
		Description: desc,
		Category:    category,
		Amount:      amount,
		OccurredAt:  now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = append([]ledger.Transaction{t}, s.all...)
	s.refilterLocked()
	return t, nil
}

// Edit updates the row at index. The mirror only changes after the backend
// accepted the update.
func (s *Session) Edit(ctx context.Context, index int, in TxInput) (ledger.Transaction, error) {
	desc, category, amount, err := in.signed()
	if err != nil {
		return ledger.Transaction{}, err
	}

	s.mu.Lock()
	if index < 0 || index >= len(s.all) {
		s.mu.Unlock()
		return ledger.Transaction{}, ErrIndexOutOfRange
	}
	current := s.all[index]
	s.mu.Unlock()

	if !current.HasID() {
		s.logger.Error("Cannot update transaction without id", "index", index)
		return ledger.Transaction{}, ErrMissingID
	}

	now := s.now()
	if err := s.api.UpdateExpense(ctx, current.ID, client.NewExpensePayload(desc, category, amount, now)); err != nil {
		s.logger.Error("Failed to update transaction", "id", current.ID, "error", err)
		return ledger.Transaction{}, fmt.Errorf("failed to update transaction: %w", err)
	}

	updated := ledger.Transaction{
		ID:          current.ID,
		Description: desc,
		Category:    category,
		Amount:      amount,
		OccurredAt:  now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.all, current.ID, index); i >= 0 {
		s.all[i] = updated
	}
	s.refilterLocked()
	return updated, nil
}

// Delete removes the row at index right away and restores the previous list if
// the backend call fails.
func (s *Session) Delete(ctx context.Context, index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.all) {
		s.mu.Unlock()
		return ErrIndexOutOfRange
	}
	target := s.all[index]
	if !target.HasID() {
		s.mu.Unlock()
		s.logger.Error("Cannot delete transaction without id", "index", index)
		return ErrMissingID
	}
	backup := append([]ledger.Transaction(nil), s.all...)
	next := make([]ledger.Transaction, 0, len(s.all)-1)
	next = append(next, s.all[:index]...)
	s.all = append(next, s.all[index+1:]...)
	s.refilterLocked()
	s.mu.Unlock()

	if err := s.api.DeleteExpense(ctx, target.ID); err != nil {
		s.logger.Error("Failed to delete transaction, rolling back", "id", target.ID, "error", err)
		s.mu.Lock()
		s.all = backup
		s.refilterLocked()
		s.mu.Unlock()
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// indexOf finds id, preferring hint when it still points at it.
func indexOf(list []ledger.Transaction, id string, hint int) int {
	if hint >= 0 && hint < len(list) && list[hint].ID == id {
		return hint
	}
	for i, t := range list {
		if t.ID == id {
			return i
		}
	}
	return -1
}
