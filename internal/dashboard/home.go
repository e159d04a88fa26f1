package dashboard

import (
	"github.com/planejamais/planeja_mais/internal/ledger"
	"github.com/shopspring/decimal"
)

// Home holds the KPI cards of the home screen, already formatted.
type Home struct {
	Balance        string `json:"balance"`
	MonthlyTarget  string `json:"monthlyTarget"`
	SavedThisMonth string `json:"savedThisMonth"`
	SpentThisMonth string `json:"spentThisMonth"`
	TargetPercent  int    `json:"targetPercent"`
}

// Home derives the KPI cards. Saved is the positive net of the current month.
func (s *Session) Home(target decimal.Decimal) Home {
	s.mu.Lock()
	defer s.mu.Unlock()

	window := ledger.CurrentMonth(s.now())
	net := decimal.Zero
	for _, t := range s.all {
		if window.Contains(t.OccurredAt) {
			net = net.Add(t.Amount)
		}
	}
	saved := decimal.Max(net, decimal.Zero)

	total := ledger.Total(s.all)
	balance := ledger.FormatUnsigned(total)
	if ledger.RoundUnits(total).IsNegative() {
		balance = "-" + balance
	}

	return Home{
		Balance:        balance,
		MonthlyTarget:  ledger.FormatUnsigned(target),
		SavedThisMonth: ledger.FormatUnsigned(saved),
		SpentThisMonth: ledger.FormatOutflow(ledger.MonthOutflow(s.all, window)),
		TargetPercent:  ledger.Progress(saved, target),
	}
}
