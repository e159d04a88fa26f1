package dashboard

import (
	"strings"

	"github.com/planejamais/planeja_mais/internal/ledger"
)

// SearchKind is the dimension picked in the header search box.
type SearchKind string

const (
	SearchCategory SearchKind = "categoria"
	SearchType     SearchKind = "tipo"
	SearchValue    SearchKind = "valor"
)

// BuildSearch turns the search box into a toggle patch. It returns false for
// input that would only emit noise: a blank category, an unknown type, or a
// value range with no bounds or with min above max.
func BuildSearch(kind SearchKind, text string, lo, hi *float64) (ledger.FilterPatch, bool) {
	switch kind {
	case SearchCategory:
		cat := strings.TrimSpace(text)
		if cat == "" {
			return nil, false
		}
		return ledger.CategoryPatch{Value: cat, Mode: ledger.ModeToggle}, true
	case SearchType:
		t, ok := ledger.ParseTypeKeyword(text)
		if !ok {
			return nil, false
		}
		return ledger.TypePatch{Value: t, Mode: ledger.ModeToggle}, true
	case SearchValue:
		r := ledger.NewValueRange(lo, hi)
		if !r.Valid() {
			return nil, false
		}
		return ledger.ValuePatch{Value: r, Mode: ledger.ModeToggle}, true
	}
	return nil, false
}
