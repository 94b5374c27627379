package diag

import (
	"cmp"
	"slices"
)

// Bag collects the findings of one conversion, up to a limit.
type Bag struct {
	items []Diagnostic
	limit int
}

// NewBag creates a Bag holding at most limit diagnostics; limit <= 0 means unlimited.
func NewBag(limit int) *Bag {
	return &Bag{
		items: make([]Diagnostic, 0, min(max(limit, 0), 64)),
		limit: limit,
	}
}

// Add возвращает false, если лимит уже достигнут и d отброшена.
func (b *Bag) Add(d Diagnostic) bool {
	if b.limit > 0 && len(b.items) >= b.limit {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Report makes a Bag usable as a Reporter.
func (b *Bag) Report(d Diagnostic) { b.Add(d) }

func (b *Bag) HasErrors() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= SevError })
}

func (b *Bag) Len() int { return len(b.items) }

// Items возвращает внутренний срез; не модифицируйте его.
func (b *Bag) Items() []Diagnostic { return b.items }

// Filter returns a new bag with the same limit holding the matching items.
func (b *Bag) Filter(keep func(Diagnostic) bool) *Bag {
	out := NewBag(b.limit)
	for _, d := range b.items {
		if keep(d) {
			out.Add(d)
		}
	}
	return out
}

// Sort orders by file, start, end, then severity (highest first) and code.
// Equal keys keep report order.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}
