package diag

import (
	"cmp"
	"slices"
)

// Bag collects diagnostics in report order up to max items; max 0 means
// unlimited.
type Bag struct {
	items []Diagnostic
	max   int
}

func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add appends d and reports whether it was kept.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) HasErrors() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= SevError })
}

func (b *Bag) Len() int { return len(b.items) }

// Items returns the collected diagnostics. The slice aliases the bag.
func (b *Bag) Items() []Diagnostic { return b.items }

// Sort orders diagnostics by position, then by code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		switch {
		case x.Primary.Less(y.Primary):
			return -1
		case y.Primary.Less(x.Primary):
			return 1
		}
		return cmp.Compare(x.Code, y.Code)
	})
}
