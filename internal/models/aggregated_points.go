package models

// AggregatedPoints maps a normalized identity to its point total.
//
// An identity that has never been added has a total of zero; the first Add for an
// identity starts from zero. Identities are kept in first-insert order so output rows
// come out in the order contributors were first seen.
type AggregatedPoints struct {
	totals map[string]int
	order  []string
}

func NewAggregatedPoints() *AggregatedPoints {
	return &AggregatedPoints{
		totals: make(map[string]int),
	}
}

// Add adds points to the identity's total
func (a *AggregatedPoints) Add(identity string, points int) {
	if _, ok := a.totals[identity]; !ok {
		a.totals[identity] = 0
		a.order = append(a.order, identity)
	}
	a.totals[identity] += points
}

// Total returns the identity's total, zero if it was never added
func (a *AggregatedPoints) Total(identity string) int {
	return a.totals[identity]
}

// Has reports whether the identity has been added at least once
func (a *AggregatedPoints) Has(identity string) bool {
	_, ok := a.totals[identity]
	return ok
}

// Identities returns every identity in first-insert order
func (a *AggregatedPoints) Identities() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Len returns the number of distinct identities
func (a *AggregatedPoints) Len() int {
	return len(a.order)
}
