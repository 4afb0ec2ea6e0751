// Package expense keeps one month of spending: entries saved from parsed
// receipt drafts, the month's budget, and the reset rule that starts each
// calendar month fresh.
package expense

import (
	"time"

	"github.com/liyingruan/kakeibo/internal/parsing"
)

// DefaultBudget is the yen budget a fresh month starts with.
const DefaultBudget = 30000

// monthKeyLayout buckets entries by calendar month, e.g. "2024-03".
const monthKeyLayout = "2006-01"

// Entry is a persisted transaction: one receipt's worth of line items.
type Entry struct {
	ID        string             `json:"id"`
	Date      string             `json:"date"`
	Items     []parsing.LineItem `json:"items"`
	Receipt   string             `json:"receipt,omitempty"` // archived source image, when scanned
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// Total is the entry's after-tax total.
func (e *Entry) Total() int {
	total := 0
	for _, item := range e.Items {
		total += item.PriceAfterTax
	}
	return total
}

// State is the single persisted blob: the month it belongs to, its entries,
// and the budget the month started with.
type State struct {
	MonthKey   string  `json:"monthKey"`
	Entries    []Entry `json:"entries"`
	BudgetInit int     `json:"budgetInit"`
}

// MonthKey returns the month bucket for t.
func MonthKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// Reconcile applies the monthly reset rule: stored state survives within its
// own month, any other month starts fresh with the default budget. Pure, so
// the reset is testable without a store; callers run it on every load and
// persist the result when the key changed.
func Reconcile(stored State, monthKey string) State {
	if stored.MonthKey != monthKey {
		return State{
			MonthKey:   monthKey,
			Entries:    []Entry{},
			BudgetInit: DefaultBudget,
		}
	}
	if stored.Entries == nil {
		stored.Entries = []Entry{}
	}
	return stored
}

// Summary is spending totaled against the month's budget, optionally
// narrowed to a date range.
type Summary struct {
	MonthKey   string                   `json:"monthKey"`
	Budget     int                      `json:"budget"`
	Spent      int                      `json:"spent"`
	Remaining  int                      `json:"remaining"`
	ByCategory map[parsing.Category]int `json:"byCategory"`
	Entries    int                      `json:"entries"`
}

// Summarize totals after-tax spending for entries between from and to,
// inclusive. Empty bounds leave that side open; dates are canonical
// YYYY-MM-DD strings, so plain string comparison orders them.
func Summarize(state State, from, to string) Summary {
	summary := Summary{
		MonthKey:   state.MonthKey,
		Budget:     state.BudgetInit,
		ByCategory: make(map[parsing.Category]int),
	}
	for _, c := range parsing.Categories() {
		summary.ByCategory[c] = 0
	}

	for i := range state.Entries {
		entry := &state.Entries[i]
		if from != "" && entry.Date < from {
			continue
		}
		if to != "" && entry.Date > to {
			continue
		}
		summary.Entries++
		for _, item := range entry.Items {
			summary.Spent += item.PriceAfterTax
			summary.ByCategory[item.Category] += item.PriceAfterTax
		}
	}

	summary.Remaining = summary.Budget - summary.Spent
	return summary
}
