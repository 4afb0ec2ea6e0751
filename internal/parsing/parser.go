// Package parsing turns raw receipt text into classified, taxed line items.
// The pipeline is normalize, find a purchase date, extract priced lines,
// classify each by name, and add consumption tax.
package parsing

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator mints identifiers for new line items.
type IDGenerator interface {
	NewID() string
}

// Clock supplies the current time so tests can pin the date fallback.
type Clock interface {
	Now() time.Time
}

type uuidGenerator struct{}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Parser turns receipt text into a reviewable Draft.
type Parser struct {
	ids   IDGenerator
	clock Clock
}

// NewParser creates a Parser with UUID identifiers and the system clock.
func NewParser() *Parser {
	return NewParserWithDeps(uuidGenerator{}, systemClock{})
}

// NewParserWithDeps creates a Parser with explicit collaborators.
func NewParserWithDeps(ids IDGenerator, clock Clock) *Parser {
	return &Parser{
		ids:   ids,
		clock: clock,
	}
}

// Parse runs the full pipeline over raw receipt text. When no line carries a
// recognizable date the draft is dated today. Text with no priced lines
// yields a draft with no items, never an error.
func (p *Parser) Parse(text string) Draft {
	lines := Normalize(text)

	date, ok := ExtractDate(lines)
	if !ok {
		date = p.clock.Now().Format(DateLayout)
	}

	draft := Draft{Date: date}
	for _, item := range ExtractItems(lines) {
		draft.Items = append(draft.Items, p.newItem(item.Name, item.Price))
	}
	return draft
}

// NewItem builds a single classified, taxed line item, for entries added by
// hand rather than scanned.
func (p *Parser) NewItem(name string, price float64) LineItem {
	return p.newItem(name, price)
}

func (p *Parser) newItem(name string, price float64) LineItem {
	return LineItem{
		ID:             p.ids.NewID(),
		Name:           name,
		Category:       Classify(name),
		PriceBeforeTax: price,
		PriceAfterTax:  ApplyTax(price),
	}
}
