package parsing

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrInvalidPrice    = errors.New("price must be greater than zero")
	ErrUnknownCategory = errors.New("unknown category")
)

// LineItem is one purchase on a receipt, priced before and after tax. The
// after-tax price is derived at creation and on reprice, but stays a plain
// field so a hand edit can diverge from the derivation.
type LineItem struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Category           Category `json:"category"`
	PriceBeforeTax     float64  `json:"priceBeforeTax"`
	PriceAfterTax      int      `json:"priceAfterTax"`
	CategoryOverridden bool     `json:"categoryOverridden"`
}

// Rename replaces the item name and re-derives the category from the new
// name, unless the category was set by hand. A blank name falls back to the
// placeholder.
func (li *LineItem) Rename(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = PlaceholderName
	}
	li.Name = name
	if !li.CategoryOverridden {
		li.Category = Classify(name)
	}
}

// Reprice replaces the before-tax price and recomputes the after-tax price.
func (li *LineItem) Reprice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return ErrInvalidPrice
	}
	li.PriceBeforeTax = price
	li.PriceAfterTax = ApplyTax(price)
	return nil
}

// SetCategory pins the category by hand. Subsequent renames will no longer
// re-derive it.
func (li *LineItem) SetCategory(c Category) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	li.Category = c
	li.CategoryOverridden = true
	return nil
}

// Savable reports whether the item is fit to persist.
func (li *LineItem) Savable() error {
	if strings.TrimSpace(li.Name) == "" {
		return errors.New("line item needs a name")
	}
	if li.PriceBeforeTax <= 0 {
		return ErrInvalidPrice
	}
	if !li.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, li.Category)
	}
	return nil
}

// Draft is a parsed receipt awaiting review: the purchase date and the line
// items lifted from the text.
type Draft struct {
	Date  string     `json:"date"`
	Items []LineItem `json:"items"`
}
