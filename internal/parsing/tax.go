package parsing

import "github.com/shopspring/decimal"

// TaxRate is the consumption tax applied to every parsed price.
const TaxRate = 0.08

var taxMultiplier = decimal.NewFromFloat(1 + TaxRate)

// ApplyTax returns price with consumption tax added, rounded half-up to the
// nearest whole yen. Decimal arithmetic keeps 150 * 1.08 at exactly 162
// where float64 would drift.
func ApplyTax(price float64) int {
	taxed := decimal.NewFromFloat(price).Mul(taxMultiplier)
	return int(taxed.Round(0).IntPart())
}
