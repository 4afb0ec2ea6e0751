package parsing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// PlaceholderName stands in for items whose line held nothing but a price.
const PlaceholderName = "品名不明"

// noisePatterns mark lines that are receipt plumbing rather than purchases:
// subtotals and totals, tax lines, points, change and tendered amounts,
// register/store/phone metadata, receipt headers, barcode / item-number /
// slip labels, and quantity rows. ASCII words match case-insensitively.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`小計|合計|総計|お会計`),
	regexp.MustCompile(`消費税|内税|外税|税込|税抜|税額`),
	regexp.MustCompile(`ポイント|お釣り|おつり|釣銭|お預り|お預かり|現金|クレジット`),
	regexp.MustCompile(`レジ|店|電話|領収|レシート`),
	regexp.MustCompile(`バーコード|商品番号|伝票|数量|点数`),
	regexp.MustCompile(`(?i)\b(subtotal|total|sum|tax|change|point|points|register|store|phone|tel|receipt|barcode|item\s*no|slip|quantity|qty)\b`),
}

// priceToken matches a whitespace-separated token that looks like a price:
// digits, an optional decimal part, an optional trailing yen marker.
var priceToken = regexp.MustCompile(`^(\d+(?:\.\d+)?)円?$`)

// Item is a name/price pair lifted from one accepted receipt line.
type Item struct {
	Name  string
	Price float64
}

// ExtractItems walks normalized lines and keeps those that look like
// purchases. The rightmost token matching the price shape is the price
// (receipts put prices at line end) and the remaining tokens, joined by
// single spaces, become the name. A line is skipped when it matches a noise
// pattern, carries no price token, or its price is not a finite number
// greater than zero. A price-only line gets the placeholder name. No deeper
// disambiguation is attempted: a quantity or date that happens to sit last
// on an otherwise clean line will be read as a price, and human review of
// the draft is the backstop.
func ExtractItems(lines []string) []Item {
	var items []Item
	for _, line := range lines {
		if isNoise(line) {
			continue
		}

		tokens := strings.Fields(line)
		idx := -1
		for i := len(tokens) - 1; i >= 0; i-- {
			if priceToken.MatchString(tokens[i]) {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}

		m := priceToken.FindStringSubmatch(tokens[idx])
		price, err := strconv.ParseFloat(m[1], 64)
		if err != nil || math.IsInf(price, 0) || price <= 0 {
			continue
		}

		rest := make([]string, 0, len(tokens)-1)
		rest = append(rest, tokens[:idx]...)
		rest = append(rest, tokens[idx+1:]...)
		name := strings.Join(rest, " ")
		if name == "" {
			name = PlaceholderName
		}

		items = append(items, Item{Name: name, Price: price})
	}
	return items
}

func isNoise(line string) bool {
	for _, re := range noisePatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
