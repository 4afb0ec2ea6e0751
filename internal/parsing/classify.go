package parsing

import "regexp"

// Category is the spending bucket assigned to a line item.
type Category string

const (
	CategoryFood     Category = "食材"
	CategoryBeverage Category = "饮料"
	CategoryTobacco  Category = "香烟"
	CategoryOther    Category = "其他"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{CategoryFood, CategoryBeverage, CategoryTobacco, CategoryOther}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryBeverage, CategoryTobacco, CategoryOther:
		return true
	}
	return false
}

type categoryRule struct {
	category Category
	re       *regexp.Regexp
}

// categoryRules is checked in order and the first match wins, so an item
// naming both food and a drink ("コーヒーゼリー") lands in the earlier
// bucket. Keyword lists favor convenience-store receipts.
var categoryRules = []categoryRule{
	{CategoryFood, regexp.MustCompile(`おにぎり|おむすび|弁当|べんとう|サンドイッチ|サンド|パン|食パン|菓子|スナック|チョコ|アイス|カップ麺|ラーメン|うどん|そば|パスタ|米|肉|魚|野菜|果物|卵|たまご|チーズ|ヨーグルト|バター|豆腐|納豆|惣菜|サラダ|スープ|カレー|餃子|寿司|刺身|フード|食品|食材`)},
	{CategoryBeverage, regexp.MustCompile(`コーヒー|珈琲|カフェ|ラテ|紅茶|緑茶|抹茶|麦茶|お茶|ジュース|コーラ|サイダー|ソーダ|炭酸|水|ミネラルウォーター|牛乳|ミルク|ココア|ビール|酒|ワイン|チューハイ|ハイボール|焼酎|ウイスキー|飲料|ドリンク`)},
	{CategoryTobacco, regexp.MustCompile(`(?i)たばこ|タバコ|煙草|tobacco`)},
}

// Classify maps an item name to its category. Names matching no rule fall
// back to CategoryOther.
func Classify(name string) Category {
	for _, rule := range categoryRules {
		if rule.re.MatchString(name) {
			return rule.category
		}
	}
	return CategoryOther
}
