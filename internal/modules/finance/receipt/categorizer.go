package receipt

import (
	"regexp"
	"strings"

	"github.com/rachitgupta/fintrack-be/internal/modules/finance/models"
)

// CategoryOther is the fallback when nothing matches.
const CategoryOther = "Other"

// categoryRule pairs a category with its keyword pattern. Rules are checked
// in order and the first match wins, so a blob matching both a Food keyword
// and a Shopping keyword resolves to Food & Dining. Do not reorder.
type categoryRule struct {
	category string
	pattern  *regexp.Regexp
}

var categoryRules = []categoryRule{
	{"Food & Dining", regexp.MustCompile(`restaurant|cafe|coffee|food|pizza|burger|kitchen|dining|meal|lunch|dinner|breakfast`)},
	{"Groceries", regexp.MustCompile(`grocery|supermarket|market|store|shop|mart|fresh|vegetables|fruits|milk|bread`)},
	{"Transportation", regexp.MustCompile(`gas|fuel|petrol|diesel|uber|taxi|bus|train|metro|transport|parking`)},
	{"Shopping", regexp.MustCompile(`mall|shopping|retail|clothes|fashion|electronics|amazon|flipkart`)},
	{"Healthcare", regexp.MustCompile(`pharmacy|medical|hospital|clinic|doctor|medicine|health`)},
	{"Entertainment", regexp.MustCompile(`movie|cinema|theater|entertainment|game|sports|gym|fitness`)},
	{"Utilities", regexp.MustCompile(`electric|electricity|water|gas|internet|phone|mobile|utility`)},
}

// Categorize assigns one category from the fixed taxonomy by keyword
// matching against the merchant name and item names.
func Categorize(merchant *string, items []models.ReceiptItem) string {
	merchantText := ""
	if merchant != nil {
		merchantText = *merchant
	}

	if merchantText == "" && len(items) == 0 {
		return CategoryOther
	}

	names := make([]string, len(items))
	for i, item := range items {
		names[i] = strings.ToLower(item.Name)
	}
	blob := strings.ToLower(merchantText) + " " + strings.Join(names, " ")

	for _, rule := range categoryRules {
		if rule.pattern.MatchString(blob) {
			return rule.category
		}
	}
	return CategoryOther
}
