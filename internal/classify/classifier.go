package classify

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"discount_etl/internal/domain"
)

// Rule maps a set of folded keywords onto a category. Lower Priority values
// are evaluated first.
type Rule struct {
	Priority int
	Category string
	IsFood   bool
	Keywords []string
	Words    []string
}

type Classifier struct {
	rules []Rule
}

// New returns a classifier over DefaultRules.
func New() *Classifier {
	return NewWithRules(DefaultRules)
}

func NewWithRules(rules []Rule) *Classifier {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})
	return &Classifier{rules: sorted}
}

// Classify trusts a native category when the offer has one and falls back to
// the keyword table otherwise.
func (c *Classifier) Classify(o domain.Offer) domain.Classification {
	if o.NativeCategory() {
		display := o.CategoryDisplay
		if display == "" {
			display = Display(o.Category)
		}
		_, food := FoodCategories[o.Category]
		return domain.Classification{
			Category: o.Category,
			Display:  display,
			IsFood:   food,
			Native:   true,
		}
	}

	if rule, ok := c.Match(o.ProductName); ok {
		return domain.Classification{
			Category: rule.Category,
			Display:  Display(rule.Category),
			IsFood:   rule.IsFood,
		}
	}

	return domain.Classification{
		Category: FallbackCategory,
		Display:  FallbackDisplay,
		IsFood:   true,
	}
}

// Match returns the first rule with a keyword matching the product name.
func (c *Classifier) Match(name string) (Rule, bool) {
	words := strings.FieldsFunc(Fold(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return Rule{}, false
	}

	for _, rule := range c.rules {
		if matches(rule, words) {
			return rule, true
		}
	}
	return Rule{}, false
}

func matches(rule Rule, words []string) bool {
	for _, w := range words {
		for _, kw := range rule.Keywords {
			if strings.HasPrefix(w, kw) {
				return true
			}
		}
		for _, exact := range rule.Words {
			if w == exact {
				return true
			}
		}
	}
	return false
}

// Display returns the display name of a category id, or the id itself.
func Display(category string) string {
	if d, ok := FoodCategories[category]; ok {
		return d
	}
	if d, ok := NonFoodCategories[category]; ok {
		return d
	}
	return category
}

// Fold lower-cases s and strips diacritics: "Čokoláda" becomes "cokolada".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
