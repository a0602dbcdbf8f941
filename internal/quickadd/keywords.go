package quickadd

import (
	"strings"

	"github.com/frahmantamala/finflow/internal/finance"
)

type keywordRule struct {
	slug     string
	keywords []string
}

// Order matters: the first rule whose category exists and whose keyword appears wins.
var keywordTable = []keywordRule{
	{slug: "food", keywords: []string{
		"food", "dinner", "lunch", "breakfast", "restaurant", "cafe", "coffee", "kfc",
		"mcdonald", "burger king", "pizza", "chipotle", "starbucks", "zomato", "swiggy",
	}},
	{slug: "transport", keywords: []string{"uber", "taxi", "fuel", "gas", "petrol", "bus", "train", "transport"}},
	{slug: "shopping", keywords: []string{"amazon", "shopping", "store", "mall", "target"}},
	{slug: "bills", keywords: []string{"bill", "utility", "electric", "water", "internet", "phone"}},
	{slug: "housing", keywords: []string{"rent", "housing", "apartment", "mortgage"}},
	{slug: "entertainment", keywords: []string{"movie", "netflix", "spotify", "game", "entertainment"}},
	{slug: "health", keywords: []string{"doctor", "hospital", "medicine", "health", "gym"}},
	{slug: "education", keywords: []string{"course", "education", "class", "tuition", "book"}},
	{slug: "travel", keywords: []string{"flight", "hotel", "trip", "travel"}},
}

// InferCategory picks a category slug for text from the keyword table, restricted to the
// categories the user has.
func InferCategory(text string, categories []finance.Category) string {
	lower := strings.ToLower(text)
	available := make(map[string]struct{}, len(categories))
	for _, cat := range categories {
		available[cat.Slug] = struct{}{}
	}

	for _, rule := range keywordTable {
		if _, ok := available[rule.slug]; !ok {
			continue
		}
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.slug
			}
		}
	}

	if _, ok := available[fallbackCategory]; ok {
		return fallbackCategory
	}
	if len(categories) > 0 {
		return categories[0].Slug
	}
	return fallbackCategory
}
