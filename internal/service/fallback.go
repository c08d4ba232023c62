package service

import (
	"strings"

	"github.com/tastemap/backend/internal/types"
)

// Sentiment labels produced by the classifier.
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

const fallbackConfidence = 0.7

var positiveKeywords = []string{
	"good", "great", "love", "delicious", "tasty",
	"amazing", "excellent", "enjoy", "best", "favorite",
}

var negativeKeywords = []string{
	"bad", "awful", "terrible", "worst", "dislike",
	"hate", "disgusting", "disappointed", "poor", "mediocre",
}

// FallbackSentiment classifies feedback text by counting lexicon hits.
// Ties resolve to NEUTRAL. Pure function of its input.
func FallbackSentiment(text string) types.SentimentResult {
	lower := strings.ToLower(text)

	var positive, negative int
	for _, word := range positiveKeywords {
		if strings.Contains(lower, word) {
			positive++
		}
	}
	for _, word := range negativeKeywords {
		if strings.Contains(lower, word) {
			negative++
		}
	}

	label := SentimentNeutral
	switch {
	case positive > negative:
		label = SentimentPositive
	case negative > positive:
		label = SentimentNegative
	}
	return types.SentimentResult{Sentiment: label, Confidence: fallbackConfidence, Details: []string{}}
}

// attributeCategories are the candidate labels sent to the zero-shot
// provider and used by the keyword fallback.
var attributeCategories = []string{
	"spicy", "sweet", "savory", "healthy", "comfort food",
	"light", "rich", "exotic", "traditional",
}

// attributeDisplay maps a raw category to the phrase shown to users when
// the provider classification succeeds.
var attributeDisplay = map[string]string{
	"spicy":        "Spicy & Aromatic",
	"sweet":        "Sweet & Indulgent",
	"savory":       "Rich & Savory",
	"healthy":      "Nutritious & Healthy",
	"comfort food": "Comforting & Satisfying",
	"light":        "Light & Fresh",
	"rich":         "Rich & Flavorful",
	"exotic":       "Exotic & Unique",
	"traditional":  "Traditional & Authentic",
}

// Slices rather than maps so the fallback scans in a fixed order and the
// result is deterministic for identical inputs.
var attributeKeywords = []struct {
	category string
	terms    []string
}{
	{"spicy", []string{"spicy", "hot", "chili", "pepper", "jalapeno", "sriracha", "curry", "spice"}},
	{"sweet", []string{"sweet", "sugar", "honey", "dessert", "caramel", "chocolate", "fruit", "maple"}},
	{"savory", []string{"savory", "umami", "rich", "meaty", "broth", "earthy", "hearty"}},
	{"healthy", []string{"healthy", "nutritious", "vitamin", "lean", "protein", "fresh", "light", "vegetable"}},
	{"comfort food", []string{"comfort", "hearty", "filling", "homestyle", "classic", "traditional", "warm"}},
	{"light", []string{"light", "fresh", "crisp", "delicate", "subtle", "clean", "refreshing"}},
	{"rich", []string{"rich", "creamy", "indulgent", "buttery", "cheesy", "decadent", "velvety"}},
	{"exotic", []string{"exotic", "unique", "special", "rare", "unusual", "fusion"}},
	{"traditional", []string{"traditional", "authentic", "classic", "original", "heritage", "old-fashioned"}},
}

var cuisineAttributes = []struct {
	cuisine    string
	attributes []string
}{
	{"italian", []string{"savory", "rich", "traditional"}},
	{"indian", []string{"spicy", "rich", "exotic"}},
	{"mexican", []string{"spicy", "savory", "traditional"}},
	{"thai", []string{"spicy", "sweet", "exotic"}},
	{"chinese", []string{"savory", "umami", "traditional"}},
	{"japanese", []string{"light", "delicate", "traditional"}},
	{"vegan", []string{"healthy", "fresh", "light"}},
}

var dishNameAttributes = []struct {
	term       string
	attributes []string
}{
	{"pizza", []string{"savory", "comfort food"}},
	{"soup", []string{"comforting", "warm"}},
	{"salad", []string{"fresh", "healthy", "light"}},
	{"curry", []string{"spicy", "rich", "exotic"}},
	{"pasta", []string{"savory", "comfort food"}},
	{"spaghetti", []string{"savory", "comfort food"}},
	{"dessert", []string{"sweet", "indulgent"}},
	{"cake", []string{"sweet", "indulgent"}},
	{"sweet", []string{"sweet", "indulgent"}},
}

const maxAttributes = 3

// FallbackAttributes derives up to three attribute phrases from a dish
// name and description using the keyword-category table plus cuisine and
// dish-name heuristics. Deduplicated in first-seen order, with a generic
// last resort so the result is never empty.
func FallbackAttributes(name, description string) []string {
	text := strings.ToLower(name + ": " + description)

	var attrs []string
	seen := make(map[string]struct{})
	add := func(a string) {
		if _, ok := seen[a]; !ok {
			seen[a] = struct{}{}
			attrs = append(attrs, a)
		}
	}

	for _, ca := range cuisineAttributes {
		if strings.Contains(text, ca.cuisine) {
			for _, a := range ca.attributes {
				add(a)
			}
		}
	}
	for _, kw := range attributeKeywords {
		for _, term := range kw.terms {
			if strings.Contains(text, term) {
				add(kw.category)
				break
			}
		}
	}
	lowerName := strings.ToLower(name)
	for _, da := range dishNameAttributes {
		if strings.Contains(lowerName, da.term) {
			for _, a := range da.attributes {
				add(a)
			}
		}
	}

	if len(attrs) > maxAttributes {
		attrs = attrs[:maxAttributes]
	}
	if len(attrs) > 0 {
		return attrs
	}

	// Last resort: two generic attributes keyed off the dish name.
	switch {
	case strings.Contains(lowerName, "chicken"), strings.Contains(lowerName, "beef"), strings.Contains(lowerName, "pork"):
		return []string{"savory", "traditional"}
	case strings.Contains(lowerName, "vegetable"), strings.Contains(lowerName, "vegan"):
		return []string{"healthy", "fresh"}
	default:
		return []string{"tasty", "flavorful"}
	}
}

// dishDescriptions are last-resort texts for well-known dishes; {cuisine}
// is replaced with the restaurant's cuisine.
var dishDescriptions = map[string]string{
	"Margherita Pizza":     "A classic {cuisine} pizza topped with fresh tomatoes, mozzarella, basil, and a drizzle of olive oil. Simple yet delicious!",
	"Spaghetti Carbonara":  "A rich {cuisine} pasta dish made with eggs, cheese, pancetta, and black pepper. Creamy and satisfying!",
	"Lasagna":              "Layers of pasta, rich meat sauce, and creamy cheese make this {cuisine} classic a hearty favorite.",
	"Tiramisu":             "A delightful {cuisine} dessert with layers of coffee-soaked ladyfingers and mascarpone cream.",
	"Chicken Tikka Masala": "Tender chicken in a creamy, aromatic {cuisine} sauce with a blend of warming spices.",
	"Vegetable Biryani":    "Fragrant basmati rice cooked with mixed vegetables and {cuisine} spices for a flavorful experience.",
	"Butter Chicken":       "A rich and creamy {cuisine} curry with tender chicken pieces in a tomato-based sauce.",
	"Chana Masala":         "A robust {cuisine} chickpea curry with a blend of spices that create a deeply satisfying flavor.",
	"Carne Asada Taco":     "Grilled, marinated steak served in a soft tortilla with fresh toppings - a {cuisine} favorite.",
	"Veggie Burrito":       "A hearty {cuisine} wrap filled with seasoned beans, rice, and fresh vegetables.",
	"Pad Thai":             "Stir-fried rice noodles with a perfect balance of sweet, sour, and savory flavors - a {cuisine} classic.",
	"Green Curry":          "A fragrant {cuisine} curry with coconut milk, vegetables, and aromatic herbs and spices.",
}

var cuisineDescriptions = map[string]string{
	"Italian":  "A classic Italian dish with rich flavors and quality ingredients - a taste of authentic Italy.",
	"Indian":   "A flavorful Indian dish with aromatic spices and complex flavors that dance on your palate.",
	"Mexican":  "A vibrant Mexican dish combining fresh ingredients with bold, zesty flavors.",
	"Thai":     "A harmonious Thai dish balancing sweet, sour, salty, and spicy elements.",
	"Chinese":  "A well-crafted Chinese dish with layers of flavor and expert preparation techniques.",
	"Japanese": "A precise Japanese dish showcasing balance, freshness, and skilled craftsmanship.",
	"Vegan":    "A satisfying plant-based dish packed with nutrients and bright flavors.",
}

// FallbackDescription resolves a description for a dish: dish-name lookup
// first, then a cuisine-level text, then a fully generic sentence.
func FallbackDescription(dish, cuisine string) string {
	if tmpl, ok := dishDescriptions[dish]; ok {
		return strings.ReplaceAll(tmpl, "{cuisine}", cuisine)
	}
	if desc, ok := cuisineDescriptions[cuisine]; ok {
		return desc
	}
	return "A delicious " + cuisine + " dish with wonderful flavors and textures."
}
