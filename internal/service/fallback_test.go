package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackSentiment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"positive keywords win", "The food was great and I love the service", SentimentPositive},
		{"negative keywords win", "Terrible experience, the worst meal I have had", SentimentNegative},
		{"no keywords", "We ordered the set menu on a Tuesday", SentimentNeutral},
		{"tie resolves to neutral", "The pasta was good but the service was bad", SentimentNeutral},
		{"case insensitive", "ABSOLUTELY DELICIOUS", SentimentPositive},
		{"enthusiastic review", "This was absolutely delicious and amazing", SentimentPositive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FallbackSentiment(tt.text)
			assert.Equal(t, tt.want, result.Sentiment)
			assert.Equal(t, fallbackConfidence, result.Confidence)
			assert.NotNil(t, result.Details)
		})
	}
}

func TestFallbackSentimentDeterministic(t *testing.T) {
	text := "I really enjoy the spicy noodles here"
	first := FallbackSentiment(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, FallbackSentiment(text))
	}
}

func TestFallbackAttributes(t *testing.T) {
	t.Run("never empty", func(t *testing.T) {
		attrs := FallbackAttributes("Mystery Plate", "")
		assert.NotEmpty(t, attrs)
	})

	t.Run("at most three", func(t *testing.T) {
		attrs := FallbackAttributes("Spicy Sweet Chicken Curry", "rich creamy exotic traditional indian comfort dish")
		assert.LessOrEqual(t, len(attrs), maxAttributes)
	})

	t.Run("no duplicates", func(t *testing.T) {
		attrs := FallbackAttributes("Thai Green Curry", "spicy thai curry with sweet coconut")
		seen := map[string]bool{}
		for _, a := range attrs {
			assert.False(t, seen[a], "duplicate attribute %q", a)
			seen[a] = true
		}
	})

	t.Run("spicy curry", func(t *testing.T) {
		attrs := FallbackAttributes("Spicy Thai Curry", "a hot curry with coconut milk")
		assert.Contains(t, attrs, "spicy")
		assert.Contains(t, attrs, "exotic")
	})

	t.Run("cuisine heuristic", func(t *testing.T) {
		attrs := FallbackAttributes("House Special", "an italian favorite")
		assert.Contains(t, attrs, "savory")
	})

	t.Run("dish name heuristic", func(t *testing.T) {
		attrs := FallbackAttributes("Garden Salad", "leaves and dressing")
		assert.Contains(t, attrs, "fresh")
	})

	t.Run("generic meat fallback", func(t *testing.T) {
		assert.Equal(t, []string{"savory", "traditional"}, FallbackAttributes("Roast Beef", ""))
	})

	t.Run("generic default fallback", func(t *testing.T) {
		assert.Equal(t, []string{"tasty", "flavorful"}, FallbackAttributes("Zorblat", ""))
	})

	t.Run("deterministic", func(t *testing.T) {
		first := FallbackAttributes("Pad Thai", "stir-fried noodles")
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, FallbackAttributes("Pad Thai", "stir-fried noodles"))
		}
	})
}

func TestFallbackDescription(t *testing.T) {
	t.Run("known dish template", func(t *testing.T) {
		desc := FallbackDescription("Margherita Pizza", "Italian")
		assert.Contains(t, desc, "Italian")
		assert.Contains(t, desc, "mozzarella")
	})

	t.Run("known cuisine", func(t *testing.T) {
		desc := FallbackDescription("Unknown Special", "Thai")
		assert.Contains(t, desc, "Thai")
	})

	t.Run("generic last resort", func(t *testing.T) {
		desc := FallbackDescription("Unknown Special", "Klingon")
		assert.Equal(t, "A delicious Klingon dish with wonderful flavors and textures.", desc)
	})
}
