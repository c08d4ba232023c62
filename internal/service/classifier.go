package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/tastemap/backend/internal/pkg/logger"
	"github.com/tastemap/backend/internal/types"
)

// Classifier is the classification adapter: an optional external provider
// fronted by deterministic local fallbacks and a response cache. No call
// ever fails past this boundary; every provider error, timeout or
// malformed payload resolves to a fallback value.
type Classifier struct {
	provider ClassificationProvider // nil means fallback-only
	cache    ResponseCache
	log      *logger.Logger
}

// NewClassifier creates a new Classifier instance
func NewClassifier(provider ClassificationProvider, cache ResponseCache, log *logger.Logger) *Classifier {
	return &Classifier{provider: provider, cache: cache, log: log}
}

// cacheKey hashes the exact input tuple so distinct inputs never collide
// and identical inputs always hit.
func cacheKey(prefix string, parts ...string) string {
	h := sha256.New()
	for _, part := range parts {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return "classify:" + prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// GenerateDescription returns a 40-60 word description of a dish,
// personalized to the user's dietary restrictions.
func (c *Classifier) GenerateDescription(ctx context.Context, dish, cuisine string, dietary []string) string {
	key := cacheKey("desc", dish, cuisine, strings.Join(dietary, ","))
	if cached, ok := c.cache.Get(ctx, key); ok {
		return cached
	}

	if c.provider != nil {
		if text, err := c.provider.GenerateDescription(ctx, dish, cuisine, dietary); err == nil {
			c.cache.Set(ctx, key, text)
			return text
		} else {
			c.log.Warn("description generation failed, using fallback", "dish", dish, "error", err)
		}
	}

	text := FallbackDescription(dish, cuisine)
	c.cache.Set(ctx, key, text)
	return text
}

// ClassifySentiment labels feedback text as POSITIVE, NEGATIVE or NEUTRAL.
func (c *Classifier) ClassifySentiment(ctx context.Context, text string) types.SentimentResult {
	key := cacheKey("sentiment", text)
	if cached, ok := c.cache.Get(ctx, key); ok {
		var result types.SentimentResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return result
		}
	}

	var result types.SentimentResult
	if c.provider != nil {
		if res, err := c.provider.ClassifySentiment(ctx, text); err == nil {
			result = *res
		} else {
			c.log.Warn("sentiment classification failed, using keyword fallback", "error", err)
			result = FallbackSentiment(text)
		}
	} else {
		result = FallbackSentiment(text)
	}

	if data, err := json.Marshal(result); err == nil {
		c.cache.Set(ctx, key, string(data))
	}
	return result
}

// ClassifyAttributes returns up to three attribute phrases for a dish.
func (c *Classifier) ClassifyAttributes(ctx context.Context, name, description string) []string {
	key := cacheKey("attr", name, description)
	if cached, ok := c.cache.Get(ctx, key); ok {
		var attrs []string
		if err := json.Unmarshal([]byte(cached), &attrs); err == nil {
			return attrs
		}
	}

	var attrs []string
	if c.provider != nil {
		var err error
		if attrs, err = c.provider.ClassifyAttributes(ctx, name, description); err != nil {
			c.log.Warn("attribute classification failed, using keyword fallback", "dish", name, "error", err)
			attrs = nil
		}
	}
	if len(attrs) == 0 {
		attrs = FallbackAttributes(name, description)
	}

	if data, err := json.Marshal(attrs); err == nil {
		c.cache.Set(ctx, key, string(data))
	}
	return attrs
}
