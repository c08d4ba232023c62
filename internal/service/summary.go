package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tastemap/backend/internal/models"
	"github.com/tastemap/backend/internal/types"
)

const (
	insightHighThreshold = 0.6
	insightLowThreshold  = 0.4
	recentInteractions   = 5
)

// SummaryService projects a stored user context into a readable summary.
type SummaryService struct {
	contexts IContextService
}

// NewSummaryService creates a new SummaryService instance
func NewSummaryService(contexts IContextService) *SummaryService {
	return &SummaryService{contexts: contexts}
}

// Summarize returns the explicit preferences, inferred scores, recent
// interactions and natural-language insights for one user.
func (s *SummaryService) Summarize(ctx context.Context, userID string) (*types.ContextSummary, error) {
	uc, err := s.contexts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent := uc.Interactions
	if len(recent) > recentInteractions {
		recent = recent[len(recent)-recentInteractions:]
	}

	age := "new user"
	if len(uc.Interactions) > 0 {
		age = fmt.Sprintf("%d interactions recorded", len(uc.Interactions))
	}

	return &types.ContextSummary{
		UserID: userID,
		ExplicitPreferences: types.ExplicitPreferences{
			DietaryRestrictions: uc.DietaryRestrictions,
			CuisinePreferences:  uc.CuisinePreferences,
			SpiceLevel:          uc.SpiceLevel,
			Budget:              uc.Budget,
		},
		InferredPreferences: uc.Tastes(),
		RecentInteractions:  recent,
		ContextAge:          age,
		PreferenceInsights:  BuildInsights(uc),
	}, nil
}

// BuildInsights renders a user context as natural-language statements.
// A context with nothing to say yields onboarding guidance instead of an
// empty list.
func BuildInsights(uc *models.UserContext) []string {
	var insights []string

	for _, cuisine := range uc.CuisinePreferences {
		insights = append(insights, fmt.Sprintf("You selected %s cuisine as a preference", cuisine))
	}
	for _, diet := range uc.DietaryRestrictions {
		insights = append(insights, fmt.Sprintf("You follow a %s diet", diet))
	}
	if uc.SpiceLevel != "" {
		insights = append(insights, fmt.Sprintf("You prefer %s spice levels", strings.ToLower(uc.SpiceLevel)))
	}
	if uc.Budget != "" {
		insights = append(insights, fmt.Sprintf("You prefer %s restaurants", budgetPhrase(uc.Budget)))
	}

	tastes := uc.Tastes()
	keys := make([]string, 0, len(tastes))
	for key := range tastes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		score := tastes[key]
		switch {
		case score > insightHighThreshold:
			if name, ok := strings.CutPrefix(key, "cuisine_"); ok {
				insights = append(insights, fmt.Sprintf("Strong affinity for %s cuisine (%.2f)", titleCase(name), score))
			} else if name, ok := strings.CutPrefix(key, "prefers_"); ok {
				insights = append(insights, fmt.Sprintf("Enjoys %s dishes (%.2f)", titleCase(strings.ReplaceAll(name, "_", " ")), score))
			}
		case score < insightLowThreshold:
			if name, ok := strings.CutPrefix(key, "cuisine_"); ok {
				insights = append(insights, fmt.Sprintf("Low interest in %s cuisine (%.2f)", titleCase(name), score))
			} else if name, ok := strings.CutPrefix(key, "prefers_"); ok {
				insights = append(insights, fmt.Sprintf("Avoids %s dishes (%.2f)", titleCase(strings.ReplaceAll(name, "_", " ")), score))
			}
		}
	}

	if len(insights) == 0 {
		insights = []string{
			"Keep interacting with recommendations to build your taste profile",
			"Try liking or disliking more items to get personalized insights",
			"Your preferences are still being learned",
		}
	}
	return insights
}

func budgetPhrase(budget string) string {
	switch budget {
	case "$":
		return "budget-friendly"
	case "$$":
		return "moderately priced"
	default:
		return "premium"
	}
}

// titleCase capitalizes the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
