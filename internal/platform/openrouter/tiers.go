package openrouter

import (
	"fmt"

	"github.com/studyforge/studyforge-backend/internal/types"
)

// Tier names a quality/speed tradeoff. Each tier maps to one fixed
// upstream model identifier; unknown tiers are rejected rather than
// silently substituted.
type Tier string

const (
	TierFast     Tier = "fast"
	TierBalanced Tier = "balanced"
	TierDetailed Tier = "detailed"
)

var tierModels = map[Tier]string{
	TierFast:     "mistralai/mistral-7b-instruct:free",
	TierBalanced: "google/gemma-7b-it:free",
	TierDetailed: "nousresearch/nous-hermes-2-mixtral-8x7b-dpo:free",
}

// ParseTier resolves a tier name. The empty string means the caller has
// no preference and gets the balanced tier.
func ParseTier(s string) (Tier, error) {
	if s == "" {
		return TierBalanced, nil
	}
	t := Tier(s)
	if _, ok := tierModels[t]; !ok {
		return "", fmt.Errorf("unknown model tier %q", s)
	}
	return t, nil
}

// Model returns the upstream model identifier for the tier.
func (t Tier) Model() string {
	return tierModels[t]
}

// Catalog describes the available tiers for the models endpoint.
func Catalog() map[string]types.ModelInfo {
	return map[string]types.ModelInfo{
		string(TierFast): {
			Name:        tierModels[TierFast],
			Description: "Fast and responsive, excellent for quick generation",
			BestFor:     "Quick notes and basic content",
		},
		string(TierBalanced): {
			Name:        tierModels[TierBalanced],
			Description: "High-quality text generation with good coherence",
			BestFor:     "Detailed notes and MCQ explanations",
		},
		string(TierDetailed): {
			Name:        tierModels[TierDetailed],
			Description: "Comprehensive and detailed content generation",
			BestFor:     "Complex topics requiring deeper understanding",
		},
	}
}
