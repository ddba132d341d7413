package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/fitscore/internal/types"
)

// Narrative thresholds. A dimension scoring at or above its strength bar
// produces a strength line; below the concern bar, a concern line.
const (
	strengthBar            = 8.0
	concernBar             = 6.0
	achievementStrengthBar = 7.0
	achievementConcernBar  = 4.0

	maxStrengths = 3
	maxConcerns  = 2
)

// BuildNarrative produces the ordered strengths and concerns lists for a
// scored profile. Output order follows the canonical dimension order so the
// narrative is deterministic.
func BuildNarrative(scores map[types.Dimension]types.DimensionScore) (strengths, concerns []string) {
	edu := scores[types.DimensionEducation]
	exp := scores[types.DimensionExperience]
	skl := scores[types.DimensionSkills]
	ach := scores[types.DimensionAchievements]

	if edu.Value >= strengthBar {
		strengths = append(strengths, fmt.Sprintf("Elite education: %s", joinSignals(edu.Signals, 2)))
	} else if edu.Value < concernBar {
		concerns = append(concerns, "Education background below expectations")
	}

	if exp.Value >= strengthBar {
		strengths = append(strengths, fmt.Sprintf("Top-tier experience: %s", joinSignals(exp.Signals, 2)))
	} else if exp.Value < concernBar {
		concerns = append(concerns, "Limited relevant experience")
	}

	if skl.Value >= strengthBar {
		strengths = append(strengths, fmt.Sprintf("Strong technical skills: %s", joinSignals(skl.Signals, 3)))
	} else if skl.Value < concernBar {
		concerns = append(concerns, "Missing key technical skills")
	}

	if ach.Value >= achievementStrengthBar {
		strengths = append(strengths, fmt.Sprintf("Notable achievements: %s", joinSignals(ach.Signals, 2)))
	} else if ach.Value < achievementConcernBar {
		concerns = append(concerns, "Limited demonstrated impact")
	}

	if len(strengths) > maxStrengths {
		strengths = strengths[:maxStrengths]
	}
	if len(concerns) > maxConcerns {
		concerns = concerns[:maxConcerns]
	}
	return strengths, concerns
}

func joinSignals(signals []string, limit int) string {
	if len(signals) > limit {
		signals = signals[:limit]
	}
	return strings.Join(signals, ", ")
}
