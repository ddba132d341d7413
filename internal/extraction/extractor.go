// Package extraction scans candidate text against the signal catalog and
// produces per-dimension sub-scores. Extraction is pure and deterministic:
// identical text yields identical matches regardless of invocation order.
package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/fitscore/internal/catalog"
	"github.com/jonathan/fitscore/internal/types"
)

// Baseline scores awarded when no elite signal matched but the text still
// shows a generic qualification.
const (
	baselineEducationScore  = 5.0
	baselineExperienceScore = 5.0
)

// Tenure bonuses layered on top of the experience dimension.
const (
	seniorTenureYears  = 10
	seniorTenureBonus  = 1.0
	midTenureYears     = 5
	midTenureBonus     = 0.5
)

var (
	tenureRe  = regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s+(?:of\s+)?experience`)
	degreeRe  = regexp.MustCompile(`(?i)\b(degree|bachelor|master|phd|bs|ms|mba)\b`)
	anyRoleRe = regexp.MustCompile(`(?i)\b(engineer|developer|manager|analyst|consultant)\b`)
)

// Extractor evaluates signal categories against candidate text. It holds only
// the immutable catalog, so a single extractor is safe for concurrent use.
type Extractor struct {
	catalog *catalog.Catalog
}

// New returns an extractor backed by the given catalog.
func New(c *catalog.Catalog) *Extractor {
	return &Extractor{catalog: c}
}

// Extract scores every dimension of the candidate text for the given role.
// Dimensions with no matching category score zero; that is a valid result,
// not an error. Each dimension is evaluated independently and in parallel;
// there is no shared mutable state between them.
func (e *Extractor) Extract(text, role string) map[types.Dimension]types.DimensionScore {
	dims := types.Dimensions()
	results := make([]types.DimensionScore, len(dims))

	var g errgroup.Group
	for i, d := range dims {
		g.Go(func() error {
			results[i] = e.extractDimension(text, role, d)
			return nil
		})
	}
	// Workers never return errors; Wait is only a join point.
	_ = g.Wait()

	out := make(map[types.Dimension]types.DimensionScore, len(dims))
	for i, d := range dims {
		out[d] = results[i]
	}
	return out
}

// extractDimension computes one dimension's score. Non-additive categories
// compete and the highest matched tier wins; additive categories each
// contribute their base score once and sum, capped at the score ceiling.
func (e *Extractor) extractDimension(text, role string, d types.Dimension) types.DimensionScore {
	score := types.DimensionScore{Dimension: d}

	var tierScore, additiveScore float64
	for _, cat := range e.catalog.ForDimension(d, role) {
		matches := cat.Match(text)
		if len(matches) == 0 {
			continue
		}
		if cat.Additive {
			additiveScore += cat.Score
		} else if cat.Score > tierScore {
			tierScore = cat.Score
		}
		score.Signals = append(score.Signals, matches...)
	}
	score.Value = tierScore + additiveScore

	switch d {
	case types.DimensionEducation:
		if len(score.Signals) == 0 && degreeRe.MatchString(text) {
			score.Value = baselineEducationScore
			score.Signals = []string{"General degree"}
		}
	case types.DimensionExperience:
		score.Value += tenureBonus(text)
		if len(score.Signals) == 0 && anyRoleRe.MatchString(text) {
			if score.Value < baselineExperienceScore {
				score.Value = baselineExperienceScore
			}
			score.Signals = []string{"General experience"}
		}
	}

	score.Value = clampScore(score.Value)
	return score
}

// tenureBonus rewards stated years of experience: +1.0 for ten or more,
// +0.5 for five or more. The highest stated figure wins.
func tenureBonus(text string) float64 {
	maxYears := 0
	for _, m := range tenureRe.FindAllStringSubmatch(text, -1) {
		years, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if years > maxYears {
			maxYears = years
		}
	}
	switch {
	case maxYears >= seniorTenureYears:
		return seniorTenureBonus
	case maxYears >= midTenureYears:
		return midTenureBonus
	default:
		return 0
	}
}

func clampScore(v float64) float64 {
	if v < types.MinScore {
		return types.MinScore
	}
	if v > types.MaxScore {
		return types.MaxScore
	}
	return v
}

// NormalizeText canonicalizes candidate text for fingerprinting: collapsed
// whitespace, trimmed. Matching itself runs on the raw text so signal names
// keep their original casing.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
