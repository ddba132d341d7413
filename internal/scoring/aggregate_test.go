package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/fitscore/internal/types"
)

func testBenchmark() types.RoleBenchmark {
	return types.RoleBenchmark{
		Role:               "software_engineer",
		EducationWeight:    0.15,
		ExperienceWeight:   0.35,
		SkillsWeight:       0.25,
		AchievementsWeight: 0.25,
		HireThreshold:      7.5,
		EliteThreshold:     8.5,
	}
}

func dimScores(edu, exp, skl, ach float64) map[types.Dimension]types.DimensionScore {
	return map[types.Dimension]types.DimensionScore{
		types.DimensionEducation:    {Dimension: types.DimensionEducation, Value: edu},
		types.DimensionExperience:   {Dimension: types.DimensionExperience, Value: exp},
		types.DimensionSkills:       {Dimension: types.DimensionSkills, Value: skl},
		types.DimensionAchievements: {Dimension: types.DimensionAchievements, Value: ach},
	}
}

func TestAggregate_WeightedSum(t *testing.T) {
	overall := Aggregate(dimScores(10, 10, 10, 10), testBenchmark())
	assert.InDelta(t, 10.0, overall, 1e-9)

	overall = Aggregate(dimScores(0, 0, 0, 0), testBenchmark())
	assert.Equal(t, 0.0, overall)

	// 8*0.15 + 6*0.35 + 4*0.25 + 2*0.25 = 4.8
	overall = Aggregate(dimScores(8, 6, 4, 2), testBenchmark())
	assert.InDelta(t, 4.8, overall, 1e-9)
}

func TestAggregate_MissingDimensionCountsZero(t *testing.T) {
	scores := map[types.Dimension]types.DimensionScore{
		types.DimensionExperience: {Dimension: types.DimensionExperience, Value: 10},
	}
	overall := Aggregate(scores, testBenchmark())
	assert.InDelta(t, 3.5, overall, 1e-9)
}

func TestAggregate_KeepsFullPrecision(t *testing.T) {
	// 9.5*0.15 + 9.3*0.35 + 7.2*0.25 + 6.1*0.25 = 8.005
	overall := Aggregate(dimScores(9.5, 9.3, 7.2, 6.1), testBenchmark())
	assert.InDelta(t, 8.005, overall, 1e-9)
	assert.NotEqual(t, types.Round1(overall), overall)
}
