package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateInput_Validate(t *testing.T) {
	valid := CandidateInput{Text: "Software engineer at Google", Role: "software_engineer"}
	assert.NoError(t, valid.Validate())

	empty := CandidateInput{Text: "", Role: "software_engineer"}
	assert.Error(t, empty.Validate())

	blank := CandidateInput{Text: "   \n\t  ", Role: "software_engineer"}
	assert.Error(t, blank.Validate())

	noRole := CandidateInput{Text: "some text"}
	assert.Error(t, noRole.Validate())
}

func TestRoleBenchmark_Validate(t *testing.T) {
	valid := RoleBenchmark{
		Role:               "software_engineer",
		EducationWeight:    0.15,
		ExperienceWeight:   0.35,
		SkillsWeight:       0.25,
		AchievementsWeight: 0.25,
		HireThreshold:      7.5,
		EliteThreshold:     8.5,
	}
	assert.NoError(t, valid.Validate())
}

func TestRoleBenchmark_Validate_WeightsSum(t *testing.T) {
	bad := RoleBenchmark{
		Role:               "software_engineer",
		EducationWeight:    0.5,
		ExperienceWeight:   0.5,
		SkillsWeight:       0.5,
		AchievementsWeight: 0.5,
		HireThreshold:      7.5,
		EliteThreshold:     8.5,
	}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum")
}

func TestRoleBenchmark_Validate_EliteBelowHire(t *testing.T) {
	bad := RoleBenchmark{
		Role:               "software_engineer",
		EducationWeight:    0.25,
		ExperienceWeight:   0.25,
		SkillsWeight:       0.25,
		AchievementsWeight: 0.25,
		HireThreshold:      8.0,
		EliteThreshold:     7.0,
	}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "elite_threshold")
}

func TestRoleBenchmark_Weight(t *testing.T) {
	b := RoleBenchmark{
		EducationWeight:    0.1,
		ExperienceWeight:   0.2,
		SkillsWeight:       0.3,
		AchievementsWeight: 0.4,
	}
	assert.Equal(t, 0.1, b.Weight(DimensionEducation))
	assert.Equal(t, 0.2, b.Weight(DimensionExperience))
	assert.Equal(t, 0.3, b.Weight(DimensionSkills))
	assert.Equal(t, 0.4, b.Weight(DimensionAchievements))
	assert.Equal(t, 0.0, b.Weight(Dimension("unknown")))
}

func TestEvaluationResult_MarshalJSON(t *testing.T) {
	r := &EvaluationResult{
		Overall: 8.4444,
		Dimensions: map[Dimension]DimensionScore{
			DimensionEducation:    {Dimension: DimensionEducation, Value: 9.5, Signals: []string{"MIT"}},
			DimensionExperience:   {Dimension: DimensionExperience, Value: 9.5, Signals: []string{"Google"}},
			DimensionSkills:       {Dimension: DimensionSkills, Value: 7.56},
			DimensionAchievements: {Dimension: DimensionAchievements, Value: 6.0},
		},
		Confidence:     85.25,
		Decision:       DecisionHire,
		Strengths:      []string{"Elite education: MIT"},
		ProcessingTime: 1234567 * time.Microsecond,
		Verified:       true,
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	// Flat record with rounded scores, never nested.
	assert.Equal(t, 8.4, got["overall"])
	assert.Equal(t, 9.5, got["education"])
	assert.Equal(t, 7.6, got["skills"])
	assert.Equal(t, 85.3, got["confidence"])
	assert.Equal(t, "HIRE", got["hire_decision"])
	assert.Equal(t, 1.235, got["processing_time"])
	assert.Equal(t, true, got["verified"])
	assert.NotContains(t, got, "dimensions")

	// Nil concerns serialize as an empty array, not null.
	assert.Equal(t, []any{}, got["concerns"])
	assert.Equal(t, []any{"Elite education: MIT"}, got["strengths"])

	// Zero-value flags are omitted.
	assert.NotContains(t, got, "role_defaulted")
	assert.NotContains(t, got, "rationale")
}

func TestEvaluationResult_Clone(t *testing.T) {
	orig := &EvaluationResult{
		Overall: 7.0,
		Dimensions: map[Dimension]DimensionScore{
			DimensionSkills: {Dimension: DimensionSkills, Value: 8.0, Signals: []string{"Python", "Go"}},
		},
		Strengths: []string{"Strong technical skills: Python, Go"},
		Concerns:  []string{"Limited demonstrated impact"},
	}

	clone := orig.Clone()
	require.NotSame(t, orig, clone)

	clone.Overall = 1.0
	clone.Strengths[0] = "mutated"
	clone.Concerns = append(clone.Concerns, "extra")
	s := clone.Dimensions[DimensionSkills]
	s.Signals[0] = "mutated"
	clone.Dimensions[DimensionSkills] = s

	assert.Equal(t, 7.0, orig.Overall)
	assert.Equal(t, "Strong technical skills: Python, Go", orig.Strengths[0])
	assert.Len(t, orig.Concerns, 1)
	assert.Equal(t, "Python", orig.Dimensions[DimensionSkills].Signals[0])
}

func TestEvaluationResult_MatchCount(t *testing.T) {
	r := &EvaluationResult{
		Dimensions: map[Dimension]DimensionScore{
			DimensionEducation:  {Signals: []string{"MIT"}},
			DimensionExperience: {Signals: []string{"Google", "Stripe"}},
			DimensionSkills:     {},
		},
	}
	assert.Equal(t, 3, r.MatchCount())
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 8.4, Round1(8.44))
	assert.Equal(t, 8.5, Round1(8.46))
	assert.Equal(t, 0.0, Round1(0.04))
	assert.Equal(t, 10.0, Round1(9.96))
}

func TestBatchResult_MarshalJSON(t *testing.T) {
	ok := BatchResult{ID: "cand-1", Result: &EvaluationResult{Decision: DecisionMaybe}}
	data, err := json.Marshal(ok)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"identifier":"cand-1"`)
	assert.Contains(t, string(data), `"result"`)
	assert.NotContains(t, string(data), `"error"`)

	failed := BatchResult{ID: "cand-2", Err: assert.AnError}
	data, err = json.Marshal(failed)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"identifier":"cand-2"`)
	assert.Contains(t, string(data), `"error"`)
	assert.NotContains(t, string(data), `"result"`)
}
