// Package types provides type definitions for structured data used throughout the fitscore system.
package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Dimension identifies one of the four scoring dimensions of a candidate profile.
type Dimension string

// Scoring dimensions, in presentation order.
const (
	DimensionEducation    Dimension = "education"
	DimensionExperience   Dimension = "experience"
	DimensionSkills       Dimension = "skills"
	DimensionAchievements Dimension = "achievements"
)

// Dimensions returns all scoring dimensions in canonical order.
func Dimensions() []Dimension {
	return []Dimension{DimensionEducation, DimensionExperience, DimensionSkills, DimensionAchievements}
}

// HireDecision is the terminal outcome of a candidate evaluation.
type HireDecision string

// Hire decisions, strongest first.
const (
	DecisionHire        HireDecision = "HIRE"
	DecisionStrongMaybe HireDecision = "STRONG_MAYBE"
	DecisionMaybe       HireDecision = "MAYBE"
	DecisionNoHire      HireDecision = "NO_HIRE"
)

// MinScore and MaxScore bound every dimension and overall score.
const (
	MinScore = 0.0
	MaxScore = 10.0
)

// Confidence bounds in percent.
const (
	MinConfidence = 0.0
	MaxConfidence = 100.0
)

// CandidateInput is the raw material for one evaluation. It is never mutated
// after creation.
type CandidateInput struct {
	Text string `json:"text" validate:"required"`
	Role string `json:"role" validate:"required"`
}

// Validate checks that the input carries usable candidate text.
// Whitespace-only text is rejected the same as empty text.
func (c *CandidateInput) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if strings.TrimSpace(c.Text) == "" {
		return fmt.Errorf("candidate text is blank")
	}
	return nil
}

// DimensionScore holds the score for a single dimension together with the
// signal names that produced it.
type DimensionScore struct {
	Dimension Dimension `json:"dimension"`
	Value     float64   `json:"value"`
	Signals   []string  `json:"signals,omitempty"`
}

// RoleBenchmark defines the scoring weights and decision thresholds for a role.
// Instances are immutable once loaded into the registry.
type RoleBenchmark struct {
	Role               string  `json:"role" validate:"required"`
	EducationWeight    float64 `json:"education_weight" validate:"gte=0,lte=1"`
	ExperienceWeight   float64 `json:"experience_weight" validate:"gte=0,lte=1"`
	SkillsWeight       float64 `json:"skills_weight" validate:"gte=0,lte=1"`
	AchievementsWeight float64 `json:"achievements_weight" validate:"gte=0,lte=1"`
	HireThreshold      float64 `json:"hire_threshold" validate:"gte=0,lte=10"`
	EliteThreshold     float64 `json:"elite_threshold" validate:"gte=0,lte=10"`
}

// weightSumTolerance absorbs float representation noise when checking that
// the four weights sum to exactly 1.0.
const weightSumTolerance = 1e-6

// Weight returns the weight assigned to the given dimension.
func (b RoleBenchmark) Weight(d Dimension) float64 {
	switch d {
	case DimensionEducation:
		return b.EducationWeight
	case DimensionExperience:
		return b.ExperienceWeight
	case DimensionSkills:
		return b.SkillsWeight
	case DimensionAchievements:
		return b.AchievementsWeight
	default:
		return 0
	}
}

// Validate checks the benchmark invariants. A benchmark that fails validation
// must never be loaded; registry construction fails fast instead.
func (b RoleBenchmark) Validate() error {
	validate := validator.New()
	if err := validate.Struct(b); err != nil {
		return err
	}
	sum := b.EducationWeight + b.ExperienceWeight + b.SkillsWeight + b.AchievementsWeight
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("benchmark %q: dimension weights sum to %.4f, want 1.0", b.Role, sum)
	}
	if b.EliteThreshold < b.HireThreshold {
		return fmt.Errorf("benchmark %q: elite_threshold %.2f below hire_threshold %.2f", b.Role, b.EliteThreshold, b.HireThreshold)
	}
	return nil
}

// EvaluationResult is the outcome of one candidate evaluation. It is created
// once per evaluation and immutable after construction; the cache hands out
// deep clones so a cached result can never be corrupted in place.
//
// Overall and the dimension values keep full precision internally; rounding
// to one decimal happens only at serialization so threshold comparisons never
// flap against the presented value.
type EvaluationResult struct {
	Overall        float64
	Dimensions     map[Dimension]DimensionScore
	Confidence     float64
	Decision       HireDecision
	Strengths      []string
	Concerns       []string
	ProcessingTime time.Duration
	Verified       bool
	RoleDefaulted  bool
	Rationale      string
}

// DimensionValue returns the score value for a dimension, zero if absent.
func (r *EvaluationResult) DimensionValue(d Dimension) float64 {
	if s, ok := r.Dimensions[d]; ok {
		return s.Value
	}
	return 0
}

// MatchCount returns the total number of matched signals across dimensions.
func (r *EvaluationResult) MatchCount() int {
	n := 0
	for _, s := range r.Dimensions {
		n += len(s.Signals)
	}
	return n
}

// Clone returns a deep copy of the result. Slices and maps are copied so the
// receiver stays immutable regardless of what the caller does with the copy.
func (r *EvaluationResult) Clone() *EvaluationResult {
	if r == nil {
		return nil
	}
	out := *r
	out.Dimensions = make(map[Dimension]DimensionScore, len(r.Dimensions))
	for d, s := range r.Dimensions {
		sc := s
		sc.Signals = append([]string(nil), s.Signals...)
		out.Dimensions[d] = sc
	}
	out.Strengths = append([]string(nil), r.Strengths...)
	out.Concerns = append([]string(nil), r.Concerns...)
	return &out
}

// Round1 rounds a score to one decimal place for presentation.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// flatResult is the serialized shape of an EvaluationResult: a flat record
// with rounded scores and processing time in seconds.
type flatResult struct {
	Overall        float64  `json:"overall"`
	Education      float64  `json:"education"`
	Experience     float64  `json:"experience"`
	Skills         float64  `json:"skills"`
	Achievements   float64  `json:"achievements"`
	Confidence     float64  `json:"confidence"`
	HireDecision   string   `json:"hire_decision"`
	Strengths      []string `json:"strengths"`
	Concerns       []string `json:"concerns"`
	ProcessingTime float64  `json:"processing_time"`
	Verified       bool     `json:"verified"`
	RoleDefaulted  bool     `json:"role_defaulted,omitempty"`
	Rationale      string   `json:"rationale,omitempty"`
}

// MarshalJSON serializes the result as a flat record. Scores are rounded to
// one decimal and processing time is reported in seconds.
func (r *EvaluationResult) MarshalJSON() ([]byte, error) {
	strengths := r.Strengths
	if strengths == nil {
		strengths = []string{}
	}
	concerns := r.Concerns
	if concerns == nil {
		concerns = []string{}
	}
	return json.Marshal(flatResult{
		Overall:        Round1(r.Overall),
		Education:      Round1(r.DimensionValue(DimensionEducation)),
		Experience:     Round1(r.DimensionValue(DimensionExperience)),
		Skills:         Round1(r.DimensionValue(DimensionSkills)),
		Achievements:   Round1(r.DimensionValue(DimensionAchievements)),
		Confidence:     Round1(r.Confidence),
		HireDecision:   string(r.Decision),
		Strengths:      strengths,
		Concerns:       concerns,
		ProcessingTime: math.Round(r.ProcessingTime.Seconds()*1000) / 1000,
		Verified:       r.Verified,
		RoleDefaulted:  r.RoleDefaulted,
		Rationale:      r.Rationale,
	})
}

// BatchItem is one candidate in a batch evaluation request.
type BatchItem struct {
	ID   string `json:"identifier"`
	Text string `json:"text"`
}

// BatchResult is one slot of a batch evaluation response. Exactly one of
// Result and Err is set.
type BatchResult struct {
	ID     string
	Result *EvaluationResult
	Err    error
}

// MarshalJSON serializes the slot as {identifier, result} or
// {identifier, error}.
func (b BatchResult) MarshalJSON() ([]byte, error) {
	out := struct {
		ID     string            `json:"identifier"`
		Result *EvaluationResult `json:"result,omitempty"`
		Error  string            `json:"error,omitempty"`
	}{ID: b.ID, Result: b.Result}
	if b.Err != nil {
		out.Error = b.Err.Error()
	}
	return json.Marshal(out)
}
