package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fitscore/internal/types"
)

func TestCategory_Match_CaseInsensitive(t *testing.T) {
	cat, err := New([]Category{
		{ID: "edu", Dimension: types.DimensionEducation, Score: 9.5, Pattern: `\b(MIT|Stanford)\b`},
	})
	require.NoError(t, err)

	matches := cat.ForDimension(types.DimensionEducation, "software_engineer")[0].Match("Graduated from mit, then Stanford")
	assert.Equal(t, []string{"mit", "Stanford"}, matches)
}

func TestCategory_Match_DeduplicatesWithinCategory(t *testing.T) {
	cat, err := New([]Category{
		{ID: "exp", Dimension: types.DimensionExperience, Score: 9.5, Pattern: `\bGoogle\b`},
	})
	require.NoError(t, err)

	// Repeated mentions count once, compared case-insensitively. First
	// appearance keeps its original casing.
	matches := cat.ForDimension(types.DimensionExperience, "any")[0].Match("Google engineer at GOOGLE, ex-google")
	assert.Equal(t, []string{"Google"}, matches)
}

func TestCategory_Match_NoMatch(t *testing.T) {
	cat, err := New([]Category{
		{ID: "exp", Dimension: types.DimensionExperience, Score: 9.5, Pattern: `\bGoogle\b`},
	})
	require.NoError(t, err)

	assert.Nil(t, cat.ForDimension(types.DimensionExperience, "any")[0].Match("worked at a local shop"))
}

func TestCategory_AppliesTo(t *testing.T) {
	universal := Category{ID: "a"}
	assert.True(t, universal.AppliesTo("software_engineer"))
	assert.True(t, universal.AppliesTo("anything"))

	scoped := Category{ID: "b", Roles: []string{"data_scientist"}}
	assert.True(t, scoped.AppliesTo("data_scientist"))
	assert.False(t, scoped.AppliesTo("software_engineer"))
}

func TestNew_RejectsInvalidCategories(t *testing.T) {
	_, err := New([]Category{{Dimension: types.DimensionEducation, Score: 5, Pattern: `x`}})
	assert.ErrorContains(t, err, "empty id")

	_, err = New([]Category{{ID: "a", Dimension: types.DimensionEducation, Score: 11, Pattern: `x`}})
	assert.ErrorContains(t, err, "out of range")

	_, err = New([]Category{{ID: "a", Dimension: "vibes", Score: 5, Pattern: `x`}})
	assert.ErrorContains(t, err, "unknown dimension")

	_, err = New([]Category{{ID: "a", Dimension: types.DimensionEducation, Score: 5, Pattern: `(`}})
	assert.ErrorContains(t, err, "pattern")
}

func TestForDimension_FiltersByRole(t *testing.T) {
	cat, err := New([]Category{
		{ID: "swe", Dimension: types.DimensionSkills, Score: 4, Additive: true, Roles: []string{"software_engineer"}, Pattern: `Go`},
		{ID: "ds", Dimension: types.DimensionSkills, Score: 4, Additive: true, Roles: []string{"data_scientist"}, Pattern: `R`},
		{ID: "edu", Dimension: types.DimensionEducation, Score: 9, Pattern: `MIT`},
	})
	require.NoError(t, err)

	swe := cat.ForDimension(types.DimensionSkills, "software_engineer")
	require.Len(t, swe, 1)
	assert.Equal(t, "swe", swe[0].ID)

	assert.Empty(t, cat.ForDimension(types.DimensionSkills, "product_manager"))
}

func TestLoadFile_ValidOverride(t *testing.T) {
	data := []byte(`{
		"categories": [
			{"id": "edu_custom", "dimension": "education", "pattern": "\\bENS\\b", "score": 9.0},
			{"id": "skills_custom", "dimension": "skills", "pattern": "OCaml", "score": 4.0, "additive": true, "roles": ["software_engineer"]}
		]
	}`)

	cat, err := LoadFile(data)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
}

func TestLoadFile_RejectsSchemaViolations(t *testing.T) {
	// Score above range fails schema validation before construction.
	data := []byte(`{"categories": [{"id": "a", "dimension": "education", "pattern": "x", "score": 42}]}`)
	_, err := LoadFile(data)
	assert.ErrorContains(t, err, "catalog config invalid")

	// Missing required fields.
	data = []byte(`{"categories": [{"id": "a"}]}`)
	_, err = LoadFile(data)
	assert.Error(t, err)
}

func TestDefault_Sanity(t *testing.T) {
	cat := Default()
	assert.Greater(t, cat.Len(), 15)

	// Every dimension has at least one category for the default role.
	for _, d := range types.Dimensions() {
		assert.NotEmpty(t, cat.ForDimension(d, "software_engineer"), "dimension %s", d)
	}

	// Skill groups are role-scoped: a software engineer catalog never scores
	// data science skills.
	for _, c := range cat.ForDimension(types.DimensionSkills, "software_engineer") {
		assert.NotContains(t, c.ID, "ds_")
		assert.NotContains(t, c.ID, "pm_")
	}
}
