package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogSchema_AcceptsValidDocument(t *testing.T) {
	doc := `{
		"categories": [
			{"id": "edu_tier1", "dimension": "education", "pattern": "\\bMIT\\b", "score": 9.5},
			{"id": "skills", "dimension": "skills", "pattern": "Go", "score": 4.0, "additive": true, "roles": ["software_engineer"]}
		]
	}`
	assert.NoError(t, ValidateJSONString(CatalogSchema(), doc))
}

func TestCatalogSchema_RejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing categories", `{}`},
		{"empty categories", `{"categories": []}`},
		{"score above range", `{"categories": [{"id": "a", "dimension": "education", "pattern": "x", "score": 11}]}`},
		{"unknown dimension", `{"categories": [{"id": "a", "dimension": "vibes", "pattern": "x", "score": 5}]}`},
		{"missing pattern", `{"categories": [{"id": "a", "dimension": "education", "score": 5}]}`},
		{"unknown property", `{"categories": [{"id": "a", "dimension": "education", "pattern": "x", "score": 5, "bonus": 1}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSONString(CatalogSchema(), tt.doc)
			require.Error(t, err)

			var ve *ValidationError
			assert.True(t, errors.As(err, &ve))
			assert.NotEmpty(t, ve.Errors)
		})
	}
}

func TestBenchmarksSchema_AcceptsValidDocument(t *testing.T) {
	doc := `{
		"default_role": "designer",
		"benchmarks": [{
			"role": "designer",
			"education_weight": 0.1,
			"experience_weight": 0.3,
			"skills_weight": 0.4,
			"achievements_weight": 0.2,
			"hire_threshold": 6.5,
			"elite_threshold": 8.0
		}]
	}`
	assert.NoError(t, ValidateJSONString(BenchmarksSchema(), doc))
}

func TestBenchmarksSchema_RejectsMissingThresholds(t *testing.T) {
	doc := `{"benchmarks": [{"role": "designer", "education_weight": 1.0}]}`
	err := ValidateJSONString(BenchmarksSchema(), doc)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Error(), "validation failed")
}

func TestValidateJSONString_MalformedJSON(t *testing.T) {
	err := ValidateJSONString(CatalogSchema(), `{ not json`)
	require.Error(t, err)

	var le *SchemaLoadError
	assert.True(t, errors.As(err, &le))
}

func TestEmbeddedSchemasLoad(t *testing.T) {
	assert.NotEmpty(t, CatalogSchema())
	assert.NotEmpty(t, BenchmarksSchema())
}
