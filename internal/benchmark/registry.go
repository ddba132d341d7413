// Package benchmark provides the immutable role-keyed registry of scoring
// weights and decision thresholds. The registry is loaded once at process
// start and read-only thereafter, so lookups need no locking.
package benchmark

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/fitscore/internal/schemas"
	"github.com/jonathan/fitscore/internal/types"
)

// DefaultRole is the benchmark used when a role identifier is unknown.
const DefaultRole = "software_engineer"

// Registry maps role identifiers to their benchmarks.
type Registry struct {
	benchmarks  map[string]types.RoleBenchmark
	defaultRole string
}

// NewRegistry builds a registry from the given benchmarks. Every benchmark is
// validated; a weight set that does not sum to 1.0 or an elite threshold
// below the hire threshold fails construction before any evaluation can run.
func NewRegistry(benchmarks []types.RoleBenchmark, defaultRole string) (*Registry, error) {
	if len(benchmarks) == 0 {
		return nil, fmt.Errorf("registry: no benchmarks provided")
	}
	m := make(map[string]types.RoleBenchmark, len(benchmarks))
	for _, b := range benchmarks {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("registry: %w", err)
		}
		if _, dup := m[b.Role]; dup {
			return nil, fmt.Errorf("registry: duplicate benchmark for role %q", b.Role)
		}
		m[b.Role] = b
	}
	if defaultRole == "" {
		defaultRole = DefaultRole
	}
	if _, ok := m[defaultRole]; !ok {
		return nil, fmt.Errorf("registry: default role %q has no benchmark", defaultRole)
	}
	return &Registry{benchmarks: m, defaultRole: defaultRole}, nil
}

// Resolve returns the benchmark for role. Unknown roles resolve to the
// default benchmark; defaulted reports whether that fallback happened so the
// leniency stays observable in the evaluation result.
func (r *Registry) Resolve(role string) (bench types.RoleBenchmark, defaulted bool) {
	if b, ok := r.benchmarks[role]; ok {
		return b, false
	}
	return r.benchmarks[r.defaultRole], true
}

// Roles returns the known role identifiers in unspecified order.
func (r *Registry) Roles() []string {
	roles := make([]string, 0, len(r.benchmarks))
	for role := range r.benchmarks {
		roles = append(roles, role)
	}
	return roles
}

// LoadFile builds a registry from a JSON override document, validating it
// against the embedded benchmarks schema first.
func LoadFile(data []byte) (*Registry, error) {
	if err := schemas.ValidateJSONString(schemas.BenchmarksSchema(), string(data)); err != nil {
		return nil, fmt.Errorf("benchmarks config invalid: %w", err)
	}
	var doc struct {
		DefaultRole string                `json:"default_role"`
		Benchmarks  []types.RoleBenchmark `json:"benchmarks"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse benchmarks config: %w", err)
	}
	return NewRegistry(doc.Benchmarks, doc.DefaultRole)
}

// DefaultRegistry returns the built-in role benchmarks.
func DefaultRegistry() *Registry {
	r, err := NewRegistry([]types.RoleBenchmark{
		{
			Role:               "software_engineer",
			EducationWeight:    0.15,
			ExperienceWeight:   0.35,
			SkillsWeight:       0.25,
			AchievementsWeight: 0.25,
			HireThreshold:      7.5,
			EliteThreshold:     8.5,
		},
		{
			Role:               "product_manager",
			EducationWeight:    0.10,
			ExperienceWeight:   0.40,
			SkillsWeight:       0.30,
			AchievementsWeight: 0.20,
			HireThreshold:      7.0,
			EliteThreshold:     8.0,
		},
		{
			Role:               "data_scientist",
			EducationWeight:    0.20,
			ExperienceWeight:   0.30,
			SkillsWeight:       0.35,
			AchievementsWeight: 0.15,
			HireThreshold:      7.2,
			EliteThreshold:     8.2,
		},
	}, DefaultRole)
	if err != nil {
		panic(fmt.Sprintf("default benchmarks invalid: %v", err))
	}
	return r
}
