// Package catalog defines the immutable registry of elite-signal categories
// used for candidate pattern extraction. The catalog is constructed once at
// process start; after that it is read-only and safe for concurrent use.
package catalog

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/fitscore/internal/schemas"
	"github.com/jonathan/fitscore/internal/types"
)

// Category is a single elite-signal category: a pattern set, the dimension it
// feeds, and its base score contribution.
type Category struct {
	ID        string          `json:"id"`
	Dimension types.Dimension `json:"dimension"`
	Pattern   string          `json:"pattern"`
	Score     float64         `json:"score"`
	// Additive categories each contribute their base score once and sum into
	// the dimension; non-additive categories compete, highest tier wins.
	Additive bool `json:"additive,omitempty"`
	// Roles limits the category to specific role identifiers. Empty means the
	// category applies to every role.
	Roles []string `json:"roles,omitempty"`

	re *regexp.Regexp
}

// AppliesTo reports whether the category is active for the given role.
func (c *Category) AppliesTo(role string) bool {
	if len(c.Roles) == 0 {
		return true
	}
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Match returns the distinct signal names found in text, in order of first
// appearance. Duplicate matches within the category count once, compared
// case-insensitively.
func (c *Category) Match(text string) []string {
	found := c.re.FindAllString(text, -1)
	if len(found) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(found))
	matches := make([]string, 0, len(found))
	for _, m := range found {
		key := strings.ToLower(m)
		if seen[key] {
			continue
		}
		seen[key] = true
		matches = append(matches, m)
	}
	return matches
}

// Catalog is an immutable collection of signal categories.
type Catalog struct {
	categories []Category
}

// New builds a catalog, compiling every pattern case-insensitively and
// validating score ranges. Construction failure is fatal configuration error.
func New(categories []Category) (*Catalog, error) {
	compiled := make([]Category, 0, len(categories))
	for _, c := range categories {
		if c.ID == "" {
			return nil, fmt.Errorf("catalog: category with empty id")
		}
		if c.Score < types.MinScore || c.Score > types.MaxScore {
			return nil, fmt.Errorf("catalog: category %q score %.2f out of range [0,10]", c.ID, c.Score)
		}
		switch c.Dimension {
		case types.DimensionEducation, types.DimensionExperience, types.DimensionSkills, types.DimensionAchievements:
		default:
			return nil, fmt.Errorf("catalog: category %q has unknown dimension %q", c.ID, c.Dimension)
		}
		re, err := regexp.Compile("(?i)" + c.Pattern)
		if err != nil {
			return nil, fmt.Errorf("catalog: category %q pattern: %w", c.ID, err)
		}
		c.re = re
		compiled = append(compiled, c)
	}
	return &Catalog{categories: compiled}, nil
}

// ForDimension returns the categories feeding a dimension that apply to role,
// in definition order.
func (c *Catalog) ForDimension(d types.Dimension, role string) []Category {
	var out []Category
	for _, cat := range c.categories {
		if cat.Dimension == d && cat.AppliesTo(role) {
			out = append(out, cat)
		}
	}
	return out
}

// Len returns the number of categories in the catalog.
func (c *Catalog) Len() int {
	return len(c.categories)
}

// LoadFile reads a catalog override from a JSON file, validating it against
// the embedded catalog schema before construction.
func LoadFile(data []byte) (*Catalog, error) {
	if err := schemas.ValidateJSONString(schemas.CatalogSchema(), string(data)); err != nil {
		return nil, fmt.Errorf("catalog config invalid: %w", err)
	}
	var doc struct {
		Categories []Category `json:"categories"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog config: %w", err)
	}
	return New(doc.Categories)
}

// Default returns the built-in signal catalog: tiered elite universities and
// employers, achievement signals, and role-scoped skill groups.
func Default() *Catalog {
	c, err := New(defaultCategories())
	if err != nil {
		// The built-in tables are compile-time constants; a failure here is a
		// programming error, not a runtime condition.
		panic(fmt.Sprintf("default catalog invalid: %v", err))
	}
	return c
}

func defaultCategories() []Category {
	return []Category{
		// Education: university tiers, highest tier wins.
		{ID: "edu_tier1_us", Dimension: types.DimensionEducation, Score: 9.5,
			Pattern: `\b(MIT|Stanford|Harvard|Berkeley|UC Berkeley|Caltech|Princeton|Yale|Columbia|UPenn|University of Pennsylvania|Cornell)\b`},
		{ID: "edu_tier1_cs", Dimension: types.DimensionEducation, Score: 9.2,
			Pattern: `\b(Waterloo|Georgia Tech|CMU|Carnegie Mellon|UIUC|UT Austin|University of Washington|UW)\b`},
		{ID: "edu_tier1_intl", Dimension: types.DimensionEducation, Score: 9.0,
			Pattern: `\b(Oxford|Cambridge|ETH Zurich|ETH|IIT|Indian Institute of Technology|Tsinghua|Peking University)\b`},
		{ID: "edu_tier2", Dimension: types.DimensionEducation, Score: 7.8,
			Pattern: `\b(UCLA|USC|University of Southern California|Michigan|Northwestern|Duke|University of Chicago)\b`},
		{ID: "edu_tier3", Dimension: types.DimensionEducation, Score: 6.5,
			Pattern: `\b(UCSD|UC San Diego|Wisconsin|University of Wisconsin|Virginia|UVA|North Carolina|UNC)\b`},

		// Experience: employer tiers, highest tier wins.
		{ID: "company_faang_plus", Dimension: types.DimensionExperience, Score: 9.5,
			Pattern: `\b(Google|Meta|Facebook|Apple|Netflix|Amazon|Microsoft)\b`},
		{ID: "company_elite_unicorns", Dimension: types.DimensionExperience, Score: 9.2,
			Pattern: `\b(Stripe|Scale AI|Databricks|Figma|Notion|Linear|OpenAI|Anthropic|Airbnb|Uber)\b`},
		{ID: "company_top_startups", Dimension: types.DimensionExperience, Score: 8.7,
			Pattern: `\b(Coinbase|Snowflake|Palantir|Slack|Zoom|Dropbox|Twilio|GitLab)\b`},
		{ID: "company_consulting", Dimension: types.DimensionExperience, Score: 8.5,
			Pattern: `\b(McKinsey|Bain|BCG|Boston Consulting|Deloitte Consulting)\b`},
		{ID: "company_finance", Dimension: types.DimensionExperience, Score: 8.3,
			Pattern: `\b(Goldman Sachs|Morgan Stanley|JP Morgan|JPMorgan|Blackstone|KKR|Citadel)\b`},

		// Achievements: additive, each signal class contributes once.
		{ID: "achievement_exceptional", Dimension: types.DimensionAchievements, Score: 9.0, Additive: true,
			Pattern: `\b(patent|published|publication|TED talk|keynote|conference speaker|open source|GitHub|acquisition|IPO|Forbes|YC|Y Combinator|founder|co-founder)\b`},
		{ID: "achievement_strong", Dimension: types.DimensionAchievements, Score: 7.5, Additive: true,
			Pattern: `\b(award|recognition|promotion|mentored|scaled|optimized|launched|increased \d+%|reduced \d+%|grew \d+%|saved \$|revenue \$)\b`},
		{ID: "achievement_moderate", Dimension: types.DimensionAchievements, Score: 6.0, Additive: true,
			Pattern: `\b(improved|enhanced|developed|built|created|designed|implemented)\b`},

		// Skills: role-scoped additive groups. Caps mirror the per-group
		// point budgets (core 4.0, advanced 3.5, leadership 2.5).
		{ID: "skills_swe_core", Dimension: types.DimensionSkills, Score: 4.0, Additive: true,
			Roles:   []string{"software_engineer"},
			Pattern: `\b(Python|Java|JavaScript|TypeScript|Go|Rust|C\+\+|React|Node\.js|Django|Flask|Spring|Kubernetes|Docker|AWS|GCP|Azure)\b`},
		{ID: "skills_swe_advanced", Dimension: types.DimensionSkills, Score: 3.5, Additive: true,
			Roles:   []string{"software_engineer"},
			Pattern: `\b(system design|microservices|distributed systems|scalability|performance optimization|machine learning|AI|blockchain)\b`},
		{ID: "skills_swe_leadership", Dimension: types.DimensionSkills, Score: 2.5, Additive: true,
			Roles:   []string{"software_engineer"},
			Pattern: `\b(architecture|technical leadership|code review|mentoring|hiring|team building)\b`},
		{ID: "skills_pm_core", Dimension: types.DimensionSkills, Score: 4.0, Additive: true,
			Roles:   []string{"product_manager"},
			Pattern: `\b(product strategy|roadmap|user research|analytics|A/B testing|metrics|KPIs|user experience|UX)\b`},
		{ID: "skills_pm_advanced", Dimension: types.DimensionSkills, Score: 3.5, Additive: true,
			Roles:   []string{"product_manager"},
			Pattern: `\b(0-1 products|product-market fit|growth|monetization|pricing|go-to-market|GTM)\b`},
		{ID: "skills_pm_leadership", Dimension: types.DimensionSkills, Score: 2.5, Additive: true,
			Roles:   []string{"product_manager"},
			Pattern: `\b(stakeholder management|cross-functional|executive communication|strategic planning)\b`},
		{ID: "skills_ds_core", Dimension: types.DimensionSkills, Score: 4.0, Additive: true,
			Roles:   []string{"data_scientist"},
			Pattern: `\b(Python|R|SQL|machine learning|ML|statistics|data analysis|pandas|numpy|scikit-learn)\b`},
		{ID: "skills_ds_advanced", Dimension: types.DimensionSkills, Score: 3.5, Additive: true,
			Roles:   []string{"data_scientist"},
			Pattern: `\b(deep learning|neural networks|TensorFlow|PyTorch|MLOps|model deployment|feature engineering)\b`},
		{ID: "skills_ds_leadership", Dimension: types.DimensionSkills, Score: 2.5, Additive: true,
			Roles:   []string{"data_scientist"},
			Pattern: `\b(data strategy|ML platform|team leadership|research publications)\b`},
	}
}
