package search

import "strings"

const (
	DefaultLimit = 20
	MinLimit     = 1
	MaxLimit     = 50
)

// Directory column names. These are the only fields a search ever requests.
const (
	FieldID              = "id"
	FieldName            = "name"
	FieldProfession      = "profession"
	FieldAddress         = "address"
	FieldExperienceYears = "experience_years"
	FieldSkills          = "skills"
	FieldAvatarURL       = "avatar_url"
)

// SummaryFields is the projection requested for every search, in order.
var SummaryFields = []string{
	FieldID,
	FieldName,
	FieldProfession,
	FieldAddress,
	FieldExperienceYears,
	FieldSkills,
	FieldAvatarURL,
}

// ProfessionalSummary is one directory entry as returned by a search.
type ProfessionalSummary struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Profession      string   `json:"profession"`
	Address         *string  `json:"address,omitempty"`
	ExperienceYears *float64 `json:"experience_years,omitempty"`
	Skills          *string  `json:"skills,omitempty"`
	AvatarURL       *string  `json:"avatar_url,omitempty"`
}

// Criteria is the immutable input of a single search attempt.
// An empty Location and a nil MinExperience mean "no filter".
type Criteria struct {
	Text          string
	Location      string
	MinExperience *float64
	Limit         int
}

// NewCriteria trims the free-text inputs and clamps the limit.
func NewCriteria(text, location string, minExperience *float64, limit int) Criteria {
	c := Criteria{
		Text:     strings.TrimSpace(text),
		Location: strings.TrimSpace(location),
		Limit:    ClampLimit(limit),
	}
	if minExperience != nil {
		v := *minExperience
		c.MinExperience = &v
	}
	return c
}

// Empty reports whether the criteria carry no constraint at all.
func (c Criteria) Empty() bool {
	return c.Text == "" && c.Location == "" && c.MinExperience == nil
}

// ClampLimit forces n into [MinLimit, MaxLimit].
func ClampLimit(n int) int {
	if n < MinLimit {
		return MinLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

type Operator string

const (
	// OpContains is a case-insensitive substring match.
	OpContains Operator = "contains"
	// OpGte is a numeric greater-than-or-equal comparison.
	OpGte Operator = "gte"
)

type Predicate struct {
	Field string
	Op    Operator
	Value any
}

// Query is the structured request sent to a Directory. A record matches
// when at least one AnyOf predicate holds (or AnyOf is empty) and every
// AllOf predicate holds.
type Query struct {
	AnyOf  []Predicate
	AllOf  []Predicate
	Limit  int
	Fields []string
}

// Compose builds the directory query for c. The second return value is
// false when c has no constraints; callers must not send anything then.
func Compose(c Criteria) (Query, bool) {
	if c.Empty() {
		return Query{}, false
	}

	q := Query{
		Limit:  ClampLimit(c.Limit),
		Fields: append([]string(nil), SummaryFields...),
	}

	if c.Text != "" {
		q.AnyOf = []Predicate{
			{Field: FieldName, Op: OpContains, Value: c.Text},
			{Field: FieldProfession, Op: OpContains, Value: c.Text},
			{Field: FieldSkills, Op: OpContains, Value: c.Text},
		}
	}
	if c.Location != "" {
		q.AllOf = append(q.AllOf, Predicate{Field: FieldAddress, Op: OpContains, Value: c.Location})
	}
	if c.MinExperience != nil {
		q.AllOf = append(q.AllOf, Predicate{Field: FieldExperienceYears, Op: OpGte, Value: *c.MinExperience})
	}

	return q, true
}
