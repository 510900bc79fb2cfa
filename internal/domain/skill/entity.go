package skill

import (
	"strings"
	"time"
)

// Uncategorized is the grouping label for skills with an empty category.
const Uncategorized = "Uncategorized"

// Skill is the persisted record. JSON names match the stored layout and must not change.
type Skill struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Proficiency int       `json:"proficiency"`
	LastUpdated time.Time `json:"lastUpdated"`
	Notes       []string  `json:"notes"`
}

// CreateInput carries the caller-supplied fields. ID and LastUpdated are assigned by the store.
type CreateInput struct {
	Name        string
	Category    string
	Proficiency int
	Notes       []string
}

// UpdateInput is a partial update; nil fields keep their current value.
type UpdateInput struct {
	Name        *string
	Category    *string
	Proficiency *int
	Notes       *[]string
}

// Apply merges the non-nil fields of in over s. ID and LastUpdated are untouched.
func (in UpdateInput) Apply(s Skill) Skill {
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.Category != nil {
		s.Category = *in.Category
	}
	if in.Proficiency != nil {
		s.Proficiency = *in.Proficiency
	}
	if in.Notes != nil {
		s.Notes = append([]string{}, (*in.Notes)...)
	}
	return s
}

func (in UpdateInput) IsEmpty() bool {
	return in.Name == nil && in.Category == nil && in.Proficiency == nil && in.Notes == nil
}

func CategoryOf(s Skill) string {
	c := strings.TrimSpace(s.Category)
	if c == "" {
		return Uncategorized
	}
	return c
}

type CategoryGroup struct {
	Category string
	Skills   []Skill
}

// GroupByCategory groups skills keeping the order in which each category first appears.
func GroupByCategory(skills []Skill) []CategoryGroup {
	idx := map[string]int{}
	out := make([]CategoryGroup, 0)
	for _, s := range skills {
		c := CategoryOf(s)
		i, ok := idx[c]
		if !ok {
			i = len(out)
			idx[c] = i
			out = append(out, CategoryGroup{Category: c})
		}
		out[i].Skills = append(out[i].Skills, s)
	}
	return out
}
