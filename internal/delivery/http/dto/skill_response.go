package dto

import (
	"time"

	"devskillshub/internal/domain/skill"
	"devskillshub/internal/usecase"
)

type SkillResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Proficiency int       `json:"proficiency"`
	LastUpdated time.Time `json:"last_updated"`
	Notes       []string  `json:"notes"`
}

type SkillListResponse struct {
	Items    []SkillResponse `json:"items"`
	Degraded bool            `json:"degraded"`
}

type CategoryResponse struct {
	Category           string          `json:"category"`
	AverageProficiency float64         `json:"average_proficiency"`
	Skills             []SkillResponse `json:"skills"`
}

type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Degraded   bool               `json:"degraded"`
}

type ChartResponse struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

func NewSkillResponse(s skill.Skill) SkillResponse {
	notes := s.Notes
	if notes == nil {
		notes = []string{}
	}
	return SkillResponse{
		ID:          s.ID,
		Name:        s.Name,
		Category:    s.Category,
		Proficiency: s.Proficiency,
		LastUpdated: s.LastUpdated,
		Notes:       notes,
	}
}

func NewSkillResponses(items []skill.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(items))
	for _, s := range items {
		out = append(out, NewSkillResponse(s))
	}
	return out
}

func NewCategoryListResponse(list usecase.CategoryList) CategoryListResponse {
	out := CategoryListResponse{
		Categories: make([]CategoryResponse, 0, len(list.Categories)),
		Degraded:   list.Degraded,
	}
	for _, c := range list.Categories {
		out.Categories = append(out.Categories, CategoryResponse{
			Category:           c.Category,
			AverageProficiency: c.AverageProficiency,
			Skills:             NewSkillResponses(c.Skills),
		})
	}
	return out
}
