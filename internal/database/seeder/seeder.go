package seeder

import (
	"context"

	"devskillshub/internal/domain/skill"
	"devskillshub/internal/usecase"
)

// Target is where seeded skills land. usecase.SkillUsecase satisfies it, so seeded
// records go through the same validation and change events as API writes.
type Target interface {
	ListSkills(ctx context.Context) (usecase.SkillList, error)
	AddSkill(ctx context.Context, in skill.CreateInput) (skill.Skill, error)
}

type Seeder interface {
	Name() string
	Run(ctx context.Context, t Target) error
}
