package usecase

import (
	"context"
	"log"
	"strings"

	"devskillshub/internal/domain/skill"
	"devskillshub/internal/repository"
)

const (
	MinProficiency = 1
	MaxProficiency = 10
)

const (
	SkillActionCreated = "created"
	SkillActionUpdated = "updated"
	SkillActionDeleted = "deleted"
)

// SkillRepository is the subset of repository.SkillStore the usecase drives.
type SkillRepository interface {
	Load(ctx context.Context) (repository.LoadResult, error)
	Get(ctx context.Context, id string) (skill.Skill, bool, error)
	Add(ctx context.Context, in skill.CreateInput) (skill.Skill, error)
	Update(ctx context.Context, id string, in skill.UpdateInput) (skill.Skill, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// SkillEventPublisher is notified after every successful write.
type SkillEventPublisher interface {
	PublishSkillChange(action string, skillID string)
}

type SkillList struct {
	Items    []skill.Skill
	Degraded bool
}

type CategorySummary struct {
	Category           string
	Skills             []skill.Skill
	AverageProficiency float64
}

type CategoryList struct {
	Categories []CategorySummary
	Degraded   bool
}

type ChartData struct {
	Labels []string
	Data   []int
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) (SkillList, error)
	ListByCategory(ctx context.Context) (CategoryList, error)
	Chart(ctx context.Context) (ChartData, error)
	GetSkill(ctx context.Context, id string) (skill.Skill, error)
	AddSkill(ctx context.Context, in skill.CreateInput) (skill.Skill, error)
	UpdateSkill(ctx context.Context, id string, in skill.UpdateInput) (skill.Skill, error)
	DeleteSkill(ctx context.Context, id string) error
}

type Skill struct {
	repo   SkillRepository
	events SkillEventPublisher
	logger *log.Logger
}

func NewSkillUsecase(repo SkillRepository, events SkillEventPublisher, logger *log.Logger) *Skill {
	if logger == nil {
		logger = log.Default()
	}
	return &Skill{repo: repo, events: events, logger: logger}
}

func (u *Skill) ListSkills(ctx context.Context) (SkillList, error) {
	res, err := u.repo.Load(ctx)
	if err != nil {
		u.logger.Printf("[Skills] load failed err=%v", err)
		return SkillList{}, ErrInternal
	}
	return SkillList{Items: res.Skills, Degraded: res.Degraded}, nil
}

func (u *Skill) ListByCategory(ctx context.Context) (CategoryList, error) {
	list, err := u.ListSkills(ctx)
	if err != nil {
		return CategoryList{}, err
	}

	groups := skill.GroupByCategory(list.Items)
	out := make([]CategorySummary, 0, len(groups))
	for _, g := range groups {
		total := 0
		for _, s := range g.Skills {
			total += s.Proficiency
		}
		out = append(out, CategorySummary{
			Category:           g.Category,
			Skills:             g.Skills,
			AverageProficiency: float64(total) / float64(len(g.Skills)),
		})
	}
	return CategoryList{Categories: out, Degraded: list.Degraded}, nil
}

func (u *Skill) Chart(ctx context.Context) (ChartData, error) {
	list, err := u.ListSkills(ctx)
	if err != nil {
		return ChartData{}, err
	}
	out := ChartData{
		Labels: make([]string, 0, len(list.Items)),
		Data:   make([]int, 0, len(list.Items)),
	}
	for _, s := range list.Items {
		out.Labels = append(out.Labels, s.Name)
		out.Data = append(out.Data, s.Proficiency)
	}
	return out, nil
}

func (u *Skill) GetSkill(ctx context.Context, id string) (skill.Skill, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return skill.Skill{}, ErrInvalidInput
	}
	s, found, err := u.repo.Get(ctx, id)
	if err != nil {
		u.logger.Printf("[Skills] get failed id=%s err=%v", id, err)
		return skill.Skill{}, ErrInternal
	}
	if !found {
		return skill.Skill{}, ErrSkillNotFound
	}
	return s, nil
}

func (u *Skill) AddSkill(ctx context.Context, in skill.CreateInput) (skill.Skill, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Notes = cleanNotes(in.Notes)

	if in.Name == "" {
		return skill.Skill{}, ErrInvalidInput
	}
	if !isValidProficiency(in.Proficiency) {
		return skill.Skill{}, ErrInvalidProficiencyLevel
	}

	created, err := u.repo.Add(ctx, in)
	if err != nil {
		u.logger.Printf("[Skills] add failed name=%q err=%v", in.Name, err)
		return skill.Skill{}, ErrInternal
	}
	u.publish(SkillActionCreated, created.ID)
	return created, nil
}

func (u *Skill) UpdateSkill(ctx context.Context, id string, in skill.UpdateInput) (skill.Skill, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return skill.Skill{}, ErrInvalidInput
	}
	if in.IsEmpty() {
		u.logger.Printf("[Skills] empty update, refreshing timestamp id=%s", id)
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return skill.Skill{}, ErrInvalidInput
		}
		in.Name = &name
	}
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		in.Category = &category
	}
	if in.Proficiency != nil && !isValidProficiency(*in.Proficiency) {
		return skill.Skill{}, ErrInvalidProficiencyLevel
	}
	if in.Notes != nil {
		notes := cleanNotes(*in.Notes)
		in.Notes = &notes
	}

	updated, found, err := u.repo.Update(ctx, id, in)
	if err != nil {
		u.logger.Printf("[Skills] update failed id=%s err=%v", id, err)
		return skill.Skill{}, ErrInternal
	}
	if !found {
		return skill.Skill{}, ErrSkillNotFound
	}
	u.publish(SkillActionUpdated, updated.ID)
	return updated, nil
}

func (u *Skill) DeleteSkill(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	removed, err := u.repo.Delete(ctx, id)
	if err != nil {
		u.logger.Printf("[Skills] delete failed id=%s err=%v", id, err)
		return ErrInternal
	}
	if !removed {
		return ErrSkillNotFound
	}
	u.publish(SkillActionDeleted, id)
	return nil
}

func (u *Skill) publish(action string, id string) {
	if u.events == nil {
		return
	}
	u.events.PublishSkillChange(action, id)
}

func isValidProficiency(v int) bool {
	return v >= MinProficiency && v <= MaxProficiency
}

func cleanNotes(notes []string) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}
