package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"devskillshub/internal/domain/skill"
	"devskillshub/internal/infrastructure/kv"
	"devskillshub/internal/repository"
)

var discard = log.New(io.Discard, "", 0)

type recordedEvent struct {
	action string
	id     string
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *fakePublisher) PublishSkillChange(action string, id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{action: action, id: id})
}

type brokenSkillRepo struct{}

func (brokenSkillRepo) Load(context.Context) (repository.LoadResult, error) {
	return repository.LoadResult{}, errors.New("disk gone")
}
func (brokenSkillRepo) Get(context.Context, string) (skill.Skill, bool, error) {
	return skill.Skill{}, false, errors.New("disk gone")
}
func (brokenSkillRepo) Add(context.Context, skill.CreateInput) (skill.Skill, error) {
	return skill.Skill{}, errors.New("disk gone")
}
func (brokenSkillRepo) Update(context.Context, string, skill.UpdateInput) (skill.Skill, bool, error) {
	return skill.Skill{}, false, errors.New("disk gone")
}
func (brokenSkillRepo) Delete(context.Context, string) (bool, error) {
	return false, errors.New("disk gone")
}

func newSkillUsecase(t *testing.T) (*Skill, *fakePublisher, kv.Medium) {
	t.Helper()
	m := kv.NewMemory()
	pub := &fakePublisher{}
	store := repository.NewSkillStore(m, "skills", discard)
	return NewSkillUsecase(store, pub, discard), pub, m
}

func ptr[T any](v T) *T { return &v }

func TestSkillUsecase_AddSkill_Validation(t *testing.T) {
	uc, pub, _ := newSkillUsecase(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   skill.CreateInput
		want error
	}{
		{"blank name", skill.CreateInput{Name: "  ", Proficiency: 5}, ErrInvalidInput},
		{"proficiency too low", skill.CreateInput{Name: "Go", Proficiency: 0}, ErrInvalidProficiencyLevel},
		{"proficiency too high", skill.CreateInput{Name: "Go", Proficiency: 11}, ErrInvalidProficiencyLevel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.AddSkill(ctx, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if len(pub.events) != 0 {
		t.Fatalf("expected no events for rejected input")
	}
}

func TestSkillUsecase_AddSkill_NormalizesAndPublishes(t *testing.T) {
	uc, pub, _ := newSkillUsecase(t)

	s, err := uc.AddSkill(context.Background(), skill.CreateInput{
		Name:        "  Go ",
		Category:    " Languages ",
		Proficiency: 10,
		Notes:       []string{" concurrency ", "", "  "},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.Name != "Go" || s.Category != "Languages" {
		t.Fatalf("expected trimmed fields, got %+v", s)
	}
	if len(s.Notes) != 1 || s.Notes[0] != "concurrency" {
		t.Fatalf("unexpected notes %v", s.Notes)
	}
	if len(pub.events) != 1 || pub.events[0].action != SkillActionCreated || pub.events[0].id != s.ID {
		t.Fatalf("unexpected events %+v", pub.events)
	}
}

func TestSkillUsecase_UpdateSkill(t *testing.T) {
	uc, pub, _ := newSkillUsecase(t)
	ctx := context.Background()
	s, _ := uc.AddSkill(ctx, skill.CreateInput{Name: "Go", Category: "Languages", Proficiency: 5})

	if _, err := uc.UpdateSkill(ctx, s.ID, skill.UpdateInput{Name: ptr(" ")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
	if _, err := uc.UpdateSkill(ctx, s.ID, skill.UpdateInput{Proficiency: ptr(42)}); !errors.Is(err, ErrInvalidProficiencyLevel) {
		t.Fatalf("expected ErrInvalidProficiencyLevel, got %v", err)
	}
	if _, err := uc.UpdateSkill(ctx, "missing", skill.UpdateInput{Proficiency: ptr(7)}); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}

	updated, err := uc.UpdateSkill(ctx, s.ID, skill.UpdateInput{Proficiency: ptr(7), Notes: ptr([]string{"modules"})})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Proficiency != 7 || updated.Name != "Go" || len(updated.Notes) != 1 {
		t.Fatalf("unexpected update result %+v", updated)
	}
	if last := pub.events[len(pub.events)-1]; last.action != SkillActionUpdated {
		t.Fatalf("expected updated event, got %+v", last)
	}
}

func TestSkillUsecase_UpdateSkill_EmptyRefreshesTimestamp(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := repository.NewSkillStore(kv.NewMemory(), "skills", discard, repository.WithClock(clock))
	uc := NewSkillUsecase(store, nil, discard)

	s, err := uc.AddSkill(ctx, skill.CreateInput{Name: "Go", Category: "Languages", Proficiency: 5, Notes: []string{"modules"}})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	now = now.Add(time.Hour)
	touched, err := uc.UpdateSkill(ctx, s.ID, skill.UpdateInput{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !touched.LastUpdated.Equal(now) {
		t.Fatalf("expected lastUpdated %s, got %s", now, touched.LastUpdated)
	}
	if touched.Name != s.Name || touched.Proficiency != s.Proficiency || len(touched.Notes) != 1 {
		t.Fatalf("fields changed on empty update: %+v", touched)
	}
}

func TestSkillUsecase_DeleteSkill(t *testing.T) {
	uc, pub, _ := newSkillUsecase(t)
	ctx := context.Background()
	s, _ := uc.AddSkill(ctx, skill.CreateInput{Name: "Go", Proficiency: 5})

	if err := uc.DeleteSkill(ctx, s.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := uc.DeleteSkill(ctx, s.ID); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
	if _, err := uc.GetSkill(ctx, s.ID); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound from get, got %v", err)
	}
	if len(pub.events) != 2 || pub.events[1].action != SkillActionDeleted {
		t.Fatalf("unexpected events %+v", pub.events)
	}
}

func TestSkillUsecase_ListByCategory(t *testing.T) {
	uc, _, _ := newSkillUsecase(t)
	ctx := context.Background()
	_, _ = uc.AddSkill(ctx, skill.CreateInput{Name: "Go", Category: "Languages", Proficiency: 8})
	_, _ = uc.AddSkill(ctx, skill.CreateInput{Name: "Docker", Proficiency: 5})
	_, _ = uc.AddSkill(ctx, skill.CreateInput{Name: "Rust", Category: "Languages", Proficiency: 3})

	list, err := uc.ListByCategory(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(list.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(list.Categories))
	}
	langs := list.Categories[0]
	if langs.Category != "Languages" || len(langs.Skills) != 2 || langs.AverageProficiency != 5.5 {
		t.Fatalf("unexpected languages summary %+v", langs)
	}
	if list.Categories[1].Category != skill.Uncategorized {
		t.Fatalf("expected uncategorized group, got %q", list.Categories[1].Category)
	}
}

func TestSkillUsecase_Chart(t *testing.T) {
	uc, _, _ := newSkillUsecase(t)
	ctx := context.Background()
	_, _ = uc.AddSkill(ctx, skill.CreateInput{Name: "Go", Proficiency: 8})
	_, _ = uc.AddSkill(ctx, skill.CreateInput{Name: "SQL", Proficiency: 6})

	chart, err := uc.Chart(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(chart.Labels) != 2 || chart.Labels[1] != "SQL" || chart.Data[0] != 8 {
		t.Fatalf("unexpected chart %+v", chart)
	}
}

func TestSkillUsecase_ListSkills_Degraded(t *testing.T) {
	uc, _, m := newSkillUsecase(t)
	_ = m.Set(context.Background(), "skills", []byte("<html>"))

	list, err := uc.ListSkills(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !list.Degraded || len(list.Items) != 0 {
		t.Fatalf("expected degraded empty list, got %+v", list)
	}
}

func TestSkillUsecase_StorageFailureIsInternal(t *testing.T) {
	uc := NewSkillUsecase(brokenSkillRepo{}, nil, discard)
	ctx := context.Background()

	if _, err := uc.ListSkills(ctx); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if _, err := uc.AddSkill(ctx, skill.CreateInput{Name: "Go", Proficiency: 1}); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if err := uc.DeleteSkill(ctx, "x"); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
