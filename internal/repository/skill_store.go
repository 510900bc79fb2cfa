package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"devskillshub/internal/domain/skill"
	"devskillshub/internal/infrastructure/kv"

	"github.com/google/uuid"
)

// LoadResult is the outcome of reading the persisted collection. Degraded is set
// when a value was stored but could not be decoded; Skills is then empty.
type LoadResult struct {
	Skills   []skill.Skill
	Degraded bool
}

// SkillStore keeps the whole skill collection as one JSON array under a single key.
// Every operation is a full read-modify-write of that value. Calls on one store
// are serialized; writers in other processes sharing the key are last-write-wins.
type SkillStore struct {
	medium kv.Medium
	key    string
	logger *log.Logger

	now   func() time.Time
	newID func() string

	mu sync.Mutex
}

type SkillStoreOption func(*SkillStore)

func WithClock(now func() time.Time) SkillStoreOption {
	return func(s *SkillStore) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(gen func() string) SkillStoreOption {
	return func(s *SkillStore) {
		if gen != nil {
			s.newID = gen
		}
	}
}

func NewSkillStore(medium kv.Medium, key string, logger *log.Logger, opts ...SkillStoreOption) *SkillStore {
	if logger == nil {
		logger = log.Default()
	}
	s := &SkillStore{
		medium: medium,
		key:    key,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SkillStore) Key() string { return s.key }

func (s *SkillStore) Load(ctx context.Context) (LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *SkillStore) Save(ctx context.Context, skills []skill.Skill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, skills)
}

func (s *SkillStore) Get(ctx context.Context, id string) (skill.Skill, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.load(ctx)
	if err != nil {
		return skill.Skill{}, false, err
	}
	i := indexOf(res.Skills, id)
	if i < 0 {
		return skill.Skill{}, false, nil
	}
	return res.Skills[i], true, nil
}

func (s *SkillStore) Add(ctx context.Context, in skill.CreateInput) (skill.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.load(ctx)
	if err != nil {
		return skill.Skill{}, err
	}
	if res.Degraded {
		s.logger.Printf("[SkillStore] overwriting unreadable collection key=%s", s.key)
	}

	notes := make([]string, 0, len(in.Notes))
	notes = append(notes, in.Notes...)

	created := skill.Skill{
		ID:          s.uniqueID(res.Skills),
		Name:        in.Name,
		Category:    in.Category,
		Proficiency: in.Proficiency,
		LastUpdated: s.timestamp(),
		Notes:       notes,
	}

	skills := append(res.Skills, created)
	if err := s.save(ctx, skills); err != nil {
		return skill.Skill{}, err
	}
	return created, nil
}

// Update merges in over the record with id. found is false when no record matches;
// nothing is written in that case.
func (s *SkillStore) Update(ctx context.Context, id string, in skill.UpdateInput) (skill.Skill, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.load(ctx)
	if err != nil {
		return skill.Skill{}, false, err
	}
	i := indexOf(res.Skills, id)
	if i < 0 {
		return skill.Skill{}, false, nil
	}

	updated := in.Apply(res.Skills[i])
	updated.LastUpdated = s.timestamp()
	res.Skills[i] = updated

	if err := s.save(ctx, res.Skills); err != nil {
		return skill.Skill{}, false, err
	}
	return updated, true, nil
}

// Delete removes the record with id and reports whether one was removed.
// The collection is only written when its length changed.
func (s *SkillStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	kept := make([]skill.Skill, 0, len(res.Skills))
	for _, sk := range res.Skills {
		if sk.ID != id {
			kept = append(kept, sk)
		}
	}
	if len(kept) == len(res.Skills) {
		return false, nil
	}

	if err := s.save(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SkillStore) load(ctx context.Context) (LoadResult, error) {
	if s.medium == nil {
		return LoadResult{}, kv.ErrUnavailable
	}
	b, found, err := s.medium.Get(ctx, s.key)
	if err != nil {
		return LoadResult{}, fmt.Errorf("load skills: %w", err)
	}
	if !found || len(b) == 0 {
		return LoadResult{Skills: []skill.Skill{}}, nil
	}

	var skills []skill.Skill
	if err := json.Unmarshal(b, &skills); err != nil {
		s.logger.Printf("[SkillStore] unreadable collection, treating as empty key=%s err=%v", s.key, err)
		return LoadResult{Skills: []skill.Skill{}, Degraded: true}, nil
	}
	if skills == nil {
		skills = []skill.Skill{}
	}
	return LoadResult{Skills: skills}, nil
}

func (s *SkillStore) save(ctx context.Context, skills []skill.Skill) error {
	if s.medium == nil {
		return kv.ErrUnavailable
	}
	if skills == nil {
		skills = []skill.Skill{}
	}
	b, err := json.Marshal(skills)
	if err != nil {
		return fmt.Errorf("encode skills: %w", err)
	}
	if err := s.medium.Set(ctx, s.key, b); err != nil {
		return fmt.Errorf("save skills: %w", err)
	}
	return nil
}

func (s *SkillStore) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// uniqueID draws ids until one is not already used in existing.
func (s *SkillStore) uniqueID(existing []skill.Skill) string {
	for {
		id := s.newID()
		if id != "" && indexOf(existing, id) < 0 {
			return id
		}
	}
}

func indexOf(skills []skill.Skill, id string) int {
	for i := range skills {
		if skills[i].ID == id {
			return i
		}
	}
	return -1
}
