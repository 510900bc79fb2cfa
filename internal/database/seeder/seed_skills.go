package seeder

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"devskillshub/internal/domain/skill"

	"gopkg.in/yaml.v3"
)

type SeedSkill struct {
	Name        string   `yaml:"name"`
	Category    string   `yaml:"category"`
	Proficiency int      `yaml:"proficiency"`
	Notes       []string `yaml:"notes"`
}

type seedFile struct {
	Skills []SeedSkill `yaml:"skills"`
}

// LoadFile reads a YAML document of the form `skills: [{name, category, proficiency, notes}]`.
func LoadFile(path string) ([]SeedSkill, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(b)
}

func Parse(b []byte) ([]SeedSkill, error) {
	var f seedFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return f.Skills, nil
}

// SkillsSeeder adds every item whose name is not already present (case-insensitive).
// An unreadable stored collection is left alone unless ReplaceDegraded is set, since
// the first add would overwrite it.
type SkillsSeeder struct {
	Items           []SeedSkill
	Logger          *log.Logger
	ReplaceDegraded bool
}

func (SkillsSeeder) Name() string { return "skills" }

func (s SkillsSeeder) Run(ctx context.Context, t Target) error {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}

	list, err := t.ListSkills(ctx)
	if err != nil {
		return err
	}
	if list.Degraded {
		if !s.ReplaceDegraded {
			logger.Printf("[Seeder] existing collection unreadable, skipping seed")
			return nil
		}
		logger.Printf("[Seeder] existing collection unreadable, it will be replaced")
	}

	seen := make(map[string]struct{}, len(list.Items))
	for _, sk := range list.Items {
		seen[strings.ToLower(strings.TrimSpace(sk.Name))] = struct{}{}
	}

	added := 0
	for _, it := range s.Items {
		key := strings.ToLower(strings.TrimSpace(it.Name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}

		if _, err := t.AddSkill(ctx, skill.CreateInput{
			Name:        it.Name,
			Category:    it.Category,
			Proficiency: it.Proficiency,
			Notes:       it.Notes,
		}); err != nil {
			return fmt.Errorf("add %q: %w", it.Name, err)
		}
		seen[key] = struct{}{}
		added++
	}

	logger.Printf("[Seeder] skills seeded added=%d skipped=%d", added, len(s.Items)-added)
	return nil
}
