package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"devskillshub/internal/app"
	"devskillshub/internal/config"
	"devskillshub/internal/database/seeder"
	"devskillshub/internal/domain/skill"
	"devskillshub/internal/usecase"

	"github.com/joho/godotenv"
)

const usage = `usage: skillctl <command> [flags]

commands:
  list                                   print every skill
  add -name N [-category C] -proficiency P [-note T]
  update -id ID [-name N] [-category C] [-proficiency P] [-note T]
  delete -id ID
  seed [-file skills.yaml] [-replace-degraded]
                                         add skills whose names are not present yet
  repos -user NAME                       list the user's most recently updated repositories
`

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to read .env: %v", err)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	c, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	if err := run(ctx, c, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func run(ctx context.Context, c *app.Container, cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "list":
		return runList(ctx, c.SkillUC, out)
	case "add":
		return runAdd(ctx, c.SkillUC, args, out)
	case "update":
		return runUpdate(ctx, c.SkillUC, args, out)
	case "delete":
		return runDelete(ctx, c.SkillUC, args, out)
	case "seed":
		return runSeed(ctx, c.SkillUC, c.Logger, args)
	case "repos":
		return runRepos(ctx, c.ProjectUC, args, out)
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

func runList(ctx context.Context, uc usecase.SkillUsecase, out io.Writer) error {
	list, err := uc.ListSkills(ctx)
	if err != nil {
		return err
	}
	if list.Degraded {
		fmt.Fprintln(out, "warning: stored collection was unreadable and is shown as empty")
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPROFICIENCY\tUPDATED\tNOTES")
	for _, s := range list.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/10\t%s\t%s\n",
			s.ID, s.Name, skill.CategoryOf(s), s.Proficiency,
			s.LastUpdated.Format(time.RFC3339), strings.Join(s.Notes, "; "))
	}
	return tw.Flush()
}

func runAdd(ctx context.Context, uc usecase.SkillUsecase, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	name := fs.String("name", "", "skill name")
	category := fs.String("category", "", "skill category")
	proficiency := fs.Int("proficiency", 0, "proficiency 1-10")
	note := fs.String("note", "", "free-text note")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var notes []string
	if *note != "" {
		notes = []string{*note}
	}
	s, err := uc.AddSkill(ctx, skill.CreateInput{
		Name:        *name,
		Category:    *category,
		Proficiency: *proficiency,
		Notes:       notes,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "added %s %s\n", s.ID, s.Name)
	return nil
}

func runUpdate(ctx context.Context, uc usecase.SkillUsecase, args []string, out io.Writer) error {
	id, in, err := parseUpdateArgs(args)
	if err != nil {
		return err
	}

	s, err := uc.UpdateSkill(ctx, id, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "updated %s %s\n", s.ID, s.Name)
	return nil
}

// parseUpdateArgs maps only the flags that were passed onto the update; -note ""
// clears the notes.
func parseUpdateArgs(args []string) (string, skill.UpdateInput, error) {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	id := fs.String("id", "", "skill id")
	name := fs.String("name", "", "new name")
	category := fs.String("category", "", "new category")
	proficiency := fs.Int("proficiency", 0, "new proficiency 1-10")
	note := fs.String("note", "", "replace notes with this note; empty clears them")
	if err := fs.Parse(args); err != nil {
		return "", skill.UpdateInput{}, err
	}

	var in skill.UpdateInput
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			in.Name = name
		case "category":
			in.Category = category
		case "proficiency":
			in.Proficiency = proficiency
		case "note":
			notes := []string{}
			if *note != "" {
				notes = append(notes, *note)
			}
			in.Notes = &notes
		}
	})
	return *id, in, nil
}

func runDelete(ctx context.Context, uc usecase.SkillUsecase, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	id := fs.String("id", "", "skill id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := uc.DeleteSkill(ctx, *id); err != nil {
		if errors.Is(err, usecase.ErrSkillNotFound) {
			return fmt.Errorf("no skill with id %q", *id)
		}
		return err
	}
	fmt.Fprintf(out, "deleted %s\n", *id)
	return nil
}

func runSeed(ctx context.Context, uc usecase.SkillUsecase, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	file := fs.String("file", "", "YAML seed file; built-in defaults when empty")
	replace := fs.Bool("replace-degraded", false, "seed even when the stored collection is unreadable")
	if err := fs.Parse(args); err != nil {
		return err
	}

	items := seeder.DefaultSkills
	if *file != "" {
		loaded, err := seeder.LoadFile(*file)
		if err != nil {
			return err
		}
		items = loaded
	}

	r := seeder.Runner{Seeders: []seeder.Seeder{seeder.SkillsSeeder{Items: items, Logger: logger, ReplaceDegraded: *replace}}}
	return r.Run(ctx, uc)
}

func runRepos(ctx context.Context, uc usecase.ProjectUsecase, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("repos", flag.ContinueOnError)
	user := fs.String("user", "", "GitHub username")
	if err := fs.Parse(args); err != nil {
		return err
	}

	repos, err := uc.ListProjects(ctx, *user)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLANGUAGE\tSTARS\tFORKS\tURL")
	for _, r := range repos {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", r.Name, r.Language, r.StargazersCount, r.ForksCount, r.HTMLURL)
	}
	return tw.Flush()
}
