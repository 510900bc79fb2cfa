package usecase

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"
	"time"

	"devskillshub/internal/domain/project"
	"devskillshub/internal/infrastructure/github"

	"golang.org/x/sync/singleflight"
)

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,38})$`)
	repoNameRe = regexp.MustCompile(`^[A-Za-z0-9._-]{1,100}$`)
)

type ProjectUsecase interface {
	ListProjects(ctx context.Context, username string) ([]project.Repository, error)
	GetProject(ctx context.Context, owner string, repo string) (project.Repository, error)
}

type Project struct {
	gh     github.Client
	cache  ProjectCache
	ttl    time.Duration
	logger *log.Logger

	group singleflight.Group
}

func NewProjectUsecase(gh github.Client, cache ProjectCache, ttl time.Duration, logger *log.Logger) *Project {
	if logger == nil {
		logger = log.Default()
	}
	return &Project{gh: gh, cache: cache, ttl: ttl, logger: logger}
}

func (u *Project) ListProjects(ctx context.Context, username string) ([]project.Repository, error) {
	username = strings.TrimSpace(username)
	if !usernameRe.MatchString(username) {
		return nil, ErrInvalidInput
	}

	key := ProjectsCacheKey(username)
	var cached []project.Repository
	if u.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	v, err := u.shared(ctx, key, func(ctx context.Context) (any, error) {
		return u.gh.ListUserRepos(ctx, username)
	})
	if err != nil {
		return nil, u.mapFetchError(err)
	}

	repos := v.([]project.Repository)
	if len(repos) > github.ReposPerPage {
		repos = repos[:github.ReposPerPage]
	}
	u.cacheSet(ctx, key, repos)
	return repos, nil
}

func (u *Project) GetProject(ctx context.Context, owner string, repo string) (project.Repository, error) {
	owner = strings.TrimSpace(owner)
	repo = strings.TrimSpace(repo)
	if !usernameRe.MatchString(owner) || !repoNameRe.MatchString(repo) {
		return project.Repository{}, ErrInvalidInput
	}

	key := ProjectCacheKey(owner, repo)
	var cached project.Repository
	if u.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	v, err := u.shared(ctx, key, func(ctx context.Context) (any, error) {
		return u.gh.GetRepo(ctx, owner, repo)
	})
	if err != nil {
		return project.Repository{}, u.mapFetchError(err)
	}

	out := v.(project.Repository)
	u.cacheSet(ctx, key, out)
	return out, nil
}

// shared runs fetch once per key for all concurrent callers. The fetch is not tied to
// any single caller's cancellation; the HTTP client timeout bounds it. Each caller
// still stops waiting when its own ctx is done.
func (u *Project) shared(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	detached := context.WithoutCancel(ctx)
	ch := u.group.DoChan(key, func() (any, error) {
		return fetch(detached)
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (u *Project) cacheGet(ctx context.Context, key string, out any) bool {
	if u.cache == nil {
		return false
	}
	ok, err := u.cache.GetJSON(ctx, key, out)
	if err != nil {
		u.logger.Printf("[Projects] cache read failed key=%s err=%v", key, err)
		return false
	}
	return ok
}

func (u *Project) cacheSet(ctx context.Context, key string, value any) {
	if u.cache == nil {
		return
	}
	if err := u.cache.SetJSON(ctx, key, value, u.ttl); err != nil {
		u.logger.Printf("[Projects] cache write failed key=%s err=%v", key, err)
	}
}

func (u *Project) mapFetchError(err error) error {
	if errors.Is(err, github.ErrNotFound) {
		return ErrProjectsNotFound
	}
	u.logger.Printf("[Projects] fetch failed err=%v", err)
	return ErrProjectsUnavailable
}
