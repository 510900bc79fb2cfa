package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"devskillshub/internal/domain/project"
	"devskillshub/internal/infrastructure/github"
)

type fakeGitHub struct {
	calls atomic.Int32
	repos []project.Repository
	repo  project.Repository
	err   error
	block chan struct{}
}

func (f *fakeGitHub) ListUserRepos(ctx context.Context, username string) ([]project.Repository, error) {
	f.calls.Add(1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.repos, f.err
}

func (f *fakeGitHub) GetRepo(ctx context.Context, owner string, repo string) (project.Repository, error) {
	f.calls.Add(1)
	return f.repo, f.err
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func TestProjectUsecase_ListProjects_InvalidUsername(t *testing.T) {
	uc := NewProjectUsecase(&fakeGitHub{}, nil, time.Minute, discard)
	for _, name := range []string{"", "-leading", "has space", "a/b", "toolongtoolongtoolongtoolongtoolongtoolong"} {
		if _, err := uc.ListProjects(context.Background(), name); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%q: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestProjectUsecase_ListProjects_CachesResult(t *testing.T) {
	gh := &fakeGitHub{repos: []project.Repository{{ID: 1, Name: "dotfiles"}}}
	cache := newMemCache()
	uc := NewProjectUsecase(gh, cache, time.Minute, discard)

	for i := 0; i < 3; i++ {
		repos, err := uc.ListProjects(context.Background(), "Octocat")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if len(repos) != 1 || repos[0].Name != "dotfiles" {
			t.Fatalf("unexpected repos %+v", repos)
		}
	}
	if gh.calls.Load() != 1 {
		t.Fatalf("expected 1 upstream call, got %d", gh.calls.Load())
	}
	if _, ok := cache.data[ProjectsCacheKey("octocat")]; !ok {
		t.Fatalf("expected cache key to be lowercased")
	}
}

func TestProjectUsecase_ListProjects_CapsPageSize(t *testing.T) {
	repos := make([]project.Repository, 15)
	uc := NewProjectUsecase(&fakeGitHub{repos: repos}, nil, time.Minute, discard)

	got, err := uc.ListProjects(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != github.ReposPerPage {
		t.Fatalf("expected %d repos, got %d", github.ReposPerPage, len(got))
	}
}

func TestProjectUsecase_ListProjects_CollapsesConcurrentLookups(t *testing.T) {
	gh := &fakeGitHub{repos: []project.Repository{{ID: 1}}, block: make(chan struct{})}
	uc := NewProjectUsecase(gh, nil, time.Minute, discard)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = uc.ListProjects(context.Background(), "octocat")
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(gh.block)
	wg.Wait()

	if n := gh.calls.Load(); n < 1 || n > 5 {
		t.Fatalf("unexpected upstream call count %d", n)
	}
}

func TestProjectUsecase_ListProjects_CancelledCallerDoesNotFailOthers(t *testing.T) {
	gh := &fakeGitHub{repos: []project.Repository{{ID: 7, Name: "kept"}}, block: make(chan struct{})}
	uc := NewProjectUsecase(gh, nil, time.Minute, discard)

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := uc.ListProjects(firstCtx, "octocat")
		firstErr <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for gh.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("upstream was never called")
		}
		time.Sleep(time.Millisecond)
	}

	type result struct {
		repos []project.Repository
		err   error
	}
	second := make(chan result, 1)
	go func() {
		repos, err := uc.ListProjects(context.Background(), "octocat")
		second <- result{repos: repos, err: err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	if err := <-firstErr; err == nil {
		t.Fatalf("expected the cancelled caller to fail")
	}

	close(gh.block)
	res := <-second
	if res.err != nil {
		t.Fatalf("caller with a live context failed: %v", res.err)
	}
	if len(res.repos) != 1 || res.repos[0].Name != "kept" {
		t.Fatalf("unexpected repos %+v", res.repos)
	}
}

func TestProjectUsecase_ErrorMapping(t *testing.T) {
	notFound := &github.StatusError{StatusCode: 404}
	uc := NewProjectUsecase(&fakeGitHub{err: notFound}, nil, time.Minute, discard)
	if _, err := uc.ListProjects(context.Background(), "ghost"); !errors.Is(err, ErrProjectsNotFound) {
		t.Fatalf("expected ErrProjectsNotFound, got %v", err)
	}

	uc = NewProjectUsecase(&fakeGitHub{err: errors.New("dial tcp: timeout")}, nil, time.Minute, discard)
	if _, err := uc.ListProjects(context.Background(), "octocat"); !errors.Is(err, ErrProjectsUnavailable) {
		t.Fatalf("expected ErrProjectsUnavailable, got %v", err)
	}
}

func TestProjectUsecase_GetProject(t *testing.T) {
	gh := &fakeGitHub{repo: project.Repository{ID: 3, Name: "site"}}
	uc := NewProjectUsecase(gh, newMemCache(), time.Minute, discard)

	if _, err := uc.GetProject(context.Background(), "octocat", "bad/name"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	repo, err := uc.GetProject(context.Background(), "octocat", "site")
	if err != nil || repo.ID != 3 {
		t.Fatalf("unexpected result %+v err=%v", repo, err)
	}
	_, _ = uc.GetProject(context.Background(), "octocat", "site")
	if gh.calls.Load() != 1 {
		t.Fatalf("expected cached second lookup, got %d calls", gh.calls.Load())
	}
}
