package usecase

import (
	"context"
	"strings"
	"time"
)

type ProjectCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

func ProjectsCacheKey(username string) string {
	return "github:repos:" + strings.ToLower(strings.TrimSpace(username))
}

func ProjectCacheKey(owner string, repo string) string {
	return "github:repo:" + strings.ToLower(strings.TrimSpace(owner)) + "/" + strings.ToLower(strings.TrimSpace(repo))
}
