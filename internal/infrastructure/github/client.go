package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"devskillshub/internal/domain/project"
)

// ReposPerPage is the fixed page size of a user repository lookup.
const ReposPerPage = 10

var ErrNotFound = errors.New("github resource not found")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github request failed: status=%d endpoint=%s body=%s", e.StatusCode, e.Endpoint, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

type Client interface {
	ListUserRepos(ctx context.Context, username string) ([]project.Repository, error)
	GetRepo(ctx context.Context, owner string, repo string) (project.Repository, error)
}

type httpClient struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *httpClient) ListUserRepos(ctx context.Context, username string) ([]project.Repository, error) {
	q := url.Values{}
	q.Set("sort", "updated")
	q.Set("per_page", strconv.Itoa(ReposPerPage))
	endpoint := c.baseURL + "/users/" + url.PathEscape(username) + "/repos?" + q.Encode()

	out := make([]project.Repository, 0, ReposPerPage)
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *httpClient) GetRepo(ctx context.Context, owner string, repo string) (project.Repository, error) {
	endpoint := c.baseURL + "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo)

	var out project.Repository
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return project.Repository{}, err
	}
	return out, nil
}

func (c *httpClient) getJSON(ctx context.Context, endpoint string, out any) error {
	if c == nil || c.client == nil {
		return errors.New("nil github client")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "devskillshub")

	resp, err := c.client.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("[GitHub] request error endpoint=%s err=%v", endpoint, err)
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		if c.logger != nil {
			c.logger.Printf("[GitHub] request failed endpoint=%s status=%d body=%q", endpoint, resp.StatusCode, bodyStr)
		}
		return &StatusError{StatusCode: resp.StatusCode, Endpoint: endpoint, Body: bodyStr}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

var _ Client = (*httpClient)(nil)
