// Package anilist talks to the AniList GraphQL API.
package anilist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/mmcdole/anispin/internal/adapter"
	"github.com/mmcdole/anispin/internal/domain"
	"github.com/tidwall/gjson"
)

const (
	DefaultEndpoint = adapter.DefaultAniListEndpoint
	defaultTimeout  = 15 * time.Second
	defaultRetries  = 3
	defaultPerPage  = 50
)

// Options configures a Client. An empty Endpoint or zero Timeout uses the
// default; a negative RetryMax selects the default retry count.
type Options struct {
	Endpoint     string
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// Client implements domain.ListRepository, domain.MediaRepository and
// domain.GenreRepository against AniList
type Client struct {
	endpoint   string
	httpClient *retryablehttp.Client
	logger     *slog.Logger
}

// NewClient creates a new AniList API client
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RetryMax < 0 {
		opts.RetryMax = defaultRetries
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient.Timeout = opts.Timeout
	rc.RetryMax = opts.RetryMax
	if opts.RetryWaitMin > 0 {
		rc.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		rc.RetryWaitMax = opts.RetryWaitMax
	}
	rc.Logger = logger

	return &Client{
		endpoint:   opts.Endpoint,
		httpClient: rc,
		logger:     logger,
	}
}

// doRequest posts a GraphQL query and returns the raw response body.
// 429 and 5xx responses are retried by the transport.
func (c *Client) doRequest(ctx context.Context, query string, variables map[string]any) ([]byte, error) {
	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("anilist request", "url", c.endpoint, "variables", variables)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("anilist request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// AniList reports GraphQL errors with 4xx statuses; the body is the better signal
	if errs := gjson.GetBytes(body, "errors"); errs.Exists() && len(errs.Array()) > 0 {
		msg := gjson.GetBytes(body, "errors.0.message").String()
		c.logger.Warn("anilist query returned errors", "status", resp.StatusCode, "message", msg)
		return nil, fmt.Errorf("%w: %s", domain.ErrQueryFailed, msg)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("anilist request error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}

// field returns data at path, or false when it is absent or null
func field(body []byte, path string) (gjson.Result, bool) {
	r := gjson.GetBytes(body, path)
	if !r.Exists() || r.Type == gjson.Null {
		return r, false
	}
	return r, true
}

// FetchUserLists returns every anime list entry of username
func (c *Client) FetchUserLists(ctx context.Context, username string) ([]domain.ListEntry, error) {
	body, err := c.doRequest(ctx, userListsQuery, map[string]any{"userName": username})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUserNotFound, err)
	}

	raw, ok := field(body, "data.MediaListCollection")
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	var collection MediaListCollection
	if err := json.Unmarshal([]byte(raw.Raw), &collection); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	entries := MapListEntries(collection)
	c.logger.Debug("loaded user lists", "user", username, "lists", len(collection.Lists), "entries", len(entries))
	return entries, nil
}

// SearchMedia runs one page of the candidate search
func (c *Client) SearchMedia(ctx context.Context, q domain.MediaQuery) ([]domain.Media, error) {
	body, err := c.doRequest(ctx, searchMediaQuery, searchVariables(q))
	if err != nil {
		return nil, err
	}

	raw, ok := field(body, "data.Page.media")
	if !ok {
		return nil, fmt.Errorf("%w: missing data.Page.media", domain.ErrInvalidResponse)
	}

	var items []Media
	if err := json.Unmarshal([]byte(raw.Raw), &items); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return MapMedia(items), nil
}

// Genres returns the catalog's genre collection
func (c *Client) Genres(ctx context.Context) ([]string, error) {
	body, err := c.doRequest(ctx, genreCollectionQuery, nil)
	if err != nil {
		return nil, err
	}

	raw, ok := field(body, "data.GenreCollection")
	if !ok {
		return nil, fmt.Errorf("%w: missing data.GenreCollection", domain.ErrInvalidResponse)
	}

	var genres []string
	for _, g := range raw.Array() {
		if g.String() != "" {
			genres = append(genres, g.String())
		}
	}
	return genres, nil
}

// searchVariables converts a query to GraphQL variables. Unset filters are
// omitted so AniList ignores them.
func searchVariables(q domain.MediaQuery) map[string]any {
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	vars := map[string]any{
		"page":         page,
		"perPage":      perPage,
		"scoreGreater": q.ScoreGreater,
		"scoreLesser":  q.ScoreLesser,
	}
	if q.Genre != "" {
		vars["genre"] = q.Genre
	}
	if q.IsAdult != nil {
		vars["isAdult"] = *q.IsAdult
	}
	if q.Country != "" {
		vars["country"] = q.Country
	}
	if q.IDIn != nil {
		vars["idIn"] = q.IDIn
	}
	if q.IDNotIn != nil {
		vars["idNotIn"] = q.IDNotIn
	}
	if len(q.Sort) > 0 {
		vars["sort"] = q.Sort
	}
	if len(q.FormatNotIn) > 0 {
		vars["formatNotIn"] = q.FormatNotIn
	}
	return vars
}
