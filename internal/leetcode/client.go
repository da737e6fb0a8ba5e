package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/lc-tui/lc/internal/models"
)

const (
	DefaultEndpoint = "https://leetcode.com/graphql/"
	userAgent       = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/117"
	defaultReferer  = "https://leetcode.com/problems/all/"

	// DefaultConcurrency bounds parallel detail requests
	DefaultConcurrency = 10
)

// Options configures a Client. Session and CSRFToken are sent as cookies
// when set; anonymous requests work for public problem data.
type Options struct {
	Endpoint    string
	Session     string
	CSRFToken   string
	Referer     string
	HTTPClient  *http.Client
	Concurrency int
}

// Client talks to the LeetCode GraphQL endpoint
type Client struct {
	endpoint    string
	session     string
	csrfToken   string
	referer     string
	http        *http.Client
	concurrency int
}

// NewClient creates a client, filling in defaults for unset options
func NewClient(opts Options) *Client {
	c := &Client{
		endpoint:    opts.Endpoint,
		session:     opts.Session,
		csrfToken:   opts.CSRFToken,
		referer:     opts.Referer,
		http:        opts.HTTPClient,
		concurrency: opts.Concurrency,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.referer == "" {
		c.referer = defaultReferer
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
	}
	if c.concurrency <= 0 {
		c.concurrency = DefaultConcurrency
	}
	return c
}

// Request is a GraphQL request body
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// Query posts a GraphQL request and returns the "data" member of the response
func (c *Client) Query(ctx context.Context, req Request) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", req.OperationName, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s: HTTP %d", req.OperationName, resp.StatusCode)
	}

	var gql gqlResponse
	if err := json.Unmarshal(data, &gql); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(gql.Errors) > 0 {
		msgs := make([]string, len(gql.Errors))
		for i, e := range gql.Errors {
			msgs[i] = e.Message
		}
		return nil, fmt.Errorf("%s: %s", req.OperationName, strings.Join(msgs, "; "))
	}

	return gql.Data, nil
}

func (c *Client) setHeaders(r *http.Request) {
	r.Header.Set("User-Agent", userAgent)
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Accept", "application/json")
	r.Header.Set("Referer", c.referer)
	if c.session != "" || c.csrfToken != "" {
		r.Header.Set("Cookie", fmt.Sprintf("LEETCODE_SESSION=%s;csrftoken=%s", c.session, c.csrfToken))
	}
	if c.csrfToken != "" {
		r.Header.Set("x-csrftoken", c.csrfToken)
	}
}

// ProblemList fetches one page of the problem set along with the total number of problems
func (c *Client) ProblemList(ctx context.Context, skip, limit int) ([]*models.Problem, int, error) {
	data, err := c.Query(ctx, Request{
		Query: problemListQuery,
		Variables: map[string]any{
			"categorySlug": "",
			"skip":         skip,
			"limit":        limit,
			"filters":      map[string]any{},
		},
		OperationName: "problemsetQuestionList",
	})
	if err != nil {
		return nil, 0, err
	}

	var list problemListData
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, 0, fmt.Errorf("failed to parse problem list: %w", err)
	}

	problems := make([]*models.Problem, 0, len(list.ProblemsetQuestionList.Questions))
	for _, q := range list.ProblemsetQuestionList.Questions {
		problems = append(problems, q.toProblem(""))
	}
	return problems, list.ProblemsetQuestionList.Total, nil
}

// QuestionContent fetches a problem's description HTML and the starter code for lang
func (c *Client) QuestionContent(ctx context.Context, slug, lang string) (string, string, error) {
	q, err := c.question(ctx, questionContentQuery, "questionContent", slug)
	if err != nil {
		return "", "", err
	}

	content := ""
	if q.Content != nil {
		content = *q.Content
	}
	return content, snippetFor(q.CodeSnippets, lang), nil
}

// Question fetches full metadata, content and starter code for a single problem
func (c *Client) Question(ctx context.Context, slug, lang string) (*models.Problem, error) {
	q, err := c.question(ctx, questionQuery, "questionData", slug)
	if err != nil {
		return nil, err
	}
	return q.toProblem(lang), nil
}

func (c *Client) question(ctx context.Context, query, op, slug string) (*questionData, error) {
	data, err := c.Query(ctx, Request{
		Query:         query,
		Variables:     map[string]any{"titleSlug": slug},
		OperationName: op,
	})
	if err != nil {
		return nil, err
	}

	var resp questionResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse question: %w", err)
	}
	if resp.Question == nil {
		return nil, fmt.Errorf("%q: %w", slug, models.ErrProblemNotFound)
	}
	return resp.Question, nil
}

// FetchDetails fills in description and starter code for each problem. At most
// the configured number of requests run at once. progress, if set, is called
// once per finished problem. The first error is returned; the rest are logged.
func (c *Client) FetchDetails(ctx context.Context, problems []*models.Problem, lang string, progress func()) error {
	type result struct {
		content, snippet string
		err              error
	}

	results := make([]result, len(problems))
	sem := make(chan struct{}, c.concurrency)
	var wg sync.WaitGroup

	for i, p := range problems {
		wg.Add(1)
		go func(i int, slug string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results[i].err = ctx.Err()
				return
			}
			defer func() { <-sem }()

			content, snippet, err := c.QuestionContent(ctx, slug, lang)
			results[i] = result{content: content, snippet: snippet, err: err}
			if progress != nil {
				progress()
			}
		}(i, p.TitleSlug)
	}
	wg.Wait()

	var firstErr error
	for i, r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to fetch %s: %w", problems[i].TitleSlug, r.err)
			} else {
				slog.Warn("failed to fetch problem details", "slug", problems[i].TitleSlug, "err", r.err)
			}
			continue
		}
		problems[i].Description = r.content
		problems[i].Snippet = r.snippet
		problems[i].RenderedDescription = ""
	}
	return firstErr
}

func (q *questionData) toProblem(lang string) *models.Problem {
	p := &models.Problem{
		ID:             q.FrontendQuestionID,
		Title:          q.Title,
		TitleSlug:      q.TitleSlug,
		Difficulty:     models.Difficulty(q.Difficulty),
		AcceptanceRate: q.AcRate,
		PaidOnly:       q.PaidOnly,
	}
	if q.Status != nil {
		p.Status = models.ParseStatus(*q.Status)
	}
	for _, t := range q.TopicTags {
		p.Tags = append(p.Tags, t.Slug)
	}
	if q.Content != nil {
		p.Description = *q.Content
	}
	if lang != "" {
		p.Snippet = snippetFor(q.CodeSnippets, lang)
	}
	return p
}
