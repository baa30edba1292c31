package suggestion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/habitualhq/habitual/internal/core/domain"
)

var _ domain.Suggester = (*Client)(nil)

// Client talks to the external AI suggestion service. The service is an
// opaque collaborator: only the request/response shapes are contractual,
// nothing about its output is deterministic.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type suggestRequest struct {
	Interests         string `json:"interests"`
	Goals             string `json:"goals"`
	RecentlyCompleted string `json:"recently_completed"`
}

type suggestResponse struct {
	Suggestions []domain.SuggestionGroup `json:"suggestions"`
}

type packRequest struct {
	Theme string `json:"theme"`
}

type packResponse struct {
	Pack *domain.HabitPack `json:"pack"`
}

func (c *Client) Suggest(ctx context.Context, interests, goals, recentlyCompleted string) ([]domain.SuggestionGroup, error) {
	req := suggestRequest{
		Interests:         interests,
		Goals:             goals,
		RecentlyCompleted: recentlyCompleted,
	}

	var resp suggestResponse
	if err := c.post(ctx, "/suggest", req, &resp); err != nil {
		return nil, err
	}

	return resp.Suggestions, nil
}

func (c *Client) SuggestPack(ctx context.Context, theme string) (*domain.HabitPack, error) {
	req := packRequest{Theme: theme}

	var resp packResponse
	if err := c.post(ctx, "/suggest-pack", req, &resp); err != nil {
		return nil, err
	}

	return resp.Pack, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("suggestion service error: %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
