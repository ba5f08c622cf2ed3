package hackernews

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/korvo-dev/echofeed/backend/internal/models"
)

// BaseURL is the public Hacker News Firebase API.
const BaseURL = "https://hacker-news.firebaseio.com"

// Item is one Hacker News item as the API returns it. URL is absent for
// internal/text-only posts.
type Item struct {
	By    string  `json:"by"`
	ID    int64   `json:"id"`
	Kids  []int64 `json:"kids"`
	Score int     `json:"score"`
	Time  int64   `json:"time"`
	Title string  `json:"title"`
	Type  string  `json:"type"`
	URL   *string `json:"url"`
}

// ToPost maps an API item to the wire form used by the rest of the app.
func (i Item) ToPost() models.Post {
	url := ""
	if i.URL != nil {
		url = *i.URL
	}
	return models.Post{
		ID:        strconv.FormatInt(i.ID, 10),
		Title:     i.Title,
		Author:    i.By,
		URL:       url,
		Timestamp: strconv.FormatInt(i.Time, 10),
	}
}

// Client describes the read-only item source.
type Client interface {
	BestStoryIDs(ctx context.Context) ([]int64, error)
	Item(ctx context.Context, id int64) (*Item, error)
}

type httpClient struct {
	client  *http.Client
	baseURL string
}

// NewClient creates a client against the public API.
func NewClient(client *http.Client) Client {
	return NewClientWithBaseURL(client, BaseURL)
}

// NewClientWithBaseURL creates a client against a custom base URL (for tests).
func NewClientWithBaseURL(client *http.Client, baseURL string) Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpClient{client: client, baseURL: baseURL}
}

// BestStoryIDs fetches the ranked list of best-story ids, front-to-back in
// external rank order.
func (c *httpClient) BestStoryIDs(ctx context.Context) ([]int64, error) {
	url := fmt.Sprintf("%s/v0/beststories.json", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating best stories request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching best stories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("best stories returned status %d", resp.StatusCode)
	}

	var ids []int64
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		return nil, fmt.Errorf("decoding best stories response: %w", err)
	}
	return ids, nil
}

// Item fetches a single item by id. Safe to call concurrently.
func (c *httpClient) Item(ctx context.Context, id int64) (*Item, error) {
	url := fmt.Sprintf("%s/v0/item/%d.json", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating item request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching item %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("item %d returned status %d", id, resp.StatusCode)
	}

	var item Item
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("decoding item %d: %w", id, err)
	}
	return &item, nil
}
