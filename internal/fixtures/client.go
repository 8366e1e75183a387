package fixtures

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// APIClient fetches fixtures from the league API over plain HTTP.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
}

// NewClient creates a new league API client.
func NewClient(baseURL string) LeagueClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    baseURL,
	}
}

var _ LeagueClient = (*APIClient)(nil)

// GetFixtures fetches all fixtures matching the search parameters,
// paging through the API until the last page.
func (c *APIClient) GetFixtures(params *SearchFixturesParams) ([]Fixture, error) {
	const pageSize = 100
	var (
		all  []Fixture
		page = 0
	)

	for {
		body, err := c.fetchPage(params, page, pageSize)
		if err != nil {
			return nil, err
		}

		log.Info("Fetched fixtures page", "count", len(body.Fixtures), "page", page)
		all = append(all, body.Fixtures...)

		// Less than a full page means we're done.
		if len(body.Fixtures) < pageSize {
			break
		}
		page++
	}
	log.Info("Fetched all fixtures", "count", len(all))
	return all, nil
}

func (c *APIClient) fetchPage(params *SearchFixturesParams, page, pageSize int) (*fixturesResponse, error) {
	q := url.Values{}
	q.Set("league_id", params.LeagueID)
	if len(params.TeamIDs) > 0 {
		q.Set("team_ids", strings.Join(params.TeamIDs, ","))
	}
	if params.FromStartDate != "" {
		q.Set("from_start_date", params.FromStartDate)
	}
	q.Set("size", strconv.Itoa(pageSize))
	q.Set("page", strconv.Itoa(page))

	reqURL := fmt.Sprintf("%s/v1/fixtures?%s", c.BaseURL, q.Encode())
	log.Debug("Fetching fixtures from league API", "url", reqURL)

	req, err := http.NewRequestWithContext(context.Background(), "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ScrimSync/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from league API", "status", resp.StatusCode, "body", string(raw))
		return nil, fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	var body fixturesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &body, nil
}
