package opentimetables

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/simonrob/opentimetables-utils/types"
)

// Represents a non-200 reply from the service. Callers treat it as "nothing
// found" for the affected item rather than aborting the whole run.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.URL, e.StatusCode)
}

// Represents a client for the OpenTimetables broker API. One client, and with
// it one set of underlying connections, is reused for every request of a run.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Creates a broker API client from the run configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

// Searches the category listing for modules. The query can be a module code,
// a keyword or empty to list everything; results come back one page at a
// time.
func (c *Client) SearchCategories(ctx context.Context, query string, page int) (*types.CategoryPage, error) {
	endpoint := fmt.Sprintf("%sbroker/api/CategoryTypes/%s/Categories/Filter?pageNumber=%d&query=%s",
		c.cfg.BaseURL, c.cfg.CategoryType, page, url.QueryEscape(query))

	var result types.CategoryPage
	if err := c.post(ctx, endpoint, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Searches the category listing for modules and walks every page of results.
// Also returns the total match count the service declared, which can differ
// from the number of categories when later pages fail; those are skipped with
// a warning rather than failing the whole walk.
func (c *Client) SearchAllCategories(ctx context.Context, query string) ([]types.Category, int, error) {
	first, err := c.SearchCategories(ctx, query, 1)
	if err != nil {
		return nil, 0, err
	}

	categories := append([]types.Category{}, first.Results...)
	for page := 2; page <= first.TotalPages; page++ {
		fmt.Printf("\tFetching page %d of %d\n", page, first.TotalPages)
		result, err := c.SearchCategories(ctx, query, page)
		if err != nil {
			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				return nil, 0, err
			}
			Warnf("\tWarning: could not fetch page %d; skipping", page)
			continue
		}
		categories = append(categories, result.Results...)
	}
	return categories, first.Count, nil
}

// Fetches the scheduled activities selected by an event query. A non-200
// reply yields a nil timetable instead of an error, mirroring how a search
// miss behaves.
func (c *Client) FetchTimetable(ctx context.Context, query types.EventQuery) ([]types.CategoryTimetable, error) {
	endpoint := fmt.Sprintf("%sbroker/api/categoryTypes/%s/categories/events/filter",
		c.cfg.BaseURL, c.cfg.CategoryType)

	var result []types.CategoryTimetable
	if err := c.post(ctx, endpoint, query, &result); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return nil, nil
		}
		return nil, err
	}
	return result, nil
}

// Performs one JSON POST against the broker API and decodes the response.
func (c *Client) post(ctx context.Context, endpoint string, body any, out any) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not encode request body: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", c.cfg.Authorization)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, URL: endpoint}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}
	return nil
}
