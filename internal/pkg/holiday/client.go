package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Lookup reports whether a calendar date is a public holiday.
type Lookup interface {
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
}

type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	countryCode string
}

func NewClient(baseURL, apiKey, countryCode string, timeout time.Duration) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     baseURL,
		apiKey:      apiKey,
		countryCode: countryCode,
	}
}

type holidaysResponse struct {
	Response struct {
		Holidays []struct {
			Name string `json:"name"`
		} `json:"holidays"`
	} `json:"response"`
}

// IsHoliday queries the holiday API for a single calendar date. Lookup
// failures degrade to "not a holiday" so that shift creation never blocks
// on the external provider.
func (c *Client) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	if c.apiKey == "" {
		return false, nil
	}

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("country", c.countryCode)
	q.Set("year", fmt.Sprintf("%d", date.Year()))
	q.Set("month", fmt.Sprintf("%d", int(date.Month())))
	q.Set("day", fmt.Sprintf("%d", date.Day()))

	endpoint := fmt.Sprintf("%s/holidays?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build holiday request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("Holiday lookup failed, treating date as non-holiday", "date", date.Format("2006-01-02"), "error", err)
		return false, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("Holiday API returned non-OK status, treating date as non-holiday", "date", date.Format("2006-01-02"), "status", resp.StatusCode)
		return false, nil
	}

	var body holidaysResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		slog.Warn("Holiday API response decode failed, treating date as non-holiday", "date", date.Format("2006-01-02"), "error", err)
		return false, nil
	}

	return len(body.Response.Holidays) > 0, nil
}
