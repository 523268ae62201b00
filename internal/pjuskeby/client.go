// Package pjuskeby is a minimal client for the Pjuskeby content site's
// REST API, the pipeline that authors rumor records.
package pjuskeby

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pjuskeby-rumors/internal/model"
)

// Client fetches rumor records from the content API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a content API client. baseURL is the site root, e.g.
// "https://pjuskeby.org".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// rumorRecord mirrors the wire shape: date arrives as an ISO-8601 string
// and interactions may be absent entirely.
type rumorRecord struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Content      string              `json:"content"`
	Category     string              `json:"category"`
	Date         string              `json:"date"`
	Interactions *model.Interactions `json:"interactions"`
}

// Rumors fetches the full rumor list.
func (c *Client) Rumors(ctx context.Context) ([]model.Rumor, error) {
	endpoint := c.baseURL + "/api/rumors"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("pjuskeby: rumors status %d", resp.StatusCode)
	}
	var recs []rumorRecord
	if err := json.NewDecoder(resp.Body).Decode(&recs); err != nil {
		return nil, err
	}
	out := make([]model.Rumor, 0, len(recs))
	for _, rec := range recs {
		r, err := convertRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func convertRecord(rec rumorRecord) (model.Rumor, error) {
	date, err := ParseDate(rec.Date)
	if err != nil {
		return model.Rumor{}, fmt.Errorf("pjuskeby: rumor %s: %w", rec.ID, err)
	}
	r := model.Rumor{
		ID:       rec.ID,
		Title:    rec.Title,
		Content:  rec.Content,
		Category: rec.Category,
		Date:     date,
	}
	if rec.Interactions != nil {
		r.Interactions = *rec.Interactions
	}
	return r, nil
}

// ParseDate accepts the date formats the content pipeline emits: full
// RFC 3339 timestamps or bare YYYY-MM-DD dates.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
