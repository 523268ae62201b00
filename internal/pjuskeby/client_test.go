package pjuskeby

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRumors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/rumors", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"id": "r1",
				"title": "The mayor's hat moved on its own",
				"content": "Seen by three people.",
				"category": "mystery",
				"date": "2026-08-26T10:00:00Z",
				"interactions": {"views": 10, "confirmed": 3, "debunked": 1, "shared": 2}
			},
			{
				"id": "r2",
				"title": "New bench by the harbour",
				"content": "",
				"category": "harbour",
				"date": "2026-08-20"
			}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	rumors, err := c.Rumors(context.Background())
	require.NoError(t, err)
	require.Len(t, rumors, 2)

	assert.Equal(t, "r1", rumors[0].ID)
	assert.Equal(t, int64(3), rumors[0].Interactions.Confirmed)
	assert.True(t, rumors[0].Date.Equal(time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)))

	// missing interactions default to zero counters
	assert.Equal(t, int64(0), rumors[1].Interactions.Views)
	assert.True(t, rumors[1].Date.Equal(time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)))
}

func TestRumorsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Rumors(context.Background())
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		ok   bool
		want time.Time
	}{
		{"2026-08-26T10:00:00Z", true, time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)},
		{"2026-08-20", true, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)},
		{"yesterday-ish", false, time.Time{}},
		{"", false, time.Time{}},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok {
			require.NoError(t, err, tc.in)
			assert.True(t, got.Equal(tc.want), tc.in)
		} else {
			assert.Error(t, err, tc.in)
		}
	}
}
