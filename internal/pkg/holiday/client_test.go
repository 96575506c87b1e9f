package holiday

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsHoliday_Found(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"api_key": r.URL.Query().Get("api_key"),
			"country": r.URL.Query().Get("country"),
			"year":    r.URL.Query().Get("year"),
			"month":   r.URL.Query().Get("month"),
			"day":     r.URL.Query().Get("day"),
		}
		w.Write([]byte(`{"response":{"holidays":[{"name":"Independence Day"}]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "IL", time.Second)

	isHoliday, err := client.IsHoliday(context.Background(), time.Date(2026, 4, 22, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.True(t, isHoliday)
	assert.Equal(t, "test-key", gotQuery["api_key"])
	assert.Equal(t, "IL", gotQuery["country"])
	assert.Equal(t, "2026", gotQuery["year"])
	assert.Equal(t, "4", gotQuery["month"])
	assert.Equal(t, "22", gotQuery["day"])
}

func TestIsHoliday_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"holidays":[]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "IL", time.Second)

	isHoliday, err := client.IsHoliday(context.Background(), time.Date(2026, 4, 23, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.False(t, isHoliday)
}

func TestIsHoliday_NoAPIKeySkipsLookup(t *testing.T) {
	client := NewClient("http://unreachable.invalid", "", "IL", time.Second)

	isHoliday, err := client.IsHoliday(context.Background(), time.Now())

	require.NoError(t, err)
	assert.False(t, isHoliday)
}

func TestIsHoliday_FailsOpenOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "IL", time.Second)

	isHoliday, err := client.IsHoliday(context.Background(), time.Now())

	require.NoError(t, err)
	assert.False(t, isHoliday)
}

func TestIsHoliday_FailsOpenOnBadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "IL", time.Second)

	isHoliday, err := client.IsHoliday(context.Background(), time.Now())

	require.NoError(t, err)
	assert.False(t, isHoliday)
}

func TestIsHoliday_FailsOpenWhenUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "test-key", "IL", 200*time.Millisecond)

	isHoliday, err := client.IsHoliday(context.Background(), time.Now())

	require.NoError(t, err)
	assert.False(t, isHoliday)
}
