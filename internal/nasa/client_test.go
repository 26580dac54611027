package nasa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, baseURL, "test-key", 2*time.Second, nil)
}

func TestNeoWindowDefaults(t *testing.T) {
	now := time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)

	start, end, err := NeoWindow("", "", now)
	require.NoError(t, err)
	require.Equal(t, "2024-03-10", start)
	require.Equal(t, "2024-03-17", end)
}

func TestNeoWindowDefaultsUseUTC(t *testing.T) {
	// 23:30 in UTC+10 is still the previous day in UTC.
	loc := time.FixedZone("UTC+10", 10*3600)
	now := time.Date(2024, 3, 11, 8, 30, 0, 0, loc)

	start, _, err := NeoWindow("", "", now)
	require.NoError(t, err)
	require.Equal(t, "2024-03-10", start)
}

func TestNeoWindow(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		start     string
		end       string
		wantStart string
		wantEnd   string
		wantErr   bool
	}{
		{name: "explicit start only", start: "2024-01-01", wantStart: "2024-01-01", wantEnd: "2024-01-08"},
		{name: "both explicit", start: "2024-01-01", end: "2024-01-03", wantStart: "2024-01-01", wantEnd: "2024-01-03"},
		{name: "same day", start: "2024-01-01", end: "2024-01-01", wantStart: "2024-01-01", wantEnd: "2024-01-01"},
		{name: "exactly seven days", start: "2024-01-01", end: "2024-01-08", wantStart: "2024-01-01", wantEnd: "2024-01-08"},
		{name: "over seven days", start: "2024-01-01", end: "2024-01-09", wantErr: true},
		{name: "end before start", start: "2024-01-05", end: "2024-01-01", wantErr: true},
		{name: "bad start format", start: "01/02/2024", wantErr: true},
		{name: "bad end format", start: "2024-01-01", end: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := NeoWindow(tt.start, tt.end, now)
			if tt.wantErr {
				require.Error(t, err)
				require.Equal(t, KindRejected, KindOf(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantStart, start)
			require.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestFetchAPOD(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/planetary/apod", r.URL.Path)
		require.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		require.Equal(t, "2024-02-14", r.URL.Query().Get("date"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title":"Heart Nebula","explanation":"IC 1805","url":"https://img","date":"2024-02-14","media_type":"image"}`))
	}))
	defer srv.Close()

	payload, err := newTestClient(srv.URL).FetchAPOD(context.Background(), "2024-02-14")
	require.NoError(t, err)
	require.Equal(t, "Heart Nebula", payload.Title)
	require.Equal(t, "image", payload.MediaType)
}

func TestFetchAPODRejectsBadDate(t *testing.T) {
	_, err := newTestClient("http://unused").FetchAPOD(context.Background(), "tomorrow")
	require.Error(t, err)
	require.Equal(t, KindRejected, KindOf(err))
}

func TestSearchImagesEncodesQueryAndDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "crab nebula & friends", r.URL.Query().Get("q"))
		require.Equal(t, "image", r.URL.Query().Get("media_type"))
		require.Equal(t, "1", r.URL.Query().Get("page"))

		w.Write([]byte(`{"collection":{"items":[],"metadata":{"total_hits":0}}}`))
	}))
	defer srv.Close()

	payload, err := newTestClient(srv.URL).SearchImages(context.Background(), ImageSearchParams{Query: "crab nebula & friends"})
	require.NoError(t, err)
	require.Equal(t, 0, payload.Collection.Metadata.TotalHits)
}

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   ErrorKind
	}{
		{name: "server error", status: http.StatusInternalServerError, want: KindUnavailable},
		{name: "bad gateway", status: http.StatusBadGateway, want: KindUnavailable},
		{name: "not found", status: http.StatusNotFound, want: KindRejected},
		{name: "too many requests", status: http.StatusTooManyRequests, want: KindRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).FetchAPOD(context.Background(), "")
			require.Error(t, err)
			require.Equal(t, tt.want, KindOf(err))
		})
	}
}

func TestNetworkFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := newTestClient(srv.URL).FetchAPOD(context.Background(), "")
	require.Error(t, err)
	require.Equal(t, KindUnavailable, KindOf(err))
}

func TestUndecodableBodyIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchAPOD(context.Background(), "")
	require.Error(t, err)
	require.Equal(t, KindMalformed, KindOf(err))
}

func TestFetchNeoFeedMissingObjectsKeyIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"element_count":0}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchNeoFeed(context.Background(), "2024-01-01", "2024-01-02")
	require.Error(t, err)
	require.Equal(t, KindMalformed, KindOf(err))
}

func TestFetchNeoFeedSendsResolvedWindow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/neo/rest/v1/feed", r.URL.Path)
		require.Equal(t, "2024-01-01", r.URL.Query().Get("start_date"))
		require.Equal(t, "2024-01-08", r.URL.Query().Get("end_date"))
		require.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		w.Write([]byte(`{"element_count":0,"near_earth_objects":{}}`))
	}))
	defer srv.Close()

	payload, err := newTestClient(srv.URL).FetchNeoFeed(context.Background(), "2024-01-01", "")
	require.NoError(t, err)
	require.NotNil(t, payload.NearEarthObjects)
}
