package roosterteeth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/roosterteeth/schema"
)

// fakeAPI serves recorded fixtures by request path and records what it saw.
type fakeAPI struct {
	t      *testing.T
	routes map[string]route

	mu       sync.Mutex
	requests []*http.Request
}

type route struct {
	status  int
	fixture string
	body    string
}

func newFakeAPI(t *testing.T, routes map[string]route) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{t: t, routes: routes}
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)
	return api, server
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Clone(context.Background()))
	f.mu.Unlock()

	rt, ok := f.routes[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}

	body := []byte(rt.body)
	if rt.fixture != "" {
		var err error
		body, err = os.ReadFile(rt.fixture)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if rt.status != 0 {
		w.WriteHeader(rt.status)
	}
	_, _ = w.Write(body)
}

func (f *fakeAPI) lastRequest() *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(f.t, f.requests)
	return f.requests[len(f.requests)-1]
}

func fixture(name string) route {
	return route{fixture: filepath.Join("..", "schema", "testdata", name)}
}

func newTestClient(t *testing.T, server *httptest.Server, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithBaseURL(server.URL + "/api/v1")}, opts...)
	client, err := NewClient(context.Background(), Anonymous, zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name       string
		credential Credential
		opts       []Option
		wantErr    error
		errMsg     string
	}{
		{
			name:       "anonymous with defaults",
			credential: Anonymous,
		},
		{
			name:       "missing credential",
			credential: nil,
			wantErr:    ErrInvalidConfig,
			errMsg:     "credential is required",
		},
		{
			name:       "empty base URL",
			credential: Anonymous,
			opts:       []Option{WithBaseURL("")},
			wantErr:    ErrInvalidConfig,
			errMsg:     "base URL is required",
		},
		{
			name:       "relative base URL",
			credential: Anonymous,
			opts:       []Option{WithBaseURL("api/v1")},
			wantErr:    ErrInvalidConfig,
		},
		{
			name:       "login without username",
			credential: Login{Password: "secret"},
			wantErr:    ErrInvalidConfig,
			errMsg:     "username is required",
		},
		{
			name:       "login without password",
			credential: Login{Username: "burnie"},
			wantErr:    ErrInvalidConfig,
			errMsg:     "password is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(context.Background(), tt.credential, logger, tt.opts...)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, client)
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, DefaultBaseURL, client.baseURL)
			assert.Equal(t, UserAgent, client.userAgent)
			assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
			assert.False(t, client.Authenticated())
		})
	}
}

func TestClientOptions(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient(ctx, Anonymous, logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("non-positive timeout keeps the default", func(t *testing.T) {
		client, err := NewClient(ctx, Anonymous, logger, WithTimeout(0))
		require.NoError(t, err)
		assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient(ctx, Anonymous, logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Same(t, customClient, client.httpClient)
	})

	t.Run("base URL trailing slash is trimmed", func(t *testing.T) {
		client, err := NewClient(ctx, Anonymous, logger, WithBaseURL("http://localhost:8080/api/v1/"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/api/v1", client.baseURL)
	})

	t.Run("with user agent", func(t *testing.T) {
		api, server := newFakeAPI(t, map[string]route{"/api/v1/channels": fixture("channels.json")})
		client := newTestClient(t, server, WithUserAgent("rt-test/1.0"))

		_, err := client.ListChannels(ctx)
		require.NoError(t, err)
		assert.Equal(t, "rt-test/1.0", api.lastRequest().Header.Get("User-Agent"))
	})
}

func TestAnonymousRequests(t *testing.T) {
	api, server := newFakeAPI(t, map[string]route{"/api/v1/channels": fixture("channels.json")})
	client := newTestClient(t, server)

	channels, err := client.ListChannels(context.Background())
	require.NoError(t, err)
	require.Len(t, channels, 2)
	assert.Equal(t, "Rooster Teeth", channels[0].Attributes.Name)
	assert.Equal(t, "achievement-hunter", channels[1].Attributes.Slug)

	req := api.lastRequest()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, UserAgent, req.Header.Get("User-Agent"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestListEpisodes(t *testing.T) {
	tests := []struct {
		name      string
		page      uint16
		opts      ListOptions
		wantQuery url.Values
	}{
		{
			name: "defaults to descending without channel",
			page: 1,
			wantQuery: url.Values{
				"per_page": {"100"},
				"order":    {"desc"},
				"page":     {"1"},
			},
		},
		{
			name: "channel filter and ascending order",
			page: 3,
			opts: ListOptions{ChannelID: "achievement-hunter", Order: OrderAsc},
			wantQuery: url.Values{
				"per_page":   {"100"},
				"channel_id": {"achievement-hunter"},
				"order":      {"asc"},
				"page":       {"3"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, server := newFakeAPI(t, map[string]route{"/api/v1/episodes": fixture("season_episodes.json")})
			client := newTestClient(t, server)

			episodes, err := client.ListEpisodes(context.Background(), tt.page, tt.opts)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(episodes), 100)
			assert.Len(t, episodes, 2)
			assert.Equal(t, tt.wantQuery, api.lastRequest().URL.Query())
		})
	}
}

func TestEpisodesPage(t *testing.T) {
	_, server := newFakeAPI(t, map[string]route{"/api/v1/episodes": fixture("season_episodes.json")})
	client := newTestClient(t, server)

	page, err := client.EpisodesPage(context.Background(), 1, ListOptions{})
	require.NoError(t, err)
	assert.True(t, page.HasPagination())
	assert.Equal(t, uint16(1), page.Page.OrElse(0))
	assert.False(t, page.HasMorePages())
}

func TestListSeries(t *testing.T) {
	api, server := newFakeAPI(t, map[string]route{"/api/v1/shows": fixture("series_list.json")})
	client := newTestClient(t, server)

	series, err := client.ListSeries(context.Background(), ListOptions{ChannelID: "rooster-teeth"})
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.LessOrEqual(t, len(series), 1000)
	assert.Equal(t, "ff9265c3-464d-11e7-a302-065410f210c4", series[0].UUID)
	assert.Equal(t, "1-800-magic", series[1].Attributes.Slug)

	assert.Equal(t, url.Values{
		"per_page":   {"1000"},
		"channel_id": {"rooster-teeth"},
		"order":      {"desc"},
		"page":       {"1"},
	}, api.lastRequest().URL.Query())
}

func TestGetSeasons(t *testing.T) {
	t.Run("ascending", func(t *testing.T) {
		api, server := newFakeAPI(t, map[string]route{"/api/v1/shows/red-vs-blue/seasons": fixture("seasons.json")})
		client := newTestClient(t, server)

		seasons, err := client.GetSeasons(context.Background(), "red-vs-blue", OrderAsc)
		require.NoError(t, err)
		require.Len(t, seasons, 2)
		assert.Equal(t, uint16(1), seasons[0].Attributes.Number)
		assert.Equal(t, "red-vs-blue-season-2", seasons[1].Attributes.Slug)
		assert.Equal(t, "asc", api.lastRequest().URL.Query().Get("order"))
	})

	t.Run("defaults to descending", func(t *testing.T) {
		api, server := newFakeAPI(t, map[string]route{"/api/v1/shows/red-vs-blue/seasons": fixture("seasons.json")})
		client := newTestClient(t, server)

		_, err := client.GetSeasons(context.Background(), "red-vs-blue", "")
		require.NoError(t, err)
		assert.Equal(t, url.Values{"order": {"desc"}}, api.lastRequest().URL.Query())
	})
}

func TestGetSeasonEpisodes(t *testing.T) {
	t.Run("defaults to ascending", func(t *testing.T) {
		api, server := newFakeAPI(t, map[string]route{
			"/api/v1/seasons/red-vs-blue-season-1/episodes": fixture("season_episodes.json"),
		})
		client := newTestClient(t, server)

		episodes, err := client.GetSeasonEpisodes(context.Background(), "red-vs-blue-season-1", "")
		require.NoError(t, err)
		require.Len(t, episodes, 2)
		assert.Equal(t, "Episode 1: Why Are We Here?", episodes[0].Attributes.Title)
		assert.Equal(t, "red-vs-blue-season-1-episode-2", episodes[1].Attributes.Slug)
		assert.Equal(t, url.Values{"order": {"asc"}}, api.lastRequest().URL.Query())
	})

	t.Run("explicit descending", func(t *testing.T) {
		api, server := newFakeAPI(t, map[string]route{
			"/api/v1/seasons/red-vs-blue-season-1/episodes": fixture("season_episodes.json"),
		})
		client := newTestClient(t, server)

		_, err := client.GetSeasonEpisodes(context.Background(), "red-vs-blue-season-1", OrderDesc)
		require.NoError(t, err)
		assert.Equal(t, "desc", api.lastRequest().URL.Query().Get("order"))
	})
}

func TestGetSeries(t *testing.T) {
	api, server := newFakeAPI(t, map[string]route{"/api/v1/shows/red-vs-blue": fixture("series.json")})
	client := newTestClient(t, server)

	series, err := client.GetSeries(context.Background(), "red-vs-blue")
	require.NoError(t, err)
	assert.Equal(t, "ff925ff9-464d-11e7-a302-065410f210c4", series.UUID)
	assert.Equal(t, "episodic", series.Attributes.Category)
	assert.Empty(t, api.lastRequest().URL.RawQuery)
}

func TestGetVideo(t *testing.T) {
	const slug = "million-dollars-but-season-1-magic-dogs-and-muscle-men"

	t.Run("entitled video matches its episode", func(t *testing.T) {
		_, server := newFakeAPI(t, map[string]route{
			"/api/v1/watch/" + slug:             fixture("episode.json"),
			"/api/v1/watch/" + slug + "/videos": fixture("video.json"),
		})
		client := newTestClient(t, server)
		ctx := context.Background()

		episode, err := client.GetEpisode(ctx, slug)
		require.NoError(t, err)

		video, err := client.GetVideo(ctx, slug)
		require.NoError(t, err)
		assert.Equal(t, "48bb3e93-04ea-4f90-a6ec-f9aff2c79dfa", video.UUID)
		assert.Equal(t, episode.ID, video.Attributes.ContentID)
		assert.Equal(t, episode.UUID, video.Attributes.ContentUUID)
	})

	t.Run("not entitled", func(t *testing.T) {
		_, server := newFakeAPI(t, map[string]route{
			"/api/v1/watch/" + slug + "/videos": {status: http.StatusForbidden, body: `{"error":"forbidden"}`},
		})
		client := newTestClient(t, server)

		_, err := client.GetVideo(context.Background(), slug)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrVideoUnavailable)

		var unavailable *VideoUnavailableError
		require.ErrorAs(t, err, &unavailable)
		assert.Equal(t, slug, unavailable.Slug)
		assert.True(t, unavailable.IsUnauthorized())
		assert.False(t, unavailable.IsNotFound())

		var apiErr *APIError
		assert.False(t, errors.As(err, &apiErr), "entitlement failure must not be a generic API error")
	})

	t.Run("not found keeps its status", func(t *testing.T) {
		_, server := newFakeAPI(t, map[string]route{})
		client := newTestClient(t, server)

		_, err := client.GetVideo(context.Background(), "deleted-episode")
		var unavailable *VideoUnavailableError
		require.ErrorAs(t, err, &unavailable)
		assert.True(t, unavailable.IsNotFound())
	})

	t.Run("transport failure is not an entitlement error", func(t *testing.T) {
		_, server := newFakeAPI(t, map[string]route{})
		client := newTestClient(t, server)
		server.Close()

		_, err := client.GetVideo(context.Background(), slug)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrVideoUnavailable)
	})

	t.Run("malformed video payload is a decode error", func(t *testing.T) {
		_, server := newFakeAPI(t, map[string]route{
			"/api/v1/watch/" + slug + "/videos": {body: `{"data":[{"_index":"videos"}]}`},
		})
		client := newTestClient(t, server)

		_, err := client.GetVideo(context.Background(), slug)
		var decErr *schema.DecodeError
		require.ErrorAs(t, err, &decErr)
		assert.Equal(t, "data[0]._score", decErr.Path)
		assert.NotErrorIs(t, err, ErrVideoUnavailable)
	})
}

func TestErrorTranslation(t *testing.T) {
	ctx := context.Background()

	t.Run("non-success status is an API error", func(t *testing.T) {
		_, server := newFakeAPI(t, map[string]route{
			"/api/v1/channels": {status: http.StatusInternalServerError, body: "upstream exploded"},
		})
		client := newTestClient(t, server)

		_, err := client.ListChannels(ctx)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Equal(t, "/channels", apiErr.Endpoint)
		assert.Equal(t, "upstream exploded", apiErr.Body)
		assert.NotErrorIs(t, err, ErrVideoUnavailable)
	})

	t.Run("404 matches ErrNotFound", func(t *testing.T) {
		_, server := newFakeAPI(t, map[string]route{})
		client := newTestClient(t, server)

		_, err := client.GetSeries(ctx, "no-such-show")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty data on a get is not found", func(t *testing.T) {
		_, server := newFakeAPI(t, map[string]route{"/api/v1/watch/ghost": {body: `{"data":[]}`}})
		client := newTestClient(t, server)

		_, err := client.GetEpisode(ctx, "ghost")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, err, schema.ErrEmptyData)
	})

	t.Run("schema drift is a decode error", func(t *testing.T) {
		_, server := newFakeAPI(t, map[string]route{"/api/v1/channels": {body: `{"data":[{"_index":"c","type":"channel"}]}`}})
		client := newTestClient(t, server)

		_, err := client.ListChannels(ctx)
		var decErr *schema.DecodeError
		require.ErrorAs(t, err, &decErr)
		assert.Equal(t, "data[0].id", decErr.Path)
	})

	t.Run("cancelled context", func(t *testing.T) {
		_, server := newFakeAPI(t, map[string]route{"/api/v1/channels": fixture("channels.json")})
		client := newTestClient(t, server)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := client.ListChannels(cancelled)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestInvalidArguments(t *testing.T) {
	_, server := newFakeAPI(t, map[string]route{})
	client := newTestClient(t, server)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"page zero", func() error { _, err := client.ListEpisodes(ctx, 0, ListOptions{}); return err }},
		{"unknown order", func() error { _, err := client.ListSeries(ctx, ListOptions{Order: "dec"}); return err }},
		{"unknown season order", func() error { _, err := client.GetSeasons(ctx, "red-vs-blue", "up"); return err }},
		{"empty series slug", func() error { _, err := client.GetSeries(ctx, ""); return err }},
		{"empty season slug", func() error { _, err := client.GetSeasonEpisodes(ctx, "", ""); return err }},
		{"empty episode slug", func() error { _, err := client.GetEpisode(ctx, ""); return err }},
		{"empty video slug", func() error { _, err := client.GetVideo(ctx, ""); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), ErrInvalidArgument)
		})
	}
}

func TestAPIError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &APIError{StatusCode: 404, Endpoint: "/shows/x"}
		assert.Equal(t, "roosterteeth API error: /shows/x: status 404: Not Found", err.Error())
	})

	t.Run("IsUnauthorized", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{401, true},
			{403, true},
			{404, false},
			{500, false},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			assert.Equal(t, tt.expected, err.IsUnauthorized())
			assert.Equal(t, tt.expected, errors.Is(err, ErrUnauthorized))
		}
	})

	t.Run("body is truncated", func(t *testing.T) {
		err := newAPIError(500, "/episodes", make([]byte, 4096))
		assert.Len(t, err.Body, maxErrorBody)
	})
}
