package roosterteeth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/roosterteeth/schema"
)

const (
	// Version is stamped into the user agent.
	Version = "0.1.0"

	DefaultBaseURL  = "https://svod-be.roosterteeth.com/api/v1"
	DefaultAuthURL  = "https://auth.roosterteeth.com/oauth/token"
	DefaultClientID = "4338d2b4bdc8db1239360f28e72f0d9ddb1fd01e7a38fbb07b4b1f4ba4564cc5"
	DefaultTimeout  = 30 * time.Second

	episodesPerPage = 100
	seriesPerPage   = 1000
)

// UserAgent is sent with every request unless WithUserAgent overrides it.
var UserAgent = "roosterteeth-go/" + Version

// Order is the sort direction accepted by the list endpoints.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// or returns o, or def when o is unset.
func (o Order) or(def Order) (Order, error) {
	switch o {
	case "":
		return def, nil
	case OrderAsc, OrderDesc:
		return o, nil
	default:
		return "", fmt.Errorf("%w: order must be %q or %q, got %q", ErrInvalidArgument, OrderAsc, OrderDesc, o)
	}
}

// ListOptions narrows and orders a list request. The zero value lists every
// channel in the operation's default order.
type ListOptions struct {
	// ChannelID is a channel slug such as "achievement-hunter".
	ChannelID string
	Order     Order
}

func (opts ListOptions) apply(params url.Values, def Order) error {
	if opts.ChannelID != "" {
		params.Set("channel_id", opts.ChannelID)
	}
	order, err := opts.Order.or(def)
	if err != nil {
		return err
	}
	params.Set("order", string(order))
	return nil
}

// Client represents a Rooster Teeth VOD API client. It holds no mutable state
// after construction and may be shared between goroutines.
type Client struct {
	baseURL    string
	userAgent  string
	token      string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new Rooster Teeth client.
//
// With a Login credential the password-grant exchange runs before NewClient
// returns; if it fails no client is returned. The token is never refreshed.
func NewClient(ctx context.Context, credential Credential, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if credential == nil {
		return nil, fmt.Errorf("%w: credential is required", ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	if _, err := url.ParseRequestURI(o.baseURL); err != nil {
		return nil, fmt.Errorf("%w: base URL: %w", ErrInvalidConfig, err)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	client := &Client{
		baseURL:    o.baseURL,
		userAgent:  o.userAgent,
		httpClient: httpClient,
		logger:     logger,
	}

	if login, ok := credential.(Login); ok {
		if err := login.validate(); err != nil {
			return nil, err
		}
		token, err := client.authenticate(ctx, login, o.authURL, o.clientID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
		}
		client.token = token.AccessToken
	}

	return client, nil
}

// Authenticated reports whether requests carry a bearer token.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// do performs an HTTP request and returns the status code and full body.
// Only transport failures are errors here; status handling is up to the caller.
func (c *Client) do(ctx context.Context, method, requestURL string, body io.Reader) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", requestURL).
		Int("status", resp.StatusCode).
		Msg("Rooster Teeth API request")

	return resp.StatusCode, data, nil
}

func (c *Client) endpointURL(endpoint string, params url.Values) string {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// get performs a GET and turns non-success statuses into *APIError.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	status, body, err := c.do(ctx, http.MethodGet, c.endpointURL(endpoint, params), nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, newAPIError(status, endpoint, body)
	}
	return body, nil
}

func getPage[T any](ctx context.Context, c *Client, endpoint string, params url.Values) (*schema.Page[T], error) {
	body, err := c.get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	page, err := schema.DecodePage[T](body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %w", endpoint, err)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("count", len(page.Data)).
		Msg("Decoded Rooster Teeth response")

	return page, nil
}

func decodeSingle[T any](endpoint string, body []byte) (T, error) {
	v, err := schema.DecodeSingle[T](body)
	if errors.Is(err, schema.ErrEmptyData) {
		return v, fmt.Errorf("%s: %w: %w", endpoint, ErrNotFound, err)
	}
	if err != nil {
		return v, fmt.Errorf("failed to parse %s response: %w", endpoint, err)
	}
	return v, nil
}

func getSingle[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	body, err := c.get(ctx, endpoint, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeSingle[T](endpoint, body)
}

// ListChannels returns every channel.
func (c *Client) ListChannels(ctx context.Context) ([]schema.Channel, error) {
	page, err := getPage[schema.Channel](ctx, c, "/channels", nil)
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// EpisodesPage returns one page of up to 100 episodes together with its
// pagination metadata. Pages are 1-based; order defaults to descending.
func (c *Client) EpisodesPage(ctx context.Context, page uint16, opts ListOptions) (*schema.Page[schema.Episode], error) {
	if page == 0 {
		return nil, fmt.Errorf("%w: pages start at 1", ErrInvalidArgument)
	}

	params := url.Values{}
	params.Set("per_page", strconv.Itoa(episodesPerPage))
	if err := opts.apply(params, OrderDesc); err != nil {
		return nil, err
	}
	params.Set("page", strconv.FormatUint(uint64(page), 10))

	return getPage[schema.Episode](ctx, c, "/episodes", params)
}

// ListEpisodes returns up to 100 episodes of the given page.
func (c *Client) ListEpisodes(ctx context.Context, page uint16, opts ListOptions) ([]schema.Episode, error) {
	result, err := c.EpisodesPage(ctx, page, opts)
	if err != nil {
		return nil, err
	}
	return result.Data, nil
}

// ListSeries returns up to 1000 series. Order defaults to descending.
func (c *Client) ListSeries(ctx context.Context, opts ListOptions) ([]schema.Series, error) {
	params := url.Values{}
	params.Set("per_page", strconv.Itoa(seriesPerPage))
	if err := opts.apply(params, OrderDesc); err != nil {
		return nil, err
	}
	params.Set("page", "1")

	page, err := getPage[schema.Series](ctx, c, "/shows", params)
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// GetSeasons returns every season of a series. Order defaults to descending.
func (c *Client) GetSeasons(ctx context.Context, seriesSlug string, order Order) ([]schema.Season, error) {
	if err := requireSlug(seriesSlug); err != nil {
		return nil, err
	}
	o, err := order.or(OrderDesc)
	if err != nil {
		return nil, err
	}

	params := url.Values{"order": {string(o)}}
	page, err := getPage[schema.Season](ctx, c, "/shows/"+url.PathEscape(seriesSlug)+"/seasons", params)
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// GetSeasonEpisodes returns every episode of a season. Unlike the other
// lists, order defaults to ascending so episodes read oldest first.
func (c *Client) GetSeasonEpisodes(ctx context.Context, seasonSlug string, order Order) ([]schema.Episode, error) {
	if err := requireSlug(seasonSlug); err != nil {
		return nil, err
	}
	o, err := order.or(OrderAsc)
	if err != nil {
		return nil, err
	}

	params := url.Values{"order": {string(o)}}
	page, err := getPage[schema.Episode](ctx, c, "/seasons/"+url.PathEscape(seasonSlug)+"/episodes", params)
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// GetSeries returns a single series by slug.
func (c *Client) GetSeries(ctx context.Context, slug string) (schema.Series, error) {
	if err := requireSlug(slug); err != nil {
		return schema.Series{}, err
	}
	return getSingle[schema.Series](ctx, c, "/shows/"+url.PathEscape(slug))
}

// GetEpisode returns a single episode by slug.
func (c *Client) GetEpisode(ctx context.Context, slug string) (schema.Episode, error) {
	if err := requireSlug(slug); err != nil {
		return schema.Episode{}, err
	}
	return getSingle[schema.Episode](ctx, c, "/watch/"+url.PathEscape(slug))
}

// GetVideo returns the playback descriptor of an episode.
//
// Any non-success status yields a *VideoUnavailableError, which matches
// ErrVideoUnavailable; its status code is kept so a 404 can be told apart
// from a refusal. Transport and decode failures are returned as-is.
func (c *Client) GetVideo(ctx context.Context, slug string) (schema.Video, error) {
	if err := requireSlug(slug); err != nil {
		return schema.Video{}, err
	}

	endpoint := "/watch/" + url.PathEscape(slug) + "/videos"
	status, body, err := c.do(ctx, http.MethodGet, c.endpointURL(endpoint, nil), nil)
	if err != nil {
		return schema.Video{}, err
	}
	if !isSuccess(status) {
		return schema.Video{}, &VideoUnavailableError{Slug: slug, StatusCode: status}
	}

	return decodeSingle[schema.Video](endpoint, body)
}

func requireSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("%w: slug is required", ErrInvalidArgument)
	}
	return nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
