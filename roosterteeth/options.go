package roosterteeth

import (
	"net/http"
	"strings"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL    string
	authURL    string
	clientID   string
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:   DefaultBaseURL,
		authURL:   DefaultAuthURL,
		clientID:  DefaultClientID,
		userAgent: UserAgent,
		timeout:   DefaultTimeout,
	}
}

// WithBaseURL sets the API origin, e.g. "https://svod-be.roosterteeth.com/api/v1".
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithAuthURL sets the password-grant token endpoint.
func WithAuthURL(authURL string) Option {
	return func(o *clientOptions) {
		o.authURL = authURL
	}
}

// WithClientID sets the OAuth client identifier sent with the token request.
func WithClientID(clientID string) Option {
	return func(o *clientOptions) {
		o.clientID = clientID
	}
}

// WithTimeout sets the HTTP client timeout.
// It has no effect when WithHTTPClient supplies the client.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP client used for every request.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}
