package gmaps

import (
	"errors"
	"net/http"
	"time"
)

// Client implements the GeocodingProvider and RoutingProvider ports
// using the Google Maps web APIs (Geocoding and Directions).
//
// It coordinates request signing, bounded retry with backoff for
// transient failures, and response decoding. The client is safe for
// concurrent use.
type Client struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	retryMax     int
	retryBackoff time.Duration
}

// Options tune the client's external-call behavior. Zero values fall
// back to conservative defaults.
type Options struct {
	BaseURL      string
	Timeout      time.Duration
	RetryMax     int
	RetryBackoff time.Duration
}

func NewClient(apiKey string, opts Options) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com"
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	retryMax := opts.RetryMax
	if retryMax < 1 {
		retryMax = 4
	}
	retryBackoff := opts.RetryBackoff
	if retryBackoff <= 0 {
		retryBackoff = 200 * time.Millisecond
	}

	return &Client{
		session:      &http.Client{Timeout: timeout},
		apiKey:       apiKey,
		baseURL:      baseURL,
		retryMax:     retryMax,
		retryBackoff: retryBackoff,
	}, nil
}
