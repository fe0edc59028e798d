// Package skyapi is a typed client for the third-party flight search API
// hosted on RapidAPI. It exposes the two read endpoints the front-end uses
// (airport lookup and flight search) and maps their JSON into domain types.
// Calls are never retried: a failure surfaces as domain.ErrUpstream.
package skyapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pkordes/flight-search/internal/domain"
)

const tracerName = "github.com/pkordes/flight-search/internal/skyapi"

// maxErrorBody bounds how much of a failed response is kept for the error message.
const maxErrorBody = 512

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. https://sky-scrapper.p.rapidapi.com/api/v1.
	BaseURL string
	// APIKey is sent as x-rapidapi-key.
	APIKey string
	// Host is sent as x-rapidapi-host.
	Host string
	// Timeout bounds each call. Zero means only the caller's context applies.
	Timeout time.Duration
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// Client calls the flight search API. It is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	host    string
	timeout time.Duration
	http    *http.Client
	tracer  trace.Tracer
}

// New constructs a Client from opts.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		host:    opts.Host,
		timeout: opts.Timeout,
		http:    hc,
		tracer:  otel.Tracer(tracerName),
	}
}

// envelope is the wrapper every endpoint responds with.
// message is a string on some errors and a list of objects on others.
type envelope[T any] struct {
	Status  bool            `json:"status"`
	Message json.RawMessage `json:"message"`
	Data    T               `json:"data"`
}

// get performs GET path?params, checks the status and envelope, and decodes
// data into out. op names the calling method for error prefixes and spans.
func get[T any](ctx context.Context, c *Client, op, path string, params url.Values) (T, error) {
	var zero T

	ctx, span := c.tracer.Start(ctx, "skyapi."+op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("http.route", path))

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	fail := func(err error) (T, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return zero, fmt.Errorf("skyapi.Client.%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fail(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", domain.ErrUpstream, err))
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fail(fmt.Errorf("%w: HTTP %d: %s", domain.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var env envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fail(fmt.Errorf("%w: decoding response: %w", domain.ErrUpstream, err))
	}
	if !env.Status {
		return fail(fmt.Errorf("%w: %s", domain.ErrUpstream, messageText(env.Message)))
	}
	return env.Data, nil
}

// messageText renders the envelope's message field, whatever its shape.
func messageText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return "request unsuccessful"
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
