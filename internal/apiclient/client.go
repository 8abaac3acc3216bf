// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apiclient turns an endpoint, a method and an optional body into a
parsed [Envelope] or a classified [apperr.AppError].

# Flow

 1. Compose the absolute URL from the API root and the endpoint.
 2. Attach JSON headers, and the bearer token when the request asks for it
    and the token store has one.
 3. Issue the call under a per-request deadline derived from the caller's context.
 4. Decode 2xx bodies; classify everything else.

The client is stateless between calls apart from reading the token store. It
never retries.
*/
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/salonbook/internal/platform/apperr"
	"github.com/taibuivan/salonbook/internal/platform/constants"
	"github.com/taibuivan/salonbook/internal/platform/ctxutil"
	"github.com/taibuivan/salonbook/internal/tokenstore"
	"github.com/taibuivan/salonbook/pkg/uuidv7"
)

// # Definitions & Constructors

// UnauthorizedHandler is invoked when an authenticated request is rejected
// with 401. The session layer uses it to force a local logout.
type UnauthorizedHandler func(ctx context.Context)

// Options configures a [Client].
type Options struct {
	// BaseURL is the API root including its prefix, e.g. https://host/api.
	BaseURL string
	// Timeout bounds each call. Defaults to [constants.DefaultRequestTimeout].
	Timeout time.Duration
	// HTTPClient defaults to a client without its own timeout.
	HTTPClient *http.Client
	// Logger defaults to [slog.Default].
	Logger *slog.Logger
}

// Client is the HTTP request executor.
type Client struct {
	root           string
	timeout        time.Duration
	httpClient     *http.Client
	store          tokenstore.Store
	logger         *slog.Logger
	onUnauthorized UnauthorizedHandler
}

// New constructs a [Client] reading bearer tokens from store.
func New(store tokenstore.Store, options Options) *Client {
	client := &Client{
		root:       strings.TrimRight(options.BaseURL, "/"),
		timeout:    options.Timeout,
		httpClient: options.HTTPClient,
		store:      store,
		logger:     options.Logger,
	}

	if client.timeout <= 0 {
		client.timeout = constants.DefaultRequestTimeout
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{}
	}
	if client.logger == nil {
		client.logger = slog.Default()
	}

	return client
}

// OnUnauthorized registers the 401 hook. It must be set before the client is shared.
func (client *Client) OnUnauthorized(handler UnauthorizedHandler) {
	client.onUnauthorized = handler
}

// # Requests

// Request describes one call.
type Request struct {
	Method   string
	Endpoint string
	Query    url.Values
	Body     any
	// Auth attaches the stored bearer token, if any.
	Auth bool
	// Probe suppresses the 401 hook; the caller handles rejection itself.
	Probe bool
}

// Call executes req and decodes the envelope.
func Call[T any](ctx context.Context, client *Client, req Request) (*Envelope[T], error) {
	var envelope Envelope[T]
	if err := client.Do(ctx, req, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

/*
Do executes req and decodes a 2xx body into out (which may be nil).

Failure classification, first match wins:
  - deadline exceeded: [apperr.Timeout] (408)
  - non-2xx status: [apperr.FromResponse]
  - caller cancellation: [apperr.Canceled]
  - anything else: [apperr.Network] (status 0)

Returns:
  - error: always an [*apperr.AppError] when non-nil
*/
func (client *Client) Do(ctx context.Context, req Request, out any) error {
	callCtx, cancel := context.WithTimeout(ctx, client.timeout)
	defer cancel()

	requestID := ctxutil.GetRequestID(ctx)
	if requestID == "" {
		requestID = uuidv7.New()
	}

	logger := ctxutil.GetLoggerOr(ctx, client.logger).With(
		slog.String("method", req.Method),
		slog.String("endpoint", req.Endpoint),
		slog.String("request_id", requestID),
	)

	httpRequest, err := client.build(callCtx, req, requestID)
	if err != nil {
		return apperr.Network(err)
	}

	startTime := time.Now()
	status, body, err := client.send(httpRequest)
	latency := time.Since(startTime).Milliseconds()

	if err != nil {
		appError := classify(callCtx, err)
		logger.WarnContext(ctx, "api_request_failed",
			slog.String("kind", string(appError.Kind)),
			slog.Int64("latency_ms", latency),
			slog.Any("error", err),
		)
		return appError
	}

	logger.DebugContext(ctx, "api_request_finished",
		slog.Int("status", status),
		slog.Int64("latency_ms", latency),
	)

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		appError := apperr.FromResponse(status, body)
		if appError.Kind == apperr.KindAuth && req.Auth && !req.Probe && client.onUnauthorized != nil {
			client.onUnauthorized(ctx)
		}
		return appError
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperr.Network(fmt.Errorf("apiclient: decode %s response: %w", req.Endpoint, err))
	}
	return nil
}

// # Internals

func (client *Client) build(ctx context.Context, req Request, requestID string) (*http.Request, error) {
	endpoint := req.Endpoint
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	target := client.root + endpoint
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("apiclient: encode %s body: %w", req.Endpoint, err)
		}
		body = bytes.NewReader(payload)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpRequest, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build request: %w", err)
	}

	header := httpRequest.Header
	header.Set(constants.HeaderContentType, constants.MimeJSON)
	header.Set(constants.HeaderAccept, constants.MimeJSON)
	header.Set(constants.HeaderXRequestID, requestID)

	if req.Auth {
		if token, ok := client.store.Read(ctx); ok {
			header.Set(constants.HeaderAuthorization, constants.BearerPrefix+token)
		}
	}

	return httpRequest, nil
}

// send performs the round-trip and reads the whole body inside the deadline.
func (client *Client) send(httpRequest *http.Request) (int, []byte, error) {
	response, err := client.httpClient.Do(httpRequest)
	if err != nil {
		return 0, nil, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return 0, nil, err
	}
	return response.StatusCode, body, nil
}

func classify(callCtx context.Context, err error) *apperr.AppError {
	switch {
	case errors.Is(callCtx.Err(), context.DeadlineExceeded):
		return apperr.Timeout(err)
	case errors.Is(callCtx.Err(), context.Canceled):
		return apperr.Canceled(err)
	default:
		return apperr.Network(err)
	}
}
