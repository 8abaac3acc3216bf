// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/salonbook/internal/apiclient"
	"github.com/taibuivan/salonbook/internal/platform/apperr"
	"github.com/taibuivan/salonbook/internal/tokenstore"
)

// newTestClient starts handler behind an httptest server mounted at /api.
func newTestClient(t *testing.T, store tokenstore.Store, timeout time.Duration, handler http.HandlerFunc) *apiclient.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return apiclient.New(store, apiclient.Options{
		BaseURL: server.URL + "/api",
		Timeout: timeout,
		Logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
}

/*
TestDo_HeadersAndBody verifies URL composition, JSON headers and body encoding.
*/
func TestDo_HeadersAndBody(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	store.Write(context.Background(), "tok123")

	var seen *http.Request
	var seenBody map[string]string

	client := newTestClient(t, store, time.Second, func(w http.ResponseWriter, r *http.Request) {
		seen = r
		_ = json.NewDecoder(r.Body).Decode(&seenBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Created","data":{"id":9}}`))
	})

	envelope, err := apiclient.Call[struct {
		ID int64 `json:"id"`
	}](context.Background(), client, apiclient.Request{
		Method:   http.MethodPost,
		Endpoint: "customers",
		Query:    url.Values{"branch_id": {"2"}},
		Body:     map[string]string{"name": "Hana"},
		Auth:     true,
	})

	require.NoError(t, err)
	assert.True(t, envelope.Success)
	assert.Equal(t, "Created", envelope.Message)
	assert.Equal(t, int64(9), envelope.Data.ID)

	require.NotNil(t, seen)
	assert.Equal(t, "/api/customers", seen.URL.Path)
	assert.Equal(t, "2", seen.URL.Query().Get("branch_id"))
	assert.Equal(t, "application/json", seen.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", seen.Header.Get("Accept"))
	assert.Equal(t, "Bearer tok123", seen.Header.Get("Authorization"))
	assert.NotEmpty(t, seen.Header.Get("X-Request-ID"))
	assert.Equal(t, map[string]string{"name": "Hana"}, seenBody)
}

/*
TestDo_AuthFlagWithoutToken omits the Authorization header entirely.
*/
func TestDo_AuthFlagWithoutToken(t *testing.T) {
	var header []string
	client := newTestClient(t, tokenstore.NewMemoryStore(), time.Second, func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Values("Authorization")
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	err := client.Do(context.Background(), apiclient.Request{Method: http.MethodGet, Endpoint: "/profile", Auth: true}, nil)

	require.NoError(t, err)
	assert.Empty(t, header)
}

/*
TestDo_NoAuthFlagNeverSendsToken keeps the token off public endpoints.
*/
func TestDo_NoAuthFlagNeverSendsToken(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	store.Write(context.Background(), "tok123")

	var header string
	client := newTestClient(t, store, time.Second, func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	require.NoError(t, client.Do(context.Background(), apiclient.Request{Method: http.MethodPost, Endpoint: "/login"}, nil))
	assert.Empty(t, header)
}

/*
TestDo_ValidationError surfaces the 422 field map.
*/
func TestDo_ValidationError(t *testing.T) {
	client := newTestClient(t, tokenstore.NewMemoryStore(), time.Second, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Validation failed","errors":{"email":["Email is required"]}}`))
	})

	err := client.Do(context.Background(), apiclient.Request{Method: http.MethodPost, Endpoint: "/login"}, nil)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusUnprocessableEntity, ae.Status)
	assert.Equal(t, "Validation failed", ae.Message)
	assert.Equal(t, "Email is required", ae.Errors["email"][0])
}

/*
TestDo_ServerErrorWithoutJSON falls back to the generic message with the real status.
*/
func TestDo_ServerErrorWithoutJSON(t *testing.T) {
	client := newTestClient(t, tokenstore.NewMemoryStore(), time.Second, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>upstream down</html>`))
	})

	err := client.Do(context.Background(), apiclient.Request{Endpoint: "/dashboard", Auth: true}, nil)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusBadGateway, ae.Status)
	assert.Equal(t, apperr.MessageGeneric, ae.Message)
	assert.Equal(t, apperr.KindServer, ae.Kind)
}

/*
TestDo_Timeout yields exactly one 408 result and never a late success.
*/
func TestDo_Timeout(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	client := newTestClient(t, tokenstore.NewMemoryStore(), 50*time.Millisecond, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":1}}`))
	})

	var out apiclient.Envelope[map[string]int]
	started := time.Now()
	err := client.Do(context.Background(), apiclient.Request{Endpoint: "/dashboard"}, &out)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusRequestTimeout, ae.Status)
	assert.Equal(t, apperr.MessageTimeout, ae.Message)
	assert.Less(t, time.Since(started), 2*time.Second)

	// The abandoned response must not leak into the caller's value.
	time.Sleep(50 * time.Millisecond)
	assert.False(t, out.Success)
	assert.Nil(t, out.Data)
}

/*
TestDo_CallerCancellation is distinct from a timeout.
*/
func TestDo_CallerCancellation(t *testing.T) {
	client := newTestClient(t, tokenstore.NewMemoryStore(), 5*time.Second, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	err := client.Do(ctx, apiclient.Request{Endpoint: "/appointments", Auth: true}, nil)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.KindCanceled, ae.Kind)
	assert.Equal(t, 0, ae.Status)
	assert.True(t, errors.Is(err, context.Canceled))
}

/*
TestDo_NetworkError maps transport failures to status 0.
*/
func TestDo_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	root := server.URL + "/api"
	server.Close()

	client := apiclient.New(tokenstore.NewMemoryStore(), apiclient.Options{
		BaseURL: root,
		Timeout: time.Second,
		Logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})

	err := client.Do(context.Background(), apiclient.Request{Endpoint: "/dashboard"}, nil)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.KindNetwork, ae.Kind)
	assert.Equal(t, 0, ae.Status)
	assert.NotEmpty(t, ae.Message)
}

/*
TestDo_MalformedSuccessBody is a parse failure, status 0.
*/
func TestDo_MalformedSuccessBody(t *testing.T) {
	client := newTestClient(t, tokenstore.NewMemoryStore(), time.Second, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":tru`))
	})

	var out apiclient.Envelope[apiclient.Empty]
	err := client.Do(context.Background(), apiclient.Request{Endpoint: "/dashboard"}, &out)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.KindNetwork, ae.Kind)
	assert.Equal(t, 0, ae.Status)
}

/*
TestDo_EmptyDataAcceptsAnyPayload decodes whatever data a 2xx carries when it is ignored.
*/
func TestDo_EmptyDataAcceptsAnyPayload(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty_array", `[]`},
		{"bool", `true`},
		{"null", `null`},
		{"string", `"deleted"`},
		{"object", `{"id":4}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tokenstore.NewMemoryStore(), time.Second, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"success":true,"message":"Done","data":` + tt.data + `}`))
			})

			envelope, err := apiclient.Call[apiclient.Empty](context.Background(), client, apiclient.Request{
				Method:   http.MethodDelete,
				Endpoint: "/customers/4",
				Auth:     true,
			})

			require.NoError(t, err)
			assert.True(t, envelope.Success)
			assert.Equal(t, "Done", envelope.Message)
		})
	}
}

/*
TestDo_UnauthorizedHook fires for authenticated calls only, and not for probes.
*/
func TestDo_UnauthorizedHook(t *testing.T) {
	client := newTestClient(t, tokenstore.NewMemoryStore(), time.Second, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Unauthenticated."}`))
	})

	var calls atomic.Int32
	client.OnUnauthorized(func(ctx context.Context) { calls.Add(1) })

	ctx := context.Background()

	err := client.Do(ctx, apiclient.Request{Endpoint: "/appointments", Auth: true}, nil)
	assert.True(t, apperr.IsUnauthorized(err))
	assert.Equal(t, int32(1), calls.Load())

	_ = client.Do(ctx, apiclient.Request{Method: http.MethodPost, Endpoint: "/login"}, nil)
	assert.Equal(t, int32(1), calls.Load())

	_ = client.Do(ctx, apiclient.Request{Endpoint: "/profile", Auth: true, Probe: true}, nil)
	assert.Equal(t, int32(1), calls.Load())
}
