package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aanand-mishra/feedback/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(func() {
		srv.CloseClientConnections()
		srv.Close()
	})
	return srv
}

func TestSubmit(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/feedbacks", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req types.FeedbackRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ann@example.com", req.Email)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":3,"name":"Ann","message":"hi","createdAt":"2025-03-14T09:26:53Z"}`))
	})

	c := New(srv.URL + "/")
	defer c.http.CloseIdleConnections()

	got, err := c.Submit(context.Background(), types.FeedbackRequest{Name: "Ann", Email: "ann@example.com", Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, types.FeedbackRecord{ID: 3, Name: "Ann", Message: "hi", CreatedAt: "2025-03-14T09:26:53Z"}, got)
}

func TestSubmit_StatusError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":"error","error":"boom"}`, http.StatusInternalServerError)
	})

	c := New(srv.URL)
	defer c.http.CloseIdleConnections()

	_, err := c.Submit(context.Background(), types.FeedbackRequest{})

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Contains(t, statusErr.Body, "boom")
}

func TestList(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte(`[{"id":1,"name":"Ann","message":"a","createdAt":"2025-01-01T00:00:00Z"},{"id":2,"name":"Bob","message":"b","createdAt":"2025-01-02T00:00:00Z"}]`))
	})

	c := New(srv.URL)
	defer c.http.CloseIdleConnections()

	got, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bob", got[1].Name)
}

func TestList_NullBodyIsEmpty(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	})

	c := New(srv.URL)
	defer c.http.CloseIdleConnections()

	got, err := c.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_MalformedJSON(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})

	c := New(srv.URL)
	defer c.http.CloseIdleConnections()

	_, err := c.List(context.Background())
	assert.ErrorContains(t, err, "decode response")
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	c := New(srv.URL, WithTimeout(20*time.Millisecond))
	defer c.http.CloseIdleConnections()

	_, err := c.List(context.Background())
	assert.Error(t, err)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, WithHTTPClient(&http.Client{Timeout: time.Second}))
	defer c.http.CloseIdleConnections()

	_, err := c.List(context.Background())
	assert.Error(t, err)
}
