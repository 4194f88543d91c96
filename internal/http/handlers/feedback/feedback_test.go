package feedback

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aanand-mishra/feedback/internal/storage"
	"github.com/aanand-mishra/feedback/internal/types"
	"github.com/aanand-mishra/feedback/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) CreateFeedback(name, email, message string) (types.Feedback, error) {
	args := m.Called(name, email, message)
	return args.Get(0).(types.Feedback), args.Error(1)
}

func (m *mockStorage) GetFeedbackByID(id int64) (types.Feedback, error) {
	args := m.Called(id)
	return args.Get(0).(types.Feedback), args.Error(1)
}

func (m *mockStorage) GetFeedbacks() ([]types.Feedback, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Feedback), args.Error(1)
}

var createdAt = time.Date(2025, 3, 14, 9, 26, 53, 589000000, time.UTC)

func newMux(store storage.Storage) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/feedbacks", New(store))
	mux.HandleFunc("GET /api/feedbacks", GetList(store))
	mux.HandleFunc("GET /api/feedbacks/{id}", GetByID(store))
	return mux
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestNew_Success(t *testing.T) {
	store := new(mockStorage)
	store.On("CreateFeedback", "Vishal", "vishal@example.com", "Great app!").
		Return(types.Feedback{
			ID:        1,
			Name:      "Vishal",
			Email:     "vishal@example.com",
			Message:   "Great app!",
			CreatedAt: createdAt,
		}, nil)

	rec := do(t, newMux(store), http.MethodPost, "/api/feedbacks",
		`{"name":"Vishal","email":"vishal@example.com","message":"Great app!"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t,
		`{"id":1,"name":"Vishal","message":"Great app!","createdAt":"2025-03-14T09:26:53.589Z"}`,
		rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "vishal@example.com")
	store.AssertExpectations(t)
}

func TestNew_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"empty body", "", "request body is empty"},
		{"malformed json", `{"name":`, "unexpected EOF"},
		{"missing name", `{"email":"a@b.co","message":"hi"}`, "name is required"},
		{"bad email", `{"name":"Ann","email":"nope","message":"hi"}`, "email must be a valid email address"},
		{"digits in name", `{"name":"R2D2","email":"r@b.co","message":"hi"}`, "name must contain only letters and spaces"},
		{"missing message", `{"name":"Ann","email":"a@b.co"}`, "message is required"},
		{"blank name", `{"name":"   ","email":"a@b.io","message":"hi"}`, "name is required"},
		{"blank message", `{"name":"Ann","email":"a@b.io","message":" \t\n "}`, "message is required"},
		{"blank email", `{"name":"Ann","email":"   ","message":"hi"}`, "email is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mockStorage)

			rec := do(t, newMux(store), http.MethodPost, "/api/feedbacks", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, response.StatusError, resp.Status)
			assert.Contains(t, resp.Error, tt.wantErr)
			store.AssertNotCalled(t, "CreateFeedback", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestNew_StorageFailure(t *testing.T) {
	store := new(mockStorage)
	store.On("CreateFeedback", mock.Anything, mock.Anything, mock.Anything).
		Return(types.Feedback{}, errors.New("disk full"))

	rec := do(t, newMux(store), http.MethodPost, "/api/feedbacks",
		`{"name":"Ann","email":"ann@example.com","message":"hi"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "disk full", decodeError(t, rec).Error)
}

func TestGetList(t *testing.T) {
	store := new(mockStorage)
	store.On("GetFeedbacks").Return([]types.Feedback{
		{ID: 1, Name: "Ann", Email: "ann@example.com", Message: "one", CreatedAt: createdAt},
		{ID: 2, Name: "Bob", Email: "bob@example.com", Message: "two", CreatedAt: createdAt},
	}, nil)

	rec := do(t, newMux(store), http.MethodGet, "/api/feedbacks", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got []types.FeedbackRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Bob", got[1].Name)
	assert.Equal(t, "2025-03-14T09:26:53.589Z", got[0].CreatedAt)
}

func TestGetList_EmptyIsArray(t *testing.T) {
	store := new(mockStorage)
	store.On("GetFeedbacks").Return(nil, nil)

	rec := do(t, newMux(store), http.MethodGet, "/api/feedbacks", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetList_StorageFailure(t *testing.T) {
	store := new(mockStorage)
	store.On("GetFeedbacks").Return(nil, errors.New("locked"))

	rec := do(t, newMux(store), http.MethodGet, "/api/feedbacks", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetByID(t *testing.T) {
	store := new(mockStorage)
	store.On("GetFeedbackByID", int64(7)).
		Return(types.Feedback{ID: 7, Name: "Ann", Message: "hi", CreatedAt: createdAt}, nil)
	store.On("GetFeedbackByID", int64(8)).
		Return(types.Feedback{}, fmt.Errorf("no feedback found with id 8: %w", storage.ErrNotFound))

	mux := newMux(store)

	rec := do(t, mux, http.MethodGet, "/api/feedbacks/7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":7`)

	rec = do(t, mux, http.MethodGet, "/api/feedbacks/8", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, mux, http.MethodGet, "/api/feedbacks/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid id: must be an integer", decodeError(t, rec).Error)
}
