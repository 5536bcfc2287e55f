package mailview

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_SendsWhenPopulated(t *testing.T) {
	t.Parallel()

	mockSender := &MockSender{}
	view, err := New(mockSender, Config{From: "noreply@example.com"})
	require.NoError(t, err)

	var sent *Message
	mockSender.On("Send", mock.Anything, mock.MatchedBy(func(msg *Message) bool {
		sent = msg
		return true
	})).Return(nil)

	handler := Middleware(view, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := FromStash(r.Context(), view.StashKey())
		require.NotNil(t, req)
		req.To = []string{"alice@example.com"}
		req.Subject = "Welcome"
		req.Body = "Hello"
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/signup", nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	mockSender.AssertExpectations(t)
	require.Equal(t, []string{"alice@example.com"}, sent.To())
}

func TestMiddleware_SkipsWhenEmpty(t *testing.T) {
	t.Parallel()

	mockSender := &MockSender{}
	view, err := New(mockSender, Config{})
	require.NoError(t, err)

	handler := Middleware(view, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	mockSender.AssertNotCalled(t, "Send")
}

func TestMiddleware_SendFailureAnswers500(t *testing.T) {
	t.Parallel()

	mockSender := &MockSender{}
	view, err := New(mockSender, Config{})
	require.NoError(t, err)

	mockSender.On("Send", mock.Anything, mock.Anything).Return(errors.New("relay down"))

	handler := Middleware(view, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := FromStash(r.Context(), view.StashKey())
		req.To = []string{"alice@example.com"}
		req.Body = "Hello"
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMiddleware_SendFailureAfterResponseStarted(t *testing.T) {
	t.Parallel()

	mockSender := &MockSender{}
	view, err := New(mockSender, Config{})
	require.NoError(t, err)

	mockSender.On("Send", mock.Anything, mock.Anything).Return(errors.New("relay down"))

	handler := Middleware(view, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := FromStash(r.Context(), view.StashKey())
		req.To = []string{"alice@example.com"}
		req.Body = "Hello"
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("created\n"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	// The handler's status stands; the failure is only logged.
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "created\n", rec.Body.String())
}

func TestMiddleware_SubjectOnlyDoesNotSend(t *testing.T) {
	t.Parallel()

	mockSender := &MockSender{}
	view, err := New(mockSender, Config{})
	require.NoError(t, err)

	handler := Middleware(view, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := FromStash(r.Context(), view.StashKey())
		req.Subject = "drafted but never addressed"
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	mockSender.AssertNotCalled(t, "Send")
}
