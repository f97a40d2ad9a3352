package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-inquiry/backend/internal/domain"
	"github.com/pkordes/travel-inquiry/backend/internal/handler"
	"github.com/pkordes/travel-inquiry/backend/internal/service"
)

// mockSubmissionServicer is a hand-written test double for handler.SubmissionServicer.
type mockSubmissionServicer struct {
	submit func(ctx context.Context, in domain.SubmissionInput) (domain.Submission, error)
	calls  []domain.SubmissionInput
}

func (m *mockSubmissionServicer) Submit(ctx context.Context, in domain.SubmissionInput) (domain.Submission, error) {
	m.calls = append(m.calls, in)
	return m.submit(ctx, in)
}

var _ handler.SubmissionServicer = (*mockSubmissionServicer)(nil)

var (
	acceptedID = uuid.MustParse("3f2a9c1e-7b4d-4e8f-a6c5-0d1e2f3a4b5c")
	acceptedAt = time.Date(2026, 10, 18, 9, 15, 42, 123_000_000, time.UTC)
)

// acceptingServicer echoes the input back as a stored record.
func acceptingServicer() *mockSubmissionServicer {
	return &mockSubmissionServicer{submit: func(_ context.Context, in domain.SubmissionInput) (domain.Submission, error) {
		return domain.Submission{ID: acceptedID, Name: in.Name, Email: in.Email, SubmittedAt: acceptedAt}, nil
	}}
}

// failingServicer returns err from every Submit call.
func failingServicer(err error) *mockSubmissionServicer {
	return &mockSubmissionServicer{submit: func(context.Context, domain.SubmissionInput) (domain.Submission, error) {
		return domain.Submission{}, err
	}}
}

func newTestRouter(svc handler.SubmissionServicer) http.Handler {
	return handler.NewRouter(handler.NewServer(svc, "/submissions", nil), handler.RouterOptions{MaxBodyBytes: 1024})
}

func postSubmission(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, handler.Envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env handler.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env), "every response is a JSON envelope")
	return rec, env
}

func assertCORSHeaders(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
		rec.Header().Get("Access-Control-Allow-Headers"))
}

// ---- accepted ----------------------------------------------------------------

func TestCreateSubmission_Accepted(t *testing.T) {
	svc := acceptingServicer()

	rec, env := postSubmission(t, newTestRouter(svc), `{"name":"Alice","email":"alice@example.com"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assertCORSHeaders(t, rec)

	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "Form submitted successfully", env.Message)
	require.NotNil(t, env.SubmissionID)
	assert.Equal(t, acceptedID, *env.SubmissionID)
	assert.Equal(t, "2026-10-18T09:15:42.123Z", env.Timestamp)
	assert.Empty(t, env.Errors)

	require.Len(t, svc.calls, 1)
	assert.Equal(t, domain.SubmissionInput{Name: "Alice", Email: "alice@example.com"}, svc.calls[0])
}

func TestCreateSubmission_AllFieldsDecoded(t *testing.T) {
	svc := acceptingServicer()
	body := `{
		"name": "Alice",
		"email": "alice@example.com",
		"phone": "+1 555 0100",
		"destination": "Lisbon",
		"travelDateStart": "2026-05-01",
		"travelDateEnd": "2026-05-10",
		"travelers": "2",
		"message": "Window seats please",
		"referrer": "ignored"
	}`

	rec, _ := postSubmission(t, newTestRouter(svc), body)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.calls, 1)
	assert.Equal(t, domain.SubmissionInput{
		Name:            "Alice",
		Email:           "alice@example.com",
		Phone:           "+1 555 0100",
		Destination:     "Lisbon",
		TravelDateStart: "2026-05-01",
		TravelDateEnd:   "2026-05-10",
		Travelers:       "2",
		Message:         "Window seats please",
	}, svc.calls[0])
}

func TestCreateSubmission_SuccessBodyShape(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader(`{"name":"Alice","email":"alice@example.com"}`))
	rec := httptest.NewRecorder()

	newTestRouter(acceptingServicer()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(`{
		"status": "success",
		"message": "Form submitted successfully",
		"submissionId": %q,
		"timestamp": "2026-10-18T09:15:42.123Z"
	}`, acceptedID), rec.Body.String())
}

// ---- validation failures -----------------------------------------------------

// The real service is used here so the handler is exercised against the
// actual validation rules; it never reaches the nil repo or notifier.
func newValidatingRouter() http.Handler {
	svc := service.NewSubmissionService(nil, nil, nil, service.MetricHooks{})
	return newTestRouter(svc)
}

func TestCreateSubmission_MissingName(t *testing.T) {
	rec, env := postSubmission(t, newValidatingRouter(), `{"email":"alice@example.com"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assertCORSHeaders(t, rec)
	assert.Equal(t, "error", env.Status)
	assert.Contains(t, env.Message, "name")
	assert.Nil(t, env.SubmissionID)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "name", env.Errors[0].Field)
	assert.Equal(t, domain.ErrMissingField, env.Errors[0].Code)
}

func TestCreateSubmission_InvalidEmail(t *testing.T) {
	rec, env := postSubmission(t, newValidatingRouter(), `{"name":"Bob","email":"not-an-email"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", env.Status)
	assert.Contains(t, env.Message, "email")
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "email", env.Errors[0].Field)
	assert.Equal(t, domain.ErrInvalidFormat, env.Errors[0].Code)
}

func TestCreateSubmission_ReportsEveryViolation(t *testing.T) {
	rec, env := postSubmission(t, newValidatingRouter(), `{"name":"  ","email":""}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Len(t, env.Errors, 2)
	assert.Equal(t, "name", env.Errors[0].Field)
	assert.Equal(t, "email", env.Errors[1].Field)
}

func TestCreateSubmission_RejectionIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	svc := service.NewSubmissionService(nil, nil, logger, service.MetricHooks{})
	h := handler.NewRouter(handler.NewServer(svc, "/submissions", logger), handler.RouterOptions{Logger: logger})

	req := httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader(`{"name":"Bob","email":"a@b"}`))
	req.Header.Set("X-Request-Id", "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var rejected map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		if entry["msg"] == "submission rejected" {
			rejected = entry
		}
	}
	require.NotNil(t, rejected, "rejection must be logged, got:\n%s", buf.String())
	assert.Equal(t, "WARN", rejected["level"])
	assert.Equal(t, "req-42", rejected["request_id"])

	violations, ok := rejected["violations"].([]any)
	require.True(t, ok, "violations logged as a list: %v", rejected["violations"])
	require.Len(t, violations, 1)
	v := violations[0].(map[string]any)
	assert.Equal(t, "email", v["field"])
	assert.Equal(t, "invalid_format", v["code"])
}

// ---- malformed bodies ----------------------------------------------------------

func TestCreateSubmission_MalformedBody(t *testing.T) {
	bodies := map[string]string{
		"empty":          ``,
		"not json":       `name=Alice`,
		"array":          `[]`,
		"truncated":      `{"name":"Alice"`,
		"trailing data":  `{"name":"Alice","email":"alice@example.com"} {}`,
		"wrong type":     `{"name":42,"email":"alice@example.com"}`,
		"null then junk": `null x`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			svc := acceptingServicer()

			rec, env := postSubmission(t, newTestRouter(svc), body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assertCORSHeaders(t, rec)
			assert.Equal(t, "error", env.Status)
			assert.Equal(t, "Malformed request body", env.Message)
			assert.Empty(t, svc.calls, "service is not called for an undecodable body")
		})
	}
}

func TestCreateSubmission_BodyTooLarge(t *testing.T) {
	big := fmt.Sprintf(`{"name":"Alice","email":"alice@example.com","message":%q}`, strings.Repeat("x", 2048))

	t.Run("declared length", func(t *testing.T) {
		svc := acceptingServicer()
		rec, env := postSubmission(t, newTestRouter(svc), big)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assertCORSHeaders(t, rec)
		assert.Equal(t, "error", env.Status)
		assert.Equal(t, "Request body too large", env.Message)
		assert.Empty(t, svc.calls)
	})

	t.Run("streamed", func(t *testing.T) {
		svc := acceptingServicer()
		req := httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader(big))
		req.ContentLength = -1
		rec := httptest.NewRecorder()

		newTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		var env handler.Envelope
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
		assert.Equal(t, "Request body too large", env.Message)
		assert.Empty(t, svc.calls)
	})
}

// ---- processing failures -------------------------------------------------------

func TestCreateSubmission_ProcessingFailuresAreGeneric(t *testing.T) {
	failures := map[string]error{
		"persistence": fmt.Errorf("service: %w: %w", domain.ErrPersistence, errors.New("dial tcp 10.0.0.5:5432: connection refused")),
		"delivery":    fmt.Errorf("service: %w: %w", domain.ErrDelivery, errors.New("smtp: 535 authentication failed")),
		"unknown":     errors.New("boom"),
	}
	for name, failure := range failures {
		t.Run(name, func(t *testing.T) {
			rec, env := postSubmission(t, newTestRouter(failingServicer(failure)), `{"name":"Alice","email":"alice@example.com"}`)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assertCORSHeaders(t, rec)
			assert.Equal(t, "error", env.Status)
			assert.Equal(t, "Error processing submission", env.Message)
			assert.Nil(t, env.SubmissionID, "no id is reported on failure")
			assert.Empty(t, env.Errors)
		})
	}
}

func TestCreateSubmission_FailureDetailNotLeaked(t *testing.T) {
	failure := fmt.Errorf("%w: password authentication failed for user \"intake\"", domain.ErrPersistence)
	req := httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader(`{"name":"Alice","email":"alice@example.com"}`))
	rec := httptest.NewRecorder()

	newTestRouter(failingServicer(failure)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "intake")
}

func TestCreateSubmission_PanicAnsweredWithEnvelope(t *testing.T) {
	svc := &mockSubmissionServicer{submit: func(context.Context, domain.SubmissionInput) (domain.Submission, error) {
		panic("nil map write")
	}}

	rec, env := postSubmission(t, newTestRouter(svc), `{"name":"Alice","email":"alice@example.com"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assertCORSHeaders(t, rec)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "Error processing submission", env.Message)
	assert.NotContains(t, rec.Body.String(), "nil map write")
}

// ---- cross-origin ----------------------------------------------------------------

func TestSubmissions_Preflight(t *testing.T) {
	for _, requested := range []string{"content-type", "Content-Type", "x-custom"} {
		t.Run(requested, func(t *testing.T) {
			svc := acceptingServicer()
			req := httptest.NewRequest(http.MethodOptions, "/submissions", nil)
			req.Header.Set("Origin", "https://travel.example.com")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			req.Header.Set("Access-Control-Request-Headers", requested)
			rec := httptest.NewRecorder()

			newTestRouter(svc).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assertCORSHeaders(t, rec)
			assert.Empty(t, svc.calls)
		})
	}
}

func TestCreateSubmission_RestrictedOrigins(t *testing.T) {
	h := handler.NewRouter(handler.NewServer(acceptingServicer(), "/submissions", nil), handler.RouterOptions{
		CORSOrigins: []string{"https://travel.example.com"},
	})

	req := httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader(`{"name":"Alice","email":"alice@example.com"}`))
	req.Header.Set("Origin", "https://travel.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://travel.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader(`{"name":"Alice","email":"alice@example.com"}`))
	req.Header.Set("Origin", "https://evil.example.net")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
