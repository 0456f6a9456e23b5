package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/buildright/backend/internal/model"
	"github.com/buildright/backend/internal/repository"
	"github.com/buildright/backend/internal/service"
)

// ---------------------------------------------------------------------------
// Mock ContactService
// ---------------------------------------------------------------------------

type mockContactService struct {
	submitFunc func(ctx context.Context, raw map[string]any) (*model.ContactSubmission, error)
	calls      int
}

func (m *mockContactService) Submit(ctx context.Context, raw map[string]any) (*model.ContactSubmission, error) {
	m.calls++
	if m.submitFunc != nil {
		return m.submitFunc(ctx, raw)
	}
	return &model.ContactSubmission{ID: 1, SubmittedAt: time.Now().UTC()}, nil
}

const janeBody = `{"name":"Jane Doe","email":"jane@example.com","projectType":"residential","message":"Please build me a house with a garden"}`

func postContact(h *ContactHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)
	return rec
}

func decodeSubmitResponse(t *testing.T, rec *httptest.ResponseRecorder) submitResponse {
	t.Helper()
	var resp submitResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

// ---------------------------------------------------------------------------
// POST /api/contact tests
// ---------------------------------------------------------------------------

func TestContactHandler_Submit_Success(t *testing.T) {
	var captured map[string]any
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, raw map[string]any) (*model.ContactSubmission, error) {
			captured = raw
			return &model.ContactSubmission{ID: 17}, nil
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(h, janeBody)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d, body: %s", rec.Code, rec.Body.String())
	}
	if captured["email"] != "jane@example.com" {
		t.Errorf("expected payload forwarded to service, got %v", captured)
	}
	resp := decodeSubmitResponse(t, rec)
	if !resp.Success {
		t.Error("expected success=true")
	}
	if resp.SubmissionID != 17 {
		t.Errorf("expected submissionId=17, got %d", resp.SubmissionID)
	}
	if resp.Message != msgSubmitted {
		t.Errorf("expected thank-you message, got %q", resp.Message)
	}
}

func TestContactHandler_Submit_ValidationError(t *testing.T) {
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, raw map[string]any) (*model.ContactSubmission, error) {
			return nil, &service.ValidationError{Fields: []model.FieldError{
				{Field: "email", Code: model.CodeInvalidMail, Message: "Please enter a valid email address"},
				{Field: "message", Code: model.CodeTooShort, Message: "Message must be at least 10 characters"},
			}}
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(h, `{"email":"x","message":"short"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeSubmitResponse(t, rec)
	if resp.Success {
		t.Error("expected success=false")
	}
	if resp.Message != msgInvalid {
		t.Errorf("expected %q, got %q", msgInvalid, resp.Message)
	}
	if len(resp.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %+v", resp.Errors)
	}
	if resp.Errors[0].Field != "email" || resp.Errors[1].Field != "message" {
		t.Errorf("unexpected field errors: %+v", resp.Errors)
	}
}

func TestContactHandler_Submit_BodyErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "{bad json"},
		{"empty body", ""},
		{"array body", `[{"name":"Jane"}]`},
		{"string body", `"hello"`},
		{"null body", `null`},
		{"too large", `{"message":"` + strings.Repeat("a", maxContactBodyBytes) + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockContactService{}
			h := NewContactHandler(mock)

			rec := postContact(h, tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if mock.calls != 0 {
				t.Error("service must not be called for an unreadable body")
			}
			resp := decodeSubmitResponse(t, rec)
			if len(resp.Errors) != 1 || resp.Errors[0].Code != model.CodeInvalidBody {
				t.Errorf("expected one invalid_body error, got %+v", resp.Errors)
			}
		})
	}
}

// TestContactHandler_Submit_ServiceError verifies that a storage failure
// returns 500 without leaking the cause.
func TestContactHandler_Submit_ServiceError(t *testing.T) {
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, raw map[string]any) (*model.ContactSubmission, error) {
			return nil, &repository.StorageError{Backend: "postgres", Op: "create", Err: errors.New("db connection lost")}
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(h, janeBody)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on service error, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "db connection lost") || strings.Contains(body, "postgres") {
		t.Errorf("internal detail leaked: %s", body)
	}
	resp := decodeSubmitResponse(t, rec)
	if resp.Success || resp.Message != msgFailed {
		t.Errorf("expected generic failure message, got %+v", resp)
	}
	if resp.Errors != nil {
		t.Errorf("expected no errors list on 500, got %+v", resp.Errors)
	}
}

func TestContactHandler_Submit_ContentTypeJSON(t *testing.T) {
	h := NewContactHandler(&mockContactService{})

	rec := postContact(h, janeBody)

	ct := rec.Header().Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("expected Content-Type=application/json, got %q", ct)
	}
}

func TestContactHandler_Submit_RejectsOtherMethods(t *testing.T) {
	mock := &mockContactService{}
	h := NewContactHandler(mock)

	req := httptest.NewRequest(http.MethodPut, "/api/contact", strings.NewReader(janeBody))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
	if mock.calls != 0 {
		t.Error("service must not be called for a non-POST request")
	}
}

func TestContactHandler_MethodNotAllowed(t *testing.T) {
	h := NewContactHandler(&mockContactService{})

	req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	rec := httptest.NewRecorder()
	h.MethodNotAllowed(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Errorf("expected Allow: POST, got %q", allow)
	}
	resp := decodeSubmitResponse(t, rec)
	if resp.Success || resp.Message != msgMethodNotAllowed {
		t.Errorf("unexpected body: %+v", resp)
	}
}
