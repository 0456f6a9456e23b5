package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/buildright/backend/internal/model"
	"github.com/buildright/backend/internal/service"
)

const maxContactBodyBytes = 64 << 10

const (
	msgSubmitted        = "Thank you for your message! We'll contact you within 24 hours."
	msgInvalid          = "Please check your form data and try again."
	msgFailed           = "Something went wrong. Please try again later."
	msgMethodNotAllowed = "Method not allowed"
)

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// submitResponse is the JSON body of every /api/contact response.
type submitResponse struct {
	Success      bool               `json:"success"`
	Message      string             `json:"message"`
	SubmissionID int64              `json:"submissionId,omitempty"`
	Errors       []model.FieldError `json:"errors,omitempty"`
}

// Submit handles POST /api/contact.
// 201 on success, 400 with per-field errors when the payload is rejected,
// 500 with a generic message for anything else. Exactly one response is
// written per request.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.MethodNotAllowed(w, r)
		return
	}
	ctx := r.Context()
	requestID := RequestIDFromContext(ctx)

	raw, bodyErr := decodeContactBody(w, r)
	if bodyErr != nil {
		slog.WarnContext(ctx, "contact submission rejected",
			"request_id", requestID,
			"reason", bodyErr.Message,
		)
		writeJSON(w, http.StatusBadRequest, submitResponse{
			Success: false,
			Message: msgInvalid,
			Errors:  []model.FieldError{*bodyErr},
		})
		return
	}

	msg, err := h.contactService.Submit(ctx, raw)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			slog.WarnContext(ctx, "contact submission rejected",
				"request_id", requestID,
				"fields", verr.FieldNames(),
			)
			writeJSON(w, http.StatusBadRequest, submitResponse{
				Success: false,
				Message: msgInvalid,
				Errors:  verr.Fields,
			})
			return
		}

		slog.ErrorContext(ctx, "contact submission failed", "request_id", requestID, "error", err)
		writeJSON(w, http.StatusInternalServerError, submitResponse{
			Success: false,
			Message: msgFailed,
		})
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{
		Success:      true,
		Message:      msgSubmitted,
		SubmissionID: msg.ID,
	})
}

// MethodNotAllowed answers any non-POST request on /api/contact.
func (h *ContactHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	slog.WarnContext(r.Context(), "method not allowed",
		"request_id", RequestIDFromContext(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
	)
	w.Header().Set("Allow", http.MethodPost)
	writeJSON(w, http.StatusMethodNotAllowed, submitResponse{
		Success: false,
		Message: msgMethodNotAllowed,
	})
}

// decodeContactBody reads the request body as a JSON object. Any failure is
// reported as a single body-level field error.
func decodeContactBody(w http.ResponseWriter, r *http.Request) (map[string]any, *model.FieldError) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBodyBytes)

	var body any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &model.FieldError{Code: model.CodeInvalidBody, Message: "Request body is too large"}
		}
		return nil, &model.FieldError{Code: model.CodeInvalidBody, Message: "Request body must be valid JSON"}
	}

	raw, ok := body.(map[string]any)
	if !ok {
		return nil, &model.FieldError{Code: model.CodeInvalidBody, Message: "Request body must be a JSON object"}
	}
	return raw, nil
}
