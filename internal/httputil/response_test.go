package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp
}

func TestWriter_ErrorEnvelope(t *testing.T) {
	writer := NewWriter(false)
	rec := httptest.NewRecorder()

	writer.NotFound(rec, "Tweet not found")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("content type = %q, want application/json", got)
	}

	resp := decodeError(t, rec)
	if resp.Result {
		t.Error("result must be false in error responses")
	}
	if resp.ErrorType != ErrTypeNotFound {
		t.Errorf("error_type = %q, want %q", resp.ErrorType, ErrTypeNotFound)
	}
	if resp.ErrorMessage != "Tweet not found" {
		t.Errorf("error_message = %q, want %q", resp.ErrorMessage, "Tweet not found")
	}
}

func TestWriter_ClientErrorMessagesAlwaysShown(t *testing.T) {
	// Client errors carry their message regardless of debug mode; the
	// front-end displays them.
	writer := NewWriter(false)
	rec := httptest.NewRecorder()

	writer.BadRequest(rec, "Tweet content is required")

	resp := decodeError(t, rec)
	if resp.ErrorMessage != "Tweet content is required" {
		t.Errorf("error_message = %q, want the original message", resp.ErrorMessage)
	}
}

func TestWriter_InternalErrorRedaction(t *testing.T) {
	cause := errors.New("pq: connection refused")

	t.Run("production hides details", func(t *testing.T) {
		writer := NewWriter(false)
		rec := httptest.NewRecorder()

		writer.InternalError(rec, cause)

		resp := decodeError(t, rec)
		if resp.ErrorMessage != redactedMessage {
			t.Errorf("error_message = %q, want redacted %q", resp.ErrorMessage, redactedMessage)
		}
		if resp.ErrorType != ErrTypeInternal {
			t.Errorf("error_type = %q, want %q", resp.ErrorType, ErrTypeInternal)
		}
	})

	t.Run("debug shows details", func(t *testing.T) {
		writer := NewWriter(true)
		rec := httptest.NewRecorder()

		writer.InternalError(rec, cause)

		resp := decodeError(t, rec)
		if resp.ErrorMessage != cause.Error() {
			t.Errorf("error_message = %q, want %q", resp.ErrorMessage, cause.Error())
		}
	})
}

func TestWriter_JSON(t *testing.T) {
	writer := NewWriter(false)
	rec := httptest.NewRecorder()

	writer.JSON(rec, http.StatusCreated, map[string]any{"result": true, "user_id": 7})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["result"] != true {
		t.Errorf("result = %v, want true", body["result"])
	}
}
