package httputil

import (
	"encoding/json"
	"net/http"
)

// Error type strings carried in the response body
const (
	ErrTypeBadRequest = "BAD_REQUEST"
	ErrTypeForbidden  = "FORBIDDEN"
	ErrTypeNotFound   = "NOT_FOUND"
	ErrTypeInternal   = "INTERNAL_ERROR"
)

// redactedMessage replaces internal error details outside debug mode.
const redactedMessage = "Error"

// ErrorResponse is the standard error envelope:
// {"result": false, "error_type": ..., "error_message": ...}
type ErrorResponse struct {
	Result       bool   `json:"result"`
	ErrorType    string `json:"error_type"`
	ErrorMessage string `json:"error_message"`
}

// Writer shapes JSON responses. Debug controls whether internal error
// messages reach the client; client-error messages are always shown since
// the front-end displays them. Redaction of server errors is a product
// decision carried over from the original deployment.
type Writer struct {
	Debug bool
}

func NewWriter(debug bool) *Writer {
	return &Writer{Debug: debug}
}

// JSON writes a JSON response with the given status code.
func (wr *Writer) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers already sent; nothing left to do.
			return
		}
	}
}

// Error writes the error envelope with the given status and type.
func (wr *Writer) Error(w http.ResponseWriter, status int, errType, message string) {
	wr.JSON(w, status, ErrorResponse{
		Result:       false,
		ErrorType:    errType,
		ErrorMessage: message,
	})
}

// BadRequest writes a 400 error.
func (wr *Writer) BadRequest(w http.ResponseWriter, message string) {
	wr.Error(w, http.StatusBadRequest, ErrTypeBadRequest, message)
}

// Forbidden writes a 403 error.
func (wr *Writer) Forbidden(w http.ResponseWriter, message string) {
	wr.Error(w, http.StatusForbidden, ErrTypeForbidden, message)
}

// NotFound writes a 404 error.
func (wr *Writer) NotFound(w http.ResponseWriter, message string) {
	wr.Error(w, http.StatusNotFound, ErrTypeNotFound, message)
}

// InternalError writes a 500 error. The real message is shown only in debug
// mode; production clients get a generic string.
func (wr *Writer) InternalError(w http.ResponseWriter, err error) {
	message := redactedMessage
	if wr.Debug && err != nil {
		message = err.Error()
	}
	wr.Error(w, http.StatusInternalServerError, ErrTypeInternal, message)
}
