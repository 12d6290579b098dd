package httputil

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/matzehuels/planar/pkg/errors"
)

// DefaultBodyLimit is the request body limit used when none is given.
const DefaultBodyLimit = 8 << 20

// ErrorBody is the JSON body of an error response.
type ErrorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// WriteError writes err as an [ErrorBody] and returns the status it used.
func WriteError(w http.ResponseWriter, err error) int {
	code := errors.GetCode(err)
	msg := "internal error"
	if code == "" {
		code = errors.ErrCodeInternal
	} else {
		msg = errors.UserMessage(err)
	}
	status := errors.HTTPStatus(code)
	WriteJSON(w, status, ErrorBody{Code: code, Message: msg})
	return status
}

// WriteBytes writes data with the given content type and status 200.
func WriteBytes(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ReadBody reads the request body. A limit of zero or less means
// [DefaultBodyLimit].
func ReadBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultBodyLimit
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", limit)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body is empty")
	}
	return data, nil
}
