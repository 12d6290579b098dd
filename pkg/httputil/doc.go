// Package httputil provides the JSON plumbing shared by the HTTP handlers.
//
// # Responses
//
// [WriteJSON] encodes a value with a status code. [WriteError] maps an error
// to a status with [errors.HTTPStatus] and writes an [ErrorBody]:
//
//	{"code": "DEGENERATE", "message": "line 2: input is not in general position: ..."}
//
// Errors without a code are reported as INTERNAL_ERROR and their text is not
// sent to the client.
//
// # Requests
//
// [ReadBody] reads a request body up to a limit. Oversized bodies fail with
// INVALID_INPUT.
//
// [errors.HTTPStatus]: github.com/matzehuels/planar/pkg/errors.HTTPStatus
package httputil
