package errors

import (
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// MaxLines bounds the number of lines accepted in one scene. Arrangements
// grow quadratically with the number of lines.
const MaxLines = 2000

// MaxSegments bounds the number of segments accepted in one scene.
const MaxSegments = 100000

// ValidateName validates a scene name. Empty names are allowed.
func ValidateName(name string) error {
	if len(name) > 128 {
		return New(ErrCodeInvalidScene, "scene name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidScene, "scene name contains control characters")
		}
	}
	return nil
}

// ValidateCount checks that there are at most limit items of the given kind.
func ValidateCount(kind string, n, limit int) error {
	if n > limit {
		return New(ErrCodeInvalidScene, "too many %s: %d (max %d)", kind, n, limit)
	}
	return nil
}

// ValidateFinite checks that every value is a finite number.
func ValidateFinite(field string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidGeometry, "%s must be finite, got %v", field, v)
		}
	}
	return nil
}

// ValidateID checks that id is a UUID as issued by the store.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidID, err, "invalid arrangement id %q", id)
	}
	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want %s)", format, strings.Join(allowed, ", "))
}

// ValidatePath validates a relative output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No control characters
//   - No absolute paths
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}
	return nil
}

// FieldError formats a validation failure for an indexed element.
func FieldError(kind string, i int, err error) error {
	code := GetCode(err)
	if code == "" {
		code = ErrCodeInvalidScene
	}
	return Wrap(code, err, "%s %d", kind, i)
}
