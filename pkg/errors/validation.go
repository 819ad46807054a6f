package errors

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Length limits for user-supplied node text.
const (
	MaxLabelLength   = 256
	MaxDetailsLength = 4096
)

// ValidateNodeLabel trims label and checks it is usable as a node name.
// It returns the trimmed label.
//
// Rules:
//   - Not empty after trimming ("Node name is required")
//   - No control characters
//   - At most MaxLabelLength runes
func ValidateNodeLabel(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", New(ErrCodeInvalidInput, "Node name is required")
	}
	if utf8.RuneCountInString(label) > MaxLabelLength {
		return "", New(ErrCodeInvalidInput, "node name too long (max %d characters)", MaxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return "", New(ErrCodeInvalidInput, "node name contains invalid control characters")
		}
	}
	return label, nil
}

// ValidateNodeDetails checks free-form node details. Newlines and tabs are
// allowed; other control characters are not.
func ValidateNodeDetails(details string) error {
	if utf8.RuneCountInString(details) > MaxDetailsLength {
		return New(ErrCodeInvalidInput, "node details too long (max %d characters)", MaxDetailsLength)
	}
	for _, r := range details {
		if r != '\n' && r != '\t' && r != '\r' && unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node details contain invalid control characters")
		}
	}
	return nil
}

// ValidateStoreKey validates a storage key. Keys end up in file names and
// database ids, so they are kept conservative.
func ValidateStoreKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "storage key cannot be empty")
	}
	if len(key) > 256 {
		return New(ErrCodeInvalidInput, "storage key too long (max 256 characters)")
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "storage key contains invalid control characters")
		}
	}
	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(key, pattern) {
			return New(ErrCodeInvalidInput, "storage key contains invalid characters: %q", pattern)
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https) and a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL must include a host")
	}

	return nil
}

// ValidateFilePath validates a path given for import or export.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateFilePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
