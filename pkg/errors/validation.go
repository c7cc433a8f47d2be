package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// MaxFilenameLength bounds uploaded file names.
const MaxFilenameLength = 255

// ValidateFilename validates an uploaded file name for safety.
// Only the base name is kept by callers, but names carrying path
// traversal or control characters are rejected outright.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 255 characters
//   - No control characters or null bytes
//   - No ".." sequences or backslashes
func ValidateFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidFile, "filename cannot be empty")
	}
	if len(name) > MaxFilenameLength {
		return New(ErrCodeInvalidFile, "filename too long (max %d characters)", MaxFilenameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFile, "filename contains invalid control characters")
		}
	}
	if strings.Contains(name, "..") || strings.Contains(name, "\\") {
		return New(ErrCodeInvalidFile, "filename contains path traversal characters")
	}
	if filepath.Base(name) == "." || filepath.Base(name) == "/" {
		return New(ErrCodeInvalidFile, "filename must name a file")
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateChoice validates an annotator choice identifier: lower-case
// letters, digits, '-' and '_', at most 64 characters.
func ValidateChoice(choice string) error {
	if choice == "" {
		return New(ErrCodeInvalidInput, "annotator choice cannot be empty")
	}
	if len(choice) > 64 {
		return New(ErrCodeInvalidInput, "annotator choice too long (max 64 characters)")
	}
	for _, r := range choice {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
			return New(ErrCodeInvalidInput, "invalid annotator choice: %q", choice)
		}
	}
	return nil
}
