package errors

import (
	"net/url"
	"unicode"
)

// ValidatePath validates a file path given on the command line or in a config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateFontSize checks that a font size in points is usable.
func ValidateFontSize(size float64) error {
	const maxFontSize = 512
	if size <= 0 {
		return New(ErrCodeInvalidFont, "font size must be positive, got %g", size)
	}
	if size > maxFontSize {
		return New(ErrCodeInvalidFont, "font size too large (max %d)", maxFontSize)
	}
	return nil
}

// ValidateRedisURL checks that rawURL names a Redis server:
// a redis:// or rediss:// scheme and a host.
func ValidateRedisURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "redis URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "malformed redis URL")
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return New(ErrCodeInvalidInput, "redis URL must use the redis or rediss scheme, got %q", u.Scheme)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "redis URL has no host")
	}
	return nil
}
