package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// assetKeyRegex matches lowercase hex digests as produced by cache.Hash.
var assetKeyRegex = regexp.MustCompile(`^[0-9a-f]{64}$`)

// ValidateAssetKey validates a decomposition hash used as a store or URL key.
// Keys are SHA-256 hex digests; anything else is rejected before it reaches
// a backend query.
func ValidateAssetKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "asset key cannot be empty")
	}
	if !assetKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidInput, "invalid asset key: %q", key)
	}
	return nil
}

// ValidatePath validates an input or output file path given on the command line.
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

// ValidateURL validates a backend connection string for the given schemes.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use one of the schemes: %s", strings.Join(schemes, ", "))
}
