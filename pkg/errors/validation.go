package errors

import (
	"strings"
	"unicode"
)

// ValidateExtension validates an archive file extension such as ".jar".
//
// Validation rules:
//   - Must start with a dot and have at least one character after it
//   - Maximum length of 16 characters
//   - No path separators, whitespace or control characters
func ValidateExtension(ext string) error {
	if len(ext) < 2 || ext[0] != '.' {
		return New(ErrCodeInvalidConfig, "extension %q must start with '.'", ext)
	}

	if len(ext) > 16 {
		return New(ErrCodeInvalidConfig, "extension %q too long (max 16 characters)", ext)
	}

	if strings.ContainsAny(ext, "/\\") {
		return New(ErrCodeInvalidConfig, "extension %q cannot contain path separators", ext)
	}

	for _, r := range ext {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidConfig, "extension %q contains invalid characters", ext)
		}
	}

	return nil
}

// ValidateScanPath validates a path handed to the CLI as a scan root.
// It only rejects values that can never name a file.
func ValidateScanPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "path contains a null byte")
	}

	return nil
}
