package errors

import (
	"strings"
	"unicode"
)

// maxCodeLength bounds indicator codes accepted from untrusted input.
const maxCodeLength = 256

// ValidateCode validates a code supplied as a query argument, such as a
// subtree root passed on the command line or over HTTP.
//
// The rules are intentionally conservative:
//   - No empty codes
//   - No control characters
//   - Maximum length of 256 characters
func ValidateCode(c string) error {
	if strings.TrimSpace(c) == "" {
		return New(ErrCodeInvalidArgument, "code cannot be empty")
	}
	if len(c) > maxCodeLength {
		return New(ErrCodeInvalidArgument, "code too long (max %d characters)", maxCodeLength)
	}
	for _, r := range c {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidArgument, "code contains invalid control characters")
		}
	}
	return nil
}

// ValidateFileName validates a table file name from configuration.
// It ensures the name is a simple basename without path components, so a
// folder can only ever be read inside itself.
func ValidateFileName(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidConfig, "file name cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidConfig, "file name cannot contain path separators: %q", filename)
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidConfig, "file name cannot be a hidden file: %q", filename)
	}

	for _, r := range filename {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "file name contains invalid characters")
		}
	}

	return nil
}

// ValidatePath validates a folder path given on the command line.
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
