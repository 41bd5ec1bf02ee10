package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateGraphPath validates the path of a graph JSON file before it is opened.
//
// The rules mirror the file chooser of an interactive host:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No control characters or null bytes
//   - Extension must be .json (case-insensitive)
func ValidateGraphPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "graph path cannot be empty")
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

	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return New(ErrCodeInvalidPath, "graph file must have a .json extension: %q", filepath.Base(path))
	}

	return nil
}

// ValidateOutputPath validates a path the caller wants to write to.
// The parent directory is not checked; writing reports that error itself.
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}
	if strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path is a directory: %q", path)
	}
	return nil
}
