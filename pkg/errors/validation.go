package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateDomain checks that [lo, hi] is a usable envelope domain.
// Degenerate domains (lo >= hi) are rejected.
func ValidateDomain(lo, hi int64) error {
	if lo >= hi {
		return New(ErrCodeInvalidDomain, "lower bound %d must be below upper bound %d", lo, hi)
	}
	return nil
}

// ValidateLineCount rejects empty line sets.
func ValidateLineCount(n int) error {
	if n == 0 {
		return New(ErrCodeInvalidInput, "at least one line is required")
	}
	return nil
}

// ValidateGrid checks the grid bound of a post-office transform. The grid is
// [1, u] x [1, u], so u must be at least 2.
func ValidateGrid(u int64) error {
	if u < 2 {
		return New(ErrCodeInvalidDomain, "grid bound %d must be at least 2", u)
	}
	return nil
}

// ValidateSite checks that (x, y) lies inside the [1, u] x [1, u] grid.
func ValidateSite(x, y, u int64) error {
	if x < 1 || x > u || y < 1 || y > u {
		return New(ErrCodeInvalidSite, "site (%d,%d) outside grid [1,%d]x[1,%d]", x, y, u, u)
	}
	return nil
}

// ValidatePath validates an input file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Extension must be .toml
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".toml" {
		return New(ErrCodeInvalidPath, "unsupported input extension %q (want .toml)", ext)
	}

	return nil
}
