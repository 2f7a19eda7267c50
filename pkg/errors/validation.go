package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/pagemarks/pkg/geom"
)

// maxTitleLength bounds marker labels. Page titles are short; anything
// longer is almost certainly a renderer bug.
const maxTitleLength = 64

// ValidateTitle validates a page-break title.
//
// The validation rules are:
//   - No empty titles
//   - No control characters
//   - Maximum length of 64 runes
func ValidateTitle(title string) error {
	if title == "" {
		return New(ErrCodeInvalidScene, "page break title cannot be empty")
	}

	if utf8.RuneCountInString(title) > maxTitleLength {
		return New(ErrCodeInvalidScene, "page break title too long (max %d characters)", maxTitleLength)
	}

	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidScene, "page break title contains control characters")
		}
	}

	return nil
}

// ValidateRect validates a rectangle used as geometry input.
// Coordinates must be finite and sizes non-negative.
func ValidateRect(name string, r geom.Rect) error {
	for _, v := range []float64{r.Left, r.Top, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidScene, "%s has a non-finite coordinate", name)
		}
	}

	if r.Width < 0 || r.Height < 0 {
		return New(ErrCodeInvalidScene, "%s has negative size %gx%g", name, r.Width, r.Height)
	}

	return nil
}

// ValidateFinite rejects NaN and infinite values.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidScene, "%s must be finite, got %g", name, v)
	}
	return nil
}

// ValidatePoint rejects points with a NaN or infinite coordinate.
func ValidatePoint(name string, p geom.Point) error {
	if err := ValidateFinite(name+" x", p.X); err != nil {
		return err
	}
	return ValidateFinite(name+" y", p.Y)
}

// Supported scene file extensions.
var sceneExtensions = map[string]bool{
	".json": true,
	".toml": true,
	".yaml": true,
	".yml":  true,
}

// ValidateScenePath validates a scene file path.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Extension must be .json, .toml, .yaml or .yml
func ValidateScenePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "scene path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "scene path contains invalid characters")
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !sceneExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported scene format %q (want .json, .toml or .yaml)", ext)
	}

	return nil
}
