package errors

import (
	"net/url"
	"regexp"
	"unicode"
)

// MaxAbsYear bounds every year accepted from user input.
const MaxAbsYear = 10000

var slugRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateSlug validates a person slug or period id.
//
// Identifiers are lowercase ASCII letters, digits, '-' and '_', start with a
// letter or digit, and are at most 128 characters long.
func ValidateSlug(slug string) error {
	if slug == "" {
		return New(ErrCodeInvalidInput, "slug cannot be empty")
	}
	if len(slug) > 128 {
		return New(ErrCodeInvalidInput, "slug too long (max 128 characters)")
	}
	if !slugRegex.MatchString(slug) {
		return New(ErrCodeInvalidInput, "invalid slug: %q", slug)
	}
	return nil
}

// ValidatePath checks a local file path given on the command line or in
// config: it must be non-empty, at most 4096 bytes and free of control
// characters.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d bytes)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains control characters")
		}
	}
	return nil
}

// ValidateURL accepts absolute http and https URLs with a host. Dataset
// backends are only ever reached over HTTP.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL %q must use http or https", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL %q has no host", rawURL)
	}
	return nil
}

// ValidateYearRange checks an inclusive [lo, hi] year window.
func ValidateYearRange(lo, hi int) error {
	if lo > hi {
		return New(ErrCodeInvalidFilter, "start year %d is after end year %d", lo, hi)
	}
	if lo < -MaxAbsYear || hi > MaxAbsYear {
		return New(ErrCodeInvalidFilter, "years must lie within ±%d", MaxAbsYear)
	}
	return nil
}
