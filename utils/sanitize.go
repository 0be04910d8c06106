package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize cleans rich text such as bios, post bodies and comments, keeping safe markup.
// The result is HTML.
func Sanitize(input string) string {
	return strings.TrimSpace(ugc.Sanitize(input))
}

// SanitizePtr applies Sanitize to an optional field.
func SanitizePtr(input *string) *string {
	if input == nil {
		return nil
	}
	out := Sanitize(*input)
	return &out
}

// StripTags removes all markup from plain-text labels like names and titles.
// The result is plain text: entities are decoded so "Cats & Dogs" survives as typed.
func StripTags(input string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(input)))
}
