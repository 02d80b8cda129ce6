// Package htmlsanitize cleans user-authored note content before it is
// persisted. Notes allow a small set of inline formatting tags;
// everything else, scripts above all, is stripped.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var notePolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "u", "code", "br")
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	return p
}()

var strict = bluemonday.StrictPolicy()

// Note sanitizes a note body, keeping basic inline formatting.
func Note(s string) string {
	return strings.TrimSpace(notePolicy.Sanitize(s))
}

// Plain strips all markup, leaving text only. Used for names and other
// fields that should never contain HTML.
func Plain(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
