// Package sanitize strips unsafe HTML from caller-supplied blog text before it is stored.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer holds the bluemonday policies. Policies are safe for concurrent use
// once built, so one Sanitizer is shared by all requests.
type Sanitizer struct {
	content *bluemonday.Policy
	plain   *bluemonday.Policy
}

// New builds a Sanitizer. Blog content keeps basic formatting markup (links, lists,
// emphasis, code, https images); titles, hashtags and image references are plain text.
func New() *Sanitizer {
	content := bluemonday.NewPolicy()
	content.AllowElements(
		"p", "br", "ul", "ol", "li",
		"blockquote", "pre", "code",
		"strong", "em", "b", "i",
		"h2", "h3", "h4",
	)
	content.AllowAttrs("href").OnElements("a")
	content.AllowURLSchemes("https", "http", "mailto")
	content.RequireNoReferrerOnLinks(true)
	content.AddTargetBlankToFullyQualifiedLinks(true)
	content.AllowAttrs("src", "alt").OnElements("img")

	return &Sanitizer{
		content: content,
		plain:   bluemonday.StrictPolicy(),
	}
}

// Content sanitizes a blog body. Text without any markup is returned as written
// (trimmed); bluemonday would otherwise entity-encode characters such as & and <.
func (s *Sanitizer) Content(raw string) string {
	raw = strings.TrimSpace(raw)
	if html.UnescapeString(s.plain.Sanitize(raw)) == raw {
		return raw
	}
	return strings.TrimSpace(s.content.Sanitize(raw))
}

// Plain removes all markup, for titles, hashtags and image references. The result is
// text, not HTML, so entities escaped by the policy are decoded again.
func (s *Sanitizer) Plain(raw string) string {
	return strings.TrimSpace(html.UnescapeString(s.plain.Sanitize(raw)))
}
