package sentiment

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern          = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagPattern      = regexp.MustCompile(`<[^>]+>`)
)

// StripLinks removes bare URLs and reduces markdown links to their text.
func StripLinks(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1")
	input = urlPattern.ReplaceAllString(input, "")

	return input
}

// NormalizeText renders markdown formatting away (reddit posts carry it),
// collapses whitespace, and strips links, leaving plain prose for the
// analyzers.
func NormalizeText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	stripped := htmlTagPattern.ReplaceAllString(string(output), " ")
	plainText := strings.Join(strings.Fields(stripped), " ")

	return strings.TrimSpace(StripLinks(plainText))
}

// cacheKey folds case and whitespace so reposts of the same text share a
// cache entry.
func cacheKey(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
