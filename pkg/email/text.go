package email

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicy     *bluemonday.Policy
	textPolicyOnce sync.Once
)

func plainTextPolicy() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
		textPolicy.AddSpaceWhenStrippingTag(true)
	})
	return textPolicy
}

// PlainText renders an HTML body as the plain-text alternative of a message.
// Tags are dropped with the content of style and script elements, and each
// line is collapsed to single spaces with blank lines removed.
func PlainText(body string) string {
	var lines []string
	for _, line := range strings.Split(html.UnescapeString(plainTextPolicy().Sanitize(body)), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
