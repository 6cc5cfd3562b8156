package markup

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	widgetPolicyOnce sync.Once
	widgetPolicy     *bluemonday.Policy
)

// Sanitize strips everything outside the widget vocabulary from rendered
// markup. Embedded and theme-provided templates share the policy.
func Sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(sanitizer().Sanitize(trimmed))
}

func sanitizer() *bluemonday.Policy {
	widgetPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("div", "span", "label", "p", "strong", "em", "small", "ul", "li")
		policy.AllowAttrs("id", "class", "role", "aria-live", "aria-hidden", "aria-label").Globally()
		policy.AllowAttrs("for").OnElements("label")
		policy.AllowDataAttributes()
		widgetPolicy = policy
	})
	return widgetPolicy
}
