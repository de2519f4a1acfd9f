package ai

import "strings"

var leadingFences = []string{"```json\n", "```JSON\n", "```\n"}

const trailingFence = "\n```"

// Sanitize removes Markdown code-fence wrapping (e.g. ```json ... ```) from
// model output. Text without fences is returned unchanged, and applying it
// twice gives the same result as applying it once. Nothing else is repaired.
func Sanitize(raw string) string {
	out := raw
	for {
		next, ok := stripFence(strings.TrimSpace(out))
		if !ok {
			return out
		}
		out = next
	}
}

func stripFence(s string) (string, bool) {
	stripped := false
	for _, f := range leadingFences {
		if strings.HasPrefix(s, f) {
			s = s[len(f):]
			stripped = true
			break
		}
	}
	if strings.HasSuffix(s, trailingFence) {
		s = s[:len(s)-len(trailingFence)]
		stripped = true
	}
	return s, stripped
}
