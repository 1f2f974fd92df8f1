// Package util holds small text helpers shared by the review relay and the renderer.
package util

import "strings"

// StripMarkdownFence removes a ```markdown ... ``` wrapper that some LLMs put
// around their whole answer. A bare ``` opening fence is treated the same way.
// Anything else is returned unchanged.
func StripMarkdownFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}

	idx := strings.Index(trimmed, "\n")
	if idx < 0 {
		return s
	}
	switch strings.ToLower(strings.TrimSpace(trimmed[3:idx])) {
	case "markdown", "md", "":
	default:
		return s
	}

	inner := trimmed[idx+1:]
	if lastFence := strings.LastIndex(inner, "```"); lastFence >= 0 {
		inner = inner[:lastFence]
	}
	return strings.TrimSpace(inner)
}
