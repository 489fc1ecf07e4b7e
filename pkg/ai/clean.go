package ai

import "strings"

// CleanModelReply strips the markdown code fence the model sometimes wraps
// around its JSON reply: surrounding whitespace, a leading "```json" or
// "```", and a trailing "```". Anything else is left untouched.
func CleanModelReply(reply string) string {
	s := strings.TrimSpace(reply)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}
	return strings.TrimSpace(s)
}
