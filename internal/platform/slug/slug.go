package slug

import (
	"regexp"
	"strings"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// Make turns a skill name into a filesystem-safe journal slug.
func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "skill"
	}
	return s
}
