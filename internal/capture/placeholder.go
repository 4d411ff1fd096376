package capture

import (
	"os"
	"regexp"
	"time"
)

// PlaceholderSet maps placeholder names to substitution strings.
// Assembled fresh per invocation and discarded after substitution.
type PlaceholderSet map[string]string

// Clock supplies the current time; tests inject a fixed one.
type Clock func() time.Time

// identityFallback is used when no identity can be read from the
// environment.
const identityFallback = "user"

// Identity returns the capturing user's name from the environment.
func Identity() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	if name := os.Getenv("USERNAME"); name != "" {
		return name
	}
	return identityFallback
}

// ResolvePlaceholders builds the placeholder set for one invocation:
// built-in identity and temporal values overlaid with the capture's data
// mapping. Data wins on key collision.
func ResolvePlaceholders(rc *Resolved, now Clock, identity string) PlaceholderSet {
	t := now()
	set := PlaceholderSet{
		"name":        identity,
		"date":        t.Format("Jan 2, 2006"),
		"datetime":    t.Format("Jan 2, 2006 15:04"),
		"isodate":     t.Format("2006-01-02"),
		"isodatetime": t.Format("2006-01-02T15:04:05-0700"),
	}
	for k, v := range rc.Data {
		set[k] = v
	}
	return set
}

// token matches a {key} placeholder occurrence. The empty {} form is a
// tab-stop marker, not a placeholder, and is never in the set.
var token = regexp.MustCompile(`\{[^{}]*\}`)

// Substitute replaces every {key} occurrence in text whose key is present
// in the set. A single left-to-right pass: substituted output is never
// re-scanned, so values containing tokens do not expand recursively.
// Tokens with no matching key are left verbatim. Pure.
func Substitute(text string, set PlaceholderSet) string {
	return token.ReplaceAllStringFunc(text, func(m string) string {
		key := m[1 : len(m)-1]
		if v, ok := set[key]; ok {
			return v
		}
		return m
	})
}
