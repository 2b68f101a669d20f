// Package keygen turns extracted display text into stable, namespaced
// translation keys of the form <prefix>.[<componentContext>.]<slug>_<counter>.
package keygen

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// maxSlugLength caps the slug when no component context is prepended.
	maxSlugLength = 30
	// maxSlugLengthWithContext leaves room for the context segment.
	maxSlugLengthWithContext = 20
)

// Generator issues unique keys for one extraction session. The counter is
// monotonic and never reused, so two identical texts still get distinct
// keys. Not safe for concurrent use; sessions process files sequentially.
type Generator struct {
	prefix  string
	counter int
}

// NewGenerator creates a generator rooted at the given key prefix.
// The counter starts at 1.
func NewGenerator(prefix string) *Generator {
	if prefix == "" {
		prefix = "app"
	}
	return &Generator{prefix: prefix, counter: 1}
}

// Next generates the key for one piece of display text and advances the
// counter. componentContext may be empty.
func (g *Generator) Next(text, componentContext string) string {
	max := maxSlugLength
	if componentContext != "" {
		max = maxSlugLengthWithContext
	}
	slug := Slugify(text, max)

	var key string
	if componentContext != "" {
		key = fmt.Sprintf("%s.%s.%s_%d", g.prefix, componentContext, slug, g.counter)
	} else {
		key = fmt.Sprintf("%s.%s_%d", g.prefix, slug, g.counter)
	}
	g.counter++
	return key
}

// Counter returns the next counter value to be issued.
func (g *Generator) Counter() int {
	return g.counter
}

var (
	nonSlugChars   = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// Slugify renders text as a lowercased alphanumeric-and-underscore token
// truncated to maxLen.
func Slugify(text string, maxLen int) string {
	s := strings.ToLower(text)
	s = nonSlugChars.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = whitespaceRuns.ReplaceAllString(s, "_")
	if len(s) > maxLen {
		s = s[:maxLen]
		s = strings.TrimRight(s, "_")
	}
	if s == "" {
		s = "text"
	}
	return s
}
