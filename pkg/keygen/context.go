package keygen

import (
	"path/filepath"
	"strings"
)

const (
	// maxContextLength is the longest camelCase context emitted before
	// falling back to a per-segment abbreviation.
	maxContextLength = 15
	// fallbackContext is used when the filename yields nothing usable.
	fallbackContext = "shared"
)

// structuralSuffixes are Angular filename roles stripped before deriving a
// component context ("user-profile.component.ts" → "user-profile").
var structuralSuffixes = []string{
	"component", "service", "directive", "pipe", "guard",
	"resolver", "module", "spec", "test",
}

// genericPrefixes carry no naming information and are dropped.
var genericPrefixes = []string{"app", "the"}

// DeriveComponentContext computes the short token used to namespace keys
// generated while processing one file. "user-profile.component.html"
// becomes "userProfile"; long names collapse to an abbreviation built from
// the first letter of each hyphen-separated segment.
func DeriveComponentContext(filePath string) string {
	name := filepath.Base(filePath)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	segments := strings.Split(name, ".")
	kept := segments[:0]
	for _, seg := range segments {
		if isStructuralSuffix(seg) {
			continue
		}
		kept = append(kept, seg)
	}
	name = strings.Join(kept, "-")

	parts := splitNameParts(name)
	if len(parts) == 0 {
		return fallbackContext
	}

	camel := toCamelCase(parts)
	if len(camel) <= maxContextLength {
		if camel == "" {
			return fallbackContext
		}
		return camel
	}

	abbrev := abbreviate(parts)
	if len(abbrev) >= 2 {
		return abbrev
	}
	return camel[:maxContextLength]
}

func isStructuralSuffix(segment string) bool {
	lower := strings.ToLower(segment)
	for _, s := range structuralSuffixes {
		if lower == s {
			return true
		}
	}
	return false
}

func splitNameParts(name string) []string {
	raw := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_'
	})
	parts := raw[:0]
	for i, p := range raw {
		if p == "" {
			continue
		}
		if i == 0 && isGenericPrefix(p) && len(raw) > 1 {
			continue
		}
		parts = append(parts, p)
	}
	return parts
}

func isGenericPrefix(segment string) bool {
	lower := strings.ToLower(segment)
	for _, p := range genericPrefixes {
		if lower == p {
			return true
		}
	}
	return false
}

func toCamelCase(parts []string) string {
	var b strings.Builder
	for i, p := range parts {
		p = strings.ToLower(p)
		if i == 0 {
			b.WriteString(p)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

func abbreviate(parts []string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strings.ToLower(p[:1]))
	}
	return b.String()
}
