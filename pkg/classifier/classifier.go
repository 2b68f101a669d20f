package classifier

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	// minStandaloneLength is the shortest single word still considered a
	// meaningful standalone label ("Close", "Start").
	minStandaloneLength = 5
	// minErrorMessageLength filters out short technical throw arguments.
	minErrorMessageLength = 10
)

// IsDisplayText reports whether candidate is user-facing display text.
// ctx may be nil when no surrounding-code information is available
// (e.g. markup text nodes). The verdict is pure: the same
// (candidate, ctx) pair always yields the same result.
func IsDisplayText(candidate string, ctx *Context) bool {
	trimmed := strings.TrimSpace(candidate)

	// Step 1: trivially non-text content.
	if len(trimmed) < 2 {
		return false
	}
	if punctuationOnlyPattern.MatchString(trimmed) {
		return false
	}

	// Step 2: already a key, or carries interpolation.
	if translationKeyPattern.MatchString(trimmed) {
		return false
	}
	if strings.Contains(candidate, "${") || strings.Contains(candidate, "{{") {
		return false
	}

	// Step 3: structural-role verdicts from the surrounding code.
	if ctx != nil {
		if ctx.IsImport || ctx.IsDecorator || ctx.IsConsoleCall {
			return false
		}
		if ctx.IsThrownError {
			return IsUserFacingErrorMessage(trimmed)
		}
		if ctx.IsClassProperty && !looksConversational(trimmed) {
			return false
		}
	}

	// Step 4: the code-shape battery.
	if matchCodeShape(trimmed) != "" {
		return false
	}

	// Step 5: phrases always pass; single tokens only when long enough to
	// be a meaningful word on their own.
	if containsInternalWhitespace(trimmed) {
		return true
	}
	return len(trimmed) >= minStandaloneLength
}

var (
	technicalErrorClass = regexp.MustCompile(`\b[A-Z][a-zA-Z]*(Error|Exception)\b`)
	functionCallLike    = regexp.MustCompile(`[A-Za-z_$][\w$]*\s*\(`)
	allCapsCode         = regexp.MustCompile(`^[A-Z0-9_]+$`)
)

// IsUserFacingErrorMessage reports whether a thrown-error argument reads
// like a message meant for an end user rather than a technical diagnostic.
func IsUserFacingErrorMessage(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) <= minErrorMessageLength {
		return false
	}
	if technicalErrorClass.MatchString(trimmed) {
		return false
	}
	if strings.Contains(trimmed, "undefined") || strings.Contains(trimmed, "null") {
		return false
	}
	if functionCallLike.MatchString(trimmed) {
		return false
	}
	if allCapsCode.MatchString(trimmed) {
		return false
	}
	return countLowercase(trimmed) >= 2
}

// looksConversational is the bar a class-level field initializer must clear:
// multi-word prose rather than a configuration token.
func looksConversational(s string) bool {
	return containsInternalWhitespace(s) && len(s) >= 8
}

func containsInternalWhitespace(s string) bool {
	return strings.ContainsFunc(s, unicode.IsSpace)
}

func countLowercase(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLower(r) {
			n++
		}
	}
	return n
}
