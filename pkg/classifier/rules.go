package classifier

import (
	"regexp"
	"strings"
)

// codeShapeRule is one entry in the ordered rejection battery. A candidate
// matching any rule is treated as code, not display text.
type codeShapeRule struct {
	name    string
	matches func(s string) bool
}

func regexRule(name, pattern string) codeShapeRule {
	re := regexp.MustCompile(pattern)
	return codeShapeRule{name: name, matches: re.MatchString}
}

// codeShapeRules is evaluated in order; first match wins. The order mirrors
// specificity: scoped packages and URLs before the broad token shapes.
var codeShapeRules = []codeShapeRule{
	regexRule("scoped-package", `^@[a-z0-9~][a-z0-9-._~]*/[a-z0-9-._~]+`),
	regexRule("url", `^[a-zA-Z][a-zA-Z0-9+.-]*://`),
	regexRule("www-host", `^www\.[^\s]+$`),
	// Before domain-path: "v2.10.0" parses as dotted segments too.
	regexRule("version-number", `^v?\d+(\.\d+)+(-[\w.]+)?$`),
	regexRule("domain-path", `^[a-z0-9-]+(\.[a-z0-9-]+)+(/[^\s]*)?$`),
	regexRule("absolute-path", `^/[^\s]*$`),
	regexRule("relative-path", `^\.{1,2}/[^\s]*$`),
	regexRule("windows-path", `^[A-Za-z]:\\`),
	regexRule("hex-color", `^#[0-9a-fA-F]{3,8}$`),
	regexRule("css-declaration", `^[a-z-]+\s*:\s*[^:;{}]+;?$`),
	regexRule("css-selector", `^[.#][A-Za-z_][\w-]*$`),
	regexRule("hex-hash", `^[0-9a-fA-F]{16,}$`),
	regexRule("http-method", `^(GET|POST|PUT|DELETE|PATCH|HEAD|OPTIONS)$`),
	{name: "mime-or-encoding", matches: isMimeOrEncodingToken},
	regexRule("all-caps-constant", `^[A-Z][A-Z0-9]*(_[A-Z0-9]+)+$|^[A-Z]{2,10}$`),
	regexRule("property-access", `^[A-Za-z_$][\w$]*(\.[A-Za-z_$][\w$]*)+$`),
	regexRule("camel-case-token", `^[a-z][a-z0-9]*([A-Z][a-zA-Z0-9]*)+$`),
	regexRule("kebab-case-token", `^[a-z0-9]+(-[a-z0-9]+)+$`),
	regexRule("snake-case-token", `^[a-z0-9]+(_[a-z0-9]+)+$`),
	// Lowercase-leading bare identifiers. Capitalized single words such as
	// "Welcome" or "Cancel" deliberately fall through to the phrase/length
	// check instead.
	regexRule("bare-identifier", `^[a-z_$][a-zA-Z0-9_$]*$`),
}

var mimeOrEncodingTokens = map[string]struct{}{
	"utf-8":    {},
	"utf8":     {},
	"utf-16":   {},
	"ascii":    {},
	"base64":   {},
	"binary":   {},
	"hex":      {},
	"gzip":     {},
	"deflate":  {},
	"identity": {},
}

// mimeTypePattern matches MIME types: application/json, text/html, image/png, ...
var mimeTypePattern = regexp.MustCompile(`^(application|text|image|audio|video|multipart|font)/[\w.+-]+$`)

func isMimeOrEncodingToken(s string) bool {
	lower := strings.ToLower(s)
	if _, ok := mimeOrEncodingTokens[lower]; ok {
		return true
	}
	return mimeTypePattern.MatchString(lower)
}

// translationKeyPattern matches already-applied dot-separated keys such as
// "app.header.welcome_title_3".
var translationKeyPattern = regexp.MustCompile(`^[a-z0-9_-]+(\.[a-z0-9_-]+)+$`)

// punctuationOnlyPattern matches strings of digits, whitespace, and basic
// punctuation with no letters at all.
var punctuationOnlyPattern = regexp.MustCompile(`^[\d\s.,:;!?'"()\[\]{}<>/\\|@#$%^&*+=~\x60-]*$`)

// matchCodeShape returns the name of the first matching rejection rule, or
// the empty string if the candidate does not look like code.
func matchCodeShape(s string) string {
	for _, rule := range codeShapeRules {
		if rule.matches(s) {
			return rule.name
		}
	}
	return ""
}
