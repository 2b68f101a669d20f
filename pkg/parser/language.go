package parser

import (
	"path/filepath"
	"strings"
)

// Language identifies a grammar supported by the parser manager.
type Language int

const (
	// LanguageHTML covers Angular markup templates (.html, .htm).
	LanguageHTML Language = iota
	// LanguageTypeScript covers component logic files (.ts).
	LanguageTypeScript
	// LanguageJavaScript covers plain .js sources.
	LanguageJavaScript
	// LanguageUnknown marks unsupported file types.
	LanguageUnknown
)

// String returns the string representation of the language.
func (l Language) String() string {
	switch l {
	case LanguageHTML:
		return "html"
	case LanguageTypeScript:
		return "typescript"
	case LanguageJavaScript:
		return "javascript"
	default:
		return "unknown"
	}
}

// DetectLanguage maps a file path to its grammar. Returns LanguageUnknown
// for unrecognized extensions.
func DetectLanguage(filePath string) Language {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".html", ".htm":
		return LanguageHTML
	case ".ts", ".mts", ".cts":
		return LanguageTypeScript
	case ".js", ".mjs", ".cjs":
		return LanguageJavaScript
	default:
		return LanguageUnknown
	}
}

// IsMarkupFile reports whether the path is an Angular markup template.
func IsMarkupFile(filePath string) bool {
	return DetectLanguage(filePath) == LanguageHTML
}

// IsLogicFile reports whether the path is a component logic source.
func IsLogicFile(filePath string) bool {
	lang := DetectLanguage(filePath)
	return lang == LanguageTypeScript || lang == LanguageJavaScript
}
