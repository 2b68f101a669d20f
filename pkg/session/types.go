// Package session orchestrates one extraction run over a directory:
// discovery, markup and logic extraction, key aggregation, and the
// serialized output artifact.
package session

// Config holds the options recognized by one extraction session.
type Config struct {
	// SrcPath is the root directory to scan.
	SrcPath string
	// OutputPath is the artifact destination.
	OutputPath string
	// Locale tag stored in the artifact.
	Locale string
	// KeyPrefix is the root namespace for generated keys.
	KeyPrefix string
	// Replace rewrites source files in place; off means dry run.
	Replace bool
	// SkipLogic disables component-logic-file scanning entirely.
	SkipLogic bool
	// UseComponentContext namespaces keys with a per-file token derived
	// from the filename.
	UseComponentContext bool
	// ServicePath is the shared lookup-service location used when logic
	// rewrites must add an import. Relative to SrcPath.
	ServicePath string

	// Include and Exclude are doublestar glob patterns applied during
	// discovery, relative to SrcPath.
	Include []string
	Exclude []string
}

// DefaultConfig returns the default session configuration. Test and spec
// files are excluded by convention; build output and dependency
// directories are never scanned.
func DefaultConfig() Config {
	return Config{
		Locale:      "en",
		KeyPrefix:   "app",
		OutputPath:  "extracted-texts.json",
		ServicePath: "src/app/services/translation.service",
		Include: []string{
			"**/*.html",
			"**/*.ts",
		},
		Exclude: []string{
			"node_modules/**",
			".git/**",
			"dist/**",
			"build/**",
			"coverage/**",
			"out/**",
			".angular/**",
			"e2e/**",
			"**/*.spec.ts",
			"**/*.test.ts",
			"**/*.d.ts",
		},
	}
}

// Stats tracks counts and timings for one session run.
type Stats struct {
	FilesDiscovered int
	MarkupFiles     int
	LogicFiles      int
	FilesFailed     int
	FilesRewritten  int
	TextsExtracted  int

	DiscoveryTimeMs int64
	MarkupTimeMs    int64
	LogicTimeMs     int64
	TotalTimeMs     int64
}
