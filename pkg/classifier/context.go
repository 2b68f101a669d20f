// Package classifier decides whether a candidate string is user-facing
// display text or incidental code (identifiers, paths, URLs, configuration).
//
// The rejection heuristics are kept as a declarative ordered rule list so
// individual rules can be tested and tuned in isolation.
package classifier

// Context describes where in the surrounding source a candidate string was
// found. It is built fresh for every candidate and never persisted.
type Context struct {
	// SurroundingText is the raw source immediately preceding the literal.
	SurroundingText string
	// Line is the full source line containing the literal.
	Line string

	IsImport        bool
	IsDecorator     bool
	IsConsoleCall   bool
	IsThrownError   bool
	IsClassProperty bool // class-level field initializer, not inside a method body
	IsObjectValue   bool
	IsArrayElement  bool
}
