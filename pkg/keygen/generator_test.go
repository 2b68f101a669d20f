package keygen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_KeyShape(t *testing.T) {
	gen := NewGenerator("app")
	assert.Equal(t, "app.welcome_to_our_app_1", gen.Next("Welcome to our app", ""))
	assert.Equal(t, "app.header.sign_in_2", gen.Next("Sign in", "header"))
}

func TestGenerator_UniqueKeysForIdenticalText(t *testing.T) {
	gen := NewGenerator("app")
	first := gen.Next("Save", "")
	second := gen.Next("Save", "")
	assert.Equal(t, "app.save_1", first)
	assert.Equal(t, "app.save_2", second)
	assert.NotEqual(t, first, second)
}

func TestGenerator_CounterMonotonic(t *testing.T) {
	gen := NewGenerator("app")
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		key := gen.Next("Click here to continue", "")
		assert.False(t, seen[key], "duplicate key: %s", key)
		seen[key] = true
	}
	assert.Equal(t, 51, gen.Counter())
}

func TestGenerator_EmptyPrefixFallsBack(t *testing.T) {
	gen := NewGenerator("")
	assert.Equal(t, "app.hello_world_1", gen.Next("Hello world", ""))
}

func TestGenerator_IndependentSessions(t *testing.T) {
	// Two generators never share counter state.
	a := NewGenerator("app")
	b := NewGenerator("app")
	assert.Equal(t, "app.save_1", a.Next("Save", ""))
	assert.Equal(t, "app.save_1", b.Next("Save", ""))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		text   string
		maxLen int
		want   string
	}{
		{"Welcome to our app", 30, "welcome_to_our_app"},
		{"Hello, World!", 30, "hello_world"},
		{"  spaced   out  ", 30, "spaced_out"},
		{"Save & continue (now)", 30, "save_continue_now"},
		{"This is a rather long piece of display text", 20, "this_is_a_rather_lon"},
		{"???", 30, "text"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.text, tt.maxLen), "text: %q", tt.text)
	}
}

func TestSlugify_TruncationDropsTrailingUnderscore(t *testing.T) {
	// Truncation landing on a word boundary must not leave a dangling "_".
	got := Slugify("one two three four five six", 8)
	assert.Equal(t, "one_two", got)
}

func TestDeriveComponentContext(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"src/app/user-profile/user-profile.component.ts", "userProfile"},
		{"src/app/user-profile/user-profile.component.html", "userProfile"},
		{"src/app/auth/login.component.ts", "login"},
		{"src/app/services/auth.service.ts", "auth"},
		{"src/app/shared/currency.pipe.ts", "currency"},
		{"src/app/app.module.ts", "app"},
		{"header.html", "header"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveComponentContext(tt.path), "path: %q", tt.path)
	}
}

func TestDeriveComponentContext_LongNamesAbbreviate(t *testing.T) {
	got := DeriveComponentContext("customer-billing-address-editor.component.ts")
	assert.Equal(t, "cbae", got)
}

func TestDeriveComponentContext_EmptyFallsBack(t *testing.T) {
	assert.Equal(t, "shared", DeriveComponentContext("component.ts"))
	assert.Equal(t, "shared", DeriveComponentContext(".ts"))
}
