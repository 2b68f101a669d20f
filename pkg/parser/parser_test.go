package parser

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		path string
		want Language
	}{
		{"src/app/app.component.html", LanguageHTML},
		{"index.htm", LanguageHTML},
		{"src/app/app.component.ts", LanguageTypeScript},
		{"util.mts", LanguageTypeScript},
		{"util.cts", LanguageTypeScript},
		{"legacy/main.js", LanguageJavaScript},
		{"legacy/main.mjs", LanguageJavaScript},
		{"legacy/main.cjs", LanguageJavaScript},
		{"styles.css", LanguageUnknown},
		{"README.md", LanguageUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectLanguage(tc.path), "path: %s", tc.path)
	}
}

func TestFileKindPredicates(t *testing.T) {
	assert.True(t, IsMarkupFile("a.html"))
	assert.False(t, IsMarkupFile("a.ts"))
	assert.True(t, IsLogicFile("a.ts"))
	assert.True(t, IsLogicFile("a.js"))
	assert.False(t, IsLogicFile("a.html"))
}

func TestManager_ParseHTML(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	tree, err := m.Parse([]byte("<p>hello</p>"), LanguageHTML)
	require.NoError(t, err)
	defer tree.Close()
	assert.Equal(t, "document", tree.RootNode().Kind())
}

func TestManager_ParseTypeScript(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	tree, err := m.Parse([]byte("const x: string = 'hi';"), LanguageTypeScript)
	require.NoError(t, err)
	defer tree.Close()
	assert.Equal(t, "program", tree.RootNode().Kind())
	assert.False(t, tree.RootNode().HasError())
}

func TestManager_ParseFileDispatch(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	tree, err := m.ParseFile("app.component.ts", []byte("export class AppComponent {}"))
	require.NoError(t, err)
	tree.Close()

	_, err = m.ParseFile("styles.css", []byte("body {}"))
	assert.Error(t, err)
}

func TestManager_ParseUnknownLanguage(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	_, err := m.Parse([]byte("data"), LanguageUnknown)
	assert.Error(t, err)
}

func TestManager_MalformedSourceStillParses(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	tree, err := m.Parse([]byte("<div><p>unclosed"), LanguageHTML)
	require.NoError(t, err)
	defer tree.Close()
	assert.NotNil(t, tree.RootNode())
}

func TestParserPool_ReusesParsers(t *testing.T) {
	langPtr, err := languagePointer(LanguageHTML)
	require.NoError(t, err)

	pool := newParserPool(LanguageHTML, langPtr, 2, slog.Default())
	defer pool.close()

	p1, err := pool.acquire()
	require.NoError(t, err)
	pool.release(p1)

	p2, err := pool.acquire()
	require.NoError(t, err)
	pool.release(p2)

	assert.Equal(t, 1, pool.createdCount())
}

func TestParserPool_CreatesUpToMax(t *testing.T) {
	langPtr, err := languagePointer(LanguageHTML)
	require.NoError(t, err)

	pool := newParserPool(LanguageHTML, langPtr, 2, slog.Default())
	defer pool.close()

	p1, err := pool.acquire()
	require.NoError(t, err)
	p2, err := pool.acquire()
	require.NoError(t, err)
	assert.Equal(t, 2, pool.createdCount())

	pool.release(p1)
	pool.release(p2)
}
