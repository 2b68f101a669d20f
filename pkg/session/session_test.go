package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestSession(t *testing.T, cfg Config) *Session {
	t.Helper()
	s, err := New(cfg, nil, nil, nil)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

const (
	markupFixture = "<h1>Welcome to our app</h1>\n"
	logicFixture  = "export class AppComponent {\n  title = 'Welcome to our app';\n}\n"
)

func TestRun_ExtractsMarkupAndLogic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.component.html", markupFixture)
	writeFile(t, dir, "app.component.ts", logicFixture)

	cfg := DefaultConfig()
	cfg.SrcPath = dir
	s := newTestSession(t, cfg)

	artifact, err := s.Run()
	require.NoError(t, err)

	assert.Equal(t, "en", artifact.Locale)
	assert.Equal(t, 2, artifact.Metadata.TotalTexts)
	assert.Equal(t, "app", artifact.Metadata.KeyPrefix)
	assert.NotEmpty(t, artifact.Metadata.ExtractedAt)

	// Markup files are processed before logic files, so the markup entry
	// takes the first counter value.
	require.Equal(t, []string{
		"app.welcome_to_our_app_1",
		"app.welcome_to_our_app_2",
	}, artifact.Translations.Keys())

	text, ok := artifact.Translations.Get("app.welcome_to_our_app_1")
	require.True(t, ok)
	assert.Equal(t, "Welcome to our app", text)

	stats := s.Stats()
	assert.Equal(t, 2, stats.FilesDiscovered)
	assert.Equal(t, 1, stats.MarkupFiles)
	assert.Equal(t, 1, stats.LogicFiles)
	assert.Equal(t, 2, stats.TextsExtracted)
	assert.Equal(t, 0, stats.FilesFailed)
	assert.Equal(t, 0, stats.FilesRewritten)
}

func TestRun_DryRunLeavesSourcesUntouched(t *testing.T) {
	dir := t.TempDir()
	htmlPath := writeFile(t, dir, "app.component.html", markupFixture)
	tsPath := writeFile(t, dir, "app.component.ts", logicFixture)

	cfg := DefaultConfig()
	cfg.SrcPath = dir
	s := newTestSession(t, cfg)

	_, err := s.Run()
	require.NoError(t, err)

	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Equal(t, markupFixture, string(html))

	logic, err := os.ReadFile(tsPath)
	require.NoError(t, err)
	assert.Equal(t, logicFixture, string(logic))
}

func TestRun_ReplaceRewritesSources(t *testing.T) {
	dir := t.TempDir()
	htmlPath := writeFile(t, dir, "app.component.html", markupFixture)
	tsPath := writeFile(t, dir, "app.component.ts", logicFixture)

	cfg := DefaultConfig()
	cfg.SrcPath = dir
	cfg.Replace = true
	s := newTestSession(t, cfg)

	_, err := s.Run()
	require.NoError(t, err)

	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Equal(t, "<h1>{{ 'app.welcome_to_our_app_1' | translate }}</h1>\n", string(html))

	logic, err := os.ReadFile(tsPath)
	require.NoError(t, err)
	assert.Contains(t, string(logic), "this.translate.instant('app.welcome_to_our_app_2')")
	assert.Contains(t, string(logic), "import { TranslationService }")
	assert.Contains(t, string(logic), "constructor(private translate: TranslationService)")

	assert.Equal(t, 2, s.Stats().FilesRewritten)
}

func TestRun_SkipLogic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.component.html", markupFixture)
	writeFile(t, dir, "app.component.ts", logicFixture)

	cfg := DefaultConfig()
	cfg.SrcPath = dir
	cfg.SkipLogic = true
	s := newTestSession(t, cfg)

	artifact, err := s.Run()
	require.NoError(t, err)
	assert.Equal(t, []string{"app.welcome_to_our_app_1"}, artifact.Translations.Keys())
}

func TestRun_ComponentContextNamespacesKeys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "header.component.html", markupFixture)

	cfg := DefaultConfig()
	cfg.SrcPath = dir
	cfg.UseComponentContext = true
	s := newTestSession(t, cfg)

	artifact, err := s.Run()
	require.NoError(t, err)
	assert.Equal(t, []string{"app.header.welcome_to_our_app_1"}, artifact.Translations.Keys())
}

func TestRun_RepeatedTextGetsDistinctKeys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.component.html", "<p>Save your changes</p>\n")
	writeFile(t, dir, "two.component.html", "<p>Save your changes</p>\n")

	cfg := DefaultConfig()
	cfg.SrcPath = dir
	s := newTestSession(t, cfg)

	artifact, err := s.Run()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"app.save_your_changes_1",
		"app.save_your_changes_2",
	}, artifact.Translations.Keys())
}

func TestWriteArtifact(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.component.html", markupFixture)

	cfg := DefaultConfig()
	cfg.SrcPath = dir
	cfg.OutputPath = filepath.Join(dir, "out", "extracted-texts.json")
	s := newTestSession(t, cfg)

	artifact, err := s.Run()
	require.NoError(t, err)
	require.NoError(t, s.WriteArtifact(artifact))

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)

	var decoded Artifact
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "en", decoded.Locale)
	assert.Equal(t, 1, decoded.Metadata.TotalTexts)
	assert.Equal(t, []string{"app.welcome_to_our_app_1"}, decoded.Translations.Keys())
}
