package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dougaird/angular-text-extractor/pkg/keygen"
	"github.com/dougaird/angular-text-extractor/pkg/parser"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	pm := parser.NewManager(nil)
	t.Cleanup(pm.Close)
	return NewExtractor(pm, nil)
}

func extract(t *testing.T, source string, opts Options) *Result {
	t.Helper()
	ext := newTestExtractor(t)
	gen := keygen.NewGenerator("app")
	res, err := ext.ExtractSource([]byte(source), gen, opts)
	require.NoError(t, err)
	return res
}

func TestExtractSource_PlainText(t *testing.T) {
	res := extract(t, `<h1>Welcome to our app</h1>`, Options{})
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "app.welcome_to_our_app_1", res.Entries[0].Key)
	assert.Equal(t, "Welcome to our app", res.Entries[0].Text)
}

func TestExtractSource_NestedMarkupExtractedOnce(t *testing.T) {
	res := extract(t, `<p>This is <strong>important</strong> information</p>`, Options{})
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "This is <strong>important</strong> information", res.Entries[0].Text)
}

func TestExtractSource_AttributeExtraction(t *testing.T) {
	res := extract(t, `<img alt="Company logo">`, Options{})
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "Company logo", res.Entries[0].Text)
}

func TestExtractSource_AttributeAndTextAreDistinct(t *testing.T) {
	res := extract(t, `<button title="Save your changes">Save changes</button>`, Options{})
	require.Len(t, res.Entries, 2)
	texts := []string{res.Entries[0].Text, res.Entries[1].Text}
	assert.Contains(t, texts, "Save your changes")
	assert.Contains(t, texts, "Save changes")
	assert.NotEqual(t, res.Entries[0].Key, res.Entries[1].Key)
}

func TestExtractSource_PriorityDescendantExtractedOnce(t *testing.T) {
	res := extract(t, `<li><a href="/settings">Manage your settings</a></li>`, Options{Replace: true})
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "app.manage_your_settings_1", res.Entries[0].Key)
	assert.Equal(t, "Manage your settings", res.Entries[0].Text)
	require.NotNil(t, res.Rewritten)
	assert.Equal(t,
		`<li><a href="/settings">{{ 'app.manage_your_settings_1' | translate }}</a></li>`,
		string(res.Rewritten))
}

func TestExtractSource_FlattenKeepsWordBoundaries(t *testing.T) {
	res := extract(t, `<h2><b>Hello</b> <b>World</b></h2>`, Options{})
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "app.hello_world_1", res.Entries[0].Key)
	assert.Equal(t, "<b>Hello</b> <b>World</b>", res.Entries[0].Text)
}

func TestExtractSource_FragmentSlugFollowsSourceWords(t *testing.T) {
	res := extract(t, `<p>Read <em>this</em> note carefully</p>`, Options{})
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "app.read_this_note_carefully_1", res.Entries[0].Key)
}

func TestExtractSource_SkipsInterpolation(t *testing.T) {
	res := extract(t, `<p>Hello {{ user.name }}</p>`, Options{})
	assert.Empty(t, res.Entries)
}

func TestExtractSource_SkipsExistingPlaceholder(t *testing.T) {
	res := extract(t, `<p>{{ 'app.greeting_1' | translate }}</p>`, Options{})
	assert.Empty(t, res.Entries)
}

func TestExtractSource_SkipsBoundElements(t *testing.T) {
	sources := []string{
		`<p *ngIf="visible">Conditional content here</p>`,
		`<p [innerText]="message">Fallback content here</p>`,
		`<button (click)="save()">Save all changes</button>`,
	}
	for _, src := range sources {
		res := extract(t, src, Options{})
		assert.Empty(t, res.Entries, "source: %s", src)
	}
}

func TestExtractSource_SkipsNonDisplayText(t *testing.T) {
	res := extract(t, `<span>userId</span><code>v1.2.3</code>`, Options{})
	assert.Empty(t, res.Entries)
}

func TestExtractSource_GenericContainerDefersToTextBearing(t *testing.T) {
	res := extract(t, `<div><p>Useful information here</p></div>`, Options{})
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "Useful information here", res.Entries[0].Text)
}

func TestExtractSource_GenericContainerWithoutDescendants(t *testing.T) {
	res := extract(t, `<div>Standalone container text</div>`, Options{})
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "Standalone container text", res.Entries[0].Text)
}

func TestExtractSource_ComponentContextNamespacesKeys(t *testing.T) {
	res := extract(t, `<h1>Welcome to our app</h1>`, Options{ComponentContext: "header"})
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "app.header.welcome_to_our_app_1", res.Entries[0].Key)
}

func TestExtractSource_DryRunProducesNoRewrite(t *testing.T) {
	res := extract(t, `<h1>Welcome to our app</h1>`, Options{Replace: false})
	require.Len(t, res.Entries, 1)
	assert.Nil(t, res.Rewritten)
}

func TestExtractSource_RewritePlainText(t *testing.T) {
	res := extract(t, `<h1>Welcome to our app</h1>`, Options{Replace: true})
	require.NotNil(t, res.Rewritten)
	assert.Equal(t,
		`<h1>{{ 'app.welcome_to_our_app_1' | translate }}</h1>`,
		string(res.Rewritten))
}

func TestExtractSource_RewritePreservesSurroundings(t *testing.T) {
	source := "<div class=\"card\">\n  <h1>Welcome to our app</h1>\n  <span>ok</span>\n</div>\n"
	res := extract(t, source, Options{Replace: true})
	require.NotNil(t, res.Rewritten)
	assert.Equal(t,
		"<div class=\"card\">\n  <h1>{{ 'app.welcome_to_our_app_1' | translate }}</h1>\n  <span>ok</span>\n</div>\n",
		string(res.Rewritten))
}

func TestExtractSource_RewriteAttribute(t *testing.T) {
	res := extract(t, `<img alt="Company logo">`, Options{Replace: true})
	require.NotNil(t, res.Rewritten)
	assert.Equal(t,
		`<img alt="{{ 'app.company_logo_1' | translate }}">`,
		string(res.Rewritten))
}

func TestExtractSource_RewriteFragment(t *testing.T) {
	res := extract(t, `<p>This is <strong>important</strong> information</p>`, Options{Replace: true})
	require.NotNil(t, res.Rewritten)
	key := res.Entries[0].Key
	assert.Equal(t, `<p>{{ '`+key+`' | translate }}</p>`, string(res.Rewritten))
}

func TestExtractSource_NoSubstitutionMeansNoRewrite(t *testing.T) {
	res := extract(t, `<span>userId</span>`, Options{Replace: true})
	assert.Nil(t, res.Rewritten)
}
