// Package markup extracts display text from Angular markup templates.
//
// Elements are visited in a fixed priority order of text-bearing roles so
// that a phrase wrapping inline markup ("This is <strong>important</strong>
// information") is captured once as a fragment instead of per-node.
package markup

import (
	"log/slog"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/dougaird/angular-text-extractor/pkg/classifier"
	"github.com/dougaird/angular-text-extractor/pkg/keygen"
	"github.com/dougaird/angular-text-extractor/pkg/parser"
)

// Entry is one extracted (key, text) pair in traversal order.
type Entry struct {
	Key  string
	Text string
}

// Options controls one file's extraction.
type Options struct {
	// Replace enables in-place rewrite of extracted locations.
	Replace bool
	// ComponentContext namespaces generated keys; empty disables it.
	ComponentContext string
}

// Result holds the extraction output for one markup source.
type Result struct {
	Entries []Entry
	// Rewritten is the substituted source; nil when Replace is off or no
	// substitution occurred.
	Rewritten []byte
}

// tagPriority orders element roles: interactive and text-bearing elements
// first, inline emphasis after, generic containers last.
var tagPriority = []string{
	"button", "a", "label", "legend",
	"h1", "h2", "h3", "h4", "h5", "h6",
	"p", "li", "td", "th", "caption", "figcaption", "summary", "option",
	"span", "strong", "em", "b", "i", "small",
	"div", "section", "article",
}

// genericContainers are only extracted when no text-bearing descendant
// will claim their content first.
var genericContainers = map[string]bool{
	"div": true, "section": true, "article": true,
}

// translatableAttributes are extracted per-node regardless of the text
// pass. Order is fixed for deterministic key assignment.
var translatableAttributes = []string{"title", "alt", "placeholder", "aria-label"}

// Extractor walks markup trees and applies the classifier to text nodes
// and attribute values.
type Extractor struct {
	parserMgr *parser.Manager
	logger    *slog.Logger
}

// NewExtractor creates a markup extractor sharing the given parser manager.
func NewExtractor(pm *parser.Manager, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{parserMgr: pm, logger: logger}
}

// ExtractSource extracts display text from one markup source. Keys are
// drawn from gen in traversal order: attribute pass first (document
// order), then elements by tag priority.
func (e *Extractor) ExtractSource(source []byte, gen *keygen.Generator, opts Options) (*Result, error) {
	tree, err := e.parserMgr.Parse(source, parser.LanguageHTML)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	w := &treeWalk{
		source:  source,
		gen:     gen,
		opts:    opts,
		visited: make(map[uintptr]bool),
		byTag:   make(map[string][]*ts.Node),
	}
	w.collect(tree.RootNode())

	w.extractAttributes()
	for _, tag := range tagPriority {
		for _, el := range w.byTag[tag] {
			w.extractElement(el, tag)
		}
	}

	res := &Result{Entries: w.entries}
	if opts.Replace && len(w.edits) > 0 {
		res.Rewritten = applyEdits(source, w.edits)
	}
	return res, nil
}

// treeWalk carries the per-file traversal state: the visited set, the
// priority buckets, and the pending byte-span edits.
type treeWalk struct {
	source  []byte
	gen     *keygen.Generator
	opts    Options
	visited map[uintptr]bool
	byTag   map[string][]*ts.Node
	ordered []*ts.Node // all elements in document order, for the attribute pass
	entries []Entry
	edits   []edit
}

// collect buckets every element by lowercase tag name in document order.
func (w *treeWalk) collect(node *ts.Node) {
	if node == nil {
		return
	}
	if node.Kind() == "element" {
		w.ordered = append(w.ordered, node)
		if tag := tagName(node, w.source); tag != "" {
			w.byTag[tag] = append(w.byTag[tag], node)
		}
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		w.collect(node.Child(i))
	}
}

// extractElement applies the text-node state machine to one element.
func (w *treeWalk) extractElement(el *ts.Node, tag string) {
	if w.visited[el.Id()] {
		return
	}
	// A higher-priority descendant already claimed part of this content;
	// extracting the enclosing fragment would duplicate it.
	if w.hasVisitedDescendant(el) {
		return
	}
	if genericContainers[tag] && hasTextBearingDescendant(el, w.source) {
		return
	}

	start, end, ok := innerSpan(el)
	if !ok {
		return
	}
	inner := string(w.source[start:end])
	flattened := flattenText(el, w.source)

	if strings.TrimSpace(flattened) == "" {
		return
	}
	// Raw interpolation and already-rewritten placeholders both disqualify
	// the node; its content is programmatically controlled.
	if strings.Contains(inner, "{{") {
		return
	}
	if hasBindingAttributes(el, w.source) {
		return
	}

	if hasElementChildren(el) {
		if !classifier.IsDisplayText(flattened, nil) {
			return
		}
		text := strings.TrimSpace(inner)
		key := w.gen.Next(flattened, w.opts.ComponentContext)
		w.entries = append(w.entries, Entry{Key: key, Text: text})
		w.markVisited(el)
		w.replaceTrimmed(start, end, inner, key)
		return
	}

	if !classifier.IsDisplayText(flattened, nil) {
		return
	}
	text := strings.TrimSpace(flattened)
	key := w.gen.Next(flattened, w.opts.ComponentContext)
	w.entries = append(w.entries, Entry{Key: key, Text: text})
	w.markVisited(el)
	w.replaceTrimmed(start, end, inner, key)
}

// extractAttributes runs the independent per-node attribute pass.
func (w *treeWalk) extractAttributes() {
	for _, el := range w.ordered {
		st := startTag(el)
		if st == nil {
			continue
		}
		for _, want := range translatableAttributes {
			valueNode, value := attributeValue(st, w.source, want)
			if valueNode == nil {
				continue
			}
			if strings.Contains(value, "{{") || strings.Contains(value, "${") {
				continue
			}
			if !classifier.IsDisplayText(value, nil) {
				continue
			}
			key := w.gen.Next(value, w.opts.ComponentContext)
			w.entries = append(w.entries, Entry{Key: key, Text: value})
			if w.opts.Replace {
				w.edits = append(w.edits, edit{
					start:       uint(valueNode.StartByte()),
					end:         uint(valueNode.EndByte()),
					replacement: "{{ '" + key + "' | translate }}",
				})
			}
		}
	}
}

// replaceTrimmed records an edit covering the trimmed portion of the inner
// span, leaving surrounding indentation bytes untouched.
func (w *treeWalk) replaceTrimmed(start, end uint, inner, key string) {
	if !w.opts.Replace {
		return
	}
	lead := uint(len(inner) - len(strings.TrimLeft(inner, " \t\r\n")))
	trail := uint(len(inner) - len(strings.TrimRight(inner, " \t\r\n")))
	w.edits = append(w.edits, edit{
		start:       start + lead,
		end:         end - trail,
		replacement: "{{ '" + key + "' | translate }}",
	})
}

func (w *treeWalk) hasVisitedDescendant(node *ts.Node) bool {
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		if w.visited[child.Id()] || w.hasVisitedDescendant(child) {
			return true
		}
	}
	return false
}

func (w *treeWalk) markVisited(node *ts.Node) {
	if node == nil {
		return
	}
	w.visited[node.Id()] = true
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		w.markVisited(node.Child(i))
	}
}
