// Package logic extracts display text from component logic files by
// scanning string literals, classifying each against its surrounding-code
// context, and optionally rewriting accepted literals into translation
// lookup calls.
package logic

import (
	"log/slog"
	"sort"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/dougaird/angular-text-extractor/pkg/classifier"
	"github.com/dougaird/angular-text-extractor/pkg/keygen"
	"github.com/dougaird/angular-text-extractor/pkg/parser"
)

// Entry is one extracted (key, text) pair in source order.
type Entry struct {
	Key  string
	Text string
}

// Options controls one file's extraction.
type Options struct {
	// Replace enables in-place rewrite of accepted literals.
	Replace bool
	// ComponentContext namespaces generated keys; empty disables it.
	ComponentContext string
	// ServicePath is the project-relative location of the shared lookup
	// service (without extension), used to compute the import path when a
	// rewrite first introduces the dependency.
	ServicePath string
}

// Result holds the extraction output for one logic source.
type Result struct {
	Entries []Entry
	// Rewritten is the substituted source; nil when Replace is off or no
	// substitution occurred.
	Rewritten []byte
}

// Extractor scans logic files for extractable string literals.
type Extractor struct {
	parserMgr *parser.Manager
	logger    *slog.Logger
}

// NewExtractor creates a logic extractor sharing the given parser manager.
func NewExtractor(pm *parser.Manager, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{parserMgr: pm, logger: logger}
}

// ExtractSource extracts display text from one logic source. filePath is
// needed both for grammar detection and for computing the relative lookup
// service import when rewriting.
func (e *Extractor) ExtractSource(filePath string, source []byte, gen *keygen.Generator, opts Options) (*Result, error) {
	tree, err := e.parserMgr.ParseFile(filePath, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	literals := collectLiterals(tree.RootNode())

	res := &Result{}
	var edits []edit
	substituted := false

	for _, lit := range literals {
		content := literalContent(lit, source)
		ctx := buildContext(lit, source)
		if !classifier.IsDisplayText(content, ctx) {
			continue
		}

		text := strings.TrimSpace(content)
		key := gen.Next(text, opts.ComponentContext)
		res.Entries = append(res.Entries, Entry{Key: key, Text: text})

		// this.translate is only valid inside a class, so literals at
		// module scope are extracted but left in place.
		if opts.Replace && insideClass(lit) {
			edits = append(edits, edit{
				start:       uint(lit.StartByte()),
				end:         uint(lit.EndByte()),
				replacement: "this.translate.instant('" + key + "')",
			})
			substituted = true
		}
	}

	if substituted {
		edits = append(edits, wireUpEdits(tree.RootNode(), source, filePath, opts.ServicePath)...)
		res.Rewritten = applyEdits(source, edits)
	}
	return res, nil
}

// collectLiterals gathers string and template-string nodes in source
// order. Literals inside comments never surface as literal nodes, so
// comment skipping falls out of the scan itself.
func collectLiterals(root *ts.Node) []*ts.Node {
	var out []*ts.Node
	var walk func(n *ts.Node)
	walk = func(n *ts.Node) {
		kind := n.Kind()
		if kind == "string" || kind == "template_string" {
			out = append(out, n)
			return
		}
		for i := uint(0); i < uint(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	sort.Slice(out, func(i, j int) bool { return out[i].StartByte() < out[j].StartByte() })
	return out
}

// insideClass reports whether the literal has an enclosing class body.
func insideClass(lit *ts.Node) bool {
	for n := lit.Parent(); n != nil; n = n.Parent() {
		switch n.Kind() {
		case "class_declaration", "abstract_class_declaration", "class":
			return true
		}
	}
	return false
}

// literalContent strips the surrounding quote or backtick characters.
func literalContent(lit *ts.Node, source []byte) string {
	raw := lit.Utf8Text(source)
	if len(raw) < 2 {
		return ""
	}
	return raw[1 : len(raw)-1]
}

// edit is one pending byte-span substitution; start == end inserts.
type edit struct {
	start, end  uint
	replacement string
}

// applyEdits splices edits into source back-to-front so earlier offsets
// stay valid. Literal spans never overlap; insertions are zero-width.
func applyEdits(source []byte, edits []edit) []byte {
	sorted := make([]edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	out := append([]byte(nil), source...)
	for i := len(sorted) - 1; i >= 0; i-- {
		e := sorted[i]
		out = append(out[:e.start], append([]byte(e.replacement), out[e.end:]...)...)
	}
	return out
}
