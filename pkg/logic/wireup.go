package logic

import (
	"path/filepath"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

const serviceClassName = "TranslationService"

// defaultServicePath is the conventional location of the shared lookup
// service when the session does not configure one.
const defaultServicePath = "src/app/services/translation.service"

// wireUpEdits ensures a rewritten file imports and injects the lookup
// service. Returns zero-width insertion edits against the original source.
func wireUpEdits(root *ts.Node, source []byte, filePath, servicePath string) []edit {
	var edits []edit
	text := string(source)

	if !strings.Contains(text, serviceClassName) {
		importPath := relativeImportPath(filePath, servicePath)
		stmt := "import { " + serviceClassName + " } from '" + importPath + "';"
		if last := lastImport(root); last != nil {
			at := uint(last.EndByte())
			edits = append(edits, edit{start: at, end: at, replacement: "\n" + stmt})
		} else {
			edits = append(edits, edit{start: 0, end: 0, replacement: stmt + "\n\n"})
		}
	}

	if e, ok := constructorEdit(root, source); ok {
		edits = append(edits, e)
	}
	return edits
}

// lastImport returns the final top-level import statement, or nil.
func lastImport(root *ts.Node) *ts.Node {
	var last *ts.Node
	for i := uint(0); i < uint(root.ChildCount()); i++ {
		child := root.Child(i)
		if child.Kind() == "import_statement" {
			last = child
		}
	}
	return last
}

// constructorEdit produces the injection edit for the first class in the
// file: a new parameter on an existing constructor, or a whole constructor
// when the class has none.
func constructorEdit(root *ts.Node, source []byte) (edit, bool) {
	body := firstClassBody(root)
	if body == nil {
		return edit{}, false
	}

	ctor := findConstructor(body, source)
	if ctor == nil {
		at := uint(body.StartByte()) + 1
		return edit{
			start:       at,
			end:         at,
			replacement: "\n  constructor(private translate: " + serviceClassName + ") {}\n",
		}, true
	}

	params := ctor.ChildByFieldName("parameters")
	if params == nil {
		return edit{}, false
	}
	if strings.Contains(params.Utf8Text(source), serviceClassName) {
		return edit{}, false
	}

	at := uint(params.StartByte()) + 1
	decl := "private translate: " + serviceClassName
	if params.NamedChildCount() > 0 {
		decl += ", "
	}
	return edit{start: at, end: at, replacement: decl}, true
}

func firstClassBody(root *ts.Node) *ts.Node {
	var found *ts.Node
	var walk func(n *ts.Node)
	walk = func(n *ts.Node) {
		if found != nil {
			return
		}
		if n.Kind() == "class_declaration" {
			found = n.ChildByFieldName("body")
			return
		}
		for i := uint(0); i < uint(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return found
}

func findConstructor(classBody *ts.Node, source []byte) *ts.Node {
	for i := uint(0); i < uint(classBody.NamedChildCount()); i++ {
		member := classBody.NamedChild(i)
		if member.Kind() != "method_definition" {
			continue
		}
		name := member.ChildByFieldName("name")
		if name != nil && name.Utf8Text(source) == "constructor" {
			return member
		}
	}
	return nil
}

// relativeImportPath computes the import specifier from the file's
// directory to the shared lookup service location.
func relativeImportPath(filePath, servicePath string) string {
	if servicePath == "" {
		servicePath = defaultServicePath
	}
	rel, err := filepath.Rel(filepath.Dir(filePath), servicePath)
	if err != nil {
		return "./" + filepath.ToSlash(filepath.Base(servicePath))
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return rel
}
