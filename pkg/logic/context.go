package logic

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/dougaird/angular-text-extractor/pkg/classifier"
)

// contextWindow is how much preceding source is captured verbatim in the
// classification context.
const contextWindow = 80

// buildContext derives the classification context for one literal from its
// AST ancestry plus the raw preceding source window. Walking the tree is
// the syntax-aware variant of backward text scanning: the enclosing-scope
// question (class-level field vs method body) is answered by the first
// enclosing node kind instead of brace counting.
func buildContext(lit *ts.Node, source []byte) *classifier.Context {
	ctx := &classifier.Context{
		SurroundingText: precedingWindow(lit, source),
		Line:            sourceLine(lit, source),
	}

	child := lit
	insideFunction := false
	for n := lit.Parent(); n != nil; n = n.Parent() {
		switch n.Kind() {
		case "import_statement":
			ctx.IsImport = true
		case "decorator":
			ctx.IsDecorator = true
		case "call_expression":
			callee := calleeText(n, source)
			if callee == "require" {
				ctx.IsImport = true
			}
			if strings.HasPrefix(callee, "console.") {
				ctx.IsConsoleCall = true
			}
		case "new_expression":
			if strings.HasSuffix(constructorName(n, source), "Error") {
				ctx.IsThrownError = true
			}
		case "throw_statement":
			ctx.IsThrownError = true
		case "pair":
			if value := n.ChildByFieldName("value"); value != nil && value.Id() == child.Id() {
				ctx.IsObjectValue = true
			}
		case "array":
			ctx.IsArrayElement = true
		case "statement_block", "arrow_function", "function_declaration",
			"function_expression", "method_definition":
			insideFunction = true
		case "public_field_definition", "field_definition":
			if !insideFunction {
				ctx.IsClassProperty = true
			}
		}
		child = n
	}
	return ctx
}

func calleeText(call *ts.Node, source []byte) string {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	return fn.Utf8Text(source)
}

func constructorName(newExpr *ts.Node, source []byte) string {
	ctor := newExpr.ChildByFieldName("constructor")
	if ctor == nil {
		return ""
	}
	return ctor.Utf8Text(source)
}

func precedingWindow(lit *ts.Node, source []byte) string {
	start := int(lit.StartByte())
	from := start - contextWindow
	if from < 0 {
		from = 0
	}
	return string(source[from:start])
}

func sourceLine(lit *ts.Node, source []byte) string {
	start := int(lit.StartByte())
	lineStart := strings.LastIndexByte(string(source[:start]), '\n') + 1
	lineEnd := start
	for lineEnd < len(source) && source[lineEnd] != '\n' {
		lineEnd++
	}
	return string(source[lineStart:lineEnd])
}
