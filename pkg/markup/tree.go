package markup

import (
	"sort"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// startTag returns the element's start_tag or self_closing_tag node.
func startTag(el *ts.Node) *ts.Node {
	for i := uint(0); i < uint(el.ChildCount()); i++ {
		child := el.Child(i)
		kind := child.Kind()
		if kind == "start_tag" || kind == "self_closing_tag" {
			return child
		}
	}
	return nil
}

// tagName returns the element's lowercase tag name, or "".
func tagName(el *ts.Node, source []byte) string {
	st := startTag(el)
	if st == nil {
		return ""
	}
	for i := uint(0); i < uint(st.ChildCount()); i++ {
		child := st.Child(i)
		if child.Kind() == "tag_name" {
			return strings.ToLower(child.Utf8Text(source))
		}
	}
	return ""
}

// innerSpan returns the byte range between the start tag and the end tag.
// ok is false for self-closing and void elements, which have no content.
func innerSpan(el *ts.Node) (start, end uint, ok bool) {
	var st, et *ts.Node
	for i := uint(0); i < uint(el.ChildCount()); i++ {
		child := el.Child(i)
		switch child.Kind() {
		case "start_tag":
			st = child
		case "end_tag":
			et = child
		}
	}
	if st == nil || et == nil {
		return 0, 0, false
	}
	return uint(st.EndByte()), uint(et.StartByte()), true
}

// flattenText concatenates all descendant text content, tags stripped.
// Text nodes exclude whitespace adjacent to child elements, so consecutive
// nodes are joined with a space whenever the source between them contains
// any; otherwise word boundaries around inline tags would be lost.
func flattenText(el *ts.Node, source []byte) string {
	var b strings.Builder
	var prevEnd uint
	var walk func(n *ts.Node)
	walk = func(n *ts.Node) {
		kind := n.Kind()
		if kind == "text" || kind == "entity" {
			start := uint(n.StartByte())
			if b.Len() > 0 && strings.ContainsAny(string(source[prevEnd:start]), " \t\r\n") {
				b.WriteByte(' ')
			}
			b.WriteString(n.Utf8Text(source))
			prevEnd = uint(n.EndByte())
			return
		}
		for i := uint(0); i < uint(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	for i := uint(0); i < uint(el.ChildCount()); i++ {
		child := el.Child(i)
		if child.Kind() == "start_tag" || child.Kind() == "end_tag" {
			continue
		}
		walk(child)
	}
	return b.String()
}

// hasElementChildren reports whether the element directly contains child
// elements (inline markup).
func hasElementChildren(el *ts.Node) bool {
	for i := uint(0); i < uint(el.ChildCount()); i++ {
		if el.Child(i).Kind() == "element" {
			return true
		}
	}
	return false
}

// hasBindingAttributes reports whether the element carries Angular
// structural or binding syntax: *ngIf/*ngFor, [prop], (event), [(model)],
// or interpolation inside any attribute value. Text under such elements is
// programmatically controlled.
func hasBindingAttributes(el *ts.Node, source []byte) bool {
	st := startTag(el)
	if st == nil {
		return false
	}
	for i := uint(0); i < uint(st.ChildCount()); i++ {
		attr := st.Child(i)
		if attr.Kind() != "attribute" {
			continue
		}
		for j := uint(0); j < uint(attr.ChildCount()); j++ {
			part := attr.Child(j)
			switch part.Kind() {
			case "attribute_name":
				name := part.Utf8Text(source)
				if strings.HasPrefix(name, "*") ||
					strings.HasPrefix(name, "[") ||
					strings.HasPrefix(name, "(") {
					return true
				}
			case "quoted_attribute_value", "attribute_value":
				if strings.Contains(part.Utf8Text(source), "{{") {
					return true
				}
			}
		}
	}
	return false
}

// hasTextBearingDescendant reports whether any strict descendant element
// has a non-generic text-bearing tag. Generic containers defer to those.
func hasTextBearingDescendant(el *ts.Node, source []byte) bool {
	var found bool
	var walk func(n *ts.Node, root bool)
	walk = func(n *ts.Node, root bool) {
		if found {
			return
		}
		if !root && n.Kind() == "element" {
			tag := tagName(n, source)
			if tag != "" && !genericContainers[tag] && isPriorityTag(tag) {
				found = true
				return
			}
		}
		for i := uint(0); i < uint(n.ChildCount()); i++ {
			walk(n.Child(i), false)
		}
	}
	walk(el, true)
	return found
}

func isPriorityTag(tag string) bool {
	for _, t := range tagPriority {
		if t == tag {
			return true
		}
	}
	return false
}

// attributeValue finds the named attribute on a start tag and returns its
// value node (the content between the quotes) and text. Returns nil when
// the attribute is absent or has an empty value.
func attributeValue(st *ts.Node, source []byte, name string) (*ts.Node, string) {
	for i := uint(0); i < uint(st.ChildCount()); i++ {
		attr := st.Child(i)
		if attr.Kind() != "attribute" {
			continue
		}
		var nameNode, valueNode *ts.Node
		for j := uint(0); j < uint(attr.ChildCount()); j++ {
			part := attr.Child(j)
			switch part.Kind() {
			case "attribute_name":
				nameNode = part
			case "quoted_attribute_value":
				for k := uint(0); k < uint(part.ChildCount()); k++ {
					if part.Child(k).Kind() == "attribute_value" {
						valueNode = part.Child(k)
					}
				}
			case "attribute_value":
				valueNode = part
			}
		}
		if nameNode == nil || valueNode == nil {
			continue
		}
		if strings.ToLower(nameNode.Utf8Text(source)) != name {
			continue
		}
		return valueNode, valueNode.Utf8Text(source)
	}
	return nil, ""
}

// edit is one pending byte-span substitution against the original source.
type edit struct {
	start, end  uint
	replacement string
}

// applyEdits splices the edits into source. Overlapping edits keep the
// larger span (a fragment replacement swallows attribute edits inside it);
// application runs back-to-front so earlier offsets stay valid.
func applyEdits(source []byte, edits []edit) []byte {
	sorted := make([]edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].start != sorted[j].start {
			return sorted[i].start < sorted[j].start
		}
		return sorted[i].end > sorted[j].end
	})

	kept := sorted[:0]
	var lastEnd uint
	for _, e := range sorted {
		if len(kept) > 0 && e.start < lastEnd {
			continue
		}
		kept = append(kept, e)
		lastEnd = e.end
	}

	out := append([]byte(nil), source...)
	for i := len(kept) - 1; i >= 0; i-- {
		e := kept[i]
		out = append(out[:e.start], append([]byte(e.replacement), out[e.end:]...)...)
	}
	return out
}
