// Package view models a rendered page as an immutable tree of typed nodes.
//
// Trees are built fresh by a component on every render pass. Once built they
// are only read: serialized to HTML by Render, or walked by Dispatch when an
// interaction comes back from the browser.
package view

// Node is one entry of a visual tree: either an *Element or a Text.
type Node interface {
	node()
}

// Text is a literal text node. Render escapes it.
type Text string

func (Text) node() {}

// Attr is a single element attribute.
type Attr struct {
	Key   string
	Value string
}

// Element is a tagged node with attributes, children and event handlers.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []Node
	Handlers map[EventKind]Handler
}

func (*Element) node() {}

// El builds an element with the given children. Nil children are dropped.
func El(tag string, children ...Node) *Element {
	e := &Element{Tag: tag}
	for _, c := range children {
		if c != nil {
			e.Children = append(e.Children, c)
		}
	}
	return e
}

// Set appends an attribute and returns the element for chaining.
func (e *Element) Set(key, value string) *Element {
	e.Attrs = append(e.Attrs, Attr{Key: key, Value: value})
	return e
}

// Class sets the class attribute.
func (e *Element) Class(class string) *Element {
	return e.Set("class", class)
}

// On registers the handler for an event kind, replacing any previous one.
func (e *Element) On(kind EventKind, h Handler) *Element {
	if e.Handlers == nil {
		e.Handlers = make(map[EventKind]Handler)
	}
	e.Handlers[kind] = h
	return e
}

// Attr returns the value of the first attribute named key.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Handles reports whether the element carries a handler for kind.
func (e *Element) Handles(kind EventKind) bool {
	_, ok := e.Handlers[kind]
	return ok
}

// Equal reports whether two trees are structurally identical. Handlers are
// compared by the set of event kinds they are registered for.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case Text:
		y, ok := b.(Text)
		return ok && x == y
	case *Element:
		y, ok := b.(*Element)
		if !ok {
			return false
		}
		if x == nil || y == nil {
			return x == y
		}
		return equalElements(x, y)
	case nil:
		return b == nil
	}
	return false
}

func equalElements(x, y *Element) bool {
	if x.Tag != y.Tag || len(x.Attrs) != len(y.Attrs) || len(x.Children) != len(y.Children) {
		return false
	}
	for i := range x.Attrs {
		if x.Attrs[i] != y.Attrs[i] {
			return false
		}
	}
	if len(x.Handlers) != len(y.Handlers) {
		return false
	}
	for kind := range x.Handlers {
		if !y.Handles(kind) {
			return false
		}
	}
	for i := range x.Children {
		if !Equal(x.Children[i], y.Children[i]) {
			return false
		}
	}
	return true
}

// TextContent concatenates all text beneath n in document order.
func TextContent(n Node) string {
	switch x := n.(type) {
	case Text:
		return string(x)
	case *Element:
		var s string
		for _, c := range x.Children {
			s += TextContent(c)
		}
		return s
	}
	return ""
}

// FindAll returns every element under root (root included) for which match
// returns true, paired with its path, in document order.
func FindAll(root Node, match func(*Element) bool) []Located {
	var out []Located
	var walk func(n Node, p Path)
	walk = func(n Node, p Path) {
		e, ok := n.(*Element)
		if !ok || e == nil {
			return
		}
		if match(e) {
			out = append(out, Located{Path: p, Element: e})
		}
		for i, c := range e.Children {
			walk(c, p.Child(i))
		}
	}
	walk(root, Path{})
	return out
}

// Located pairs an element with its address in a tree.
type Located struct {
	Path    Path
	Element *Element
}

// ByClass matches elements whose class attribute is exactly class.
func ByClass(class string) func(*Element) bool {
	return func(e *Element) bool {
		v, ok := e.Attr("class")
		return ok && v == class
	}
}

// ByTag matches elements with the given tag.
func ByTag(tag string) func(*Element) bool {
	return func(e *Element) bool { return e.Tag == tag }
}
