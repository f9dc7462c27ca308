// Package xmltree is the in-memory XML element tree shared by the
// compiler (which reads it) and the decompiler (which builds it).
package xmltree

// Attr is a single attribute. Order within an element is preserved.
type Attr struct {
	Name  string
	Value string
}

// Element is one XML node: a name, ordered attributes, child elements and
// optional inner text. Line is the 1-based source line, zero when built in memory.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	Text     string
	Line     int
	Parent   *Element
}

// New creates a detached element.
func New(name string) *Element {
	return &Element{Name: name}
}

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}

	return "", false
}

// AttrOr returns the attribute value or def when absent.
func (e *Element) AttrOr(name, def string) string {
	if v, ok := e.Attr(name); ok {
		return v
	}

	return def
}

// SetAttr sets or replaces an attribute, keeping the original position on replace.
func (e *Element) SetAttr(name, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}

	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})

	return e
}

// RemoveAttr deletes an attribute if present.
func (e *Element) RemoveAttr(name string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs = append(e.Attrs[:i], e.Attrs[i+1:]...)
			return
		}
	}
}

// AttrMap returns the attributes as a flat name→value map.
func (e *Element) AttrMap() map[string]string {
	m := make(map[string]string, len(e.Attrs))
	for _, a := range e.Attrs {
		m[a.Name] = a.Value
	}

	return m
}

// AppendChild attaches child as the last child of e.
func (e *Element) AppendChild(child *Element) *Element {
	child.Parent = e
	e.Children = append(e.Children, child)

	return child
}

// PrependChild attaches child as the first child of e.
func (e *Element) PrependChild(child *Element) *Element {
	child.Parent = e
	e.Children = append([]*Element{child}, e.Children...)

	return child
}

// ChildrenNamed returns the direct children with the given name.
func (e *Element) ChildrenNamed(name string) []*Element {
	var out []*Element

	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}

	return out
}

// Find returns the first element in document order (including e) with the
// given name and Id attribute.
func (e *Element) Find(name, id string) *Element {
	if e.Name == name {
		if v, _ := e.Attr("Id"); v == id {
			return e
		}
	}

	for _, c := range e.Children {
		if found := c.Find(name, id); found != nil {
			return found
		}
	}

	return nil
}

// Walk calls fn for e and every descendant in document order.
func (e *Element) Walk(fn func(*Element)) {
	fn(e)

	for _, c := range e.Children {
		c.Walk(fn)
	}
}
