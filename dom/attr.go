package dom

// Attr returns the value of the named attribute and whether it is present.
// An absent attribute and an empty-valued attribute are distinguished by
// the second return value.
func (n Node) Attr(name string) (string, bool) {
	for _, a := range n.doc.rec(n.id).attrs {
		if a.Name() == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the named attribute's value, or def if absent.
func (n Node) AttrOr(name, def string) string {
	if v, ok := n.Attr(name); ok {
		return v
	}
	return def
}

// HasAttr reports whether the element carries the named attribute at all
// (including with an empty value).
func (n Node) HasAttr(name string) bool {
	_, ok := n.Attr(name)
	return ok
}

// Attrs returns the element's attributes in insertion order. The slice is a
// copy; mutate via SetAttr/RemoveAttr.
func (n Node) Attrs() []Attr {
	src := n.doc.rec(n.id).attrs
	out := make([]Attr, len(src))
	copy(out, src)
	return out
}

// SetAttr sets name to value, appending it if absent. Setting an attribute
// already present preserves its position.
func (n Node) SetAttr(name, value string) {
	r := n.doc.rec(n.id)
	for i := range r.attrs {
		if r.attrs[i].Name() == name {
			r.attrs[i].Value = value
			n.bumpStyle()
			return
		}
	}
	prefix, local := splitQName(name)
	r.attrs = append(r.attrs, Attr{Prefix: prefix, Local: local, Value: value})
	n.bumpStyle()
}

// RemoveAttr removes the named attribute, if present.
func (n Node) RemoveAttr(name string) {
	r := n.doc.rec(n.id)
	for i := range r.attrs {
		if r.attrs[i].Name() == name {
			r.attrs = append(r.attrs[:i], r.attrs[i+1:]...)
			n.bumpStyle()
			return
		}
	}
}

// SetAttrs replaces the element's attribute list wholesale, preserving the
// given order.
func (n Node) SetAttrs(attrs []Attr) {
	r := n.doc.rec(n.id)
	r.attrs = append(r.attrs[:0:0], attrs...)
	n.bumpStyle()
}

// ReorderAttrs reorders existing attributes to match order, a permutation
// of attribute names. Names not found are ignored; attributes not named are
// appended after in their original relative order.
func (n Node) ReorderAttrs(order []string) {
	r := n.doc.rec(n.id)
	seen := make(map[string]bool, len(order))
	out := make([]Attr, 0, len(r.attrs))
	for _, name := range order {
		for _, a := range r.attrs {
			if a.Name() == name && !seen[name] {
				out = append(out, a)
				seen[name] = true
				break
			}
		}
	}
	for _, a := range r.attrs {
		if !seen[a.Name()] {
			out = append(out, a)
		}
	}
	r.attrs = out
}

func splitQName(name string) (prefix, local string) {
	for i := 0; i < len(name); i++ {
		if name[i] == ':' {
			return name[:i], name[i+1:]
		}
	}
	return "", name
}
