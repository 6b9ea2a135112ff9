package dom

// Attr is one attribute: a qualified name and its raw string value.
// Attribute names are unique per element; order is preserved for
// serialisation. An empty value is distinct from an absent attribute.
type Attr struct {
	Prefix string
	Local  string
	Value  string
}

// Name returns the attribute's serialised qualified name (prefix:local, or
// just local with no prefix).
func (a Attr) Name() string {
	if a.Prefix == "" {
		return a.Local
	}
	return a.Prefix + ":" + a.Local
}

// NewElement creates a detached element with the given local name and no
// prefix or namespace URI of its own; NamespaceURI resolves it through the
// element's ancestors once it is attached.
func (d *Document) NewElement(local string) Node {
	id := d.alloc(record{kind: KindElement, local: local})
	return Node{doc: d, id: id}
}

// NewElementNS creates a detached element with an explicit prefix and
// namespace URI.
func (d *Document) NewElementNS(prefix, local, nsURI string) Node {
	id := d.alloc(record{kind: KindElement, prefix: prefix, local: local, namespaceURI: nsURI})
	return Node{doc: d, id: id}
}

// NewText creates a detached text node.
func (d *Document) NewText(data string) Node {
	return Node{doc: d, id: d.alloc(record{kind: KindText, data: data})}
}

// NewComment creates a detached comment node.
func (d *Document) NewComment(data string) Node {
	return Node{doc: d, id: d.alloc(record{kind: KindComment, data: data})}
}

// NewCDATA creates a detached CDATA section node.
func (d *Document) NewCDATA(data string) Node {
	return Node{doc: d, id: d.alloc(record{kind: KindCDATA, data: data})}
}

// NewProcInst creates a detached processing-instruction node.
func (d *Document) NewProcInst(target, data string) Node {
	return Node{doc: d, id: d.alloc(record{kind: KindProcInst, target: target, data: data})}
}

// NewDocType creates a detached document-type node.
func (d *Document) NewDocType(name, publicID, systemID string) Node {
	return Node{doc: d, id: d.alloc(record{kind: KindDocType, name: name, publicID: publicID, systemID: systemID})}
}

// LocalName returns the element's unprefixed tag name. Zero value for
// non-element nodes.
func (n Node) LocalName() string { return n.doc.rec(n.id).local }

// SetTag renames an element's local name in place, used by jobs that
// rewrite one element kind into another (e.g. convertShapeToPath turning
// a <rect> into a <path>) without disturbing its position in the tree.
func (n Node) SetTag(local string) { n.doc.rec(n.id).local = local }

// Prefix returns the element's namespace prefix, or "" if unprefixed.
func (n Node) Prefix() string { return n.doc.rec(n.id).prefix }

// NamespaceURI returns the element's namespace URI, resolved by walking
// ancestors if not recorded directly on the element.
func (n Node) NamespaceURI() string {
	r := n.doc.rec(n.id)
	if r.namespaceURI != "" {
		return r.namespaceURI
	}
	return n.LookupNamespaceURI(r.prefix)
}

// SetSelfClosed records whether the element was self-closed (<tag/>) in the
// source. Purely cosmetic: it never participates in optimisation decisions.
func (n Node) SetSelfClosed(v bool) { n.doc.rec(n.id).selfClosed = v }

// SelfClosed reports whether SetSelfClosed(true) was recorded for n.
func (n Node) SelfClosed() bool { return n.doc.rec(n.id).selfClosed }

// TextData returns the raw text for Text, Comment, CDATA and ProcInst data
// payloads.
func (n Node) TextData() string { return n.doc.rec(n.id).data }

// SetTextData overwrites a Text/Comment/CDATA node's payload.
func (n Node) SetTextData(s string) { n.doc.rec(n.id).data = s }

// ProcInstTarget returns the processing-instruction's target name.
func (n Node) ProcInstTarget() string { return n.doc.rec(n.id).target }

// DocType returns the name, public ID and system ID of a DocType node.
func (n Node) DocType() (name, publicID, systemID string) {
	r := n.doc.rec(n.id)
	return r.name, r.publicID, r.systemID
}

// Tag returns the serialised element name (prefix:local).
func (n Node) Tag() string {
	r := n.doc.rec(n.id)
	if r.prefix == "" {
		return r.local
	}
	return r.prefix + ":" + r.local
}
