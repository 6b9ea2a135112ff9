package dom

// Clone returns a deep, detached copy of the subtree rooted at n, in the
// same document. The copy shares no attribute or namespace storage with
// the original.
func (n Node) Clone() Node {
	r := n.doc.rec(n.id)
	cp := *r
	cp.parent, cp.firstChild, cp.lastChild, cp.prev, cp.next = noID, noID, noID, noID, noID
	cp.attrs = append([]Attr(nil), r.attrs...)
	if r.nsDecls != nil {
		cp.nsDecls = make(map[string]string, len(r.nsDecls))
		for k, v := range r.nsDecls {
			cp.nsDecls[k] = v
		}
	}
	out := Node{doc: n.doc, id: n.doc.alloc(cp)}
	for c := n.FirstChild(); c.Valid(); c = c.NextSibling() {
		out.AppendChild(c.Clone())
	}
	return out
}
