package dom

// Parent returns the node's parent, or the zero Node if n is the root.
func (n Node) Parent() Node { return n.wrap(n.doc.rec(n.id).parent) }

// FirstChild returns the first child, or the zero Node if none.
func (n Node) FirstChild() Node { return n.wrap(n.doc.rec(n.id).firstChild) }

// LastChild returns the last child, or the zero Node if none.
func (n Node) LastChild() Node { return n.wrap(n.doc.rec(n.id).lastChild) }

// PrevSibling returns the previous sibling, or the zero Node if none.
func (n Node) PrevSibling() Node { return n.wrap(n.doc.rec(n.id).prev) }

// NextSibling returns the next sibling, or the zero Node if none.
func (n Node) NextSibling() Node { return n.wrap(n.doc.rec(n.id).next) }

func (n Node) wrap(other id) Node {
	if other == noID {
		return Node{}
	}
	return Node{doc: n.doc, id: other}
}

// ChildAt returns the child at the given zero-based index. It panics if the
// index is out of range, per §4.1's "asking for a child out of range is a
// programmer error".
func (n Node) ChildAt(index int) Node {
	c := n.FirstChild()
	for i := 0; i < index && c.Valid(); i++ {
		c = c.NextSibling()
	}
	if !c.Valid() {
		panic("dom: child index out of range")
	}
	return c
}

// ChildCount returns the number of direct children.
func (n Node) ChildCount() int {
	count := 0
	for c := n.FirstChild(); c.Valid(); c = c.NextSibling() {
		count++
	}
	return count
}

// Children returns the direct children in document order.
func (n Node) Children() []Node {
	out := make([]Node, 0, n.ChildCount())
	for c := n.FirstChild(); c.Valid(); c = c.NextSibling() {
		out = append(out, c)
	}
	return out
}

// Detach severs n from its parent and siblings. The subtree rooted at n is
// otherwise untouched and may be reattached with AppendChild/InsertBefore,
// including onto a different parent in the same document. A subtree that is
// never reattached is dropped when the document is done with it.
func (n Node) Detach() {
	r := n.doc.rec(n.id)
	parent, prev, next := r.parent, r.prev, r.next
	if parent == noID {
		return
	}
	if prev != noID {
		n.doc.rec(prev).next = next
	} else {
		n.doc.rec(parent).firstChild = next
	}
	if next != noID {
		n.doc.rec(next).prev = prev
	} else {
		n.doc.rec(parent).lastChild = prev
	}
	r.parent, r.prev, r.next = noID, noID, noID
}

// AppendChild appends child as the last child of n. child is detached from
// its current position first, if any.
func (n Node) AppendChild(child Node) {
	child.Detach()
	cr := child.doc.rec(child.id)
	pr := n.doc.rec(n.id)
	cr.parent = n.id
	cr.prev = pr.lastChild
	cr.next = noID
	if pr.lastChild != noID {
		n.doc.rec(pr.lastChild).next = child.id
	} else {
		pr.firstChild = child.id
	}
	pr.lastChild = child.id
}

// InsertBefore inserts child immediately before ref, a current child of n.
// If ref is the zero Node, child is appended.
func (n Node) InsertBefore(child, ref Node) {
	if !ref.Valid() {
		n.AppendChild(child)
		return
	}
	child.Detach()
	cr := child.doc.rec(child.id)
	rr := n.doc.rec(ref.id)
	pr := n.doc.rec(n.id)
	cr.parent = n.id
	cr.next = ref.id
	cr.prev = rr.prev
	if rr.prev != noID {
		n.doc.rec(rr.prev).next = child.id
	} else {
		pr.firstChild = child.id
	}
	rr.prev = child.id
}

// InsertAt inserts child so that it becomes the child at the given index.
func (n Node) InsertAt(child Node, index int) {
	if index >= n.ChildCount() {
		n.AppendChild(child)
		return
	}
	n.InsertBefore(child, n.ChildAt(index))
}

// RemoveChild detaches child, which must currently be a child of n. The
// detached subtree is dropped unless reattached by the caller.
func (n Node) RemoveChild(child Node) {
	child.Detach()
}

// ReplaceWith detaches n and inserts replacements in its place among its
// former siblings, in order. It is used by passes like collapse-groups and
// flatten-defs that replace a node with its own children.
func (n Node) ReplaceWith(replacements []Node) {
	parent := n.Parent()
	if !parent.Valid() {
		return
	}
	next := n.NextSibling()
	n.Detach()
	for _, r := range replacements {
		parent.InsertBefore(r, next)
	}
}

// Remove detaches n from the tree and frees its storage along with its
// entire subtree. Use Detach instead if the subtree might be reattached.
func (n Node) Remove() {
	n.Detach()
	n.free()
}

func (n Node) free() {
	for c := n.FirstChild(); c.Valid(); {
		next := c.NextSibling()
		c.free()
		c = next
	}
	r := n.doc.rec(n.id)
	*r = record{freed: true}
}
