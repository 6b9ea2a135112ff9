package dom

// SVGNamespace is the namespace URI for SVG elements and the document root.
const SVGNamespace = "http://www.w3.org/2000/svg"

// XLinkNamespace is the legacy xlink namespace still used by href-like
// attributes in older SVG.
const XLinkNamespace = "http://www.w3.org/1999/xlink"

// XMLNamespace is the fixed xml: prefix namespace.
const XMLNamespace = "http://www.w3.org/XML/1998/namespace"

// DeclareNamespace records that prefix (use "" for the default namespace)
// is bound to uri on n. The serialiser emits it as an xmlns[:prefix]
// attribute on n itself.
func (n Node) DeclareNamespace(prefix, uri string) {
	r := n.doc.rec(n.id)
	if r.nsDecls == nil {
		r.nsDecls = make(map[string]string)
	}
	r.nsDecls[prefix] = uri
}

// NamespaceDecls returns the prefix->URI map declared directly on n (not
// inherited). The returned map must not be mutated.
func (n Node) NamespaceDecls() map[string]string {
	return n.doc.rec(n.id).nsDecls
}

// RemoveNamespaceDecl removes a declaration made directly on n, if present.
func (n Node) RemoveNamespaceDecl(prefix string) {
	r := n.doc.rec(n.id)
	delete(r.nsDecls, prefix)
}

// LookupNamespaceURI resolves prefix (use "" for the default namespace) by
// walking from n up through its ancestors.
func (n Node) LookupNamespaceURI(prefix string) string {
	for cur := n; cur.Valid(); cur = cur.Parent() {
		if cur.Kind() != KindElement {
			continue
		}
		if decls := cur.doc.rec(cur.id).nsDecls; decls != nil {
			if uri, ok := decls[prefix]; ok {
				return uri
			}
		}
	}
	return ""
}

// LookupPrefix resolves a namespace URI back to the prefix bound to it in
// scope at n ("" for the default namespace), or "" with ok=false if no
// binding is in scope.
func (n Node) LookupPrefix(uri string) (prefix string, ok bool) {
	seen := map[string]bool{}
	for cur := n; cur.Valid(); cur = cur.Parent() {
		if cur.Kind() != KindElement {
			continue
		}
		for p, u := range cur.doc.rec(cur.id).nsDecls {
			if seen[p] {
				continue
			}
			seen[p] = true
			if u == uri {
				return p, true
			}
		}
	}
	return "", false
}
