package job

import (
	"regexp"
	"strings"

	"github.com/tdewolff/svgo/dom"
	"github.com/tdewolff/svgo/visit"
)

var urlRefPattern = regexp.MustCompile(`url\(\s*['"]?#([^'")\s]+)['"]?\s*\)`)

// idRefsOf returns every id this element's attributes reference,
// either directly (href/xlink:href to a fragment) or via url(#id) inside a
// presentation attribute or inline style.
func idRefsOf(e dom.Node) []string {
	var refs []string
	for _, name := range dom.IDRefAttrs {
		v, ok := e.Attr(name)
		if !ok {
			continue
		}
		if name == "href" || name == "xlink:href" {
			if strings.HasPrefix(v, "#") {
				refs = append(refs, v[1:])
			}
			continue
		}
		for _, m := range urlRefPattern.FindAllStringSubmatch(v, -1) {
			refs = append(refs, m[1])
		}
	}
	if style, ok := e.Attr("style"); ok {
		for _, m := range urlRefPattern.FindAllStringSubmatch(style, -1) {
			refs = append(refs, m[1])
		}
	}
	return refs
}

func walkAll(n dom.Node, f func(dom.Node)) {
	f(n)
	for c := n.FirstChild(); c.Valid(); c = c.NextSibling() {
		walkAll(c, f)
	}
}

// CleanupIDsOptions configures CleanupIDs.
type CleanupIDsOptions struct {
	// Remove drops ids that nothing in the document references. Defaults
	// to false: such ids are left unchanged. Referenced ids are always
	// shortened.
	Remove bool
	// Force has no effect: every referenced id is shortened whatever its
	// form.
	Force bool
}

func DefaultCleanupIDsOptions() CleanupIDsOptions { return CleanupIDsOptions{} }

const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// CleanupIDs renames every id that an href or url() target in the document
// references to the shortest available label. An id with no such reference
// may be referenced from outside the document, so it is left unchanged,
// or removed when Options.Remove is set.
type CleanupIDs struct {
	visit.BaseVisitor
	Options CleanupIDsOptions
}

func NewCleanupIDs(opts CleanupIDsOptions) *CleanupIDs {
	return &CleanupIDs{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapAttributes).With(visit.CapChildren), Ord: visit.PreOnly}, Options: opts}
}

func (j *CleanupIDs) Name() string          { return "cleanupIDs" }
func (j *CleanupIDs) Visitor() visit.Visitor { return j }

func (j *CleanupIDs) StartDocument(doc *dom.Document) error {
	defined := map[string]dom.Node{}
	order := []string{}
	referenced := map[string]int{}
	walkAll(doc.Root(), func(n dom.Node) {
		if n.Kind() != dom.KindElement {
			return
		}
		if id, ok := n.Attr("id"); ok {
			if _, seen := defined[id]; !seen {
				order = append(order, id)
			}
			defined[id] = n
		}
		for _, ref := range idRefsOf(n) {
			referenced[ref]++
		}
	})

	next := nextIDGenerator()
	used := map[string]bool{}
	for _, id := range order {
		n := defined[id]
		if referenced[id] == 0 {
			if j.Options.Remove {
				n.RemoveAttr("id")
			}
			continue
		}
		newID := next()
		for used[newID] {
			newID = next()
		}
		for {
			if _, taken := defined[newID]; !taken {
				break
			}
			newID = next()
		}
		used[newID] = true
		n.SetAttr("id", newID)
		renameReferences(doc.Root(), id, newID)
	}
	return nil
}

func renameReferences(n dom.Node, old, new string) {
	walkAll(n, func(e dom.Node) {
		if e.Kind() != dom.KindElement {
			return
		}
		for _, name := range []string{"href", "xlink:href"} {
			if v, ok := e.Attr(name); ok && v == "#"+old {
				e.SetAttr(name, "#"+new)
			}
		}
		for _, attrName := range dom.IDRefAttrs {
			v, ok := e.Attr(attrName)
			if !ok {
				continue
			}
			e.SetAttr(attrName, replaceURLRef(v, old, new))
		}
		if style, ok := e.Attr("style"); ok {
			e.SetAttr("style", replaceURLRef(style, old, new))
		}
	})
}

func replaceURLRef(v, old, new string) string {
	return urlRefPattern.ReplaceAllStringFunc(v, func(m string) string {
		sub := urlRefPattern.FindStringSubmatch(m)
		if sub[1] != old {
			return m
		}
		return strings.Replace(m, "#"+old, "#"+new, 1)
	})
}

func nextIDGenerator() func() string {
	n := 0
	return func() string {
		defer func() { n++ }()
		if n < len(idAlphabet) {
			return string(idAlphabet[n])
		}
		q, r := n/len(idAlphabet), n%len(idAlphabet)
		return nextLabel(q-1) + string(idAlphabet[r])
	}
}

func nextLabel(n int) string {
	if n < len(idAlphabet) {
		return string(idAlphabet[n])
	}
	return nextLabel(n/len(idAlphabet)-1) + string(idAlphabet[n%len(idAlphabet)])
}

// PrefixIDsOptions configures PrefixIDs. The callback form the source
// marks FIXME/async is unsupported here (§9 Open Question); Prefix is a
// plain string or, if Callback is set, a synchronous function of the
// document's origin path.
type PrefixIDsOptions struct {
	Prefix   string
	Callback func(sourcePath string) string
}

// PrefixIDs prepends a fixed or computed prefix to every id in the
// document and to every reference to it, so that multiple optimised SVGs
// inlined into one HTML page cannot collide.
type PrefixIDs struct {
	visit.BaseVisitor
	Options    PrefixIDsOptions
	SourcePath string
}

func NewPrefixIDs(opts PrefixIDsOptions) *PrefixIDs {
	return &PrefixIDs{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapAttributes).With(visit.CapChildren), Ord: visit.PreOnly}, Options: opts}
}

func (j *PrefixIDs) Name() string          { return "prefixIDs" }
func (j *PrefixIDs) Visitor() visit.Visitor { return j }
func (j *PrefixIDs) SetInfo(info Info)      { j.SourcePath = info.OriginPath }

func (j *PrefixIDs) StartDocument(doc *dom.Document) error {
	prefix := j.Options.Prefix
	if j.Options.Callback != nil {
		prefix = j.Options.Callback(j.SourcePath)
	}
	if prefix == "" {
		return nil
	}
	renames := map[string]string{}
	walkAll(doc.Root(), func(n dom.Node) {
		if n.Kind() != dom.KindElement {
			return
		}
		if id, ok := n.Attr("id"); ok {
			newID := prefix + id
			renames[id] = newID
			n.SetAttr("id", newID)
		}
	})
	for old, new := range renames {
		renameReferences(doc.Root(), old, new)
	}
	return nil
}

// RemoveUselessDefs deletes element children of <defs> that have no id, or
// whose id no href or url() in the document references. <style> children
// are always kept.
type RemoveUselessDefs struct {
	visit.BaseVisitor
}

func NewRemoveUselessDefs() *RemoveUselessDefs {
	return &RemoveUselessDefs{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapChildren), Ord: visit.PreOnly}}
}

func (j *RemoveUselessDefs) Name() string          { return "removeUselessDefs" }
func (j *RemoveUselessDefs) Visitor() visit.Visitor { return j }

func (j *RemoveUselessDefs) StartDocument(doc *dom.Document) error {
	referenced := map[string]bool{}
	walkAll(doc.Root(), func(n dom.Node) {
		if n.Kind() != dom.KindElement {
			return
		}
		for _, ref := range idRefsOf(n) {
			referenced[ref] = true
		}
	})
	var defsNodes []dom.Node
	walkAll(doc.Root(), func(n dom.Node) {
		if n.Kind() == dom.KindElement && n.LocalName() == "defs" {
			defsNodes = append(defsNodes, n)
		}
	})
	for _, defs := range defsNodes {
		for c := defs.FirstChild(); c.Valid(); {
			next := c.NextSibling()
			if c.Kind() == dom.KindElement && c.LocalName() != "style" {
				if id, ok := c.Attr("id"); !ok || !referenced[id] {
					c.Remove()
				}
			}
			c = next
		}
	}
	return nil
}

// defaultNSBindings are the namespace URIs a bare `xmlns:` declaration is
// redundant for, because the document already establishes them by other
// means (the default xmlns, or the fixed xml: binding every XML document
// has implicitly).
var defaultNSBindings = map[string]bool{
	"http://www.w3.org/2000/svg": true,
	"http://www.w3.org/XML/1998/namespace": true,
}

// CleanupXlinkNS removes xmlns:xlink (and any other prefix bound to a
// default SVG/XML namespace URI) declarations that are redundant given
// the document's own default namespace. A declaration is kept if any
// attribute anywhere in its scope (the declaring element's subtree,
// down to the nearest shadowing redeclaration) still uses the prefix.
type CleanupXlinkNS struct {
	visit.BaseVisitor
}

func NewCleanupXlinkNS() *CleanupXlinkNS {
	return &CleanupXlinkNS{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapName), Ord: visit.PreOnly}}
}

func (j *CleanupXlinkNS) Name() string          { return "cleanupXlinkNS" }
func (j *CleanupXlinkNS) Visitor() visit.Visitor { return j }

func (j *CleanupXlinkNS) StartDocument(doc *dom.Document) error {
	walkAll(doc.Root(), func(e dom.Node) {
		if e.Kind() != dom.KindElement {
			return
		}
		for prefix, uri := range e.NamespaceDecls() {
			if prefix != "" && defaultNSBindings[uri] && !prefixUsedInScope(e, prefix) {
				e.RemoveNamespaceDecl(prefix)
			}
		}
	})
	return nil
}

func prefixUsedInScope(e dom.Node, prefix string) bool {
	used := false
	walkAll(e, func(n dom.Node) {
		if n.Kind() != dom.KindElement || used {
			return
		}
		for p := n; p != e; p = p.Parent() {
			if _, shadowed := p.NamespaceDecls()[prefix]; shadowed {
				return
			}
		}
		for _, attr := range n.Attrs() {
			if attr.Prefix == prefix {
				used = true
				return
			}
		}
	})
	return used
}
