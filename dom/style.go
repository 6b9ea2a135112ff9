package dom

import (
	"sort"
	"strings"
)

// bumpStyle invalidates every element's computed-style cache by advancing
// the document's style epoch. SetAttr, RemoveAttr and SetAttrs call it on
// every change, whatever capabilities the running job declares; there is no
// per-ancestor version counter, so the cache invalidates globally rather
// than per subtree.
func (n Node) bumpStyle() {
	n.doc.styleEpoch++
}

// BumpStyleEpoch invalidates every element's computed-style cache without
// going through SetAttr, for callers that change a document's <style> block
// text directly. No job in this module calls it.
func (d *Document) BumpStyleEpoch() { d.styleEpoch++ }

type styleCacheEntry struct {
	epoch uint64
	style map[string]string
}

// styleCaches is keyed by node id, stored on the Document since records
// don't want the extra map field in the common case of an uncomputed style.
type styleStore struct {
	m map[id]styleCacheEntry
}

func (d *Document) styles() *styleStore {
	if d.styleCache == nil {
		d.styleCache = &styleStore{m: make(map[id]styleCacheEntry)}
	}
	return d.styleCache
}

// ComputedStyle composes, in cascading order, presentation attributes on
// the element, its inline style attribute, and (via match) rules from
// ancestor <style> blocks, caching the result until the document's style
// epoch next advances.
//
// match is supplied by the caller (job.Info or a selector-aware job) since
// the document model itself has no notion of which jobs see <style> rules
// as "in scope"; passing a nil match restricts composition to presentation
// attributes and inline style.
func (n Node) ComputedStyle(match func(Node) map[string]string) map[string]string {
	store := n.doc.styles()
	if e, ok := store.m[n.id]; ok && e.epoch == n.doc.styleEpoch {
		return e.style
	}

	style := make(map[string]string)
	if match != nil {
		for k, v := range match(n) {
			style[k] = v
		}
	}
	for _, a := range n.Attrs() {
		if a.Prefix == "" && PresentationAttrs[a.Local] {
			style[a.Local] = a.Value
		}
	}
	if inline, ok := n.Attr("style"); ok {
		for k, v := range ParseDeclarations(inline) {
			style[k] = v
		}
	}

	store.m[n.id] = styleCacheEntry{epoch: n.doc.styleEpoch, style: style}
	return style
}

// ParseDeclarations splits a `style="a:b;c:d"` value into a property->value
// map. Values are trimmed; `!important` is stripped from the end of a
// value, matching the cascade's treatment for our purposes (the optimiser
// never needs to distinguish important declarations from normal ones).
func ParseDeclarations(s string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(s, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		v = strings.TrimSpace(strings.TrimSuffix(v, "!important"))
		if k == "" {
			continue
		}
		out[strings.ToLower(k)] = v
	}
	return out
}

// SerializeDeclarations renders a property->value map back into a
// `style="..."` value, sorted by property name for determinism.
func SerializeDeclarations(decls map[string]string) string {
	if len(decls) == 0 {
		return ""
	}
	keys := make([]string, 0, len(decls))
	for k := range decls {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(decls[k])
	}
	return b.String()
}
