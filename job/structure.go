package job

import (
	"sort"

	"github.com/tdewolff/svgo/dom"
	"github.com/tdewolff/svgo/visit"
)

// CollapseGroups removes a <g> that has exactly one child and no id, by
// moving its attributes onto that child (presentation attributes merge,
// transform composes) and splicing the child into the group's place.
type CollapseGroups struct {
	visit.BaseVisitor
}

func NewCollapseGroups() *CollapseGroups {
	return &CollapseGroups{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapChildren).With(visit.CapAttributes), Ord: visit.PostOnly}}
}

func (j *CollapseGroups) Name() string          { return "collapseGroups" }
func (j *CollapseGroups) Visitor() visit.Visitor { return j }

func (j *CollapseGroups) ExitElement(e dom.Node) (visit.Action, error) {
	if e.LocalName() != "g" {
		return visit.ContinueAction(), nil
	}
	if _, ok := e.Attr("id"); ok {
		return visit.ContinueAction(), nil
	}
	if e.ChildCount() != 1 {
		return visit.ContinueAction(), nil
	}
	child := e.FirstChild()
	if child.Kind() != dom.KindElement {
		return visit.ContinueAction(), nil
	}
	for _, attr := range e.Attrs() {
		if attr.Name() == "transform" {
			composeTransformAttr(child, attr.Value)
			continue
		}
		if !child.HasAttr(attr.Name()) {
			child.SetAttr(attr.Name(), attr.Value)
		}
	}
	return visit.ReplaceWithAction([]dom.Node{child}), nil
}

func composeTransformAttr(e dom.Node, outer string) {
	inner, ok := e.Attr("transform")
	if !ok {
		e.SetAttr("transform", outer)
		return
	}
	e.SetAttr("transform", outer+" "+inner)
}

// MergeStyledGroups merges a <g> into its immediately preceding sibling
// <g> when both have no id and textually identical attribute sets, by
// moving the later group's children into the earlier one.
type MergeStyledGroups struct {
	visit.BaseVisitor
}

func NewMergeStyledGroups() *MergeStyledGroups {
	return &MergeStyledGroups{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapChildren), Ord: visit.PreOnly}}
}

func (j *MergeStyledGroups) Name() string          { return "mergeStyledGroups" }
func (j *MergeStyledGroups) Visitor() visit.Visitor { return j }

func (j *MergeStyledGroups) EnterElement(e dom.Node) (visit.Action, error) {
	if e.LocalName() != "g" {
		return visit.ContinueAction(), nil
	}
	prev := e.PrevSibling()
	if !prev.Valid() || prev.Kind() != dom.KindElement || prev.LocalName() != "g" {
		return visit.ContinueAction(), nil
	}
	if _, ok := e.Attr("id"); ok {
		return visit.ContinueAction(), nil
	}
	if _, ok := prev.Attr("id"); ok {
		return visit.ContinueAction(), nil
	}
	if !sameAttrs(e, prev) {
		return visit.ContinueAction(), nil
	}
	for c := e.FirstChild(); c.Valid(); {
		next := c.NextSibling()
		c.Detach()
		prev.AppendChild(c)
		c = next
	}
	return visit.RemoveSelfAction(), nil
}

func sameAttrs(a, b dom.Node) bool {
	aa, ba := a.Attrs(), b.Attrs()
	if len(aa) != len(ba) {
		return false
	}
	bm := map[string]string{}
	for _, attr := range ba {
		bm[attr.Name()] = attr.Value
	}
	for _, attr := range aa {
		if bm[attr.Name()] != attr.Value {
			return false
		}
	}
	return true
}

// SortAttrsOptions fixes the key ordering sortAttrs applies; attributes
// not named fall back to alphabetical order after the named ones.
type SortAttrsOptions struct {
	Order []string
}

func DefaultSortAttrsOptions() SortAttrsOptions {
	return SortAttrsOptions{Order: []string{
		"id", "class", "style", "transform", "x", "y", "x1", "y1", "x2", "y2",
		"cx", "cy", "r", "rx", "ry", "width", "height", "points", "d",
		"fill", "stroke", "viewBox", "xmlns",
	}}
}

// SortAttrs reorders each element's attributes into a stable key order,
// which tends to improve gzip compression across many similar elements.
type SortAttrs struct {
	visit.BaseVisitor
	Options SortAttrsOptions
	rank    map[string]int
}

func NewSortAttrs(opts SortAttrsOptions) *SortAttrs {
	rank := make(map[string]int, len(opts.Order))
	for i, name := range opts.Order {
		rank[name] = i
	}
	return &SortAttrs{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapAttributes), Ord: visit.PreOnly}, Options: opts, rank: rank}
}

func (j *SortAttrs) Name() string          { return "sortAttrs" }
func (j *SortAttrs) Visitor() visit.Visitor { return j }

func (j *SortAttrs) EnterElement(e dom.Node) (visit.Action, error) {
	attrs := e.Attrs()
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.Name()
	}
	sort.SliceStable(names, func(i, k int) bool {
		ri, oki := j.rank[names[i]]
		rk, okk := j.rank[names[k]]
		if oki && okk {
			return ri < rk
		}
		if oki != okk {
			return oki
		}
		return names[i] < names[k]
	})
	e.ReorderAttrs(names)
	return visit.ContinueAction(), nil
}

// SortDefsChildren sorts the direct children of every <defs> element by
// local name, then by id, so that repeated builds of semantically
// identical documents serialise byte-identically.
type SortDefsChildren struct {
	visit.BaseVisitor
}

func NewSortDefsChildren() *SortDefsChildren {
	return &SortDefsChildren{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapChildren).With(visit.CapOrder), Ord: visit.PreOnly}}
}

func (j *SortDefsChildren) Name() string          { return "sortDefsChildren" }
func (j *SortDefsChildren) Visitor() visit.Visitor { return j }

func (j *SortDefsChildren) EnterElement(e dom.Node) (visit.Action, error) {
	if e.LocalName() != "defs" {
		return visit.ContinueAction(), nil
	}
	children := e.Children()
	sort.SliceStable(children, func(i, k int) bool {
		ni, nk := children[i], children[k]
		if ni.Kind() != dom.KindElement || nk.Kind() != dom.KindElement {
			return false
		}
		if ni.LocalName() != nk.LocalName() {
			return ni.LocalName() < nk.LocalName()
		}
		return ni.AttrOr("id", "") < nk.AttrOr("id", "")
	})
	for _, c := range children {
		c.Detach()
	}
	for _, c := range children {
		e.AppendChild(c)
	}
	return visit.ContinueAction(), nil
}

// MoveGroupAttrsToElems pushes a <g>'s transform attribute down onto its
// element child (composing with any transform already there) and removes
// it from the group, when the group has exactly one element child.
type MoveGroupAttrsToElems struct {
	visit.BaseVisitor
}

func NewMoveGroupAttrsToElems() *MoveGroupAttrsToElems {
	return &MoveGroupAttrsToElems{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapAttributes), Ord: visit.PreOnly}}
}

func (j *MoveGroupAttrsToElems) Name() string          { return "moveGroupAttrsToElems" }
func (j *MoveGroupAttrsToElems) Visitor() visit.Visitor { return j }

func (j *MoveGroupAttrsToElems) EnterElement(e dom.Node) (visit.Action, error) {
	if e.LocalName() != "g" {
		return visit.ContinueAction(), nil
	}
	transform, ok := e.Attr("transform")
	if !ok {
		return visit.ContinueAction(), nil
	}
	elementChildren := 0
	for c := e.FirstChild(); c.Valid(); c = c.NextSibling() {
		if c.Kind() == dom.KindElement {
			elementChildren++
		}
	}
	if elementChildren == 0 || elementChildren > 1 {
		return visit.ContinueAction(), nil
	}
	for c := e.FirstChild(); c.Valid(); c = c.NextSibling() {
		if c.Kind() == dom.KindElement {
			composeTransformAttr(c, transform)
		}
	}
	e.RemoveAttr("transform")
	return visit.ContinueAction(), nil
}

// MoveElemsAttrsToGroup is the inverse of moveGroupAttrsToElems: when
// every element child of a <g> shares the same value for a presentation
// attribute, that attribute is hoisted onto the group and removed from
// each child.
type MoveElemsAttrsToGroup struct {
	visit.BaseVisitor
}

func NewMoveElemsAttrsToGroup() *MoveElemsAttrsToGroup {
	return &MoveElemsAttrsToGroup{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapAttributes), Ord: visit.PostOnly}}
}

func (j *MoveElemsAttrsToGroup) Name() string          { return "moveElemsAttrsToGroup" }
func (j *MoveElemsAttrsToGroup) Visitor() visit.Visitor { return j }

func (j *MoveElemsAttrsToGroup) ExitElement(e dom.Node) (visit.Action, error) {
	if e.LocalName() != "g" {
		return visit.ContinueAction(), nil
	}
	var children []dom.Node
	for c := e.FirstChild(); c.Valid(); c = c.NextSibling() {
		if c.Kind() == dom.KindElement {
			children = append(children, c)
		}
	}
	if len(children) < 2 {
		return visit.ContinueAction(), nil
	}
	common := map[string]string{}
	for _, attr := range children[0].Attrs() {
		if !dom.PresentationAttrs[attr.Local] {
			continue
		}
		common[attr.Name()] = attr.Value
	}
	for _, child := range children[1:] {
		for name, val := range common {
			if cv, ok := child.Attr(name); !ok || cv != val {
				delete(common, name)
			}
		}
	}
	for name, val := range common {
		e.SetAttr(name, val)
		for _, child := range children {
			child.RemoveAttr(name)
		}
	}
	return visit.ContinueAction(), nil
}
