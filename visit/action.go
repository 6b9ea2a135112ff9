// Package visit implements the document traversal that every job runs
// over: a depth-first pre-order walk with post-order exit callbacks, safe
// mid-walk mutation, and per-job capability declarations.
package visit

import "github.com/tdewolff/svgo/dom"

// ActionKind says what the framework should do after a callback returns.
type ActionKind int

const (
	// Continue walks into the node's children (for enter callbacks) or
	// simply proceeds to the next step (for leaf/exit callbacks).
	Continue ActionKind = iota
	// SkipChildren proceeds to the node's next sibling without visiting
	// its children or delivering its exit_element callback.
	SkipChildren
	// RemoveSelf detaches the current node and continues the walk at its
	// next sibling; its children are never visited.
	RemoveSelf
	// ReplaceWith detaches the current node and splices Nodes in its
	// place, continuing the walk at the first of them.
	ReplaceWith
)

// Action is the return value of every visitor callback.
type Action struct {
	Kind  ActionKind
	Nodes []dom.Node
}

// ContinueAction allows the walk to proceed normally.
func ContinueAction() Action { return Action{Kind: Continue} }

// SkipChildrenAction skips the current element's children and its
// exit_element callback.
func SkipChildrenAction() Action { return Action{Kind: SkipChildren} }

// RemoveSelfAction detaches the current node.
func RemoveSelfAction() Action { return Action{Kind: RemoveSelf} }

// ReplaceWithAction detaches the current node and splices in nodes.
func ReplaceWithAction(nodes []dom.Node) Action {
	return Action{Kind: ReplaceWith, Nodes: nodes}
}
