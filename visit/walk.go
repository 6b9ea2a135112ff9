package visit

import "github.com/tdewolff/svgo/dom"

// Walk drives a single visitor over the whole document: start_document,
// a depth-first pre-order traversal with post-order exit_element delivery,
// then end_document.
func Walk(doc *dom.Document, v Visitor) error {
	if err := v.StartDocument(doc); err != nil {
		return err
	}
	if err := walkChildren(v, doc.Root()); err != nil {
		return err
	}
	return v.EndDocument(doc)
}

// walkChildren visits every child of parent present at loop-entry time,
// capturing each child's next sibling before invoking its callback so that
// removals and replacements the callback triggers cannot derail iteration,
// and so that insertions at an already-visited position have no effect on
// this pass.
func walkChildren(v Visitor, parent dom.Node) error {
	child := parent.FirstChild()
	for child.Valid() {
		next := child.NextSibling()
		if err := walkNode(v, child); err != nil {
			return err
		}
		child = next
	}
	return nil
}

func walkNode(v Visitor, n dom.Node) error {
	switch n.Kind() {
	case dom.KindElement:
		return walkElement(v, n)
	case dom.KindText:
		return applyLeafAction(v, n, v.VisitText)
	case dom.KindComment:
		return applyLeafAction(v, n, v.VisitComment)
	case dom.KindProcInst:
		return applyLeafAction(v, n, v.VisitProcessingInstruction)
	default:
		return nil
	}
}

func walkElement(v Visitor, e dom.Node) error {
	order := v.Order()

	if order != PostOnly {
		action, err := v.EnterElement(e)
		if err != nil {
			return err
		}
		switch action.Kind {
		case RemoveSelf:
			e.Remove()
			return nil
		case ReplaceWith:
			e.ReplaceWith(action.Nodes)
			return walkNodes(v, action.Nodes)
		case SkipChildren:
			return nil
		}
	}

	if err := walkChildren(v, e); err != nil {
		return err
	}

	if order == PreOnly {
		return nil
	}

	action, err := v.ExitElement(e)
	if err != nil {
		return err
	}
	switch action.Kind {
	case RemoveSelf:
		e.Remove()
	case ReplaceWith:
		e.ReplaceWith(action.Nodes)
		return walkNodes(v, action.Nodes)
	}
	return nil
}

func walkNodes(v Visitor, nodes []dom.Node) error {
	for _, n := range nodes {
		if err := walkNode(v, n); err != nil {
			return err
		}
	}
	return nil
}

func applyLeafAction(v Visitor, n dom.Node, visit func(dom.Node) (Action, error)) error {
	action, err := visit(n)
	if err != nil {
		return err
	}
	switch action.Kind {
	case RemoveSelf:
		n.Remove()
	case ReplaceWith:
		n.ReplaceWith(action.Nodes)
		return walkNodes(v, action.Nodes)
	}
	return nil
}
