package visit

import "github.com/tdewolff/svgo/dom"

// Order restricts which half of the pre/post-order pair a visitor needs,
// letting the walker skip delivering the other half.
type Order uint8

const (
	PrePost  Order = iota // both enter_element and exit_element are delivered
	PreOnly               // only enter_element; no post-order pass needed
	PostOnly              // only exit_element; enter_element is skipped
)

// Visitor is the callback set a job implements. Jobs embed BaseVisitor and
// override only the callbacks they need; the framework never reflects on
// which methods were overridden, it always calls every declared callback
// and relies on BaseVisitor's defaults to make the rest no-ops.
type Visitor interface {
	Capabilities() Capabilities
	Order() Order

	StartDocument(doc *dom.Document) error
	EndDocument(doc *dom.Document) error

	EnterElement(e dom.Node) (Action, error)
	ExitElement(e dom.Node) (Action, error)
	VisitText(t dom.Node) (Action, error)
	VisitComment(c dom.Node) (Action, error)
	VisitProcessingInstruction(p dom.Node) (Action, error)
}

// BaseVisitor implements Visitor with no-op defaults. Jobs embed it and
// override the handful of callbacks their pass actually needs.
type BaseVisitor struct {
	Caps  Capabilities
	Ord   Order
}

func (b BaseVisitor) Capabilities() Capabilities { return b.Caps }
func (b BaseVisitor) Order() Order               { return b.Ord }

func (BaseVisitor) StartDocument(doc *dom.Document) error { return nil }
func (BaseVisitor) EndDocument(doc *dom.Document) error   { return nil }

func (BaseVisitor) EnterElement(e dom.Node) (Action, error) { return ContinueAction(), nil }
func (BaseVisitor) ExitElement(e dom.Node) (Action, error)  { return ContinueAction(), nil }
func (BaseVisitor) VisitText(t dom.Node) (Action, error)    { return ContinueAction(), nil }
func (BaseVisitor) VisitComment(c dom.Node) (Action, error) { return ContinueAction(), nil }
func (BaseVisitor) VisitProcessingInstruction(p dom.Node) (Action, error) {
	return ContinueAction(), nil
}
