// Package dom implements the mutable, arena-backed document tree that the
// job pipeline walks and rewrites. Nodes are never Go pointers into the
// arena; they are small (document, index) handles so that a callback
// holding one always resolves live state, even after the tree around it has
// been restructured mid-walk.
package dom

// Kind identifies the variant of a Node.
type Kind uint8

const (
	// KindDocument is the root node of a Document. Exactly one per document.
	KindDocument Kind = iota
	KindElement
	KindText
	KindComment
	KindProcInst
	KindDocType
	KindCDATA
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	case KindProcInst:
		return "procinst"
	case KindDocType:
		return "doctype"
	case KindCDATA:
		return "cdata"
	default:
		return "unknown"
	}
}

// id is the arena index of a node. 0 is reserved for "no node".
type id int32

const noID id = 0

type record struct {
	kind Kind

	parent, firstChild, lastChild, prev, next id

	// Element
	prefix, local, namespaceURI string
	attrs                       []Attr
	nsDecls                     map[string]string // prefix -> URI declared on this element ("" = default ns)
	selfClosed                  bool

	// Text / Comment / CDATA
	data string

	// ProcInst
	target string

	// DocType
	name, publicID, systemID string

	// not read or written; computed-style caching is keyed by
	// Document.styleEpoch instead
	styleVersion uint64

	// freed marks a slot released by Remove; alloc reuses its storage, and
	// it is not part of any tree.
	freed bool
}

// Document owns all node storage for one optimisation invocation. Documents
// never share nodes; detaching a subtree never migrates it to another
// Document.
type Document struct {
	nodes []record // index 0 is unused (noID sentinel)
	root  id

	// bumped whenever any element's attributes change (SetAttr, RemoveAttr,
	// SetAttrs) or BumpStyleEpoch is called; a single document-wide counter
	// that every cached computed style is checked against (see style.go).
	styleEpoch uint64

	// SourcePath is the origin path of the document, if any. The job
	// package does not read it: job.Info's OriginPath comes from the
	// originPath argument of job.Run.
	SourcePath string

	styleCache *styleStore
}

// NewDocument creates an empty Document with a root node.
func NewDocument() *Document {
	d := &Document{nodes: make([]record, 1, 64)}
	d.root = d.alloc(record{kind: KindDocument})
	return d
}

func (d *Document) alloc(r record) id {
	for i := 1; i < len(d.nodes); i++ {
		if d.nodes[i].freed {
			d.nodes[i] = r
			return id(i)
		}
	}
	d.nodes = append(d.nodes, r)
	return id(len(d.nodes) - 1)
}

func (d *Document) rec(n id) *record {
	return &d.nodes[n]
}

// Root returns the document's root node.
func (d *Document) Root() Node {
	return Node{doc: d, id: d.root}
}

// Node is a lightweight handle into a Document's arena. The zero Node is
// invalid; Node.Valid reports whether a handle still refers to a live node.
type Node struct {
	doc *Document
	id  id
}

// Valid reports whether n refers to a live node in its document.
func (n Node) Valid() bool {
	return n.doc != nil && n.id != noID && int(n.id) < len(n.doc.nodes) && !n.doc.nodes[n.id].freed
}

// Document returns the owning document.
func (n Node) Document() *Document { return n.doc }

// Equal reports structural identity within one document: same document and
// same slot.
func (n Node) Equal(o Node) bool { return n.doc == o.doc && n.id == o.id }

// Kind returns the node's variant.
func (n Node) Kind() Kind { return n.doc.rec(n.id).kind }

func (n Node) String() string {
	return n.doc.rec(n.id).kind.String()
}
