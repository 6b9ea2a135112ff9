package visit

// Capability is one aspect of a node a job may declare it mutates. Walk
// does not read these declarations; computed-style caches are invalidated
// by dom's attribute setters regardless of them.
type Capability uint8

const (
	CapName       Capability = 1 << iota // element/attribute name rewriting
	CapAttributes                        // attribute value changes
	CapChildren                          // insertion, removal, reordering of children
	CapOrder                             // traversal order a job depends on (preorder/postorder only)
	CapStyles                            // <style> content or presentation/style attribute values
)

// Capabilities is a declared set, built with Has/With.
type Capabilities uint8

// Has reports whether c includes every bit of want.
func (c Capabilities) Has(want Capability) bool {
	return Capabilities(want)&c == Capabilities(want)
}

// With returns c plus cap.
func (c Capabilities) With(cap Capability) Capabilities {
	return c | Capabilities(cap)
}

// TouchesStyle reports whether a job's declared capabilities can have
// changed computed style, i.e. whether the style cache must be bumped.
func (c Capabilities) TouchesStyle() bool {
	return c.Has(CapAttributes) || c.Has(CapStyles) || c.Has(CapChildren)
}
