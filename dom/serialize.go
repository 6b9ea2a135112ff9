package dom

import (
	"sort"
	"strings"
)

// Serialize renders doc back into XML/SVG text. It performs no
// optimisation of its own — every minification decision belongs to a job —
// only faithful, well-formed output of whatever the tree currently holds,
// including the namespace declarations jobs left in place. Each declaration
// is written on the element that carries it; the serialiser does not move
// declarations to their shallowest user.
func Serialize(doc *Document) string {
	var b strings.Builder
	for c := doc.Root().FirstChild(); c.Valid(); c = c.NextSibling() {
		writeNode(&b, c)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n Node) {
	switch n.Kind() {
	case KindElement:
		writeElement(b, n)
	case KindText:
		b.WriteString(EscapeText(n.TextData()))
	case KindComment:
		b.WriteString("<!--")
		b.WriteString(n.TextData())
		b.WriteString("-->")
	case KindCDATA:
		b.WriteString("<![CDATA[")
		b.WriteString(n.TextData())
		b.WriteString("]]>")
	case KindProcInst:
		b.WriteString("<?")
		b.WriteString(n.ProcInstTarget())
		if d := n.TextData(); d != "" {
			b.WriteByte(' ')
			b.WriteString(d)
		}
		b.WriteString("?>")
	case KindDocType:
		writeDocType(b, n)
	}
}

func writeDocType(b *strings.Builder, n Node) {
	name, public, system := n.DocType()
	b.WriteString("<!DOCTYPE ")
	b.WriteString(name)
	switch {
	case public != "":
		b.WriteString(` PUBLIC "`)
		b.WriteString(public)
		b.WriteByte('"')
		if system != "" {
			b.WriteString(` "`)
			b.WriteString(system)
			b.WriteByte('"')
		}
	case system != "":
		b.WriteString(` SYSTEM "`)
		b.WriteString(system)
		b.WriteByte('"')
	}
	b.WriteByte('>')
}

func writeElement(b *strings.Builder, n Node) {
	b.WriteByte('<')
	b.WriteString(n.Tag())

	decls := n.NamespaceDecls()
	prefixes := make([]string, 0, len(decls))
	for p := range decls {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	for _, prefix := range prefixes {
		uri := decls[prefix]
		b.WriteByte(' ')
		if prefix == "" {
			b.WriteString("xmlns")
		} else {
			b.WriteString("xmlns:")
			b.WriteString(prefix)
		}
		writeAttrVal(b, uri)
	}

	for _, a := range n.Attrs() {
		b.WriteByte(' ')
		b.WriteString(a.Name())
		writeAttrVal(b, a.Value)
	}

	if !n.FirstChild().Valid() {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for c := n.FirstChild(); c.Valid(); c = c.NextSibling() {
		writeNode(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.Tag())
	b.WriteByte('>')
}

func writeAttrVal(b *strings.Builder, val string) {
	q := BestAttrQuote(val)
	b.WriteByte('=')
	b.WriteByte(q)
	b.WriteString(EscapeAttrVal(val, q))
	b.WriteByte(q)
}
