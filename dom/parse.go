package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// Parse reads one XML document from r into a fresh Document. On a
// tokenising failure it returns the error verbatim and no document — §7's
// "Parse error... no output produced." Malformed PI/doctype bodies are
// captured best-effort rather than rejected; only a tokeniser-level error
// aborts the parse.
func Parse(r io.Reader) (*Document, error) {
	doc := NewDocument()
	z := xml.NewLexer(parse.NewInput(r))

	cur := doc.Root()
	var opening Node

	for {
		tt, data := z.Next()
		switch tt {
		case xml.ErrorToken:
			if err := z.Err(); err != nil && err != io.EOF {
				return nil, fmt.Errorf("dom: parse: %w", err)
			}
			return doc, nil

		case xml.CommentToken:
			text := string(parse.Copy(data))
			text = strings.TrimSuffix(strings.TrimPrefix(text, "<!--"), "-->")
			cur.AppendChild(doc.NewComment(text))

		case xml.CDATAToken:
			text := string(parse.Copy(data))
			text = strings.TrimSuffix(strings.TrimPrefix(text, "<![CDATA["), "]]>")
			cur.AppendChild(doc.NewCDATA(text))

		case xml.TextToken:
			cur.AppendChild(doc.NewText(string(parse.Copy(data))))

		case xml.DOCTYPEToken:
			name, public, system := parseDoctype(string(parse.Copy(data)))
			cur.AppendChild(doc.NewDocType(name, public, system))

		case xml.StartTagPIToken:
			target := string(parse.Copy(z.Text()))
			var parts []string
		piLoop:
			for {
				ptt, pdata := z.Next()
				switch ptt {
				case xml.AttributeToken:
					name := string(parse.Copy(z.Text()))
					val := unquoteAttrVal(z.AttrVal())
					parts = append(parts, name+`="`+val+`"`)
				case xml.StartTagClosePIToken, xml.ErrorToken:
					break piLoop
				default:
					parts = append(parts, string(parse.Copy(pdata)))
				}
			}
			cur.AppendChild(doc.NewProcInst(target, strings.Join(parts, " ")))

		case xml.StartTagToken:
			name := string(parse.Copy(z.Text()))
			prefix, local := splitQName(name)
			el := doc.NewElementNS(prefix, local, "")
			cur.AppendChild(el)
			opening = el

		case xml.AttributeToken:
			name := string(parse.Copy(z.Text()))
			val := unquoteAttrVal(z.AttrVal())
			prefix, local := splitQName(name)
			switch {
			case prefix == "xmlns":
				opening.DeclareNamespace(local, val)
			case prefix == "" && local == "xmlns":
				opening.DeclareNamespace("", val)
			default:
				opening.SetAttr(name, val)
			}

		case xml.StartTagCloseToken:
			cur = opening

		case xml.StartTagCloseVoidToken:
			opening.SetSelfClosed(true)

		case xml.EndTagToken:
			if p := cur.Parent(); p.Valid() {
				cur = p
			}
		}
	}
}

func unquoteAttrVal(b []byte) string {
	s := string(parse.Copy(b))
	if len(s) >= 2 {
		q := s[0]
		if (q == '"' || q == '\'') && s[len(s)-1] == q {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// parseDoctype extracts the root element name and any PUBLIC/SYSTEM
// identifiers from a raw `<!DOCTYPE ...>` token body.
func parseDoctype(raw string) (name, public, system string) {
	body := strings.TrimSuffix(strings.TrimPrefix(raw, "<!DOCTYPE"), ">")
	body = strings.TrimSpace(body)
	fields := splitDoctypeFields(body)
	if len(fields) == 0 {
		return "", "", ""
	}
	name = fields[0]
	fields = fields[1:]
	if len(fields) >= 1 && strings.EqualFold(fields[0], "PUBLIC") {
		if len(fields) >= 2 {
			public = unquoteLiteral(fields[1])
		}
		if len(fields) >= 3 {
			system = unquoteLiteral(fields[2])
		}
	} else if len(fields) >= 1 && strings.EqualFold(fields[0], "SYSTEM") {
		if len(fields) >= 2 {
			system = unquoteLiteral(fields[1])
		}
	}
	return name, public, system
}

func unquoteLiteral(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// splitDoctypeFields splits on whitespace but keeps quoted literals intact.
func splitDoctypeFields(s string) []string {
	var fields []string
	var cur strings.Builder
	var quote byte
	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			cur.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
			cur.WriteByte(c)
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return fields
}
