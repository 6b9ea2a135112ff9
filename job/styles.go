package job

import (
	"sort"
	"strings"

	"github.com/tdewolff/svgo/dom"
	"github.com/tdewolff/svgo/style"
	"github.com/tdewolff/svgo/visit"
)

// cssRule is one selector/declaration-block pair extracted from a <style>
// element's text content, optionally scoped to a media query.
type cssRule struct {
	mq         string
	selector   string
	pseudo     string
	decls      string
}

// splitCSSRules is a small rule-level splitter over top-level and
// single-level-nested (@media) brace blocks; it does not attempt to
// tokenise selectors or values, leaving that to style.ShortenValue and
// dom.CompileSelector downstream. Comments are stripped first.
func splitCSSRules(text string) []cssRule {
	text = stripCSSComments(text)
	var rules []cssRule
	i := 0
	n := len(text)
	parseBlock := func(mq string, src string) {
		j := 0
		for j < len(src) {
			open := strings.IndexByte(src[j:], '{')
			if open < 0 {
				break
			}
			open += j
			close := strings.IndexByte(src[open:], '}')
			if close < 0 {
				break
			}
			close += open
			selectors := strings.Split(src[j:open], ",")
			decls := strings.TrimSpace(src[open+1 : close])
			for _, sel := range selectors {
				sel, pseudo := splitPseudo(strings.TrimSpace(sel))
				if sel != "" {
					rules = append(rules, cssRule{mq: mq, selector: sel, pseudo: pseudo, decls: decls})
				}
			}
			j = close + 1
		}
	}
	for i < n {
		at := strings.Index(text[i:], "@media")
		if at < 0 {
			parseBlock("", text[i:])
			break
		}
		at += i
		parseBlock("", text[i:at])
		open := strings.IndexByte(text[at:], '{')
		if open < 0 {
			break
		}
		open += at
		mq := strings.TrimSpace(text[at+len("@media") : open])
		depth := 1
		k := open + 1
		for k < n && depth > 0 {
			switch text[k] {
			case '{':
				depth++
			case '}':
				depth--
			}
			k++
		}
		parseBlock(mq, text[open+1:k-1])
		i = k
	}
	return rules
}

func stripCSSComments(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		if i+1 < len(s) && s[i] == '/' && s[i+1] == '*' {
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				break
			}
			i += end + 4
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func splitPseudo(sel string) (base, pseudo string) {
	if idx := strings.Index(sel, "::"); idx >= 0 {
		return sel[:idx], sel[idx:]
	}
	if idx := strings.LastIndex(sel, ":"); idx >= 0 && idx > strings.LastIndex(sel, " ") {
		return sel[:idx], sel[idx:]
	}
	return sel, ""
}

// InlineStylesOptions mirrors SVGO's own plugin of the same name; S5 fixes
// its default shape exactly.
type InlineStylesOptions struct {
	OnlyMatchedOnce       bool
	RemoveMatchedSelectors bool
	UseMqs                []string
	UsePseudos            []string
}

func DefaultInlineStylesOptions() InlineStylesOptions {
	return InlineStylesOptions{
		OnlyMatchedOnce:        true,
		RemoveMatchedSelectors: true,
		UseMqs:                 []string{"", "screen"},
		UsePseudos:             []string{""},
	}
}

// InlineStyles merges <style> rules into the presentation or style
// attribute of every element they match, then optionally deletes the
// selectors it successfully inlined.
type InlineStyles struct {
	visit.BaseVisitor
	Options InlineStylesOptions
}

func NewInlineStyles(opts InlineStylesOptions) *InlineStyles {
	return &InlineStyles{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapStyles).With(visit.CapAttributes), Ord: visit.PreOnly}, Options: opts}
}

func (j *InlineStyles) Name() string          { return "inlineStyles" }
func (j *InlineStyles) Visitor() visit.Visitor { return j }

func (j *InlineStyles) allowedMq(mq string) bool {
	for _, m := range j.Options.UseMqs {
		if m == mq {
			return true
		}
	}
	return false
}

func (j *InlineStyles) allowedPseudo(pseudo string) bool {
	for _, p := range j.Options.UsePseudos {
		if p == pseudo {
			return true
		}
	}
	return false
}

func (j *InlineStyles) StartDocument(doc *dom.Document) error {
	var styleNodes []dom.Node
	walkAll(doc.Root(), func(n dom.Node) {
		if n.Kind() == dom.KindElement && n.LocalName() == "style" {
			styleNodes = append(styleNodes, n)
		}
	})
	for _, sn := range styleNodes {
		text := styleText(sn)
		rules := splitCSSRules(text)
		var remaining []cssRule
		for _, rule := range rules {
			if !j.allowedMq(rule.mq) || !j.allowedPseudo(rule.pseudo) {
				remaining = append(remaining, rule)
				continue
			}
			sel, err := dom.CompileSelector(rule.selector)
			if err != nil {
				remaining = append(remaining, rule)
				continue
			}
			matches := doc.Root().QuerySelectorAll(sel)
			if j.Options.OnlyMatchedOnce && len(matches) != 1 {
				remaining = append(remaining, rule)
				continue
			}
			if len(matches) == 0 {
				remaining = append(remaining, rule)
				continue
			}
			decls := dom.ParseDeclarations(rule.decls)
			for _, m := range matches {
				mergeDecls(m, decls)
			}
			if !j.Options.RemoveMatchedSelectors {
				remaining = append(remaining, rule)
			}
		}
		setStyleText(sn, renderRules(remaining))
		if strings.TrimSpace(styleText(sn)) == "" {
			sn.Remove()
		}
	}
	return nil
}

func mergeDecls(n dom.Node, decls map[string]string) {
	existing := dom.ParseDeclarations(n.AttrOr("style", ""))
	for k, v := range decls {
		if _, has := existing[k]; !has {
			existing[k] = v
		}
	}
	if len(existing) == 0 {
		return
	}
	n.SetAttr("style", dom.SerializeDeclarations(existing))
}

func renderRules(rules []cssRule) string {
	byMq := map[string][]cssRule{}
	var order []string
	for _, r := range rules {
		if _, ok := byMq[r.mq]; !ok {
			order = append(order, r.mq)
		}
		byMq[r.mq] = append(byMq[r.mq], r)
	}
	var b strings.Builder
	for _, mq := range order {
		inMedia := mq != ""
		if inMedia {
			b.WriteString("@media " + mq + "{")
		}
		for _, r := range byMq[mq] {
			b.WriteString(r.selector + r.pseudo + "{" + r.decls + "}")
		}
		if inMedia {
			b.WriteString("}")
		}
	}
	return b.String()
}

func styleText(styleElem dom.Node) string {
	var b strings.Builder
	for c := styleElem.FirstChild(); c.Valid(); c = c.NextSibling() {
		if c.Kind() == dom.KindText || c.Kind() == dom.KindCDATA {
			b.WriteString(c.TextData())
		}
	}
	return b.String()
}

func setStyleText(styleElem dom.Node, text string) {
	for c := styleElem.FirstChild(); c.Valid(); {
		next := c.NextSibling()
		c.Remove()
		c = next
	}
	if text != "" {
		styleElem.AppendChild(styleElem.Document().NewText(text))
	}
}

// ConvertStyleToAttrsOptions picks the merge direction: "toAttrs" moves
// style declarations into presentation attributes, "toStyle" moves
// presentation attributes into style, and "auto" moves a style declaration
// into an attribute only when the attribute form is no longer; "auto"
// never moves attributes into style.
type ConvertStyleToAttrsOptions struct {
	Direction string // "auto" (default), "toAttrs", "toStyle"
}

func DefaultConvertStyleToAttrsOptions() ConvertStyleToAttrsOptions {
	return ConvertStyleToAttrsOptions{Direction: "auto"}
}

// ConvertStyleToAttrs rewrites presentation properties between their
// attribute form and their style-declaration form, in the direction
// Options.Direction selects.
type ConvertStyleToAttrs struct {
	visit.BaseVisitor
	Options ConvertStyleToAttrsOptions
}

func NewConvertStyleToAttrs(opts ConvertStyleToAttrsOptions) *ConvertStyleToAttrs {
	return &ConvertStyleToAttrs{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapAttributes).With(visit.CapStyles), Ord: visit.PreOnly}, Options: opts}
}

func (j *ConvertStyleToAttrs) Name() string          { return "convertStyleToAttrs" }
func (j *ConvertStyleToAttrs) Visitor() visit.Visitor { return j }

func (j *ConvertStyleToAttrs) EnterElement(e dom.Node) (visit.Action, error) {
	styleVal, hasStyle := e.Attr("style")
	decls := dom.ParseDeclarations(styleVal)

	switch j.Options.Direction {
	case "toAttrs":
		for k, v := range decls {
			e.SetAttr(k, v)
		}
		e.RemoveAttr("style")
		return visit.ContinueAction(), nil
	case "toStyle":
		merged := map[string]string{}
		for k, v := range decls {
			merged[k] = v
		}
		for _, attr := range e.Attrs() {
			if dom.PresentationAttrs[attr.Local] && attr.Prefix == "" {
				merged[attr.Local] = attr.Value
				e.RemoveAttr(attr.Name())
			}
		}
		if len(merged) > 0 {
			e.SetAttr("style", dom.SerializeDeclarations(merged))
		}
		return visit.ContinueAction(), nil
	}

	if !hasStyle {
		return visit.ContinueAction(), nil
	}
	asAttrsLen, asStyleLen := 0, len(dom.SerializeDeclarations(decls))+len(`style=""`)
	for k, v := range decls {
		asAttrsLen += len(k) + len(v) + len(`=""`) + 1
	}
	if asAttrsLen <= asStyleLen {
		for k, v := range decls {
			if !e.HasAttr(k) {
				e.SetAttr(k, v)
			}
		}
		e.RemoveAttr("style")
	}
	return visit.ContinueAction(), nil
}

// MinifyStylesOptions configures the <style>-text shortening pass.
type MinifyStylesOptions struct {
	ShortenColors bool
	ShortenValues bool
}

func DefaultMinifyStylesOptions() MinifyStylesOptions {
	return MinifyStylesOptions{ShortenColors: true, ShortenValues: true}
}

// MinifyStyles shortens colour literals and numeric values inside every
// <style> element's rule declarations, keeping one declaration per property
// within a rule (the last one given) and writing them sorted by property
// name.
type MinifyStyles struct {
	visit.BaseVisitor
	Options MinifyStylesOptions
}

func NewMinifyStyles(opts MinifyStylesOptions) *MinifyStyles {
	return &MinifyStyles{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapStyles), Ord: visit.PreOnly}, Options: opts}
}

func (j *MinifyStyles) Name() string          { return "minifyStyles" }
func (j *MinifyStyles) Visitor() visit.Visitor { return j }

func (j *MinifyStyles) EnterElement(e dom.Node) (visit.Action, error) {
	if e.LocalName() != "style" {
		return visit.ContinueAction(), nil
	}
	rules := splitCSSRules(styleText(e))
	for i, rule := range rules {
		decls := dom.ParseDeclarations(rule.decls)
		keys := make([]string, 0, len(decls))
		for k := range decls {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		for n, k := range keys {
			v := decls[k]
			if j.Options.ShortenValues || j.Options.ShortenColors {
				v = style.ShortenValue(v)
			}
			if n > 0 {
				b.WriteString(";")
			}
			b.WriteString(k + ":" + v)
		}
		rules[i].decls = b.String()
	}
	setStyleText(e, renderRules(rules))
	return visit.ContinueAction(), nil
}
