package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanupIDsMinifiesReferencedID(t *testing.T) {
	doc := parseDoc(t, `<svg><defs><path id="my-gradient" d="M0 0"/></defs><use href="#my-gradient"/></svg>`)
	runJobOnce(t, doc, NewCleanupIDs(DefaultCleanupIDsOptions()))
	use := doc.Root().FirstChild().FirstChild().NextSibling()
	href, _ := use.Attr("href")
	assert.Equal(t, "#a", href)
	path := doc.Root().FirstChild().FirstChild().FirstChild()
	id, _ := path.Attr("id")
	assert.Equal(t, "a", id)
}

// TestCleanupIDsAssignsStableOrderForMultipleReferencedIDs guards against a
// regression where renaming iterated a map instead of document order,
// scrambling id assignment across runs (original_source assigns ids
// deterministically via an ordered traversal, not a hash table).
func TestCleanupIDsAssignsStableOrderForMultipleReferencedIDs(t *testing.T) {
	doc := parseDoc(t, `<svg><path id="first" d="M0 0"/><path id="second" d="M1 1"/><use href="#first"/><use href="#second"/></svg>`)
	runJobOnce(t, doc, NewCleanupIDs(DefaultCleanupIDsOptions()))
	first := doc.Root().FirstChild().FirstChild()
	second := first.NextSibling()
	firstID, _ := first.Attr("id")
	secondID, _ := second.Attr("id")
	assert.Equal(t, "a", firstID)
	assert.Equal(t, "b", secondID)
}

func TestCleanupIDsLeavesUnreferencedIDByDefault(t *testing.T) {
	doc := parseDoc(t, `<svg><path id="unused" d="M0 0"/></svg>`)
	runJobOnce(t, doc, NewCleanupIDs(DefaultCleanupIDsOptions()))
	path := doc.Root().FirstChild().FirstChild()
	assert.True(t, path.HasAttr("id"))
}

func TestCleanupIDsRemovesUnreferencedWhenAsked(t *testing.T) {
	doc := parseDoc(t, `<svg><path id="unused" d="M0 0"/></svg>`)
	runJobOnce(t, doc, NewCleanupIDs(CleanupIDsOptions{Remove: true}))
	path := doc.Root().FirstChild().FirstChild()
	assert.False(t, path.HasAttr("id"))
}

func TestPrefixIDsRewritesIDAndReference(t *testing.T) {
	doc := parseDoc(t, `<svg><path id="a" d="M0 0"/><use href="#a"/></svg>`)
	runJobOnce(t, doc, NewPrefixIDs(PrefixIDsOptions{Prefix: "pfx-"}))
	path := doc.Root().FirstChild().FirstChild()
	id, _ := path.Attr("id")
	assert.Equal(t, "pfx-a", id)
	use := path.NextSibling()
	href, _ := use.Attr("href")
	assert.Equal(t, "#pfx-a", href)
}

func TestRemoveUselessDefsDropsUnreferencedChild(t *testing.T) {
	doc := parseDoc(t, `<svg><defs><path id="unused" d="M0 0"/></defs></svg>`)
	runJobOnce(t, doc, NewRemoveUselessDefs())
	assert.Equal(t, `<svg><defs/></svg>`, serialized(doc))
}

func TestRemoveUselessDefsKeepsReferencedChild(t *testing.T) {
	doc := parseDoc(t, `<svg><defs><path id="used" d="M0 0"/></defs><use href="#used"/></svg>`)
	runJobOnce(t, doc, NewRemoveUselessDefs())
	assert.Equal(t, `<svg><defs><path id="used" d="M0 0"/></defs><use href="#used"/></svg>`, serialized(doc))
}

func TestCleanupXlinkNSRemovesRedundantDecl(t *testing.T) {
	doc := parseDoc(t, `<svg xmlns:xlink="http://www.w3.org/2000/svg"><g/></svg>`)
	runJobOnce(t, doc, NewCleanupXlinkNS())
	decls := doc.Root().FirstChild().NamespaceDecls()
	assert.NotContains(t, decls, "xlink")
}

func TestCleanupXlinkNSKeepsDeclWhenAttrUsesIt(t *testing.T) {
	doc := parseDoc(t, `<svg xmlns:xlink="http://www.w3.org/2000/svg"><use xlink:href="#a"/></svg>`)
	runJobOnce(t, doc, NewCleanupXlinkNS())
	svg := doc.Root().FirstChild()
	decls := svg.NamespaceDecls()
	assert.Contains(t, decls, "xlink")
}
