package job

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tdewolff/svgo/dom"
	"github.com/tdewolff/svgo/visit"
)

func parseDoc(t *testing.T, src string) *dom.Document {
	t.Helper()
	doc, err := dom.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func runJobOnce(t *testing.T, doc *dom.Document, j Job) {
	t.Helper()
	require.NoError(t, visit.Walk(doc, j.Visitor()))
}

func serialized(doc *dom.Document) string {
	return dom.Serialize(doc)
}
