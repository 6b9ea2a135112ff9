package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuerySelectorAll(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<svg><g class="a"><rect class="a b"/></g><circle class="b"/></svg>`))
	require.Nil(t, err)

	sel, err := CompileSelector(".a")
	require.Nil(t, err)

	svg := doc.Root().FirstChild()
	matches := svg.QuerySelectorAll(sel)
	assert.Equal(t, 2, len(matches))
}

func TestMatchesRespectsDescendantContext(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<svg><g id="grp"><rect/></g></svg>`))
	require.Nil(t, err)

	sel, err := CompileSelector("#grp rect")
	require.Nil(t, err)

	svg := doc.Root().FirstChild()
	rect := svg.FirstChild().FirstChild()
	assert.True(t, rect.Matches(sel))

	sel2, err := CompileSelector("svg > rect")
	require.Nil(t, err)
	assert.False(t, rect.Matches(sel2))
}
