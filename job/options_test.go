package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobNames(opts *Options) []string {
	names := make([]string, len(opts.Jobs()))
	for i, j := range opts.Jobs() {
		names[i] = j.Name()
	}
	return names
}

func TestDefaultEnablesOnlyDefaultEnabledJobsInFixedOrder(t *testing.T) {
	opts, err := Default()
	require.NoError(t, err)
	names := jobNames(opts)
	assert.Equal(t, "removeDoctype", names[0])
	assert.Equal(t, "sortDefsChildren", names[len(names)-1])
	for _, disabled := range []string{"removeRasterImages", "removeOffCanvasPath", "removeAttrs", "removeDimensions", "removeViewBox", "reusePaths", "prefixIDs"} {
		assert.NotContains(t, names, disabled)
	}
	assert.Contains(t, names, "cleanupIDs")
	assert.Contains(t, names, "sortAttrs")
}

func TestNoneHasNoJobs(t *testing.T) {
	opts := None()
	assert.Empty(t, opts.Jobs())
}

func TestExtendRejectsUnknownJobName(t *testing.T) {
	_, err := Extend(None(), map[string]any{"notAJob": true})
	assert.Error(t, err)
}

func TestExtendEnablesDisabledJobWithTrue(t *testing.T) {
	opts, err := Extend(None(), map[string]any{"prefixIDs": true})
	require.NoError(t, err)
	assert.Equal(t, []string{"prefixIDs"}, jobNames(opts))
}

func TestExtendDisablesDefaultJobWithFalse(t *testing.T) {
	base, err := Default()
	require.NoError(t, err)
	opts, err := Extend(base, map[string]any{"sortAttrs": false})
	require.NoError(t, err)
	assert.NotContains(t, jobNames(opts), "sortAttrs")
}

func TestExtendAppliesParamsOverlay(t *testing.T) {
	opts, err := Extend(None(), map[string]any{
		"cleanupNumericValues": map[string]any{"floatPrecision": float64(1)},
	})
	require.NoError(t, err)
	require.Len(t, opts.Jobs(), 1)
	cnv, ok := opts.Jobs()[0].(*CleanupNumericValues)
	require.True(t, ok)
	assert.Equal(t, 1, cnv.Options.FloatPrecision)
}

func TestConvertSvgoConfigNilReturnsDefault(t *testing.T) {
	def, err := Default()
	require.NoError(t, err)
	opts, err := ConvertSvgoConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, jobNames(def), jobNames(opts))
}

func TestConvertSvgoConfigEmptyReturnsNone(t *testing.T) {
	opts, err := ConvertSvgoConfig([]SvgoPlugin{})
	require.NoError(t, err)
	assert.Empty(t, opts.Jobs())
}

func TestConvertSvgoConfigTranslatesDivergentNames(t *testing.T) {
	opts, err := ConvertSvgoConfig([]SvgoPlugin{{Name: "cleanupIds"}, {Name: "prefixIds", Params: map[string]any{"prefix": "x-"}}})
	require.NoError(t, err)
	names := jobNames(opts)
	assert.Contains(t, names, "cleanupIDs")
	assert.Contains(t, names, "prefixIDs")
}

// TestConvertSvgoConfigInlineStylesMatchesFixedDefaults pins S5: enabling
// inlineStyles with no params through the SVGO-config path must resolve to
// exactly DefaultInlineStylesOptions, and no other job.
func TestConvertSvgoConfigInlineStylesMatchesFixedDefaults(t *testing.T) {
	opts, err := ConvertSvgoConfig([]SvgoPlugin{{Name: "inlineStyles"}})
	require.NoError(t, err)
	require.Len(t, opts.Jobs(), 1)
	is, ok := opts.Jobs()[0].(*InlineStyles)
	require.True(t, ok)
	assert.Equal(t, DefaultInlineStylesOptions(), is.Options)
}
