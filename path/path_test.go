package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExplicitCommands(t *testing.T) {
	p, err := Parse("M 10 10 L 20 20 Z")
	require.Nil(t, err)
	require.Equal(t, 3, len(p))
	assert.Equal(t, MoveTo, p[0].ID)
	assert.Equal(t, []float64{10, 10}, p[0].Args)
	assert.Equal(t, LineTo, p[1].ID)
	assert.Equal(t, ClosePath, p[2].ID)
}

func TestParseImplicitRepetition(t *testing.T) {
	p, err := Parse("M0 0 L10 10 20 20")
	require.Nil(t, err)
	require.Equal(t, 3, len(p))
	assert.Equal(t, LineTo, p[2].ID)
	assert.True(t, p[2].Implicit)
	assert.Equal(t, []float64{20, 20}, p[2].Args)
}

func TestParseImplicitMoveBecomesLine(t *testing.T) {
	p, err := Parse("m0 0 10 10")
	require.Nil(t, err)
	require.Equal(t, 2, len(p))
	assert.Equal(t, LineBy, p[1].ID)
}

func TestParseDegradesOnError(t *testing.T) {
	p, err := Parse("M 10 10 L 20 20 X 5 5")
	require.NotNil(t, err)
	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, 2, len(perr.Path))
	assert.Equal(t, "X 5 5", perr.Remaining)
}

func TestParseScientificAndSignedNumbers(t *testing.T) {
	p, err := Parse("M1e2-3.5.5.5")
	require.Nil(t, err)
	require.Equal(t, 2, len(p))
	assert.InDelta(t, 100.0, p[0].Args[0], 1e-9)
	assert.InDelta(t, -3.5, p[0].Args[1], 1e-9)
}

func TestS6RemoveUselessSegment(t *testing.T) {
	p, err := Parse("M 10 10 L 10 10 Z")
	require.Nil(t, err)
	p = RemoveZeroLengthSegments(p, 1e-9)
	require.Equal(t, 2, len(p))
	assert.Equal(t, MoveTo, p[0].ID)
	assert.Equal(t, ClosePath, p[1].ID)
}

func TestToAbsoluteThenRelativeRoundTrips(t *testing.T) {
	p, err := Parse("M10,50C20,30 40,50 60,70C10,20 30,40 50,60")
	require.Nil(t, err)
	rel := ToRelative(p)
	abs := ToAbsolute(rel)

	origAbs := ToAbsolute(p)
	require.Equal(t, len(origAbs), len(abs))
	for i := range origAbs {
		assert.InDeltaSlice(t, origAbs[i].Args, abs[i].Args, 1e-9)
	}
}

func TestCollapseConsecutiveMoveTo(t *testing.T) {
	p, err := Parse("M 0 0 M 5 5 M 10 10 L 1 1")
	require.Nil(t, err)
	p = CollapseConsecutiveMoveTo(p)
	require.Equal(t, 2, len(p))
	assert.Equal(t, []float64{10, 10}, p[0].Args)
}

func TestSimplifyDegenerateCurveToLine(t *testing.T) {
	p, err := Parse("M0 0 C5 0 10 0 15 0")
	require.Nil(t, err)
	p = SimplifyDegenerateCurves(p, 1e-6)
	require.Equal(t, 2, len(p))
	assert.Equal(t, LineTo, p[1].ID)
	assert.Equal(t, []float64{15, 0}, p[1].Args)
}

func TestArcToCubicPreservesEndpoint(t *testing.T) {
	segs := ArcToCubic(Point{0, 0}, [7]float64{50, 50, 0, 0, 1, 100, 0})
	require.True(t, len(segs) >= 1)
	last := segs[len(segs)-1]
	var x, y float64
	for _, s := range segs {
		x += s[4]
		y += s[5]
	}
	assert.InDelta(t, 100.0, x, 1e-6)
	assert.InDelta(t, 0.0, y, 1e-6)
	_ = last
}

func TestSerializeOmitsRepeatedLetter(t *testing.T) {
	p := Path{
		{ID: MoveTo, Args: []float64{0, 0}},
		{ID: LineTo, Args: []float64{1, 1}},
		{ID: LineTo, Args: []float64{2, 2}},
	}
	out := Serialize(p, SerializeOptions{Precision: 2})
	assert.Equal(t, "M0 0L1 1 2 2", out)
}

func TestFormatNumberStripsZeros(t *testing.T) {
	assert.Equal(t, "0", formatNumber(0, 2))
	assert.Equal(t, ".5", formatNumber(0.5, 2))
	assert.Equal(t, "-.5", formatNumber(-0.5, 2))
	assert.Equal(t, "1", formatNumber(1.0, 2))
}
