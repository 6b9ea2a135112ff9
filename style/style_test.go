package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortenNumber(t *testing.T) {
	assert.Equal(t, "0", ShortenNumber("0.0000001"))
	assert.Equal(t, "1", ShortenNumber("+1"))
	assert.Equal(t, "-1", ShortenNumber("-01"))
	assert.Equal(t, ".5", ShortenNumber("0.50"))
	assert.Equal(t, "1", ShortenNumber("1.0"))
}

func TestShortenDimension(t *testing.T) {
	assert.Equal(t, "0", ShortenDimension("0", "em"))
	assert.Equal(t, "40em", ShortenDimension("40", "EM"))
	assert.Equal(t, "0%", ShortenDimension("0", "%"))
}

func TestShortenColorKeyword(t *testing.T) {
	hex, ok := ShortenColorKeyword("black")
	assert.True(t, ok)
	assert.Equal(t, "000", hex)

	_, ok = ShortenColorKeyword("red")
	assert.False(t, ok)
}

func TestShortenColorHex(t *testing.T) {
	assert.Equal(t, "red", ShortenColorHex("#ff0000"))
	assert.Equal(t, "#000", ShortenColorHex("#000000"))
	assert.Equal(t, "#fff", ShortenColorHex("#ffffff"))
}

func TestShortenValueColorsAndNumbers(t *testing.T) {
	assert.Equal(t, "#fff", ShortenValue("rgb(255,255,255)"))
	assert.Equal(t, "#fff", ShortenValue("rgb(100%,100%,100%)"))
	assert.Equal(t, "red", ShortenValue("rgba(255,0,0,1)"))
	assert.Equal(t, "#000", ShortenValue("black"))
	assert.Equal(t, "0", ShortenValue("0em"))
}
