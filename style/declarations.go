package style

import (
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ShortenValue lexes a single CSS declaration value and rewrites numbers,
// dimensions, and colors (keyword, hex, and simple rgb()/rgba()) to their
// shortest equivalent form, joining tokens back with minimal whitespace.
func ShortenValue(value string) string {
	l := css.NewLexer(parse.NewInputString(value))
	var b strings.Builder
	var pending []token

	flushRGB := func() bool {
		if hex, ok := tryRGBFunction(pending); ok {
			b.WriteString(sep(b, hex))
			b.WriteString(hex)
			pending = nil
			return true
		}
		return false
	}

	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			break
		}
		lexeme := string(data)

		if tt == css.FunctionToken && (strings.EqualFold(lexeme, "rgb(") || strings.EqualFold(lexeme, "rgba(")) {
			pending = []token{{tt, lexeme}}
			continue
		}
		if pending != nil {
			pending = append(pending, token{tt, lexeme})
			if tt == css.RightParenthesisToken {
				if !flushRGB() {
					for _, p := range pending {
						b.WriteString(sep(b, p.lexeme))
						b.WriteString(p.lexeme)
					}
					pending = nil
				}
			}
			continue
		}

		switch tt {
		case css.WhitespaceToken, css.CommentToken:
			continue
		case css.NumberToken, css.DimensionToken, css.PercentageToken:
			out := shortenNumericToken(lexeme)
			b.WriteString(sep(b, out))
			b.WriteString(out)
		case css.IdentToken:
			out := lexeme
			if hex, ok := ShortenColorKeyword(lexeme); ok {
				out = "#" + hex
			}
			b.WriteString(sep(b, out))
			b.WriteString(out)
		case css.HashToken:
			out := ShortenColorHex(lexeme)
			b.WriteString(sep(b, out))
			b.WriteString(out)
		default:
			b.WriteString(sep(b, lexeme))
			b.WriteString(lexeme)
		}
	}
	if pending != nil {
		for _, p := range pending {
			b.WriteString(sep(b, p.lexeme))
			b.WriteString(p.lexeme)
		}
	}
	return b.String()
}

type token struct {
	tt     css.TokenType
	lexeme string
}

// sep decides whether a space must precede the next lexeme to keep the
// stream re-tokenisable, mirroring the adjacency rules a CSS serialiser
// must respect (no merging two idents, or a number into a following ident).
func sep(b strings.Builder, next string) string {
	cur := b.String()
	if cur == "" || next == "" {
		return ""
	}
	last := cur[len(cur)-1]
	if isIdentByte(last) && isIdentByte(next[0]) {
		return " "
	}
	return ""
}

func isIdentByte(c byte) bool {
	return c == '-' || c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

func shortenNumericToken(lexeme string) string {
	num, dim := splitNumberToken([]byte(lexeme))
	return ShortenDimension(string(num), string(dim))
}

// splitNumberToken splits a CSS number/percentage/dimension token's raw
// bytes into its numeric prefix and trailing unit (e.g. "%" or "px").
func splitNumberToken(b []byte) ([]byte, []byte) {
	i := 0
	if i < len(b) && (b[i] == '+' || b[i] == '-') {
		i++
	}
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
	}
	if i < len(b) && b[i] == '.' {
		i++
		for i < len(b) && b[i] >= '0' && b[i] <= '9' {
			i++
		}
	}
	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		j := i + 1
		if j < len(b) && (b[j] == '+' || b[j] == '-') {
			j++
		}
		k := j
		for k < len(b) && b[k] >= '0' && b[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}
	return b[:i], b[i:]
}

// tryRGBFunction recognises `rgb( N , N , N )` and `rgba( N , N , N , 1 )`
// argument sequences built from bare numbers or percentages and reduces
// them to a hex color; it refuses anything with extra tokens so that
// var()-based or calc()-based channel values pass through untouched.
func tryRGBFunction(toks []token) (string, bool) {
	if len(toks) < 2 {
		return "", false
	}
	name := strings.ToLower(strings.TrimSuffix(toks[0].lexeme, "("))
	if name != "rgb" && name != "rgba" {
		return "", false
	}
	var channels []uint8
	var alpha = 1.0
	argIdx := 0
	for i := 1; i < len(toks); i++ {
		t := toks[i]
		switch t.tt {
		case css.CommaToken, css.WhitespaceToken:
			continue
		case css.RightParenthesisToken:
			i = len(toks)
		case css.NumberToken, css.PercentageToken:
			v, pct, err := parseChannel(t.lexeme)
			if err != nil {
				return "", false
			}
			if argIdx < 3 {
				if pct {
					v = v / 100.0 * 255.0
				}
				if v < 0 {
					v = 0
				} else if v > 255 {
					v = 255
				}
				channels = append(channels, uint8(v+0.5))
			} else if argIdx == 3 {
				alpha = v
			}
			argIdx++
		default:
			return "", false
		}
	}
	if len(channels) != 3 || (name == "rgb" && argIdx != 3) || (name == "rgba" && argIdx != 4) {
		return "", false
	}
	if alpha < 1.0-epsilon {
		return "", false
	}
	return RGBToHex(channels[0], channels[1], channels[2]), true
}

func parseChannel(lexeme string) (float64, bool, error) {
	if strings.HasSuffix(lexeme, "%") {
		v, err := strconv.ParseFloat(lexeme[:len(lexeme)-1], 64)
		return v, true, err
	}
	v, err := strconv.ParseFloat(lexeme, 64)
	return v, false, err
}
