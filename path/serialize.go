package path

import "strings"

// SerializeOptions controls the formatting choices available at
// serialisation time; a job chooses these, the serialiser always picks the
// shortest legal rendering given them.
type SerializeOptions struct {
	// Precision is the number of fractional digits each argument is
	// formatted with before trailing-zero stripping.
	Precision int
}

// DefaultSerializeOptions formats each argument with 6 fractional digits
// before trailing-zero stripping.
func DefaultSerializeOptions() SerializeOptions {
	return SerializeOptions{Precision: 6}
}

// Serialize renders p back into `d` attribute text, omitting a command
// letter when it repeats the previous one, and choosing no separator
// between numbers whenever the next one starts with a sign or a '.' that
// cannot be conflated with the previous token.
func Serialize(p Path, opts SerializeOptions) string {
	var b strings.Builder
	var prevID ID
	havePrev := false

	for _, cmd := range p {
		sameLetter := havePrev && cmd.ID == prevID
		if !sameLetter {
			b.WriteByte(cmd.ID.Letter())
		}
		writeArgs(&b, cmd, opts.Precision, !sameLetter)
		prevID = cmd.ID
		havePrev = true
	}
	return b.String()
}

func writeArgs(b *strings.Builder, cmd Command, precision int, afterLetter bool) {
	isArc := cmd.ID == ArcTo || cmd.ID == ArcBy
	prevEndedInDigit := !afterLetter
	prevAllowsAbut := afterLetter
	for i, v := range cmd.Args {
		var s string
		if isArc && (i == 3 || i == 4) {
			if v != 0 {
				s = "1"
			} else {
				s = "0"
			}
		} else {
			s = formatNumber(v, precision)
		}
		if i == 0 && afterLetter {
			b.WriteString(s)
		} else if needsSeparator(prevEndedInDigit, prevAllowsAbut, s) {
			b.WriteByte(' ')
			b.WriteString(s)
		} else {
			b.WriteString(s)
		}
		prevEndedInDigit = true
		prevAllowsAbut = !strings.ContainsAny(s, ".eE")
	}
}

// needsSeparator decides whether a space must precede the next number so
// that re-parsing cannot merge it with the previous token: a leading sign
// or digit always can abut a non-digit-ending token, but two digit runs,
// or a bare '.' following a token that itself contained a '.', need a
// space to stay unambiguous.
func needsSeparator(prevEndedInDigit, prevAllowsAbut bool, next string) bool {
	if next == "" {
		return false
	}
	c := next[0]
	if c == '-' {
		return false
	}
	if c == '.' {
		return prevEndedInDigit && !prevAllowsAbut
	}
	return prevEndedInDigit
}
