package path

import (
	"fmt"

	"github.com/tdewolff/strconv"
)

// ParseError reports that parsing stopped partway through the input. Path
// holds every command successfully parsed before the failure and Remaining
// holds the unparsed tail, so the original text can be reconstructed as
// Remaining prepended by the still-valid prefix's own re-serialisation.
type ParseError struct {
	Path      Path
	Remaining string
	Reason    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("path: parse error at %q: %s", e.Remaining, e.Reason)
}

// Parse reads a `d` attribute value into a Path. A malformed tail degrades
// gracefully: the commands parsed so far are returned inside a *ParseError
// alongside the unparsed remainder, never silently dropped.
func Parse(d string) (Path, error) {
	s := scanner{src: d}
	var list Path

	for {
		s.skipWhitespace()
		if s.atEnd() {
			return list, nil
		}
		if len(list) > 0 {
			s.skipByte(',')
			s.skipWhitespace()
		}

		id, implicit, ok := s.readCommandID(list)
		if !ok {
			return list, &ParseError{Path: list, Remaining: s.rest(), Reason: "expected a command letter"}
		}

		args, err := s.readArgs(id)
		if err != nil {
			return list, &ParseError{Path: list, Remaining: s.rest(), Reason: err.Error()}
		}
		list = append(list, Command{ID: id, Args: args, Implicit: implicit})
	}
}

type scanner struct {
	src string
	pos int
}

func (s *scanner) atEnd() bool  { return s.pos >= len(s.src) }
func (s *scanner) rest() string { return s.src[s.pos:] }

func (s *scanner) skipWhitespace() {
	for !s.atEnd() && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

func (s *scanner) skipByte(c byte) bool {
	if !s.atEnd() && s.src[s.pos] == c {
		s.pos++
		return true
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// readCommandID consumes an explicit command letter if present, otherwise
// falls back to the implicit command implied by the previous one (the
// list's last entry). An empty list with no explicit M/m is an error.
func (s *scanner) readCommandID(list Path) (ID, bool, bool) {
	if !s.atEnd() {
		if id, ok := IDFromLetter(s.src[s.pos]); ok {
			s.pos++
			return id, false, true
		}
	}
	if len(list) == 0 {
		return 0, false, false
	}
	prev := list[len(list)-1].ID
	return prev.NextImplicit(), true, true
}

func (s *scanner) readArgs(id ID) ([]float64, error) {
	n := id.NumArgs()
	if n == 0 {
		return nil, nil
	}
	args := make([]float64, 0, n)
	isArc := id == ArcTo || id == ArcBy
	for i := 0; i < n; i++ {
		// the large-arc and sweep flags (args 3 and 4 of an arc command)
		// are single '0'/'1' digits with no sign, decimal point, or
		// trailing exponent, and may abut the next number with no separator
		isFlag := isArc && (i == 3 || i == 4)
		var v float64
		var err error
		if isFlag {
			v, err = s.readFlag()
		} else {
			v, err = s.readNumber()
		}
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		s.skipSeparator()
	}
	return args, nil
}

func (s *scanner) skipSeparator() {
	s.skipWhitespace()
	s.skipByte(',')
	s.skipWhitespace()
}

func (s *scanner) readFlag() (float64, error) {
	if s.atEnd() {
		return 0, fmt.Errorf("expected arc flag, got end of input")
	}
	c := s.src[s.pos]
	if c != '0' && c != '1' {
		return 0, fmt.Errorf("expected arc flag '0' or '1', got %q", c)
	}
	s.pos++
	if c == '0' {
		return 0, nil
	}
	return 1, nil
}

// readNumber reads one CSS/SVG-grammar number: optional sign, digits with
// an optional decimal point (leading or trailing digits may be omitted),
// and an optional exponent. The next number may abut this one with no
// separator once a sign or '.' unambiguously starts it.
func (s *scanner) readNumber() (float64, error) {
	start := s.pos
	if !s.atEnd() && (s.src[s.pos] == '+' || s.src[s.pos] == '-') {
		s.pos++
	}
	sawDigit := false
	for !s.atEnd() && isDigit(s.src[s.pos]) {
		s.pos++
		sawDigit = true
	}
	if !s.atEnd() && s.src[s.pos] == '.' {
		s.pos++
		for !s.atEnd() && isDigit(s.src[s.pos]) {
			s.pos++
			sawDigit = true
		}
	}
	if !sawDigit {
		s.pos = start
		return 0, fmt.Errorf("expected a number")
	}
	if !s.atEnd() && (s.src[s.pos] == 'e' || s.src[s.pos] == 'E') {
		mark := s.pos
		s.pos++
		if !s.atEnd() && (s.src[s.pos] == '+' || s.src[s.pos] == '-') {
			s.pos++
		}
		expDigit := false
		for !s.atEnd() && isDigit(s.src[s.pos]) {
			s.pos++
			expDigit = true
		}
		if !expDigit {
			s.pos = mark
		}
	}
	b := []byte(s.src[start:s.pos])
	f, n := strconv.ParseFloat(b)
	if n != len(b) {
		return 0, fmt.Errorf("malformed number %q", s.src[start:s.pos])
	}
	return f, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
