// Package path implements the path mini-language: parsing, geometric
// transforms, and serialisation of the SVG `d` attribute grammar. It is
// called by path-specific jobs whenever they need to open a `d` attribute
// for inspection or rewriting.
package path

// ID names a path command letter, independent of its argument values.
type ID uint8

const (
	MoveTo ID = iota
	MoveBy
	ClosePath
	LineTo
	LineBy
	HorizontalLineTo
	HorizontalLineBy
	VerticalLineTo
	VerticalLineBy
	CubicBezierTo
	CubicBezierBy
	SmoothBezierTo
	SmoothBezierBy
	QuadraticBezierTo
	QuadraticBezierBy
	SmoothQuadraticBezierTo
	SmoothQuadraticBezierBy
	ArcTo
	ArcBy
)

// NumArgs returns how many numeric arguments a command of this ID consumes.
func (id ID) NumArgs() int {
	switch id {
	case ClosePath:
		return 0
	case HorizontalLineTo, HorizontalLineBy, VerticalLineTo, VerticalLineBy:
		return 1
	case LineTo, LineBy, MoveTo, MoveBy, SmoothQuadraticBezierTo, SmoothQuadraticBezierBy:
		return 2
	case SmoothBezierTo, SmoothBezierBy, QuadraticBezierTo, QuadraticBezierBy:
		return 4
	case CubicBezierTo, CubicBezierBy:
		return 6
	case ArcTo, ArcBy:
		return 7
	default:
		return 0
	}
}

// Letter returns the command character used in path data for this ID.
func (id ID) Letter() byte {
	switch id {
	case MoveTo:
		return 'M'
	case MoveBy:
		return 'm'
	case ClosePath:
		return 'Z'
	case LineTo:
		return 'L'
	case LineBy:
		return 'l'
	case HorizontalLineTo:
		return 'H'
	case HorizontalLineBy:
		return 'h'
	case VerticalLineTo:
		return 'V'
	case VerticalLineBy:
		return 'v'
	case CubicBezierTo:
		return 'C'
	case CubicBezierBy:
		return 'c'
	case SmoothBezierTo:
		return 'S'
	case SmoothBezierBy:
		return 's'
	case QuadraticBezierTo:
		return 'Q'
	case QuadraticBezierBy:
		return 'q'
	case SmoothQuadraticBezierTo:
		return 'T'
	case SmoothQuadraticBezierBy:
		return 't'
	case ArcTo:
		return 'A'
	case ArcBy:
		return 'a'
	default:
		return 0
	}
}

// IDFromLetter returns the ID for a command letter, and whether it is a
// recognised one.
func IDFromLetter(c byte) (ID, bool) {
	switch c {
	case 'M':
		return MoveTo, true
	case 'm':
		return MoveBy, true
	case 'L':
		return LineTo, true
	case 'l':
		return LineBy, true
	case 'H':
		return HorizontalLineTo, true
	case 'h':
		return HorizontalLineBy, true
	case 'V':
		return VerticalLineTo, true
	case 'v':
		return VerticalLineBy, true
	case 'C':
		return CubicBezierTo, true
	case 'c':
		return CubicBezierBy, true
	case 'S':
		return SmoothBezierTo, true
	case 's':
		return SmoothBezierBy, true
	case 'Q':
		return QuadraticBezierTo, true
	case 'q':
		return QuadraticBezierBy, true
	case 'T':
		return SmoothQuadraticBezierTo, true
	case 't':
		return SmoothQuadraticBezierBy, true
	case 'A':
		return ArcTo, true
	case 'a':
		return ArcBy, true
	case 'Z', 'z':
		return ClosePath, true
	default:
		return 0, false
	}
}

// IsAbsolute reports whether the command moves to an absolute position
// rather than one relative to the current point.
func (id ID) IsAbsolute() bool {
	switch id {
	case MoveTo, LineTo, HorizontalLineTo, VerticalLineTo, CubicBezierTo,
		SmoothBezierTo, QuadraticBezierTo, SmoothQuadraticBezierTo, ArcTo:
		return true
	default:
		return false
	}
}

// relativeID and absoluteID swap a command's coordinate mode while keeping
// its shape (number and meaning of arguments).
func (id ID) relativeID() ID {
	switch id {
	case MoveTo:
		return MoveBy
	case LineTo:
		return LineBy
	case HorizontalLineTo:
		return HorizontalLineBy
	case VerticalLineTo:
		return VerticalLineBy
	case CubicBezierTo:
		return CubicBezierBy
	case SmoothBezierTo:
		return SmoothBezierBy
	case QuadraticBezierTo:
		return QuadraticBezierBy
	case SmoothQuadraticBezierTo:
		return SmoothQuadraticBezierBy
	case ArcTo:
		return ArcBy
	default:
		return id
	}
}

func (id ID) absoluteID() ID {
	switch id {
	case MoveBy:
		return MoveTo
	case LineBy:
		return LineTo
	case HorizontalLineBy:
		return HorizontalLineTo
	case VerticalLineBy:
		return VerticalLineTo
	case CubicBezierBy:
		return CubicBezierTo
	case SmoothBezierBy:
		return SmoothBezierTo
	case QuadraticBezierBy:
		return QuadraticBezierTo
	case SmoothQuadraticBezierBy:
		return SmoothQuadraticBezierTo
	case ArcBy:
		return ArcTo
	default:
		return id
	}
}

// NextImplicit returns the command expected to follow this one when a
// later token omits its command letter: M/m's trailing coordinate pairs
// are implicit L/l commands, every other command implicitly repeats itself.
func (id ID) NextImplicit() ID {
	switch id {
	case MoveTo:
		return LineTo
	case MoveBy:
		return LineBy
	default:
		return id
	}
}

// Command is one parsed path instruction. Implicit is true when the
// command letter was omitted in the source text because it repeats the
// previous command (or, for M/m's extra coordinate pairs, becomes L/l).
type Command struct {
	ID       ID
	Args     []float64
	Implicit bool
}

// Clone returns a deep copy so transforms can build a new path without
// aliasing the source's argument slices.
func (c Command) Clone() Command {
	args := make([]float64, len(c.Args))
	copy(args, c.Args)
	return Command{ID: c.ID, Args: args, Implicit: c.Implicit}
}

// Path is an ordered list of commands, the in-memory form of a `d`
// attribute. A Path cursor's current point is not stored on the path
// itself; call Positions to compute it alongside every command.
type Path []Command

// Clone returns a deep copy of p.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	for i, c := range p {
		out[i] = c.Clone()
	}
	return out
}
