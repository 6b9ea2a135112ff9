package path

// Point is a location in the path's coordinate space.
type Point struct{ X, Y float64 }

// Position pairs a command with the cursor position before and after it,
// tracked by walking the path in document order.
type Position struct {
	Command Command
	Start   Point
	End     Point
}

// Positions walks p once, computing the cursor position before and after
// every command. ClosePath resets the cursor to the current subpath start.
func Positions(p Path) []Position {
	out := make([]Position, len(p))
	var cursor, start Point
	for i, cmd := range p {
		base := cursor
		switch cmd.ID {
		case MoveTo:
			cursor = Point{cmd.Args[0], cmd.Args[1]}
			start = cursor
		case MoveBy:
			cursor = Point{cursor.X + cmd.Args[0], cursor.Y + cmd.Args[1]}
			start = cursor
		case LineTo:
			cursor = Point{cmd.Args[0], cmd.Args[1]}
		case LineBy:
			cursor = Point{cursor.X + cmd.Args[0], cursor.Y + cmd.Args[1]}
		case HorizontalLineTo:
			cursor = Point{cmd.Args[0], cursor.Y}
		case HorizontalLineBy:
			cursor = Point{cursor.X + cmd.Args[0], cursor.Y}
		case VerticalLineTo:
			cursor = Point{cursor.X, cmd.Args[0]}
		case VerticalLineBy:
			cursor = Point{cursor.X, cursor.Y + cmd.Args[0]}
		case CubicBezierTo:
			cursor = Point{cmd.Args[4], cmd.Args[5]}
		case CubicBezierBy:
			cursor = Point{cursor.X + cmd.Args[4], cursor.Y + cmd.Args[5]}
		case SmoothBezierTo, QuadraticBezierTo:
			cursor = Point{cmd.Args[2], cmd.Args[3]}
		case SmoothBezierBy, QuadraticBezierBy:
			cursor = Point{cursor.X + cmd.Args[2], cursor.Y + cmd.Args[3]}
		case SmoothQuadraticBezierTo:
			cursor = Point{cmd.Args[0], cmd.Args[1]}
		case SmoothQuadraticBezierBy:
			cursor = Point{cursor.X + cmd.Args[0], cursor.Y + cmd.Args[1]}
		case ArcTo:
			cursor = Point{cmd.Args[5], cmd.Args[6]}
		case ArcBy:
			cursor = Point{cursor.X + cmd.Args[5], cursor.Y + cmd.Args[6]}
		case ClosePath:
			cursor = start
		}
		out[i] = Position{Command: cmd, Start: base, End: cursor}
	}
	return out
}

// ToAbsolute rewrites every relative command in p to its absolute
// equivalent, preserving shape (the M/m at index 0 always stays absolute).
func ToAbsolute(p Path) Path {
	out := make(Path, len(p))
	var cursor, start Point
	for i, cmd := range p {
		out[i] = toAbsoluteCommand(cmd, &start, &cursor)
	}
	return out
}

func toAbsoluteCommand(cmd Command, start, cursor *Point) Command {
	a := cmd.Args
	id := cmd.ID
	switch id {
	case MoveTo:
		*cursor = Point{a[0], a[1]}
		*start = *cursor
		return Command{ID: MoveTo, Args: []float64{a[0], a[1]}}
	case MoveBy:
		cursor.X += a[0]
		cursor.Y += a[1]
		*start = *cursor
		return Command{ID: MoveTo, Args: []float64{cursor.X, cursor.Y}}
	case LineTo:
		*cursor = Point{a[0], a[1]}
		return Command{ID: LineTo, Args: []float64{a[0], a[1]}}
	case LineBy:
		cursor.X += a[0]
		cursor.Y += a[1]
		return Command{ID: LineTo, Args: []float64{cursor.X, cursor.Y}}
	case HorizontalLineTo:
		cursor.X = a[0]
		return Command{ID: HorizontalLineTo, Args: []float64{a[0]}}
	case HorizontalLineBy:
		cursor.X += a[0]
		return Command{ID: HorizontalLineTo, Args: []float64{cursor.X}}
	case VerticalLineTo:
		cursor.Y = a[0]
		return Command{ID: VerticalLineTo, Args: []float64{a[0]}}
	case VerticalLineBy:
		cursor.Y += a[0]
		return Command{ID: VerticalLineTo, Args: []float64{cursor.Y}}
	case CubicBezierTo:
		*cursor = Point{a[4], a[5]}
		return Command{ID: CubicBezierTo, Args: append([]float64{}, a...)}
	case CubicBezierBy:
		x1, y1 := cursor.X+a[0], cursor.Y+a[1]
		x2, y2 := cursor.X+a[2], cursor.Y+a[3]
		cursor.X += a[4]
		cursor.Y += a[5]
		return Command{ID: CubicBezierTo, Args: []float64{x1, y1, x2, y2, cursor.X, cursor.Y}}
	case SmoothBezierTo:
		*cursor = Point{a[2], a[3]}
		return Command{ID: SmoothBezierTo, Args: append([]float64{}, a...)}
	case SmoothBezierBy:
		x2, y2 := cursor.X+a[0], cursor.Y+a[1]
		cursor.X += a[2]
		cursor.Y += a[3]
		return Command{ID: SmoothBezierTo, Args: []float64{x2, y2, cursor.X, cursor.Y}}
	case QuadraticBezierTo:
		*cursor = Point{a[2], a[3]}
		return Command{ID: QuadraticBezierTo, Args: append([]float64{}, a...)}
	case QuadraticBezierBy:
		x1, y1 := cursor.X+a[0], cursor.Y+a[1]
		cursor.X += a[2]
		cursor.Y += a[3]
		return Command{ID: QuadraticBezierTo, Args: []float64{x1, y1, cursor.X, cursor.Y}}
	case SmoothQuadraticBezierTo:
		*cursor = Point{a[0], a[1]}
		return Command{ID: SmoothQuadraticBezierTo, Args: []float64{a[0], a[1]}}
	case SmoothQuadraticBezierBy:
		cursor.X += a[0]
		cursor.Y += a[1]
		return Command{ID: SmoothQuadraticBezierTo, Args: []float64{cursor.X, cursor.Y}}
	case ArcTo:
		*cursor = Point{a[5], a[6]}
		return Command{ID: ArcTo, Args: append([]float64{}, a...)}
	case ArcBy:
		rest := append([]float64{}, a[:5]...)
		cursor.X += a[5]
		cursor.Y += a[6]
		return Command{ID: ArcTo, Args: append(rest, cursor.X, cursor.Y)}
	case ClosePath:
		*cursor = *start
		return Command{ID: ClosePath}
	default:
		return cmd
	}
}

// ToRelative rewrites every absolute command in p (other than the initial
// M, which SVG requires to stay absolute) to its relative equivalent.
func ToRelative(p Path) Path {
	out := make(Path, len(p))
	var cursor, start Point
	for i, cmd := range p {
		out[i] = toRelativeCommand(cmd, &start, &cursor, i == 0)
	}
	return out
}

func toRelativeCommand(cmd Command, start, cursor *Point, isFirst bool) Command {
	a := cmd.Args
	base := *cursor
	switch cmd.ID {
	case MoveBy:
		cursor.X += a[0]
		cursor.Y += a[1]
		*start = *cursor
		return Command{ID: MoveBy, Args: []float64{a[0], a[1]}}
	case MoveTo:
		dx, dy := a[0]-base.X, a[1]-base.Y
		cursor.X += dx
		cursor.Y += dy
		*start = *cursor
		if isFirst {
			return Command{ID: MoveTo, Args: []float64{dx, dy}}
		}
		return Command{ID: MoveBy, Args: []float64{dx, dy}}
	case LineBy:
		cursor.X += a[0]
		cursor.Y += a[1]
		return Command{ID: LineBy, Args: []float64{a[0], a[1]}}
	case LineTo:
		dx, dy := a[0]-base.X, a[1]-base.Y
		cursor.X += dx
		cursor.Y += dy
		return Command{ID: LineBy, Args: []float64{dx, dy}}
	case HorizontalLineBy:
		cursor.X += a[0]
		return Command{ID: HorizontalLineBy, Args: []float64{a[0]}}
	case HorizontalLineTo:
		dx := a[0] - base.X
		cursor.X += dx
		return Command{ID: HorizontalLineBy, Args: []float64{dx}}
	case VerticalLineBy:
		cursor.Y += a[0]
		return Command{ID: VerticalLineBy, Args: []float64{a[0]}}
	case VerticalLineTo:
		dy := a[0] - base.Y
		cursor.Y += dy
		return Command{ID: VerticalLineBy, Args: []float64{dy}}
	case CubicBezierBy:
		cursor.X += a[4]
		cursor.Y += a[5]
		return Command{ID: CubicBezierBy, Args: append([]float64{}, a...)}
	case CubicBezierTo:
		d := []float64{a[0] - base.X, a[1] - base.Y, a[2] - base.X, a[3] - base.Y, a[4] - base.X, a[5] - base.Y}
		cursor.X += d[4]
		cursor.Y += d[5]
		return Command{ID: CubicBezierBy, Args: d}
	case SmoothBezierBy, QuadraticBezierBy:
		cursor.X += a[2]
		cursor.Y += a[3]
		return Command{ID: cmd.ID, Args: append([]float64{}, a...)}
	case SmoothBezierTo:
		d := []float64{a[0] - base.X, a[1] - base.Y, a[2] - base.X, a[3] - base.Y}
		cursor.X += d[2]
		cursor.Y += d[3]
		return Command{ID: SmoothBezierBy, Args: d}
	case QuadraticBezierTo:
		d := []float64{a[0] - base.X, a[1] - base.Y, a[2] - base.X, a[3] - base.Y}
		cursor.X += d[2]
		cursor.Y += d[3]
		return Command{ID: QuadraticBezierBy, Args: d}
	case SmoothQuadraticBezierBy:
		cursor.X += a[0]
		cursor.Y += a[1]
		return Command{ID: SmoothQuadraticBezierBy, Args: []float64{a[0], a[1]}}
	case SmoothQuadraticBezierTo:
		dx, dy := a[0]-base.X, a[1]-base.Y
		cursor.X += dx
		cursor.Y += dy
		return Command{ID: SmoothQuadraticBezierBy, Args: []float64{dx, dy}}
	case ArcBy:
		cursor.X += a[5]
		cursor.Y += a[6]
		return Command{ID: ArcBy, Args: append([]float64{}, a...)}
	case ArcTo:
		d := append([]float64{}, a[:5]...)
		d = append(d, a[5]-base.X, a[6]-base.Y)
		cursor.X += d[5]
		cursor.Y += d[6]
		return Command{ID: ArcBy, Args: d}
	case ClosePath:
		*cursor = *start
		return Command{ID: ClosePath}
	default:
		return cmd
	}
}

// absoluteEndpoint returns the cursor position after an already-absolute
// command; cursor is the position before it and start is the current
// subpath's start (what ClosePath returns to).
func absoluteEndpoint(cmd Command, cursor, start Point) Point {
	a := cmd.Args
	switch cmd.ID {
	case MoveTo, LineTo:
		return Point{a[0], a[1]}
	case HorizontalLineTo:
		return Point{a[0], cursor.Y}
	case VerticalLineTo:
		return Point{cursor.X, a[0]}
	case CubicBezierTo:
		return Point{a[4], a[5]}
	case SmoothBezierTo, QuadraticBezierTo:
		return Point{a[2], a[3]}
	case SmoothQuadraticBezierTo:
		return Point{a[0], a[1]}
	case ArcTo:
		return Point{a[5], a[6]}
	case ClosePath:
		return start
	default:
		return cursor
	}
}

// ExpandShorthand rewrites every S/s and T/t command into its longhand
// C/c or Q/q equivalent, reflecting the previous command's second control
// point (or using the current point when there is no bezier to reflect),
// per command.rs's make_s_args_longhand/make_t_args_longhand.
func ExpandShorthand(p Path) Path {
	out := make(Path, len(p))
	var cursor Point
	var prevCtrl Point
	var havePrevCubic, havePrevQuad bool
	abs := ToAbsolute(p)
	var start Point
	for i, cmd := range abs {
		switch cmd.ID {
		case SmoothBezierTo:
			c1 := cursor
			if havePrevCubic {
				c1 = Point{2*cursor.X - prevCtrl.X, 2*cursor.Y - prevCtrl.Y}
			}
			out[i] = Command{ID: CubicBezierTo, Args: []float64{c1.X, c1.Y, cmd.Args[0], cmd.Args[1], cmd.Args[2], cmd.Args[3]}}
			prevCtrl = Point{cmd.Args[0], cmd.Args[1]}
			havePrevCubic = true
			havePrevQuad = false
			cursor = Point{cmd.Args[2], cmd.Args[3]}
		case SmoothQuadraticBezierTo:
			c1 := cursor
			if havePrevQuad {
				c1 = Point{2*cursor.X - prevCtrl.X, 2*cursor.Y - prevCtrl.Y}
			}
			out[i] = Command{ID: QuadraticBezierTo, Args: []float64{c1.X, c1.Y, cmd.Args[0], cmd.Args[1]}}
			prevCtrl = c1
			havePrevQuad = true
			havePrevCubic = false
			cursor = Point{cmd.Args[0], cmd.Args[1]}
		case CubicBezierTo:
			out[i] = cmd
			prevCtrl = Point{cmd.Args[2], cmd.Args[3]}
			havePrevCubic = true
			havePrevQuad = false
			cursor = Point{cmd.Args[4], cmd.Args[5]}
		case QuadraticBezierTo:
			out[i] = cmd
			prevCtrl = Point{cmd.Args[0], cmd.Args[1]}
			havePrevQuad = true
			havePrevCubic = false
			cursor = Point{cmd.Args[2], cmd.Args[3]}
		default:
			out[i] = cmd
			havePrevCubic = false
			havePrevQuad = false
			if cmd.ID == MoveTo {
				start = Point{cmd.Args[0], cmd.Args[1]}
			}
			cursor = absoluteEndpoint(cmd, cursor, start)
		}
	}
	return out
}
