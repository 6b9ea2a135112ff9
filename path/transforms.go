package path

import "math"

// SimplifyDegenerateCurves rewrites absolute C and Q commands whose control
// points are collinear with the segment's start and end (within error) into
// plain L commands, since a straight line renders identically to a
// degenerate curve. p must already be in absolute form.
func SimplifyDegenerateCurves(p Path, errorTolerance float64) Path {
	out := make(Path, len(p))
	var cursor Point
	for i, cmd := range p {
		out[i] = cmd
		switch cmd.ID {
		case CubicBezierTo:
			end := Point{cmd.Args[4], cmd.Args[5]}
			if isStraight(cursor, [][2]float64{{cmd.Args[0], cmd.Args[1]}, {cmd.Args[2], cmd.Args[3]}}, end, errorTolerance) {
				out[i] = Command{ID: LineTo, Args: []float64{end.X, end.Y}}
			}
			cursor = end
		case QuadraticBezierTo:
			end := Point{cmd.Args[2], cmd.Args[3]}
			if isStraight(cursor, [][2]float64{{cmd.Args[0], cmd.Args[1]}}, end, errorTolerance) {
				out[i] = Command{ID: LineTo, Args: []float64{end.X, end.Y}}
			}
			cursor = end
		default:
			cursor = absoluteEndpoint(cmd, cursor, cursor)
			if cmd.ID == MoveTo {
				cursor = Point{cmd.Args[0], cmd.Args[1]}
			}
		}
	}
	return out
}

// isStraight reports whether every control point lies within error of the
// line through start and end, using the point-to-line distance formula
// (ported from geometry.rs's is_data_straight, generalised to N points).
func isStraight(start Point, controls [][2]float64, end Point, errorTolerance float64) bool {
	a := start.Y - end.Y
	b := end.X - start.X
	d := a*a + b*b
	if d < 1e-12 {
		return false
	}
	c := -(a*start.X + b*start.Y)
	for _, ctrl := range controls {
		dist := math.Abs(a*ctrl[0]+b*ctrl[1]+c) / math.Sqrt(d)
		if dist > errorTolerance {
			return false
		}
	}
	return true
}

// CollapseConsecutiveMoveTo drops every MoveTo/MoveBy command that is
// immediately followed by another, keeping only the last of each run,
// since only the final one has any visible effect.
func CollapseConsecutiveMoveTo(p Path) Path {
	out := make(Path, 0, len(p))
	for i, cmd := range p {
		if (cmd.ID == MoveTo || cmd.ID == MoveBy) && i+1 < len(p) {
			next := p[i+1].ID
			if next == MoveTo || next == MoveBy {
				continue
			}
		}
		out = append(out, cmd)
	}
	return out
}

// RemoveZeroLengthSegments drops drawing commands (L/H/V/C/S/Q/T/A, in
// absolute form) whose endpoint equals their start point within epsilon,
// which draw nothing. ClosePath and the first MoveTo are always kept.
func RemoveZeroLengthSegments(p Path, epsilon float64) Path {
	positions := Positions(p)
	out := make(Path, 0, len(p))
	for i, pos := range positions {
		cmd := pos.Command
		if i == 0 || cmd.ID == MoveTo || cmd.ID == MoveBy || cmd.ID == ClosePath {
			out = append(out, cmd)
			continue
		}
		if math.Abs(pos.End.X-pos.Start.X) <= epsilon && math.Abs(pos.End.Y-pos.Start.Y) <= epsilon {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

// Round rounds every numeric argument in p to precision decimal digits,
// matching math.rs's to_fixed: multiply, round to nearest, divide back.
// Position-valued arguments (coordinates and radii) use posPrecision;
// flag-valued arguments (arc's large-arc and sweep flags) are left exact.
func Round(p Path, posPrecision int) Path {
	out := make(Path, len(p))
	for i, cmd := range p {
		args := make([]float64, len(cmd.Args))
		for j, v := range cmd.Args {
			if cmd.ID == ArcTo || cmd.ID == ArcBy {
				if j == 3 || j == 4 {
					args[j] = v
					continue
				}
			}
			args[j] = toFixed(v, posPrecision)
		}
		out[i] = Command{ID: cmd.ID, Args: args, Implicit: cmd.Implicit}
	}
	return out
}

func toFixed(v float64, precision int) float64 {
	pow := math.Pow(10, float64(precision))
	return math.Round(v*pow) / pow
}

// PromoteSmoothShortcuts rewrites absolute C commands whose first control
// point is the reflection of the previous C's second control point (within
// epsilon) into S, and absolute Q commands whose control point reflects
// the previous Q's into T, shortening the serialised form without changing
// the curve. p must already be in absolute, longhand form.
func PromoteSmoothShortcuts(p Path, epsilon float64) Path {
	out := make(Path, len(p))
	var cursor Point
	var prevCtrl Point
	var havePrevCubic, havePrevQuad bool
	for i, cmd := range p {
		out[i] = cmd
		switch cmd.ID {
		case CubicBezierTo:
			c1 := Point{cmd.Args[0], cmd.Args[1]}
			if havePrevCubic && closeEnough(c1, Point{2*cursor.X - prevCtrl.X, 2*cursor.Y - prevCtrl.Y}, epsilon) {
				out[i] = Command{ID: SmoothBezierTo, Args: []float64{cmd.Args[2], cmd.Args[3], cmd.Args[4], cmd.Args[5]}}
			}
			prevCtrl = Point{cmd.Args[2], cmd.Args[3]}
			havePrevCubic = true
			havePrevQuad = false
			cursor = Point{cmd.Args[4], cmd.Args[5]}
		case QuadraticBezierTo:
			c1 := Point{cmd.Args[0], cmd.Args[1]}
			if havePrevQuad && closeEnough(c1, Point{2*cursor.X - prevCtrl.X, 2*cursor.Y - prevCtrl.Y}, epsilon) {
				out[i] = Command{ID: SmoothQuadraticBezierTo, Args: []float64{cmd.Args[2], cmd.Args[3]}}
			}
			prevCtrl = c1
			havePrevQuad = true
			havePrevCubic = false
			cursor = Point{cmd.Args[2], cmd.Args[3]}
		default:
			havePrevCubic = false
			havePrevQuad = false
			cursor = absoluteEndpoint(cmd, cursor, cursor)
			if cmd.ID == MoveTo {
				cursor = Point{cmd.Args[0], cmd.Args[1]}
			}
		}
	}
	return out
}

func closeEnough(a, b Point, epsilon float64) bool {
	return math.Abs(a.X-b.X) <= epsilon && math.Abs(a.Y-b.Y) <= epsilon
}

// ConvertArcsToCubic rewrites every absolute ArcTo in p into one or more
// CubicBezierTo commands, leaving everything else untouched. Callers (the
// convertPathData job) apply it only when the cubic form serialises
// shorter, per the "convert A to C... when output is shorter" rule.
func ConvertArcsToCubic(p Path) Path {
	positions := Positions(p)
	var out Path
	for _, pos := range positions {
		if pos.Command.ID != ArcTo {
			out = append(out, pos.Command)
			continue
		}
		var args [7]float64
		copy(args[:], pos.Command.Args)
		segs := ArcToCubic(pos.Start, args)
		base := pos.Start
		for _, s := range segs {
			out = append(out, Command{ID: CubicBezierTo, Args: []float64{
				base.X + s[0], base.Y + s[1],
				base.X + s[2], base.Y + s[3],
				base.X + s[4], base.Y + s[5],
			}})
			base = Point{base.X + s[4], base.Y + s[5]}
		}
	}
	return out
}
