package path

import "math"

const arcSegmentAngle = math.Pi * 120.0 / 180.0

// ArcToCubic expands one absolute ArcTo's 7 arguments (rx, ry, x-axis
// rotation, large-arc-flag, sweep-flag, x, y) into one or more cubic
// bezier segments, each [x1, y1, x2, y2, x, y] relative to base. Ported
// from the endpoint-to-center parameterization in SVG 1.1 Appendix F, the
// same implementation note the reference arc-to-curve filter cites.
func ArcToCubic(base Point, args [7]float64) [][6]float64 {
	return arcToCubicRecursive(base, args, nil)
}

func arcToCubicRecursive(base Point, args [7]float64, recursive []float64) [][6]float64 {
	x1, y1 := base.X, base.Y
	rx, ry, angle, largeArcFlag, sweepFlag, x2, y2 := args[0], args[1], args[2], args[3], args[4], args[5], args[6]
	rad := (math.Pi / 180.0) * angle

	var f1, f2, cx, cy float64
	var tail [][6]float64
	if recursive != nil {
		f1, f2, cx, cy = recursive[0], recursive[1], recursive[2], recursive[3]
	} else {
		x1, y1 = rotateX(x1, y1, -rad), rotateY(x1, y1, -rad)
		x2, y2 = rotateX(x2, y2, -rad), rotateY(x2, y2, -rad)

		x := (x1 - x2) / 2.0
		y := (y1 - y2) / 2.0
		h := (x*x)/(rx*rx) + (y*y)/(ry*ry)
		if h > 1.0 {
			h = math.Sqrt(h)
			rx *= h
			ry *= h
		}
		rx2, ry2 := rx*rx, ry*ry

		sweepSign := 1.0
		if sweepFlag == 0.0 {
			sweepSign = 1.0
		} else {
			sweepSign = -1.0
		}
		var k float64
		if largeArcFlag == sweepSign {
			k = math.Sqrt(math.Abs((rx2*ry2 - rx2*y*y - ry2*x*x) / (rx2*y*y + ry2*x*x)))
		}
		cx = (k*rx*y)/ry + (x1+x2)/2.0
		cy = (k*-ry*x)/rx + (y1+y2)/2.0

		f1 = math.Asin(clampUnit((y1 - cy) / ry))
		f2 = math.Asin(clampUnit((y2 - cy) / ry))
		if x1 < cx {
			f1 = math.Pi - f1
		}
		if x2 < cx {
			f2 = math.Pi - f2
		}
		if f1 < 0 {
			f1 += math.Pi * 2
		}
		if f2 < 0 {
			f2 += math.Pi * 2
		}
		if sweepFlag != 0.0 && f1 > f2 {
			f1 -= math.Pi * 2
		}
		if sweepFlag == 0.0 && f2 > f1 {
			f2 -= math.Pi * 2
		}
	}

	df := f2 - f1
	if math.Abs(df) > arcSegmentAngle {
		f2Old, x2Old, y2Old := f2, x2, y2
		dir := -1.0
		if sweepFlag != 0.0 && f2 > f1 {
			dir = 1.0
		}
		f2 = f1 + arcSegmentAngle*dir
		x2 = cx + rx*math.Cos(f2)
		y2 = cy + ry*math.Sin(f2)
		tail = arcToCubicRecursive(Point{x2, y2}, [7]float64{rx, ry, angle, 0, sweepFlag, x2Old, y2Old}, []float64{f2, f2Old, cx, cy})
	}

	df = f2 - f1
	c1, s1 := math.Cos(f1), math.Sin(f1)
	c2, s2 := math.Cos(f2), math.Sin(f2)
	t := math.Tan(df / 4.0)
	hx := (4.0 / 3.0) * rx * t
	hy := (4.0 / 3.0) * ry * t

	seg := [6]float64{
		-hx * s1, hy * c1,
		x2 + hx*s2 - x1, y2 - hy*c2 - y1,
		x2 - x1, y2 - y1,
	}

	if recursive != nil {
		return append([][6]float64{seg}, tail...)
	}
	out := append([][6]float64{seg}, tail...)
	for i := range out {
		rx2, ry2 := rotateX(out[i][0], out[i][1], rad), rotateY(out[i][0], out[i][1], rad)
		rx4, ry4 := rotateX(out[i][2], out[i][3], rad), rotateY(out[i][2], out[i][3], rad)
		rx6, ry6 := rotateX(out[i][4], out[i][5], rad), rotateY(out[i][4], out[i][5], rad)
		out[i] = [6]float64{rx2, ry2, rx4, ry4, rx6, ry6}
	}
	return out
}

func rotateX(x, y, rad float64) float64 { return x*math.Cos(rad) - y*math.Sin(rad) }
func rotateY(x, y, rad float64) float64 { return x*math.Sin(rad) + y*math.Cos(rad) }

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// ArcSaggita returns the saggita (the distance from an arc's midpoint to
// its chord) for an absolute-argument ArcBy/ArcTo whose radii are equal
// within error, or false when the arc has a large-arc-flag set or
// non-circular radii and so isn't a candidate for zero-length-arc pruning.
func ArcSaggita(args [7]float64, dx, dy, error float64) (float64, bool) {
	if math.Abs(args[3]-1.0) < 1e-12 {
		return 0, false
	}
	rx, ry := args[0], args[1]
	if math.Abs(rx-ry) > error {
		return 0, false
	}
	chord := math.Hypot(dx, dy)
	if chord > rx*2.0 {
		return 0, false
	}
	return rx - math.Sqrt(rx*rx-0.25*(chord*chord)), true
}
