package raster

// DrawLine draws a segment from (x0, y0) to (x1, y1) with Bresenham's
// algorithm. Pixels that fall outside the screen are skipped one by one, so
// partially visible segments are clipped rather than rejected.
//
// The segment is always walked left to right; one of four octant routines
// is chosen from the slope.
func (r *Rasterizer) DrawLine(x0, y0, x1, y1 int, c Color) {
	if x0 > x1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	dx := x1 - x0
	dy := y1 - y0
	steep := abs(dy) > dx
	switch {
	case dy >= 0 && !steep:
		r.lineOctant1(x0, y0, x1, dx, dy, c)
	case dy >= 0:
		r.lineOctant2(x0, y0, y1, dx, dy, c)
	case !steep:
		r.lineOctant8(x0, y0, x1, dx, -dy, c)
	default:
		r.lineOctant7(x0, y0, y1, dx, -dy, c)
	}
}

// lineOctant1 handles 0 <= slope <= 1.
func (r *Rasterizer) lineOctant1(x, y, x1, dx, dy int, c Color) {
	d := 2*dy - dx
	for ; x <= x1; x++ {
		r.screen.Set(x, y, c)
		if d > 0 {
			y++
			d -= 2 * dx
		}
		d += 2 * dy
	}
}

// lineOctant2 handles slope > 1.
func (r *Rasterizer) lineOctant2(x, y, y1, dx, dy int, c Color) {
	d := 2*dx - dy
	for ; y <= y1; y++ {
		r.screen.Set(x, y, c)
		if d > 0 {
			x++
			d -= 2 * dy
		}
		d += 2 * dx
	}
}

// lineOctant8 handles -1 <= slope < 0. ady is |dy|.
func (r *Rasterizer) lineOctant8(x, y, x1, dx, ady int, c Color) {
	d := 2*ady - dx
	for ; x <= x1; x++ {
		r.screen.Set(x, y, c)
		if d > 0 {
			y--
			d -= 2 * dx
		}
		d += 2 * ady
	}
}

// lineOctant7 handles slope < -1. ady is |dy|.
func (r *Rasterizer) lineOctant7(x, y, y1, dx, ady int, c Color) {
	d := 2*dx - ady
	for ; y >= y1; y-- {
		r.screen.Set(x, y, c)
		if d > 0 {
			x++
			d -= 2 * ady
		}
		d += 2 * dx
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
