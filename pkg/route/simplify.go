package route

import "github.com/saxonthune/flowgrid/pkg/geom"

// Simplify collapses runs of colinear waypoints so only corners (and the two
// endpoints) remain. Consecutive duplicate points are dropped as well. The
// input slice is never modified; paths with fewer than three points are
// returned as a copy.
func Simplify(path []geom.Point) []geom.Point {
	if len(path) == 0 {
		return nil
	}

	out := make([]geom.Point, 0, len(path))
	out = append(out, path[0])
	for i := 1; i < len(path); i++ {
		p := path[i]
		if p == out[len(out)-1] {
			continue
		}
		if len(out) >= 2 {
			a := out[len(out)-2]
			b := out[len(out)-1]
			if (a.X == b.X && b.X == p.X) || (a.Y == b.Y && b.Y == p.Y) {
				out[len(out)-1] = p
				continue
			}
		}
		out = append(out, p)
	}
	return out
}
