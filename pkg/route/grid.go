package route

import (
	"sort"

	"github.com/saxonthune/flowgrid/pkg/geom"
)

// grid is the per-edge routing graph: candidate points at the crossings of
// horizontal and vertical candidate lines, indexed in a fixed order so the
// search is fully deterministic.
type grid struct {
	points []geom.Point
	start  int // index of the source anchor
	goal   int // index of the target anchor
}

// buildGrid constructs the candidate point set for one edge.
//
// Vertical candidate lines come from each blocked rectangle's left and right
// edges (already padded by the caller) plus both anchors' x-coordinates;
// horizontal lines analogously from top/bottom edges and anchor
// y-coordinates. Every (x, y) crossing that does not fall strictly inside a
// blocked rectangle becomes a grid point. The two anchors are always
// included, even when they sit inside a blocked rectangle.
func buildGrid(start, goal geom.Point, blocked []geom.Rect) grid {
	xs := make([]float64, 0, 2*len(blocked)+2)
	ys := make([]float64, 0, 2*len(blocked)+2)
	for _, r := range blocked {
		xs = append(xs, r.X, r.Right())
		ys = append(ys, r.Y, r.Bottom())
	}
	xs = append(xs, start.X, goal.X)
	ys = append(ys, start.Y, goal.Y)
	xs = sortedUnique(xs)
	ys = sortedUnique(ys)

	g := grid{points: make([]geom.Point, 0, len(xs)*len(ys))}
	g.start = -1
	g.goal = -1

	for _, x := range xs {
		for _, y := range ys {
			p := geom.Point{X: x, Y: y}
			if insideAny(p, blocked) && p != start && p != goal {
				continue
			}
			if p == start && g.start == -1 {
				g.start = len(g.points)
			}
			if p == goal && g.goal == -1 {
				g.goal = len(g.points)
			}
			g.points = append(g.points, p)
		}
	}
	return g
}

func insideAny(p geom.Point, rects []geom.Rect) bool {
	for _, r := range rects {
		if r.ContainsStrict(p) {
			return true
		}
	}
	return false
}

// connected reports whether the straight segment between two grid points is
// axis-aligned and clear of every blocked rectangle.
func connected(a, b geom.Point, blocked []geom.Rect) bool {
	if a.X != b.X && a.Y != b.Y {
		return false
	}
	if a == b {
		return false
	}
	for _, r := range blocked {
		if geom.SegmentCrossesRect(a, b, r) {
			return false
		}
	}
	return true
}

func sortedUnique(values []float64) []float64 {
	sort.Float64s(values)
	out := values[:0]
	for i, v := range values {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
