package route

import (
	"math"

	"github.com/saxonthune/flowgrid/pkg/geom"
)

// Segment orientations used as part of the search state. Tracking the
// arrival orientation per grid point is what makes the bend penalty exact:
// the same point reached horizontally and vertically is two distinct states.
const (
	dirNone = iota // start state, no segment traversed yet
	dirH
	dirV
	dirCount
)

// search runs A* from the grid's start anchor to its goal anchor.
//
// Moves connect any two grid points sharing a row or column whose straight
// segment stays clear of every blocked rectangle. Move cost is the Manhattan
// length of the segment, plus bendPenalty when the orientation differs from
// the arrival orientation of the previous segment. The heuristic is the
// Manhattan distance to the goal, which never overestimates because bends
// only ever add cost.
//
// The open set is a plain slice scanned with an explicit comparison
// (f-score, then heuristic, then state index), so ties always break the same
// way and identical inputs yield identical paths. Returns nil when the open
// set is exhausted without reaching the goal.
func search(g grid, blocked []geom.Rect, bendPenalty float64) []geom.Point {
	if g.start < 0 || g.goal < 0 {
		return nil
	}

	goalPt := g.points[g.goal]
	states := len(g.points) * dirCount

	gScore := make([]float64, states)
	cameFrom := make([]int, states)
	closed := make([]bool, states)
	for i := range gScore {
		gScore[i] = math.Inf(1)
		cameFrom[i] = -1
	}

	heuristic := func(state int) float64 {
		return geom.Manhattan(g.points[state/dirCount], goalPt)
	}

	startState := g.start*dirCount + dirNone
	gScore[startState] = 0
	open := []int{startState}

	for len(open) > 0 {
		best := 0
		bestF := gScore[open[0]] + heuristic(open[0])
		for i := 1; i < len(open); i++ {
			f := gScore[open[i]] + heuristic(open[i])
			switch {
			case f < bestF:
				best, bestF = i, f
			case f == bestF && heuristic(open[i]) < heuristic(open[best]):
				best = i
			case f == bestF && heuristic(open[i]) == heuristic(open[best]) && open[i] < open[best]:
				best = i
			}
		}

		state := open[best]
		open = append(open[:best], open[best+1:]...)
		if closed[state] {
			continue
		}
		closed[state] = true

		pi := state / dirCount
		dir := state % dirCount
		if pi == g.goal {
			return reconstruct(g, cameFrom, state)
		}

		p := g.points[pi]
		for qi := range g.points {
			if qi == pi {
				continue
			}
			q := g.points[qi]
			if !connected(p, q, blocked) {
				continue
			}

			moveDir := dirH
			if q.X == p.X {
				moveDir = dirV
			}
			cost := geom.Manhattan(p, q)
			if dir != dirNone && dir != moveDir {
				cost += bendPenalty
			}

			next := qi*dirCount + moveDir
			if tentative := gScore[state] + cost; tentative < gScore[next] {
				gScore[next] = tentative
				cameFrom[next] = state
				open = append(open, next)
			}
		}
	}
	return nil
}

// reconstruct walks the cameFrom chain back from the goal state and returns
// the waypoints in source-to-target order.
func reconstruct(g grid, cameFrom []int, state int) []geom.Point {
	var reversed []geom.Point
	for s := state; s != -1; s = cameFrom[s] {
		reversed = append(reversed, g.points[s/dirCount])
	}
	path := make([]geom.Point, len(reversed))
	for i, p := range reversed {
		path[len(path)-1-i] = p
	}
	return path
}
