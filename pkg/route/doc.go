// Package route computes collision-avoiding orthogonal paths for diagram
// edges between node rectangles.
//
// For each edge independently, Routes filters the edge's own endpoints out
// of the obstacle set, computes direction-sensitive anchor points on both
// endpoint rectangles, builds a sparse routing grid from the padded obstacle
// boundaries, and runs an A* search biased toward paths with fewer bends.
// The returned waypoint lists alternate horizontal and vertical segments; an
// unreachable target yields an empty list, which is the expected signal for
// "fall back to a simpler connector shape", not an error.
//
// The grid and open set are plain indexable slices with explicit comparison
// functions, so identical inputs always produce identical routes. Each call
// allocates only local structures and the package holds no state between
// invocations.
package route
