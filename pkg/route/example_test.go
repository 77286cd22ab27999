package route_test

import (
	"fmt"

	"github.com/saxonthune/flowgrid/pkg/geom"
	"github.com/saxonthune/flowgrid/pkg/route"
)

func ExampleRoutes() {
	edges := []route.Edge{{
		ID:     "a→b",
		Source: route.Endpoint{ID: "a", Rect: geom.Rect{X: 0, Y: 0, Width: 100, Height: 50}},
		Target: route.Endpoint{ID: "b", Rect: geom.Rect{X: 300, Y: 0, Width: 100, Height: 50}},
	}}

	routes := route.Routes(edges, nil, route.Options{})

	for _, p := range routes["a→b"] {
		fmt.Printf("(%.0f, %.0f)\n", p.X, p.Y)
	}
	// Output:
	// (100, 25)
	// (300, 25)
}
