// Package flow implements layered (topological) graph drawing for diagram
// nodes.
//
// Compute assigns an integer layer to every node using cycle-tolerant
// relaxation, then derives axis positions per layer for one of four flow
// directions (top-to-bottom, bottom-to-top, left-to-right, right-to-left).
// The final result is translated so the centroid of the node centers matches
// the centroid of the input positions, keeping a re-layout from visually
// jumping the diagram toward the origin.
//
// The engine is a pure function over its inputs: it builds a local adjacency
// structure per call, holds no state between invocations, and is safe to call
// concurrently from independent goroutines.
//
// # Cycles
//
// Graphs with cycles and self-loops are legal inputs. The relaxation loop is
// bounded by a hard pass ceiling, and nodes trapped in a cycle receive a
// fallback layer (see [AssignLayers]) so every node always gets a position.
// Correctness for cyclic input means "always produces output", not any
// particular layer value.
package flow
