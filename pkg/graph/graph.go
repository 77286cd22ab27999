// Package graph defines the serialization format for diagram documents and
// computed layouts.
//
// A [Document] is the input side: node rectangles and directed edges, as the
// canvas layer stores them. A [Layout] is the output side: positions, layer
// assignments, and orthogonal routes produced by the layout and routing
// engines. Both carry JSON and BSON tags so the same structs serve file IO,
// the HTTP API, and the Mongo-backed layout store.
package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/saxonthune/flowgrid/pkg/geom"
)

var (
	// ErrInvalidNodeID is returned by [Document.Validate] when a node has
	// an empty identifier.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Document.Validate] when two nodes
	// share an identifier. The layout engines do not validate this
	// themselves; a duplicate would silently overwrite the earlier entry,
	// so the document layer rejects it explicitly.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownEndpoint is returned by [Document.Validate] when an edge
	// references a node that is not in the document.
	ErrUnknownEndpoint = errors.New("edge references unknown node")
)

// Node is a diagram node record: a rectangle in the shared coordinate space.
type Node struct {
	ID     string  `json:"id" bson:"id"`
	Label  string  `json:"label,omitempty" bson:"label,omitempty"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Rect returns the node's rectangle.
func (n Node) Rect() geom.Rect {
	return geom.Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}

// Edge is a directed connection between two nodes. Port identifiers are
// opaque annotations carried through for the rendering layer; the layout
// math ignores them.
type Edge struct {
	ID         string `json:"id" bson:"id"`
	SourceID   string `json:"source_id" bson:"source_id"`
	TargetID   string `json:"target_id" bson:"target_id"`
	SourcePort string `json:"source_port,omitempty" bson:"source_port,omitempty"`
	TargetPort string `json:"target_port,omitempty" bson:"target_port,omitempty"`
}

// Document is a diagram graph as stored by the canvas layer.
type Document struct {
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Validate checks document integrity and returns the first violation found:
// [ErrInvalidNodeID] for an empty node id, [ErrDuplicateNodeID] when two
// nodes share an id, or [ErrUnknownEndpoint] when an edge references a
// missing node. Self-loops and cycles are valid documents.
func (d *Document) Validate() error {
	seen := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if n.ID == "" {
			return ErrInvalidNodeID
		}
		if seen[n.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateNodeID, n.ID)
		}
		seen[n.ID] = true
	}
	for _, e := range d.Edges {
		if !seen[e.SourceID] {
			return fmt.Errorf("%w: edge %q source %q", ErrUnknownEndpoint, e.ID, e.SourceID)
		}
		if !seen[e.TargetID] {
			return fmt.Errorf("%w: edge %q target %q", ErrUnknownEndpoint, e.ID, e.TargetID)
		}
	}
	return nil
}

// EnsureEdgeIDs assigns an identifier to every edge that has none, so
// routing results can always be keyed by edge id. Generated ids are a
// deterministic function of the endpoints and the edge's index: the same
// document always produces the same ids, which keeps repeated runs
// cache-comparable and keeps emitted routes resolvable against the input.
// Existing ids are kept.
func (d *Document) EnsureEdgeIDs() {
	for i := range d.Edges {
		if d.Edges[i].ID == "" {
			d.Edges[i].ID = fmt.Sprintf("%s-%s-%d", d.Edges[i].SourceID, d.Edges[i].TargetID, i)
		}
	}
}

// Layout is the computed result for a document: one position and layer per
// node id, node ids grouped by layer, and one waypoint list per edge id.
// Routes may be empty lists, which callers must treat as "no path found".
type Layout struct {
	Direction string                  `json:"direction" bson:"direction"`
	Positions map[string]geom.Point   `json:"positions" bson:"positions"`
	Layers    map[string]int          `json:"layers" bson:"layers"`
	Order     map[int][]string        `json:"order" bson:"order"`
	Routes    map[string][]geom.Point `json:"routes,omitempty" bson:"routes,omitempty"`
}

// MarshalDocument serializes a Document to pretty-printed JSON bytes.
func MarshalDocument(d Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalDocument deserializes and validates JSON bytes into a Document.
func UnmarshalDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("unmarshal document: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}

// ReadDocumentFile reads and validates a Document from a JSON file.
func ReadDocumentFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalDocument(data)
}

// WriteDocumentFile writes a Document to a JSON file.
func WriteDocumentFile(d Document, path string) error {
	data, err := MarshalDocument(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
