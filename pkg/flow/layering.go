package flow

// maxRelaxationPasses caps the layering loop regardless of input shape.
// Acyclic graphs settle in at most one pass per node; the ceiling only
// matters for adversarial cyclic inputs, which must still terminate.
const maxRelaxationPasses = 10000

// AssignLayers computes a non-negative layer index for every node.
//
// Nodes with zero in-degree (self-loops ignored) seed layer 0. The loop then
// relaxes repeatedly: any node whose every predecessor already has a layer is
// placed at max(predecessor layers) + 1. Relaxation stops when a full pass
// makes no progress or when the pass ceiling is reached.
//
// # Fallback for cycles
//
// Nodes inside a cycle never have all predecessors resolved, so the
// relaxation rule never fires for them. After the loop, each remaining node
// is placed one layer below its deepest already-resolved predecessor, or at
// layer 0 when none of its predecessors resolved. The exact value is a
// placement policy, not a correctness requirement; what matters is that
// every node receives some layer and the function terminates.
//
// Edges referencing IDs outside the node slice contribute no constraint.
func AssignLayers(nodes []Node, edges []Edge) map[string]int {
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}

	// Per-call adjacency, input order preserved for determinism.
	preds := make(map[string][]string, len(nodes))
	for _, e := range edges {
		if e.SourceID == e.TargetID {
			continue // self-loops carry no layering constraint
		}
		if !known[e.SourceID] || !known[e.TargetID] {
			continue
		}
		preds[e.TargetID] = append(preds[e.TargetID], e.SourceID)
	}

	layers := make(map[string]int, len(nodes))
	assigned := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if len(preds[n.ID]) == 0 {
			layers[n.ID] = 0
			assigned[n.ID] = true
		}
	}

	for pass := 0; pass < maxRelaxationPasses; pass++ {
		changed := false
		for _, n := range nodes {
			if assigned[n.ID] {
				continue
			}
			ready := true
			deepest := -1
			for _, p := range preds[n.ID] {
				if !assigned[p] {
					ready = false
					break
				}
				if layers[p] > deepest {
					deepest = layers[p]
				}
			}
			if ready {
				layers[n.ID] = deepest + 1
				assigned[n.ID] = true
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	// Fallback for nodes trapped in cycles.
	for _, n := range nodes {
		if assigned[n.ID] {
			continue
		}
		layer := 0
		for _, p := range preds[n.ID] {
			if assigned[p] && layers[p]+1 > layer {
				layer = layers[p] + 1
			}
		}
		layers[n.ID] = layer
	}

	return layers
}
