package dag

import (
	"context"

	"github.com/kasparro/pagegen/internal/ctxlog"
)

// Builder collects node declarations and turns them into a validated Graph.
// Registration order is significant: it breaks every scheduling tie, so two
// runs over the same declarations schedule identically.
type Builder struct {
	specs []NodeSpec
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Register adds a node declaration. Validation happens in Build.
func (b *Builder) Register(spec NodeSpec) {
	b.specs = append(b.specs, spec)
}

// Build validates the declarations and returns the Graph with its
// topological ordering, or a GraphError if a dependency is unregistered, a
// cycle exists, or an output key is claimed twice. Pure validation plus
// ordering; no node executes here.
func (b *Builder) Build(ctx context.Context) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: starting graph construction.", "node_count", len(b.specs))

	graph := &Graph{Nodes: make(map[string]*Node, len(b.specs))}

	// First pass: create all nodes and check ID/output uniqueness.
	outputOwners := make(map[string]string)
	for _, spec := range b.specs {
		if spec.ID == "" {
			return nil, graphErrorf("node registered with empty id")
		}
		if spec.Func == nil {
			return nil, graphErrorf("node %q has no function", spec.ID)
		}
		if _, exists := graph.Nodes[spec.ID]; exists {
			return nil, graphErrorf("duplicate node id %q", spec.ID)
		}
		for _, key := range spec.Outputs {
			if owner, claimed := outputOwners[key]; claimed {
				return nil, graphErrorf("output key %q claimed by both %q and %q", key, owner, spec.ID)
			}
			outputOwners[key] = spec.ID
		}
		graph.Nodes[spec.ID] = &Node{
			ID:      spec.ID,
			Outputs: spec.Outputs,
			Func:    spec.Func,
		}
	}

	// Second pass: link dependencies in registration order.
	for _, spec := range b.specs {
		node := graph.Nodes[spec.ID]
		for _, depID := range spec.Deps {
			dep, ok := graph.Nodes[depID]
			if !ok {
				return nil, graphErrorf("node %q depends on unregistered node %q", spec.ID, depID)
			}
			if dep == node {
				return nil, graphErrorf("node %q depends on itself", spec.ID)
			}
			node.Deps = append(node.Deps, dep)
			dep.Dependents = append(dep.Dependents, node)
		}
	}
	logger.Debug("Build: node linking complete.")

	order, err := topoOrder(b.specs, graph)
	if err != nil {
		return nil, err
	}
	graph.Order = order

	// Third pass: initialize scheduling counters.
	for _, node := range graph.Nodes {
		node.depCount.Store(int32(len(node.Deps)))
	}

	logger.Debug("Build: graph construction successful.")
	return graph, nil
}

// topoOrder computes the topological ordering via Kahn's dependency-count
// reduction. The ready queue is seeded and extended in registration order,
// which makes the ordering fully deterministic and lets a single-worker
// executor replay it exactly. Any leftover node means a cycle.
func topoOrder(specs []NodeSpec, graph *Graph) ([]string, error) {
	indegree := make(map[string]int, len(graph.Nodes))
	for id, node := range graph.Nodes {
		indegree[id] = len(node.Deps)
	}

	var queue []*Node
	for _, spec := range specs {
		if indegree[spec.ID] == 0 {
			queue = append(queue, graph.Nodes[spec.ID])
		}
	}

	order := make([]string, 0, len(graph.Nodes))
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node.ID)
		for _, dependent := range node.Dependents {
			indegree[dependent.ID]--
			if indegree[dependent.ID] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(order) != len(graph.Nodes) {
		for _, spec := range specs {
			if indegree[spec.ID] > 0 {
				return nil, graphErrorf("cycle detected involving %q", spec.ID)
			}
		}
		return nil, graphErrorf("cycle detected")
	}
	return order, nil
}
