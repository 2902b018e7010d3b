// Package graph holds the climbing/temporal graph of cards and its A* path
// search. Node connectivity is kept two-layered: a serializable name-keyed
// adjacency plus live pointers rebuilt by an explicit Rebuild step, matching
// the card layer's connection handling.
package graph

import (
	"container/heap"

	"github.com/john-holland/physicscards/cards"
	"github.com/john-holland/physicscards/common/utils/trigo"
	"github.com/john-holland/physicscards/common/utils/vector"
)

// GrabHold is a climbable feature a node can hang a card on.
type GrabHold struct {
	Name     string         `json:"name"`
	Position vector.Vector3 `json:"position"`
	Facing   vector.Vector3 `json:"facing"`
}

type Node struct {
	Name     string             `json:"name"`
	Position vector.Vector3     `json:"position"`
	Hold     *GrabHold          `json:"hold,omitempty"`
	Card     *cards.GoodSection `json:"-"`
	CardName string             `json:"cardName,omitempty"`

	NeighborNames []string `json:"neighborNames,omitempty"`
	neighbors     []*Node

	// search bookkeeping, reset per search
	costFromStart       float64
	estimatedCostToGoal float64
	previous            *Node
	open                bool
	closed              bool
	heapIndex           int
}

func (n *Node) Neighbors() []*Node {
	return n.neighbors
}

func (n *Node) CostFromStart() float64 {
	return n.costFromStart
}

func (n *Node) EstimatedCostToGoal() float64 {
	return n.estimatedCostToGoal
}

// Graph searches must not run concurrently: search bookkeeping lives on the
// nodes, consistent with the solver's single-threaded per-tick contract.
type Graph struct {
	nodes  []*Node
	byName map[string]*Node

	// Edge cost blend; mirrors the solver's distance/difficulty weighting.
	DistanceWeight   float64
	DifficultyWeight float64
}

func NewGraph() *Graph {
	return &Graph{
		nodes:            make([]*Node, 0),
		byName:           make(map[string]*Node),
		DistanceWeight:   0.7,
		DifficultyWeight: 0.3,
	}
}

func (g *Graph) AddNode(node *Node) *Graph {
	if node == nil {
		return g
	}
	if _, exists := g.byName[node.Name]; exists {
		return g
	}

	g.nodes = append(g.nodes, node)
	g.byName[node.Name] = node
	return g
}

func (g *Graph) Node(name string) *Node {
	return g.byName[name]
}

func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Connect records a bidirectional edge in the name layer; Rebuild materializes
// the pointers.
func (g *Graph) Connect(a string, b string) *Graph {
	nodeA, okA := g.byName[a]
	nodeB, okB := g.byName[b]
	if !okA || !okB || a == b {
		return g
	}

	nodeA.NeighborNames = appendUnique(nodeA.NeighborNames, b)
	nodeB.NeighborNames = appendUnique(nodeB.NeighborNames, a)
	return g
}

func appendUnique(names []string, name string) []string {
	for _, existing := range names {
		if existing == name {
			return names
		}
	}
	return append(names, name)
}

// Rebuild resolves neighbor names and card names to live references. Names
// with no match are dropped silently.
func (g *Graph) Rebuild(pool []*cards.GoodSection) {
	cardsByName := make(map[string]*cards.GoodSection, len(pool))
	for _, card := range pool {
		if card != nil {
			cardsByName[card.Name] = card
		}
	}

	for _, node := range g.nodes {
		resolvedNames := make([]string, 0, len(node.NeighborNames))
		resolved := make([]*Node, 0, len(node.NeighborNames))

		for _, name := range node.NeighborNames {
			if neighbor, ok := g.byName[name]; ok {
				resolvedNames = append(resolvedNames, name)
				resolved = append(resolved, neighbor)
			}
		}

		node.NeighborNames = resolvedNames
		node.neighbors = resolved

		if node.Card == nil && node.CardName != "" {
			node.Card = cardsByName[node.CardName]
		}
	}
}

// edgeCost blends straight-line distance with a hold-difficulty term (the
// angle difference between the two holds' facings).
func (g *Graph) edgeCost(from *Node, to *Node) float64 {
	distance := from.Position.DistanceTo(to.Position)

	difficulty := 0.0
	if from.Hold != nil && to.Hold != nil {
		difficulty = trigo.AngleBetweenDegrees(from.Hold.Facing, to.Hold.Facing) / 180
	}

	return distance*g.DistanceWeight + difficulty*g.DifficultyWeight
}

// FindPath runs A* from start to goal. The heuristic is Euclidean distance to
// the goal position; admissible as long as traversal cost never undercuts the
// straight line, which holds for the distance term but is assumed for the
// difficulty term. No path yields an empty slice.
func (g *Graph) FindPath(startName string, goalName string) []*Node {
	start, okStart := g.byName[startName]
	goal, okGoal := g.byName[goalName]
	if !okStart || !okGoal {
		return nil
	}

	for _, node := range g.nodes {
		node.costFromStart = 0
		node.estimatedCostToGoal = 0
		node.previous = nil
		node.open = false
		node.closed = false
	}

	open := &nodeHeap{}
	heap.Init(open)

	start.estimatedCostToGoal = start.Position.DistanceTo(goal.Position)
	start.open = true
	heap.Push(open, start)

	for open.Len() > 0 {
		current := heap.Pop(open).(*Node)
		current.open = false
		current.closed = true

		if current == goal {
			return reconstructPath(goal)
		}

		for _, neighbor := range current.neighbors {
			if neighbor.closed {
				continue
			}

			tentative := current.costFromStart + g.edgeCost(current, neighbor)

			if neighbor.open && tentative >= neighbor.costFromStart {
				continue
			}

			neighbor.costFromStart = tentative
			neighbor.estimatedCostToGoal = neighbor.Position.DistanceTo(goal.Position)
			neighbor.previous = current

			if neighbor.open {
				heap.Fix(open, neighbor.heapIndex)
			} else {
				neighbor.open = true
				heap.Push(open, neighbor)
			}
		}
	}

	return nil
}

func reconstructPath(goal *Node) []*Node {
	path := make([]*Node, 0)
	for node := goal; node != nil; node = node.previous {
		path = append(path, node)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

// NearestNode returns the node closest to a position, nil on an empty graph.
func (g *Graph) NearestNode(position vector.Vector3) *Node {
	var nearest *Node
	best := 0.0

	for _, node := range g.nodes {
		distance := node.Position.DistanceTo(position)
		if nearest == nil || distance < best {
			nearest = node
			best = distance
		}
	}

	return nearest
}

// NodeForCard finds the node carrying a card, matching by identity.
func (g *Graph) NodeForCard(card *cards.GoodSection) *Node {
	if card == nil {
		return nil
	}

	for _, node := range g.nodes {
		if node.Card == card {
			return node
		}
	}

	return nil
}

// PathToCard searches from the node nearest startPosition to the node
// carrying the goal card and returns the cards along the way (nodes without
// cards contribute nothing). Empty when the goal is unreachable or not on
// the graph.
func (g *Graph) PathToCard(startPosition vector.Vector3, goal *cards.GoodSection) []*cards.GoodSection {
	goalNode := g.NodeForCard(goal)
	startNode := g.NearestNode(startPosition)
	if goalNode == nil || startNode == nil {
		return nil
	}

	path := g.FindPath(startNode.Name, goalNode.Name)
	if len(path) == 0 {
		return nil
	}

	sequence := make([]*cards.GoodSection, 0, len(path))
	for _, node := range path {
		if node.Card != nil {
			sequence = append(sequence, node.Card)
		}
	}

	return sequence
}

// nodeHeap orders the open set by costFromStart + estimatedCostToGoal.
type nodeHeap []*Node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	return h[i].costFromStart+h[i].estimatedCostToGoal < h[j].costFromStart+h[j].estimatedCostToGoal
}

func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}

func (h *nodeHeap) Push(x interface{}) {
	node := x.(*Node)
	node.heapIndex = len(*h)
	*h = append(*h, node)
}

func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return node
}
