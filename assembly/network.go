// Package assembly holds the structure being built: a set of linear
// deposition Elements, their node endpoints, and the adjacency/ground/
// layer bookkeeping the Sequence CSP and ladder graphs consume
// (spec.md S3 "Assembly Network").
package assembly

import (
	"sort"

	"go.viam.com/choreo/kinematics"
	"go.viam.com/choreo/spatial"
)

// ElementID identifies one Element for the lifetime of a plan.
type ElementID int

// NodeSpec is one endpoint of the structure: a 3D point plus whether it is
// grounded. Coordinates are in meters; any load-time scale factor has
// already been applied by the (out-of-scope) shape loader.
type NodeSpec struct {
	Point    spatial.Point
	Grounded bool
}

// ElementSpec describes one element prior to network construction: the
// pair of node indices it spans and its layer id.
type ElementSpec struct {
	NodeA, NodeB int
	LayerID      int
}

// Element is an immutable record of one linear deposition.
type Element struct {
	ID      ElementID
	NodeA   int
	NodeB   int
	LayerID int
	Body    kinematics.RigidBody
}

// Endpoints returns the element's two endpoint positions.
func (e Element) Endpoints(nodes []NodeSpec) (spatial.Point, spatial.Point) {
	return nodes[e.NodeA].Point, nodes[e.NodeB].Point
}

// Network is the Assembly Network of spec.md S3: elements, their
// adjacency (sharing an endpoint), grounded elements, graph distance to
// ground, and the layer->elements mapping.
type Network struct {
	Nodes    []NodeSpec
	Elements []Element

	neighbors map[ElementID][]ElementID
	grounded  map[ElementID]bool
	groundDist map[ElementID]int
	layers    map[int][]ElementID
	byID      map[ElementID]Element
}

// BuildBodyFunc derives a RigidBody for an element from its endpoints.
// Collision-body construction is the out-of-scope collision oracle's
// concern; the network just needs a handle to pass along.
type BuildBodyFunc func(id ElementID, p1, p2 spatial.Point) kinematics.RigidBody

// NewNetwork constructs an Assembly Network from decoded node/element
// specs. It returns ErrUnreachableElement if any element cannot reach a
// grounded element via element adjacency (spec.md S3 invariant).
func NewNetwork(nodes []NodeSpec, specs []ElementSpec, buildBody BuildBodyFunc) (*Network, error) {
	elements := make([]Element, len(specs))
	byID := make(map[ElementID]Element, len(specs))
	for i, s := range specs {
		id := ElementID(i)
		p1, p2 := nodes[s.NodeA].Point, nodes[s.NodeB].Point
		var body kinematics.RigidBody
		if buildBody != nil {
			body = buildBody(id, p1, p2)
		}
		e := Element{ID: id, NodeA: s.NodeA, NodeB: s.NodeB, LayerID: s.LayerID, Body: body}
		elements[i] = e
		byID[id] = e
	}

	n := &Network{
		Nodes:      nodes,
		Elements:   elements,
		neighbors:  map[ElementID][]ElementID{},
		grounded:   map[ElementID]bool{},
		groundDist: map[ElementID]int{},
		layers:     map[int][]ElementID{},
		byID:       byID,
	}

	// adjacency: elements sharing an endpoint node are neighbors.
	nodeToElements := map[int][]ElementID{}
	for _, e := range elements {
		nodeToElements[e.NodeA] = append(nodeToElements[e.NodeA], e.ID)
		nodeToElements[e.NodeB] = append(nodeToElements[e.NodeB], e.ID)
	}
	for _, e := range elements {
		seen := map[ElementID]bool{e.ID: true}
		var neigh []ElementID
		for _, nodeIdx := range [2]int{e.NodeA, e.NodeB} {
			for _, other := range nodeToElements[nodeIdx] {
				if !seen[other] {
					seen[other] = true
					neigh = append(neigh, other)
				}
			}
		}
		n.neighbors[e.ID] = neigh
		n.layers[e.LayerID] = append(n.layers[e.LayerID], e.ID)
	}

	// grounded: an element is grounded if either endpoint node is grounded.
	for _, e := range elements {
		if nodes[e.NodeA].Grounded || nodes[e.NodeB].Grounded {
			n.grounded[e.ID] = true
		}
	}

	if err := n.computeGroundDistances(); err != nil {
		return nil, err
	}
	for k := range n.layers {
		sort.Slice(n.layers[k], func(i, j int) bool { return n.layers[k][i] < n.layers[k][j] })
	}
	return n, nil
}

// computeGroundDistances runs a BFS from all grounded elements over the
// adjacency graph, recording graph distance to ground. It returns
// ErrUnreachableElement if any element is left unreached.
func (n *Network) computeGroundDistances() error {
	queue := make([]ElementID, 0, len(n.grounded))
	for id := range n.grounded {
		n.groundDist[id] = 0
		queue = append(queue, id)
	}
	sort.Slice(queue, func(i, j int) bool { return queue[i] < queue[j] })

	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		for _, neigh := range n.neighbors[cur] {
			if _, seen := n.groundDist[neigh]; !seen {
				n.groundDist[neigh] = n.groundDist[cur] + 1
				queue = append(queue, neigh)
			}
		}
	}

	for _, e := range n.Elements {
		if _, ok := n.groundDist[e.ID]; !ok {
			return NewUnreachableElementErr(e.ID)
		}
	}
	return nil
}

// Size returns the number of elements.
func (n *Network) Size() int { return len(n.Elements) }

// Element returns the element with the given id.
func (n *Network) Element(id ElementID) Element { return n.byID[id] }

// Neighbors returns the ids of elements adjacent to id (sharing an
// endpoint node).
func (n *Network) Neighbors(id ElementID) []ElementID { return n.neighbors[id] }

// IsGrounded reports whether id touches a grounded node.
func (n *Network) IsGrounded(id ElementID) bool { return n.grounded[id] }

// GroundedElements returns all grounded element ids.
func (n *Network) GroundedElements() []ElementID {
	ids := make([]ElementID, 0, len(n.grounded))
	for id := range n.grounded {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DistanceToGround returns id's graph-adjacency distance to the nearest
// grounded element (0 if id itself is grounded).
func (n *Network) DistanceToGround(id ElementID) int { return n.groundDist[id] }

// Layers returns the distinct layer ids present in the network.
func (n *Network) Layers() []int {
	ids := make([]int, 0, len(n.layers))
	for l := range n.layers {
		ids = append(ids, l)
	}
	sort.Ints(ids)
	return ids
}

// LayerElements returns the element ids belonging to layer l, in
// ascending id order.
func (n *Network) LayerElements(l int) []ElementID { return n.layers[l] }

// Body returns the rigid body backing element id.
func (n *Network) Body(id ElementID) kinematics.RigidBody { return n.byID[id].Body }
