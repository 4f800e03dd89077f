package dbscan

import "fmt"

// Reserved integer ids used by Label.ID and Result.Labels.
const (
	// NoiseID marks a point that belongs to no cluster.
	NoiseID = -1
	// UnclassifiedID marks a point not yet visited. Callers never observe
	// it after a successful clustering call.
	UnclassifiedID = -2
)

// State is the classification state of a point during a clustering run.
type State uint8

const (
	// Unclassified is the initial state of every point.
	Unclassified State = iota
	// Noise is tentative: a later cluster may still claim the point as a
	// border point.
	Noise
	// Clustered is terminal for the rest of the run.
	Clustered
)

func (s State) String() string {
	switch s {
	case Unclassified:
		return "unclassified"
	case Noise:
		return "noise"
	case Clustered:
		return "clustered"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// transitions[from][to] lists the legal state changes:
//
//	Unclassified -> Noise
//	Unclassified -> Clustered
//	Noise        -> Clustered   (border point reclaimed by a later cluster)
var transitions = [3][3]bool{
	Unclassified: {Noise: true, Clustered: true},
	Noise:        {Clustered: true},
}

// CanTransition reports whether a point may move from state from to state to.
func CanTransition(from, to State) bool {
	if int(from) >= len(transitions) || int(to) >= len(transitions) {
		return false
	}
	return transitions[from][to]
}

// Label is the mutable classification of a point. Cluster is meaningful only
// when State is Clustered.
type Label struct {
	State   State
	Cluster int
}

// ID returns the cluster index, NoiseID, or UnclassifiedID.
func (l Label) ID() int {
	switch l.State {
	case Clustered:
		return l.Cluster
	case Noise:
		return NoiseID
	default:
		return UnclassifiedID
	}
}

func (l Label) String() string {
	if l.State == Clustered {
		return fmt.Sprintf("cluster %d", l.Cluster)
	}
	return l.State.String()
}

// markNoise moves an unclassified point to Noise.
func (l *Label) markNoise() bool {
	if !CanTransition(l.State, Noise) {
		return false
	}
	l.State = Noise
	return true
}

// assign moves the point into cluster id. It reports false, leaving the
// label untouched, when the point is already clustered.
func (l *Label) assign(id int) bool {
	if !CanTransition(l.State, Clustered) {
		return false
	}
	l.State = Clustered
	l.Cluster = id
	return true
}
