package dbscan

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{Unclassified, Unclassified, false},
		{Unclassified, Noise, true},
		{Unclassified, Clustered, true},
		{Noise, Unclassified, false},
		{Noise, Noise, false},
		{Noise, Clustered, true},
		{Clustered, Unclassified, false},
		{Clustered, Noise, false},
		{Clustered, Clustered, false},
		{State(7), Noise, false},
		{Noise, State(7), false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestLabel_NoiseReclaimedOnce(t *testing.T) {
	var l Label
	if l.ID() != UnclassifiedID {
		t.Fatalf("zero label ID = %d, want %d", l.ID(), UnclassifiedID)
	}
	if !l.markNoise() {
		t.Fatal("markNoise on unclassified label failed")
	}
	if l.markNoise() {
		t.Error("markNoise succeeded twice")
	}
	if l.ID() != NoiseID {
		t.Errorf("ID() = %d, want %d", l.ID(), NoiseID)
	}
	if !l.assign(3) {
		t.Fatal("assign on noise label failed")
	}
	if l.ID() != 3 {
		t.Errorf("ID() = %d, want 3", l.ID())
	}
	// Clustered is terminal.
	if l.assign(4) {
		t.Error("assign overwrote a clustered label")
	}
	if l.markNoise() {
		t.Error("markNoise overwrote a clustered label")
	}
	if l.ID() != 3 {
		t.Errorf("ID() = %d after rejected transitions, want 3", l.ID())
	}
}

func TestLabel_String(t *testing.T) {
	tests := []struct {
		l    Label
		want string
	}{
		{Label{}, "unclassified"},
		{Label{State: Noise}, "noise"},
		{Label{State: Clustered, Cluster: 2}, "cluster 2"},
		{Label{State: State(9)}, "State(9)"},
	}
	for _, tt := range tests {
		if got := tt.l.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
