package article

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDiffIDs(t *testing.T) {
	tests := []struct {
		name    string
		current []string
		desired []string
		want    Diff
	}{
		{"unchanged", []string{"a", "b"}, []string{"b", "a"}, Diff{}},
		{"detach all", []string{"b", "a"}, nil, Diff{Removed: []string{"a", "b"}}},
		{"attach to empty", nil, []string{"c", "a"}, Diff{Added: []string{"a", "c"}}},
		{"swap", []string{"a", "b"}, []string{"b", "c"}, Diff{Added: []string{"c"}, Removed: []string{"a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if d := cmp.Diff(tt.want, diffIDs(tt.current, tt.desired)); d != "" {
				t.Errorf("diffIDs mismatch (-want +got):\n%s", d)
			}
		})
	}
}
