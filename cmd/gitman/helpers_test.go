package main

import (
	"testing"

	"github.com/amirhk/gitman/internal/scan"
)

func TestOrderByRecency(t *testing.T) {
	t.Parallel()

	snaps := []scan.Snapshot{
		{Name: "alpha"},
		{Name: "beta"},
		{Name: "gamma"},
		{Name: "delta"},
	}

	tests := []struct {
		name   string
		recent []string
		want   []string
	}{
		{
			name:   "no history keeps scan order",
			recent: nil,
			want:   []string{"alpha", "beta", "gamma", "delta"},
		},
		{
			name:   "recent repos come first",
			recent: []string{"gamma", "alpha"},
			want:   []string{"gamma", "alpha", "beta", "delta"},
		},
		{
			name:   "vanished repos are ignored",
			recent: []string{"removed", "delta"},
			want:   []string{"delta", "alpha", "beta", "gamma"},
		},
		{
			name:   "duplicates are taken once",
			recent: []string{"beta", "beta"},
			want:   []string{"beta", "alpha", "gamma", "delta"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := orderByRecency(snaps, tt.recent)
			if len(got) != len(tt.want) {
				t.Fatalf("orderByRecency returned %d snapshots, want %d", len(got), len(tt.want))
			}
			for i, want := range tt.want {
				if got[i].Name != want {
					t.Errorf("position %d = %s, want %s", i, got[i].Name, want)
				}
			}
		})
	}
}
