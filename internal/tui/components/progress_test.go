package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProgressView(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total, completed int
		label            string
	}{
		{0, 0, "0/0"},
		{8, 0, "0/8"},
		{8, 5, "5/8"},
		{8, 8, "8/8"},
		{8, 9, "9/8"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.label, func(t *testing.T) {
			t.Parallel()
			view := NewProgress(tt.total).View(tt.completed)
			require.Contains(t, view, tt.label)
			require.Greater(t, len(strings.TrimSpace(view)), len(tt.label), "expected a bar next to the label")
		})
	}
}
