package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/porticus-lab/go-proposal-pdf/internal/layout"
)

func TestDecideBreak(t *testing.T) {
	tests := []struct {
		name     string
		y        float64
		required float64
		want     bool
	}{
		{"plenty of room", 40, 10, false},
		{"exactly at the margin", 262, 10, false},
		{"just past the margin", 262.1, 10, true},
		{"already below the margin", 280, 0.5, true},
		{"zero height at the top", 14, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, layout.DecideBreak(tt.y, tt.required, 297, 25))
		})
	}
}

func TestCursor(t *testing.T) {
	c := layout.Cursor{Y: 250, PageHeight: 297, BottomMargin: 25}
	assert.InDelta(t, 22.0, c.Remaining(), 1e-9)
	assert.True(t, c.Fits(22))
	assert.False(t, c.Fits(22.01))

	c.Advance(10)
	assert.InDelta(t, 260.0, c.Y, 1e-9)
	assert.InDelta(t, 12.0, c.Remaining(), 1e-9)
}
