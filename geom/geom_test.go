package geom_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/roadnet/geom"
)

func TestDistance(t *testing.T) {
	cases := []struct {
		name string
		a, b geom.Point
		want float64
	}{
		{"same point", geom.Pt(1, 1), geom.Pt(1, 1), 0},
		{"horizontal", geom.Pt(0, 0), geom.Pt(10, 0), 10},
		{"3-4-5", geom.Pt(0, 0), geom.Pt(3, 4), 5},
		{"negative coords", geom.Pt(-1, -1), geom.Pt(2, 3), 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, geom.Distance(tc.a, tc.b), 1e-12)
			assert.InDelta(t, tc.want, geom.Distance(tc.b, tc.a), 1e-12, "distance must be symmetric")
		})
	}
}

func TestFinite(t *testing.T) {
	assert.True(t, geom.Pt(0, 0).Finite())
	assert.True(t, geom.Pt(-1e300, 1e300).Finite())
	assert.False(t, geom.Pt(math.NaN(), 0).Finite())
	assert.False(t, geom.Pt(0, math.Inf(-1)).Finite())
}

func TestResample(t *testing.T) {
	line := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0)}

	t.Run("uneven step closes on last point", func(t *testing.T) {
		got := geom.Resample(line, 3)
		want := []geom.Point{geom.Pt(3, 0), geom.Pt(6, 0), geom.Pt(9, 0), geom.Pt(10, 0)}
		assert.Len(t, got, len(want))
		for i := range want {
			assert.InDelta(t, want[i].X, got[i].X, 1e-9)
			assert.InDelta(t, want[i].Y, got[i].Y, 1e-9)
		}
	})

	t.Run("exact step does not duplicate the end", func(t *testing.T) {
		got := geom.Resample(line, 5)
		assert.Len(t, got, 2)
		assert.InDelta(t, 10.0, got[1].X, 1e-9)
	})

	t.Run("step spans several segments", func(t *testing.T) {
		bent := []geom.Point{geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(2, 2), geom.Pt(4, 2)}
		got := geom.Resample(bent, 3)
		// 6 units of arc length: samples at 3 and 6.
		assert.Len(t, got, 2)
		assert.InDelta(t, 2.0, got[0].X, 1e-9)
		assert.InDelta(t, 1.0, got[0].Y, 1e-9)
		assert.InDelta(t, 4.0, got[1].X, 1e-9)
		assert.InDelta(t, 2.0, got[1].Y, 1e-9)
	})

	t.Run("non-positive step keeps raw points", func(t *testing.T) {
		got := geom.Resample(line, 0)
		assert.Equal(t, []geom.Point{geom.Pt(10, 0)}, got)
	})

	t.Run("degenerate input", func(t *testing.T) {
		assert.Nil(t, geom.Resample(nil, 1))
		assert.Nil(t, geom.Resample([]geom.Point{geom.Pt(1, 1)}, 1))
	})
}
