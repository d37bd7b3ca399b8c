package calculator

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chickenParams(surface float64) StepParams {
	alpha := Diffusivity(chicken)
	return StepParams{
		Diffusivity:        alpha,
		SpatialStep:        DefaultSpatialStep,
		TimeStep:           TimeStep(alpha, DefaultSpatialStep),
		SurfaceTemperature: surface,
	}
}

func TestBuildGrid(t *testing.T) {
	g, err := BuildGrid(0.05, 0.03, 0.001, 273)
	require.NoError(t, err)
	assert.Equal(t, 50, g.NX)
	assert.Equal(t, 30, g.NY)
	for i := 0; i < g.NX; i++ {
		for j := 0; j < g.NY; j++ {
			require.Equal(t, 273.0, g.At(i, j))
		}
	}
	cx, cy := g.Center()
	assert.Equal(t, 25, cx)
	assert.Equal(t, 15, cy)
}

func TestBuildGrid_Floor(t *testing.T) {
	g, err := BuildGrid(0.0039, 0.0031, 0.001, 273)
	require.NoError(t, err)
	assert.Equal(t, 3, g.NX)
	assert.Equal(t, 3, g.NY)

	_, err = BuildGrid(0.0005, 0.05, 0.001, 273)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
	_, err = BuildGrid(0.05, 0.05, 0, 273)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
}

func TestGridSize_Limit(t *testing.T) {
	// 4.096 m x 4.096 m 正好 1<<24 个节点
	nX, nY, err := GridSize(4.096, 4.096, 0.001)
	require.NoError(t, err)
	assert.Equal(t, 4096, nX)
	assert.Equal(t, 4096, nY)

	for _, size := range [][2]float64{{4.097, 4.096}, {1e12, 0.05}, {1e12, 1e12}, {0.05, 1e300}} {
		_, _, err := GridSize(size[0], size[1], 0.001)
		assert.True(t, errors.Is(err, ErrInvalidGeometry), "%v", size)
	}
	_, _, err = GridSize(0.05, 0.05, 1e-300)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
}

func TestStep_BoundaryInvariant(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	p := chickenParams(450)
	for nX := 3; nX <= 12; nX++ {
		for nY := 3; nY <= 12; nY++ {
			prev := NewGrid(nX, nY, 0)
			for i := 0; i < nX; i++ {
				for j := 0; j < nY; j++ {
					prev.Set(i, j, 273+200*rnd.Float64())
				}
			}
			next := NewGrid(nX, nY, 0)
			for s := 0; s < 5; s++ {
				require.NoError(t, Step(next, prev, p))
				for i := 0; i < nX; i++ {
					for j := 0; j < nY; j++ {
						if next.IsBoundary(i, j) {
							require.Equal(t, 450.0, next.At(i, j), "%dx%d cell (%d,%d)", nX, nY, i, j)
						}
					}
				}
				prev, next = next, prev
			}
		}
	}
}

func TestStep_Stencil(t *testing.T) {
	prev := NewGrid(3, 3, 300)
	prev.Set(1, 1, 280)
	next := NewGrid(3, 3, 0)
	p := StepParams{Diffusivity: 1e-7, SpatialStep: 0.001, TimeStep: 2, SurfaceTemperature: 400}
	require.NoError(t, Step(next, prev, p))

	// 280 + α·dt·((300-560+300)/dx² + (300-560+300)/dx²)
	want := 280 + 1e-7*2*(40/1e-6+40/1e-6)
	assert.InDelta(t, want, next.At(1, 1), 1e-9)
	assert.Equal(t, 280.0, prev.At(1, 1), "prev must not be written")
}

func TestStep_ShapeMismatch(t *testing.T) {
	p := chickenParams(450)
	assert.Error(t, Step(NewGrid(3, 4, 0), NewGrid(4, 3, 0), p))
	g := NewGrid(3, 3, 0)
	assert.Error(t, Step(g, g, p))
}

func TestStep_MonotonicHeating(t *testing.T) {
	p := chickenParams(450)
	prev, err := BuildGrid(0.021, 0.017, DefaultSpatialStep, DefaultInitialTemperature)
	require.NoError(t, err)
	next := NewGrid(prev.NX, prev.NY, 0)

	last := prev.CenterTemperature()
	for s := 0; s < 2000; s++ {
		require.NoError(t, Step(next, prev, p))
		prev, next = next, prev
		center := prev.CenterTemperature()
		require.GreaterOrEqual(t, center, last-1e-9, "center cooled at step %d", s)
		last = center
	}
	assert.Greater(t, last, DefaultInitialTemperature)
}

func TestStep_MaximumPrinciple(t *testing.T) {
	for _, surface := range []float64{450, 200} {
		p := chickenParams(surface)
		lo, hi := surface, DefaultInitialTemperature
		if lo > hi {
			lo, hi = hi, lo
		}
		prev, err := BuildGrid(0.009, 0.013, DefaultSpatialStep, DefaultInitialTemperature)
		require.NoError(t, err)
		next := NewGrid(prev.NX, prev.NY, 0)
		for s := 0; s < 1000; s++ {
			require.NoError(t, Step(next, prev, p))
			prev, next = next, prev
			for i := 1; i < prev.NX-1; i++ {
				for j := 1; j < prev.NY-1; j++ {
					v := prev.At(i, j)
					require.True(t, v >= lo-1e-9 && v <= hi+1e-9, "step %d cell (%d,%d) = %v", s, i, j, v)
				}
			}
		}
	}
}
