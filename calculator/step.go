package calculator

import "fmt"

type StepParams struct {
	Diffusivity        float64 // α, m²/s
	SpatialStep        float64 // dx = dy, m
	TimeStep           float64 // dt, s
	SurfaceTemperature float64 // 表面温度, K
}

// Step 由上一时刻温度场 prev 计算下一时刻温度场 next。
// 内部节点使用五点差分格式，之后所有边界节点置为表面温度。prev 不会被修改。
func Step(next, prev *Grid, p StepParams) error {
	if !next.sameShape(prev) {
		return fmt.Errorf("step: grid shape mismatch %dx%d vs %dx%d", next.NX, next.NY, prev.NX, prev.NY)
	}
	if next == prev {
		return fmt.Errorf("step: next and prev must be different buffers")
	}

	nX, nY := prev.NX, prev.NY
	dx2 := p.SpatialStep * p.SpatialStep
	r := p.Diffusivity * p.TimeStep
	t0, t := prev.values, next.values

	// 内部节点
	for i := 1; i < nX-1; i++ {
		row, up, down := i*nY, (i-1)*nY, (i+1)*nY
		for j := 1; j < nY-1; j++ {
			c := t0[row+j]
			t[row+j] = c + r*((t0[down+j]-2*c+t0[up+j])/dx2+(t0[row+j+1]-2*c+t0[row+j-1])/dx2)
		}
	}

	// 边界节点
	surface := p.SurfaceTemperature
	last := (nX - 1) * nY
	for j := 0; j < nY; j++ {
		t[j] = surface
		t[last+j] = surface
	}
	for i := 1; i < nX-1; i++ {
		t[i*nY] = surface
		t[i*nY+nY-1] = surface
	}
	return nil
}
